package main

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/Station-Manager/cat"
	"github.com/goccy/go-json"
)

func TestParseOutcomes(t *testing.T) {
	var out bytes.Buffer
	global := &globalFlags{logLevel: "disabled"}

	err := runParse(global, &parseFlags{stats: true}, strings.NewReader("FA014250000;ID;ZZ;FA1;MD0"), &out)
	if err != nil {
		t.Fatalf("runParse error: %v", err)
	}

	text := out.String()
	for _, want := range []string{
		`dispatched  FA "014250000"`,
		`dispatched  ID ""`,
		`unknown     cat: unknown command: "ZZ"`,
		`malformed   cat: malformed parameters: "FA" has 1 parameter bytes, want exact(9)`,
		"incomplete  3 bytes without terminator",
	} {
		if !strings.Contains(text, want) {
			t.Fatalf("output missing %q:\n%s", want, text)
		}
	}

	start := strings.Index(text, "{")
	if start < 0 {
		t.Fatalf("no stats in output:\n%s", text)
	}
	var snap cat.MetricsSnapshot
	if err := json.Unmarshal([]byte(text[start:]), &snap); err != nil {
		t.Fatalf("stats are not JSON: %v", err)
	}
	if snap.Frames != 4 || snap.Dispatched != 2 {
		t.Fatalf("unexpected stats: %+v", snap)
	}
}

func TestLookupCommand(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		want    string
		wantErr error
	}{
		{name: "found", args: []string{"FA"}, want: "Frequency main band"},
		{name: "lowercase input", args: []string{"md"}, want: "Mode"},
		{name: "missing", args: []string{"ZZ"}, wantErr: cat.ErrUnknownCommand},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			cmd := newLookupCmd()
			cmd.SetOut(&out)
			cmd.SetErr(io.Discard)
			cmd.SetArgs(tt.args)

			err := cmd.Execute()
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !strings.Contains(out.String(), tt.want) {
				t.Fatalf("output missing %q: %s", tt.want, out.String())
			}
		})
	}
}

func TestCommandsPlain(t *testing.T) {
	var out bytes.Buffer
	cmd := newCommandsCmd()
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"--plain"})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if len(lines) != cat.DefaultRegistry().Len() {
		t.Fatalf("expected %d lines, got %d", cat.DefaultRegistry().Len(), len(lines))
	}
	if lines[0] != "AB\tvariable\t"+mustDescription(t, "AB") {
		t.Fatalf("unexpected first line %q", lines[0])
	}
}

func mustDescription(t *testing.T, m string) string {
	t.Helper()
	d, ok := cat.DefaultRegistry().LookupString(m)
	if !ok {
		t.Fatalf("%s not in registry", m)
	}
	return d.Description
}

func TestVFOPrinter(t *testing.T) {
	var out bytes.Buffer
	reg := cat.DefaultRegistry()
	router, err := vfoPrinter(reg, &out)
	if err != nil {
		t.Fatalf("vfoPrinter error: %v", err)
	}
	ch, err := cat.NewChannel(reg, router)
	if err != nil {
		t.Fatalf("NewChannel error: %v", err)
	}
	if _, err := ch.Write([]byte("FA014250000;MD02;FB007074000;?;")); err != nil {
		t.Fatalf("Write error: %v", err)
	}

	want := "FA 014250000\nFB 007074000\n"
	if out.String() != want {
		t.Fatalf("expected %q, got %q", want, out.String())
	}
}

func TestRunMonitorNeedsPort(t *testing.T) {
	global := &globalFlags{logLevel: "disabled"}
	err := runMonitor(context.Background(), global, &monitorFlags{interval: time.Second}, io.Discard)
	if err == nil || !strings.Contains(err.Error(), "invalid serial port configuration") {
		t.Fatalf("expected configuration error, got %v", err)
	}
}
