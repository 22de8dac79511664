package cat

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatcher_Match(t *testing.T) {
	t.Parallel()

	m := Matcher{Registry: DefaultRegistry()}

	tests := []struct {
		name       string
		frame      string
		wantOK     bool
		wantID     CommandID
		wantParams string
	}{
		{name: "Query", frame: "FA", wantOK: true, wantID: CmdFA, wantParams: ""},
		{name: "Set", frame: "FA014250000", wantOK: true, wantID: CmdFA, wantParams: "014250000"},
		{name: "Variable", frame: "MD02", wantOK: true, wantID: CmdMD, wantParams: "02"},
		{name: "Unknown", frame: "ZZ", wantOK: false},
		{name: "Lowercase", frame: "fa014250000", wantOK: false},
		{name: "Single_Byte", frame: "F", wantOK: false},
		{name: "Empty", frame: "", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			frame := []byte(tt.frame)
			got, ok := m.Match(frame)
			require.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.frame, string(frame), "frame must not be mutated")
			if !ok {
				assert.Equal(t, Match{}, got)
				return
			}
			assert.Equal(t, tt.wantID, got.Command.ID)
			assert.Equal(t, tt.wantParams, string(got.Params))
		})
	}
}

func TestMatcher_ParamsAliasFrame(t *testing.T) {
	t.Parallel()

	frame := []byte("MD02")
	got, ok := Matcher{Registry: DefaultRegistry()}.Match(frame)
	require.True(t, ok)
	require.Len(t, got.Params, 2)
	assert.Same(t, &frame[2], &got.Params[0])
}
