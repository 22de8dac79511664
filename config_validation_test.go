package cat

import (
	"errors"
	"strings"
	"testing"
)

func validSerialConfig() SerialConfig {
	return SerialConfig{
		PortName:       "COM1",
		BaudRate:       38400,
		DataBits:       8,
		Parity:         "N",
		StopBits:       2,
		ReadTimeoutMS:  100,
		WriteTimeoutMS: 1000,
	}
}

func TestValidateConfig_ValidConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Serial.PortName = "/dev/ttyUSB0"

	if err := ValidateConfig(&cfg); err != nil {
		t.Fatalf("expected valid config, got error: %v", err)
	}
}

func TestValidateConfig_Nil(t *testing.T) {
	if err := ValidateConfig(nil); err == nil {
		t.Fatal("expected error for nil config")
	}
}

func TestValidateSerialConfig_EmptyPortName(t *testing.T) {
	cfg := validSerialConfig()
	cfg.PortName = ""

	err := ValidateSerialConfig(&cfg)
	if err == nil {
		t.Fatal("expected error for empty port name")
	}
	if !strings.Contains(err.Error(), "port name cannot be empty") {
		t.Fatalf("expected 'port name cannot be empty' error, got: %v", err)
	}
}

func TestValidateSerialConfig_InvalidBaudRate(t *testing.T) {
	tests := []struct {
		baudRate int
		wantErr  bool
	}{
		{1200, false},   // Valid
		{4800, false},   // Valid
		{38400, false},  // Valid
		{115200, false}, // Valid
		{12345, true},   // Invalid
		{0, true},       // Invalid
		{-9600, true},   // Invalid
		{1000000, true}, // Invalid (too high)
	}

	for _, tt := range tests {
		cfg := validSerialConfig()
		cfg.BaudRate = tt.baudRate

		err := ValidateSerialConfig(&cfg)
		if tt.wantErr && err == nil {
			t.Fatalf("baudRate=%d: expected error, got nil", tt.baudRate)
		}
		if !tt.wantErr && err != nil {
			t.Fatalf("baudRate=%d: expected no error, got: %v", tt.baudRate, err)
		}
		if tt.wantErr && !strings.Contains(err.Error(), "invalid baud rate") {
			t.Fatalf("baudRate=%d: expected 'invalid baud rate' error, got: %v", tt.baudRate, err)
		}
	}
}

func TestValidateSerialConfig_InvalidDataBits(t *testing.T) {
	tests := []struct {
		dataBits int
		wantErr  bool
	}{
		{0, false}, // Defaults to 8
		{4, true},
		{5, false},
		{7, false},
		{8, false},
		{9, true},
	}

	for _, tt := range tests {
		cfg := validSerialConfig()
		cfg.DataBits = tt.dataBits

		err := ValidateSerialConfig(&cfg)
		if tt.wantErr && (err == nil || !strings.Contains(err.Error(), "data bits must be 5-8")) {
			t.Fatalf("dataBits=%d: expected 'data bits must be 5-8' error, got: %v", tt.dataBits, err)
		}
		if !tt.wantErr && err != nil {
			t.Fatalf("dataBits=%d: expected no error, got: %v", tt.dataBits, err)
		}
	}
}

func TestValidateSerialConfig_InvalidParity(t *testing.T) {
	tests := []struct {
		parity  string
		wantErr bool
	}{
		{"", false},
		{"N", false},
		{"e", false},
		{"odd", false},
		{"M", false},
		{"SPACE", false},
		{"X", true},
		{"1", true},
	}

	for _, tt := range tests {
		cfg := validSerialConfig()
		cfg.Parity = tt.parity

		err := ValidateSerialConfig(&cfg)
		if tt.wantErr && (err == nil || !strings.Contains(err.Error(), "invalid parity value")) {
			t.Fatalf("parity=%q: expected 'invalid parity value' error, got: %v", tt.parity, err)
		}
		if !tt.wantErr && err != nil {
			t.Fatalf("parity=%q: expected no error, got: %v", tt.parity, err)
		}
	}
}

func TestValidateSerialConfig_InvalidStopBits(t *testing.T) {
	tests := []struct {
		stopBits float64
		wantErr  bool
	}{
		{0, false},
		{1, false},
		{1.5, false},
		{2, false},
		{3, true},
		{0.5, true},
	}

	for _, tt := range tests {
		cfg := validSerialConfig()
		cfg.StopBits = tt.stopBits

		err := ValidateSerialConfig(&cfg)
		if tt.wantErr && (err == nil || !strings.Contains(err.Error(), "stop bits must be")) {
			t.Fatalf("stopBits=%.1f: expected 'stop bits must be' error, got: %v", tt.stopBits, err)
		}
		if !tt.wantErr && err != nil {
			t.Fatalf("stopBits=%.1f: expected no error, got: %v", tt.stopBits, err)
		}
	}
}

func TestValidateSerialConfig_NegativeTimeouts(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*SerialConfig)
		want   string
	}{
		{"read", func(c *SerialConfig) { c.ReadTimeoutMS = -1 }, "read timeout cannot be negative"},
		{"write", func(c *SerialConfig) { c.WriteTimeoutMS = -1 }, "write timeout cannot be negative"},
		{"idle", func(c *SerialConfig) { c.IdleResetMS = -1 }, "idle reset cannot be negative"},
	}

	for _, tt := range tests {
		cfg := validSerialConfig()
		tt.mutate(&cfg)

		err := ValidateSerialConfig(&cfg)
		if err == nil || !strings.Contains(err.Error(), tt.want) {
			t.Fatalf("%s: expected %q error, got: %v", tt.name, tt.want, err)
		}
	}
}

func TestValidateEngineConfig(t *testing.T) {
	tests := []struct {
		name    string
		cfg     EngineConfig
		wantErr bool
	}{
		{"defaults", DefaultConfig().Engine, false},
		{"zero value", EngineConfig{}, false},
		{"carriage return", EngineConfig{Terminator: "\r"}, true},
		{"letter terminator", EngineConfig{Terminator: "F"}, true},
		{"two byte terminator", EngineConfig{Terminator: ";;"}, true},
		{"unknown policy", EngineConfig{ErrorPolicy: "retry"}, true},
		{"reply policy", EngineConfig{ErrorPolicy: "reply", ErrorReply: "E"}, false},
		{"reply contains terminator", EngineConfig{ErrorReply: "?;"}, true},
		{"negative frame length", EngineConfig{MaxFrameLength: -1}, true},
		{"frame length too large", EngineConfig{MaxFrameLength: 1 << 20}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := tt.cfg
			err := ValidateEngineConfig(&cfg)
			if tt.wantErr && err == nil {
				t.Fatal("expected error, got nil")
			}
			if !tt.wantErr && err != nil {
				t.Fatalf("expected no error, got: %v", err)
			}
		})
	}
}

func TestValidateEngineConfig_TerminatorError(t *testing.T) {
	for _, term := range []string{"A", "z", "0", "9"} {
		cfg := EngineConfig{Terminator: term}
		if err := ValidateEngineConfig(&cfg); !errors.Is(err, ErrInvalidTerminator) {
			t.Fatalf("terminator %q: expected ErrInvalidTerminator, got: %v", term, err)
		}
	}
}

func TestValidateConfig_InvalidMetricsChannelSize(t *testing.T) {
	tests := []struct {
		size    int
		wantErr bool
	}{
		{0, false},
		{10, false},
		{10000, false},
		{10001, true},
		{-1, true},
	}

	for _, tt := range tests {
		cfg := DefaultConfig()
		cfg.Serial.PortName = "COM1"
		cfg.Metrics.ChannelSize = tt.size

		err := ValidateConfig(&cfg)
		if tt.wantErr && err == nil {
			t.Fatalf("metricsChannelSize=%d: expected error, got nil", tt.size)
		}
		if !tt.wantErr && err != nil {
			t.Fatalf("metricsChannelSize=%d: expected no error, got: %v", tt.size, err)
		}
	}
}

func TestValidateConfig_InvalidLogLevel(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Serial.PortName = "COM1"
	cfg.Log.Level = "loud"

	if err := ValidateConfig(&cfg); err == nil || !strings.Contains(err.Error(), "log config") {
		t.Fatalf("expected log config error, got: %v", err)
	}
}

func TestIsPortAvailable_PathTraversal(t *testing.T) {
	ok, err := isPortAvailable("../../../etc/passwd")
	if err == nil || ok {
		t.Fatal("expected error for path traversal attempt")
	}
	if !errors.Is(err, ErrInvalidPortName) || !strings.Contains(err.Error(), "path traversal") {
		t.Fatalf("expected 'path traversal' error, got: %v", err)
	}
}

func TestIsPortAvailable_InvalidPattern(t *testing.T) {
	tests := []struct {
		portName string
		wantErr  bool
	}{
		{"/tmp/malicious", true},     // Invalid path
		{"/etc/passwd", true},        // Invalid path
		{"/home/user/fake", true},    // Invalid path
		{"INVALID", true},            // Invalid pattern
		{"/dev/ttyUSB0", false},      // Valid Unix pattern (but may not exist)
		{"/dev/ttyS0", false},        // Valid Unix pattern (but may not exist)
		{"/dev/cu.usbserial", false}, // Valid macOS pattern (but may not exist)
		{"COM1", false},              // Valid Windows pattern (but may not exist)
		{"COM99", false},             // Valid Windows pattern (but may not exist)
		{"COMPORT", true},            // Invalid Windows pattern
	}

	for _, tt := range tests {
		_, err := isPortAvailable(tt.portName)
		if tt.wantErr {
			if err == nil {
				t.Fatalf("portName=%s: expected error, got nil", tt.portName)
			}
		} else {
			// For valid patterns, we expect either success or a "not found" error
			// The pattern is valid even if the port doesn't exist
			if err != nil && strings.Contains(err.Error(), "doesn't match expected pattern") {
				t.Fatalf("portName=%s: pattern should be valid, got error: %v", tt.portName, err)
			}
		}
	}
}

func TestIsValidPortPattern(t *testing.T) {
	tests := []struct {
		portName string
		want     bool
	}{
		// Valid Windows ports
		{"COM1", true},
		{"COM2", true},
		{"COM99", true},
		{"COM999", true},
		// Invalid Windows ports
		{"COMPORT", false},
		{"COM1X", false},
		{"COM1000", false}, // Too long
		{"COM", false},     // Too short (no number)
		// Valid Unix/Linux ports
		{"/dev/ttyUSB0", true},
		{"/dev/ttyS0", true},
		{"/dev/ttyACM0", true},
		{"/dev/ttyAMA0", true},
		// Valid macOS ports
		{"/dev/cu.usbserial", true},
		{"/dev/cu.usbmodem", true},
		// Invalid patterns
		{"/tmp/fake", false},
		{"/etc/passwd", false},
		{"INVALID", false},
		{"", false},
		{"/dev/null", false},
		{"/dev/zero", false},
	}

	for _, tt := range tests {
		got := isValidPortPattern(tt.portName)
		if got != tt.want {
			t.Fatalf("isValidPortPattern(%q) = %v, want %v", tt.portName, got, tt.want)
		}
	}
}
