package cat

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

// Config is the complete runtime configuration of a CAT endpoint.
type Config struct {
	Serial  SerialConfig  `json:"serial" toml:"serial" yaml:"serial"`
	Engine  EngineConfig  `json:"engine" toml:"engine" yaml:"engine"`
	Log     LogConfig     `json:"log" toml:"log" yaml:"log"`
	Metrics MetricsConfig `json:"metrics" toml:"metrics" yaml:"metrics"`
}

// SerialConfig holds the settings for opening a serial port. Durations are
// in milliseconds.
type SerialConfig struct {
	PortName       string  `json:"port_name" toml:"port_name" yaml:"port_name" validate:"required"`
	BaudRate       int     `json:"baud_rate" toml:"baud_rate" yaml:"baud_rate" validate:"gt=0"`
	DataBits       int     `json:"data_bits" toml:"data_bits" yaml:"data_bits" validate:"omitempty,min=5,max=8"`
	Parity         string  `json:"parity" toml:"parity" yaml:"parity"`
	StopBits       float64 `json:"stop_bits" toml:"stop_bits" yaml:"stop_bits"`
	ReadTimeoutMS  int     `json:"read_timeout_ms" toml:"read_timeout_ms" yaml:"read_timeout_ms" validate:"gte=0"`
	WriteTimeoutMS int     `json:"write_timeout_ms" toml:"write_timeout_ms" yaml:"write_timeout_ms" validate:"gte=0"`
	IdleResetMS    int     `json:"idle_reset_ms" toml:"idle_reset_ms" yaml:"idle_reset_ms" validate:"gte=0"`
	DTR            bool    `json:"dtr" toml:"dtr" yaml:"dtr"`
	RTS            bool    `json:"rts" toml:"rts" yaml:"rts"`
	SkipPortCheck  bool    `json:"skip_port_check" toml:"skip_port_check" yaml:"skip_port_check"`
}

// ReadTimeout returns ReadTimeoutMS as a duration.
func (cfg SerialConfig) ReadTimeout() time.Duration {
	return time.Duration(cfg.ReadTimeoutMS) * time.Millisecond
}

// WriteTimeout returns WriteTimeoutMS as a duration.
func (cfg SerialConfig) WriteTimeout() time.Duration {
	return time.Duration(cfg.WriteTimeoutMS) * time.Millisecond
}

// IdleReset returns IdleResetMS as a duration.
func (cfg SerialConfig) IdleReset() time.Duration {
	return time.Duration(cfg.IdleResetMS) * time.Millisecond
}

// EngineConfig holds the command pipeline settings.
type EngineConfig struct {
	Terminator     string `json:"terminator" toml:"terminator" yaml:"terminator" validate:"omitempty,len=1"`
	MaxFrameLength int    `json:"max_frame_length" toml:"max_frame_length" yaml:"max_frame_length" validate:"gte=0,lte=65536"`
	ErrorPolicy    string `json:"error_policy" toml:"error_policy" yaml:"error_policy" validate:"omitempty,oneof=drop reply"`
	ErrorReply     string `json:"error_reply" toml:"error_reply" yaml:"error_reply"`
	AllowQuery     bool   `json:"allow_query" toml:"allow_query" yaml:"allow_query"`
}

// TerminatorByte returns the configured terminator, or ';' when unset.
func (e EngineConfig) TerminatorByte() byte {
	if e.Terminator == "" {
		return DefaultTerminator
	}
	return e.Terminator[0]
}

// ChannelOptions translates the engine settings into channel options.
func (e EngineConfig) ChannelOptions() ([]ChannelOption, error) {
	policy, err := ParseErrorPolicy(e.ErrorPolicy)
	if err != nil {
		return nil, err
	}
	opts := []ChannelOption{
		WithTerminator(e.TerminatorByte()),
		WithErrorPolicy(policy),
		WithAllowQuery(e.AllowQuery),
	}
	if e.MaxFrameLength > 0 {
		opts = append(opts, WithMaxFrameLength(e.MaxFrameLength))
	}
	if e.ErrorReply != "" {
		opts = append(opts, WithErrorReply(e.ErrorReply))
	}
	return opts, nil
}

// LogConfig controls logger construction.
type LogConfig struct {
	Level      string `json:"level" toml:"level" yaml:"level" validate:"omitempty,oneof=trace debug info warn error disabled"`
	Console    bool   `json:"console" toml:"console" yaml:"console"`
	File       string `json:"file" toml:"file" yaml:"file"`
	MaxSizeMB  int    `json:"max_size_mb" toml:"max_size_mb" yaml:"max_size_mb" validate:"gte=0"`
	MaxBackups int    `json:"max_backups" toml:"max_backups" yaml:"max_backups" validate:"gte=0"`
	MaxAgeDays int    `json:"max_age_days" toml:"max_age_days" yaml:"max_age_days" validate:"gte=0"`
	Compress   bool   `json:"compress" toml:"compress" yaml:"compress"`
}

// MetricsConfig controls the metrics broadcaster.
type MetricsConfig struct {
	IntervalMS  int `json:"interval_ms" toml:"interval_ms" yaml:"interval_ms" validate:"gte=0"`
	ChannelSize int `json:"channel_size" toml:"channel_size" yaml:"channel_size" validate:"gte=0,lte=10000"`
}

// Interval returns IntervalMS as a duration.
func (m MetricsConfig) Interval() time.Duration {
	return time.Duration(m.IntervalMS) * time.Millisecond
}

// DefaultConfig returns the settings of a stock Yaesu CAT port: 38400 baud,
// 8 data bits, no parity, 2 stop bits.
func DefaultConfig() Config {
	return Config{
		Serial: SerialConfig{
			BaudRate:      38400,
			DataBits:      8,
			Parity:        "N",
			StopBits:      2,
			ReadTimeoutMS: 100,
		},
		Engine: EngineConfig{
			Terminator:     string(DefaultTerminator),
			MaxFrameLength: DefaultMaxFrameLength,
			ErrorPolicy:    PolicyDrop.String(),
			ErrorReply:     "?",
		},
		Log: LogConfig{
			Level:      "info",
			Console:    true,
			MaxSizeMB:  10,
			MaxBackups: 3,
			MaxAgeDays: 28,
		},
		Metrics: MetricsConfig{
			IntervalMS:  5000,
			ChannelSize: 10,
		},
	}
}

// LoadConfig reads path over DefaultConfig and validates the result. The
// decoder is chosen by extension: .json, .toml, .yaml or .yml.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config load failed (%s): %w", path, err)
	}

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		err = json.Unmarshal(data, &cfg)
	case ".toml":
		err = toml.Unmarshal(data, &cfg)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &cfg)
	default:
		return Config{}, fmt.Errorf("config load failed (%s): unsupported format %q", path, ext)
	}
	if err != nil {
		return Config{}, fmt.Errorf("config parse failed (%s): %w", path, err)
	}

	if err := ValidateConfig(&cfg); err != nil {
		return Config{}, fmt.Errorf("validate config: %w", err)
	}
	return cfg, nil
}
