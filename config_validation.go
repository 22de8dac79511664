package cat

import (
	"fmt"
	"slices"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

func structValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
	})
	return validate
}

// ValidateConfig validates a complete configuration.
func ValidateConfig(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("config cannot be nil")
	}
	if err := ValidateSerialConfig(&cfg.Serial); err != nil {
		return err
	}
	if err := ValidateEngineConfig(&cfg.Engine); err != nil {
		return err
	}
	if err := structValidator().Struct(&cfg.Log); err != nil {
		return fmt.Errorf("log config: %w", err)
	}
	if err := structValidator().Struct(&cfg.Metrics); err != nil {
		return fmt.Errorf("metrics config: %w", err)
	}
	if cfg.Metrics.ChannelSize > 10000 {
		return fmt.Errorf("metrics channel size too large (max 10000): %d", cfg.Metrics.ChannelSize)
	}
	return nil
}

// ValidateSerialConfig validates serial port configuration parameters.
func ValidateSerialConfig(cfg *SerialConfig) error {
	// Validate port name
	if cfg.PortName == "" {
		return fmt.Errorf("port name cannot be empty")
	}

	// Validate baud rate
	if !slices.Contains(validBaudRates, cfg.BaudRate) {
		return fmt.Errorf("invalid baud rate %d, must be one of: %v", cfg.BaudRate, validBaudRates)
	}

	// Validate data bits
	if cfg.DataBits != 0 && (cfg.DataBits < 5 || cfg.DataBits > 8) {
		return fmt.Errorf("data bits must be 5-8, got: %d", cfg.DataBits)
	}

	if _, err := parseParity(cfg.Parity); err != nil {
		return err
	}
	if _, err := parseStopBits(cfg.StopBits); err != nil {
		return err
	}

	// Validate timeouts
	if cfg.ReadTimeoutMS < 0 {
		return fmt.Errorf("read timeout cannot be negative: %d", cfg.ReadTimeoutMS)
	}
	if cfg.WriteTimeoutMS < 0 {
		return fmt.Errorf("write timeout cannot be negative: %d", cfg.WriteTimeoutMS)
	}
	if cfg.IdleResetMS < 0 {
		return fmt.Errorf("idle reset cannot be negative: %d", cfg.IdleResetMS)
	}

	if err := structValidator().Struct(cfg); err != nil {
		return fmt.Errorf("serial config: %w", err)
	}
	return nil
}

// ValidateEngineConfig validates the command pipeline settings.
func ValidateEngineConfig(cfg *EngineConfig) error {
	if len(cfg.Terminator) > 1 {
		return fmt.Errorf("terminator must be a single byte, got: %q", cfg.Terminator)
	}
	if t := cfg.TerminatorByte(); t < 0x20 || t > 0x7e || !validTerminator(t) {
		return fmt.Errorf("%w: %q must be printable ASCII and not a letter or digit", ErrInvalidTerminator, t)
	}
	if cfg.MaxFrameLength < 0 {
		return fmt.Errorf("max frame length cannot be negative: %d", cfg.MaxFrameLength)
	}
	if _, err := ParseErrorPolicy(cfg.ErrorPolicy); err != nil {
		return err
	}
	for i := 0; i < len(cfg.ErrorReply); i++ {
		if cfg.ErrorReply[i] == cfg.TerminatorByte() {
			return fmt.Errorf("error reply %q: %w", cfg.ErrorReply, ErrInvalidReply)
		}
	}

	if err := structValidator().Struct(cfg); err != nil {
		return fmt.Errorf("engine config: %w", err)
	}
	return nil
}
