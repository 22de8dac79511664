package cat

import (
	"fmt"
	"slices"
	"strings"

	gobug "go.bug.st/serial"
)

// validBaudRates lists the line speeds Yaesu rigs offer for CAT.
var validBaudRates = []int{1200, 2400, 4800, 9600, 19200, 38400, 57600, 115200, 230400, 460800, 921600}

// parseParity maps the usual single letter parity names onto serial.Parity.
func parseParity(s string) (gobug.Parity, error) {
	switch strings.ToUpper(s) {
	case "", "N", "NONE":
		return gobug.NoParity, nil
	case "O", "ODD":
		return gobug.OddParity, nil
	case "E", "EVEN":
		return gobug.EvenParity, nil
	case "M", "MARK":
		return gobug.MarkParity, nil
	case "S", "SPACE":
		return gobug.SpaceParity, nil
	default:
		return gobug.NoParity, fmt.Errorf("invalid parity value: %q", s)
	}
}

func parseStopBits(f float64) (gobug.StopBits, error) {
	switch f {
	case 0, 1:
		return gobug.OneStopBit, nil
	case 1.5:
		return gobug.OnePointFiveStopBits, nil
	case 2:
		return gobug.TwoStopBits, nil
	default:
		return gobug.OneStopBit, fmt.Errorf("stop bits must be 1, 1.5, or 2, got: %.1f", f)
	}
}

// Mode converts the line settings to a serial.Mode. Zero data bits means 8.
func (cfg SerialConfig) Mode() (*gobug.Mode, error) {
	if !slices.Contains(validBaudRates, cfg.BaudRate) {
		return nil, fmt.Errorf("invalid baud rate %d, must be one of: %v", cfg.BaudRate, validBaudRates)
	}
	dataBits := cfg.DataBits
	if dataBits == 0 {
		dataBits = 8
	}
	if dataBits < 5 || dataBits > 8 {
		return nil, fmt.Errorf("data bits must be 5-8, got: %d", dataBits)
	}
	parity, err := parseParity(cfg.Parity)
	if err != nil {
		return nil, err
	}
	stopBits, err := parseStopBits(cfg.StopBits)
	if err != nil {
		return nil, err
	}
	return &gobug.Mode{
		BaudRate: cfg.BaudRate,
		DataBits: dataBits,
		Parity:   parity,
		StopBits: stopBits,
	}, nil
}
