package cat

import (
	"fmt"
	"slices"
	"strings"
)

// AvailablePorts lists the serial ports present on the system.
func AvailablePorts() ([]string, error) {
	ports, err := getPortsList()
	if err != nil {
		return nil, err
	}
	return ports, nil
}

func isPortAvailable(portName string) (bool, error) {
	if err := checkPortName(portName); err != nil {
		return false, err
	}

	ports, err := AvailablePorts()
	if err != nil {
		return false, err
	}
	return slices.Contains(ports, portName), nil
}

func checkPortName(portName string) error {
	// Prevent path traversal
	if strings.Contains(portName, "..") {
		return fmt.Errorf("%w: contains path traversal", ErrInvalidPortName)
	}

	// On Unix: /dev/ttyXXX or /dev/cuXXX
	// On Windows: COMX
	if !isValidPortPattern(portName) {
		return fmt.Errorf("%w: doesn't match expected pattern: %s", ErrInvalidPortName, portName)
	}
	return nil
}

func isValidPortPattern(portName string) bool {
	// Windows: COM1-COM999 (must have at least one digit after COM)
	if rest, ok := strings.CutPrefix(portName, "COM"); ok && len(rest) >= 1 && len(rest) <= 3 {
		return strings.Trim(rest, "0123456789") == ""
	}
	// Unix/Linux: /dev/tty* or /dev/cu* (macOS)
	if strings.HasPrefix(portName, "/dev/tty") || strings.HasPrefix(portName, "/dev/cu") {
		return true
	}
	return false
}
