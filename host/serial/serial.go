package serial

import (
	"errors"
	"io"

	"kinetis/core"
)

// Port represents a serial port interface
// This abstraction allows for different implementations:
// - Native serial (using github.com/tarm/serial)
// - Mock serial (for testing)
type Port interface {
	io.ReadWriteCloser

	// Flush flushes any buffered data
	Flush() error
}

// ErrTimeout is returned by Read when no data arrived within the read
// timeout. The port is still usable.
var ErrTimeout = errors.New("serial read timeout")

// Config holds serial port configuration
type Config struct {
	// Device path (e.g., "/dev/ttyACM0", "COM3")
	Device string

	// Baud rate (115200 for the kernel console)
	Baud int

	// Frame format; data bits are always 8
	Parity   core.Parity
	StopBits core.StopBits

	// Read timeout in milliseconds (0 = blocking). With a timeout, an idle
	// read returns ErrTimeout.
	ReadTimeout int
}

// DefaultConfig returns the kernel diagnostic console settings, 115200 8N1
func DefaultConfig(device string) *Config {
	return &Config{
		Device:      device,
		Baud:        115200,
		Parity:      core.ParityNone,
		StopBits:    core.StopBitsOne,
		ReadTimeout: 100, // 100ms read timeout
	}
}
