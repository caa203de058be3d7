//go:build !wasm

package serial

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/tarm/serial"

	"kinetis/core"
)

var errNilConfig = errors.New("config cannot be nil")

// NativePort wraps the tarm/serial implementation
type NativePort struct {
	port *serial.Port
	cfg  *Config
}

// tarmConfig translates a Config into tarm/serial settings
func tarmConfig(cfg *Config) *serial.Config {
	parity := serial.ParityNone
	switch cfg.Parity {
	case core.ParityEven:
		parity = serial.ParityEven
	case core.ParityOdd:
		parity = serial.ParityOdd
	}

	stopBits := serial.Stop1
	if cfg.StopBits == core.StopBitsTwo {
		stopBits = serial.Stop2
	}

	return &serial.Config{
		Name:        cfg.Device,
		Baud:        cfg.Baud,
		ReadTimeout: time.Duration(cfg.ReadTimeout) * time.Millisecond,
		Size:        8,
		Parity:      parity,
		StopBits:    stopBits,
	}
}

// Open opens a native serial port
func Open(cfg *Config) (Port, error) {
	if cfg == nil {
		return nil, errNilConfig
	}

	port, err := serial.OpenPort(tarmConfig(cfg))
	if err != nil {
		return nil, fmt.Errorf("failed to open serial port %s: %w", cfg.Device, err)
	}

	return &NativePort{
		port: port,
		cfg:  cfg,
	}, nil
}

// Read reads data from the serial port. An idle line returns ErrTimeout
// once the read timeout expires.
func (p *NativePort) Read(b []byte) (int, error) {
	n, err := p.port.Read(b)
	return readResult(n, err, p.cfg.ReadTimeout)
}

// readResult maps tarm/serial's (0, io.EOF) timeout report to ErrTimeout.
func readResult(n int, err error, timeoutMs int) (int, error) {
	if n == 0 && timeoutMs > 0 && errors.Is(err, io.EOF) {
		return 0, ErrTimeout
	}
	return n, err
}

// Write writes data to the serial port
func (p *NativePort) Write(b []byte) (int, error) {
	return p.port.Write(b)
}

// Close closes the serial port
func (p *NativePort) Close() error {
	if p.port != nil {
		return p.port.Close()
	}
	return nil
}

// Flush discards data received but not yet read
func (p *NativePort) Flush() error {
	return p.port.Flush()
}
