// Package console captures the kernel's diagnostic UART on the host and
// decodes fault reports out of it.
package console

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"

	"kinetis/host/report"
	"kinetis/host/serial"
)

var errNotConnected = errors.New("not connected to console")

// Console is a connection to a board's diagnostic UART
type Console struct {
	// Serial port
	port serial.Port

	// Fault report decoder fed with every captured line
	decoder *report.Decoder

	// Connection state
	connected bool
}

// New creates a new console (not yet connected)
func New() *Console {
	return &Console{
		decoder: report.NewDecoder(),
	}
}

// Connect opens device with the kernel's 115200 8N1 console settings
func (c *Console) Connect(device string) error {
	return c.ConnectWithConfig(serial.DefaultConfig(device))
}

// ConnectWithConfig opens the console with a custom serial config
func (c *Console) ConnectWithConfig(cfg *serial.Config) error {
	port, err := serial.Open(cfg)
	if err != nil {
		return fmt.Errorf("failed to open serial port: %w", err)
	}
	c.Attach(port)
	return nil
}

// Attach uses an already open port
func (c *Console) Attach(port serial.Port) {
	c.port = port
	c.connected = true
}

// Close closes the connection
func (c *Console) Close() error {
	c.connected = false
	if c.port != nil {
		return c.port.Close()
	}
	return nil
}

// Monitor copies console output to echo as it arrives and decodes fault
// reports until ctx is done or the port reaches EOF. Read timeouts are idle
// polls; cancelling ctx also closes the port to release a blocked read.
func (c *Console) Monitor(ctx context.Context, echo io.Writer) error {
	if !c.connected {
		return errNotConnected
	}
	defer c.decoder.Flush()

	stop := make(chan struct{})
	defer close(stop)
	go func() {
		select {
		case <-ctx.Done():
			_ = c.Close()
		case <-stop:
		}
	}()

	buf := make([]byte, 256)
	var pending []byte
	for ctx.Err() == nil {
		n, err := c.port.Read(buf)
		if n > 0 {
			if echo != nil {
				if _, werr := echo.Write(buf[:n]); werr != nil {
					return fmt.Errorf("echo console output: %w", werr)
				}
			}
			pending = c.feedLines(append(pending, buf[:n]...))
		}

		if err == nil || errors.Is(err, serial.ErrTimeout) {
			continue
		}
		if errors.Is(err, io.EOF) || ctx.Err() != nil {
			break
		}
		c.feedPending(pending)
		return fmt.Errorf("read console: %w", err)
	}

	c.feedPending(pending)
	return nil
}

// feedLines decodes every complete line in data and returns the unterminated
// remainder.
func (c *Console) feedLines(data []byte) []byte {
	for {
		i := bytes.IndexByte(data, '\n')
		if i < 0 {
			return data
		}
		c.decoder.Feed(trimEOL(string(data[:i])))
		data = data[i+1:]
	}
}

func (c *Console) feedPending(pending []byte) {
	if len(pending) > 0 {
		c.decoder.Feed(trimEOL(string(pending)))
	}
}

// Reports returns the fault reports decoded so far
func (c *Console) Reports() []report.Report {
	return c.decoder.Reports()
}

func trimEOL(s string) string {
	for len(s) > 0 && (s[len(s)-1] == '\n' || s[len(s)-1] == '\r') {
		s = s[:len(s)-1]
	}
	return s
}
