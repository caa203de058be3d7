package serial

import (
	"errors"
	"io"
	"testing"
	"time"

	"github.com/tarm/serial"

	"kinetis/core"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig("/dev/ttyACM0")
	if cfg.Baud != 115200 || cfg.Parity != core.ParityNone || cfg.StopBits != core.StopBitsOne {
		t.Errorf("Expected 115200 8N1, got %+v", cfg)
	}
}

func TestTarmConfig(t *testing.T) {
	testCases := []struct {
		parity   core.Parity
		stopBits core.StopBits
		tParity  serial.Parity
		tStop    serial.StopBits
	}{
		{core.ParityNone, core.StopBitsOne, serial.ParityNone, serial.Stop1},
		{core.ParityEven, core.StopBitsOne, serial.ParityEven, serial.Stop1},
		{core.ParityOdd, core.StopBitsTwo, serial.ParityOdd, serial.Stop2},
	}

	for _, tc := range testCases {
		cfg := &Config{Device: "ttyX", Baud: 9600, Parity: tc.parity, StopBits: tc.stopBits, ReadTimeout: 250}
		got := tarmConfig(cfg)
		if got.Parity != tc.tParity || got.StopBits != tc.tStop {
			t.Errorf("Parity %d/stop %d mapped to %c/%d", tc.parity, tc.stopBits, got.Parity, got.StopBits)
		}
		if got.Name != "ttyX" || got.Baud != 9600 || got.Size != 8 {
			t.Errorf("Unexpected base settings %+v", got)
		}
		if got.ReadTimeout != 250*time.Millisecond {
			t.Errorf("Expected 250ms timeout, got %v", got.ReadTimeout)
		}
	}
}

func TestOpenNilConfig(t *testing.T) {
	if _, err := Open(nil); !errors.Is(err, errNilConfig) {
		t.Errorf("Expected errNilConfig, got %v", err)
	}
}

func TestReadResult(t *testing.T) {
	testCases := []struct {
		n         int
		err       error
		timeoutMs int
		expectN   int
		expectErr error
	}{
		{0, io.EOF, 100, 0, ErrTimeout},
		{0, io.EOF, 0, 0, io.EOF},
		{3, nil, 100, 3, nil},
		{2, io.EOF, 100, 2, io.EOF},
		{0, io.ErrClosedPipe, 100, 0, io.ErrClosedPipe},
	}

	for _, tc := range testCases {
		n, err := readResult(tc.n, tc.err, tc.timeoutMs)
		if n != tc.expectN || !errors.Is(err, tc.expectErr) {
			t.Errorf("readResult(%d, %v, %d) = %d, %v", tc.n, tc.err, tc.timeoutMs, n, err)
		}
	}
}
