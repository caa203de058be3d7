package teensy36

import (
	"testing"

	"kinetis/core"
)

// fakePort counts configuration calls and makes TxReady report busy for a
// few polls after every byte.
type fakePort struct {
	inits     []core.UARTParams
	txEnables int
	sent      []byte
	busy      int
	polls     int
}

func (p *fakePort) Init(params core.UARTParams) { p.inits = append(p.inits, params) }
func (p *fakePort) EnableTx()                   { p.txEnables++ }

func (p *fakePort) SendByte(b byte) {
	p.sent = append(p.sent, b)
	p.busy = 3
}

func (p *fakePort) TxReady() bool {
	p.polls++
	if p.busy > 0 {
		p.busy--
		return false
	}
	return true
}

func TestWriterConfiguresOnce(t *testing.T) {
	port := &fakePort{}
	w := NewWriter(port)

	if len(port.inits) != 0 {
		t.Fatal("Expected no configuration before the first write")
	}

	w.WriteString("a")
	w.Write([]byte("bc"))
	w.WriteString("")
	w.Write(nil)
	w.WriteString("d")

	if len(port.inits) != 1 {
		t.Fatalf("Expected 1 Init, got %d", len(port.inits))
	}
	expected := core.UARTParams{BaudRate: 115200, StopBits: core.StopBitsOne, Parity: core.ParityNone}
	if port.inits[0] != expected {
		t.Errorf("Expected %+v, got %+v", expected, port.inits[0])
	}
	if port.txEnables != 1 {
		t.Errorf("Expected 1 EnableTx, got %d", port.txEnables)
	}
	if string(port.sent) != "abcd" {
		t.Errorf("Expected \"abcd\", got %q", port.sent)
	}
}

func TestWriterConfiguresOnEmptyFirstWrite(t *testing.T) {
	port := &fakePort{}
	w := NewWriter(port)
	w.WriteString("")

	if len(port.inits) != 1 {
		t.Errorf("Expected Init on the first call even when empty, got %d", len(port.inits))
	}
}

func TestWriterDrainsBeforeReturning(t *testing.T) {
	port := &fakePort{}
	w := NewWriter(port)

	n, err := w.WriteString("hi")
	if err != nil || n != 2 {
		t.Fatalf("Expected (2, nil), got (%d, %v)", n, err)
	}
	if port.busy != 0 {
		t.Error("Write returned while the transmitter was still busy")
	}
	if port.polls != 4 {
		t.Errorf("Expected 4 TxReady polls, got %d", port.polls)
	}
}
