package teensy36

import "kinetis/core"

// Diagnostic line settings.
const (
	DiagnosticBaud     = 115200
	DiagnosticStopBits = core.StopBitsOne
	DiagnosticParity   = core.ParityNone
)

// Port is the part of a UART the diagnostic writer drives.
type Port interface {
	Init(params core.UARTParams)
	EnableTx()
	SendByte(b byte)
	TxReady() bool
}

// Writer is a blocking text sink over one UART. The port is configured on
// the first write and never again. Every write returns only after the last
// byte has been clocked out.
type Writer struct {
	port        Port
	initialized bool
}

// NewWriter returns a writer over port. Nothing touches the hardware until
// the first write.
func NewWriter(port Port) *Writer {
	return &Writer{port: port}
}

func (w *Writer) setup() {
	if w.initialized {
		return
	}
	w.initialized = true
	w.port.Init(core.UARTParams{
		BaudRate: DiagnosticBaud,
		StopBits: DiagnosticStopBits,
		Parity:   DiagnosticParity,
	})
	w.port.EnableTx()
}

func (w *Writer) drain() {
	for !w.port.TxReady() {
	}
}

// Write sends p and waits for transmission to complete. It never fails.
func (w *Writer) Write(p []byte) (int, error) {
	w.setup()
	for _, c := range p {
		w.port.SendByte(c)
	}
	w.drain()
	return len(p), nil
}

// WriteString is Write without the conversion.
func (w *Writer) WriteString(s string) (int, error) {
	w.setup()
	for i := 0; i < len(s); i++ {
		w.port.SendByte(s[i])
	}
	w.drain()
	return len(s), nil
}
