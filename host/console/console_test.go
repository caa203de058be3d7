package console

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	"kinetis/host/serial"
)

// mockPort serves canned console text and then EOF
type mockPort struct {
	r      io.Reader
	closed bool
}

func (p *mockPort) Read(b []byte) (int, error)  { return p.r.Read(b) }
func (p *mockPort) Write(b []byte) (int, error) { return len(b), nil }
func (p *mockPort) Close() error                { p.closed = true; return nil }
func (p *mockPort) Flush() error                { return nil }

const capture = "booting\r\n" +
	"\r\n\nKernel panic at main:42:\r\n\t\"oops\"\r\n" +
	"\tKernel version 1.2.3\r\n" +
	"\r\n---| App Status |---\r\n" +
	"blink: 3 syscalls"

func TestMonitorDecodesReports(t *testing.T) {
	port := &mockPort{r: strings.NewReader(capture)}
	c := New()
	c.Attach(port)

	var echo bytes.Buffer
	if err := c.Monitor(context.Background(), &echo); err != nil {
		t.Fatalf("Monitor failed: %v", err)
	}

	if echo.String() != capture {
		t.Errorf("Unexpected echo %q", echo.String())
	}

	reports := c.Reports()
	if len(reports) != 1 {
		t.Fatalf("Expected 1 report, got %d", len(reports))
	}
	r := reports[0]
	if r.File != "main" || r.Line != 42 || r.Message != "oops" || r.Version != "1.2.3" {
		t.Errorf("Unexpected report %+v", r)
	}
	if len(r.Stats) != 1 || r.Stats[0] != "blink: 3 syscalls" {
		t.Errorf("Expected trailing stats line, got %q", r.Stats)
	}

	if err := c.Close(); err != nil || !port.closed {
		t.Errorf("Expected port closed, got %v", err)
	}
}

func TestMonitorRequiresConnection(t *testing.T) {
	c := New()
	if err := c.Monitor(context.Background(), nil); !errors.Is(err, errNotConnected) {
		t.Errorf("Expected errNotConnected, got %v", err)
	}
}

func TestMonitorStopsOnCancel(t *testing.T) {
	c := New()
	c.Attach(&mockPort{r: strings.NewReader("never read\r\n")})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var echo bytes.Buffer
	if err := c.Monitor(ctx, &echo); err != nil {
		t.Fatalf("Monitor failed: %v", err)
	}
	if echo.Len() != 0 {
		t.Errorf("Expected nothing read after cancel, got %q", echo.String())
	}
}

// idlePort delivers data once and then blocks in Read until closed, like a
// blocking tty on a silent line.
type idlePort struct {
	data   string
	sent   bool
	closed chan struct{}
	once   sync.Once
}

func newIdlePort(data string) *idlePort {
	return &idlePort{data: data, closed: make(chan struct{})}
}

func (p *idlePort) Read(b []byte) (int, error) {
	if !p.sent {
		p.sent = true
		return copy(b, p.data), nil
	}
	<-p.closed
	return 0, os.ErrClosed
}

func (p *idlePort) Write(b []byte) (int, error) { return len(b), nil }
func (p *idlePort) Close() error                { p.once.Do(func() { close(p.closed) }); return nil }
func (p *idlePort) Flush() error                { return nil }

// notifyWriter signals every write
type notifyWriter struct {
	mu    sync.Mutex
	buf   bytes.Buffer
	wrote chan struct{}
}

func (w *notifyWriter) Write(b []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.buf.Write(b)
	select {
	case w.wrote <- struct{}{}:
	default:
	}
	return len(b), nil
}

func (w *notifyWriter) String() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.buf.String()
}

func TestMonitorCancelReleasesBlockedRead(t *testing.T) {
	c := New()
	c.Attach(newIdlePort("prompt> "))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	echo := &notifyWriter{wrote: make(chan struct{}, 1)}

	done := make(chan error, 1)
	go func() { done <- c.Monitor(ctx, echo) }()

	select {
	case <-echo.wrote:
	case <-time.After(2 * time.Second):
		t.Fatal("Partial line was not echoed")
	}
	if echo.String() != "prompt> " {
		t.Errorf("Unexpected echo %q", echo.String())
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Monitor failed: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Monitor still blocked after cancel")
	}
}

// timeoutPort returns its chunks one per read, reporting a read timeout
// between them, and cancels once they are exhausted.
type timeoutPort struct {
	chunks []string
	idle   bool
	cancel context.CancelFunc
}

func (p *timeoutPort) Read(b []byte) (int, error) {
	p.idle = !p.idle
	if p.idle {
		return 0, serial.ErrTimeout
	}
	if len(p.chunks) == 0 {
		p.cancel()
		return 0, serial.ErrTimeout
	}
	n := copy(b, p.chunks[0])
	p.chunks = p.chunks[1:]
	return n, nil
}

func (p *timeoutPort) Write(b []byte) (int, error) { return len(b), nil }
func (p *timeoutPort) Close() error                { return nil }
func (p *timeoutPort) Flush() error                { return nil }

func TestMonitorTreatsTimeoutsAsIdle(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Split mid-line so the decoder has to join reads.
	half := len(capture) / 2
	port := &timeoutPort{chunks: []string{capture[:half], capture[half:]}, cancel: cancel}

	c := New()
	c.Attach(port)

	var echo bytes.Buffer
	if err := c.Monitor(ctx, &echo); err != nil {
		t.Fatalf("Monitor failed: %v", err)
	}
	if echo.String() != capture {
		t.Errorf("Unexpected echo %q", echo.String())
	}

	reports := c.Reports()
	if len(reports) != 1 || reports[0].Message != "oops" || len(reports[0].Stats) != 1 {
		t.Errorf("Expected one decoded report, got %+v", reports)
	}
}

func TestMonitorReturnsReadErrors(t *testing.T) {
	c := New()
	c.Attach(&mockPort{r: io.MultiReader(strings.NewReader("partial"), errReader{})})

	err := c.Monitor(context.Background(), nil)
	if !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Errorf("Expected wrapped read error, got %v", err)
	}
}

type errReader struct{}

func (errReader) Read([]byte) (int, error) { return 0, io.ErrUnexpectedEOF }
