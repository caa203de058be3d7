// Package teensy36 is the board layer for the Teensy 3.6 (MK66FX1M0). It
// owns the diagnostic console on UART0 and the fatal fault path.
package teensy36

import (
	"io"
	"runtime"
	"strings"

	"kinetis/chip/mk66/clock"
	"kinetis/chip/mk66/gpio"
	"kinetis/chip/mk66/uart"
	"kinetis/core"
	"kinetis/regs"
)

// Version is the kernel version printed in fault reports. It is set at
// build time:
//
//	-ldflags "-X kinetis/board/teensy36.Version=1.2.3"
var Version = "unknown"

// DiagnosticUART is the UART index the console uses.
const DiagnosticUART = 0

// LED is the on-board LED, PTC5 (Arduino pin 13).
var LED = gpio.Pin(2, 5)

// Config holds the board clock tree and fault signal pin.
type Config struct {
	CoreClockHz uint32
	BusClockHz  uint32
	SignalPin   *core.GPIOPin // nil selects LED
}

// DefaultConfig returns the stock 180 MHz configuration
func DefaultConfig() Config {
	cfg := Config{}
	applyDefaults(&cfg)
	return cfg
}

// applyDefaults fills in missing configuration values
func applyDefaults(cfg *Config) {
	if cfg.CoreClockHz == 0 {
		cfg.CoreClockHz = 180000000
	}
	if cfg.BusClockHz == 0 {
		cfg.BusClockHz = 60000000
	}
	if cfg.SignalPin == nil {
		pin := LED
		cfg.SignalPin = &pin
	}
}

// Board is the process-wide set of peripherals.
type Board struct {
	cfg       Config
	uarts     *uart.Registry
	console   *Writer
	panicking bool
}

var board *Board

// Setup builds the peripheral registry over bank, registers the clock and
// GPIO drivers with core and routes core debug output to the console. It is
// called once at startup.
func Setup(bank regs.Bank, cfg Config) *Board {
	applyDefaults(&cfg)

	clk := clock.New(bank, cfg.CoreClockHz, cfg.BusClockHz)
	core.SetClockDriver(clk)
	core.SetGPIODriver(gpio.New(bank, clk))

	b := &Board{
		cfg:   cfg,
		uarts: uart.NewRegistry(bank),
	}
	board = b

	core.SetDebugWriter(func(s string) { b.Println(s) })
	return b
}

// Current returns the board built by Setup, or nil.
func Current() *Board {
	return board
}

// UARTs returns the peripheral registry. The console holds UART0 once it
// has printed anything.
func (b *Board) UARTs() *uart.Registry {
	return b.uarts
}

// Console returns the diagnostic writer, taking UART0 on first use. It
// returns nil if UART0 is owned by someone else.
func (b *Board) Console() *Writer {
	if b.console == nil {
		u, err := b.uarts.Take(DiagnosticUART)
		if err != nil {
			return nil
		}
		b.console = NewWriter(u)
	}
	return b.console
}

// Print writes s to the console.
func (b *Board) Print(s string) {
	if w := b.Console(); w != nil {
		_, _ = w.WriteString(s)
	}
}

// Println writes s and a line ending to the console.
func (b *Board) Println(s string) {
	b.Print(s + "\r\n")
}

// faultConsole returns a writer for the fault report. If the console was
// never opened, UART0 is seized from its owner.
func (b *Board) faultConsole() io.Writer {
	if b.console != nil {
		return b.console
	}
	if u := b.uarts.Recover(DiagnosticUART); u != nil {
		return NewWriter(u)
	}
	return io.Discard
}

// Panic writes the fault report and halts in the signal loop. A fault
// raised while a report is already in progress goes straight to the loop.
func (b *Board) Panic(loc Location, msg string) {
	r := &Reporter{
		GPIO:      core.MustGPIO(),
		Pin:       *b.cfg.SignalPin,
		Processes: core.Processes,
		Version:   Version,
		Signal:    DefaultSignal,
	}
	if b.panicking {
		r.Halt()
	}
	b.panicking = true

	r.Out = b.faultConsole()
	r.Panic(loc, msg)
}

// Print writes s to the board console.
func Print(s string) {
	if board != nil {
		board.Print(s)
	}
}

// Println writes s and a line ending to the board console.
func Println(s string) {
	if board != nil {
		board.Println(s)
	}
}

// Panic reports a fault at the caller's location and halts.
func Panic(msg string) {
	loc := Location{File: "unknown"}
	if _, file, line, ok := runtime.Caller(1); ok {
		loc = Location{File: file, Line: line}
	}
	halt(loc, msg)
}

// Recover turns a Go panic into a fatal fault report. Defer it at the top
// of main and of every long-running goroutine.
func Recover() {
	v := recover()
	if v == nil {
		return
	}
	halt(panicSite(), message(v))
}

func halt(loc Location, msg string) {
	if board == nil {
		for {
		}
	}
	board.Panic(loc, msg)
}

// panicSite finds the first non-runtime frame on the panicking stack.
func panicSite() Location {
	var pcs [16]uintptr
	n := runtime.Callers(3, pcs[:])
	frames := runtime.CallersFrames(pcs[:n])
	for {
		f, more := frames.Next()
		if f.Function != "" && !strings.HasPrefix(f.Function, "runtime.") {
			return Location{File: f.File, Line: f.Line}
		}
		if !more {
			break
		}
	}
	return Location{File: "unknown"}
}

func message(v any) string {
	switch m := v.(type) {
	case string:
		return m
	case error:
		return m.Error()
	case interface{ String() string }:
		return m.String()
	default:
		return "panic"
	}
}
