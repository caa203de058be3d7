// Package uart drives the MK66 UART peripherals in polled mode.
//
// Transmission busy-waits on the hardware status flags. There is no
// timeout on the blocking calls: a peripheral that never raises its flags
// hangs the caller. Use WaitTxEmpty and WaitTxComplete with a bound when a
// higher layer wants one.
package uart

import (
	"kinetis/core"
	"kinetis/regs"
)

// Mode is the operating mode of a UART.
type Mode uint8

const (
	// ModePolled busy-waits on status flags. It is the only supported mode.
	ModePolled Mode = iota

	// ModeInterrupt is event-driven operation. It is not implemented and
	// cannot be selected.
	ModeInterrupt
)

// ClockSource names the clock feeding a UART's baud generator.
type ClockSource uint8

const (
	CoreClock ClockSource = iota
	BusClock
)

func (c ClockSource) String() string {
	if c == CoreClock {
		return "core"
	}
	return "bus"
}

// ErrorFlags are the receive error bits of the S1 status register.
type ErrorFlags uint8

const (
	FlagOverrun ErrorFlags = 1 << iota
	FlagNoise
	FlagFraming
	FlagParity
)

// UART is one MK66 UART peripheral. Instances are built once by a Registry
// and never move.
type UART struct {
	index  int
	regs   registers
	client core.UARTClient
}

func newUART(bank regs.Bank, index int) UART {
	return UART{
		index: index,
		regs:  overlay(bank, BaseAddrs[index]),
	}
}

// Index returns the peripheral index.
func (u *UART) Index() int {
	return u.index
}

// SetClient registers the transmit completion listener, replacing any
// previous one. A nil client disables notification.
func (u *UART) SetClient(client core.UARTClient) {
	u.client = client
}

// Init configures 8-bit frames with the requested parity, stop bits and baud
// rate, then enables the receiver and transmitter. The peripheral clock is
// gated on first. Parameters are not validated.
func (u *UART) Init(params core.UARTParams) {
	core.MustClock().EnableUARTClock(u.index)

	u.setParity(params.Parity)
	u.setStopBits(params.StopBits)
	u.setBaudRate(params.BaudRate)

	u.EnableRx()
	u.EnableTx()
}

// Mode returns the current operating mode.
func (u *UART) Mode() Mode {
	return ModePolled
}

// SetMode selects an operating mode. Only ModePolled is accepted.
func (u *UART) SetMode(m Mode) error {
	if m != ModePolled {
		return ErrInterruptUnsupported
	}
	return nil
}

func (u *UART) setParity(parity core.Parity) {
	pe, pt := c1PE.Clear(), c1PT.Clear()
	switch parity {
	case core.ParityEven:
		pe = c1PE.Set()
	case core.ParityOdd:
		pe, pt = c1PE.Set(), c1PT.Set()
	}

	// C1 carries the whole frame format, so it is written in one go.
	u.regs.c1.Write(pe, pt,
		c1LOOPS.Clear(),
		c1UARTSWAI.Clear(),
		c1RSRC.Clear(),
		c1M.Clear(),
		c1WAKE.Clear(),
		c1ILT.Clear())
}

func (u *UART) setStopBits(stopBits core.StopBits) {
	sbns := bdhSBNS.Clear()
	if stopBits == core.StopBitsTwo {
		sbns = bdhSBNS.Set()
	}
	u.regs.bdh.Modify(sbns)
}

func (u *UART) setBaudRate(baudRate uint32) {
	clk := core.MustClock()
	var hz uint32
	if ClockSourceFor(u.index) == CoreClock {
		hz = clk.CoreClockHz()
	} else {
		hz = clk.PeripheralClockHz()
	}

	divisor := Divisor(hz, baudRate)

	u.regs.c4.Modify(c4BRFA.Val(0))
	u.regs.bdh.Modify(bdhSBR.Val(uint8(divisor >> 8)))
	u.regs.bdl.Set(uint8(divisor))
}

// ClockSourceFor returns the baud clock of a UART index. UART0 and UART1 run
// from the core clock, the others from the peripheral bus clock.
func ClockSourceFor(index int) ClockSource {
	switch index {
	case 0, 1:
		return CoreClock
	default:
		return BusClock
	}
}

// Divisor returns the 13-bit baud divisor for a clock and baud rate, with
// the fine-adjust field assumed zero.
func Divisor(clockHz, baudRate uint32) uint32 {
	return (clockHz >> 4) / baudRate
}

// EnableRx turns on the receiver without touching other configuration.
func (u *UART) EnableRx() {
	u.regs.c2.Modify(c2RE.Set())
}

// EnableTx turns on the transmitter without touching other configuration.
func (u *UART) EnableTx() {
	u.regs.c2.Modify(c2TE.Set())
}

// WaitTxEmpty spins until the transmit data register is empty. A limit of
// zero waits forever; otherwise it returns false after limit polls.
func (u *UART) WaitTxEmpty(limit uint32) bool {
	return regs.WaitFor(func() bool { return u.regs.s1.IsSet(s1TDRE) }, limit)
}

// WaitTxComplete spins until the transmitter is idle. A limit of zero waits
// forever; otherwise it returns false after limit polls.
func (u *UART) WaitTxComplete(limit uint32) bool {
	return regs.WaitFor(u.TxReady, limit)
}

// SendByte blocks until the data register is free and then loads b. It does
// not wait for b to leave the wire.
func (u *UART) SendByte(b byte) {
	u.WaitTxEmpty(0)
	u.regs.d.Set(b)
}

// TxReady reports whether transmission is complete right now.
func (u *UART) TxReady() bool {
	return u.regs.s1.IsSet(s1TC)
}

// ErrorFlags returns the receive error bits currently raised in S1.
func (u *UART) ErrorFlags() ErrorFlags {
	s1 := u.regs.s1
	var f ErrorFlags
	if s1.IsSet(s1OR) {
		f |= FlagOverrun
	}
	if s1.IsSet(s1NF) {
		f |= FlagNoise
	}
	if s1.IsSet(s1FE) {
		f |= FlagFraming
	}
	if s1.IsSet(s1PF) {
		f |= FlagParity
	}
	return f
}

// Transmit sends the first n bytes of buf, waits for the line to go idle and
// then notifies the client.
//
// The status passed to the client is always CommandComplete. Hardware error
// flags are not consulted; callers that care can read ErrorFlags.
func (u *UART) Transmit(buf []byte, n int) {
	for i := 0; i < n; i++ {
		u.SendByte(buf[i])
	}

	u.WaitTxComplete(0)

	if u.client != nil {
		u.client.TransmitComplete(buf, core.CommandComplete)
	}
}

// Receive is not implemented and panics with ErrNotImplemented.
func (u *UART) Receive(buf []byte, n int) {
	panic(ErrNotImplemented)
}

// HandleInterrupt is the receive/transmit vector entry point. Interrupt
// driven operation is not supported, so reaching it is a fault.
func (u *UART) HandleInterrupt() {
	panic(ErrInterruptUnsupported)
}

// HandleError is the error vector entry point. See HandleInterrupt.
func (u *UART) HandleError() {
	panic(ErrInterruptUnsupported)
}
