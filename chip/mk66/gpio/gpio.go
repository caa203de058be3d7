// Package gpio implements core.GPIODriver on the MK66 PORT and GPIO
// modules. A pin number is port*32 + bit, so PTC5 is 2*32+5.
package gpio

import (
	"errors"

	"kinetis/core"
	"kinetis/regs"
)

var (
	ErrInvalidPin = errors.New("gpio: invalid pin")
	ErrPinClaimed = errors.New("gpio: pin already claimed")
	ErrNotOutput  = errors.New("gpio: pin not claimed as output")
)

const numPorts = 5

var (
	portBase = [numPorts]uintptr{0x40049000, 0x4004A000, 0x4004B000, 0x4004C000, 0x4004D000}
	gpioBase = [numPorts]uintptr{0x400FF000, 0x400FF040, 0x400FF080, 0x400FF0C0, 0x400FF100}
)

// GPIO register offsets
const (
	offPDOR = 0x00
	offPSOR = 0x04
	offPCOR = 0x08
	offPDIR = 0x10
	offPDDR = 0x14
)

var (
	pcrMUX = regs.Field[uint32]{Pos: 8, Width: 3}
)

const (
	muxDisabled = 0
	muxGPIO     = 1
)

// Pin builds a pin number from a port index (0 = A) and bit.
func Pin(port, bit int) core.GPIOPin {
	return core.GPIOPin(port*32 + bit)
}

// PortGate gates a PORT module clock on.
type PortGate interface {
	EnablePortClock(port int)
}

// Driver controls MK66 pins.
type Driver struct {
	bank    regs.Bank
	gates   PortGate
	claimed map[core.GPIOPin]bool
}

var _ core.GPIODriver = (*Driver)(nil)

// New returns a driver over bank. gates may be nil when port clocks are
// already running.
func New(bank regs.Bank, gates PortGate) *Driver {
	return &Driver{
		bank:    bank,
		gates:   gates,
		claimed: make(map[core.GPIOPin]bool),
	}
}

func split(pin core.GPIOPin) (port int, bit uint8, err error) {
	port = int(pin / 32)
	if port >= numPorts {
		return 0, 0, ErrInvalidPin
	}
	return port, uint8(pin % 32), nil
}

func (d *Driver) pcr(port int, bit uint8) regs.RW[uint32] {
	return regs.NewRW(d.bank.Reg32(portBase[port] + uintptr(bit)*4))
}

func (d *Driver) reg(port int, off uintptr) regs.Cell[uint32] {
	return d.bank.Reg32(gpioBase[port] + off)
}

// ReleaseClaim returns the pin to the disabled mux state and drops any
// claim. It never fails.
func (d *Driver) ReleaseClaim(pin core.GPIOPin) {
	port, bit, err := split(pin)
	if err != nil {
		return
	}
	d.pcr(port, bit).Modify(pcrMUX.Val(muxDisabled))
	delete(d.claimed, pin)
}

// ClaimOutput muxes the pin to GPIO and makes it an output.
func (d *Driver) ClaimOutput(pin core.GPIOPin) error {
	port, bit, err := split(pin)
	if err != nil {
		return err
	}
	if d.claimed[pin] {
		return ErrPinClaimed
	}

	if d.gates != nil {
		d.gates.EnablePortClock(port)
	}
	d.pcr(port, bit).Modify(pcrMUX.Val(muxGPIO))

	pddr := regs.NewRW(d.reg(port, offPDDR))
	pddr.Modify(regs.Field[uint32]{Pos: bit, Width: 1}.Set())

	d.claimed[pin] = true
	return nil
}

// SetPin drives a claimed output high or low through the set/clear
// registers.
func (d *Driver) SetPin(pin core.GPIOPin, value bool) error {
	port, bit, err := split(pin)
	if err != nil {
		return err
	}
	if !d.claimed[pin] {
		return ErrNotOutput
	}

	if value {
		d.reg(port, offPSOR).Set(1 << bit)
	} else {
		d.reg(port, offPCOR).Set(1 << bit)
	}
	return nil
}

// GetPin reads the pin's input level.
func (d *Driver) GetPin(pin core.GPIOPin) (bool, error) {
	port, bit, err := split(pin)
	if err != nil {
		return false, err
	}
	return d.reg(port, offPDIR).Get()&(1<<bit) != 0, nil
}
