// Package clock implements clock gating for the MK66 System Integration
// Module (SIM).
package clock

import (
	"kinetis/core"
	"kinetis/regs"
)

// SIM clock gate register addresses.
const (
	SCGC1 = 0x40048028
	SCGC4 = 0x40048034
	SCGC5 = 0x40048038
)

type gate struct {
	addr uintptr
	bit  uint8
}

var uartGates = [...]gate{
	{SCGC4, 10}, // UART0
	{SCGC4, 11}, // UART1
	{SCGC4, 12}, // UART2
	{SCGC4, 13}, // UART3
	{SCGC1, 10}, // UART4
}

// PORTA..PORTE in SCGC5
const portGateBit = 9

// Gate gates peripheral clocks on and reports the fixed clock tree
// frequencies. It implements core.ClockDriver.
type Gate struct {
	bank   regs.Bank
	coreHz uint32
	busHz  uint32
}

var _ core.ClockDriver = (*Gate)(nil)

// New returns a Gate for a clock tree running at the given frequencies.
func New(bank regs.Bank, coreHz, busHz uint32) *Gate {
	return &Gate{bank: bank, coreHz: coreHz, busHz: busHz}
}

func (g *Gate) enable(gt gate) {
	r := regs.NewRW(g.bank.Reg32(gt.addr))
	r.Modify(regs.Field[uint32]{Pos: gt.bit, Width: 1}.Set())
}

// EnableUARTClock gates UART n on. Indexes outside the chip are ignored.
func (g *Gate) EnableUARTClock(n int) {
	if n < 0 || n >= len(uartGates) {
		return
	}
	g.enable(uartGates[n])
}

// EnablePortClock gates PORT module port (0 = PORTA) on. Pin muxing and
// GPIO access need it.
func (g *Gate) EnablePortClock(port int) {
	if port < 0 || port > 4 {
		return
	}
	g.enable(gate{SCGC5, uint8(portGateBit + port)})
}

// CoreClockHz implements core.ClockDriver.
func (g *Gate) CoreClockHz() uint32 { return g.coreHz }

// PeripheralClockHz implements core.ClockDriver.
func (g *Gate) PeripheralClockHz() uint32 { return g.busHz }
