package uart

import "kinetis/regs"

// NumUARTs is the number of UART peripherals on the MK66.
const NumUARTs = 5

// BaseAddrs maps a UART index to its register block.
var BaseAddrs = [NumUARTs]uintptr{
	0x4006A000, // UART0
	0x4006B000, // UART1
	0x4006C000, // UART2
	0x4006D000, // UART3
	0x400EA000, // UART4
}

// Register offsets from the block base.
const (
	OffsetBDH = 0x00
	OffsetBDL = 0x01
	OffsetC1  = 0x02
	OffsetC2  = 0x03
	OffsetS1  = 0x04
	OffsetD   = 0x07
	OffsetC4  = 0x0A
)

type field = regs.Field[uint8]

// BDH: baud rate high and stop bit select
var (
	bdhSBNS = field{Pos: 5, Width: 1} // 0 = one stop bit, 1 = two
	bdhSBR  = field{Pos: 0, Width: 5} // divisor bits 12:8
)

// C1: frame format
var (
	c1LOOPS    = field{Pos: 7, Width: 1}
	c1UARTSWAI = field{Pos: 6, Width: 1}
	c1RSRC     = field{Pos: 5, Width: 1}
	c1M        = field{Pos: 4, Width: 1} // 0 = 8-bit data
	c1WAKE     = field{Pos: 3, Width: 1} // 0 = idle line wakeup
	c1ILT      = field{Pos: 2, Width: 1} // 0 = idle count starts after start bit
	c1PE       = field{Pos: 1, Width: 1}
	c1PT       = field{Pos: 0, Width: 1} // 0 = even, 1 = odd
)

// C2: data path enables
var (
	c2TE = field{Pos: 3, Width: 1}
	c2RE = field{Pos: 2, Width: 1}
)

// S1: status (read-only)
var (
	s1TDRE = field{Pos: 7, Width: 1}
	s1TC   = field{Pos: 6, Width: 1}
	s1OR   = field{Pos: 3, Width: 1}
	s1NF   = field{Pos: 2, Width: 1}
	s1FE   = field{Pos: 1, Width: 1}
	s1PF   = field{Pos: 0, Width: 1}
)

// C4: baud fine adjust
var c4BRFA = field{Pos: 0, Width: 5}

// registers is the overlay of one UART register block. The status register
// is read-only by type.
type registers struct {
	bdh regs.RW[uint8]
	bdl regs.RW[uint8]
	c1  regs.RW[uint8]
	c2  regs.RW[uint8]
	s1  regs.RO[uint8]
	d   regs.RW[uint8]
	c4  regs.RW[uint8]
}

func overlay(bank regs.Bank, base uintptr) registers {
	return registers{
		bdh: regs.NewRW(bank.Reg8(base + OffsetBDH)),
		bdl: regs.NewRW(bank.Reg8(base + OffsetBDL)),
		c1:  regs.NewRW(bank.Reg8(base + OffsetC1)),
		c2:  regs.NewRW(bank.Reg8(base + OffsetC2)),
		s1:  regs.NewRO(bank.Reg8(base + OffsetS1)),
		d:   regs.NewRW(bank.Reg8(base + OffsetD)),
		c4:  regs.NewRW(bank.Reg8(base + OffsetC4)),
	}
}
