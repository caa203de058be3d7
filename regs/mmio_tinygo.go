//go:build tinygo

package regs

import (
	"runtime/volatile"
	"unsafe"
)

// MMIO is the bank of real memory-mapped registers.
var MMIO Bank = mmioBank{}

type mmioBank struct{}

func (mmioBank) Reg8(addr uintptr) Cell[uint8] {
	return (*volatile.Register8)(unsafe.Pointer(addr))
}

func (mmioBank) Reg32(addr uintptr) Cell[uint32] {
	return (*volatile.Register32)(unsafe.Pointer(addr))
}
