// Package regs provides typed overlays onto memory-mapped peripheral
// registers. A register is either read-write (RW) or read-only (RO); the
// type decides which operations are available, so a status register cannot
// be written by accident.
//
// No operation takes a lock. Callers must not touch one register block from
// more than one execution context at a time.
package regs

import "golang.org/x/exp/constraints"

// Word is the storage type of a register.
type Word interface {
	constraints.Unsigned
}

// Cell is a single hardware register. TinyGo's volatile.Register8 and
// volatile.Register32 satisfy it directly.
type Cell[T Word] interface {
	Get() T
	Set(value T)
}

// Bank resolves physical addresses to register cells.
type Bank interface {
	Reg8(addr uintptr) Cell[uint8]
	Reg32(addr uintptr) Cell[uint32]
}

// Field describes a contiguous bit-field inside a register.
type Field[T Word] struct {
	Pos   uint8 // Least significant bit
	Width uint8 // Number of bits
}

// Mask returns the field's bits in register position.
func (f Field[T]) Mask() T {
	return ((T(1) << f.Width) - 1) << f.Pos
}

// Val encodes v into the field. Bits of v wider than the field are dropped.
func (f Field[T]) Val(v T) FieldValue[T] {
	mask := f.Mask()
	return FieldValue[T]{Mask: mask, Value: (v << f.Pos) & mask}
}

// Set encodes the field with every bit set.
func (f Field[T]) Set() FieldValue[T] {
	return FieldValue[T]{Mask: f.Mask(), Value: f.Mask()}
}

// Clear encodes the field with every bit cleared.
func (f Field[T]) Clear() FieldValue[T] {
	return FieldValue[T]{Mask: f.Mask()}
}

// FieldValue is an encoded field ready to be written. Values for different
// fields of the same register can be combined in one Write or Modify.
type FieldValue[T Word] struct {
	Mask  T
	Value T
}

func compose[T Word](values []FieldValue[T]) (mask, value T) {
	for _, fv := range values {
		mask |= fv.Mask
		value = (value &^ fv.Mask) | fv.Value
	}
	return mask, value
}

// RW is a read-write register.
type RW[T Word] struct {
	cell Cell[T]
}

// NewRW overlays a read-write register on cell.
func NewRW[T Word](cell Cell[T]) RW[T] {
	return RW[T]{cell: cell}
}

// Get returns the raw register value.
func (r RW[T]) Get() T { return r.cell.Get() }

// Set overwrites the whole register with a raw value.
func (r RW[T]) Set(value T) { r.cell.Set(value) }

// Read returns the value of one field, shifted down to bit 0.
func (r RW[T]) Read(f Field[T]) T {
	return (r.cell.Get() & f.Mask()) >> f.Pos
}

// IsSet reports whether any bit of the field is set.
func (r RW[T]) IsSet(f Field[T]) bool {
	return r.cell.Get()&f.Mask() != 0
}

// Write overwrites the whole register with the composed field values. Bits
// not covered by any value are written as zero.
func (r RW[T]) Write(values ...FieldValue[T]) {
	_, value := compose(values)
	r.cell.Set(value)
}

// Modify replaces only the bits of the given fields and preserves the rest.
func (r RW[T]) Modify(values ...FieldValue[T]) {
	mask, value := compose(values)
	r.cell.Set((r.cell.Get() &^ mask) | value)
}

// RO is a read-only register.
type RO[T Word] struct {
	cell Cell[T]
}

// NewRO overlays a read-only register on cell.
func NewRO[T Word](cell Cell[T]) RO[T] {
	return RO[T]{cell: cell}
}

// Get returns the raw register value.
func (r RO[T]) Get() T { return r.cell.Get() }

// Read returns the value of one field, shifted down to bit 0.
func (r RO[T]) Read(f Field[T]) T {
	return (r.cell.Get() & f.Mask()) >> f.Pos
}

// IsSet reports whether any bit of the field is set.
func (r RO[T]) IsSet(f Field[T]) bool {
	return r.cell.Get()&f.Mask() != 0
}

// WaitFor spins until cond returns true. A limit of zero polls forever;
// otherwise WaitFor gives up after limit polls and returns false.
func WaitFor(cond func() bool, limit uint32) bool {
	if limit == 0 {
		for !cond() {
		}
		return true
	}
	for i := uint32(0); i < limit; i++ {
		if cond() {
			return true
		}
	}
	return false
}
