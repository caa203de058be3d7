//go:build tinygo

package core

import "runtime/interrupt"

// InterruptState is the saved interrupt mask
type InterruptState = interrupt.State

// DisableInterrupts disables interrupts and returns the previous state
func DisableInterrupts() InterruptState {
	return interrupt.Disable()
}

// RestoreInterrupts restores the interrupt state
func RestoreInterrupts(state InterruptState) {
	interrupt.Restore(state)
}
