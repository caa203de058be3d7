package uart

import (
	"kinetis/core"
	"kinetis/regs"
)

// Registry holds the single instance of every UART. It is built once at
// startup and hands each peripheral out to exactly one owner.
type Registry struct {
	uarts     [NumUARTs]UART
	taken     [NumUARTs]bool
	recovered bool
}

// NewRegistry overlays every UART register block in bank.
func NewRegistry(bank regs.Bank) *Registry {
	r := &Registry{}
	for i := range r.uarts {
		r.uarts[i] = newUART(bank, i)
	}
	return r
}

// Take hands out exclusive ownership of UART index.
func (r *Registry) Take(index int) (*UART, error) {
	if index < 0 || index >= NumUARTs {
		return nil, ErrNoSuchUART
	}

	state := core.DisableInterrupts()
	defer core.RestoreInterrupts(state)

	if r.taken[index] {
		return nil, ErrInUse
	}
	r.taken[index] = true
	return &r.uarts[index], nil
}

// Recover returns UART index regardless of who owns it. It is meant for the
// fatal fault path only, where normal execution has stopped, and succeeds
// once per registry; later calls and bad indexes return nil.
func (r *Registry) Recover(index int) *UART {
	if index < 0 || index >= NumUARTs {
		return nil
	}

	state := core.DisableInterrupts()
	defer core.RestoreInterrupts(state)

	if r.recovered {
		return nil
	}
	r.recovered = true
	r.taken[index] = true
	return &r.uarts[index]
}
