package uart

import "errors"

var (
	ErrNoSuchUART           = errors.New("uart: no such peripheral index")
	ErrInUse                = errors.New("uart: peripheral already taken")
	ErrNotImplemented       = errors.New("uart: receive not implemented")
	ErrInterruptUnsupported = errors.New("uart: interrupt-driven operation not supported")
)
