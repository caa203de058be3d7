package core

// ClockDriver is the clock-gating and frequency interface of the system
// integration module.
type ClockDriver interface {
	// EnableUARTClock gates the clock on for UART index n. It must be
	// called before the UART's registers are first configured.
	EnableUARTClock(n int)

	// CoreClockHz returns the core (system) clock frequency
	CoreClockHz() uint32

	// PeripheralClockHz returns the peripheral bus clock frequency
	PeripheralClockHz() uint32
}

var clockDriver ClockDriver

// SetClockDriver is called by target-specific code to register its driver.
func SetClockDriver(d ClockDriver) {
	clockDriver = d
}

// MustClock returns the configured driver or panics if missing.
func MustClock() ClockDriver {
	if clockDriver == nil {
		panic("clock driver not configured")
	}
	return clockDriver
}
