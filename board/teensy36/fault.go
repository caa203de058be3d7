package teensy36

import (
	"io"

	"kinetis/core"
)

// Location is where a fault was raised.
type Location struct {
	File string
	Line int
}

// Phase is one step of the panic signal: the pin is driven to Level Count
// times in a row. Counts are loop iterations, not time.
type Phase struct {
	Level bool
	Count uint32
}

// DefaultSignal is clear, short set, clear, medium set.
var DefaultSignal = [4]Phase{
	{Level: false, Count: 1000000},
	{Level: true, Count: 100000},
	{Level: false, Count: 1000000},
	{Level: true, Count: 500000},
}

const appStatusHeader = "\r\n---| App Status |---\r\n"

// Reporter writes the fatal fault report and then signals on a pin
// forever.
type Reporter struct {
	Out       io.Writer
	GPIO      core.GPIODriver
	Pin       core.GPIOPin
	Processes func() []core.Process
	Version   string
	Signal    [4]Phase
}

// Report writes the fault report to r.Out. Write errors are ignored so
// that every section is attempted.
func (r *Reporter) Report(loc Location, msg string) {
	w := r.Out

	_, _ = io.WriteString(w, "\r\n\nKernel panic at "+loc.File+":"+core.Itoa(loc.Line)+":\r\n\t\"")
	_, _ = io.WriteString(w, msg)
	_, _ = io.WriteString(w, "\"\r\n")

	_, _ = io.WriteString(w, "\tKernel version "+r.Version+"\r\n")

	var procs []core.Process
	if r.Processes != nil {
		procs = r.Processes()
	}

	// Fault status is only printed for the first slot.
	if len(procs) > 0 && procs[0] != nil {
		procs[0].FaultString(w)
	}

	_, _ = io.WriteString(w, appStatusHeader)
	for _, p := range procs {
		if p != nil {
			p.StatisticsString(w)
		}
	}
}

// Halt takes the signal pin from its current owner and blinks it forever.
// It never returns.
func (r *Reporter) Halt() {
	r.GPIO.ReleaseClaim(r.Pin)
	_ = r.GPIO.ClaimOutput(r.Pin)

	pattern := r.Signal
	if pattern == ([4]Phase{}) {
		pattern = DefaultSignal
	}

	for {
		for _, ph := range pattern {
			for i := uint32(0); i < ph.Count; i++ {
				_ = r.GPIO.SetPin(r.Pin, ph.Level)
			}
		}
	}
}

// Panic reports the fault and halts. It never returns.
func (r *Reporter) Panic(loc Location, msg string) {
	r.Report(loc, msg)
	r.Halt()
}
