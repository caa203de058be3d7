package core

import "io"

// Process is the view of a running process that fault reporting needs.
// Both methods write free-form text; the caller does not interpret it.
type Process interface {
	FaultString(w io.Writer)
	StatisticsString(w io.Writer)
}

// ProcessTable returns the process slots in slot order. An empty slot is a
// nil interface value.
type ProcessTable func() []Process

var processTable ProcessTable

// SetProcessTable is called by the process subsystem to expose its slots.
func SetProcessTable(t ProcessTable) {
	processTable = t
}

// Processes returns the current process slots, or nil when no process
// subsystem has registered.
func Processes() []Process {
	if processTable == nil {
		return nil
	}
	return processTable()
}
