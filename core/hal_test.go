package core

import (
	"io"
	"testing"
)

type stubProcess struct{ name string }

func (p *stubProcess) FaultString(w io.Writer)      { io.WriteString(w, p.name+" fault") }
func (p *stubProcess) StatisticsString(w io.Writer) { io.WriteString(w, p.name+" stats") }

func TestProcessesWithoutTable(t *testing.T) {
	SetProcessTable(nil)
	if procs := Processes(); procs != nil {
		t.Errorf("Expected nil slots, got %v", procs)
	}
}

func TestProcessesFromTable(t *testing.T) {
	defer SetProcessTable(nil)

	slots := []Process{&stubProcess{name: "blink"}, nil}
	SetProcessTable(func() []Process { return slots })

	procs := Processes()
	if len(procs) != 2 {
		t.Fatalf("Expected 2 slots, got %d", len(procs))
	}
	if procs[1] != nil {
		t.Error("Expected slot 1 to be empty")
	}
}

func TestMustClockPanicsWhenMissing(t *testing.T) {
	SetClockDriver(nil)
	defer func() {
		if recover() == nil {
			t.Error("Expected MustClock to panic without a driver")
		}
	}()
	MustClock()
}

func TestDebugPrintlnRespectsEnable(t *testing.T) {
	var got []string
	SetDebugWriter(func(s string) { got = append(got, s) })
	defer SetDebugWriter(func(string) {})

	SetDebugEnabled(false)
	DebugPrintln("hidden")
	SetDebugEnabled(true)
	DebugPrintln("shown")
	SetDebugEnabled(false)

	if len(got) != 1 || got[0] != "shown" {
		t.Errorf("Expected only \"shown\", got %v", got)
	}
}

func TestErrorCodeString(t *testing.T) {
	if CommandComplete.String() != "command complete" {
		t.Errorf("Unexpected string %q", CommandComplete.String())
	}
	if ErrorCode(99).String() != "unknown error 99" {
		t.Errorf("Unexpected string %q", ErrorCode(99).String())
	}
}
