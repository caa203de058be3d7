//go:build tinygo && teensy36

package main

import (
	"io"

	"kinetis/board/teensy36"
	"kinetis/chip/mk66/uart"
	"kinetis/core"
	"kinetis/regs"
)

// Auxiliary link on UART1 (Teensy pins 0/1).
const auxUART = 1

var (
	aux      *uart.UART
	greeting = []byte("aux link up\r\n")

	sent      uint32
	completed uint32
	lastError core.ErrorCode
)

// heartbeat reports link counters in the fault report.
type heartbeat struct{}

func (heartbeat) FaultString(w io.Writer) {
	flags := uint64(0)
	if aux != nil {
		flags = uint64(aux.ErrorFlags())
	}
	io.WriteString(w, "\tlast aux status: "+lastError.String()+
		" flags="+core.Hex(flags)+"\r\n")
}

func (heartbeat) StatisticsString(w io.Writer) {
	io.WriteString(w, "heartbeat: sent="+core.Utoa(uint64(sent))+
		" completed="+core.Utoa(uint64(completed))+"\r\n")
}

func main() {
	defer teensy36.Recover()

	b := teensy36.Setup(regs.MMIO, teensy36.DefaultConfig())
	core.SetDebugEnabled(true)
	core.SetProcessTable(func() []core.Process {
		return []core.Process{heartbeat{}}
	})

	teensy36.Println("kinetis kernel " + teensy36.Version)

	u, err := b.UARTs().Take(auxUART)
	if err != nil {
		teensy36.Panic("aux uart: " + err.Error())
	}
	aux = u
	aux.SetClient(core.UARTClientFunc(func(buf []byte, status core.ErrorCode) {
		completed++
		lastError = status
	}))
	aux.Init(core.UARTParams{
		BaudRate: 115200,
		StopBits: core.StopBitsOne,
		Parity:   core.ParityNone,
	})

	for {
		sent++
		aux.Transmit(greeting, len(greeting))
		core.DebugPrintln("heartbeat " + core.Utoa(uint64(sent)))
		spin(18000000)
	}
}

//go:noinline
func spin(n uint32) {
	for i := uint32(0); i < n; i++ {
	}
}
