package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"kinetis/chip/mk66/uart"
)

var (
	baudOpts = struct {
		index  int
		coreHz uint32
		busHz  uint32
		baud   uint32
	}{}

	baudCmd = &cobra.Command{
		Use:   "baud",
		Short: "Show the divisor a UART will program for a baud rate",
		RunE: func(cmd *cobra.Command, args []string) error {
			return printBaud(cmd.OutOrStdout(), baudOpts.index, baudOpts.coreHz, baudOpts.busHz, baudOpts.baud)
		},
	}
)

func init() {
	baudCmd.Flags().IntVarP(&baudOpts.index, "index", "i", 0, "UART index (0-4)")
	baudCmd.Flags().Uint32Var(&baudOpts.coreHz, "core-hz", 180000000, "Core clock frequency")
	baudCmd.Flags().Uint32Var(&baudOpts.busHz, "bus-hz", 60000000, "Peripheral bus clock frequency")
	baudCmd.Flags().Uint32VarP(&baudOpts.baud, "baud", "b", 115200, "Requested baud rate")
}

func printBaud(w io.Writer, index int, coreHz, busHz, baud uint32) error {
	if index < 0 || index >= uart.NumUARTs {
		return uart.ErrNoSuchUART
	}
	if baud == 0 {
		return errors.New("baud rate must be positive")
	}

	src := uart.ClockSourceFor(index)
	hz := busHz
	if src == uart.CoreClock {
		hz = coreHz
	}

	div := uart.Divisor(hz, baud)
	if div == 0 || div > 0x1FFF {
		return fmt.Errorf("divisor %d out of range for %d Hz / %d baud", div, hz, baud)
	}

	actual := float64(hz) / 16 / float64(div)
	errPct := (actual - float64(baud)) / float64(baud) * 100

	fmt.Fprintf(w, "UART%d clock: %s (%d Hz)\n", index, src, hz)
	fmt.Fprintf(w, "divisor:     %d (BDH.SBR=0x%02x BDL=0x%02x)\n", div, div>>8, div&0xFF)
	fmt.Fprintf(w, "actual baud: %.1f (%+.2f%%)\n", actual, errPct)
	return nil
}
