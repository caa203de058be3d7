package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"strings"

	"github.com/spf13/cobra"

	"kinetis/core"
	"kinetis/host/console"
	"kinetis/host/report"
	"kinetis/host/serial"
)

var (
	monitorOpts = struct {
		device   string
		baud     int
		parity   string
		stopBits int
		quiet    bool
	}{}

	monitorCmd = &cobra.Command{
		Use:   "monitor",
		Short: "Stream the console and decode fault reports",
		Long:  "Stream the diagnostic console to stdout. On exit, print a summary of every kernel fault report seen.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := monitorConfig()
			if err != nil {
				return err
			}

			c := console.New()
			if err := c.ConnectWithConfig(cfg); err != nil {
				return err
			}
			defer c.Close()

			log.Printf("Listening on %s at %d baud", cfg.Device, cfg.Baud)

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
			defer stop()

			var echo io.Writer = os.Stdout
			if monitorOpts.quiet {
				echo = nil
			}
			if err := c.Monitor(ctx, echo); err != nil {
				return err
			}

			printSummary(os.Stdout, c.Reports())
			return nil
		},
	}
)

func init() {
	monitorCmd.Flags().StringVarP(&monitorOpts.device, "device", "d", "/dev/ttyACM0", "Serial device path")
	monitorCmd.Flags().IntVarP(&monitorOpts.baud, "baud", "b", 115200, "Baud rate")
	monitorCmd.Flags().StringVar(&monitorOpts.parity, "parity", "none", "Parity: none, even or odd")
	monitorCmd.Flags().IntVar(&monitorOpts.stopBits, "stop-bits", 1, "Stop bits: 1 or 2")
	monitorCmd.Flags().BoolVarP(&monitorOpts.quiet, "quiet", "q", false, "Only print the fault report summary")
}

func monitorConfig() (*serial.Config, error) {
	cfg := serial.DefaultConfig(monitorOpts.device)
	cfg.Baud = monitorOpts.baud

	parity, err := parseParity(monitorOpts.parity)
	if err != nil {
		return nil, err
	}
	cfg.Parity = parity

	switch monitorOpts.stopBits {
	case 1:
		cfg.StopBits = core.StopBitsOne
	case 2:
		cfg.StopBits = core.StopBitsTwo
	default:
		return nil, fmt.Errorf("invalid stop bits %d", monitorOpts.stopBits)
	}
	return cfg, nil
}

func parseParity(s string) (core.Parity, error) {
	switch strings.ToLower(s) {
	case "none", "n":
		return core.ParityNone, nil
	case "even", "e":
		return core.ParityEven, nil
	case "odd", "o":
		return core.ParityOdd, nil
	default:
		return 0, fmt.Errorf("invalid parity %q", s)
	}
}

func printSummary(w io.Writer, reports []report.Report) {
	if len(reports) == 0 {
		fmt.Fprintln(w, "No kernel fault reports captured.")
		return
	}

	fmt.Fprintf(w, "\n%d kernel fault report(s):\n", len(reports))
	for i, r := range reports {
		fmt.Fprintf(w, "  #%d %s:%d %q (kernel %s)\n", i+1, r.File, r.Line, r.Message, r.Version)
		if !r.Complete {
			fmt.Fprintln(w, "     report truncated")
		}
		for _, line := range r.Fault {
			fmt.Fprintf(w, "     fault: %s\n", line)
		}
		for _, line := range r.Stats {
			fmt.Fprintf(w, "     stats: %s\n", line)
		}
	}
}
