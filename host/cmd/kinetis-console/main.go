package main

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "kinetis-console",
	Short: "Host tools for the kernel diagnostic console",
	Long:  "Capture the kernel's diagnostic UART, decode fault reports and check baud divisors.",
}

func init() {
	rootCmd.AddCommand(monitorCmd)
	rootCmd.AddCommand(baudCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
