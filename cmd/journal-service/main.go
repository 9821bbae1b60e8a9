package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "journal-service",
	Short: "Crypto trading journal with live PnL, calendar and reports",
}

// @title Crypto Journal API
// @version 1.0
// @description Records spot and futures trades, computes PnL/ROI and exports journal reports.
// @BasePath /api/v1
func main() {
	serveCmd.Flags().StringVarP(&configPath, "config", "c", "configs/config-journal.yaml", "Path to the configuration file")
	registerCalcFlags(calcCmd)

	rootCmd.AddCommand(serveCmd, calcCmd)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error executing journal-service CLI: %s\n", err)
		os.Exit(1)
	}
}
