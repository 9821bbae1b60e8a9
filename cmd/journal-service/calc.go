package main

import (
	"fmt"
	"strings"

	"golang-crypto-journal/internal/entity"
	"golang-crypto-journal/internal/journal/engine"

	"github.com/spf13/cobra"
)

var calcInput engine.RawInput

var calcCmd = &cobra.Command{
	Use:   "calc",
	Short: "Calculates PnL and ROI for a single position",
	Example: `  journal-service calc --entry 100 --exit 110 --principal 1000
  journal-service calc --kind futures --direction short --entry 100 --exit 90 --principal 50 --leverage 10`,
	RunE: runCalc,
}

func registerCalcFlags(cmd *cobra.Command) {
	cmd.Flags().String("kind", "spot", "Position kind: spot or futures")
	cmd.Flags().String("direction", "long", "Futures direction: long or short")
	cmd.Flags().StringVar(&calcInput.EntryPrice, "entry", "", "Entry price")
	cmd.Flags().StringVar(&calcInput.ExitPrice, "exit", "", "Exit or current price")
	cmd.Flags().StringVar(&calcInput.Principal, "principal", "", "Investment (spot) or margin (futures)")
	cmd.Flags().StringVar(&calcInput.Leverage, "leverage", "1", "Futures leverage")
}

func runCalc(cmd *cobra.Command, args []string) error {
	kind, _ := cmd.Flags().GetString("kind")
	direction, _ := cmd.Flags().GetString("direction")

	in := calcInput
	in.Kind = entity.PositionKind(strings.ToUpper(kind))
	in.Direction = entity.PositionDirection(strings.ToUpper(direction))
	if !in.Kind.Valid() {
		return fmt.Errorf("unknown kind %q", kind)
	}

	res := engine.CalculateRaw(in)
	out := cmd.OutOrStdout()
	if res.Pending {
		fmt.Fprintln(out, "pending: inputs are incomplete or invalid")
		return nil
	}
	fmt.Fprintf(out, "PnL: %s\nROI: %s%%\n", res.PnL.StringFixed(2), res.ROI.StringFixed(2))
	return nil
}
