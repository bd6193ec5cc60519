package main

import (
	"encoding/json"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/inspection-cli/internal/calc"
	"github.com/sells-group/inspection-cli/internal/recon"
)

var calcCmd = &cobra.Command{
	Use:   "calc <extraction.json>",
	Short: "Run the corrosion-rate and ASME assessment for one extraction",
	Long:  "Reconciles the extraction first, then resolves nominal thickness, computes dual corrosion rates, and evaluates minimum thickness and MAWP per component.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]

		payload, err := os.ReadFile(path)
		if err != nil {
			return eris.Wrapf(err, "calc: read %s", path)
		}

		record, prov, err := recon.Reconcile(payload, "")
		if err != nil {
			return err
		}

		pol := cfg.Policy
		if pol.MinRateInPerYr == 0 {
			pol = calc.DefaultPolicy()
		}
		assess := calc.Evaluate(record, pol)

		ready := 0
		for _, ca := range assess.Components {
			if ca.Nominal.CalculationReady {
				ready++
			}
		}
		zap.L().Info("assessment complete",
			zap.String("source", path),
			zap.Int("components", len(assess.Components)),
			zap.Int("calculation_ready", ready),
			zap.Float64("confidence", prov.Confidence.Overall),
		)

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(assess)
	},
}

func init() {
	rootCmd.AddCommand(calcCmd)
}
