package main

import (
	"encoding/json"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/inspection-cli/internal/calc"
	"github.com/sells-group/inspection-cli/internal/export"
	"github.com/sells-group/inspection-cli/internal/model"
	"github.com/sells-group/inspection-cli/internal/recon"
)

var (
	reconcileParserID string
	reconcileXLSX     string
	reconcileSave     bool
	reconcileCalc     bool
)

var reconcileCmd = &cobra.Command{
	Use:   "reconcile <extraction.json>",
	Short: "Reconcile one raw extraction into a canonical record",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		path := args[0]

		payload, err := os.ReadFile(path)
		if err != nil {
			return eris.Wrapf(err, "reconcile: read %s", path)
		}

		record, prov, err := recon.Reconcile(payload, reconcileParserID)
		if err != nil {
			return err
		}

		zap.L().Info("reconciliation complete",
			zap.String("source", path),
			zap.Int("overrides", len(prov.Overrides)),
			zap.Int("warnings", len(prov.Warnings)),
			zap.Float64("confidence", prov.Confidence.Overall),
		)

		var assess *model.VesselAssessment
		if reconcileCalc {
			pol := cfg.Policy
			if pol.MinRateInPerYr == 0 {
				pol = calc.DefaultPolicy()
			}
			assess = calc.Evaluate(record, pol)
		}

		if reconcileSave {
			st, err := initStore(ctx)
			if err != nil {
				return err
			}
			defer st.Close() //nolint:errcheck

			run := &model.ReconRun{
				Source:     path,
				ParserID:   prov.ParserID,
				Status:     model.RunComplete,
				Record:     record,
				Provenance: prov,
			}
			if err := st.SaveRun(ctx, run); err != nil {
				return err
			}
			zap.L().Info("run saved", zap.String("run_id", run.ID))
		}

		if reconcileXLSX != "" {
			if err := export.WriteWorkbook(reconcileXLSX, record, prov, assess); err != nil {
				return err
			}
			zap.L().Info("workbook written", zap.String("path", reconcileXLSX))
		}

		out := struct {
			Record     *model.WorkingRecord    `json:"record"`
			Provenance *model.Provenance       `json:"provenance"`
			Assessment *model.VesselAssessment `json:"assessment,omitempty"`
		}{record, prov, assess}

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	},
}

func init() {
	reconcileCmd.Flags().StringVar(&reconcileParserID, "parser", "", "parser id to record in provenance (default from payload)")
	reconcileCmd.Flags().StringVar(&reconcileXLSX, "xlsx", "", "write a reviewer workbook to this path")
	reconcileCmd.Flags().BoolVar(&reconcileSave, "save", false, "persist the run to the configured store")
	reconcileCmd.Flags().BoolVar(&reconcileCalc, "calc", false, "run the corrosion and ASME assessment after reconciling")
	rootCmd.AddCommand(reconcileCmd)
}
