package main

import (
	"context"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"sync/atomic"
	"syscall"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/sells-group/inspection-cli/internal/model"
	"github.com/sells-group/inspection-cli/internal/recon"
	"github.com/sells-group/inspection-cli/internal/store"
)

var (
	batchLimit       int
	batchConcurrency int
)

var batchCmd = &cobra.Command{
	Use:   "batch <dir>",
	Short: "Reconcile every extraction JSON in a directory",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		dir := args[0]
		paths, err := listExtractions(dir)
		if err != nil {
			return err
		}

		st, err := initStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck

		concurrency := batchConcurrency
		if concurrency <= 0 {
			concurrency = cfg.Batch.Concurrency
		}

		return processBatch(ctx, st, paths, batchLimit, concurrency)
	},
}

func init() {
	batchCmd.Flags().IntVar(&batchLimit, "limit", 0, "max number of files to process (0 = all)")
	batchCmd.Flags().IntVar(&batchConcurrency, "concurrency", 0, "worker count (default from config)")
	rootCmd.AddCommand(batchCmd)
}

// listExtractions returns the JSON files directly under dir, sorted by name.
func listExtractions(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, eris.Wrapf(err, "batch: read dir %s", dir)
	}

	var paths []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(strings.ToLower(e.Name()), ".json") {
			continue
		}
		paths = append(paths, filepath.Join(dir, e.Name()))
	}
	return paths, nil
}

// processBatch reconciles files concurrently and stores every outcome,
// failures included, so the audit trail covers the whole batch.
func processBatch(ctx context.Context, st store.Store, paths []string, limit, concurrency int) error {
	if len(paths) == 0 {
		zap.L().Info("no extraction files found")
		return nil
	}

	if limit > 0 && len(paths) > limit {
		paths = paths[:limit]
	}

	zap.L().Info("processing batch",
		zap.Int("files", len(paths)),
		zap.Int("concurrency", concurrency),
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	var succeeded, failed atomic.Int64

	for _, path := range paths {
		g.Go(func() error {
			log := zap.L().With(zap.String("source", path))

			run := reconcileFile(path)
			if err := st.SaveRun(gctx, run); err != nil {
				log.Error("save run failed", zap.Error(err))
				failed.Add(1)
				return nil // don't abort batch on individual failure
			}

			if run.Status == model.RunFailed {
				failed.Add(1)
				log.Error("reconciliation failed", zap.String("error", run.Error))
				return nil
			}

			succeeded.Add(1)
			log.Info("reconciliation complete",
				zap.String("run_id", run.ID),
				zap.Float64("confidence", run.Provenance.Confidence.Overall),
			)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return eris.Wrap(err, "batch processing")
	}

	zap.L().Info("batch complete",
		zap.Int64("succeeded", succeeded.Load()),
		zap.Int64("failed", failed.Load()),
	)
	return nil
}

// reconcileFile reads and reconciles one file, capturing any error as a
// failed run rather than returning it.
func reconcileFile(path string) *model.ReconRun {
	run := &model.ReconRun{Source: path, Status: model.RunComplete}

	payload, err := os.ReadFile(path)
	if err != nil {
		run.Status = model.RunFailed
		run.Error = eris.Wrapf(err, "batch: read %s", path).Error()
		return run
	}

	record, prov, err := recon.Reconcile(payload, "")
	if err != nil {
		run.Status = model.RunFailed
		run.Error = err.Error()
		return run
	}

	run.ParserID = prov.ParserID
	run.Record = record
	run.Provenance = prov
	return run
}
