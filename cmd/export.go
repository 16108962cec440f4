package cmd

import (
	"context"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"vault-export/core/config"
	"vault-export/core/history"
	"vault-export/core/logger"
	"vault-export/core/storage"
	"vault-export/feature/export"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	exportOutput  string
	exportTool    string
	exportWorkers int
	exportUpload  bool
)

// exportCmd fetches every item from the vault tool and writes the
// id-sorted JSON document.
var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export all vault items to a JSON file",
	Long: `Lists every item id known to the vault tool, fetches all bodies
concurrently with retry and backoff, and writes a pretty-printed JSON
array sorted by item id. The run aborts on the first item that stays
unfetchable.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		// 1. Load Configuration
		cfg, err := config.LoadConfig(".")
		if err != nil {
			return err
		}

		// Flags override the environment where given.
		if cmd.Flags().Changed("tool") {
			cfg.Export.Tool = exportTool
		}
		if cmd.Flags().Changed("workers") {
			cfg.Export.Workers = exportWorkers
		}

		// 2. Initialize Logger
		logg, err := logger.New(&cfg.Log)
		if err != nil {
			return err
		}
		defer logg.Sync()

		runID := uuid.NewString()
		logg = logger.WithRunID(logg, runID)

		// 3. Cancel the run on SIGINT/SIGTERM
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		started := time.Now()
		items, runErr := runExport(ctx, cfg, logg)

		recordRun(cfg.History, logg, history.Run{
			ID:         runID,
			StartedAt:  started,
			DurationMS: time.Since(started).Milliseconds(),
			ItemCount:  len(items),
			Status:     runStatus(runErr),
			Error:      runErrString(runErr),
			Output:     exportOutput,
		})

		return runErr
	},
}

func runExport(ctx context.Context, cfg *config.Config, logg *zap.Logger) ([]export.Item, error) {
	provider := export.NewRetryProvider(
		export.NewToolProvider(cfg.Export.Tool), cfg.Export, logg)
	fetcher := export.NewFetcher(provider, cfg.Export, logg)

	items, err := fetcher.FetchAll(ctx)
	if err != nil {
		return nil, err
	}

	doc, err := export.EncodeDocument(items)
	if err != nil {
		return nil, err
	}

	if err := os.WriteFile(exportOutput, doc, 0o600); err != nil {
		return nil, err
	}
	logg.Info("items written (sorted by id)",
		zap.String("output", exportOutput),
		zap.Int("items", len(items)))

	if exportUpload {
		client, err := storage.NewClient(cfg.Storage)
		if err != nil {
			return nil, err
		}

		objectName := filepath.Base(exportOutput)
		if err := storage.Upload(ctx, client, cfg.Storage, objectName, doc); err != nil {
			return nil, err
		}
		logg.Info("document uploaded",
			zap.String("bucket", cfg.Storage.Bucket),
			zap.String("object", objectName))
	}

	return items, nil
}

// recordRun persists the run outcome. History is best-effort: a
// recording failure is logged, never propagated to the export result.
func recordRun(cfg history.Config, logg *zap.Logger, run history.Run) {
	if !cfg.Enabled {
		return
	}

	store, err := history.Open(cfg)
	if err != nil {
		logg.Warn("history unavailable", zap.Error(err))
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := store.Record(ctx, &run); err != nil {
		logg.Warn("failed to record run", zap.Error(err))
	}
}

func runStatus(err error) string {
	if err != nil {
		return history.StatusFailed
	}
	return history.StatusOK
}

func runErrString(err error) string {
	if err != nil {
		return err.Error()
	}
	return ""
}

func init() {
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "path to write the export JSON to (required)")
	exportCmd.Flags().StringVar(&exportTool, "tool", "op", "vault CLI binary to invoke")
	exportCmd.Flags().IntVar(&exportWorkers, "workers", 5, "number of concurrent fetch workers")
	exportCmd.Flags().BoolVar(&exportUpload, "upload", false, "also upload the document to object storage")
	_ = exportCmd.MarkFlagRequired("output")

	RootCmd.AddCommand(exportCmd)
}
