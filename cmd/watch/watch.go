// Package watch implements the long-running auto-import service command.
package watch

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/solerack/solerack/internal/conf"
	"github.com/solerack/solerack/internal/converter"
	"github.com/solerack/solerack/internal/datastore"
	"github.com/solerack/solerack/internal/importer"
	"github.com/solerack/solerack/internal/ledger"
	"github.com/solerack/solerack/internal/logging"
	"github.com/solerack/solerack/internal/reconcile"
	"github.com/solerack/solerack/internal/telemetry"
)

// startupReconcileDelay gives the initial ingestion pass a head start before
// the duplicate sweep runs.
const startupReconcileDelay = 5 * time.Second

// Command creates the watch command: run the auto-import service until
// interrupted.
func Command(settings *conf.Settings) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Run the auto-import service",
		Long:  "Watch the drop directory and automatically import new sneaker images as listings.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWatch(settings)
		},
	}

	if err := setupFlags(cmd, settings); err != nil {
		fmt.Printf("error setting up flags: %v\n", err)
		os.Exit(1)
	}

	return cmd
}

func setupFlags(cmd *cobra.Command, settings *conf.Settings) error {
	cmd.Flags().DurationVar(&settings.Import.Interval, "interval", viper.GetDuration("import.interval"), "Periodic scan backstop interval")
	cmd.Flags().DurationVar(&settings.Import.Settle, "settle", viper.GetDuration("import.settle"), "Quiet period after a file change before scanning")
	cmd.Flags().IntVar(&settings.Import.BatchSize, "batchsize", viper.GetInt("import.batchsize"), "Candidate groups processed per batch")
	cmd.Flags().Float64Var(&settings.Import.SimilarityThreshold, "threshold", viper.GetFloat64("import.similaritythreshold"), "Match score required to append to an existing listing (0-1)")
	cmd.Flags().BoolVar(&settings.Telemetry.Enabled, "telemetry", viper.GetBool("telemetry.enabled"), "Enable Prometheus telemetry endpoint")
	cmd.Flags().StringVar(&settings.Telemetry.Listen, "listen", viper.GetString("telemetry.listen"), "Listen address and port of telemetry endpoint")

	if err := viper.BindPFlags(cmd.Flags()); err != nil {
		return fmt.Errorf("error binding flags: %w", err)
	}

	return nil
}

func runWatch(settings *conf.Settings) error {
	log := logging.ForService("watch")

	if settings.Main.Log.Enabled {
		fileLogger, closeLogger, err := logging.NewFileLogger(settings.Main.Log.Path, settings.Main.Name, slog.LevelInfo)
		if err != nil {
			log.Warn("File logging disabled", "path", settings.Main.Log.Path, "error", err)
		} else {
			defer func() {
				_ = closeLogger()
			}()
			fileLogger.Info("Auto-import service starting", "version", settings.Version)
			log = fileLogger.With("service", "watch")
		}
	}

	store := datastore.New(settings)
	if store == nil {
		return fmt.Errorf("no database backend enabled in configuration")
	}
	if err := store.Open(); err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer func() {
		_ = store.Close()
	}()

	var metrics *telemetry.Metrics
	quitChan := make(chan struct{})
	if settings.Telemetry.Enabled {
		var err error
		metrics, err = telemetry.NewMetrics()
		if err != nil {
			return fmt.Errorf("failed to create metrics: %w", err)
		}
		endpoint, err := telemetry.NewEndpoint(settings, metrics)
		if err != nil {
			return fmt.Errorf("failed to create telemetry endpoint: %w", err)
		}
		endpoint.Start(quitChan)
	}

	ldg := ledger.New(settings.Import.LedgerPath)
	imp := importer.New(settings, store, ldg, converter.New(), metrics)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Startup duplicate sweep after a short delay.
	go func() {
		select {
		case <-time.After(startupReconcileDelay):
		case <-ctx.Done():
			return
		}
		merged, err := reconcile.New(store).Run()
		if err != nil {
			log.Error("Startup duplicate sweep failed", "error", err)
			return
		}
		if metrics != nil {
			metrics.ReconcilerMerges.Add(float64(merged))
		}
	}()

	// Stop on SIGINT/SIGTERM.
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigChan
		log.Info("Received signal, shutting down", "signal", sig.String())
		cancel()
	}()

	err := imp.Start(ctx)
	close(quitChan)
	return err
}
