// Package scan implements the one-shot ingestion pass command.
package scan

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/solerack/solerack/internal/conf"
	"github.com/solerack/solerack/internal/converter"
	"github.com/solerack/solerack/internal/datastore"
	"github.com/solerack/solerack/internal/importer"
	"github.com/solerack/solerack/internal/ledger"
)

// Command creates the scan command: run a single ingestion pass and exit.
func Command(settings *conf.Settings) *cobra.Command {
	var convertOnly bool

	cmd := &cobra.Command{
		Use:   "scan",
		Short: "Run a single ingestion pass over the drop directory",
		RunE: func(cmd *cobra.Command, args []string) error {
			if convertOnly {
				return runConvert(settings)
			}
			return runScan(settings)
		},
	}

	cmd.Flags().BoolVar(&convertOnly, "convert-only", false, "Only convert HEIC images to JPEG, do not import")
	if err := setupFlags(cmd, settings); err != nil {
		fmt.Printf("error setting up flags: %v\n", err)
		os.Exit(1)
	}

	return cmd
}

func setupFlags(cmd *cobra.Command, settings *conf.Settings) error {
	cmd.Flags().Float64Var(&settings.Import.SimilarityThreshold, "threshold", viper.GetFloat64("import.similaritythreshold"), "Match score required to append to an existing listing (0-1)")
	cmd.Flags().IntVar(&settings.Import.BatchSize, "batchsize", viper.GetInt("import.batchsize"), "Candidate groups processed per batch")

	if err := viper.BindPFlags(cmd.Flags()); err != nil {
		return fmt.Errorf("error binding flags: %w", err)
	}

	return nil
}

func runScan(settings *conf.Settings) error {
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

	ldg := ledger.New(settings.Import.LedgerPath)
	imp := importer.New(settings, store, ldg, converter.New(), nil)

	before := ldg.Size()
	if err := imp.Run(context.Background()); err != nil {
		return err
	}
	fmt.Printf("Scan complete: %d files newly marked processed\n", ldg.Size()-before)
	return nil
}

func runConvert(settings *conf.Settings) error {
	converted := converter.New().ConvertAll(context.Background(), settings.Import.DropDir)
	fmt.Printf("Converted %d HEIC images in %s\n", converted, settings.Import.DropDir)
	return nil
}
