// Package reconcile implements the duplicate listing sweep command.
package reconcile

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/solerack/solerack/internal/conf"
	"github.com/solerack/solerack/internal/datastore"
	sweep "github.com/solerack/solerack/internal/reconcile"
)

// Command creates the reconcile command: sweep the catalog for near-duplicate
// listings and remove the weaker of each pair.
func Command(settings *conf.Settings) *cobra.Command {
	return &cobra.Command{
		Use:   "reconcile",
		Short: "Remove near-duplicate listings from the catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReconcile(cmd, settings)
		},
	}
}

func runReconcile(cmd *cobra.Command, settings *conf.Settings) error {
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

	merged, err := sweep.New(store).Run()
	if err != nil {
		return err
	}
	cmd.Printf("Removed %d duplicate listings\n", merged)
	return nil
}
