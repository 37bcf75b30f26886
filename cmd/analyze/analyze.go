// Package analyze implements the dry-run analysis command. It groups and
// classifies images in a directory and prints the would-be listings without
// touching the database.
package analyze

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/solerack/solerack/internal/classify"
	"github.com/solerack/solerack/internal/conf"
	"github.com/solerack/solerack/internal/grouper"
	"github.com/solerack/solerack/internal/imagefile"
)

// Command creates the analyze command.
func Command(settings *conf.Settings) *cobra.Command {
	return &cobra.Command{
		Use:   "analyze [directory]",
		Short: "Preview how images in a directory would be grouped and classified",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := settings.Import.DropDir
			if len(args) > 0 {
				dir = args[0]
			}
			return runAnalyze(cmd, dir)
		},
	}
}

func runAnalyze(cmd *cobra.Command, dir string) error {
	images, err := imagefile.ListImages(dir)
	if err != nil {
		return fmt.Errorf("failed to list images in %s: %w", dir, err)
	}
	if len(images) == 0 {
		cmd.Printf("No images found in %s\n", dir)
		return nil
	}

	groups := grouper.BuildGroups(images)
	cmd.Printf("Found %d images in %d candidate groups\n\n", len(images), len(groups))

	for i, key := range grouper.SortedKeys(groups) {
		group := groups[key]
		filenames := make([]string, 0, len(group.Images))
		for _, img := range group.Images {
			filenames = append(filenames, img.Filename)
		}
		ident := classify.Classify(filenames)

		cmd.Printf("%d. %s %s\n", i+1, ident.Brand, ident.Model)
		cmd.Printf("   %s\n", ident.Description)
		cmd.Printf("   MSRP $%d, price $%d, confidence %d", ident.MSRP, ident.Price, ident.Confidence)
		if ident.NeedsReview {
			cmd.Printf(" (needs review)")
		}
		cmd.Printf("\n   %d images:\n", len(filenames))
		for _, filename := range filenames {
			cmd.Printf("     - %s\n", filename)
		}
		cmd.Println()
	}

	return nil
}
