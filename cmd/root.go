package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/solerack/solerack/cmd/analyze"
	"github.com/solerack/solerack/cmd/reconcile"
	"github.com/solerack/solerack/cmd/scan"
	"github.com/solerack/solerack/cmd/watch"
	"github.com/solerack/solerack/internal/conf"
)

// RootCommand creates and returns the root command
func RootCommand(settings *conf.Settings) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "solerack",
		Short: "solerack auto-import CLI",
	}

	setupFlags(rootCmd, settings)

	subcommands := []*cobra.Command{
		watch.Command(settings),
		scan.Command(settings),
		analyze.Command(settings),
		reconcile.Command(settings),
	}

	rootCmd.AddCommand(subcommands...)

	return rootCmd
}

// setupFlags defines flags that are global to the command line interface
func setupFlags(rootCmd *cobra.Command, settings *conf.Settings) {
	rootCmd.PersistentFlags().BoolVarP(&settings.Debug, "debug", "d", viper.GetBool("debug"), "Enable debug output")
	rootCmd.PersistentFlags().StringVar(&settings.Import.DropDir, "dropdir", viper.GetString("import.dropdir"), "Directory watched for incoming images")
	rootCmd.PersistentFlags().StringVar(&settings.Import.UploadDir, "uploaddir", viper.GetString("import.uploaddir"), "Destination directory for listing images")

	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		fmt.Printf("error binding flags: %v\n", err)
	}
}
