package main

import (
	"fmt"
	"os"

	"github.com/solerack/solerack/cmd"
	"github.com/solerack/solerack/internal/conf"
	"github.com/solerack/solerack/internal/logging"
)

// buildVersion is set at build time via ldflags.
var buildVersion = "dev"

func main() {
	logging.Init()

	settings, err := conf.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error loading configuration: %v\n", err)
		os.Exit(1)
	}
	settings.Version = buildVersion

	rootCmd := cmd.RootCommand(settings)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "command execution error: %v\n", err)
		os.Exit(1)
	}
}
