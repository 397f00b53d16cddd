// Command server runs the Atlas game shell and inspects its route table.
package main

import (
	"fmt"
	"os"

	"github.com/JaimeStill/atlas/internal/config"
	"github.com/spf13/cobra"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	var configPath string

	serve := serveCmd(&configPath)

	root := &cobra.Command{
		Use:   "atlas",
		Short: "Serve the Atlas game shell",
		Long: `Atlas serves the single-page game shell and resolves its navigation
routes on the server. Running without a subcommand starts the server.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          serve.RunE,
	}

	root.PersistentFlags().StringVarP(&configPath, "config", "c", config.BaseConfigFile, "base configuration file")

	root.AddCommand(
		serve,
		routesCmd(&configPath),
		resolveCmd(&configPath),
		versionCmd(),
	)

	return root
}
