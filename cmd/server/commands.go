package main

import (
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"strings"
	"syscall"
	"text/tabwriter"

	"github.com/JaimeStill/atlas/internal/config"
	"github.com/JaimeStill/atlas/web/app"
	"github.com/spf13/cobra"
)

func serveCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadFile(*configPath)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}

			srv, err := NewServer(cfg, nil)
			if err != nil {
				return fmt.Errorf("init server: %w", err)
			}
			if err := srv.Start(); err != nil {
				return fmt.Errorf("start server: %w", err)
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			<-ctx.Done()

			return srv.Shutdown(cfg.Server.ShutdownTimeoutDuration())
		},
	}
}

func routesCmd(configPath *string) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "routes",
		Short: "Print the route table",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadFile(*configPath)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			ctrl, err := app.NewController(&cfg.App)
			if err != nil {
				return err
			}

			table := app.NewTable(ctrl)
			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(table)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "history: %s  base: %q\n", table.History, table.Base)
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "PATH\tTARGET\tPARAMS")
			for _, r := range table.Routes {
				target := "view " + r.View
				if r.Redirect != "" {
					target = "redirect " + r.Redirect
				}
				fmt.Fprintf(tw, "%s\t%s\t%s\n", r.Path, target, strings.Join(r.Params, ","))
			}
			return tw.Flush()
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print the table as JSON")

	return cmd
}

func resolveCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "resolve <location>",
		Short: "Resolve a location against the route table",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadFile(*configPath)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			ctrl, err := app.NewController(&cfg.App)
			if err != nil {
				return err
			}

			m, err := ctrl.Resolve(args[0])
			if err != nil {
				return err
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(app.NewResolution(ctrl, m))
		},
	}
}

func versionCmd() *cobra.Command {
	var short bool

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			if short {
				fmt.Fprintln(out, version)
				return
			}
			fmt.Fprintf(out, "Version:    %s\n", version)
			fmt.Fprintf(out, "Commit:     %s\n", commit)
			fmt.Fprintf(out, "Go version: %s\n", runtime.Version())
			fmt.Fprintf(out, "OS/Arch:    %s/%s\n", runtime.GOOS, runtime.GOARCH)
		},
	}

	cmd.Flags().BoolVarP(&short, "short", "s", false, "print only the version number")

	return cmd
}
