package main

import (
	"context"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"upkeep-server/internal/logger"
	"upkeep-server/internal/rest"
)

type options struct {
	server  string
	verbose bool
	timeout time.Duration
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		color.New(color.FgRed, color.Bold).Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:           "upkeepctl",
		Short:         "Browse and edit maintenance records from the terminal",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if opts.verbose {
				logger.SetDefault(logger.New("debug"))
			}
		},
	}

	defaultServer := "http://localhost:3000"
	if value, ok := os.LookupEnv("UPKEEP_SERVER_URL"); ok {
		defaultServer = value
	}
	rootCmd.PersistentFlags().StringVarP(&opts.server, "server", "s", defaultServer, "upkeep server base url")
	rootCmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "log every request")
	rootCmd.PersistentFlags().DurationVar(&opts.timeout, "timeout", 15*time.Second, "request timeout")

	rootCmd.AddCommand(
		newEntitiesCmd(opts),
		newListCmd(opts),
		newShowCmd(opts),
		newCreateCmd(opts),
		newUpdateCmd(opts),
		newDeleteCmd(opts),
		newExportCmd(opts),
	)
	return rootCmd
}

func (o *options) client() *rest.Client {
	return rest.NewClient(o.server)
}

func (o *options) context(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	return context.WithTimeout(cmd.Context(), o.timeout)
}
