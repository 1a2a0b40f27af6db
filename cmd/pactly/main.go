// Command pactly renders contract and offer letter PDFs offline and drives
// asynchronous exports against a running API.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"pactly/internal/config"
	"pactly/internal/logger"
)

type rootOptions struct {
	logLevel string
	log      *logger.Logger
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	root := &cobra.Command{
		Use:           "pactly",
		Short:         "Branded contract and offer letter exports",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			log, err := logger.New(config.LogConfig{Level: opts.logLevel, Format: "console"})
			if err != nil {
				return err
			}
			opts.log = log
			return nil
		},
	}
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "warn", "log level (debug, info, warn, error)")

	root.AddCommand(newRenderCmd(opts))
	root.AddCommand(newExportCmd(opts))
	return root
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
