package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:           "kanban",
	Short:         "Kanban board service",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		logger := newLogger(nil)
		logger.WithError(err).Error("command failed")
		os.Exit(1)
	}
}
