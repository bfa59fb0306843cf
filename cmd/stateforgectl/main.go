package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mrhapile/stateforge/internal/logging"
)

var (
	verbose    bool
	configFile string
	logger     *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "stateforgectl",
	Short: "stateforgectl - drive the state-algebra rule engine from the command line",
	Long: `stateforgectl builds an Engine from a knowledge-base YAML file, runs the
compilation scheduler over its rules and evidence, and reports the
consolidated result.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		l, err := logging.New(verbose)
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		logger = l
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "Path to a stateforgectl config file")

	rootCmd.AddCommand(compileCmd)
	rootCmd.AddCommand(predictCmd)
	rootCmd.AddCommand(queryCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
