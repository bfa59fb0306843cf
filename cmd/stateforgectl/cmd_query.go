package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mrhapile/stateforge/internal/config"
	"github.com/mrhapile/stateforge/internal/logging"
	"github.com/mrhapile/stateforge/pkg/engine"
)

var queryCmd = &cobra.Command{
	Use:   "query <knowledge-base.yaml> <variable>",
	Short: "Compile a knowledge base and print one variable's consolidated value",
	Long: `query compiles the knowledge base and prints the requested variable's
consolidated value. Passing --no-compile skips the compile step, which
exercises the engine's NotCompiled error.`,
	Args: cobra.ExactArgs(2),
	RunE: runQuery,
}

var skipCompile bool

func init() {
	queryCmd.Flags().BoolVar(&skipCompile, "no-compile", false, "Skip Compile(), to exercise NotCompiled")
}

func runQuery(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configFile)
	if err != nil {
		return err
	}
	kb, err := config.LoadKnowledgeBase(args[0])
	if err != nil {
		return err
	}
	variable := args[1]

	e, err := kb.BuildEngine(verbose || cfg.Verbose)
	if err != nil {
		return err
	}
	e.SetSchedulerConfig(cfg.SchedulerConfig())

	if !skipCompile {
		e.Compile()
		logging.ForwardEngineLog(logger, e.Log())
	}

	v, err := e.GetVariableValue(variable)
	if err != nil {
		if errors.Is(err, engine.ErrNotCompiled) {
			fmt.Println("not compiled: run without --no-compile, or call compile first")
			return nil
		}
		return err
	}
	fmt.Printf("%s = %s\n", variable, v)
	return nil
}
