package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mrhapile/stateforge/internal/config"
	"github.com/mrhapile/stateforge/internal/logging"
)

var compileCmd = &cobra.Command{
	Use:   "compile <knowledge-base.yaml>",
	Short: "Compile a knowledge base and print every variable's consolidated value",
	Args:  cobra.ExactArgs(1),
	RunE:  runCompile,
}

func runCompile(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configFile)
	if err != nil {
		return err
	}
	kb, err := config.LoadKnowledgeBase(args[0])
	if err != nil {
		return err
	}
	e, err := kb.BuildEngine(verbose || cfg.Verbose)
	if err != nil {
		return err
	}
	e.SetSchedulerConfig(cfg.SchedulerConfig())

	e.Compile()
	logging.ForwardEngineLog(logger, e.Log())

	empty, err := e.IsContradiction()
	if err != nil {
		return err
	}
	if empty {
		fmt.Println("contradiction: no assignment satisfies the declared rules and evidence")
		return nil
	}

	for _, name := range e.Variables() {
		v, err := e.GetVariableValue(name)
		if err != nil {
			return err
		}
		fmt.Printf("%s = %s\n", name, v)
	}
	return nil
}
