package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mrhapile/stateforge/internal/config"
	"github.com/mrhapile/stateforge/internal/logging"
)

var evidenceFlag string

var predictCmd = &cobra.Command{
	Use:   "predict <knowledge-base.yaml>",
	Short: "Predict the assignments consistent with a knowledge base plus extra evidence",
	Args:  cobra.ExactArgs(1),
	RunE:  runPredict,
}

func init() {
	predictCmd.Flags().StringVar(&evidenceFlag, "evidence", "", "Comma-separated name=true/false pairs, e.g. x1=true,x3=false")
}

func runPredict(cmd *cobra.Command, args []string) error {
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

	extra, err := parseEvidenceFlag(evidenceFlag)
	if err != nil {
		return err
	}

	result, err := e.Predict(extra)
	if err != nil {
		return err
	}
	logging.ForwardEngineLog(logger, e.Log())

	if result.IsContradiction() {
		fmt.Println("contradiction: no assignment satisfies the declared rules, evidence, and --evidence")
		return nil
	}

	for _, d := range result.Dicts() {
		fmt.Println(formatDict(e.Variables(), d))
	}
	return nil
}

// parseEvidenceFlag parses "x1=true,x3=false" into a map. An empty
// string yields an empty map.
func parseEvidenceFlag(s string) (map[string]bool, error) {
	out := make(map[string]bool)
	if s == "" {
		return out, nil
	}
	for _, pair := range strings.Split(s, ",") {
		name, value, ok := strings.Cut(pair, "=")
		if !ok {
			return nil, fmt.Errorf("malformed --evidence entry %q, expected name=true/false", pair)
		}
		b, err := strconv.ParseBool(value)
		if err != nil {
			return nil, fmt.Errorf("malformed --evidence value for %q: %w", name, err)
		}
		out[name] = b
	}
	return out, nil
}

// formatDict renders one concrete assignment in declared variable order.
func formatDict(variables []string, d map[string]bool) string {
	parts := make([]string, len(variables))
	for i, name := range variables {
		parts[i] = fmt.Sprintf("%s=%v", name, d[name])
	}
	return strings.Join(parts, " ")
}
