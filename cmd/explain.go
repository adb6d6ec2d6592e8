package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/triage/internal/triage"
)

var explainCmd = &cobra.Command{
	Use:   "explain <condition-id>",
	Short: "Show how one condition's rule tree scores the evidence",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		req, err := readRequest(cmd)
		if err != nil {
			return err
		}

		cat, err := resolveCatalogue(cmd)
		if err != nil {
			return err
		}

		ranker := triage.NewRanker(triage.ConfigFromEnv(), triage.WithLogger(logger))
		svc := triage.NewService(cat, ranker, nil, logger)

		x, err := svc.Explain(args[0], req)
		if err != nil {
			return err
		}

		c := x.Condition
		fmt.Printf("%s (%s)\n", c.Label, c.ID)
		if c.Description != "" {
			fmt.Println(c.Description)
		}
		if c.Severity != "" {
			fmt.Printf("Severity: %s\n", c.Severity)
		}
		fmt.Println(strings.Repeat("─", 60))

		if err := x.Format(os.Stdout); err != nil {
			return fmt.Errorf("format trace: %w", err)
		}
		fmt.Println(strings.Repeat("─", 60))
		fmt.Printf("Score %.3f = base %.3f + context bonus %.2f\n", x.Result.Score, x.Result.Base, x.Result.Bonus)
		if x.Result.Score <= 0 {
			fmt.Println("Not ranked: only positive scores are reported.")
		}

		for _, d := range x.Diagnostics {
			fmt.Printf("skipped %s\n", d.Error())
		}

		printList("Actions", c.Actions)
		printList("Risk factors", c.RiskFactors)
		printList("Monitor for", c.MonitorFor)
		return nil
	},
}

func init() {
	addEvidenceFlags(explainCmd)
}

func printList(title string, items []string) {
	if len(items) == 0 {
		return
	}
	fmt.Printf("\n%s:\n", title)
	for _, it := range items {
		fmt.Printf("  - %s\n", it)
	}
}
