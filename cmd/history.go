package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/abhisek/triage/internal/catalogue"
	"github.com/abhisek/triage/internal/store"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Inspect recorded triage runs",
}

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent triage runs",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")

		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		reports, err := s.RunRepo().List(context.Background(), store.QueryOpts{Limit: limit})
		if err != nil {
			return fmt.Errorf("query runs: %w", err)
		}
		if len(reports) == 0 {
			fmt.Println("No triage runs recorded. Use `triage rank --record`.")
			return nil
		}

		fmt.Printf("%-36s  %-19s  %-9s  %-24s  %s\n", "ID", "Timestamp", "Catalogue", "Top condition", "Symptoms")
		fmt.Println(strings.Repeat("─", 120))
		for _, r := range reports {
			top := "-"
			if len(r.Results) > 0 {
				top = r.Results[0].ConditionID
			}
			fmt.Printf("%-36s  %-19s  %-9s  %-24s  %s\n",
				r.ID,
				r.CreatedAt.Local().Format("2006-01-02 15:04:05"),
				r.CatalogueVersion,
				truncate(top, 24),
				strings.Join(r.Symptoms, ","),
			)
		}
		return nil
	},
}

var historyShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show the full report of one run",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		asJSON, _ := cmd.Flags().GetBool("json")

		id, err := uuid.Parse(args[0])
		if err != nil {
			return fmt.Errorf("invalid run ID %q: %w", args[0], err)
		}

		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		report, err := s.RunRepo().Get(context.Background(), id)
		if err != nil {
			return err
		}

		if asJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(report)
		}

		fmt.Printf("Run:        %s\n", report.ID)
		fmt.Printf("Timestamp:  %s\n", report.CreatedAt.Local().Format("2006-01-02 15:04:05"))
		fmt.Printf("Catalogue:  %s\n", report.CatalogueVersion)
		fmt.Printf("Symptoms:   %s\n", strings.Join(report.Symptoms, ", "))
		if len(report.Contexts) > 0 {
			fmt.Printf("Contexts:   %s\n", strings.Join(report.Contexts, ", "))
		}
		fmt.Println()

		// Severity comes from the active catalogue; ids it no longer knows
		// simply show none.
		cat, err := resolveCatalogue(cmd)
		if err != nil {
			cat = catalogue.Builtin()
		}
		printReport(os.Stdout, cat, report, 0)
		return nil
	},
}

var historyPruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Delete all but the most recent runs",
	RunE: func(cmd *cobra.Command, args []string) error {
		keep, _ := cmd.Flags().GetInt("keep")

		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		n, err := s.RunRepo().Prune(context.Background(), keep)
		if err != nil {
			return err
		}
		fmt.Printf("Deleted %d run(s), kept at most %d.\n", n, keep)
		return nil
	},
}

func init() {
	historyListCmd.Flags().Int("limit", 20, "Number of runs to show")
	historyShowCmd.Flags().Bool("json", false, "Print the report as JSON")
	historyPruneCmd.Flags().Int("keep", 100, "Number of recent runs to keep")

	historyCmd.AddCommand(historyListCmd)
	historyCmd.AddCommand(historyShowCmd)
	historyCmd.AddCommand(historyPruneCmd)
}
