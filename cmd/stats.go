package cmd

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/triage/internal/store"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Summarize recorded triage runs",
	RunE: func(cmd *cobra.Command, args []string) error {
		since, _ := cmd.Flags().GetDuration("since")

		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		opts := store.QueryOpts{}
		if since > 0 {
			opts.Since = time.Now().Add(-since)
		}
		reports, err := s.RunRepo().List(context.Background(), opts)
		if err != nil {
			return fmt.Errorf("query runs: %w", err)
		}
		if len(reports) == 0 {
			fmt.Println("No triage runs recorded.")
			return nil
		}

		tops := make(map[string]int)
		unrecognized := make(map[string]int)
		unmatched := 0
		for _, r := range reports {
			if len(r.Results) == 0 {
				unmatched++
			} else {
				tops[r.Results[0].ConditionID]++
			}
			for _, id := range r.UnrecognizedSymptoms {
				unrecognized[id]++
			}
		}

		fmt.Printf("Runs:           %d\n", len(reports))
		fmt.Printf("First:          %s\n", reports[len(reports)-1].CreatedAt.Local().Format("2006-01-02 15:04:05"))
		fmt.Printf("Last:           %s\n", reports[0].CreatedAt.Local().Format("2006-01-02 15:04:05"))
		fmt.Printf("No match:       %d\n", unmatched)

		fmt.Println("\nTop-ranked conditions:")
		for _, e := range byCount(tops) {
			fmt.Printf("  %-24s  %d\n", e.key, e.n)
		}
		if len(unrecognized) > 0 {
			fmt.Println("\nUnrecognized symptoms:")
			for _, e := range byCount(unrecognized) {
				fmt.Printf("  %-24s  %d\n", e.key, e.n)
			}
		}
		return nil
	},
}

type countEntry struct {
	key string
	n   int
}

// byCount orders entries by count descending, then key.
func byCount(m map[string]int) []countEntry {
	out := make([]countEntry, 0, len(m))
	for k, n := range m {
		out = append(out, countEntry{k, n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].n != out[j].n {
			return out[i].n > out[j].n
		}
		return strings.Compare(out[i].key, out[j].key) < 0
	})
	return out
}

func init() {
	statsCmd.Flags().Duration("since", 0, "Only include runs newer than this (e.g. 24h)")
}
