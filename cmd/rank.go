package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
	"github.com/spf13/cobra"

	"github.com/abhisek/triage/internal/catalogue"
	"github.com/abhisek/triage/internal/fuzzy"
	"github.com/abhisek/triage/internal/triage"
)

var rankCmd = &cobra.Command{
	Use:   "rank",
	Short: "Rank conditions against symptoms and context flags",
	Example: `  triage rank -s fever -s cough -c recent_travel
  triage rank -s headache,nausea,light_sensitivity --top 3 --json`,
	RunE: func(cmd *cobra.Command, args []string) error {
		asJSON, _ := cmd.Flags().GetBool("json")
		top, _ := cmd.Flags().GetInt("top")
		record, _ := cmd.Flags().GetBool("record")
		withMetrics, _ := cmd.Flags().GetBool("metrics")
		trace, _ := cmd.Flags().GetBool("trace")

		req, err := readRequest(cmd)
		if err != nil {
			return err
		}

		cat, err := resolveCatalogue(cmd)
		if err != nil {
			return err
		}

		opts := []triage.RankerOption{triage.WithLogger(logger)}
		var reg *prometheus.Registry
		if withMetrics {
			reg = prometheus.NewRegistry()
			opts = append(opts, triage.WithMetrics(triage.NewMetrics(reg)))
		}
		if trace {
			opts = append(opts, triage.WithTracer(fuzzy.NewZapTracer(logger)))
		}
		ranker := triage.NewRanker(triage.ConfigFromEnv(), opts...)

		var recorder triage.Recorder
		if record {
			s, err := openStore(cmd)
			if err != nil {
				return err
			}
			defer s.Close()
			recorder = s.RunRepo()
		}

		svc := triage.NewService(cat, ranker, recorder, logger)
		report, err := svc.Triage(context.Background(), req)
		if err != nil {
			return err
		}

		if asJSON {
			out := *report
			out.Results = report.Top(top)
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			if err := enc.Encode(out); err != nil {
				return fmt.Errorf("encode report: %w", err)
			}
		} else {
			printReport(os.Stdout, cat, report, top)
			if record {
				fmt.Printf("\nRecorded as %s\n", report.ID)
			}
		}

		if reg != nil {
			fmt.Fprintln(os.Stderr)
			if err := writeMetrics(os.Stderr, reg); err != nil {
				return err
			}
		}
		return nil
	},
}

func init() {
	addEvidenceFlags(rankCmd)
	rankCmd.Flags().Bool("json", false, "Print the report as JSON")
	rankCmd.Flags().Int("top", 0, "Show at most N conditions (0 = all)")
	rankCmd.Flags().Bool("record", false, "Append the report to the history database")
	rankCmd.Flags().Bool("metrics", false, "Print ranking metrics in Prometheus text format to stderr")
	rankCmd.Flags().Bool("trace", false, "Log every scored rule node (implies --verbose)")
}

// addEvidenceFlags registers the repeatable --symptom and --context flags.
func addEvidenceFlags(cmd *cobra.Command) {
	cmd.Flags().StringSliceP("symptom", "s", nil, "Observed symptom id (repeatable, comma-separated)")
	cmd.Flags().StringSliceP("context", "c", nil, "Active context flag (repeatable, comma-separated)")
}

// readRequest builds a triage request from the evidence flags.
func readRequest(cmd *cobra.Command) (triage.Request, error) {
	symptoms, _ := cmd.Flags().GetStringSlice("symptom")
	contexts, _ := cmd.Flags().GetStringSlice("context")
	req := triage.Request{
		Symptoms: trimAll(symptoms),
		Contexts: trimAll(contexts),
	}
	if len(req.Symptoms) == 0 && len(req.Contexts) == 0 {
		return req, fmt.Errorf("no evidence: pass at least one --symptom or --context")
	}
	return req, nil
}

func trimAll(items []string) []string {
	out := make([]string, 0, len(items))
	for _, s := range items {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func printReport(w io.Writer, cat *catalogue.Catalogue, report *triage.Report, top int) {
	results := report.Top(top)
	if len(results) == 0 {
		fmt.Fprintln(w, "No conditions matched.")
	} else {
		fmt.Fprintf(w, "%-4s  %-24s  %-32s  %7s  %7s  %6s  %s\n",
			"#", "Condition", "Label", "Score", "Base", "Bonus", "Severity")
		fmt.Fprintln(w, strings.Repeat("─", 100))
		for i, r := range results {
			severity := ""
			if c, err := cat.Condition(r.ConditionID); err == nil {
				severity = string(c.Severity)
			}
			fmt.Fprintf(w, "%-4d  %-24s  %-32s  %7.3f  %7.3f  %6.2f  %s\n",
				i+1, truncate(r.ConditionID, 24), truncate(r.Label, 32), r.Score, r.Base, r.Bonus, severity)
		}
		if len(results) < len(report.Results) {
			fmt.Fprintf(w, "... %d more\n", len(report.Results)-len(results))
		}
	}

	if len(report.UnrecognizedSymptoms) > 0 {
		fmt.Fprintf(w, "\nUnrecognized symptoms: %s\n", strings.Join(report.UnrecognizedSymptoms, ", "))
	}
	if len(report.UnrecognizedContexts) > 0 {
		fmt.Fprintf(w, "Unrecognized contexts: %s\n", strings.Join(report.UnrecognizedContexts, ", "))
	}
}

// truncate shortens s to at most n runes, marking the cut with an ellipsis.
func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	r := []rune(s)
	return string(r[:n-1]) + "…"
}

// writeMetrics dumps every gathered family in the text exposition format.
func writeMetrics(w io.Writer, g prometheus.Gatherer) error {
	families, err := g.Gather()
	if err != nil {
		return fmt.Errorf("gather metrics: %w", err)
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return fmt.Errorf("write metrics: %w", err)
		}
	}
	return nil
}
