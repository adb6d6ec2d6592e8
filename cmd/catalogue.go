package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/triage/internal/catalogue"
	"github.com/abhisek/triage/internal/rules"
	"github.com/abhisek/triage/internal/store"
)

var catalogueCmd = &cobra.Command{
	Use:     "catalogue",
	Aliases: []string{"catalog"},
	Short:   "Validate, inspect and version condition catalogues",
}

var catalogueValidateCmd = &cobra.Command{
	Use:   "validate <file>",
	Short: "Check a catalogue document for schema and integrity problems",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cat, err := catalogue.Load(args[0])
		if err != nil {
			return err
		}
		if err := catalogue.Validate(cat); err != nil {
			return err
		}
		fmt.Printf("OK: %s %s, %d conditions, %d symptoms, %d contexts\n",
			displayName(cat), cat.Version, len(cat.Conditions), len(cat.Symptoms), len(cat.Contexts))
		return nil
	},
}

var catalogueShowCmd = &cobra.Command{
	Use:   "show",
	Short: "List the conditions of the active catalogue",
	RunE: func(cmd *cobra.Command, args []string) error {
		cat, err := resolveCatalogue(cmd)
		if err != nil {
			return err
		}

		fmt.Printf("%s %s\n\n", displayName(cat), cat.Version)
		fmt.Printf("%-24s  %-32s  %-9s  %s\n", "ID", "Label", "Severity", "Symptoms")
		fmt.Println(strings.Repeat("─", 100))
		for _, c := range cat.Conditions {
			fmt.Printf("%-24s  %-32s  %-9s  %s\n",
				truncate(c.ID, 24), truncate(c.Label, 32), c.Severity,
				strings.Join(rules.Symptoms(c.Rule), ", "))
		}
		return nil
	},
}

var catalogueExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the active catalogue as a YAML or JSON document",
	RunE: func(cmd *cobra.Command, args []string) error {
		formatName, _ := cmd.Flags().GetString("format")
		output, _ := cmd.Flags().GetString("output")

		format, err := catalogue.ParseFormat(formatName)
		if err != nil {
			return err
		}
		cat, err := resolveCatalogue(cmd)
		if err != nil {
			return err
		}
		data, err := catalogue.Marshal(cat, format)
		if err != nil {
			return err
		}

		if output == "" || output == "-" {
			_, err = os.Stdout.Write(data)
			return err
		}
		if err := os.WriteFile(output, data, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", output, err)
		}
		fmt.Fprintf(os.Stderr, "Wrote %s %s to %s\n", displayName(cat), cat.Version, output)
		return nil
	},
}

var catalogueImportCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Validate a catalogue document and store it as a new version",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cat, err := catalogue.Load(args[0])
		if err != nil {
			return err
		}
		if err := catalogue.Validate(cat); err != nil {
			return err
		}

		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		if err := s.CatalogueRepo().Save(context.Background(), cat); err != nil {
			if errors.Is(err, store.ErrVersionExists) {
				return fmt.Errorf("%w (bump the document version)", err)
			}
			return err
		}
		fmt.Printf("Imported %s %s (%d conditions).\n", displayName(cat), cat.Version, len(cat.Conditions))
		return nil
	},
}

var catalogueListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored catalogue versions",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		infos, err := s.CatalogueRepo().List(context.Background())
		if err != nil {
			return err
		}
		if len(infos) == 0 {
			fmt.Println("No stored catalogues. The builtin catalogue is in use.")
			return nil
		}

		fmt.Printf("%-12s  %-24s  %-10s  %s\n", "Version", "Name", "Conditions", "Imported")
		fmt.Println(strings.Repeat("─", 70))
		for i, info := range infos {
			marker := ""
			if i == 0 {
				marker = "  (latest)"
			}
			fmt.Printf("%-12s  %-24s  %-10d  %s%s\n",
				info.Version,
				truncate(info.Name, 24),
				info.Conditions,
				info.CreatedAt.Local().Format("2006-01-02 15:04:05"),
				marker,
			)
		}
		return nil
	},
}

func init() {
	catalogueExportCmd.Flags().String("format", "yaml", "Document format: yaml or json")
	catalogueExportCmd.Flags().StringP("output", "o", "", "Output file (default stdout)")

	catalogueCmd.AddCommand(catalogueValidateCmd)
	catalogueCmd.AddCommand(catalogueShowCmd)
	catalogueCmd.AddCommand(catalogueExportCmd)
	catalogueCmd.AddCommand(catalogueImportCmd)
	catalogueCmd.AddCommand(catalogueListCmd)
}

func displayName(cat *catalogue.Catalogue) string {
	if cat.Name == "" {
		return "catalogue"
	}
	return cat.Name
}
