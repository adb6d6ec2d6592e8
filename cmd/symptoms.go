package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var symptomsCmd = &cobra.Command{
	Use:   "symptoms",
	Short: "List the symptoms the active catalogue recognizes",
	RunE: func(cmd *cobra.Command, args []string) error {
		category, _ := cmd.Flags().GetString("category")

		cat, err := resolveCatalogue(cmd)
		if err != nil {
			return err
		}

		symptoms := cat.Symptoms
		if category != "" {
			symptoms = cat.SymptomsByCategory(category)
			if len(symptoms) == 0 {
				return fmt.Errorf("no symptoms in category %q (known: %s)",
					category, strings.Join(cat.Categories(), ", "))
			}
		}

		fmt.Printf("%-24s  %-32s  %s\n", "ID", "Label", "Category")
		fmt.Println(strings.Repeat("─", 80))
		for _, s := range symptoms {
			fmt.Printf("%-24s  %-32s  %s\n", s.ID, truncate(s.Label, 32), s.Category)
		}
		return nil
	},
}

var contextsCmd = &cobra.Command{
	Use:   "contexts",
	Short: "List the context flags the active catalogue recognizes",
	RunE: func(cmd *cobra.Command, args []string) error {
		cat, err := resolveCatalogue(cmd)
		if err != nil {
			return err
		}

		fmt.Printf("%-20s  %-28s  %s\n", "ID", "Label", "Description")
		fmt.Println(strings.Repeat("─", 90))
		for _, c := range cat.Contexts {
			fmt.Printf("%-20s  %-28s  %s\n", c.ID, truncate(c.Label, 28), c.Description)
		}
		return nil
	},
}

func init() {
	symptomsCmd.Flags().String("category", "", "Only list symptoms in this category")
}
