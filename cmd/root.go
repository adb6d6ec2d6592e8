package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/abhisek/triage/internal/catalogue"
	"github.com/abhisek/triage/internal/store"
)

// logger is built in PersistentPreRunE. It is a no-op until then.
var logger = zap.NewNop()

var rootCmd = &cobra.Command{
	Use:   "triage",
	Short: "Fuzzy rule-based symptom triage",
	Long: `triage ranks a catalogue of conditions against observed symptoms and
context flags. Each condition is scored by a weighted fuzzy rule tree.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		verbose, _ := cmd.Flags().GetBool("verbose")
		trace, _ := cmd.Flags().GetBool("trace") // only defined on rank

		config := zap.NewProductionConfig()
		config.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
		if verbose || trace {
			config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		l, err := config.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		logger = l
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides TRIAGE_DB env var)")
	rootCmd.PersistentFlags().String("catalogue", "", `Catalogue source: a .yaml/.json file, "db" for the latest stored version, or empty for the builtin (overrides TRIAGE_CATALOGUE env var)`)
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable debug logging")

	rootCmd.AddCommand(rankCmd)
	rootCmd.AddCommand(explainCmd)
	rootCmd.AddCommand(catalogueCmd)
	rootCmd.AddCommand(symptomsCmd)
	rootCmd.AddCommand(contextsCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(versionCmd)
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then TRIAGE_DB env var, then the default XDG path.
func resolveDBPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	return store.DefaultDBPath()
}

// openStore opens the database selected by resolveDBPath.
func openStore(cmd *cobra.Command) (*store.Store, error) {
	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return nil, fmt.Errorf("resolve database path: %w", err)
	}
	s, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return s, nil
}

// resolveCatalogue loads the catalogue named by --catalogue, then
// TRIAGE_CATALOGUE, falling back to the builtin. Loaded catalogues are
// validated before use.
func resolveCatalogue(cmd *cobra.Command) (*catalogue.Catalogue, error) {
	src, _ := cmd.Flags().GetString("catalogue")
	if src == "" {
		src = os.Getenv("TRIAGE_CATALOGUE")
	}

	var (
		cat *catalogue.Catalogue
		err error
	)
	switch {
	case src == "" || strings.EqualFold(src, catalogue.BuiltinName):
		return catalogue.Builtin(), nil
	case strings.EqualFold(src, "db"):
		s, oerr := openStore(cmd)
		if oerr != nil {
			return nil, oerr
		}
		defer s.Close()
		cat, err = s.CatalogueRepo().Latest(context.Background())
	default:
		cat, err = catalogue.Load(src)
	}
	if err != nil {
		return nil, fmt.Errorf("load catalogue: %w", err)
	}
	if err := catalogue.Validate(cat); err != nil {
		return nil, err
	}
	logger.Debug("catalogue loaded",
		zap.String("source", src),
		zap.String("version", cat.Version),
		zap.Int("conditions", len(cat.Conditions)),
	)
	return cat, nil
}
