package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/goliatone/go-promptstore/internal/config"
	"github.com/goliatone/go-promptstore/pkg/catalog"
)

// rootFlags are shared by every subcommand.
type rootFlags struct {
	configPath string
	root       string
	strict     bool
	verbose    bool
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}

	cmd := &cobra.Command{
		Use:           "promptstore",
		Short:         "Browse and validate a prompt template library",
		Long: `promptstore loads a directory tree of prompt template documents
(root/category/subcategory/name.yaml), validates them against the fixed
schema, and makes them browsable: list, show, lint, export, interactive
browse, and run against an LLM provider.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	persistent := cmd.PersistentFlags()
	persistent.StringVar(&flags.configPath, "config", "", "config file (default promptstore.toml)")
	persistent.StringVar(&flags.root, "root", "", "template store root directory")
	persistent.BoolVar(&flags.strict, "strict", false, "validate category/subcategory against directory placement")
	persistent.BoolVarP(&flags.verbose, "verbose", "v", false, "enable debug logging")

	cmd.AddCommand(
		newListCmd(flags),
		newShowCmd(flags),
		newLintCmd(flags),
		newExportCmd(flags),
		newBrowseCmd(flags),
		newRunCmd(flags),
	)
	return cmd
}

// resolve loads the config file and folds in the persistent flags.
func (f *rootFlags) resolve() (config.Config, error) {
	cfg, err := config.Load(f.configPath)
	if err != nil {
		return config.Config{}, err
	}
	if f.root != "" {
		cfg.Root = f.root
	}
	if f.strict {
		cfg.StrictPlacement = true
	}
	return cfg, nil
}

// logger builds the CLI logger. Verbose selects the human-readable
// development encoder.
func (f *rootFlags) logger() (*zap.Logger, error) {
	if !f.verbose {
		return zap.NewNop(), nil
	}
	logger, err := zap.NewDevelopment()
	if err != nil {
		return nil, fmt.Errorf("create logger: %w", err)
	}
	return logger, nil
}

// newCatalog builds a catalog from resolved configuration.
func newCatalog(cfg config.Config, logger *zap.Logger) *catalog.Catalog {
	var opts []catalog.Option
	if cfg.StrictPlacement {
		opts = append(opts, catalog.WithStrictPlacement())
	}
	opts = append(opts, catalog.WithLogger(logger))
	return catalog.New(opts...)
}
