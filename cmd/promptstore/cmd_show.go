package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-promptstore/pkg/template"
)

func knownCategoriesHint() []string {
	return template.KnownCategories
}

func newShowCmd(flags *rootFlags) *cobra.Command {
	var full bool

	cmd := &cobra.Command{
		Use:   "show <title>",
		Short: "Show one template by title",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := flags.resolve()
			if err != nil {
				return err
			}
			logger, err := flags.logger()
			if err != nil {
				return err
			}
			defer func() {
				_ = logger.Sync()
			}()

			result, err := newCatalog(cfg, logger).Load(cmd.Context(), cfg.Root)
			if err != nil {
				return err
			}

			record, ok := result.Find(args[0])
			if !ok {
				return fmt.Errorf("template %q not found under %s", args[0], cfg.Root)
			}

			printTemplate(cmd, record, full)
			return nil
		},
	}

	cmd.Flags().BoolVar(&full, "full", false, "print every field, not just the example prompt")
	return cmd
}

func printTemplate(cmd *cobra.Command, record template.Template, full bool) {
	out := cmd.OutOrStdout()
	if !full {
		fmt.Fprintln(out, record.Example)
		return
	}

	fmt.Fprintf(out, "Title:       %s\n", record.Title)
	fmt.Fprintf(out, "Category:    %s / %s\n", record.Category, record.Subcategory)
	if record.Difficulty != "" {
		fmt.Fprintf(out, "Difficulty:  %s\n", record.Difficulty)
	}
	fmt.Fprintf(out, "Source:      %s\n", record.Path)
	fmt.Fprintf(out, "\nDescription:\n%s\n", record.Description)
	fmt.Fprintf(out, "\nExample:\n%s\n", record.Example)
	fmt.Fprintf(out, "\nExpected outcome:\n%s\n", record.ExpectedOutcome)
	if record.Notes != "" {
		fmt.Fprintf(out, "\nNotes:\n%s\n", record.Notes)
	}
}
