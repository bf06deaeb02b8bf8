package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func newListCmd(flags *rootFlags) *cobra.Command {
	var category string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List templates in the store",
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

			templates := result.Templates
			if category != "" {
				templates = result.ByCategory(category)
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "CATEGORY\tSUBCATEGORY\tDIFFICULTY\tTITLE\tPATH")
			for _, t := range templates {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
					t.Category, t.Subcategory, t.Difficulty, t.Title, t.Path)
			}
			if err := w.Flush(); err != nil {
				return err
			}

			if !result.Clean() {
				fmt.Fprintf(cmd.ErrOrStderr(), "\n%d document(s) had issues; run `promptstore lint` for details\n", len(result.Issues))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&category, "category", "c", "", "filter by category ("+strings.Join(knownCategoriesHint(), "|")+")")
	return cmd
}
