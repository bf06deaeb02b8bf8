package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newLintCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "lint",
		Short: "Validate every document in the store",
		Long: `Loads the whole store and reports every document that failed to
parse or is missing required fields. Exits non-zero when any issue is
found so lint can gate CI.`,
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

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%d template(s) loaded from %s\n", result.Len(), cfg.Root)

			if result.Clean() {
				fmt.Fprintln(out, "no issues found")
				return nil
			}

			for _, issue := range result.Issues {
				fmt.Fprintln(out, issue.String())
			}
			return fmt.Errorf("%d issue(s) found", len(result.Issues))
		},
	}
}
