package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-promptstore/pkg/export"
)

func newExportCmd(flags *rootFlags) *cobra.Command {
	var (
		format        string
		output        string
		title         string
		includeIssues bool
	)

	registry := export.DefaultRegistry()

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the store as a browsable index",
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

			name := format
			if name == "" {
				name = cfg.Exporter
			}
			exporter, err := registry.Get(name)
			if err != nil {
				return fmt.Errorf("%w (available: %s)", err, strings.Join(registry.List(), ", "))
			}

			result, err := newCatalog(cfg, logger).Load(cmd.Context(), cfg.Root)
			if err != nil {
				return err
			}

			data, err := exporter.Export(cmd.Context(), result, export.Options{
				Title:         title,
				IncludeIssues: includeIssues,
			})
			if err != nil {
				return err
			}

			if output == "" {
				_, err = cmd.OutOrStdout().Write(data)
				return err
			}
			if err := os.WriteFile(output, data, 0o644); err != nil {
				return fmt.Errorf("write %s: %w", output, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Catalog written to %s\n", output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "", "exporter to use ("+strings.Join(registry.List(), "|")+")")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (stdout if empty)")
	cmd.Flags().StringVar(&title, "title", "", "index title")
	cmd.Flags().BoolVar(&includeIssues, "issues", false, "append load issues to the output")
	return cmd
}
