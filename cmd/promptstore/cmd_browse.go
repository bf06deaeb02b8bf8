package main

import (
	"errors"
	"fmt"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"
	"github.com/spf13/cobra"

	"github.com/goliatone/go-promptstore/pkg/catalog"
	"github.com/goliatone/go-promptstore/pkg/template"
)

func newBrowseCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "browse",
		Short: "Pick a template interactively",
		Long: `Walks category, subcategory, and template selections with arrow-key
prompts and prints the chosen template in full. Interrupting any prompt
exits quietly.`,
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
			if result.Len() == 0 {
				return fmt.Errorf("no templates found under %s", cfg.Root)
			}

			record, err := pickTemplate(result)
			if err != nil {
				if errors.Is(err, terminal.InterruptErr) {
					return nil
				}
				return err
			}

			printTemplate(cmd, record, true)
			return nil
		},
	}
}

// pickTemplate narrows category, then subcategory, then title.
func pickTemplate(result *catalog.Result) (template.Template, error) {
	var category string
	if err := survey.AskOne(&survey.Select{
		Message: "Category:",
		Options: result.Categories(),
	}, &category); err != nil {
		return template.Template{}, err
	}

	var subcategory string
	if err := survey.AskOne(&survey.Select{
		Message: "Subcategory:",
		Options: result.Subcategories(category),
	}, &subcategory); err != nil {
		return template.Template{}, err
	}

	candidates := make(map[string]template.Template)
	var titles []string
	for _, t := range result.ByCategory(category) {
		if t.Subcategory != subcategory {
			continue
		}
		candidates[t.Title] = t
		titles = append(titles, t.Title)
	}

	var title string
	if err := survey.AskOne(&survey.Select{
		Message: "Template:",
		Options: titles,
	}, &title); err != nil {
		return template.Template{}, err
	}

	return candidates[title], nil
}
