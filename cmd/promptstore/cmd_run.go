package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/goliatone/go-promptstore/internal/config"
	"github.com/goliatone/go-promptstore/pkg/llm"
)

func newRunCmd(flags *rootFlags) *cobra.Command {
	var (
		provider string
		model    string
		noCache  bool
	)

	cmd := &cobra.Command{
		Use:   "run <title>",
		Short: "Send a template's example prompt to an LLM provider",
		Long: `Loads the named template and sends its example field to the
configured provider. Credentials come from the environment
(OPENROUTER_API_KEY); the config file and flags select provider and
model.`,
		Args: cobra.ExactArgs(1),
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

			if provider != "" {
				cfg.Provider = provider
			}
			if model != "" {
				cfg.Model = model
			}

			result, err := newCatalog(cfg, logger).Load(cmd.Context(), cfg.Root)
			if err != nil {
				return err
			}
			record, ok := result.Find(args[0])
			if !ok {
				return fmt.Errorf("template %q not found under %s", args[0], cfg.Root)
			}

			client, err := buildClient(cfg, logger)
			if err != nil {
				return err
			}
			if cfg.CachePath != "" && !noCache {
				client, err = llm.NewCache(client, cfg.CachePath, llm.WithCacheLogger(logger))
				if err != nil {
					return err
				}
			}

			logger.Info("running template",
				zap.String("title", record.Title),
				zap.String("provider", cfg.Provider),
			)

			response, err := client.Generate(cmd.Context(), record.Example)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), response)
			return nil
		},
	}

	cmd.Flags().StringVarP(&provider, "provider", "p", "", "llm provider (openrouter|ollama)")
	cmd.Flags().StringVarP(&model, "model", "m", "", "model override")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "bypass the response cache")
	return cmd
}

func buildClient(cfg config.Config, logger *zap.Logger) (llm.Client, error) {
	switch cfg.Provider {
	case "", "openrouter":
		var opts []llm.OpenRouterOption
		if cfg.Model != "" {
			opts = append(opts, llm.WithOpenRouterModel(cfg.Model))
		}
		opts = append(opts, llm.WithOpenRouterLogger(logger))
		return llm.NewOpenRouter("", opts...)
	case "ollama":
		var opts []llm.OllamaOption
		if cfg.Model != "" {
			opts = append(opts, llm.WithOllamaModel(cfg.Model))
		}
		opts = append(opts, llm.WithOllamaLogger(logger))
		return llm.NewOllama(cfg.OllamaBaseURL, opts...), nil
	default:
		return nil, fmt.Errorf("unknown provider %q (expected openrouter or ollama)", cfg.Provider)
	}
}
