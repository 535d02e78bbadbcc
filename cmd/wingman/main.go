package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/charmlabs/wingman/pkg/config"
	"github.com/charmlabs/wingman/pkg/pipeline"
	"github.com/charmlabs/wingman/pkg/provider"
	"github.com/charmlabs/wingman/pkg/search"
	"github.com/charmlabs/wingman/pkg/server"
)

var version = "0.1.0"

func main() {
	// A missing .env is fine; the environment may be set directly.
	_ = godotenv.Load()

	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		With().Timestamp().Logger()

	rootCmd := &cobra.Command{
		Use:   "wingman",
		Short: "Multi-provider text generation with local fallback",
		Long: `Wingman exposes identity, text-generation and web-suggestion tools
	behind a bearer-token HTTP API. Generation runs through an ordered chain
	of LLM providers with bounded retries, falling back to canned responses
	when no remote provider is available.`,
	}

	rootCmd.AddCommand(serveCmd(logger))
	rootCmd.AddCommand(askCmd(logger))
	rootCmd.AddCommand(providersCmd())
	rootCmd.AddCommand(versionCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func serveCmd(logger zerolog.Logger) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}

			chain, err := buildChain(cfg, logger)
			if err != nil {
				return err
			}
			if len(chain.Providers()) == 0 {
				logger.Warn().Msg("no providers configured, all responses will use the local fallback")
			}
			if cfg.Server.AuthToken == "" {
				logger.Warn().Msg("WINGMAN_AUTH_TOKEN not set, authentication is disabled")
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			srv := server.New(cfg.Server, chain, search.NewClient(), logger)
			return srv.Run(ctx)
		},
	}
}

func askCmd(logger zerolog.Logger) *cobra.Command {
	var kind string
	var name string
	var systemPrompt string

	cmd := &cobra.Command{
		Use:   "ask [message]",
		Short: "Send a message through the generation chain",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}

			chain, err := buildChain(cfg, logger)
			if err != nil {
				return err
			}

			result := chain.Generate(cmd.Context(), args[0], pipeline.Context{
				SystemPrompt: systemPrompt,
				Kind:         kind,
				Name:         name,
			})

			fmt.Println(result.Text)
			fmt.Fprintf(os.Stderr, "[%s/%s]\n", result.Provider, result.Model)
			return nil
		},
	}

	cmd.Flags().StringVar(&kind, "kind", "", "generation kind (pickup_line, flirty_reply)")
	cmd.Flags().StringVar(&name, "name", "", "addressee name")
	cmd.Flags().StringVar(&systemPrompt, "system", "", "system prompt override")
	return cmd
}

func providersCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "providers",
		Short: "List configured providers in priority order",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}

			registry, err := provider.BuildRegistry(cfg.Credentials())
			if err != nil {
				return err
			}
			if len(registry) == 0 {
				fmt.Println("No providers configured. Set OPENAI_API_KEY, ANTHROPIC_API_KEY, GOOGLE_API_KEY or HUGGINGFACE_API_KEY.")
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "PRIORITY\tPROVIDER\tMODEL")
			for _, p := range registry {
				fmt.Fprintf(w, "%d\t%s\t%s\n", p.Priority(), p.Name(), p.Model())
			}
			return w.Flush()
		},
	}
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println("wingman " + version)
		},
	}
}

func buildChain(cfg *config.Config, logger zerolog.Logger) (*pipeline.Chain, error) {
	registry, err := provider.BuildRegistry(cfg.Credentials())
	if err != nil {
		return nil, fmt.Errorf("failed to build provider registry: %w", err)
	}

	return pipeline.NewChain(registry,
		pipeline.WithMaxAttempts(cfg.Generation.MaxAttempts),
		pipeline.WithAttemptTimeout(cfg.Generation.AttemptTimeout()),
		pipeline.WithRetryDelay(cfg.Generation.RetryDelay()),
		pipeline.WithLogger(logger),
	), nil
}
