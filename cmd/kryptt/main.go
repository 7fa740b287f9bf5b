// Package main is the entry point for the kryptt server.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/jondoescoding/kryptt/internal/agent"
	"github.com/jondoescoding/kryptt/internal/alpaca"
	"github.com/jondoescoding/kryptt/internal/config"
	"github.com/jondoescoding/kryptt/internal/gateway"
	"github.com/jondoescoding/kryptt/internal/keys"
	"github.com/jondoescoding/kryptt/internal/memory"
	"github.com/jondoescoding/kryptt/internal/provider"
	"github.com/jondoescoding/kryptt/internal/tool"
	"github.com/jondoescoding/kryptt/internal/trading"
)

// groqBaseURL is the OpenAI-compatible endpoint Groq exposes.
const groqBaseURL = "https://api.groq.com/openai/v1"

// Set by goreleaser ldflags.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "kryptt",
		Short:         "Crypto trading assistant backed by tool-calling agents",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(versionCmd(), serveCmd(), configCmd())
	return root
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(_ *cobra.Command, _ []string) {
			fmt.Printf("kryptt %s (commit: %s, built: %s)\n", version, commit, date)
		},
	}
}

func serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API server",
		RunE: func(cmd *cobra.Command, _ []string) error {
			// Local development convenience; absence is not an error.
			_ = godotenv.Load()

			cfgPath, _ := cmd.Flags().GetString("config")
			cfg, err := config.Load(cfgPath)
			if err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			level, err := cfg.LogLevel()
			if err != nil {
				return err
			}
			logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
				Level: level,
			}))
			slog.SetDefault(logger)

			return run(cfg, logger)
		},
	}
	cmd.Flags().StringP("config", "c", "kryptt.yaml", "Path to configuration file")
	return cmd
}

func configCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Configuration management",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "check <path>",
		Short: "Validate configuration",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			cfg, err := config.Load(args[0])
			if err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			fmt.Println("Configuration OK")
			return nil
		},
	})
	return cmd
}

func run(cfg *config.Config, logger *slog.Logger) error {
	keyStore := keys.NewStore(logger)
	factory := alpaca.NewFactory(keyStore)
	conversations := memory.NewInMemoryConversationStore(cfg.Agent.MaxMessages, logger)

	// The model client is built per chat turn so credentials saved while
	// the server runs take effect immediately.
	providerFactory := func() (provider.Provider, error) {
		k, err := keyStore.Get()
		if err != nil {
			return nil, err
		}
		return provider.NewOpenAI(provider.OpenAIConfig{
			APIKey:      k.Groq,
			Model:       cfg.Agent.Model,
			BaseURL:     groqBaseURL,
			Temperature: cfg.Agent.Temperature,
			MaxRetries:  cfg.Agent.MaxRetries,
		})
	}

	loopCfg := agent.LoopConfig{
		MaxIterations: cfg.Agent.MaxIterations,
		Timeout:       cfg.Agent.Timeout,
	}

	orderRegistry := tool.NewRegistry()
	orderRegistry.MustRegister(trading.OrderTools(factory, logger)...)
	orderAgent := agent.New(agent.Config{
		Name: "order-agent",
		SystemPrompt: "You are a cryptocurrency trading assistant that places orders on Alpaca. " +
			"Use the available tools to create orders exactly as the user asks. " +
			"Confirm what was done, including symbol, quantity, and order type. " +
			"If a request is ambiguous, ask for the missing detail instead of guessing.",
		Registry:        orderRegistry,
		Memory:          conversations,
		ProviderFactory: providerFactory,
		Loop:            loopCfg,
		Logger:          logger,
	})

	positionRegistry := tool.NewRegistry()
	positionRegistry.MustRegister(trading.PositionTools(factory, logger)...)
	positionAgent := agent.New(agent.Config{
		Name: "position-agent",
		SystemPrompt: "You are a cryptocurrency portfolio assistant that manages open positions on Alpaca. " +
			"Use the available tools to list, inspect, and close crypto positions. " +
			"Report holdings clearly with symbol, quantity, and current value. " +
			"Only close a position when the user explicitly asks for it.",
		Registry:        positionRegistry,
		Memory:          conversations,
		ProviderFactory: providerFactory,
		Loop:            loopCfg,
		Logger:          logger,
	})

	server := gateway.New(gateway.Config{
		Bind:            cfg.Server.Bind,
		ReadTimeout:     cfg.Server.ReadTimeout,
		WriteTimeout:    cfg.Server.WriteTimeout,
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
		AllowedOrigins:  cfg.Server.AllowedOrigins,
	}, keyStore, factory, []gateway.ChatAgent{orderAgent, positionAgent}, logger)

	if err := server.Start(); err != nil {
		return err
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	sig := <-stop
	logger.Info("signal received, shutting down", "signal", sig.String())

	return server.Shutdown(context.Background())
}
