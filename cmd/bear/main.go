package main

import (
	"errors"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"bear/internal/chat"
	"bear/internal/config"
	"bear/internal/engage"
	"bear/internal/llm"
	"bear/internal/onboarding"
	"bear/internal/persona"
	"bear/internal/remote"
	"bear/internal/state"
	"bear/internal/tui"
)

var errUnsupportedProvider = errors.New("unsupported provider")

func main() {
	if err := execute(); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "bear: %v\n", err)
		os.Exit(1)
	}
}

func execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "bear",
		Short: "bear is a terminal emotional support companion",
		Long:  persona.AppName + ", the " + persona.AppSubtitle + ", is a terminal emotional support companion.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(config.LoadOptions{Path: strings.TrimSpace(configPath)})
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}

			logger := buildLogger(cfg.Storage.LogPath)
			defer func() { _ = logger.Sync() }()

			provider, model, err := buildProviderFromConfig(cfg)
			if err != nil {
				return fmt.Errorf("build provider: %w", err)
			}

			manager := remote.NewManager(logger.Named("remote"))

			store, err := state.Open(state.Config{
				Path:   cfg.Storage.StatePath,
				Logger: logger.Named("state"),
				OnCredentials: func(url, key string) {
					manager.Configure(url, key)
				},
			})
			if err != nil {
				return fmt.Errorf("open state: %w", err)
			}

			// Credentials persisted in an earlier session configure the
			// backend right away.
			if settings := store.Snapshot().Settings; settings.SupabaseURL != "" && settings.SupabaseKey != "" {
				manager.Configure(settings.SupabaseURL, settings.SupabaseKey)
			}

			timeout, err := cfg.ProviderTimeout()
			if err != nil {
				return err
			}

			controller, err := chat.New(chat.Config{
				Store:       store,
				Provider:    provider,
				Model:       model,
				Temperature: cfg.Chat.Temperature,
				MaxTokens:   cfg.Chat.MaxTokens,
				Timeout:     timeout,
				Logger:      logger.Named("chat"),
			})
			if err != nil {
				return fmt.Errorf("create controller: %w", err)
			}

			var flow *onboarding.Flow
			if !store.Snapshot().Onboarded {
				flow = onboarding.NewFlow(store)
			}

			app := tui.NewApp(tui.AppConfig{
				Version:   "v0.1.0",
				ThemeName: cfg.TUI.Theme,
				Store:     store,
				Sender:    controller,
				Sampler:   engage.NewSampler(rand.New(rand.NewSource(time.Now().UnixNano()))),
				Remote:    manager,
				Flow:      flow,
				Logger:    logger.Named("tui"),
			})

			program := tea.NewProgram(app, tea.WithAltScreen())
			if _, err := program.Run(); err != nil {
				return fmt.Errorf("run tui: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "Path to config file")
	return cmd
}

func buildProviderFromConfig(cfg config.Config) (llm.Provider, string, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.Provider.Default)) {
	case "", "gemini":
		provider, err := llm.NewGeminiProvider(llm.GeminiConfig{
			APIKey: cfg.Provider.Gemini.APIKey,
		})
		if err != nil {
			return nil, "", fmt.Errorf("create gemini provider: %w", err)
		}
		return provider, cfg.Provider.Gemini.Model, nil
	case "anthropic":
		if strings.TrimSpace(cfg.Provider.Anthropic.APIKey) == "" {
			return nil, "", llm.ErrMissingAPIKey
		}
		provider := llm.NewAnthropicProvider(llm.AnthropicConfig{
			APIKey:  cfg.Provider.Anthropic.APIKey,
			BaseURL: cfg.Provider.Anthropic.BaseURL,
			Version: cfg.Provider.Anthropic.Version,
		})
		return provider, cfg.Provider.Anthropic.Model, nil
	default:
		return nil, "", fmt.Errorf("%w: %s", errUnsupportedProvider, cfg.Provider.Default)
	}
}

// buildLogger writes structured logs to a file so they never fight the
// TUI for the terminal. Logging failures degrade to a no-op logger.
func buildLogger(path string) *zap.Logger {
	if strings.TrimSpace(path) == "" {
		return zap.NewNop()
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return zap.NewNop()
	}

	zapCfg := zap.NewProductionConfig()
	zapCfg.OutputPaths = []string{path}
	zapCfg.ErrorOutputPaths = []string{path}
	logger, err := zapCfg.Build()
	if err != nil {
		return zap.NewNop()
	}
	return logger
}
