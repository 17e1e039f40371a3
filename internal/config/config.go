package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
)

const (
	defaultProviderName       = "gemini"
	defaultProviderTimeout    = "60s"
	defaultGeminiModel        = "gemini-2.5-flash"
	defaultAnthropicModel     = "claude-sonnet-4-20250514"
	defaultAnthropicVersion   = "2023-06-01"
	defaultChatTemperature    = 0.9
	defaultChatMaxTokens      = 1024
	defaultTUITheme           = "auto"
	defaultConfigRelativePath = ".config/bear/config.toml"
	defaultStateRelativePath  = ".bear/state.json"
	defaultLogRelativePath    = ".bear/bear.log"
	envProviderDefault        = "BEAR_PROVIDER_DEFAULT"
	envProviderTimeout        = "BEAR_PROVIDER_TIMEOUT"
	envGeminiAPIKey           = "GEMINI_API_KEY"
	envGeminiModel            = "BEAR_GEMINI_MODEL"
	envAnthropicAPIKey        = "ANTHROPIC_API_KEY"
	envAnthropicModel         = "BEAR_ANTHROPIC_MODEL"
	envAnthropicBaseURL       = "BEAR_ANTHROPIC_BASE_URL"
	envAnthropicVersion       = "BEAR_ANTHROPIC_VERSION"
	envStatePath              = "BEAR_STATE_PATH"
	envChatMaxTokens          = "BEAR_CHAT_MAX_TOKENS"
)

var (
	// ErrInvalidConfig indicates malformed configuration input.
	ErrInvalidConfig = errors.New("invalid config")
)

// Config is the application configuration root.
type Config struct {
	Provider ProviderConfig `toml:"provider"`
	Chat     ChatConfig     `toml:"chat"`
	Storage  StorageConfig  `toml:"storage"`
	TUI      TUIConfig      `toml:"tui"`
}

// ProviderConfig configures model providers.
type ProviderConfig struct {
	Default   string                  `toml:"default"`
	Timeout   string                  `toml:"timeout"`
	Gemini    GeminiProviderConfig    `toml:"gemini"`
	Anthropic AnthropicProviderConfig `toml:"anthropic"`
}

// GeminiProviderConfig configures the Google GenAI backend.
type GeminiProviderConfig struct {
	APIKey string `toml:"api_key"`
	Model  string `toml:"model"`
}

// AnthropicProviderConfig configures the Anthropic backend.
type AnthropicProviderConfig struct {
	APIKey  string `toml:"api_key"`
	Model   string `toml:"model"`
	BaseURL string `toml:"base_url"`
	Version string `toml:"version"`
}

// ChatConfig configures the model round trip.
type ChatConfig struct {
	Temperature float64 `toml:"temperature"`
	MaxTokens   int     `toml:"max_tokens"`
}

// StorageConfig configures local persistence.
type StorageConfig struct {
	StatePath string `toml:"state_path"`
	LogPath   string `toml:"log_path"`
}

// TUIConfig configures terminal UI defaults.
type TUIConfig struct {
	Theme string `toml:"theme"`
}

// LoadOptions controls config loading behavior.
type LoadOptions struct {
	Path string
}

// Default returns application defaults.
func Default() Config {
	return Config{
		Provider: ProviderConfig{
			Default: defaultProviderName,
			Timeout: defaultProviderTimeout,
			Gemini: GeminiProviderConfig{
				Model: defaultGeminiModel,
			},
			Anthropic: AnthropicProviderConfig{
				Model:   defaultAnthropicModel,
				Version: defaultAnthropicVersion,
			},
		},
		Chat: ChatConfig{
			Temperature: defaultChatTemperature,
			MaxTokens:   defaultChatMaxTokens,
		},
		Storage: StorageConfig{
			StatePath: defaultStatePath(),
			LogPath:   defaultLogPath(),
		},
		TUI: TUIConfig{
			Theme: defaultTUITheme,
		},
	}
}

// Load reads the config file then applies environment variable overrides.
func Load(opts LoadOptions) (Config, error) {
	cfg := Default()

	path := strings.TrimSpace(opts.Path)
	if path == "" {
		path = defaultConfigPath()
	}

	if err := mergeConfigFile(&cfg, path); err != nil {
		return Config{}, err
	}
	if err := applyEnv(&cfg); err != nil {
		return Config{}, err
	}
	if err := validate(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// ProviderTimeout returns the parsed per-call timeout.
func (c Config) ProviderTimeout() (time.Duration, error) {
	timeout, err := time.ParseDuration(strings.TrimSpace(c.Provider.Timeout))
	if err != nil {
		return 0, fmt.Errorf("%w: parse provider.timeout: %v", ErrInvalidConfig, err)
	}
	if timeout <= 0 {
		return 0, fmt.Errorf("%w: provider.timeout must be positive", ErrInvalidConfig)
	}
	return timeout, nil
}

func mergeConfigFile(cfg *Config, path string) error {
	if strings.TrimSpace(path) == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("read config file %s: %w", path, err)
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}
	return nil
}

func applyEnv(cfg *Config) error {
	if value, ok := os.LookupEnv(envProviderDefault); ok && strings.TrimSpace(value) != "" {
		cfg.Provider.Default = strings.TrimSpace(value)
	}
	if value, ok := os.LookupEnv(envProviderTimeout); ok && strings.TrimSpace(value) != "" {
		cfg.Provider.Timeout = strings.TrimSpace(value)
	}
	if value, ok := os.LookupEnv(envGeminiAPIKey); ok {
		cfg.Provider.Gemini.APIKey = value
	}
	if value, ok := os.LookupEnv(envGeminiModel); ok && strings.TrimSpace(value) != "" {
		cfg.Provider.Gemini.Model = strings.TrimSpace(value)
	}
	if value, ok := os.LookupEnv(envAnthropicAPIKey); ok {
		cfg.Provider.Anthropic.APIKey = value
	}
	if value, ok := os.LookupEnv(envAnthropicModel); ok && strings.TrimSpace(value) != "" {
		cfg.Provider.Anthropic.Model = strings.TrimSpace(value)
	}
	if value, ok := os.LookupEnv(envAnthropicBaseURL); ok && strings.TrimSpace(value) != "" {
		cfg.Provider.Anthropic.BaseURL = strings.TrimSpace(value)
	}
	if value, ok := os.LookupEnv(envAnthropicVersion); ok && strings.TrimSpace(value) != "" {
		cfg.Provider.Anthropic.Version = strings.TrimSpace(value)
	}
	if value, ok := os.LookupEnv(envStatePath); ok && strings.TrimSpace(value) != "" {
		cfg.Storage.StatePath = strings.TrimSpace(value)
	}
	if value, ok := os.LookupEnv(envChatMaxTokens); ok && strings.TrimSpace(value) != "" {
		parsed, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil {
			return fmt.Errorf("%w: parse %s: %v", ErrInvalidConfig, envChatMaxTokens, err)
		}
		cfg.Chat.MaxTokens = parsed
	}
	return nil
}

func validate(cfg Config) error {
	switch strings.TrimSpace(cfg.Provider.Default) {
	case "gemini":
		if strings.TrimSpace(cfg.Provider.Gemini.Model) == "" {
			return fmt.Errorf("%w: provider.gemini.model is required", ErrInvalidConfig)
		}
	case "anthropic":
		if strings.TrimSpace(cfg.Provider.Anthropic.Model) == "" {
			return fmt.Errorf("%w: provider.anthropic.model is required", ErrInvalidConfig)
		}
	case "":
		return fmt.Errorf("%w: provider.default is required", ErrInvalidConfig)
	default:
		return fmt.Errorf("%w: unknown provider %q", ErrInvalidConfig, cfg.Provider.Default)
	}
	if _, err := cfg.ProviderTimeout(); err != nil {
		return err
	}
	if cfg.Chat.Temperature < 0 || cfg.Chat.Temperature > 2 {
		return fmt.Errorf("%w: chat.temperature must be within [0, 2]", ErrInvalidConfig)
	}
	if cfg.Chat.MaxTokens <= 0 {
		return fmt.Errorf("%w: chat.max_tokens must be positive", ErrInvalidConfig)
	}
	if strings.TrimSpace(cfg.Storage.StatePath) == "" {
		return fmt.Errorf("%w: storage.state_path is required", ErrInvalidConfig)
	}
	return nil
}

func defaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, defaultConfigRelativePath)
}

func defaultStatePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "state.json"
	}
	return filepath.Join(home, defaultStateRelativePath)
}

func defaultLogPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "bear.log"
	}
	return filepath.Join(home, defaultLogRelativePath)
}
