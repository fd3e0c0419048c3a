package config

import (
	"fmt"
	"strings"
)

type Config struct {
	Server    ServerConfig
	Provider  ProviderConfig
	Groq      GroqConfig
	Ollama    OllamaConfig
	RateLimit RateLimitConfig
	Storage   StorageConfig
	Auth      AuthConfig
	Log       LogConfig
}

type ServerConfig struct {
	Port    int
	MCPPort int
}

// ProviderConfig selects the model backend for free-form replies.
type ProviderConfig struct {
	Backend string // "groq" or "ollama"
}

type GroqConfig struct {
	APIKey string
	Model  string
}

type OllamaConfig struct {
	BaseURL string
	Model   string
}

// RateLimitConfig bounds provider requests per sliding window.
type RateLimitConfig struct {
	MaxRequests   int
	WindowSeconds int
}

type StorageConfig struct {
	DataDir string
}

// AuthConfig holds the bearer token protecting management endpoints.
// An empty token leaves them open (local single-user setups).
type AuthConfig struct {
	Token string
}

type LogConfig struct {
	Level string
}

func defaults() Config {
	dataDir := defaultDataDir()
	return Config{
		Server: ServerConfig{
			Port:    8000,
			MCPPort: 8001,
		},
		Provider: ProviderConfig{
			Backend: "groq",
		},
		Groq: GroqConfig{
			Model: "llama-3.3-70b-versatile",
		},
		Ollama: OllamaConfig{
			BaseURL: "http://localhost:11434",
			Model:   "llama3.2",
		},
		RateLimit: RateLimitConfig{
			MaxRequests:   30,
			WindowSeconds: 60,
		},
		Storage: StorageConfig{
			DataDir: dataDir,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Load reads configuration from the platform-native backend, environment
// variables, and platform secret store.
//
// On macOS the backend is UserDefaults (domain: com.buddyd.app) and secrets
// fall back to macOS Keychain.
// On Linux the backend is a JSON file at $XDG_CONFIG_HOME/buddyd/config.json
// and secrets fall back to $XDG_DATA_HOME/buddyd/secrets.json.
//
// Environment variables (BUDDYD_*) override backend values on all platforms.
func Load() (Config, error) {
	return loadWith(newPlatformBackend(), keychainReader{})
}

// keychain abstracts Keychain access for testing.
type keychain interface {
	Get(service, account string) (string, error)
}

func loadWith(b ConfigBackend, kc keychain) (Config, error) {
	cfg := defaults()

	if err := applyBackend(&cfg, b); err != nil {
		return Config{}, err
	}

	applyEnvOverrides(&cfg)

	switch cfg.Provider.Backend {
	case "groq":
		// Try platform keychain for API key if still empty.
		if cfg.Groq.APIKey == "" {
			if key, err := kc.Get("buddyd", "groq_api_key"); err == nil && key != "" {
				cfg.Groq.APIKey = key
			}
		}
		if cfg.Groq.APIKey == "" {
			msg := "missing required config: Groq API key. " +
				"Set it via environment variable BUDDYD_GROQ_API_KEY" +
				apiKeyHint()
			return Config{}, fmt.Errorf("%s", msg)
		}
	case "ollama":
	default:
		return Config{}, fmt.Errorf("unknown provider backend %q (expected groq or ollama)", cfg.Provider.Backend)
	}

	if cfg.RateLimit.MaxRequests < 1 {
		return Config{}, fmt.Errorf("rate_limit.max_requests must be positive, got %d", cfg.RateLimit.MaxRequests)
	}
	if cfg.RateLimit.WindowSeconds < 1 {
		return Config{}, fmt.Errorf("rate_limit.window_seconds must be positive, got %d", cfg.RateLimit.WindowSeconds)
	}

	return cfg, nil
}

// keychainReader reads from the platform secret store.
type keychainReader struct{}

func (keychainReader) Get(service, account string) (string, error) {
	out, err := keychainExec(service, account)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(out)), nil
}
