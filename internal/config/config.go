package config

import (
	"strings"
)

type Config struct {
	Server     ServerConfig
	Storage    StorageConfig
	Gemini     GeminiConfig
	Transcribe TranscribeConfig
	Log        LogConfig
}

type ServerConfig struct {
	Port int
}

type StorageConfig struct {
	DataDir string
}

type GeminiConfig struct {
	APIKey string
	Model  string
}

type TranscribeConfig struct {
	PollInterval string
}

type LogConfig struct {
	Level string
}

func defaults() Config {
	dataDir := defaultDataDir()
	return Config{
		Server: ServerConfig{
			Port: 4200,
		},
		Storage: StorageConfig{
			DataDir: dataDir,
		},
		Gemini: GeminiConfig{
			Model: "gemini-2.5-flash",
		},
		Transcribe: TranscribeConfig{
			PollInterval: "1s",
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Load reads configuration from the platform-native backend, environment
// variables, and platform secret store.
//
// On macOS the backend is UserDefaults (domain: com.myplace.app) and secrets
// fall back to macOS Keychain.
// On Linux the backend is a JSON file at $XDG_CONFIG_HOME/myplace/config.json
// and secrets live in $XDG_DATA_HOME/myplace/secrets.json or environment
// variables.
//
// Environment variables (MYPLACE_*) override backend values on all
// platforms. A missing Gemini API key is not an error: AI features degrade
// to explanatory messages instead of failing startup.
func Load() (Config, error) {
	return loadWith(newPlatformBackend(), NewKeychain())
}

func loadWith(b ConfigBackend, kc Keychain) (Config, error) {
	cfg := defaults()

	if err := applyBackend(&cfg, b); err != nil {
		return Config{}, err
	}

	applyEnvOverrides(&cfg)

	// Try the platform keychain for the Gemini key if still empty.
	if cfg.Gemini.APIKey == "" {
		if key, err := kc.Get(keychainService, "gemini_api_key"); err == nil {
			cfg.Gemini.APIKey = strings.TrimSpace(key)
		}
	}

	return cfg, nil
}
