package config

import (
	"errors"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// FeatureStoreConfig holds connection details for the live feature
// store. The API key itself never lives in the file; only the name of
// the environment variable that carries it does.
type FeatureStoreConfig struct {
	URL         string `yaml:"url"`
	Workspace   string `yaml:"workspace"`
	Service     string `yaml:"service"`
	APIKeyEnv   string `yaml:"api_key_env"`
	TimeoutSecs int    `yaml:"timeout_secs"`
}

// ReportConfig tunes the text report output.
type ReportConfig struct {
	MaxChunkChars   int  `yaml:"max_chunk_chars"`
	ShowRawFeatures bool `yaml:"show_raw_features"`
}

// AppConfig is the root application configuration structure.
type AppConfig struct {
	FeatureStore FeatureStoreConfig `yaml:"feature_store"`
	Report       ReportConfig       `yaml:"report"`
}

// Load reads a config from a specified path. If the file does not exist, returns defaults.
func Load(path string) (*AppConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return defaultConfig(), nil
		}
		return nil, err
	}
	var cfg AppConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	applyConfigDefaults(&cfg)
	return &cfg, nil
}

// LoadDefault tries ./config.yaml first, then ~/.config/ragdebug/config.yaml.
// If neither exists, it writes defaults to ~/.config/ragdebug/config.yaml and returns them.
func LoadDefault() (*AppConfig, string, error) {
	cwdPath := "config.yaml"
	if _, err := os.Stat(cwdPath); err == nil {
		cfg, err := Load(cwdPath)
		return cfg, cwdPath, err
	}
	userPath, err := defaultUserConfigPath()
	if err != nil {
		return nil, "", err
	}
	if _, err := os.Stat(userPath); err == nil {
		cfg, err := Load(userPath)
		return cfg, userPath, err
	}
	cfg := defaultConfig()
	if err := Save(userPath, cfg); err != nil {
		return nil, "", err
	}
	return cfg, userPath, nil
}

// Save writes the config to the given path, creating directories as needed.
func Save(path string, cfg *AppConfig) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func defaultUserConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "ragdebug", "config.yaml"), nil
}

func defaultConfig() *AppConfig {
	cfg := &AppConfig{}
	applyConfigDefaults(cfg)
	return cfg
}

func applyConfigDefaults(cfg *AppConfig) {
	if cfg.FeatureStore.APIKeyEnv == "" {
		cfg.FeatureStore.APIKeyEnv = "FEATURE_STORE_API_KEY"
	}
	if cfg.FeatureStore.TimeoutSecs == 0 {
		cfg.FeatureStore.TimeoutSecs = 15
	}
	if cfg.FeatureStore.Service == "" {
		cfg.FeatureStore.Service = "product_rag_service"
	}
	if cfg.Report.MaxChunkChars == 0 {
		cfg.Report.MaxChunkChars = 240
	}
}
