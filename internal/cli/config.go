package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/mesh-intelligence/giftgrid/pkg/types"
)

const (
	configFileName = "config"
	configFileType = "yaml"
	configFileExt  = "config.yaml"
	envPrefix      = "GIFTGRID"
	dotEnvFile     = ".env"

	cfgKeyAPIBase        = "api_base"
	cfgKeyUserAgent      = "user_agent"
	cfgKeyMaxAttempts    = "max_attempts"
	cfgKeyBackoffStep    = "backoff_step"
	cfgKeyRequestTimeout = "request_timeout"
	cfgKeyPrewarmCount   = "prewarm_count"
	cfgKeyDataDir        = "data_dir"
)

// defaultConfigYAML is written to config.yaml on first run.
const defaultConfigYAML = `# giftgrid configuration
# Every key can also be set through a GIFTGRID_<KEY> environment variable.

# Catalog API base URL
api_base: https://api.changes.tg

# Attempts per catalog request and the linear backoff step between them
max_attempts: 3
backoff_step: 800ms

# Per-attempt timeout; 0 leaves requests unbounded
request_timeout: 0s

# Gifts whose models and patterns are fetched when the catalog loads
prewarm_count: 5

# Data directory (optional; overridable by --data-dir flag)
# data_dir:
`

// loadDotEnv reads .env from the working directory when present. Variables
// already in the environment win.
func loadDotEnv() error {
	err := godotenv.Load(dotEnvFile)
	if err == nil || errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return fmt.Errorf("load %s: %w", dotEnvFile, err)
}

// loadConfig reads config.yaml from configDir, creating the directory and a
// default file on first run. A missing config.yaml is not an error.
func loadConfig(configDir string) (*viper.Viper, error) {
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return nil, fmt.Errorf("ensure config dir: %w", err)
	}
	if err := ensureDefaultConfigFile(configDir); err != nil {
		return nil, fmt.Errorf("ensure default config: %w", err)
	}

	v := viper.New()
	d := types.DefaultConfig()
	v.SetDefault(cfgKeyAPIBase, d.APIBase)
	v.SetDefault(cfgKeyUserAgent, d.UserAgent)
	v.SetDefault(cfgKeyMaxAttempts, d.MaxAttempts)
	v.SetDefault(cfgKeyBackoffStep, d.BackoffStep)
	v.SetDefault(cfgKeyRequestTimeout, d.RequestTimeout)
	v.SetDefault(cfgKeyPrewarmCount, d.PrewarmCount)
	v.SetDefault(cfgKeyDataDir, "")

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetConfigName(configFileName)
	v.SetConfigType(configFileType)
	v.AddConfigPath(configDir)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return v, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}
	return v, nil
}

// configFromViper builds and validates the service configuration.
func configFromViper(v *viper.Viper) (types.Config, error) {
	cfg := types.Config{
		APIBase:        strings.TrimRight(v.GetString(cfgKeyAPIBase), "/"),
		UserAgent:      v.GetString(cfgKeyUserAgent),
		MaxAttempts:    v.GetInt(cfgKeyMaxAttempts),
		BackoffStep:    v.GetDuration(cfgKeyBackoffStep),
		RequestTimeout: v.GetDuration(cfgKeyRequestTimeout),
		PrewarmCount:   v.GetInt(cfgKeyPrewarmCount),
		DataDir:        v.GetString(cfgKeyDataDir),
	}
	if err := cfg.Validate(); err != nil {
		return types.Config{}, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}

// ensureDefaultConfigFile creates config.yaml when it does not exist.
func ensureDefaultConfigFile(configDir string) error {
	path := filepath.Join(configDir, configFileExt)

	_, err := os.Stat(path)
	if err == nil {
		return nil
	}
	if !os.IsNotExist(err) {
		return fmt.Errorf("stat config file: %w", err)
	}
	return os.WriteFile(path, []byte(defaultConfigYAML), 0o644)
}
