package types

import (
	"errors"
	"time"
)

// Config holds the remote API and session settings used to build a Planner.
type Config struct {
	APIBase        string        `json:"api_base" yaml:"api_base"`
	UserAgent      string        `json:"user_agent" yaml:"user_agent"`
	MaxAttempts    int           `json:"max_attempts" yaml:"max_attempts"`
	BackoffStep    time.Duration `json:"backoff_step" yaml:"backoff_step"`
	RequestTimeout time.Duration `json:"request_timeout" yaml:"request_timeout"`
	PrewarmCount   int           `json:"prewarm_count" yaml:"prewarm_count"`
	DataDir        string        `json:"data_dir" yaml:"data_dir"`
}

// Defaults for the remote catalog client.
const (
	DefaultAPIBase      = "https://api.changes.tg"
	DefaultUserAgent    = "NFT-Gift-Planner/1.0"
	DefaultMaxAttempts  = 3
	DefaultBackoffStep  = 800 * time.Millisecond
	DefaultPrewarmCount = 5
)

// Config validation errors.
var (
	ErrAPIBaseEmpty       = errors.New("api base must not be empty")
	ErrMaxAttemptsInvalid = errors.New("max attempts must be positive")
	ErrBackoffInvalid     = errors.New("backoff step must not be negative")
	ErrPrewarmInvalid     = errors.New("prewarm count must not be negative")
	ErrTimeoutInvalid     = errors.New("request timeout must not be negative")
)

// DefaultConfig returns a Config populated with the package defaults.
func DefaultConfig() Config {
	return Config{
		APIBase:      DefaultAPIBase,
		UserAgent:    DefaultUserAgent,
		MaxAttempts:  DefaultMaxAttempts,
		BackoffStep:  DefaultBackoffStep,
		PrewarmCount: DefaultPrewarmCount,
	}
}

// Validate checks that the Config is well-formed. It returns a sentinel error
// from this package on failure.
func (c Config) Validate() error {
	if c.APIBase == "" {
		return ErrAPIBaseEmpty
	}
	if c.MaxAttempts <= 0 {
		return ErrMaxAttemptsInvalid
	}
	if c.BackoffStep < 0 {
		return ErrBackoffInvalid
	}
	if c.PrewarmCount < 0 {
		return ErrPrewarmInvalid
	}
	if c.RequestTimeout < 0 {
		return ErrTimeoutInvalid
	}
	return nil
}
