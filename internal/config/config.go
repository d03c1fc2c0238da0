// apps/go-solver/internal/config/config.go
//
// Runtime configuration for the solver and the emulated service.
// Layering, lowest to highest precedence:
//   1. Defaults()
//   2. optional YAML file (--config)
//   3. environment (WORDLE_*, PORT, LOG_LEVEL, WORDS_FILE, DB_PATH, ...)
// The result is checked by Validate before use. Command line flags are applied
// on top by the commands themselves.

package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid config")

// Config holds solver (play/simulate) settings and the nested server settings.
type Config struct {
	BaseURL        string        `yaml:"base_url"`
	PlayerName     string        `yaml:"player_name"`
	Mode           string        `yaml:"mode"`
	WordsFile      string        `yaml:"words_file"` // empty means the embedded list
	Seed           uint64        `yaml:"seed"`       // 0 means a random seed
	MaxRestarts    int           `yaml:"max_restarts"`
	MaxAttempts    int           `yaml:"max_attempts"` // 0 means unbounded
	RequestTimeout time.Duration `yaml:"request_timeout"`
	RateLimit      float64       `yaml:"rate_limit"` // requests per second, 0 = unlimited
	Retries        int           `yaml:"retries"`    // transport retries per attempt
	LogLevel       string        `yaml:"log_level"`

	Server Server `yaml:"server"`
}

// Server configures `serve`.
type Server struct {
	Addr          string `yaml:"addr"`
	DBPath        string `yaml:"db_path"` // empty means in-memory store
	SessionSecret string `yaml:"session_secret"`
	MaxGuesses    int    `yaml:"max_guesses"` // 0 means unlimited
	DailySalt     string `yaml:"daily_salt"`
	FixedAnswers  bool   `yaml:"fixed_answers"`
}

// Defaults returns the built-in configuration.
func Defaults() Config {
	return Config{
		BaseURL:        "https://wordle.we4shakthi.in/game",
		PlayerName:     "go-solver",
		Mode:           "wordle",
		MaxRestarts:    1,
		RequestTimeout: 10 * time.Second,
		Retries:        2,
		LogLevel:       "info",
		Server: Server{
			Addr:          ":5175",
			SessionSecret: "dev_secret_change_me",
			MaxGuesses:    6,
			DailySalt:     "dev_salt_change_me",
		},
	}
}

// Load builds the configuration from defaults, the YAML file at path (if non-empty)
// and the environment, then validates it.
func Load(path string) (Config, error) {
	cfg := Defaults()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config %s: %w", path, err)
		}
	}
	if err := cfg.applyEnv(os.LookupEnv); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// applyEnv overrides fields from environment variables found by lookup.
func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	str := func(key string, dst *string) {
		if v, ok := lookup(key); ok && v != "" {
			*dst = v
		}
	}
	num := func(key string, dst *int) error {
		v, ok := lookup(key)
		if !ok || v == "" {
			return nil
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%w: %s=%q: %v", ErrInvalid, key, v, err)
		}
		*dst = n
		return nil
	}

	str("WORDLE_BASE_URL", &c.BaseURL)
	str("WORDLE_PLAYER_NAME", &c.PlayerName)
	str("WORDLE_MODE", &c.Mode)
	str("WORDS_FILE", &c.WordsFile)
	str("LOG_LEVEL", &c.LogLevel)
	str("DB_PATH", &c.Server.DBPath)
	str("SESSION_SECRET", &c.Server.SessionSecret)
	str("DAILY_SALT", &c.Server.DailySalt)
	if v, ok := lookup("PORT"); ok && v != "" {
		c.Server.Addr = ":" + v
	}

	for key, dst := range map[string]*int{
		"WORDLE_MAX_RESTARTS": &c.MaxRestarts,
		"WORDLE_MAX_ATTEMPTS": &c.MaxAttempts,
		"WORDLE_RETRIES":      &c.Retries,
		"MAX_GUESSES":         &c.Server.MaxGuesses,
	} {
		if err := num(key, dst); err != nil {
			return err
		}
	}

	if v, ok := lookup("WORDLE_SEED"); ok && v != "" {
		n, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return fmt.Errorf("%w: WORDLE_SEED=%q: %v", ErrInvalid, v, err)
		}
		c.Seed = n
	}
	if v, ok := lookup("WORDLE_REQUEST_TIMEOUT"); ok && v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%w: WORDLE_REQUEST_TIMEOUT=%q: %v", ErrInvalid, v, err)
		}
		c.RequestTimeout = d
	}
	if v, ok := lookup("WORDLE_RATE_LIMIT"); ok && v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("%w: WORDLE_RATE_LIMIT=%q: %v", ErrInvalid, v, err)
		}
		c.RateLimit = f
	}
	return nil
}

// Validate reports the first unusable setting.
func (c Config) Validate() error {
	u, err := url.Parse(c.BaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("%w: base_url %q must be an http(s) URL", ErrInvalid, c.BaseURL)
	}
	if c.PlayerName == "" {
		return fmt.Errorf("%w: player_name is empty", ErrInvalid)
	}
	if c.Mode != "wordle" && c.Mode != "daily" {
		return fmt.Errorf("%w: mode %q (want wordle or daily)", ErrInvalid, c.Mode)
	}
	switch {
	case c.MaxRestarts < 0:
		return fmt.Errorf("%w: max_restarts is negative", ErrInvalid)
	case c.MaxAttempts < 0:
		return fmt.Errorf("%w: max_attempts is negative", ErrInvalid)
	case c.Retries < 0:
		return fmt.Errorf("%w: retries is negative", ErrInvalid)
	case c.RequestTimeout <= 0:
		return fmt.Errorf("%w: request_timeout must be positive", ErrInvalid)
	case c.RateLimit < 0:
		return fmt.Errorf("%w: rate_limit is negative", ErrInvalid)
	case c.Server.MaxGuesses < 0:
		return fmt.Errorf("%w: server.max_guesses is negative", ErrInvalid)
	case c.Server.Addr == "":
		return fmt.Errorf("%w: server.addr is empty", ErrInvalid)
	}
	return nil
}
