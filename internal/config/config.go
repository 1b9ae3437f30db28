// Package config resolves solver settings from, in increasing priority:
// built-in defaults, an optional YAML file, `.env`, and the environment.
// CLI flags are applied on top by the commands themselves.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds every tunable of the solver, CLI and HTTP server.
type Config struct {
	LogLevel string `yaml:"log_level"`

	AllowedFile string `yaml:"allowed_file"`
	SecretsFile string `yaml:"secrets_file"`
	FreqFile    string `yaml:"freq_file"`
	CommonTop   int    `yaml:"common_top"`

	TablePath  string `yaml:"table_path"`
	Workers    int    `yaml:"workers"`
	MaxGuesses int    `yaml:"max_guesses"`
	Seed       uint64 `yaml:"seed"`

	Port         string        `yaml:"port"`
	DBPath       string        `yaml:"db_path"`
	JWTSecret    string        `yaml:"jwt_secret"`
	AdminKeyHash string        `yaml:"admin_key_hash"`
	ClientOrigin string        `yaml:"client_origin"`
	DailySalt    string        `yaml:"daily_salt"`
	SessionTTL   time.Duration `yaml:"session_ttl"`
}

// Defaults returns the built-in configuration.
func Defaults() Config {
	return Config{
		LogLevel:     "info",
		TablePath:    "data/outcomes.bin",
		MaxGuesses:   6,
		Port:         "5175",
		DBPath:       "data/runs.db",
		JWTSecret:    "dev_secret_change_me",
		ClientOrigin: "http://localhost:5173",
		DailySalt:    "wordle-daily",
		SessionTTL:   2 * time.Hour,
	}
}

// Load builds the configuration. path names a YAML file; when empty the
// SOLVER_CONFIG variable is consulted, and no file is read if both are empty.
func Load(path string) (Config, error) {
	_ = godotenv.Load()
	cfg := Defaults()

	if path == "" {
		path = os.Getenv("SOLVER_CONFIG")
	}
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("config: %w", err)
		}
		if err := yaml.Unmarshal(b, &cfg); err != nil {
			return cfg, fmt.Errorf("config %s: %w", path, err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	envStr("LOG_LEVEL", &c.LogLevel)
	envStr("WORDS_ALLOWED_FILE", &c.AllowedFile)
	envStr("WORDS_ANSWERS_FILE", &c.SecretsFile)
	envStr("WORDS_FREQ_FILE", &c.FreqFile)
	envStr("TABLE_PATH", &c.TablePath)
	envStr("PORT", &c.Port)
	envStr("DB_PATH", &c.DBPath)
	envStr("JWT_SECRET", &c.JWTSecret)
	envStr("ADMIN_KEY_HASH", &c.AdminKeyHash)
	envStr("CLIENT_ORIGIN", &c.ClientOrigin)
	envStr("DAILY_SALT", &c.DailySalt)

	for _, kv := range []struct {
		key string
		dst *int
	}{
		{"WORDS_COMMON_TOP", &c.CommonTop},
		{"BUILD_WORKERS", &c.Workers},
		{"MAX_GUESSES", &c.MaxGuesses},
	} {
		if err := envInt(kv.key, kv.dst); err != nil {
			return err
		}
	}

	if v := os.Getenv("SEED"); v != "" {
		n, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return fmt.Errorf("config: SEED: %w", err)
		}
		c.Seed = n
	}
	if v := os.Getenv("SESSION_TTL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("config: SESSION_TTL: %w", err)
		}
		c.SessionTTL = d
	}
	return nil
}

func envStr(k string, dst *string) {
	if v := os.Getenv(k); v != "" {
		*dst = v
	}
}

func envInt(k string, dst *int) error {
	v := os.Getenv(k)
	if v == "" {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fmt.Errorf("config: %s: %w", k, err)
	}
	*dst = n
	return nil
}
