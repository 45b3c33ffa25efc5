package config

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// GameTuning holds the gameplay knobs loaded from the tuning file. Zero or
// missing values fall back to the built-in caps.
type GameTuning struct {
	// WicketCap bounds the wicket count a creator may pick in classic mode.
	WicketCap int `json:"wicket_cap"`
	// OverCap bounds the over count for classic and quick matches.
	OverCap int `json:"over_cap"`
}

var (
	tuning   *GameTuning
	loadOnce sync.Once
	loadErr  error
)

// LoadGameTuning loads the gameplay tuning from the given path.
func LoadGameTuning(path string) error {
	loadOnce.Do(func() {
		data, err := os.ReadFile(path)
		if err != nil {
			loadErr = fmt.Errorf("failed to read game tuning: %w", err)
			return
		}

		var t GameTuning
		if err := json.Unmarshal(data, &t); err != nil {
			loadErr = fmt.Errorf("failed to unmarshal game tuning: %w", err)
			return
		}
		tuning = &t
	})
	return loadErr
}

// WicketCap returns the largest wicket setting a creator may choose.
func WicketCap() int {
	if tuning == nil || tuning.WicketCap <= 0 {
		return 10 // Safe default
	}
	return tuning.WicketCap
}

// OverCap returns the largest over setting a creator may choose.
func OverCap() int {
	if tuning == nil || tuning.OverCap <= 0 {
		return 50 // Safe default
	}
	return tuning.OverCap
}

// Config carries the process-level settings read from the environment.
type Config struct {
	// DatabaseURL enables the Postgres match archive when set.
	DatabaseURL string `env:"CRICSAGA_DATABASE_URL"`
	// RedisAddr enables the Redis session directory when set.
	RedisAddr     string `env:"CRICSAGA_REDIS_ADDR"`
	RedisPassword string `env:"CRICSAGA_REDIS_PASSWORD"`
	// ArchiveFile backs the archive when no database is configured.
	ArchiveFile string `env:"CRICSAGA_ARCHIVE_FILE" envDefault:"data/match_history.json"`
	// TuningFile points at the gameplay tuning JSON. Optional.
	TuningFile string `env:"CRICSAGA_TUNING_FILE"`
	// JanitorInterval sets how often idle matches are swept. Zero disables
	// the janitor.
	JanitorInterval time.Duration `env:"CRICSAGA_JANITOR_INTERVAL"`
	// IdleMatchTTL is the inactivity window after which a match is swept.
	IdleMatchTTL time.Duration `env:"CRICSAGA_IDLE_MATCH_TTL" envDefault:"2h"`
	LogLevel     string        `env:"CRICSAGA_LOG_LEVEL" envDefault:"info"`
}

// ParseEnv reads the process configuration from the environment, loading a
// .env file first when one is present.
func ParseEnv() (Config, error) {
	_ = godotenv.Load()

	var c Config
	if err := env.Parse(&c); err != nil {
		return Config{}, fmt.Errorf("failed to parse environment: %w", err)
	}
	return c, nil
}
