package finalenglish

import (
	"time"

	"github.com/caarlos0/env/v11"
)

// Config carries the engine configuration, read from the environment.
type Config struct {
	// BaseURL is the static site origin; empty selects the local
	// file-system fetcher in hosts that support it.
	BaseURL string `env:"FE_BASE_URL"`

	// TranslationsPath is the translation table base path.
	TranslationsPath string `env:"FE_TRANSLATIONS_PATH" envDefault:"data/translations"`

	// DataPath is the static data file base path.
	DataPath string `env:"FE_DATA_PATH" envDefault:"data"`

	// CacheSize bounds the in-memory content cache.
	CacheSize int `env:"FE_CACHE_SIZE" envDefault:"500"`

	// CacheTTL is how long a cached resolution stays valid.
	CacheTTL time.Duration `env:"FE_CACHE_TTL" envDefault:"24h"`

	// DefaultMode is the mode used when no preference is stored.
	DefaultMode string `env:"FE_DEFAULT_MODE" envDefault:"exam"`

	// PreferencePath is the mode preference file; empty keeps the
	// preference in memory only.
	PreferencePath string `env:"FE_PREFERENCE_PATH"`

	// RedisURL selects the Redis content cache backend when set.
	RedisURL string `env:"FE_REDIS_URL"`

	// LogLevel is the slog level name (debug, info, warn, error).
	LogLevel string `env:"FE_LOG_LEVEL" envDefault:"info"`
}

// LoadConfig reads the configuration from the environment.
func LoadConfig() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Mode returns the configured default mode, substituting the package
// default for an invalid value.
func (c Config) Mode() Mode {
	m, _ := ParseMode(c.DefaultMode)
	return m
}
