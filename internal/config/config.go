package config

import (
	"time"
)

// Config is the root application configuration.
type Config struct {
	Database DatabaseConfig `yaml:"database"`
	Search   SearchConfig   `yaml:"search"`
	Seed     SeedConfig     `yaml:"seed"`
	Log      LogConfig      `yaml:"log"`
}

// DatabaseConfig holds PostgreSQL connection settings.
type DatabaseConfig struct {
	DSN             string        `yaml:"dsn"                env:"DATABASE_DSN"                env-required:"true"`
	MaxConns        int32         `yaml:"max_conns"          env:"DATABASE_MAX_CONNS"          env-default:"25"`
	MinConns        int32         `yaml:"min_conns"          env:"DATABASE_MIN_CONNS"          env-default:"5"`
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime"  env:"DATABASE_MAX_CONN_LIFETIME"  env-default:"1h"`
	MaxConnIdleTime time.Duration `yaml:"max_conn_idle_time" env:"DATABASE_MAX_CONN_IDLE_TIME" env-default:"30m"`
}

// SearchConfig holds the query options recognized by the lookup engine:
// the wildcard grammar characters and the folding applied when comparing
// headwords and readings.
type SearchConfig struct {
	SingleWildcard   string `yaml:"single_wildcard"   env:"SEARCH_SINGLE_WILDCARD"   env-default:"_"`
	MultipleWildcard string `yaml:"multiple_wildcard" env:"SEARCH_MULTIPLE_WILDCARD" env-default:"%"`
	Escape           string `yaml:"escape"            env:"SEARCH_ESCAPE"            env-default:"\\"`
	CaseInsensitive  bool   `yaml:"case_insensitive"  env:"SEARCH_CASE_INSENSITIVE"  env-default:"true"`
	FullwidthFolding bool   `yaml:"fullwidth_folding" env:"SEARCH_FULLWIDTH_FOLDING" env-default:"true"`

	// HeadwordPreference selects which headword variant is matched for
	// dictionaries carrying both: "t" traditional, "s" simplified, "b" both.
	HeadwordPreference string `yaml:"headword_preference" env:"SEARCH_HEADWORD_PREFERENCE" env-default:"b"`

	// EnumerateTones expands toneless reading queries into explicit tonal
	// candidates instead of relying on pattern predicates. Needed for
	// row stores that only support equality filters.
	EnumerateTones bool `yaml:"enumerate_tones" env:"SEARCH_ENUMERATE_TONES" env-default:"false"`
}

// SeedConfig holds dictionary import settings.
type SeedConfig struct {
	BatchSize int `yaml:"batch_size" env:"SEED_BATCH_SIZE" env-default:"500"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}
