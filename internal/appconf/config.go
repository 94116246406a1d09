package appconf

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all the configuration settings for the Application.
type Config struct {
	Port int
	Env  Environment

	// DatasetPath is the location of the CSV file with the infraction records.
	DatasetPath string
	// Schema selects the column mapping: auto, multa, pago or custom.
	Schema string
	// Columns is the custom column mapping (internal field -> CSV header),
	// only used when Schema is "custom".
	Columns map[string]string
	// SchemaFile is a YAML column mapping, used instead of Columns.
	SchemaFile string

	StaticDir       string
	DBPath          string
	RateLimit       int
	LexiconPath     string
	SynonymCacheTTL time.Duration
	LogLevel        slog.Level
	Verbose         bool
}

// SetDefaults registers the default value of every configuration key.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("port", 8000)
	v.SetDefault("env", "development")
	v.SetDefault("dataset_path", "datos_infracciones.csv")
	v.SetDefault("schema", "auto")
	v.SetDefault("schema_file", "")
	v.SetDefault("static_dir", "")
	v.SetDefault("db_path", ":memory:")
	v.SetDefault("rate_limit", 100)
	v.SetDefault("lexicon_path", "")
	v.SetDefault("synonym_cache_ttl", 10*time.Minute)
	v.SetDefault("log_level", "info")
	v.SetDefault("verbose", false)
}

// Load builds a Config out of the values known to v and validates it.
func Load(v *viper.Viper) (Config, error) {
	cfg := Config{
		Port:            v.GetInt("port"),
		Env:             EnvFlagToEnvironment(v.GetString("env")),
		DatasetPath:     strings.TrimSpace(v.GetString("dataset_path")),
		Schema:          strings.ToLower(strings.TrimSpace(v.GetString("schema"))),
		Columns:         v.GetStringMapString("columns"),
		SchemaFile:      strings.TrimSpace(v.GetString("schema_file")),
		StaticDir:       v.GetString("static_dir"),
		DBPath:          v.GetString("db_path"),
		RateLimit:       v.GetInt("rate_limit"),
		LexiconPath:     v.GetString("lexicon_path"),
		SynonymCacheTTL: v.GetDuration("synonym_cache_ttl"),
		Verbose:         v.GetBool("verbose"),
	}

	level, err := parseLogLevel(v.GetString("log_level"))
	if err != nil {
		return Config{}, err
	}
	cfg.LogLevel = level
	if cfg.Verbose && cfg.LogLevel > slog.LevelDebug {
		cfg.LogLevel = slog.LevelDebug
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate reports every invalid setting at once.
func (c Config) Validate() error {
	var errs []error

	if c.Port <= 0 || c.Port > 65535 {
		errs = append(errs, fmt.Errorf("invalid port %d", c.Port))
	}
	if c.DatasetPath == "" {
		errs = append(errs, errors.New("dataset_path cannot be empty"))
	}
	switch c.Schema {
	case "auto", "multa", "pago":
	case "custom":
		if len(c.Columns) == 0 && c.SchemaFile == "" {
			errs = append(errs, errors.New("schema \"custom\" requires a columns mapping or a schema_file"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown schema %q (auto|multa|pago|custom)", c.Schema))
	}
	if c.DBPath == "" {
		errs = append(errs, errors.New("db_path cannot be empty"))
	}
	if c.SynonymCacheTTL < 0 {
		errs = append(errs, errors.New("synonym_cache_ttl must be non-negative"))
	}

	return errors.Join(errs...)
}

func parseLogLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return slog.LevelInfo, fmt.Errorf("invalid log_level %q: %w", s, err)
	}
	return level, nil
}
