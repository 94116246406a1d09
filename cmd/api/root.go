package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"infracciones.transito.co/internal/appconf"
)

const envPrefix = "INFRACCIONES"

// newRootCmd builds the command that serves the API. Settings come from, by
// priority: flags, INFRACCIONES_* environment variables, the config file and
// the defaults.
func newRootCmd() *cobra.Command {
	v := viper.New()
	appconf.SetDefaults(v)

	var cfgFile string

	cmd := &cobra.Command{
		Use:   "infracciones",
		Short: "Traffic infraction records API and chatbot",
		Long: `Serves a read-only dataset of traffic infractions over HTTP.

Records are looked up by identifier and a small chatbot lists the records
of the socioeconomic stratum named in a free text query.`,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initConfig(v, cfgFile)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := appconf.Load(v)
			if err != nil {
				return fmt.Errorf("invalid configuration: %w", err)
			}
			return run(cmd.Context(), cfg, cmd.OutOrStdout())
		},
	}

	flags := cmd.Flags()
	cmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ./infracciones.yaml)")
	flags.Int("port", 8000, "API server port")
	flags.String("env", "development", "Environment (development|test|production)")
	flags.String("dataset-path", "datos_infracciones.csv", "CSV file with the infraction records")
	flags.String("schema", "auto", "Dataset column layout (auto|multa|pago|custom)")
	flags.String("schema-file", "", "YAML column mapping for the custom schema")
	flags.String("static-dir", "", "Serve the front-end from this directory instead of the embedded one")
	flags.String("db-path", ":memory:", "SQLite database the records are mirrored into")
	flags.Int("rate-limit", 100, "Requests per second allowed per client, 0 disables limiting")
	flags.String("lexicon-path", "", "YAML synonym lexicon, the embedded Spanish lexicon by default")
	flags.Duration("synonym-cache-ttl", 10*time.Minute, "How long synonym lookups are cached")
	flags.String("log-level", "info", "Log level (debug|info|warn|error)")
	flags.BoolP("verbose", "v", false, "verbose output")

	for key, flag := range map[string]string{
		"port":              "port",
		"env":               "env",
		"dataset_path":      "dataset-path",
		"schema":            "schema",
		"schema_file":       "schema-file",
		"static_dir":        "static-dir",
		"db_path":           "db-path",
		"rate_limit":        "rate-limit",
		"lexicon_path":      "lexicon-path",
		"synonym_cache_ttl": "synonym-cache-ttl",
		"log_level":         "log-level",
		"verbose":           "verbose",
	} {
		_ = v.BindPFlag(key, flags.Lookup(flag))
	}

	return cmd
}

// initConfig reads in config file and ENV variables
func initConfig(v *viper.Viper, cfgFile string) error {
	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("error reading config file: %w", err)
		}
		return nil
	}

	v.SetConfigName("infracciones")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("error reading config file: %w", err)
		}
	}
	return nil
}
