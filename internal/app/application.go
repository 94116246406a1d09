package app

import (
	"context"
	"fmt"
	"log/slog"

	"infracciones.transito.co/infractiondb"
	"infracciones.transito.co/internal/appconf"
	"infracciones.transito.co/internal/chatbot"
	"infracciones.transito.co/internal/dataset"
	"infracciones.transito.co/internal/logging"
	"infracciones.transito.co/internal/records"
)

// Application holds the dependencies for our HTTP handlers, helpers,
// and middleware. The record set is loaded once, before the server starts,
// and is never mutated afterwards.
type Application struct {
	Config   appconf.Config
	Logger   *slog.Logger
	Dataset  dataset.LoadResult
	Records  *records.Service
	Lexicon  *chatbot.CachedLexicon
	Chatbot  *chatbot.Bot
	Database *infractiondb.Client
}

// New loads the dataset and wires every component that depends on it.
// A dataset that cannot be loaded is logged and replaced by an empty record
// set; configuration problems (schema, lexicon, database) are returned.
func New(ctx context.Context, cfg appconf.Config, logger *slog.Logger) (*Application, error) {
	if logger == nil {
		logger = slog.Default()
	}

	schema, err := SchemaFromConfig(cfg)
	if err != nil {
		return nil, err
	}

	result := dataset.LoadOrEmpty(cfg.DatasetPath, schema)
	logging.LogDatasetLoad(logger, result.Path, result.Schema.Name, len(result.Records), result.Err)

	lexicon, err := loadLexicon(cfg.LexiconPath)
	if err != nil {
		return nil, err
	}
	cached := chatbot.NewCachedLexicon(lexicon, cfg.SynonymCacheTTL)

	service := records.NewService(result.Records)

	db, err := infractiondb.NewClient(infractiondb.NewConfig(cfg.DBPath, cfg.Env, cfg.Verbose), logger)
	if err != nil {
		return nil, fmt.Errorf("failed to open infraction database: %w", err)
	}
	if err := db.ImportRecords(ctx, service.All()); err != nil {
		logging.SafeCloseWithLogging(db, logger, "infraction_database")
		return nil, fmt.Errorf("failed to mirror records: %w", err)
	}

	return &Application{
		Config:   cfg,
		Logger:   logger,
		Dataset:  result,
		Records:  service,
		Lexicon:  cached,
		Chatbot:  chatbot.New(service, cached),
		Database: db,
	}, nil
}

// Close releases the database held by the application.
func (app *Application) Close() error {
	if app.Database == nil {
		return nil
	}
	return app.Database.Close()
}

// SchemaFromConfig resolves the column mapping selected by the configuration.
func SchemaFromConfig(cfg appconf.Config) (dataset.Schema, error) {
	if cfg.Schema != "custom" {
		return dataset.SchemaByName(cfg.Schema)
	}
	if cfg.SchemaFile != "" {
		return dataset.LoadSchemaFile(cfg.SchemaFile)
	}
	return dataset.NewSchema("custom", cfg.Columns)
}

func loadLexicon(path string) (chatbot.Lexicon, error) {
	if path == "" {
		return chatbot.DefaultLexicon()
	}
	return chatbot.LoadLexiconFile(path)
}
