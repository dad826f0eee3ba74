package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"

	"insurance-assistant/internal/assist"
	"insurance-assistant/internal/extract"
	"insurance-assistant/internal/invocations"
	"insurance-assistant/internal/llm"
	"insurance-assistant/internal/llm/gemini"
	"insurance-assistant/internal/prompts"
	"insurance-assistant/internal/shared/config"
	"insurance-assistant/internal/shared/server"
	"insurance-assistant/internal/shared/storage/db"
	"insurance-assistant/internal/shared/telemetry"
)

// App holds shared dependencies.
type App struct {
	Config            config.Config
	Router            *gin.Engine
	DB                *sql.DB
	Catalog           *prompts.Catalog
	LLM               llm.Client
	InvocationsRepo   invocations.Repo
	AssistService     *assist.Service
	AssistHandler     *assist.Handler
	InvocationHandler *invocations.Handler
	ExtractHandler    *extract.Handler
}

// Build prepares shared dependencies and wires routes.
func Build(cfg config.Config) (*App, error) {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "dev"
	}
	ctx := context.Background()

	catalog, err := prompts.LoadCatalog()
	if err != nil {
		return nil, fmt.Errorf("load prompt catalog: %w", err)
	}
	for _, problem := range catalog.Validate() {
		telemetry.Warn("bootstrap.catalog_drift", map[string]any{"problem": problem})
	}

	client, err := BuildLLM(cfg)
	if err != nil {
		return nil, err
	}

	sqlDB, err := buildDB(ctx, cfg)
	if err != nil {
		return nil, err
	}

	var repo invocations.Repo
	if sqlDB != nil {
		repo = &invocations.PGRepo{DB: sqlDB}
	} else {
		repo = invocations.NewMemoryRepo()
	}

	svc := assist.NewService(catalog, client, cfg.HasGeminiKey(), repo)

	app := &App{
		Config:            cfg,
		DB:                sqlDB,
		Catalog:           catalog,
		LLM:               client,
		InvocationsRepo:   repo,
		AssistService:     svc,
		AssistHandler:     assist.NewHandler(svc),
		InvocationHandler: invocations.NewHandler(repo),
		ExtractHandler:    extract.NewHandler(),
	}

	app.Router = server.NewRouter(server.RouterDeps{
		Config:            app.Config,
		AssistHandler:     app.AssistHandler,
		InvocationHandler: app.InvocationHandler,
		ExtractHandler:    app.ExtractHandler,
	})

	return app, nil
}

// Close releases the shared database pool, if any. A later Build connects
// again.
func (a *App) Close() error {
	if a == nil || a.DB == nil {
		return nil
	}
	a.DB = nil
	return db.CloseShared()
}

func buildDB(ctx context.Context, cfg config.Config) (*sql.DB, error) {
	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		if isDevLike(cfg.Env) {
			telemetry.Info("bootstrap.database_disabled", map[string]any{"reason": "DATABASE_URL empty", "repo": "memory"})
			return nil, nil
		}
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	opts := db.OptionsFromEnv(db.DefaultServerOptions())
	sqlDB, err := db.Shared(ctx, cfg.DatabaseURL, opts)
	if err != nil {
		if isDevLike(cfg.Env) {
			telemetry.Warn("bootstrap.database_unavailable", map[string]any{"error": err.Error(), "repo": "memory"})
			return nil, nil
		}
		return nil, err
	}

	if err := db.RunMigrations(ctx, sqlDB); err != nil {
		if cerr := db.CloseShared(); cerr != nil {
			telemetry.Warn("bootstrap.database_close_failed", map[string]any{"error": cerr.Error()})
		}
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return sqlDB, nil
}

// BuildLLM returns the Gemini client for cfg, or the placeholder client when
// no API key is configured.
func BuildLLM(cfg config.Config) (llm.Client, error) {
	if !cfg.HasGeminiKey() {
		telemetry.Warn("bootstrap.gemini_key_missing", map[string]any{
			"hint": "set GEMINI_API_KEY in your .env file",
		})
		return llm.PlaceholderClient{}, nil
	}

	opts := []gemini.Option{}
	if cfg.GeminiBaseURL != "" {
		opts = append(opts, gemini.WithBaseURL(cfg.GeminiBaseURL))
	}
	if cfg.GeminiTimeout > 0 {
		opts = append(opts, gemini.WithTimeout(cfg.GeminiTimeout))
	}
	client, err := gemini.NewClient(cfg.GeminiAPIKey, cfg.GeminiModel, opts...)
	if err != nil {
		return nil, err
	}
	telemetry.Info("bootstrap.gemini_configured", map[string]any{"model": client.Model()})
	return client, nil
}

func isDevLike(env string) bool {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "dev", "local":
		return true
	default:
		return false
	}
}
