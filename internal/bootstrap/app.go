package bootstrap

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	googleauth "career-coach-backend/internal/auth"
	"career-coach-backend/internal/coverletters"
	"career-coach-backend/internal/generation"
	"career-coach-backend/internal/insights"
	"career-coach-backend/internal/interviews"
	"career-coach-backend/internal/llm"
	"career-coach-backend/internal/llm/gemini"
	"career-coach-backend/internal/llm/openai"
	"career-coach-backend/internal/services/health"
	"career-coach-backend/internal/shared/config"
	"career-coach-backend/internal/shared/server"
	"career-coach-backend/internal/shared/server/middleware"
	"career-coach-backend/internal/shared/storage/db"
	"career-coach-backend/internal/shared/telemetry"
	"career-coach-backend/internal/users"
)

// App holds shared dependencies and the assembled router.
type App struct {
	Config             config.Config
	Router             *gin.Engine
	DB                 *sql.DB
	Redis              *redis.Client
	Generation         *generation.Orchestrator
	UsersService       *users.Service
	CoverLetterService *coverletters.Service
	InsightService     *insights.Service
	InterviewService   *interviews.Service
	UsersHandler       *users.Handler
	CoverLetterHandler *coverletters.Handler
	InsightHandler     *insights.Handler
	InterviewHandler   *interviews.Handler
	GoogleAuth         *googleauth.GoogleService
	Health             *health.Service
}

// Build prepares shared dependencies and wires routes.
func Build(cfg config.Config) (*App, error) {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "dev"
	}
	ctx := context.Background()

	sqlDB, err := buildDB(ctx, cfg)
	if err != nil {
		return nil, err
	}

	client, err := BuildLLMClient(ctx, cfg)
	if err != nil {
		if sqlDB != nil {
			sqlDB.Close()
		}
		return nil, err
	}

	app := &App{
		Config: cfg,
		DB:     sqlDB,
		Redis:  buildRedis(ctx, cfg),
		Generation: generation.New(client, generation.Options{
			Timeout:    cfg.GenerationTimeout,
			MaxRetries: cfg.GenerationRetries,
		}),
	}
	telemetry.Info("bootstrap.generation",
		zap.Bool("enabled", app.Generation.Enabled()),
		zap.String("provider", app.Generation.Provider()),
	)

	if err := buildServices(app); err != nil {
		app.Close()
		return nil, err
	}

	app.Router = server.NewRouter(server.RouterDeps{
		Config:             app.Config,
		UserHandler:        app.UsersHandler,
		CoverLetterHandler: app.CoverLetterHandler,
		InsightHandler:     app.InsightHandler,
		InterviewHandler:   app.InterviewHandler,
		GoogleAuth:         app.GoogleAuth,
		Health:             app.Health,
		RateLimiter:        middleware.NewRateLimiter(nil),
	})

	return app, nil
}

// Close releases the database pool and cache client.
func (a *App) Close() {
	if a.Redis != nil {
		_ = a.Redis.Close()
	}
	if a.DB != nil {
		_ = a.DB.Close()
	}
}

// BuildLLMClient returns the configured provider client, or nil when
// generation is disabled (provider "none" or no API key).
func BuildLLMClient(ctx context.Context, cfg config.Config) (llm.Client, error) {
	switch cfg.LLMProvider {
	case "none":
		return nil, nil
	case "openai", "gemini":
	default:
		return nil, fmt.Errorf("unknown LLM_PROVIDER %q", cfg.LLMProvider)
	}
	key := cfg.GenerationAPIKey()
	if key == "" {
		return nil, nil
	}
	if cfg.LLMProvider == "openai" {
		return openai.NewClient(key, cfg.LLMModel, cfg.OpenAIBaseURL)
	}
	return gemini.NewClient(ctx, key, cfg.LLMModel)
}

func buildDB(ctx context.Context, cfg config.Config) (*sql.DB, error) {
	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		if isDevLike(cfg.Env) {
			telemetry.Info("bootstrap.memory_repositories", zap.String("reason", "DATABASE_URL empty"))
			return nil, nil
		}
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	opts := db.OptionsFromEnv(db.DefaultServerOptions())
	sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, opts)
	if err != nil {
		if isDevLike(cfg.Env) {
			telemetry.Warn("bootstrap.memory_repositories", zap.String("reason", "connect failed"), zap.Error(err))
			return nil, nil
		}
		return nil, err
	}

	if err := db.RunMigrations(ctx, sqlDB); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return sqlDB, nil
}

// buildRedis returns a connected client or nil. The cache is optional, so
// an unreachable server only disables it.
func buildRedis(ctx context.Context, cfg config.Config) *redis.Client {
	addr := strings.TrimSpace(cfg.RedisAddr)
	if addr == "" {
		return nil
	}
	client := redis.NewClient(&redis.Options{
		Addr: addr,
		DB:   cfg.RedisDB,
	})
	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		telemetry.Warn("bootstrap.redis_unavailable", zap.String("addr", addr), zap.Error(err))
		_ = client.Close()
		return nil
	}
	telemetry.Info("bootstrap.redis_connected", zap.String("addr", addr))
	return client
}

func isDevLike(env string) bool {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "dev", "local":
		return true
	default:
		return false
	}
}

func buildServices(app *App) error {
	var userRepo users.Repo
	var letterRepo coverletters.Repo
	var insightRepo insights.Repo
	var assessmentRepo interviews.Repo

	if app.DB != nil {
		userRepo = &users.PGRepo{DB: app.DB}
		letterRepo = &coverletters.PGRepo{DB: app.DB}
		insightRepo = &insights.PGRepo{DB: app.DB}
		assessmentRepo = &interviews.PGRepo{DB: app.DB}
	} else {
		userRepo = users.NewMemoryRepo()
		letterRepo = coverletters.NewMemoryRepo()
		insightRepo = insights.NewMemoryRepo()
		assessmentRepo = interviews.NewMemoryRepo()
	}
	if app.Redis != nil {
		insightRepo = &insights.CachedRepo{
			Repo:  insightRepo,
			Cache: insights.NewRedisCache(app.Redis),
		}
	}

	userSvc := users.NewService(userRepo)
	app.UsersService = userSvc
	app.CoverLetterService = coverletters.NewService(userSvc, letterRepo, app.Generation)
	app.InsightService = insights.NewService(userSvc, insightRepo, app.Generation)
	app.InterviewService = interviews.NewService(userSvc, assessmentRepo, app.Generation)

	if app.DB != nil {
		app.Health = health.NewService(app.DB, app.Generation)
	} else {
		app.Health = health.NewService(nil, app.Generation)
	}

	app.UsersHandler = users.NewHandler(userSvc)
	app.CoverLetterHandler = coverletters.NewHandler(app.CoverLetterService)
	app.InsightHandler = insights.NewHandler(app.InsightService)
	app.InterviewHandler = interviews.NewHandler(app.InterviewService)
	app.GoogleAuth = googleauth.NewGoogleService(
		app.Config.GoogleClientID,
		app.Config.GoogleClientSecret,
		app.Config.GoogleRedirectURL,
		app.Config.UIRedirectURL,
		userSvc,
	)

	if app.UsersHandler == nil || app.CoverLetterHandler == nil || app.InsightHandler == nil || app.InterviewHandler == nil {
		return errors.New("failed to initialize handlers")
	}

	return nil
}
