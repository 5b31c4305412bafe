package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Shoyeb45/resume-analyzer/internal/analyses"
	"github.com/Shoyeb45/resume-analyzer/internal/analyzer"
	googleauth "github.com/Shoyeb45/resume-analyzer/internal/auth"
	"github.com/Shoyeb45/resume-analyzer/internal/background"
	"github.com/Shoyeb45/resume-analyzer/internal/llm"
	openai "github.com/Shoyeb45/resume-analyzer/internal/llm/openai"
	"github.com/Shoyeb45/resume-analyzer/internal/resumes"
	"github.com/Shoyeb45/resume-analyzer/internal/shared/config"
	"github.com/Shoyeb45/resume-analyzer/internal/shared/server"
	"github.com/Shoyeb45/resume-analyzer/internal/shared/storage/db"
	"github.com/Shoyeb45/resume-analyzer/internal/users"
)

// App holds the wired dependencies of one running instance.
type App struct {
	Config config.Config
	Router *gin.Engine
	DB     *sql.DB
	Runner *background.Runner

	ResumesRepo  resumes.Repo
	AnalysesRepo analyses.Repo
	UsersRepo    users.Repo

	ResumesService *resumes.Service
	UsersService   *users.Service
	Analyzer       *analyzer.Analyzer

	ResumesHandler  *resumes.Handler
	AnalysesHandler *analyses.Handler
	UsersHandler    *users.Handler
	GoogleAuth      *googleauth.GoogleService
}

// Build prepares dependencies and the router.
func Build(cfg config.Config) (*App, error) {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "dev"
	}
	ctx := context.Background()

	sqlDB, err := buildDB(ctx, cfg)
	if err != nil {
		return nil, err
	}

	client, err := buildLLMClient(cfg)
	if err != nil {
		return nil, err
	}

	app := &App{
		Config:   cfg,
		DB:       sqlDB,
		Runner:   background.NewRunner(0),
		Analyzer: analyzer.New(client),
	}

	if sqlDB != nil {
		app.ResumesRepo = &resumes.PGRepo{DB: sqlDB}
		app.AnalysesRepo = &analyses.PGRepo{DB: sqlDB}
		app.UsersRepo = &users.PGRepo{DB: sqlDB}
	} else {
		resumeRepo := resumes.NewMemoryRepo()
		analysisRepo := analyses.NewMemoryRepo()
		resumeRepo.Analyses = analysisRepo
		analysisRepo.Resumes = resumeRepo
		app.ResumesRepo = resumeRepo
		app.AnalysesRepo = analysisRepo
		app.UsersRepo = users.NewMemoryRepo()
	}

	app.UsersService = users.NewService(app.UsersRepo)
	app.ResumesService = &resumes.Service{
		Repo:     app.ResumesRepo,
		Analyses: app.AnalysesRepo,
		Analyzer: app.Analyzer,
		Runner:   app.Runner,
	}

	app.ResumesHandler = resumes.NewHandler(app.ResumesService)
	app.AnalysesHandler = analyses.NewHandler(app.AnalysesRepo)
	app.UsersHandler = users.NewHandler(app.UsersService)
	app.GoogleAuth = googleauth.NewGoogleService(
		cfg.GoogleClientID,
		cfg.GoogleClientSecret,
		cfg.GoogleRedirectURL,
		cfg.UIRedirectURL,
		cfg.CookieDomain,
		cfg.CookieSecure,
		app.UsersService,
	)

	app.Router = server.NewRouter(server.RouterDeps{
		Config:          cfg,
		ResumesHandler:  app.ResumesHandler,
		AnalysesHandler: app.AnalysesHandler,
		UsersHandler:    app.UsersHandler,
		GoogleAuth:      app.GoogleAuth,
	})

	return app, nil
}

// Shutdown drains background tasks and closes the database.
func (a *App) Shutdown(ctx context.Context) error {
	var err error
	if a.Runner != nil {
		err = a.Runner.Shutdown(ctx)
	}
	if a.DB != nil {
		if closeErr := a.DB.Close(); err == nil {
			err = closeErr
		}
	}
	return err
}

func buildDB(ctx context.Context, cfg config.Config) (*sql.DB, error) {
	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: DATABASE_URL empty; using in-memory repositories")
			return nil, nil
		}
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	opts := db.OptionsFromEnv(db.DefaultServerOptions())
	sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, opts)
	if err != nil {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: database connect failed; using in-memory repositories: %v", err)
			return nil, nil
		}
		return nil, err
	}

	if err := db.RunMigrations(ctx, sqlDB); err != nil {
		sqlDB.Close()
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: migrations failed; using in-memory repositories: %v", err)
			return nil, nil
		}
		return nil, err
	}

	return sqlDB, nil
}

func buildLLMClient(cfg config.Config) (llm.Client, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.LLMProvider)) {
	case "", "openai":
		apiKey := strings.TrimSpace(os.Getenv("OPENAI_API_KEY"))
		if apiKey == "" {
			if isDevLike(cfg.Env) {
				log.Printf("bootstrap: OPENAI_API_KEY empty; analysis endpoints will fail until configured")
				return llm.PlaceholderClient{}, nil
			}
			return nil, fmt.Errorf("OPENAI_API_KEY is required")
		}
		model := strings.TrimSpace(cfg.LLMModel)
		if model == "" {
			model = "gpt-4o-mini"
		}
		return openai.NewClient(apiKey, model)
	case "none":
		return llm.PlaceholderClient{}, nil
	default:
		return nil, fmt.Errorf("unknown LLM_PROVIDER %q", cfg.LLMProvider)
	}
}

func isDevLike(env string) bool {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "dev", "local":
		return true
	default:
		return false
	}
}
