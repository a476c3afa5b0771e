package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"

	"resume-builder/internal/assist"
	googleauth "resume-builder/internal/auth"
	"resume-builder/internal/billing"
	stripeprovider "resume-builder/internal/billing/stripe"
	"resume-builder/internal/catalog"
	"resume-builder/internal/export"
	"resume-builder/internal/jobs"
	"resume-builder/internal/llm"
	"resume-builder/internal/llm/gemini"
	"resume-builder/internal/llm/openai"
	"resume-builder/internal/resumes"
	"resume-builder/internal/scoring"
	"resume-builder/internal/shared/config"
	"resume-builder/internal/shared/metrics"
	"resume-builder/internal/shared/server"
	"resume-builder/internal/shared/server/middleware"
	"resume-builder/internal/shared/storage/db"
	"resume-builder/internal/shared/storage/object"
	localstore "resume-builder/internal/shared/storage/object/local"
	s3store "resume-builder/internal/shared/storage/object/s3"
	"resume-builder/internal/shared/telemetry"
	"resume-builder/internal/templates"
	"resume-builder/internal/users"
)

// App holds shared dependencies and the assembled router.
type App struct {
	Config  config.Config
	Router  *gin.Engine
	DB      *sql.DB
	Store   object.ObjectStore
	LLM     llm.Client
	Metrics *metrics.Collector
	Limiter *middleware.RateLimiter

	Templates *templates.Registry

	UsersService   *users.Service
	ResumesService *resumes.Service
	JobsService    *jobs.Service
	AssistService  *assist.Service
	ExportService  *export.Service
	BillingService *billing.Service

	UsersHandler   *users.Handler
	ResumesHandler *resumes.Handler
	CatalogHandler *catalog.Handler
	JobsHandler    *jobs.Handler
	AssistHandler  *assist.Handler
	ExportHandler  *export.Handler
	BillingHandler *billing.Handler
	GoogleAuth     *googleauth.GoogleService
}

// Options override collaborators, mainly for tests.
type Options struct {
	LLM      llm.Client
	Printer  export.Printer
	Payments billing.Provider
	Registry *prometheus.Registry
}

// Build prepares dependencies and wires every route.
func Build(cfg config.Config) (*App, error) {
	return BuildWith(context.Background(), cfg, Options{})
}

// BuildWith is Build with explicit overrides.
func BuildWith(ctx context.Context, cfg config.Config, opts Options) (*App, error) {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "dev"
	}
	if strings.TrimSpace(cfg.ObjectStoreType) == "" {
		cfg.ObjectStoreType = "local"
	}

	sqlDB, err := buildDB(ctx, cfg)
	if err != nil {
		return nil, err
	}

	store, err := buildStore(ctx, cfg)
	if err != nil {
		return nil, err
	}

	llmClient := opts.LLM
	if llmClient == nil {
		llmClient, err = buildLLM(ctx, cfg)
		if err != nil {
			return nil, err
		}
	}

	payments := opts.Payments
	if payments == nil && cfg.PaymentsEnabled() {
		p, err := stripeprovider.New(cfg.StripeSecretKey, cfg.StripePriceID, cfg.CheckoutSuccessURL, cfg.CheckoutCancelURL)
		if err != nil {
			return nil, err
		}
		payments = p
	}

	printer := opts.Printer
	if printer == nil {
		printer = export.NewChromePrinter(cfg.ChromePath, cfg.ExportTimeout)
	}

	reg := opts.Registry
	if reg == nil {
		reg = prometheus.NewRegistry()
	}

	app := &App{
		Config:    cfg,
		DB:        sqlDB,
		Store:     store,
		LLM:       llmClient,
		Metrics:   metrics.NewCollector(reg),
		Templates: templates.Default(),
		Limiter:   middleware.NewRateLimiter(nil),
	}
	buildServices(app, printer, payments)

	app.Router = server.NewRouter(server.RouterDeps{
		Config:      cfg,
		Metrics:     app.Metrics,
		RateLimiter: app.Limiter,
		Handlers: []server.RouteRegistrar{
			app.GoogleAuth,
			app.UsersHandler,
			app.CatalogHandler,
			app.ResumesHandler,
			app.JobsHandler,
			app.AssistHandler,
			app.ExportHandler,
			app.BillingHandler,
		},
	})

	return app, nil
}

func buildDB(ctx context.Context, cfg config.Config) (*sql.DB, error) {
	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		if isDevLike(cfg.Env) {
			telemetry.Warn("bootstrap.memory_repos", map[string]any{"reason": "DATABASE_URL empty"})
			return nil, nil
		}
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, db.OptionsFromEnv(db.DefaultServerOptions()))
	if err == nil {
		err = db.RunMigrations(ctx, sqlDB)
	}
	if err != nil {
		if isDevLike(cfg.Env) {
			telemetry.Warn("bootstrap.memory_repos", map[string]any{"reason": "database unavailable", "error": err})
			return nil, nil
		}
		return nil, err
	}
	return sqlDB, nil
}

func buildStore(ctx context.Context, cfg config.Config) (object.ObjectStore, error) {
	switch cfg.ObjectStoreType {
	case "s3":
		if strings.TrimSpace(cfg.AWSRegion) == "" || strings.TrimSpace(cfg.S3Bucket) == "" {
			return nil, fmt.Errorf("OBJECT_STORE=s3 requires AWS_REGION and S3_BUCKET")
		}
		return s3store.New(ctx, cfg.AWSRegion, cfg.S3Bucket, cfg.S3Prefix, cfg.SSEKMSKeyID)
	default:
		return localstore.New(cfg.LocalStoreDir), nil
	}
}

// buildLLM picks the analyzer backend. A missing key disables AI features
// instead of failing startup.
func buildLLM(ctx context.Context, cfg config.Config) (llm.Client, error) {
	switch cfg.LLMProvider {
	case "openai":
		if cfg.OpenAIAPIKey == "" {
			telemetry.Warn("bootstrap.llm_disabled", map[string]any{"provider": cfg.LLMProvider, "reason": "OPENAI_API_KEY empty"})
			return llm.Disabled{}, nil
		}
		c, err := openai.NewPromptClient(cfg.OpenAIAPIKey, cfg.LLMModel, cfg.LLMTimeout)
		if err != nil {
			return nil, err
		}
		return c, nil
	case "gemini":
		if cfg.GoogleAPIKey == "" {
			telemetry.Warn("bootstrap.llm_disabled", map[string]any{"provider": cfg.LLMProvider, "reason": "GOOGLE_API_KEY empty"})
			return llm.Disabled{}, nil
		}
		c, err := gemini.New(ctx, cfg.GoogleAPIKey, cfg.LLMModel, cfg.LLMTimeout)
		if err != nil {
			return nil, err
		}
		return c, nil
	default:
		return llm.Disabled{}, nil
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

func buildServices(app *App, printer export.Printer, payments billing.Provider) {
	var (
		userRepo    users.Repo
		resumeRepo  resumes.Repo
		jobRepo     jobs.Repo
		exportRepo  export.Repo
		paymentRepo billing.ConfirmationRepo
	)
	if app.DB != nil {
		userRepo = &users.PGRepo{DB: app.DB}
		resumeRepo = &resumes.PGRepo{DB: app.DB}
		jobRepo = &jobs.PGRepo{DB: app.DB}
		exportRepo = &export.PGRepo{DB: app.DB}
		paymentRepo = &billing.PGRepo{DB: app.DB}
	} else {
		userRepo = users.NewMemoryRepo()
		resumeRepo = resumes.NewMemoryRepo()
		jobRepo = jobs.NewMemoryRepo()
		exportRepo = export.NewMemoryRepo()
		paymentRepo = billing.NewMemoryRepo()
	}

	userSvc := users.NewService(userRepo)
	resumeSvc := &resumes.Service{
		Repo:      resumeRepo,
		Tiers:     userSvc,
		Templates: app.Templates,
		Metrics:   app.Metrics,
	}
	jobSvc := &jobs.Service{
		Repo:     jobRepo,
		Resumes:  resumeSvc,
		LLM:      app.LLM,
		Engine:   scoring.Engine{},
		Metrics:  app.Metrics,
		Provider: app.Config.LLMProvider,
		Model:    app.Config.LLMModel,
	}
	assistSvc := &assist.Service{
		LLM:     app.LLM,
		Tiers:   userSvc,
		Resumes: resumeSvc,
		Jobs:    jobSvc,
		Metrics: app.Metrics,
	}
	exportSvc := &export.Service{
		Resumes: resumeSvc,
		Printer: printer,
		Store:   app.Store,
		Repo:    exportRepo,
		Metrics: app.Metrics,
	}
	billingSvc := &billing.Service{
		Provider:      payments,
		Confirmations: paymentRepo,
		Users:         userSvc,
		Metrics:       app.Metrics,
	}

	app.UsersService = userSvc
	app.ResumesService = resumeSvc
	app.JobsService = jobSvc
	app.AssistService = assistSvc
	app.ExportService = exportSvc
	app.BillingService = billingSvc

	app.UsersHandler = users.NewHandler(userSvc, resumeRepo)
	app.ResumesHandler = resumes.NewHandler(resumeSvc)
	app.CatalogHandler = catalog.NewHandler(app.Templates, userSvc, app.Metrics)
	app.JobsHandler = jobs.NewHandler(jobSvc)
	app.AssistHandler = assist.NewHandler(assistSvc)
	app.ExportHandler = export.NewHandler(exportSvc)
	app.BillingHandler = billing.NewHandler(billingSvc)
	app.GoogleAuth = googleauth.NewGoogleService(
		app.Config.GoogleClientID,
		app.Config.GoogleClientSecret,
		app.Config.GoogleRedirectURL,
		app.Config.UIRedirectURL,
		userSvc,
	)
}
