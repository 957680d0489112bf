package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/noah-isme/edu-advisor-api/api/swagger"
	"github.com/noah-isme/edu-advisor-api/internal/handler"
	"github.com/noah-isme/edu-advisor-api/internal/middleware"
	"github.com/noah-isme/edu-advisor-api/internal/repository"
	"github.com/noah-isme/edu-advisor-api/internal/service"
	"github.com/noah-isme/edu-advisor-api/pkg/cache"
	"github.com/noah-isme/edu-advisor-api/pkg/config"
	"github.com/noah-isme/edu-advisor-api/pkg/database"
	"github.com/noah-isme/edu-advisor-api/pkg/export"
	"github.com/noah-isme/edu-advisor-api/pkg/gemini"
	"github.com/noah-isme/edu-advisor-api/pkg/jobs"
	"github.com/noah-isme/edu-advisor-api/pkg/logger"
	corsmiddleware "github.com/noah-isme/edu-advisor-api/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/edu-advisor-api/pkg/middleware/requestid"
	"github.com/noah-isme/edu-advisor-api/pkg/records"
	"github.com/noah-isme/edu-advisor-api/pkg/storage"
	"github.com/noah-isme/edu-advisor-api/pkg/throttle"
)

// @title EDU Advisor API
// @version 1.0.0
// @description Back-office API for student enquiries, consultant calling reports, admissions and exports.
// @BasePath /
// @schemes http https
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.NewPostgres(ctx, cfg.Database)
	if err != nil {
		logr.Fatal("database connection failed", zap.Error(err))
	}
	defer db.Close()
	if cfg.Database.AutoMigrate {
		if err := database.Migrate(ctx, db.DB); err != nil {
			logr.Fatal("migrations failed", zap.Error(err))
		}
	}

	rdb, err := cache.NewRedis(ctx, cfg.Redis)
	if err != nil {
		logr.Fatal("redis connection failed", zap.Error(err))
	}
	defer rdb.Close()

	app, err := build(ctx, cfg, db, rdb, logr)
	if err != nil {
		logr.Fatal("failed to build application", zap.Error(err))
	}
	defer app.shutdown()

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.WithResponseMeta())
	r.Use(middleware.Metrics(app.metrics))

	handler.RegisterRoutes(r, app.handlers, handler.RouterConfig{
		APIPrefix:     cfg.APIPrefix,
		Tokens:        app.auth,
		PublicLimiter: throttle.NewIPRateLimiter(throttle.PerMinute(cfg.RateLimit.PublicPerMinute), cfg.RateLimit.PublicBurst, logr).Middleware(),
		LoginLimiter:  throttle.NewIPRateLimiter(throttle.PerMinute(cfg.RateLimit.LoginPerMinute), cfg.RateLimit.LoginBurst, logr).Middleware(),
		AuditLogger:   logr.Named("audit"),
	})

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		logr.Sugar().Infow("server starting", "addr", srv.Addr, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logr.Sugar().Fatalw("server failed", "error", err)
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logr.Warn("graceful shutdown failed", zap.Error(err))
	}
	logr.Info("server stopped")
}

type application struct {
	handlers handler.Handlers
	auth     *service.AuthService
	metrics  *service.MetricsService
	queue    *jobs.Queue
}

func (a *application) shutdown() {
	if a.queue != nil {
		a.queue.Stop()
	}
}

func build(ctx context.Context, cfg *config.Config, db *sqlx.DB, rdb *redis.Client, logr *zap.Logger) (*application, error) {
	validate := validator.New()
	formatter := records.NewTimestampFormatter(cfg.Display.Timezone, cfg.Display.FallbackOffset)
	metrics := service.NewMetricsService()

	queryRepo := repository.NewQueryRepository(db)
	consultantRepo := repository.NewConsultantRepository(db)
	reportRepo := repository.NewConsultantReportRepository(db)
	callRepo := repository.NewCallLogRepository(db)
	admissionRepo := repository.NewAdmissionRepository(db)
	exportJobRepo := repository.NewExportJobRepository(db)
	catalogRepo, err := repository.NewCatalogRepository()
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}

	cacheSvc := service.NewCacheService(repository.NewCacheRepository(rdb, logr), metrics, cfg.Cache.DefaultTTL, logr, cfg.Cache.Enabled)
	authSvc := service.NewAuthService(consultantRepo, repository.NewSessionRepository(rdb), validate, logr, service.AuthConfig{
		Secret:            cfg.JWT.Secret,
		Expiry:            cfg.JWT.Expiration,
		AdminUsername:     cfg.Admin.Username,
		AdminPasswordHash: cfg.Admin.PasswordHash,
	})
	if cfg.Admin.PasswordHash == "" {
		logr.Warn("ADMIN_PASSWORD_HASH is empty; admin login is disabled")
	}

	querySvc := service.NewQueryService(queryRepo, validate, formatter, cfg.Display.NewWindow, logr)
	consultantSvc := service.NewConsultantService(consultantRepo, validate, logr)
	reportSvc := service.NewReportService(reportRepo, consultantRepo, throttle.NewCooldown(cfg.Reports.SubmitCooldown), cacheSvc, metrics, formatter, validate, logr)
	callSvc := service.NewCallService(callRepo, consultantRepo, authSvc, cacheSvc, validate, logr)
	admissionSvc := service.NewAdmissionService(admissionRepo, consultantRepo, validate, logr)
	maintenanceSvc := service.NewMaintenanceService(service.MaintenanceTargets{
		Reports:    reportRepo,
		Queries:    queryRepo,
		Calls:      callRepo,
		Admissions: admissionRepo,
	}, authSvc, cacheSvc, formatter.Location(), validate, logr)

	var generator service.Generator
	if cfg.EduBuddy.Enabled && cfg.EduBuddy.APIKey != "" {
		client, err := gemini.NewClient(ctx, cfg.EduBuddy.APIKey, cfg.EduBuddy.Model)
		if err != nil {
			return nil, err
		}
		generator = client
	} else {
		logr.Info("edu buddy disabled")
	}
	buddySvc, err := service.NewEduBuddyService(generator, repository.NewChatHistoryRepository(rdb, cfg.EduBuddy.HistoryTTL, cfg.EduBuddy.MaxHistory), validate, logr)
	if err != nil {
		return nil, err
	}

	csv := export.NewCSVExporter()
	csv.CommaReplacement = cfg.Exports.CommaReplacement
	sources := service.ExportSources{Queries: queryRepo, Reports: reportRepo, Admissions: admissionRepo, Calls: callRepo}
	exportCfg := service.ExportConfig{APIPrefix: cfg.APIPrefix, ResultTTL: cfg.Exports.SignedURLTTL}

	app := &application{auth: authSvc, metrics: metrics}
	var exportHandler *handler.ExportHandler
	exportSvc := service.NewExportService(sources, nil, nil, csv, formatter, exportCfg, logr)
	if cfg.Exports.Enabled {
		files, err := storage.NewLocalStorage(cfg.Exports.StorageDir)
		if err != nil {
			return nil, fmt.Errorf("export storage: %w", err)
		}
		exportSvc = service.NewExportService(sources, files, storage.NewSignedURLSigner(cfg.Exports.SignedURLSecret, cfg.Exports.SignedURLTTL), csv, formatter, exportCfg, logr)

		worker := service.NewExportWorker(exportJobRepo, exportSvc, logr).WithMetrics(metrics)
		var jobSvc *service.ExportJobService
		queue := jobs.NewQueue("exports", worker.Handle, jobs.QueueConfig{
			Workers:    cfg.Exports.WorkerConcurrency,
			MaxRetries: cfg.Exports.WorkerRetries,
			RetryDelay: 2 * time.Second,
			Logger:     logr,
			OnGiveUp: func(job jobs.Job, cause error) {
				jobSvc.MarkGaveUp(job, cause)
			},
		})
		jobSvc = service.NewExportJobService(exportJobRepo, queue, exportSvc, validate, logr, service.ExportJobConfig{
			ResultTTL:       cfg.Exports.SignedURLTTL,
			CleanupInterval: cfg.Exports.CleanupInterval,
		})
		queue.Start(ctx)
		if n := jobSvc.RecoverPendingJobs(ctx); n > 0 {
			logr.Info("recovered export jobs", zap.Int("count", n))
		}
		jobSvc.StartCleanup(ctx)
		app.queue = queue
		exportHandler = handler.NewExportHandler(jobSvc)
	}

	app.handlers = handler.Handlers{
		Auth:        handler.NewAuthHandler(authSvc),
		Queries:     handler.NewQueryHandler(querySvc, exportSvc),
		Reports:     handler.NewReportHandler(reportSvc, exportSvc),
		Consultants: handler.NewConsultantHandler(consultantSvc),
		Admissions:  handler.NewAdmissionHandler(admissionSvc, exportSvc),
		Calls:       handler.NewCallHandler(callSvc),
		Maintenance: handler.NewMaintenanceHandler(maintenanceSvc, authSvc),
		Exports:     exportHandler,
		Catalog:     handler.NewCatalogHandler(service.NewCatalogService(catalogRepo)),
		EduBuddy:    handler.NewEduBuddyHandler(buddySvc),
		Metrics: handler.NewMetricsHandler(metrics,
			handler.ReadinessCheck{Name: "postgres", Check: db.PingContext},
			handler.ReadinessCheck{Name: "redis", Check: func(ctx context.Context) error { return rdb.Ping(ctx).Err() }},
		),
	}
	return app, nil
}
