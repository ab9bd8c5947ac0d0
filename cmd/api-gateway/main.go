package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"

	_ "github.com/noah-isme/college-portal-api/api/swagger"
	"github.com/noah-isme/college-portal-api/internal/handler"
	"github.com/noah-isme/college-portal-api/internal/models"
	"github.com/noah-isme/college-portal-api/internal/repository"
	"github.com/noah-isme/college-portal-api/internal/service"
	"github.com/noah-isme/college-portal-api/pkg/cache"
	"github.com/noah-isme/college-portal-api/pkg/config"
	"github.com/noah-isme/college-portal-api/pkg/database"
	"github.com/noah-isme/college-portal-api/pkg/jobs"
	"github.com/noah-isme/college-portal-api/pkg/logger"
	"github.com/noah-isme/college-portal-api/pkg/storage"
)

// @title College Portal API
// @version 1.0.0
// @description Lecturer ratings, student challenges, course assignments, timetables and reports
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

const cacheNamespace = "college"

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

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := database.NewPostgres(ctx, cfg.Database)
	if err != nil {
		logr.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer db.Close()
	if err := database.EnsureSchema(ctx, db); err != nil {
		logr.Fatal("failed to apply schema", zap.Error(err))
	}

	mongoClient, mongoDB, err := database.NewMongo(ctx, cfg.Mongo)
	if err != nil {
		logr.Fatal("failed to connect mongo", zap.Error(err))
	}
	defer func() {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = mongoClient.Disconnect(disconnectCtx)
	}()
	if err := database.EnsureMongoIndexes(ctx, mongoDB, database.DefaultMongoIndexes(feedbackCollections()...)); err != nil {
		logr.Warn("failed to ensure mongo indexes", zap.Error(err))
	}

	redisClient, err := cache.NewRedis(ctx, cfg.Redis)
	if err != nil {
		logr.Warn("redis unavailable, dashboard cache disabled", zap.Error(err))
		redisClient = nil
	}
	if redisClient != nil {
		defer redisClient.Close()
	}

	app, err := buildApp(ctx, cfg, logr, db, mongoDB, redisClient)
	if err != nil {
		logr.Fatal("failed to wire services", zap.Error(err))
	}
	defer app.shutdown()

	app.handlers.health = handler.NewHealthHandler(storeChecks(db, mongoClient, redisClient)...)
	router := newRouter(cfg, logr, app.handlers, app.metrics, app.auth)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logr.Sugar().Infow("server starting", "addr", srv.Addr, "env", cfg.Env, "enforceAuth", cfg.EnforceAuth)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logr.Sugar().Fatalw("server failed", "error", err)
		}
	}()

	<-ctx.Done()
	logr.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logr.Error("graceful shutdown failed", zap.Error(err))
	}
}

type application struct {
	handlers handlers
	metrics  *service.MetricsService
	auth     *service.AuthService
	pool     *jobs.Pool
}

func (a *application) shutdown() {
	if a.pool != nil {
		a.pool.Stop()
	}
}

func buildApp(ctx context.Context, cfg *config.Config, logr *zap.Logger, db *sqlx.DB, mongoDB *mongo.Database, redisClient *redis.Client) (*application, error) {
	validate := validator.New()
	metrics := service.NewMetricsService()

	users := repository.NewUserRepository(db)
	lecturers := repository.NewLecturerRepository(db)
	courses := repository.NewAssignedCourseRepository(db)
	timetables := repository.NewTimetableRepository(db)
	exportJobs := repository.NewExportJobRepository(db)
	challenges := repository.NewChallengeRepository(mongoDB)
	ratings := repository.NewRatingRepository(mongoDB)
	reports := repository.NewReportRepository(mongoDB)
	principalReports := repository.NewPrincipalReportRepository(mongoDB)
	tickets := repository.NewTicketRepository(mongoDB)

	cacheService := service.NewCacheService(repository.NewCacheRepository(redisClient, cacheNamespace), metrics, cfg.Dashboard.CacheTTL, logr)

	authService := service.NewAuthService(users, validate, logr, service.AuthConfig{
		Secret: cfg.JWT.Secret,
		Expiry: cfg.JWT.Expiration,
		Issuer: cfg.JWT.Issuer,
	})
	lecturerService := service.NewLecturerService(lecturers, logr)
	challengeService := service.NewChallengeService(challenges, cacheService, validate, logr)
	ratingService := service.NewRatingService(ratings, lecturers, cacheService, validate, metrics, logr)
	courseService := service.NewCourseService(courses, cacheService, validate, logr)
	timetableService := service.NewTimetableService(timetables, validate, logr)
	reportService := service.NewReportService(reports, cacheService, validate, logr)
	principalReportService := service.NewPrincipalReportService(principalReports, validate, logr)
	feedbackService := service.NewFeedbackService(tickets, models.DefaultChannels, validate, logr)
	dashboardService := service.NewDashboardService(service.DashboardServiceParams{
		Challenges: challenges,
		Ratings:    ratings,
		Lecturers:  lecturers,
		Courses:    courses,
		Reports:    reports,
		Cache:      cacheService,
		Metrics:    metrics,
		Logger:     logr,
		CacheTTL:   cfg.Dashboard.CacheTTL,
	})

	if cfg.SeedData {
		if err := service.NewSeedService(lecturers, principalReports, logr).Run(ctx); err != nil {
			logr.Warn("default data seeding failed", zap.Error(err))
		}
	}

	app := &application{metrics: metrics, auth: authService}

	var exportHandler *handler.ExportHandler
	if cfg.Exports.Enabled {
		files, err := storage.NewLocalStorage(cfg.Exports.StorageDir)
		if err != nil {
			return nil, fmt.Errorf("init export storage: %w", err)
		}
		exporter := service.NewExportService(service.ExportSources{
			Challenges: challenges,
			Ratings:    ratings,
			Lecturers:  lecturers,
			Courses:    courses,
			Timetables: timetables,
		}, files, storage.NewSigner(cfg.Exports.SignedURLSecret, cfg.Exports.SignedURLTTL), service.ExportConfig{
			APIPrefix: cfg.APIPrefix,
			ResultTTL: cfg.Exports.SignedURLTTL,
		}, logr)

		exportJobService := service.NewExportJobService(exportJobs, nil, exporter, validate, metrics, logr, service.ExportJobConfig{
			ResultTTL:       cfg.Exports.SignedURLTTL,
			CleanupInterval: cfg.Exports.CleanupInterval,
		})
		worker := service.NewExportWorker(exportJobs, exporter, metrics, cfg.Exports.WorkerRetries, logr)
		app.pool = jobs.NewPool("exports", worker.Handle, jobs.Options{
			Workers:    cfg.Exports.WorkerConcurrency,
			MaxRetries: cfg.Exports.WorkerRetries,
			RetryDelay: 2 * time.Second,
			Logger:     logr,
		})
		app.pool.Start(ctx)
		exportJobService.SetQueue(app.pool)
		exportJobService.RecoverPending(ctx)
		exportJobService.StartCleanup(ctx)
		exportHandler = handler.NewExportHandler(exportJobService)
	}

	app.handlers = handlers{
		auth:       handler.NewAuthHandler(authService),
		lecturers:  handler.NewLecturerHandler(lecturerService),
		challenges: handler.NewChallengeHandler(challengeService),
		ratings:    handler.NewRatingHandler(ratingService),
		courses:    handler.NewCourseHandler(courseService),
		timetable:  handler.NewTimetableHandler(timetableService),
		reports:    handler.NewReportHandler(reportService, principalReportService),
		feedback:   handler.NewFeedbackHandler(feedbackService),
		dashboard:  handler.NewDashboardHandler(dashboardService),
		exports:    exportHandler,
	}
	return app, nil
}

func feedbackCollections() []string {
	names := make([]string, 0, len(models.DefaultChannels))
	for _, spec := range models.DefaultChannels {
		names = append(names, spec.Collection)
	}
	return names
}

func storeChecks(db *sqlx.DB, mongoClient *mongo.Client, redisClient *redis.Client) []handler.StoreCheck {
	checks := []handler.StoreCheck{
		{Name: "postgres", Required: true, Ping: db.PingContext},
		{Name: "mongodb", Required: true, Ping: func(ctx context.Context) error {
			return mongoClient.Ping(ctx, readpref.Primary())
		}},
	}
	if redisClient != nil {
		checks = append(checks, handler.StoreCheck{Name: "redis", Ping: repository.NewCacheRepository(redisClient, cacheNamespace).Ping})
	}
	return checks
}
