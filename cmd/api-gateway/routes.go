package main

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"github.com/noah-isme/college-portal-api/internal/handler"
	"github.com/noah-isme/college-portal-api/internal/middleware"
	"github.com/noah-isme/college-portal-api/internal/models"
	"github.com/noah-isme/college-portal-api/internal/service"
	"github.com/noah-isme/college-portal-api/pkg/config"
	"github.com/noah-isme/college-portal-api/pkg/logger"
	corsmiddleware "github.com/noah-isme/college-portal-api/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/college-portal-api/pkg/middleware/requestid"
	"github.com/noah-isme/college-portal-api/pkg/response"
)

type handlers struct {
	auth       *handler.AuthHandler
	lecturers  *handler.LecturerHandler
	challenges *handler.ChallengeHandler
	ratings    *handler.RatingHandler
	courses    *handler.CourseHandler
	timetable  *handler.TimetableHandler
	reports    *handler.ReportHandler
	feedback   *handler.FeedbackHandler
	dashboard  *handler.DashboardHandler
	exports    *handler.ExportHandler
	health     *handler.HealthHandler
}

func newRouter(cfg *config.Config, logr *zap.Logger, h handlers, metrics *service.MetricsService, auth middleware.TokenValidator) *gin.Engine {
	r := gin.New()
	r.Use(gin.CustomRecovery(response.Recovery))
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins, cfg.IsProduction()))
	r.Use(middleware.Metrics(metrics, "/metrics", "/ready"))
	r.NoRoute(response.NotFoundRoute)

	r.GET("/metrics", gin.WrapH(metrics.Handler()))
	r.GET("/ready", h.health.Ready)
	if !cfg.IsProduction() {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)
	api.GET("/health", h.health.Health)
	api.POST("/signup", h.auth.Signup)
	api.POST("/login", h.auth.Login)

	// Without enforcement tokens are decoded when present but never required.
	authn := middleware.OptionalJWT(auth)
	reviewer := middleware.Passthrough()
	if cfg.EnforceAuth {
		authn = middleware.JWT(auth)
		reviewer = middleware.RequireRoles(models.RoleLecturer, models.RolePrincipal)
	}

	secured := api.Group("")
	secured.Use(authn)
	secured.GET("/me", middleware.JWT(auth), h.auth.Me)

	secured.GET("/lecturers", h.lecturers.List)
	secured.GET("/lecturers/search", h.lecturers.Search)
	secured.GET("/lecturers/:id", h.lecturers.Get)

	secured.POST("/challenges", h.challenges.Create)
	secured.GET("/challenges", h.challenges.List)
	secured.GET("/challenges/stats", h.challenges.Stats)
	secured.PUT("/challenges/:id", reviewer, h.challenges.Update)

	secured.POST("/ratings", h.ratings.Create)
	secured.GET("/ratings", h.ratings.List)
	secured.GET("/ratings/stats", h.ratings.Stats)

	secured.POST("/courses/assign", reviewer, h.courses.Assign)
	secured.GET("/courses/assigned", h.courses.List)
	secured.DELETE("/courses/assigned/:id", reviewer, h.courses.Delete)

	secured.POST("/timetable", reviewer, h.timetable.Upsert)
	secured.GET("/timetable", h.timetable.List)
	secured.DELETE("/timetable", reviewer, h.timetable.Delete)

	secured.POST("/reports", reviewer, h.reports.Create)
	secured.GET("/reports", h.reports.List)
	secured.DELETE("/reports/:id", reviewer, h.reports.Delete)
	secured.GET("/principal-reports", h.reports.ListPrincipal)
	secured.PUT("/principal-reports/:id", reviewer, h.reports.Respond)

	secured.POST("/feedback/:channel", h.feedback.Create)
	secured.GET("/feedback/:channel", h.feedback.List)

	secured.GET("/dashboard/stats", h.dashboard.Stats)

	if h.exports != nil {
		api.GET("/exports/download/:token", h.exports.Download)
		secured.POST("/exports", reviewer, h.exports.Create)
		secured.GET("/exports/:id", reviewer, h.exports.Get)
	}

	return r
}
