package handler

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/noah-isme/edu-advisor-api/internal/middleware"
	"github.com/noah-isme/edu-advisor-api/internal/models"
)

// Handlers groups every HTTP handler the API serves. Exports may be nil when
// background exports are disabled.
type Handlers struct {
	Auth        *AuthHandler
	Queries     *QueryHandler
	Reports     *ReportHandler
	Consultants *ConsultantHandler
	Admissions  *AdmissionHandler
	Calls       *CallHandler
	Maintenance *MaintenanceHandler
	Exports     *ExportHandler
	Catalog     *CatalogHandler
	EduBuddy    *EduBuddyHandler
	Metrics     *MetricsHandler
}

// RouterConfig carries the cross-cutting pieces of the route table.
type RouterConfig struct {
	APIPrefix     string
	Tokens        middleware.TokenValidator
	PublicLimiter gin.HandlerFunc
	LoginLimiter  gin.HandlerFunc
	AuditLogger   *zap.Logger
}

func passThrough(c *gin.Context) { c.Next() }

// RegisterRoutes mounts the API on r.
func RegisterRoutes(r *gin.Engine, h Handlers, cfg RouterConfig) {
	if cfg.APIPrefix == "" {
		cfg.APIPrefix = "/api"
	}
	if cfg.PublicLimiter == nil {
		cfg.PublicLimiter = passThrough
	}
	if cfg.LoginLimiter == nil {
		cfg.LoginLimiter = passThrough
	}
	audit := func(action, resource string) gin.HandlerFunc {
		return middleware.Audit(cfg.AuditLogger, action, resource)
	}

	r.GET("/health", h.Metrics.Health)
	r.GET("/ready", h.Metrics.Ready)
	r.GET("/metrics", h.Metrics.Prometheus)

	api := r.Group(cfg.APIPrefix)

	// public
	api.POST("/queries", cfg.PublicLimiter, h.Queries.Submit)
	api.GET("/colleges", h.Catalog.Colleges)
	api.GET("/colleges/:id", h.Catalog.College)
	api.GET("/courses", h.Catalog.Courses)
	api.GET("/courses/:id", h.Catalog.Course)
	api.POST("/admin/login", cfg.LoginLimiter, h.Auth.AdminLogin)
	api.POST("/consultant/login", cfg.LoginLimiter, h.Auth.ConsultantLogin)
	api.GET("/edu-buddy/popular-queries", h.EduBuddy.PopularQueries)
	if h.Exports != nil {
		api.GET("/export/:token", h.Exports.Download)
	}

	authed := api.Group("")
	authed.Use(middleware.JWT(cfg.Tokens))
	authed.POST("/auth/logout", h.Auth.Logout)

	admin := middleware.RequireRoles(models.RoleAdmin)
	self := middleware.RBAC(string(models.RoleAdmin), middleware.Self)

	queries := authed.Group("/queries", admin)
	queries.GET("", h.Queries.List)
	queries.GET("/export", h.Queries.Export)
	queries.GET("/:id", h.Queries.Get)
	queries.PATCH("/:id/status", audit("update_status", "query"), h.Queries.UpdateStatus)
	queries.DELETE("/:id", audit("delete", "query"), h.Queries.Delete)

	adm := authed.Group("/admin", admin)
	adm.GET("/consultant-reports", h.Reports.AdminList)
	adm.GET("/consultant-reports/export", h.Reports.Export)
	adm.GET("/consultants", h.Consultants.List)
	adm.POST("/consultants", audit("create", "consultant"), h.Consultants.Create)
	adm.PUT("/consultants/:user_id", audit("update", "consultant"), h.Consultants.Update)
	adm.DELETE("/consultants/:user_id", audit("delete", "consultant"), h.Consultants.Delete)
	adm.GET("/admissions", h.Admissions.List)
	adm.GET("/admissions/export", h.Admissions.Export)
	adm.POST("/admissions", audit("create", "admission"), h.Admissions.Create)
	adm.PUT("/admissions/:id", audit("update", "admission"), h.Admissions.Update)
	adm.DELETE("/admissions/:id", audit("delete", "admission"), h.Admissions.Delete)
	adm.GET("/calls", h.Calls.Overview)
	adm.DELETE("/calls/:consultant_id", audit("delete", "call_stats"), h.Calls.DeleteForConsultant)
	adm.POST("/verify-password", cfg.LoginLimiter, h.Maintenance.VerifyPassword)
	adm.POST("/bulk-delete", audit("bulk_delete", "records"), h.Maintenance.BulkDelete)
	if h.Exports != nil {
		adm.POST("/exports", h.Exports.CreateJob)
		adm.GET("/exports/:id", h.Exports.JobStatus)
	}

	consultant := authed.Group("/consultant")
	consultant.GET("/reports/:consultant_id", self, h.Reports.ListForConsultant)
	consultant.POST("/reports", self, h.Reports.Submit)
	consultant.DELETE("/reports/:id", admin, audit("delete", "consultant_report"), h.Reports.Delete)
	consultant.GET("/admissions/:consultant_id", self, h.Admissions.ForConsultant)
	consultant.GET("/calls/:consultant_id", self, h.Calls.ForConsultant)
	consultant.POST("/calls", self, h.Calls.Log)

	buddy := authed.Group("/edu-buddy")
	buddy.POST("/chat", h.EduBuddy.Chat)
	buddy.POST("/analyze-student", h.EduBuddy.AnalyzeStudent)
}
