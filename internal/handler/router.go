package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yongin-adm/roster-adp-api/internal/middleware"
	"github.com/yongin-adm/roster-adp-api/internal/service"
)

// Handlers bundles every HTTP handler for route registration.
type Handlers struct {
	Auth         *AuthHandler
	Faculty      *FacultyHandler
	Assistant    *AssistantHandler
	Leave        *LeaveHandler
	Organization *OrganizationHandler
	Uploads      *UploadHandler
	Metrics      *MetricsHandler
}

// Register attaches all routes to the engine. Read endpoints are public; every
// mutation sits behind the admin JWT gate.
func Register(r *gin.Engine, prefix string, h Handlers, auth *service.AuthService, ready gin.HandlerFunc) {
	r.GET("/health", h.Metrics.Health)
	r.GET("/ready", ready)
	r.GET("/metrics", h.Metrics.Prometheus)

	api := r.Group(prefix)
	api.POST("/auth/login", h.Auth.Login)

	api.GET("/faculty", h.Faculty.Get)
	api.GET("/faculty/stats", h.Faculty.Stats)
	api.GET("/assistant", h.Assistant.Get)
	api.GET("/assistant/export", h.Assistant.Export)
	api.GET("/leave", h.Leave.Get)
	api.GET("/leave/export", h.Leave.Export)
	api.GET("/organization", h.Organization.Get)

	admin := api.Group("", middleware.JWT(auth))
	admin.PUT("/assistant/allocations", h.Assistant.UpdateAllocations)
	admin.PUT("/organization", h.Organization.Update)
	admin.POST("/uploads/faculty", h.Uploads.Faculty)
	admin.POST("/uploads/assistant", h.Uploads.Assistant)
	admin.POST("/uploads/appointment", h.Uploads.Appointment)
	admin.POST("/uploads/research-leave", h.Uploads.ResearchLeave)
	admin.GET("/uploads/history", h.Uploads.History)
}

// StaticReady is the readiness probe used when no dependency checks apply.
func StaticReady(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ready"})
}
