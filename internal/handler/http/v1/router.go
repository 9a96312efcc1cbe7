package v1

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes регистрирует все маршруты API v1.
// Изменяющие маршруты закрыты API-ключом и ограничением частоты запросов.
func (h *Handler) RegisterRoutes(api *gin.RouterGroup) {
	protected := []gin.HandlerFunc{
		APIKeyAuthMiddleware(h.cfg.APIKeys, h.logger),
		RateLimitMiddleware(h.cfg.RateLimitRPS, h.cfg.RateLimitBurst),
	}
	guard := func(handler gin.HandlerFunc) []gin.HandlerFunc {
		return append(append([]gin.HandlerFunc{}, protected...), handler)
	}

	// Маршруты чтения и удаления происшествий
	incidents := api.Group("/incidents")
	{
		incidents.GET("", h.listIncidents)
		incidents.DELETE("", guard(h.deleteIncidents)...)
		incidents.GET("/ids", h.listIncidentIDs)
		incidents.GET("/ids/:id", h.getIncident)
		incidents.GET("/epochs", h.listEpochs)
		incidents.GET("/issues", h.listIssues)
		incidents.GET("/published-range", h.getPublishedRange)
		incidents.GET("/updated-range", h.getUpdatedRange)
		incidents.GET("/coordinates-range", h.getCoordinatesRange)
	}

	// Маршруты асинхронных задач
	jobs := api.Group("/jobs")
	{
		jobs.GET("", h.listJobs)
		jobs.DELETE("", guard(h.deleteJobs)...)
		jobs.DELETE("/queue", guard(h.clearQueue)...)
		jobs.GET("/incidents", h.listRefreshJobs)
		jobs.POST("/incidents", guard(h.submitRefresh)...)
		jobs.GET("/plot", h.listPlotJobs)
		jobs.GET("/plot/:kind", h.listPlotKindJobs)
		jobs.POST("/plot/:kind", guard(h.submitPlot)...)
		jobs.GET("/jids", h.listJobIDs)
		jobs.GET("/jids/:jid", h.getJob)
	}

	// Маршрут Health-check
	api.GET("/system/health", h.healthCheck)
}
