package http

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"opsmetrics-service/internal/http/middleware"
	"opsmetrics-service/internal/model"
	"opsmetrics-service/internal/service"
)

type Handler struct {
	metrics *service.MetricsService
	log     zerolog.Logger
}

func NewHandler(metrics *service.MetricsService, log zerolog.Logger) *Handler {
	return &Handler{metrics: metrics, log: log}
}

func (h *Handler) Register(r *gin.Engine, authMiddleware gin.HandlerFunc) {
	protected := r.Group("/metrics")
	protected.Use(authMiddleware)

	protected.GET("/dashboard", h.getDashboard)
	protected.GET("/timeseries", h.getTimeSeries)
	protected.GET("/geographic", h.getGeographic)
	protected.GET("/sla", h.getSLA)
}

func (h *Handler) getDashboard(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("missing principal"))
		return
	}

	bundle, err := h.metrics.GetDashboard(c.Request.Context(), principal, h.parseContext(c))
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(bundle))
}

func (h *Handler) getTimeSeries(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("missing principal"))
		return
	}

	series, err := h.metrics.GetTimeSeries(c.Request.Context(), principal, h.parseContext(c))
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(series))
}

func (h *Handler) getGeographic(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("missing principal"))
		return
	}

	summary, err := h.metrics.GetGeographic(c.Request.Context(), principal, h.parseContext(c))
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(summary))
}

func (h *Handler) getSLA(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("missing principal"))
		return
	}

	summary, err := h.metrics.GetSLA(c.Request.Context(), principal, h.parseContext(c))
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(summary))
}

// parseContext reads the filter path, reference instant and granularity list
// from the query string. Unusable values are ignored, not rejected; the
// engine applies its own defaults.
func (h *Handler) parseContext(c *gin.Context) model.AggregationContext {
	aggCtx := model.AggregationContext{}

	if atStr := strings.TrimSpace(c.Query("at")); atStr != "" {
		if parsed, err := time.Parse(time.RFC3339, atStr); err == nil {
			aggCtx.Reference = parsed
		}
	}

	aggCtx.Filter = model.GeoFilter{
		Province: strings.TrimSpace(c.Query("province")),
		District: strings.TrimSpace(c.Query("district")),
		Sector:   strings.TrimSpace(c.Query("sector")),
	}

	for _, raw := range strings.Split(c.Query("granularity"), ",") {
		if granularity, ok := model.ParseGranularity(strings.ToLower(strings.TrimSpace(raw))); ok {
			aggCtx.Granularities = append(aggCtx.Granularities, granularity)
		}
	}

	return aggCtx
}

func (h *Handler) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrPermissionDenied):
		c.JSON(http.StatusForbidden, errorResponse(err.Error()))
	default:
		h.log.Error().Err(err).Msg("handler error")
		c.JSON(http.StatusInternalServerError, errorResponse("internal error"))
	}
}

func successResponse(data interface{}) gin.H {
	return gin.H{"data": data}
}

func errorResponse(message string) gin.H {
	return gin.H{"error": message}
}
