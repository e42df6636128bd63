package handler

import (
	"context"

	"nft-recon/internal/domain"
	"nft-recon/internal/service"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/trace"
)

// Reconciler runs one reconciliation and returns its report.
type Reconciler interface {
	Run(ctx context.Context, req service.Request) (*domain.Report, error)
}

type Handler struct {
	tracer     trace.Tracer
	reconciler Reconciler
}

func New(tracer trace.Tracer, reconciler Reconciler) *Handler {
	return &Handler{
		tracer:     tracer,
		reconciler: reconciler,
	}
}

// RegisterRoutes mounts the public health check and the /api group. The /api
// group requires X-API-Key when apiKey is set.
func (h *Handler) RegisterRoutes(r *gin.Engine, apiKey string) {
	r.GET("/health", h.Health)

	api := r.Group("/api", APIKeyAuth(apiKey))
	api.GET("/chains", h.GetChains)
	api.POST("/reconcile", h.PostReconcile)
}
