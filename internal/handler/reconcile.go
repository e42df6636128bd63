package handler

import (
	"bytes"
	"context"
	"errors"
	"net/http"

	"nft-recon/internal/domain"
	"nft-recon/internal/report"
	"nft-recon/internal/service"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"
)

// ReconcileRequest is the POST /api/reconcile body. Times are UTC
// "YYYY-MM-DD HH:MM:SS" or RFC 3339; blank means unbounded.
type ReconcileRequest struct {
	Chain           string   `json:"chain" binding:"required"`
	ContractAddress string   `json:"contract_address" binding:"required"`
	TokenID         string   `json:"token_id" binding:"required"`
	StartTime       string   `json:"start_time,omitempty"`
	EndTime         string   `json:"end_time,omitempty"`
	EventTypes      []string `json:"event_types,omitempty"`
}

func (r ReconcileRequest) toServiceRequest() (service.Request, error) {
	from, err := domain.ParseTimeBound(r.StartTime)
	if err != nil {
		return service.Request{}, err
	}
	to, err := domain.ParseTimeBound(r.EndTime)
	if err != nil {
		return service.Request{}, err
	}
	req := service.Request{
		Chain:           r.Chain,
		ContractAddress: r.ContractAddress,
		TokenID:         r.TokenID,
		Window:          domain.TimeWindow{From: from, To: to},
	}
	for _, name := range r.EventTypes {
		et, err := domain.ParseEventType(name)
		if err != nil {
			return service.Request{}, err
		}
		req.EventTypes = append(req.EventTypes, et)
	}
	return req, nil
}

// PostReconcile godoc
// @Summary      Reconcile a token's marketplace activity
// @Description  Fetches listing, cancel and sale events from Lootex and OpenSea and diffs them by transaction hash
// @Tags         reconcile
// @Accept       json
// @Produce      json
// @Produce      plain
// @Param        request  body   ReconcileRequest  true   "Token and optional time window"
// @Param        format   query  string            false  "Response format (json, text)"  default(json)
// @Success      200  {object}  domain.Report
// @Failure      400  {object}  map[string]string
// @Failure      503  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Security     ApiKeyAuth
// @Router       /api/reconcile [post]
func (h *Handler) PostReconcile(c *gin.Context) {
	if h.reconciler == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "reconcile service unavailable"})
		return
	}

	ctx, span := h.tracer.Start(c.Request.Context(), "handler.post-reconcile")
	defer span.End()

	var body ReconcileRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	span.SetAttributes(
		attribute.String("chain", body.Chain),
		attribute.String("contract", body.ContractAddress),
		attribute.String("token_id", body.TokenID),
	)

	req, err := body.toServiceRequest()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	rep, err := h.reconciler.Run(ctx, req)
	switch {
	case errors.Is(err, service.ErrInvalidRequest):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		c.JSON(http.StatusGatewayTimeout, gin.H{"error": err.Error()})
		return
	case err != nil:
		span.RecordError(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	if c.Query("format") == "text" {
		var buf bytes.Buffer
		if err := report.Render(&buf, rep); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.Data(http.StatusOK, "text/plain; charset=utf-8", buf.Bytes())
		return
	}
	c.JSON(http.StatusOK, rep)
}
