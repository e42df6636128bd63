package handler

import (
	"net/http"

	"nft-recon/internal/domain"

	"github.com/gin-gonic/gin"
)

// GetChains godoc
// @Summary      List supported chains
// @Description  Returns the chain ID to OpenSea slug translation table
// @Tags         chains
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Security     ApiKeyAuth
// @Router       /api/chains [get]
func (h *Handler) GetChains(c *gin.Context) {
	_, span := h.tracer.Start(c.Request.Context(), "handler.get-chains")
	defer span.End()

	c.JSON(http.StatusOK, gin.H{"chains": domain.SupportedChains()})
}
