package orders

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/wovenlabs/store-api/models"
)

type OrderProvider interface {
	ListByStore(ctx context.Context, storeID string) ([]models.Order, error)
}

type Handler struct {
	repo   OrderProvider
	logger *slog.Logger
}

func NewHandler(repo OrderProvider, logger *slog.Logger) *Handler {
	return &Handler{repo: repo, logger: logger}
}

// HandleList handles GET /api/:storeId/orders for the admin dashboard.
func (h *Handler) HandleList(c *gin.Context) {
	storeID := c.Param("storeId")

	orders, err := h.repo.ListByStore(c.Request.Context(), storeID)
	if err != nil {
		h.logger.Error("order listing failed", "store_id", storeID, "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(http.StatusOK, orders)
}
