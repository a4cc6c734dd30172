package checkout

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/wovenlabs/store-api/models"
)

// Request is the storefront cart payload. The field is named productId for
// compatibility with existing storefront clients, but it carries variant ids.
type Request struct {
	ProductID []string `json:"productId"`
}

type CheckoutService interface {
	Checkout(ctx context.Context, storeID string, variantIDs []string) (string, error)
}

type Handler struct {
	service CheckoutService
	logger  *slog.Logger
}

func NewHandler(service CheckoutService, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// HandleCheckout handles POST /api/:storeId/checkout.
func (h *Handler) HandleCheckout(c *gin.Context) {
	storeID := strings.TrimSpace(c.Param("storeId"))
	if storeID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "store id is required"})
		return
	}

	var req Request
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
		return
	}
	if len(req.ProductID) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "product id is required"})
		return
	}

	url, err := h.service.Checkout(c.Request.Context(), storeID, req.ProductID)
	if err != nil {
		var oos *OutOfStockError
		switch {
		case errors.As(err, &oos):
			c.JSON(http.StatusBadRequest, gin.H{
				"error":                "Out of stock",
				"outOfStockProductIds": oos.VariantIDs,
			})
		case errors.Is(err, ErrEmptyCart):
			c.JSON(http.StatusBadRequest, gin.H{"error": "products not found"})
		case errors.Is(err, models.ErrStoreNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "store not found"})
		default:
			h.logger.Error("checkout failed", "store_id", storeID, "err", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"url": url})
}
