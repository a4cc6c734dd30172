package variants

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/wovenlabs/store-api/models"
)

// ReconcileRequest is the variants form submission for one product.
type ReconcileRequest struct {
	Variants []SubmittedVariant `json:"variants"`
}

type VariantReconciler interface {
	Reconcile(ctx context.Context, productID string, submitted []SubmittedVariant) ([]models.Variant, error)
}

type VariantReader interface {
	VariantsByProduct(ctx context.Context, productID string) ([]models.Variant, error)
	GetWithDetails(ctx context.Context, id string) (*models.Variant, error)
}

type Handler struct {
	reconciler VariantReconciler
	reader     VariantReader
	logger     *slog.Logger
}

func NewHandler(reconciler VariantReconciler, reader VariantReader, logger *slog.Logger) *Handler {
	return &Handler{reconciler: reconciler, reader: reader, logger: logger}
}

// HandleReconcile handles PATCH /api/:storeId/products/:productId/variants.
// It replies with the product's full variant list, archived rows included;
// the dashboard filters them client-side.
func (h *Handler) HandleReconcile(c *gin.Context) {
	productID := c.Param("productId")

	var req ReconcileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
		return
	}
	if req.Variants == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "variants are required"})
		return
	}

	result, err := h.reconciler.Reconcile(c.Request.Context(), productID, req.Variants)
	if err != nil {
		switch {
		case errors.Is(err, ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, models.ErrProductNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
		default:
			h.logger.Error("variant reconciliation failed", "product_id", productID, "err", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"productId": productID, "variants": toResponses(result)})
}

// HandleList handles GET /api/:storeId/products/:productId/variants.
func (h *Handler) HandleList(c *gin.Context) {
	productID := c.Param("productId")

	variants, err := h.reader.VariantsByProduct(c.Request.Context(), productID)
	if err != nil {
		h.logger.Error("variant listing failed", "product_id", productID, "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(http.StatusOK, toResponses(variants))
}

// HandleStorefrontGet handles GET /api/:storeId/product/:variantId, the
// storefront's single-variant lookup with size, color and product details.
func (h *Handler) HandleStorefrontGet(c *gin.Context) {
	variantID := c.Param("variantId")
	if variantID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "variant id is required"})
		return
	}

	variant, err := h.reader.GetWithDetails(c.Request.Context(), variantID)
	if err != nil {
		if errors.Is(err, models.ErrVariantNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "variant not found"})
			return
		}
		h.logger.Error("variant lookup failed", "variant_id", variantID, "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(http.StatusOK, variant)
}

// Response is the variant shape returned to the dashboard.
type Response struct {
	ID         string `json:"id"`
	ProductID  string `json:"productId"`
	SizeID     string `json:"sizeId"`
	ColorID    string `json:"colorId"`
	Quantity   int    `json:"quantity"`
	IsArchived bool   `json:"isArchived"`
}

func toResponses(variants []models.Variant) []Response {
	responses := make([]Response, len(variants))
	for i, v := range variants {
		responses[i] = Response{
			ID:         v.ID,
			ProductID:  v.ProductID,
			SizeID:     v.SizeID,
			ColorID:    v.ColorID,
			Quantity:   v.Quantity,
			IsArchived: v.IsArchived,
		}
	}
	return responses
}
