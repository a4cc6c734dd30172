package products

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/wovenlabs/store-api/models"
)

// UpsertRequest is the admin product form payload. The image set is
// submitted whole and replaces whatever is stored.
type UpsertRequest struct {
	Name       string          `json:"name"`
	Price      decimal.Decimal `json:"price"`
	CategoryID string          `json:"categoryId"`
	Images     []ImageInput    `json:"images"`
	IsFeatured bool            `json:"isFeatured"`
	IsArchived bool            `json:"isArchived"`
}

type ImageInput struct {
	URL string `json:"url" binding:"required"`
}

type ProductProvider interface {
	GetByID(ctx context.Context, id string) (*models.Product, error)
	ListForStorefront(ctx context.Context, storeID string, filters models.ProductFilters) ([]models.Product, error)
	Create(ctx context.Context, product *models.Product) error
	Update(ctx context.Context, product *models.Product) error
	Delete(ctx context.Context, id string) error
}

type Handler struct {
	repo   ProductProvider
	logger *slog.Logger
}

func NewHandler(repo ProductProvider, logger *slog.Logger) *Handler {
	return &Handler{repo: repo, logger: logger}
}

// HandleList handles GET /api/:storeId/products, the storefront listing.
func (h *Handler) HandleList(c *gin.Context) {
	storeID := c.Param("storeId")

	filters := models.ProductFilters{
		CategoryID: strings.TrimSpace(c.Query("categoryId")),
		SizeID:     strings.TrimSpace(c.Query("sizeId")),
		ColorID:    strings.TrimSpace(c.Query("colorId")),
		IsFeatured: c.Query("isFeatured") != "",
	}

	products, err := h.repo.ListForStorefront(c.Request.Context(), storeID, filters)
	if err != nil {
		h.logger.Error("product listing failed", "store_id", storeID, "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(http.StatusOK, products)
}

// HandleGet handles GET /api/:storeId/products/:productId.
func (h *Handler) HandleGet(c *gin.Context) {
	productID := c.Param("productId")

	product, err := h.repo.GetByID(c.Request.Context(), productID)
	if err != nil {
		if errors.Is(err, models.ErrProductNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
			return
		}
		h.logger.Error("product lookup failed", "product_id", productID, "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(http.StatusOK, product)
}

// HandleCreate handles POST /api/:storeId/products.
func (h *Handler) HandleCreate(c *gin.Context) {
	storeID := c.Param("storeId")

	req, ok := bindUpsert(c)
	if !ok {
		return
	}

	product := &models.Product{
		StoreID:    storeID,
		CategoryID: req.CategoryID,
		Name:       req.Name,
		Price:      req.Price,
		IsFeatured: req.IsFeatured,
		IsArchived: req.IsArchived,
		Images:     toImages(req.Images),
	}

	if err := h.repo.Create(c.Request.Context(), product); err != nil {
		h.logger.Error("product create failed", "store_id", storeID, "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(http.StatusCreated, product)
}

// HandleUpdate handles PATCH /api/:storeId/products/:productId. The payload
// is a full replacement, image set included.
func (h *Handler) HandleUpdate(c *gin.Context) {
	productID := c.Param("productId")

	req, ok := bindUpsert(c)
	if !ok {
		return
	}

	product := &models.Product{
		ID:         productID,
		CategoryID: req.CategoryID,
		Name:       req.Name,
		Price:      req.Price,
		IsFeatured: req.IsFeatured,
		IsArchived: req.IsArchived,
		Images:     toImages(req.Images),
	}

	if err := h.repo.Update(c.Request.Context(), product); err != nil {
		if errors.Is(err, models.ErrProductNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
			return
		}
		h.logger.Error("product update failed", "product_id", productID, "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	updated, err := h.repo.GetByID(c.Request.Context(), productID)
	if err != nil {
		h.logger.Error("product reload failed", "product_id", productID, "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(http.StatusOK, updated)
}

// HandleDelete handles DELETE /api/:storeId/products/:productId. Deletion
// is hard and cascades to the product's images and variants.
func (h *Handler) HandleDelete(c *gin.Context) {
	productID := c.Param("productId")

	if err := h.repo.Delete(c.Request.Context(), productID); err != nil {
		if errors.Is(err, models.ErrProductNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
			return
		}
		h.logger.Error("product delete failed", "product_id", productID, "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "product deleted"})
}

func bindUpsert(c *gin.Context) (UpsertRequest, bool) {
	var req UpsertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
		return req, false
	}

	if strings.TrimSpace(req.Name) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name is required"})
		return req, false
	}
	if req.Price.IsZero() || req.Price.IsNegative() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "price is required"})
		return req, false
	}
	if strings.TrimSpace(req.CategoryID) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "category id is required"})
		return req, false
	}
	if len(req.Images) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "images are required"})
		return req, false
	}
	return req, true
}

func toImages(inputs []ImageInput) []models.Image {
	images := make([]models.Image, len(inputs))
	for i, in := range inputs {
		images[i] = models.Image{URL: in.URL}
	}
	return images
}
