package handlers

import (
	"strconv"

	"github.com/autoxpert/feedback-backend/internal/models"
	"github.com/autoxpert/feedback-backend/internal/services"
	"github.com/autoxpert/feedback-backend/internal/utils"
	"github.com/gin-gonic/gin"
)

type ProductHandler struct {
	catalogService  *services.CatalogService
	feedbackService *services.FeedbackService
}

func NewProductHandler(catalogService *services.CatalogService, feedbackService *services.FeedbackService) *ProductHandler {
	return &ProductHandler{
		catalogService:  catalogService,
		feedbackService: feedbackService,
	}
}

func (h *ProductHandler) SearchProducts(c *gin.Context) {
	var storeID uint
	if raw := c.Query("store_id"); raw != "" {
		parsed, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			utils.SendValidationError(c, "Invalid store ID")
			return
		}
		storeID = uint(parsed)
	}

	products, err := h.catalogService.SearchProducts(models.ProductFilter{
		Search:  c.Query("search"),
		Sort:    c.Query("sort"),
		StoreID: storeID,
	})
	if err != nil {
		respondError(c, err, "Invalid search parameters")
		return
	}

	utils.SendSuccess(c, "Products retrieved successfully", products)
}

func (h *ProductHandler) GetProduct(c *gin.Context) {
	id, ok := parseID(c, "product_id")
	if !ok {
		utils.SendValidationError(c, "Invalid product ID")
		return
	}

	product, err := h.catalogService.GetProduct(id)
	if err != nil {
		respondError(c, err, "Product not found")
		return
	}

	store, err := h.catalogService.GetStore(product.StoreID)
	if err != nil {
		respondError(c, err, "Failed to retrieve product store")
		return
	}

	summary, err := h.feedbackService.Summary(models.ProductTarget(id))
	if err != nil {
		respondError(c, err, "Failed to retrieve product feedback")
		return
	}

	utils.SendSuccess(c, "Product retrieved successfully", models.ProductDetails{
		Product: *product,
		Store:   *store,
		Summary: summary,
	})
}
