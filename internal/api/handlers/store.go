package handlers

import (
	"strconv"

	"github.com/autoxpert/feedback-backend/internal/models"
	"github.com/autoxpert/feedback-backend/internal/services"
	"github.com/autoxpert/feedback-backend/internal/utils"
	"github.com/autoxpert/feedback-backend/pkg/logger"
	"github.com/gin-gonic/gin"
)

type StoreHandler struct {
	catalogService  *services.CatalogService
	feedbackService *services.FeedbackService
}

func NewStoreHandler(catalogService *services.CatalogService, feedbackService *services.FeedbackService) *StoreHandler {
	return &StoreHandler{
		catalogService:  catalogService,
		feedbackService: feedbackService,
	}
}

func (h *StoreHandler) ListStores(c *gin.Context) {
	minRating := 0.0
	if raw := c.Query("min_rating"); raw != "" {
		parsed, err := strconv.ParseFloat(raw, 64)
		if err != nil || parsed < 0 || parsed > 5 {
			utils.SendValidationError(c, "min_rating must be a number between 0 and 5")
			return
		}
		minRating = parsed
	}

	stores := h.catalogService.ListStores(models.StoreFilter{
		Search:    c.Query("search"),
		MinRating: minRating,
	})

	utils.SendSuccess(c, "Stores retrieved successfully", stores)
}

func (h *StoreHandler) GetStore(c *gin.Context) {
	id, ok := parseID(c, "store_id")
	if !ok {
		utils.SendValidationError(c, "Invalid store ID")
		return
	}

	store, err := h.catalogService.GetStore(id)
	if err != nil {
		respondError(c, err, "Store not found")
		return
	}

	products, err := h.catalogService.SearchProducts(models.ProductFilter{StoreID: id})
	if err != nil {
		respondError(c, err, "Failed to retrieve store products")
		return
	}

	summary, err := h.feedbackService.Summary(models.StoreTarget(id))
	if err != nil {
		respondError(c, err, "Failed to retrieve store feedback")
		return
	}

	utils.SendSuccess(c, "Store retrieved successfully", models.StoreDetails{
		Store:    *store,
		Products: products,
		Summary:  summary,
	})
}

func (h *StoreHandler) RegisterStore(c *gin.Context) {
	var req models.RegisterStoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, "All fields are required")
		return
	}

	store, err := h.catalogService.RegisterStore(req)
	if err != nil {
		respondError(c, err, "Failed to register store")
		return
	}

	logger.WithFields(logger.Fields{
		"store_id": store.ID,
		"email":    store.Email,
	}).Info("Store registered")

	utils.SendCreated(c, "Store registered successfully", store)
}

func (h *StoreHandler) AddProduct(c *gin.Context) {
	id, ok := parseID(c, "store_id")
	if !ok {
		utils.SendValidationError(c, "Invalid store ID")
		return
	}

	var req models.AddProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, "Name and price are required")
		return
	}

	product, err := h.catalogService.AddProduct(id, req)
	if err != nil {
		respondError(c, err, "Failed to add product")
		return
	}

	utils.SendCreated(c, "Product added successfully", product)
}
