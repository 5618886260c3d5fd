package handlers

import (
	"github.com/autoxpert/feedback-backend/internal/models"
	"github.com/autoxpert/feedback-backend/internal/services"
	"github.com/autoxpert/feedback-backend/internal/utils"
	"github.com/gin-gonic/gin"
)

type FeedbackHandler struct {
	feedbackService *services.FeedbackService
}

func NewFeedbackHandler(feedbackService *services.FeedbackService) *FeedbackHandler {
	return &FeedbackHandler{feedbackService: feedbackService}
}

func (h *FeedbackHandler) GetProductFeedback(c *gin.Context) {
	id, ok := parseID(c, "product_id")
	if !ok {
		utils.SendValidationError(c, "Invalid product ID")
		return
	}
	h.list(c, models.ProductTarget(id))
}

func (h *FeedbackHandler) SubmitProductFeedback(c *gin.Context) {
	id, ok := parseID(c, "product_id")
	if !ok {
		utils.SendValidationError(c, "Invalid product ID")
		return
	}
	h.submit(c, models.ProductTarget(id))
}

func (h *FeedbackHandler) GetStoreFeedback(c *gin.Context) {
	id, ok := parseID(c, "store_id")
	if !ok {
		utils.SendValidationError(c, "Invalid store ID")
		return
	}
	h.list(c, models.StoreTarget(id))
}

func (h *FeedbackHandler) SubmitStoreFeedback(c *gin.Context) {
	id, ok := parseID(c, "store_id")
	if !ok {
		utils.SendValidationError(c, "Invalid store ID")
		return
	}
	h.submit(c, models.StoreTarget(id))
}

func (h *FeedbackHandler) list(c *gin.Context, target models.Target) {
	list, err := h.feedbackService.List(target)
	if err != nil {
		respondError(c, err, "Failed to fetch feedback")
		return
	}

	utils.SendSuccess(c, "Feedback retrieved successfully", list)
}

func (h *FeedbackHandler) submit(c *gin.Context, target models.Target) {
	var req models.SubmitFeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, "Please enter a comment.")
		return
	}

	result, err := h.feedbackService.Submit(c.Request.Context(), target, req.Author, req.Comment)
	if err != nil {
		respondError(c, err, "Failed to submit feedback")
		return
	}

	utils.SendCreated(c, result.Message, result)
}
