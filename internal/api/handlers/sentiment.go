package handlers

import (
	"github.com/autoxpert/feedback-backend/internal/models"
	"github.com/autoxpert/feedback-backend/internal/services"
	"github.com/autoxpert/feedback-backend/internal/utils"
	"github.com/gin-gonic/gin"
)

type SentimentHandler struct {
	classifier services.Classifier
}

func NewSentimentHandler(classifier services.Classifier) *SentimentHandler {
	return &SentimentHandler{classifier: classifier}
}

// Analyze classifies a single comment without attaching it to any product or store.
func (h *SentimentHandler) Analyze(c *gin.Context) {
	var req models.AnalyzeSentimentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, "Please enter a comment.")
		return
	}

	sentiment, err := h.classifier.Classify(c.Request.Context(), req.Text)
	if err != nil {
		respondError(c, err, "Failed to analyse comment")
		return
	}

	utils.SendSuccess(c, "Prediction: "+string(sentiment), gin.H{"prediction": sentiment})
}
