package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/autoxpert/feedback-backend/internal/feedback"
	"github.com/autoxpert/feedback-backend/internal/services"
	"github.com/autoxpert/feedback-backend/internal/utils"
	"github.com/autoxpert/feedback-backend/pkg/logger"
	"github.com/gin-gonic/gin"
)

// statusClientClosedRequest is nginx's code for a caller that went away.
const statusClientClosedRequest = 499

// respondError maps service errors onto HTTP responses. Every branch writes a
// message the app can show as-is.
func respondError(c *gin.Context, err error, message string) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, feedback.ErrEmptyComment):
		status, message = http.StatusBadRequest, "Please enter a comment."
	case errors.Is(err, services.ErrProductNotFound), errors.Is(err, services.ErrStoreNotFound):
		status = http.StatusNotFound
	case errors.Is(err, services.ErrInvalidStore), errors.Is(err, services.ErrInvalidProduct):
		status = http.StatusBadRequest
	case errors.Is(err, services.ErrStoreExists):
		status = http.StatusConflict
	case errors.Is(err, services.ErrSubmissionInProgress):
		status, message = http.StatusConflict, "Your previous feedback is still being processed."
	case errors.Is(err, services.ErrClassificationTimeout):
		status, message = http.StatusGatewayTimeout, "The sentiment service took too long to respond. Please try again."
	case errors.Is(err, services.ErrClassificationFailed):
		status, message = http.StatusBadGateway, "Something went wrong while analysing your feedback."
	case errors.Is(err, context.Canceled):
		status = statusClientClosedRequest
	}

	entry := logger.WithFields(logger.Fields{
		"status": status,
		"path":   c.FullPath(),
	}).WithError(err)
	if status >= http.StatusInternalServerError {
		entry.Error(message)
	} else {
		entry.Debug(message)
	}

	utils.SendError(c, status, message, err)
}

func parseID(c *gin.Context, param string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(param), 10, 32)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}
