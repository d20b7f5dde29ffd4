package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/platewire/eatery-backend/internal/apierr"
)

// Error payloads are {"error": message}, with 400 for validation, duplicate
// and malformed-body failures and 404 for missing ids. Services signal the
// mapping through apierr.Error; anything else is treated as a bad request.
func RespondError(c *gin.Context, err error) {
	status := http.StatusBadRequest
	var ae *apierr.Error
	if errors.As(err, &ae) && ae.Status != 0 {
		status = ae.Status
	}
	msg := "unknown error"
	if err != nil {
		msg = err.Error()
	}
	c.JSON(status, gin.H{"error": msg})
}

func RespondBadRequest(c *gin.Context, err error) {
	msg := "bad request"
	if err != nil {
		msg = err.Error()
	}
	c.JSON(http.StatusBadRequest, gin.H{"error": msg})
}

func RespondOK(c *gin.Context, payload any) {
	c.JSON(http.StatusOK, payload)
}

func RespondCreated(c *gin.Context, payload any) {
	c.JSON(http.StatusCreated, payload)
}
