package controllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/spycce/SmartTrip/middleware"
	"github.com/spycce/SmartTrip/models"
)

// storeTimeout bounds handlers that only talk to the database.
const storeTimeout = 100 * time.Second

var validate = validator.New()

// statusFor maps the error taxonomy onto HTTP.
func statusFor(err error) int {
	switch {
	case errors.Is(err, models.ErrUnauthorized),
		errors.Is(err, models.ErrInvalidToken),
		errors.Is(err, models.ErrInvalidCredential):
		return http.StatusUnauthorized
	case errors.Is(err, models.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, models.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, models.ErrDuplicateEmail):
		return http.StatusConflict
	case errors.Is(err, models.ErrBadRequest):
		return http.StatusBadRequest
	case errors.Is(err, models.ErrPayloadTooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, models.ErrUpstream), errors.Is(err, models.ErrParse):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// respondError writes err with its mapped status. fallback is shown for unexpected
// failures, whose detail only goes to the request log. Input, configuration and
// upstream errors are shown as they are so the client can display them.
func respondError(c *gin.Context, err error, fallback string) {
	status := statusFor(err)
	_ = c.Error(err)

	message := fallback
	switch {
	case errors.Is(err, models.ErrNotConfigured),
		status == http.StatusBadRequest,
		status == http.StatusBadGateway,
		status == http.StatusRequestEntityTooLarge:
		message = err.Error()
	case status != http.StatusInternalServerError:
		message = publicMessage(err)
	}
	c.JSON(status, gin.H{"error": message})
}

// publicMessage is the sentinel text without any wrapped detail.
func publicMessage(err error) string {
	for _, sentinel := range []error{
		models.ErrInvalidCredential, models.ErrInvalidToken, models.ErrUnauthorized,
		models.ErrForbidden, models.ErrNotFound, models.ErrDuplicateEmail,
	} {
		if errors.Is(err, sentinel) {
			return sentinel.Error()
		}
	}
	return err.Error()
}

func badRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, gin.H{"error": message})
}

func userID(c *gin.Context) string {
	return c.GetString(middleware.UserIDKey)
}
