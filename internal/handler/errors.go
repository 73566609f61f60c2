package handler

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yourusername/pollapp-api/internal/middleware"
	apperrors "github.com/yourusername/pollapp-api/internal/pkg/errors"
	"github.com/yourusername/pollapp-api/internal/service"
	"github.com/yourusername/pollapp-api/pkg/auth"
)

// handleError переводит ошибку сервиса в HTTP ответ по ее категории.
// Клиент видит только статичное сообщение.
func handleError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, apperrors.ErrUnauthorized):
		status = http.StatusUnauthorized
	case errors.Is(err, apperrors.ErrForbidden):
		status = http.StatusForbidden
	case errors.Is(err, apperrors.ErrConflict):
		status = http.StatusConflict
	case errors.Is(err, apperrors.ErrValidation):
		status = http.StatusBadRequest
	}

	message := "Internal server error"
	var domainErr *service.DomainError
	if errors.As(err, &domainErr) {
		message = domainErr.Error()
	} else if status != http.StatusInternalServerError {
		message = http.StatusText(status)
	}

	if status == http.StatusInternalServerError {
		log.Printf("[Handler] request_id=%s %s %s: %v",
			middleware.GetRequestID(c), c.Request.Method, c.FullPath(), err)
	}

	if status == http.StatusUnauthorized {
		c.Header("WWW-Authenticate", "Bearer")
	}
	c.JSON(status, gin.H{"error": message})
}

// bindError отвечает 400 на невалидное тело запроса
func bindError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
}

// currentIdentity достает личность, положенную RequireAuth
func currentIdentity(c *gin.Context) (auth.Identity, bool) {
	identity, ok := middleware.GetIdentity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Could not validate user."})
		return auth.Identity{}, false
	}
	return identity, true
}
