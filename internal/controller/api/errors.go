package api

import (
	"errors"
	"net/http"

	"github.com/Freeeeeet/everyclass_server/internal/identifier"
	"github.com/Freeeeeet/everyclass_server/internal/service"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// respondError переводит ошибку сервиса в HTTP статус
func (h *Handler) respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, identifier.ErrDecode), errors.Is(err, identifier.ErrTypeMismatch):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid resource identifier"})
	case service.IsInvalidRequest(err):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case service.IsPermissionError(err):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case service.IsNotFound(err):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		h.logger.Error("Request failed",
			zap.String("path", c.Request.URL.Path),
			zap.Error(err),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
