package api

import (
	"net/http"
	"strings"
	"time"

	"github.com/Freeeeeet/everyclass_server/internal/model"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	ctxUserID      = "userID"
	ctxAnonymousID = "anonymousID"

	// AnonymousCookie хранит суррогатный id анонимного посетителя
	AnonymousCookie = "ec_anon"
	anonymousMaxAge = 365 * 24 * 60 * 60
)

func requestLogger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		logger.Info("HTTP request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
		)
	}
}

// optionalAuth пропускает анонимов, но если заголовок Authorization есть, он должен быть валидным
func (h *Handler) optionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header != "" {
			parts := strings.SplitN(header, " ", 2)
			if len(parts) != 2 || parts[0] != "Bearer" {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid authorization format"})
				return
			}

			userID, err := h.auth.VerifyToken(parts[1])
			if err != nil {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
				return
			}

			c.Set(ctxUserID, userID)
			c.Next()
			return
		}

		anonID, err := c.Cookie(AnonymousCookie)
		if _, parseErr := uuid.Parse(anonID); err != nil || parseErr != nil {
			anonID = uuid.New().String()
			c.SetCookie(AnonymousCookie, anonID, anonymousMaxAge, "/", "", false, true)
		}

		c.Set(ctxAnonymousID, anonID)
		c.Next()
	}
}

func requireUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetString(ctxUserID) == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Login required"})
			return
		}
		c.Next()
	}
}

func viewerFrom(c *gin.Context) model.Viewer {
	return model.Viewer{
		UserID:      c.GetString(ctxUserID),
		AnonymousID: c.GetString(ctxAnonymousID),
	}
}
