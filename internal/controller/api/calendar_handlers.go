package api

import (
	"net/http"
	"strings"

	"github.com/Freeeeeet/everyclass_server/internal/model"
	"github.com/gin-gonic/gin"
)

// GET /api/v1/calendar/:id_sec/semester/:semester/_token
func (h *Handler) calendarToken(c *gin.Context) {
	kind, identifier, err := h.codec.Decode(c.Param("id_sec"))
	if err != nil {
		h.respondError(c, err)
		return
	}

	token, decision, err := h.calendar.Subscribe(c.Request.Context(), kind, identifier, c.Param("semester"), viewerFrom(c))
	if err != nil {
		h.respondError(c, err)
		return
	}
	if !decision.Allowed {
		c.JSON(http.StatusForbidden, decision)
		return
	}

	icsURL := h.icsURL(token)
	c.JSON(http.StatusOK, gin.H{
		"token":          token,
		"ics_url":        icsURL,
		"ics_url_webcal": webcalURL(icsURL),
	})
}

// POST /api/v1/me/calendar/_reset
func (h *Handler) resetCalendar(c *gin.Context) {
	if err := h.calendar.ResetAll(c.Request.Context(), c.GetString(ctxUserID), model.KindStudent); err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"reset": true})
}

// GET /api/v1/calendar/tokens/:token
func (h *Handler) resolveCalendarToken(c *gin.Context) {
	h.serveFeed(c, c.Param("token"))
}

// GET /calendar/ics/:file, ссылка подписки вида <token>.ics
func (h *Handler) icsFeed(c *gin.Context) {
	file := c.Param("file")
	if !strings.HasSuffix(file, ".ics") {
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
		return
	}

	h.serveFeed(c, strings.TrimSuffix(file, ".ics"))
}

// serveFeed отдаёт генератору ics привязку токена и решение, можно ли взять файл из кэша
func (h *Handler) serveFeed(c *gin.Context, raw string) {
	ctx := c.Request.Context()

	token, err := h.calendar.Resolve(ctx, raw)
	if err != nil {
		h.respondError(c, err)
		return
	}

	if err := h.calendar.MarkUsed(ctx, raw); err != nil {
		h.respondError(c, err)
		return
	}

	cacheKey := token.CacheKey()
	c.JSON(http.StatusOK, gin.H{
		"type":       token.Kind,
		"identifier": token.Identifier,
		"semester":   token.Semester,
		"cache_key":  cacheKey,
		"use_cache":  h.calendar.ShouldUseCachedFile(cacheKey),
	})
}

func (h *Handler) icsURL(token string) string {
	return strings.TrimRight(h.baseURL, "/") + "/calendar/ics/" + token + ".ics"
}

func webcalURL(icsURL string) string {
	for _, scheme := range []string{"https://", "http://"} {
		if strings.HasPrefix(icsURL, scheme) {
			return "webcal://" + strings.TrimPrefix(icsURL, scheme)
		}
	}
	return icsURL
}
