package api

import "github.com/gin-gonic/gin"

// NewRouter регистрирует все HTTP эндпоинты
func NewRouter(h *Handler) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), requestLogger(h.logger))

	r.GET("/healthz", func(c *gin.Context) { c.JSON(200, gin.H{"status": "ok"}) })

	// Ссылки подписки на календарь, их открывают календарные клиенты без авторизации
	r.GET("/calendar/ics/:file", h.icsFeed)

	v1 := r.Group("/api/v1")
	v1.Use(h.optionalAuth())
	{
		v1.GET("/students/:id_sec/_access", h.checkAccess)
		v1.GET("/calendar/:id_sec/semester/:semester/_token", h.calendarToken)
		v1.GET("/calendar/tokens/:token", h.resolveCalendarToken)

		/* ---------- только для вошедших ---------- */
		me := v1.Group("")
		me.Use(requireUser())
		{
			me.GET("/me/privacy", h.getPrivacy)
			me.PUT("/me/privacy", h.setPrivacy)
			me.GET("/me/visitors", h.listVisitors)
			me.POST("/me/calendar/_reset", h.resetCalendar)

			me.POST("/grants", h.requestGrant)
			me.GET("/grants/_my_pending", h.listPendingGrants)
			me.GET("/grants/_my_granted", h.listGranted)
			me.POST("/grants/:grant_id/_accept", h.acceptGrant)
			me.POST("/grants/:grant_id/_reject", h.rejectGrant)
			me.POST("/grants/:grant_id/_revoke", h.revokeGrant)
		}
	}

	return r
}
