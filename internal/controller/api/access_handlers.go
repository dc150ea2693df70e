package api

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/Freeeeeet/everyclass_server/internal/model"
	"github.com/gin-gonic/gin"
)

type privacyRequest struct {
	Level       *int `json:"level" binding:"required"`
	ResetTokens bool `json:"reset_tokens"`
}

type grantRequest struct {
	ToUserID string `json:"to_user_id" binding:"required"`
}

type grantResponse struct {
	RecordID  int64             `json:"record_id"`
	Status    model.GrantStatus `json:"status"`
	GrantTime time.Time         `json:"grant_time"`
	GrantorID string            `json:"grantor_id_sec"`
	GranteeID string            `json:"grantee_id_sec"`
}

type visitorResponse struct {
	VisitorID     string    `json:"visitor_id_sec"`
	LastVisitTime time.Time `json:"last_visit_time"`
}

// GET /api/v1/students/:id_sec/_access
func (h *Handler) checkAccess(c *gin.Context) {
	ownerID, err := h.codec.DecodeAs(c.Param("id_sec"), model.KindStudent)
	if err != nil {
		h.respondError(c, err)
		return
	}

	decision, err := h.access.CheckAccess(c.Request.Context(), ownerID, viewerFrom(c), true)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, decision)
}

// GET /api/v1/me/privacy
func (h *Handler) getPrivacy(c *gin.Context) {
	level, err := h.privacy.GetLevel(c.Request.Context(), c.GetString(ctxUserID))
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"level": level, "name": level.String()})
}

// PUT /api/v1/me/privacy
func (h *Handler) setPrivacy(c *gin.Context) {
	var in privacyRequest
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	ctx := c.Request.Context()
	userID := c.GetString(ctxUserID)
	level := model.PrivacyLevel(*in.Level)

	if err := h.privacy.SetLevel(ctx, userID, level); err != nil {
		h.respondError(c, err)
		return
	}

	// Ужесточив приватность, пользователь может отозвать старые ссылки на календарь
	if in.ResetTokens {
		if err := h.calendar.ResetAll(ctx, userID, model.KindStudent); err != nil {
			h.respondError(c, err)
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{"level": level, "name": level.String()})
}

// POST /api/v1/grants
func (h *Handler) requestGrant(c *gin.Context) {
	var in grantRequest
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	ownerID, err := h.codec.DecodeAs(in.ToUserID, model.KindStudent)
	if err != nil {
		h.respondError(c, err)
		return
	}

	grant, err := h.grants.RequestGrant(c.Request.Context(), c.GetString(ctxUserID), ownerID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	resp, err := h.grantResponse(grant)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

// GET /api/v1/grants/_my_pending
func (h *Handler) listPendingGrants(c *gin.Context) {
	grants, err := h.grants.ListPendingFor(c.Request.Context(), c.GetString(ctxUserID))
	if err != nil {
		h.respondError(c, err)
		return
	}

	h.respondGrants(c, grants)
}

// GET /api/v1/grants/_my_granted
func (h *Handler) listGranted(c *gin.Context) {
	grants, err := h.grants.ListGranted(c.Request.Context(), c.GetString(ctxUserID))
	if err != nil {
		h.respondError(c, err)
		return
	}

	h.respondGrants(c, grants)
}

func (h *Handler) acceptGrant(c *gin.Context) {
	h.answerGrant(c, h.grants.Accept)
}

func (h *Handler) rejectGrant(c *gin.Context) {
	h.answerGrant(c, h.grants.Reject)
}

func (h *Handler) revokeGrant(c *gin.Context) {
	h.answerGrant(c, h.grants.Revoke)
}

// POST /api/v1/grants/:grant_id/_accept|_reject|_revoke
func (h *Handler) answerGrant(c *gin.Context, action func(ctx context.Context, grantID int64, actingUser string) error) {
	grantID, err := strconv.ParseInt(c.Param("grant_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid grant id"})
		return
	}

	if err := action(c.Request.Context(), grantID, c.GetString(ctxUserID)); err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"record_id": grantID})
}

// GET /api/v1/me/visitors
func (h *Handler) listVisitors(c *gin.Context) {
	ctx := c.Request.Context()
	userID := c.GetString(ctxUserID)

	tracks, err := h.visits.Visitors(ctx, userID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	count, err := h.visits.VisitorCount(ctx, userID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	visitors := make([]visitorResponse, 0, len(tracks))
	for _, t := range tracks {
		idSec, err := h.codec.Encode(model.KindPeople, t.VisitorID)
		if err != nil {
			h.respondError(c, err)
			return
		}
		visitors = append(visitors, visitorResponse{VisitorID: idSec, LastVisitTime: t.LastVisitTime})
	}

	c.JSON(http.StatusOK, gin.H{"visitors": visitors, "visitor_count": count})
}

func (h *Handler) respondGrants(c *gin.Context, grants []*model.Grant) {
	out := make([]grantResponse, 0, len(grants))
	for _, g := range grants {
		resp, err := h.grantResponse(g)
		if err != nil {
			h.respondError(c, err)
			return
		}
		out = append(out, resp)
	}

	c.JSON(http.StatusOK, gin.H{"grants": out})
}

// grantResponse наружу отдаёт только зашифрованные номера.
// Владелец расписания всегда студент, а смотрящим может быть и преподаватель, поэтому он people.
func (h *Handler) grantResponse(g *model.Grant) (grantResponse, error) {
	grantor, err := h.codec.Encode(model.KindStudent, g.GrantorID)
	if err != nil {
		return grantResponse{}, err
	}
	grantee, err := h.codec.Encode(model.KindPeople, g.GranteeID)
	if err != nil {
		return grantResponse{}, err
	}

	return grantResponse{
		RecordID:  g.RecordID,
		Status:    g.Status,
		GrantTime: g.GrantTime,
		GrantorID: grantor,
		GranteeID: grantee,
	}, nil
}
