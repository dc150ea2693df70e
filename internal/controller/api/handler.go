package api

import (
	"github.com/Freeeeeet/everyclass_server/internal/auth"
	"github.com/Freeeeeet/everyclass_server/internal/identifier"
	"github.com/Freeeeeet/everyclass_server/internal/service"
	"go.uber.org/zap"
)

// Deps зависимости HTTP слоя
type Deps struct {
	Codec    *identifier.Codec
	Auth     *auth.Service
	Privacy  *service.PrivacyService
	Grants   *service.GrantService
	Visits   *service.VisitService
	Access   *service.AccessService
	Calendar *service.CalendarService
	BaseURL  string
	Logger   *zap.Logger
}

type Handler struct {
	codec    *identifier.Codec
	auth     *auth.Service
	privacy  *service.PrivacyService
	grants   *service.GrantService
	visits   *service.VisitService
	access   *service.AccessService
	calendar *service.CalendarService
	baseURL  string
	logger   *zap.Logger
}

func NewHandler(deps Deps) *Handler {
	return &Handler{
		codec:    deps.Codec,
		auth:     deps.Auth,
		privacy:  deps.Privacy,
		grants:   deps.Grants,
		visits:   deps.Visits,
		access:   deps.Access,
		calendar: deps.Calendar,
		baseURL:  deps.BaseURL,
		logger:   deps.Logger,
	}
}
