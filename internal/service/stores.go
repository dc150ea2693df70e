package service

import (
	"context"
	"time"

	"github.com/Freeeeeet/everyclass_server/internal/counter"
	"github.com/Freeeeeet/everyclass_server/internal/model"
	"github.com/google/uuid"
)

// Хранилища, от которых зависят сервисы. Реализации на PostgreSQL лежат в
// internal/repository, счётчики в памяти в internal/counter.

type PrivacyStore interface {
	GetLevel(ctx context.Context, userID string) (*model.PrivacyLevel, error)
	SetLevel(ctx context.Context, userID string, level model.PrivacyLevel) error
}

type GrantStore interface {
	Create(ctx context.Context, grant *model.Grant) error
	GetByID(ctx context.Context, recordID int64) (*model.Grant, error)
	UpdateStatus(ctx context.Context, recordID int64, from, to model.GrantStatus) (bool, error)
	HasStatus(ctx context.Context, grantorID, granteeID string, status model.GrantStatus) (bool, error)
	ListByGrantor(ctx context.Context, grantorID string, status model.GrantStatus) ([]*model.Grant, error)
	ListByGrantee(ctx context.Context, granteeID string, status model.GrantStatus) ([]*model.Grant, error)
}

type VisitStore interface {
	UpsertTrack(ctx context.Context, hostID, visitorID string, at time.Time) error
	ListTracks(ctx context.Context, hostID string) ([]*model.VisitTrack, error)
	AddVisitor(ctx context.Context, hostID, visitorKey string) error
	CountVisitors(ctx context.Context, hostID string) (int64, error)
}

type TokenStore interface {
	Create(ctx context.Context, token *model.CalendarToken) (bool, error)
	FindByResource(ctx context.Context, kind model.ResourceKind, identifier, semester string) (*model.CalendarToken, error)
	FindByToken(ctx context.Context, token uuid.UUID) (*model.CalendarToken, error)
	Touch(ctx context.Context, token uuid.UUID, at time.Time) (bool, error)
	DeleteByIdentifier(ctx context.Context, identifier string, kind model.ResourceKind) (int64, error)
}

type CounterStore interface {
	Get(key string) (counter.Entry, bool)
	Set(key string, entry counter.Entry)
}
