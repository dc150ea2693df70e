// Package servicetest содержит хранилища в памяти для тестов сервисов и HTTP слоя
package servicetest

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/Freeeeeet/everyclass_server/internal/model"
	"github.com/Freeeeeet/everyclass_server/internal/repository"
	"github.com/google/uuid"
)

type PrivacyStore struct {
	mu     sync.Mutex
	levels map[string]model.PrivacyLevel
	Err    error
}

func NewPrivacyStore() *PrivacyStore {
	return &PrivacyStore{levels: make(map[string]model.PrivacyLevel)}
}

func (f *PrivacyStore) GetLevel(_ context.Context, userID string) (*model.PrivacyLevel, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.Err != nil {
		return nil, f.Err
	}
	level, ok := f.levels[userID]
	if !ok {
		return nil, nil
	}
	return &level, nil
}

func (f *PrivacyStore) SetLevel(_ context.Context, userID string, level model.PrivacyLevel) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.Err != nil {
		return f.Err
	}
	f.levels[userID] = level
	return nil
}

type GrantStore struct {
	mu     sync.Mutex
	grants []*model.Grant
	nextID int64
}

func NewGrantStore() *GrantStore {
	return &GrantStore{}
}

func (f *GrantStore) Create(_ context.Context, grant *model.Grant) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if grant.Status == model.GrantStatusPending {
		for _, g := range f.grants {
			if g.GrantorID == grant.GrantorID && g.GranteeID == grant.GranteeID && g.IsPending() {
				return repository.ErrDuplicatePending
			}
		}
	}

	f.nextID++
	grant.RecordID = f.nextID
	grant.GrantTime = time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC).Add(time.Duration(f.nextID) * time.Minute)
	stored := *grant
	f.grants = append(f.grants, &stored)
	return nil
}

func (f *GrantStore) GetByID(_ context.Context, recordID int64) (*model.Grant, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, g := range f.grants {
		if g.RecordID == recordID {
			found := *g
			return &found, nil
		}
	}
	return nil, nil
}

func (f *GrantStore) UpdateStatus(_ context.Context, recordID int64, from, to model.GrantStatus) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, g := range f.grants {
		if g.RecordID == recordID && g.Status == from {
			g.Status = to
			return true, nil
		}
	}
	return false, nil
}

func (f *GrantStore) HasStatus(_ context.Context, grantorID, granteeID string, status model.GrantStatus) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, g := range f.grants {
		if g.GrantorID == grantorID && g.GranteeID == granteeID && g.Status == status {
			return true, nil
		}
	}
	return false, nil
}

func (f *GrantStore) ListByGrantor(_ context.Context, grantorID string, status model.GrantStatus) ([]*model.Grant, error) {
	return f.list(func(g *model.Grant) bool { return g.GrantorID == grantorID && g.Status == status }), nil
}

func (f *GrantStore) ListByGrantee(_ context.Context, granteeID string, status model.GrantStatus) ([]*model.Grant, error) {
	return f.list(func(g *model.Grant) bool { return g.GranteeID == granteeID && g.Status == status }), nil
}

func (f *GrantStore) list(match func(*model.Grant) bool) []*model.Grant {
	f.mu.Lock()
	defer f.mu.Unlock()

	var out []*model.Grant
	for _, g := range f.grants {
		if match(g) {
			found := *g
			out = append(out, &found)
		}
	}
	return out
}

type trackKey struct{ host, visitor string }

type VisitStore struct {
	mu       sync.Mutex
	tracks   map[trackKey]time.Time
	visitors map[string]map[string]struct{}
}

func NewVisitStore() *VisitStore {
	return &VisitStore{
		tracks:   make(map[trackKey]time.Time),
		visitors: make(map[string]map[string]struct{}),
	}
}

func (f *VisitStore) UpsertTrack(_ context.Context, hostID, visitorID string, at time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.tracks[trackKey{hostID, visitorID}] = at
	return nil
}

func (f *VisitStore) ListTracks(_ context.Context, hostID string) ([]*model.VisitTrack, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var out []*model.VisitTrack
	for k, at := range f.tracks {
		if k.host == hostID {
			out = append(out, &model.VisitTrack{HostID: k.host, VisitorID: k.visitor, LastVisitTime: at})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].LastVisitTime.After(out[j].LastVisitTime) })
	return out, nil
}

func (f *VisitStore) AddVisitor(_ context.Context, hostID, visitorKey string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.visitors[hostID] == nil {
		f.visitors[hostID] = make(map[string]struct{})
	}
	f.visitors[hostID][visitorKey] = struct{}{}
	return nil
}

func (f *VisitStore) CountVisitors(_ context.Context, hostID string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	return int64(len(f.visitors[hostID])), nil
}

// TrackCount считает следы визитов на странице hostID
func (f *VisitStore) TrackCount(hostID string) int {
	f.mu.Lock()
	defer f.mu.Unlock()

	n := 0
	for k := range f.tracks {
		if k.host == hostID {
			n++
		}
	}
	return n
}

type TokenStore struct {
	mu     sync.Mutex
	tokens map[uuid.UUID]*model.CalendarToken
}

func NewTokenStore() *TokenStore {
	return &TokenStore{tokens: make(map[uuid.UUID]*model.CalendarToken)}
}

func (f *TokenStore) Create(_ context.Context, token *model.CalendarToken) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, t := range f.tokens {
		if t.Kind == token.Kind && t.Identifier == token.Identifier && t.Semester == token.Semester {
			return false, nil
		}
	}
	stored := *token
	f.tokens[token.Token] = &stored
	return true, nil
}

func (f *TokenStore) FindByResource(_ context.Context, kind model.ResourceKind, identifier, semester string) (*model.CalendarToken, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, t := range f.tokens {
		if t.Kind == kind && t.Identifier == identifier && t.Semester == semester {
			found := *t
			return &found, nil
		}
	}
	return nil, nil
}

func (f *TokenStore) FindByToken(_ context.Context, token uuid.UUID) (*model.CalendarToken, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	t, ok := f.tokens[token]
	if !ok {
		return nil, nil
	}
	found := *t
	return &found, nil
}

func (f *TokenStore) Touch(_ context.Context, token uuid.UUID, at time.Time) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	t, ok := f.tokens[token]
	if !ok {
		return false, nil
	}
	t.LastUsedTime = &at
	return true, nil
}

func (f *TokenStore) DeleteByIdentifier(_ context.Context, identifier string, kind model.ResourceKind) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var deleted int64
	for id, t := range f.tokens {
		if t.Identifier == identifier && t.Kind == kind {
			delete(f.tokens, id)
			deleted++
		}
	}
	return deleted, nil
}

// Levels открывает прямой доступ к сохранённым уровням приватности
func (f *PrivacyStore) Levels() map[string]model.PrivacyLevel {
	return f.levels
}
