package service

import (
	"errors"
	"testing"

	"github.com/Freeeeeet/everyclass_server/internal/clock"
	"github.com/Freeeeeet/everyclass_server/internal/counter"
	"github.com/Freeeeeet/everyclass_server/internal/model"
	"github.com/Freeeeeet/everyclass_server/internal/service/servicetest"
	"go.uber.org/zap"
)

var errStorage = errors.New("storage unavailable")

type testEnv struct {
	clock *clock.Stub

	privacyStore *servicetest.PrivacyStore
	grantStore   *servicetest.GrantStore
	visitStore   *servicetest.VisitStore
	tokenStore   *servicetest.TokenStore
	counters     *counter.MemoryStore

	privacy  *PrivacyService
	grants   *GrantService
	visits   *VisitService
	access   *AccessService
	calendar *CalendarService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	logger := zap.NewNop()
	env := &testEnv{
		clock:        clock.Fixed(),
		privacyStore: servicetest.NewPrivacyStore(),
		grantStore:   servicetest.NewGrantStore(),
		visitStore:   servicetest.NewVisitStore(),
		tokenStore:   servicetest.NewTokenStore(),
		counters:     counter.NewMemoryStore(),
	}

	env.privacy = NewPrivacyService(env.privacyStore, logger)
	env.grants = NewGrantService(env.grantStore, logger)
	env.visits = NewVisitService(env.visitStore, env.clock, logger)
	env.access = NewAccessService(env.privacy, env.grants, env.visits, logger)
	env.calendar = NewCalendarService(env.tokenStore, env.counters, env.access, DefaultCacheLimit, env.clock, logger)

	return env
}

func loggedIn(id string) model.Viewer {
	return model.Viewer{UserID: id}
}

func anonymous(id string) model.Viewer {
	return model.Viewer{AnonymousID: id}
}
