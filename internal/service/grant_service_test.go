package service

import (
	"context"
	"testing"

	"github.com/Freeeeeet/everyclass_server/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGrantService_RequestGrant(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	grant, err := env.grants.RequestGrant(ctx, "viewer", "owner")
	require.NoError(t, err)

	assert.NotZero(t, grant.RecordID)
	assert.Equal(t, model.GrantStatusPending, grant.Status)
	assert.Equal(t, model.GrantTypeViewing, grant.GrantType)
	assert.Equal(t, "owner", grant.GrantorID)
	assert.Equal(t, "viewer", grant.GranteeID)
}

func TestGrantService_RequestGrantTwiceWhilePending(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	_, err := env.grants.RequestGrant(ctx, "viewer", "owner")
	require.NoError(t, err)

	_, err = env.grants.RequestGrant(ctx, "viewer", "owner")
	assert.ErrorIs(t, err, ErrHasPendingRequest)
	assert.True(t, IsInvalidRequest(err))

	// обратное направление это другая пара
	_, err = env.grants.RequestGrant(ctx, "owner", "viewer")
	assert.NoError(t, err)
}

func TestGrantService_RequestGrantAlreadyGranted(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	grant, err := env.grants.RequestGrant(ctx, "viewer", "owner")
	require.NoError(t, err)
	require.NoError(t, env.grants.Accept(ctx, grant.RecordID, "owner"))

	_, err = env.grants.RequestGrant(ctx, "viewer", "owner")
	assert.ErrorIs(t, err, ErrAlreadyGranted)
}

func TestGrantService_RequestGrantSelf(t *testing.T) {
	_, err := newTestEnv(t).grants.RequestGrant(context.Background(), "S1", "S1")
	assert.ErrorIs(t, err, ErrSelfGrant)
}

func TestGrantService_Accept(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	grant, err := env.grants.RequestGrant(ctx, "viewer", "owner")
	require.NoError(t, err)

	has, err := env.grants.HasGrant(ctx, "viewer", "owner")
	require.NoError(t, err)
	assert.False(t, has)

	require.NoError(t, env.grants.Accept(ctx, grant.RecordID, "owner"))

	has, err = env.grants.HasGrant(ctx, "viewer", "owner")
	require.NoError(t, err)
	assert.True(t, has)

	// разрешение направленное
	has, err = env.grants.HasGrant(ctx, "owner", "viewer")
	require.NoError(t, err)
	assert.False(t, has)

	granted, err := env.grants.ListGranted(ctx, "viewer")
	require.NoError(t, err)
	require.Len(t, granted, 1)
	assert.Equal(t, grant.RecordID, granted[0].RecordID)
}

func TestGrantService_AnswerErrors(t *testing.T) {
	ctx := context.Background()

	t.Run("accept by requester is forbidden", func(t *testing.T) {
		env := newTestEnv(t)
		grant, err := env.grants.RequestGrant(ctx, "viewer", "owner")
		require.NoError(t, err)

		err = env.grants.Accept(ctx, grant.RecordID, "viewer")
		assert.ErrorIs(t, err, ErrNoPermissionToAccept)
		assert.True(t, IsPermissionError(err))
		assert.False(t, IsInvalidRequest(err))
	})

	t.Run("reject by stranger is forbidden", func(t *testing.T) {
		env := newTestEnv(t)
		grant, err := env.grants.RequestGrant(ctx, "viewer", "owner")
		require.NoError(t, err)

		assert.ErrorIs(t, env.grants.Reject(ctx, grant.RecordID, "stranger"), ErrNoPermissionToAccept)
	})

	t.Run("unknown grant", func(t *testing.T) {
		env := newTestEnv(t)
		err := env.grants.Accept(ctx, 404, "owner")
		assert.ErrorIs(t, err, ErrGrantNotFound)
		assert.True(t, IsNotFound(err))
	})

	t.Run("accept twice", func(t *testing.T) {
		env := newTestEnv(t)
		grant, err := env.grants.RequestGrant(ctx, "viewer", "owner")
		require.NoError(t, err)
		require.NoError(t, env.grants.Accept(ctx, grant.RecordID, "owner"))

		assert.ErrorIs(t, env.grants.Accept(ctx, grant.RecordID, "owner"), ErrGrantNotPending)
		assert.ErrorIs(t, env.grants.Reject(ctx, grant.RecordID, "owner"), ErrGrantNotPending)
	})

	t.Run("revoke pending", func(t *testing.T) {
		env := newTestEnv(t)
		grant, err := env.grants.RequestGrant(ctx, "viewer", "owner")
		require.NoError(t, err)

		assert.ErrorIs(t, env.grants.Revoke(ctx, grant.RecordID, "owner"), ErrGrantNotValid)
	})
}

func TestGrantService_RejectAllowsNewRequest(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	grant, err := env.grants.RequestGrant(ctx, "viewer", "owner")
	require.NoError(t, err)
	require.NoError(t, env.grants.Reject(ctx, grant.RecordID, "owner"))

	rejected, err := env.grantStore.GetByID(ctx, grant.RecordID)
	require.NoError(t, err)
	assert.Equal(t, model.GrantStatusRejected, rejected.Status)

	has, err := env.grants.HasGrant(ctx, "viewer", "owner")
	require.NoError(t, err)
	assert.False(t, has)

	again, err := env.grants.RequestGrant(ctx, "viewer", "owner")
	require.NoError(t, err)
	assert.NotEqual(t, grant.RecordID, again.RecordID)
}

func TestGrantService_Revoke(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	grant, err := env.grants.RequestGrant(ctx, "viewer", "owner")
	require.NoError(t, err)
	require.NoError(t, env.grants.Accept(ctx, grant.RecordID, "owner"))

	assert.ErrorIs(t, env.grants.Revoke(ctx, grant.RecordID, "viewer"), ErrNoPermissionToAccept)
	require.NoError(t, env.grants.Revoke(ctx, grant.RecordID, "owner"))

	has, err := env.grants.HasGrant(ctx, "viewer", "owner")
	require.NoError(t, err)
	assert.False(t, has)
}

func TestGrantService_ListPendingFor(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	first, err := env.grants.RequestGrant(ctx, "A", "owner")
	require.NoError(t, err)
	second, err := env.grants.RequestGrant(ctx, "B", "owner")
	require.NoError(t, err)
	_, err = env.grants.RequestGrant(ctx, "owner", "A")
	require.NoError(t, err)

	require.NoError(t, env.grants.Accept(ctx, first.RecordID, "owner"))

	pending, err := env.grants.ListPendingFor(ctx, "owner")
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, second.RecordID, pending[0].RecordID)
	assert.Equal(t, "B", pending[0].GranteeID)
}
