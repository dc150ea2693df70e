package service

import (
	"context"
	"testing"

	"github.com/Freeeeeet/everyclass_server/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrivacyService_GetLevelDefaults(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	level, err := env.privacy.GetLevel(ctx, "S1")
	require.NoError(t, err)
	assert.Equal(t, model.PrivacyPublic, level)
}

func TestPrivacyService_SetLevel(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	require.NoError(t, env.privacy.SetLevel(ctx, "S1", model.PrivacySelfOnly))
	level, err := env.privacy.GetLevel(ctx, "S1")
	require.NoError(t, err)
	assert.Equal(t, model.PrivacySelfOnly, level)

	require.NoError(t, env.privacy.SetLevel(ctx, "S1", model.PrivacyMutual))
	level, err = env.privacy.GetLevel(ctx, "S1")
	require.NoError(t, err)
	assert.Equal(t, model.PrivacyMutual, level)
}

func TestPrivacyService_SetLevelInvalid(t *testing.T) {
	env := newTestEnv(t)

	for _, level := range []model.PrivacyLevel{-1, 3, 100} {
		err := env.privacy.SetLevel(context.Background(), "S1", level)
		assert.ErrorIs(t, err, ErrInvalidPrivacyLevel)
		assert.True(t, IsInvalidRequest(err))
	}
}

func TestPrivacyService_StorageError(t *testing.T) {
	env := newTestEnv(t)
	env.privacyStore.Err = errStorage

	_, err := env.privacy.GetLevel(context.Background(), "S1")
	assert.ErrorIs(t, err, errStorage)
	assert.False(t, IsInvalidRequest(err))
	assert.False(t, IsPermissionError(err))
}
