package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestService_RoundTrip(t *testing.T) {
	svc := NewService("secret", time.Hour)

	token, err := svc.GenerateToken("3901160407", time.Now())
	require.NoError(t, err)

	identifier, err := svc.VerifyToken(token)
	require.NoError(t, err)
	assert.Equal(t, "3901160407", identifier)
}

func TestService_VerifyErrors(t *testing.T) {
	svc := NewService("secret", time.Hour)

	expired, err := svc.GenerateToken("3901160407", time.Now().Add(-2*time.Hour))
	require.NoError(t, err)

	foreign, err := NewService("other", time.Hour).GenerateToken("3901160407", time.Now())
	require.NoError(t, err)

	empty, err := svc.GenerateToken("", time.Now())
	require.NoError(t, err)

	for name, token := range map[string]string{
		"garbage":       "not.a.jwt",
		"expired":       expired,
		"foreign key":   foreign,
		"empty subject": empty,
	} {
		t.Run(name, func(t *testing.T) {
			_, err := svc.VerifyToken(token)
			assert.ErrorIs(t, err, ErrInvalidToken)
		})
	}
}
