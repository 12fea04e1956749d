package security

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTManagerRoundTrip(t *testing.T) {
	m := NewJWTManager([]byte("test-secret"), time.Hour)

	token, err := m.Issue("usr-1", true)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := m.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "usr-1", claims.Subject)
	assert.True(t, claims.Admin)
}

func TestJWTManagerRejectsExpired(t *testing.T) {
	m := NewJWTManager([]byte("test-secret"), time.Hour)

	issued := time.Now().Add(-2 * time.Hour)
	m.now = func() time.Time { return issued }
	token, err := m.Issue("usr-1", false)
	require.NoError(t, err)

	m.now = time.Now
	_, err = m.Verify(token)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestJWTManagerRejectsForeignSignature(t *testing.T) {
	issuer := NewJWTManager([]byte("other-secret"), time.Hour)
	verifier := NewJWTManager([]byte("test-secret"), time.Hour)

	token, err := issuer.Issue("usr-1", false)
	require.NoError(t, err)

	_, err = verifier.Verify(token)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestJWTManagerRejectsGarbage(t *testing.T) {
	m := NewJWTManager([]byte("test-secret"), time.Hour)
	_, err := m.Verify("not.a.token")
	assert.ErrorIs(t, err, ErrTokenInvalid)
}
