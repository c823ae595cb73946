package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"
)

func TestToken_RoundTrip(t *testing.T) {
	issuer := NewTokenIssuer("test-secret")
	id := bson.NewObjectID()

	token, err := issuer.Generate(id)
	require.NoError(t, err)

	parsed, err := issuer.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, id, parsed)
}

func TestToken_ExpiresAfterThirtyDays(t *testing.T) {
	issuer := NewTokenIssuer("test-secret")
	start := time.Now()
	issuer.now = func() time.Time { return start }

	token, err := issuer.Generate(bson.NewObjectID())
	require.NoError(t, err)

	issuer.now = func() time.Time { return start.Add(29 * 24 * time.Hour) }
	_, err = issuer.Parse(token)
	assert.NoError(t, err)

	issuer.now = func() time.Time { return start.Add(31 * 24 * time.Hour) }
	_, err = issuer.Parse(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestToken_WrongSecretRejected(t *testing.T) {
	token, err := NewTokenIssuer("one").Generate(bson.NewObjectID())
	require.NoError(t, err)

	_, err = NewTokenIssuer("two").Parse(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestPassword(t *testing.T) {
	hash, err := HashPassword("123456")
	require.NoError(t, err)

	assert.True(t, CheckPassword(hash, "123456"))
	assert.False(t, CheckPassword(hash, "654321"))
	assert.NotEqual(t, RandomPassword(), RandomPassword())
}
