package auth

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionRoundTrip(t *testing.T) {
	codec := NewSessionCodec("secret")
	identity := Identity{UserID: uuid.New(), Username: "alice"}

	token, expiration, err := codec.Issue(identity)
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.False(t, expiration.IsZero())

	decoded, err := codec.Decode(token)
	require.NoError(t, err)
	assert.Equal(t, identity, decoded)
}

func TestDecodeRejectsWrongSecret(t *testing.T) {
	token, _, err := NewSessionCodec("secret-a").Issue(Identity{UserID: uuid.New(), Username: "alice"})
	require.NoError(t, err)

	_, err = NewSessionCodec("secret-b").Decode(token)
	assert.ErrorIs(t, err, ErrInvalidSession)
}

func TestDecodeRejectsGarbage(t *testing.T) {
	codec := NewSessionCodec("secret")

	for _, tokenStr := range []string{"", "garbage", "a.b.c"} {
		_, err := codec.Decode(tokenStr)
		assert.ErrorIs(t, err, ErrInvalidSession, tokenStr)
	}
}
