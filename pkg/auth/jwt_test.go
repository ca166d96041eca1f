package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundtrip(t *testing.T) {
	tokens := NewTokens("secret", time.Hour)

	raw, err := tokens.Issue(Identity{ID: 5, Email: "jane@example.com", IsAdmin: true})
	require.NoError(t, err)

	got, err := tokens.Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, Identity{ID: 5, Email: "jane@example.com", IsAdmin: true}, got)
}

func TestParseRejectsWrongKey(t *testing.T) {
	raw, err := NewTokens("secret", time.Hour).Issue(Identity{ID: 5})
	require.NoError(t, err)

	_, err = NewTokens("other", time.Hour).Parse(raw)
	assert.Error(t, err)
}

func TestParseRejectsExpired(t *testing.T) {
	raw, err := NewTokens("secret", -time.Minute).Issue(Identity{ID: 5})
	require.NoError(t, err)

	_, err = NewTokens("secret", time.Hour).Parse(raw)
	assert.Error(t, err)
}

func TestParseRejectsGarbage(t *testing.T) {
	_, err := NewTokens("secret", time.Hour).Parse("not.a.token")
	assert.Error(t, err)
}
