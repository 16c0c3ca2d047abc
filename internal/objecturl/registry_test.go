package objecturl

import (
	"context"
	"strings"
	"testing"

	"github.com/dmitrijs2005/letshang/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry_MintLookupRevoke(t *testing.T) {
	r := NewRegistry("http://localhost:8080/")
	ctx := context.Background()

	u1, err := r.Mint(ctx, models.KeyspaceFlyer, "f1")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(u1, "http://localhost:8080/blob/"))

	u2, err := r.Mint(ctx, models.KeyspaceFlyer, "f1")
	require.NoError(t, err)
	assert.NotEqual(t, u1, u2, "every mint yields a fresh handle")
	assert.Equal(t, 2, r.Len())

	token := strings.TrimPrefix(u1, "http://localhost:8080/blob/")
	h, ok := r.Lookup(token)
	require.True(t, ok)
	assert.Equal(t, Handle{Keyspace: models.KeyspaceFlyer, ID: "f1"}, h)

	r.Revoke(u1)
	_, ok = r.Lookup(token)
	assert.False(t, ok)
	assert.Equal(t, 1, r.Len())

	// revoking twice or revoking junk is harmless
	r.Revoke(u1)
	r.Revoke("nonsense")
	assert.Equal(t, 1, r.Len())
}

func TestRegistry_RevokeBareToken(t *testing.T) {
	r := NewRegistry("")
	u, err := r.Mint(context.Background(), models.KeyspaceBackground, "b1")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(u, "/blob/"))

	r.Revoke(strings.TrimPrefix(u, "/blob/"))
	assert.Zero(t, r.Len())
}
