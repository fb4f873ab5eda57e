package session

import (
	"context"
	"encoding/base64"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingStorage struct {
	*MemoryStorage
	clears int
}

func (s *countingStorage) Clear(ctx context.Context) error {
	s.clears++
	return s.MemoryStorage.Clear(ctx)
}

func TestIsAuthenticated(t *testing.T) {
	ctx := context.Background()
	now := time.Unix(1_700_000_000, 0)
	clock := func() time.Time { return now }

	t.Run("no token", func(t *testing.T) {
		store := NewStoreAt(NewMemoryStorage(), clock)
		assert.False(t, store.IsAuthenticated(ctx))
	})

	t.Run("undecodable token", func(t *testing.T) {
		store := NewStoreAt(NewMemoryStorage(), clock)
		require.NoError(t, store.Save(ctx, "not-a-jwt"))
		assert.False(t, store.IsAuthenticated(ctx))

		// The broken token stays stored; only expiry discards it.
		_, ok := store.Read(ctx)
		assert.True(t, ok)
	})

	t.Run("null claims payload", func(t *testing.T) {
		store := NewStoreAt(NewMemoryStorage(), clock)
		token := "header." + base64.RawURLEncoding.EncodeToString([]byte(`null`)) + ".sig"
		require.NoError(t, store.Save(ctx, token))
		assert.False(t, store.IsAuthenticated(ctx))
	})

	t.Run("token without expiry", func(t *testing.T) {
		store := NewStoreAt(NewMemoryStorage(), clock)
		require.NoError(t, store.Save(ctx, tokenWithPayload(t, map[string]any{"sub": "u1"})))
		assert.True(t, store.IsAuthenticated(ctx))
	})

	t.Run("expired token is discarded once", func(t *testing.T) {
		storage := &countingStorage{MemoryStorage: NewMemoryStorage()}
		store := NewStoreAt(storage, clock)
		expired := tokenWithPayload(t, map[string]any{"exp": now.Add(-time.Hour).Unix()})
		require.NoError(t, store.Save(ctx, expired))

		assert.False(t, store.IsAuthenticated(ctx))
		assert.Equal(t, 1, storage.clears)

		_, ok := store.Read(ctx)
		assert.False(t, ok)
	})

	t.Run("future expiry", func(t *testing.T) {
		store := NewStoreAt(NewMemoryStorage(), clock)
		require.NoError(t, store.Save(ctx, tokenWithPayload(t, map[string]any{"exp": now.Add(time.Hour).Unix()})))
		assert.True(t, store.IsAuthenticated(ctx))
	})
}

func TestRolesAndSubject(t *testing.T) {
	ctx := context.Background()
	store := NewStore(NewMemoryStorage())

	assert.Empty(t, store.Roles(ctx))
	assert.False(t, store.HasRole(ctx, RoleAdmin))

	require.NoError(t, store.Save(ctx, tokenWithPayload(t, map[string]any{"role": "CLIENTE", "sub": "u7"})))
	assert.Equal(t, []Role{RoleCliente}, store.Roles(ctx))
	assert.True(t, store.HasRole(ctx, RoleCliente))
	assert.False(t, store.HasRole(ctx, RoleAdmin))

	subject, ok := store.SubjectID(ctx)
	require.True(t, ok)
	assert.Equal(t, "u7", subject)
}

func TestClearIsIdempotent(t *testing.T) {
	ctx := context.Background()
	store := NewStore(NewMemoryStorage())
	require.NoError(t, store.Save(ctx, "token"))

	require.NoError(t, store.Clear(ctx))
	require.NoError(t, store.Clear(ctx))

	_, ok := store.Read(ctx)
	assert.False(t, ok)
}

func TestSaveReplacesPreviousToken(t *testing.T) {
	ctx := context.Background()
	store := NewStore(NewMemoryStorage())

	require.NoError(t, store.Save(ctx, "first"))
	require.NoError(t, store.Save(ctx, "second"))

	token, ok := store.Read(ctx)
	require.True(t, ok)
	assert.Equal(t, "second", token)
}
