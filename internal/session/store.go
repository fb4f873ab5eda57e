package session

import (
	"context"
	"time"
)

// Storage persists exactly one bearer token per browser. Implementations
// resolve which browser owns the request from the context.
type Storage interface {
	// Read returns the stored token, or ok=false when none is stored or the
	// storage is unreachable.
	Read(ctx context.Context) (token string, ok bool, err error)
	Write(ctx context.Context, token string) error
	// Clear removes the stored token. Clearing an empty slot is not an error.
	Clear(ctx context.Context) error
}

// Store answers authentication and role questions from the stored token.
// Every answer fails open toward "not authenticated": a missing, unreadable
// or undecodable token is equivalent to being logged out.
type Store struct {
	storage Storage
	now     func() time.Time
}

// NewStore constructs a Store over the given storage.
func NewStore(storage Storage) *Store {
	return &Store{storage: storage, now: time.Now}
}

// NewStoreAt is NewStore with an injected clock, for expiry tests.
func NewStoreAt(storage Storage, now func() time.Time) *Store {
	return &Store{storage: storage, now: now}
}

// Save replaces any previously stored token. The token is not validated;
// whatever the backend issued is what gets kept.
func (s *Store) Save(ctx context.Context, token string) error {
	return s.storage.Write(ctx, token)
}

// Read returns the stored token, if any.
func (s *Store) Read(ctx context.Context) (string, bool) {
	token, ok, err := s.storage.Read(ctx)
	if err != nil || !ok {
		return "", false
	}
	return token, true
}

// Clear discards the stored token. Idempotent.
func (s *Store) Clear(ctx context.Context) error {
	return s.storage.Clear(ctx)
}

// Token implements the bearer token lookup used by the API clients.
func (s *Store) Token(ctx context.Context) (string, bool) {
	return s.Read(ctx)
}

// IsAuthenticated reports whether a valid session exists. A token whose
// expiry claim has passed is discarded as a side effect, so the stale value
// never answers twice.
func (s *Store) IsAuthenticated(ctx context.Context) bool {
	token, ok := s.Read(ctx)
	if !ok {
		return false
	}
	claims, err := Decode(token)
	if err != nil {
		return false
	}
	if claims.Expired(s.now()) {
		_ = s.Clear(ctx)
		return false
	}
	return true
}

// Roles returns the roles carried by the stored token, empty when the token
// is absent or undecodable.
func (s *Store) Roles(ctx context.Context) []Role {
	token, ok := s.Read(ctx)
	if !ok {
		return nil
	}
	claims, err := Decode(token)
	if err != nil {
		return nil
	}
	return claims.Roles
}

// HasRole reports membership in Roles.
func (s *Store) HasRole(ctx context.Context, role Role) bool {
	for _, r := range s.Roles(ctx) {
		if r == role {
			return true
		}
	}
	return false
}

// SubjectID returns the stored token's subject, falling back to its id
// claim, when either is a string.
func (s *Store) SubjectID(ctx context.Context) (string, bool) {
	token, ok := s.Read(ctx)
	if !ok {
		return "", false
	}
	claims, err := Decode(token)
	if err != nil || claims.Subject == "" {
		return "", false
	}
	return claims.Subject, true
}
