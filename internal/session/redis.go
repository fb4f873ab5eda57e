package session

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

type contextKey struct{}

var browserKey contextKey

// ContextWithBrowser tags the context with the browser session id.
func ContextWithBrowser(ctx context.Context, sid string) context.Context {
	return context.WithValue(ctx, browserKey, sid)
}

// BrowserFromContext returns the browser session id, if one was attached.
func BrowserFromContext(ctx context.Context) (string, bool) {
	sid, ok := ctx.Value(browserKey).(string)
	return sid, ok && sid != ""
}

// Manager identifies browsers with an opaque cookie so each one gets its own
// token slot in Redis. The cookie carries no claims; the token itself lives
// server-side under a fixed key per browser.
type Manager struct {
	cookieName string
	ttl        time.Duration
	secure     bool
}

// NewManager constructs a Manager.
func NewManager(cookieName string, ttl time.Duration, secure bool) *Manager {
	return &Manager{cookieName: cookieName, ttl: ttl, secure: secure}
}

// CookieName returns the cookie identifier used for browser sessions.
func (m *Manager) CookieName() string { return m.cookieName }

// Middleware ensures every request carries a browser session id, minting a
// cookie on first contact, and exposes the id on the request context.
func (m *Manager) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sid := ""
		if cookie, err := r.Cookie(m.cookieName); err == nil && cookie.Value != "" {
			sid = cookie.Value
		}
		if sid == "" {
			sid = uuid.NewString()
			http.SetCookie(w, &http.Cookie{
				Name:     m.cookieName,
				Value:    sid,
				Path:     "/",
				HttpOnly: true,
				Secure:   m.secure,
				SameSite: http.SameSiteStrictMode,
				Expires:  time.Now().Add(m.ttl),
			})
		}
		next.ServeHTTP(w, r.WithContext(ContextWithBrowser(r.Context(), sid)))
	})
}

// RedisStorage keeps one token per browser session in Redis.
type RedisStorage struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// NewRedisStorage constructs a RedisStorage. keyPrefix names the fixed slot
// under which each browser's token is stored.
func NewRedisStorage(client *redis.Client, keyPrefix string, ttl time.Duration) *RedisStorage {
	return &RedisStorage{client: client, prefix: keyPrefix, ttl: ttl}
}

func (s *RedisStorage) key(sid string) string {
	return s.prefix + ":" + sid
}

// Read implements Storage. A request without a browser id, an empty slot and
// an unreachable Redis all read as "no token".
func (s *RedisStorage) Read(ctx context.Context) (string, bool, error) {
	sid, ok := BrowserFromContext(ctx)
	if !ok {
		return "", false, nil
	}
	token, err := s.client.Get(ctx, s.key(sid)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", false, nil
		}
		return "", false, err
	}
	return token, token != "", nil
}

// Write implements Storage, replacing any previous token for the browser.
func (s *RedisStorage) Write(ctx context.Context, token string) error {
	sid, ok := BrowserFromContext(ctx)
	if !ok {
		return errors.New("session: no browser session on context")
	}
	return s.client.Set(ctx, s.key(sid), token, s.ttl).Err()
}

// Clear implements Storage. Deleting an absent key is fine.
func (s *RedisStorage) Clear(ctx context.Context) error {
	sid, ok := BrowserFromContext(ctx)
	if !ok {
		return nil
	}
	err := s.client.Del(ctx, s.key(sid)).Err()
	if errors.Is(err, redis.Nil) {
		return nil
	}
	return err
}
