// Package session holds the bearer token issued by the Loja backend and the
// identity derived from it. The token is treated as opaque except for its
// claims segment, which is decoded locally to answer "who is this and what
// may they do" without a round-trip.
package session

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Role is an access class granted by the backend.
type Role string

// Roles recognised by the client.
const (
	RoleAdmin   Role = "ADMIN"
	RoleCliente Role = "CLIENTE"
)

// Claims is the subset of token claims the client acts on.
type Claims struct {
	// ExpiresAt is zero when the token carries no expiry claim.
	ExpiresAt time.Time
	Roles     []Role
	// Subject is empty when neither a sub nor an id claim holds a string.
	Subject string
}

// Expired reports whether the claims carry an expiry at or before now.
// Tokens without an expiry claim never expire client-side.
func (c Claims) Expired(now time.Time) bool {
	if c.ExpiresAt.IsZero() {
		return false
	}
	return !c.ExpiresAt.After(now)
}

// DecodeError describes why a token could not be decoded. Callers treat any
// decode failure as "not authenticated" rather than surfacing it.
type DecodeError struct {
	Reason string
	Err    error
}

func (e *DecodeError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("decode token: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("decode token: %s", e.Reason)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// rawClaims mirrors the wire shape of the claims segment. The backend has
// emitted the role claim both as a scalar and as a list over time, so both
// are accepted.
type rawClaims struct {
	Exp   *float64        `json:"exp"`
	Roles []Role          `json:"roles"`
	Role  json.RawMessage `json:"role"`
	Sub   json.RawMessage `json:"sub"`
	ID    json.RawMessage `json:"id"`
}

// Decode splits the token on ".", base64-decodes the claims segment and
// parses it. It returns a DecodeError on any failure and never panics;
// tokens that do not decode are simply not trusted.
func Decode(token string) (Claims, error) {
	segments := strings.Split(token, ".")
	if len(segments) < 2 || segments[1] == "" {
		return Claims{}, &DecodeError{Reason: "missing claims segment"}
	}

	payload, err := decodeSegment(segments[1])
	if err != nil {
		return Claims{}, &DecodeError{Reason: "invalid base64 payload", Err: err}
	}

	var raw *rawClaims
	if err := json.Unmarshal(payload, &raw); err != nil {
		return Claims{}, &DecodeError{Reason: "claims are not a JSON object", Err: err}
	}
	// A "null" payload unmarshals without error; it is still not a claims object.
	if raw == nil {
		return Claims{}, &DecodeError{Reason: "claims object is null"}
	}

	claims := Claims{
		Roles:   normalizeRoles(*raw),
		Subject: stringClaim(raw.Sub, raw.ID),
	}
	if raw.Exp != nil {
		claims.ExpiresAt = time.Unix(int64(*raw.Exp), 0)
	}
	return claims, nil
}

// decodeSegment accepts both URL-safe and standard alphabets, padded or not,
// since token issuers are not consistent about it.
func decodeSegment(segment string) ([]byte, error) {
	trimmed := strings.TrimRight(segment, "=")
	if data, err := base64.RawURLEncoding.DecodeString(trimmed); err == nil {
		return data, nil
	}
	return base64.RawStdEncoding.DecodeString(trimmed)
}

// normalizeRoles flattens the roles/role claims into one set-like slice.
// A scalar role claim becomes a single-element slice.
func normalizeRoles(raw rawClaims) []Role {
	if len(raw.Roles) > 0 {
		return raw.Roles
	}
	if len(raw.Role) == 0 {
		return nil
	}
	var single Role
	if err := json.Unmarshal(raw.Role, &single); err == nil && single != "" {
		return []Role{single}
	}
	var many []Role
	if err := json.Unmarshal(raw.Role, &many); err == nil {
		return many
	}
	return nil
}

// stringClaim returns the first candidate that is a JSON string.
func stringClaim(candidates ...json.RawMessage) string {
	for _, c := range candidates {
		if len(c) == 0 {
			continue
		}
		var s string
		if err := json.Unmarshal(c, &s); err == nil && s != "" {
			return s
		}
	}
	return ""
}
