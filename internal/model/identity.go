package model

import "time"

// Identity is caller identity returned by identity provider.
// ExpiresAt is when the credential stops being valid, zero if provider didn't tell.
type Identity struct {
	Subject   string         `json:"subject" msgpack:"subject"`
	Claims    map[string]any `json:"claims" msgpack:"claims"`
	ExpiresAt time.Time      `json:"expires_at" msgpack:"expires_at"`
}

// ExpiredAt reports whether credential is no longer valid at t
func (i *Identity) ExpiredAt(t time.Time) bool {
	return !i.ExpiresAt.IsZero() && !t.Before(i.ExpiresAt)
}
