package domain

import "time"

// PendingStateTTL bounds how long an OAuth handshake may stay in flight.
const PendingStateTTL = 10 * time.Minute

// PendingOAuthState is the ephemeral CSRF record created when a client asks
// for an authorize URL. It is keyed externally by the random state token and
// consumed on first use regardless of outcome.
type PendingOAuthState struct {
	UserID    string    `json:"user_id"`
	Shop      string    `json:"shop"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Expired reports whether the handshake window has passed.
func (s *PendingOAuthState) Expired(now time.Time) bool {
	return now.After(s.ExpiresAt)
}
