package types

import "github.com/google/uuid"

// TokenClaims carries the identity resolved from a session token.
type TokenClaims struct {
	UserID    uuid.UUID `json:"user_id"`
	SessionID string    `json:"session_id"`
}
