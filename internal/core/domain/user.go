package domain

import (
	"time"

	"github.com/google/uuid"
)

// User is an owner identity. Its UUID is the owner key every ledger record
// derivation is bound to.
type User struct {
	ID           uuid.UUID `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"` // Never expose
	CreatedAt    time.Time `json:"created_at"`
}
