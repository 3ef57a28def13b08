package domain

import (
	"time"

	"github.com/google/uuid"
)

// Activity log action tags.
const (
	ActionRegister   = "REGISTER"
	ActionLogin      = "LOGIN"
	ActionLogout     = "LOGOUT"
	ActionPostItem   = "POST_ITEM"
	ActionUpdateItem = "UPDATE_ITEM"
	ActionDeleteItem = "DELETE_ITEM"
	ActionClaimItem  = "CLAIM_ITEM"
	ActionUpdateUser = "UPDATE_USER"
	ActionDeleteUser = "DELETE_USER"
)

// ActivityLog is an append-only audit record. Entries are never mutated
// and no delete operation is exposed to normal flows.
type ActivityLog struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	Action    string    `json:"action"`
	Details   string    `json:"details"`
	CreatedAt time.Time `json:"created_at"`
}
