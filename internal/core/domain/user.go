package domain

import "time"

// User represents an authenticated actor. EmailVerified gates issuance: an
// unverified actor may edit drafts but never seal a document.
type User struct {
	UserID        string `json:"userID"` // Primary key (UUID)
	Name          string `json:"name"`
	Email         string `json:"email"`
	PasswordHash  string `json:"-"`
	EmailVerified bool   `json:"emailVerified"`
	AuditFields
	DeletedAt *time.Time `json:"deletedAt,omitempty"` // Soft delete
}
