package models

import "time"

// ApiToken stores only the SHA-256 of the issued token; the plaintext
// is returned exactly once at creation.
type ApiToken struct {
	ID         string `gorm:"primaryKey;size:36" json:"id"`
	UserID     string `gorm:"index;size:36;not null" json:"user_id"`
	Name       string `gorm:"size:100;not null" json:"name"`
	TokenHash  string `gorm:"uniqueIndex;size:64;not null" json:"-"`
	CreatedAt  time.Time  `json:"created_at"`
	LastUsedAt *time.Time `json:"last_used_at,omitempty"`
}
