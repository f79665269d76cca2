package model

import "time"

// RevokedToken is an entry of the logout list. Rows are useless once
// ExpiresAt passes because the token itself is rejected by then.
type RevokedToken struct {
	TokenID   string    `gorm:"primaryKey;size:64"`
	UserID    string    `gorm:"index"`
	ExpiresAt time.Time `gorm:"index;not null"`
	CreatedAt time.Time
}
