package models

import "time"

// Like represents a user's like on a message.
// The combination of UserID and MessageID must be unique. Authors may not
// like their own messages; that rule lives in the authz package, not here.
type Like struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_user_message" json:"user_id"`
	MessageID uint      `gorm:"not null;uniqueIndex:idx_user_message" json:"message_id"`
	CreatedAt time.Time `json:"created_at"`

	// Relationships
	User    User    `gorm:"foreignKey:UserID" json:"user"`
	Message Message `gorm:"foreignKey:MessageID" json:"message"`
}
