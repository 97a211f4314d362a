package domain

import "time"

// User Model
type User struct {
	ID        string    `gorm:"primaryKey;type:char(36)" json:"id"` // UUID primary key
	Name      string    `gorm:"not null" json:"name"`               // Display name
	Email     string    `gorm:"unique;not null" json:"email"`       // Unique email, login identity
	Password  string    `gorm:"not null" json:"-"`                  // Bcrypt hash, never serialized
	CreatedAt time.Time `json:"created_at"`                         // Timestamp of signup
}
