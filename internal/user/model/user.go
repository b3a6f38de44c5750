package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// User represents a registered account.
// Matches the users table schema.
type User struct {
	ID                string                      `gorm:"primaryKey;type:varchar(36)"                         json:"id"`
	Name              string                      `gorm:"type:varchar(255);not null"                          json:"name"`
	Email             string                      `gorm:"type:varchar(255);not null;uniqueIndex:idx_users_email" json:"email"`
	PasswordHash      string                      `gorm:"column:password_hash;not null"                       json:"-"`
	Skills            datatypes.JSONSlice[string] `gorm:"column:skills"                                       json:"skills"`
	IdeasCreatedCount int                         `gorm:"column:ideas_created_count;not null;default:0"       json:"ideasCreatedCount"`
	IdeasJoinedCount  int                         `gorm:"column:ideas_joined_count;not null;default:0"        json:"ideasJoinedCount"`
	CreatedAt         time.Time                   `gorm:"column:created_at;autoCreateTime"                    json:"createdAt"`
	UpdatedAt         time.Time                   `gorm:"column:updated_at;autoUpdateTime"                    json:"updatedAt"`
}

// TableName specifies the table name for GORM.
func (User) TableName() string {
	return "users"
}

// BeforeCreate assigns an id when the caller did not.
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	if u.Skills == nil {
		u.Skills = datatypes.JSONSlice[string]{}
	}
	return nil
}

// Summary returns the public projection used when a user is embedded in other resources.
func (u *User) Summary() Summary {
	skills := []string(u.Skills)
	if skills == nil {
		skills = []string{}
	}
	return Summary{ID: u.ID, Name: u.Name, Email: u.Email, Skills: skills}
}

// Summary is a user as embedded in ideas, requests and chats.
type Summary struct {
	ID     string   `json:"id"`
	Name   string   `json:"name"`
	Email  string   `json:"email"`
	Skills []string `json:"skills,omitempty"`
}
