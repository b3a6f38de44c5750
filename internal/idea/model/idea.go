package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Idea statuses. Transitions only move forward: Requested, In Progress, Completed.
const (
	StatusRequested  = "Requested"
	StatusInProgress = "In Progress"
	StatusCompleted  = "Completed"
)

// Idea represents a proposed project.
// Matches the ideas table schema.
type Idea struct {
	ID             string                      `gorm:"primaryKey;type:varchar(36)"                        json:"id"`
	Title          string                      `gorm:"type:varchar(255);not null"                         json:"title"`
	Description    string                      `gorm:"type:text;not null"                                 json:"description"`
	Category       string                      `gorm:"type:varchar(100);not null"                         json:"category"`
	Image          string                      `gorm:"type:text"                                          json:"image"`
	RequiredSkills datatypes.JSONSlice[string] `gorm:"column:required_skills"                             json:"requiredSkills"`
	OwnerID        string                      `gorm:"column:owner_id;type:varchar(36);not null;index"    json:"ownerId"`
	OwnerEmail     string                      `gorm:"column:owner_email;type:varchar(255);not null"      json:"ownerEmail"`
	ContactEmail   string                      `gorm:"column:contact_email;type:varchar(255)"             json:"contactEmail"`
	Status         string                      `gorm:"type:varchar(20);not null;default:Requested;index"  json:"status"`
	CompletedAt    *time.Time                  `gorm:"column:completed_at"                                json:"completedAt,omitempty"`
	CreatedAt      time.Time                   `gorm:"column:created_at;autoCreateTime"                   json:"createdAt"`
	UpdatedAt      time.Time                   `gorm:"column:updated_at;autoUpdateTime"                   json:"updatedAt"`
}

// TableName specifies the table name for GORM.
func (Idea) TableName() string {
	return "ideas"
}

// BeforeCreate assigns an id and the initial status.
func (i *Idea) BeforeCreate(tx *gorm.DB) error {
	if i.ID == "" {
		i.ID = uuid.NewString()
	}
	if i.Status == "" {
		i.Status = StatusRequested
	}
	if i.RequiredSkills == nil {
		i.RequiredSkills = datatypes.JSONSlice[string]{}
	}
	return nil
}

// IsOwner reports whether userID owns the idea.
func (i *Idea) IsOwner(userID string) bool {
	return userID != "" && i.OwnerID == userID
}

// Ref returns the short projection embedded in requests and chats.
func (i *Idea) Ref() Ref {
	return Ref{ID: i.ID, Title: i.Title, Status: i.Status}
}

// Contributor records an approved member of an idea's team.
// Matches the idea_contributors table schema.
type Contributor struct {
	IdeaID   string    `gorm:"primaryKey;column:idea_id;type:varchar(36)"`
	UserID   string    `gorm:"primaryKey;column:user_id;type:varchar(36);index"`
	JoinedAt time.Time `gorm:"column:joined_at;autoCreateTime"`
}

// TableName specifies the table name for GORM.
func (Contributor) TableName() string {
	return "idea_contributors"
}

// Ref is an idea as embedded in other resources.
type Ref struct {
	ID     string `json:"id"`
	Title  string `json:"title"`
	Status string `json:"status"`
}
