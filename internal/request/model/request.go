package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Join request statuses. Pending moves once to Approved or Rejected.
const (
	StatusPending  = "Pending"
	StatusApproved = "Approved"
	StatusRejected = "Rejected"
)

// JoinRequest is a user's request to contribute to an idea.
// OwnerID caches the idea owner for authorization; idea ownership never changes.
// Matches the join_requests table schema.
type JoinRequest struct {
	ID          string    `gorm:"primaryKey;type:varchar(36)"                                                              json:"id"`
	IdeaID      string    `gorm:"column:idea_id;type:varchar(36);not null;uniqueIndex:idx_join_requests_pair,priority:1"   json:"ideaId"`
	RequesterID string    `gorm:"column:requester_id;type:varchar(36);not null;uniqueIndex:idx_join_requests_pair,priority:2;index" json:"requesterId"`
	OwnerID     string    `gorm:"column:owner_id;type:varchar(36);not null;index"                                          json:"ownerId"`
	Status      string    `gorm:"type:varchar(20);not null;default:Pending"                                                json:"status"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime"                                                         json:"createdAt"`
	UpdatedAt   time.Time `gorm:"column:updated_at;autoUpdateTime"                                                         json:"updatedAt"`
}

// TableName specifies the table name for GORM.
func (JoinRequest) TableName() string {
	return "join_requests"
}

// BeforeCreate assigns an id and the initial status.
func (r *JoinRequest) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	if r.Status == "" {
		r.Status = StatusPending
	}
	return nil
}
