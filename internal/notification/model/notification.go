package model

import "time"

// Notification is a free-text message addressed to one user.
// There is no read state; the log only grows.
type Notification struct {
	ID        int64     `gorm:"primaryKey;autoIncrement"                                          json:"id"`
	UserID    string    `gorm:"column:user_id;type:varchar(36);not null;index:idx_notifications_user" json:"userId"`
	Message   string    `gorm:"column:message;type:text;not null"                                 json:"message"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime;index:idx_notifications_user"     json:"createdAt"`
}

// TableName specifies the table name for GORM.
func (Notification) TableName() string {
	return "notifications"
}
