package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SystemSenderName is the display name of messages generated by the server.
const SystemSenderName = "System"

// Chat is the single group thread of an idea.
// Matches the chats table schema.
type Chat struct {
	ID        string    `gorm:"primaryKey;type:varchar(36)"                           json:"id"`
	IdeaID    string    `gorm:"column:idea_id;type:varchar(36);not null;uniqueIndex"  json:"ideaId"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"                      json:"createdAt"`
}

// TableName specifies the table name for GORM.
func (Chat) TableName() string {
	return "chats"
}

// BeforeCreate assigns an id.
func (c *Chat) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}

// Participant grants a user access to a chat.
// Matches the chat_participants table schema.
type Participant struct {
	ChatID   string    `gorm:"primaryKey;column:chat_id;type:varchar(36)"`
	UserID   string    `gorm:"primaryKey;column:user_id;type:varchar(36);index"`
	JoinedAt time.Time `gorm:"column:joined_at;autoCreateTime"`
}

// TableName specifies the table name for GORM.
func (Participant) TableName() string {
	return "chat_participants"
}

// Message is an immutable chat entry. IDs increase in append order.
// Matches the chat_messages table schema.
type Message struct {
	ID              int64     `gorm:"primaryKey;autoIncrement"                         json:"id"`
	ChatID          string    `gorm:"column:chat_id;type:varchar(36);not null;index"   json:"-"`
	SenderID        string    `gorm:"column:sender_id;type:varchar(36);not null"       json:"senderId"`
	SenderName      string    `gorm:"column:sender_name;type:varchar(255);not null"    json:"senderName"`
	Text            string    `gorm:"column:text;type:text;not null"                   json:"text"`
	IsSystemMessage bool      `gorm:"column:is_system_message;not null;default:false"  json:"isSystemMessage"`
	SentAt          time.Time `gorm:"column:sent_at;not null"                          json:"timestamp"`
}

// TableName specifies the table name for GORM.
func (Message) TableName() string {
	return "chat_messages"
}
