package testdb

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	ideamodel "github.com/festy23/ideawaves/internal/idea/model"
	usermodel "github.com/festy23/ideawaves/internal/user/model"
)

// CreateUser inserts a user named name with email <name>@example.com.
func CreateUser(t *testing.T, db *gorm.DB, name string) *usermodel.User {
	t.Helper()

	user := &usermodel.User{
		Name:         name,
		Email:        strings.ToLower(strings.ReplaceAll(name, " ", ".")) + "@example.com",
		PasswordHash: "hash",
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

// CreateIdea inserts a Requested idea owned by owner.
func CreateIdea(t *testing.T, db *gorm.DB, owner *usermodel.User, title string) *ideamodel.Idea {
	t.Helper()

	idea := &ideamodel.Idea{
		Title:        title,
		Description:  title + " description",
		Category:     "Tech",
		OwnerID:      owner.ID,
		OwnerEmail:   owner.Email,
		ContactEmail: owner.Email,
	}
	require.NoError(t, db.Create(idea).Error)
	return idea
}

// SetIdeaStatus overwrites the status of an idea.
func SetIdeaStatus(t *testing.T, db *gorm.DB, ideaID, status string) {
	t.Helper()
	require.NoError(t, db.Model(&ideamodel.Idea{}).Where("id = ?", ideaID).Update("status", status).Error)
}
