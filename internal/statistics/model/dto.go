// Package model provides data transfer objects for statistics module.
package model

import "time"

// UserEngagement is the raw counter row of a user.
type UserEngagement struct {
	ID                string    `gorm:"column:id"`
	Name              string    `gorm:"column:name"`
	Email             string    `gorm:"column:email"`
	IdeasCreatedCount int       `gorm:"column:ideas_created_count"`
	IdeasJoinedCount  int       `gorm:"column:ideas_joined_count"`
	CreatedAt         time.Time `gorm:"column:created_at"`
}

// LeaderboardEntry represents a ranked user.
type LeaderboardEntry struct {
	Rank              int    `json:"rank"`
	ID                string `json:"id"`
	Name              string `json:"name"`
	Email             string `json:"email"`
	IdeasCreatedCount int    `json:"ideasCreatedCount"`
	IdeasJoinedCount  int    `json:"ideasJoinedCount"`
	EngagementScore   int    `json:"engagementScore"`
}

// IdeaStatistics represents aggregate counters over all ideas.
type IdeaStatistics struct {
	TotalIdeas                 int     `json:"totalIdeas"`
	RequestedIdeas             int     `json:"requestedIdeas"`
	InProgressIdeas            int     `json:"inProgressIdeas"`
	CompletedIdeas             int     `json:"completedIdeas"`
	AverageContributorsPerIdea float64 `json:"averageContributorsPerIdea"`
	IdeasWithoutContributors   int     `json:"ideasWithoutContributors"`
	PendingRequests            int     `json:"pendingRequests"`
}

// IdeaStatisticsResponse represents response for idea statistics.
type IdeaStatisticsResponse struct {
	Statistics IdeaStatistics `json:"statistics"`
}
