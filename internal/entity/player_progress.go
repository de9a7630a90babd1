package entity

import (
	"database/sql"
	"time"
)

type Streak struct {
	CurrentLength int
	LongestLength int

	// LastActivityDate is the calendar day of the last qualifying activity.
	LastActivityDate sql.NullTime

	// CheckedOn is the calendar day of the last rollover evaluation.
	CheckedOn sql.NullTime
}

type PlayerProgress struct {
	UserID    string `gorm:"primaryKey"`
	CreatedAt time.Time
	UpdatedAt time.Time

	// ArchivedAt is set when the account is deleted. Progress is never removed.
	ArchivedAt sql.NullTime

	TotalPoints        int64
	CurrentLevel       int
	CurrentStarRank    int
	Streak             Streak `gorm:"embedded;embeddedPrefix:streak_"`
	TodayActivityCount int

	// Version is increased by every save and guards against lost updates.
	Version int64
}

func NewPlayerProgress(userID string) *PlayerProgress {
	return &PlayerProgress{
		UserID:          userID,
		CurrentLevel:    1,
		CurrentStarRank: 1,
	}
}

func (p *PlayerProgress) IsArchived() bool {
	return p.ArchivedAt.Valid
}
