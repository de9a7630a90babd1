package model

import (
	"time"

	"github.com/go4it-sports/starpath/pkg/enum"
)

type EventType string

var (
	PointsAwardedEvent       = enum.New(EventType("points_awarded"))
	PointsCorrectedEvent     = enum.New(EventType("points_corrected"))
	StreakAdvancedEvent      = enum.New(EventType("streak_advanced"))
	StreakBrokenEvent        = enum.New(EventType("streak_broken"))
	AchievementUnlockedEvent = enum.New(EventType("achievement_unlocked"))
	StarRankAdvancedEvent    = enum.New(EventType("star_rank_advanced"))
	LevelUpEvent             = enum.New(EventType("level_up"))
	PlayerArchivedEvent      = enum.New(EventType("player_archived"))
)

// Event is a change of a player published after it has been committed.
type Event struct {
	Type       EventType `json:"type"`
	UserID     string    `json:"userId"`
	OccurredAt time.Time `json:"occurredAt"`

	Points         int64  `json:"points,omitempty"`
	PointEventType string `json:"pointEventType,omitempty"`
	PointEventID   string `json:"pointEventId,omitempty"`
	AchievementID  string `json:"achievementId,omitempty"`
	StreakLength   int    `json:"streakLength,omitempty"`
	Level          int    `json:"level,omitempty"`
	StarRank       int    `json:"starRank,omitempty"`
}
