package model

import "time"

type Streak struct {
	CurrentLength      int    `json:"currentLength"`
	LongestLength      int    `json:"longestLength"`
	LastActivityDate   string `json:"lastActivityDate,omitempty"`
	TodayActivityCount int    `json:"todayActivityCount"`
}

type Achievement struct {
	ID          string         `json:"id"`
	Kind        string         `json:"kind"`
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Icon        string         `json:"icon,omitempty"`
	Points      int64          `json:"points"`
	Rule        map[string]any `json:"rule"`

	Unlocked    bool       `json:"unlocked"`
	UnlockedAt  *time.Time `json:"unlockedAt,omitempty"`
	WasNotified bool       `json:"wasNotified"`
	Progress    int64      `json:"progress"`
	Target      int64      `json:"target"`
}

// PlayerSnapshot is the read-only view of a player given to clients.
type PlayerSnapshot struct {
	UserID string `json:"userId"`

	TotalPoints     int64   `json:"totalPoints"`
	CurrentLevel    int     `json:"currentLevel"`
	LevelTitle      string  `json:"levelTitle"`
	XPToNextLevel   int64   `json:"xpToNextLevel"`
	ProgressPercent float64 `json:"progressPercent"`

	CurrentStarRank    int    `json:"currentStarRank"`
	StarRankName       string `json:"starRankName"`
	CanAdvanceStarRank bool   `json:"canAdvanceStarRank"`
	NextStarRankPoints int64  `json:"nextStarRankPoints,omitempty"`

	Streak Streak `json:"streak"`

	UnlockedAchievements []Achievement `json:"unlockedAchievements"`
	Badges               []Achievement `json:"badges"`
}

type PointEvent struct {
	ID                  string    `json:"id"`
	Type                string    `json:"type"`
	BasePoints          int64     `json:"basePoints"`
	Multiplier          float64   `json:"multiplier"`
	AwardedPoints       int64     `json:"awardedPoints"`
	SourceAchievementID string    `json:"sourceAchievementId,omitempty"`
	CreatedAt           time.Time `json:"createdAt"`
}

type RecordActivityResponse struct {
	Event    PointEvent     `json:"event"`
	Rewards  []PointEvent   `json:"rewards"`
	Unlocked []Achievement  `json:"unlocked"`
	LevelUp  bool           `json:"levelUp"`
	Player   PlayerSnapshot `json:"player"`
}

type DailyCheckInRequest struct {
	FocusMinutes int `json:"focusMinutes"`
}

type AddXPRequest struct {
	SkillID      string `json:"skillId"`
	XPAmount     int64  `json:"xpAmount"`
	FocusMinutes int    `json:"focusMinutes"`
}

type RecordActivityRequest struct {
	Type         string `json:"type"`
	BasePoints   int64  `json:"basePoints"`
	FocusMinutes int    `json:"focusMinutes"`
}

type VideoAnalyzedRequest struct {
	VideoID string `json:"videoId"`
}

type LevelUpStarRankRequest struct {
	UserID string `json:"userId"`
}

type LevelUpStarRankResponse struct {
	PreviousRank int            `json:"previousRank"`
	CurrentRank  int            `json:"currentRank"`
	StarRankName string         `json:"starRankName"`
	Player       PlayerSnapshot `json:"player"`
}

type GetProgressRequest struct {
	UserID string `json:"userId"`
}

type GetProgressResponse struct {
	Player PlayerSnapshot `json:"player"`
}

type GetPointEventsRequest struct {
	Type   string `json:"type"`
	Offset int    `json:"offset"`
	Limit  int    `json:"limit"`
}

type GetPointEventsResponse struct {
	Events []PointEvent `json:"events"`
}

type CorrectPointsRequest struct {
	UserID string `json:"userId"`
	Delta  int64  `json:"delta"`
	Reason string `json:"reason"`
}

type CorrectPointsResponse struct {
	Player PlayerSnapshot `json:"player"`
}

type ArchivePlayerRequest struct {
	UserID string `json:"userId"`
}

type ArchivePlayerResponse struct{}
