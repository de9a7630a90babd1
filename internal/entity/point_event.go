package entity

import (
	"database/sql"

	"github.com/go4it-sports/starpath/pkg/enum"
)

type PointEventType string

var (
	DailyCheckIn       = enum.New(PointEventType("daily-check-in"))
	WorkoutVerified    = enum.New(PointEventType("workout-verified"))
	VideoAnalyzed      = enum.New(PointEventType("video-analyzed"))
	DrillCompleted     = enum.New(PointEventType("drill-completed"))
	ChallengeCompleted = enum.New(PointEventType("challenge-completed"))
	Milestone          = enum.New(PointEventType("milestone"))
)

// BasisPoints is the scale of PointEvent.MultiplierBasisPoints, a multiplier of
// 1.5 is stored as 15000.
const BasisPoints = 10000

type PointEvent struct {
	SnowFlakeBase

	UserID string         `gorm:"index"`
	Type   PointEventType `gorm:"index"`

	BasePoints            int64
	MultiplierBasisPoints int64
	AwardedPoints         int64

	// SourceAchievementID is set when the event rewards an achievement unlock.
	SourceAchievementID sql.NullString
}

func (e *PointEvent) Multiplier() float64 {
	return float64(e.MultiplierBasisPoints) / BasisPoints
}

type PointEventTypeCount struct {
	Type  PointEventType
	Count int64
}
