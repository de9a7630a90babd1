package progression

import (
	"database/sql"
	"time"

	"github.com/go4it-sports/starpath/internal/entity"
	"github.com/go4it-sports/starpath/pkg/enum"
	"github.com/go4it-sports/starpath/pkg/errorx"
)

const (
	// Bonuses are expressed in basis points of entity.BasisPoints.
	StreakBonusPerDay  = 1000
	ChallengeBonus     = 2000
	FocusSessionBonus  = 5000
	FocusSessionMinute = 25

	// MaxBasePoints bounds a single event so awarded points cannot overflow.
	MaxBasePoints = 1_000_000
)

// IDGenerator returns a new unique and time ordered event id.
type IDGenerator func() int64

type RecordOptions struct {
	// FocusMinutes is the length of the focus session the activity belongs to.
	FocusMinutes int
}

// ParsePointEventType returns the event type named s, or InvalidEventType.
func ParsePointEventType(s string) (entity.PointEventType, error) {
	t, err := enum.ToEnum[entity.PointEventType](s)
	if err != nil {
		return "", errorx.New(errorx.InvalidEventType, "Unknown activity type %q", s)
	}

	return t, nil
}

func StreakBonus(streakLength int) int64 {
	if streakLength < 0 {
		return 0
	}

	return int64(streakLength) * StreakBonusPerDay
}

func ActivityBonus(eventType entity.PointEventType, opts RecordOptions) int64 {
	bonus := int64(0)
	if eventType == entity.ChallengeCompleted {
		bonus += ChallengeBonus
	}

	if opts.FocusMinutes >= FocusSessionMinute {
		bonus += FocusSessionBonus
	}

	return bonus
}

// Multiplier returns the multiplier, in basis points, applied to an activity
// recorded while the player holds the given streak.
func Multiplier(eventType entity.PointEventType, streakLength int, opts RecordOptions) int64 {
	return entity.BasisPoints + ActivityBonus(eventType, opts) + StreakBonus(streakLength)
}

// AwardPoints applies a multiplier to basePoints, rounding half up.
func AwardPoints(basePoints, multiplier int64) int64 {
	return (basePoints*multiplier + entity.BasisPoints/2) / entity.BasisPoints
}

// Ledger builds point events and keeps the running total of the player in
// sync with them.
type Ledger struct {
	nextID IDGenerator
}

func NewLedger(nextID IDGenerator) *Ledger {
	return &Ledger{nextID: nextID}
}

// Validate checks an activity before anything is changed.
func (l *Ledger) Validate(eventType entity.PointEventType, basePoints int64) error {
	if _, err := ParsePointEventType(string(eventType)); err != nil {
		return err
	}

	if eventType == entity.Milestone {
		return errorx.New(errorx.BadRequest, "Milestone points are only awarded by achievements")
	}

	if basePoints < 0 {
		return errorx.New(errorx.BadRequest, "Base points must not be negative")
	}

	if basePoints > MaxBasePoints {
		return errorx.New(errorx.BadRequest, "Base points must not exceed %d", MaxBasePoints)
	}

	return nil
}

// Record appends an activity for the player. The streak of the player must be
// rolled over to now before calling it.
func (l *Ledger) Record(
	p *entity.PlayerProgress,
	eventType entity.PointEventType,
	basePoints int64,
	opts RecordOptions,
	now time.Time,
) (*entity.PointEvent, error) {
	if err := l.Validate(eventType, basePoints); err != nil {
		return nil, err
	}

	multiplier := Multiplier(eventType, p.Streak.CurrentLength, opts)
	event := l.newEvent(p.UserID, eventType, basePoints, multiplier, now)
	p.TotalPoints += event.AwardedPoints

	return event, nil
}

// Reward appends the milestone event granted by an achievement unlock.
func (l *Ledger) Reward(p *entity.PlayerProgress, achievementID string, points int64, now time.Time) *entity.PointEvent {
	event := l.newEvent(p.UserID, entity.Milestone, points, entity.BasisPoints, now)
	event.SourceAchievementID = sql.NullString{Valid: true, String: achievementID}
	p.TotalPoints += event.AwardedPoints

	return event
}

func (l *Ledger) newEvent(
	userID string,
	eventType entity.PointEventType,
	basePoints, multiplier int64,
	now time.Time,
) *entity.PointEvent {
	return &entity.PointEvent{
		SnowFlakeBase: entity.SnowFlakeBase{
			ID:        l.nextID(),
			CreatedAt: now,
		},
		UserID:                userID,
		Type:                  eventType,
		BasePoints:            basePoints,
		MultiplierBasisPoints: multiplier,
		AwardedPoints:         AwardPoints(basePoints, multiplier),
	}
}
