package progression

import (
	"database/sql"
	"time"

	"github.com/go4it-sports/starpath/internal/entity"
	"github.com/go4it-sports/starpath/pkg/dateutil"
	"github.com/go4it-sports/starpath/pkg/enum"
)

type StreakTransition string

var (
	StreakUnchanged = enum.New(StreakTransition("unchanged"))
	StreakAdvanced  = enum.New(StreakTransition("advanced"))
	StreakBroken    = enum.New(StreakTransition("broken"))
)

// DefaultStreakThreshold is the number of activities a day needs to count
// toward the streak.
const DefaultStreakThreshold = 1

// StreakTracker maintains the daily activity streak of a player. A streak
// length is the number of completed consecutive days which reached the
// threshold. The day in progress is only counted when it rolls over.
type StreakTracker struct {
	threshold int
}

func NewStreakTracker(threshold int) StreakTracker {
	if threshold < 1 {
		threshold = DefaultStreakThreshold
	}

	return StreakTracker{threshold: threshold}
}

func (t StreakTracker) Threshold() int {
	return t.threshold
}

// CheckRollover closes the last active day if today is a later day. It is a
// no-op when called more than once on the same day.
func (t StreakTracker) CheckRollover(p *entity.PlayerProgress, now time.Time) StreakTransition {
	streak := &p.Streak
	if !streak.LastActivityDate.Valid {
		return StreakUnchanged
	}

	today := dateutil.Day(now)
	if streak.CheckedOn.Valid && dateutil.IsSameDay(streak.CheckedOn.Time, today) {
		return StreakUnchanged
	}

	daysSince := dateutil.DaysBetween(streak.LastActivityDate.Time, today)
	if daysSince <= 0 {
		return StreakUnchanged
	}

	streak.CheckedOn = sql.NullTime{Valid: true, Time: today}
	if daysSince == 1 && p.TodayActivityCount >= t.threshold {
		streak.CurrentLength++
		if streak.CurrentLength > streak.LongestLength {
			streak.LongestLength = streak.CurrentLength
		}
		p.TodayActivityCount = 0
		return StreakAdvanced
	}

	streak.CurrentLength = 0
	p.TodayActivityCount = 0
	return StreakBroken
}

// OnActivity registers one qualifying activity happening at now.
func (t StreakTracker) OnActivity(p *entity.PlayerProgress, now time.Time) StreakTransition {
	transition := t.CheckRollover(p, now)

	p.Streak.LastActivityDate = sql.NullTime{Valid: true, Time: dateutil.Day(now)}
	p.TodayActivityCount++

	return transition
}
