package progression

import (
	"testing"

	"github.com/go4it-sports/starpath/internal/entity"
	"github.com/go4it-sports/starpath/pkg/errorx"
	"github.com/stretchr/testify/require"
)

func sequence() IDGenerator {
	id := int64(0)
	return func() int64 {
		id++
		return id
	}
}

func TestLedger_DailyCheckInWithoutStreak(t *testing.T) {
	p := entity.NewPlayerProgress("user")
	ledger := NewLedger(sequence())

	event, err := ledger.Record(p, entity.DailyCheckIn, 50, RecordOptions{}, day0)
	require.NoError(t, err)
	require.Equal(t, int64(50), event.AwardedPoints)
	require.Equal(t, int64(entity.BasisPoints), event.MultiplierBasisPoints)
	require.Equal(t, float64(1), event.Multiplier())
	require.Equal(t, int64(50), p.TotalPoints)
	require.Equal(t, int64(1), event.ID)
	require.Equal(t, "user", event.UserID)
}

func TestLedger_StreakBonus(t *testing.T) {
	p := entity.NewPlayerProgress("user")
	p.Streak.CurrentLength = 5

	event, err := NewLedger(sequence()).Record(p, entity.WorkoutVerified, 100, RecordOptions{}, day0)
	require.NoError(t, err)
	require.Equal(t, 1.5, event.Multiplier())
	require.Equal(t, int64(150), event.AwardedPoints)
	require.Equal(t, int64(150), p.TotalPoints)
}

func TestLedger_ActivityBonus(t *testing.T) {
	tests := []struct {
		name       string
		eventType  entity.PointEventType
		opts       RecordOptions
		multiplier int64
	}{
		{name: "drill", eventType: entity.DrillCompleted, multiplier: 10000},
		{name: "challenge", eventType: entity.ChallengeCompleted, multiplier: 12000},
		{name: "short focus", eventType: entity.DrillCompleted, opts: RecordOptions{FocusMinutes: 24}, multiplier: 10000},
		{name: "focus", eventType: entity.DrillCompleted, opts: RecordOptions{FocusMinutes: 25}, multiplier: 15000},
		{name: "focused challenge", eventType: entity.ChallengeCompleted, opts: RecordOptions{FocusMinutes: 40}, multiplier: 17000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.multiplier, Multiplier(tt.eventType, 0, tt.opts))
		})
	}
}

func TestAwardPoints_RoundsHalfUp(t *testing.T) {
	require.Equal(t, int64(0), AwardPoints(0, 25000))
	require.Equal(t, int64(2), AwardPoints(1, 15000))
	require.Equal(t, int64(1), AwardPoints(1, 14999))
	require.Equal(t, int64(12), AwardPoints(11, 11000))
	require.Equal(t, int64(17), AwardPoints(11, 15000))
	require.Equal(t, int64(1200), AwardPoints(1000, 12000))
}

func TestLedger_AwardedNeverBelowBase(t *testing.T) {
	for streak := 0; streak < 40; streak += 3 {
		for _, base := range []int64{0, 1, 7, 50, 333} {
			multiplier := Multiplier(entity.ChallengeCompleted, streak, RecordOptions{})
			require.GreaterOrEqual(t, AwardPoints(base, multiplier), base)
		}
	}
}

func TestLedger_Rejections(t *testing.T) {
	p := entity.NewPlayerProgress("user")
	ledger := NewLedger(sequence())

	_, err := ledger.Record(p, entity.PointEventType("sleeping"), 10, RecordOptions{}, day0)
	require.True(t, errorx.Is(err, errorx.InvalidEventType))

	_, err = ledger.Record(p, entity.DrillCompleted, -1, RecordOptions{}, day0)
	require.True(t, errorx.Is(err, errorx.BadRequest))

	_, err = ledger.Record(p, entity.Milestone, 10, RecordOptions{}, day0)
	require.True(t, errorx.Is(err, errorx.BadRequest))

	_, err = ledger.Record(p, entity.DrillCompleted, MaxBasePoints+1, RecordOptions{}, day0)
	require.True(t, errorx.Is(err, errorx.BadRequest))

	require.Equal(t, int64(0), p.TotalPoints)
}

func TestLedger_Reward(t *testing.T) {
	p := entity.NewPlayerProgress("user")
	p.Streak.CurrentLength = 9

	event := NewLedger(sequence()).Reward(p, "points-500", 50, day0)
	require.Equal(t, entity.Milestone, event.Type)
	require.Equal(t, int64(50), event.AwardedPoints)
	require.Equal(t, "points-500", event.SourceAchievementID.String)
	require.Equal(t, int64(50), p.TotalPoints)
}

func TestParsePointEventType(t *testing.T) {
	eventType, err := ParsePointEventType("video-analyzed")
	require.NoError(t, err)
	require.Equal(t, entity.VideoAnalyzed, eventType)

	_, err = ParsePointEventType("unknown")
	require.True(t, errorx.Is(err, errorx.InvalidEventType))
}
