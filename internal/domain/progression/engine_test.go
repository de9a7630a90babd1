package progression

import (
	"database/sql"
	"testing"
	"time"

	"github.com/go4it-sports/starpath/internal/entity"
	"github.com/go4it-sports/starpath/pkg/errorx"
	"github.com/stretchr/testify/require"
)

func newTestEngine(t *testing.T, achievements ...Achievement) *Engine {
	return NewEngine(newTestCatalog(t, achievements...), 1, sequence())
}

func newState(p *entity.PlayerProgress) *EvaluationState {
	return NewEvaluationState(p, nil, nil)
}

func TestEngine_Record_FirstCheckIn(t *testing.T) {
	engine := newTestEngine(t)
	p := entity.NewPlayerProgress("user")

	outcome, err := engine.Record(newState(p), entity.DailyCheckIn, 50, RecordOptions{}, day0)
	require.NoError(t, err)
	require.Equal(t, int64(50), outcome.Event.AwardedPoints)
	require.Equal(t, int64(50), p.TotalPoints)
	require.Equal(t, 1, p.CurrentLevel)
	require.False(t, outcome.LeveledUp())
	require.Equal(t, StreakUnchanged, outcome.Streak)
	require.Equal(t, 1, p.TodayActivityCount)
	require.True(t, p.Streak.LastActivityDate.Valid)
	require.Len(t, outcome.Events(), 1)
	require.True(t, outcome.Changed())
}

func TestEngine_Record_StreakMultiplier(t *testing.T) {
	engine := newTestEngine(t)
	p := entity.NewPlayerProgress("user")
	p.Streak.CurrentLength = 5
	p.Streak.LongestLength = 5
	p.Streak.LastActivityDate = sql.NullTime{Valid: true, Time: day0}
	p.TodayActivityCount = 1

	outcome, err := engine.Record(newState(p), entity.WorkoutVerified, 100, RecordOptions{}, day0)
	require.NoError(t, err)
	require.Equal(t, 1.5, outcome.Event.Multiplier())
	require.Equal(t, int64(150), outcome.Event.AwardedPoints)
}

func TestEngine_Record_UsesTodayStreak(t *testing.T) {
	engine := newTestEngine(t)
	p := entity.NewPlayerProgress("user")
	state := newState(p)

	_, err := engine.Record(state, entity.DrillCompleted, 10, RecordOptions{}, onDay(0))
	require.NoError(t, err)

	outcome, err := engine.Record(state, entity.DrillCompleted, 10, RecordOptions{}, onDay(1))
	require.NoError(t, err)
	require.Equal(t, StreakAdvanced, outcome.Streak)
	require.Equal(t, int64(11000), outcome.Event.MultiplierBasisPoints)
	require.Equal(t, int64(11), outcome.Event.AwardedPoints)
	require.Equal(t, int64(21), p.TotalPoints)
	require.Equal(t, int64(2), state.ActivityCounts[entity.DrillCompleted])
}

func TestEngine_Record_LevelUp(t *testing.T) {
	engine := newTestEngine(t)
	p := entity.NewPlayerProgress("user")
	p.TotalPoints = 90

	outcome, err := engine.Record(newState(p), entity.DrillCompleted, 10, RecordOptions{}, day0)
	require.NoError(t, err)
	require.Equal(t, 1, outcome.PreviousLevel)
	require.Equal(t, 2, outcome.CurrentLevel)
	require.True(t, outcome.LeveledUp())
	require.Equal(t, 2, p.CurrentLevel)
}

func TestEngine_Record_CrossingStarRankThreshold(t *testing.T) {
	engine := newTestEngine(t)
	p := entity.NewPlayerProgress("user")
	p.TotalPoints = 999

	_, err := engine.Record(newState(p), entity.DrillCompleted, 1, RecordOptions{}, day0)
	require.NoError(t, err)
	require.Equal(t, int64(1000), p.TotalPoints)
	require.True(t, CanAdvanceStarRank(p))
	require.Equal(t, 1, p.CurrentStarRank)

	require.NoError(t, AdvanceStarRank(p))
	require.Equal(t, "Emerging Talent", StarRankName(p.CurrentStarRank))
}

func TestEngine_Record_AchievementReward(t *testing.T) {
	engine := newTestEngine(t, Achievement{
		ID:     "points-500",
		Name:   "Point Collector",
		Points: 50,
		Rule:   Rule{Kind: CumulativePointsRule, Threshold: 500},
	})
	p := entity.NewPlayerProgress("user")
	p.TotalPoints = 480
	state := newState(p)

	outcome, err := engine.Record(state, entity.DrillCompleted, 20, RecordOptions{}, day0)
	require.NoError(t, err)
	require.Len(t, outcome.Unlocks, 1)
	require.Equal(t, int64(550), p.TotalPoints)

	events := outcome.Events()
	require.Len(t, events, 2)
	require.Equal(t, entity.DrillCompleted, events[0].Type)
	require.Equal(t, entity.Milestone, events[1].Type)

	sum := int64(480)
	for _, e := range events {
		sum += e.AwardedPoints
	}
	require.Equal(t, p.TotalPoints, sum)

	outcome, err = engine.Record(state, entity.DrillCompleted, 20, RecordOptions{}, day0)
	require.NoError(t, err)
	require.Empty(t, outcome.Unlocks)
	require.Equal(t, int64(570), p.TotalPoints)
}

func TestEngine_Record_InvalidLeavesStateUntouched(t *testing.T) {
	engine := newTestEngine(t)
	p := entity.NewPlayerProgress("user")
	p.Streak.CurrentLength = 3
	p.Streak.LongestLength = 3
	p.Streak.LastActivityDate = sql.NullTime{Valid: true, Time: onDay(0)}
	before := *p

	_, err := engine.Record(newState(p), entity.PointEventType("nap"), 10, RecordOptions{}, onDay(5))
	require.True(t, errorx.Is(err, errorx.InvalidEventType))
	require.Equal(t, before, *p)
}

func TestEngine_Refresh(t *testing.T) {
	engine := newTestEngine(t, Achievement{
		ID:     "streak-2",
		Points: 40,
		Rule:   Rule{Kind: StreakRule, Threshold: 2},
	})
	p := entity.NewPlayerProgress("user")
	state := newState(p)

	for day := 0; day < 2; day++ {
		_, err := engine.Record(state, entity.DailyCheckIn, 50, RecordOptions{}, onDay(day))
		require.NoError(t, err)
	}
	require.Equal(t, 1, p.Streak.CurrentLength)

	outcome := engine.Refresh(state, onDay(2))
	require.Equal(t, StreakAdvanced, outcome.Streak)
	require.Len(t, outcome.Unlocks, 1)
	require.Equal(t, 2, p.Streak.CurrentLength)
	require.Equal(t, int64(145), p.TotalPoints)
	require.True(t, outcome.Changed())

	outcome = engine.Refresh(state, onDay(2).Add(3*time.Hour))
	require.False(t, outcome.Changed())

	outcome = engine.Refresh(state, onDay(4))
	require.Equal(t, StreakBroken, outcome.Streak)
	require.Equal(t, 0, p.Streak.CurrentLength)
	require.Equal(t, 2, p.Streak.LongestLength)
}

func TestEngine_TotalMatchesLedger(t *testing.T) {
	engine := NewEngine(DefaultCatalog(), 1, sequence())
	p := entity.NewPlayerProgress("user")
	state := newState(p)

	sum := int64(0)
	types := []entity.PointEventType{
		entity.DailyCheckIn, entity.WorkoutVerified, entity.VideoAnalyzed,
		entity.DrillCompleted, entity.ChallengeCompleted,
	}
	for day := 0; day < 40; day++ {
		for i, eventType := range types {
			if (day+i)%3 == 0 {
				continue
			}

			outcome, err := engine.Record(state, eventType, int64(10*(i+1)), RecordOptions{FocusMinutes: day % 30}, onDay(day))
			require.NoError(t, err)
			for _, e := range outcome.Events() {
				require.GreaterOrEqual(t, e.AwardedPoints, e.BasePoints)
				sum += e.AwardedPoints
			}
		}

		require.Equal(t, sum, p.TotalPoints)
		require.Equal(t, CalculateLevel(p.TotalPoints), p.CurrentLevel)
		require.GreaterOrEqual(t, p.Streak.LongestLength, p.Streak.CurrentLength)
	}

	require.NotEmpty(t, state.Unlocked)
}

func TestEngine_CorrectPoints(t *testing.T) {
	engine := newTestEngine(t)
	p := entity.NewPlayerProgress("user")
	p.TotalPoints = 300
	p.CurrentLevel = CalculateLevel(300)
	p.CurrentStarRank = 2

	require.NoError(t, engine.CorrectPoints(p, -250))
	require.Equal(t, int64(50), p.TotalPoints)
	require.Equal(t, 1, p.CurrentLevel)
	require.Equal(t, 2, p.CurrentStarRank)

	require.True(t, errorx.Is(engine.CorrectPoints(p, -51), errorx.BadRequest))
	require.True(t, errorx.Is(engine.CorrectPoints(p, 0), errorx.BadRequest))
	require.Equal(t, int64(50), p.TotalPoints)
}

func TestEngine_AdvanceStarRank(t *testing.T) {
	engine := newTestEngine(t)
	state := newState(entity.NewPlayerProgress("user"))
	state.Progress.TotalPoints = 1200

	outcome, err := engine.AdvanceStarRank(state, day0)
	require.NoError(t, err)
	require.True(t, outcome.StarRankAdvanced())
	require.True(t, outcome.Changed())
	require.Equal(t, 1, outcome.PreviousStarRank)
	require.Equal(t, 2, outcome.CurrentStarRank)

	_, err = engine.AdvanceStarRank(state, day0)
	require.True(t, errorx.Is(err, errorx.InsufficientPoints))
	require.Equal(t, 2, state.Progress.CurrentStarRank)
}

func TestEngine_ApplyCorrection(t *testing.T) {
	engine := newTestEngine(t)
	state := newState(entity.NewPlayerProgress("user"))
	state.Progress.TotalPoints = 250
	state.Progress.CurrentLevel = CalculateLevel(250)

	outcome, err := engine.ApplyCorrection(state, -200)
	require.NoError(t, err)
	require.Equal(t, int64(-200), outcome.Correction)
	require.Equal(t, 3, outcome.PreviousLevel)
	require.Equal(t, 1, outcome.CurrentLevel)
	require.Empty(t, outcome.Unlocks)
	require.True(t, outcome.Changed())

	_, err = engine.ApplyCorrection(state, -51)
	require.True(t, errorx.Is(err, errorx.BadRequest))
}
