package progression

import (
	"testing"

	"github.com/go4it-sports/starpath/internal/entity"
	"github.com/stretchr/testify/require"
)

func newTestCatalog(t *testing.T, achievements ...Achievement) *Catalog {
	catalog, err := NewCatalog(achievements...)
	require.NoError(t, err)
	return catalog
}

func TestRule_Measure(t *testing.T) {
	p := entity.NewPlayerProgress("user")
	p.TotalPoints = 230
	p.Streak.CurrentLength = 4
	facts := Facts{
		Progress:       p,
		ActivityCounts: map[entity.PointEventType]int64{entity.DrillCompleted: 7},
	}

	require.Equal(t, int64(4), Rule{Kind: StreakRule}.Measure(facts))
	require.Equal(t, int64(230), Rule{Kind: CumulativePointsRule}.Measure(facts))
	require.Equal(t, int64(7), Rule{Kind: ActivityTypeCountRule, EventType: entity.DrillCompleted}.Measure(facts))
	require.Equal(t, int64(0), Rule{Kind: ActivityTypeCountRule, EventType: entity.VideoAnalyzed}.Measure(facts))
	require.Equal(t, int64(3), Rule{Kind: LevelReachedRule}.Measure(facts))

	require.True(t, Rule{Kind: StreakRule, Threshold: 4}.Satisfied(facts))
	require.False(t, Rule{Kind: StreakRule, Threshold: 5}.Satisfied(facts))
}

func TestRule_Validate(t *testing.T) {
	require.NoError(t, Rule{Kind: StreakRule, Threshold: 3}.Validate())
	require.Error(t, Rule{Kind: RuleKind("random"), Threshold: 3}.Validate())
	require.Error(t, Rule{Kind: StreakRule, Threshold: -1}.Validate())
	require.Error(t, Rule{Kind: ActivityTypeCountRule, EventType: "nothing"}.Validate())
}

func TestAchievementEngine_RewardCountsInSamePass(t *testing.T) {
	catalog := newTestCatalog(t, Achievement{
		ID:     "points-500",
		Name:   "Point Collector",
		Points: 50,
		Rule:   Rule{Kind: CumulativePointsRule, Threshold: 500},
	})
	engine := NewAchievementEngine(catalog, NewLedger(sequence()))

	p := entity.NewPlayerProgress("user")
	p.TotalPoints = 500
	state := NewEvaluationState(p, nil, nil)

	unlocks := engine.Evaluate(state, day0)
	require.Len(t, unlocks, 1)
	require.Equal(t, "points-500", unlocks[0].Achievement.ID)
	require.NotNil(t, unlocks[0].Reward)
	require.Equal(t, int64(550), p.TotalPoints)
	require.Equal(t, int64(1), state.ActivityCounts[entity.Milestone])

	require.Empty(t, engine.Evaluate(state, day0))
	require.Equal(t, int64(550), p.TotalPoints)
}

func TestAchievementEngine_Cascade(t *testing.T) {
	catalog := newTestCatalog(t,
		Achievement{
			ID:     "level-2",
			Points: 30,
			Rule:   Rule{Kind: LevelReachedRule, Threshold: 2},
		},
		Achievement{
			ID:     "points-90",
			Points: 20,
			Rule:   Rule{Kind: CumulativePointsRule, Threshold: 90},
		},
		Achievement{
			ID:     "points-125",
			Rule:   Rule{Kind: CumulativePointsRule, Threshold: 125},
		},
	)
	engine := NewAchievementEngine(catalog, NewLedger(sequence()))

	p := entity.NewPlayerProgress("user")
	p.TotalPoints = 90
	state := NewEvaluationState(p, nil, nil)

	// 90 -> points-90 gives 110, which reaches level 2 and gives 140.
	unlocks := engine.Evaluate(state, day0)
	require.Len(t, unlocks, 3)
	require.Equal(t, "points-90", unlocks[0].Achievement.ID)
	require.Equal(t, "level-2", unlocks[1].Achievement.ID)
	require.Equal(t, "points-125", unlocks[2].Achievement.ID)
	require.Nil(t, unlocks[2].Reward)
	require.Equal(t, int64(140), p.TotalPoints)
}

func TestAchievementEngine_SkipsUnlocked(t *testing.T) {
	catalog := newTestCatalog(t, Achievement{
		ID:     "streak-3",
		Points: 50,
		Rule:   Rule{Kind: StreakRule, Threshold: 3},
	})
	engine := NewAchievementEngine(catalog, NewLedger(sequence()))

	p := entity.NewPlayerProgress("user")
	p.Streak.CurrentLength = 10
	state := NewEvaluationState(p, nil, []string{"streak-3"})

	require.Empty(t, engine.Evaluate(state, day0))
	require.Equal(t, int64(0), p.TotalPoints)
}

func TestNewEvaluationState(t *testing.T) {
	p := entity.NewPlayerProgress("user")
	state := NewEvaluationState(p, []entity.PointEventTypeCount{
		{Type: entity.DrillCompleted, Count: 3},
		{Type: entity.VideoAnalyzed, Count: 1},
	}, []string{"a", "b"})

	require.Equal(t, int64(3), state.ActivityCounts[entity.DrillCompleted])
	require.Equal(t, int64(1), state.ActivityCounts[entity.VideoAnalyzed])
	require.True(t, state.Unlocked["a"])
	require.False(t, state.Unlocked["c"])
}
