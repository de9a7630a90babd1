package progression

import (
	"time"

	"github.com/go4it-sports/starpath/internal/entity"
	"github.com/go4it-sports/starpath/pkg/enum"
	"github.com/go4it-sports/starpath/pkg/errorx"
)

type RuleKind string

var (
	StreakRule            = enum.New(RuleKind("streak"))
	CumulativePointsRule  = enum.New(RuleKind("cumulative_points"))
	ActivityTypeCountRule = enum.New(RuleKind("activity_type_count"))
	LevelReachedRule      = enum.New(RuleKind("level_reached"))
)

// Rule is the unlock condition of an achievement. The set of kinds is closed,
// every kind is measured by Rule.Measure.
type Rule struct {
	Kind      RuleKind              `mapstructure:"kind" structs:"kind"`
	Threshold int64                 `mapstructure:"threshold" structs:"threshold"`
	EventType entity.PointEventType `mapstructure:"event_type" structs:"event_type,omitempty"`
}

// Facts is what rules are measured against.
type Facts struct {
	Progress       *entity.PlayerProgress
	ActivityCounts map[entity.PointEventType]int64
}

func (r Rule) Validate() error {
	if _, err := enum.ToEnum[RuleKind](string(r.Kind)); err != nil {
		return errorx.New(errorx.BadRequest, "Invalid rule kind %q", r.Kind)
	}

	if r.Threshold < 0 {
		return errorx.New(errorx.BadRequest, "Rule threshold must not be negative")
	}

	if r.Kind == ActivityTypeCountRule {
		if _, err := ParsePointEventType(string(r.EventType)); err != nil {
			return err
		}
	}

	return nil
}

// Measure returns the current value of the quantity the rule is about.
func (r Rule) Measure(facts Facts) int64 {
	switch r.Kind {
	case StreakRule:
		return int64(facts.Progress.Streak.CurrentLength)
	case CumulativePointsRule:
		return facts.Progress.TotalPoints
	case ActivityTypeCountRule:
		return facts.ActivityCounts[r.EventType]
	case LevelReachedRule:
		return int64(CalculateLevel(facts.Progress.TotalPoints))
	}

	return 0
}

func (r Rule) Satisfied(facts Facts) bool {
	return r.Measure(facts) >= r.Threshold
}

// EvaluationState is the mutable input of AchievementEngine.Evaluate.
type EvaluationState struct {
	Facts

	// Unlocked contains the ids of achievements the player already owns.
	Unlocked map[string]bool
}

func NewEvaluationState(
	progress *entity.PlayerProgress,
	counts []entity.PointEventTypeCount,
	unlocked []string,
) *EvaluationState {
	state := &EvaluationState{
		Facts: Facts{
			Progress:       progress,
			ActivityCounts: make(map[entity.PointEventType]int64),
		},
		Unlocked: make(map[string]bool),
	}

	for _, c := range counts {
		state.ActivityCounts[c.Type] += c.Count
	}

	for _, id := range unlocked {
		state.Unlocked[id] = true
	}

	return state
}

type Unlock struct {
	Achievement Achievement
	UnlockedAt  time.Time

	// Reward is the milestone event granted with the unlock, nil if the
	// achievement gives no points.
	Reward *entity.PointEvent
}

type AchievementEngine struct {
	catalog *Catalog
	ledger  *Ledger
}

func NewAchievementEngine(catalog *Catalog, ledger *Ledger) *AchievementEngine {
	return &AchievementEngine{catalog: catalog, ledger: ledger}
}

// Evaluate unlocks every achievement whose rule holds. Rewards are added to the
// player total right away, so an unlock can satisfy another rule within the
// same call. An achievement is never unlocked twice.
func (e *AchievementEngine) Evaluate(state *EvaluationState, now time.Time) []Unlock {
	unlocks := []Unlock{}
	for {
		rewarded := false
		for _, achievement := range e.catalog.All() {
			if state.Unlocked[achievement.ID] || !achievement.Rule.Satisfied(state.Facts) {
				continue
			}

			unlock := Unlock{Achievement: achievement, UnlockedAt: now}
			if achievement.Points > 0 {
				unlock.Reward = e.ledger.Reward(state.Progress, achievement.ID, achievement.Points, now)
				state.ActivityCounts[entity.Milestone]++
				rewarded = true
			}

			state.Unlocked[achievement.ID] = true
			unlocks = append(unlocks, unlock)
		}

		if !rewarded {
			return unlocks
		}
	}
}
