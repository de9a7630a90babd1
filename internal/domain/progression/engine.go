package progression

import (
	"time"

	"github.com/go4it-sports/starpath/internal/entity"
	"github.com/go4it-sports/starpath/pkg/errorx"
)

// Engine applies the progression rules to a player in the order ledger,
// streak, level, achievements. It does not persist anything.
type Engine struct {
	catalog      *Catalog
	ledger       *Ledger
	streaks      StreakTracker
	achievements *AchievementEngine
}

func NewEngine(catalog *Catalog, streakThreshold int, nextID IDGenerator) *Engine {
	ledger := NewLedger(nextID)
	return &Engine{
		catalog:      catalog,
		ledger:       ledger,
		streaks:      NewStreakTracker(streakThreshold),
		achievements: NewAchievementEngine(catalog, ledger),
	}
}

func (e *Engine) Catalog() *Catalog {
	return e.catalog
}

// Outcome describes what a call changed on the player.
type Outcome struct {
	// Event is the recorded activity, nil for Refresh.
	Event *entity.PointEvent

	Streak               StreakTransition
	PreviousStreakLength int
	Unlocks              []Unlock
	PreviousLevel        int
	CurrentLevel         int
	PreviousStarRank     int
	CurrentStarRank      int

	// Correction is the delta applied by an administrator, zero otherwise.
	Correction int64
}

func newOutcome(p *entity.PlayerProgress) *Outcome {
	return &Outcome{
		PreviousStreakLength: p.Streak.CurrentLength,
		PreviousLevel:        p.CurrentLevel,
		CurrentLevel:         p.CurrentLevel,
		PreviousStarRank:     p.CurrentStarRank,
		CurrentStarRank:      p.CurrentStarRank,
	}
}

// Events returns the activity event followed by the achievement rewards, in
// the order they must be appended to the ledger.
func (o *Outcome) Events() []*entity.PointEvent {
	events := []*entity.PointEvent{}
	if o.Event != nil {
		events = append(events, o.Event)
	}

	for _, u := range o.Unlocks {
		if u.Reward != nil {
			events = append(events, u.Reward)
		}
	}

	return events
}

func (o *Outcome) LeveledUp() bool {
	return o.CurrentLevel > o.PreviousLevel
}

func (o *Outcome) StarRankAdvanced() bool {
	return o.CurrentStarRank > o.PreviousStarRank
}

// Changed reports whether the player must be saved.
func (o *Outcome) Changed() bool {
	return o.Event != nil || o.Streak != StreakUnchanged || len(o.Unlocks) > 0 ||
		o.CurrentLevel != o.PreviousLevel || o.StarRankAdvanced() || o.Correction != 0
}

// Record applies one activity. On error the state is left untouched.
func (e *Engine) Record(
	state *EvaluationState,
	eventType entity.PointEventType,
	basePoints int64,
	opts RecordOptions,
	now time.Time,
) (*Outcome, error) {
	if err := e.ledger.Validate(eventType, basePoints); err != nil {
		return nil, err
	}

	p := state.Progress
	outcome := newOutcome(p)

	// The multiplier uses the streak as of today.
	outcome.Streak = e.streaks.CheckRollover(p, now)

	event, err := e.ledger.Record(p, eventType, basePoints, opts, now)
	if err != nil {
		return nil, err
	}

	outcome.Event = event
	state.ActivityCounts[eventType]++
	e.streaks.OnActivity(p, now)

	p.CurrentLevel = CalculateLevel(p.TotalPoints)
	outcome.Unlocks = e.achievements.Evaluate(state, now)
	p.CurrentLevel = CalculateLevel(p.TotalPoints)
	outcome.CurrentLevel = p.CurrentLevel

	return outcome, nil
}

// Refresh rolls the streak over to now and evaluates the achievements if the
// streak moved.
func (e *Engine) Refresh(state *EvaluationState, now time.Time) *Outcome {
	p := state.Progress
	outcome := newOutcome(p)

	outcome.Streak = e.streaks.CheckRollover(p, now)
	if outcome.Streak != StreakUnchanged {
		outcome.Unlocks = e.achievements.Evaluate(state, now)
	}

	p.CurrentLevel = CalculateLevel(p.TotalPoints)
	outcome.CurrentLevel = p.CurrentLevel

	return outcome
}

// CorrectPoints changes the total of the player by delta. It is the only way
// for a total to decrease. The star rank is kept since it was earned.
func (e *Engine) CorrectPoints(p *entity.PlayerProgress, delta int64) error {
	if delta == 0 {
		return errorx.New(errorx.BadRequest, "Correction must not be zero")
	}

	if p.TotalPoints+delta < 0 {
		return errorx.New(errorx.BadRequest, "Total points would become negative")
	}

	p.TotalPoints += delta
	p.CurrentLevel = CalculateLevel(p.TotalPoints)

	return nil
}

// AdvanceStarRank rolls the streak over like Refresh, then moves the player up
// one star rank. Rewards unlocked by the rollover count toward the threshold.
// On error the state may hold the rollover and must be discarded.
func (e *Engine) AdvanceStarRank(state *EvaluationState, now time.Time) (*Outcome, error) {
	outcome := e.Refresh(state, now)
	if err := AdvanceStarRank(state.Progress); err != nil {
		return nil, err
	}

	outcome.CurrentStarRank = state.Progress.CurrentStarRank
	return outcome, nil
}

// ApplyCorrection wraps CorrectPoints into an Outcome. Achievements are not
// evaluated, so a correction never unlocks or revokes anything.
func (e *Engine) ApplyCorrection(state *EvaluationState, delta int64) (*Outcome, error) {
	outcome := newOutcome(state.Progress)
	if err := e.CorrectPoints(state.Progress, delta); err != nil {
		return nil, err
	}

	outcome.Correction = delta
	outcome.CurrentLevel = state.Progress.CurrentLevel
	return outcome, nil
}
