package domain

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"github.com/go4it-sports/starpath/internal/common"
	"github.com/go4it-sports/starpath/internal/domain/progression"
	"github.com/go4it-sports/starpath/internal/domain/statistic"
	"github.com/go4it-sports/starpath/internal/entity"
	"github.com/go4it-sports/starpath/internal/model"
	"github.com/go4it-sports/starpath/pkg/pubsub"
	"github.com/go4it-sports/starpath/pkg/xcontext"
)

// buildEvents lists what the outcome changed, in the order it happened.
func buildEvents(userID string, outcome *progression.Outcome, now time.Time) []model.Event {
	events := []model.Event{}
	newEvent := func(t model.EventType) model.Event {
		return model.Event{Type: t, UserID: userID, OccurredAt: now}
	}

	switch outcome.Streak {
	case progression.StreakAdvanced:
		e := newEvent(model.StreakAdvancedEvent)
		e.StreakLength = outcome.PreviousStreakLength + 1
		events = append(events, e)
	case progression.StreakBroken:
		e := newEvent(model.StreakBrokenEvent)
		e.StreakLength = outcome.PreviousStreakLength
		events = append(events, e)
	}

	pointsAwarded := func(pe *entity.PointEvent) model.Event {
		e := newEvent(model.PointsAwardedEvent)
		e.Points = pe.AwardedPoints
		e.PointEventType = string(pe.Type)
		e.PointEventID = strconv.FormatInt(pe.ID, 10)
		e.AchievementID = pe.SourceAchievementID.String
		return e
	}

	if outcome.Event != nil {
		events = append(events, pointsAwarded(outcome.Event))
	}

	for _, u := range outcome.Unlocks {
		e := newEvent(model.AchievementUnlockedEvent)
		e.AchievementID = u.Achievement.ID
		e.Points = u.Achievement.Points
		events = append(events, e)

		if u.Reward != nil {
			events = append(events, pointsAwarded(u.Reward))
		}
	}

	if outcome.Correction != 0 {
		e := newEvent(model.PointsCorrectedEvent)
		e.Points = outcome.Correction
		events = append(events, e)
	}

	if outcome.LeveledUp() {
		e := newEvent(model.LevelUpEvent)
		e.Level = outcome.CurrentLevel
		events = append(events, e)
	}

	if outcome.StarRankAdvanced() {
		e := newEvent(model.StarRankAdvancedEvent)
		e.StarRank = outcome.CurrentStarRank
		events = append(events, e)
	}

	return events
}

func recordMetrics(progress *entity.PlayerProgress, outcome *progression.Outcome) {
	for _, e := range outcome.Events() {
		common.PromCounters[common.PointEventsTotal].WithLabelValues(string(e.Type)).Inc()
		common.PromCounters[common.PointsAwardedTotal].WithLabelValues(string(e.Type)).Add(float64(e.AwardedPoints))
	}

	for _, u := range outcome.Unlocks {
		common.PromCounters[common.AchievementsUnlockedTotal].WithLabelValues(u.Achievement.ID).Inc()
	}

	if outcome.Streak != progression.StreakUnchanged {
		common.PromCounters[common.StreakTransitionsTotal].WithLabelValues(string(outcome.Streak)).Inc()
	}

	if outcome.StarRankAdvanced() {
		common.PromCounters[common.StarRankAdvancedTotal].
			WithLabelValues(progression.StarRankName(progress.CurrentStarRank)).Inc()
	}
}

// publish sends the events after they have been committed. A failure is only
// logged, the leaderboard rebuild repairs what the consumers missed.
func (d *playerDomain) publish(ctx context.Context, events []model.Event) {
	topic := xcontext.Configs(ctx).Kafka.Topic
	for _, e := range events {
		b, err := json.Marshal(e)
		if err != nil {
			xcontext.Logger(ctx).Errorf("Cannot marshal event %s: %v", e.Type, err)
			continue
		}

		err = d.publisher.Publish(ctx, topic, &pubsub.Pack{Key: []byte(e.UserID), Msg: b})
		if err != nil {
			common.PromCounters[common.EventPublishFailuresTotal].WithLabelValues(string(e.Type)).Inc()
			xcontext.Logger(ctx).Errorf("Cannot publish event %s of %s: %v", e.Type, e.UserID, err)
		}
	}
}

// LeaderboardEventHandler keeps the redis leaderboards in sync with the
// published player events.
type LeaderboardEventHandler struct {
	leaderboard statistic.Leaderboard
}

func NewLeaderboardEventHandler(leaderboard statistic.Leaderboard) *LeaderboardEventHandler {
	return &LeaderboardEventHandler{leaderboard: leaderboard}
}

func (h *LeaderboardEventHandler) Subscribe(ctx context.Context, pack *pubsub.Pack, t time.Time) {
	var e model.Event
	if err := json.Unmarshal(pack.Msg, &e); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot unmarshal event: %v", err)
		return
	}

	var err error
	switch e.Type {
	case model.PointsAwardedEvent:
		err = h.leaderboard.ChangePointLeaderboard(ctx, e.Points, e.OccurredAt, e.UserID)
	case model.PointsCorrectedEvent:
		err = h.leaderboard.ChangeTotalLeaderboard(ctx, e.Points, e.UserID)
	case model.PlayerArchivedEvent:
		err = h.leaderboard.RemovePlayer(ctx, e.UserID, e.OccurredAt)
	default:
		return
	}

	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot apply event %s of %s to leaderboard: %v", e.Type, e.UserID, err)
	}
}
