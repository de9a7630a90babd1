package domain

import (
	"strconv"

	"github.com/fatih/structs"
	"github.com/go4it-sports/starpath/internal/domain/progression"
	"github.com/go4it-sports/starpath/internal/entity"
	"github.com/go4it-sports/starpath/internal/model"
)

const dateLayout = "2006-01-02"

func convertPointEvent(e *entity.PointEvent) model.PointEvent {
	return model.PointEvent{
		ID:                  strconv.FormatInt(e.ID, 10),
		Type:                string(e.Type),
		BasePoints:          e.BasePoints,
		Multiplier:          e.Multiplier(),
		AwardedPoints:       e.AwardedPoints,
		SourceAchievementID: e.SourceAchievementID.String,
		CreatedAt:           e.CreatedAt,
	}
}

func convertStreak(p *entity.PlayerProgress) model.Streak {
	streak := model.Streak{
		CurrentLength:      p.Streak.CurrentLength,
		LongestLength:      p.Streak.LongestLength,
		TodayActivityCount: p.TodayActivityCount,
	}

	if p.Streak.LastActivityDate.Valid {
		streak.LastActivityDate = p.Streak.LastActivityDate.Time.Format(dateLayout)
	}

	return streak
}

func convertAchievement(
	a progression.Achievement,
	facts progression.Facts,
	unlock *entity.AchievementUnlock,
) model.Achievement {
	target := a.Rule.Threshold
	if a.Kind == progression.AchievementKindBadge && a.MaxProgress > 0 {
		target = a.MaxProgress
	}

	result := model.Achievement{
		ID:          a.ID,
		Kind:        string(a.Kind),
		Name:        a.Name,
		Description: a.Description,
		Icon:        a.Icon,
		Points:      a.Points,
		Rule:        structs.Map(a.Rule),
		Progress:    a.Progress(facts),
		Target:      target,
	}

	if unlock != nil {
		unlockedAt := unlock.UnlockedAt
		result.Unlocked = true
		result.UnlockedAt = &unlockedAt
		result.WasNotified = unlock.WasNotified
		result.Progress = target
	}

	return result
}

// convertSnapshot builds the client view of a player. Unlocked entries follow
// the catalog order.
func convertSnapshot(
	catalog *progression.Catalog,
	state *progression.EvaluationState,
	unlocks []entity.AchievementUnlock,
) model.PlayerSnapshot {
	p := state.Progress
	snapshot := model.PlayerSnapshot{
		UserID:               p.UserID,
		TotalPoints:          p.TotalPoints,
		CurrentLevel:         p.CurrentLevel,
		LevelTitle:           progression.LevelTitle(p.CurrentLevel),
		XPToNextLevel:        progression.XPToNextLevel(p.TotalPoints),
		ProgressPercent:      progression.ProgressToNextLevel(p.TotalPoints),
		CurrentStarRank:      p.CurrentStarRank,
		StarRankName:         progression.StarRankName(p.CurrentStarRank),
		CanAdvanceStarRank:   progression.CanAdvanceStarRank(p),
		Streak:               convertStreak(p),
		UnlockedAchievements: []model.Achievement{},
		Badges:               []model.Achievement{},
	}

	if threshold := progression.StarRankThreshold(p.CurrentStarRank); threshold >= 0 {
		snapshot.NextStarRankPoints = threshold
	}

	unlockByID := make(map[string]*entity.AchievementUnlock, len(unlocks))
	for i := range unlocks {
		unlockByID[unlocks[i].AchievementID] = &unlocks[i]
	}

	for _, a := range catalog.All() {
		unlock, ok := unlockByID[a.ID]
		if !ok {
			continue
		}

		converted := convertAchievement(a, state.Facts, unlock)
		if a.Kind == progression.AchievementKindBadge {
			snapshot.Badges = append(snapshot.Badges, converted)
		} else {
			snapshot.UnlockedAchievements = append(snapshot.UnlockedAchievements, converted)
		}
	}

	return snapshot
}
