package progression

import "github.com/go4it-sports/starpath/internal/entity"

var defaultAchievements = []Achievement{
	{
		ID:          "streak-3",
		Name:        "On a Roll",
		Description: "Keep a 3 day activity streak",
		Icon:        "flame",
		Points:      50,
		Rule:        Rule{Kind: StreakRule, Threshold: 3},
	},
	{
		ID:          "streak-7",
		Name:        "Week Warrior",
		Description: "Keep a 7 day activity streak",
		Icon:        "flame",
		Points:      100,
		Rule:        Rule{Kind: StreakRule, Threshold: 7},
	},
	{
		ID:          "streak-30",
		Name:        "Unstoppable",
		Description: "Keep a 30 day activity streak",
		Icon:        "flame",
		Points:      500,
		Rule:        Rule{Kind: StreakRule, Threshold: 30},
	},
	{
		ID:          "points-500",
		Name:        "Point Collector",
		Description: "Earn 500 points",
		Icon:        "star",
		Points:      50,
		Rule:        Rule{Kind: CumulativePointsRule, Threshold: 500},
	},
	{
		ID:          "points-5000",
		Name:        "High Scorer",
		Description: "Earn 5000 points",
		Icon:        "star",
		Points:      250,
		Rule:        Rule{Kind: CumulativePointsRule, Threshold: 5000},
	},
	{
		ID:          "level-5",
		Name:        "Starting Lineup",
		Description: "Reach level 5",
		Icon:        "trophy",
		Points:      100,
		Rule:        Rule{Kind: LevelReachedRule, Threshold: 5},
	},
	{
		ID:          "level-10",
		Name:        "Franchise Player",
		Description: "Reach level 10",
		Icon:        "trophy",
		Points:      250,
		Rule:        Rule{Kind: LevelReachedRule, Threshold: 10},
	},
	{
		ID:          "check-in-10",
		Name:        "Regular",
		Description: "Check in on 10 days",
		Icon:        "calendar",
		Points:      50,
		Rule:        Rule{Kind: ActivityTypeCountRule, EventType: entity.DailyCheckIn, Threshold: 10},
	},
	{
		ID:          "film-study",
		Name:        "Film Study",
		Description: "Get 10 videos analyzed",
		Icon:        "video",
		Points:      150,
		Rule:        Rule{Kind: ActivityTypeCountRule, EventType: entity.VideoAnalyzed, Threshold: 10},
	},
	{
		ID:          "challenge-accepted",
		Name:        "Challenge Accepted",
		Description: "Complete a challenge",
		Icon:        "target",
		Points:      50,
		Rule:        Rule{Kind: ActivityTypeCountRule, EventType: entity.ChallengeCompleted, Threshold: 1},
	},
	{
		ID:          "drill-master",
		Name:        "Drill Master",
		Description: "Complete 25 drills",
		Icon:        "cone",
		Points:      200,
		Rule:        Rule{Kind: ActivityTypeCountRule, EventType: entity.DrillCompleted, Threshold: 25},
	},
	{
		ID:          "workout-warrior",
		Kind:        AchievementKindBadge,
		Name:        "Workout Warrior",
		Description: "Verify 50 workouts",
		Icon:        "dumbbell",
		Points:      300,
		MaxProgress: 50,
		Rule:        Rule{Kind: ActivityTypeCountRule, EventType: entity.WorkoutVerified, Threshold: 50},
	},
	{
		ID:          "iron-streak",
		Kind:        AchievementKindBadge,
		Name:        "Iron Streak",
		Description: "Keep a 14 day activity streak",
		Icon:        "shield",
		Points:      200,
		MaxProgress: 14,
		Rule:        Rule{Kind: StreakRule, Threshold: 14},
	},
	{
		ID:          "video-pro",
		Kind:        AchievementKindBadge,
		Name:        "Video Pro",
		Description: "Get 25 videos analyzed",
		Icon:        "camera",
		Points:      250,
		MaxProgress: 25,
		Rule:        Rule{Kind: ActivityTypeCountRule, EventType: entity.VideoAnalyzed, Threshold: 25},
	},
}

// DefaultCatalog returns the built-in catalog.
func DefaultCatalog() *Catalog {
	catalog, err := NewCatalog(defaultAchievements...)
	if err != nil {
		panic(err)
	}

	return catalog
}
