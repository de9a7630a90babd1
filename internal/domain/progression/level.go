package progression

import "math"

const (
	// BaseLevelCost is the number of points to go from level 1 to level 2. Each
	// following level costs floor(previous cost * 1.2).
	BaseLevelCost = 100

	maxLevelCost = math.MaxInt64 / 12
)

var levelTitles = []string{
	"Rookie",
	"Walk-On",
	"Prospect",
	"Contender",
	"Starter",
	"Playmaker",
	"Team Captain",
	"Varsity Standout",
	"All-Conference",
	"All-State",
	"Regional Star",
	"National Recruit",
	"Blue-Chip Prospect",
	"Scholarship Athlete",
	"Collegiate Starter",
	"All-American",
	"Conference Champion",
	"National Champion",
	"Pro Prospect",
	"Legend",
}

func nextLevelCost(cost int64) int64 {
	return cost * 6 / 5
}

// CalculateLevel returns the level reached with the given cumulative points.
// Level 1 requires 0 points.
func CalculateLevel(points int64) int {
	level := 1
	cost := int64(BaseLevelCost)
	next := cost
	for points >= next && cost < maxLevelCost {
		level++
		cost = nextLevelCost(cost)
		next += cost
	}

	return level
}

// LevelThreshold returns the cumulative points required to reach level.
func LevelThreshold(level int) int64 {
	total := int64(0)
	cost := int64(BaseLevelCost)
	for k := 1; k < level && cost < maxLevelCost; k++ {
		total += cost
		cost = nextLevelCost(cost)
	}

	return total
}

// ProgressToNextLevel returns the percentage, in [0, 100], of the way between
// the current level threshold and the next one.
func ProgressToNextLevel(points int64) float64 {
	level := CalculateLevel(points)
	current := LevelThreshold(level)
	next := LevelThreshold(level + 1)
	if next <= current {
		return 100
	}

	progress := float64(points-current) / float64(next-current) * 100
	return math.Max(0, math.Min(100, progress))
}

// XPToNextLevel returns the number of points missing to reach the next level.
func XPToNextLevel(points int64) int64 {
	if points < 0 {
		points = 0
	}

	return LevelThreshold(CalculateLevel(points)+1) - points
}

// LevelTitle returns the display name of level. Levels past the end of the
// title list reuse the last title.
func LevelTitle(level int) string {
	if level < 1 {
		level = 1
	}

	if level > len(levelTitles) {
		return levelTitles[len(levelTitles)-1]
	}

	return levelTitles[level-1]
}
