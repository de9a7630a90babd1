package progression

import (
	"github.com/go4it-sports/starpath/internal/entity"
	"github.com/go4it-sports/starpath/pkg/errorx"
)

const (
	MinStarRank = 1
	MaxStarRank = 5
)

// starRankThresholds is indexed by the current rank, so the points needed to
// leave rank r are starRankThresholds[r]. Index 0 is unused.
var starRankThresholds = [MaxStarRank]int64{0, 1000, 5000, 10000, 25000}

var starRankNames = [MaxStarRank]string{
	"Rising Prospect",
	"Emerging Talent",
	"Standout Performer",
	"Elite Competitor",
	"Five-Star Athlete",
}

// StarRankName returns the display name of rank, clamped into [1, 5].
func StarRankName(rank int) string {
	return starRankNames[clampStarRank(rank)-1]
}

// StarRankThreshold returns the cumulative points required to advance from
// rank to rank+1. It returns -1 when rank is already the highest one.
func StarRankThreshold(rank int) int64 {
	rank = clampStarRank(rank)
	if rank >= MaxStarRank {
		return -1
	}

	return starRankThresholds[rank]
}

// CanAdvanceStarRank reports whether the player has enough points to move to
// the next star rank.
func CanAdvanceStarRank(p *entity.PlayerProgress) bool {
	threshold := StarRankThreshold(p.CurrentStarRank)
	return threshold >= 0 && p.TotalPoints >= threshold
}

// AdvanceStarRank moves the player up by exactly one rank. It never skips
// ranks even if the points would allow it.
func AdvanceStarRank(p *entity.PlayerProgress) error {
	if p.CurrentStarRank >= MaxStarRank {
		return errorx.New(errorx.RankCapped, "Already at the highest star rank")
	}

	threshold := StarRankThreshold(p.CurrentStarRank)
	if p.TotalPoints < threshold {
		return errorx.New(errorx.InsufficientPoints,
			"Need %d points to reach %s, got %d",
			threshold, StarRankName(p.CurrentStarRank+1), p.TotalPoints)
	}

	p.CurrentStarRank = clampStarRank(p.CurrentStarRank + 1)
	return nil
}

func clampStarRank(rank int) int {
	if rank < MinStarRank {
		return MinStarRank
	}

	if rank > MaxStarRank {
		return MaxStarRank
	}

	return rank
}
