package client

import (
	"context"
	"hash/fnv"
)

const (
	MinVideoScore = 0
	MaxVideoScore = 100
)

// ScoreProvider rates an analyzed video. The rating is in
// [MinVideoScore, MaxVideoScore].
type ScoreProvider interface {
	Score(ctx context.Context, videoID string) (int64, error)
}

type hashScoreProvider struct {
	floor int64
}

// NewHashScoreProvider returns a ScoreProvider giving every video a stable
// rating derived from its id, never below floor. It stands in until a real
// analysis service is connected.
func NewHashScoreProvider(floor int64) *hashScoreProvider {
	if floor < MinVideoScore {
		floor = MinVideoScore
	}

	if floor > MaxVideoScore {
		floor = MaxVideoScore
	}

	return &hashScoreProvider{floor: floor}
}

func (p *hashScoreProvider) Score(ctx context.Context, videoID string) (int64, error) {
	h := fnv.New64a()
	_, _ = h.Write([]byte(videoID))

	span := uint64(MaxVideoScore - p.floor + 1)
	return p.floor + int64(h.Sum64()%span), nil
}
