package testutil

import (
	"context"
)

type MockScoreProvider struct {
	ScoreFunc func(ctx context.Context, videoID string) (int64, error)
}

func (m *MockScoreProvider) Score(ctx context.Context, videoID string) (int64, error) {
	if m.ScoreFunc != nil {
		return m.ScoreFunc(ctx, videoID)
	}

	return 50, nil
}
