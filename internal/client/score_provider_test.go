package client

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHashScoreProvider(t *testing.T) {
	provider := NewHashScoreProvider(40)

	for _, id := range []string{"a", "video-1", "video-2", "some/long/path.mp4"} {
		score, err := provider.Score(context.Background(), id)
		require.NoError(t, err)
		require.GreaterOrEqual(t, score, int64(40))
		require.LessOrEqual(t, score, int64(MaxVideoScore))

		again, err := provider.Score(context.Background(), id)
		require.NoError(t, err)
		require.Equal(t, score, again)
	}
}

func TestHashScoreProvider_FloorClamped(t *testing.T) {
	score, err := NewHashScoreProvider(1000).Score(context.Background(), "x")
	require.NoError(t, err)
	require.Equal(t, int64(MaxVideoScore), score)
}
