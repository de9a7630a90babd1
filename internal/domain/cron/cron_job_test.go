package cron

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/go4it-sports/starpath/internal/common"
	"github.com/go4it-sports/starpath/internal/domain/statistic"
	"github.com/go4it-sports/starpath/internal/entity"
	"github.com/go4it-sports/starpath/internal/repository"
	"github.com/go4it-sports/starpath/pkg/testutil"
	"github.com/stretchr/testify/require"
)

type countingJob struct {
	calls atomic.Int32
}

func (job *countingJob) Do(context.Context)    { job.calls.Add(1) }
func (job *countingJob) RunNow() bool          { return true }
func (job *countingJob) Period() time.Duration { return time.Hour }

func TestCronJobManager_RunNow(t *testing.T) {
	ctx := testutil.MockContext()
	manager, err := NewCronJobManager()
	require.NoError(t, err)

	job := &countingJob{}
	require.NoError(t, manager.Register(ctx, job))
	manager.Start(ctx)

	require.Eventually(t, func() bool { return job.calls.Load() == 1 }, 2*time.Second, 10*time.Millisecond)
	require.NoError(t, manager.Shutdown(ctx))
}

func TestLeaderboardRebuildCronJob_Do(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)
	redisClient, _ := testutil.NewRedisClient(t)

	leaderboard := statistic.New(
		repository.NewPlayerProgressRepository(),
		repository.NewPointEventRepository(),
		redisClient,
	)

	job := NewLeaderboardRebuildCronJob(leaderboard, time.Hour)
	job.now = func() time.Time { return testutil.FixtureTime }
	job.Do(ctx)

	week := entity.NewLeaderBoardPeriodWeek(testutil.FixtureTime)
	score, err := redisClient.ZScore(ctx, common.RedisKeyLeaderBoard(week.Period()), testutil.Player2.UserID)
	require.NoError(t, err)
	require.Equal(t, int64(300), score)

	score, err = redisClient.ZScore(ctx, common.RedisKeyLeaderBoard("total"), testutil.Player1.UserID)
	require.NoError(t, err)
	require.Equal(t, int64(1200), score)
}
