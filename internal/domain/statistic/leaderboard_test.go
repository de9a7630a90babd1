package statistic

import (
	"testing"

	"github.com/go4it-sports/starpath/internal/common"
	"github.com/go4it-sports/starpath/internal/entity"
	"github.com/go4it-sports/starpath/internal/model"
	"github.com/go4it-sports/starpath/internal/repository"
	"github.com/go4it-sports/starpath/pkg/testutil"
	"github.com/stretchr/testify/require"
)

func TestLeaderboard_LoadsFromDB(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)
	redisClient, _ := testutil.NewRedisClient(t)

	l := New(repository.NewPlayerProgressRepository(), repository.NewPointEventRepository(), redisClient)

	week := entity.NewLeaderBoardPeriodWeek(testutil.FixtureTime)
	board, err := l.GetLeaderBoard(ctx, week, 0, 10)
	require.NoError(t, err)
	require.Equal(t, []model.UserStatistic{
		{UserID: testutil.Player2.UserID, Points: 300, CurrentRank: 1},
		{UserID: testutil.Player1.UserID, Points: 200, CurrentRank: 2},
	}, board)

	total, err := l.GetLeaderBoard(ctx, entity.LeaderBoardPeriodTotal{}, 0, 10)
	require.NoError(t, err)
	require.Equal(t, []model.UserStatistic{
		{UserID: testutil.Player1.UserID, Points: 1200, CurrentRank: 1},
		{UserID: testutil.Player2.UserID, Points: 300, CurrentRank: 2},
	}, total)

	rank, err := l.GetRank(ctx, testutil.Player1.UserID, week)
	require.NoError(t, err)
	require.Equal(t, uint64(2), rank)

	rank, err = l.GetRank(ctx, testutil.ArchivedPlayer.UserID, entity.LeaderBoardPeriodTotal{})
	require.NoError(t, err)
	require.Zero(t, rank)
}

func TestLeaderboard_ChangePointLeaderboard(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)
	redisClient, _ := testutil.NewRedisClient(t)

	l := New(repository.NewPlayerProgressRepository(), repository.NewPointEventRepository(), redisClient)
	week := entity.NewLeaderBoardPeriodWeek(testutil.FixtureTime)
	month := entity.NewLeaderBoardPeriodMonth(testutil.FixtureTime)

	// Only the week is loaded, the month must stay absent.
	_, err := l.GetLeaderBoard(ctx, week, 0, 10)
	require.NoError(t, err)

	require.NoError(t, l.ChangePointLeaderboard(ctx, 150, testutil.FixtureTime, testutil.Player1.UserID))

	board, err := l.GetLeaderBoard(ctx, week, 0, 1)
	require.NoError(t, err)
	require.Equal(t, []model.UserStatistic{
		{UserID: testutil.Player1.UserID, Points: 350, CurrentRank: 1},
	}, board)

	exists, err := redisClient.Exist(ctx, common.RedisKeyLeaderBoard(month.Period()))
	require.NoError(t, err)
	require.False(t, exists)

	require.NoError(t, l.RemovePlayer(ctx, testutil.Player1.UserID, testutil.FixtureTime))
	rank, err := l.GetRank(ctx, testutil.Player1.UserID, week)
	require.NoError(t, err)
	require.Zero(t, rank)
}

func TestLeaderboard_Rebuild(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)
	redisClient, _ := testutil.NewRedisClient(t)

	l := New(repository.NewPlayerProgressRepository(), repository.NewPointEventRepository(), redisClient)
	week := entity.NewLeaderBoardPeriodWeek(testutil.FixtureTime)

	_, err := l.GetLeaderBoard(ctx, week, 0, 10)
	require.NoError(t, err)

	// Drift the live board, the rebuild must restore the database values.
	require.NoError(t, redisClient.ZIncrBy(ctx, common.RedisKeyLeaderBoard(week.Period()), 1000, "ghost"))
	require.NoError(t, l.Rebuild(ctx, week))

	board, err := l.GetLeaderBoard(ctx, week, 0, 10)
	require.NoError(t, err)
	require.Len(t, board, 2)
	require.Equal(t, testutil.Player2.UserID, board[0].UserID)

	exists, err := redisClient.Exist(ctx, common.RedisKeyLeaderBoardBuilding(week.Period()))
	require.NoError(t, err)
	require.False(t, exists)

	// A period without any event leaves no key behind.
	empty := entity.NewLeaderBoardPeriodWeek(testutil.FixtureTime.AddDate(-1, 0, 0))
	require.NoError(t, l.Rebuild(ctx, empty))
	exists, err = redisClient.Exist(ctx, common.RedisKeyLeaderBoard(empty.Period()))
	require.NoError(t, err)
	require.False(t, exists)
}

func TestToPeriodWithTime(t *testing.T) {
	period, err := ToPeriodWithTime("week", testutil.FixtureTime)
	require.NoError(t, err)
	require.Equal(t, "week:10:2024", period.Period())

	period, err = ToPeriodWithTime("total", testutil.FixtureTime)
	require.NoError(t, err)
	require.Equal(t, "total", period.Period())

	_, err = ToPeriodWithTime("year", testutil.FixtureTime)
	require.Error(t, err)

	require.Len(t, CurrentPeriods(testutil.FixtureTime), 3)
}
