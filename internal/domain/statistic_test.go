package domain

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/go4it-sports/starpath/internal/common"
	"github.com/go4it-sports/starpath/internal/domain/statistic"
	"github.com/go4it-sports/starpath/internal/model"
	"github.com/go4it-sports/starpath/internal/repository"
	"github.com/go4it-sports/starpath/pkg/errorx"
	"github.com/go4it-sports/starpath/pkg/pubsub"
	"github.com/go4it-sports/starpath/pkg/testutil"
	"github.com/go4it-sports/starpath/pkg/xcontext"
	"github.com/stretchr/testify/require"
)

func newTestLeaderboard(t *testing.T) statistic.Leaderboard {
	redisClient, _ := testutil.NewRedisClient(t)
	return statistic.New(
		repository.NewPlayerProgressRepository(),
		repository.NewPointEventRepository(),
		redisClient,
	)
}

func Test_statisticDomain_GetLeaderBoard(t *testing.T) {
	ctx := testutil.MockContextWithUserID(testutil.Player2.UserID)
	testutil.CreateFixtureDb(ctx)

	d := NewStatisticDomain(newTestLeaderboard(t))

	resp, err := d.GetLeaderBoard(ctx, &model.GetLeaderBoardRequest{Period: "total"})
	require.NoError(t, err)
	require.Equal(t, []model.UserStatistic{
		{UserID: testutil.Player1.UserID, Points: 1200, CurrentRank: 1},
		{UserID: testutil.Player2.UserID, Points: 300, CurrentRank: 2},
	}, resp.LeaderBoard)
	require.Equal(t, uint64(2), resp.MyRank)

	_, err = d.GetLeaderBoard(ctx, &model.GetLeaderBoardRequest{Period: "year"})
	require.True(t, errorx.Is(err, errorx.BadRequest))

	_, err = d.GetLeaderBoard(ctx, &model.GetLeaderBoardRequest{Period: "total", Limit: 100})
	require.True(t, errorx.Is(err, errorx.BadRequest))
}

func TestLeaderboardEventHandler(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)

	leaderboard := newTestLeaderboard(t)
	handler := NewLeaderboardEventHandler(leaderboard)

	// Load the total period so increments apply.
	_, err := leaderboard.GetLeaderBoard(ctx, statistic.CurrentPeriods(time.Now())[2], 0, 10)
	require.NoError(t, err)

	send := func(e model.Event) {
		b, err := json.Marshal(e)
		require.NoError(t, err)
		handler.Subscribe(ctx, &pubsub.Pack{Key: []byte(e.UserID), Msg: b}, time.Now())
	}

	send(model.Event{Type: model.PointsAwardedEvent, UserID: testutil.Player2.UserID, Points: 1000, OccurredAt: time.Now()})
	send(model.Event{Type: model.PointsCorrectedEvent, UserID: testutil.Player1.UserID, Points: -500})
	send(model.Event{Type: model.LevelUpEvent, UserID: testutil.Player1.UserID, Level: 3})
	handler.Subscribe(ctx, &pubsub.Pack{Msg: []byte("not json")}, time.Now())

	board, err := leaderboard.GetLeaderBoard(ctx, statistic.CurrentPeriods(time.Now())[2], 0, 10)
	require.NoError(t, err)
	require.Equal(t, []model.UserStatistic{
		{UserID: testutil.Player2.UserID, Points: 1300, CurrentRank: 1},
		{UserID: testutil.Player1.UserID, Points: 700, CurrentRank: 2},
	}, board)

	send(model.Event{Type: model.PlayerArchivedEvent, UserID: testutil.Player2.UserID, OccurredAt: time.Now()})
	rank, err := leaderboard.GetRank(ctx, testutil.Player2.UserID, statistic.CurrentPeriods(time.Now())[2])
	require.NoError(t, err)
	require.Zero(t, rank)
}

func TestPublish_FailureIsNotSurfaced(t *testing.T) {
	ctx := testutil.MockContextWithUserID("user")
	redisClient, _ := testutil.NewRedisClient(t)

	published := 0
	publisher := &testutil.MockPublisher{
		PublishFunc: func(ctx context.Context, topic string, pack *pubsub.Pack) error {
			published++
			require.Equal(t, xcontext.Configs(ctx).Kafka.Topic, topic)
			return errorx.New(errorx.Unavailable, "broker down")
		},
	}

	s := &playerSuite{}
	s.SetT(t)
	s.ctx = ctx
	s.now = testutil.FixtureTime
	s.redisClient = redisClient
	s.scoreProvider = &testutil.MockScoreProvider{}
	d := s.newDomain(repository.NewPlayerProgressRepository())
	d.publisher = publisher

	resp, err := d.DailyCheckIn(ctx, &model.DailyCheckInRequest{})
	require.NoError(t, err)
	require.Equal(t, int64(50), resp.Player.TotalPoints)
	require.Equal(t, 1, published)

	var cached cachedSnapshot
	require.NoError(t, redisClient.GetObj(ctx, common.RedisKeySnapshot("user"), &cached))
	require.Equal(t, resp.Player, cached.Snapshot)
}
