package statistic

import (
	"context"
	"time"

	"github.com/go4it-sports/starpath/internal/common"
	"github.com/go4it-sports/starpath/internal/entity"
	"github.com/go4it-sports/starpath/internal/model"
	"github.com/go4it-sports/starpath/internal/repository"
	"github.com/go4it-sports/starpath/pkg/errorx"
	"github.com/go4it-sports/starpath/pkg/xcontext"
	"github.com/go4it-sports/starpath/pkg/xredis"
	"github.com/redis/go-redis/v9"
)

const loadBatchSize = 500

type Leaderboard interface {
	GetLeaderBoard(
		ctx context.Context,
		period entity.LeaderBoardPeriodType,
		offset, limit int,
	) ([]model.UserStatistic, error)

	GetRank(ctx context.Context, userID string, period entity.LeaderBoardPeriodType) (uint64, error)

	// ChangePointLeaderboard adds value to the user in every period containing
	// at. Periods not loaded in redis are skipped, they will be loaded from
	// the database on the next read.
	ChangePointLeaderboard(ctx context.Context, value int64, at time.Time, userID string) error

	// ChangeTotalLeaderboard only changes the all time period. It applies
	// corrections, which are not point events.
	ChangeTotalLeaderboard(ctx context.Context, value int64, userID string) error

	// RemovePlayer takes the user out of every current period.
	RemovePlayer(ctx context.Context, userID string, at time.Time) error

	// Rebuild recomputes the period from the database and swaps it with the
	// live one.
	Rebuild(ctx context.Context, period entity.LeaderBoardPeriodType) error
}

type leaderboard struct {
	progressRepo   repository.PlayerProgressRepository
	pointEventRepo repository.PointEventRepository
	redisClient    xredis.Client
}

func New(
	progressRepo repository.PlayerProgressRepository,
	pointEventRepo repository.PointEventRepository,
	redisClient xredis.Client,
) *leaderboard {
	return &leaderboard{
		progressRepo:   progressRepo,
		pointEventRepo: pointEventRepo,
		redisClient:    redisClient,
	}
}

func (l *leaderboard) GetLeaderBoard(
	ctx context.Context,
	period entity.LeaderBoardPeriodType,
	offset, limit int,
) ([]model.UserStatistic, error) {
	key := common.RedisKeyLeaderBoard(period.Period())
	if err := l.ensureLoaded(ctx, key, period); err != nil {
		return nil, err
	}

	results, err := l.redisClient.ZRevRangeWithScores(ctx, key, offset, limit)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get revrange redis: %v", err)
		return nil, errorx.Unknown
	}

	leaderboard := []model.UserStatistic{}
	for i, z := range results {
		userID, _ := z.Member.(string)
		leaderboard = append(leaderboard, model.UserStatistic{
			UserID:      userID,
			Points:      int64(z.Score),
			CurrentRank: offset + i + 1,
		})
	}

	return leaderboard, nil
}

func (l *leaderboard) GetRank(
	ctx context.Context,
	userID string,
	period entity.LeaderBoardPeriodType,
) (uint64, error) {
	key := common.RedisKeyLeaderBoard(period.Period())
	if err := l.ensureLoaded(ctx, key, period); err != nil {
		return 0, err
	}

	rank, err := l.redisClient.ZRevRank(ctx, key, userID)
	if err != nil {
		xcontext.Logger(ctx).Debugf("Cannot get rev rank redis: %v", err)
		return 0, nil
	}

	return rank + 1, nil
}

func (l *leaderboard) ChangePointLeaderboard(
	ctx context.Context,
	value int64,
	at time.Time,
	userID string,
) error {
	for _, period := range CurrentPeriods(at) {
		if err := l.changeLeaderboard(ctx, value, userID, period); err != nil {
			return err
		}
	}

	return nil
}

func (l *leaderboard) ChangeTotalLeaderboard(ctx context.Context, value int64, userID string) error {
	return l.changeLeaderboard(ctx, value, userID, entity.LeaderBoardPeriodTotal{})
}

func (l *leaderboard) changeLeaderboard(
	ctx context.Context,
	value int64,
	userID string,
	period entity.LeaderBoardPeriodType,
) error {
	key := common.RedisKeyLeaderBoard(period.Period())
	ok, err := l.redisClient.Exist(ctx, key)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot call exist redis: %v", err)
		return errorx.Unknown
	}

	// If the key didn't exist in redis, no need to update.
	if !ok {
		return nil
	}

	if err := l.redisClient.ZIncrBy(ctx, key, value, userID); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot call ZIncrBy redis: %v", err)
		return errorx.Unknown
	}

	return nil
}

func (l *leaderboard) RemovePlayer(ctx context.Context, userID string, at time.Time) error {
	for _, period := range CurrentPeriods(at) {
		key := common.RedisKeyLeaderBoard(period.Period())
		if err := l.redisClient.ZRem(ctx, key, userID); err != nil {
			xcontext.Logger(ctx).Errorf("Cannot call ZRem redis: %v", err)
			return errorx.Unknown
		}
	}

	return nil
}

func (l *leaderboard) Rebuild(ctx context.Context, period entity.LeaderBoardPeriodType) error {
	key := common.RedisKeyLeaderBoard(period.Period())
	buildingKey := common.RedisKeyLeaderBoardBuilding(period.Period())

	if err := l.redisClient.Del(ctx, buildingKey); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot delete building leaderboard: %v", err)
		return errorx.Unknown
	}

	n, err := l.loadLeaderboardFromDB(ctx, buildingKey, period)
	if err != nil {
		return err
	}

	// An empty sorted set is never stored, so there is nothing to rename.
	if n == 0 {
		if err := l.redisClient.Del(ctx, key); err != nil {
			xcontext.Logger(ctx).Errorf("Cannot delete leaderboard: %v", err)
			return errorx.Unknown
		}

		return nil
	}

	if err := l.redisClient.Rename(ctx, buildingKey, key); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot rename leaderboard: %v", err)
		return errorx.Unknown
	}

	return nil
}

func (l *leaderboard) ensureLoaded(
	ctx context.Context, key string, period entity.LeaderBoardPeriodType,
) error {
	ok, err := l.redisClient.Exist(ctx, key)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot call exist redis: %v", err)
		return errorx.Unknown
	}

	// If the key didn't exist in redis, load it from database.
	if !ok {
		if _, err := l.loadLeaderboardFromDB(ctx, key, period); err != nil {
			return err
		}
	}

	return nil
}

// loadLeaderboardFromDB writes the statistic of period into key and returns
// the number of ranked users.
func (l *leaderboard) loadLeaderboardFromDB(
	ctx context.Context, key string, period entity.LeaderBoardPeriodType,
) (int, error) {
	total := 0
	afterUserID := ""
	for {
		stats, err := l.loadPage(ctx, period, afterUserID)
		if err != nil {
			xcontext.Logger(ctx).Errorf("Cannot load statistic from database: %v", err)
			return 0, errorx.Unknown
		}

		if len(stats) == 0 {
			return total, nil
		}

		members := make([]redis.Z, 0, len(stats))
		for _, s := range stats {
			if s.Points <= 0 {
				continue
			}

			members = append(members, redis.Z{Member: s.UserID, Score: float64(s.Points)})
		}

		if len(members) > 0 {
			if err := l.redisClient.ZAdd(ctx, key, members...); err != nil {
				xcontext.Logger(ctx).Errorf("Cannot zadd redis: %v", err)
				return 0, errorx.Unknown
			}
		}

		total += len(members)
		afterUserID = stats[len(stats)-1].UserID
		if len(stats) < loadBatchSize {
			return total, nil
		}
	}
}

func (l *leaderboard) loadPage(
	ctx context.Context, period entity.LeaderBoardPeriodType, afterUserID string,
) ([]entity.UserStatistic, error) {
	if _, ok := period.(entity.LeaderBoardPeriodTotal); ok {
		players, err := l.progressRepo.GetPage(ctx, afterUserID, loadBatchSize)
		if err != nil {
			return nil, err
		}

		stats := make([]entity.UserStatistic, 0, len(players))
		for _, p := range players {
			stats = append(stats, entity.UserStatistic{UserID: p.UserID, Points: p.TotalPoints})
		}

		return stats, nil
	}

	return l.pointEventRepo.SumByUser(ctx, period.Start(), period.End(), afterUserID, loadBatchSize)
}
