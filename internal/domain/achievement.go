package domain

import (
	"context"
	"errors"

	"github.com/go4it-sports/starpath/internal/common"
	"github.com/go4it-sports/starpath/internal/domain/progression"
	"github.com/go4it-sports/starpath/internal/entity"
	"github.com/go4it-sports/starpath/internal/model"
	"github.com/go4it-sports/starpath/internal/repository"
	"github.com/go4it-sports/starpath/pkg/errorx"
	"github.com/go4it-sports/starpath/pkg/xcontext"
	"github.com/go4it-sports/starpath/pkg/xredis"
	"gorm.io/gorm"
)

type AchievementDomain interface {
	GetAll(context.Context, *model.GetAchievementsRequest) (*model.GetAchievementsResponse, error)
	GetMine(context.Context, *model.GetMyAchievementsRequest) (*model.GetMyAchievementsResponse, error)
	MarkNotified(context.Context, *model.MarkAchievementsNotifiedRequest) (*model.MarkAchievementsNotifiedResponse, error)
}

type achievementDomain struct {
	catalog        *progression.Catalog
	progressRepo   repository.PlayerProgressRepository
	pointEventRepo repository.PointEventRepository
	unlockRepo     repository.AchievementUnlockRepository
	redisClient    xredis.Client
}

func NewAchievementDomain(
	catalog *progression.Catalog,
	progressRepo repository.PlayerProgressRepository,
	pointEventRepo repository.PointEventRepository,
	unlockRepo repository.AchievementUnlockRepository,
	redisClient xredis.Client,
) *achievementDomain {
	return &achievementDomain{
		catalog:        catalog,
		progressRepo:   progressRepo,
		pointEventRepo: pointEventRepo,
		unlockRepo:     unlockRepo,
		redisClient:    redisClient,
	}
}

func (d *achievementDomain) GetAll(
	ctx context.Context, req *model.GetAchievementsRequest,
) (*model.GetAchievementsResponse, error) {
	facts := progression.Facts{
		Progress:       entity.NewPlayerProgress(""),
		ActivityCounts: map[entity.PointEventType]int64{},
	}

	result := []model.Achievement{}
	for _, a := range d.catalog.All() {
		result = append(result, convertAchievement(a, facts, nil))
	}

	return &model.GetAchievementsResponse{Achievements: result}, nil
}

// GetMine returns the whole catalog with the progress of the request user. A
// player without any activity sees everything locked.
func (d *achievementDomain) GetMine(
	ctx context.Context, req *model.GetMyAchievementsRequest,
) (*model.GetMyAchievementsResponse, error) {
	userID := xcontext.RequestUserID(ctx)

	progress, err := d.progressRepo.Get(ctx, userID)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			xcontext.Logger(ctx).Errorf("Cannot get player progress: %v", err)
			return nil, errorx.Unknown
		}

		progress = entity.NewPlayerProgress(userID)
	}

	counts, err := d.pointEventRepo.CountByType(ctx, userID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot count point events: %v", err)
		return nil, errorx.Unknown
	}

	unlocks, err := d.unlockRepo.GetByUserID(ctx, userID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get achievement unlocks: %v", err)
		return nil, errorx.Unknown
	}

	unlockByID := make(map[string]*entity.AchievementUnlock, len(unlocks))
	for i := range unlocks {
		unlockByID[unlocks[i].AchievementID] = &unlocks[i]
	}

	state := progression.NewEvaluationState(progress, counts, nil)
	result := []model.Achievement{}
	for _, a := range d.catalog.All() {
		result = append(result, convertAchievement(a, state.Facts, unlockByID[a.ID]))
	}

	return &model.GetMyAchievementsResponse{Achievements: result}, nil
}

func (d *achievementDomain) MarkNotified(
	ctx context.Context, req *model.MarkAchievementsNotifiedRequest,
) (*model.MarkAchievementsNotifiedResponse, error) {
	userID := xcontext.RequestUserID(ctx)
	if err := d.unlockRepo.UpdateNotification(ctx, userID); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot update notification of achievements: %v", err)
		return nil, errorx.Unknown
	}

	if err := d.redisClient.Del(ctx, common.RedisKeySnapshot(userID)); err != nil {
		xcontext.Logger(ctx).Warnf("Cannot delete cached snapshot: %v", err)
	}

	return &model.MarkAchievementsNotifiedResponse{}, nil
}
