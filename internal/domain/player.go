package domain

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/go4it-sports/starpath/internal/client"
	"github.com/go4it-sports/starpath/internal/common"
	"github.com/go4it-sports/starpath/internal/domain/progression"
	"github.com/go4it-sports/starpath/internal/entity"
	"github.com/go4it-sports/starpath/internal/model"
	"github.com/go4it-sports/starpath/internal/repository"
	"github.com/go4it-sports/starpath/pkg/dateutil"
	"github.com/go4it-sports/starpath/pkg/errorx"
	"github.com/go4it-sports/starpath/pkg/pubsub"
	"github.com/go4it-sports/starpath/pkg/xcontext"
	"github.com/go4it-sports/starpath/pkg/xredis"
	"github.com/google/uuid"
	"github.com/puzpuzpuz/xsync"
	"gorm.io/gorm"
)

type PlayerDomain interface {
	DailyCheckIn(context.Context, *model.DailyCheckInRequest) (*model.RecordActivityResponse, error)
	AddXP(context.Context, *model.AddXPRequest) (*model.RecordActivityResponse, error)
	RecordActivity(context.Context, *model.RecordActivityRequest) (*model.RecordActivityResponse, error)
	VideoAnalyzed(context.Context, *model.VideoAnalyzedRequest) (*model.RecordActivityResponse, error)
	LevelUpStarRank(context.Context, *model.LevelUpStarRankRequest) (*model.LevelUpStarRankResponse, error)
	GetProgress(context.Context, *model.GetProgressRequest) (*model.GetProgressResponse, error)
	GetPointEvents(context.Context, *model.GetPointEventsRequest) (*model.GetPointEventsResponse, error)
	CorrectPoints(context.Context, *model.CorrectPointsRequest) (*model.CorrectPointsResponse, error)
	Archive(context.Context, *model.ArchivePlayerRequest) (*model.ArchivePlayerResponse, error)
}

type playerDomain struct {
	progressRepo   repository.PlayerProgressRepository
	pointEventRepo repository.PointEventRepository
	unlockRepo     repository.AchievementUnlockRepository
	correctionRepo repository.PointCorrectionRepository
	engine         *progression.Engine
	scoreProvider  client.ScoreProvider
	publisher      pubsub.Publisher
	redisClient    xredis.Client
	adminVerifier  *common.AdminVerifier

	// userLocks serializes the operations of a player within the process.
	userLocks *xsync.MapOf[string, *sync.Mutex]
	now       func() time.Time
}

func NewPlayerDomain(
	progressRepo repository.PlayerProgressRepository,
	pointEventRepo repository.PointEventRepository,
	unlockRepo repository.AchievementUnlockRepository,
	correctionRepo repository.PointCorrectionRepository,
	engine *progression.Engine,
	scoreProvider client.ScoreProvider,
	publisher pubsub.Publisher,
	redisClient xredis.Client,
) *playerDomain {
	return &playerDomain{
		progressRepo:   progressRepo,
		pointEventRepo: pointEventRepo,
		unlockRepo:     unlockRepo,
		correctionRepo: correctionRepo,
		engine:         engine,
		scoreProvider:  scoreProvider,
		publisher:      publisher,
		redisClient:    redisClient,
		adminVerifier:  common.NewAdminVerifier(),
		userLocks:      xsync.NewMapOf[*sync.Mutex](),
		now:            time.Now,
	}
}

// playerState is a loaded player with everything the engine needs.
type playerState struct {
	*progression.EvaluationState
	unlocks []entity.AchievementUnlock
}

type mutation func(ctx context.Context, state *playerState, now time.Time) (*progression.Outcome, error)

type mutationResult struct {
	state    *playerState
	outcome  *progression.Outcome
	snapshot model.PlayerSnapshot
}

// cachedSnapshot is only valid on Day, the streak may roll over afterwards.
type cachedSnapshot struct {
	Day      string               `json:"day"`
	Snapshot model.PlayerSnapshot `json:"snapshot"`
}

func (d *playerDomain) DailyCheckIn(
	ctx context.Context, req *model.DailyCheckInRequest,
) (*model.RecordActivityResponse, error) {
	basePoints := xcontext.Configs(ctx).StarPath.CheckInBasePoints
	return d.record(ctx, "daily_check_in", entity.DailyCheckIn, basePoints, req.FocusMinutes)
}

func (d *playerDomain) AddXP(
	ctx context.Context, req *model.AddXPRequest,
) (*model.RecordActivityResponse, error) {
	eventType, err := progression.ParsePointEventType(req.SkillID)
	if err != nil {
		return nil, err
	}

	return d.record(ctx, "add_xp", eventType, req.XPAmount, req.FocusMinutes)
}

func (d *playerDomain) RecordActivity(
	ctx context.Context, req *model.RecordActivityRequest,
) (*model.RecordActivityResponse, error) {
	eventType, err := progression.ParsePointEventType(req.Type)
	if err != nil {
		return nil, err
	}

	return d.record(ctx, "record_activity", eventType, req.BasePoints, req.FocusMinutes)
}

func (d *playerDomain) VideoAnalyzed(
	ctx context.Context, req *model.VideoAnalyzedRequest,
) (*model.RecordActivityResponse, error) {
	if req.VideoID == "" {
		return nil, errorx.New(errorx.BadRequest, "Require video id")
	}

	score, err := d.scoreProvider.Score(ctx, req.VideoID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot score video %s: %v", req.VideoID, err)
		return nil, errorx.New(errorx.Unavailable, "Video score is not available")
	}

	return d.record(ctx, "video_analyzed", entity.VideoAnalyzed, score, 0)
}

func (d *playerDomain) LevelUpStarRank(
	ctx context.Context, req *model.LevelUpStarRankRequest,
) (*model.LevelUpStarRankResponse, error) {
	requestUserID := xcontext.RequestUserID(ctx)
	if req.UserID != requestUserID {
		return nil, errorx.New(errorx.PermissionDenied, "Only the player can advance the star rank")
	}

	result, err := d.mutate(ctx, "level_up_star_rank", requestUserID, true,
		func(ctx context.Context, state *playerState, now time.Time) (*progression.Outcome, error) {
			return d.engine.AdvanceStarRank(state.EvaluationState, now)
		})
	if err != nil {
		return nil, err
	}

	return &model.LevelUpStarRankResponse{
		PreviousRank: result.outcome.PreviousStarRank,
		CurrentRank:  result.outcome.CurrentStarRank,
		StarRankName: progression.StarRankName(result.outcome.CurrentStarRank),
		Player:       result.snapshot,
	}, nil
}

func (d *playerDomain) GetProgress(
	ctx context.Context, req *model.GetProgressRequest,
) (*model.GetProgressResponse, error) {
	requestUserID := xcontext.RequestUserID(ctx)
	userID := req.UserID
	if userID == "" {
		userID = requestUserID
	}

	if userID == "" {
		return nil, errorx.New(errorx.BadRequest, "Require user id")
	}

	var cached cachedSnapshot
	err := d.redisClient.GetObj(ctx, common.RedisKeySnapshot(userID), &cached)
	if err == nil && cached.Day == dateutil.Day(d.now()).Format(dateLayout) {
		return &model.GetProgressResponse{Player: cached.Snapshot}, nil
	}

	if err != nil && !errors.Is(err, xredis.ErrNotFound) {
		xcontext.Logger(ctx).Warnf("Cannot get cached snapshot: %v", err)
	}

	// Only the player creates its own progress, other players must exist.
	result, err := d.mutate(ctx, "get_progress", userID, userID == requestUserID,
		func(ctx context.Context, state *playerState, now time.Time) (*progression.Outcome, error) {
			return d.engine.Refresh(state.EvaluationState, now), nil
		})
	if err != nil {
		return nil, err
	}

	return &model.GetProgressResponse{Player: result.snapshot}, nil
}

func (d *playerDomain) GetPointEvents(
	ctx context.Context, req *model.GetPointEventsRequest,
) (*model.GetPointEventsResponse, error) {
	apiCfg := xcontext.Configs(ctx).ApiServer
	if req.Limit == 0 {
		req.Limit = apiCfg.DefaultLimit
	}

	if req.Limit < 0 {
		return nil, errorx.New(errorx.BadRequest, "Limit must be positive")
	}

	if req.Limit > apiCfg.MaxLimit {
		return nil, errorx.New(errorx.BadRequest, "Exceed the maximum of limit")
	}

	if req.Offset < 0 {
		return nil, errorx.New(errorx.BadRequest, "Offset must not be negative")
	}

	filter := repository.GetPointEventsFilter{
		UserID: xcontext.RequestUserID(ctx),
		Offset: req.Offset,
		Limit:  req.Limit,
	}

	if req.Type != "" {
		eventType, err := progression.ParsePointEventType(req.Type)
		if err != nil {
			return nil, err
		}

		filter.Type = eventType
	}

	events, err := d.pointEventRepo.GetList(ctx, filter)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get point events: %v", err)
		return nil, errorx.Unknown
	}

	result := []model.PointEvent{}
	for i := range events {
		result = append(result, convertPointEvent(&events[i]))
	}

	return &model.GetPointEventsResponse{Events: result}, nil
}

func (d *playerDomain) CorrectPoints(
	ctx context.Context, req *model.CorrectPointsRequest,
) (*model.CorrectPointsResponse, error) {
	if err := d.adminVerifier.Verify(ctx); err != nil {
		xcontext.Logger(ctx).Debugf("Reject point correction: %v", err)
		return nil, errorx.New(errorx.PermissionDenied, "Only admins can correct points")
	}

	if req.UserID == "" {
		return nil, errorx.New(errorx.BadRequest, "Require user id")
	}

	if req.Reason == "" {
		return nil, errorx.New(errorx.BadRequest, "Require a reason for the correction")
	}

	result, err := d.mutate(ctx, "correct_points", req.UserID, false,
		func(ctx context.Context, state *playerState, now time.Time) (*progression.Outcome, error) {
			outcome, err := d.engine.ApplyCorrection(state.EvaluationState, req.Delta)
			if err != nil {
				return nil, err
			}

			err = d.correctionRepo.Create(ctx, &entity.PointCorrection{
				Base:        entity.Base{ID: uuid.NewString()},
				UserID:      req.UserID,
				Delta:       req.Delta,
				Reason:      req.Reason,
				CorrectedBy: xcontext.RequestUserID(ctx),
			})
			if err != nil {
				xcontext.Logger(ctx).Errorf("Cannot create point correction: %v", err)
				return nil, errorx.Unknown
			}

			return outcome, nil
		})
	if err != nil {
		return nil, err
	}

	return &model.CorrectPointsResponse{Player: result.snapshot}, nil
}

func (d *playerDomain) Archive(
	ctx context.Context, req *model.ArchivePlayerRequest,
) (*model.ArchivePlayerResponse, error) {
	if err := d.adminVerifier.Verify(ctx); err != nil {
		xcontext.Logger(ctx).Debugf("Reject player archive: %v", err)
		return nil, errorx.New(errorx.PermissionDenied, "Only admins can archive players")
	}

	if req.UserID == "" {
		return nil, errorx.New(errorx.BadRequest, "Require user id")
	}

	unlock := d.lock(req.UserID)
	defer unlock()

	progress, err := d.progressRepo.Get(ctx, req.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found player")
		}

		xcontext.Logger(ctx).Errorf("Cannot get player progress: %v", err)
		return nil, errorx.Unknown
	}

	if progress.IsArchived() {
		return nil, errorx.New(errorx.NotFound, "Player has been archived")
	}

	now := d.now()
	if err := d.progressRepo.Archive(ctx, req.UserID, now); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot archive player: %v", err)
		return nil, errorx.Unknown
	}

	if err := d.redisClient.Del(ctx, common.RedisKeySnapshot(req.UserID)); err != nil {
		xcontext.Logger(ctx).Warnf("Cannot delete cached snapshot: %v", err)
	}

	d.publish(ctx, []model.Event{{
		Type:       model.PlayerArchivedEvent,
		UserID:     req.UserID,
		OccurredAt: now,
	}})

	return &model.ArchivePlayerResponse{}, nil
}

func (d *playerDomain) record(
	ctx context.Context,
	operation string,
	eventType entity.PointEventType,
	basePoints int64,
	focusMinutes int,
) (*model.RecordActivityResponse, error) {
	if focusMinutes < 0 {
		return nil, errorx.New(errorx.BadRequest, "Focus minutes must not be negative")
	}

	userID := xcontext.RequestUserID(ctx)
	if userID == "" {
		return nil, errorx.New(errorx.Unauthenticated, "Require a player")
	}

	opts := progression.RecordOptions{FocusMinutes: focusMinutes}
	result, err := d.mutate(ctx, operation, userID, true,
		func(ctx context.Context, state *playerState, now time.Time) (*progression.Outcome, error) {
			return d.engine.Record(state.EvaluationState, eventType, basePoints, opts, now)
		})
	if err != nil {
		return nil, err
	}

	resp := &model.RecordActivityResponse{
		Event:    convertPointEvent(result.outcome.Event),
		Rewards:  []model.PointEvent{},
		Unlocked: []model.Achievement{},
		LevelUp:  result.outcome.LeveledUp(),
		Player:   result.snapshot,
	}

	for _, u := range result.outcome.Unlocks {
		if u.Reward != nil {
			resp.Rewards = append(resp.Rewards, convertPointEvent(u.Reward))
		}

		resp.Unlocked = append(resp.Unlocked, convertAchievement(u.Achievement, result.state.Facts,
			&entity.AchievementUnlock{UserID: userID, AchievementID: u.Achievement.ID, UnlockedAt: u.UnlockedAt}))
	}

	return resp, nil
}

func (d *playerDomain) lock(userID string) func() {
	mutex, _ := d.userLocks.LoadOrCompute(userID, func() *sync.Mutex { return &sync.Mutex{} })
	mutex.Lock()
	return mutex.Unlock
}

// mutate applies fn to the player in one transaction while holding the player
// lock. Everything fn changed is saved only if the stored version is still the
// loaded one. After the commit, the snapshot cache is refreshed and the events
// are published.
func (d *playerDomain) mutate(
	ctx context.Context, operation, userID string, create bool, fn mutation,
) (*mutationResult, error) {
	unlock := d.lock(userID)
	defer unlock()

	txCtx := xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(txCtx)

	state, err := d.loadState(txCtx, userID, create)
	if err != nil {
		return nil, err
	}

	now := d.now()
	outcome, err := fn(txCtx, state, now)
	if err != nil {
		return nil, err
	}

	if outcome.Changed() {
		if err := d.persist(txCtx, operation, state, outcome); err != nil {
			return nil, err
		}
	}

	if err := xcontext.WithCommitDBTransaction(txCtx); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot commit transaction: %v", err)
		return nil, errorx.Unknown
	}

	result := &mutationResult{
		state:    state,
		outcome:  outcome,
		snapshot: convertSnapshot(d.engine.Catalog(), state.EvaluationState, state.unlocks),
	}

	err = d.redisClient.SetObj(ctx, common.RedisKeySnapshot(userID), cachedSnapshot{
		Day:      dateutil.Day(now).Format(dateLayout),
		Snapshot: result.snapshot,
	}, xcontext.Configs(ctx).StarPath.SnapshotTTL)
	if err != nil {
		// A stale snapshot must not survive a mutation.
		xcontext.Logger(ctx).Warnf("Cannot cache snapshot: %v", err)
		if err := d.redisClient.Del(ctx, common.RedisKeySnapshot(userID)); err != nil {
			xcontext.Logger(ctx).Errorf("Cannot delete cached snapshot: %v", err)
		}
	}

	if outcome.Changed() {
		recordMetrics(state.Progress, outcome)
		d.publish(ctx, buildEvents(userID, outcome, now))
	}

	return result, nil
}

func (d *playerDomain) loadState(ctx context.Context, userID string, create bool) (*playerState, error) {
	var progress *entity.PlayerProgress
	var err error
	if create {
		progress, err = d.progressRepo.GetOrCreate(ctx, userID)
	} else {
		progress, err = d.progressRepo.Get(ctx, userID)
	}

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found player")
		}

		xcontext.Logger(ctx).Errorf("Cannot get player progress: %v", err)
		return nil, errorx.Unknown
	}

	if progress.IsArchived() {
		return nil, errorx.New(errorx.NotFound, "Player has been archived")
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

	unlockedIDs := make([]string, 0, len(unlocks))
	for _, u := range unlocks {
		unlockedIDs = append(unlockedIDs, u.AchievementID)
	}

	return &playerState{
		EvaluationState: progression.NewEvaluationState(progress, counts, unlockedIDs),
		unlocks:         unlocks,
	}, nil
}

func (d *playerDomain) persist(
	ctx context.Context, operation string, state *playerState, outcome *progression.Outcome,
) error {
	if err := d.pointEventRepo.Create(ctx, outcome.Events()...); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create point events: %v", err)
		return errorx.Unknown
	}

	unlocks := make([]*entity.AchievementUnlock, 0, len(outcome.Unlocks))
	for _, u := range outcome.Unlocks {
		unlocks = append(unlocks, &entity.AchievementUnlock{
			UserID:        state.Progress.UserID,
			AchievementID: u.Achievement.ID,
			UnlockedAt:    u.UnlockedAt,
		})
	}

	if err := d.unlockRepo.Create(ctx, unlocks...); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create achievement unlocks: %v", err)
		return errorx.Unknown
	}

	if err := d.progressRepo.Save(ctx, state.Progress); err != nil {
		if errors.Is(err, repository.ErrVersionConflict) {
			common.PromCounters[common.ConcurrentModifications].WithLabelValues(operation).Inc()
			return errorx.New(errorx.ConcurrentModification, "Player progress was modified concurrently")
		}

		xcontext.Logger(ctx).Errorf("Cannot save player progress: %v", err)
		return errorx.Unknown
	}

	for _, u := range unlocks {
		state.unlocks = append(state.unlocks, *u)
	}

	return nil
}
