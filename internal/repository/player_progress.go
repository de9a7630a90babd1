package repository

import (
	"context"
	"errors"
	"time"

	"github.com/go4it-sports/starpath/internal/entity"
	"github.com/go4it-sports/starpath/pkg/xcontext"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrVersionConflict is returned by Save when the stored row has been changed
// since it was loaded.
var ErrVersionConflict = errors.New("player progress was modified concurrently")

type PlayerProgressRepository interface {
	Get(ctx context.Context, userID string) (*entity.PlayerProgress, error)
	GetOrCreate(ctx context.Context, userID string) (*entity.PlayerProgress, error)
	Save(ctx context.Context, progress *entity.PlayerProgress) error
	Archive(ctx context.Context, userID string, at time.Time) error
	GetPage(ctx context.Context, afterUserID string, limit int) ([]entity.PlayerProgress, error)
}

type playerProgressRepository struct{}

func NewPlayerProgressRepository() *playerProgressRepository {
	return &playerProgressRepository{}
}

func (r *playerProgressRepository) Get(ctx context.Context, userID string) (*entity.PlayerProgress, error) {
	var result entity.PlayerProgress
	if err := xcontext.DB(ctx).Take(&result, "user_id=?", userID).Error; err != nil {
		return nil, err
	}

	return &result, nil
}

// GetOrCreate returns the progress of the user, creating it with the minimum
// values on first access.
func (r *playerProgressRepository) GetOrCreate(ctx context.Context, userID string) (*entity.PlayerProgress, error) {
	err := xcontext.DB(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(entity.NewPlayerProgress(userID)).Error
	if err != nil {
		return nil, err
	}

	return r.Get(ctx, userID)
}

// Save writes every mutable field of progress if its version is still the
// stored one, then increases the version.
func (r *playerProgressRepository) Save(ctx context.Context, progress *entity.PlayerProgress) error {
	tx := xcontext.DB(ctx).
		Model(&entity.PlayerProgress{}).
		Where("user_id=? AND version=?", progress.UserID, progress.Version).
		Updates(map[string]any{
			"total_points":              progress.TotalPoints,
			"current_level":             progress.CurrentLevel,
			"current_star_rank":         progress.CurrentStarRank,
			"streak_current_length":     progress.Streak.CurrentLength,
			"streak_longest_length":     progress.Streak.LongestLength,
			"streak_last_activity_date": progress.Streak.LastActivityDate,
			"streak_checked_on":         progress.Streak.CheckedOn,
			"today_activity_count":      progress.TodayActivityCount,
			"version":                   progress.Version + 1,
		})
	if err := tx.Error; err != nil {
		return err
	}

	if tx.RowsAffected == 0 {
		return ErrVersionConflict
	}

	progress.Version++
	return nil
}

func (r *playerProgressRepository) Archive(ctx context.Context, userID string, at time.Time) error {
	return xcontext.DB(ctx).
		Model(&entity.PlayerProgress{}).
		Where("user_id=? AND archived_at IS NULL", userID).
		Updates(map[string]any{
			"archived_at": at,
			"version":     gorm.Expr("version + 1"),
		}).Error
}

// GetPage returns active players ordered by user id, starting after
// afterUserID.
func (r *playerProgressRepository) GetPage(
	ctx context.Context, afterUserID string, limit int,
) ([]entity.PlayerProgress, error) {
	var result []entity.PlayerProgress
	err := xcontext.DB(ctx).
		Where("user_id > ? AND archived_at IS NULL", afterUserID).
		Order("user_id ASC").
		Limit(limit).
		Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}
