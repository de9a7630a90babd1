package repository

import (
	"context"

	"github.com/go4it-sports/starpath/internal/entity"
	"github.com/go4it-sports/starpath/pkg/xcontext"
)

type AchievementUnlockRepository interface {
	Create(ctx context.Context, unlocks ...*entity.AchievementUnlock) error
	GetByUserID(ctx context.Context, userID string) ([]entity.AchievementUnlock, error)
	UpdateNotification(ctx context.Context, userID string) error
}

type achievementUnlockRepository struct{}

func NewAchievementUnlockRepository() *achievementUnlockRepository {
	return &achievementUnlockRepository{}
}

// Create fails if the user already owns one of the achievements.
func (r *achievementUnlockRepository) Create(ctx context.Context, unlocks ...*entity.AchievementUnlock) error {
	if len(unlocks) == 0 {
		return nil
	}

	return xcontext.DB(ctx).Create(unlocks).Error
}

func (r *achievementUnlockRepository) GetByUserID(ctx context.Context, userID string) ([]entity.AchievementUnlock, error) {
	var result []entity.AchievementUnlock
	err := xcontext.DB(ctx).
		Where("user_id=?", userID).
		Order("unlocked_at ASC").
		Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *achievementUnlockRepository) UpdateNotification(ctx context.Context, userID string) error {
	return xcontext.DB(ctx).
		Model(&entity.AchievementUnlock{}).
		Where("user_id=? AND was_notified=?", userID, false).
		Update("was_notified", true).Error
}
