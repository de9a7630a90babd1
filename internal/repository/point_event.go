package repository

import (
	"context"
	"time"

	"github.com/go4it-sports/starpath/internal/entity"
	"github.com/go4it-sports/starpath/pkg/xcontext"
)

type GetPointEventsFilter struct {
	UserID string
	Type   entity.PointEventType
	Offset int
	Limit  int
}

type PointEventRepository interface {
	Create(ctx context.Context, events ...*entity.PointEvent) error
	GetList(ctx context.Context, filter GetPointEventsFilter) ([]entity.PointEvent, error)
	CountByType(ctx context.Context, userID string) ([]entity.PointEventTypeCount, error)
	SumByUser(ctx context.Context, start, end time.Time, afterUserID string, limit int) ([]entity.UserStatistic, error)
}

type pointEventRepository struct{}

func NewPointEventRepository() *pointEventRepository {
	return &pointEventRepository{}
}

func (r *pointEventRepository) Create(ctx context.Context, events ...*entity.PointEvent) error {
	if len(events) == 0 {
		return nil
	}

	return xcontext.DB(ctx).Create(events).Error
}

// GetList returns the events of a user, newest first.
func (r *pointEventRepository) GetList(ctx context.Context, filter GetPointEventsFilter) ([]entity.PointEvent, error) {
	var result []entity.PointEvent
	tx := xcontext.DB(ctx).Where("user_id=?", filter.UserID)
	if filter.Type != "" {
		tx = tx.Where("type=?", filter.Type)
	}

	err := tx.Order("id DESC").
		Offset(filter.Offset).
		Limit(filter.Limit).
		Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *pointEventRepository) CountByType(ctx context.Context, userID string) ([]entity.PointEventTypeCount, error) {
	var result []entity.PointEventTypeCount
	err := xcontext.DB(ctx).
		Model(&entity.PointEvent{}).
		Select("type, COUNT(*) AS count").
		Where("user_id=?", userID).
		Group("type").
		Scan(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

// SumByUser returns the awarded points of each active user within
// [start, end), ordered by user id and starting after afterUserID.
func (r *pointEventRepository) SumByUser(
	ctx context.Context, start, end time.Time, afterUserID string, limit int,
) ([]entity.UserStatistic, error) {
	archived := xcontext.DB(ctx).
		Model(&entity.PlayerProgress{}).
		Select("user_id").
		Where("archived_at IS NOT NULL")

	var result []entity.UserStatistic
	err := xcontext.DB(ctx).
		Model(&entity.PointEvent{}).
		Select("user_id, SUM(awarded_points) AS points").
		Where("created_at >= ? AND created_at < ? AND user_id > ?", start, end, afterUserID).
		Where("user_id NOT IN (?)", archived).
		Group("user_id").
		Order("user_id ASC").
		Limit(limit).
		Scan(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}
