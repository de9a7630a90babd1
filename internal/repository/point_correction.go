package repository

import (
	"context"

	"github.com/go4it-sports/starpath/internal/entity"
	"github.com/go4it-sports/starpath/pkg/xcontext"
)

type PointCorrectionRepository interface {
	Create(ctx context.Context, correction *entity.PointCorrection) error
	GetByUserID(ctx context.Context, userID string) ([]entity.PointCorrection, error)
}

type pointCorrectionRepository struct{}

func NewPointCorrectionRepository() *pointCorrectionRepository {
	return &pointCorrectionRepository{}
}

func (r *pointCorrectionRepository) Create(ctx context.Context, correction *entity.PointCorrection) error {
	return xcontext.DB(ctx).Create(correction).Error
}

func (r *pointCorrectionRepository) GetByUserID(ctx context.Context, userID string) ([]entity.PointCorrection, error) {
	var result []entity.PointCorrection
	err := xcontext.DB(ctx).
		Where("user_id=?", userID).
		Order("created_at ASC").
		Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}
