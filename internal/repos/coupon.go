package repos

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/tenancy-backend/internal/logger"
	"github.com/yungbote/tenancy-backend/internal/types"
)

type CouponRepo interface {
	Create(ctx context.Context, tx *gorm.DB, coupon *types.Coupon) (*types.Coupon, error)
	GetAll(ctx context.Context, tx *gorm.DB) ([]*types.Coupon, error)
	GetByCode(ctx context.Context, tx *gorm.DB, code string) (*types.Coupon, error)
	DeleteByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) error
}

type couponRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewCouponRepo(db *gorm.DB, baseLog *logger.Logger) CouponRepo {
	repoLog := baseLog.With("repo", "CouponRepo")
	return &couponRepo{db: db, log: repoLog}
}

func (cr *couponRepo) Create(ctx context.Context, tx *gorm.DB, coupon *types.Coupon) (*types.Coupon, error) {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}

	if err := transaction.WithContext(ctx).Create(coupon).Error; err != nil {
		return nil, err
	}
	return coupon, nil
}

func (cr *couponRepo) GetAll(ctx context.Context, tx *gorm.DB) ([]*types.Coupon, error) {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}

	var results []*types.Coupon
	if err := transaction.WithContext(ctx).
		Order("created_at DESC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (cr *couponRepo) GetByCode(ctx context.Context, tx *gorm.DB, code string) (*types.Coupon, error) {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}

	var result types.Coupon
	err := transaction.WithContext(ctx).
		Where("code = ?", code).
		First(&result).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (cr *couponRepo) DeleteByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}

	res := transaction.WithContext(ctx).
		Where("id = ?", id).
		Delete(&types.Coupon{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
