package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/tenancy-backend/internal/apierr"
	"github.com/yungbote/tenancy-backend/internal/logger"
	"github.com/yungbote/tenancy-backend/internal/repos"
	"github.com/yungbote/tenancy-backend/internal/types"
)

type CouponService interface {
	Create(ctx context.Context, code string, percent int, description string) (*types.Coupon, error)
	List(ctx context.Context) ([]*types.Coupon, error)
	Delete(ctx context.Context, rawID string) error
}

type couponService struct {
	db         *gorm.DB
	log        *logger.Logger
	couponRepo repos.CouponRepo
}

func NewCouponService(db *gorm.DB, log *logger.Logger, couponRepo repos.CouponRepo) CouponService {
	serviceLog := log.With("service", "CouponService")
	return &couponService{db: db, log: serviceLog, couponRepo: couponRepo}
}

func (cs *couponService) Create(ctx context.Context, code string, percent int, description string) (*types.Coupon, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return nil, apierr.BadRequest("code required")
	}
	if percent <= 0 || percent > 100 {
		return nil, apierr.BadRequest("percent must be between 1 and 100")
	}

	ctx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()

	coupon := &types.Coupon{
		ID:          uuid.New(),
		Code:        code,
		Percent:     percent,
		Description: strings.TrimSpace(description),
	}
	out, err := cs.couponRepo.Create(ctx, nil, coupon)
	if err != nil {
		cs.log.Warn("Create coupon failed", "error", err)
		return nil, fmt.Errorf("Failed to create coupon: %w", err)
	}
	return out, nil
}

func (cs *couponService) List(ctx context.Context) ([]*types.Coupon, error) {
	results, err := cs.couponRepo.GetAll(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("Failed to list coupons: %w", err)
	}
	return results, nil
}

func (cs *couponService) Delete(ctx context.Context, rawID string) error {
	id, err := uuid.Parse(strings.TrimSpace(rawID))
	if err != nil {
		return apierr.InvalidID("coupon id is not a valid uuid")
	}

	ctx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()

	if err := cs.couponRepo.DeleteByID(ctx, nil, id); err != nil {
		if err == gorm.ErrRecordNotFound {
			return apierr.NotFound("coupon does not exist")
		}
		return fmt.Errorf("Failed to delete coupon: %w", err)
	}
	return nil
}
