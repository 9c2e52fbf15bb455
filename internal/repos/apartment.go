package repos

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/tenancy-backend/internal/logger"
	"github.com/yungbote/tenancy-backend/internal/types"
)

type ApartmentRepo interface {
	Create(ctx context.Context, tx *gorm.DB, apartment *types.Apartment) (*types.Apartment, error)
	GetAll(ctx context.Context, tx *gorm.DB) ([]*types.Apartment, error)
	GetByBlockAndNo(ctx context.Context, tx *gorm.DB, blockName string, apartmentNo int) (*types.Apartment, error)
	Update(ctx context.Context, tx *gorm.DB, apartment *types.Apartment) error
	DeleteByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) error
}

type apartmentRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewApartmentRepo(db *gorm.DB, baseLog *logger.Logger) ApartmentRepo {
	repoLog := baseLog.With("repo", "ApartmentRepo")
	return &apartmentRepo{db: db, log: repoLog}
}

func (ar *apartmentRepo) Create(ctx context.Context, tx *gorm.DB, apartment *types.Apartment) (*types.Apartment, error) {
	transaction := tx
	if transaction == nil {
		transaction = ar.db
	}

	if err := transaction.WithContext(ctx).Create(apartment).Error; err != nil {
		return nil, err
	}
	return apartment, nil
}

func (ar *apartmentRepo) GetAll(ctx context.Context, tx *gorm.DB) ([]*types.Apartment, error) {
	transaction := tx
	if transaction == nil {
		transaction = ar.db
	}

	var results []*types.Apartment
	if err := transaction.WithContext(ctx).
		Order("block_name ASC, apartment_no ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (ar *apartmentRepo) GetByBlockAndNo(ctx context.Context, tx *gorm.DB, blockName string, apartmentNo int) (*types.Apartment, error) {
	transaction := tx
	if transaction == nil {
		transaction = ar.db
	}

	var result types.Apartment
	err := transaction.WithContext(ctx).
		Where("block_name = ? AND apartment_no = ?", blockName, apartmentNo).
		First(&result).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (ar *apartmentRepo) Update(ctx context.Context, tx *gorm.DB, apartment *types.Apartment) error {
	transaction := tx
	if transaction == nil {
		transaction = ar.db
	}

	res := transaction.WithContext(ctx).
		Model(&types.Apartment{}).
		Where("id = ?", apartment.ID).
		Updates(map[string]interface{}{
			"block_name":   apartment.BlockName,
			"apartment_no": apartment.ApartmentNo,
			"floor":        apartment.Floor,
			"bedrooms":     apartment.Bedrooms,
			"rent_cents":   apartment.RentCents,
			"image_url":    apartment.ImageURL,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (ar *apartmentRepo) DeleteByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = ar.db
	}

	res := transaction.WithContext(ctx).
		Where("id = ?", id).
		Delete(&types.Apartment{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
