package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/tenancy-backend/internal/logger"
	"github.com/yungbote/tenancy-backend/internal/types"
)

type AnnouncementRepo interface {
	Create(ctx context.Context, tx *gorm.DB, announcement *types.Announcement) (*types.Announcement, error)
	GetAll(ctx context.Context, tx *gorm.DB) ([]*types.Announcement, error)
	DeleteByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) error
}

type announcementRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewAnnouncementRepo(db *gorm.DB, baseLog *logger.Logger) AnnouncementRepo {
	repoLog := baseLog.With("repo", "AnnouncementRepo")
	return &announcementRepo{db: db, log: repoLog}
}

func (ar *announcementRepo) Create(ctx context.Context, tx *gorm.DB, announcement *types.Announcement) (*types.Announcement, error) {
	transaction := tx
	if transaction == nil {
		transaction = ar.db
	}

	if err := transaction.WithContext(ctx).Create(announcement).Error; err != nil {
		return nil, err
	}
	return announcement, nil
}

func (ar *announcementRepo) GetAll(ctx context.Context, tx *gorm.DB) ([]*types.Announcement, error) {
	transaction := tx
	if transaction == nil {
		transaction = ar.db
	}

	var results []*types.Announcement
	if err := transaction.WithContext(ctx).
		Order("created_at DESC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (ar *announcementRepo) DeleteByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = ar.db
	}

	res := transaction.WithContext(ctx).
		Where("id = ?", id).
		Delete(&types.Announcement{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
