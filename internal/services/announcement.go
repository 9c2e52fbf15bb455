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

type AnnouncementService interface {
	Create(ctx context.Context, title, body string) (*types.Announcement, error)
	List(ctx context.Context) ([]*types.Announcement, error)
	Delete(ctx context.Context, rawID string) error
}

type announcementService struct {
	db               *gorm.DB
	log              *logger.Logger
	announcementRepo repos.AnnouncementRepo
}

func NewAnnouncementService(db *gorm.DB, log *logger.Logger, announcementRepo repos.AnnouncementRepo) AnnouncementService {
	serviceLog := log.With("service", "AnnouncementService")
	return &announcementService{db: db, log: serviceLog, announcementRepo: announcementRepo}
}

func (ns *announcementService) Create(ctx context.Context, title, body string) (*types.Announcement, error) {
	title = strings.TrimSpace(title)
	body = strings.TrimSpace(body)
	if title == "" || body == "" {
		return nil, apierr.BadRequest("title and body required")
	}

	ctx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()

	announcement := &types.Announcement{
		ID:    uuid.New(),
		Title: title,
		Body:  body,
	}
	out, err := ns.announcementRepo.Create(ctx, nil, announcement)
	if err != nil {
		ns.log.Warn("Create announcement failed", "error", err)
		return nil, fmt.Errorf("Failed to create announcement: %w", err)
	}
	return out, nil
}

func (ns *announcementService) List(ctx context.Context) ([]*types.Announcement, error) {
	results, err := ns.announcementRepo.GetAll(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("Failed to list announcements: %w", err)
	}
	return results, nil
}

func (ns *announcementService) Delete(ctx context.Context, rawID string) error {
	id, err := uuid.Parse(strings.TrimSpace(rawID))
	if err != nil {
		return apierr.InvalidID("announcement id is not a valid uuid")
	}

	ctx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()

	if err := ns.announcementRepo.DeleteByID(ctx, nil, id); err != nil {
		if err == gorm.ErrRecordNotFound {
			return apierr.NotFound("announcement does not exist")
		}
		return fmt.Errorf("Failed to delete announcement: %w", err)
	}
	return nil
}
