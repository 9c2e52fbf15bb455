package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"github.com/yungbote/tenancy-backend/internal/apierr"
	"github.com/yungbote/tenancy-backend/internal/logger"
	"github.com/yungbote/tenancy-backend/internal/repos"
	"github.com/yungbote/tenancy-backend/internal/types"
)

type ApartmentService interface {
	Create(ctx context.Context, apartment *types.Apartment) (*types.Apartment, error)
	List(ctx context.Context) ([]*types.Apartment, error)
	Update(ctx context.Context, rawID string, apartment *types.Apartment) error
	Delete(ctx context.Context, rawID string) error
	Stats(ctx context.Context) (OccupancyStats, error)
}

type apartmentService struct {
	db            *gorm.DB
	log           *logger.Logger
	apartmentRepo repos.ApartmentRepo
	agreementRepo repos.AgreementRepo
}

func NewApartmentService(db *gorm.DB, log *logger.Logger, apartmentRepo repos.ApartmentRepo, agreementRepo repos.AgreementRepo) ApartmentService {
	serviceLog := log.With("service", "ApartmentService")
	return &apartmentService{
		db:            db,
		log:           serviceLog,
		apartmentRepo: apartmentRepo,
		agreementRepo: agreementRepo,
	}
}

func (as *apartmentService) Create(ctx context.Context, apartment *types.Apartment) (*types.Apartment, error) {
	if apartment == nil || strings.TrimSpace(apartment.BlockName) == "" {
		return nil, apierr.BadRequest("block_name required")
	}
	if apartment.ApartmentNo <= 0 {
		return nil, apierr.BadRequest("apartment_no must be positive")
	}

	ctx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()

	apartment.ID = uuid.New()
	apartment.BlockName = strings.TrimSpace(apartment.BlockName)
	out, err := as.apartmentRepo.Create(ctx, nil, apartment)
	if err != nil {
		as.log.Warn("Create apartment failed", "error", err)
		return nil, fmt.Errorf("Failed to create apartment: %w", err)
	}
	return out, nil
}

func (as *apartmentService) List(ctx context.Context) ([]*types.Apartment, error) {
	results, err := as.apartmentRepo.GetAll(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("Failed to list apartments: %w", err)
	}
	return results, nil
}

func (as *apartmentService) Update(ctx context.Context, rawID string, apartment *types.Apartment) error {
	id, err := uuid.Parse(strings.TrimSpace(rawID))
	if err != nil {
		return apierr.InvalidID("apartment id is not a valid uuid")
	}
	if apartment == nil || strings.TrimSpace(apartment.BlockName) == "" {
		return apierr.BadRequest("block_name required")
	}
	if apartment.ApartmentNo <= 0 {
		return apierr.BadRequest("apartment_no must be positive")
	}

	ctx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()

	apartment.ID = id
	apartment.BlockName = strings.TrimSpace(apartment.BlockName)
	if err := as.apartmentRepo.Update(ctx, nil, apartment); err != nil {
		if err == gorm.ErrRecordNotFound {
			return apierr.NotFound("apartment does not exist")
		}
		return fmt.Errorf("Failed to update apartment: %w", err)
	}
	return nil
}

func (as *apartmentService) Delete(ctx context.Context, rawID string) error {
	id, err := uuid.Parse(strings.TrimSpace(rawID))
	if err != nil {
		return apierr.InvalidID("apartment id is not a valid uuid")
	}

	ctx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()

	if err := as.apartmentRepo.DeleteByID(ctx, nil, id); err != nil {
		if err == gorm.ErrRecordNotFound {
			return apierr.NotFound("apartment does not exist")
		}
		return fmt.Errorf("Failed to delete apartment: %w", err)
	}
	return nil
}

// Stats loads the two snapshot halves concurrently and derives occupancy
// from them. Nothing here is cached.
func (as *apartmentService) Stats(ctx context.Context) (OccupancyStats, error) {
	ctx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()

	var (
		apartments []*types.Apartment
		checked    []*types.Agreement
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		out, err := as.apartmentRepo.GetAll(gctx, nil)
		if err != nil {
			return fmt.Errorf("Failed to list apartments: %w", err)
		}
		apartments = out
		return nil
	})
	g.Go(func() error {
		out, err := as.agreementRepo.GetByStatus(gctx, nil, types.AgreementStatusChecked)
		if err != nil {
			return fmt.Errorf("Failed to list checked agreements: %w", err)
		}
		checked = out
		return nil
	})
	if err := g.Wait(); err != nil {
		as.log.Warn("Stats snapshot failed", "error", err)
		return OccupancyStats{}, err
	}

	return ComputeOccupancyStats(apartments, checked), nil
}
