package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/tenancy-backend/internal/apierr"
	"github.com/yungbote/tenancy-backend/internal/logger"
	"github.com/yungbote/tenancy-backend/internal/repos"
	"github.com/yungbote/tenancy-backend/internal/types"
)

// Store calls never block past this; expiry surfaces as store_unavailable.
const storeTimeout = 5 * time.Second

type SubmitAgreementInput struct {
	BlockName   string `json:"block_name"`
	ApartmentNo int    `json:"apartment_no"`
}

type DecideAgreementInput struct {
	Status string `json:"status"`
	Role   string `json:"role"`
}

type AgreementService interface {
	Submit(ctx context.Context, email string, in SubmitAgreementInput) (*types.Agreement, error)
	Decide(ctx context.Context, rawID string, in DecideAgreementInput) error
	GetByID(ctx context.Context, rawID string) (*types.Agreement, error)
	GetCheckedByEmail(ctx context.Context, email string) (*types.Agreement, error)
	ListPending(ctx context.Context) ([]*types.Agreement, error)
}

type agreementService struct {
	db            *gorm.DB
	log           *logger.Logger
	agreementRepo repos.AgreementRepo
	userRepo      repos.UserRepo
}

func NewAgreementService(db *gorm.DB, log *logger.Logger, agreementRepo repos.AgreementRepo, userRepo repos.UserRepo) AgreementService {
	serviceLog := log.With("service", "AgreementService")
	return &agreementService{
		db:            db,
		log:           serviceLog,
		agreementRepo: agreementRepo,
		userRepo:      userRepo,
	}
}

// Submit creates a pending agreement for email. The caller can never choose
// the initial status. The two conflict checks give descriptive errors; the
// store's partial unique indexes hold the same invariants under concurrent
// submitters.
func (as *agreementService) Submit(ctx context.Context, email string, in SubmitAgreementInput) (*types.Agreement, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return nil, apierr.BadRequest("email required")
	}
	if strings.TrimSpace(in.BlockName) == "" {
		return nil, apierr.BadRequest("block_name required")
	}
	if in.ApartmentNo <= 0 {
		return nil, apierr.BadRequest("apartment_no must be positive")
	}

	ctx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()

	var created *types.Agreement
	if err := as.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		existing, err := as.agreementRepo.GetActiveByEmail(ctx, tx, email)
		if err != nil {
			return fmt.Errorf("Failed to check existing agreement: %w", err)
		}
		if existing != nil {
			return apierr.DuplicateAgreement("an agreement for this email is already pending or checked")
		}

		occupied, err := as.occupiedByMember(ctx, tx, in.BlockName, in.ApartmentNo)
		if err != nil {
			return err
		}
		if occupied {
			return apierr.ApartmentOccupied("this apartment already has a checked agreement")
		}

		agreement := &types.Agreement{
			ID:          uuid.New(),
			Email:       email,
			BlockName:   strings.TrimSpace(in.BlockName),
			ApartmentNo: in.ApartmentNo,
			Status:      types.AgreementStatusPending,
		}
		out, err := as.agreementRepo.Create(ctx, tx, agreement)
		if err != nil {
			return err
		}
		created = out
		return nil
	}); err != nil {
		as.log.Warn("Submit agreement failed", "email", email, "error", err)
		return nil, err
	}
	return created, nil
}

// occupiedByMember reports whether the apartment has a checked agreement
// whose owner currently holds the member role. A checked agreement with an
// unpromoted owner does not block: the role is the authority, the status
// alone is treated as possible drift.
func (as *agreementService) occupiedByMember(ctx context.Context, tx *gorm.DB, blockName string, apartmentNo int) (bool, error) {
	checked, err := as.agreementRepo.GetCheckedByApartment(ctx, tx, strings.TrimSpace(blockName), apartmentNo)
	if err != nil {
		return false, fmt.Errorf("Failed to check apartment occupancy: %w", err)
	}
	if checked == nil {
		return false, nil
	}
	owners, err := as.userRepo.GetByEmails(ctx, tx, []string{checked.Email})
	if err != nil {
		return false, fmt.Errorf("Failed to load agreement owner: %w", err)
	}
	if len(owners) == 0 || owners[0] == nil {
		return false, nil
	}
	return owners[0].Role == types.RoleMember, nil
}

// Decide applies an admin decision. Omitting status means approval: the
// source behavior defaults to checked. When the decision promotes the owner
// to member, the accepted date and the role change ride the same
// transaction as the status write.
func (as *agreementService) Decide(ctx context.Context, rawID string, in DecideAgreementInput) error {
	id, err := uuid.Parse(strings.TrimSpace(rawID))
	if err != nil {
		return apierr.InvalidID("agreement id is not a valid uuid")
	}

	status := strings.TrimSpace(in.Status)
	if status == "" {
		status = types.AgreementStatusChecked
	}
	if status == types.AgreementStatusPending {
		return apierr.BadRequest("an agreement cannot be moved back to pending")
	}

	role := strings.TrimSpace(in.Role)
	if role != "" && !types.ValidRole(role) {
		return apierr.BadRequest("unknown role")
	}

	ctx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()

	if err := as.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		agreement, err := as.agreementRepo.GetByID(ctx, tx, id)
		if err != nil {
			return fmt.Errorf("Failed to load agreement: %w", err)
		}
		if agreement == nil {
			return apierr.NotFound("agreement does not exist")
		}

		var acceptedDate *time.Time
		if role == types.RoleMember {
			now := time.Now().UTC()
			acceptedDate = &now
		}

		if err := as.agreementRepo.UpdateDecision(ctx, tx, id, status, acceptedDate); err != nil {
			return err
		}

		if role == types.RoleMember {
			if err := as.userRepo.UpdateRole(ctx, tx, agreement.Email, types.RoleMember); err != nil {
				return fmt.Errorf("Failed to promote agreement owner: %w", err)
			}
		}
		return nil
	}); err != nil {
		as.log.Warn("Decide agreement failed", "agreement_id", id.String(), "error", err)
		return err
	}
	return nil
}

func (as *agreementService) GetByID(ctx context.Context, rawID string) (*types.Agreement, error) {
	id, err := uuid.Parse(strings.TrimSpace(rawID))
	if err != nil {
		return nil, apierr.InvalidID("agreement id is not a valid uuid")
	}

	agreement, err := as.agreementRepo.GetByID(ctx, nil, id)
	if err != nil {
		return nil, fmt.Errorf("Failed to load agreement: %w", err)
	}
	if agreement == nil {
		return nil, apierr.NotFound("agreement does not exist")
	}
	return agreement, nil
}

func (as *agreementService) GetCheckedByEmail(ctx context.Context, email string) (*types.Agreement, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return nil, apierr.BadRequest("email required")
	}

	agreement, err := as.agreementRepo.GetCheckedByEmail(ctx, nil, email)
	if err != nil {
		return nil, fmt.Errorf("Failed to load checked agreement: %w", err)
	}
	if agreement == nil {
		return nil, apierr.NotFound("no checked agreement for this email")
	}
	return agreement, nil
}

func (as *agreementService) ListPending(ctx context.Context) ([]*types.Agreement, error) {
	results, err := as.agreementRepo.GetByStatus(ctx, nil, types.AgreementStatusPending)
	if err != nil {
		return nil, fmt.Errorf("Failed to list pending agreements: %w", err)
	}
	return results, nil
}
