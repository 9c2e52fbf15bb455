package repos

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"github.com/yungbote/tenancy-backend/internal/apierr"
	"github.com/yungbote/tenancy-backend/internal/logger"
	"github.com/yungbote/tenancy-backend/internal/types"
)

type AgreementRepo interface {
	Create(ctx context.Context, tx *gorm.DB, agreement *types.Agreement) (*types.Agreement, error)
	GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Agreement, error)
	GetActiveByEmail(ctx context.Context, tx *gorm.DB, email string) (*types.Agreement, error)
	GetCheckedByEmail(ctx context.Context, tx *gorm.DB, email string) (*types.Agreement, error)
	GetCheckedByApartment(ctx context.Context, tx *gorm.DB, blockName string, apartmentNo int) (*types.Agreement, error)
	GetByStatus(ctx context.Context, tx *gorm.DB, status string) ([]*types.Agreement, error)
	UpdateDecision(ctx context.Context, tx *gorm.DB, id uuid.UUID, status string, acceptedDate *time.Time) error
}

type agreementRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewAgreementRepo(db *gorm.DB, baseLog *logger.Logger) AgreementRepo {
	repoLog := baseLog.With("repo", "AgreementRepo")
	return &agreementRepo{db: db, log: repoLog}
}

func (ar *agreementRepo) Create(ctx context.Context, tx *gorm.DB, agreement *types.Agreement) (*types.Agreement, error) {
	transaction := tx
	if transaction == nil {
		transaction = ar.db
	}

	if err := transaction.WithContext(ctx).Create(agreement).Error; err != nil {
		return nil, translateUniqueViolation(err)
	}
	return agreement, nil
}

func (ar *agreementRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Agreement, error) {
	transaction := tx
	if transaction == nil {
		transaction = ar.db
	}

	var result types.Agreement
	err := transaction.WithContext(ctx).
		Where("id = ?", id).
		First(&result).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (ar *agreementRepo) GetActiveByEmail(ctx context.Context, tx *gorm.DB, email string) (*types.Agreement, error) {
	return ar.getOne(ctx, tx, "email = ? AND status IN ?", email, []string{types.AgreementStatusPending, types.AgreementStatusChecked})
}

func (ar *agreementRepo) GetCheckedByEmail(ctx context.Context, tx *gorm.DB, email string) (*types.Agreement, error) {
	return ar.getOne(ctx, tx, "email = ? AND status = ?", email, types.AgreementStatusChecked)
}

func (ar *agreementRepo) GetCheckedByApartment(ctx context.Context, tx *gorm.DB, blockName string, apartmentNo int) (*types.Agreement, error) {
	return ar.getOne(ctx, tx, "block_name = ? AND apartment_no = ? AND status = ?", blockName, apartmentNo, types.AgreementStatusChecked)
}

func (ar *agreementRepo) getOne(ctx context.Context, tx *gorm.DB, query string, args ...interface{}) (*types.Agreement, error) {
	transaction := tx
	if transaction == nil {
		transaction = ar.db
	}

	var result types.Agreement
	err := transaction.WithContext(ctx).
		Where(query, args...).
		First(&result).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (ar *agreementRepo) GetByStatus(ctx context.Context, tx *gorm.DB, status string) ([]*types.Agreement, error) {
	transaction := tx
	if transaction == nil {
		transaction = ar.db
	}

	var results []*types.Agreement
	if err := transaction.WithContext(ctx).
		Where("status = ?", status).
		Order("created_at ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (ar *agreementRepo) UpdateDecision(ctx context.Context, tx *gorm.DB, id uuid.UUID, status string, acceptedDate *time.Time) error {
	transaction := tx
	if transaction == nil {
		transaction = ar.db
	}

	fields := map[string]interface{}{"status": status}
	if acceptedDate != nil {
		fields["accepted_date"] = *acceptedDate
	}

	res := transaction.WithContext(ctx).
		Model(&types.Agreement{}).
		Where("id = ?", id).
		Updates(fields)
	if res.Error != nil {
		return translateUniqueViolation(res.Error)
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// translateUniqueViolation maps the partial unique indexes backing the
// agreement invariants onto the error taxonomy, so a submitter losing the
// read-then-write race still gets the same 400 as one caught by the
// application-level check.
func translateUniqueViolation(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || strings.TrimSpace(pgErr.Code) != "23505" {
		return err
	}
	switch pgErr.ConstraintName {
	case "uq_agreement_active_owner":
		return apierr.DuplicateAgreement("an agreement for this email is already pending or checked")
	case "uq_agreement_checked_apartment":
		return apierr.ApartmentOccupied("this apartment already has a checked agreement")
	default:
		return err
	}
}
