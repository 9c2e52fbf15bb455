package repos

import (
	"context"

	"gorm.io/gorm"

	"github.com/yungbote/tenancy-backend/internal/logger"
	"github.com/yungbote/tenancy-backend/internal/types"
)

type PaymentRepo interface {
	Create(ctx context.Context, tx *gorm.DB, payment *types.Payment) (*types.Payment, error)
	GetByEmails(ctx context.Context, tx *gorm.DB, emails []string) ([]*types.Payment, error)
}

type paymentRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewPaymentRepo(db *gorm.DB, baseLog *logger.Logger) PaymentRepo {
	repoLog := baseLog.With("repo", "PaymentRepo")
	return &paymentRepo{db: db, log: repoLog}
}

func (pr *paymentRepo) Create(ctx context.Context, tx *gorm.DB, payment *types.Payment) (*types.Payment, error) {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}

	if err := transaction.WithContext(ctx).Create(payment).Error; err != nil {
		return nil, err
	}
	return payment, nil
}

func (pr *paymentRepo) GetByEmails(ctx context.Context, tx *gorm.DB, emails []string) ([]*types.Payment, error) {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}

	var results []*types.Payment
	if len(emails) == 0 {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("email IN ?", emails).
		Order("created_at DESC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
