package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/paymentintent"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/yungbote/tenancy-backend/internal/apierr"
	"github.com/yungbote/tenancy-backend/internal/logger"
	"github.com/yungbote/tenancy-backend/internal/repos"
	"github.com/yungbote/tenancy-backend/internal/types"
)

type CreateIntentInput struct {
	CouponCode string `json:"coupon_code"`
}

type PaymentIntentResult struct {
	PaymentID    string `json:"payment_id"`
	ClientSecret string `json:"client_secret"`
	AmountCents  int64  `json:"amount_cents"`
	Currency     string `json:"currency"`
}

// PaymentService creates rent payment intents for members. The amount is
// always derived server side from the member's checked agreement, never
// taken from the request.
type PaymentService interface {
	CreateIntent(ctx context.Context, email string, input CreateIntentInput) (*PaymentIntentResult, error)
	ListByEmail(ctx context.Context, email string) ([]*types.Payment, error)
}

type paymentService struct {
	db            *gorm.DB
	log           *logger.Logger
	paymentRepo   repos.PaymentRepo
	agreementRepo repos.AgreementRepo
	apartmentRepo repos.ApartmentRepo
	couponRepo    repos.CouponRepo
}

func NewPaymentService(
	db *gorm.DB,
	log *logger.Logger,
	stripeKey string,
	paymentRepo repos.PaymentRepo,
	agreementRepo repos.AgreementRepo,
	apartmentRepo repos.ApartmentRepo,
	couponRepo repos.CouponRepo,
) PaymentService {
	serviceLog := log.With("service", "PaymentService")
	if strings.TrimSpace(stripeKey) != "" {
		stripe.Key = stripeKey
	} else {
		serviceLog.Warn("Stripe key is empty, payment intents will fail")
	}
	return &paymentService{
		db:            db,
		log:           serviceLog,
		paymentRepo:   paymentRepo,
		agreementRepo: agreementRepo,
		apartmentRepo: apartmentRepo,
		couponRepo:    couponRepo,
	}
}

func (ps *paymentService) CreateIntent(ctx context.Context, email string, input CreateIntentInput) (*PaymentIntentResult, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return nil, apierr.BadRequest("email required")
	}

	ctx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()

	agreement, err := ps.agreementRepo.GetCheckedByEmail(ctx, nil, email)
	if err != nil {
		return nil, fmt.Errorf("Failed to load checked agreement: %w", err)
	}
	if agreement == nil {
		return nil, apierr.NotFound("no checked agreement for this account")
	}

	apartment, err := ps.apartmentRepo.GetByBlockAndNo(ctx, nil, agreement.BlockName, agreement.ApartmentNo)
	if err != nil {
		return nil, fmt.Errorf("Failed to load apartment: %w", err)
	}
	if apartment == nil || apartment.RentCents <= 0 {
		return nil, apierr.BadRequest("apartment has no rent configured")
	}

	amount := apartment.RentCents
	couponCode := strings.ToUpper(strings.TrimSpace(input.CouponCode))
	if couponCode != "" {
		coupon, err := ps.couponRepo.GetByCode(ctx, nil, couponCode)
		if err != nil {
			return nil, fmt.Errorf("Failed to load coupon: %w", err)
		}
		if coupon == nil {
			return nil, apierr.BadRequest("unknown coupon code")
		}
		amount = amount - (amount*int64(coupon.Percent))/100
		if amount < 0 {
			amount = 0
		}
	}

	params := &stripe.PaymentIntentParams{
		Params:   stripe.Params{Context: ctx},
		Amount:   stripe.Int64(amount),
		Currency: stripe.String(string(stripe.CurrencyUSD)),
	}
	params.AddMetadata("email", email)
	params.AddMetadata("block_name", agreement.BlockName)
	params.AddMetadata("apartment_no", fmt.Sprintf("%d", agreement.ApartmentNo))
	if couponCode != "" {
		params.AddMetadata("coupon_code", couponCode)
	}

	intent, err := paymentintent.New(params)
	if err != nil {
		ps.log.Warn("Stripe intent creation failed", "email", email, "error", err)
		return nil, fmt.Errorf("Failed to create payment intent: %w", err)
	}

	payload, err := json.Marshal(intent)
	if err != nil {
		payload = nil
	}

	payment := &types.Payment{
		Email:            email,
		AmountCents:      amount,
		Currency:         string(stripe.CurrencyUSD),
		Status:           string(intent.Status),
		ProviderIntentID: intent.ID,
		ClientSecret:     intent.ClientSecret,
		ProviderPayload:  datatypes.JSON(payload),
	}
	if _, err := ps.paymentRepo.Create(ctx, nil, payment); err != nil {
		return nil, fmt.Errorf("Failed to record payment: %w", err)
	}

	return &PaymentIntentResult{
		PaymentID:    payment.ID.String(),
		ClientSecret: intent.ClientSecret,
		AmountCents:  amount,
		Currency:     payment.Currency,
	}, nil
}

func (ps *paymentService) ListByEmail(ctx context.Context, email string) ([]*types.Payment, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return nil, apierr.BadRequest("email required")
	}

	results, err := ps.paymentRepo.GetByEmails(ctx, nil, []string{email})
	if err != nil {
		return nil, fmt.Errorf("Failed to list payments: %w", err)
	}
	return results, nil
}
