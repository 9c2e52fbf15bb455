package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type Payment struct {
	ID               uuid.UUID      `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Email            string         `gorm:"not null;index;column:email" json:"email"`
	AmountCents      int64          `gorm:"not null;column:amount_cents" json:"amount_cents"`
	Currency         string         `gorm:"not null;column:currency" json:"currency"`
	Status           string         `gorm:"not null;column:status" json:"status"`
	ProviderIntentID string         `gorm:"column:provider_intent_id" json:"provider_intent_id"`
	ClientSecret     string         `gorm:"column:client_secret" json:"-"`
	ProviderPayload  datatypes.JSON `gorm:"column:provider_payload;type:jsonb" json:"-"`
	CreatedAt        time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt        time.Time      `gorm:"not null;default:now()" json:"updated_at"`
}

func (Payment) TableName() string { return "payment" }
