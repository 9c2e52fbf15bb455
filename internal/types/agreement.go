package types

import (
	"time"

	"github.com/google/uuid"
)

const (
	AgreementStatusPending  = "pending"
	AgreementStatusChecked  = "checked"
	AgreementStatusRejected = "rejected"
)

// AgreementActive reports whether a status still binds the owner: at most
// one agreement per email may be pending or checked at any instant.
func AgreementActive(status string) bool {
	return status == AgreementStatusPending || status == AgreementStatusChecked
}

type Agreement struct {
	ID           uuid.UUID  `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Email        string     `gorm:"not null;index;column:email" json:"email"`
	BlockName    string     `gorm:"not null;column:block_name" json:"block_name"`
	ApartmentNo  int        `gorm:"not null;column:apartment_no" json:"apartment_no"`
	Status       string     `gorm:"not null;default:pending;index;column:status" json:"status"`
	AcceptedDate *time.Time `gorm:"column:accepted_date" json:"accepted_date,omitempty"`
	CreatedAt    time.Time  `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt    time.Time  `gorm:"not null;default:now()" json:"updated_at"`
}

func (Agreement) TableName() string { return "agreement" }
