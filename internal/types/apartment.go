package types

import (
	"time"

	"github.com/google/uuid"
)

type Apartment struct {
	ID          uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	BlockName   string    `gorm:"not null;uniqueIndex:uq_apartment_block_no;column:block_name" json:"block_name"`
	ApartmentNo int       `gorm:"not null;uniqueIndex:uq_apartment_block_no;column:apartment_no" json:"apartment_no"`
	Floor       int       `gorm:"column:floor" json:"floor"`
	Bedrooms    int       `gorm:"column:bedrooms" json:"bedrooms"`
	RentCents   int64     `gorm:"not null;column:rent_cents" json:"rent_cents"`
	ImageURL    string    `gorm:"column:image_url" json:"image_url"`
	CreatedAt   time.Time `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt   time.Time `gorm:"not null;default:now()" json:"updated_at"`
}

func (Apartment) TableName() string { return "apartment" }
