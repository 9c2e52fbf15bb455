package types

import (
	"time"

	"github.com/google/uuid"
)

const (
	RoleUser   = "user"
	RoleMember = "member"
	RoleAdmin  = "admin"
)

// ValidRole reports whether s is one of the three capability tags. Roles
// are disjoint; there is no ordering between them.
func ValidRole(s string) bool {
	switch s {
	case RoleUser, RoleMember, RoleAdmin:
		return true
	}
	return false
}

type User struct {
	ID              uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Email           string    `gorm:"uniqueIndex;not null;column:email" json:"email"`
	FirstName       string    `gorm:"column:first_name" json:"first_name"`
	LastName        string    `gorm:"column:last_name" json:"last_name"`
	Role            string    `gorm:"not null;default:user;column:role" json:"role"`
	AvatarMediaKey  string    `gorm:"column:avatar_media_key" json:"avatar_media_key"`
	AvatarURL       string    `gorm:"column:avatar_url" json:"avatar_url"`
	AvatarColor     string    `gorm:"column:avatar_color" json:"avatar_color"`
	CreatedAt       time.Time `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt       time.Time `gorm:"not null;default:now()" json:"updated_at"`
}

func (User) TableName() string { return "user" }
