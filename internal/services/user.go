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

type UserService interface {
	// EnsureUser creates the user record on first sign-in. Re-creation is
	// a no-op; the existing record wins.
	EnsureUser(ctx context.Context, principal *Principal) (*types.User, error)
	GetByEmail(ctx context.Context, email string) (*types.User, error)
	// ResolveRole returns the stored role for email, or "" when no user
	// record exists. A missing record is not an error here; the guard
	// decides what it means.
	ResolveRole(ctx context.Context, email string) (string, error)
	UpdateRole(ctx context.Context, email, role string) error
}

type userService struct {
	db            *gorm.DB
	log           *logger.Logger
	userRepo      repos.UserRepo
	avatarService AvatarService
}

func NewUserService(db *gorm.DB, log *logger.Logger, userRepo repos.UserRepo, avatarService AvatarService) UserService {
	serviceLog := log.With("service", "UserService")
	return &userService{
		db:            db,
		log:           serviceLog,
		userRepo:      userRepo,
		avatarService: avatarService,
	}
}

func (us *userService) EnsureUser(ctx context.Context, principal *Principal) (*types.User, error) {
	if principal == nil || strings.TrimSpace(principal.Email) == "" {
		return nil, apierr.BadRequest("verified principal required")
	}
	email := strings.ToLower(strings.TrimSpace(principal.Email))

	ctx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()

	var out *types.User
	if err := us.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		existing, err := us.userRepo.GetByEmails(ctx, tx, []string{email})
		if err != nil {
			return fmt.Errorf("Failed to check existing user: %w", err)
		}
		if len(existing) > 0 && existing[0] != nil {
			out = existing[0]
			return nil
		}

		user := &types.User{
			ID:        uuid.New(),
			Email:     email,
			FirstName: principal.FirstName,
			LastName:  principal.LastName,
			Role:      types.RoleUser,
		}
		if us.avatarService != nil {
			if err := us.avatarService.CreateUserAvatar(ctx, user); err != nil {
				// Avatar generation must not block provisioning.
				us.log.Warn("Failed to generate user avatar (ignored)", "email", email, "error", err)
			}
		}
		created, err := us.userRepo.Create(ctx, tx, []*types.User{user})
		if err != nil {
			return fmt.Errorf("Failed to create user: %w", err)
		}
		out = created[0]
		return nil
	}); err != nil {
		us.log.Warn("EnsureUser failed", "email", email, "error", err)
		return nil, err
	}
	return out, nil
}

func (us *userService) GetByEmail(ctx context.Context, email string) (*types.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return nil, apierr.BadRequest("email required")
	}

	users, err := us.userRepo.GetByEmails(ctx, nil, []string{email})
	if err != nil {
		return nil, fmt.Errorf("Failed to load user: %w", err)
	}
	if len(users) == 0 || users[0] == nil {
		return nil, apierr.NotFound("user does not exist")
	}
	return users[0], nil
}

func (us *userService) ResolveRole(ctx context.Context, email string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return "", nil
	}

	users, err := us.userRepo.GetByEmails(ctx, nil, []string{email})
	if err != nil {
		return "", fmt.Errorf("Failed to resolve role: %w", err)
	}
	if len(users) == 0 || users[0] == nil {
		return "", nil
	}
	return users[0].Role, nil
}

func (us *userService) UpdateRole(ctx context.Context, email, role string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return apierr.BadRequest("email required")
	}
	if !types.ValidRole(role) {
		return apierr.BadRequest("unknown role")
	}

	ctx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()

	if err := us.userRepo.UpdateRole(ctx, nil, email, role); err != nil {
		if err == gorm.ErrRecordNotFound {
			return apierr.NotFound("user does not exist")
		}
		us.log.Warn("UpdateRole failed", "email", email, "error", err)
		return fmt.Errorf("Failed to update role: %w", err)
	}
	return nil
}
