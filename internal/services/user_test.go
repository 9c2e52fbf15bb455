package services

import (
	"context"
	"testing"

	"github.com/yungbote/tenancy-backend/internal/apierr"
	"github.com/yungbote/tenancy-backend/internal/repos"
	"github.com/yungbote/tenancy-backend/internal/types"
)

func newUserFixture(t *testing.T) (UserService, repos.UserRepo) {
	t.Helper()

	db := newTestDB(t)
	log := newTestLogger(t)
	userRepo := repos.NewUserRepo(db, log)
	return NewUserService(db, log, userRepo, nil), userRepo
}

func TestEnsureUserIsIdempotent(t *testing.T) {
	svc, _ := newUserFixture(t)

	principal := &Principal{Subject: "sub-1", Email: "Alice@Example.com", FirstName: "Alice", LastName: "Smith"}

	first, err := svc.EnsureUser(context.Background(), principal)
	if err != nil {
		t.Fatalf("first ensure failed: %v", err)
	}
	if first.Email != "alice@example.com" {
		t.Fatalf("email must be normalized, got %s", first.Email)
	}
	if first.Role != types.RoleUser {
		t.Fatalf("new users start as user, got %s", first.Role)
	}

	second, err := svc.EnsureUser(context.Background(), principal)
	if err != nil {
		t.Fatalf("second ensure failed: %v", err)
	}
	if second.ID != first.ID {
		t.Fatalf("ensure must return the existing record, got a new id")
	}
}

func TestEnsureUserKeepsStoredRole(t *testing.T) {
	svc, userRepo := newUserFixture(t)

	principal := &Principal{Subject: "sub-1", Email: "alice@example.com"}
	if _, err := svc.EnsureUser(context.Background(), principal); err != nil {
		t.Fatalf("ensure failed: %v", err)
	}
	if err := userRepo.UpdateRole(context.Background(), nil, "alice@example.com", types.RoleMember); err != nil {
		t.Fatalf("role update failed: %v", err)
	}

	again, err := svc.EnsureUser(context.Background(), principal)
	if err != nil {
		t.Fatalf("ensure failed: %v", err)
	}
	if again.Role != types.RoleMember {
		t.Fatalf("re-provisioning must not reset the stored role, got %s", again.Role)
	}
}

func TestResolveRoleUnknownEmail(t *testing.T) {
	svc, _ := newUserFixture(t)

	role, err := svc.ResolveRole(context.Background(), "ghost@example.com")
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	if role != "" {
		t.Fatalf("unknown email must resolve to empty role, got %q", role)
	}
}

func TestUpdateRoleValidation(t *testing.T) {
	svc, _ := newUserFixture(t)

	err := svc.UpdateRole(context.Background(), "alice@example.com", "landlord")
	assertCode(t, err, apierr.CodeBadRequest)

	err = svc.UpdateRole(context.Background(), "alice@example.com", types.RoleAdmin)
	assertCode(t, err, apierr.CodeNotFound)
}
