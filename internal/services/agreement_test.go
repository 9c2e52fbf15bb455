package services

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/yungbote/tenancy-backend/internal/apierr"
	"github.com/yungbote/tenancy-backend/internal/repos"
	"github.com/yungbote/tenancy-backend/internal/types"
)

func newAgreementFixture(t *testing.T) (AgreementService, repos.UserRepo, repos.AgreementRepo) {
	t.Helper()

	db := newTestDB(t)
	log := newTestLogger(t)
	userRepo := repos.NewUserRepo(db, log)
	agreementRepo := repos.NewAgreementRepo(db, log)
	return NewAgreementService(db, log, agreementRepo, userRepo), userRepo, agreementRepo
}

func seedUser(t *testing.T, userRepo repos.UserRepo, email, role string) {
	t.Helper()

	_, err := userRepo.Create(context.Background(), nil, []*types.User{{
		ID:    uuid.New(),
		Email: email,
		Role:  role,
	}})
	if err != nil {
		t.Fatalf("failed to seed user %s: %v", email, err)
	}
}

func assertCode(t *testing.T, err error, code string) {
	t.Helper()

	var ae *apierr.Error
	if !errors.As(err, &ae) {
		t.Fatalf("expected api error with code %s, got %v", code, err)
	}
	if ae.Code != code {
		t.Fatalf("expected code %s, got %s", code, ae.Code)
	}
}

func TestSubmitCreatesPending(t *testing.T) {
	svc, userRepo, _ := newAgreementFixture(t)
	seedUser(t, userRepo, "alice@example.com", types.RoleUser)

	agreement, err := svc.Submit(context.Background(), "Alice@Example.com", SubmitAgreementInput{
		BlockName:   "A",
		ApartmentNo: 3,
	})
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	if agreement.Status != types.AgreementStatusPending {
		t.Fatalf("submitted agreement must start pending, got %s", agreement.Status)
	}
	if agreement.Email != "alice@example.com" {
		t.Fatalf("email must be normalized, got %s", agreement.Email)
	}
	if agreement.AcceptedDate != nil {
		t.Fatalf("accepted date must be unset on submission")
	}
}

func TestSubmitRejectsSecondActiveAgreement(t *testing.T) {
	svc, userRepo, _ := newAgreementFixture(t)
	seedUser(t, userRepo, "alice@example.com", types.RoleUser)

	if _, err := svc.Submit(context.Background(), "alice@example.com", SubmitAgreementInput{BlockName: "A", ApartmentNo: 1}); err != nil {
		t.Fatalf("first submit failed: %v", err)
	}
	_, err := svc.Submit(context.Background(), "alice@example.com", SubmitAgreementInput{BlockName: "B", ApartmentNo: 2})
	assertCode(t, err, apierr.CodeDuplicateAgreement)
}

func TestSubmitRejectsOccupiedApartment(t *testing.T) {
	svc, userRepo, _ := newAgreementFixture(t)
	seedUser(t, userRepo, "alice@example.com", types.RoleUser)
	seedUser(t, userRepo, "bob@example.com", types.RoleUser)

	created, err := svc.Submit(context.Background(), "alice@example.com", SubmitAgreementInput{BlockName: "A", ApartmentNo: 1})
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	if err := svc.Decide(context.Background(), created.ID.String(), DecideAgreementInput{Role: types.RoleMember}); err != nil {
		t.Fatalf("decide failed: %v", err)
	}

	_, err = svc.Submit(context.Background(), "bob@example.com", SubmitAgreementInput{BlockName: "A", ApartmentNo: 1})
	assertCode(t, err, apierr.CodeApartmentOccupied)
}

func TestSubmitToleratesOccupancyDrift(t *testing.T) {
	svc, userRepo, agreementRepo := newAgreementFixture(t)
	seedUser(t, userRepo, "alice@example.com", types.RoleUser)
	seedUser(t, userRepo, "bob@example.com", types.RoleUser)

	// A checked agreement whose owner was never promoted to member must
	// not block the apartment.
	_, err := agreementRepo.Create(context.Background(), nil, &types.Agreement{
		ID:          uuid.New(),
		Email:       "alice@example.com",
		BlockName:   "A",
		ApartmentNo: 1,
		Status:      types.AgreementStatusChecked,
	})
	if err != nil {
		t.Fatalf("failed to seed checked agreement: %v", err)
	}

	if _, err := svc.Submit(context.Background(), "bob@example.com", SubmitAgreementInput{BlockName: "A", ApartmentNo: 1}); err != nil {
		t.Fatalf("drifted occupancy must not block submission: %v", err)
	}
}

func TestDecideDefaultsToCheckedAndPromotes(t *testing.T) {
	svc, userRepo, agreementRepo := newAgreementFixture(t)
	seedUser(t, userRepo, "alice@example.com", types.RoleUser)

	created, err := svc.Submit(context.Background(), "alice@example.com", SubmitAgreementInput{BlockName: "A", ApartmentNo: 1})
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}

	// Empty status means approval.
	if err := svc.Decide(context.Background(), created.ID.String(), DecideAgreementInput{Role: types.RoleMember}); err != nil {
		t.Fatalf("decide failed: %v", err)
	}

	stored, err := agreementRepo.GetByID(context.Background(), nil, created.ID)
	if err != nil || stored == nil {
		t.Fatalf("failed to reload agreement: %v", err)
	}
	if stored.Status != types.AgreementStatusChecked {
		t.Fatalf("expected status checked, got %s", stored.Status)
	}
	if stored.AcceptedDate == nil {
		t.Fatalf("promotion must set the accepted date")
	}

	users, err := userRepo.GetByEmails(context.Background(), nil, []string{"alice@example.com"})
	if err != nil || len(users) == 0 {
		t.Fatalf("failed to reload user: %v", err)
	}
	if users[0].Role != types.RoleMember {
		t.Fatalf("expected role member after promotion, got %s", users[0].Role)
	}
}

func TestDecideRejectionKeepsRole(t *testing.T) {
	svc, userRepo, agreementRepo := newAgreementFixture(t)
	seedUser(t, userRepo, "alice@example.com", types.RoleUser)

	created, err := svc.Submit(context.Background(), "alice@example.com", SubmitAgreementInput{BlockName: "A", ApartmentNo: 1})
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}

	if err := svc.Decide(context.Background(), created.ID.String(), DecideAgreementInput{Status: types.AgreementStatusRejected}); err != nil {
		t.Fatalf("decide failed: %v", err)
	}

	stored, err := agreementRepo.GetByID(context.Background(), nil, created.ID)
	if err != nil || stored == nil {
		t.Fatalf("failed to reload agreement: %v", err)
	}
	if stored.Status != types.AgreementStatusRejected {
		t.Fatalf("expected status rejected, got %s", stored.Status)
	}
	if stored.AcceptedDate != nil {
		t.Fatalf("rejection must not set the accepted date")
	}

	users, err := userRepo.GetByEmails(context.Background(), nil, []string{"alice@example.com"})
	if err != nil || len(users) == 0 {
		t.Fatalf("failed to reload user: %v", err)
	}
	if users[0].Role != types.RoleUser {
		t.Fatalf("rejection must not change the role, got %s", users[0].Role)
	}
}

func TestDecideCannotReturnToPending(t *testing.T) {
	svc, userRepo, _ := newAgreementFixture(t)
	seedUser(t, userRepo, "alice@example.com", types.RoleUser)

	created, err := svc.Submit(context.Background(), "alice@example.com", SubmitAgreementInput{BlockName: "A", ApartmentNo: 1})
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}

	err = svc.Decide(context.Background(), created.ID.String(), DecideAgreementInput{Status: types.AgreementStatusPending})
	assertCode(t, err, apierr.CodeBadRequest)
}

func TestDecideInvalidID(t *testing.T) {
	svc, _, _ := newAgreementFixture(t)

	err := svc.Decide(context.Background(), "not-a-uuid", DecideAgreementInput{})
	assertCode(t, err, apierr.CodeInvalidID)
}

func TestDecideUnknownAgreement(t *testing.T) {
	svc, _, _ := newAgreementFixture(t)

	err := svc.Decide(context.Background(), uuid.NewString(), DecideAgreementInput{})
	assertCode(t, err, apierr.CodeNotFound)
}

func TestGetCheckedByEmailNotFound(t *testing.T) {
	svc, _, _ := newAgreementFixture(t)

	_, err := svc.GetCheckedByEmail(context.Background(), "nobody@example.com")
	assertCode(t, err, apierr.CodeNotFound)
}

func TestListPendingOrdersByCreation(t *testing.T) {
	svc, userRepo, _ := newAgreementFixture(t)
	seedUser(t, userRepo, "alice@example.com", types.RoleUser)
	seedUser(t, userRepo, "bob@example.com", types.RoleUser)

	first, err := svc.Submit(context.Background(), "alice@example.com", SubmitAgreementInput{BlockName: "A", ApartmentNo: 1})
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	if _, err := svc.Submit(context.Background(), "bob@example.com", SubmitAgreementInput{BlockName: "A", ApartmentNo: 2}); err != nil {
		t.Fatalf("submit failed: %v", err)
	}

	pending, err := svc.ListPending(context.Background())
	if err != nil {
		t.Fatalf("list pending failed: %v", err)
	}
	if len(pending) != 2 {
		t.Fatalf("expected 2 pending agreements, got %d", len(pending))
	}
	if pending[0].ID != first.ID {
		t.Fatalf("pending queue must be ordered oldest first")
	}
}
