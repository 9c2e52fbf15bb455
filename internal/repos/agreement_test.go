package repos

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/yungbote/tenancy-backend/internal/apierr"
)

func TestTranslateUniqueViolation(t *testing.T) {
	cases := []struct {
		name       string
		constraint string
		wantCode   string
	}{
		{"active owner index", "uq_agreement_active_owner", apierr.CodeDuplicateAgreement},
		{"checked apartment index", "uq_agreement_checked_apartment", apierr.CodeApartmentOccupied},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := fmt.Errorf("insert failed: %w", &pgconn.PgError{
				Code:           "23505",
				ConstraintName: tc.constraint,
			})
			out := translateUniqueViolation(in)

			var ae *apierr.Error
			if !errors.As(out, &ae) {
				t.Fatalf("expected api error, got %v", out)
			}
			if ae.Code != tc.wantCode {
				t.Fatalf("expected code %s, got %s", tc.wantCode, ae.Code)
			}
		})
	}
}

func TestTranslateUniqueViolationPassesThroughOtherErrors(t *testing.T) {
	in := errors.New("connection reset")
	if out := translateUniqueViolation(in); out != in {
		t.Fatalf("non-unique errors must pass through unchanged, got %v", out)
	}

	foreign := &pgconn.PgError{Code: "23505", ConstraintName: "some_other_index"}
	if out := translateUniqueViolation(foreign); out != error(foreign) {
		t.Fatalf("unknown constraints must pass through unchanged, got %v", out)
	}
}
