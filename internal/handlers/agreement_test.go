package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yungbote/tenancy-backend/internal/apierr"
	"github.com/yungbote/tenancy-backend/internal/services"
	"github.com/yungbote/tenancy-backend/internal/types"
)

type stubAgreementService struct {
	checked *types.Agreement
	pending []*types.Agreement
}

func (ss *stubAgreementService) Submit(ctx context.Context, email string, in services.SubmitAgreementInput) (*types.Agreement, error) {
	return nil, apierr.BadRequest("not under test")
}

func (ss *stubAgreementService) Decide(ctx context.Context, rawID string, in services.DecideAgreementInput) error {
	return nil
}

func (ss *stubAgreementService) GetByID(ctx context.Context, rawID string) (*types.Agreement, error) {
	return nil, apierr.NotFound("agreement does not exist")
}

func (ss *stubAgreementService) GetCheckedByEmail(ctx context.Context, email string) (*types.Agreement, error) {
	if ss.checked == nil {
		return nil, apierr.NotFound("no checked agreement for this email")
	}
	return ss.checked, nil
}

func (ss *stubAgreementService) ListPending(ctx context.Context) ([]*types.Agreement, error) {
	return ss.pending, nil
}

func newAgreementRouter(stub *stubAgreementService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	handler := NewAgreementHandler(stub)
	router := gin.New()
	router.GET("/agreements", handler.List)
	router.GET("/agreements/:id", handler.GetByID)
	return router
}

func TestListWithEmailReturnsCheckedAgreement(t *testing.T) {
	checked := &types.Agreement{
		ID:          uuid.New(),
		Email:       "alice@example.com",
		BlockName:   "A",
		ApartmentNo: 1,
		Status:      types.AgreementStatusChecked,
	}
	router := newAgreementRouter(&stubAgreementService{checked: checked})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/agreements?email=alice@example.com", nil)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var body struct {
		Agreement *types.Agreement `json:"agreement"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to parse body: %v", err)
	}
	if body.Agreement == nil || body.Agreement.ID != checked.ID {
		t.Fatalf("expected the checked agreement in the response")
	}
}

func TestListWithEmailAndNoCheckedAgreementIs404(t *testing.T) {
	router := newAgreementRouter(&stubAgreementService{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/agreements?email=ghost@example.com", nil)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
}

func TestListWithoutEmailReturnsPendingQueue(t *testing.T) {
	pending := []*types.Agreement{
		{ID: uuid.New(), Email: "a@example.com", Status: types.AgreementStatusPending},
		{ID: uuid.New(), Email: "b@example.com", Status: types.AgreementStatusPending},
	}
	router := newAgreementRouter(&stubAgreementService{pending: pending})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/agreements", nil)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var body struct {
		Agreements []*types.Agreement `json:"agreements"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to parse body: %v", err)
	}
	if len(body.Agreements) != 2 {
		t.Fatalf("expected 2 pending agreements, got %d", len(body.Agreements))
	}
}

func TestGetByIDNotFoundEnvelope(t *testing.T) {
	router := newAgreementRouter(&stubAgreementService{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/agreements/"+uuid.NewString(), nil)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
	var envelope struct {
		Error struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("failed to parse error envelope: %v", err)
	}
	if envelope.Error.Code != apierr.CodeNotFound {
		t.Fatalf("expected code not_found, got %s", envelope.Error.Code)
	}
}
