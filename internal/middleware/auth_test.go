package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yungbote/tenancy-backend/internal/logger"
	"github.com/yungbote/tenancy-backend/internal/services"
	"github.com/yungbote/tenancy-backend/internal/types"
)

type stubVerifier struct {
	principal *services.Principal
	err       error
}

func (sv *stubVerifier) Verify(ctx context.Context, rawToken string) (*services.Principal, error) {
	if sv.err != nil {
		return nil, sv.err
	}
	return sv.principal, nil
}

type stubUserService struct {
	role string
}

func (su *stubUserService) EnsureUser(ctx context.Context, principal *services.Principal) (*types.User, error) {
	return &types.User{ID: uuid.New(), Email: principal.Email, Role: su.role}, nil
}

func (su *stubUserService) GetByEmail(ctx context.Context, email string) (*types.User, error) {
	return &types.User{Email: email, Role: su.role}, nil
}

func (su *stubUserService) ResolveRole(ctx context.Context, email string) (string, error) {
	return su.role, nil
}

func (su *stubUserService) UpdateRole(ctx context.Context, email, role string) error {
	return nil
}

func newAuthRouter(t *testing.T, verifier services.IdentityVerifier, role string) *gin.Engine {
	t.Helper()

	gin.SetMode(gin.TestMode)
	log, err := logger.New("production")
	if err != nil {
		t.Fatalf("failed to init logger: %v", err)
	}

	auth := NewAuthMiddleware(log, verifier, &stubUserService{role: role})
	router := gin.New()
	router.GET("/member-only", auth.RequireAuth(), auth.Require(types.RoleMember), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	return router
}

func errorCode(t *testing.T, body []byte) string {
	t.Helper()

	var envelope struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		t.Fatalf("failed to parse error envelope: %v", err)
	}
	return envelope.Error.Code
}

func TestRequireAuthMissingCredential(t *testing.T) {
	router := newAuthRouter(t, &stubVerifier{}, types.RoleMember)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/member-only", nil)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("missing credential must be 401, got %d", w.Code)
	}
	if code := errorCode(t, w.Body.Bytes()); code != "unauthenticated" {
		t.Fatalf("expected code unauthenticated, got %s", code)
	}
}

func TestRequireAuthRejectedCredential(t *testing.T) {
	router := newAuthRouter(t, &stubVerifier{err: errors.New("bad signature")}, types.RoleMember)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/member-only", nil)
	req.Header.Set("Authorization", "Bearer bogus")
	router.ServeHTTP(w, req)

	if w.Code != http.StatusForbidden {
		t.Fatalf("rejected credential must be 403, got %d", w.Code)
	}
	if code := errorCode(t, w.Body.Bytes()); code != "forbidden" {
		t.Fatalf("expected code forbidden, got %s", code)
	}
}

func TestRequireRoleIsExactMatch(t *testing.T) {
	verifier := &stubVerifier{principal: &services.Principal{Subject: "sub", Email: "admin@example.com"}}
	// Admin does not imply member; the gate matches the role string exactly.
	router := newAuthRouter(t, verifier, types.RoleAdmin)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/member-only", nil)
	req.Header.Set("Authorization", "Bearer valid")
	router.ServeHTTP(w, req)

	if w.Code != http.StatusForbidden {
		t.Fatalf("admin must not pass a member gate, got %d", w.Code)
	}
}

func TestRequireRoleAllowsMatch(t *testing.T) {
	verifier := &stubVerifier{principal: &services.Principal{Subject: "sub", Email: "member@example.com"}}
	router := newAuthRouter(t, verifier, types.RoleMember)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/member-only", nil)
	req.Header.Set("Authorization", "Bearer valid")
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("member must pass the member gate, got %d", w.Code)
	}
}
