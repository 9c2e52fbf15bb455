package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/tenancy-backend/internal/apierr"
	"github.com/yungbote/tenancy-backend/internal/logger"
	"github.com/yungbote/tenancy-backend/internal/requestdata"
	"github.com/yungbote/tenancy-backend/internal/services"
)

type AuthMiddleware struct {
	log         *logger.Logger
	verifier    services.IdentityVerifier
	userService services.UserService
}

func NewAuthMiddleware(log *logger.Logger, verifier services.IdentityVerifier, userService services.UserService) *AuthMiddleware {
	middlewareLogger := log.With("Middleware", "AuthMiddleware")
	return &AuthMiddleware{log: middlewareLogger, verifier: verifier, userService: userService}
}

// RequireAuth verifies the caller's credential and stashes the resolved
// principal on the request context. A missing credential is 401; a
// credential that is present but fails verification is 403. The two are
// kept distinct so clients can tell "sign in" apart from "signed in but
// rejected".
func (am *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := extractToken(c)
		if tokenString == "" {
			abortWith(c, apierr.Unauthenticated("missing credential"))
			return
		}

		principal, err := am.verifier.Verify(c.Request.Context(), tokenString)
		if err != nil {
			am.log.Debug("Credential rejected", "error", err)
			abortWith(c, apierr.Forbidden("credential rejected"))
			return
		}

		user, err := am.userService.EnsureUser(c.Request.Context(), principal)
		if err != nil {
			abortWith(c, apierr.From(err))
			return
		}

		rd := &requestdata.RequestData{
			TokenString: tokenString,
			Subject:     principal.Subject,
			Email:       user.Email,
			Role:        user.Role,
		}
		ctx := requestdata.WithRequestData(c.Request.Context(), rd)
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

// Require gates a route on an exact role. Roles are flat, an admin does
// not pass a member gate.
func (am *AuthMiddleware) Require(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		rd := requestdata.GetRequestData(c.Request.Context())
		if rd == nil {
			abortWith(c, apierr.Unauthenticated("missing credential"))
			return
		}
		if rd.Role != role {
			abortWith(c, apierr.Forbidden(role+" role required"))
			return
		}
		c.Next()
	}
}

func extractToken(c *gin.Context) string {
	if qToken := c.Query("token"); qToken != "" {
		return qToken
	}
	authHeader := c.GetHeader("Authorization")
	if len(authHeader) > 7 && strings.EqualFold(authHeader[:7], "Bearer ") {
		return strings.TrimSpace(authHeader[7:])
	}
	return ""
}

func abortWith(c *gin.Context, err *apierr.Error) {
	status := http.StatusInternalServerError
	code := apierr.CodeStoreUnavailable
	message := "internal error"
	if err != nil {
		status = err.Status
		code = err.Code
		message = err.Error()
	}
	c.AbortWithStatusJSON(status, gin.H{
		"error": gin.H{"code": code, "message": message},
	})
}
