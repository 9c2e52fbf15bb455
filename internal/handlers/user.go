package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/tenancy-backend/internal/apierr"
	"github.com/yungbote/tenancy-backend/internal/requestdata"
	"github.com/yungbote/tenancy-backend/internal/services"
)

type UserHandler struct {
	userService services.UserService
}

func NewUserHandler(userService services.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// EnsureUser is idempotent: the auth middleware already provisioned the
// record, so this returns whatever is stored for the caller.
func (uh *UserHandler) EnsureUser(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	if rd == nil {
		RespondError(c, apierr.Unauthenticated("missing credential"))
		return
	}
	user, err := uh.userService.GetByEmail(c.Request.Context(), rd.Email)
	if err != nil {
		RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user})
}

func (uh *UserHandler) GetMe(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	if rd == nil {
		RespondError(c, apierr.Unauthenticated("missing credential"))
		return
	}
	me, err := uh.userService.GetByEmail(c.Request.Context(), rd.Email)
	if err != nil {
		RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"me": me})
}

func (uh *UserHandler) UpdateRole(c *gin.Context) {
	var body struct {
		Role string `json:"role"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		RespondError(c, apierr.BadRequest("invalid request body"))
		return
	}
	if err := uh.userService.UpdateRole(c.Request.Context(), c.Param("email"), body.Role); err != nil {
		RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"updated": true})
}
