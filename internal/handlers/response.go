package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/tenancy-backend/internal/apierr"
)

// RespondError renders the error taxonomy as {"error":{"code","message"}}.
// Anything that is not an *apierr.Error is a store failure; those keep a
// generic message so infrastructure detail never reaches the client.
func RespondError(c *gin.Context, err error) {
	ae := apierr.From(err)
	if ae == nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": gin.H{"code": apierr.CodeStoreUnavailable, "message": "internal error"},
		})
		return
	}
	message := ae.Error()
	if ae.Status >= http.StatusInternalServerError {
		message = "internal error"
	}
	c.JSON(ae.Status, gin.H{
		"error": gin.H{"code": ae.Code, "message": message},
	})
}
