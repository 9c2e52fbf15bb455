package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/tenancy-backend/internal/apierr"
	"github.com/yungbote/tenancy-backend/internal/requestdata"
	"github.com/yungbote/tenancy-backend/internal/services"
)

type AgreementHandler struct {
	agreementService services.AgreementService
}

func NewAgreementHandler(agreementService services.AgreementService) *AgreementHandler {
	return &AgreementHandler{agreementService: agreementService}
}

// List serves two shapes behind one route. With ?email= it returns that
// email's single checked agreement (404 when there is none); without it,
// the pending review queue.
func (ah *AgreementHandler) List(c *gin.Context) {
	email := strings.TrimSpace(c.Query("email"))
	if email != "" {
		agreement, err := ah.agreementService.GetCheckedByEmail(c.Request.Context(), email)
		if err != nil {
			RespondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"agreement": agreement})
		return
	}

	pending, err := ah.agreementService.ListPending(c.Request.Context())
	if err != nil {
		RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"agreements": pending})
}

func (ah *AgreementHandler) GetByID(c *gin.Context) {
	agreement, err := ah.agreementService.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"agreement": agreement})
}

func (ah *AgreementHandler) Submit(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	if rd == nil {
		RespondError(c, apierr.Unauthenticated("missing credential"))
		return
	}

	var body services.SubmitAgreementInput
	if err := c.ShouldBindJSON(&body); err != nil {
		RespondError(c, apierr.BadRequest("invalid request body"))
		return
	}

	agreement, err := ah.agreementService.Submit(c.Request.Context(), rd.Email, body)
	if err != nil {
		RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"agreement": agreement})
}

func (ah *AgreementHandler) Decide(c *gin.Context) {
	var body services.DecideAgreementInput
	if err := c.ShouldBindJSON(&body); err != nil {
		RespondError(c, apierr.BadRequest("invalid request body"))
		return
	}

	if err := ah.agreementService.Decide(c.Request.Context(), c.Param("id"), body); err != nil {
		RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"updated": true})
}
