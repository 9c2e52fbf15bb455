package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/tenancy-backend/internal/apierr"
	"github.com/yungbote/tenancy-backend/internal/requestdata"
	"github.com/yungbote/tenancy-backend/internal/services"
)

type PaymentHandler struct {
	paymentService services.PaymentService
}

func NewPaymentHandler(paymentService services.PaymentService) *PaymentHandler {
	return &PaymentHandler{paymentService: paymentService}
}

func (ph *PaymentHandler) CreateIntent(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	if rd == nil {
		RespondError(c, apierr.Unauthenticated("missing credential"))
		return
	}

	var body services.CreateIntentInput
	if err := c.ShouldBindJSON(&body); err != nil && c.Request.ContentLength > 0 {
		RespondError(c, apierr.BadRequest("invalid request body"))
		return
	}

	result, err := ph.paymentService.CreateIntent(c.Request.Context(), rd.Email, body)
	if err != nil {
		RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, result)
}

func (ph *PaymentHandler) List(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	if rd == nil {
		RespondError(c, apierr.Unauthenticated("missing credential"))
		return
	}

	payments, err := ph.paymentService.ListByEmail(c.Request.Context(), rd.Email)
	if err != nil {
		RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"payments": payments})
}
