package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/tenancy-backend/internal/apierr"
	"github.com/yungbote/tenancy-backend/internal/services"
)

type CouponHandler struct {
	couponService services.CouponService
}

func NewCouponHandler(couponService services.CouponService) *CouponHandler {
	return &CouponHandler{couponService: couponService}
}

func (ch *CouponHandler) Create(c *gin.Context) {
	var body struct {
		Code        string `json:"code"`
		Percent     int    `json:"percent"`
		Description string `json:"description"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		RespondError(c, apierr.BadRequest("invalid request body"))
		return
	}
	coupon, err := ch.couponService.Create(c.Request.Context(), body.Code, body.Percent, body.Description)
	if err != nil {
		RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"coupon": coupon})
}

func (ch *CouponHandler) List(c *gin.Context) {
	coupons, err := ch.couponService.List(c.Request.Context())
	if err != nil {
		RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"coupons": coupons})
}

func (ch *CouponHandler) Delete(c *gin.Context) {
	if err := ch.couponService.Delete(c.Request.Context(), c.Param("id")); err != nil {
		RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": true})
}
