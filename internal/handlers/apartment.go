package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/tenancy-backend/internal/apierr"
	"github.com/yungbote/tenancy-backend/internal/services"
	"github.com/yungbote/tenancy-backend/internal/types"
)

type ApartmentHandler struct {
	apartmentService services.ApartmentService
}

func NewApartmentHandler(apartmentService services.ApartmentService) *ApartmentHandler {
	return &ApartmentHandler{apartmentService: apartmentService}
}

type apartmentBody struct {
	BlockName   string `json:"block_name"`
	ApartmentNo int    `json:"apartment_no"`
	Floor       int    `json:"floor"`
	Bedrooms    int    `json:"bedrooms"`
	RentCents   int64  `json:"rent_cents"`
	ImageURL    string `json:"image_url"`
}

func (ah *ApartmentHandler) Create(c *gin.Context) {
	var body apartmentBody
	if err := c.ShouldBindJSON(&body); err != nil {
		RespondError(c, apierr.BadRequest("invalid request body"))
		return
	}
	apartment, err := ah.apartmentService.Create(c.Request.Context(), &types.Apartment{
		BlockName:   body.BlockName,
		ApartmentNo: body.ApartmentNo,
		Floor:       body.Floor,
		Bedrooms:    body.Bedrooms,
		RentCents:   body.RentCents,
		ImageURL:    body.ImageURL,
	})
	if err != nil {
		RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"apartment": apartment})
}

func (ah *ApartmentHandler) List(c *gin.Context) {
	apartments, err := ah.apartmentService.List(c.Request.Context())
	if err != nil {
		RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"apartments": apartments})
}

func (ah *ApartmentHandler) Update(c *gin.Context) {
	var body apartmentBody
	if err := c.ShouldBindJSON(&body); err != nil {
		RespondError(c, apierr.BadRequest("invalid request body"))
		return
	}
	err := ah.apartmentService.Update(c.Request.Context(), c.Param("id"), &types.Apartment{
		BlockName:   body.BlockName,
		ApartmentNo: body.ApartmentNo,
		Floor:       body.Floor,
		Bedrooms:    body.Bedrooms,
		RentCents:   body.RentCents,
		ImageURL:    body.ImageURL,
	})
	if err != nil {
		RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"updated": true})
}

func (ah *ApartmentHandler) Delete(c *gin.Context) {
	if err := ah.apartmentService.Delete(c.Request.Context(), c.Param("id")); err != nil {
		RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": true})
}

func (ah *ApartmentHandler) Stats(c *gin.Context) {
	stats, err := ah.apartmentService.Stats(c.Request.Context())
	if err != nil {
		RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}
