package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/tenancy-backend/internal/apierr"
	"github.com/yungbote/tenancy-backend/internal/services"
)

type AnnouncementHandler struct {
	announcementService services.AnnouncementService
}

func NewAnnouncementHandler(announcementService services.AnnouncementService) *AnnouncementHandler {
	return &AnnouncementHandler{announcementService: announcementService}
}

func (nh *AnnouncementHandler) Create(c *gin.Context) {
	var body struct {
		Title string `json:"title"`
		Body  string `json:"body"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		RespondError(c, apierr.BadRequest("invalid request body"))
		return
	}
	announcement, err := nh.announcementService.Create(c.Request.Context(), body.Title, body.Body)
	if err != nil {
		RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"announcement": announcement})
}

func (nh *AnnouncementHandler) List(c *gin.Context) {
	announcements, err := nh.announcementService.List(c.Request.Context())
	if err != nil {
		RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"announcements": announcements})
}

func (nh *AnnouncementHandler) Delete(c *gin.Context) {
	if err := nh.announcementService.Delete(c.Request.Context(), c.Param("id")); err != nil {
		RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": true})
}
