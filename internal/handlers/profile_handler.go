package handlers

import (
	"errors"
	"net/http"

	"dormhub/internal/middleware"
	"dormhub/internal/services"
	apperrors "dormhub/pkg/errors"
	"dormhub/pkg/response"

	"github.com/gin-gonic/gin"
)

type ProfileHandler struct {
	service *services.ProfileService
}

func NewProfileHandler(service *services.ProfileService) *ProfileHandler {
	return &ProfileHandler{service: service}
}

// Show 获取个人资料
func (h *ProfileHandler) Show(c *gin.Context) {
	response.Success(c, h.service.GetProfile(middleware.CurrentUser(c)))
}

// Upload 上传头像，校验失败返回400
func (h *ProfileHandler) Upload(c *gin.Context) {
	fh, err := c.FormFile("profile_picture")
	if err != nil && !errors.Is(err, http.ErrMissingFile) {
		response.BadRequest(c, "The profile picture field must be a file.")
		return
	}

	url, err := h.service.UploadPicture(middleware.CurrentUser(c), fh)
	if err != nil {
		var verr *apperrors.ValidationError
		if errors.As(err, &verr) {
			c.JSON(http.StatusBadRequest, response.ValidationBody{
				Message: verr.Error(),
				Errors:  verr.Fields,
			})
			return
		}
		response.FromError(c, err, "User not found")
		return
	}

	response.Success(c, gin.H{
		"message": "Profile picture uploaded successfully",
		"url":     url,
	})
}
