package handlers

import (
	"net/http"

	"landmarket_backend/internal/services"
	"landmarket_backend/internal/services/dto"
	"landmarket_backend/internal/validator"
	"landmarket_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

type ProfileHandler struct {
	*BaseHandler
	profileService services.ProfileService
}

func NewProfileHandler(v *validator.Validator, profileService services.ProfileService) *ProfileHandler {
	return &ProfileHandler{
		BaseHandler: NewBaseHandler(v),
		profileService: profileService,
	}
}

// readImage достает файл аватара из multipart-формы. Отсутствие файла -
// не ошибка: профиль без картинки допустим.
func (h *ProfileHandler) readImage(c *gin.Context) (*services.ImageUpload, bool) {
	fileHeader, err := c.FormFile("profile_image")
	if err != nil {
		if err == http.ErrMissingFile || c.ContentType() != "multipart/form-data" {
			return nil, true
		}
		apperrors.HandleError(c, apperrors.NewBadRequestError("Invalid profile_image upload: "+err.Error()))
		return nil, false
	}

	file, err := fileHeader.Open()
	if err != nil {
		apperrors.HandleError(c, apperrors.NewBadRequestError("Cannot read profile_image: "+err.Error()))
		return nil, false
	}
	// gin закроет файл по завершении запроса
	return &services.ImageUpload{Filename: fileHeader.Filename, Reader: file}, true
}

// CreateProfile - POST /profile/:id
func (h *ProfileHandler) CreateProfile(c *gin.Context) {
	callerID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}
	accountID := c.Param("id")
	if callerID != accountID {
		h.HandleServiceError(c, apperrors.ErrNotProfileOwner)
		return
	}

	var req dto.CreateProfileRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	image, ok := h.readImage(c)
	if !ok {
		return
	}

	db := h.GetDB(c)
	profile, err := h.profileService.CreateProfile(c.Request.Context(), db, accountID, &req, image)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Profile created",
		"data":    profile,
	})
}

// GetProfile - GET /profile/:id (чтение доступно любому вошедшему)
func (h *ProfileHandler) GetProfile(c *gin.Context) {
	db := h.GetDB(c)
	profile, err := h.profileService.GetProfile(db, c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    profile,
	})
}

// UpdateProfile - PUT /profile/:id
func (h *ProfileHandler) UpdateProfile(c *gin.Context) {
	callerID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateProfileRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	image, ok := h.readImage(c)
	if !ok {
		return
	}

	db := h.GetDB(c)
	profile, err := h.profileService.UpdateProfile(c.Request.Context(), db, callerID, c.Param("id"), &req, image)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Profile updated",
		"data":    profile,
	})
}

// DeleteProfile - DELETE /profile/:id
func (h *ProfileHandler) DeleteProfile(c *gin.Context) {
	callerID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	db := h.GetDB(c)
	if err := h.profileService.DeleteProfile(c.Request.Context(), db, callerID, c.Param("id")); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Profile deleted",
	})
}

// --- Социальные ссылки ---

// ListSocialLinks - GET /social_account/:id
func (h *ProfileHandler) ListSocialLinks(c *gin.Context) {
	db := h.GetDB(c)
	links, err := h.profileService.ListSocialLinks(db, c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	// Пустой список клиенты ждут как success=false
	if len(links) == 0 {
		apperrors.HandleError(c, apperrors.NewBadRequestError("User haven't added a social account"))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    links,
	})
}

// AddSocialLink - POST /social_account/:id
func (h *ProfileHandler) AddSocialLink(c *gin.Context) {
	callerID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.SocialLinkRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	db := h.GetDB(c)
	link, err := h.profileService.AddSocialLink(db, callerID, c.Param("id"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Social link added",
		"data":    link,
	})
}

// UpdateSocialLink - PUT /social_account/:id
func (h *ProfileHandler) UpdateSocialLink(c *gin.Context) {
	callerID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateSocialLinkRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	db := h.GetDB(c)
	link, err := h.profileService.UpdateSocialLink(db, callerID, c.Param("id"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Social link updated",
		"data":    link,
	})
}

// DeleteSocialLink - DELETE /social_account/:id
func (h *ProfileHandler) DeleteSocialLink(c *gin.Context) {
	callerID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.DeleteSocialLinkRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	db := h.GetDB(c)
	if err := h.profileService.DeleteSocialLink(db, callerID, c.Param("id"), &req); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Social link deleted",
	})
}
