package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"buildlink/internal/apperrors"
	"buildlink/internal/middleware"
	"buildlink/internal/models"
	"buildlink/internal/services"
	"buildlink/internal/services/dto"
)

type ProfileHandler struct {
	*BaseHandler
	profileService services.ProfileService
}

func NewProfileHandler(base *BaseHandler, profileService services.ProfileService) *ProfileHandler {
	return &ProfileHandler{
		BaseHandler:    base,
		profileService: profileService,
	}
}

func (h *ProfileHandler) GetMe(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	profile, err := h.profileService.GetProfile(userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, profile)
}

func (h *ProfileHandler) GetByID(c *gin.Context) {
	profile, err := h.profileService.GetProfile(c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, profile)
}

func (h *ProfileHandler) UpdateMe(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateWorkerProfileRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	profile, err := h.profileService.UpdateWorkerProfile(userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, profile)
}

func (h *ProfileHandler) CompleteProfile(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.CompleteProfileRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	// Only admins may write the verification status directly.
	if req.IDVerificationStatus != nil {
		role, ok := middleware.GetUserRole(c)
		if !ok || role != models.UserRoleAdmin {
			h.HandleServiceError(c, apperrors.NewPermissionError("only admins may set id_verification_status"))
			return
		}
	}

	profile, err := h.profileService.CompleteProfile(userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, profile)
}

func (h *ProfileHandler) ListPortfolio(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	entries, err := h.profileService.ListPortfolio(userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"portfolio": entries})
}

// VerifyCompany is the admin decision on a company's verification review.
func (h *ProfileHandler) VerifyCompany(c *gin.Context) {
	var req dto.VerifyCompanyRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	profile, err := h.profileService.VerifyCompany(c.Param("id"), req.Action)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, profile)
}
