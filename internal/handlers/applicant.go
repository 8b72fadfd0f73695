// internal/handlers/applicant.go
package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/DBN92/solve-it-neat/internal/i18n"
	"github.com/DBN92/solve-it-neat/internal/services"
	"github.com/DBN92/solve-it-neat/internal/store"
	"github.com/DBN92/solve-it-neat/internal/utils"
)

type ApplicantHandler struct {
	applicantService *services.ApplicantService
}

func NewApplicantHandler(applicantService *services.ApplicantService) *ApplicantHandler {
	return &ApplicantHandler{
		applicantService: applicantService,
	}
}

// GET /applicants
func (h *ApplicantHandler) List(c *gin.Context) {
	// Management view: deactivated applicants stay visible here.
	applicants, err := h.applicantService.List()
	if err != nil {
		utils.InternalErrorResponse(c, "")
		return
	}

	utils.SuccessResponse(c, applicants)
}

// GET /applicants/selectable
//
// Feeds the requester selector on the new-request form, so it is gated
// on the new-request section rather than applicant management.
func (h *ApplicantHandler) Selectable(c *gin.Context) {
	applicants, err := h.applicantService.ListSelectable()
	if err != nil {
		utils.InternalErrorResponse(c, "")
		return
	}

	utils.SuccessResponse(c, applicants)
}

// GET /applicants/:id
func (h *ApplicantHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "", err.Error())
		return
	}

	ap, err := h.applicantService.Get(id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			utils.NotFoundResponse(c, "applicant")
			return
		}
		utils.InternalErrorResponse(c, "")
		return
	}

	utils.SuccessResponse(c, ap)
}

// POST /applicants
func (h *ApplicantHandler) Create(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	var req services.ApplicantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	ap, err := h.applicantService.Create(&req)
	if err != nil {
		utils.BadRequestResponse(c, err.Error(), nil)
		return
	}

	utils.CreatedResponse(c, gin.H{
		"message":   i18n.T(lang, i18n.KeyApplicantCreated),
		"applicant": ap,
	})
}

// PUT /applicants/:id
func (h *ApplicantHandler) Update(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "", err.Error())
		return
	}

	var req services.ApplicantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	ap, err := h.applicantService.Update(id, &req)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			utils.NotFoundResponse(c, "applicant")
			return
		}
		utils.BadRequestResponse(c, err.Error(), nil)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message":   i18n.T(lang, i18n.KeyApplicantUpdated),
		"applicant": ap,
	})
}

// POST /applicants/:id/deactivate
func (h *ApplicantHandler) Deactivate(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "", err.Error())
		return
	}

	ap, err := h.applicantService.Deactivate(id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			utils.NotFoundResponse(c, "applicant")
			return
		}
		utils.InternalErrorResponse(c, "")
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message":   i18n.T(lang, i18n.KeyApplicantDeactivated),
		"applicant": ap,
	})
}

// POST /applicants/:id/reactivate
func (h *ApplicantHandler) Reactivate(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "", err.Error())
		return
	}

	ap, err := h.applicantService.Reactivate(id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			utils.NotFoundResponse(c, "applicant")
			return
		}
		utils.InternalErrorResponse(c, "")
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message":   i18n.T(lang, i18n.KeyApplicantUpdated),
		"applicant": ap,
	})
}
