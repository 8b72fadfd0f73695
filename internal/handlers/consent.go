// internal/handlers/consent.go
package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/DBN92/solve-it-neat/internal/i18n"
	"github.com/DBN92/solve-it-neat/internal/models"
	"github.com/DBN92/solve-it-neat/internal/services"
	"github.com/DBN92/solve-it-neat/internal/store"
	"github.com/DBN92/solve-it-neat/internal/utils"
)

type ConsentHandler struct {
	consentService *services.ConsentService
}

func NewConsentHandler(consentService *services.ConsentService) *ConsentHandler {
	return &ConsentHandler{
		consentService: consentService,
	}
}

// consentView is the record plus the derived effective status, which
// the record alone cannot express for revoked consents.
type consentView struct {
	models.ConsentRequest
	EffectiveStatus string `json:"effective_status"`
}

func viewOf(rec *models.ConsentRequest) consentView {
	return consentView{ConsentRequest: *rec, EffectiveStatus: rec.EffectiveStatus()}
}

func viewsOf(recs []models.ConsentRequest) []consentView {
	views := make([]consentView, 0, len(recs))
	for i := range recs {
		views = append(views, viewOf(&recs[i]))
	}
	return views
}

// GET /consents
func (h *ConsentHandler) List(c *gin.Context) {
	consents, err := h.consentService.List()
	if err != nil {
		utils.InternalErrorResponse(c, "")
		return
	}

	params := utils.GetPaginationParams(c)
	filtered := consents
	if params.Status != "" {
		filtered = make([]models.ConsentRequest, 0, len(consents))
		for i := range consents {
			if consents[i].EffectiveStatus() == params.Status {
				filtered = append(filtered, consents[i])
			}
		}
	}

	from, to := utils.PageWindow(len(filtered), params)
	result := utils.CreatePaginationResult(viewsOf(filtered[from:to]), int64(len(filtered)), params)
	utils.PaginatedResponse(c, result)
}

// GET /consents/:id
func (h *ConsentHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "", err.Error())
		return
	}

	rec, err := h.consentService.Get(id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			utils.NotFoundResponse(c, "consent")
			return
		}
		utils.InternalErrorResponse(c, "")
		return
	}

	utils.SuccessResponse(c, viewOf(rec))
}

// GET /consents/:id/history
func (h *ConsentHandler) History(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "", err.Error())
		return
	}

	history, err := h.consentService.History(id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			utils.NotFoundResponse(c, "consent")
			return
		}
		utils.InternalErrorResponse(c, "")
		return
	}

	utils.SuccessResponse(c, history)
}

// POST /consents
func (h *ConsentHandler) Create(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	var req services.CreateConsentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	rec, err := h.consentService.Create(&req)
	if err != nil {
		utils.BadRequestResponse(c, err.Error(), nil)
		return
	}

	utils.CreatedResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyConsentCreated),
		"consent": viewOf(rec),
	})
}

// POST /consents/:id/approve
func (h *ConsentHandler) Approve(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "", err.Error())
		return
	}

	rec, err := h.consentService.Approve(id)
	if err != nil {
		h.decisionError(c, lang, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyConsentApproved),
		"consent": viewOf(rec),
	})
}

// POST /consents/:id/reject
func (h *ConsentHandler) Reject(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "", err.Error())
		return
	}

	var req services.DecisionRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
			return
		}
	}

	rec, err := h.consentService.Reject(id, req.Reason)
	if err != nil {
		h.decisionError(c, lang, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyConsentRejected),
		"consent": viewOf(rec),
	})
}

// POST /consents/:id/revoke
func (h *ConsentHandler) Revoke(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "", err.Error())
		return
	}

	var req services.DecisionRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
			return
		}
	}

	rec, err := h.consentService.Revoke(id, req.Reason)
	if err != nil {
		h.decisionError(c, lang, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyConsentRevoked),
		"consent": viewOf(rec),
	})
}

func (h *ConsentHandler) decisionError(c *gin.Context, lang string, err error) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		utils.NotFoundResponse(c, "consent")
	case errors.Is(err, services.ErrConsentNotPending):
		utils.ConflictResponse(c, i18n.T(lang, i18n.KeyConsentNotPending))
	case errors.Is(err, services.ErrConsentNotApproved):
		utils.ConflictResponse(c, i18n.T(lang, i18n.KeyConsentNotApproved))
	case errors.Is(err, services.ErrConsentAlreadyRevoked):
		utils.ConflictResponse(c, i18n.T(lang, i18n.KeyConsentAlreadyRevoked))
	default:
		utils.InternalErrorResponse(c, "")
	}
}
