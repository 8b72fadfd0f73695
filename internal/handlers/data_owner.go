// internal/handlers/data_owner.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/DBN92/solve-it-neat/internal/services"
	"github.com/DBN92/solve-it-neat/internal/store"
	"github.com/DBN92/solve-it-neat/internal/utils"
)

// DataOwnerHandler serves the titular-facing portal, where a data owner
// looks up every request addressed to their CPF and decides on it.
type DataOwnerHandler struct {
	consentService *services.ConsentService
}

func NewDataOwnerHandler(consentService *services.ConsentService) *DataOwnerHandler {
	return &DataOwnerHandler{
		consentService: consentService,
	}
}

// GET /data-owner/consents?cpf=123.456.789-00
func (h *DataOwnerHandler) Lookup(c *gin.Context) {
	cpf := c.Query("cpf")
	if len(store.DigitsOnly(cpf)) != 11 {
		utils.BadRequestResponse(c, "", gin.H{"cpf": "CPF must have 11 digits"})
		return
	}

	consents, err := h.consentService.ListByOwnerKey(cpf)
	if err != nil {
		utils.InternalErrorResponse(c, "")
		return
	}

	utils.SuccessResponse(c, viewsOf(consents))
}
