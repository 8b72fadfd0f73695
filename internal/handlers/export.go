// internal/handlers/export.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/DBN92/solve-it-neat/internal/i18n"
	"github.com/DBN92/solve-it-neat/internal/services"
	"github.com/DBN92/solve-it-neat/internal/utils"
)

type ExportHandler struct {
	exportService *services.ExportService
}

func NewExportHandler(exportService *services.ExportService) *ExportHandler {
	return &ExportHandler{
		exportService: exportService,
	}
}

// GET /export?archive=true
func (h *ExportHandler) Export(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	result, err := h.exportService.Export(c.Query("archive") == "true")
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyExportCompleted),
		"result":  result,
	})
}

// POST /import
func (h *ExportHandler) Import(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	var req services.ImportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	result, err := h.exportService.Import(&req)
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyImportCompleted),
		"result":  result,
	})
}
