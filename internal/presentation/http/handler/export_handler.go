package handler

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/trade-evolution/tradedocs-api/internal/application/service"
	"github.com/trade-evolution/tradedocs-api/internal/domain/enum"
	"github.com/trade-evolution/tradedocs-api/internal/presentation/http/dto/response"
)

// ExportHandler handles spreadsheet export HTTP requests
type ExportHandler struct {
	exportService *service.ExportService
}

// NewExportHandler creates a new export handler
func NewExportHandler(exportService *service.ExportService) *ExportHandler {
	return &ExportHandler{exportService: exportService}
}

// ExportProformas handles exporting proformas as an XLSX workbook
// @Summary Export Proformas
// @Description Download the caller's proformas as an XLSX workbook
// @Tags exports
// @Security BearerAuth
// @Param status query string false "Status filter"
// @Param company query string false "Issuing company filter"
// @Success 200 {file} binary
// @Router /proformas/export [get]
func (h *ExportHandler) ExportProformas(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var status *enum.ProformaStatus
	if s := c.Query("status"); s != "" {
		st := enum.ProformaStatus(s)
		if !st.Valid() {
			response.BadRequest(c, "Invalid status filter")
			return
		}
		status = &st
	}

	var company *enum.Company
	if co := c.Query("company"); co != "" {
		parsed := enum.Company(co)
		if !parsed.ValidForDocument() {
			response.BadRequest(c, "Invalid company filter")
			return
		}
		company = &parsed
	}

	workbook, err := h.exportService.ExportProformas(c.Request.Context(), &service.ExportProformasInput{
		UserID:  *userID,
		IsAdmin: IsAdmin(c),
		Status:  status,
		Company: company,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	defer workbook.Close()

	filename := service.ExportFilename(time.Now().Format("2006-01-02"))
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))

	if err := workbook.Write(c.Writer); err != nil {
		// Headers are already written; nothing sensible left to send.
		_ = c.Error(err)
	}
}
