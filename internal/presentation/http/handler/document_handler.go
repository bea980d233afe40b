package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/trade-evolution/tradedocs-api/internal/application/service"
	"github.com/trade-evolution/tradedocs-api/internal/config"
	"github.com/trade-evolution/tradedocs-api/internal/presentation/http/dto/response"
)

// DocumentHandler handles derived document HTTP requests
type DocumentHandler struct {
	documentService *service.DocumentService
}

// NewDocumentHandler creates a new document handler
func NewDocumentHandler(documentService *service.DocumentService) *DocumentHandler {
	return &DocumentHandler{documentService: documentService}
}

// GetInvoice handles reading the invoice projection
// @Summary Get Invoice
// @Description Get the invoice derived from a proforma
// @Tags documents
// @Security BearerAuth
// @Produce json
// @Param id path string true "Proforma ID"
// @Success 200 {object} response.APIResponse
// @Router /proformas/{id}/invoice [get]
func (h *DocumentHandler) GetInvoice(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid proforma ID")
		return
	}

	data, err := h.documentService.GetInvoiceData(c.Request.Context(), *userID, id, IsAdmin(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	issuer, _ := config.CompanyFor(data.Company)
	response.OK(c, "Invoice retrieved successfully", gin.H{
		"invoice": data,
		"issuer":  issuer,
	})
}

// GetPackingList handles reading the packing list projection
// @Summary Get Packing List
// @Description Get the packing list derived from a proforma
// @Tags documents
// @Security BearerAuth
// @Produce json
// @Param id path string true "Proforma ID"
// @Success 200 {object} response.APIResponse
// @Router /proformas/{id}/packing-list [get]
func (h *DocumentHandler) GetPackingList(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid proforma ID")
		return
	}

	data, err := h.documentService.GetPackingListData(c.Request.Context(), *userID, id, IsAdmin(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	issuer, _ := config.CompanyFor(data.Company)
	response.OK(c, "Packing list retrieved successfully", gin.H{
		"packing_list": data,
		"issuer":       issuer,
	})
}

// SendDocumentRequest represents the send document request body
type SendDocumentRequest struct {
	Kind string `json:"kind" binding:"required"`
}

// Send handles emailing a document link to the linked client
// @Summary Send Document
// @Description Email the linked client a portal link to the invoice or packing list
// @Tags documents
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Proforma ID"
// @Param request body SendDocumentRequest true "Document kind"
// @Success 200 {object} response.APIResponse
// @Router /proformas/{id}/send [post]
func (h *DocumentHandler) Send(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid proforma ID")
		return
	}

	var req SendDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	if err := h.documentService.SendDocument(c.Request.Context(), *userID, id, IsAdmin(c), req.Kind); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Document sent successfully", gin.H{"kind": req.Kind})
}

// UploadBillOfLading handles uploading a bill of lading file
// @Summary Upload Bill of Lading
// @Description Upload a bill of lading file for a proforma
// @Tags documents
// @Security BearerAuth
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "Proforma ID"
// @Param file formData file true "Bill of lading file"
// @Success 200 {object} response.APIResponse
// @Router /proformas/{id}/bill-of-lading [post]
func (h *DocumentHandler) UploadBillOfLading(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid proforma ID")
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		response.BadRequest(c, "A file upload is required")
		return
	}

	src, err := fileHeader.Open()
	if err != nil {
		response.Error(c, err)
		return
	}
	defer src.Close()

	proforma, err := h.documentService.UploadBillOfLading(c.Request.Context(), *userID, id, IsAdmin(c), fileHeader.Filename, src)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Bill of lading uploaded successfully", proforma)
}

// DownloadBillOfLading handles serving the uploaded bill of lading file
// @Summary Download Bill of Lading
// @Description Download the uploaded bill of lading file
// @Tags documents
// @Security BearerAuth
// @Param id path string true "Proforma ID"
// @Success 200 {file} binary
// @Router /proformas/{id}/bill-of-lading [get]
func (h *DocumentHandler) DownloadBillOfLading(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid proforma ID")
		return
	}

	path, err := h.documentService.BillOfLadingPath(c.Request.Context(), *userID, id, IsAdmin(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	c.FileAttachment(path, "bill-of-lading.pdf")
}

// DeleteBillOfLading handles removing the uploaded bill of lading file
// @Summary Delete Bill of Lading
// @Description Remove the uploaded bill of lading file
// @Tags documents
// @Security BearerAuth
// @Param id path string true "Proforma ID"
// @Success 204
// @Router /proformas/{id}/bill-of-lading [delete]
func (h *DocumentHandler) DeleteBillOfLading(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid proforma ID")
		return
	}

	if err := h.documentService.DeleteBillOfLading(c.Request.Context(), *userID, id, IsAdmin(c)); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}
