package handler

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/trade-evolution/tradedocs-api/internal/application/service"
	"github.com/trade-evolution/tradedocs-api/internal/domain/entity"
	"github.com/trade-evolution/tradedocs-api/internal/domain/enum"
	"github.com/trade-evolution/tradedocs-api/internal/presentation/http/dto/response"
	"github.com/trade-evolution/tradedocs-api/pkg/pagination"
)

// ProformaHandler handles proforma-related HTTP requests
type ProformaHandler struct {
	proformaService *service.ProformaService
}

// NewProformaHandler creates a new proforma handler
func NewProformaHandler(proformaService *service.ProformaService) *ProformaHandler {
	return &ProformaHandler{proformaService: proformaService}
}

// ProformaItemRequest represents a line item in the request
type ProformaItemRequest struct {
	ProductID   *string `json:"product_id"`
	ProductName string  `json:"product_name"`
	Description *string `json:"description"`
	Quantity    float64 `json:"quantity" binding:"required"`
	Unit        string  `json:"unit"`
	UnitPrice   float64 `json:"unit_price"`
}

// ProformaRequest represents the create/update proforma request body.
// The proforma number is never accepted from the client.
type ProformaRequest struct {
	ClientID              *string               `json:"client_id"`
	Company               string                `json:"company" binding:"required"`
	Status                string                `json:"status"`
	ClientName            string                `json:"client_name"`
	ClientAddress         *string               `json:"client_address"`
	ClientTaxID           *string               `json:"client_tax_id"`
	ShipToName            *string               `json:"ship_to_name"`
	ShipToAddress         *string               `json:"ship_to_address"`
	ShipToTaxID           *string               `json:"ship_to_tax_id"`
	PortAtOrigin          *string               `json:"port_at_origin"`
	PortOfArrival         *string               `json:"port_of_arrival"`
	FinalDestination      *string               `json:"final_destination"`
	Reference             *string               `json:"reference"`
	PaymentTerms          *string               `json:"payment_terms"`
	Delivery              *string               `json:"delivery"`
	Vessel                *string               `json:"vessel"`
	Containers            *string               `json:"containers"`
	ContainerNo           *string               `json:"container_no"`
	Currency              string                `json:"currency"`
	TaxAmount             float64               `json:"tax_amount"`
	Notes                 *string               `json:"notes"`
	CustomerSignatoryName *string               `json:"customer_signatory_name"`
	IssuedDate            string                `json:"issued_date" binding:"required"`
	ExpiryDate            *string               `json:"expiry_date"`
	Items                 []ProformaItemRequest `json:"items" binding:"required,min=1"`
}

// parseItems converts request items into service inputs
func parseItems(reqItems []ProformaItemRequest) ([]service.ProformaItemInput, error) {
	items := make([]service.ProformaItemInput, len(reqItems))
	for i, item := range reqItems {
		var productID *uuid.UUID
		if item.ProductID != nil && *item.ProductID != "" {
			parsed, err := uuid.Parse(*item.ProductID)
			if err != nil {
				return nil, fmt.Errorf("invalid product ID %q", *item.ProductID)
			}
			productID = &parsed
		}
		items[i] = service.ProformaItemInput{
			ProductID:   productID,
			ProductName: item.ProductName,
			Description: item.Description,
			Quantity:    item.Quantity,
			Unit:        item.Unit,
			UnitPrice:   item.UnitPrice,
		}
	}
	return items, nil
}

// parseOptionalDate parses an optional YYYY-MM-DD string
func parseOptionalDate(s *string) (*time.Time, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	parsed, err := time.Parse("2006-01-02", *s)
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}

// List handles listing proformas
// @Summary List Proformas
// @Description Get all proformas with pagination and filtering
// @Tags proformas
// @Security BearerAuth
// @Produce json
// @Param page query int false "Page number"
// @Param per_page query int false "Items per page"
// @Param search query string false "Search term"
// @Param status query string false "Status filter"
// @Param company query string false "Issuing company filter"
// @Param client_id query string false "Client filter"
// @Success 200 {object} response.APIResponse
// @Router /proformas [get]
func (h *ProformaHandler) List(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	isAdmin := IsAdmin(c)

	page := 1
	perPage := 15
	if p := c.Query("page"); p != "" {
		if parsed, err := parsePositiveInt(p); err == nil {
			page = parsed
		}
	}
	if pp := c.Query("per_page"); pp != "" {
		if parsed, err := parsePositiveInt(pp); err == nil {
			perPage = parsed
		}
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

	var clientID *uuid.UUID
	if ci := c.Query("client_id"); ci != "" {
		parsed, err := uuid.Parse(ci)
		if err != nil {
			response.BadRequest(c, "Invalid client ID")
			return
		}
		clientID = &parsed
	}

	result, err := h.proformaService.ListProformas(c.Request.Context(), &service.ListProformasInput{
		UserID:  *userID,
		IsAdmin: isAdmin,
		Pagination: &pagination.PaginationParams{
			Page:    page,
			PerPage: perPage,
		},
		Search:   c.Query("search"),
		Status:   status,
		Company:  company,
		ClientID: clientID,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Proformas retrieved successfully", result)
}

// Get handles getting a single proforma
// @Summary Get Proforma
// @Description Get a proforma by ID with items and payments
// @Tags proformas
// @Security BearerAuth
// @Produce json
// @Param id path string true "Proforma ID"
// @Success 200 {object} response.APIResponse
// @Router /proformas/{id} [get]
func (h *ProformaHandler) Get(c *gin.Context) {
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

	proforma, err := h.proformaService.GetProforma(c.Request.Context(), *userID, id, IsAdmin(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Proforma retrieved successfully", proforma)
}

// Create handles creating a proforma
// @Summary Create Proforma
// @Description Create a new proforma with a server-assigned number
// @Tags proformas
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body ProformaRequest true "Proforma data"
// @Success 201 {object} response.APIResponse
// @Router /proformas [post]
func (h *ProformaHandler) Create(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var req ProformaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	issuedDate, err := time.Parse("2006-01-02", req.IssuedDate)
	if err != nil {
		response.BadRequest(c, "Invalid issued date format. Use YYYY-MM-DD")
		return
	}
	expiryDate, err := parseOptionalDate(req.ExpiryDate)
	if err != nil {
		response.BadRequest(c, "Invalid expiry date format. Use YYYY-MM-DD")
		return
	}

	var clientID *uuid.UUID
	if req.ClientID != nil && *req.ClientID != "" {
		parsed, err := uuid.Parse(*req.ClientID)
		if err != nil {
			response.BadRequest(c, "Invalid client ID")
			return
		}
		clientID = &parsed
	}

	items, err := parseItems(req.Items)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	proforma, err := h.proformaService.CreateProforma(c.Request.Context(), &service.CreateProformaInput{
		UserID:                *userID,
		ClientID:              clientID,
		Company:               enum.Company(req.Company),
		Status:                enum.ProformaStatus(req.Status),
		ClientName:            req.ClientName,
		ClientAddress:         req.ClientAddress,
		ClientTaxID:           req.ClientTaxID,
		ShipToName:            req.ShipToName,
		ShipToAddress:         req.ShipToAddress,
		ShipToTaxID:           req.ShipToTaxID,
		PortAtOrigin:          req.PortAtOrigin,
		PortOfArrival:         req.PortOfArrival,
		FinalDestination:      req.FinalDestination,
		Reference:             req.Reference,
		PaymentTerms:          req.PaymentTerms,
		Delivery:              req.Delivery,
		Vessel:                req.Vessel,
		Containers:            req.Containers,
		ContainerNo:           req.ContainerNo,
		Currency:              req.Currency,
		TaxAmount:             req.TaxAmount,
		Notes:                 req.Notes,
		CustomerSignatoryName: req.CustomerSignatoryName,
		IssuedDate:            issuedDate,
		ExpiryDate:            expiryDate,
		Items:                 items,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Proforma created successfully", proforma)
}

// Update handles updating a proforma
// @Summary Update Proforma
// @Description Update an existing proforma, replacing its line items
// @Tags proformas
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Proforma ID"
// @Param request body ProformaRequest true "Proforma data"
// @Success 200 {object} response.APIResponse
// @Router /proformas/{id} [put]
func (h *ProformaHandler) Update(c *gin.Context) {
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

	var req ProformaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	issuedDate, err := time.Parse("2006-01-02", req.IssuedDate)
	if err != nil {
		response.BadRequest(c, "Invalid issued date format. Use YYYY-MM-DD")
		return
	}
	expiryDate, err := parseOptionalDate(req.ExpiryDate)
	if err != nil {
		response.BadRequest(c, "Invalid expiry date format. Use YYYY-MM-DD")
		return
	}

	var clientID *uuid.UUID
	if req.ClientID != nil && *req.ClientID != "" {
		parsed, err := uuid.Parse(*req.ClientID)
		if err != nil {
			response.BadRequest(c, "Invalid client ID")
			return
		}
		clientID = &parsed
	}

	items, err := parseItems(req.Items)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	proforma, err := h.proformaService.UpdateProforma(c.Request.Context(), &service.UpdateProformaInput{
		UserID:                *userID,
		ID:                    id,
		IsAdmin:               IsAdmin(c),
		ClientID:              clientID,
		ClientName:            req.ClientName,
		ClientAddress:         req.ClientAddress,
		ClientTaxID:           req.ClientTaxID,
		ShipToName:            req.ShipToName,
		ShipToAddress:         req.ShipToAddress,
		ShipToTaxID:           req.ShipToTaxID,
		PortAtOrigin:          req.PortAtOrigin,
		PortOfArrival:         req.PortOfArrival,
		FinalDestination:      req.FinalDestination,
		Reference:             req.Reference,
		PaymentTerms:          req.PaymentTerms,
		Delivery:              req.Delivery,
		Vessel:                req.Vessel,
		Containers:            req.Containers,
		ContainerNo:           req.ContainerNo,
		Currency:              req.Currency,
		TaxAmount:             req.TaxAmount,
		Notes:                 req.Notes,
		CustomerSignatoryName: req.CustomerSignatoryName,
		IssuedDate:            issuedDate,
		ExpiryDate:            expiryDate,
		Items:                 items,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Proforma updated successfully", proforma)
}

// Delete handles deleting a proforma
// @Summary Delete Proforma
// @Description Soft delete a proforma, keeping its number reserved
// @Tags proformas
// @Security BearerAuth
// @Param id path string true "Proforma ID"
// @Success 204
// @Router /proformas/{id} [delete]
func (h *ProformaHandler) Delete(c *gin.Context) {
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

	if err := h.proformaService.DeleteProforma(c.Request.Context(), *userID, id, IsAdmin(c)); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}

// UpdateStatusRequest represents the status update request body
type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// UpdateStatus handles updating the workflow status
// @Summary Update Proforma Status
// @Description Set the proforma workflow status
// @Tags proformas
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Proforma ID"
// @Param request body UpdateStatusRequest true "Status"
// @Success 200 {object} response.APIResponse
// @Router /proformas/{id}/status [patch]
func (h *ProformaHandler) UpdateStatus(c *gin.Context) {
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

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	if err := h.proformaService.UpdateProformaStatus(c.Request.Context(), *userID, id, enum.ProformaStatus(req.Status), IsAdmin(c)); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Status updated successfully", gin.H{"status": req.Status})
}

// PaymentRequest represents the payment create/update request body
type PaymentRequest struct {
	Amount float64 `json:"amount" binding:"required"`
	Date   string  `json:"date" binding:"required"`
	Notes  *string `json:"notes"`
}

// AddPayment handles recording a payment
// @Summary Add Payment
// @Description Record a payment against a proforma
// @Tags payments
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Proforma ID"
// @Param request body PaymentRequest true "Payment data"
// @Success 201 {object} response.APIResponse
// @Router /proformas/{id}/payments [post]
func (h *ProformaHandler) AddPayment(c *gin.Context) {
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

	var req PaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		response.BadRequest(c, "Invalid date format. Use YYYY-MM-DD")
		return
	}

	payment, err := h.proformaService.AddPayment(c.Request.Context(), &service.AddPaymentInput{
		UserID:     *userID,
		ProformaID: id,
		IsAdmin:    IsAdmin(c),
		Amount:     req.Amount,
		Date:       date,
		Notes:      req.Notes,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Payment recorded successfully", payment)
}

// UpdatePayment handles editing a recorded payment
// @Summary Update Payment
// @Description Edit a recorded payment
// @Tags payments
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Proforma ID"
// @Param paymentId path string true "Payment ID"
// @Param request body PaymentRequest true "Payment data"
// @Success 200 {object} response.APIResponse
// @Router /proformas/{id}/payments/{paymentId} [put]
func (h *ProformaHandler) UpdatePayment(c *gin.Context) {
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
	paymentID, err := uuid.Parse(c.Param("paymentId"))
	if err != nil {
		response.BadRequest(c, "Invalid payment ID")
		return
	}

	var req PaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		response.BadRequest(c, "Invalid date format. Use YYYY-MM-DD")
		return
	}

	payment, err := h.proformaService.UpdatePayment(c.Request.Context(), &service.UpdatePaymentInput{
		UserID:     *userID,
		ProformaID: id,
		PaymentID:  paymentID,
		IsAdmin:    IsAdmin(c),
		Amount:     req.Amount,
		Date:       date,
		Notes:      req.Notes,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Payment updated successfully", payment)
}

// DeletePayment handles removing a recorded payment
// @Summary Delete Payment
// @Description Remove a recorded payment
// @Tags payments
// @Security BearerAuth
// @Param id path string true "Proforma ID"
// @Param paymentId path string true "Payment ID"
// @Success 204
// @Router /proformas/{id}/payments/{paymentId} [delete]
func (h *ProformaHandler) DeletePayment(c *gin.Context) {
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
	paymentID, err := uuid.Parse(c.Param("paymentId"))
	if err != nil {
		response.BadRequest(c, "Invalid payment ID")
		return
	}

	if err := h.proformaService.DeletePayment(c.Request.Context(), *userID, id, paymentID, IsAdmin(c)); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}

// InvoiceFieldsRequest represents the invoice overlay request body
type InvoiceFieldsRequest struct {
	InvoiceNumber string `json:"invoice_number"`
	IssuedAtDate  string `json:"issued_at_date"`
	PaymentTerms  string `json:"payment_terms"`
}

// UpdateInvoiceFields handles saving the invoice overlay
// @Summary Update Invoice Fields
// @Description Save operator-edited invoice fields
// @Tags proformas
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Proforma ID"
// @Param request body InvoiceFieldsRequest true "Invoice fields"
// @Success 200 {object} response.APIResponse
// @Router /proformas/{id}/invoice-fields [put]
func (h *ProformaHandler) UpdateInvoiceFields(c *gin.Context) {
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

	var req InvoiceFieldsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	proforma, err := h.proformaService.UpdateInvoiceFields(c.Request.Context(), *userID, id, IsAdmin(c), entity.EditableInvoiceFields{
		InvoiceNumber: req.InvoiceNumber,
		IssuedAtDate:  req.IssuedAtDate,
		PaymentTerms:  req.PaymentTerms,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Invoice fields updated successfully", proforma)
}

// BillOfLadingFieldsRequest represents the bill of lading overlay request body
type BillOfLadingFieldsRequest struct {
	BLNo                string `json:"bl_no"`
	StoragePath         string `json:"storage_path"`
	OceanVesselVoyNo    string `json:"ocean_vessel_voy_no"`
	LadenOnBoardDate    string `json:"laden_on_board_date"`
	PlaceAndDateOfIssue string `json:"place_and_date_of_issue"`
	FreightPayableAt    string `json:"freight_payable_at"`
	NumOriginalBL       string `json:"num_original_bl"`
}

// UpdateBillOfLadingFields handles saving the bill of lading overlay
// @Summary Update Bill of Lading Fields
// @Description Save operator-edited bill of lading fields
// @Tags proformas
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Proforma ID"
// @Param request body BillOfLadingFieldsRequest true "Bill of lading fields"
// @Success 200 {object} response.APIResponse
// @Router /proformas/{id}/bill-of-lading-fields [put]
func (h *ProformaHandler) UpdateBillOfLadingFields(c *gin.Context) {
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

	var req BillOfLadingFieldsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	proforma, err := h.proformaService.UpdateBillOfLadingFields(c.Request.Context(), *userID, id, IsAdmin(c), entity.EditableBillOfLadingFields{
		BLNo:                req.BLNo,
		StoragePath:         req.StoragePath,
		OceanVesselVoyNo:    req.OceanVesselVoyNo,
		LadenOnBoardDate:    req.LadenOnBoardDate,
		PlaceAndDateOfIssue: req.PlaceAndDateOfIssue,
		FreightPayableAt:    req.FreightPayableAt,
		NumOriginalBL:       req.NumOriginalBL,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Bill of lading fields updated successfully", proforma)
}

// EditedContainerRequest represents one operator-entered container row
type EditedContainerRequest struct {
	ContainerNumber string  `json:"container_number"`
	NetWeight       float64 `json:"net_weight"`
	GrossWeight     float64 `json:"gross_weight"`
	TotalVolumeM3   float64 `json:"total_volume_m3"`
}

// PackingListFieldsRequest represents the packing list overlay request body
type PackingListFieldsRequest struct {
	IssuedAtPlace    string                   `json:"issued_at_place"`
	ProductSummary   string                   `json:"product_summary"`
	PackingListNotes string                   `json:"packing_list_notes"`
	EditedContainers []EditedContainerRequest `json:"edited_containers"`
}

// UpdatePackingListFields handles saving the packing list overlay
// @Summary Update Packing List Fields
// @Description Save operator-edited packing list fields
// @Tags proformas
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Proforma ID"
// @Param request body PackingListFieldsRequest true "Packing list fields"
// @Success 200 {object} response.APIResponse
// @Router /proformas/{id}/packing-list-fields [put]
func (h *ProformaHandler) UpdatePackingListFields(c *gin.Context) {
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

	var req PackingListFieldsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	containers := make([]entity.EditedContainer, len(req.EditedContainers))
	for i, container := range req.EditedContainers {
		containers[i] = entity.EditedContainer{
			ContainerNumber: container.ContainerNumber,
			NetWeight:       container.NetWeight,
			GrossWeight:     container.GrossWeight,
			TotalVolumeM3:   container.TotalVolumeM3,
		}
	}

	proforma, err := h.proformaService.UpdatePackingListFields(c.Request.Context(), *userID, id, IsAdmin(c), entity.EditablePackingListFields{
		IssuedAtPlace:    req.IssuedAtPlace,
		ProductSummary:   req.ProductSummary,
		PackingListNotes: req.PackingListNotes,
		EditedContainers: containers,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Packing list fields updated successfully", proforma)
}

// Helper functions for parsing query parameters
func parsePositiveInt(s string) (int, error) {
	var result int
	_, err := fmt.Sscanf(s, "%d", &result)
	if err != nil || result < 1 {
		return 1, err
	}
	return result, nil
}
