package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/trade-evolution/tradedocs-api/internal/application/docgen"
	"github.com/trade-evolution/tradedocs-api/internal/domain/entity"
	"github.com/trade-evolution/tradedocs-api/internal/domain/enum"
	"github.com/trade-evolution/tradedocs-api/internal/domain/repository"
	"github.com/trade-evolution/tradedocs-api/pkg/apperror"
	"github.com/trade-evolution/tradedocs-api/pkg/pagination"
)

// ProformaService handles proforma document operations
type ProformaService struct {
	proformaRepo repository.ProformaRepository
	itemRepo     repository.ProformaItemRepository
	paymentRepo  repository.PaymentRepository
	clientRepo   repository.ClientRepository
	productRepo  repository.ProductRepository
}

// NewProformaService creates a new proforma service
func NewProformaService(
	proformaRepo repository.ProformaRepository,
	itemRepo repository.ProformaItemRepository,
	paymentRepo repository.PaymentRepository,
	clientRepo repository.ClientRepository,
	productRepo repository.ProductRepository,
) *ProformaService {
	return &ProformaService{
		proformaRepo: proformaRepo,
		itemRepo:     itemRepo,
		paymentRepo:  paymentRepo,
		clientRepo:   clientRepo,
		productRepo:  productRepo,
	}
}

// ProformaItemInput represents a line item input
type ProformaItemInput struct {
	ProductID   *uuid.UUID
	ProductName string
	Description *string
	Quantity    float64
	Unit        string
	UnitPrice   float64
}

// CreateProformaInput represents the input for creating a proforma
type CreateProformaInput struct {
	UserID                uuid.UUID
	ClientID              *uuid.UUID
	Company               enum.Company
	Status                enum.ProformaStatus
	ClientName            string
	ClientAddress         *string
	ClientTaxID           *string
	ShipToName            *string
	ShipToAddress         *string
	ShipToTaxID           *string
	PortAtOrigin          *string
	PortOfArrival         *string
	FinalDestination      *string
	Reference             *string
	PaymentTerms          *string
	Delivery              *string
	Vessel                *string
	Containers            *string
	ContainerNo           *string
	Currency              string
	TaxAmount             float64
	Notes                 *string
	CustomerSignatoryName *string
	IssuedDate            time.Time
	ExpiryDate            *time.Time
	Items                 []ProformaItemInput
}

// CreateProforma creates a new proforma. The document number is always
// assigned server-side from the numbers already issued for the company.
func (s *ProformaService) CreateProforma(ctx context.Context, input *CreateProformaInput) (*entity.Proforma, error) {
	if !input.Company.ValidForDocument() {
		return nil, apperror.NewBadRequestError("Unknown issuing company")
	}

	status := input.Status
	if status == "" {
		status = enum.ProformaStatusDraft
	}
	if !status.Valid() {
		return nil, apperror.NewBadRequestError("Invalid proforma status")
	}

	// Snapshot the client at creation time.
	clientName := input.ClientName
	if input.ClientID != nil {
		client, err := s.clientRepo.GetByID(ctx, *input.ClientID)
		if err != nil {
			return nil, err
		}
		if client == nil {
			return nil, apperror.NewNotFoundError("Client")
		}
		if clientName == "" {
			clientName = client.Name
		}
	}

	items, subTotal, err := s.buildItems(ctx, input.Items)
	if err != nil {
		return nil, err
	}

	numbers, err := s.proformaRepo.ListNumbersByCompany(ctx, input.Company)
	if err != nil {
		return nil, err
	}

	currency := input.Currency
	if currency == "" {
		currency = "USD"
	}

	proforma := &entity.Proforma{
		UserID:                input.UserID,
		ClientID:              input.ClientID,
		ProformaNumber:        docgen.NextProformaNumber(input.Company, input.IssuedDate, numbers),
		Company:               input.Company,
		Status:                status,
		ClientName:            clientName,
		ClientAddress:         input.ClientAddress,
		ClientTaxID:           input.ClientTaxID,
		ShipToName:            input.ShipToName,
		ShipToAddress:         input.ShipToAddress,
		ShipToTaxID:           input.ShipToTaxID,
		PortAtOrigin:          input.PortAtOrigin,
		PortOfArrival:         input.PortOfArrival,
		FinalDestination:      input.FinalDestination,
		Reference:             input.Reference,
		PaymentTerms:          input.PaymentTerms,
		Delivery:              input.Delivery,
		Vessel:                input.Vessel,
		Containers:            input.Containers,
		ContainerNo:           input.ContainerNo,
		Currency:              currency,
		SubTotal:              subTotal,
		TaxAmount:             input.TaxAmount,
		GrandTotal:            subTotal + input.TaxAmount,
		Notes:                 input.Notes,
		CustomerSignatoryName: input.CustomerSignatoryName,
		IssuedDate:            input.IssuedDate,
		ExpiryDate:            input.ExpiryDate,
	}

	if err := s.proformaRepo.Create(ctx, proforma); err != nil {
		return nil, err
	}

	if err := s.createItems(ctx, proforma.ID, items); err != nil {
		return nil, err
	}

	return s.proformaRepo.GetWithDetails(ctx, proforma.ID)
}

// buildItems resolves line items against the catalog and totals them.
// Product data is copied into the item so later catalog edits do not
// rewrite issued documents.
func (s *ProformaService) buildItems(ctx context.Context, inputs []ProformaItemInput) ([]entity.ProformaItem, float64, error) {
	items := make([]entity.ProformaItem, 0, len(inputs))
	var subTotal float64

	for i, in := range inputs {
		name := in.ProductName
		unit := in.Unit
		unitPrice := in.UnitPrice

		if in.ProductID != nil {
			product, err := s.productRepo.GetByID(ctx, *in.ProductID)
			if err != nil {
				return nil, 0, err
			}
			// A product deleted after being referenced degrades to the
			// values supplied in the request.
			if product != nil {
				if name == "" {
					name = product.Name
				}
				if unit == "" {
					unit = product.Unit
				}
				if unitPrice == 0 {
					unitPrice = product.Price
				}
			}
		}

		if name == "" {
			return nil, 0, apperror.NewBadRequestError("Line item requires a product name")
		}
		if in.Quantity <= 0 {
			return nil, 0, apperror.NewBadRequestError("Line item quantity must be positive")
		}

		total := in.Quantity * unitPrice
		subTotal += total

		items = append(items, entity.ProformaItem{
			ProductID:   in.ProductID,
			Position:    i,
			ProductName: name,
			Description: in.Description,
			Quantity:    in.Quantity,
			Unit:        unit,
			UnitPrice:   unitPrice,
			TotalPrice:  total,
		})
	}

	return items, subTotal, nil
}

func (s *ProformaService) createItems(ctx context.Context, proformaID uuid.UUID, items []entity.ProformaItem) error {
	if len(items) == 0 {
		return nil
	}
	for i := range items {
		items[i].ProformaID = proformaID
	}
	return s.itemRepo.CreateBatch(ctx, items)
}

// GetProforma retrieves a proforma by ID with items and payments
func (s *ProformaService) GetProforma(ctx context.Context, userID, id uuid.UUID, isAdmin bool) (*entity.Proforma, error) {
	proforma, err := s.proformaRepo.GetWithDetails(ctx, id)
	if err != nil {
		return nil, err
	}
	if proforma == nil {
		return nil, apperror.NewNotFoundError("Proforma")
	}
	if !isAdmin && proforma.UserID != userID {
		return nil, apperror.ErrForbidden
	}
	return proforma, nil
}

// ListProformasInput represents the input for listing proformas
type ListProformasInput struct {
	UserID     uuid.UUID
	IsAdmin    bool
	Pagination *pagination.PaginationParams
	Search     string
	Status     *enum.ProformaStatus
	Company    *enum.Company
	ClientID   *uuid.UUID
}

// ListProformas lists proformas with filtering
func (s *ProformaService) ListProformas(ctx context.Context, input *ListProformasInput) (*pagination.PaginatedResult[entity.Proforma], error) {
	params := &repository.ProformaFilterParams{
		Pagination: input.Pagination,
		Search:     input.Search,
		Status:     input.Status,
		Company:    input.Company,
		ClientID:   input.ClientID,
	}

	var userID uuid.UUID
	if !input.IsAdmin {
		userID = input.UserID
	}

	proformas, total, err := s.proformaRepo.List(ctx, userID, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(input.Pagination.Page, input.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(proformas, pag), nil
}

// UpdateProformaInput represents the input for a full-document update.
// The proforma number and issuing company are immutable once assigned.
type UpdateProformaInput struct {
	UserID                uuid.UUID
	ID                    uuid.UUID
	IsAdmin               bool
	ClientID              *uuid.UUID
	ClientName            string
	ClientAddress         *string
	ClientTaxID           *string
	ShipToName            *string
	ShipToAddress         *string
	ShipToTaxID           *string
	PortAtOrigin          *string
	PortOfArrival         *string
	FinalDestination      *string
	Reference             *string
	PaymentTerms          *string
	Delivery              *string
	Vessel                *string
	Containers            *string
	ContainerNo           *string
	Currency              string
	TaxAmount             float64
	Notes                 *string
	CustomerSignatoryName *string
	IssuedDate            time.Time
	ExpiryDate            *time.Time
	Items                 []ProformaItemInput
}

// UpdateProforma overwrites the document with the submitted state and
// replaces its line items.
func (s *ProformaService) UpdateProforma(ctx context.Context, input *UpdateProformaInput) (*entity.Proforma, error) {
	proforma, err := s.getOwned(ctx, input.ID, input.UserID, input.IsAdmin)
	if err != nil {
		return nil, err
	}

	clientName := input.ClientName
	if input.ClientID != nil {
		client, err := s.clientRepo.GetByID(ctx, *input.ClientID)
		if err != nil {
			return nil, err
		}
		if client == nil {
			return nil, apperror.NewNotFoundError("Client")
		}
		if clientName == "" {
			clientName = client.Name
		}
	}

	items, subTotal, err := s.buildItems(ctx, input.Items)
	if err != nil {
		return nil, err
	}

	proforma.ClientID = input.ClientID
	proforma.ClientName = clientName
	proforma.ClientAddress = input.ClientAddress
	proforma.ClientTaxID = input.ClientTaxID
	proforma.ShipToName = input.ShipToName
	proforma.ShipToAddress = input.ShipToAddress
	proforma.ShipToTaxID = input.ShipToTaxID
	proforma.PortAtOrigin = input.PortAtOrigin
	proforma.PortOfArrival = input.PortOfArrival
	proforma.FinalDestination = input.FinalDestination
	proforma.Reference = input.Reference
	proforma.PaymentTerms = input.PaymentTerms
	proforma.Delivery = input.Delivery
	proforma.Vessel = input.Vessel
	proforma.Containers = input.Containers
	proforma.ContainerNo = input.ContainerNo
	if input.Currency != "" {
		proforma.Currency = input.Currency
	}
	proforma.SubTotal = subTotal
	proforma.TaxAmount = input.TaxAmount
	proforma.GrandTotal = subTotal + input.TaxAmount
	proforma.Notes = input.Notes
	proforma.CustomerSignatoryName = input.CustomerSignatoryName
	proforma.IssuedDate = input.IssuedDate
	proforma.ExpiryDate = input.ExpiryDate
	proforma.Items = nil
	proforma.Payments = nil

	if err := s.proformaRepo.Update(ctx, proforma); err != nil {
		return nil, err
	}

	// Replace line items wholesale.
	if err := s.itemRepo.DeleteByProformaID(ctx, proforma.ID); err != nil {
		return nil, err
	}
	if err := s.createItems(ctx, proforma.ID, items); err != nil {
		return nil, err
	}

	return s.proformaRepo.GetWithDetails(ctx, proforma.ID)
}

// DeleteProforma soft deletes a proforma. Its number stays reserved so
// the daily sequence never reissues it.
func (s *ProformaService) DeleteProforma(ctx context.Context, userID, id uuid.UUID, isAdmin bool) error {
	proforma, err := s.getOwned(ctx, id, userID, isAdmin)
	if err != nil {
		return err
	}

	if err := s.itemRepo.DeleteByProformaID(ctx, proforma.ID); err != nil {
		return err
	}

	return s.proformaRepo.Delete(ctx, id)
}

// UpdateProformaStatus sets the workflow status. The status set is flat:
// any transition is allowed by explicit user action.
func (s *ProformaService) UpdateProformaStatus(ctx context.Context, userID, id uuid.UUID, status enum.ProformaStatus, isAdmin bool) error {
	if !status.Valid() {
		return apperror.NewBadRequestError("Invalid proforma status")
	}

	if _, err := s.getOwned(ctx, id, userID, isAdmin); err != nil {
		return err
	}

	return s.proformaRepo.UpdateStatus(ctx, id, status)
}

// AddPaymentInput represents the input for recording a payment
type AddPaymentInput struct {
	UserID     uuid.UUID
	ProformaID uuid.UUID
	IsAdmin    bool
	Amount     float64
	Date       time.Time
	Notes      *string
}

// AddPayment records a payment against a proforma. The balance due is
// derived from payments at read time, never stored.
func (s *ProformaService) AddPayment(ctx context.Context, input *AddPaymentInput) (*entity.Payment, error) {
	if input.Amount <= 0 {
		return nil, apperror.NewBadRequestError("Payment amount must be positive")
	}

	proforma, err := s.getOwned(ctx, input.ProformaID, input.UserID, input.IsAdmin)
	if err != nil {
		return nil, err
	}

	payment := &entity.Payment{
		ProformaID: proforma.ID,
		Amount:     input.Amount,
		Date:       input.Date,
		Notes:      input.Notes,
	}

	if err := s.paymentRepo.Create(ctx, payment); err != nil {
		return nil, err
	}

	return payment, nil
}

// UpdatePaymentInput represents the input for editing a recorded payment
type UpdatePaymentInput struct {
	UserID     uuid.UUID
	ProformaID uuid.UUID
	PaymentID  uuid.UUID
	IsAdmin    bool
	Amount     float64
	Date       time.Time
	Notes      *string
}

// UpdatePayment edits a recorded payment
func (s *ProformaService) UpdatePayment(ctx context.Context, input *UpdatePaymentInput) (*entity.Payment, error) {
	if input.Amount <= 0 {
		return nil, apperror.NewBadRequestError("Payment amount must be positive")
	}

	if _, err := s.getOwned(ctx, input.ProformaID, input.UserID, input.IsAdmin); err != nil {
		return nil, err
	}

	payment, err := s.paymentRepo.GetByID(ctx, input.PaymentID)
	if err != nil {
		return nil, err
	}
	if payment == nil || payment.ProformaID != input.ProformaID {
		return nil, apperror.NewNotFoundError("Payment")
	}

	payment.Amount = input.Amount
	payment.Date = input.Date
	payment.Notes = input.Notes

	if err := s.paymentRepo.Update(ctx, payment); err != nil {
		return nil, err
	}

	return payment, nil
}

// DeletePayment removes a recorded payment
func (s *ProformaService) DeletePayment(ctx context.Context, userID, proformaID, paymentID uuid.UUID, isAdmin bool) error {
	if _, err := s.getOwned(ctx, proformaID, userID, isAdmin); err != nil {
		return err
	}

	payment, err := s.paymentRepo.GetByID(ctx, paymentID)
	if err != nil {
		return err
	}
	if payment == nil || payment.ProformaID != proformaID {
		return apperror.NewNotFoundError("Payment")
	}

	return s.paymentRepo.Delete(ctx, paymentID)
}

// UpdateInvoiceFields replaces the invoice overlay. An invoice number
// already frozen on the document is preserved unless the operator
// explicitly supplies a replacement.
func (s *ProformaService) UpdateInvoiceFields(ctx context.Context, userID, id uuid.UUID, isAdmin bool, fields entity.EditableInvoiceFields) (*entity.Proforma, error) {
	proforma, err := s.getOwned(ctx, id, userID, isAdmin)
	if err != nil {
		return nil, err
	}

	if fields.InvoiceNumber == "" && proforma.InvoiceFields != nil {
		fields.InvoiceNumber = proforma.InvoiceFields.InvoiceNumber
	}
	proforma.InvoiceFields = &fields

	if err := s.proformaRepo.Update(ctx, proforma); err != nil {
		return nil, err
	}
	return s.proformaRepo.GetWithDetails(ctx, proforma.ID)
}

// UpdateBillOfLadingFields replaces the bill of lading overlay
func (s *ProformaService) UpdateBillOfLadingFields(ctx context.Context, userID, id uuid.UUID, isAdmin bool, fields entity.EditableBillOfLadingFields) (*entity.Proforma, error) {
	proforma, err := s.getOwned(ctx, id, userID, isAdmin)
	if err != nil {
		return nil, err
	}

	proforma.BillOfLadingFields = &fields

	if err := s.proformaRepo.Update(ctx, proforma); err != nil {
		return nil, err
	}
	return s.proformaRepo.GetWithDetails(ctx, proforma.ID)
}

// UpdatePackingListFields replaces the packing list overlay
func (s *ProformaService) UpdatePackingListFields(ctx context.Context, userID, id uuid.UUID, isAdmin bool, fields entity.EditablePackingListFields) (*entity.Proforma, error) {
	proforma, err := s.getOwned(ctx, id, userID, isAdmin)
	if err != nil {
		return nil, err
	}

	proforma.PackingListFields = &fields

	if err := s.proformaRepo.Update(ctx, proforma); err != nil {
		return nil, err
	}
	return s.proformaRepo.GetWithDetails(ctx, proforma.ID)
}

// getOwned loads a proforma and enforces ownership for non-admin users.
func (s *ProformaService) getOwned(ctx context.Context, id, userID uuid.UUID, isAdmin bool) (*entity.Proforma, error) {
	proforma, err := s.proformaRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if proforma == nil {
		return nil, apperror.NewNotFoundError("Proforma")
	}
	if !isAdmin && proforma.UserID != userID {
		return nil, apperror.ErrForbidden
	}
	return proforma, nil
}
