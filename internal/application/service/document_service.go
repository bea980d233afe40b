package service

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/trade-evolution/tradedocs-api/internal/application/docgen"
	"github.com/trade-evolution/tradedocs-api/internal/domain/entity"
	"github.com/trade-evolution/tradedocs-api/internal/domain/repository"
	"github.com/trade-evolution/tradedocs-api/pkg/apperror"
	"github.com/trade-evolution/tradedocs-api/pkg/email"
)

// Document kinds accepted by SendDocument.
const (
	DocumentKindInvoice     = "invoice"
	DocumentKindPackingList = "packing-list"
)

// DocumentService projects invoices and packing lists from proformas,
// manages the Trade Evolution invoice folio and the uploaded bill of
// lading file.
type DocumentService struct {
	proformaRepo repository.ProformaRepository
	clientRepo   repository.ClientRepository
	counterRepo  repository.CounterRepository
	emailService *email.EmailService
	heuristics   docgen.Heuristics
	storagePath  string
	frontendURL  string
}

// NewDocumentService creates a new document service
func NewDocumentService(
	proformaRepo repository.ProformaRepository,
	clientRepo repository.ClientRepository,
	counterRepo repository.CounterRepository,
	emailService *email.EmailService,
	heuristics docgen.Heuristics,
	storagePath string,
	frontendURL string,
) *DocumentService {
	return &DocumentService{
		proformaRepo: proformaRepo,
		clientRepo:   clientRepo,
		counterRepo:  counterRepo,
		emailService: emailService,
		heuristics:   heuristics,
		storagePath:  storagePath,
		frontendURL:  frontendURL,
	}
}

// GetInvoiceData projects the invoice for a proforma. The first read of
// a Trade Evolution invoice allocates a folio from the persisted counter
// and freezes it into the invoice overlay, so every later read returns
// the same number.
func (s *DocumentService) GetInvoiceData(ctx context.Context, userID, id uuid.UUID, isAdmin bool) (*docgen.InvoiceData, error) {
	proforma, client, err := s.loadProforma(ctx, userID, id, isAdmin)
	if err != nil {
		return nil, err
	}

	invoiceNumber, err := s.ensureInvoiceNumber(ctx, proforma)
	if err != nil {
		return nil, err
	}

	data := docgen.ProjectInvoiceData(proforma, client, invoiceNumber)
	return &data, nil
}

// GetPackingListData projects the packing list for a proforma. The
// invoice reference printed on it is resolved the same way as on the
// invoice itself, freezing the Trade Evolution folio when needed.
func (s *DocumentService) GetPackingListData(ctx context.Context, userID, id uuid.UUID, isAdmin bool) (*docgen.PackingListData, error) {
	proforma, client, err := s.loadProforma(ctx, userID, id, isAdmin)
	if err != nil {
		return nil, err
	}

	invoiceRef, err := s.ensureInvoiceNumber(ctx, proforma)
	if err != nil {
		return nil, err
	}

	data := docgen.ProjectPackingListData(proforma, client, invoiceRef, s.heuristics)
	return &data, nil
}

// ensureInvoiceNumber resolves the invoice number, allocating and
// freezing a Trade Evolution folio on first use.
func (s *DocumentService) ensureInvoiceNumber(ctx context.Context, proforma *entity.Proforma) (string, error) {
	number, needsFolio := docgen.InvoiceNumber(proforma)
	if !needsFolio {
		return number, nil
	}

	counter, err := s.counterRepo.Next(ctx, repository.CounterTREInvoiceFolio, docgen.TREInvoiceFolioSeed)
	if err != nil {
		return "", err
	}
	number = docgen.FormatTREInvoiceFolio(counter)

	fields := entity.EditableInvoiceFields{}
	if proforma.InvoiceFields != nil {
		fields = *proforma.InvoiceFields
	}
	fields.InvoiceNumber = number
	proforma.InvoiceFields = &fields

	if err := s.proformaRepo.Update(ctx, proforma); err != nil {
		return "", err
	}

	return number, nil
}

// SendDocument emails the linked client a portal link to the requested
// document kind.
func (s *DocumentService) SendDocument(ctx context.Context, userID, id uuid.UUID, isAdmin bool, kind string) error {
	if kind != DocumentKindInvoice && kind != DocumentKindPackingList {
		return apperror.NewBadRequestError("Unknown document kind")
	}

	proforma, client, err := s.loadProforma(ctx, userID, id, isAdmin)
	if err != nil {
		return err
	}
	if client == nil {
		return apperror.NewBadRequestError("Proforma has no linked client")
	}

	var kindLabel, documentNumber, documentURL string
	switch kind {
	case DocumentKindInvoice:
		invoiceNumber, err := s.ensureInvoiceNumber(ctx, proforma)
		if err != nil {
			return err
		}
		kindLabel = "Invoice"
		documentNumber = invoiceNumber
		documentURL = fmt.Sprintf("%s/client-portal/invoices/%s?clientId=%s", s.frontendURL, proforma.ID, client.ID)
	case DocumentKindPackingList:
		kindLabel = "Packing List"
		documentNumber = docgen.PackingListName(proforma)
		documentURL = fmt.Sprintf("%s/client-portal/packing-list/%s?clientId=%s", s.frontendURL, proforma.ID, client.ID)
	}

	return s.emailService.SendDocumentLinkEmail(client.Email, client.Name, kindLabel, documentNumber, documentURL)
}

// UploadBillOfLading stores an uploaded bill of lading file under the
// configured storage path and records it on the proforma.
func (s *DocumentService) UploadBillOfLading(ctx context.Context, userID, id uuid.UUID, isAdmin bool, filename string, src io.Reader) (*entity.Proforma, error) {
	proforma, _, err := s.loadProforma(ctx, userID, id, isAdmin)
	if err != nil {
		return nil, err
	}

	dir := filepath.Join(s.storagePath, "bill-of-lading", proforma.ID.String())
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}

	// Keep only the base name so a crafted filename cannot escape the
	// storage directory.
	path := filepath.Join(dir, filepath.Base(filename))
	dst, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return nil, err
	}

	// Replace any previously uploaded file.
	if proforma.UploadedBillOfLadingPath != nil && *proforma.UploadedBillOfLadingPath != path {
		_ = os.Remove(*proforma.UploadedBillOfLadingPath)
	}

	proforma.UploadedBillOfLadingPath = &path
	if err := s.proformaRepo.Update(ctx, proforma); err != nil {
		return nil, err
	}

	return s.proformaRepo.GetWithDetails(ctx, proforma.ID)
}

// DeleteBillOfLading removes the uploaded bill of lading file
func (s *DocumentService) DeleteBillOfLading(ctx context.Context, userID, id uuid.UUID, isAdmin bool) error {
	proforma, _, err := s.loadProforma(ctx, userID, id, isAdmin)
	if err != nil {
		return err
	}
	if proforma.UploadedBillOfLadingPath == nil {
		return apperror.NewNotFoundError("Bill of lading")
	}

	if err := os.Remove(*proforma.UploadedBillOfLadingPath); err != nil && !os.IsNotExist(err) {
		return err
	}

	proforma.UploadedBillOfLadingPath = nil
	return s.proformaRepo.Update(ctx, proforma)
}

// BillOfLadingPath returns the stored file path for serving the upload
func (s *DocumentService) BillOfLadingPath(ctx context.Context, userID, id uuid.UUID, isAdmin bool) (string, error) {
	proforma, _, err := s.loadProforma(ctx, userID, id, isAdmin)
	if err != nil {
		return "", err
	}
	if proforma.UploadedBillOfLadingPath == nil {
		return "", apperror.NewNotFoundError("Bill of lading")
	}
	return *proforma.UploadedBillOfLadingPath, nil
}

// loadProforma fetches the proforma with details plus its linked client,
// enforcing ownership for non-admin users. The client may be nil; the
// projections degrade to the snapshot fields.
func (s *DocumentService) loadProforma(ctx context.Context, userID, id uuid.UUID, isAdmin bool) (*entity.Proforma, *entity.Client, error) {
	proforma, err := s.proformaRepo.GetWithDetails(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	if proforma == nil {
		return nil, nil, apperror.NewNotFoundError("Proforma")
	}
	if !isAdmin && proforma.UserID != userID {
		return nil, nil, apperror.ErrForbidden
	}

	var client *entity.Client
	if proforma.ClientID != nil {
		client, err = s.clientRepo.GetByID(ctx, *proforma.ClientID)
		if err != nil {
			return nil, nil, err
		}
	}

	return proforma, client, nil
}
