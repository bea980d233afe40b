package service

import (
	"context"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/trade-evolution/tradedocs-api/internal/application/docgen"
	"github.com/trade-evolution/tradedocs-api/internal/domain/entity"
	"github.com/trade-evolution/tradedocs-api/internal/domain/enum"
	"github.com/trade-evolution/tradedocs-api/internal/domain/repository"
	infraRepo "github.com/trade-evolution/tradedocs-api/internal/infrastructure/repository"
	"gorm.io/gorm"
)

func newDocumentService(t *testing.T, db *gorm.DB) *DocumentService {
	t.Helper()
	return NewDocumentService(
		infraRepo.NewProformaRepository(db),
		infraRepo.NewClientRepository(db),
		infraRepo.NewCounterRepository(db),
		nil,
		docgen.DefaultHeuristics(),
		t.TempDir(),
		"http://localhost:3000",
	)
}

func createTestProforma(t *testing.T, svc *ProformaService, userID uuid.UUID, company enum.Company) *entity.Proforma {
	t.Helper()
	proforma, err := svc.CreateProforma(context.Background(), &CreateProformaInput{
		UserID:     userID,
		Company:    company,
		ClientName: "Acme Trading",
		IssuedDate: time.Date(2026, 3, 5, 0, 0, 0, 0, time.UTC),
		Items:      testItems(),
	})
	if err != nil {
		t.Fatalf("create proforma: %v", err)
	}
	return proforma
}

func TestInvoiceFolioFrozenOnFirstRead(t *testing.T) {
	db := setupServiceDB(t, "folio_freeze")
	proformaSvc := newProformaService(db)
	docSvc := newDocumentService(t, db)
	ctx := context.Background()
	userID := uuid.New()

	first := createTestProforma(t, proformaSvc, userID, enum.CompanyTradeEvolution)

	data, err := docSvc.GetInvoiceData(ctx, userID, first.ID, false)
	if err != nil {
		t.Fatalf("first read: %v", err)
	}
	if data.InvoiceNumber != "A177" {
		t.Errorf("first folio = %q, want A177", data.InvoiceNumber)
	}

	// Re-reading returns the frozen folio, not a new allocation.
	data, err = docSvc.GetInvoiceData(ctx, userID, first.ID, false)
	if err != nil {
		t.Fatalf("second read: %v", err)
	}
	if data.InvoiceNumber != "A177" {
		t.Errorf("re-read folio = %q, want A177", data.InvoiceNumber)
	}

	second := createTestProforma(t, proformaSvc, userID, enum.CompanyTradeEvolution)
	data, err = docSvc.GetInvoiceData(ctx, userID, second.ID, false)
	if err != nil {
		t.Fatalf("second proforma read: %v", err)
	}
	if data.InvoiceNumber != "A178" {
		t.Errorf("second folio = %q, want A178", data.InvoiceNumber)
	}

	// The counter survives in the database, not in process memory.
	counterRepo := infraRepo.NewCounterRepository(db)
	value, ok, err := counterRepo.Current(ctx, repository.CounterTREInvoiceFolio)
	if err != nil {
		t.Fatalf("current: %v", err)
	}
	if !ok || value != 178 {
		t.Errorf("stored counter = %v/%v, want 178/true", value, ok)
	}
}

func TestInvoiceNumberDerivedForSuccessfulTrade(t *testing.T) {
	db := setupServiceDB(t, "st_invoice_number")
	proformaSvc := newProformaService(db)
	docSvc := newDocumentService(t, db)
	ctx := context.Background()
	userID := uuid.New()

	proforma := createTestProforma(t, proformaSvc, userID, enum.CompanySuccessfulTrade)
	if proforma.ProformaNumber != "STL267573" {
		t.Fatalf("proforma number = %q, want STL267573", proforma.ProformaNumber)
	}

	data, err := docSvc.GetInvoiceData(ctx, userID, proforma.ID, false)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if data.InvoiceNumber != "ST26-INV7573" {
		t.Errorf("invoice number = %q, want ST26-INV7573", data.InvoiceNumber)
	}

	// Derived numbers are not frozen and never touch the folio counter.
	reread, err := proformaSvc.GetProforma(ctx, userID, proforma.ID, false)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if reread.InvoiceFields != nil && reread.InvoiceFields.InvoiceNumber != "" {
		t.Errorf("overlay number = %q, want empty", reread.InvoiceFields.InvoiceNumber)
	}

	counterRepo := infraRepo.NewCounterRepository(db)
	_, ok, err := counterRepo.Current(ctx, repository.CounterTREInvoiceFolio)
	if err != nil {
		t.Fatalf("current: %v", err)
	}
	if ok {
		t.Error("folio counter allocated for a derived number")
	}
}

func TestPackingListSharesInvoiceReference(t *testing.T) {
	db := setupServiceDB(t, "pl_invoice_ref")
	proformaSvc := newProformaService(db)
	docSvc := newDocumentService(t, db)
	ctx := context.Background()
	userID := uuid.New()

	proforma := createTestProforma(t, proformaSvc, userID, enum.CompanyTradeEvolution)

	// Reading the packing list first still freezes the folio.
	pl, err := docSvc.GetPackingListData(ctx, userID, proforma.ID, false)
	if err != nil {
		t.Fatalf("packing list: %v", err)
	}
	if pl.InvoiceRef != "A177" {
		t.Errorf("packing list invoice ref = %q, want A177", pl.InvoiceRef)
	}
	if pl.PackingListName != proforma.ProformaNumber+"_PL" {
		t.Errorf("packing list name = %q, want %q", pl.PackingListName, proforma.ProformaNumber+"_PL")
	}

	inv, err := docSvc.GetInvoiceData(ctx, userID, proforma.ID, false)
	if err != nil {
		t.Fatalf("invoice: %v", err)
	}
	if inv.InvoiceNumber != "A177" {
		t.Errorf("invoice number = %q, want the ref frozen by the packing list", inv.InvoiceNumber)
	}
}

func TestBillOfLadingUploadLifecycle(t *testing.T) {
	db := setupServiceDB(t, "bol_lifecycle")
	proformaSvc := newProformaService(db)
	docSvc := newDocumentService(t, db)
	ctx := context.Background()
	userID := uuid.New()

	proforma := createTestProforma(t, proformaSvc, userID, enum.CompanyTradeEvolution)

	updated, err := docSvc.UploadBillOfLading(ctx, userID, proforma.ID, false, "bl-draft.pdf", strings.NewReader("first upload"))
	if err != nil {
		t.Fatalf("upload: %v", err)
	}
	if updated.UploadedBillOfLadingPath == nil {
		t.Fatal("upload path not recorded")
	}
	firstPath := *updated.UploadedBillOfLadingPath
	if _, err := os.Stat(firstPath); err != nil {
		t.Fatalf("uploaded file missing: %v", err)
	}

	// A second upload replaces the stored file.
	updated, err = docSvc.UploadBillOfLading(ctx, userID, proforma.ID, false, "bl-final.pdf", strings.NewReader("second upload"))
	if err != nil {
		t.Fatalf("re-upload: %v", err)
	}
	if _, err := os.Stat(firstPath); !os.IsNotExist(err) {
		t.Errorf("old file still present at %s", firstPath)
	}

	path, err := docSvc.BillOfLadingPath(ctx, userID, proforma.ID, false)
	if err != nil {
		t.Fatalf("path: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("replacement file missing: %v", err)
	}

	if err := docSvc.DeleteBillOfLading(ctx, userID, proforma.ID, false); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Errorf("file still present after delete")
	}
	if _, err := docSvc.BillOfLadingPath(ctx, userID, proforma.ID, false); err == nil {
		t.Error("expected not found after delete")
	}
}

func TestBillOfLadingDeleteWithoutUpload(t *testing.T) {
	db := setupServiceDB(t, "bol_missing")
	proformaSvc := newProformaService(db)
	docSvc := newDocumentService(t, db)
	ctx := context.Background()
	userID := uuid.New()

	proforma := createTestProforma(t, proformaSvc, userID, enum.CompanyTradeEvolution)

	if err := docSvc.DeleteBillOfLading(ctx, userID, proforma.ID, false); err == nil {
		t.Error("expected not found for missing upload")
	}
}
