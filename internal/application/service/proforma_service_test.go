package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/trade-evolution/tradedocs-api/internal/domain/entity"
	"github.com/trade-evolution/tradedocs-api/internal/domain/enum"
	infraRepo "github.com/trade-evolution/tradedocs-api/internal/infrastructure/repository"
	"github.com/trade-evolution/tradedocs-api/pkg/apperror"
	"github.com/trade-evolution/tradedocs-api/pkg/pagination"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupServiceDB(t *testing.T, name string) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.AutoMigrate(
		&entity.User{},
		&entity.Client{},
		&entity.Product{},
		&entity.Proforma{},
		&entity.ProformaItem{},
		&entity.Payment{},
		&entity.DocumentCounter{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func newProformaService(db *gorm.DB) *ProformaService {
	return NewProformaService(
		infraRepo.NewProformaRepository(db),
		infraRepo.NewProformaItemRepository(db),
		infraRepo.NewPaymentRepository(db),
		infraRepo.NewClientRepository(db),
		infraRepo.NewProductRepository(db),
	)
}

func testItems() []ProformaItemInput {
	return []ProformaItemInput{
		{ProductName: "Frozen Chicken Paws", Quantity: 10, Unit: "MT", UnitPrice: 100},
	}
}

func TestCreateProformaAssignsSequentialNumbers(t *testing.T) {
	db := setupServiceDB(t, "create_numbers")
	svc := newProformaService(db)
	ctx := context.Background()
	userID := uuid.New()
	issued := time.Date(2026, 3, 5, 0, 0, 0, 0, time.UTC)

	first, err := svc.CreateProforma(ctx, &CreateProformaInput{
		UserID:     userID,
		Company:    enum.CompanyTradeEvolution,
		ClientName: "Acme Trading",
		IssuedDate: issued,
		Items:      testItems(),
	})
	if err != nil {
		t.Fatalf("create first: %v", err)
	}
	if first.ProformaNumber != "TRE050326-01" {
		t.Errorf("first number = %q, want TRE050326-01", first.ProformaNumber)
	}

	second, err := svc.CreateProforma(ctx, &CreateProformaInput{
		UserID:     userID,
		Company:    enum.CompanyTradeEvolution,
		ClientName: "Acme Trading",
		IssuedDate: issued,
		Items:      testItems(),
	})
	if err != nil {
		t.Fatalf("create second: %v", err)
	}
	if second.ProformaNumber != "TRE050326-02" {
		t.Errorf("second number = %q, want TRE050326-02", second.ProformaNumber)
	}

	st, err := svc.CreateProforma(ctx, &CreateProformaInput{
		UserID:     userID,
		Company:    enum.CompanySuccessfulTrade,
		ClientName: "Acme Trading",
		IssuedDate: issued,
		Items:      testItems(),
	})
	if err != nil {
		t.Fatalf("create st: %v", err)
	}
	if st.ProformaNumber != "STL267573" {
		t.Errorf("st number = %q, want STL267573", st.ProformaNumber)
	}
}

func TestCreateProformaNumberSurvivesDelete(t *testing.T) {
	db := setupServiceDB(t, "number_survives_delete")
	svc := newProformaService(db)
	ctx := context.Background()
	userID := uuid.New()
	issued := time.Date(2026, 3, 5, 0, 0, 0, 0, time.UTC)

	first, err := svc.CreateProforma(ctx, &CreateProformaInput{
		UserID:     userID,
		Company:    enum.CompanyTradeEvolution,
		ClientName: "Acme Trading",
		IssuedDate: issued,
		Items:      testItems(),
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if err := svc.DeleteProforma(ctx, userID, first.ID, false); err != nil {
		t.Fatalf("delete: %v", err)
	}

	// The deleted document keeps its number reserved.
	second, err := svc.CreateProforma(ctx, &CreateProformaInput{
		UserID:     userID,
		Company:    enum.CompanyTradeEvolution,
		ClientName: "Acme Trading",
		IssuedDate: issued,
		Items:      testItems(),
	})
	if err != nil {
		t.Fatalf("create after delete: %v", err)
	}
	if second.ProformaNumber != "TRE050326-02" {
		t.Errorf("number after delete = %q, want TRE050326-02", second.ProformaNumber)
	}
}

func TestCreateProformaSnapshotsProduct(t *testing.T) {
	db := setupServiceDB(t, "snapshot_product")
	svc := newProformaService(db)
	productRepo := infraRepo.NewProductRepository(db)
	ctx := context.Background()
	userID := uuid.New()

	product := &entity.Product{
		UserID: userID,
		Name:   "Frozen Pork Ribs",
		Price:  250,
		Unit:   "MT",
	}
	if err := productRepo.Create(ctx, product); err != nil {
		t.Fatalf("create product: %v", err)
	}

	proforma, err := svc.CreateProforma(ctx, &CreateProformaInput{
		UserID:     userID,
		Company:    enum.CompanyTradeEvolution,
		ClientName: "Acme Trading",
		IssuedDate: time.Date(2026, 3, 5, 0, 0, 0, 0, time.UTC),
		TaxAmount:  50,
		Items: []ProformaItemInput{
			{ProductID: &product.ID, Quantity: 4},
		},
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if len(proforma.Items) != 1 {
		t.Fatalf("items = %d, want 1", len(proforma.Items))
	}
	item := proforma.Items[0]
	if item.ProductName != "Frozen Pork Ribs" || item.Unit != "MT" || item.UnitPrice != 250 {
		t.Errorf("item snapshot = %q/%q/%v, want catalog values", item.ProductName, item.Unit, item.UnitPrice)
	}
	if proforma.SubTotal != 1000 {
		t.Errorf("sub total = %v, want 1000", proforma.SubTotal)
	}
	if proforma.GrandTotal != 1050 {
		t.Errorf("grand total = %v, want 1050", proforma.GrandTotal)
	}

	// Deleting the product must not rewrite the issued document.
	if err := productRepo.Delete(ctx, product.ID); err != nil {
		t.Fatalf("delete product: %v", err)
	}
	reread, err := svc.GetProforma(ctx, userID, proforma.ID, false)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if reread.Items[0].ProductName != "Frozen Pork Ribs" {
		t.Errorf("snapshot lost after product delete: %q", reread.Items[0].ProductName)
	}
}

func TestCreateProformaValidation(t *testing.T) {
	db := setupServiceDB(t, "create_validation")
	svc := newProformaService(db)
	ctx := context.Background()
	issued := time.Date(2026, 3, 5, 0, 0, 0, 0, time.UTC)

	_, err := svc.CreateProforma(ctx, &CreateProformaInput{
		UserID:     uuid.New(),
		Company:    enum.CompanyBoth,
		ClientName: "Acme Trading",
		IssuedDate: issued,
		Items:      testItems(),
	})
	if err == nil {
		t.Error("expected error for non-issuing company")
	}

	_, err = svc.CreateProforma(ctx, &CreateProformaInput{
		UserID:     uuid.New(),
		Company:    enum.CompanyTradeEvolution,
		ClientName: "Acme Trading",
		IssuedDate: issued,
		Items: []ProformaItemInput{
			{ProductName: "Paws", Quantity: 0, UnitPrice: 10},
		},
	})
	if err == nil {
		t.Error("expected error for zero quantity")
	}
}

func TestUpdateProformaReplacesItems(t *testing.T) {
	db := setupServiceDB(t, "update_items")
	svc := newProformaService(db)
	ctx := context.Background()
	userID := uuid.New()
	issued := time.Date(2026, 3, 5, 0, 0, 0, 0, time.UTC)

	proforma, err := svc.CreateProforma(ctx, &CreateProformaInput{
		UserID:     userID,
		Company:    enum.CompanyTradeEvolution,
		ClientName: "Acme Trading",
		IssuedDate: issued,
		Items: []ProformaItemInput{
			{ProductName: "Paws", Quantity: 10, UnitPrice: 100},
			{ProductName: "Ribs", Quantity: 5, UnitPrice: 200},
		},
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if proforma.SubTotal != 2000 {
		t.Fatalf("sub total = %v, want 2000", proforma.SubTotal)
	}

	updated, err := svc.UpdateProforma(ctx, &UpdateProformaInput{
		UserID:     userID,
		ID:         proforma.ID,
		ClientName: "Acme Trading",
		IssuedDate: issued,
		Items: []ProformaItemInput{
			{ProductName: "Wings", Quantity: 2, UnitPrice: 300},
		},
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}

	if len(updated.Items) != 1 {
		t.Fatalf("items after update = %d, want 1", len(updated.Items))
	}
	if updated.Items[0].ProductName != "Wings" {
		t.Errorf("item = %q, want Wings", updated.Items[0].ProductName)
	}
	if updated.SubTotal != 600 || updated.GrandTotal != 600 {
		t.Errorf("totals = %v/%v, want 600/600", updated.SubTotal, updated.GrandTotal)
	}
	if updated.ProformaNumber != proforma.ProformaNumber {
		t.Errorf("number changed on update: %q -> %q", proforma.ProformaNumber, updated.ProformaNumber)
	}
}

func TestProformaOwnership(t *testing.T) {
	db := setupServiceDB(t, "ownership")
	svc := newProformaService(db)
	ctx := context.Background()
	owner := uuid.New()
	stranger := uuid.New()

	proforma, err := svc.CreateProforma(ctx, &CreateProformaInput{
		UserID:     owner,
		Company:    enum.CompanyTradeEvolution,
		ClientName: "Acme Trading",
		IssuedDate: time.Date(2026, 3, 5, 0, 0, 0, 0, time.UTC),
		Items:      testItems(),
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	err = svc.UpdateProformaStatus(ctx, stranger, proforma.ID, enum.ProformaStatusSent, false)
	if err != apperror.ErrForbidden {
		t.Errorf("stranger status update error = %v, want ErrForbidden", err)
	}

	// Admin bypasses ownership.
	if err := svc.UpdateProformaStatus(ctx, stranger, proforma.ID, enum.ProformaStatusSent, true); err != nil {
		t.Errorf("admin status update: %v", err)
	}
}

func TestUpdateProformaStatusRejectsUnknown(t *testing.T) {
	db := setupServiceDB(t, "status_unknown")
	svc := newProformaService(db)
	ctx := context.Background()
	userID := uuid.New()

	proforma, err := svc.CreateProforma(ctx, &CreateProformaInput{
		UserID:     userID,
		Company:    enum.CompanyTradeEvolution,
		ClientName: "Acme Trading",
		IssuedDate: time.Date(2026, 3, 5, 0, 0, 0, 0, time.UTC),
		Items:      testItems(),
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if err := svc.UpdateProformaStatus(ctx, userID, proforma.ID, "SHIPPED", false); err == nil {
		t.Error("expected error for unknown status")
	}
}

func TestPaymentsDriveBalanceDue(t *testing.T) {
	db := setupServiceDB(t, "payments_balance")
	svc := newProformaService(db)
	ctx := context.Background()
	userID := uuid.New()

	proforma, err := svc.CreateProforma(ctx, &CreateProformaInput{
		UserID:     userID,
		Company:    enum.CompanyTradeEvolution,
		ClientName: "Acme Trading",
		IssuedDate: time.Date(2026, 3, 5, 0, 0, 0, 0, time.UTC),
		Items:      testItems(), // 1000
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if proforma.BalanceDue() != 1000 {
		t.Fatalf("initial balance = %v, want 1000", proforma.BalanceDue())
	}

	payment, err := svc.AddPayment(ctx, &AddPaymentInput{
		UserID:     userID,
		ProformaID: proforma.ID,
		Amount:     400,
		Date:       time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("add payment: %v", err)
	}

	reread, err := svc.GetProforma(ctx, userID, proforma.ID, false)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if reread.AmountPaid() != 400 || reread.BalanceDue() != 600 {
		t.Errorf("after payment paid/due = %v/%v, want 400/600", reread.AmountPaid(), reread.BalanceDue())
	}

	if _, err := svc.UpdatePayment(ctx, &UpdatePaymentInput{
		UserID:     userID,
		ProformaID: proforma.ID,
		PaymentID:  payment.ID,
		Amount:     250,
		Date:       payment.Date,
	}); err != nil {
		t.Fatalf("update payment: %v", err)
	}

	reread, err = svc.GetProforma(ctx, userID, proforma.ID, false)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if reread.BalanceDue() != 750 {
		t.Errorf("after edit balance = %v, want 750", reread.BalanceDue())
	}

	if err := svc.DeletePayment(ctx, userID, proforma.ID, payment.ID, false); err != nil {
		t.Fatalf("delete payment: %v", err)
	}

	reread, err = svc.GetProforma(ctx, userID, proforma.ID, false)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if reread.BalanceDue() != 1000 {
		t.Errorf("after delete balance = %v, want 1000", reread.BalanceDue())
	}
}

func TestAddPaymentRejectsNonPositiveAmount(t *testing.T) {
	db := setupServiceDB(t, "payment_amount")
	svc := newProformaService(db)
	ctx := context.Background()
	userID := uuid.New()

	proforma, err := svc.CreateProforma(ctx, &CreateProformaInput{
		UserID:     userID,
		Company:    enum.CompanyTradeEvolution,
		ClientName: "Acme Trading",
		IssuedDate: time.Date(2026, 3, 5, 0, 0, 0, 0, time.UTC),
		Items:      testItems(),
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	for _, amount := range []float64{0, -50} {
		if _, err := svc.AddPayment(ctx, &AddPaymentInput{
			UserID:     userID,
			ProformaID: proforma.ID,
			Amount:     amount,
			Date:       time.Now(),
		}); err == nil {
			t.Errorf("amount %v: expected error", amount)
		}
	}
}

func TestUpdatePaymentChecksProformaMatch(t *testing.T) {
	db := setupServiceDB(t, "payment_match")
	svc := newProformaService(db)
	ctx := context.Background()
	userID := uuid.New()
	issued := time.Date(2026, 3, 5, 0, 0, 0, 0, time.UTC)

	first, err := svc.CreateProforma(ctx, &CreateProformaInput{
		UserID: userID, Company: enum.CompanyTradeEvolution,
		ClientName: "Acme", IssuedDate: issued, Items: testItems(),
	})
	if err != nil {
		t.Fatalf("create first: %v", err)
	}
	second, err := svc.CreateProforma(ctx, &CreateProformaInput{
		UserID: userID, Company: enum.CompanyTradeEvolution,
		ClientName: "Acme", IssuedDate: issued, Items: testItems(),
	})
	if err != nil {
		t.Fatalf("create second: %v", err)
	}

	payment, err := svc.AddPayment(ctx, &AddPaymentInput{
		UserID: userID, ProformaID: first.ID, Amount: 100, Date: issued,
	})
	if err != nil {
		t.Fatalf("add payment: %v", err)
	}

	// A payment addressed through the wrong proforma is not found.
	if _, err := svc.UpdatePayment(ctx, &UpdatePaymentInput{
		UserID: userID, ProformaID: second.ID, PaymentID: payment.ID,
		Amount: 200, Date: issued,
	}); err == nil {
		t.Error("expected not found for mismatched proforma")
	}
}

func TestUpdateInvoiceFieldsPreservesFrozenNumber(t *testing.T) {
	db := setupServiceDB(t, "invoice_overlay")
	svc := newProformaService(db)
	ctx := context.Background()
	userID := uuid.New()

	proforma, err := svc.CreateProforma(ctx, &CreateProformaInput{
		UserID:     userID,
		Company:    enum.CompanyTradeEvolution,
		ClientName: "Acme Trading",
		IssuedDate: time.Date(2026, 3, 5, 0, 0, 0, 0, time.UTC),
		Items:      testItems(),
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	withNumber, err := svc.UpdateInvoiceFields(ctx, userID, proforma.ID, false, entity.EditableInvoiceFields{
		InvoiceNumber: "A177",
		PaymentTerms:  "30 days net",
	})
	if err != nil {
		t.Fatalf("set overlay: %v", err)
	}
	if withNumber.InvoiceFields.InvoiceNumber != "A177" {
		t.Fatalf("invoice number = %q, want A177", withNumber.InvoiceFields.InvoiceNumber)
	}

	// Saving the overlay without a number keeps the frozen one.
	updated, err := svc.UpdateInvoiceFields(ctx, userID, proforma.ID, false, entity.EditableInvoiceFields{
		PaymentTerms: "50% advance",
	})
	if err != nil {
		t.Fatalf("update overlay: %v", err)
	}
	if updated.InvoiceFields.InvoiceNumber != "A177" {
		t.Errorf("invoice number = %q, want preserved A177", updated.InvoiceFields.InvoiceNumber)
	}
	if updated.InvoiceFields.PaymentTerms != "50% advance" {
		t.Errorf("payment terms = %q, want 50%% advance", updated.InvoiceFields.PaymentTerms)
	}
}

func TestListProformasFilters(t *testing.T) {
	db := setupServiceDB(t, "list_filters")
	svc := newProformaService(db)
	ctx := context.Background()
	userID := uuid.New()
	issued := time.Date(2026, 3, 5, 0, 0, 0, 0, time.UTC)

	for _, company := range []enum.Company{enum.CompanyTradeEvolution, enum.CompanyTradeEvolution, enum.CompanySuccessfulTrade} {
		if _, err := svc.CreateProforma(ctx, &CreateProformaInput{
			UserID: userID, Company: company,
			ClientName: "Acme", IssuedDate: issued, Items: testItems(),
		}); err != nil {
			t.Fatalf("create: %v", err)
		}
	}

	company := enum.CompanyTradeEvolution
	result, err := svc.ListProformas(ctx, &ListProformasInput{
		UserID:     userID,
		Pagination: &pagination.PaginationParams{Page: 1, PerPage: 10},
		Company:    &company,
	})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(result.Items) != 2 {
		t.Errorf("filtered list = %d rows, want 2", len(result.Items))
	}

	// Another user sees nothing.
	result, err = svc.ListProformas(ctx, &ListProformasInput{
		UserID:     uuid.New(),
		Pagination: &pagination.PaginationParams{Page: 1, PerPage: 10},
	})
	if err != nil {
		t.Fatalf("list other user: %v", err)
	}
	if len(result.Items) != 0 {
		t.Errorf("other user list = %d rows, want 0", len(result.Items))
	}
}
