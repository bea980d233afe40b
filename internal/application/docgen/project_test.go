package docgen

import (
	"reflect"
	"testing"

	"github.com/google/uuid"
	"github.com/trade-evolution/tradedocs-api/internal/domain/entity"
	"github.com/trade-evolution/tradedocs-api/internal/domain/enum"
)

func strPtr(s string) *string { return &s }

func sampleProforma() *entity.Proforma {
	desc := "Grade A, 25kg bags"
	return &entity.Proforma{
		ID:             uuid.New(),
		Company:        enum.CompanyTradeEvolution,
		ProformaNumber: "TRE250725-01",
		ClientName:     "Acme Imports",
		Currency:       "USD",
		SubTotal:       1000,
		TaxAmount:      0,
		GrandTotal:     1000,
		IssuedDate:     date(2025, 7, 25),
		Items: []entity.ProformaItem{
			{ProductName: "White Sugar", Description: &desc, Quantity: 10, Unit: "MT", UnitPrice: 100, TotalPrice: 1000},
		},
	}
}

func TestProjectInvoiceDataFallbackChains(t *testing.T) {
	p := sampleProforma()
	client := &entity.Client{
		Name:        "Acme",
		CompanyName: strPtr("Acme Imports LLC"),
		Address:     strPtr("12 Harbor Rd\nRotterdam"),
		TaxID:       strPtr("NL-123"),
	}

	data := ProjectInvoiceData(p, client, "A177")

	if data.InvoiceNumber != "A177" {
		t.Errorf("invoice number = %q, want A177", data.InvoiceNumber)
	}
	if data.SoldTo.Name != "Acme Imports LLC" {
		t.Errorf("sold-to name = %q, want client company name", data.SoldTo.Name)
	}
	if want := []string{"12 Harbor Rd", "Rotterdam"}; !reflect.DeepEqual(data.SoldTo.AddressLines, want) {
		t.Errorf("sold-to address lines = %v, want %v", data.SoldTo.AddressLines, want)
	}
	if data.SoldTo.TaxID != "NL-123" {
		t.Errorf("sold-to tax id = %q, want client tax id", data.SoldTo.TaxID)
	}
	// Ship-to falls back to the sold-to party when no override exists.
	if data.ShipTo.Name != "Acme Imports LLC" {
		t.Errorf("ship-to name = %q, want sold-to fallback", data.ShipTo.Name)
	}
	if data.IssuedAtPlace != "Tallinn, Estonia" {
		t.Errorf("issued-at place = %q, want Tallinn, Estonia", data.IssuedAtPlace)
	}
}

func TestProjectInvoiceDataProformaOverridesWin(t *testing.T) {
	p := sampleProforma()
	p.ClientAddress = strPtr("Override St 1\nTallinn")
	p.ClientTaxID = strPtr("EE-999")
	p.ShipToName = strPtr("Acme Warehouse")
	p.ShipToAddress = strPtr("Dock 4")
	client := &entity.Client{
		CompanyName: strPtr("Acme Imports LLC"),
		Address:     strPtr("12 Harbor Rd"),
		TaxID:       strPtr("NL-123"),
	}

	data := ProjectInvoiceData(p, client, "A177")

	if want := []string{"Override St 1", "Tallinn"}; !reflect.DeepEqual(data.SoldTo.AddressLines, want) {
		t.Errorf("sold-to address lines = %v, want proforma override %v", data.SoldTo.AddressLines, want)
	}
	if data.SoldTo.TaxID != "EE-999" {
		t.Errorf("sold-to tax id = %q, want proforma override", data.SoldTo.TaxID)
	}
	if data.ShipTo.Name != "Acme Warehouse" {
		t.Errorf("ship-to name = %q, want proforma override", data.ShipTo.Name)
	}
	if want := []string{"Dock 4"}; !reflect.DeepEqual(data.ShipTo.AddressLines, want) {
		t.Errorf("ship-to address lines = %v, want %v", data.ShipTo.AddressLines, want)
	}
}

func TestProjectInvoiceDataMissingClientDegrades(t *testing.T) {
	p := sampleProforma()

	data := ProjectInvoiceData(p, nil, "A177")

	if data.SoldTo.Name != "Acme Imports" {
		t.Errorf("sold-to name = %q, want proforma snapshot", data.SoldTo.Name)
	}
	if want := []string{"N/A"}; !reflect.DeepEqual(data.SoldTo.AddressLines, want) {
		t.Errorf("sold-to address lines = %v, want %v", data.SoldTo.AddressLines, want)
	}
}

func TestProjectInvoiceDataOverlayFields(t *testing.T) {
	p := sampleProforma()
	p.PaymentTerms = strPtr("30 days net")
	p.InvoiceFields = &entity.EditableInvoiceFields{
		IssuedAtDate: "2025-08-01",
		PaymentTerms: "50% advance",
	}

	data := ProjectInvoiceData(p, nil, "A177")

	if data.IssuedAtDate != "2025-08-01" {
		t.Errorf("issued-at date = %q, want overlay value", data.IssuedAtDate)
	}
	if data.SalesDetail.PaymentTerms != "50% advance" {
		t.Errorf("payment terms = %q, want overlay value", data.SalesDetail.PaymentTerms)
	}
}

func TestProjectInvoiceDataItemDescriptionFallback(t *testing.T) {
	p := sampleProforma()
	p.Items = append(p.Items, entity.ProformaItem{
		ProductName: "Brown Sugar", Quantity: 5, Unit: "MT", UnitPrice: 90, TotalPrice: 450,
	})

	data := ProjectInvoiceData(p, nil, "A177")

	if data.Items[0].Description != "Grade A, 25kg bags" {
		t.Errorf("item 0 description = %q, want stored description", data.Items[0].Description)
	}
	if data.Items[1].Description != "Brown Sugar" {
		t.Errorf("item 1 description = %q, want product name fallback", data.Items[1].Description)
	}
}

func TestProjectInvoiceDataBalance(t *testing.T) {
	p := sampleProforma()
	p.Payments = []entity.Payment{{Amount: 400}, {Amount: 100}}

	data := ProjectInvoiceData(p, nil, "A177")

	if data.AmountPaid != 500 {
		t.Errorf("amount paid = %v, want 500", data.AmountPaid)
	}
	if data.BalanceDue != 500 {
		t.Errorf("balance due = %v, want 500", data.BalanceDue)
	}
}

func TestProjectPackingListSynthesizedContainers(t *testing.T) {
	p := sampleProforma()

	data := ProjectPackingListData(p, nil, "A177", DefaultHeuristics())

	if len(data.ContainerItems) != 1 {
		t.Fatalf("container count = %d, want one per line item", len(data.ContainerItems))
	}
	c := data.ContainerItems[0]
	if c.ContainerNumber != "TBN" {
		t.Errorf("container number = %q, want TBN placeholder", c.ContainerNumber)
	}
	if c.NetWeight != 900 {
		t.Errorf("net weight = %v, want 900", c.NetWeight)
	}
	if c.GrossWeight != 950 {
		t.Errorf("gross weight = %v, want 950", c.GrossWeight)
	}
	if c.TotalVolumeM3 != 0.5 {
		t.Errorf("volume = %v, want 0.5", c.TotalVolumeM3)
	}
	if c.TotalPacks != 10 || c.TotalPieces != 10 {
		t.Errorf("packs/pieces = %v/%v, want quantity", c.TotalPacks, c.TotalPieces)
	}
}

func TestProjectPackingListVolumeRounding(t *testing.T) {
	p := sampleProforma()
	p.Items[0].Quantity = 3.333

	data := ProjectPackingListData(p, nil, "A177", DefaultHeuristics())

	if got := data.ContainerItems[0].TotalVolumeM3; got != 0.167 {
		t.Errorf("volume = %v, want 0.167", got)
	}
}

func TestProjectPackingListContainerNumberFromProforma(t *testing.T) {
	p := sampleProforma()
	p.ContainerNo = strPtr("MSKU1234567")

	data := ProjectPackingListData(p, nil, "A177", DefaultHeuristics())

	if got := data.ContainerItems[0].ContainerNumber; got != "MSKU1234567" {
		t.Errorf("container number = %q, want proforma container no", got)
	}
}

func TestProjectPackingListEditedContainers(t *testing.T) {
	p := sampleProforma()
	p.Items = append(p.Items, entity.ProformaItem{
		ProductName: "Brown Sugar", Quantity: 5, Unit: "MT", UnitPrice: 90, TotalPrice: 450,
	})
	p.PackingListFields = &entity.EditablePackingListFields{
		EditedContainers: []entity.EditedContainer{
			{ContainerNumber: "MSKU0000001", NetWeight: 111, GrossWeight: 222, TotalVolumeM3: 1.5},
			{ContainerNumber: "MSKU0000002", NetWeight: 333, GrossWeight: 444, TotalVolumeM3: 2.5},
			{ContainerNumber: "MSKU0000003", NetWeight: 555, GrossWeight: 666, TotalVolumeM3: 3.5},
		},
	}

	data := ProjectPackingListData(p, nil, "A177", DefaultHeuristics())

	if len(data.ContainerItems) != 3 {
		t.Fatalf("container count = %d, want all edited rows", len(data.ContainerItems))
	}
	if got := data.ContainerItems[0].NetWeight; got != 111 {
		t.Errorf("edited net weight = %v, want verbatim 111", got)
	}
	// Container 0 maps to item 0, container 1 to item 1, the surplus
	// container clamps to the last item.
	if data.ContainerItems[0].TotalPacks != 10 {
		t.Errorf("container 0 packs = %v, want item 0 quantity", data.ContainerItems[0].TotalPacks)
	}
	if data.ContainerItems[1].TotalPacks != 5 {
		t.Errorf("container 1 packs = %v, want item 1 quantity", data.ContainerItems[1].TotalPacks)
	}
	if data.ContainerItems[2].TotalPacks != 5 {
		t.Errorf("container 2 packs = %v, want clamped to last item", data.ContainerItems[2].TotalPacks)
	}
}

func TestContainerItemIndex(t *testing.T) {
	tests := []struct {
		containerIdx int
		itemCount    int
		want         int
	}{
		{0, 3, 0},
		{2, 3, 2},
		{5, 3, 2},
		{0, 0, -1},
	}
	for _, tt := range tests {
		if got := ContainerItemIndex(tt.containerIdx, tt.itemCount); got != tt.want {
			t.Errorf("ContainerItemIndex(%d, %d) = %d, want %d", tt.containerIdx, tt.itemCount, got, tt.want)
		}
	}
}

func TestProjectPackingListOverlayAndDefaults(t *testing.T) {
	p := sampleProforma()

	data := ProjectPackingListData(p, nil, "A177", DefaultHeuristics())
	if data.PackingListName != "TRE250725-01_PL" {
		t.Errorf("packing list name = %q, want TRE250725-01_PL", data.PackingListName)
	}
	if data.ProductSummary != "White Sugar" {
		t.Errorf("product summary = %q, want product names", data.ProductSummary)
	}
	if data.IssuedAtPlace != "Tallinn, Estonia" {
		t.Errorf("issued-at place = %q, want default", data.IssuedAtPlace)
	}
	if data.PortAtOrigin != "N/A" {
		t.Errorf("port at origin = %q, want N/A placeholder", data.PortAtOrigin)
	}

	p.PackingListFields = &entity.EditablePackingListFields{
		IssuedAtPlace:    "Singapore",
		ProductSummary:   "Custom summary",
		PackingListNotes: "Handle with care",
	}
	data = ProjectPackingListData(p, nil, "A177", DefaultHeuristics())
	if data.IssuedAtPlace != "Singapore" {
		t.Errorf("issued-at place = %q, want overlay value", data.IssuedAtPlace)
	}
	if data.ProductSummary != "Custom summary" {
		t.Errorf("product summary = %q, want overlay value", data.ProductSummary)
	}
	if data.PackingListNotes != "Handle with care" {
		t.Errorf("notes = %q, want overlay value", data.PackingListNotes)
	}
}

func TestProjectPackingListSuccessfulTradeDefaults(t *testing.T) {
	p := sampleProforma()
	p.Company = enum.CompanySuccessfulTrade
	p.ProformaNumber = "STL257573"

	data := ProjectPackingListData(p, nil, "ST25-INV7573", DefaultHeuristics())

	if data.PackingListName != "ST-PL257573" {
		t.Errorf("packing list name = %q, want ST-PL257573", data.PackingListName)
	}
	if data.IssuedAtPlace != "" {
		t.Errorf("issued-at place = %q, want empty for Successful Trade", data.IssuedAtPlace)
	}
}
