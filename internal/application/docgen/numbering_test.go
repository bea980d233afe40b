package docgen

import (
	"testing"
	"time"

	"github.com/trade-evolution/tradedocs-api/internal/domain/entity"
	"github.com/trade-evolution/tradedocs-api/internal/domain/enum"
)

func date(y, m, d int) time.Time {
	return time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
}

func TestNextProformaNumberTradeEvolution(t *testing.T) {
	tests := []struct {
		name     string
		issued   time.Time
		existing []string
		want     string
	}{
		{
			name:   "first of the day",
			issued: date(2025, 7, 25),
			want:   "TRE250725-01",
		},
		{
			name:     "increments highest daily suffix",
			issued:   date(2025, 7, 25),
			existing: []string{"TRE250725-01", "TRE250725-02"},
			want:     "TRE250725-03",
		},
		{
			name:     "gap after deletion is not reused",
			issued:   date(2025, 7, 25),
			existing: []string{"TRE250725-01", "TRE250725-03"},
			want:     "TRE250725-04",
		},
		{
			name:     "other days do not affect the sequence",
			issued:   date(2025, 7, 26),
			existing: []string{"TRE250725-01", "TRE250725-02"},
			want:     "TRE260725-01",
		},
		{
			name:     "malformed suffixes are ignored",
			issued:   date(2025, 7, 25),
			existing: []string{"TRE250725-xx", "TRE250725-02"},
			want:     "TRE250725-03",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NextProformaNumber(enum.CompanyTradeEvolution, tt.issued, tt.existing)
			if got != tt.want {
				t.Errorf("NextProformaNumber() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestNextProformaNumberSuccessfulTrade(t *testing.T) {
	tests := []struct {
		name     string
		issued   time.Time
		existing []string
		want     string
	}{
		{
			name:   "first of the year starts at the base folio",
			issued: date(2025, 3, 1),
			want:   "STL257573",
		},
		{
			name:     "increments the yearly maximum",
			issued:   date(2025, 3, 1),
			existing: []string{"STL257573", "STL257580"},
			want:     "STL257581",
		},
		{
			name:     "numbers below the base folio restart at the base",
			issued:   date(2025, 3, 1),
			existing: []string{"STL251200"},
			want:     "STL257573",
		},
		{
			name:     "previous year does not carry over",
			issued:   date(2026, 1, 10),
			existing: []string{"STL257600"},
			want:     "STL267573",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NextProformaNumber(enum.CompanySuccessfulTrade, tt.issued, tt.existing)
			if got != tt.want {
				t.Errorf("NextProformaNumber() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestNextProformaNumberUnknownCompany(t *testing.T) {
	got := NextProformaNumber(enum.Company("Mystery Co"), date(2025, 7, 25), nil)
	if got != "UNKNOWN-250725" {
		t.Errorf("NextProformaNumber() = %q, want %q", got, "UNKNOWN-250725")
	}
}

func TestInvoiceNumber(t *testing.T) {
	t.Run("frozen overlay number wins", func(t *testing.T) {
		p := &entity.Proforma{
			Company:        enum.CompanyTradeEvolution,
			ProformaNumber: "TRE250725-01",
			InvoiceFields:  &entity.EditableInvoiceFields{InvoiceNumber: "A178"},
		}
		got, needsFolio := InvoiceNumber(p)
		if needsFolio {
			t.Fatal("expected no folio allocation for a frozen number")
		}
		if got != "A178" {
			t.Errorf("InvoiceNumber() = %q, want %q", got, "A178")
		}
	})

	t.Run("successful trade derives from the proforma number", func(t *testing.T) {
		p := &entity.Proforma{
			Company:        enum.CompanySuccessfulTrade,
			ProformaNumber: "STL257573",
		}
		got, needsFolio := InvoiceNumber(p)
		if needsFolio {
			t.Fatal("successful trade numbers never need a folio")
		}
		if got != "ST25-INV7573" {
			t.Errorf("InvoiceNumber() = %q, want %q", got, "ST25-INV7573")
		}
	})

	t.Run("successful trade derivation is deterministic", func(t *testing.T) {
		p := &entity.Proforma{
			Company:        enum.CompanySuccessfulTrade,
			ProformaNumber: "STL257573",
		}
		first, _ := InvoiceNumber(p)
		second, _ := InvoiceNumber(p)
		if first != second {
			t.Errorf("repeated derivation differs: %q vs %q", first, second)
		}
	})

	t.Run("trade evolution without overlay requests a folio", func(t *testing.T) {
		p := &entity.Proforma{
			Company:        enum.CompanyTradeEvolution,
			ProformaNumber: "TRE250725-01",
		}
		got, needsFolio := InvoiceNumber(p)
		if !needsFolio {
			t.Fatal("expected a folio allocation request")
		}
		if got != "" {
			t.Errorf("InvoiceNumber() = %q, want empty until allocation", got)
		}
	})

	t.Run("short proforma number degrades without panicking", func(t *testing.T) {
		p := &entity.Proforma{
			Company:        enum.CompanySuccessfulTrade,
			ProformaNumber: "STL",
		}
		got, _ := InvoiceNumber(p)
		if got != "ST-INV" {
			t.Errorf("InvoiceNumber() = %q, want %q", got, "ST-INV")
		}
	})
}

func TestFormatTREInvoiceFolio(t *testing.T) {
	tests := []struct {
		counter int64
		want    string
	}{
		{177, "A177"},
		{7, "A007"},
		{1234, "A1234"},
	}
	for _, tt := range tests {
		if got := FormatTREInvoiceFolio(tt.counter); got != tt.want {
			t.Errorf("FormatTREInvoiceFolio(%d) = %q, want %q", tt.counter, got, tt.want)
		}
	}
}

func TestPackingListName(t *testing.T) {
	tests := []struct {
		name     string
		company  enum.Company
		number   string
		want     string
	}{
		{"trade evolution appends suffix", enum.CompanyTradeEvolution, "TRE250725-01", "TRE250725-01_PL"},
		{"successful trade rewrites prefix", enum.CompanySuccessfulTrade, "STL257573", "ST-PL257573"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &entity.Proforma{Company: tt.company, ProformaNumber: tt.number}
			if got := PackingListName(p); got != tt.want {
				t.Errorf("PackingListName() = %q, want %q", got, tt.want)
			}
		})
	}
}
