package docgen

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/trade-evolution/tradedocs-api/internal/domain/entity"
	"github.com/trade-evolution/tradedocs-api/internal/domain/enum"
)

const (
	// STLFolioStart is the base Successful Trade folio for a year with no
	// prior proformas.
	STLFolioStart = 7573
	// TREInvoiceFolioSeed is the first Trade Evolution invoice folio
	// handed out when the persisted counter does not exist yet.
	TREInvoiceFolioSeed = 177
)

// NextProformaNumber computes the number for a new proforma from the
// numbers already issued for the same company.
//
// Trade Evolution numbers are TRE{ddMMyy}-{NN} with a per-day sequence:
// one greater than the highest suffix already used that day, so deleting
// a document never frees its number. Successful Trade numbers are
// STL{yy}{folio} with a per-year folio starting at STLFolioStart. An
// unrecognized company yields an UNKNOWN-{ddMMyy} sentinel.
func NextProformaNumber(company enum.Company, issuedDate time.Time, existing []string) string {
	dayPart := issuedDate.Format("020106")
	yearPart := issuedDate.Format("06")

	switch company {
	case enum.CompanyTradeEvolution:
		prefix := "TRE" + dayPart + "-"
		max := 0
		for _, number := range existing {
			if !strings.HasPrefix(number, prefix) {
				continue
			}
			if n, err := strconv.Atoi(number[len(prefix):]); err == nil && n > max {
				max = n
			}
		}
		return fmt.Sprintf("TRE%s-%02d", dayPart, max+1)

	case enum.CompanySuccessfulTrade:
		prefix := "STL" + yearPart
		max := 0
		for _, number := range existing {
			if !strings.HasPrefix(number, prefix) {
				continue
			}
			if n, err := strconv.Atoi(number[len(prefix):]); err == nil && n > max {
				max = n
			}
		}
		counter := STLFolioStart
		if max >= STLFolioStart {
			counter = max + 1
		}
		return fmt.Sprintf("STL%s%d", yearPart, counter)
	}

	return "UNKNOWN-" + dayPart
}

// InvoiceNumber resolves the invoice number for a proforma. A number
// frozen in the invoice overlay is always returned verbatim. Successful
// Trade numbers derive deterministically from the proforma number
// (STL257573 becomes ST25-INV7573). For Trade Evolution without a frozen
// number the second return value is true: a folio must be allocated from
// the persisted counter and written back before the number exists.
func InvoiceNumber(p *entity.Proforma) (string, bool) {
	if p.InvoiceFields != nil && p.InvoiceFields.InvoiceNumber != "" {
		return p.InvoiceFields.InvoiceNumber, false
	}

	if p.Company == enum.CompanyTradeEvolution {
		return "", true
	}

	yearPart := substring(p.ProformaNumber, 3, 5)
	consecutive := substring(p.ProformaNumber, 5, len(p.ProformaNumber))
	return "ST" + yearPart + "-INV" + consecutive, false
}

// FormatTREInvoiceFolio renders an allocated Trade Evolution folio
// counter value as the printed invoice number.
func FormatTREInvoiceFolio(counter int64) string {
	return fmt.Sprintf("A%03d", counter)
}

// PackingListName derives the packing list title from the proforma
// number: TRE250725-01 becomes TRE250725-01_PL, STL257573 becomes
// ST-PL257573.
func PackingListName(p *entity.Proforma) string {
	if p.Company == enum.CompanyTradeEvolution {
		return p.ProformaNumber + "_PL"
	}
	return "ST-PL" + substring(p.ProformaNumber, 3, len(p.ProformaNumber))
}

// substring slices without panicking on short input.
func substring(s string, start, end int) string {
	if start > len(s) {
		return ""
	}
	if end > len(s) {
		end = len(s)
	}
	if start >= end {
		return ""
	}
	return s[start:end]
}
