package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/trade-evolution/tradedocs-api/internal/domain/enum"
	"github.com/trade-evolution/tradedocs-api/internal/domain/repository"
	"github.com/trade-evolution/tradedocs-api/pkg/pagination"
	"github.com/xuri/excelize/v2"
)

// ExportService writes proforma listings to XLSX workbooks.
type ExportService struct {
	proformaRepo repository.ProformaRepository
}

// NewExportService creates a new export service
func NewExportService(proformaRepo repository.ProformaRepository) *ExportService {
	return &ExportService{proformaRepo: proformaRepo}
}

// exportPageSize bounds a single export. The dashboard holds a few
// hundred proformas, far below this.
const exportPageSize = 10000

var exportHeaders = []string{
	"Proforma Number",
	"Company",
	"Status",
	"Client",
	"Issued Date",
	"Currency",
	"Sub Total",
	"Tax",
	"Grand Total",
	"Amount Paid",
	"Balance Due",
}

// ExportProformasInput represents the input for exporting proformas
type ExportProformasInput struct {
	UserID  uuid.UUID
	IsAdmin bool
	Status  *enum.ProformaStatus
	Company *enum.Company
}

// ExportProformas builds an XLSX workbook listing the caller's
// proformas. The caller owns the returned file and must Close it.
func (s *ExportService) ExportProformas(ctx context.Context, input *ExportProformasInput) (*excelize.File, error) {
	params := &repository.ProformaFilterParams{
		Pagination: &pagination.PaginationParams{Page: 1, PerPage: exportPageSize},
		Status:     input.Status,
		Company:    input.Company,
		SortBy:     "created_at",
		SortOrder:  "desc",
	}

	var userID uuid.UUID
	if !input.IsAdmin {
		userID = input.UserID
	}

	proformas, _, err := s.proformaRepo.List(ctx, userID, params)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	const sheet = "Proformas"
	f.SetSheetName("Sheet1", sheet)

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
	})
	if err != nil {
		f.Close()
		return nil, err
	}

	for col, header := range exportHeaders {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			f.Close()
			return nil, err
		}
		if err := f.SetCellValue(sheet, cell, header); err != nil {
			f.Close()
			return nil, err
		}
	}
	endHeader, _ := excelize.CoordinatesToCellName(len(exportHeaders), 1)
	if err := f.SetCellStyle(sheet, "A1", endHeader, headerStyle); err != nil {
		f.Close()
		return nil, err
	}

	for i, p := range proformas {
		clientName := p.ClientName
		if p.Client != nil {
			clientName = p.Client.Name
		}

		row := []interface{}{
			p.ProformaNumber,
			string(p.Company),
			string(p.Status),
			clientName,
			p.IssuedDate.Format("2006-01-02"),
			p.Currency,
			p.SubTotal,
			p.TaxAmount,
			p.GrandTotal,
			p.AmountPaid(),
			p.BalanceDue(),
		}

		startCell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			f.Close()
			return nil, err
		}
		if err := f.SetSheetRow(sheet, startCell, &row); err != nil {
			f.Close()
			return nil, err
		}
	}

	if err := f.SetColWidth(sheet, "A", "A", 18); err != nil {
		f.Close()
		return nil, err
	}
	if err := f.SetColWidth(sheet, "D", "D", 28); err != nil {
		f.Close()
		return nil, err
	}

	return f, nil
}

// ExportFilename returns a content-disposition friendly filename for
// the export, e.g. proformas-2026-09-01.xlsx.
func ExportFilename(date string) string {
	return fmt.Sprintf("proformas-%s.xlsx", date)
}
