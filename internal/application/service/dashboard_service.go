package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/trade-evolution/tradedocs-api/internal/domain/enum"
	"github.com/trade-evolution/tradedocs-api/internal/domain/repository"
)

// DashboardService aggregates proforma and payment figures for the
// dashboard landing page.
type DashboardService struct {
	analyticsRepo repository.AnalyticsRepository
	clientRepo    repository.ClientRepository
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(analyticsRepo repository.AnalyticsRepository, clientRepo repository.ClientRepository) *DashboardService {
	return &DashboardService{
		analyticsRepo: analyticsRepo,
		clientRepo:    clientRepo,
	}
}

// CompanyOutstanding is the billed, paid and outstanding total for one
// issuing company.
type CompanyOutstanding struct {
	Company     enum.Company `json:"company"`
	TotalBilled float64      `json:"total_billed"`
	TotalPaid   float64      `json:"total_paid"`
	Outstanding float64      `json:"outstanding"`
}

// ClientOutstanding is the billed, paid and outstanding total for one
// client. ManualBalance reports whether the figure comes from the
// client's manually entered balance instead of the payment ledger.
type ClientOutstanding struct {
	ClientID      uuid.UUID `json:"client_id"`
	ClientName    string    `json:"client_name"`
	TotalBilled   float64   `json:"total_billed"`
	TotalPaid     float64   `json:"total_paid"`
	Outstanding   float64   `json:"outstanding"`
	ManualBalance bool      `json:"manual_balance"`
}

// DashboardSummary is the full dashboard payload.
type DashboardSummary struct {
	TotalProformas int64                         `json:"total_proformas"`
	StatusCounts   map[enum.ProformaStatus]int64 `json:"status_counts"`
	TotalBilled    float64                       `json:"total_billed"`
	ByCompany      []CompanyOutstanding          `json:"by_company"`
	ByClient       []ClientOutstanding           `json:"by_client"`
}

// GetSummary builds the dashboard summary. A zero userID aggregates
// across all users; per-client rows honor a manually entered client
// balance over the computed one.
func (s *DashboardService) GetSummary(ctx context.Context, userID uuid.UUID, isAdmin bool) (*DashboardSummary, error) {
	scope := userID
	if isAdmin {
		scope = uuid.Nil
	}

	statusResults, err := s.analyticsRepo.CountByStatus(ctx, scope)
	if err != nil {
		return nil, err
	}

	statusCounts := make(map[enum.ProformaStatus]int64, len(statusResults))
	var totalProformas int64
	for _, r := range statusResults {
		statusCounts[r.Status] = r.Count
		totalProformas += r.Count
	}

	totalBilled, err := s.analyticsRepo.TotalBilled(ctx, scope)
	if err != nil {
		return nil, err
	}

	byCompany, err := s.companyOutstanding(ctx, scope)
	if err != nil {
		return nil, err
	}

	byClient, err := s.clientOutstanding(ctx, scope)
	if err != nil {
		return nil, err
	}

	return &DashboardSummary{
		TotalProformas: totalProformas,
		StatusCounts:   statusCounts,
		TotalBilled:    totalBilled,
		ByCompany:      byCompany,
		ByClient:       byClient,
	}, nil
}

func (s *DashboardService) companyOutstanding(ctx context.Context, userID uuid.UUID) ([]CompanyOutstanding, error) {
	billed, err := s.analyticsRepo.BilledByCompany(ctx, userID)
	if err != nil {
		return nil, err
	}
	paid, err := s.analyticsRepo.PaidByCompany(ctx, userID)
	if err != nil {
		return nil, err
	}

	paidByCompany := make(map[enum.Company]float64, len(paid))
	for _, r := range paid {
		paidByCompany[r.Company] = r.Amount
	}

	result := make([]CompanyOutstanding, 0, len(billed))
	for _, r := range billed {
		result = append(result, CompanyOutstanding{
			Company:     r.Company,
			TotalBilled: r.Amount,
			TotalPaid:   paidByCompany[r.Company],
			Outstanding: r.Amount - paidByCompany[r.Company],
		})
	}
	return result, nil
}

func (s *DashboardService) clientOutstanding(ctx context.Context, userID uuid.UUID) ([]ClientOutstanding, error) {
	billed, err := s.analyticsRepo.BilledByClient(ctx, userID)
	if err != nil {
		return nil, err
	}
	paid, err := s.analyticsRepo.PaidByClient(ctx, userID)
	if err != nil {
		return nil, err
	}

	paidByClient := make(map[uuid.UUID]float64, len(paid))
	for _, r := range paid {
		paidByClient[r.ClientID] = r.Amount
	}

	result := make([]ClientOutstanding, 0, len(billed))
	for _, r := range billed {
		row := ClientOutstanding{
			ClientID:    r.ClientID,
			ClientName:  r.ClientName,
			TotalBilled: r.Amount,
			TotalPaid:   paidByClient[r.ClientID],
			Outstanding: r.Amount - paidByClient[r.ClientID],
		}

		client, err := s.clientRepo.GetByID(ctx, r.ClientID)
		if err != nil {
			return nil, err
		}
		if client != nil && client.Balance != nil {
			row.Outstanding = *client.Balance
			row.ManualBalance = true
		}

		result = append(result, row)
	}
	return result, nil
}
