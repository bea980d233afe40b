package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/trade-evolution/tradedocs-api/internal/domain/enum"
)

// StatusCountResult represents the number of proformas in one status
type StatusCountResult struct {
	Status enum.ProformaStatus
	Count  int64
}

// CompanyAmountResult represents an amount aggregated per issuing company
type CompanyAmountResult struct {
	Company enum.Company
	Amount  float64
}

// ClientAmountResult represents an amount aggregated per client
type ClientAmountResult struct {
	ClientID   uuid.UUID
	ClientName string
	Amount     float64
}

// AnalyticsRepository defines interface for dashboard aggregation queries
type AnalyticsRepository interface {
	// CountByStatus returns proforma counts grouped by status
	CountByStatus(ctx context.Context, userID uuid.UUID) ([]StatusCountResult, error)

	// TotalBilled returns the sum of grand totals across all proformas
	TotalBilled(ctx context.Context, userID uuid.UUID) (float64, error)

	// BilledByCompany returns grand totals grouped by issuing company
	BilledByCompany(ctx context.Context, userID uuid.UUID) ([]CompanyAmountResult, error)

	// PaidByCompany returns recorded payment sums grouped by issuing company
	PaidByCompany(ctx context.Context, userID uuid.UUID) ([]CompanyAmountResult, error)

	// BilledByClient returns grand totals grouped by linked client
	BilledByClient(ctx context.Context, userID uuid.UUID) ([]ClientAmountResult, error)

	// PaidByClient returns recorded payment sums grouped by linked client
	PaidByClient(ctx context.Context, userID uuid.UUID) ([]ClientAmountResult, error)
}
