package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/trade-evolution/tradedocs-api/internal/domain/entity"
	"github.com/trade-evolution/tradedocs-api/internal/domain/enum"
	"github.com/trade-evolution/tradedocs-api/pkg/pagination"
)

// ProformaRepository defines the interface for proforma data operations
type ProformaRepository interface {
	Create(ctx context.Context, proforma *entity.Proforma) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Proforma, error)
	GetByNumber(ctx context.Context, number string) (*entity.Proforma, error)
	Update(ctx context.Context, proforma *entity.Proforma) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, userID uuid.UUID, params *ProformaFilterParams) ([]entity.Proforma, int64, error)
	GetWithDetails(ctx context.Context, id uuid.UUID) (*entity.Proforma, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status enum.ProformaStatus) error
	// ListNumbersByCompany returns every proforma number issued for a
	// company, soft-deleted rows included so their numbers stay reserved.
	ListNumbersByCompany(ctx context.Context, company enum.Company) ([]string, error)
}

// ProformaFilterParams contains filtering parameters for proforma queries
type ProformaFilterParams struct {
	Pagination *pagination.PaginationParams
	Search     string
	Status     *enum.ProformaStatus
	Company    *enum.Company
	ClientID   *uuid.UUID
	SortBy     string
	SortOrder  string
}

// ProformaItemRepository defines the interface for proforma line item operations
type ProformaItemRepository interface {
	Create(ctx context.Context, item *entity.ProformaItem) error
	CreateBatch(ctx context.Context, items []entity.ProformaItem) error
	GetByProformaID(ctx context.Context, proformaID uuid.UUID) ([]entity.ProformaItem, error)
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteByProformaID(ctx context.Context, proformaID uuid.UUID) error
}

// PaymentRepository defines the interface for payment data operations
type PaymentRepository interface {
	Create(ctx context.Context, payment *entity.Payment) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Payment, error)
	Update(ctx context.Context, payment *entity.Payment) error
	Delete(ctx context.Context, id uuid.UUID) error
	GetByProformaID(ctx context.Context, proformaID uuid.UUID) ([]entity.Payment, error)
}
