package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/trade-evolution/tradedocs-api/internal/domain/entity"
	domainRepo "github.com/trade-evolution/tradedocs-api/internal/domain/repository"
	"gorm.io/gorm"
)

type analyticsRepository struct {
	db *gorm.DB
}

// NewAnalyticsRepository creates a new analytics repository
func NewAnalyticsRepository(db *gorm.DB) domainRepo.AnalyticsRepository {
	return &analyticsRepository{db: db}
}

func (r *analyticsRepository) proformaQuery(ctx context.Context, userID uuid.UUID) *gorm.DB {
	query := r.db.WithContext(ctx).Model(&entity.Proforma{})
	if userID != uuid.Nil {
		query = query.Where("proformas.user_id = ?", userID)
	}
	return query
}

func (r *analyticsRepository) CountByStatus(ctx context.Context, userID uuid.UUID) ([]domainRepo.StatusCountResult, error) {
	var results []domainRepo.StatusCountResult
	err := r.proformaQuery(ctx, userID).
		Select("status, COUNT(*) as count").
		Group("status").
		Scan(&results).Error
	return results, err
}

func (r *analyticsRepository) TotalBilled(ctx context.Context, userID uuid.UUID) (float64, error) {
	var total float64
	err := r.proformaQuery(ctx, userID).
		Select("COALESCE(SUM(grand_total), 0)").
		Scan(&total).Error
	return total, err
}

func (r *analyticsRepository) BilledByCompany(ctx context.Context, userID uuid.UUID) ([]domainRepo.CompanyAmountResult, error) {
	var results []domainRepo.CompanyAmountResult
	err := r.proformaQuery(ctx, userID).
		Select("company, COALESCE(SUM(grand_total), 0) as amount").
		Group("company").
		Scan(&results).Error
	return results, err
}

func (r *analyticsRepository) PaidByCompany(ctx context.Context, userID uuid.UUID) ([]domainRepo.CompanyAmountResult, error) {
	var results []domainRepo.CompanyAmountResult
	query := r.db.WithContext(ctx).Model(&entity.Payment{}).
		Joins("JOIN proformas ON proformas.id = payments.proforma_id").
		Where("proformas.deleted_at IS NULL")
	if userID != uuid.Nil {
		query = query.Where("proformas.user_id = ?", userID)
	}
	err := query.
		Select("proformas.company as company, COALESCE(SUM(payments.amount), 0) as amount").
		Group("proformas.company").
		Scan(&results).Error
	return results, err
}

func (r *analyticsRepository) BilledByClient(ctx context.Context, userID uuid.UUID) ([]domainRepo.ClientAmountResult, error) {
	var results []domainRepo.ClientAmountResult
	err := r.proformaQuery(ctx, userID).
		Joins("JOIN clients ON clients.id = proformas.client_id").
		Where("proformas.client_id IS NOT NULL").
		Select("proformas.client_id as client_id, clients.name as client_name, COALESCE(SUM(proformas.grand_total), 0) as amount").
		Group("proformas.client_id, clients.name").
		Scan(&results).Error
	return results, err
}

func (r *analyticsRepository) PaidByClient(ctx context.Context, userID uuid.UUID) ([]domainRepo.ClientAmountResult, error) {
	var results []domainRepo.ClientAmountResult
	query := r.db.WithContext(ctx).Model(&entity.Payment{}).
		Joins("JOIN proformas ON proformas.id = payments.proforma_id").
		Joins("JOIN clients ON clients.id = proformas.client_id").
		Where("proformas.deleted_at IS NULL AND proformas.client_id IS NOT NULL")
	if userID != uuid.Nil {
		query = query.Where("proformas.user_id = ?", userID)
	}
	err := query.
		Select("proformas.client_id as client_id, clients.name as client_name, COALESCE(SUM(payments.amount), 0) as amount").
		Group("proformas.client_id, clients.name").
		Scan(&results).Error
	return results, err
}
