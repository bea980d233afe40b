package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/trade-evolution/tradedocs-api/internal/domain/entity"
	"github.com/trade-evolution/tradedocs-api/internal/domain/enum"
	domainRepo "github.com/trade-evolution/tradedocs-api/internal/domain/repository"
	"gorm.io/gorm"
)

type proformaRepository struct {
	db *gorm.DB
}

// NewProformaRepository creates a new proforma repository
func NewProformaRepository(db *gorm.DB) domainRepo.ProformaRepository {
	return &proformaRepository{db: db}
}

func (r *proformaRepository) Create(ctx context.Context, proforma *entity.Proforma) error {
	return r.db.WithContext(ctx).Create(proforma).Error
}

func (r *proformaRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Proforma, error) {
	var proforma entity.Proforma
	err := r.db.WithContext(ctx).
		Preload("Client").
		First(&proforma, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &proforma, err
}

func (r *proformaRepository) GetByNumber(ctx context.Context, number string) (*entity.Proforma, error) {
	var proforma entity.Proforma
	err := r.db.WithContext(ctx).First(&proforma, "proforma_number = ?", number).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &proforma, err
}

func (r *proformaRepository) Update(ctx context.Context, proforma *entity.Proforma) error {
	return r.db.WithContext(ctx).Save(proforma).Error
}

func (r *proformaRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entity.Proforma{}, "id = ?", id).Error
}

func (r *proformaRepository) List(ctx context.Context, userID uuid.UUID, params *domainRepo.ProformaFilterParams) ([]entity.Proforma, int64, error) {
	var proformas []entity.Proforma
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Proforma{})

	// Only filter by user_id if a non-zero userID is provided (admins see all)
	if userID != uuid.Nil {
		query = query.Where("user_id = ?", userID)
	}

	if params.Search != "" {
		query = query.Where("proforma_number ILIKE ? OR client_name ILIKE ?",
			"%"+params.Search+"%", "%"+params.Search+"%")
	}

	if params.Status != nil {
		query = query.Where("status = ?", *params.Status)
	}

	if params.Company != nil {
		query = query.Where("company = ?", *params.Company)
	}

	if params.ClientID != nil {
		query = query.Where("client_id = ?", *params.ClientID)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	// Sorting
	sortBy := "created_at"
	sortOrder := "DESC"
	if params.SortBy != "" {
		sortBy = params.SortBy
	}
	if params.SortOrder != "" && (params.SortOrder == "ASC" || params.SortOrder == "asc") {
		sortOrder = "ASC"
	}

	params.Pagination.Validate()
	err := query.Offset(params.Pagination.Offset()).Limit(params.Pagination.PerPage).
		Preload("Client").
		Preload("Payments").
		Order(sortBy + " " + sortOrder).
		Find(&proformas).Error

	return proformas, total, err
}

func (r *proformaRepository) GetWithDetails(ctx context.Context, id uuid.UUID) (*entity.Proforma, error) {
	var proforma entity.Proforma
	err := r.db.WithContext(ctx).
		Preload("Client").
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("proforma_items.position ASC")
		}).
		Preload("Payments", func(db *gorm.DB) *gorm.DB {
			return db.Order("payments.date ASC")
		}).
		First(&proforma, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &proforma, err
}

func (r *proformaRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status enum.ProformaStatus) error {
	return r.db.WithContext(ctx).Model(&entity.Proforma{}).
		Where("id = ?", id).
		Update("status", status).Error
}

func (r *proformaRepository) ListNumbersByCompany(ctx context.Context, company enum.Company) ([]string, error) {
	var numbers []string
	// Unscoped so soft-deleted documents keep their numbers reserved.
	err := r.db.WithContext(ctx).Unscoped().Model(&entity.Proforma{}).
		Where("company = ?", company).
		Pluck("proforma_number", &numbers).Error
	return numbers, err
}

type proformaItemRepository struct {
	db *gorm.DB
}

// NewProformaItemRepository creates a new proforma item repository
func NewProformaItemRepository(db *gorm.DB) domainRepo.ProformaItemRepository {
	return &proformaItemRepository{db: db}
}

func (r *proformaItemRepository) Create(ctx context.Context, item *entity.ProformaItem) error {
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *proformaItemRepository) CreateBatch(ctx context.Context, items []entity.ProformaItem) error {
	return r.db.WithContext(ctx).Create(&items).Error
}

func (r *proformaItemRepository) GetByProformaID(ctx context.Context, proformaID uuid.UUID) ([]entity.ProformaItem, error) {
	var items []entity.ProformaItem
	err := r.db.WithContext(ctx).
		Where("proforma_id = ?", proformaID).
		Order("position ASC").
		Find(&items).Error
	return items, err
}

func (r *proformaItemRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entity.ProformaItem{}, "id = ?", id).Error
}

func (r *proformaItemRepository) DeleteByProformaID(ctx context.Context, proformaID uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entity.ProformaItem{}, "proforma_id = ?", proformaID).Error
}

type paymentRepository struct {
	db *gorm.DB
}

// NewPaymentRepository creates a new payment repository
func NewPaymentRepository(db *gorm.DB) domainRepo.PaymentRepository {
	return &paymentRepository{db: db}
}

func (r *paymentRepository) Create(ctx context.Context, payment *entity.Payment) error {
	return r.db.WithContext(ctx).Create(payment).Error
}

func (r *paymentRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Payment, error) {
	var payment entity.Payment
	err := r.db.WithContext(ctx).First(&payment, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &payment, err
}

func (r *paymentRepository) Update(ctx context.Context, payment *entity.Payment) error {
	return r.db.WithContext(ctx).Save(payment).Error
}

func (r *paymentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entity.Payment{}, "id = ?", id).Error
}

func (r *paymentRepository) GetByProformaID(ctx context.Context, proformaID uuid.UUID) ([]entity.Payment, error) {
	var payments []entity.Payment
	err := r.db.WithContext(ctx).
		Where("proforma_id = ?", proformaID).
		Order("date ASC").
		Find(&payments).Error
	return payments, err
}
