package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/trade-evolution/tradedocs-api/internal/domain/entity"
	"github.com/trade-evolution/tradedocs-api/internal/domain/repository"
	"github.com/trade-evolution/tradedocs-api/pkg/apperror"
	"github.com/trade-evolution/tradedocs-api/pkg/pagination"
)

// ProductService handles catalog operations
type ProductService struct {
	productRepo repository.ProductRepository
}

// NewProductService creates a new product service
func NewProductService(productRepo repository.ProductRepository) *ProductService {
	return &ProductService{productRepo: productRepo}
}

// CreateProductInput represents the input for creating a product
type CreateProductInput struct {
	UserID      uuid.UUID
	Name        string
	Description string
	Price       float64
	Category    *string
	Unit        string
}

// CreateProduct creates a new catalog product
func (s *ProductService) CreateProduct(ctx context.Context, input *CreateProductInput) (*entity.Product, error) {
	if input.Price < 0 {
		return nil, apperror.NewBadRequestError("Price cannot be negative")
	}

	product := &entity.Product{
		UserID:      input.UserID,
		Name:        input.Name,
		Description: input.Description,
		Price:       input.Price,
		Category:    input.Category,
		Unit:        input.Unit,
	}

	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, err
	}

	return product, nil
}

// GetProduct retrieves a product by ID
func (s *ProductService) GetProduct(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, apperror.NewNotFoundError("Product")
	}
	return product, nil
}

// ListProductsInput represents the input for listing products
type ListProductsInput struct {
	UserID     uuid.UUID
	IsAdmin    bool
	Pagination *pagination.PaginationParams
	Search     string
	Category   string
}

// ListProducts lists catalog products with filtering
func (s *ProductService) ListProducts(ctx context.Context, input *ListProductsInput) (*pagination.PaginatedResult[entity.Product], error) {
	params := &repository.ProductFilterParams{
		Pagination: input.Pagination,
		Search:     input.Search,
		Category:   input.Category,
	}

	var userID uuid.UUID
	if !input.IsAdmin {
		userID = input.UserID
	}

	products, total, err := s.productRepo.List(ctx, userID, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(input.Pagination.Page, input.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(products, pag), nil
}

// UpdateProductInput represents the input for updating a product
type UpdateProductInput struct {
	UserID      uuid.UUID
	ID          uuid.UUID
	IsAdmin     bool
	Name        string
	Description string
	Price       float64
	Category    *string
	Unit        string
}

// UpdateProduct updates a catalog product. Existing proforma items keep
// their snapshot of the product data.
func (s *ProductService) UpdateProduct(ctx context.Context, input *UpdateProductInput) (*entity.Product, error) {
	product, err := s.productRepo.GetByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, apperror.NewNotFoundError("Product")
	}
	if !input.IsAdmin && product.UserID != input.UserID {
		return nil, apperror.ErrForbidden
	}
	if input.Price < 0 {
		return nil, apperror.NewBadRequestError("Price cannot be negative")
	}

	product.Name = input.Name
	product.Description = input.Description
	product.Price = input.Price
	product.Category = input.Category
	product.Unit = input.Unit

	if err := s.productRepo.Update(ctx, product); err != nil {
		return nil, err
	}

	return product, nil
}

// DeleteProduct deletes a catalog product. Proforma items referencing it
// degrade to their stored snapshot.
func (s *ProductService) DeleteProduct(ctx context.Context, userID, id uuid.UUID, isAdmin bool) error {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if product == nil {
		return apperror.NewNotFoundError("Product")
	}
	if !isAdmin && product.UserID != userID {
		return apperror.ErrForbidden
	}

	return s.productRepo.Delete(ctx, id)
}
