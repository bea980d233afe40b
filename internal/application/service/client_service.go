package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/trade-evolution/tradedocs-api/internal/domain/entity"
	"github.com/trade-evolution/tradedocs-api/internal/domain/enum"
	"github.com/trade-evolution/tradedocs-api/internal/domain/repository"
	"github.com/trade-evolution/tradedocs-api/pkg/apperror"
	"github.com/trade-evolution/tradedocs-api/pkg/pagination"
)

// ClientService handles client-related operations
type ClientService struct {
	clientRepo repository.ClientRepository
}

// NewClientService creates a new client service
func NewClientService(clientRepo repository.ClientRepository) *ClientService {
	return &ClientService{clientRepo: clientRepo}
}

// CreateClientInput represents the input for creating a client
type CreateClientInput struct {
	UserID      uuid.UUID
	Name        string
	CompanyName *string
	Email       string
	Address     *string
	TaxID       *string
	Company     enum.Company
	Balance     *float64
}

// CreateClient creates a new client
func (s *ClientService) CreateClient(ctx context.Context, input *CreateClientInput) (*entity.Client, error) {
	if !input.Company.ValidForClient() {
		return nil, apperror.NewBadRequestError("Invalid company affiliation")
	}

	existing, err := s.clientRepo.GetByEmail(ctx, input.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.NewConflictError("A client with this email already exists")
	}

	client := &entity.Client{
		UserID:      input.UserID,
		Name:        input.Name,
		CompanyName: input.CompanyName,
		Email:       input.Email,
		Address:     input.Address,
		TaxID:       input.TaxID,
		Company:     input.Company,
		Balance:     input.Balance,
	}

	if err := s.clientRepo.Create(ctx, client); err != nil {
		return nil, err
	}

	return client, nil
}

// GetClient retrieves a client by ID
func (s *ClientService) GetClient(ctx context.Context, id uuid.UUID) (*entity.Client, error) {
	client, err := s.clientRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, apperror.NewNotFoundError("Client")
	}
	return client, nil
}

// ListClientsInput represents the input for listing clients
type ListClientsInput struct {
	UserID     uuid.UUID
	IsAdmin    bool
	Pagination *pagination.PaginationParams
	Search     string
	Company    *enum.Company
}

// ListClients lists clients with filtering
func (s *ClientService) ListClients(ctx context.Context, input *ListClientsInput) (*pagination.PaginatedResult[entity.Client], error) {
	params := &repository.ClientFilterParams{
		Pagination: input.Pagination,
		Search:     input.Search,
		Company:    input.Company,
	}

	var userID uuid.UUID
	if !input.IsAdmin {
		userID = input.UserID
	}

	clients, total, err := s.clientRepo.List(ctx, userID, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(input.Pagination.Page, input.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(clients, pag), nil
}

// UpdateClientInput represents the input for updating a client
type UpdateClientInput struct {
	UserID      uuid.UUID
	ID          uuid.UUID
	IsAdmin     bool
	Name        string
	CompanyName *string
	Email       string
	Address     *string
	TaxID       *string
	Company     enum.Company
	Balance     *float64
}

// UpdateClient updates an existing client. Balance is a manual override
// figure independent of the balances computed from proforma payments.
func (s *ClientService) UpdateClient(ctx context.Context, input *UpdateClientInput) (*entity.Client, error) {
	client, err := s.clientRepo.GetByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, apperror.NewNotFoundError("Client")
	}
	if !input.IsAdmin && client.UserID != input.UserID {
		return nil, apperror.ErrForbidden
	}

	if !input.Company.ValidForClient() {
		return nil, apperror.NewBadRequestError("Invalid company affiliation")
	}

	if input.Email != client.Email {
		existing, err := s.clientRepo.GetByEmail(ctx, input.Email)
		if err != nil {
			return nil, err
		}
		if existing != nil && existing.ID != client.ID {
			return nil, apperror.NewConflictError("A client with this email already exists")
		}
	}

	client.Name = input.Name
	client.CompanyName = input.CompanyName
	client.Email = input.Email
	client.Address = input.Address
	client.TaxID = input.TaxID
	client.Company = input.Company
	client.Balance = input.Balance

	if err := s.clientRepo.Update(ctx, client); err != nil {
		return nil, err
	}

	return client, nil
}

// DeleteClient deletes a client. Proformas keep their snapshot of the
// client data, so issued documents are unaffected.
func (s *ClientService) DeleteClient(ctx context.Context, userID, id uuid.UUID, isAdmin bool) error {
	client, err := s.clientRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if client == nil {
		return apperror.NewNotFoundError("Client")
	}
	if !isAdmin && client.UserID != userID {
		return apperror.ErrForbidden
	}

	return s.clientRepo.Delete(ctx, id)
}
