package billing

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/billforge/billforge-api/internal/application/dto"
	"github.com/billforge/billforge-api/internal/domain"
	"github.com/billforge/billforge-api/internal/domain/entity"
	"github.com/billforge/billforge-api/internal/domain/repository"
)

// CustomerUseCase manages billed parties.
type CustomerUseCase struct {
	repo repository.CustomerRepository
}

// NewCustomerUseCase wires the use case.
func NewCustomerUseCase(repo repository.CustomerRepository) *CustomerUseCase {
	return &CustomerUseCase{repo: repo}
}

// Create registers a customer. Name is the only required field.
func (uc *CustomerUseCase) Create(ctx context.Context, in dto.CreateCustomerRequest) (*dto.CustomerResponse, error) {
	if strings.TrimSpace(in.Name) == "" {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	c := &entity.Customer{
		ID:        uuid.New().String(),
		Name:      strings.TrimSpace(in.Name),
		Address:   in.Address,
		Email:     in.Email,
		Phone:     in.Phone,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(c); err != nil {
		return nil, err
	}
	return toCustomerResponse(c), nil
}

// GetByID returns one customer.
func (uc *CustomerUseCase) GetByID(ctx context.Context, id string) (*dto.CustomerResponse, error) {
	c, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.ErrNotFound
	}
	return toCustomerResponse(c), nil
}

// List returns all customers.
func (uc *CustomerUseCase) List(ctx context.Context) ([]dto.CustomerResponse, error) {
	list, err := uc.repo.List()
	if err != nil {
		return nil, err
	}
	out := make([]dto.CustomerResponse, 0, len(list))
	for _, c := range list {
		out = append(out, *toCustomerResponse(c))
	}
	return out, nil
}

func toCustomerResponse(c *entity.Customer) *dto.CustomerResponse {
	return &dto.CustomerResponse{
		ID:      c.ID,
		Name:    c.Name,
		Address: c.Address,
		Email:   c.Email,
		Phone:   c.Phone,
	}
}
