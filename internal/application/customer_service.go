package application

import (
	"context"
	"fmt"

	"github.com/ari1008/vegnbio-reservation/internal/domain/customer"
)

type CustomerService struct {
	customerRepo customer.Repository
}

func NewCustomerService(cr customer.Repository) *CustomerService {
	return &CustomerService{customerRepo: cr}
}

type CreateCustomerInput struct {
	DisplayName string
	Email       string
}

func (s *CustomerService) CreateCustomer(ctx context.Context, input CreateCustomerInput) (*customer.Customer, error) {
	c := customer.NewCustomer(input.DisplayName, input.Email)
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("バリデーションエラー: %w", err)
	}
	if err := s.customerRepo.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *CustomerService) GetCustomer(ctx context.Context, id string) (*customer.Customer, error) {
	return s.customerRepo.GetByID(ctx, id)
}

func (s *CustomerService) ListCustomers(ctx context.Context, limit, offset int) ([]*customer.Customer, error) {
	return s.customerRepo.List(ctx, normalizeLimit(limit), normalizeOffset(offset))
}
