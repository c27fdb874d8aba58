package repository

import "github.com/billforge/billforge-api/internal/domain/entity"

// CustomerRepository is the persistence port for Customer.
type CustomerRepository interface {
	Create(customer *entity.Customer) error
	GetByID(id string) (*entity.Customer, error)
	List() ([]*entity.Customer, error)
	Update(customer *entity.Customer) error
	Delete(id string) error
}
