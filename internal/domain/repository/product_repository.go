package repository

import "github.com/billforge/billforge-api/internal/domain/entity"

// ProductRepository is the persistence port for Product.
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	List() ([]*entity.Product, error)
	Update(product *entity.Product) error
	// DecrementStock atomically reduces stock by qty; it fails with
	// domain.ErrInsufficientStock when the row no longer has qty units.
	// This is the authoritative re-validation behind the point-in-time
	// snapshot the draft validator works with.
	DecrementStock(productID string, qty int64) error
}
