package repositories

import (
	"produtos/internal/models"
)

// ProductRepository defines the interface for product data access.
// GetByID returns (nil, nil) when no record matches; absence is the signal,
// deciding whether that is an error belongs to the caller.
type ProductRepository interface {
	GetAll() ([]models.Product, error)
	GetPage(page, size int, sortBy, order string) (*models.ProductPage, error)
	GetByLot(lot string) ([]models.Product, error)
	GetByID(id string) (*models.Product, error)
	Save(product *models.Product) (*models.Product, error)
	Delete(product *models.Product) error
	DeleteAll() error
}
