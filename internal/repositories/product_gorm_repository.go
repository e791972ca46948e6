package repositories

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"produtos/internal/models"
)

// GORMProductRepository is a GORM implementation of ProductRepository.
type GORMProductRepository struct {
	db *gorm.DB
}

// NewGORMProductRepository creates a new instance of GORMProductRepository.
func NewGORMProductRepository(db *gorm.DB) *GORMProductRepository {
	return &GORMProductRepository{
		db: db,
	}
}

// GetAll retrieves all products from the database.
func (r *GORMProductRepository) GetAll() ([]models.Product, error) {
	var products []models.Product
	if err := r.db.Find(&products).Error; err != nil {
		return nil, &models.StoreError{Op: "get all products", Err: err}
	}
	return products, nil
}

// sortColumns lists the product columns a page may be ordered by.
var sortColumns = map[string]bool{
	"id":          true,
	"description": true,
	"price":       true,
	"barcode":     true,
	"lot":         true,
	"quantity":    true,
}

// GetPage retrieves one page of products. The page index is zero-based; an
// unknown sort column surfaces as a StoreError.
func (r *GORMProductRepository) GetPage(page, size int, sortBy, order string) (*models.ProductPage, error) {
	if page < 0 {
		page = 0
	}
	if size < 1 {
		size = 10
	}
	if !sortColumns[sortBy] {
		return nil, &models.StoreError{
			Op:  "get product page",
			Err: fmt.Errorf("unknown sort column %q", sortBy),
		}
	}
	direction := "asc"
	if strings.EqualFold(order, "desc") {
		direction = "desc"
	}

	var total int64
	if err := r.db.Model(&models.Product{}).Count(&total).Error; err != nil {
		return nil, &models.StoreError{Op: "count products", Err: err}
	}

	var products []models.Product
	err := r.db.Order(fmt.Sprintf("%s %s", sortBy, direction)).
		Offset(page * size).
		Limit(size).
		Find(&products).Error
	if err != nil {
		return nil, &models.StoreError{Op: "get product page", Err: err}
	}

	totalPages := int((total + int64(size) - 1) / int64(size))
	return &models.ProductPage{
		Content:       products,
		Page:          page,
		TotalPages:    totalPages,
		TotalElements: total,
	}, nil
}

// GetByLot retrieves every product carrying the given lot.
func (r *GORMProductRepository) GetByLot(lot string) ([]models.Product, error) {
	var products []models.Product
	if err := r.db.Find(&products, "lot = ?", lot).Error; err != nil {
		return nil, &models.StoreError{Op: fmt.Sprintf("get products by lot %s", lot), Err: err}
	}
	return products, nil
}

// GetByID retrieves a single product by its ID. A missing record is not an
// error here; the caller gets (nil, nil).
func (r *GORMProductRepository) GetByID(id string) (*models.Product, error) {
	var product models.Product
	if err := r.db.First(&product, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, &models.StoreError{Op: fmt.Sprintf("get product by ID %s", id), Err: err}
	}
	return &product, nil
}

// Save upserts a product. A blank ID means the store assigns one.
func (r *GORMProductRepository) Save(product *models.Product) (*models.Product, error) {
	if product.ID == "" {
		product.ID = uuid.New().String()
	}
	if err := r.db.Save(product).Error; err != nil {
		return nil, &models.StoreError{Op: fmt.Sprintf("save product %s", product.ID), Err: err}
	}
	return product, nil
}

// Delete removes a product from the database.
func (r *GORMProductRepository) Delete(product *models.Product) error {
	if err := r.db.Delete(product).Error; err != nil {
		return &models.StoreError{Op: fmt.Sprintf("delete product %s", product.ID), Err: err}
	}
	return nil
}

// DeleteAll removes every product.
func (r *GORMProductRepository) DeleteAll() error {
	err := r.db.Session(&gorm.Session{AllowGlobalUpdate: true}).
		Delete(&models.Product{}).Error
	if err != nil {
		return &models.StoreError{Op: "delete all products", Err: err}
	}
	return nil
}
