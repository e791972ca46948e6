package services

import (
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"produtos/internal/models"
	"produtos/internal/repositories"
	"produtos/pkg/rabbitmq"
)

// ProductService handles the product lifecycle: creation, full replaces,
// partial merges, deletion and lot price aggregation.
type ProductService struct {
	repo     repositories.ProductRepository
	mqClient *rabbitmq.Client
	validate *validator.Validate
}

// fullUpdate mirrors ProductRequest with every field mandatory. A full
// replace must carry the complete representation; create and merge share
// ProductRequest without these constraints.
type fullUpdate struct {
	Description *string          `validate:"required"`
	Price       *decimal.Decimal `validate:"required"`
	Barcode     *string          `validate:"required"`
	Lot         *string          `validate:"required"`
	Quantity    *int             `validate:"required"`
}

// NewProductService creates a new ProductService. The RabbitMQ client may be
// nil, in which case catalog events are not published.
func NewProductService(repo repositories.ProductRepository, mqClient *rabbitmq.Client) *ProductService {
	return &ProductService{
		repo:     repo,
		mqClient: mqClient,
		validate: validator.New(),
	}
}

// GetAllProducts retrieves all products.
func (s *ProductService) GetAllProducts() ([]models.Product, error) {
	return s.repo.GetAll()
}

// GetProductPage retrieves one page of products with the given sorting.
func (s *ProductService) GetProductPage(page, size int, sortBy, order string) (*models.ProductPage, error) {
	return s.repo.GetPage(page, size, sortBy, order)
}

// GetProductByID retrieves a single product by its ID.
func (s *ProductService) GetProductByID(id string) (*models.Product, error) {
	product, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, &models.NotFoundError{Resource: "product", Key: id}
	}
	return product, nil
}

// CreateProduct persists a new product built from whatever fields the
// request carries. Unlike ReplaceProduct it performs no presence check:
// absent fields are stored as absent. The store assigns the ID.
func (s *ProductService) CreateProduct(req *models.ProductRequest) (*models.Product, error) {
	product := &models.Product{
		Price: req.Price,
	}
	if req.Description != nil {
		product.Description = *req.Description
	}
	if req.Barcode != nil {
		product.Barcode = *req.Barcode
	}
	if req.Lot != nil {
		product.Lot = *req.Lot
	}
	if req.Quantity != nil {
		product.Quantity = *req.Quantity
	}

	created, err := s.repo.Save(product)
	if err != nil {
		return nil, err
	}
	s.publishEvent("product.created", created)
	return created, nil
}

// ReplaceProduct overwrites every field of an existing product with the
// request values. The presence check runs before the existence lookup, so an
// incomplete request fails with a ValidationError even for an unknown ID.
func (s *ProductService) ReplaceProduct(id string, req *models.ProductRequest) (*models.Product, error) {
	payload := fullUpdate{
		Description: req.Description,
		Price:       req.Price,
		Barcode:     req.Barcode,
		Lot:         req.Lot,
		Quantity:    req.Quantity,
	}
	if err := s.validate.Struct(payload); err != nil {
		var missing []string
		for _, fieldErr := range err.(validator.ValidationErrors) {
			missing = append(missing, strings.ToLower(fieldErr.Field()))
		}
		return nil, &models.ValidationError{Fields: missing}
	}

	current, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if current == nil {
		return nil, &models.NotFoundError{Resource: "product", Key: id}
	}

	// Full overwrite: nothing is inherited from the stored record.
	updated := &models.Product{
		ID:          id,
		Description: *req.Description,
		Price:       req.Price,
		Barcode:     *req.Barcode,
		Lot:         *req.Lot,
		Quantity:    *req.Quantity,
	}
	saved, err := s.repo.Save(updated)
	if err != nil {
		return nil, err
	}
	s.publishEvent("product.updated", saved)
	return saved, nil
}

// MergeProduct updates an existing product field by field: a field present
// in the request overwrites, an absent one keeps the stored value.
func (s *ProductService) MergeProduct(id string, req *models.ProductRequest) (*models.Product, error) {
	current, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if current == nil {
		return nil, &models.NotFoundError{Resource: "product", Key: id}
	}

	updated := *current
	updated.ID = id
	if req.Description != nil {
		updated.Description = *req.Description
	}
	if req.Price != nil {
		updated.Price = req.Price
	}
	if req.Barcode != nil {
		updated.Barcode = *req.Barcode
	}
	if req.Lot != nil {
		updated.Lot = *req.Lot
	}
	if req.Quantity != nil {
		updated.Quantity = *req.Quantity
	}

	saved, err := s.repo.Save(&updated)
	if err != nil {
		return nil, err
	}
	s.publishEvent("product.updated", saved)
	return saved, nil
}

// DeleteProduct deletes a product by its ID.
func (s *ProductService) DeleteProduct(id string) error {
	product, err := s.repo.GetByID(id)
	if err != nil {
		return err
	}
	if product == nil {
		return &models.NotFoundError{Resource: "product", Key: id}
	}
	if err := s.repo.Delete(product); err != nil {
		return err
	}
	s.publishEvent("product.deleted", product)
	return nil
}

// DeleteAllProducts removes every product from the catalog.
func (s *ProductService) DeleteAllProducts() error {
	return s.repo.DeleteAll()
}

// SumPricesByLot sums the prices of every product in the given lot.
// Products without a price contribute zero; a lot with no products at all is
// a not-found condition, never a zero sum.
func (s *ProductService) SumPricesByLot(lot string) (decimal.Decimal, error) {
	products, err := s.repo.GetByLot(lot)
	if err != nil {
		return decimal.Zero, err
	}
	if len(products) == 0 {
		return decimal.Zero, &models.NotFoundError{Resource: "lot", Key: lot}
	}

	sum := decimal.Zero
	for _, product := range products {
		if product.Price != nil {
			sum = sum.Add(*product.Price)
		}
	}
	return sum, nil
}

// publishEvent emits a catalog change event. Publishing is best-effort: a
// broker failure is logged and never surfaced to the caller.
func (s *ProductService) publishEvent(event string, product *models.Product) {
	if s.mqClient == nil {
		return
	}
	payload := map[string]interface{}{
		"productID": product.ID,
		"barcode":   product.Barcode,
		"lot":       product.Lot,
	}
	if err := s.mqClient.PublishProductEvent(event, payload); err != nil {
		logrus.Warnf("Failed to publish %s for product %s: %v", event, product.ID, err)
	}
}
