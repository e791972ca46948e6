package handlers

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"produtos/internal/models"
	"produtos/internal/services"
)

// ProductHandler handles HTTP requests for the product catalog.
type ProductHandler struct {
	service *services.ProductService
	// drawNumber produces the secret for the guessing endpoint; replaced
	// in tests to make the outcome deterministic.
	drawNumber func() int
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(service *services.ProductService) *ProductHandler {
	return &ProductHandler{
		service:    service,
		drawNumber: func() int { return rand.Intn(10) },
	}
}

// RegisterRoutes registers the product routes with the Fiber app.
func (h *ProductHandler) RegisterRoutes(router fiber.Router) {
	productRoutes := router.Group("/products")
	productRoutes.Get("/", h.HandleGetProducts)
	productRoutes.Get("/paged", h.HandleGetProductPage)
	productRoutes.Get("/lots/:lot/price-sum", h.HandleSumPricesByLot)
	productRoutes.Get("/:id", h.HandleGetProductByID)
	productRoutes.Post("/", h.HandleCreateProduct)
	productRoutes.Put("/:id", h.HandleReplaceProduct)
	productRoutes.Patch("/:id", h.HandleMergeProduct)
	productRoutes.Delete("/", h.HandleDeleteAllProducts)
	productRoutes.Delete("/:id", h.HandleDeleteProduct)
	productRoutes.Post("/guess-number/:num", h.HandleGuessNumber)

	cookieRoutes := router.Group("/cookies")
	cookieRoutes.Post("/", h.HandleSetCookie)
	cookieRoutes.Get("/", h.HandleGetCookie)
}

// statusFromError maps the service error kinds to HTTP status codes.
func statusFromError(err error) int {
	var notFound *models.NotFoundError
	if errors.As(err, &notFound) {
		return fiber.StatusNotFound
	}
	var validation *models.ValidationError
	if errors.As(err, &validation) {
		return fiber.StatusBadRequest
	}
	return fiber.StatusInternalServerError
}

// HandleGetProducts retrieves all products.
func (h *ProductHandler) HandleGetProducts(c *fiber.Ctx) error {
	products, err := h.service.GetAllProducts()
	if err != nil {
		logrus.Errorf("Error getting all products: %v", err)
		return c.Status(statusFromError(err)).JSON(fiber.Map{
			"message": "Could not retrieve products",
			"error":   err.Error(),
		})
	}
	return c.JSON(products)
}

// HandleGetProductPage retrieves a page of products. The page index is
// zero-based; size defaults to 10, sorting to ascending id.
func (h *ProductHandler) HandleGetProductPage(c *fiber.Ctx) error {
	page := c.QueryInt("page", 0)
	size := c.QueryInt("size", 10)
	sortBy := c.Query("sort", "id")
	order := c.Query("order", "asc")

	productPage, err := h.service.GetProductPage(page, size, sortBy, order)
	if err != nil {
		logrus.Errorf("Error getting product page %d: %v", page, err)
		return c.Status(statusFromError(err)).JSON(fiber.Map{
			"message": "Could not retrieve product page",
			"error":   err.Error(),
		})
	}
	return c.JSON(productPage)
}

// HandleSumPricesByLot sums the prices of every product in a lot.
func (h *ProductHandler) HandleSumPricesByLot(c *fiber.Ctx) error {
	lot := c.Params("lot")
	total, err := h.service.SumPricesByLot(lot)
	if err != nil {
		logrus.Errorf("Error summing prices for lot %s: %v", lot, err)
		return c.Status(statusFromError(err)).JSON(fiber.Map{
			"message": "Could not sum prices for lot",
			"error":   err.Error(),
		})
	}
	return c.JSON(fiber.Map{
		"lot":   lot,
		"total": total,
	})
}

// HandleGetProductByID retrieves a single product by its ID.
func (h *ProductHandler) HandleGetProductByID(c *fiber.Ctx) error {
	productID := c.Params("id")
	product, err := h.service.GetProductByID(productID)
	if err != nil {
		logrus.Errorf("Error getting product by ID %s: %v", productID, err)
		return c.Status(statusFromError(err)).JSON(fiber.Map{
			"message": "Could not retrieve product",
			"error":   err.Error(),
		})
	}
	return c.JSON(product)
}

// HandleCreateProduct creates a new product. The request fields are all
// optional here; whatever was supplied is persisted.
func (h *ProductHandler) HandleCreateProduct(c *fiber.Ctx) error {
	var req models.ProductRequest
	if err := c.BodyParser(&req); err != nil {
		logrus.Errorf("Error parsing create request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	created, err := h.service.CreateProduct(&req)
	if err != nil {
		logrus.Errorf("Error creating product: %v", err)
		return c.Status(statusFromError(err)).JSON(fiber.Map{
			"message": "Could not create product",
			"error":   err.Error(),
		})
	}
	return c.Status(fiber.StatusCreated).JSON(created)
}

// HandleReplaceProduct overwrites an existing product with the full
// representation carried by the request.
func (h *ProductHandler) HandleReplaceProduct(c *fiber.Ctx) error {
	productID := c.Params("id")
	var req models.ProductRequest
	if err := c.BodyParser(&req); err != nil {
		logrus.Errorf("Error parsing replace request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	updated, err := h.service.ReplaceProduct(productID, &req)
	if err != nil {
		logrus.Errorf("Error replacing product %s: %v", productID, err)
		return c.Status(statusFromError(err)).JSON(fiber.Map{
			"message": "Could not replace product",
			"error":   err.Error(),
		})
	}
	return c.JSON(updated)
}

// HandleMergeProduct applies a partial update to an existing product.
func (h *ProductHandler) HandleMergeProduct(c *fiber.Ctx) error {
	productID := c.Params("id")
	var req models.ProductRequest
	if err := c.BodyParser(&req); err != nil {
		logrus.Errorf("Error parsing merge request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	updated, err := h.service.MergeProduct(productID, &req)
	if err != nil {
		logrus.Errorf("Error merging product %s: %v", productID, err)
		return c.Status(statusFromError(err)).JSON(fiber.Map{
			"message": "Could not update product",
			"error":   err.Error(),
		})
	}
	return c.JSON(updated)
}

// HandleDeleteProduct deletes a single product by its ID.
func (h *ProductHandler) HandleDeleteProduct(c *fiber.Ctx) error {
	productID := c.Params("id")
	if err := h.service.DeleteProduct(productID); err != nil {
		logrus.Errorf("Error deleting product %s: %v", productID, err)
		return c.Status(statusFromError(err)).JSON(fiber.Map{
			"message": "Could not delete product",
			"error":   err.Error(),
		})
	}
	return c.JSON(fiber.Map{
		"message": "Product deleted successfully",
	})
}

// HandleDeleteAllProducts removes every product from the catalog.
func (h *ProductHandler) HandleDeleteAllProducts(c *fiber.Ctx) error {
	if err := h.service.DeleteAllProducts(); err != nil {
		logrus.Errorf("Error deleting all products: %v", err)
		return c.Status(statusFromError(err)).JSON(fiber.Map{
			"message": "Could not delete products",
			"error":   err.Error(),
		})
	}
	return c.JSON(fiber.Map{
		"message": "All products deleted successfully",
	})
}

// HandleGuessNumber compares the guess in the path against a freshly drawn
// number between 0 and 9. A wrong guess reveals the drawn number.
func (h *ProductHandler) HandleGuessNumber(c *fiber.Ctx) error {
	guess, err := c.ParamsInt("num")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Guess must be a number",
			"error":   err.Error(),
		})
	}

	drawn := h.drawNumber()
	if guess == drawn {
		return c.JSON(fiber.Map{
			"message": "Correct guess",
		})
	}
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"message": fmt.Sprintf("Wrong guess, the number was %d", drawn),
	})
}

// HandleSetCookie sets the demo username cookie: two minutes, HttpOnly,
// whole application path.
func (h *ProductHandler) HandleSetCookie(c *fiber.Ctx) error {
	c.Cookie(&fiber.Cookie{
		Name:     "username",
		Value:    "john_doe",
		MaxAge:   2 * 60,
		HTTPOnly: true,
		Path:     "/",
	})
	return c.JSON(fiber.Map{
		"message": "Cookie set successfully",
	})
}

// HandleGetCookie reads the demo username cookie back.
func (h *ProductHandler) HandleGetCookie(c *fiber.Ctx) error {
	value := c.Cookies("username")
	if value == "" {
		return c.JSON(fiber.Map{
			"message": "No cookie found",
		})
	}
	return c.JSON(fiber.Map{
		"message": "Cookie found",
		"value":   value,
	})
}
