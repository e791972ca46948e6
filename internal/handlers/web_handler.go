package handlers

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"produtos/internal/models"
	"produtos/internal/services"
)

const maxVisiblePages = 5

// WebHandler serves the server-rendered catalog pages.
type WebHandler struct {
	service *services.ProductService
}

// NewWebHandler creates a new WebHandler.
func NewWebHandler(service *services.ProductService) *WebHandler {
	return &WebHandler{
		service: service,
	}
}

// RegisterRoutes registers the web pages with the Fiber app.
func (h *WebHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/", h.HandleIndex)
	webRoutes := router.Group("/products")
	webRoutes.Get("/list", h.HandleList)
	webRoutes.Get("/new", h.HandleNewForm)
	webRoutes.Post("/save", h.HandleSave)
}

// HandleIndex renders the landing page.
func (h *WebHandler) HandleIndex(c *fiber.Ctx) error {
	return c.Render("index", fiber.Map{})
}

// HandleList renders the paginated product table. The pagination bar shows a
// window of at most five page numbers centered on the current page.
func (h *WebHandler) HandleList(c *fiber.Ctx) error {
	page := c.QueryInt("page", 0)
	size := c.QueryInt("size", 10)

	productPage, err := h.service.GetProductPage(page, size, "id", "asc")
	if err != nil {
		logrus.Errorf("Error rendering product list: %v", err)
		return c.Status(statusFromError(err)).SendString("Could not load products: " + err.Error())
	}

	startPage, endPage := pageWindow(page, productPage.TotalPages)
	pages := make([]int, 0, endPage-startPage)
	for p := startPage; p < endPage; p++ {
		pages = append(pages, p)
	}

	return c.Render("products", fiber.Map{
		"Products":    productPage.Content,
		"CurrentPage": page,
		"TotalPages":  productPage.TotalPages,
		"Pages":       pages,
	})
}

// pageWindow limits the visible page numbers to maxVisiblePages, keeping the
// current page centered where possible.
func pageWindow(currentPage, totalPages int) (int, int) {
	startPage := currentPage - maxVisiblePages/2
	if startPage < 0 {
		startPage = 0
	}
	endPage := startPage + maxVisiblePages
	if endPage > totalPages {
		endPage = totalPages
	}
	if endPage-startPage < maxVisiblePages {
		startPage = endPage - maxVisiblePages
		if startPage < 0 {
			startPage = 0
		}
	}
	return startPage, endPage
}

// HandleNewForm renders the product creation form.
func (h *WebHandler) HandleNewForm(c *fiber.Ctx) error {
	return c.Render("form", fiber.Map{})
}

// HandleSave persists a product submitted from the form and renders a
// confirmation page. Empty form fields are treated as absent, mirroring the
// API create semantics.
func (h *WebHandler) HandleSave(c *fiber.Ctx) error {
	req, err := requestFromForm(c)
	if err != nil {
		logrus.Errorf("Error parsing product form: %v", err)
		return c.Status(fiber.StatusBadRequest).SendString("Invalid form input: " + err.Error())
	}

	created, err := h.service.CreateProduct(req)
	if err != nil {
		logrus.Errorf("Error saving product from form: %v", err)
		return c.Status(statusFromError(err)).SendString("Could not save product: " + err.Error())
	}

	return c.Render("success", fiber.Map{
		"Product": created,
	})
}

// requestFromForm builds a ProductRequest from the submitted form values.
func requestFromForm(c *fiber.Ctx) (*models.ProductRequest, error) {
	req := &models.ProductRequest{}

	if v := strings.TrimSpace(c.FormValue("description")); v != "" {
		req.Description = &v
	}
	if v := strings.TrimSpace(c.FormValue("barcode")); v != "" {
		req.Barcode = &v
	}
	if v := strings.TrimSpace(c.FormValue("lot")); v != "" {
		req.Lot = &v
	}
	if v := strings.TrimSpace(c.FormValue("price")); v != "" {
		price, err := decimal.NewFromString(v)
		if err != nil {
			return nil, err
		}
		req.Price = &price
	}
	if v := strings.TrimSpace(c.FormValue("quantity")); v != "" {
		quantity, err := strconv.Atoi(v)
		if err != nil {
			return nil, err
		}
		req.Quantity = &quantity
	}

	return req, nil
}
