package repositories_test

import (
	"fmt"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"produtos/internal/models"
	"produtos/internal/repositories"
)

// setupRepo opens a fresh in-memory SQLite database for one test. The shared
// cache keeps the database alive across GORM's pooled connections.
func setupRepo(t *testing.T) *repositories.GORMProductRepository {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open in-memory database: %v", err)
	}
	if err := db.AutoMigrate(&models.Product{}); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	return repositories.NewGORMProductRepository(db)
}

func dec(v int64) *decimal.Decimal {
	d := decimal.NewFromInt(v)
	return &d
}

func TestGORMProductRepository_SaveAssignsID(t *testing.T) {
	repo := setupRepo(t)

	saved, err := repo.Save(&models.Product{Description: "Soap", Price: dec(3), Barcode: "B1", Lot: "L1", Quantity: 7})
	assert.NoError(t, err)
	assert.NotEmpty(t, saved.ID)

	found, err := repo.GetByID(saved.ID)
	assert.NoError(t, err)
	assert.NotNil(t, found)
	assert.Equal(t, "Soap", found.Description)
	assert.Equal(t, 7, found.Quantity)
}

func TestGORMProductRepository_SaveUpserts(t *testing.T) {
	repo := setupRepo(t)

	saved, err := repo.Save(&models.Product{Description: "Soap", Price: dec(3), Barcode: "B1", Lot: "L1", Quantity: 7})
	assert.NoError(t, err)

	saved.Description = "Liquid soap"
	saved.Quantity = 3
	_, err = repo.Save(saved)
	assert.NoError(t, err)

	found, err := repo.GetByID(saved.ID)
	assert.NoError(t, err)
	assert.Equal(t, "Liquid soap", found.Description)
	assert.Equal(t, 3, found.Quantity)

	all, err := repo.GetAll()
	assert.NoError(t, err)
	assert.Len(t, all, 1) // updated in place, not duplicated
}

func TestGORMProductRepository_GetByIDAbsent(t *testing.T) {
	repo := setupRepo(t)

	found, err := repo.GetByID("does-not-exist")
	assert.NoError(t, err)
	assert.Nil(t, found) // absence is not an error at the repository level
}

func TestGORMProductRepository_GetByLot(t *testing.T) {
	repo := setupRepo(t)

	for _, p := range []models.Product{
		{Description: "A", Price: dec(10), Lot: "L1"},
		{Description: "B", Lot: "L1"},
		{Description: "C", Price: dec(5), Lot: "L2"},
	} {
		_, err := repo.Save(&p)
		assert.NoError(t, err)
	}

	products, err := repo.GetByLot("L1")
	assert.NoError(t, err)
	assert.Len(t, products, 2)

	products, err = repo.GetByLot("L-UNKNOWN")
	assert.NoError(t, err)
	assert.Empty(t, products)
}

func TestGORMProductRepository_GetPage(t *testing.T) {
	repo := setupRepo(t)

	for i := 1; i <= 5; i++ {
		_, err := repo.Save(&models.Product{
			Description: fmt.Sprintf("Product %d", i),
			Price:       dec(int64(i * 10)),
			Lot:         "L1",
		})
		assert.NoError(t, err)
	}

	page, err := repo.GetPage(0, 2, "price", "DESC")
	assert.NoError(t, err)
	assert.Equal(t, 0, page.Page)
	assert.Equal(t, int64(5), page.TotalElements)
	assert.Equal(t, 3, page.TotalPages)
	assert.Len(t, page.Content, 2)
	assert.True(t, page.Content[0].Price.Equal(decimal.NewFromInt(50)))
	assert.True(t, page.Content[1].Price.Equal(decimal.NewFromInt(40)))

	// Second page, ascending
	page, err = repo.GetPage(1, 2, "price", "asc")
	assert.NoError(t, err)
	assert.Equal(t, 1, page.Page)
	assert.Len(t, page.Content, 2)
	assert.True(t, page.Content[0].Price.Equal(decimal.NewFromInt(30)))

	// Last page is short
	page, err = repo.GetPage(2, 2, "price", "asc")
	assert.NoError(t, err)
	assert.Len(t, page.Content, 1)
}

func TestGORMProductRepository_GetPageNegativePage(t *testing.T) {
	repo := setupRepo(t)

	for i := 1; i <= 3; i++ {
		_, err := repo.Save(&models.Product{
			Description: fmt.Sprintf("Product %d", i),
			Price:       dec(int64(i * 10)),
		})
		assert.NoError(t, err)
	}

	// A negative page is treated as the first page.
	page, err := repo.GetPage(-1, 2, "price", "asc")
	assert.NoError(t, err)
	assert.Equal(t, 0, page.Page)
	assert.Len(t, page.Content, 2)
	assert.True(t, page.Content[0].Price.Equal(decimal.NewFromInt(10)))
}

func TestGORMProductRepository_GetPageUnknownSortColumn(t *testing.T) {
	repo := setupRepo(t)

	_, err := repo.Save(&models.Product{Description: "Soap"})
	assert.NoError(t, err)

	page, err := repo.GetPage(0, 2, "price; drop table products", "asc")
	assert.Nil(t, page)
	var storeErr *models.StoreError
	assert.ErrorAs(t, err, &storeErr)
	assert.Contains(t, err.Error(), "sort column")

	all, err := repo.GetAll()
	assert.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestGORMProductRepository_Delete(t *testing.T) {
	repo := setupRepo(t)

	saved, err := repo.Save(&models.Product{Description: "Soap", Lot: "L1"})
	assert.NoError(t, err)

	assert.NoError(t, repo.Delete(saved))

	found, err := repo.GetByID(saved.ID)
	assert.NoError(t, err)
	assert.Nil(t, found)
}

func TestGORMProductRepository_DeleteAll(t *testing.T) {
	repo := setupRepo(t)

	for i := 0; i < 3; i++ {
		_, err := repo.Save(&models.Product{Description: fmt.Sprintf("P%d", i)})
		assert.NoError(t, err)
	}

	assert.NoError(t, repo.DeleteAll())

	all, err := repo.GetAll()
	assert.NoError(t, err)
	assert.Empty(t, all)
}
