package repositories

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"palengke/internal/models"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := filepath.Join(t.TempDir(), "test.db")
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Product{}, &models.Order{}, &models.OrderItem{}))
	return db
}

func TestGORMProductRepository_FindManyByIDs(t *testing.T) {
	repo := NewGORMProductRepository(newTestDB(t))

	products := []models.Product{
		{Name: "Siomai Rice", Price: 65, Campus: models.CampusADMU, Category: "food"},
		{Name: "Buko Juice", Price: 35, Campus: models.CampusUPD, Category: "drinks"},
	}
	require.NoError(t, repo.CreateMany(products))

	found, err := repo.FindManyByIDs([]string{products[0].ID, "no-such-id"})
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "Siomai Rice", found[0].Name)

	// Empty id list is not a query error.
	found, err = repo.FindManyByIDs(nil)
	require.NoError(t, err)
	assert.Empty(t, found)

	count, err := repo.Count()
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
}

func TestGORMProductRepository_ListFilters(t *testing.T) {
	repo := NewGORMProductRepository(newTestDB(t))
	require.NoError(t, repo.CreateMany([]models.Product{
		{Name: "Isaw", Price: 50, Campus: models.CampusUPD, Category: "food"},
		{Name: "Shirt", Price: 300, Campus: models.CampusUPD, Category: "merch"},
		{Name: "Notebook", Price: 45, Campus: models.CampusADMU, Category: "supplies"},
	}))

	upd, err := repo.List(models.CampusUPD, "")
	require.NoError(t, err)
	assert.Len(t, upd, 2)

	merch, err := repo.List(models.CampusUPD, "merch")
	require.NoError(t, err)
	require.Len(t, merch, 1)
	assert.Equal(t, "Shirt", merch[0].Name)
}

func TestGORMOrderRepository_CreateWithItemsAndFind(t *testing.T) {
	repo := NewGORMOrderRepository(newTestDB(t))

	order := &models.Order{
		Campus:        models.CampusADMU,
		Pickup:        "Gate 2.5",
		PaymentMethod: models.PaymentGcash,
		GcashNumber:   "09171234567",
		Total:         130,
		Items: []models.OrderItem{
			{ProductID: "p1", Qty: 2, Price: 65},
		},
	}
	require.NoError(t, repo.Create(order))
	require.NotEmpty(t, order.ID)

	found, err := repo.FindByID(order.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(130), found.Total)
	require.Len(t, found.Items, 1)
	assert.Equal(t, "p1", found.Items[0].ProductID)
	assert.Equal(t, 2.0, found.Items[0].Qty)
	assert.Equal(t, 65.0, found.Items[0].Price)
}

func TestGORMOrderRepository_FindUnknown(t *testing.T) {
	repo := NewGORMOrderRepository(newTestDB(t))

	_, err := repo.FindByID("missing")
	assert.ErrorIs(t, err, ErrOrderNotFound)
}
