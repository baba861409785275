package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"palengke/internal/models"
	"palengke/internal/repositories"
)

func TestProductService_SeedOnlyWhenEmpty(t *testing.T) {
	repo := repositories.NewMockProductRepository()
	svc := NewProductService(repo)

	seeded, err := svc.Seed()
	require.NoError(t, err)
	assert.Equal(t, len(DemoProducts()), seeded)

	// A second seed must not duplicate rows.
	seeded, err = svc.Seed()
	require.NoError(t, err)
	assert.Zero(t, seeded)

	count, err := repo.Count()
	require.NoError(t, err)
	assert.Equal(t, int64(len(DemoProducts())), count)
}

func TestProductService_ListFilters(t *testing.T) {
	repo := repositories.NewMockProductRepository()
	svc := NewProductService(repo)
	_, err := svc.Seed()
	require.NoError(t, err)

	admu, err := svc.List(models.CampusADMU, "")
	require.NoError(t, err)
	for _, p := range admu {
		assert.Equal(t, models.CampusADMU, p.Campus)
	}

	food, err := svc.List(models.CampusUPD, "food")
	require.NoError(t, err)
	assert.NotEmpty(t, food)
	for _, p := range food {
		assert.Equal(t, "food", p.Category)
	}

	all, err := svc.List("", "")
	require.NoError(t, err)
	assert.Len(t, all, len(DemoProducts()))
}

func TestProductService_CreateAndGet(t *testing.T) {
	svc := NewProductService(repositories.NewMockProductRepository())

	created, err := svc.Create(CreateProductInput{
		Name:   "Banana Cue",
		Price:  25,
		Campus: models.CampusADMU,
	})
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)

	found, err := svc.Get(created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Banana Cue", found.Name)
	assert.Equal(t, int64(25), found.Price)
}

func TestProductService_GetUnknown(t *testing.T) {
	svc := NewProductService(repositories.NewMockProductRepository())

	_, err := svc.Get("nope")
	assert.ErrorIs(t, err, repositories.ErrProductNotFound)
}
