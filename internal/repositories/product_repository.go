package repositories

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"palengke/internal/models"
)

// ErrProductNotFound is returned when a product id has no catalog entry.
var ErrProductNotFound = errors.New("product not found")

// ProductRepository is the catalog persistence boundary.
type ProductRepository interface {
	Create(product *models.Product) error
	CreateMany(products []models.Product) error
	FindByID(id string) (*models.Product, error)
	// FindManyByIDs returns the catalog entries whose id appears in ids.
	// Unknown ids simply yield no match; this is not an error.
	FindManyByIDs(ids []string) ([]models.Product, error)
	List(campus, category string) ([]models.Product, error)
	Count() (int64, error)
}

// GORMProductRepository persists products through GORM.
type GORMProductRepository struct {
	db *gorm.DB
}

func NewGORMProductRepository(db *gorm.DB) *GORMProductRepository {
	return &GORMProductRepository{db: db}
}

func (r *GORMProductRepository) Create(product *models.Product) error {
	return r.db.Create(product).Error
}

func (r *GORMProductRepository) CreateMany(products []models.Product) error {
	if len(products) == 0 {
		return nil
	}
	return r.db.Create(&products).Error
}

func (r *GORMProductRepository) FindByID(id string) (*models.Product, error) {
	var product models.Product
	err := r.db.First(&product, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrProductNotFound
	}
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *GORMProductRepository) FindManyByIDs(ids []string) ([]models.Product, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var products []models.Product
	if err := r.db.Where("id IN ?", ids).Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

func (r *GORMProductRepository) List(campus, category string) ([]models.Product, error) {
	query := r.db.Order("created_at")
	if campus != "" {
		query = query.Where("campus = ?", campus)
	}
	if category != "" {
		query = query.Where("category = ?", category)
	}
	var products []models.Product
	if err := query.Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

func (r *GORMProductRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&models.Product{}).Count(&count).Error
	return count, err
}

// MockProductRepository is an in-memory ProductRepository for tests and for
// running without a database.
type MockProductRepository struct {
	mu       sync.RWMutex
	products map[string]models.Product
}

func NewMockProductRepository() *MockProductRepository {
	return &MockProductRepository{products: make(map[string]models.Product)}
}

func (r *MockProductRepository) Create(product *models.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if product.ID == "" {
		product.ID = uuid.New().String()
	}
	if product.CreatedAt.IsZero() {
		product.CreatedAt = time.Now()
	}
	r.products[product.ID] = *product
	return nil
}

func (r *MockProductRepository) CreateMany(products []models.Product) error {
	for i := range products {
		if err := r.Create(&products[i]); err != nil {
			return err
		}
	}
	return nil
}

func (r *MockProductRepository) FindByID(id string) (*models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	product, ok := r.products[id]
	if !ok {
		return nil, ErrProductNotFound
	}
	return &product, nil
}

func (r *MockProductRepository) FindManyByIDs(ids []string) ([]models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var found []models.Product
	for _, id := range ids {
		if product, ok := r.products[id]; ok {
			found = append(found, product)
		}
	}
	return found, nil
}

func (r *MockProductRepository) List(campus, category string) ([]models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var products []models.Product
	for _, product := range r.products {
		if campus != "" && product.Campus != campus {
			continue
		}
		if category != "" && product.Category != category {
			continue
		}
		products = append(products, product)
	}
	return products, nil
}

func (r *MockProductRepository) Count() (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.products)), nil
}
