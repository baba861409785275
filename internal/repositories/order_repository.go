package repositories

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"palengke/internal/models"
)

// ErrOrderNotFound is returned when an order id has no record.
var ErrOrderNotFound = errors.New("order not found")

// OrderRepository is the order persistence boundary. Create must persist the
// order together with its items atomically: all rows or none.
type OrderRepository interface {
	Create(order *models.Order) error
	FindByID(id string) (*models.Order, error)
}

// GORMOrderRepository persists orders through GORM.
type GORMOrderRepository struct {
	db *gorm.DB
}

func NewGORMOrderRepository(db *gorm.DB) *GORMOrderRepository {
	return &GORMOrderRepository{db: db}
}

// Create writes the order and its items in a single transaction. GORM saves
// the Items association with the parent row, so a failure on any item rolls
// back the whole order.
func (r *GORMOrderRepository) Create(order *models.Order) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		return tx.Create(order).Error
	})
}

func (r *GORMOrderRepository) FindByID(id string) (*models.Order, error) {
	var order models.Order
	err := r.db.Preload("Items").First(&order, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// MockOrderRepository is an in-memory OrderRepository for tests and for
// running without a database.
type MockOrderRepository struct {
	mu     sync.RWMutex
	orders map[string]models.Order
}

func NewMockOrderRepository() *MockOrderRepository {
	return &MockOrderRepository{orders: make(map[string]models.Order)}
}

func (r *MockOrderRepository) Create(order *models.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if order.ID == "" {
		order.ID = uuid.New().String()
	}
	if order.CreatedAt.IsZero() {
		order.CreatedAt = time.Now()
	}
	for i := range order.Items {
		order.Items[i].OrderID = order.ID
	}
	r.orders[order.ID] = *order
	return nil
}

func (r *MockOrderRepository) FindByID(id string) (*models.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	order, ok := r.orders[id]
	if !ok {
		return nil, ErrOrderNotFound
	}
	return &order, nil
}

// Len reports how many orders have been stored. Test helper.
func (r *MockOrderRepository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.orders)
}
