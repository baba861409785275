package services

import (
	"errors"
	"fmt"
	"log"
	"math"

	"palengke/internal/models"
	"palengke/internal/repositories"
)

// ErrEmptyCart signals a checkout body that normalized to zero items. This is
// a client error, not an infra failure.
var ErrEmptyCart = errors.New("cart is empty after normalization")

// EventPublisher is the slice of the message-queue client the checkout flow
// needs. Satisfied by *rabbitmq.Client and by test mocks.
type EventPublisher interface {
	PublishOrderCreated(messageBody map[string]interface{}) error
}

// CheckoutResult is what the handler returns to the client on success.
type CheckoutResult struct {
	OrderID       string `json:"orderId"`
	Total         int64  `json:"total"`
	PaymentMethod string `json:"paymentMethod"`
	Pickup        string `json:"pickup"`
	ItemCount     int    `json:"itemCount"`
}

// CheckoutService normalizes cart payloads, reconciles prices against the
// catalog and records the resulting order.
type CheckoutService struct {
	orderRepo   repositories.OrderRepository
	productRepo repositories.ProductRepository
	publisher   EventPublisher
}

// NewCheckoutService wires the checkout flow. publisher may be nil; events
// are then skipped.
func NewCheckoutService(orderRepo repositories.OrderRepository, productRepo repositories.ProductRepository, publisher EventPublisher) *CheckoutService {
	return &CheckoutService{
		orderRepo:   orderRepo,
		productRepo: productRepo,
		publisher:   publisher,
	}
}

// Checkout runs the full intake flow: normalize, resolve prices, persist.
// The catalog read and the order write are separate operations; a catalog
// change in between is an accepted race.
func (s *CheckoutService) Checkout(req *models.CheckoutRequest) (*CheckoutResult, error) {
	items := models.NormalizeCart(req.RawItems())
	if len(items) == 0 {
		return nil, ErrEmptyCart
	}

	catalog, err := s.fetchCatalogPrices(items)
	if err != nil {
		return nil, fmt.Errorf("catalog lookup: %w", err)
	}

	orderItems, total := ResolveItems(items, catalog)

	order := &models.Order{
		Campus:        req.Campus,
		Pickup:        req.Pickup,
		PaymentMethod: req.PaymentMethod,
		Total:         total,
		Items:         orderItems,
	}
	// The payment account number only makes sense for gcash orders.
	if req.PaymentMethod == models.PaymentGcash {
		order.GcashNumber = req.GcashNumber
	}

	if err := s.orderRepo.Create(order); err != nil {
		return nil, fmt.Errorf("create order: %w", err)
	}

	s.publishOrderCreated(order)

	return &CheckoutResult{
		OrderID:       order.ID,
		Total:         order.Total,
		PaymentMethod: order.PaymentMethod,
		Pickup:        order.Pickup,
		ItemCount:     len(order.Items),
	}, nil
}

// ResolveItems reconciles normalized cart items against catalog prices. The
// catalog price wins when the identifier matches; otherwise the client's
// snapshot is trusted, and failing that the price is zero. Returns the item
// rows and the order total, rounded and never negative.
func ResolveItems(items []models.NormalizedItem, catalog map[string]int64) ([]models.OrderItem, int64) {
	orderItems := make([]models.OrderItem, 0, len(items))
	var sum float64
	for _, item := range items {
		price := item.PriceSnap
		if catalogPrice, ok := catalog[item.ProductID]; ok {
			price = float64(catalogPrice)
		}

		qty := item.Qty
		if math.IsNaN(qty) || math.IsInf(qty, 0) || qty <= 0 {
			qty = 1
		}

		productID := item.ProductID
		if productID == "" {
			productID = models.UnknownProductID
		}

		orderItems = append(orderItems, models.OrderItem{
			ProductID: productID,
			Qty:       qty,
			Price:     price,
		})
		sum += price * qty
	}

	total := int64(math.Round(sum))
	if total < 0 {
		total = 0
	}
	return orderItems, total
}

// fetchCatalogPrices batch-reads the catalog rows matching the cart's
// identifiers. Unknown identifiers yield no entry.
func (s *CheckoutService) fetchCatalogPrices(items []models.NormalizedItem) (map[string]int64, error) {
	seen := make(map[string]struct{}, len(items))
	ids := make([]string, 0, len(items))
	for _, item := range items {
		if item.ProductID == "" {
			continue
		}
		if _, ok := seen[item.ProductID]; ok {
			continue
		}
		seen[item.ProductID] = struct{}{}
		ids = append(ids, item.ProductID)
	}

	products, err := s.productRepo.FindManyByIDs(ids)
	if err != nil {
		return nil, err
	}

	catalog := make(map[string]int64, len(products))
	for _, product := range products {
		catalog[product.ID] = product.Price
	}
	return catalog, nil
}

// publishOrderCreated emits the order event best-effort; a broker failure
// must not fail a checkout that already persisted.
func (s *CheckoutService) publishOrderCreated(order *models.Order) {
	if s.publisher == nil {
		return
	}
	err := s.publisher.PublishOrderCreated(map[string]interface{}{
		"orderId":       order.ID,
		"campus":        order.Campus,
		"pickup":        order.Pickup,
		"paymentMethod": order.PaymentMethod,
		"total":         order.Total,
		"itemCount":     len(order.Items),
	})
	if err != nil {
		log.Printf("Failed to publish order created event for %s: %v", order.ID, err)
	}
}
