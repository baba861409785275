package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Campuses served by the marketplace.
const (
	CampusADMU = "ADMU"
	CampusUPD  = "UPD"
)

// Payment methods accepted at checkout.
const (
	PaymentGcash = "gcash"
	PaymentCash  = "cash"
)

// UnknownProductID is stored on order items whose cart entry carried no
// usable identifier.
const UnknownProductID = "UNKNOWN"

// Product is a catalog entry. Products are immutable once seeded.
type Product struct {
	ID          string    `gorm:"type:uuid;primaryKey" json:"id"`
	Name        string    `gorm:"not null" json:"name"`
	Description string    `json:"description"`
	Price       int64     `gorm:"not null;check:price >= 0" json:"price"`
	Campus      string    `gorm:"not null;index" json:"campus"`
	Category    string    `gorm:"index" json:"category"`
	ImageURL    string    `json:"imageUrl"`
	CreatedAt   time.Time `json:"createdAt"`
}

func (p *Product) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	return nil
}

// Order is a recorded checkout. Created atomically with its items and never
// mutated afterwards.
type Order struct {
	ID            string    `gorm:"type:uuid;primaryKey" json:"id"`
	Campus        string    `gorm:"not null" json:"campus"`
	Pickup        string    `gorm:"not null" json:"pickup"`
	PaymentMethod string    `gorm:"not null" json:"paymentMethod"`
	GcashNumber   string    `json:"gcashNumber,omitempty"`
	Total         int64     `gorm:"not null;check:total >= 0" json:"total"`
	CreatedAt     time.Time `json:"createdAt"`

	Items []OrderItem `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items"`
}

func (o *Order) BeforeCreate(tx *gorm.DB) error {
	if o.ID == "" {
		o.ID = uuid.New().String()
	}
	return nil
}

// OrderItem stores the resolved unit price as a snapshot at checkout time.
type OrderItem struct {
	ID        uint    `gorm:"primaryKey" json:"-"`
	OrderID   string  `gorm:"type:uuid;not null;index" json:"-"`
	ProductID string  `gorm:"not null" json:"productId"`
	Qty       float64 `gorm:"not null" json:"qty"`
	Price     float64 `gorm:"not null" json:"price"`
}
