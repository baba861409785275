package services

import (
	"fmt"

	"palengke/internal/models"
	"palengke/internal/repositories"
)

// CreateProductInput is the admin product-creation payload.
type CreateProductInput struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
	Price       int64  `json:"price" validate:"gte=0"`
	Campus      string `json:"campus" validate:"required,oneof=ADMU UPD"`
	Category    string `json:"category"`
	ImageURL    string `json:"imageUrl"`
}

// ProductService exposes catalog reads and demo-data seeding.
type ProductService struct {
	productRepo repositories.ProductRepository
}

func NewProductService(productRepo repositories.ProductRepository) *ProductService {
	return &ProductService{productRepo: productRepo}
}

func (s *ProductService) List(campus, category string) ([]models.Product, error) {
	return s.productRepo.List(campus, category)
}

func (s *ProductService) Get(id string) (*models.Product, error) {
	return s.productRepo.FindByID(id)
}

func (s *ProductService) Create(input CreateProductInput) (*models.Product, error) {
	product := &models.Product{
		Name:        input.Name,
		Description: input.Description,
		Price:       input.Price,
		Campus:      input.Campus,
		Category:    input.Category,
		ImageURL:    input.ImageURL,
	}
	if err := s.productRepo.Create(product); err != nil {
		return nil, fmt.Errorf("create product: %w", err)
	}
	return product, nil
}

// Seed populates the catalog with the demo products, but only when the table
// is empty. Returns the number of products inserted, so repeated calls report
// zero instead of duplicating rows.
func (s *ProductService) Seed() (int, error) {
	count, err := s.productRepo.Count()
	if err != nil {
		return 0, fmt.Errorf("count products: %w", err)
	}
	if count > 0 {
		return 0, nil
	}

	products := DemoProducts()
	if err := s.productRepo.CreateMany(products); err != nil {
		return 0, fmt.Errorf("seed products: %w", err)
	}
	return len(products), nil
}

// DemoProducts is the seed catalog: food and dorm staples across both
// campuses, priced in whole pesos.
func DemoProducts() []models.Product {
	return []models.Product{
		{Name: "Siomai Rice", Description: "Four pork siomai over rice with toyomansi", Price: 65, Campus: models.CampusADMU, Category: "food", ImageURL: "/img/siomai-rice.jpg"},
		{Name: "Wintermelon Milk Tea", Description: "Large, 50% sugar, with pearls", Price: 95, Campus: models.CampusADMU, Category: "drinks", ImageURL: "/img/wintermelon.jpg"},
		{Name: "Blue Notebook", Description: "80-leaf spiral notebook", Price: 45, Campus: models.CampusADMU, Category: "supplies", ImageURL: "/img/notebook.jpg"},
		{Name: "Umbrella", Description: "Compact automatic umbrella, survives Katipunan rain", Price: 250, Campus: models.CampusADMU, Category: "essentials", ImageURL: "/img/umbrella.jpg"},
		{Name: "Isaw (5 sticks)", Description: "Grilled chicken isaw with spicy vinegar", Price: 50, Campus: models.CampusUPD, Category: "food", ImageURL: "/img/isaw.jpg"},
		{Name: "Fishball Combo", Description: "Fishball, kikiam, and squidball with sauce", Price: 40, Campus: models.CampusUPD, Category: "food", ImageURL: "/img/fishball.jpg"},
		{Name: "UP T-Shirt", Description: "Maroon cotton shirt, unisex sizes", Price: 300, Campus: models.CampusUPD, Category: "merch", ImageURL: "/img/up-shirt.jpg"},
		{Name: "Buko Juice", Description: "Fresh buko juice, 500ml", Price: 35, Campus: models.CampusUPD, Category: "drinks", ImageURL: "/img/buko.jpg"},
	}
}
