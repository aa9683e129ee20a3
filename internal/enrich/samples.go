package enrich

import (
	"fmt"

	"github.com/KennelyRay/E-Commerce-Website-sub000/internal/domain"
)

// Samples returns deterministic generated hardware entries used whenever
// every external source fails or times out.
func Samples() []domain.Product {
	specs := []struct {
		name     string
		category string
		price    float64
		rating   float64
	}{
		{"Sample Ryzen 5 Processor", "CPU", 199.99, 4.5},
		{"Sample Core i7 Processor", "CPU", 379.99, 4.6},
		{"Sample GeForce Graphics Card", "GPU", 459.99, 4.7},
		{"Sample Radeon Graphics Card", "GPU", 429.99, 4.5},
		{"Sample B650 Motherboard", "Motherboard", 179.99, 4.4},
		{"Sample DDR5 Memory Kit 32GB", "RAM", 109.99, 4.6},
		{"Sample NVMe SSD 1TB", "Storage", 99.99, 4.8},
		{"Sample 750W Power Supply", "PSU", 109.99, 4.5},
		{"Sample Mid-Tower Case", "Case", 79.99, 4.3},
		{"Sample 240mm Liquid Cooler", "Cooling", 119.99, 4.4},
		{"Sample Mechanical Keyboard", "Peripherals", 89.99, 4.2},
		{"Sample 1440p Gaming Monitor", "Monitor", 299.99, 4.6},
	}

	products := make([]domain.Product, len(specs))
	for i, s := range specs {
		products[i] = domain.Product{
			ID:          slugify("sample-" + s.name),
			Name:        s.name,
			Description: fmt.Sprintf("Generated sample listing for the %s category.", s.category),
			Price:       s.price,
			Category:    s.category,
			Stock:       10,
			Rating:      s.rating,
			Reviews:     25,
			Tags:        []string{"sample"},
		}
	}
	return products
}
