// Package fixtures embeds the demo catalog used by the in-memory product
// provider and by the seed command.
package fixtures

import (
	_ "embed"
	"encoding/json"
	"fmt"

	"github.com/Modeva-Ecommerce/modeva-storefront/models"
)

//go:embed products.json
var productsJSON []byte

// Products decodes the embedded catalog. Each call returns a fresh slice.
func Products() ([]models.Product, error) {
	var products []models.Product
	if err := json.Unmarshal(productsJSON, &products); err != nil {
		return nil, fmt.Errorf("decode product fixtures: %w", err)
	}
	return products, nil
}
