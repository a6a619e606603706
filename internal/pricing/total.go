package pricing

import "storefront/internal/models"

const (
	// DefaultPrice applies when an item's price is missing or not a number.
	DefaultPrice = 0
	// DefaultQuantity applies when an item's quantity is missing, zero or not
	// a number.
	DefaultQuantity = 1
)

// OrderTotal sums price * quantity over items in order using plain float64
// arithmetic. No rounding is applied.
func OrderTotal(items []models.OrderItem) float64 {
	total := 0.0
	for _, item := range items {
		price := ParseFloatOrDefault(item.Price.Value(), DefaultPrice)
		quantity := ParseIntOrDefault(item.Quantity.Value(), DefaultQuantity)
		total += price * quantity
	}
	return total
}
