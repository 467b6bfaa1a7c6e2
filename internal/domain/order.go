package domain

import "fmt"

// OrderItem represents one line of a drink order. The JSON field names are
// shared with the front-end, the dispensing controller and the durable
// history file, so they must not change independently.
type OrderItem struct {
	DrinkID   string `json:"drinkId"`
	DrinkName string `json:"drinkName"`
	Quantity  int    `json:"quantity"`
	Calories  int    `json:"calories"`
}

// ValidateItems applies the order acceptance rules and reports the first
// offending field. A zero-valued field after JSON decoding is treated the
// same as a missing one.
func ValidateItems(items []OrderItem) error {
	if len(items) == 0 {
		return fmt.Errorf("%w: order must contain at least one item", ErrInvalidOrder)
	}

	for i, item := range items {
		if item.DrinkID == "" {
			return fmt.Errorf("%w: items[%d].drinkId must not be empty", ErrInvalidOrder, i)
		}
		if item.DrinkName == "" {
			return fmt.Errorf("%w: items[%d].drinkName must not be empty", ErrInvalidOrder, i)
		}
		if item.Quantity < 1 {
			return fmt.Errorf("%w: items[%d].quantity must be at least 1", ErrInvalidOrder, i)
		}
		if item.Calories < 0 {
			return fmt.Errorf("%w: items[%d].calories must not be negative", ErrInvalidOrder, i)
		}
	}

	return nil
}
