package cart

import (
	"errors"

	"github.com/irsalhamdi/e-commerce-shop/core/pricing"
	"github.com/irsalhamdi/e-commerce-shop/core/product"
)

var (
	ErrNotFound          = errors.New("not found")
	ErrInvalidQuantity   = errors.New("quantity must be greater than 0")
	ErrInsufficientStock = errors.New("not enough stock available")
)

// change is the state a line and its product move to together.
type change struct {
	Quantity int
	Stock    int
	Price    pricing.Money
}

// plan sets a line to requested units. held is what the line already holds
// (0 for a new line) and counts as available since it goes back to stock.
func plan(p product.Product, held, requested int) (change, error) {
	if requested <= 0 {
		return change{}, ErrInvalidQuantity
	}
	if p.Quantity+held < requested {
		return change{}, ErrInsufficientStock
	}

	price := pricing.LinePrice(p.UnitPrice(), requested)
	if !price.Fits() {
		return change{}, pricing.ErrOutOfRange
	}

	return change{
		Quantity: requested,
		Stock:    p.Quantity + held - requested,
		Price:    price,
	}, nil
}

// release returns the stock of p once a line holding held units is dropped.
func release(p product.Product, held int) int {
	return p.Quantity + held
}

// Total re-sums the lines; it is the only way a cart total is produced.
func Total(items []Item) pricing.Money {
	prices := make([]pricing.Money, 0, len(items))
	for _, it := range items {
		prices = append(prices, it.Price)
	}
	return pricing.Sum(prices...)
}
