package order

import (
	"time"

	"github.com/irsalhamdi/e-commerce-shop/core/pricing"
)

type Order struct {
	ID              string        `json:"id" db:"order_id"`
	UserID          string        `json:"userId" db:"user_id"`
	CartID          string        `json:"cartId" db:"cart_id"`
	PaymentMethodID *string       `json:"paymentMethodId" db:"payment_method_id"`
	TotalPrice      pricing.Money `json:"totalPrice" db:"total_price"`
	Address         string        `json:"address" db:"address"`
	OrderedAt       time.Time     `json:"orderedAt" db:"ordered_at"`
	Items           []Item        `json:"items" db:"-"`
}

// Item is a line of the cart as it was when the order was placed.
type Item struct {
	OrderID   string        `json:"-" db:"order_id"`
	ProductID string        `json:"productId" db:"product_id"`
	Title     string        `json:"title" db:"title"`
	Quantity  int           `json:"quantity" db:"quantity"`
	Price     pricing.Money `json:"price" db:"price"`
}

type OrderNew struct {
	Address         string `json:"address" validate:"required,max=255"`
	PaymentMethodID string `json:"paymentMethodId" validate:"required,uuid"`
}

type PaymentMethod struct {
	ID          string  `json:"id" db:"payment_method_id"`
	Name        string  `json:"name" db:"name"`
	Description *string `json:"description,omitempty" db:"description"`
}
