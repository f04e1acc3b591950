package cart

import (
	"time"

	"github.com/irsalhamdi/e-commerce-shop/core/pricing"
	"github.com/irsalhamdi/e-commerce-shop/core/product"
)

// Cart is a user's basket. A user has at most one cart with Ordered unset.
type Cart struct {
	ID         string        `json:"id" db:"cart_id"`
	UserID     string        `json:"user" db:"user_id"`
	Ordered    bool          `json:"ordered" db:"ordered"`
	TotalPrice pricing.Money `json:"totalPrice" db:"total_price"`
	CreatedAt  time.Time     `json:"createdAt" db:"created_at"`
	UpdatedAt  time.Time     `json:"updatedAt" db:"updated_at"`
	Items      []Item        `json:"items" db:"-"`
}

// Item is one product line. Price is fixed when the line is written and is
// not refreshed when the catalog price changes afterwards.
type Item struct {
	ID        string          `json:"id" db:"item_id"`
	CartID    string          `json:"cartId" db:"cart_id"`
	UserID    string          `json:"-" db:"user_id"`
	ProductID string          `json:"productId" db:"product_id"`
	Quantity  int             `json:"quantity" db:"quantity"`
	Price     pricing.Money   `json:"price" db:"price"`
	CreatedAt time.Time       `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time       `json:"updatedAt" db:"updated_at"`
	Product   product.Product `json:"product" db:"product"`
}

type ItemNew struct {
	ProductID string `json:"productId" validate:"required,uuid"`
	Quantity  *int   `json:"quantity"`
}

type ItemUp struct {
	ProductID string `json:"productId" validate:"required,uuid"`
	Quantity  int    `json:"quantity"`
}
