package product

import (
	"time"

	"github.com/irsalhamdi/e-commerce-shop/core/pricing"
)

// Label is a titled catalog attribute: category, color or brand.
type Label struct {
	Title string `json:"title" db:"title" validate:"required"`
}

type Product struct {
	ID              string         `json:"id" db:"product_id"`
	Title           string         `json:"title" db:"title"`
	Description     string         `json:"description" db:"description"`
	Image           string         `json:"image" db:"image"`
	Category        Label          `json:"category" db:"category"`
	Color           Label          `json:"color" db:"color"`
	Brand           Label          `json:"brand" db:"brand"`
	Price           pricing.Money  `json:"price" db:"price"`
	Promotion       *pricing.Money `json:"promotion" db:"promotion"`
	Quantity        int            `json:"quantity" db:"quantity"`
	ProductOfTheDay bool           `json:"isProductOfTheDay" db:"is_product_of_the_day"`
	CreatedAt       time.Time      `json:"createdAt" db:"created_at"`
	UpdatedAt       time.Time      `json:"updatedAt" db:"updated_at"`
}

// UnitPrice is what one unit costs when put in a cart right now.
func (p Product) UnitPrice() pricing.Money {
	return pricing.EffectiveUnitPrice(p.Price, p.Promotion)
}

type ProductNew struct {
	Title           string         `json:"title" validate:"required"`
	Description     string         `json:"description"`
	Image           string         `json:"image"`
	Category        Label          `json:"category"`
	Color           Label          `json:"color"`
	Brand           Label          `json:"brand"`
	Price           pricing.Money  `json:"price" validate:"gte=0,lte=99999999.99"`
	Promotion       *pricing.Money `json:"promotion" validate:"omitempty,gte=0,lte=99999999.99"`
	Quantity        int            `json:"quantity" validate:"gte=0"`
	ProductOfTheDay bool           `json:"isProductOfTheDay"`
}

type Filter struct {
	Category        string
	Brand           string
	ProductOfTheDay *bool
	Limit           uint
	Offset          uint
}

// row is the products table as written, with label references resolved.
type row struct {
	ID              string         `db:"product_id"`
	Title           string         `db:"title"`
	Description     string         `db:"description"`
	Image           string         `db:"image"`
	CategoryID      string         `db:"category_id"`
	ColorID         string         `db:"color_id"`
	BrandID         string         `db:"brand_id"`
	Price           pricing.Money  `db:"price"`
	Promotion       *pricing.Money `db:"promotion"`
	Quantity        int            `db:"quantity"`
	ProductOfTheDay bool           `db:"is_product_of_the_day"`
	CreatedAt       time.Time      `db:"created_at"`
	UpdatedAt       time.Time      `db:"updated_at"`
}
