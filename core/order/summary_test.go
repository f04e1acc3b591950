package order

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/irsalhamdi/e-commerce-shop/core/cart"
	"github.com/irsalhamdi/e-commerce-shop/core/pricing"
	"github.com/irsalhamdi/e-commerce-shop/core/product"
	"github.com/irsalhamdi/e-commerce-shop/core/user"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSummary(t *testing.T) {
	ord := Order{
		ID:         "order-1",
		Address:    "1 Main St",
		TotalPrice: pricing.MustParse("50.00"),
		OrderedAt:  time.Date(2023, 3, 1, 10, 0, 0, 0, time.UTC),
	}
	u := user.User{Email: "buyer@example.com", FirstName: "Ada", LastName: "Byron", Wholesaler: true}
	items := []cart.Item{{
		Quantity: 5,
		Price:    pricing.MustParse("50.00"),
		Product: product.Product{
			Title:    "Mug",
			Category: product.Label{Title: "Kitchen"},
			Color:    product.Label{Title: "Red"},
			Brand:    product.Label{Title: "Acme"},
		},
	}}

	s := NewSummary(ord, u, &PaymentMethod{Name: "Card"}, items)
	assert.Equal(t, "Card", s.PaymentMethod)
	require.Len(t, s.Lines, 1)
	assert.Equal(t, Line{Title: "Mug", Category: "Kitchen", Color: "Red", Brand: "Acme", Quantity: 5, Price: pricing.MustParse("50.00")}, s.Lines[0])

	body, err := s.Body()
	require.NoError(t, err)
	for _, want := range []string{
		"Order number: order-1",
		"User name: Ada Byron",
		"Payment method: Card",
		"Price: 50.00",
		"The customer is a wholesaler.",
		"Items in the order:",
		"Brand: Acme",
		"Quantity: 5",
		"Item price: 50.00",
	} {
		assert.Contains(t, body, want)
	}
	assert.Equal(t, "New order!", s.Subject())
}

func TestSummaryEmptyCart(t *testing.T) {
	s := NewSummary(Order{ID: "order-2", TotalPrice: pricing.Zero}, user.User{}, nil, nil)
	assert.Equal(t, unspecified, s.PaymentMethod)

	body, err := s.Body()
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(body, "The cart is empty."))
	assert.NotContains(t, body, "wholesaler")
	assert.Contains(t, body, "Price: 0.00")
}

type notifierFunc func(ctx context.Context, s Summary) error

func (f notifierFunc) Notify(ctx context.Context, s Summary) error { return f(ctx, s) }

func TestNotifiers(t *testing.T) {
	var calls int
	ok := notifierFunc(func(context.Context, Summary) error { calls++; return nil })
	boom := errors.New("boom")
	bad := notifierFunc(func(context.Context, Summary) error { calls++; return boom })

	err := Notifiers{bad, ok}.Notify(context.Background(), Summary{})
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 2, calls)

	assert.NoError(t, Notifiers{ok}.Notify(context.Background(), Summary{}))
	assert.NoError(t, Notifiers{}.Notify(context.Background(), Summary{}))
}
