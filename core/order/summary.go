package order

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"text/template"
	"time"

	"github.com/irsalhamdi/e-commerce-shop/core/cart"
	"github.com/irsalhamdi/e-commerce-shop/core/pricing"
	"github.com/irsalhamdi/e-commerce-shop/core/user"
)

const unspecified = "unspecified"

// Summary is what the administrator is told about a new order.
type Summary struct {
	OrderID       string        `json:"orderId"`
	Email         string        `json:"email"`
	FirstName     string        `json:"firstName"`
	LastName      string        `json:"lastName"`
	Wholesaler    bool          `json:"wholesaler"`
	Address       string        `json:"address"`
	PaymentMethod string        `json:"paymentMethod"`
	TotalPrice    pricing.Money `json:"totalPrice"`
	OrderedAt     time.Time     `json:"orderedAt"`
	Lines         []Line        `json:"lines"`
}

type Line struct {
	Title    string        `json:"title"`
	Category string        `json:"category"`
	Color    string        `json:"color"`
	Brand    string        `json:"brand"`
	Quantity int           `json:"quantity"`
	Price    pricing.Money `json:"price"`
}

func NewSummary(ord Order, u user.User, pm *PaymentMethod, items []cart.Item) Summary {
	s := Summary{
		OrderID:       ord.ID,
		Email:         u.Email,
		FirstName:     u.FirstName,
		LastName:      u.LastName,
		Wholesaler:    u.Wholesaler,
		Address:       ord.Address,
		PaymentMethod: unspecified,
		TotalPrice:    ord.TotalPrice,
		OrderedAt:     ord.OrderedAt,
		Lines:         make([]Line, 0, len(items)),
	}
	if pm != nil {
		s.PaymentMethod = pm.Name
	}

	for _, it := range items {
		s.Lines = append(s.Lines, Line{
			Title:    it.Product.Title,
			Category: it.Product.Category.Title,
			Color:    it.Product.Color.Title,
			Brand:    it.Product.Brand.Title,
			Quantity: it.Quantity,
			Price:    it.Price,
		})
	}
	return s
}

func (s Summary) Subject() string {
	return "New order!"
}

var bodyTmpl = template.Must(template.New("order").Parse(
	`Order number: {{.OrderID}}
User email: {{.Email}}
User name: {{.FirstName}} {{.LastName}}
Address: {{.Address}}
Payment method: {{.PaymentMethod}}
Price: {{.TotalPrice}}
Ordered at: {{.OrderedAt.Format "2006-01-02 15:04:05 MST"}}

{{if .Wholesaler}}The customer is a wholesaler.

{{end}}{{if .Lines}}Items in the order:
{{range .Lines}}Product: {{.Title}}
Category: {{.Category}}
Color: {{.Color}}
Brand: {{.Brand}}
Quantity: {{.Quantity}}
Item price: {{.Price}}

{{end}}{{else}}The cart is empty.{{end}}`))

func (s Summary) Body() (string, error) {
	var buf bytes.Buffer
	if err := bodyTmpl.Execute(&buf, s); err != nil {
		return "", fmt.Errorf("rendering order[%s] summary: %w", s.OrderID, err)
	}
	return buf.String(), nil
}

// Notifier delivers the summary of a placed order.
type Notifier interface {
	Notify(ctx context.Context, s Summary) error
}

// Notifiers delivers to each notifier in turn; one failing does not stop the others.
type Notifiers []Notifier

func (ns Notifiers) Notify(ctx context.Context, s Summary) error {
	var errs []error
	for _, n := range ns {
		if err := n.Notify(ctx, s); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
