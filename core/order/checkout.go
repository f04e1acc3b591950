package order

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/irsalhamdi/e-commerce-shop/core/cart"
	"github.com/irsalhamdi/e-commerce-shop/core/user"
	"github.com/irsalhamdi/e-commerce-shop/database"
	"github.com/irsalhamdi/e-commerce-shop/metrics"
	"github.com/irsalhamdi/e-commerce-shop/validate"
	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
)

var (
	ErrCartNotFound          = errors.New("cart not found")
	ErrPaymentMethodNotFound = errors.New("payment method not found")
)

// Checkout turns open carts into orders.
type Checkout struct {
	DB       *sqlx.DB
	Notifier Notifier
	Log      logrus.FieldLogger
	Metrics  *metrics.Metrics

	// NotifyTimeout bounds the notification, which runs detached from the
	// request once the order is committed. Keep it under the server write
	// timeout.
	NotifyTimeout time.Duration
}

func (co *Checkout) log() logrus.FieldLogger {
	if co.Log == nil {
		return logrus.StandardLogger()
	}
	return co.Log
}

// Place commits the order and empties the cart in one transaction, then
// notifies. A failed notification is logged; the order stands.
func (co *Checkout) Place(ctx context.Context, userID string, on OrderNew) (Order, error) {
	var (
		ord Order
		sum Summary
	)

	err := database.Transaction(co.DB, func(tx sqlx.ExtContext) error {
		now := time.Now().UTC()

		c, err := cart.LockOpen(ctx, tx, userID)
		if err != nil {
			if errors.Is(err, database.ErrDBNotFound) {
				return ErrCartNotFound
			}
			return err
		}

		pm, err := FetchPaymentMethod(ctx, tx, on.PaymentMethodID)
		if err != nil {
			if errors.Is(err, database.ErrDBNotFound) {
				return ErrPaymentMethodNotFound
			}
			return err
		}

		u, err := user.Fetch(ctx, tx, userID)
		if err != nil {
			return err
		}

		items, err := cart.FetchItems(ctx, tx, c.ID)
		if err != nil {
			return err
		}

		ord = Order{
			ID:              validate.GenerateID(),
			UserID:          userID,
			CartID:          c.ID,
			PaymentMethodID: &pm.ID,
			TotalPrice:      c.TotalPrice,
			Address:         on.Address,
			OrderedAt:       now,
			Items:           make([]Item, 0, len(items)),
		}
		if err := Create(ctx, tx, ord); err != nil {
			return err
		}

		for _, it := range items {
			oi := Item{
				OrderID:   ord.ID,
				ProductID: it.ProductID,
				Title:     it.Product.Title,
				Quantity:  it.Quantity,
				Price:     it.Price,
			}
			if err := CreateItem(ctx, tx, oi); err != nil {
				return err
			}
			ord.Items = append(ord.Items, oi)
		}

		if err := cart.Clear(ctx, tx, c.ID, now); err != nil {
			return fmt.Errorf("flushing cart: %w", err)
		}

		sum = NewSummary(ord, u, &pm, items)
		return nil
	})
	if err != nil {
		return Order{}, fmt.Errorf("placing order for user[%s]: %w", userID, err)
	}

	if co.Metrics != nil {
		co.Metrics.OrdersCreated.Inc()
	}
	co.notify(sum)

	return ord, nil
}

func (co *Checkout) notify(sum Summary) {
	if co.Notifier == nil {
		return
	}

	timeout := co.NotifyTimeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := co.Notifier.Notify(ctx, sum); err != nil {
		if co.Metrics != nil {
			co.Metrics.NotificationFailures.Inc()
		}
		co.log().WithFields(logrus.Fields{
			"order_id": sum.OrderID,
			"error":    err,
		}).Warn("order placed but notification failed")
		return
	}

	co.log().WithField("order_id", sum.OrderID).Info("order notification sent")
}
