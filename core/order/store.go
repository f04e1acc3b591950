package order

import (
	"context"
	"fmt"

	"github.com/irsalhamdi/e-commerce-shop/database"
	"github.com/jmoiron/sqlx"
)

func Create(ctx context.Context, tx sqlx.ExtContext, ord Order) error {
	const q = `
	INSERT INTO orders
		(order_id, user_id, cart_id, payment_method_id, total_price, address, ordered_at)
	VALUES
		(:order_id, :user_id, :cart_id, :payment_method_id, :total_price, :address, :ordered_at)`

	if err := database.NamedExecContext(ctx, tx, q, ord); err != nil {
		return fmt.Errorf("inserting order[%s]: %w", ord.ID, err)
	}
	return nil
}

func CreateItem(ctx context.Context, tx sqlx.ExtContext, it Item) error {
	const q = `
	INSERT INTO order_items
		(order_id, product_id, title, quantity, price)
	VALUES
		(:order_id, :product_id, :title, :quantity, :price)`

	if err := database.NamedExecContext(ctx, tx, q, it); err != nil {
		return fmt.Errorf("inserting item of product[%s] in order[%s]: %w", it.ProductID, it.OrderID, err)
	}
	return nil
}

func fetchItems(ctx context.Context, db sqlx.ExtContext, orderID string) ([]Item, error) {
	in := struct {
		OrderID string `db:"order_id"`
	}{orderID}

	const q = `
	SELECT order_id, product_id, title, quantity, price
	FROM order_items
	WHERE order_id = :order_id
	ORDER BY title, product_id`

	var items []Item
	if err := database.NamedQuerySlice(ctx, db, q, in, &items); err != nil {
		return nil, fmt.Errorf("selecting items of order[%s]: %w", orderID, err)
	}
	if items == nil {
		items = []Item{}
	}
	return items, nil
}

// Fetch returns the order id of userID; orders of other users are not found.
func Fetch(ctx context.Context, db sqlx.ExtContext, userID, id string) (Order, error) {
	in := struct {
		ID     string `db:"order_id"`
		UserID string `db:"user_id"`
	}{id, userID}

	const q = `
	SELECT order_id, user_id, cart_id, payment_method_id, total_price, address, ordered_at
	FROM orders
	WHERE order_id = :order_id AND user_id = :user_id`

	var ord Order
	if err := database.NamedQueryStruct(ctx, db, q, in, &ord); err != nil {
		return Order{}, fmt.Errorf("selecting order[%s]: %w", id, err)
	}

	var err error
	if ord.Items, err = fetchItems(ctx, db, ord.ID); err != nil {
		return Order{}, err
	}
	return ord, nil
}

func FetchByUser(ctx context.Context, db sqlx.ExtContext, userID string) ([]Order, error) {
	in := struct {
		UserID string `db:"user_id"`
	}{userID}

	const q = `
	SELECT order_id, user_id, cart_id, payment_method_id, total_price, address, ordered_at
	FROM orders
	WHERE user_id = :user_id
	ORDER BY ordered_at DESC`

	var orders []Order
	if err := database.NamedQuerySlice(ctx, db, q, in, &orders); err != nil {
		return nil, fmt.Errorf("selecting orders of user[%s]: %w", userID, err)
	}

	for i := range orders {
		var err error
		if orders[i].Items, err = fetchItems(ctx, db, orders[i].ID); err != nil {
			return nil, err
		}
	}
	if orders == nil {
		orders = []Order{}
	}
	return orders, nil
}

func FetchPaymentMethod(ctx context.Context, db sqlx.ExtContext, id string) (PaymentMethod, error) {
	in := struct {
		ID string `db:"payment_method_id"`
	}{id}

	const q = `
	SELECT payment_method_id, name, description
	FROM payment_methods
	WHERE payment_method_id = :payment_method_id`

	var pm PaymentMethod
	if err := database.NamedQueryStruct(ctx, db, q, in, &pm); err != nil {
		return PaymentMethod{}, fmt.Errorf("selecting payment method[%s]: %w", id, err)
	}
	return pm, nil
}

func ListPaymentMethods(ctx context.Context, db sqlx.ExtContext) ([]PaymentMethod, error) {
	const q = `
	SELECT payment_method_id, name, description
	FROM payment_methods
	ORDER BY name`

	var pms []PaymentMethod
	if err := database.NamedQuerySlice(ctx, db, q, struct{}{}, &pms); err != nil {
		return nil, fmt.Errorf("selecting payment methods: %w", err)
	}
	if pms == nil {
		pms = []PaymentMethod{}
	}
	return pms, nil
}
