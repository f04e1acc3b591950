package cart

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/irsalhamdi/e-commerce-shop/core/pricing"
	"github.com/irsalhamdi/e-commerce-shop/database"
	"github.com/irsalhamdi/e-commerce-shop/validate"
	"github.com/jmoiron/sqlx"
)

const selectCart = `
	SELECT cart_id, user_id, ordered, total_price, created_at, updated_at
	FROM carts
	WHERE user_id = :user_id AND NOT ordered`

func FetchOpen(ctx context.Context, db sqlx.ExtContext, userID string) (Cart, error) {
	in := struct {
		UserID string `db:"user_id"`
	}{userID}

	var c Cart
	if err := database.NamedQueryStruct(ctx, db, selectCart, in, &c); err != nil {
		return Cart{}, fmt.Errorf("selecting open cart of user[%s]: %w", userID, err)
	}
	return c, nil
}

// LockOpen fetches the open cart of userID and holds its row lock until the
// transaction ends. Every cart mutation takes this lock before any product lock.
func LockOpen(ctx context.Context, tx sqlx.ExtContext, userID string) (Cart, error) {
	in := struct {
		UserID string `db:"user_id"`
	}{userID}

	var c Cart
	if err := database.NamedQueryStruct(ctx, tx, selectCart+` FOR UPDATE`, in, &c); err != nil {
		return Cart{}, fmt.Errorf("locking open cart of user[%s]: %w", userID, err)
	}
	return c, nil
}

// lockOrCreate is LockOpen creating the cart first when the user has none.
func lockOrCreate(ctx context.Context, tx sqlx.ExtContext, userID string, now time.Time) (Cart, error) {
	c := Cart{
		ID:         validate.GenerateID(),
		UserID:     userID,
		TotalPrice: pricing.Zero,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	const q = `
	INSERT INTO carts
		(cart_id, user_id, ordered, total_price, created_at, updated_at)
	VALUES
		(:cart_id, :user_id, false, :total_price, :created_at, :updated_at)
	ON CONFLICT (user_id) WHERE NOT ordered DO NOTHING`

	if err := database.NamedExecContext(ctx, tx, q, c); err != nil {
		return Cart{}, fmt.Errorf("creating cart of user[%s]: %w", userID, err)
	}

	return LockOpen(ctx, tx, userID)
}

const selectItems = `
	SELECT
		i.item_id, i.cart_id, i.user_id, i.product_id, i.quantity, i.price, i.created_at, i.updated_at,
		p.product_id AS "product.product_id",
		p.title AS "product.title",
		p.description AS "product.description",
		p.image AS "product.image",
		c.title AS "product.category.title",
		co.title AS "product.color.title",
		b.title AS "product.brand.title",
		p.price AS "product.price",
		p.promotion AS "product.promotion",
		p.quantity AS "product.quantity",
		p.is_product_of_the_day AS "product.is_product_of_the_day",
		p.created_at AS "product.created_at",
		p.updated_at AS "product.updated_at"
	FROM cart_items i
	JOIN products p ON p.product_id = i.product_id
	JOIN categories c ON c.category_id = p.category_id
	JOIN colors co ON co.color_id = p.color_id
	JOIN brands b ON b.brand_id = p.brand_id`

// FetchItems returns the lines of a cart with their products, oldest first.
func FetchItems(ctx context.Context, db sqlx.ExtContext, cartID string) ([]Item, error) {
	in := struct {
		CartID string `db:"cart_id"`
	}{cartID}

	q := selectItems + `
	WHERE i.cart_id = :cart_id
	ORDER BY i.created_at, i.item_id`

	items := []Item{}
	if err := database.NamedQuerySlice(ctx, db, q, in, &items); err != nil {
		return nil, fmt.Errorf("selecting items of cart[%s]: %w", cartID, err)
	}
	if items == nil {
		items = []Item{}
	}
	return items, nil
}

func fetchItemByProduct(ctx context.Context, db sqlx.ExtContext, cartID, productID string) (Item, error) {
	in := struct {
		CartID    string `db:"cart_id"`
		ProductID string `db:"product_id"`
	}{cartID, productID}

	q := selectItems + `
	WHERE i.cart_id = :cart_id AND i.product_id = :product_id`

	var it Item
	if err := database.NamedQueryStruct(ctx, db, q, in, &it); err != nil {
		return Item{}, fmt.Errorf("selecting item of product[%s] in cart[%s]: %w", productID, cartID, err)
	}
	return it, nil
}

func fetchItem(ctx context.Context, db sqlx.ExtContext, cartID, itemID string) (Item, error) {
	in := struct {
		CartID string `db:"cart_id"`
		ItemID string `db:"item_id"`
	}{cartID, itemID}

	q := selectItems + `
	WHERE i.cart_id = :cart_id AND i.item_id = :item_id`

	var it Item
	if err := database.NamedQueryStruct(ctx, db, q, in, &it); err != nil {
		return Item{}, fmt.Errorf("selecting item[%s] in cart[%s]: %w", itemID, cartID, err)
	}
	return it, nil
}

func createItem(ctx context.Context, tx sqlx.ExtContext, it Item) error {
	const q = `
	INSERT INTO cart_items
		(item_id, cart_id, user_id, product_id, quantity, price, created_at, updated_at)
	VALUES
		(:item_id, :cart_id, :user_id, :product_id, :quantity, :price, :created_at, :updated_at)`

	if err := database.NamedExecContext(ctx, tx, q, it); err != nil {
		return fmt.Errorf("inserting item of product[%s]: %w", it.ProductID, err)
	}
	return nil
}

func updateItem(ctx context.Context, tx sqlx.ExtContext, it Item) error {
	const q = `
	UPDATE cart_items SET
		quantity = :quantity,
		price = :price,
		updated_at = :updated_at
	WHERE item_id = :item_id`

	if err := database.NamedExecAffected(ctx, tx, q, it); err != nil {
		return fmt.Errorf("updating item[%s]: %w", it.ID, err)
	}
	return nil
}

func deleteItem(ctx context.Context, tx sqlx.ExtContext, itemID string) error {
	in := struct {
		ItemID string `db:"item_id"`
	}{itemID}

	const q = `DELETE FROM cart_items WHERE item_id = :item_id`

	if err := database.NamedExecAffected(ctx, tx, q, in); err != nil {
		return fmt.Errorf("deleting item[%s]: %w", itemID, err)
	}
	return nil
}

func updateTotal(ctx context.Context, tx sqlx.ExtContext, cartID string, total pricing.Money, now time.Time) error {
	in := struct {
		CartID     string        `db:"cart_id"`
		TotalPrice pricing.Money `db:"total_price"`
		UpdatedAt  time.Time     `db:"updated_at"`
	}{cartID, total, now}

	const q = `
	UPDATE carts SET
		total_price = :total_price,
		updated_at = :updated_at
	WHERE cart_id = :cart_id`

	if err := database.NamedExecAffected(ctx, tx, q, in); err != nil {
		return fmt.Errorf("updating total of cart[%s]: %w", cartID, err)
	}
	return nil
}

// recomputeTotal re-sums the current lines of the cart and stores the result.
func recomputeTotal(ctx context.Context, tx sqlx.ExtContext, cartID string, now time.Time) (pricing.Money, error) {
	items, err := FetchItems(ctx, tx, cartID)
	if err != nil {
		return pricing.Money{}, err
	}

	total := Total(items)
	if !total.Fits() {
		return pricing.Money{}, fmt.Errorf("cart[%s] total %s: %w", cartID, total, pricing.ErrOutOfRange)
	}
	if err := updateTotal(ctx, tx, cartID, total, now); err != nil {
		return pricing.Money{}, err
	}
	return total, nil
}

// Clear drops every line of the cart and zeroes its total. Stock is not
// released: the units left with the order.
func Clear(ctx context.Context, tx sqlx.ExtContext, cartID string, now time.Time) error {
	in := struct {
		CartID string `db:"cart_id"`
	}{cartID}

	const q = `DELETE FROM cart_items WHERE cart_id = :cart_id`

	if err := database.NamedExecContext(ctx, tx, q, in); err != nil {
		return fmt.Errorf("deleting items of cart[%s]: %w", cartID, err)
	}

	return updateTotal(ctx, tx, cartID, pricing.Zero, now)
}

// notFound turns a missing row into ErrNotFound, keeping the context of err.
func notFound(err error) error {
	if errors.Is(err, database.ErrDBNotFound) {
		return fmt.Errorf("%v: %w", err, ErrNotFound)
	}
	return err
}
