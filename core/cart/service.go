package cart

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/irsalhamdi/e-commerce-shop/core/product"
	"github.com/irsalhamdi/e-commerce-shop/database"
	"github.com/irsalhamdi/e-commerce-shop/validate"
	"github.com/jmoiron/sqlx"
)

// Show returns the open cart of userID with its lines.
func Show(ctx context.Context, db *sqlx.DB, userID string) (Cart, error) {
	c, err := FetchOpen(ctx, db, userID)
	if err != nil {
		return Cart{}, notFound(err)
	}

	if c.Items, err = FetchItems(ctx, db, c.ID); err != nil {
		return Cart{}, err
	}
	return c, nil
}

// Add puts quantity units of a product in the open cart of userID, creating
// the cart on first use. When the product already has a line, quantity
// becomes the line's new quantity.
func Add(ctx context.Context, db *sqlx.DB, userID, productID string, quantity int) (Item, error) {
	if quantity <= 0 {
		return Item{}, ErrInvalidQuantity
	}

	var it Item
	err := database.Transaction(db, func(tx sqlx.ExtContext) error {
		now := time.Now().UTC()

		c, err := lockOrCreate(ctx, tx, userID, now)
		if err != nil {
			return err
		}

		p, err := product.FetchForUpdate(ctx, tx, productID)
		if err != nil {
			return notFound(err)
		}

		existing, err := fetchItemByProduct(ctx, tx, c.ID, productID)
		found := true
		if err != nil {
			if !errors.Is(err, database.ErrDBNotFound) {
				return err
			}
			found = false
		}

		held := 0
		if found {
			held = existing.Quantity
		}

		ch, err := plan(p, held, quantity)
		if err != nil {
			return err
		}

		if err := product.UpdateQuantity(ctx, tx, p.ID, ch.Stock, now); err != nil {
			return err
		}

		if found {
			it = existing
			it.Quantity = ch.Quantity
			it.Price = ch.Price
			it.UpdatedAt = now
			if err := updateItem(ctx, tx, it); err != nil {
				return err
			}
		} else {
			it = Item{
				ID:        validate.GenerateID(),
				CartID:    c.ID,
				UserID:    userID,
				ProductID: p.ID,
				Quantity:  ch.Quantity,
				Price:     ch.Price,
				CreatedAt: now,
				UpdatedAt: now,
			}
			if err := createItem(ctx, tx, it); err != nil {
				return err
			}
		}
		p.Quantity = ch.Stock
		it.Product = p

		_, err = recomputeTotal(ctx, tx, c.ID, now)
		return err
	})
	if err != nil {
		return Item{}, fmt.Errorf("adding product[%s] to cart of user[%s]: %w", productID, userID, err)
	}

	return it, nil
}

// UpdateQuantity sets the line of productID in the open cart of userID to
// quantity units, taking or releasing the difference from stock.
func UpdateQuantity(ctx context.Context, db *sqlx.DB, userID, productID string, quantity int) (Item, error) {
	if quantity <= 0 {
		return Item{}, ErrInvalidQuantity
	}

	var it Item
	err := database.Transaction(db, func(tx sqlx.ExtContext) error {
		now := time.Now().UTC()

		c, err := LockOpen(ctx, tx, userID)
		if err != nil {
			return notFound(err)
		}

		it, err = fetchItemByProduct(ctx, tx, c.ID, productID)
		if err != nil {
			return notFound(err)
		}

		p, err := product.FetchForUpdate(ctx, tx, productID)
		if err != nil {
			return notFound(err)
		}

		ch, err := plan(p, it.Quantity, quantity)
		if err != nil {
			return err
		}

		if err := product.UpdateQuantity(ctx, tx, p.ID, ch.Stock, now); err != nil {
			return err
		}

		it.Quantity = ch.Quantity
		it.Price = ch.Price
		it.UpdatedAt = now
		if err := updateItem(ctx, tx, it); err != nil {
			return err
		}
		p.Quantity = ch.Stock
		it.Product = p

		_, err = recomputeTotal(ctx, tx, c.ID, now)
		return err
	})
	if err != nil {
		return Item{}, fmt.Errorf("updating product[%s] in cart of user[%s]: %w", productID, userID, err)
	}

	return it, nil
}

// Remove drops a line from the open cart of userID and gives its units back
// to stock. It returns the cart as left after the removal.
func Remove(ctx context.Context, db *sqlx.DB, userID, itemID string) (Cart, error) {
	var c Cart
	err := database.Transaction(db, func(tx sqlx.ExtContext) error {
		now := time.Now().UTC()

		var err error
		if c, err = LockOpen(ctx, tx, userID); err != nil {
			return notFound(err)
		}

		it, err := fetchItem(ctx, tx, c.ID, itemID)
		if err != nil {
			return notFound(err)
		}

		p, err := product.FetchForUpdate(ctx, tx, it.ProductID)
		if err != nil {
			return notFound(err)
		}

		if err := product.UpdateQuantity(ctx, tx, p.ID, release(p, it.Quantity), now); err != nil {
			return err
		}

		if err := deleteItem(ctx, tx, it.ID); err != nil {
			return err
		}

		if c.TotalPrice, err = recomputeTotal(ctx, tx, c.ID, now); err != nil {
			return err
		}
		c.UpdatedAt = now

		c.Items, err = FetchItems(ctx, tx, c.ID)
		return err
	})
	if err != nil {
		return Cart{}, fmt.Errorf("removing item[%s] from cart of user[%s]: %w", itemID, userID, err)
	}

	return c, nil
}
