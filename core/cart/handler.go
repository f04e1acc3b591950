package cart

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/irsalhamdi/e-commerce-shop/api/web"
	"github.com/irsalhamdi/e-commerce-shop/api/weberr"
	"github.com/irsalhamdi/e-commerce-shop/core/claims"
	"github.com/irsalhamdi/e-commerce-shop/core/pricing"
	"github.com/irsalhamdi/e-commerce-shop/database"
	"github.com/irsalhamdi/e-commerce-shop/validate"
	"github.com/jmoiron/sqlx"
)

// requestErr maps the reconciliation errors to the response the client sees.
func requestErr(err error) error {
	switch {
	case errors.Is(err, ErrInvalidQuantity):
		return weberr.NewError(err, ErrInvalidQuantity.Error(), http.StatusBadRequest)
	case errors.Is(err, ErrInsufficientStock):
		return weberr.NewError(err, ErrInsufficientStock.Error(), http.StatusBadRequest)
	case errors.Is(err, pricing.ErrOutOfRange), errors.Is(err, database.ErrDBOutOfRange):
		return weberr.NewError(err, pricing.ErrOutOfRange.Error(), http.StatusBadRequest)
	case errors.Is(err, ErrNotFound):
		return weberr.NotFound(err)
	}
	return err
}

func HandleShow(db *sqlx.DB) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		clm, err := claims.Get(ctx)
		if err != nil {
			return weberr.NotAuthorized(errors.New("user not authenticated"))
		}

		c, err := Show(ctx, db, clm.UserID)
		if err != nil {
			return requestErr(fmt.Errorf("showing cart: %w", err))
		}

		return web.Respond(ctx, w, c, http.StatusOK)
	}
}

func HandleCreateItem(db *sqlx.DB) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		clm, err := claims.Get(ctx)
		if err != nil {
			return weberr.NotAuthorized(errors.New("user not authenticated"))
		}

		var in ItemNew
		if err := web.Decode(w, r, &in); err != nil {
			return weberr.BadRequest(fmt.Errorf("unable to decode payload: %w", err))
		}

		if err := validate.Check(in); err != nil {
			return weberr.Invalid(err)
		}

		qty := 1
		if in.Quantity != nil {
			qty = *in.Quantity
		}

		it, err := Add(ctx, db, clm.UserID, in.ProductID, qty)
		if err != nil {
			return requestErr(err)
		}

		return web.Respond(ctx, w, it, http.StatusCreated)
	}
}

func HandleUpdateItem(db *sqlx.DB) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		clm, err := claims.Get(ctx)
		if err != nil {
			return weberr.NotAuthorized(errors.New("user not authenticated"))
		}

		var in ItemUp
		if err := web.Decode(w, r, &in); err != nil {
			return weberr.BadRequest(fmt.Errorf("unable to decode payload: %w", err))
		}

		if err := validate.Check(in); err != nil {
			return weberr.Invalid(err)
		}

		it, err := UpdateQuantity(ctx, db, clm.UserID, in.ProductID, in.Quantity)
		if err != nil {
			return requestErr(err)
		}

		return web.Respond(ctx, w, it, http.StatusOK)
	}
}

func HandleDeleteItem(db *sqlx.DB) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		clm, err := claims.Get(ctx)
		if err != nil {
			return weberr.NotAuthorized(errors.New("user not authenticated"))
		}

		itemID := web.Param(r, "id")
		if err := validate.CheckID(itemID); err != nil {
			return weberr.NotFound(err)
		}

		c, err := Remove(ctx, db, clm.UserID, itemID)
		if err != nil {
			return requestErr(err)
		}

		return web.Respond(ctx, w, c, http.StatusOK)
	}
}
