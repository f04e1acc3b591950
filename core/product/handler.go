package product

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/irsalhamdi/e-commerce-shop/api/web"
	"github.com/irsalhamdi/e-commerce-shop/api/weberr"
	"github.com/irsalhamdi/e-commerce-shop/database"
	"github.com/irsalhamdi/e-commerce-shop/validate"
	"github.com/jmoiron/sqlx"
)

func parseFilter(r *http.Request) (Filter, error) {
	q := r.URL.Query()
	f := Filter{
		Category: q.Get("category"),
		Brand:    q.Get("brand"),
	}

	if v := q.Get("productOfTheDay"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return Filter{}, fmt.Errorf("productOfTheDay: %w", err)
		}
		f.ProductOfTheDay = &b
	}

	for key, dst := range map[string]*uint{"limit": &f.Limit, "offset": &f.Offset} {
		v := q.Get(key)
		if v == "" {
			continue
		}
		n, err := strconv.ParseUint(v, 10, 32)
		if err != nil {
			return Filter{}, fmt.Errorf("%s: %w", key, err)
		}
		*dst = uint(n)
	}

	return f, nil
}

func HandleList(db *sqlx.DB) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		f, err := parseFilter(r)
		if err != nil {
			return weberr.BadRequest(err)
		}

		products, err := List(ctx, db, f)
		if err != nil {
			return fmt.Errorf("listing products: %w", err)
		}

		return web.Respond(ctx, w, products, http.StatusOK)
	}
}

func HandleShow(db *sqlx.DB) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		id := web.Param(r, "id")
		if err := validate.CheckID(id); err != nil {
			return weberr.NotFound(err)
		}

		p, err := Fetch(ctx, db, id)
		if err != nil {
			if errors.Is(err, database.ErrDBNotFound) {
				return weberr.NotFound(err)
			}
			return fmt.Errorf("fetching product: %w", err)
		}

		return web.Respond(ctx, w, p, http.StatusOK)
	}
}

func HandleCreate(db *sqlx.DB) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		var pn ProductNew
		if err := web.Decode(w, r, &pn); err != nil {
			return weberr.BadRequest(fmt.Errorf("unable to decode payload: %w", err))
		}

		if err := validate.Check(pn); err != nil {
			return weberr.Invalid(err)
		}

		var id string
		err := database.Transaction(db, func(tx sqlx.ExtContext) error {
			var err error
			id, err = Create(ctx, tx, pn, time.Now().UTC())
			return err
		})
		if err != nil {
			if errors.Is(err, database.ErrDBOutOfRange) {
				return weberr.Invalid(err)
			}
			return fmt.Errorf("creating product: %w", err)
		}

		p, err := Fetch(ctx, db, id)
		if err != nil {
			return fmt.Errorf("fetching created product: %w", err)
		}

		return web.Respond(ctx, w, p, http.StatusCreated)
	}
}

func HandleExport(db *sqlx.DB) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		products, err := List(ctx, db, Filter{})
		if err != nil {
			return fmt.Errorf("listing products for export: %w", err)
		}

		w.Header().Set("Content-Disposition", "attachment; filename=products.xlsx")
		w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")

		if err := WriteCatalog(w, products); err != nil {
			return fmt.Errorf("writing catalog: %w", err)
		}
		return nil
	}
}
