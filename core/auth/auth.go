// Package auth resolves the caller of a request. Credentials are checked
// upstream; this service only trusts the user id header the gateway forwards.
package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/irsalhamdi/e-commerce-shop/api/web"
	"github.com/irsalhamdi/e-commerce-shop/api/weberr"
	"github.com/irsalhamdi/e-commerce-shop/core/claims"
	"github.com/irsalhamdi/e-commerce-shop/core/user"
	"github.com/irsalhamdi/e-commerce-shop/database"
	"github.com/irsalhamdi/e-commerce-shop/validate"
	"github.com/jmoiron/sqlx"
)

func Authenticate(db *sqlx.DB, header string) web.Middleware {
	m := func(handler web.Handler) web.Handler {
		h := func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
			id := r.Header.Get(header)
			if id == "" {
				return weberr.NotAuthorized(errors.New("missing user id header"))
			}
			if err := validate.CheckID(id); err != nil {
				return weberr.NotAuthorized(fmt.Errorf("user id header: %w", err))
			}

			u, err := user.Fetch(ctx, db, id)
			if err != nil {
				if errors.Is(err, database.ErrDBNotFound) {
					return weberr.NotAuthorized(err)
				}
				return fmt.Errorf("loading caller: %w", err)
			}

			ctx = claims.Set(ctx, claims.Claims{
				UserID: u.ID,
				Email:  u.Email,
				Role:   u.Role,
			})
			return handler(ctx, w, r)
		}
		return h
	}
	return m
}

// Admin must run after Authenticate.
func Admin() web.Middleware {
	m := func(handler web.Handler) web.Handler {
		h := func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
			if !claims.IsAdmin(ctx) {
				return weberr.Forbidden(errors.New("admin role required"))
			}
			return handler(ctx, w, r)
		}
		return h
	}
	return m
}
