// Package claims carries the identity of the caller through a request context.
package claims

import (
	"context"
	"errors"
)

const (
	RoleAdmin = "ADMIN"
	RoleUser  = "USER"
)

type Claims struct {
	UserID string
	Email  string
	Role   string
}

func (c Claims) Admin() bool {
	return c.Role == RoleAdmin
}

type ctxKey struct{}

var ErrMissing = errors.New("claim value missing from context")

func Set(ctx context.Context, c Claims) context.Context {
	return context.WithValue(ctx, ctxKey{}, c)
}

func Get(ctx context.Context) (Claims, error) {
	c, ok := ctx.Value(ctxKey{}).(Claims)
	if !ok {
		return Claims{}, ErrMissing
	}
	return c, nil
}

// IsAdmin reports false when ctx carries no claims.
func IsAdmin(ctx context.Context) bool {
	c, err := Get(ctx)
	return err == nil && c.Admin()
}
