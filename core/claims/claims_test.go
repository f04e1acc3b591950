package claims

import (
	"context"
	"errors"
	"testing"
)

func TestClaims(t *testing.T) {
	ctx := context.Background()
	if _, err := Get(ctx); !errors.Is(err, ErrMissing) {
		t.Fatalf("expected ErrMissing, got %v", err)
	}
	if IsAdmin(ctx) {
		t.Fatal("anonymous context must not be admin")
	}

	ctx = Set(ctx, Claims{UserID: "u1", Role: RoleUser})
	c, err := Get(ctx)
	if err != nil || c.UserID != "u1" {
		t.Fatalf("unexpected claims %+v, %v", c, err)
	}
	if IsAdmin(ctx) {
		t.Fatal("user role must not be admin")
	}

	if !IsAdmin(Set(ctx, Claims{UserID: "a1", Role: RoleAdmin})) {
		t.Fatal("expected admin")
	}
}
