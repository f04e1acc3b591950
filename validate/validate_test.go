package validate

import (
	"testing"

	"github.com/irsalhamdi/e-commerce-shop/core/pricing"
)

func TestCheck(t *testing.T) {
	type in struct {
		Name  string        `json:"name" validate:"required"`
		Price pricing.Money `json:"price" validate:"gte=0"`
		Qty   int           `json:"qty" validate:"gt=0"`
	}

	tests := []struct {
		name    string
		val     in
		wantErr bool
	}{
		{"valid", in{"chair", pricing.MustParse("10.00"), 1}, false},
		{"missing name", in{"", pricing.MustParse("10.00"), 1}, true},
		{"negative price", in{"chair", pricing.MustParse("-1.00"), 1}, true},
		{"zero quantity", in{"chair", pricing.MustParse("1.00"), 0}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Check(tt.val)
			if (err != nil) != tt.wantErr {
				t.Fatalf("expected error %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestCheckID(t *testing.T) {
	if err := CheckID(GenerateID()); err != nil {
		t.Fatalf("generated id rejected: %v", err)
	}
	if err := CheckID("42"); err == nil {
		t.Fatal("expected malformed id to be rejected")
	}
}

func TestCheckMessages(t *testing.T) {
	type in struct {
		Address         string `json:"address" validate:"required"`
		PaymentMethodID string `json:"paymentMethodId" validate:"required,uuid"`
	}

	err := Check(in{PaymentMethodID: "card"})
	if err == nil {
		t.Fatal("expected validation error")
	}

	want := "address is a required field; paymentMethodId must be a valid UUID"
	if err.Error() != want {
		t.Fatalf("expected %q, got %q", want, err.Error())
	}
}
