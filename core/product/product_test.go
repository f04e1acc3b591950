package product

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/irsalhamdi/e-commerce-shop/core/pricing"
	"github.com/tealeg/xlsx"
)

func sample() []Product {
	promo := pricing.MustParse("7.50")
	ts := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	return []Product{
		{
			ID:        "3a8b1c4e-0d7f-4f5b-9a36-6c2de4f0c001",
			Title:     "Sofa",
			Category:  Label{"Furniture"},
			Color:     Label{"Grey"},
			Brand:     Label{"Homelife"},
			Price:     pricing.MustParse("10"),
			Quantity:  5,
			UpdatedAt: ts,
		},
		{
			ID:              "3a8b1c4e-0d7f-4f5b-9a36-6c2de4f0c002",
			Title:           "Lamp",
			Category:        Label{"Lighting"},
			Color:           Label{"White"},
			Brand:           Label{"Lumen"},
			Price:           pricing.MustParse("10.00"),
			Promotion:       &promo,
			Quantity:        2,
			ProductOfTheDay: true,
			UpdatedAt:       ts,
		},
	}
}

func TestUnitPrice(t *testing.T) {
	ps := sample()
	if got := ps[0].UnitPrice().String(); got != "10.00" {
		t.Fatalf("expected standard price, got %s", got)
	}
	if got := ps[1].UnitPrice().String(); got != "7.50" {
		t.Fatalf("expected promotional price, got %s", got)
	}
}

func TestProductJSON(t *testing.T) {
	b, err := json.Marshal(sample()[1])
	if err != nil {
		t.Fatal(err)
	}

	var got map[string]any
	if err := json.Unmarshal(b, &got); err != nil {
		t.Fatal(err)
	}

	if got["price"] != "10.00" || got["promotion"] != "7.50" {
		t.Fatalf("unexpected money encoding: price=%v promotion=%v", got["price"], got["promotion"])
	}
	if diff := cmp.Diff(map[string]any{"title": "Lighting"}, got["category"]); diff != "" {
		t.Fatalf("category mismatch (-want +got):\n%s", diff)
	}
}

func TestWriteCatalog(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteCatalog(&buf, sample()); err != nil {
		t.Fatalf("writing catalog: %v", err)
	}

	f, err := xlsx.OpenBinary(buf.Bytes())
	if err != nil {
		t.Fatalf("reading catalog back: %v", err)
	}

	rows := f.Sheets[0].Rows
	if len(rows) != 3 {
		t.Fatalf("expected header and 2 rows, got %d", len(rows))
	}

	var got []string
	for _, c := range rows[2].Cells[:8] {
		got = append(got, c.Value)
	}
	exp := []string{
		"3a8b1c4e-0d7f-4f5b-9a36-6c2de4f0c002", "Lamp", "Lighting", "White", "Lumen",
		"10.00", "7.50", "7.50",
	}
	if diff := cmp.Diff(exp, got); diff != "" {
		t.Fatalf("row mismatch (-want +got):\n%s", diff)
	}
}

func TestListQuery(t *testing.T) {
	q, args, err := listQuery(Filter{Category: "Lighting", Brand: "Lumen", Limit: 10})
	if err != nil {
		t.Fatal(err)
	}

	for _, part := range []string{`c.title AS "category.title"`, `"c"."title" = $1`, "LIMIT $"} {
		if !strings.Contains(q, part) {
			t.Fatalf("query %q misses %q", q, part)
		}
	}
	if len(args) != 3 {
		t.Fatalf("expected 3 args, got %v", args)
	}
}

func TestParseFilter(t *testing.T) {
	r := httptest.NewRequest("GET", "/products?brand=Lumen&productOfTheDay=true&limit=5", nil)
	f, err := parseFilter(r)
	if err != nil {
		t.Fatal(err)
	}
	if f.Brand != "Lumen" || f.ProductOfTheDay == nil || !*f.ProductOfTheDay || f.Limit != 5 {
		t.Fatalf("unexpected filter %+v", f)
	}

	r = httptest.NewRequest("GET", "/products?limit=-1", nil)
	if _, err := parseFilter(r); err == nil {
		t.Fatal("expected negative limit to be rejected")
	}
}
