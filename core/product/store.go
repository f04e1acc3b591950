package product

import (
	"context"
	"fmt"
	"time"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"
	"github.com/irsalhamdi/e-commerce-shop/database"
	"github.com/irsalhamdi/e-commerce-shop/validate"
	"github.com/jmoiron/sqlx"
)

const selectProduct = `
	SELECT
		p.product_id, p.title, p.description, p.image,
		c.title AS "category.title", co.title AS "color.title", b.title AS "brand.title",
		p.price, p.promotion, p.quantity, p.is_product_of_the_day, p.created_at, p.updated_at
	FROM products p
	JOIN categories c ON c.category_id = p.category_id
	JOIN colors co ON co.color_id = p.color_id
	JOIN brands b ON b.brand_id = p.brand_id`

func Fetch(ctx context.Context, db sqlx.ExtContext, id string) (Product, error) {
	in := struct {
		ID string `db:"product_id"`
	}{id}

	q := selectProduct + `
	WHERE p.product_id = :product_id`

	var p Product
	if err := database.NamedQueryStruct(ctx, db, q, in, &p); err != nil {
		return Product{}, fmt.Errorf("selecting product[%s]: %w", id, err)
	}
	return p, nil
}

// FetchForUpdate locks the product row until the surrounding transaction
// ends, so concurrent stock changes are serialized.
func FetchForUpdate(ctx context.Context, tx sqlx.ExtContext, id string) (Product, error) {
	in := struct {
		ID string `db:"product_id"`
	}{id}

	q := selectProduct + `
	WHERE p.product_id = :product_id
	FOR UPDATE OF p`

	var p Product
	if err := database.NamedQueryStruct(ctx, tx, q, in, &p); err != nil {
		return Product{}, fmt.Errorf("locking product[%s]: %w", id, err)
	}
	return p, nil
}

func UpdateQuantity(ctx context.Context, tx sqlx.ExtContext, id string, quantity int, now time.Time) error {
	in := struct {
		ID        string    `db:"product_id"`
		Quantity  int       `db:"quantity"`
		UpdatedAt time.Time `db:"updated_at"`
	}{id, quantity, now}

	const q = `
	UPDATE products SET
		quantity = :quantity,
		updated_at = :updated_at
	WHERE product_id = :product_id`

	if err := database.NamedExecAffected(ctx, tx, q, in); err != nil {
		return fmt.Errorf("updating stock of product[%s]: %w", id, err)
	}
	return nil
}

func listQuery(f Filter) (string, []any, error) {
	ds := goqu.Dialect("postgres").
		From(goqu.T("products").As("p")).
		Join(goqu.T("categories").As("c"), goqu.On(goqu.I("c.category_id").Eq(goqu.I("p.category_id")))).
		Join(goqu.T("colors").As("co"), goqu.On(goqu.I("co.color_id").Eq(goqu.I("p.color_id")))).
		Join(goqu.T("brands").As("b"), goqu.On(goqu.I("b.brand_id").Eq(goqu.I("p.brand_id")))).
		Select(
			goqu.I("p.product_id"), goqu.I("p.title"), goqu.I("p.description"), goqu.I("p.image"),
			goqu.L(`c.title AS "category.title"`),
			goqu.L(`co.title AS "color.title"`),
			goqu.L(`b.title AS "brand.title"`),
			goqu.I("p.price"), goqu.I("p.promotion"), goqu.I("p.quantity"),
			goqu.I("p.is_product_of_the_day"), goqu.I("p.created_at"), goqu.I("p.updated_at"),
		).
		Order(goqu.I("p.created_at").Desc(), goqu.I("p.product_id").Asc()).
		Prepared(true)

	if f.Category != "" {
		ds = ds.Where(goqu.I("c.title").Eq(f.Category))
	}
	if f.Brand != "" {
		ds = ds.Where(goqu.I("b.title").Eq(f.Brand))
	}
	if f.ProductOfTheDay != nil {
		ds = ds.Where(goqu.I("p.is_product_of_the_day").Eq(*f.ProductOfTheDay))
	}
	if f.Limit > 0 {
		ds = ds.Limit(f.Limit)
	}
	if f.Offset > 0 {
		ds = ds.Offset(f.Offset)
	}

	return ds.ToSQL()
}

func List(ctx context.Context, db sqlx.QueryerContext, f Filter) ([]Product, error) {
	q, args, err := listQuery(f)
	if err != nil {
		return nil, fmt.Errorf("building product list query: %w", err)
	}

	products := []Product{}
	if err := database.SelectContext(ctx, db, &products, q, args...); err != nil {
		return nil, fmt.Errorf("selecting products: %w", err)
	}
	return products, nil
}

// labelQueries get-or-create a label by title and return its id.
var labelQueries = map[string]string{
	"category": `
	INSERT INTO categories (category_id, title) VALUES (:id, :title)
	ON CONFLICT (title) DO UPDATE SET title = EXCLUDED.title
	RETURNING category_id AS id`,
	"color": `
	INSERT INTO colors (color_id, title) VALUES (:id, :title)
	ON CONFLICT (title) DO UPDATE SET title = EXCLUDED.title
	RETURNING color_id AS id`,
	"brand": `
	INSERT INTO brands (brand_id, title) VALUES (:id, :title)
	ON CONFLICT (title) DO UPDATE SET title = EXCLUDED.title
	RETURNING brand_id AS id`,
}

func labelID(ctx context.Context, tx sqlx.ExtContext, kind string, l Label) (string, error) {
	in := struct {
		ID    string `db:"id"`
		Title string `db:"title"`
	}{validate.GenerateID(), l.Title}

	var out struct {
		ID string `db:"id"`
	}
	if err := database.NamedQueryStruct(ctx, tx, labelQueries[kind], in, &out); err != nil {
		return "", fmt.Errorf("resolving %s[%s]: %w", kind, l.Title, err)
	}
	return out.ID, nil
}

// Create stores a product, creating its category, color and brand on first use.
func Create(ctx context.Context, tx sqlx.ExtContext, pn ProductNew, now time.Time) (string, error) {
	r := row{
		ID:              validate.GenerateID(),
		Title:           pn.Title,
		Description:     pn.Description,
		Image:           pn.Image,
		Price:           pn.Price,
		Promotion:       pn.Promotion,
		Quantity:        pn.Quantity,
		ProductOfTheDay: pn.ProductOfTheDay,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	var err error
	if r.CategoryID, err = labelID(ctx, tx, "category", pn.Category); err != nil {
		return "", err
	}
	if r.ColorID, err = labelID(ctx, tx, "color", pn.Color); err != nil {
		return "", err
	}
	if r.BrandID, err = labelID(ctx, tx, "brand", pn.Brand); err != nil {
		return "", err
	}

	const q = `
	INSERT INTO products
		(product_id, title, description, image, category_id, color_id, brand_id,
		 price, promotion, quantity, is_product_of_the_day, created_at, updated_at)
	VALUES
		(:product_id, :title, :description, :image, :category_id, :color_id, :brand_id,
		 :price, :promotion, :quantity, :is_product_of_the_day, :created_at, :updated_at)`

	if err := database.NamedExecContext(ctx, tx, q, r); err != nil {
		return "", fmt.Errorf("inserting product[%s]: %w", pn.Title, err)
	}
	return r.ID, nil
}
