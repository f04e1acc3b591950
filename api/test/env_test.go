package test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/irsalhamdi/e-commerce-shop/api"
	"github.com/irsalhamdi/e-commerce-shop/config"
	"github.com/irsalhamdi/e-commerce-shop/core/claims"
	"github.com/irsalhamdi/e-commerce-shop/core/order"
	"github.com/irsalhamdi/e-commerce-shop/core/pricing"
	"github.com/irsalhamdi/e-commerce-shop/core/product"
	"github.com/irsalhamdi/e-commerce-shop/core/user"
	"github.com/irsalhamdi/e-commerce-shop/database"
	"github.com/irsalhamdi/e-commerce-shop/metrics"
	"github.com/irsalhamdi/e-commerce-shop/validate"
	"github.com/jmoiron/sqlx"
	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"
	"github.com/sirupsen/logrus"
)

const userHeader = "X-User-Id"

// Card is seeded by the initial migration.
const cardPaymentMethod = "8a1c0c1e-4f5e-4a4d-9f6b-1f1d2c3b4a01"

type captureNotifier struct {
	mu   sync.Mutex
	sent []order.Summary
	err  error
}

func (c *captureNotifier) Notify(ctx context.Context, s order.Summary) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.err != nil {
		return c.err
	}
	c.sent = append(c.sent, s)
	return nil
}

func (c *captureNotifier) summaries() []order.Summary {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]order.Summary(nil), c.sent...)
}

type TestEnv struct {
	*httptest.Server
	DB       *sqlx.DB
	Notifier *captureNotifier
	UserID   string
	AdminID  string
}

// NewTestEnv starts a postgres container, migrates it and serves the api
// against it. Tests are skipped when docker is not reachable.
func NewTestEnv(t *testing.T, name string) *TestEnv {
	t.Helper()

	pool, err := dockertest.NewPool("")
	if err != nil {
		t.Skipf("docker unavailable: %v", err)
	}
	if err := pool.Client.Ping(); err != nil {
		t.Skipf("docker unavailable: %v", err)
	}
	pool.MaxWait = time.Minute

	res, err := pool.RunWithOptions(&dockertest.RunOptions{
		Name:       fmt.Sprintf("shop_%s_%d", name, time.Now().UnixNano()),
		Repository: "postgres",
		Tag:        "15-alpine",
		Env: []string{
			"POSTGRES_USER=postgres",
			"POSTGRES_PASSWORD=postgres",
			"POSTGRES_DB=shop",
		},
	}, func(hc *docker.HostConfig) {
		hc.AutoRemove = true
		hc.RestartPolicy = docker.RestartPolicy{Name: "no"}
	})
	if err != nil {
		t.Fatalf("starting postgres: %v", err)
	}
	t.Cleanup(func() {
		if err := pool.Purge(res); err != nil {
			t.Logf("purging postgres: %v", err)
		}
	})

	var db *sqlx.DB
	err = pool.Retry(func() error {
		var err error
		db, err = database.Open(config.DB{
			User:         "postgres",
			Password:     "postgres",
			Host:         res.GetHostPort("5432/tcp"),
			Name:         "shop",
			MaxIdleConns: 3,
			MaxOpenConns: 10,
			DisableTLS:   true,
		})
		if err != nil {
			return err
		}
		return database.StatusCheck(context.Background(), db)
	})
	if err != nil {
		t.Fatalf("connecting to postgres: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrating: %v", err)
	}

	log := logrus.New()
	log.SetOutput(io.Discard)

	env := &TestEnv{
		DB:       db,
		Notifier: &captureNotifier{},
	}
	env.UserID = env.createUser(t, "user@example.com", claims.RoleUser)
	env.AdminID = env.createUser(t, "admin@example.com", claims.RoleAdmin)

	mtr := metrics.New("test")
	env.Server = httptest.NewServer(api.APIMux(api.APIConfig{
		Log: log,
		DB:  db,
		Checkout: &order.Checkout{
			DB:            db,
			Notifier:      env.Notifier,
			Log:           log,
			Metrics:       mtr,
			NotifyTimeout: time.Second,
		},
		Metrics:    mtr,
		UserHeader: userHeader,
	}))
	t.Cleanup(env.Server.Close)

	return env
}

func (e *TestEnv) createUser(t *testing.T, email, role string) string {
	t.Helper()

	now := time.Now().UTC()
	u := user.User{
		ID:        validate.GenerateID(),
		Email:     email,
		FirstName: "Test",
		LastName:  role,
		Role:      role,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := user.Create(context.Background(), e.DB, u); err != nil {
		t.Fatalf("creating user %s: %v", email, err)
	}
	return u.ID
}

// createProduct stores a product straight in the catalog and returns its id.
func (e *TestEnv) createProduct(t *testing.T, title, price string, promotion string, quantity int) string {
	t.Helper()

	pn := product.ProductNew{
		Title:    title,
		Category: product.Label{Title: "Furniture"},
		Color:    product.Label{Title: "Grey"},
		Brand:    product.Label{Title: "Homelife"},
		Price:    pricing.MustParse(price),
		Quantity: quantity,
	}
	if promotion != "" {
		promo := pricing.MustParse(promotion)
		pn.Promotion = &promo
	}

	var id string
	err := database.Transaction(e.DB, func(tx sqlx.ExtContext) error {
		var err error
		id, err = product.Create(context.Background(), tx, pn, time.Now().UTC())
		return err
	})
	if err != nil {
		t.Fatalf("creating product %s: %v", title, err)
	}
	return id
}

func (e *TestEnv) stock(t *testing.T, productID string) int {
	t.Helper()

	p, err := product.Fetch(context.Background(), e.DB, productID)
	if err != nil {
		t.Fatalf("fetching product %s: %v", productID, err)
	}
	return p.Quantity
}

// send issues the request on behalf of userID and decodes a successful
// response into out. It is safe to call from any goroutine.
func (e *TestEnv) send(method, path, userID string, body, out any) (int, error) {
	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return 0, err
		}
		rd = bytes.NewReader(b)
	}

	r, err := http.NewRequest(method, e.URL+path, rd)
	if err != nil {
		return 0, err
	}
	if userID != "" {
		r.Header.Set(userHeader, userID)
	}

	w, err := e.Client().Do(r)
	if err != nil {
		return 0, err
	}
	defer w.Body.Close()

	if out != nil && w.StatusCode < http.StatusBadRequest {
		if err := json.NewDecoder(w.Body).Decode(out); err != nil {
			return w.StatusCode, fmt.Errorf("decoding %s %s response: %w", method, path, err)
		}
	}
	return w.StatusCode, nil
}

// do is send failing the test on transport or decoding errors.
func (e *TestEnv) do(t *testing.T, method, path, userID string, body, out any) int {
	t.Helper()

	code, err := e.send(method, path, userID, body, out)
	if err != nil {
		t.Fatal(err)
	}
	return code
}
