package order

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNotifyWithoutLoggerOrMetrics(t *testing.T) {
	failing := notifierFunc(func(context.Context, Summary) error { return errors.New("smtp down") })
	co := &Checkout{Notifier: failing, NotifyTimeout: time.Second}

	assert.NotPanics(t, func() { co.notify(Summary{OrderID: "order-1"}) })

	var got Summary
	co.Notifier = notifierFunc(func(_ context.Context, s Summary) error { got = s; return nil })
	assert.NotPanics(t, func() { co.notify(Summary{OrderID: "order-2"}) })
	assert.Equal(t, "order-2", got.OrderID)
}

func TestNotifyIsBounded(t *testing.T) {
	blocking := notifierFunc(func(ctx context.Context, _ Summary) error {
		<-ctx.Done()
		return ctx.Err()
	})
	co := &Checkout{Notifier: blocking, NotifyTimeout: 50 * time.Millisecond}

	start := time.Now()
	co.notify(Summary{OrderID: "order-3"})
	assert.Less(t, time.Since(start), 2*time.Second)
}
