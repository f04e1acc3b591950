// Package email sends plain text mail over SMTP.
package email

import (
	"context"
	"fmt"
	"net"
	"time"

	"github.com/go-mail/mail/v2"
	"github.com/irsalhamdi/e-commerce-shop/core/order"
)

const sendAttempts = 3

func init() {
	// The greeting is read before the client sets any deadline, so the
	// connection carries one from the start.
	mail.NetDialTimeout = func(network, address string, timeout time.Duration) (net.Conn, error) {
		conn, err := net.DialTimeout(network, address, timeout)
		if err != nil {
			return nil, err
		}
		if err := conn.SetDeadline(time.Now().Add(timeout)); err != nil {
			conn.Close()
			return nil, err
		}
		return conn, nil
	}
}

type Mailer struct {
	from   string
	dialer *mail.Dialer
}

func New(address, password, host string, port int) *Mailer {
	d := mail.NewDialer(host, port, address, password)
	d.Timeout = 5 * time.Second

	return &Mailer{
		from:   address,
		dialer: d,
	}
}

// Send delivers one message, retrying a few times with a short pause.
// It returns as soon as ctx is done, even with an attempt in flight.
func (m *Mailer) Send(ctx context.Context, to, subject, body string) error {
	msg := mail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", body)

	var err error
	for i := 0; i < sendAttempts; i++ {
		if err = m.attempt(ctx, msg); err == nil {
			return nil
		}

		select {
		case <-ctx.Done():
			return fmt.Errorf("sending mail to %s: %w", to, ctx.Err())
		case <-time.After(500 * time.Millisecond):
		}
	}
	return fmt.Errorf("sending mail to %s after %d attempts: %w", to, sendAttempts, err)
}

// attempt runs one DialAndSend, which takes no context, in its own
// goroutine. The goroutine ends at the latest when the connection deadline
// set at dial time passes.
func (m *Mailer) attempt(ctx context.Context, msg *mail.Message) error {
	done := make(chan error, 1)
	go func() {
		done <- m.dialer.DialAndSend(msg)
	}()

	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

type sender interface {
	Send(ctx context.Context, to, subject, body string) error
}

// OrderNotifier mails the summary of each placed order to one address.
type OrderNotifier struct {
	To     string
	Sender sender
}

func (n OrderNotifier) Notify(ctx context.Context, s order.Summary) error {
	body, err := s.Body()
	if err != nil {
		return err
	}

	if err := n.Sender.Send(ctx, n.To, s.Subject(), body); err != nil {
		return fmt.Errorf("mailing order[%s]: %w", s.OrderID, err)
	}
	return nil
}
