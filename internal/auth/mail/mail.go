// Package mail sends the account emails (verification code, reset link) and
// retries delivery with bounded exponential backoff.
package mail

import (
	"context"
	"errors"
)

// ErrDeliveryFailed is returned once every attempt of a delivery has failed.
// It never becomes an HTTP error; callers report it as "emailSent": false.
var ErrDeliveryFailed = errors.New("mail: delivery failed")

// Message is a single HTML email.
type Message struct {
	To       string
	Subject  string
	HTMLBody string
}

// Sender hands a message to a mail transport. Implementations must honour
// ctx cancellation.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

// SenderFunc adapts a function to Sender.
type SenderFunc func(ctx context.Context, msg Message) error

func (f SenderFunc) Send(ctx context.Context, msg Message) error { return f(ctx, msg) }
