package mail

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/hibritu/hirehub/pkg/slogx"
)

// RetryPolicy bounds how hard a delivery is tried.
type RetryPolicy struct {
	// MaxAttempts counts the first try.
	MaxAttempts int
	// InitialInterval is the wait before the second attempt; each later wait
	// is Multiplier times the previous one, capped at MaxInterval.
	InitialInterval time.Duration
	Multiplier      float64
	MaxInterval     time.Duration
	// AttemptTimeout bounds a single Send.
	AttemptTimeout time.Duration
}

var (
	// OTPPolicy: three attempts spaced 1s then 2s.
	OTPPolicy = RetryPolicy{
		MaxAttempts:     3,
		InitialInterval: time.Second,
		Multiplier:      2,
		MaxInterval:     4 * time.Second,
		AttemptTimeout:  10 * time.Second,
	}

	// ResetPolicy is lighter; reset mail is sent in the background.
	ResetPolicy = RetryPolicy{
		MaxAttempts:     2,
		InitialInterval: time.Second,
		Multiplier:      2,
		MaxInterval:     4 * time.Second,
		AttemptTimeout:  10 * time.Second,
	}
)

func (p RetryPolicy) backOff(ctx context.Context) backoff.BackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = p.InitialInterval
	b.Multiplier = p.Multiplier
	b.MaxInterval = p.MaxInterval
	b.RandomizationFactor = 0
	b.MaxElapsedTime = 0
	b.Reset()

	retries := max(p.MaxAttempts-1, 0)
	return backoff.WithContext(backoff.WithMaxRetries(b, uint64(retries)), ctx)
}

// Dispatcher delivers messages through a Sender with retries, either inline
// (Deliver) or in the background (DeliverAsync).
type Dispatcher struct {
	sender Sender
	logger *slog.Logger

	wg sync.WaitGroup
}

func NewDispatcher(sender Sender, logger *slog.Logger) *Dispatcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Dispatcher{sender: sender, logger: logger}
}

// Deliver tries msg under policy and blocks until it is sent or every
// attempt failed. A failure wraps ErrDeliveryFailed and the last transport
// error.
func (d *Dispatcher) Deliver(ctx context.Context, msg Message, policy RetryPolicy) error {
	log := slogx.FromContext(ctx)
	attempt := 0

	op := func() error {
		attempt++
		actx := ctx
		if policy.AttemptTimeout > 0 {
			var cancel context.CancelFunc
			actx, cancel = context.WithTimeout(ctx, policy.AttemptTimeout)
			defer cancel()
		}
		return d.sender.Send(actx, msg)
	}

	notify := func(err error, wait time.Duration) {
		log.Warn("mail attempt failed",
			"attempt", attempt,
			"max_attempts", policy.MaxAttempts,
			"retry_in", wait.String(),
			"err", err,
		)
	}

	err := backoff.RetryNotify(op, policy.backOff(ctx), notify)
	if err != nil {
		log.Error("mail delivery failed", "attempts", attempt, "subject", msg.Subject, "err", err)
		return fmt.Errorf("%w after %d attempt(s): %w", ErrDeliveryFailed, attempt, err)
	}

	if attempt > 1 {
		log.Info("mail delivered after retry", "attempts", attempt)
	}
	return nil
}

// DeliverAsync runs Deliver in its own goroutine and calls done, if non-nil,
// with the outcome. The delivery is detached from ctx cancellation but keeps
// its values (logger, request id).
func (d *Dispatcher) DeliverAsync(ctx context.Context, msg Message, policy RetryPolicy, done func(error)) {
	ctx = context.WithoutCancel(ctx)

	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		err := d.Deliver(ctx, msg, policy)
		if done != nil {
			done(err)
		}
	}()
}

// Wait blocks until background deliveries finish or ctx ends.
func (d *Dispatcher) Wait(ctx context.Context) error {
	finished := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(finished)
	}()

	select {
	case <-finished:
		return nil
	case <-ctx.Done():
		d.logger.Warn("mail dispatcher: shutdown before background deliveries finished")
		return ctx.Err()
	}
}
