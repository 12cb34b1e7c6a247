package llm

import (
	"context"
	"log"
	"time"
)

// Middleware decorates a Client to inject cross-cutting concerns
// (rate limiting, retries, logging).
type Middleware func(Client) Client

// Wrap applies middlewares in left-to-right order.
// Example: Wrap(inner, A, B) => A(B(inner))
func Wrap(inner Client, mws ...Middleware) Client {
	out := inner
	for i := len(mws) - 1; i >= 0; i-- {
		out = mws[i](out)
	}
	return out
}

// RateLimit limits request rate using the token-bucket limiter.
// If rps <= 0, the limiter is effectively disabled.
func RateLimit(rps float64, burst int) Middleware {
	return func(next Client) Client {
		return &rateLimited{next: next, rl: newRPSLimiter(rps, burst)}
	}
}

type rateLimited struct {
	next Client
	rl   *rpsLimiter
}

func (r *rateLimited) Name() string { return r.next.Name() }
func (r *rateLimited) Close() error {
	r.rl.Stop()
	return r.next.Close()
}

func (r *rateLimited) Generate(ctx context.Context, prompt string) (*Completion, error) {
	if err := r.rl.Acquire(ctx); err != nil {
		return nil, err
	}
	return r.next.Generate(ctx, prompt)
}

// LogCalls logs each generation call with its duration and outcome.
func LogCalls() Middleware {
	return func(next Client) Client {
		return &logged{next: next}
	}
}

type logged struct {
	next Client
}

func (l *logged) Name() string { return l.next.Name() }
func (l *logged) Close() error { return l.next.Close() }

func (l *logged) Generate(ctx context.Context, prompt string) (*Completion, error) {
	start := time.Now()
	out, err := l.next.Generate(ctx, prompt)
	if err != nil {
		log.Printf("llm %s: error after %s: %v", l.next.Name(), time.Since(start).Round(time.Millisecond), err)
		return nil, err
	}
	log.Printf("llm %s: ok in %s (%d bytes)", l.next.Name(), time.Since(start).Round(time.Millisecond), len(out.Text))
	return out, nil
}
