package llm

import (
	"context"
	"errors"
	"testing"
	"time"

	"chartsmith/internal/tester"
)

// flakyClient fails the first failures calls, then succeeds.
type flakyClient struct {
	failures int
	calls    int
	err      error
}

func (f *flakyClient) Name() string { return "flaky" }
func (f *flakyClient) Close() error { return nil }
func (f *flakyClient) Generate(context.Context, string) (*Completion, error) {
	f.calls++
	if f.calls <= f.failures {
		if f.err != nil {
			return nil, f.err
		}
		return nil, errors.New("transient failure")
	}
	return &Completion{Text: "{}"}, nil
}

func TestRetry_RecoversFromTransientFailure(t *testing.T) {
	inner := &flakyClient{failures: 2}
	cli := Wrap(inner, Retry(3, time.Millisecond))

	out, err := cli.Generate(context.Background(), "p")
	tester.NoErr(t, err)
	tester.Eq(t, out.Text, "{}")
	tester.Eq(t, inner.calls, 3)
}

func TestRetry_GivesUpAfterMaxAttempts(t *testing.T) {
	inner := &flakyClient{failures: 10}
	cli := Wrap(inner, Retry(2, time.Millisecond))

	_, err := cli.Generate(context.Background(), "p")
	tester.Err(t, err)
	tester.Eq(t, inner.calls, 2)
}

func TestRetry_PermanentErrorShortCircuits(t *testing.T) {
	inner := &flakyClient{failures: 10, err: NewPermanentError(errors.New("invalid api key"))}
	cli := Wrap(inner, Retry(5, time.Millisecond))

	_, err := cli.Generate(context.Background(), "p")
	var pe *PermanentError
	tester.True(t, errors.As(err, &pe), "expected PermanentError through the middleware")
	tester.Eq(t, inner.calls, 1)
}

func TestRetry_StopsOnCanceledContext(t *testing.T) {
	inner := &flakyClient{failures: 10}
	cli := Wrap(inner, Retry(5, time.Millisecond))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := cli.Generate(ctx, "p")
	tester.True(t, errors.Is(err, context.Canceled), "expected context.Canceled")
	tester.Eq(t, inner.calls, 1)
}

func TestWrap_Order(t *testing.T) {
	var order []string
	tag := func(name string) Middleware {
		return func(next Client) Client {
			return &taggingClient{next: next, name: name, order: &order}
		}
	}
	inner := &flakyClient{}
	cli := Wrap(inner, tag("outer"), tag("inner"))
	_, err := cli.Generate(context.Background(), "p")
	tester.NoErr(t, err)
	tester.Eq(t, order, []string{"outer", "inner"})
}

type taggingClient struct {
	next  Client
	name  string
	order *[]string
}

func (c *taggingClient) Name() string { return c.next.Name() }
func (c *taggingClient) Close() error { return c.next.Close() }
func (c *taggingClient) Generate(ctx context.Context, prompt string) (*Completion, error) {
	*c.order = append(*c.order, c.name)
	return c.next.Generate(ctx, prompt)
}

func TestRateLimit_SpacesCalls(t *testing.T) {
	inner := &flakyClient{}
	cli := Wrap(inner, RateLimit(20, 1))
	t.Cleanup(func() { _ = cli.Close() })

	start := time.Now()
	for i := 0; i < 3; i++ {
		if _, err := cli.Generate(context.Background(), "p"); err != nil {
			t.Fatal(err)
		}
	}
	// 20 rps with burst 1: the second and third calls wait ~50ms each.
	if elapsed := time.Since(start); elapsed < 80*time.Millisecond {
		t.Fatalf("calls were not spaced: %s", elapsed)
	}
}

func TestFakeClient_ReferencesSchemaColumns(t *testing.T) {
	cli := NewFakeClient()
	out, err := cli.Generate(context.Background(), `[SCHEMA] {"columns":["Region","Sales"],"rowCount":3}`)
	tester.NoErr(t, err)
	tester.Contains(t, out.Text, `"groupBy":"Region"`)
	tester.True(t, out.Usage != nil, "fake client reports usage")
}
