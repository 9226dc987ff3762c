package httpapi_test

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/bibliotecago/library-circulation-go/app/shared/shell"
)

type fakeCommandHandler[C shell.Command, R any] struct {
	result   R
	err      error
	received []C
}

func (f *fakeCommandHandler[C, R]) Handle(_ context.Context, command C) (R, shell.HandlerResult, error) {
	f.received = append(f.received, command)

	return f.result, shell.SingleAttemptResult(f.err), f.err
}

type fakeQueryHandler[Q shell.Query, R any] struct {
	result   R
	err      error
	received []Q
}

func (f *fakeQueryHandler[Q, R]) Handle(_ context.Context, query Q) (R, error) {
	f.received = append(f.received, query)

	return f.result, f.err
}

type fakePinger struct {
	err error
}

func (p fakePinger) Ping(context.Context) error {
	return p.err
}

type fakeRateCounter struct {
	counts  map[string]int64
	expires int
	err     error
}

func newFakeRateCounter() *fakeRateCounter {
	return &fakeRateCounter{counts: map[string]int64{}}
}

func (c *fakeRateCounter) Incr(_ context.Context, key string) *redis.IntCmd {
	if c.err != nil {
		return redis.NewIntResult(0, c.err)
	}

	c.counts[key]++

	return redis.NewIntResult(c.counts[key], nil)
}

func (c *fakeRateCounter) Expire(context.Context, string, time.Duration) *redis.BoolCmd {
	c.expires++

	return redis.NewBoolResult(true, nil)
}
