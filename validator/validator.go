// Package validator accepts whole messages against the root rule of a grammar.
package validator

import (
	"context"

	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
	"golang.org/x/sync/errgroup"

	"github.com/ava12/rulematch/matcher"
)

// T traces to the core tracer.
func T() tracing.Trace {
	return gtrace.CoreTracer
}

// Validator decides whether messages are generated by the grammar of its matcher.
type Validator struct {
	matcher *matcher.Matcher
	workers int
}

// Option configures Validator.
type Option func(*Validator)

// WithWorkers sets the number of messages evaluated concurrently, values below 1 mean 1.
func WithWorkers(n int) Option {
	return func(v *Validator) {
		v.workers = max(n, 1)
	}
}

func New(m *matcher.Matcher, opts ...Option) *Validator {
	v := &Validator{matcher: m, workers: 1}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

func (v *Validator) Matcher() *matcher.Matcher {
	return v.matcher
}

// IsValid matches the root rule against message and accepts it only if nothing is left unconsumed.
// Error means malformed grammar, never a mismatch.
func (v *Validator) IsValid(message string) (bool, error) {
	rest, ok, e := v.matcher.MatchRoot(message)
	if e != nil {
		return false, e
	}

	valid := ok && rest == ""
	T().Debugf("%q: valid = %v", message, valid)
	return valid, nil
}

// Evaluate returns verdicts for messages in the same order. Messages are independent of each other
// and are evaluated by up to workers goroutines. The first grammar error or ctx cancellation
// stops evaluation.
func (v *Validator) Evaluate(ctx context.Context, messages []string) ([]bool, error) {
	result := make([]bool, len(messages))
	if v.workers == 1 {
		for i, message := range messages {
			if e := ctx.Err(); e != nil {
				return nil, e
			}

			valid, e := v.IsValid(message)
			if e != nil {
				return nil, e
			}
			result[i] = valid
		}
		return result, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(v.workers)
	for i, message := range messages {
		if gctx.Err() != nil {
			break
		}

		i, message := i, message
		g.Go(func() error {
			if e := gctx.Err(); e != nil {
				return e
			}

			valid, e := v.IsValid(message)
			if e != nil {
				return e
			}
			result[i] = valid
			return nil
		})
	}

	if e := g.Wait(); e != nil {
		return nil, e
	}
	if e := ctx.Err(); e != nil {
		return nil, e
	}
	return result, nil
}

// CountValid returns the number of valid messages.
func (v *Validator) CountValid(ctx context.Context, messages []string) (int, error) {
	verdicts, e := v.Evaluate(ctx, messages)
	if e != nil {
		return 0, e
	}

	count := 0
	for _, valid := range verdicts {
		if valid {
			count++
		}
	}
	T().Infof("%d of %d messages valid", count, len(messages))
	return count, nil
}
