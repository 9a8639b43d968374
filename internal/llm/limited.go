package llm

import (
	"context"

	"github.com/deusflow/newsroom/internal/ratelimit"
)

// LimitedCompleter books every call against an AI usage limiter first.
type LimitedCompleter struct {
	next     Completer
	limiter  *ratelimit.AILimiter
	provider string
}

func Limited(next Completer, limiter *ratelimit.AILimiter, provider string) *LimitedCompleter {
	return &LimitedCompleter{next: next, limiter: limiter, provider: provider}
}

func (l *LimitedCompleter) Complete(ctx context.Context, req Request) (string, error) {
	if err := l.limiter.Acquire(ctx, l.provider); err != nil {
		return "", err
	}
	return l.next.Complete(ctx, req)
}
