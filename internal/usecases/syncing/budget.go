package syncing

import (
	"context"
	"time"
)

// TimeBudget limita o tempo de uma invocação, reservando uma margem para
// enfileirar a continuação antes do limite da plataforma
type TimeBudget struct {
	MaxProcessingTime time.Duration
	SafetyBuffer      time.Duration
	now               func() time.Time
}

func NewTimeBudget(maxProcessingTime, safetyBuffer time.Duration, now func() time.Time) TimeBudget {
	if now == nil {
		now = time.Now
	}
	return TimeBudget{
		MaxProcessingTime: maxProcessingTime,
		SafetyBuffer:      safetyBuffer,
		now:               now,
	}
}

// ShouldDefer indica que o trabalho restante deve ir para uma continuação
func (b TimeBudget) ShouldDefer(start time.Time) bool {
	return b.clock().Sub(start) > b.usable()
}

// Allows indica se uma espera de d ainda termina dentro do limite seguro
func (b TimeBudget) Allows(start time.Time, d time.Duration) bool {
	return b.clock().Add(d).Sub(start) <= b.usable()
}

// Remaining é o tempo até o limite máximo, nunca negativo
func (b TimeBudget) Remaining(start time.Time) time.Duration {
	remaining := b.MaxProcessingTime - b.clock().Sub(start)
	if remaining < 0 {
		return 0
	}
	return remaining
}

func (b TimeBudget) usable() time.Duration {
	return b.MaxProcessingTime - b.SafetyBuffer
}

func (b TimeBudget) clock() time.Time {
	if b.now == nil {
		return time.Now()
	}
	return b.now()
}

type budgetKey struct{}

// budgetWindow é o orçamento de uma invocação já iniciada
type budgetWindow struct {
	budget TimeBudget
	start  time.Time
}

// WithBudget anexa ao contexto o orçamento da invocação iniciada em start.
// O fetcher o consulta antes de cada tentativa e de cada espera de backoff.
func WithBudget(ctx context.Context, budget TimeBudget, start time.Time) context.Context {
	if budget.MaxProcessingTime <= 0 {
		return ctx
	}
	return context.WithValue(ctx, budgetKey{}, budgetWindow{budget: budget, start: start})
}

func budgetFrom(ctx context.Context) (budgetWindow, bool) {
	window, ok := ctx.Value(budgetKey{}).(budgetWindow)
	return window, ok
}
