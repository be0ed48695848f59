package syncing

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/traffic-sync-worker/internal/domain"
	"golang.org/x/time/rate"
)

// FetcherConfig define o ritmo e a política de backoff das chamadas à fonte
type FetcherConfig struct {
	PacingDelay    time.Duration
	BaseBackoff    time.Duration
	MaxBackoff     time.Duration
	HardBackoffMin time.Duration
	HardBackoffMax time.Duration
	MaxRetries     int
}

// CallStats resume as tentativas de uma chamada
type CallStats struct {
	Attempts int
	Retries  int
	Delays   []time.Duration
}

// Fetcher executa chamadas à fonte respeitando o ritmo mínimo entre requisições
// e repetindo as que falharem por rate limit
type Fetcher struct {
	cfg      FetcherConfig
	limiter  *rate.Limiter
	classify domain.Classifier
	sleep    func(ctx context.Context, d time.Duration) error
}

func NewFetcher(cfg FetcherConfig, classify domain.Classifier) *Fetcher {
	limit := rate.Inf
	if cfg.PacingDelay > 0 {
		limit = rate.Every(cfg.PacingDelay)
	}

	return &Fetcher{
		cfg:      cfg,
		limiter:  rate.NewLimiter(limit, 1),
		classify: classify,
		sleep:    sleepContext,
	}
}

// Call executa fn com pacing e retry. Erros que não são de rate limit voltam
// imediatamente como FetchError. Com um orçamento no contexto, Call devolve
// ErrTimeBudgetExhausted em vez de tentar ou esperar além do limite seguro.
func (f *Fetcher) Call(ctx context.Context, op string, fn func(ctx context.Context) error) (CallStats, error) {
	var stats CallStats
	window, bounded := budgetFrom(ctx)

	for retry := 0; ; retry++ {
		if bounded && window.budget.ShouldDefer(window.start) {
			return stats, fmt.Errorf("fetch %s: %w", op, ErrTimeBudgetExhausted)
		}

		if err := f.limiter.Wait(ctx); err != nil {
			return stats, err
		}

		stats.Attempts++
		err := fn(ctx)
		if err == nil {
			if stats.Retries > 0 {
				logrus.WithFields(logrus.Fields{
					"op":       op,
					"attempts": stats.Attempts,
					"retries":  stats.Retries,
				}).Info("fetcher: call succeeded after retries")
			}
			return stats, nil
		}

		if ctxErr := ctx.Err(); ctxErr != nil {
			return stats, ctxErr
		}

		class := f.classify(err)
		switch class {
		case domain.ErrorClassRateLimit, domain.ErrorClassHardRateLimit:
		case domain.ErrorClassNotFound:
			return stats, &FetchError{Kind: FetchNotFound, Op: op, Retries: stats.Retries, Err: err}
		default:
			return stats, &FetchError{Kind: FetchNonRetryable, Op: op, Retries: stats.Retries, Err: err}
		}

		if retry >= f.cfg.MaxRetries {
			logrus.WithFields(logrus.Fields{
				"op":      op,
				"retries": stats.Retries,
				"error":   err.Error(),
			}).Error("fetcher: rate limit retries exhausted")
			return stats, &FetchError{Kind: FetchRateLimitExhausted, Op: op, Retries: stats.Retries, Err: err}
		}

		delay := f.backoff(class, retry)
		if bounded && !window.budget.Allows(window.start, delay) {
			logrus.WithFields(logrus.Fields{
				"op":        op,
				"delay":     delay.String(),
				"remaining": window.budget.Remaining(window.start).String(),
			}).Warn("fetcher: backoff does not fit the time budget, deferring")
			return stats, fmt.Errorf("fetch %s: %w after %d retries: %v", op, ErrTimeBudgetExhausted, stats.Retries, err)
		}

		stats.Retries++
		stats.Delays = append(stats.Delays, delay)

		logrus.WithFields(logrus.Fields{
			"op":    op,
			"class": class.String(),
			"retry": stats.Retries,
			"delay": delay.String(),
		}).Warn("fetcher: rate limited, backing off")

		if err := f.sleep(ctx, delay); err != nil {
			return stats, &FetchError{Kind: FetchRateLimited, Op: op, Retries: stats.Retries, Err: err}
		}
	}
}

// Fetch é a versão de Call que devolve o valor da chamada
func Fetch[T any](ctx context.Context, f *Fetcher, op string, fn func(ctx context.Context) (T, error)) (T, CallStats, error) {
	var result T

	stats, err := f.Call(ctx, op, func(ctx context.Context) error {
		value, err := fn(ctx)
		if err != nil {
			return err
		}
		result = value
		return nil
	})

	return result, stats, err
}

func (f *Fetcher) backoff(class domain.ErrorClass, retry int) time.Duration {
	if class == domain.ErrorClassHardRateLimit {
		delay := f.cfg.HardBackoffMin << uint(retry)
		if delay < f.cfg.HardBackoffMin {
			delay = f.cfg.HardBackoffMin
		}
		if delay > f.cfg.HardBackoffMax || delay < 0 {
			delay = f.cfg.HardBackoffMax
		}
		return delay
	}

	delay := f.cfg.BaseBackoff << uint(retry)
	if delay > f.cfg.MaxBackoff || delay < 0 {
		delay = f.cfg.MaxBackoff
	}
	return delay
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
