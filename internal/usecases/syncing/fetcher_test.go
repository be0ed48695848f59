package syncing

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/traffic-sync-worker/internal/domain"
)

// Erros usados pelo classificador de teste
var (
	errRateLimited = errors.New("rate limited")
	errHardLimited = errors.New("hard rate limited")
	errGone        = errors.New("object does not exist")
	errBadRequest  = errors.New("invalid parameter")
)

func testClassifier(err error) domain.ErrorClass {
	switch {
	case errors.Is(err, errHardLimited):
		return domain.ErrorClassHardRateLimit
	case errors.Is(err, errRateLimited):
		return domain.ErrorClassRateLimit
	case errors.Is(err, errGone):
		return domain.ErrorClassNotFound
	}
	return domain.ErrorClassNonRetryable
}

func testFetcherConfig() FetcherConfig {
	return FetcherConfig{
		BaseBackoff:    2 * time.Second,
		MaxBackoff:     60 * time.Second,
		HardBackoffMin: 60 * time.Second,
		HardBackoffMax: 300 * time.Second,
		MaxRetries:     3,
	}
}

// newTestFetcher cria um fetcher sem pacing que registra as esperas em vez de dormir
func newTestFetcher(cfg FetcherConfig) (*Fetcher, *[]time.Duration) {
	var slept []time.Duration
	fetcher := NewFetcher(cfg, testClassifier)
	fetcher.sleep = func(_ context.Context, d time.Duration) error {
		slept = append(slept, d)
		return nil
	}
	return fetcher, &slept
}

// failing devolve os erros em sequência e depois sucesso
func failing(errs ...error) (func(ctx context.Context) error, *int) {
	calls := 0
	return func(context.Context) error {
		calls++
		if calls <= len(errs) {
			return errs[calls-1]
		}
		return nil
	}, &calls
}

func TestFetcher_Call(t *testing.T) {
	tests := []struct {
		name     string
		errs     []error
		validate func(t *testing.T, stats CallStats, slept []time.Duration, calls int, err error)
	}{
		{
			name: "Sucesso na primeira tentativa",
			validate: func(t *testing.T, stats CallStats, slept []time.Duration, calls int, err error) {
				require.NoError(t, err)
				assert.Equal(t, 1, stats.Attempts)
				assert.Zero(t, stats.Retries)
				assert.Empty(t, slept)
			},
		},
		{
			name: "Rate limit duas vezes e sucesso na terceira",
			errs: []error{errRateLimited, errRateLimited},
			validate: func(t *testing.T, stats CallStats, slept []time.Duration, calls int, err error) {
				require.NoError(t, err)
				assert.Equal(t, 3, calls)
				assert.Equal(t, 2, stats.Retries)
				assert.Equal(t, []time.Duration{2 * time.Second, 4 * time.Second}, stats.Delays)
				assert.Equal(t, stats.Delays, slept)
			},
		},
		{
			name: "Três repetições dobram a espera",
			errs: []error{errRateLimited, errRateLimited, errRateLimited},
			validate: func(t *testing.T, stats CallStats, slept []time.Duration, calls int, err error) {
				require.NoError(t, err)
				assert.Equal(t, []time.Duration{2 * time.Second, 4 * time.Second, 8 * time.Second}, slept)
			},
		},
		{
			name: "Rate limit pesado usa o piso e o teto próprios",
			errs: []error{errHardLimited, errHardLimited, errHardLimited},
			validate: func(t *testing.T, stats CallStats, slept []time.Duration, calls int, err error) {
				require.NoError(t, err)
				assert.Equal(t, []time.Duration{60 * time.Second, 120 * time.Second, 240 * time.Second}, slept)
			},
		},
		{
			name: "Esgota as tentativas",
			errs: []error{errRateLimited, errRateLimited, errRateLimited, errRateLimited},
			validate: func(t *testing.T, stats CallStats, slept []time.Duration, calls int, err error) {
				require.Error(t, err)
				assert.True(t, IsRateLimitExhausted(err))
				assert.Equal(t, 4, calls)
				assert.Equal(t, 3, stats.Retries)
				assert.ErrorIs(t, err, errRateLimited)
			},
		},
		{
			name: "Erro não repetível volta na hora",
			errs: []error{errBadRequest},
			validate: func(t *testing.T, stats CallStats, slept []time.Duration, calls int, err error) {
				var fetchErr *FetchError
				require.ErrorAs(t, err, &fetchErr)
				assert.Equal(t, FetchNonRetryable, fetchErr.Kind)
				assert.Equal(t, 1, calls)
				assert.Empty(t, slept)
			},
		},
		{
			name: "Entidade removida não é repetida",
			errs: []error{errGone},
			validate: func(t *testing.T, stats CallStats, slept []time.Duration, calls int, err error) {
				var fetchErr *FetchError
				require.ErrorAs(t, err, &fetchErr)
				assert.Equal(t, FetchNotFound, fetchErr.Kind)
				assert.True(t, isSkippable(err))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fetcher, slept := newTestFetcher(testFetcherConfig())
			fn, calls := failing(tt.errs...)

			stats, err := fetcher.Call(context.Background(), "test", fn)
			tt.validate(t, stats, *slept, *calls, err)
		})
	}
}

func TestFetcher_HardBackoffClamp(t *testing.T) {
	cfg := testFetcherConfig()
	cfg.MaxRetries = 5
	fetcher, slept := newTestFetcher(cfg)
	fn, _ := failing(errHardLimited, errHardLimited, errHardLimited, errHardLimited)

	_, err := fetcher.Call(context.Background(), "test", fn)
	require.NoError(t, err)
	assert.Equal(t, []time.Duration{60 * time.Second, 120 * time.Second, 240 * time.Second, 300 * time.Second}, *slept)
}

func TestFetcher_StandardBackoffCap(t *testing.T) {
	cfg := testFetcherConfig()
	cfg.MaxBackoff = 5 * time.Second
	fetcher, slept := newTestFetcher(cfg)
	fn, _ := failing(errRateLimited, errRateLimited, errRateLimited)

	_, err := fetcher.Call(context.Background(), "test", fn)
	require.NoError(t, err)
	assert.Equal(t, []time.Duration{2 * time.Second, 4 * time.Second, 5 * time.Second}, *slept)
}

func TestFetcher_ContextCancelledDuringBackoff(t *testing.T) {
	fetcher := NewFetcher(testFetcherConfig(), testClassifier)
	fetcher.sleep = func(ctx context.Context, _ time.Duration) error {
		return context.Canceled
	}
	fn, calls := failing(errRateLimited)

	_, err := fetcher.Call(context.Background(), "test", fn)

	var fetchErr *FetchError
	require.ErrorAs(t, err, &fetchErr)
	assert.Equal(t, FetchRateLimited, fetchErr.Kind)
	assert.ErrorIs(t, err, context.Canceled)
	assert.True(t, isContextError(err))
	assert.Equal(t, 1, *calls)
}

func TestFetch_ReturnsValue(t *testing.T) {
	fetcher, _ := newTestFetcher(testFetcherConfig())
	attempts := 0

	value, stats, err := Fetch(context.Background(), fetcher, "test", func(context.Context) (string, error) {
		attempts++
		if attempts == 1 {
			return "", errRateLimited
		}
		return "ok", nil
	})

	require.NoError(t, err)
	assert.Equal(t, "ok", value)
	assert.Equal(t, 2, stats.Attempts)
}

func TestFetcher_Pacing(t *testing.T) {
	cfg := testFetcherConfig()
	cfg.PacingDelay = 20 * time.Millisecond
	fetcher := NewFetcher(cfg, testClassifier)

	start := time.Now()
	for i := 0; i < 3; i++ {
		_, err := fetcher.Call(context.Background(), "test", func(context.Context) error { return nil })
		require.NoError(t, err)
	}

	// A primeira chamada é imediata e as duas seguintes esperam o intervalo
	assert.GreaterOrEqual(t, time.Since(start), 35*time.Millisecond)
}

func TestFetcher_TimeBudget(t *testing.T) {
	tests := []struct {
		name     string
		elapsed  time.Duration
		errs     []error
		validate func(t *testing.T, stats CallStats, calls int, spent time.Duration, err error)
	}{
		{
			name: "Backoff pesado maior que o tempo restante adia sem dormir",
			errs: []error{errHardLimited, errHardLimited},
			validate: func(t *testing.T, stats CallStats, calls int, spent time.Duration, err error) {
				require.Error(t, err)
				assert.True(t, IsOutOfTime(err))
				assert.False(t, IsRateLimitExhausted(err))
				assert.False(t, isSkippable(err))
				assert.Equal(t, 1, calls)
				assert.Zero(t, stats.Retries)
				assert.Zero(t, spent)
			},
		},
		{
			name: "Backoff que cabe no orçamento é cumprido",
			errs: []error{errRateLimited, errRateLimited},
			validate: func(t *testing.T, stats CallStats, calls int, spent time.Duration, err error) {
				require.NoError(t, err)
				assert.Equal(t, 3, calls)
				assert.Equal(t, 6*time.Second, spent)
			},
		},
		{
			name:    "Espera que cruzaria o limite seguro adia na repetição seguinte",
			elapsed: 70 * time.Second,
			errs:    []error{errRateLimited, errRateLimited, errRateLimited},
			validate: func(t *testing.T, stats CallStats, calls int, spent time.Duration, err error) {
				assert.True(t, IsOutOfTime(err))
				assert.Equal(t, 2, calls)
				assert.Equal(t, []time.Duration{2 * time.Second}, stats.Delays)
				assert.Equal(t, 72*time.Second, spent)
			},
		},
		{
			name:    "Orçamento esgotado não chama a fonte",
			elapsed: 76 * time.Second,
			validate: func(t *testing.T, stats CallStats, calls int, spent time.Duration, err error) {
				assert.True(t, IsOutOfTime(err))
				assert.Zero(t, calls)
				assert.Zero(t, stats.Attempts)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clock := newFakeClock()
			start := clock.Now()

			// Mock: a espera do backoff avança o relógio em vez de dormir
			fetcher := NewFetcher(testFetcherConfig(), testClassifier)
			fetcher.sleep = func(_ context.Context, d time.Duration) error {
				clock.Advance(d)
				return nil
			}

			clock.Advance(tt.elapsed)
			ctx := WithBudget(context.Background(), NewTimeBudget(80*time.Second, 5*time.Second, clock.Now), start)
			fn, calls := failing(tt.errs...)

			stats, err := fetcher.Call(ctx, "test", fn)
			tt.validate(t, stats, *calls, clock.Now().Sub(start), err)
		})
	}
}
