package syncing

import (
	"context"
	"errors"

	"github.com/vfg2006/traffic-sync-worker/internal/domain"
)

// account busca a conta, suas métricas agregadas e agenda a fase de campanhas.
// Sem tempo para terminar, a própria fase é reenfileirada do início.
func (r *phaseRun) account(ctx context.Context) error {
	r.progress(ctx, progressAccountStart)

	restart := domain.ContinuationPayload{}
	if r.outOfTime() {
		return r.deferPhase(ctx, restart)
	}

	account, _, err := Fetch(ctx, r.o.fetcher, "account", func(ctx context.Context) (*domain.AccountSnapshot, error) {
		return r.o.source.GetAccount(ctx, r.payload.AccountID)
	})
	if err != nil {
		var fetchErr *FetchError
		if errors.As(err, &fetchErr) && fetchErr.Kind == FetchNotFound {
			return &EntityNotFoundError{Type: domain.EntityAccount, ID: r.payload.AccountID, Err: err}
		}
		return r.deferOnTimeout(ctx, err, restart)
	}
	r.progress(ctx, progressAccountFetched)

	if r.outOfTime() {
		return r.deferPhase(ctx, restart)
	}

	record, err := r.o.insights.Resolve(ctx, domain.InsightsRef{Type: domain.EntityAccount, ID: account.ID}, r.period)
	if err != nil {
		return r.deferOnTimeout(ctx, err, restart)
	}
	if record == nil {
		r.stats.InsightsMissing++
	}
	account.SetMetrics(domain.NewMetrics(record))
	r.progress(ctx, progressAccountInsights)

	if _, err := r.o.upserter.Upsert(ctx, account); err != nil {
		r.entityFailed(ctx, domain.EntityAccount, account.ID, err)
	} else {
		r.stats.Accounts++
		r.result.Processed++
	}
	r.progress(ctx, progressAccountSaved)

	if err := r.continueWith(ctx, domain.ContinuationPayload{Phase: domain.PhaseCampaigns}, false); err != nil {
		return err
	}
	r.progress(ctx, progressCampaignsStart)

	return nil
}
