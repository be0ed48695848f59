package syncing

import (
	"context"

	"github.com/vfg2006/traffic-sync-worker/internal/domain"
	"github.com/vfg2006/traffic-sync-worker/pkg/log"
)

// ads processa um lote dos conjuntos restantes e conclui a requisição quando
// não sobra nenhum
func (r *phaseRun) ads(ctx context.Context) error {
	adSetIDs, err := r.adSetIDs(ctx)
	if err != nil {
		return err
	}

	point, err := DecodeCursor(r.payload.Cursor)
	if err != nil {
		return NewValidationError(err, ReasonMalformedCursor, "cursor")
	}

	batch := min(r.o.opts.AdSetBatchSize, len(adSetIDs))

	// resumeAt aponta para o item exato de onde a próxima invocação continua
	resumeAt := func(i int, after string, offset int) domain.ContinuationPayload {
		return domain.ContinuationPayload{
			Cursor:   EncodeCursor(ResumePoint{ParentID: adSetIDs[i], After: after, Offset: offset}),
			AdSetIDs: adSetIDs[i:],
		}
	}

	for i := 0; i < batch; i++ {
		adSetID := adSetIDs[i]
		if i > 0 && r.cancelled(ctx) {
			return nil
		}

		after, offset := resumeFor(point, adSetID)
		for {
			if r.outOfTime() {
				return r.deferPhase(ctx, resumeAt(i, after, offset))
			}

			page, _, err := Fetch(ctx, r.o.fetcher, "ads", func(ctx context.Context) (*domain.Page[domain.Ad], error) {
				return r.o.source.ListAds(ctx, adSetID, domain.PageRequest{Limit: r.o.opts.PageSize, After: after})
			})
			if err != nil {
				if !isSkippable(err) {
					return r.deferOnTimeout(ctx, err, resumeAt(i, after, offset))
				}
				r.entityFailed(ctx, domain.EntityAdSet, adSetID, err)
				break
			}

			for j := offset; j < len(page.Items); j++ {
				if r.outOfTime() {
					return r.deferPhase(ctx, resumeAt(i, after, j))
				}

				ad := page.Items[j]
				saved, err := r.syncEntity(ctx, &ad)
				if err != nil {
					return r.deferOnTimeout(ctx, err, resumeAt(i, after, j))
				}
				if saved {
					r.stats.Ads++
				}
			}

			if !page.HasMore() {
				break
			}
			after, offset = page.NextCursor, 0
		}

		remaining := len(adSetIDs) - i - 1
		r.progress(ctx, progressWithin(progressAdsStart, r.stats.AdSetsTotal-remaining, r.stats.AdSetsTotal))
	}

	if remaining := adSetIDs[batch:]; len(remaining) > 0 {
		return r.continueWith(ctx, domain.ContinuationPayload{
			Phase:    domain.PhaseAds,
			AdSetIDs: remaining,
		}, false)
	}

	r.completeJob(ctx, domain.ReasonFinished)
	return nil
}

// adSetIDs usa os ids do payload e, se permitido, recorre ao banco
func (r *phaseRun) adSetIDs(ctx context.Context) ([]string, error) {
	if len(r.payload.AdSetIDs) > 0 {
		return r.payload.AdSetIDs, nil
	}

	if r.o.opts.StoreFallback && r.o.ids != nil {
		campaignIDs := r.payload.CampaignIDs
		if len(campaignIDs) == 0 {
			ids, err := r.o.ids.ListCampaignIDs(ctx, r.payload.AccountID)
			if err != nil {
				return nil, err
			}
			campaignIDs = ids
		}

		ids, err := r.o.ids.ListAdSetIDs(ctx, campaignIDs)
		if err != nil {
			return nil, err
		}
		if len(ids) > 0 {
			log.ForContext(ctx).WithField("count", len(ids)).Warn("sync: ad set ids recovered from store")
			if r.stats.AdSetsTotal == 0 {
				r.stats.AdSetsTotal = len(ids)
			}
			return ids, nil
		}
	}

	return nil, NewValidationError(ErrMissingAdSetIDs, ReasonMissingAdSetIDs, "adsetIds")
}
