package syncing

import (
	"context"

	"github.com/vfg2006/traffic-sync-worker/internal/domain"
	"github.com/vfg2006/traffic-sync-worker/pkg/log"
)

// adSets processa um lote das campanhas restantes. O payload carrega as campanhas
// ainda não concluídas e os conjuntos já coletados.
func (r *phaseRun) adSets(ctx context.Context) error {
	campaignIDs, err := r.campaignIDs(ctx)
	if err != nil {
		return err
	}

	point, err := DecodeCursor(r.payload.Cursor)
	if err != nil {
		return NewValidationError(err, ReasonMalformedCursor, "cursor")
	}

	collected := append([]string(nil), r.payload.AdSetIDs...)
	batch := min(r.o.opts.CampaignBatchSize, len(campaignIDs))

	resumeAt := func(i int, after string, offset int) domain.ContinuationPayload {
		return domain.ContinuationPayload{
			Cursor:      EncodeCursor(ResumePoint{ParentID: campaignIDs[i], After: after, Offset: offset}),
			CampaignIDs: campaignIDs[i:],
			AdSetIDs:    collected,
		}
	}

	for i := 0; i < batch; i++ {
		campaignID := campaignIDs[i]
		if i > 0 && r.cancelled(ctx) {
			return nil
		}

		after, offset := resumeFor(point, campaignID)
		for {
			if r.outOfTime() {
				return r.deferPhase(ctx, resumeAt(i, after, offset))
			}

			page, _, err := Fetch(ctx, r.o.fetcher, "adsets", func(ctx context.Context) (*domain.Page[domain.AdSet], error) {
				return r.o.source.ListAdSets(ctx, campaignID, domain.PageRequest{Limit: r.o.opts.PageSize, After: after})
			})
			if err != nil {
				if !isSkippable(err) {
					return r.deferOnTimeout(ctx, err, resumeAt(i, after, offset))
				}
				r.entityFailed(ctx, domain.EntityCampaign, campaignID, err)
				break
			}

			for j := offset; j < len(page.Items); j++ {
				if r.outOfTime() {
					return r.deferPhase(ctx, resumeAt(i, after, j))
				}

				adSet := page.Items[j]
				saved, err := r.syncEntity(ctx, &adSet)
				if err != nil {
					return r.deferOnTimeout(ctx, err, resumeAt(i, after, j))
				}
				if saved {
					r.stats.AdSets++
				}

				collected = append(collected, adSet.ID)
			}

			if !page.HasMore() {
				break
			}
			after, offset = page.NextCursor, 0
		}

		remaining := len(campaignIDs) - i - 1
		r.progress(ctx, progressWithin(progressAdSetsStart, r.stats.CampaignsTotal-remaining, r.stats.CampaignsTotal))
	}

	if remaining := campaignIDs[batch:]; len(remaining) > 0 {
		return r.continueWith(ctx, domain.ContinuationPayload{
			Phase:       domain.PhaseAdSets,
			CampaignIDs: remaining,
			AdSetIDs:    collected,
		}, false)
	}

	if len(collected) == 0 {
		r.completeJob(ctx, domain.ReasonNoAdSets)
		return nil
	}

	r.stats.AdSetsTotal = len(collected)
	if err := r.continueWith(ctx, domain.ContinuationPayload{
		Phase:    domain.PhaseAds,
		AdSetIDs: collected,
	}, false); err != nil {
		return err
	}
	r.progress(ctx, progressAdsStart)

	return nil
}

// campaignIDs usa os ids do payload e, se permitido, recorre ao banco
func (r *phaseRun) campaignIDs(ctx context.Context) ([]string, error) {
	if len(r.payload.CampaignIDs) > 0 {
		return r.payload.CampaignIDs, nil
	}

	if r.o.opts.StoreFallback && r.o.ids != nil {
		ids, err := r.o.ids.ListCampaignIDs(ctx, r.payload.AccountID)
		if err != nil {
			return nil, err
		}
		if len(ids) > 0 {
			log.ForContext(ctx).WithField("count", len(ids)).Warn("sync: campaign ids recovered from store")
			if r.stats.CampaignsTotal == 0 {
				r.stats.CampaignsTotal = len(ids)
			}
			return ids, nil
		}
	}

	return nil, NewValidationError(ErrMissingCampaignIDs, ReasonMissingCampaignIDs, "campaignIds")
}
