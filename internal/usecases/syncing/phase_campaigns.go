package syncing

import (
	"context"

	"github.com/vfg2006/traffic-sync-worker/internal/domain"
)

// campaigns processa uma página de campanhas por invocação. Os ids coletados
// viajam no payload até a transição para a fase de conjuntos.
func (r *phaseRun) campaigns(ctx context.Context) error {
	accountID := r.payload.AccountID

	point, err := DecodeCursor(r.payload.Cursor)
	if err != nil {
		return NewValidationError(err, ReasonMalformedCursor, "cursor")
	}
	after, offset := resumeFor(point, accountID)

	collected := append([]string(nil), r.payload.CampaignIDs...)

	// Sem nada processado o cursor recebido é devolvido como está
	resumeAt := func(i int) domain.ContinuationPayload {
		cursor := r.payload.Cursor
		if i != offset {
			cursor = EncodeCursor(ResumePoint{ParentID: accountID, After: after, Offset: i})
		}
		return domain.ContinuationPayload{Cursor: cursor, CampaignIDs: collected}
	}

	if r.outOfTime() {
		return r.deferPhase(ctx, resumeAt(offset))
	}

	page, _, err := Fetch(ctx, r.o.fetcher, "campaigns", func(ctx context.Context) (*domain.Page[domain.Campaign], error) {
		return r.o.source.ListCampaigns(ctx, accountID, domain.PageRequest{Limit: r.o.opts.PageSize, After: after})
	})
	if err != nil {
		return r.deferOnTimeout(ctx, err, resumeAt(offset))
	}

	for i := offset; i < len(page.Items); i++ {
		if r.outOfTime() {
			return r.deferPhase(ctx, resumeAt(i))
		}

		campaign := page.Items[i]
		saved, err := r.syncEntity(ctx, &campaign)
		if err != nil {
			return r.deferOnTimeout(ctx, err, resumeAt(i))
		}
		if saved {
			r.stats.Campaigns++
		}

		collected = append(collected, campaign.ID)
	}

	if page.HasMore() {
		r.progress(ctx, campaignsProgress(len(collected), r.o.opts.PageSize))
		cursor := EncodeCursor(ResumePoint{ParentID: accountID, After: page.NextCursor})
		return r.continueWith(ctx, domain.ContinuationPayload{
			Phase:       domain.PhaseCampaigns,
			Cursor:      cursor,
			CampaignIDs: collected,
		}, false)
	}

	if len(collected) == 0 {
		r.completeJob(ctx, domain.ReasonNoCampaigns)
		return nil
	}

	r.stats.CampaignsTotal = len(collected)
	if err := r.continueWith(ctx, domain.ContinuationPayload{
		Phase:       domain.PhaseAdSets,
		CampaignIDs: collected,
	}, false); err != nil {
		return err
	}
	r.progress(ctx, progressAdSetsStart)

	return nil
}

// campaignsProgress cresce com as páginas lidas sem nunca alcançar a fase seguinte
func campaignsProgress(collected, pageSize int) int {
	return progressWithin(progressCampaignsStart, collected, collected+pageSize)
}
