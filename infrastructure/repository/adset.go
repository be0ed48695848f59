package repository

import (
	"github.com/vfg2006/traffic-sync-worker/infrastructure/database/postgres"
	"github.com/vfg2006/traffic-sync-worker/internal/domain"
)

const adSetsTable = "meta_adsets"

func NewAdSetRepository(conn postgres.Queryer) EntityRepository {
	return &entityRepository{
		conn:       conn,
		table:      adSetsTable,
		entityType: domain.EntityAdSet,
		mapRow:     adSetRow,
	}
}

func adSetRow(entity domain.Entity) (*entityRow, error) {
	adSet, ok := entity.(*domain.AdSet)
	if !ok {
		return nil, unexpectedEntity(domain.EntityAdSet, entity)
	}

	metrics, err := marshalJSONColumn(adSet.Metrics)
	if err != nil {
		return nil, err
	}

	var targeting []byte
	if len(adSet.Targeting) > 0 {
		if targeting, err = marshalJSONColumn(adSet.Targeting); err != nil {
			return nil, err
		}
	}

	row := &entityRow{}
	row.add("campaign_id", adSet.CampaignID)
	row.add("account_id", nullableString(adSet.AccountID))
	row.add("name", adSet.Name)
	row.add("status", adSet.Status)
	row.add("effective_status", adSet.EffectiveStatus)
	row.add("optimization_goal", nullableString(adSet.OptimizationGoal))
	row.add("billing_event", nullableString(adSet.BillingEvent))
	row.add("bid_amount", adSet.BidAmount)
	row.add("daily_budget", adSet.DailyBudget)
	row.add("lifetime_budget", adSet.LifetimeBudget)
	row.add("targeting", targeting)
	row.add("start_time", adSet.StartTime)
	row.add("end_time", adSet.EndTime)
	row.add("metrics", metrics)

	return row, nil
}
