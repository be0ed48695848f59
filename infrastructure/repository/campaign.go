package repository

import (
	"github.com/vfg2006/traffic-sync-worker/infrastructure/database/postgres"
	"github.com/vfg2006/traffic-sync-worker/internal/domain"
)

const campaignsTable = "meta_campaigns"

func NewCampaignRepository(conn postgres.Queryer) EntityRepository {
	return &entityRepository{
		conn:       conn,
		table:      campaignsTable,
		entityType: domain.EntityCampaign,
		mapRow:     campaignRow,
	}
}

func campaignRow(entity domain.Entity) (*entityRow, error) {
	campaign, ok := entity.(*domain.Campaign)
	if !ok {
		return nil, unexpectedEntity(domain.EntityCampaign, entity)
	}

	metrics, err := marshalJSONColumn(campaign.Metrics)
	if err != nil {
		return nil, err
	}

	row := &entityRow{}
	row.add("account_id", campaign.AccountID)
	row.add("name", campaign.Name)
	row.add("objective", campaign.Objective)
	row.add("status", campaign.Status)
	row.add("effective_status", campaign.EffectiveStatus)
	row.add("buying_type", nullableString(campaign.BuyingType))
	row.add("daily_budget", campaign.DailyBudget)
	row.add("lifetime_budget", campaign.LifetimeBudget)
	row.add("budget_remaining", campaign.BudgetRemaining)
	row.add("start_time", campaign.StartTime)
	row.add("stop_time", campaign.StopTime)
	row.add("created_time", campaign.CreatedTime)
	row.add("updated_time", campaign.UpdatedTime)
	row.add("metrics", metrics)

	return row, nil
}
