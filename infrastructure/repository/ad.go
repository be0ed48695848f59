package repository

import (
	"github.com/vfg2006/traffic-sync-worker/infrastructure/database/postgres"
	"github.com/vfg2006/traffic-sync-worker/internal/domain"
)

const adsTable = "meta_ads"

func NewAdRepository(conn postgres.Queryer) EntityRepository {
	return &entityRepository{
		conn:       conn,
		table:      adsTable,
		entityType: domain.EntityAd,
		mapRow:     adRow,
	}
}

func adRow(entity domain.Entity) (*entityRow, error) {
	ad, ok := entity.(*domain.Ad)
	if !ok {
		return nil, unexpectedEntity(domain.EntityAd, entity)
	}

	metrics, err := marshalJSONColumn(ad.Metrics)
	if err != nil {
		return nil, err
	}

	row := &entityRow{}
	row.add("adset_id", ad.AdSetID)
	row.add("campaign_id", nullableString(ad.CampaignID))
	row.add("account_id", nullableString(ad.AccountID))
	row.add("name", ad.Name)
	row.add("status", ad.Status)
	row.add("effective_status", ad.EffectiveStatus)
	row.add("creative_id", nullableString(ad.CreativeID))
	row.add("creative_name", nullableString(ad.CreativeName))
	row.add("created_time", ad.CreatedTime)
	row.add("updated_time", ad.UpdatedTime)
	row.add("metrics", metrics)

	return row, nil
}
