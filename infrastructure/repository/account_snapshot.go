package repository

import (
	"github.com/vfg2006/traffic-sync-worker/infrastructure/database/postgres"
	"github.com/vfg2006/traffic-sync-worker/internal/domain"
)

const adAccountsTable = "meta_ad_accounts"

func NewAccountSnapshotRepository(conn postgres.Queryer) EntityRepository {
	return &entityRepository{
		conn:       conn,
		table:      adAccountsTable,
		entityType: domain.EntityAccount,
		mapRow:     accountSnapshotRow,
	}
}

func accountSnapshotRow(entity domain.Entity) (*entityRow, error) {
	account, ok := entity.(*domain.AccountSnapshot)
	if !ok {
		return nil, unexpectedEntity(domain.EntityAccount, entity)
	}

	metrics, err := marshalJSONColumn(account.Metrics)
	if err != nil {
		return nil, err
	}

	row := &entityRow{}
	row.add("name", account.Name)
	row.add("currency", account.Currency)
	row.add("timezone", account.Timezone)
	row.add("status", account.Status.String())
	row.add("amount_spent", account.AmountSpent)
	row.add("balance", account.Balance)
	row.add("spend_cap", account.SpendCap)
	row.add("business_id", nullableString(account.BusinessID))
	row.add("business_name", nullableString(account.BusinessName))
	row.add("metrics", metrics)

	return row, nil
}

func nullableString(value string) *string {
	if value == "" {
		return nil
	}
	return &value
}
