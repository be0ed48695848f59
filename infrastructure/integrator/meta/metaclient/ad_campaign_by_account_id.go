package metaclient

import (
	"context"

	metadomain "github.com/vfg2006/traffic-sync-worker/infrastructure/integrator/meta/domain"
)

// GetAdCampaignsByAccountID lista uma página de campanhas da conta
func (c *MetaClient) GetAdCampaignsByAccountID(ctx context.Context, accountID string, limit int, after string) (*metadomain.ListResponse[metadomain.Campaign], error) {
	params := listParams(metadomain.CampaignFields, limit, after)

	var response metadomain.ListResponse[metadomain.Campaign]
	if err := c.get(ctx, AccountPath(accountID)+"/campaigns", params, &response); err != nil {
		return nil, err
	}

	return &response, nil
}
