package metaclient

import (
	"context"

	metadomain "github.com/vfg2006/traffic-sync-worker/infrastructure/integrator/meta/domain"
)

// GetAdSetsByCampaignID lista uma página de conjuntos de anúncios da campanha
func (c *MetaClient) GetAdSetsByCampaignID(ctx context.Context, campaignID string, limit int, after string) (*metadomain.ListResponse[metadomain.AdSet], error) {
	params := listParams(metadomain.AdSetFields, limit, after)

	var response metadomain.ListResponse[metadomain.AdSet]
	if err := c.get(ctx, campaignID+"/adsets", params, &response); err != nil {
		return nil, err
	}

	return &response, nil
}
