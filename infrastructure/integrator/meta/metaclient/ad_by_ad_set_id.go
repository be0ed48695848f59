package metaclient

import (
	"context"

	metadomain "github.com/vfg2006/traffic-sync-worker/infrastructure/integrator/meta/domain"
)

// GetAdsByAdSetID lista uma página de anúncios do conjunto
func (c *MetaClient) GetAdsByAdSetID(ctx context.Context, adSetID string, limit int, after string) (*metadomain.ListResponse[metadomain.Ad], error) {
	params := listParams(metadomain.AdFields, limit, after)

	var response metadomain.ListResponse[metadomain.Ad]
	if err := c.get(ctx, adSetID+"/ads", params, &response); err != nil {
		return nil, err
	}

	return &response, nil
}
