package metaclient

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	metadomain "github.com/vfg2006/traffic-sync-worker/infrastructure/integrator/meta/domain"
)

// InsightFilters define campos e período de uma consulta de insights
type InsightFilters struct {
	Fields    []string
	StartDate time.Time
	EndDate   time.Time
}

type timeRange struct {
	Since string `json:"since"`
	Until string `json:"until"`
}

// GetInsightsByObjectID consulta /{id}/insights agregando todo o período em uma linha
func (c *MetaClient) GetInsightsByObjectID(ctx context.Context, objectID string, filters InsightFilters) ([]metadomain.Insight, error) {
	rangeJSON, err := json.Marshal(timeRange{
		Since: filters.StartDate.Format(time.DateOnly),
		Until: filters.EndDate.Format(time.DateOnly),
	})
	if err != nil {
		return nil, fmt.Errorf("metaclient: encode time_range: %w", err)
	}

	params := url.Values{}
	params.Add("fields", strings.Join(filters.Fields, ","))
	params.Add("time_range", string(rangeJSON))

	var response metadomain.ListResponse[metadomain.Insight]
	if err := c.get(ctx, objectID+"/insights", params, &response); err != nil {
		return nil, err
	}

	return response.Data, nil
}
