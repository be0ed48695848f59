package meta

import (
	"context"
	"net/http"
	"strings"

	"github.com/sirupsen/logrus"
	metadomain "github.com/vfg2006/traffic-sync-worker/infrastructure/integrator/meta/domain"
	"github.com/vfg2006/traffic-sync-worker/infrastructure/integrator/meta/metaclient"
	"github.com/vfg2006/traffic-sync-worker/internal/config"
	"github.com/vfg2006/traffic-sync-worker/internal/domain"
)

// MetaIntegrator é a fronteira com a Graph API: chama o client, valida e converte
// as respostas cruas para os snapshots do domínio
type MetaIntegrator struct {
	cfg    *config.Config
	Client metaclient.Client
}

func New(cfg *config.Config, client metaclient.Client) *MetaIntegrator {
	return &MetaIntegrator{
		cfg:    cfg,
		Client: client,
	}
}

func (s *MetaIntegrator) GetAccount(ctx context.Context, accountID string) (*domain.AccountSnapshot, error) {
	resp, err := s.Client.GetAdAccountByID(ctx, accountID)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"account_id": accountID,
			"error":      err.Error(),
		}).Error("meta: failed to get ad account from API")
		return nil, err
	}

	account := FactoryAccountSnapshot(resp)
	if account == nil {
		logrus.WithField("account_id", accountID).Error("meta: ad account response without id")
		return nil, &metadomain.APIError{HTTPStatus: http.StatusNotFound, Message: "ad account " + accountID + " not found"}
	}

	logrus.WithFields(logrus.Fields{
		"account_id":   account.ID,
		"account_name": account.Name,
	}).Debug("meta: successfully retrieved ad account")

	return account, nil
}

func (s *MetaIntegrator) ListCampaigns(ctx context.Context, accountID string, page domain.PageRequest) (*domain.Page[domain.Campaign], error) {
	resp, err := s.Client.GetAdCampaignsByAccountID(ctx, accountID, page.Limit, page.After)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"account_id": accountID,
			"after":      page.After,
			"error":      err.Error(),
		}).Error("meta: failed to list campaigns")
		return nil, err
	}

	items := make([]domain.Campaign, 0, len(resp.Data))
	for i := range resp.Data {
		campaign := FactoryCampaign(&resp.Data[i], accountID)
		if campaign == nil {
			continue
		}
		items = append(items, *campaign)
	}

	logrus.WithFields(logrus.Fields{
		"account_id": accountID,
		"count":      len(items),
		"has_more":   resp.Paging.NextCursor() != "",
	}).Debug("meta: listed campaigns page")

	return &domain.Page[domain.Campaign]{Items: items, NextCursor: resp.Paging.NextCursor()}, nil
}

func (s *MetaIntegrator) ListAdSets(ctx context.Context, campaignID string, page domain.PageRequest) (*domain.Page[domain.AdSet], error) {
	resp, err := s.Client.GetAdSetsByCampaignID(ctx, campaignID, page.Limit, page.After)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"campaign_id": campaignID,
			"after":       page.After,
			"error":       err.Error(),
		}).Error("meta: failed to list ad sets")
		return nil, err
	}

	items := make([]domain.AdSet, 0, len(resp.Data))
	for i := range resp.Data {
		adSet := FactoryAdSet(&resp.Data[i], campaignID)
		if adSet == nil {
			continue
		}
		items = append(items, *adSet)
	}

	return &domain.Page[domain.AdSet]{Items: items, NextCursor: resp.Paging.NextCursor()}, nil
}

func (s *MetaIntegrator) ListAds(ctx context.Context, adSetID string, page domain.PageRequest) (*domain.Page[domain.Ad], error) {
	resp, err := s.Client.GetAdsByAdSetID(ctx, adSetID, page.Limit, page.After)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"adset_id": adSetID,
			"after":    page.After,
			"error":    err.Error(),
		}).Error("meta: failed to list ads")
		return nil, err
	}

	items := make([]domain.Ad, 0, len(resp.Data))
	for i := range resp.Data {
		ad := FactoryAd(&resp.Data[i], adSetID)
		if ad == nil {
			continue
		}
		items = append(items, *ad)
	}

	return &domain.Page[domain.Ad]{Items: items, NextCursor: resp.Paging.NextCursor()}, nil
}

// GetInsights executa uma única consulta de insights. Retorna nil, nil quando a API
// não devolve nenhuma linha para o período.
func (s *MetaIntegrator) GetInsights(ctx context.Context, q domain.InsightsQuery) (*domain.InsightsRecord, error) {
	objectID := q.Ref.ID
	if q.Ref.Type == domain.EntityAccount {
		objectID = metaclient.AccountPath(objectID)
	}

	rows, err := s.Client.GetInsightsByObjectID(ctx, objectID, metaclient.InsightFilters{
		Fields:    q.Fields,
		StartDate: q.Range.Since,
		EndDate:   q.Range.Until,
	})
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"object_id":   objectID,
			"object_type": q.Ref.Type,
			"range":       q.Range.String(),
			"error":       err.Error(),
		}).Warn("insights: failed to get insights from API")
		return nil, err
	}

	if len(rows) == 0 {
		logrus.WithFields(logrus.Fields{
			"object_id": objectID,
			"range":     q.Range.String(),
		}).Debug("insights: no rows for period")
		return nil, nil
	}

	return FactoryInsightsRecord(&rows[0]), nil
}

func trimAccountPrefix(id string) string {
	return strings.TrimPrefix(id, "act_")
}
