package metaclient

import (
	"context"
	"net/url"
	"strings"

	"github.com/sirupsen/logrus"
	metadomain "github.com/vfg2006/traffic-sync-worker/infrastructure/integrator/meta/domain"
)

func (c *MetaClient) GetAdAccountByID(ctx context.Context, accountID string) (*metadomain.AdAccount, error) {
	params := url.Values{}
	params.Add("fields", strings.Join(metadomain.AdAccountFields, ","))

	var account metadomain.AdAccount
	if err := c.get(ctx, AccountPath(accountID), params, &account); err != nil {
		logrus.WithFields(logrus.Fields{
			"account_id": accountID,
			"error":      err.Error(),
		}).Error("metaclient: failed to get ad account")
		return nil, err
	}

	return &account, nil
}
