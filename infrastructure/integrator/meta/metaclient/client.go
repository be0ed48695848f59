package metaclient

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"
	pkgerrors "github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	metadomain "github.com/vfg2006/traffic-sync-worker/infrastructure/integrator/meta/domain"
	"github.com/vfg2006/traffic-sync-worker/internal/config"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const defaultHTTPTimeout = 30 * time.Second

type Client interface {
	GetAdAccountByID(ctx context.Context, accountID string) (*metadomain.AdAccount, error)
	GetAdCampaignsByAccountID(ctx context.Context, accountID string, limit int, after string) (*metadomain.ListResponse[metadomain.Campaign], error)
	GetAdSetsByCampaignID(ctx context.Context, campaignID string, limit int, after string) (*metadomain.ListResponse[metadomain.AdSet], error)
	GetAdsByAdSetID(ctx context.Context, adSetID string, limit int, after string) (*metadomain.ListResponse[metadomain.Ad], error)
	GetInsightsByObjectID(ctx context.Context, objectID string, filters InsightFilters) ([]metadomain.Insight, error)
	RefreshToken(ctx context.Context) error
	EnsureValidToken(ctx context.Context) error
}

type MetaClient struct {
	Cfg          *config.Config
	TokenManager *TokenManager
	HTTPClient   *http.Client
}

func NewClient(cfg *config.Config, tokenManager *TokenManager) Client {
	timeout := cfg.Meta.HTTPTimeout
	if timeout <= 0 {
		timeout = defaultHTTPTimeout
	}

	return &MetaClient{
		Cfg:          cfg,
		TokenManager: tokenManager,
		HTTPClient:   &http.Client{Timeout: timeout},
	}
}

// RefreshToken obtém um novo token de longa duração
func (c *MetaClient) RefreshToken(ctx context.Context) error {
	return c.TokenManager.RefreshToken(ctx)
}

// EnsureValidToken verifica se o token atual é válido e tenta renová-lo se necessário
func (c *MetaClient) EnsureValidToken(ctx context.Context) error {
	return c.TokenManager.EnsureValidToken(ctx)
}

// get executa um GET na Graph API e decodifica a resposta em out.
// Um token expirado é renovado e a chamada é repetida uma única vez.
func (c *MetaClient) get(ctx context.Context, path string, params url.Values, out any) error {
	if err := c.EnsureValidToken(ctx); err != nil {
		return fmt.Errorf("erro ao verificar validade do token: %w", err)
	}

	body, err := c.do(ctx, path, params)
	if errors.Is(err, ErrTokenRefreshed) {
		logrus.WithField("path", path).Info("metaclient: retrying request with refreshed token")
		body, err = c.do(ctx, path, params)
	}
	if err != nil {
		return err
	}

	if err := json.Unmarshal(body, out); err != nil {
		logrus.WithError(err).WithField("path", path).Error("metaclient: failed to decode response")
		return pkgerrors.Wrapf(err, "metaclient: decode %s", path)
	}

	return nil
}

func (c *MetaClient) do(ctx context.Context, path string, params url.Values) ([]byte, error) {
	query := url.Values{}
	for key, values := range params {
		query[key] = values
	}
	query.Set("access_token", c.TokenManager.AccessToken())

	requestURL := fmt.Sprintf("%s/%s?%s", c.Cfg.Meta.URL, strings.TrimPrefix(path, "/"), query.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return nil, pkgerrors.Wrap(err, "metaclient: create request")
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, pkgerrors.Wrapf(err, "metaclient: request %s", path)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, pkgerrors.Wrap(err, "metaclient: read response")
	}

	return c.TokenManager.HandleResponse(ctx, resp.StatusCode, body)
}

// listParams monta os parâmetros padrão de uma listagem paginada
func listParams(fields []string, limit int, after string) url.Values {
	params := url.Values{}
	params.Add("fields", strings.Join(fields, ","))
	params.Add("limit", fmt.Sprintf("%d", limit))
	if after != "" {
		params.Add("after", after)
	}
	return params
}

// AccountPath normaliza o id da conta para o formato act_{id}
func AccountPath(accountID string) string {
	if strings.HasPrefix(accountID, "act_") {
		return accountID
	}
	return "act_" + accountID
}
