package metaclient

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/sirupsen/logrus"
)

// TokenResponse representa a resposta da API do Meta ao trocar um token
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
}

// TokenExchange agrupa os parâmetros da troca por um token de longa duração
type TokenExchange struct {
	ShortLivedToken string
	AppID           string
	AppSecret       string
	BaseURL         string
	Version         string
}

// GetLongLivedToken obtém um token de longa duração do Meta
// usando um token de curta duração
func GetLongLivedToken(ctx context.Context, client *http.Client, exchange TokenExchange) (*TokenResponse, error) {
	if exchange.ShortLivedToken == "" {
		return nil, fmt.Errorf("token de acesso não pode ser vazio")
	}

	endpoint := fmt.Sprintf("%s/%s/oauth/access_token", exchange.BaseURL, exchange.Version)

	params := url.Values{}
	params.Add("grant_type", "fb_exchange_token")
	params.Add("client_id", exchange.AppID)
	params.Add("client_secret", exchange.AppSecret)
	params.Add("fb_exchange_token", exchange.ShortLivedToken)

	body, status, err := getRaw(ctx, client, endpoint+"?"+params.Encode())
	if err != nil {
		return nil, fmt.Errorf("erro ao obter token de longa duração: %w", err)
	}

	if status != http.StatusOK {
		logrus.Errorf("Erro obtendo token longa duração. Status: %d, Resposta: %s", status, string(body))
		return nil, fmt.Errorf("erro ao obter token de longa duração. Status: %d, Resposta: %s", status, body)
	}

	var tokenResp TokenResponse
	if err := json.Unmarshal(body, &tokenResp); err != nil {
		return nil, fmt.Errorf("erro ao decodificar resposta: %w", err)
	}

	if tokenResp.AccessToken == "" {
		return nil, fmt.Errorf("token retornado pela API é vazio")
	}

	logrus.Infof("Token de longa duração obtido com sucesso. Expira em %s.", FormatDuration(tokenResp.ExpiresIn))

	return &tokenResp, nil
}

// FormatDuration formata a duração em segundos para um formato legível
func FormatDuration(seconds int64) string {
	duration := time.Duration(seconds) * time.Second
	days := duration / (24 * time.Hour)
	hours := (duration % (24 * time.Hour)) / time.Hour
	minutes := (duration % time.Hour) / time.Minute

	return fmt.Sprintf("%d dias, %d horas e %d minutos", days, hours, minutes)
}

// CheckTokenValidity verifica se o token é válido fazendo uma consulta simples à API
func CheckTokenValidity(ctx context.Context, client *http.Client, token, apiURL string) (bool, error) {
	if token == "" {
		return false, fmt.Errorf("token não pode ser vazio")
	}

	params := url.Values{}
	params.Add("fields", "id,name")
	params.Add("access_token", token)

	body, status, err := getRaw(ctx, client, fmt.Sprintf("%s/me?%s", apiURL, params.Encode()))
	if err != nil {
		return false, fmt.Errorf("erro ao verificar token: %w", err)
	}

	if status != http.StatusOK {
		logrus.Warnf("Token inválido ou expirado. Status: %d, Corpo: %s", status, string(body))
		return false, nil
	}

	return true, nil
}

type debugTokenResponse struct {
	Data struct {
		IsValid   bool  `json:"is_valid"`
		ExpiresAt int64 `json:"expires_at"`
	} `json:"data"`
}

// GetTokenExpiration consulta /debug_token e retorna a expiração do token
func GetTokenExpiration(ctx context.Context, client *http.Client, token string, exchange TokenExchange) (time.Time, error) {
	endpoint := fmt.Sprintf("%s/%s/debug_token", exchange.BaseURL, exchange.Version)

	params := url.Values{}
	params.Add("input_token", token)
	params.Add("access_token", exchange.AppID+"|"+exchange.AppSecret)

	body, status, err := getRaw(ctx, client, endpoint+"?"+params.Encode())
	if err != nil {
		return time.Time{}, fmt.Errorf("erro ao obter informações de debug do token: %w", err)
	}

	if status != http.StatusOK {
		return time.Time{}, fmt.Errorf("erro ao obter informações de debug do token. Status: %d, Resposta: %s", status, string(body))
	}

	var response debugTokenResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return time.Time{}, fmt.Errorf("erro ao decodificar resposta: %w", err)
	}

	if !response.Data.IsValid || response.Data.ExpiresAt == 0 {
		return time.Time{}, fmt.Errorf("não foi possível determinar quando o token expira")
	}

	return time.Unix(response.Data.ExpiresAt, 0), nil
}

// CalculateTokenExpiration calcula a data de expiração do token com base no tempo de expiração em segundos
func CalculateTokenExpiration(now time.Time, expiresIn int64) time.Time {
	// Subtraímos 1 dia para renovar antes da expiração real
	buffer := int64(24 * 60 * 60)
	safeExpiresIn := expiresIn - buffer

	if safeExpiresIn < 0 {
		safeExpiresIn = expiresIn / 2
	}

	return now.Add(time.Duration(safeExpiresIn) * time.Second)
}

func getRaw(ctx context.Context, client *http.Client, requestURL string) ([]byte, int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return nil, 0, err
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, 0, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, fmt.Errorf("erro ao ler resposta: %w", err)
	}

	return body, resp.StatusCode, nil
}
