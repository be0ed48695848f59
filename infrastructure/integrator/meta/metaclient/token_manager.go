package metaclient

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	metadomain "github.com/vfg2006/traffic-sync-worker/infrastructure/integrator/meta/domain"
	"github.com/vfg2006/traffic-sync-worker/internal/config"
)

const tokenSecretName = "meta_access_token"

var (
	// ErrTokenRefreshed indica que o token expirou e foi renovado; a chamada deve ser repetida uma vez
	ErrTokenRefreshed = errors.New("token expirado e renovado, por favor tente novamente")
	// ErrReauthorizationRequired indica que o token não pode mais ser renovado automaticamente
	ErrReauthorizationRequired = errors.New("o token de acesso expirou e é necessário reautorizar o aplicativo")
)

// TokenManager gerencia tokens de acesso da API do Meta
type TokenManager struct {
	cfg         *config.Config
	mu          sync.Mutex
	stopRefresh chan struct{}
	stopOnce    sync.Once
	secrets     config.SecretStorage
	httpClient  *http.Client
	now         func() time.Time
}

// NewTokenManager cria uma nova instância do gerenciador de tokens. secrets pode ser nil.
func NewTokenManager(cfg *config.Config, secrets config.SecretStorage) *TokenManager {
	return &TokenManager{
		cfg:         cfg,
		stopRefresh: make(chan struct{}),
		secrets:     secrets,
		httpClient:  &http.Client{Timeout: 30 * time.Second},
		now:         time.Now,
	}
}

// AccessToken retorna o token atual
func (tm *TokenManager) AccessToken() string {
	tm.mu.Lock()
	defer tm.mu.Unlock()
	return tm.cfg.Meta.AccessToken
}

func (tm *TokenManager) exchange(token string) TokenExchange {
	return TokenExchange{
		ShortLivedToken: token,
		AppID:           tm.cfg.Meta.AppID,
		AppSecret:       tm.cfg.Meta.AppSecret,
		BaseURL:         tm.cfg.Meta.BaseURL,
		Version:         tm.cfg.Meta.Version,
	}
}

// InitToken prepara o token na subida do processo
func (tm *TokenManager) InitToken(ctx context.Context) {
	if tm.cfg.Meta.LongLivedToken == "" {
		logrus.Info("Token de longa duração não encontrado. Iniciando processo de obtenção...")
		if err := tm.InitiateToken(ctx); err != nil {
			logrus.Errorf("Falha ao inicializar token de longa duração: %v", err)
			logrus.Warn("A API Meta pode ter funcionalidade limitada até que o token seja configurado corretamente")
		}
		return
	}

	if tm.cfg.Meta.TokenExpiresAt.IsZero() {
		logrus.Info("Validando token de longa duração existente...")
		if err := tm.ValidateExistingToken(ctx); err != nil {
			logrus.Errorf("Falha ao validar token existente: %v", err)
			if err := tm.RefreshToken(ctx); err != nil {
				logrus.Errorf("Falha ao renovar token: %v", err)
			}
		}
		return
	}

	if err := tm.EnsureValidToken(ctx); err != nil {
		logrus.Errorf("Erro ao verificar validade do token: %v", err)
	}
}

// StartAutoRefresh renova o token periodicamente até o contexto ser cancelado
func (tm *TokenManager) StartAutoRefresh(ctx context.Context) {
	tm.InitToken(ctx)

	// Aproximadamente 23 horas para garantir que seja feito antes de 24h
	refreshInterval := 23 * time.Hour
	ticker := time.NewTicker(refreshInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			logrus.Info("Iniciando renovação periódica do token da Meta")
			if err := tm.RefreshToken(ctx); err != nil {
				logrus.Errorf("Erro na renovação periódica do token: %v", err)
				ticker.Reset(1 * time.Hour)
				continue
			}
			logrus.Info("Renovação periódica do token concluída com sucesso")
			ticker.Reset(refreshInterval)
		case <-tm.stopRefresh:
			logrus.Info("Encerrando goroutine de renovação periódica do token")
			return
		case <-ctx.Done():
			return
		}
	}
}

// StopAutoRefresh para a goroutine de renovação automática
func (tm *TokenManager) StopAutoRefresh() {
	tm.stopOnce.Do(func() { close(tm.stopRefresh) })
}

// InitiateToken obtém um token de longa duração a partir do token de curta duração
func (tm *TokenManager) InitiateToken(ctx context.Context) error {
	tm.mu.Lock()
	defer tm.mu.Unlock()

	if tm.cfg.Meta.LongLivedToken != "" {
		return nil
	}

	tokenResponse, err := GetLongLivedToken(ctx, tm.httpClient, tm.exchange(tm.cfg.Meta.AccessToken))
	if err != nil {
		return fmt.Errorf("erro ao obter token de longa duração: %w", err)
	}

	tm.storeToken(ctx, tokenResponse)

	logrus.Infof("Token de longa duração inicializado com sucesso. Expira em: %s",
		tm.cfg.Meta.TokenExpiresAt.Format(time.RFC3339))

	return nil
}

// ValidateExistingToken valida um token existente e atualiza as informações de expiração
func (tm *TokenManager) ValidateExistingToken(ctx context.Context) error {
	tm.mu.Lock()
	defer tm.mu.Unlock()

	isValid, err := CheckTokenValidity(ctx, tm.httpClient, tm.cfg.Meta.LongLivedToken, tm.cfg.Meta.URL)
	if err != nil {
		return fmt.Errorf("erro ao verificar validade do token de longa duração: %w", err)
	}

	if !isValid {
		return tm.refreshLocked(ctx)
	}

	expiresAt, err := GetTokenExpiration(ctx, tm.httpClient, tm.cfg.Meta.LongLivedToken, tm.exchange(""))
	if err != nil {
		return err
	}

	// Renovamos um dia antes da expiração real
	tm.cfg.Meta.TokenExpiresAt = expiresAt.Add(-24 * time.Hour)
	tm.cfg.Meta.AccessToken = tm.cfg.Meta.LongLivedToken

	logrus.Infof("Token de longa duração é válido. Expira em: %s",
		tm.cfg.Meta.TokenExpiresAt.Format(time.RFC3339))

	return nil
}

// RefreshToken obtém um novo token de longa duração
func (tm *TokenManager) RefreshToken(ctx context.Context) error {
	tm.mu.Lock()
	defer tm.mu.Unlock()
	return tm.refreshLocked(ctx)
}

func (tm *TokenManager) refreshLocked(ctx context.Context) error {
	if !tm.cfg.Meta.TokenExpiresAt.IsZero() && tm.cfg.Meta.TokenExpiresAt.Sub(tm.now()) < time.Hour {
		logrus.Warn("Token está muito próximo da expiração ou já expirou - pode ser necessária reautorização manual")
	}

	logrus.Info("Iniciando renovação do token...")
	tokenResponse, err := GetLongLivedToken(ctx, tm.httpClient, tm.exchange(tm.cfg.Meta.AccessToken))
	if err != nil {
		if metadomain.ContainsTokenExpirationMessage(err.Error()) {
			logrus.Error("O token de acesso expirou e não pode ser renovado automaticamente. É necessário reautorizar")
			return fmt.Errorf("%w: %v", ErrReauthorizationRequired, err)
		}

		return fmt.Errorf("erro ao obter novo token de longa duração: %w", err)
	}

	oldToken := tm.cfg.Meta.LongLivedToken
	tm.storeToken(ctx, tokenResponse)

	if oldToken == tm.cfg.Meta.LongLivedToken {
		logrus.Info("Token renovado, mas não mudou. Isso pode indicar um problema na API da Meta")
	} else {
		logrus.Infof("Token de longa duração atualizado com sucesso. Expira em: %s",
			tm.cfg.Meta.TokenExpiresAt.Format(time.RFC3339))
	}

	return nil
}

// storeToken atualiza a configuração e persiste o token quando há um SecretStorage
func (tm *TokenManager) storeToken(ctx context.Context, tokenResponse *TokenResponse) {
	tm.cfg.Meta.LongLivedToken = tokenResponse.AccessToken
	tm.cfg.Meta.TokenExpiresAt = CalculateTokenExpiration(tm.now(), tokenResponse.ExpiresIn)
	tm.cfg.Meta.AccessToken = tokenResponse.AccessToken

	if tm.secrets == nil {
		return
	}

	if err := tm.secrets.AddOrUpdateSecret(ctx, tokenSecretName, tokenResponse.AccessToken); err != nil {
		logrus.WithError(err).Warn("Não foi possível persistir o token renovado")
	}
}

// EnsureValidToken verifica se o token atual é válido e tenta renová-lo se necessário
func (tm *TokenManager) EnsureValidToken(ctx context.Context) error {
	tm.mu.Lock()
	token := tm.cfg.Meta.AccessToken
	expiresAt := tm.cfg.Meta.TokenExpiresAt
	tm.mu.Unlock()

	if token == "" {
		logrus.Info("Token não inicializado. Inicializando...")
		return tm.InitiateToken(ctx)
	}

	// Renovação proativa quando faltam menos de 24 horas
	if !expiresAt.IsZero() && expiresAt.Sub(tm.now()) < 24*time.Hour {
		logrus.Info("Token expira em menos de 24 horas. Renovando proativamente...")
		return tm.RefreshToken(ctx)
	}

	return nil
}

// ParseErrorResponse tenta parsear um erro da API do Meta
func ParseErrorResponse(body []byte) (*metadomain.ErrorResponse, error) {
	var errorResp metadomain.ErrorResponse
	if err := json.Unmarshal(body, &errorResp); err != nil {
		return nil, err
	}
	return &errorResp, nil
}

// HandleResponse converte respostas não-200 em *metadomain.APIError e renova o token
// quando ele expirou, devolvendo ErrTokenRefreshed para que a chamada seja repetida
func (tm *TokenManager) HandleResponse(ctx context.Context, status int, body []byte) ([]byte, error) {
	if status == http.StatusOK {
		return body, nil
	}

	apiErr := &metadomain.APIError{HTTPStatus: status, Message: string(body)}
	if errorResp, err := ParseErrorResponse(body); err == nil && errorResp.Error.Message != "" {
		apiErr = metadomain.NewAPIError(status, errorResp)
	}

	if !apiErr.IsTokenExpired() {
		return nil, apiErr
	}

	logrus.Warnf("Token expirado detectado pela API Meta. Código: %d, Subcódigo: %d", apiErr.Code, apiErr.Subcode)

	if err := tm.RefreshToken(ctx); err != nil {
		if errors.Is(err, ErrReauthorizationRequired) {
			return nil, fmt.Errorf("token expirou permanentemente e requer reautorização manual: %w", err)
		}
		return nil, fmt.Errorf("erro ao renovar token expirado: %w", err)
	}

	return nil, ErrTokenRefreshed
}
