package syncing

import (
	"context"
	"time"

	"github.com/vfg2006/traffic-sync-worker/internal/domain"
)

// AdsSource é a fonte de dados de anúncios (Graph API). As respostas já chegam
// validadas e convertidas para o domínio.
type AdsSource interface {
	// GetAccount retorna o snapshot da conta de anúncios
	GetAccount(ctx context.Context, accountID string) (*domain.AccountSnapshot, error)

	// ListCampaigns retorna uma página de campanhas da conta
	ListCampaigns(ctx context.Context, accountID string, page domain.PageRequest) (*domain.Page[domain.Campaign], error)

	// ListAdSets retorna uma página de conjuntos de anúncios da campanha
	ListAdSets(ctx context.Context, campaignID string, page domain.PageRequest) (*domain.Page[domain.AdSet], error)

	// ListAds retorna uma página de anúncios do conjunto
	ListAds(ctx context.Context, adSetID string, page domain.PageRequest) (*domain.Page[domain.Ad], error)

	// GetInsights executa uma consulta de insights. Retorna nil, nil quando não há linhas.
	GetInsights(ctx context.Context, query domain.InsightsQuery) (*domain.InsightsRecord, error)
}

// JobStore mantém a linha de status de cada requisição de sincronização
type JobStore interface {
	EnsureJob(ctx context.Context, job *domain.SyncJob) (bool, error)
	GetJob(ctx context.Context, requestID string) (*domain.SyncJob, error)
	MarkProcessing(ctx context.Context, requestID string) error
	UpdateProgress(ctx context.Context, requestID string, progress int) error
	Complete(ctx context.Context, requestID string, summary domain.SyncSummary) error
	Fail(ctx context.Context, requestID string, message string) error
	Cancel(ctx context.Context, requestID string) (bool, error)
}

// EntityWriter grava um snapshot. Retorna false quando a linha já estava igual.
type EntityWriter interface {
	Upsert(ctx context.Context, entity domain.Entity) (bool, error)
}

// IDSource recupera do banco os ids já sincronizados quando o payload chega sem eles
type IDSource interface {
	ListCampaignIDs(ctx context.Context, accountID string) ([]string, error)
	ListAdSetIDs(ctx context.Context, campaignIDs []string) ([]string, error)
}

// Publisher entrega uma mensagem de continuação na fila, com atraso opcional
type Publisher interface {
	Publish(ctx context.Context, msg domain.ContinuationMessage, delay time.Duration) (string, error)
}

// CursorLedger registra os cursores já enfileirados por requisição e fase
type CursorLedger interface {
	Claim(ctx context.Context, requestID string, phase domain.Phase, cursor string, iteration int) (domain.ClaimResult, error)
	Release(ctx context.Context, requestID string, phase domain.Phase, cursor string) error
	Confirm(ctx context.Context, requestID string, phase domain.Phase, cursor string, iteration int) error
}
