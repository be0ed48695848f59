package domain

import (
	"time"
)

type JobStatus string

const (
	JobStatusQueued     JobStatus = "queued"
	JobStatusProcessing JobStatus = "processing"
	JobStatusCompleted  JobStatus = "completed"
	JobStatusFailed     JobStatus = "failed"
	JobStatusCancelled  JobStatus = "cancelled"
)

func (s JobStatus) IsTerminal() bool {
	return s == JobStatusCompleted || s == JobStatusFailed || s == JobStatusCancelled
}

// Motivos registrados no resumo final da sincronização
const (
	ReasonFinished             = "finished"
	ReasonNoCampaigns          = "no_campaigns"
	ReasonNoAdSets             = "no_adsets"
	ReasonMaxIterationsReached = "max_iterations_reached"
	ReasonRepeatedCursor       = "repeated_cursor"
	ReasonStale                = "stale"
)

// SyncJob é a linha de status de uma requisição de sincronização
type SyncJob struct {
	RequestID     string       `json:"requestId"`
	AccountID     string       `json:"accountId"`
	Timeframe     Timeframe    `json:"timeframe"`
	Status        JobStatus    `json:"status"`
	Progress      int          `json:"progress"`
	ErrorMessage  *string      `json:"errorMessage,omitempty"`
	ResultSummary *SyncSummary `json:"resultSummary,omitempty"`
	CreatedAt     time.Time    `json:"createdAt"`
	UpdatedAt     time.Time    `json:"updatedAt"`
	CompletedAt   *time.Time   `json:"completedAt,omitempty"`
}

// EstimatedRemaining estima o tempo restante pela taxa de progresso observada
func (j *SyncJob) EstimatedRemaining(now time.Time) *time.Duration {
	if j == nil || j.Status.IsTerminal() || j.Progress <= 0 || j.Progress >= 100 {
		return nil
	}

	elapsed := now.Sub(j.CreatedAt)
	if elapsed <= 0 {
		return nil
	}

	remaining := time.Duration(float64(elapsed) * float64(100-j.Progress) / float64(j.Progress))
	return &remaining
}

// SyncStats são os contadores acumulados que viajam no payload de continuação
type SyncStats struct {
	Accounts        int `json:"accounts"`
	Campaigns       int `json:"campaigns"`
	AdSets          int `json:"adsets"`
	Ads             int `json:"ads"`
	Errors          int `json:"errors"`
	InsightsMissing int `json:"insightsMissing"`
	CampaignsTotal  int `json:"campaignsTotal,omitempty"`
	AdSetsTotal     int `json:"adsetsTotal,omitempty"`
}

// SyncSummary é o resumo gravado quando o job termina
type SyncSummary struct {
	Accounts        int    `json:"accounts"`
	Campaigns       int    `json:"campaigns"`
	AdSets          int    `json:"adsets"`
	Ads             int    `json:"ads"`
	Errors          int    `json:"errors"`
	InsightsMissing int    `json:"insightsMissing"`
	Iterations      int    `json:"iterations"`
	Reason          string `json:"reason"`
}

func NewSyncSummary(stats SyncStats, iterations int, reason string) SyncSummary {
	return SyncSummary{
		Accounts:        stats.Accounts,
		Campaigns:       stats.Campaigns,
		AdSets:          stats.AdSets,
		Ads:             stats.Ads,
		Errors:          stats.Errors,
		InsightsMissing: stats.InsightsMissing,
		Iterations:      iterations,
		Reason:          reason,
	}
}
