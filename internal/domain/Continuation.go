package domain

import (
	"errors"
	"time"
)

// ContinuationPayload carrega todo o estado necessário para retomar a sincronização
type ContinuationPayload struct {
	AccountID      string    `json:"accountId"`
	Timeframe      Timeframe `json:"timeframe"`
	Phase          Phase     `json:"phase,omitempty"`
	Cursor         string    `json:"cursor,omitempty"`
	PreviousCursor string    `json:"previousCursor,omitempty"`
	CampaignIDs    []string  `json:"campaignIds,omitempty"`
	AdSetIDs       []string  `json:"adsetIds,omitempty"`
	Iteration      int       `json:"iteration"`
	RequestID      string    `json:"requestId"`
	Stats          SyncStats `json:"stats"`
	// Deferrals conta os adiamentos seguidos que não saíram do mesmo cursor
	Deferrals int `json:"deferrals,omitempty"`
}

// Normalize aplica os valores padrão de um primeiro gatilho
func (p *ContinuationPayload) Normalize() error {
	phase, err := ParsePhase(string(p.Phase))
	if err != nil {
		return err
	}
	p.Phase = phase

	if p.Timeframe == "" {
		p.Timeframe = TimeframeLast30Days
	}

	return nil
}

// Validate verifica os campos mínimos de qualquer invocação
func (p *ContinuationPayload) Validate() error {
	if p.RequestID == "" {
		return errors.New("requestId is required")
	}
	if p.AccountID == "" {
		return errors.New("accountId is required")
	}
	if !p.Timeframe.IsValid() {
		return errors.New("invalid timeframe " + string(p.Timeframe))
	}
	if p.Iteration < 0 {
		return errors.New("iteration must not be negative")
	}
	if p.Deferrals < 0 {
		return errors.New("deferrals must not be negative")
	}
	return nil
}

// IsFresh indica a primeira invocação de uma requisição
func (p *ContinuationPayload) IsFresh() bool {
	return p.Phase == PhaseAccount && p.Iteration == 0
}

// Clone devolve uma cópia independente, sem compartilhar as listas de ids
func (p ContinuationPayload) Clone() ContinuationPayload {
	clone := p
	clone.CampaignIDs = append([]string(nil), p.CampaignIDs...)
	clone.AdSetIDs = append([]string(nil), p.AdSetIDs...)
	return clone
}

// ContinuationMessage é o envelope publicado na fila
type ContinuationMessage struct {
	ID            string    `json:"id"`
	RequestID     string    `json:"requestId"`
	Phase         Phase     `json:"phase"`
	Iteration     int       `json:"iteration"`
	Attempt       int       `json:"attempt"`
	MaxDeliveries int       `json:"maxDeliveries"`
	Payload       []byte    `json:"payload"`
	EnqueuedAt    time.Time `json:"enqueuedAt"`
	LastError     string    `json:"lastError,omitempty"`
}

// ClaimResult é o resultado da reserva de um cursor no ledger
type ClaimResult int

const (
	ClaimAccepted ClaimResult = iota
	// ClaimDuplicate: a mesma iteração já reservou e publicou o cursor
	ClaimDuplicate
	ClaimConflict
	// ClaimPending: a mesma iteração reservou o cursor mas a publicação não foi confirmada
	ClaimPending
)

func (c ClaimResult) String() string {
	switch c {
	case ClaimAccepted:
		return "accepted"
	case ClaimDuplicate:
		return "duplicate"
	case ClaimConflict:
		return "conflict"
	case ClaimPending:
		return "pending"
	}
	return "unknown"
}
