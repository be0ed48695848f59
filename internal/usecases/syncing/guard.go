package syncing

import (
	"context"

	"github.com/vfg2006/traffic-sync-worker/internal/domain"
)

// SafetyVerdict é o resultado da verificação de segurança de um payload
type SafetyVerdict int

const (
	SafetyProceed SafetyVerdict = iota
	SafetyStopMaxIterations
	SafetyStopRepeatedCursor
)

// Reason é o motivo registrado no resumo do job
func (v SafetyVerdict) Reason() string {
	switch v {
	case SafetyStopMaxIterations:
		return domain.ReasonMaxIterationsReached
	case SafetyStopRepeatedCursor:
		return domain.ReasonRepeatedCursor
	}
	return ""
}

// GuardDecision é o que o guard decidiu antes de qualquer chamada externa
type GuardDecision struct {
	Verdict   SafetyVerdict
	Cancelled bool
	Terminal  bool
	Job       *domain.SyncJob
}

// Proceed indica que a invocação pode seguir
func (d GuardDecision) Proceed() bool {
	return d.Verdict == SafetyProceed && !d.Cancelled && !d.Terminal
}

// Guard interrompe requisições canceladas e cadeias que não progridem
type Guard struct {
	jobs          JobStore
	maxIterations int
}

func NewGuard(jobs JobStore, maxIterations int) *Guard {
	return &Guard{
		jobs:          jobs,
		maxIterations: maxIterations,
	}
}

// CheckSafety verifica o limite de iterações e a repetição de cursor
func (g *Guard) CheckSafety(payload domain.ContinuationPayload) SafetyVerdict {
	if payload.Iteration >= g.maxIterations {
		return SafetyStopMaxIterations
	}
	// Reentradas adiadas repetem o cursor de propósito; o scheduler limita quantas vezes
	if payload.Cursor != "" && payload.Cursor == payload.PreviousCursor && payload.Deferrals == 0 {
		return SafetyStopRepeatedCursor
	}
	return SafetyProceed
}

// CheckCancelled consulta o flag de cancelamento do job. Job inexistente não está cancelado.
func (g *Guard) CheckCancelled(ctx context.Context, requestID string) (bool, error) {
	job, err := g.jobs.GetJob(ctx, requestID)
	if err != nil {
		return false, err
	}
	return job != nil && job.Status == domain.JobStatusCancelled, nil
}

// Check executa a verificação de segurança e depois a de cancelamento
func (g *Guard) Check(ctx context.Context, payload domain.ContinuationPayload) (GuardDecision, error) {
	decision := GuardDecision{Verdict: g.CheckSafety(payload)}
	if decision.Verdict != SafetyProceed {
		return decision, nil
	}

	job, err := g.jobs.GetJob(ctx, payload.RequestID)
	if err != nil {
		return decision, err
	}

	decision.Job = job
	if job != nil {
		decision.Cancelled = job.Status == domain.JobStatusCancelled
		decision.Terminal = job.Status.IsTerminal() && !decision.Cancelled
	}

	return decision, nil
}
