package syncing

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/traffic-sync-worker/internal/domain"
	"github.com/vfg2006/traffic-sync-worker/pkg/utils"
)

var (
	ErrJobNotFound      = errors.New("sync job not found")
	ErrJobAlreadyClosed = errors.New("sync job already finished")
)

// RequestStatus é a visão do job devolvida a quem acompanha a requisição
type RequestStatus struct {
	Job                *domain.SyncJob
	EstimatedRemaining *time.Duration
}

// Requests aceita novos gatilhos, responde consultas de status e registra cancelamentos
type Requests struct {
	jobs      JobStore
	scheduler *ContinuationScheduler
	newID     func() (string, error)
	now       func() time.Time
}

func NewRequests(jobs JobStore, scheduler *ContinuationScheduler) *Requests {
	return &Requests{
		jobs:      jobs,
		scheduler: scheduler,
		newID:     utils.GenerateRequestID,
		now:       time.Now,
	}
}

// Start cria o job em queued e publica a invocação da fase account
func (r *Requests) Start(ctx context.Context, accountID string, timeframe domain.Timeframe) (*domain.SyncJob, error) {
	payload := domain.ContinuationPayload{
		AccountID: accountID,
		Timeframe: timeframe,
		Phase:     domain.PhaseAccount,
	}
	if err := payload.Normalize(); err != nil {
		return nil, NewValidationError(err, ReasonInvalidPayload, "phase")
	}

	requestID, err := r.newID()
	if err != nil {
		return nil, fmt.Errorf("sync: generate request id: %w", err)
	}
	payload.RequestID = requestID

	if err := payload.Validate(); err != nil {
		return nil, NewValidationError(err, ReasonInvalidPayload, "")
	}

	job := &domain.SyncJob{
		RequestID: payload.RequestID,
		AccountID: payload.AccountID,
		Timeframe: payload.Timeframe,
		Status:    domain.JobStatusQueued,
		CreatedAt: r.now(),
	}
	job.UpdatedAt = job.CreatedAt

	if _, err := r.jobs.EnsureJob(ctx, job); err != nil {
		return nil, fmt.Errorf("sync: create job: %w", err)
	}

	if _, err := r.scheduler.EnqueueInitial(ctx, payload); err != nil {
		if failErr := r.jobs.Fail(ctx, job.RequestID, err.Error()); failErr != nil {
			logrus.WithFields(logrus.Fields{
				"request_id": job.RequestID,
				"error":      failErr.Error(),
			}).Warn("sync: failed to mark unqueued job as failed")
		}
		return nil, err
	}

	return job, nil
}

// Status retorna o job e a estimativa de tempo restante
func (r *Requests) Status(ctx context.Context, requestID string) (*RequestStatus, error) {
	job, err := r.jobs.GetJob(ctx, requestID)
	if err != nil {
		return nil, fmt.Errorf("sync: get job: %w", err)
	}
	if job == nil {
		return nil, ErrJobNotFound
	}

	return &RequestStatus{
		Job:                job,
		EstimatedRemaining: job.EstimatedRemaining(r.now()),
	}, nil
}

// Cancel liga a flag de cancelamento. A cadeia para na próxima verificação do guard.
func (r *Requests) Cancel(ctx context.Context, requestID string) (*domain.SyncJob, error) {
	cancelled, err := r.jobs.Cancel(ctx, requestID)
	if err != nil {
		return nil, fmt.Errorf("sync: cancel job: %w", err)
	}

	job, err := r.jobs.GetJob(ctx, requestID)
	if err != nil {
		return nil, fmt.Errorf("sync: get job: %w", err)
	}
	if job == nil {
		return nil, ErrJobNotFound
	}

	if !cancelled && job.Status != domain.JobStatusCancelled {
		return job, ErrJobAlreadyClosed
	}

	logrus.WithField("request_id", requestID).Info("sync: cancellation requested")
	return job, nil
}
