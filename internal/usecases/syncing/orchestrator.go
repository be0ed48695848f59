package syncing

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/vfg2006/traffic-sync-worker/internal/domain"
	"github.com/vfg2006/traffic-sync-worker/pkg/log"
)

// Marcos de progresso de cada fase (0..100)
const (
	progressAccountStart    = 10
	progressAccountFetched  = 15
	progressAccountInsights = 25
	progressAccountSaved    = 35
	progressCampaignsStart  = 40
	progressAdSetsStart     = 60
	progressAdsStart        = 80
	progressPhaseSpan       = 20
)

// Options são as constantes de paginação e lote usadas pelas fases
type Options struct {
	Disabled          bool
	PageSize          int
	CampaignBatchSize int
	AdSetBatchSize    int
	StoreFallback     bool
}

// Dependencies reúne os colaboradores do orquestrador. IDs é opcional.
type Dependencies struct {
	Source    AdsSource
	Jobs      JobStore
	IDs       IDSource
	Fetcher   *Fetcher
	Insights  *InsightsResolver
	Upserter  *Upserter
	Scheduler *ContinuationScheduler
	Guard     *Guard
	Budget    TimeBudget
	Now       func() time.Time
}

// PhaseResult descreve o que uma invocação fez e em que estado a requisição ficou
type PhaseResult struct {
	RequestID   string
	Phase       domain.Phase
	State       domain.PhaseState
	Deferred    bool
	Skipped     bool
	Processed   int
	Failed      int
	NextPayload *domain.ContinuationPayload
	MessageID   string
	Reason      string
}

// Orchestrator executa uma fase por invocação e decide a próxima
type Orchestrator struct {
	opts      Options
	source    AdsSource
	jobs      JobStore
	ids       IDSource
	fetcher   *Fetcher
	insights  *InsightsResolver
	upserter  *Upserter
	scheduler *ContinuationScheduler
	guard     *Guard
	budget    TimeBudget
	now       func() time.Time
}

func NewOrchestrator(deps Dependencies, opts Options) *Orchestrator {
	now := deps.Now
	if now == nil {
		now = time.Now
	}

	return &Orchestrator{
		opts:      opts,
		source:    deps.Source,
		jobs:      deps.Jobs,
		ids:       deps.IDs,
		fetcher:   deps.Fetcher,
		insights:  deps.Insights,
		upserter:  deps.Upserter,
		scheduler: deps.Scheduler,
		guard:     deps.Guard,
		budget:    deps.Budget,
		now:       now,
	}
}

// Run executa a invocação descrita pelo payload. Quando o estado final é
// terminal o job já foi atualizado e a mensagem não deve ser reentregue. Erros
// com estado não terminal são falhas de infraestrutura e pedem nova entrega.
func (o *Orchestrator) Run(ctx context.Context, payload domain.ContinuationPayload) (*PhaseResult, error) {
	start := o.now()
	p := payload.Clone()

	result := &PhaseResult{
		RequestID: p.RequestID,
		Phase:     p.Phase,
		State:     domain.StateOf(p.Phase),
	}

	if o.opts.Disabled {
		log.L.WithField("request_id", p.RequestID).Info("sync: engine disabled, skipping invocation")
		result.Skipped = true
		result.Reason = "disabled"
		return result, nil
	}

	if err := p.Normalize(); err != nil {
		return o.reject(ctx, p, result, NewValidationError(err, ReasonInvalidPayload, "phase"))
	}
	result.Phase = p.Phase
	result.State = domain.StateOf(p.Phase)

	if err := p.Validate(); err != nil {
		return o.reject(ctx, p, result, NewValidationError(err, ReasonInvalidPayload, ""))
	}

	ctx = log.WithSyncContext(ctx, p.RequestID, string(p.Phase), p.Iteration)
	logger := log.ForContext(ctx)

	decision, err := o.guard.Check(ctx, p)
	if err != nil {
		logger.WithError(err).Error("sync: failed to read job before invocation")
		return result, fmt.Errorf("sync: guard: %w", err)
	}

	switch {
	case decision.Verdict != SafetyProceed:
		logger.WithField("reason", decision.Verdict.Reason()).Warn("sync: safety stop, completing job")
		o.complete(ctx, p, p.Stats, decision.Verdict.Reason())
		result.State = domain.StateCompleted
		result.Reason = decision.Verdict.Reason()
		return result, nil
	case decision.Cancelled:
		logger.Info("sync: request cancelled, stopping chain")
		result.State = domain.StateCancelled
		result.Reason = string(domain.JobStatusCancelled)
		return result, nil
	case decision.Terminal:
		logger.WithField("status", decision.Job.Status).Info("sync: job already finished, skipping invocation")
		result.Skipped = true
		result.Reason = string(decision.Job.Status)
		return result, nil
	}

	if p.IsFresh() {
		o.startJob(ctx, p)
	}

	ctx = WithBudget(ctx, o.budget, start)

	period, err := p.Timeframe.Resolve(start)
	if err != nil {
		return o.reject(ctx, p, result, NewValidationError(err, ReasonInvalidPayload, "timeframe"))
	}

	run := &phaseRun{
		o:       o,
		payload: p,
		stats:   p.Stats,
		start:   start,
		period:  period,
		result:  result,
	}

	logger.WithFields(log.Fields{
		"account_id": p.AccountID,
		"sync_range": period.String(),
	}).Info("sync: starting phase")

	switch p.Phase {
	case domain.PhaseAccount:
		err = run.account(ctx)
	case domain.PhaseCampaigns:
		err = run.campaigns(ctx)
	case domain.PhaseAdSets:
		err = run.adSets(ctx)
	case domain.PhaseAds:
		err = run.ads(ctx)
	}

	return o.finish(ctx, run, err)
}

// finish aplica a política de erro da fase. Validação e falhas definitivas de
// fetch encerram o job; paradas de segurança o concluem.
func (o *Orchestrator) finish(ctx context.Context, run *phaseRun, err error) (*PhaseResult, error) {
	result := run.result
	logger := log.ForContext(ctx)

	if err == nil {
		logger.WithFields(log.Fields{
			"state":     result.State,
			"deferred":  result.Deferred,
			"processed": result.Processed,
			"failed":    result.Failed,
			"elapsed":   o.now().Sub(run.start).String(),
		}).Info("sync: phase finished")
		return result, nil
	}

	if verdict, ok := IsSafetyLimit(err); ok {
		logger.WithField("reason", verdict.Reason()).Warn("sync: continuation refused, completing job")
		o.complete(ctx, run.payload, run.stats, verdict.Reason())
		result.State = domain.StateCompleted
		result.Reason = verdict.Reason()
		result.NextPayload = nil
		return result, nil
	}

	var fetchErr *FetchError
	var notFoundErr *EntityNotFoundError
	switch {
	case IsValidation(err), errors.As(err, &notFoundErr), errors.As(err, &fetchErr) && !isContextError(err):
		logger.WithError(err).Error("sync: phase failed")
		o.fail(ctx, run.payload, err)
		result.State = domain.StateFailed
		result.Reason = err.Error()
		return result, err
	}

	logger.WithError(err).Warn("sync: phase interrupted, message will be redelivered")
	return result, err
}

func (o *Orchestrator) reject(ctx context.Context, p domain.ContinuationPayload, result *PhaseResult, err *ValidationError) (*PhaseResult, error) {
	log.L.WithFields(log.Fields{
		"request_id": p.RequestID,
		"phase":      p.Phase,
		"error":      err.Error(),
	}).Error("sync: invalid payload")

	o.fail(ctx, p, err)
	result.State = domain.StateFailed
	result.Reason = err.Reason
	return result, err
}

func (o *Orchestrator) startJob(ctx context.Context, p domain.ContinuationPayload) {
	logger := log.ForContext(ctx)

	if _, err := o.jobs.EnsureJob(ctx, &domain.SyncJob{
		RequestID: p.RequestID,
		AccountID: p.AccountID,
		Timeframe: p.Timeframe,
		Status:    domain.JobStatusQueued,
	}); err != nil {
		logger.WithError(err).Warn("sync: failed to ensure job row")
	}

	if err := o.jobs.MarkProcessing(ctx, p.RequestID); err != nil {
		logger.WithError(err).Warn("sync: failed to mark job as processing")
	}
}

func (o *Orchestrator) complete(ctx context.Context, p domain.ContinuationPayload, stats domain.SyncStats, reason string) {
	summary := domain.NewSyncSummary(stats, p.Iteration+1, reason)
	if err := o.jobs.Complete(ctx, p.RequestID, summary); err != nil {
		log.ForContext(ctx).WithError(err).Warn("sync: failed to complete job")
	}
}

func (o *Orchestrator) fail(ctx context.Context, p domain.ContinuationPayload, cause error) {
	if p.RequestID == "" {
		return
	}
	if err := o.jobs.Fail(ctx, p.RequestID, cause.Error()); err != nil {
		log.ForContext(ctx).WithError(err).Warn("sync: failed to mark job as failed")
	}
}

// phaseRun guarda o estado de uma única invocação
type phaseRun struct {
	o       *Orchestrator
	payload domain.ContinuationPayload
	stats   domain.SyncStats
	start   time.Time
	period  domain.DateRange
	result  *PhaseResult
}

func (r *phaseRun) outOfTime() bool {
	return r.o.budget.ShouldDefer(r.start)
}

// continueWith publica a próxima invocação com as estatísticas acumuladas
func (r *phaseRun) continueWith(ctx context.Context, next domain.ContinuationPayload, deferred bool) error {
	next.Stats = r.stats

	enqueued, err := r.o.scheduler.Enqueue(ctx, r.payload, next)
	if err != nil {
		return err
	}

	if deferred {
		log.ForContext(ctx).WithFields(log.Fields{
			"next_phase": next.Phase,
			"remaining":  r.o.budget.Remaining(r.start).String(),
		}).Info("sync: time budget reached, deferring remaining work")
	}

	r.result.Deferred = deferred
	r.result.NextPayload = &enqueued.Payload
	r.result.MessageID = enqueued.MessageID
	r.result.State = domain.StateOf(next.Phase)
	return nil
}

// deferPhase reenfileira a própria fase a partir do ponto exato de retomada.
// Um adiamento que não saiu do cursor recebido soma em Deferrals.
func (r *phaseRun) deferPhase(ctx context.Context, next domain.ContinuationPayload) error {
	next.Phase = r.payload.Phase
	next.Deferrals = 0
	if next.Cursor == r.payload.Cursor {
		next.Deferrals = r.payload.Deferrals + 1
	}
	return r.continueWith(ctx, next, true)
}

// deferOnTimeout adia a fase quando o fetcher parou por falta de tempo.
// Qualquer outro erro volta sem alteração.
func (r *phaseRun) deferOnTimeout(ctx context.Context, err error, next domain.ContinuationPayload) error {
	if !IsOutOfTime(err) {
		return err
	}
	log.ForContext(ctx).WithError(err).Info("sync: external call would exceed the time budget")
	return r.deferPhase(ctx, next)
}

func (r *phaseRun) completeJob(ctx context.Context, reason string) {
	log.ForContext(ctx).WithField("reason", reason).Info("sync: request completed")
	r.o.complete(ctx, r.payload, r.stats, reason)
	r.result.State = domain.StateCompleted
	r.result.Reason = reason
}

func (r *phaseRun) progress(ctx context.Context, value int) {
	if err := r.o.jobs.UpdateProgress(ctx, r.payload.RequestID, value); err != nil {
		log.ForContext(ctx).WithError(err).Warn("sync: failed to update progress")
	}
}

// cancelled consulta o flag de cancelamento entre entidades pai de um lote
func (r *phaseRun) cancelled(ctx context.Context) bool {
	cancelled, err := r.o.guard.CheckCancelled(ctx, r.payload.RequestID)
	if err != nil {
		log.ForContext(ctx).WithError(err).Warn("sync: failed to check cancellation")
		return false
	}
	if cancelled {
		log.ForContext(ctx).Info("sync: request cancelled during batch")
		r.result.State = domain.StateCancelled
		r.result.Reason = string(domain.JobStatusCancelled)
	}
	return cancelled
}

// syncEntity busca as métricas da entidade e a grava. Falha de gravação é
// contada e não interrompe as irmãs; rate limit esgotado interrompe a fase.
func (r *phaseRun) syncEntity(ctx context.Context, entity domain.MeasuredEntity) (bool, error) {
	ref := domain.InsightsRef{Type: entity.EntityType(), ID: entity.NaturalID()}

	record, err := r.o.insights.Resolve(ctx, ref, r.period)
	if err != nil {
		return false, err
	}

	if record == nil {
		r.stats.InsightsMissing++
	}
	entity.SetMetrics(domain.NewMetrics(record))

	if _, err := r.o.upserter.Upsert(ctx, entity); err != nil {
		r.entityFailed(ctx, entity.EntityType(), entity.NaturalID(), err)
		return false, nil
	}

	r.result.Processed++
	return true, nil
}

func (r *phaseRun) entityFailed(ctx context.Context, entityType domain.EntityType, id string, err error) {
	r.stats.Errors++
	r.result.Failed++

	log.ForContext(ctx).WithFields(log.Fields{
		"entity_type": entityType,
		"entity_id":   id,
		"error":       err.Error(),
	}).Warn("sync: entity skipped")
}

func progressWithin(base, done, total int) int {
	if total <= 0 {
		return base
	}
	if done > total {
		done = total
	}
	return base + progressPhaseSpan*done/total
}
