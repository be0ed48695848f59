package worker

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/vfg2006/traffic-sync-worker/internal/config"
	"github.com/vfg2006/traffic-sync-worker/internal/domain"
	"github.com/vfg2006/traffic-sync-worker/internal/usecases/syncing"
	"github.com/vfg2006/traffic-sync-worker/pkg/log"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const (
	defaultPopTimeout  = 5 * time.Second
	defaultErrorPause  = 5 * time.Second
	maxRedeliveryDelay = 5 * time.Minute
)

// Queue é a fila de continuações consumida pelo worker
type Queue interface {
	Pop(ctx context.Context, timeout time.Duration) (*domain.ContinuationMessage, error)
	Retry(ctx context.Context, msg domain.ContinuationMessage, cause error, delay time.Duration) (bool, error)
}

// Runner executa uma invocação do motor de sincronização
type Runner interface {
	Run(ctx context.Context, payload domain.ContinuationPayload) (*syncing.PhaseResult, error)
}

// JobFailer marca o job como falho quando a mensagem esgota as entregas
type JobFailer interface {
	Fail(ctx context.Context, requestID string, message string) error
}

// ConsumerConfig define a concorrência e o ritmo das reentregas
type ConsumerConfig struct {
	Concurrency    int
	PopTimeout     time.Duration
	RetryBaseDelay time.Duration
	ErrorPause     time.Duration
}

// ConsumerStatus é o retrato exposto no healthcheck
type ConsumerStatus struct {
	Running       bool      `json:"running"`
	Workers       int       `json:"workers"`
	Processed     int64     `json:"processed"`
	Redelivered   int64     `json:"redelivered"`
	DeadLettered  int64     `json:"dead_lettered"`
	LastMessageAt time.Time `json:"last_message_at,omitempty"`
	LastError     string    `json:"last_error,omitempty"`
}

// Consumer retira continuações da fila e as executa uma a uma por worker
type Consumer struct {
	queue  Queue
	runner Runner
	jobs   JobFailer
	cfg    ConsumerConfig

	mu     sync.Mutex
	status ConsumerStatus
}

func NewConsumer(queue Queue, runner Runner, jobs JobFailer, cfg ConsumerConfig) *Consumer {
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = 1
	}
	if cfg.PopTimeout <= 0 {
		cfg.PopTimeout = defaultPopTimeout
	}
	if cfg.ErrorPause <= 0 {
		cfg.ErrorPause = defaultErrorPause
	}

	return &Consumer{
		queue:  queue,
		runner: runner,
		jobs:   jobs,
		cfg:    cfg,
	}
}

// ConsumerConfigFrom monta a configuração do consumer a partir da config global
func ConsumerConfigFrom(cfg config.Sync) ConsumerConfig {
	return ConsumerConfig{
		Concurrency:    cfg.WorkerConcurrency,
		RetryBaseDelay: cfg.ContinuationDelay,
	}
}

// Start bloqueia até o contexto ser cancelado
func (c *Consumer) Start(ctx context.Context) {
	log.L.WithField("workers", c.cfg.Concurrency).Info("worker: consumer started")
	c.setRunning(true)
	defer c.setRunning(false)

	var wg sync.WaitGroup
	for i := 0; i < c.cfg.Concurrency; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			c.loop(ctx, id)
		}(i)
	}

	wg.Wait()
	log.L.Info("worker: consumer stopped")
}

func (c *Consumer) loop(ctx context.Context, id int) {
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		msg, err := c.queue.Pop(ctx, c.cfg.PopTimeout)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return
			}
			log.L.WithFields(log.Fields{
				"worker": id,
				"error":  err.Error(),
			}).Error("worker: failed to pop continuation")
			c.recordError(err)
			c.pause(ctx, c.cfg.ErrorPause)
			continue
		}
		if msg == nil {
			continue
		}

		if err := c.Handle(ctx, *msg); err != nil {
			c.recordError(err)
		}
	}
}

// Handle executa uma mensagem. Falhas de infraestrutura são reentregues com
// backoff; ao esgotar as entregas o job é marcado como falho.
func (c *Consumer) Handle(ctx context.Context, msg domain.ContinuationMessage) error {
	c.touch()

	logger := log.L.WithFields(log.Fields{
		"message_id": msg.ID,
		"request_id": msg.RequestID,
		"phase":      msg.Phase,
		"iteration":  msg.Iteration,
		"attempt":    msg.Attempt,
	})

	var payload domain.ContinuationPayload
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		logger.WithError(err).Error("worker: undecodable payload")
		c.fail(ctx, msg.RequestID, fmt.Sprintf("undecodable continuation payload: %v", err))
		return err
	}

	result, err := c.runner.Run(ctx, payload)
	if err == nil || (result != nil && result.State.IsTerminal()) {
		c.processed()
		if result != nil {
			logger.WithFields(log.Fields{
				"state":    result.State,
				"deferred": result.Deferred,
				"skipped":  result.Skipped,
				"reason":   result.Reason,
			}).Info("worker: continuation processed")
		}
		return nil
	}

	delay := c.redeliveryDelay(msg.Attempt)
	dead, retryErr := c.queue.Retry(ctx, msg, err, delay)
	if retryErr != nil {
		logger.WithError(retryErr).Error("worker: failed to redeliver continuation")
		return fmt.Errorf("worker: redeliver: %w", retryErr)
	}

	if dead {
		c.deadLettered()
		logger.WithError(err).Error("worker: delivery attempts exhausted, continuation dead-lettered")
		c.fail(ctx, msg.RequestID, fmt.Sprintf("delivery attempts exhausted: %v", err))
		return err
	}

	c.redelivered()
	logger.WithFields(log.Fields{
		"delay": delay.String(),
		"error": err.Error(),
	}).Warn("worker: continuation will be redelivered")

	return err
}

// Status retorna um retrato dos contadores do consumer
func (c *Consumer) Status() ConsumerStatus {
	c.mu.Lock()
	defer c.mu.Unlock()

	status := c.status
	status.Workers = c.cfg.Concurrency
	return status
}

func (c *Consumer) redeliveryDelay(attempt int) time.Duration {
	if c.cfg.RetryBaseDelay <= 0 {
		return 0
	}
	delay := c.cfg.RetryBaseDelay << uint(attempt)
	if delay > maxRedeliveryDelay || delay <= 0 {
		delay = maxRedeliveryDelay
	}
	return delay
}

func (c *Consumer) fail(ctx context.Context, requestID, message string) {
	if requestID == "" {
		return
	}
	if err := c.jobs.Fail(ctx, requestID, message); err != nil {
		log.L.WithFields(log.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Warn("worker: failed to mark job as failed")
	}
}

func (c *Consumer) pause(ctx context.Context, d time.Duration) {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
	case <-timer.C:
	}
}

func (c *Consumer) setRunning(running bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.status.Running = running
}

func (c *Consumer) touch() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.status.LastMessageAt = time.Now()
}

func (c *Consumer) processed() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.status.Processed++
}

func (c *Consumer) redelivered() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.status.Redelivered++
}

func (c *Consumer) deadLettered() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.status.DeadLettered++
}

func (c *Consumer) recordError(err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.status.LastError = err.Error()
}
