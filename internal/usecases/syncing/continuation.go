package syncing

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/traffic-sync-worker/internal/domain"
)

// ContinuationConfig define os limites e a entrega das continuações
type ContinuationConfig struct {
	MaxIterations int
	// MaxDeferrals limita os adiamentos seguidos no mesmo cursor
	MaxDeferrals    int
	Delay           time.Duration
	DeliveryRetries int
}

const defaultMaxDeferrals = 3

// EnqueueResult descreve a continuação aceita
type EnqueueResult struct {
	MessageID string
	Payload   domain.ContinuationPayload
	// Duplicate indica que a mesma continuação já tinha sido enfileirada
	Duplicate bool
}

// ContinuationScheduler valida e publica o payload da próxima invocação
type ContinuationScheduler struct {
	cfg       ContinuationConfig
	publisher Publisher
	ledger    CursorLedger
}

// NewContinuationScheduler cria o scheduler. O ledger é opcional.
func NewContinuationScheduler(cfg ContinuationConfig, publisher Publisher, ledger CursorLedger) *ContinuationScheduler {
	return &ContinuationScheduler{
		cfg:       cfg,
		publisher: publisher,
		ledger:    ledger,
	}
}

// Enqueue valida o próximo payload contra a invocação corrente e o publica.
// Payloads rejeitados voltam como *ValidationError sem publicar nada.
func (s *ContinuationScheduler) Enqueue(ctx context.Context, current, next domain.ContinuationPayload) (*EnqueueResult, error) {
	if err := s.validate(current, next); err != nil {
		logrus.WithFields(logrus.Fields{
			"request_id": current.RequestID,
			"phase":      next.Phase,
			"iteration":  current.Iteration,
			"error":      err.Error(),
		}).Warn("continuation: payload rejected")
		return nil, err
	}

	next = next.Clone()
	next.RequestID = current.RequestID
	next.AccountID = current.AccountID
	next.Timeframe = current.Timeframe
	next.Iteration = current.Iteration + 1
	next.PreviousCursor = ""
	if next.Phase == current.Phase {
		next.PreviousCursor = current.Cursor
	}

	// Um adiamento no mesmo cursor já foi reservado pela invocação corrente
	useLedger := next.Cursor != "" && s.ledger != nil && !isSameCursorDeferral(current, next)

	if useLedger {
		claim, err := s.ledger.Claim(ctx, next.RequestID, next.Phase, next.Cursor, next.Iteration)
		if err != nil {
			logrus.WithFields(logrus.Fields{
				"request_id": next.RequestID,
				"phase":      next.Phase,
				"error":      err.Error(),
			}).Warn("continuation: cursor ledger unavailable, relying on payload check")
		}

		switch {
		case err != nil:
		case claim == domain.ClaimConflict:
			return nil, newSafetyError(SafetyStopRepeatedCursor)
		case claim == domain.ClaimDuplicate:
			logrus.WithFields(logrus.Fields{
				"request_id": next.RequestID,
				"phase":      next.Phase,
				"iteration":  next.Iteration,
			}).Info("continuation: already enqueued by a previous delivery")
			return &EnqueueResult{MessageID: messageID(next), Payload: next, Duplicate: true}, nil
		case claim == domain.ClaimPending:
			logrus.WithFields(logrus.Fields{
				"request_id": next.RequestID,
				"phase":      next.Phase,
				"iteration":  next.Iteration,
			}).Warn("continuation: previous delivery did not confirm the publish, publishing again")
		}
	}

	id, err := s.publish(ctx, next, s.cfg.Delay)
	if err != nil {
		if useLedger {
			s.release(ctx, next)
		}
		return nil, err
	}

	if useLedger {
		s.confirm(ctx, next)
	}

	logrus.WithFields(logrus.Fields{
		"request_id": next.RequestID,
		"phase":      next.Phase,
		"iteration":  next.Iteration,
		"message_id": id,
		"delay":      s.cfg.Delay.String(),
	}).Info("continuation: enqueued")

	return &EnqueueResult{MessageID: id, Payload: next}, nil
}

// EnqueueInitial publica a primeira invocação (fase account) de uma requisição, sem atraso
func (s *ContinuationScheduler) EnqueueInitial(ctx context.Context, payload domain.ContinuationPayload) (string, error) {
	payload = payload.Clone()
	payload.Phase = domain.PhaseAccount
	payload.Iteration = 0
	payload.Cursor = ""
	payload.PreviousCursor = ""

	id, err := s.publish(ctx, payload, 0)
	if err != nil {
		return "", err
	}

	logrus.WithFields(logrus.Fields{
		"request_id": payload.RequestID,
		"account_id": payload.AccountID,
		"timeframe":  payload.Timeframe,
		"message_id": id,
	}).Info("continuation: request enqueued")

	return id, nil
}

func (s *ContinuationScheduler) publish(ctx context.Context, payload domain.ContinuationPayload, delay time.Duration) (string, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("continuation: encode payload: %w", err)
	}

	msg := domain.ContinuationMessage{
		ID:            messageID(payload),
		RequestID:     payload.RequestID,
		Phase:         payload.Phase,
		Iteration:     payload.Iteration,
		MaxDeliveries: s.cfg.DeliveryRetries,
		Payload:       body,
	}

	id, err := s.publisher.Publish(ctx, msg, delay)
	if err != nil {
		return "", fmt.Errorf("continuation: publish: %w", err)
	}

	return id, nil
}

func (s *ContinuationScheduler) validate(current, next domain.ContinuationPayload) error {
	if current.Iteration+1 >= s.cfg.MaxIterations {
		return newSafetyError(SafetyStopMaxIterations)
	}

	switch next.Phase {
	case domain.PhaseAccount:
		// A fase de conta só volta a si mesma, quando adiada
		if current.Phase != domain.PhaseAccount {
			return NewValidationError(fmt.Errorf("phase %q cannot be continued", next.Phase), ReasonInvalidPayload, "phase")
		}
	case domain.PhaseCampaigns:
		if next.Cursor != "" && !isPlausibleCursor(next.Cursor) {
			return NewValidationError(ErrMalformedCursor, ReasonMalformedCursor, "cursor")
		}
	case domain.PhaseAdSets:
		if len(next.CampaignIDs) == 0 {
			return NewValidationError(ErrMissingCampaignIDs, ReasonMissingCampaignIDs, "campaignIds")
		}
	case domain.PhaseAds:
		if len(next.AdSetIDs) == 0 {
			return NewValidationError(ErrMissingAdSetIDs, ReasonMissingAdSetIDs, "adsetIds")
		}
	default:
		return NewValidationError(fmt.Errorf("phase %q cannot be continued", next.Phase), ReasonInvalidPayload, "phase")
	}

	if next.Phase != current.Phase || next.Cursor != current.Cursor {
		return nil
	}

	switch {
	case next.Deferrals > s.maxDeferrals():
		return NewValidationError(ErrDeferralsExhausted, ReasonDeferralsExhausted, "cursor")
	case next.Deferrals > 0:
		return nil
	case next.Cursor != "":
		return newSafetyError(SafetyStopRepeatedCursor)
	}

	return nil
}

func (s *ContinuationScheduler) maxDeferrals() int {
	if s.cfg.MaxDeferrals > 0 {
		return s.cfg.MaxDeferrals
	}
	return defaultMaxDeferrals
}

// isSameCursorDeferral indica a reentrada adiada que ainda não saiu do cursor corrente
func isSameCursorDeferral(current, next domain.ContinuationPayload) bool {
	return next.Deferrals > 0 && next.Phase == current.Phase && next.Cursor == current.Cursor
}

func (s *ContinuationScheduler) release(ctx context.Context, next domain.ContinuationPayload) {
	if err := s.ledger.Release(ctx, next.RequestID, next.Phase, next.Cursor); err != nil {
		logrus.WithFields(logrus.Fields{
			"request_id": next.RequestID,
			"phase":      next.Phase,
			"error":      err.Error(),
		}).Warn("continuation: failed to release cursor")
	}
}

// confirm marca a reserva como publicada. Sem a marca, a próxima entrega da
// mesma iteração publica de novo em vez de supor que a fila já tem a mensagem.
func (s *ContinuationScheduler) confirm(ctx context.Context, next domain.ContinuationPayload) {
	if err := s.ledger.Confirm(ctx, next.RequestID, next.Phase, next.Cursor, next.Iteration); err != nil {
		logrus.WithFields(logrus.Fields{
			"request_id": next.RequestID,
			"phase":      next.Phase,
			"error":      err.Error(),
		}).Warn("continuation: failed to confirm cursor publish")
	}
}

// messageID é determinístico por requisição, fase e iteração
func messageID(p domain.ContinuationPayload) string {
	return fmt.Sprintf("%s:%s:%d", p.RequestID, p.Phase, p.Iteration)
}
