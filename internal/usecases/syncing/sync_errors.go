package syncing

import (
	"errors"
	"fmt"

	"github.com/vfg2006/traffic-sync-worker/internal/domain"
)

// Erros específicos do motor de sincronização
var (
	// Erros de validação de payload
	ErrMissingCampaignIDs = errors.New("campaignIds is required for phase adsets")
	ErrMissingAdSetIDs    = errors.New("adsetIds is required for phase ads")
	ErrMalformedCursor    = errors.New("malformed cursor")
	ErrRepeatedCursor     = errors.New("cursor already used by a previous invocation")
	ErrMaxIterations      = errors.New("max iterations reached")
	ErrDeferralsExhausted = errors.New("too many deferrals without leaving the cursor")

	// ErrTimeBudgetExhausted: a chamada à fonte não cabe no tempo restante da invocação
	ErrTimeBudgetExhausted = errors.New("time budget exhausted")

	// Erros de infraestrutura
	ErrNoWriter = errors.New("no writer registered for entity type")
)

// Motivos de rejeição de um payload
const (
	ReasonInvalidPayload     = "invalid_payload"
	ReasonMalformedCursor    = "malformed_cursor"
	ReasonMissingCampaignIDs = "missing_campaign_ids"
	ReasonMissingAdSetIDs    = "missing_adset_ids"
	ReasonDeferralsExhausted = "deferrals_exhausted"
)

// ValidationError indica um payload rejeitado. Quando Verdict não é SafetyProceed a
// rejeição é uma parada de segurança e o job termina como concluído.
type ValidationError struct {
	Err     error
	Reason  string
	Field   string
	Verdict SafetyVerdict
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation: %s (%s): %s", e.Reason, e.Field, e.Err.Error())
	}
	return fmt.Sprintf("validation: %s: %s", e.Reason, e.Err.Error())
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

func NewValidationError(err error, reason, field string) *ValidationError {
	return &ValidationError{
		Err:     err,
		Reason:  reason,
		Field:   field,
		Verdict: SafetyProceed,
	}
}

func newSafetyError(verdict SafetyVerdict) *ValidationError {
	err := ErrMaxIterations
	field := "iteration"
	if verdict == SafetyStopRepeatedCursor {
		err = ErrRepeatedCursor
		field = "cursor"
	}

	return &ValidationError{
		Err:     err,
		Reason:  verdict.Reason(),
		Field:   field,
		Verdict: verdict,
	}
}

// FetchErrorKind classifica a falha definitiva de uma chamada à fonte
type FetchErrorKind int

const (
	// FetchRateLimited: o contexto terminou enquanto aguardava o backoff
	FetchRateLimited FetchErrorKind = iota
	FetchRateLimitExhausted
	FetchNonRetryable
	FetchNotFound
)

func (k FetchErrorKind) String() string {
	switch k {
	case FetchRateLimited:
		return "rate_limited"
	case FetchRateLimitExhausted:
		return "rate_limit_exhausted"
	case FetchNotFound:
		return "not_found"
	}
	return "non_retryable"
}

// FetchError é a falha final de uma chamada depois das tentativas do fetcher
type FetchError struct {
	Kind    FetchErrorKind
	Op      string
	Retries int
	Err     error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch %s: %s after %d retries: %v", e.Op, e.Kind, e.Retries, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// EntityNotFoundError indica uma entidade removida entre a listagem e a consulta
type EntityNotFoundError struct {
	Type domain.EntityType
	ID   string
	Err  error
}

func (e *EntityNotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Type, e.ID)
}

func (e *EntityNotFoundError) Unwrap() error {
	return e.Err
}

// PersistenceError embrulha a falha de gravação de uma entidade
type PersistenceError struct {
	EntityType domain.EntityType
	EntityID   string
	Err        error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persist %s %s: %v", e.EntityType, e.EntityID, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

// IsRateLimitExhausted indica que o fetcher esgotou as tentativas por rate limit
func IsRateLimitExhausted(err error) bool {
	var fetchErr *FetchError
	return errors.As(err, &fetchErr) && fetchErr.Kind == FetchRateLimitExhausted
}

// IsOutOfTime indica que o fetcher parou para não estourar o orçamento da invocação
func IsOutOfTime(err error) bool {
	return errors.Is(err, ErrTimeBudgetExhausted)
}

// IsValidation indica um payload rejeitado
func IsValidation(err error) bool {
	var validationErr *ValidationError
	return errors.As(err, &validationErr)
}

// IsSafetyLimit indica uma parada de segurança (limite de iterações ou cursor repetido)
func IsSafetyLimit(err error) (SafetyVerdict, bool) {
	var validationErr *ValidationError
	if errors.As(err, &validationErr) && validationErr.Verdict != SafetyProceed {
		return validationErr.Verdict, true
	}
	return SafetyProceed, false
}

// isSkippable indica erros de fetch que afetam apenas uma entidade
func isSkippable(err error) bool {
	var fetchErr *FetchError
	if !errors.As(err, &fetchErr) {
		return false
	}
	return fetchErr.Kind == FetchNonRetryable || fetchErr.Kind == FetchNotFound
}
