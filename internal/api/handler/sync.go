package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/julienschmidt/httprouter"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/traffic-sync-worker/internal/domain"
	"github.com/vfg2006/traffic-sync-worker/internal/usecases/syncing"
	"github.com/vfg2006/traffic-sync-worker/pkg/apiErrors"
)

// SyncRequester é o caso de uso por trás das rotas de sincronização
type SyncRequester interface {
	Start(ctx context.Context, accountID string, timeframe domain.Timeframe) (*domain.SyncJob, error)
	Status(ctx context.Context, requestID string) (*syncing.RequestStatus, error)
	Cancel(ctx context.Context, requestID string) (*domain.SyncJob, error)
}

type triggerSyncRequest struct {
	AccountID string           `json:"accountId"`
	Timeframe domain.Timeframe `json:"timeframe"`
}

type triggerSyncResponse struct {
	RequestID string           `json:"requestId"`
	Status    domain.JobStatus `json:"status"`
	AccountID string           `json:"accountId"`
	Timeframe domain.Timeframe `json:"timeframe"`
}

type syncStatusResponse struct {
	*domain.SyncJob
	EstimatedRemainingSeconds *int64 `json:"estimatedRemainingSeconds,omitempty"`
}

// TriggerSync aceita um novo gatilho e responde 202 com o requestId
func TriggerSync(service SyncRequester) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req triggerSyncRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Corpo da requisição inválido", nil)
			return
		}

		if req.AccountID == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "accountId é obrigatório", nil)
			return
		}

		job, err := service.Start(r.Context(), req.AccountID, req.Timeframe)
		if err != nil {
			logrus.WithFields(logrus.Fields{
				"account_id": req.AccountID,
				"timeframe":  req.Timeframe,
				"error":      err.Error(),
			}).Error("Erro ao iniciar sincronização")

			var validationErr *syncing.ValidationError
			if errors.As(err, &validationErr) {
				apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, validationErr.Error(), map[string]string{"reason": validationErr.Reason})
				return
			}

			apiErrors.WriteError(w, apiErrors.ErrCommunication, "Erro ao enfileirar sincronização", nil)
			return
		}

		writeJSON(w, http.StatusAccepted, triggerSyncResponse{
			RequestID: job.RequestID,
			Status:    job.Status,
			AccountID: job.AccountID,
			Timeframe: job.Timeframe,
		})
	})
}

// GetSyncStatus retorna a linha de status do job, com a estimativa de tempo restante
func GetSyncStatus(service SyncRequester) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := httprouter.ParamsFromContext(r.Context()).ByName("requestId")

		status, err := service.Status(r.Context(), requestID)
		if err != nil {
			writeSyncError(w, requestID, err)
			return
		}

		response := syncStatusResponse{SyncJob: status.Job}
		if status.EstimatedRemaining != nil {
			seconds := int64(status.EstimatedRemaining.Round(time.Second) / time.Second)
			response.EstimatedRemainingSeconds = &seconds
		}

		writeJSON(w, http.StatusOK, response)
	})
}

// CancelSync liga a flag de cancelamento da requisição
func CancelSync(service SyncRequester) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := httprouter.ParamsFromContext(r.Context()).ByName("requestId")

		job, err := service.Cancel(r.Context(), requestID)
		if err != nil {
			writeSyncError(w, requestID, err)
			return
		}

		writeJSON(w, http.StatusOK, job)
	})
}

func writeSyncError(w http.ResponseWriter, requestID string, err error) {
	switch {
	case errors.Is(err, syncing.ErrJobNotFound):
		apiErrors.WriteError(w, apiErrors.ErrSyncJobNotFound, "Sincronização não encontrada", nil)
	case errors.Is(err, syncing.ErrJobAlreadyClosed):
		apiErrors.WriteError(w, apiErrors.ErrSyncJobClosed, "Sincronização já terminada", nil)
	default:
		logrus.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Erro ao consultar sincronização")
		apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao consultar sincronização", nil)
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(body); err != nil {
		logrus.WithError(err).Warn("Erro ao codificar resposta")
	}
}
