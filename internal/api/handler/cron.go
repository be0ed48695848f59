package handler

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/traffic-sync-worker/internal/scheduler"
	"github.com/vfg2006/traffic-sync-worker/pkg/apiErrors"
)

// CronJobType define o tipo de cron job que será executada
const (
	CronJobTypePromoter = "promoter"
	CronJobTypeWatchdog = "watchdog"
)

// CronJobServices contém os serviços de cron necessários para executar manualmente
type CronJobServices struct {
	ContinuationPromoterService *scheduler.ContinuationPromoterService
	StaleJobWatchdogService     *scheduler.StaleJobWatchdogService
}

// RunCronJob executa manualmente uma cron job específica
func RunCronJob(services CronJobServices) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - RunCronJob")

		cronType := httprouter.ParamsFromContext(r.Context()).ByName("type")
		if cronType == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "Tipo de cron job não especificado", nil)
			return
		}

		response := map[string]any{
			"message": "Cron job executada com sucesso",
			"type":    cronType,
		}

		switch cronType {
		case CronJobTypePromoter:
			if services.ContinuationPromoterService == nil {
				apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Promotor de continuações não disponível", nil)
				return
			}
			response["promoted"] = services.ContinuationPromoterService.TriggerManualPromote()

		case CronJobTypeWatchdog:
			if services.StaleJobWatchdogService == nil {
				apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Vigia de jobs parados não disponível", nil)
				return
			}
			response["failed"] = services.StaleJobWatchdogService.TriggerManualCheck(r.Context())

		default:
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Tipo de cron job inválido. Valores aceitos: promoter, watchdog", nil)
			return
		}

		writeJSON(w, http.StatusOK, response)
	})
}

// GetCronStatus retorna o status das cron jobs
func GetCronStatus(services CronJobServices) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, services.Status())
	})
}

// Status reúne o status de cada agendador disponível
func (s CronJobServices) Status() map[string]any {
	status := map[string]any{}
	if s.ContinuationPromoterService != nil {
		status[CronJobTypePromoter] = s.ContinuationPromoterService.GetStatus()
	}
	if s.StaleJobWatchdogService != nil {
		status[CronJobTypeWatchdog] = s.StaleJobWatchdogService.GetStatus()
	}
	return status
}
