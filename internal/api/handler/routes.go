package handler

import (
	"net/http"

	"github.com/vfg2006/traffic-sync-worker/internal/api/handler/router"
)

func Healthcheck(deps HealthDependencies) []router.Route {
	return []router.Route{
		{
			Path:    "/healthcheck",
			Method:  http.MethodGet,
			Handler: HealthcheckHandler(deps),
		},
	}
}

func Sync(service SyncRequester) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/sync",
			Method:  http.MethodPost,
			Handler: TriggerSync(service),
		},
		{
			Path:    "/v1/sync/:requestId",
			Method:  http.MethodGet,
			Handler: GetSyncStatus(service),
		},
		{
			Path:    "/v1/sync/:requestId/cancel",
			Method:  http.MethodPost,
			Handler: CancelSync(service),
		},
	}
}

func CronJobs(services CronJobServices) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/cron/:type/run",
			Method:  http.MethodPost,
			Handler: RunCronJob(services),
		},
		{
			Path:    "/v1/cron",
			Method:  http.MethodGet,
			Handler: GetCronStatus(services),
		},
	}
}
