package handler

import (
	"context"
	"net/http"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const healthcheckTimeout = 2 * time.Second

// Pinger é uma dependência verificada no healthcheck (postgres, redis)
type Pinger func(ctx context.Context) error

// HealthDependencies reúne o que o healthcheck verifica e o que ele só reporta
type HealthDependencies struct {
	Pings    map[string]Pinger
	Statuses map[string]func() any
}

type healthResponse struct {
	Status     string            `json:"status"`
	Time       time.Time         `json:"time"`
	Checks     map[string]string `json:"checks,omitempty"`
	Components map[string]any    `json:"components,omitempty"`
}

func HealthcheckHandler(deps HealthDependencies) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), healthcheckTimeout)
		defer cancel()

		response := healthResponse{
			Status: "ok",
			Time:   time.Now(),
			Checks: make(map[string]string, len(deps.Pings)),
		}
		status := http.StatusOK

		for name, ping := range deps.Pings {
			if err := ping(ctx); err != nil {
				logrus.WithFields(logrus.Fields{
					"dependency": name,
					"error":      err.Error(),
				}).Warn("healthcheck: dependency unavailable")
				response.Checks[name] = err.Error()
				response.Status = "degraded"
				status = http.StatusServiceUnavailable
				continue
			}
			response.Checks[name] = "ok"
		}

		if len(deps.Statuses) > 0 {
			response.Components = make(map[string]any, len(deps.Statuses))
			for name, statusOf := range deps.Statuses {
				response.Components[name] = statusOf()
			}
		}

		writeJSON(w, status, response)
	})
}
