package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/vfg2006/traffic-sync-worker/pkg/apiErrors"
)

func TestRouter(t *testing.T) {
	var order []string
	mark := func(name string) func(http.Handler) http.Handler {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, name)
				next.ServeHTTP(w, r)
			})
		}
	}

	rt := New(WithRoutes(Route{
		Path:        "/v1/sync",
		Method:      http.MethodPost,
		Middlewares: []func(http.Handler) http.Handler{mark("primeiro"), mark("segundo")},
		Handler: http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusAccepted)
		}),
	}))

	tests := []struct {
		name       string
		method     string
		path       string
		wantStatus int
		wantBody   string
	}{
		{
			name:       "Rota registrada",
			method:     http.MethodPost,
			path:       "/v1/sync",
			wantStatus: http.StatusAccepted,
		},
		{
			name:       "Rota inexistente",
			method:     http.MethodGet,
			path:       "/v1/unknown",
			wantStatus: http.StatusNotFound,
			wantBody:   apiErrors.ErrRouteNotFound,
		},
		{
			name:       "Método não suportado",
			method:     http.MethodDelete,
			path:       "/v1/sync",
			wantStatus: http.StatusMethodNotAllowed,
			wantBody:   apiErrors.ErrMethodNotAllowed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			rt.ServeHTTP(rec, httptest.NewRequest(tt.method, tt.path, nil))

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.wantBody)
		})
	}

	assert.Equal(t, []string{"primeiro", "segundo"}, order)
}
