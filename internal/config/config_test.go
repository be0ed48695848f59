package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func validSync() Sync {
	return Sync{
		MaxProcessingTime: 80 * time.Second,
		SafetyBuffer:      5 * time.Second,
		MaxIterations:     500,
		MaxDeferrals:      3,
		PageSize:          100,
		CampaignBatchSize: 10,
		AdSetBatchSize:    10,
		MaxRetries:        3,
		HardBackoffMin:    60 * time.Second,
		HardBackoffMax:    300 * time.Second,
	}
}

func TestSync_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(s *Sync)
		wantErr string
	}{
		{
			name:   "Configuração padrão",
			mutate: func(s *Sync) {},
		},
		{
			name:    "Orçamento zerado",
			mutate:  func(s *Sync) { s.MaxProcessingTime = 0 },
			wantErr: "sync_max_processing_time",
		},
		{
			name:    "Margem maior que o orçamento",
			mutate:  func(s *Sync) { s.SafetyBuffer = 90 * time.Second },
			wantErr: "sync_safety_buffer",
		},
		{
			name:    "Limite de iterações inválido",
			mutate:  func(s *Sync) { s.MaxIterations = 1 },
			wantErr: "sync_max_iterations",
		},
		{
			name:    "Sem adiamentos no mesmo cursor",
			mutate:  func(s *Sync) { s.MaxDeferrals = 0 },
			wantErr: "sync_max_deferrals",
		},
		{
			name:    "Lote de campanhas zerado",
			mutate:  func(s *Sync) { s.CampaignBatchSize = 0 },
			wantErr: "lote",
		},
		{
			name:    "Backoff forte invertido",
			mutate:  func(s *Sync) { s.HardBackoffMax = 10 * time.Second },
			wantErr: "sync_hard_backoff_max",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := validSync()
			tt.mutate(&s)

			err := s.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestNewRenderClient(t *testing.T) {
	assert.Nil(t, NewRenderClient(&Config{}))

	client := NewRenderClient(&Config{Render: Render{APIKey: "key", ServiceID: "srv-1"}})
	if assert.NotNil(t, client) {
		assert.Equal(t, "https://api.render.com/v1", client.BaseURL)
	}
}
