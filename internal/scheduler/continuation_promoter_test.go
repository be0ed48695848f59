package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/vfg2006/traffic-sync-worker/internal/config"
	"github.com/vfg2006/traffic-sync-worker/internal/scheduler/mocks"
	"go.uber.org/mock/gomock"
)

func TestContinuationPromoterService_promoteDue(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockPromoter := mocks.NewMockPromoter(ctrl)

	tests := []struct {
		name     string
		setup    func()
		validate func(t *testing.T, service *ContinuationPromoterService, promoted int64)
	}{
		{
			name: "Nada vencido",
			setup: func() {
				mockPromoter.EXPECT().Promote(gomock.Any(), 10).Return(int64(0), nil)
			},
			validate: func(t *testing.T, service *ContinuationPromoterService, promoted int64) {
				assert.Zero(t, promoted)
				assert.Equal(t, "", service.GetStatus()["last_error"])
			},
		},
		{
			name: "Lote cheio repete até esvaziar",
			setup: func() {
				// Mock: dois lotes cheios e um parcial
				gomock.InOrder(
					mockPromoter.EXPECT().Promote(gomock.Any(), 10).Return(int64(10), nil),
					mockPromoter.EXPECT().Promote(gomock.Any(), 10).Return(int64(10), nil),
					mockPromoter.EXPECT().Promote(gomock.Any(), 10).Return(int64(3), nil),
				)
			},
			validate: func(t *testing.T, service *ContinuationPromoterService, promoted int64) {
				assert.Equal(t, int64(23), promoted)
				assert.Equal(t, int64(23), service.GetStatus()["total_promoted"])
			},
		},
		{
			name: "Erro do redis interrompe o ciclo",
			setup: func() {
				gomock.InOrder(
					mockPromoter.EXPECT().Promote(gomock.Any(), 10).Return(int64(10), nil),
					mockPromoter.EXPECT().Promote(gomock.Any(), 10).Return(int64(0), errors.New("redis down")),
				)
			},
			validate: func(t *testing.T, service *ContinuationPromoterService, promoted int64) {
				assert.Equal(t, int64(10), promoted)
				assert.Equal(t, "redis down", service.GetStatus()["last_error"])
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := &ContinuationPromoterService{
				config:   ContinuationPromoterConfig{Interval: time.Second, BatchSize: 10, Enabled: true},
				promoter: mockPromoter,
				ctx:      context.Background(),
			}

			tt.setup()
			promoted := service.TriggerManualPromote()
			tt.validate(t, service, promoted)
		})
	}
}

func TestContinuationPromoterService_StartDisabled(t *testing.T) {
	appConfig := &config.Config{Sync: config.Sync{PromoterInterval: time.Second, Disabled: true}}
	service := NewContinuationPromoterService(nil, appConfig)

	assert.NoError(t, service.Start(context.Background()))
	assert.Equal(t, false, service.GetStatus()["promoter_enabled"])
}

func TestContinuationPromoterService_StartInvalidInterval(t *testing.T) {
	service := NewContinuationPromoterService(nil, &config.Config{})

	assert.Error(t, service.Start(context.Background()))
}
