package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/vfg2006/traffic-sync-worker/infrastructure/repository/mocks"
	"github.com/vfg2006/traffic-sync-worker/internal/config"
	"github.com/vfg2006/traffic-sync-worker/internal/domain"
	"go.uber.org/mock/gomock"
)

func TestStaleJobWatchdogService_failStaleJobs(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockJobs := mocks.NewMockSyncJobRepository(ctrl)

	now := time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)
	cutoff := now.Add(-30 * time.Minute)

	stale := []*domain.SyncJob{
		{RequestID: "req-1", AccountID: "123", Status: domain.JobStatusProcessing, Progress: 60, UpdatedAt: now.Add(-2 * time.Hour)},
		{RequestID: "req-2", AccountID: "456", Status: domain.JobStatusProcessing, Progress: 40, UpdatedAt: now.Add(-45 * time.Minute)},
	}

	tests := []struct {
		name     string
		setup    func()
		validate func(t *testing.T, failed int)
	}{
		{
			name: "Nenhum job parado",
			setup: func() {
				mockJobs.EXPECT().ListStale(gomock.Any(), cutoff, staleJobsBatch).Return(nil, nil)
			},
			validate: func(t *testing.T, failed int) {
				assert.Zero(t, failed)
			},
		},
		{
			name: "Jobs parados são marcados como falhos",
			setup: func() {
				mockJobs.EXPECT().ListStale(gomock.Any(), cutoff, staleJobsBatch).Return(stale, nil)
				mockJobs.EXPECT().
					Fail(gomock.Any(), "req-1", gomock.Any()).
					DoAndReturn(func(_ context.Context, _ string, message string) error {
						assert.Contains(t, message, domain.ReasonStale)
						return nil
					})
				mockJobs.EXPECT().Fail(gomock.Any(), "req-2", gomock.Any()).Return(nil)
			},
			validate: func(t *testing.T, failed int) {
				assert.Equal(t, 2, failed)
			},
		},
		{
			name: "Erro em um job não impede os demais",
			setup: func() {
				mockJobs.EXPECT().ListStale(gomock.Any(), gomock.Any(), gomock.Any()).Return(stale, nil)
				mockJobs.EXPECT().Fail(gomock.Any(), "req-1", gomock.Any()).Return(errors.New("db down"))
				mockJobs.EXPECT().Fail(gomock.Any(), "req-2", gomock.Any()).Return(nil)
			},
			validate: func(t *testing.T, failed int) {
				assert.Equal(t, 1, failed)
			},
		},
		{
			name: "Erro ao listar",
			setup: func() {
				mockJobs.EXPECT().ListStale(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, errors.New("db down"))
			},
			validate: func(t *testing.T, failed int) {
				assert.Zero(t, failed)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := &StaleJobWatchdogService{
				config: StaleJobWatchdogConfig{CronSchedule: "*/10 * * * *", StaleAfter: 30 * time.Minute, Enabled: true},
				jobs:   mockJobs,
				now:    func() time.Time { return now },
			}

			tt.setup()
			failed := service.TriggerManualCheck(context.Background())
			tt.validate(t, failed)
			assert.Equal(t, failed, service.GetStatus()["last_check_failed"])
		})
	}
}

func TestNewStaleJobWatchdogService_Disabled(t *testing.T) {
	service := NewStaleJobWatchdogService(nil, &config.Config{Sync: config.Sync{WatchdogCron: "*/10 * * * *"}})

	assert.NoError(t, service.Start(context.Background()))
	assert.Equal(t, false, service.GetStatus()["watchdog_enabled"])
}
