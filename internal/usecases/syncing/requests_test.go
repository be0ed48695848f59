package syncing

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/traffic-sync-worker/internal/domain"
	"github.com/vfg2006/traffic-sync-worker/internal/usecases/syncing/mocks"
	"go.uber.org/mock/gomock"
)

func newTestRequests(ctrl *gomock.Controller) (*Requests, *mocks.MockJobStore, *mocks.MockPublisher, *fakeClock) {
	jobs := mocks.NewMockJobStore(ctrl)
	publisher := mocks.NewMockPublisher(ctrl)
	clock := newFakeClock()

	requests := NewRequests(jobs, NewContinuationScheduler(ContinuationConfig{MaxIterations: 500, Delay: 2 * time.Second, DeliveryRetries: 3}, publisher, nil))
	requests.newID = func() (string, error) { return "req-new", nil }
	requests.now = clock.Now

	return requests, jobs, publisher, clock
}

func TestRequests_Start(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	requests, mockJobs, mockPublisher, clock := newTestRequests(ctrl)

	tests := []struct {
		name      string
		accountID string
		timeframe domain.Timeframe
		setup     func()
		validate  func(t *testing.T, job *domain.SyncJob, err error)
	}{
		{
			name:      "Gatilho válido cria o job e publica a fase account",
			accountID: "123",
			setup: func() {
				mockJobs.EXPECT().
					EnsureJob(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, job *domain.SyncJob) (bool, error) {
						assert.Equal(t, "req-new", job.RequestID)
						assert.Equal(t, domain.JobStatusQueued, job.Status)
						assert.Equal(t, clock.Now(), job.CreatedAt)
						return true, nil
					})
				// Mock: a primeira invocação sai sem atraso
				mockPublisher.EXPECT().
					Publish(gomock.Any(), gomock.Any(), time.Duration(0)).
					DoAndReturn(func(_ context.Context, msg domain.ContinuationMessage, _ time.Duration) (string, error) {
						payload := decodeMessage(t, msg)
						assert.Equal(t, "req-new:account:0", msg.ID)
						assert.Equal(t, domain.PhaseAccount, payload.Phase)
						assert.Equal(t, domain.TimeframeLast30Days, payload.Timeframe)
						assert.Equal(t, "123", payload.AccountID)
						return msg.ID, nil
					})
			},
			validate: func(t *testing.T, job *domain.SyncJob, err error) {
				require.NoError(t, err)
				assert.Equal(t, "req-new", job.RequestID)
				assert.Equal(t, domain.TimeframeLast30Days, job.Timeframe)
			},
		},
		{
			name:      "Conta ausente",
			accountID: "",
			setup:     func() {},
			validate: func(t *testing.T, job *domain.SyncJob, err error) {
				assert.True(t, IsValidation(err))
				assert.Nil(t, job)
			},
		},
		{
			name:      "Período inválido",
			accountID: "123",
			timeframe: "last_3y",
			setup:     func() {},
			validate: func(t *testing.T, job *domain.SyncJob, err error) {
				assert.True(t, IsValidation(err))
			},
		},
		{
			name:      "Falha na fila marca o job como falho",
			accountID: "123",
			timeframe: domain.TimeframeLast7Days,
			setup: func() {
				mockJobs.EXPECT().EnsureJob(gomock.Any(), gomock.Any()).Return(true, nil)
				mockPublisher.EXPECT().Publish(gomock.Any(), gomock.Any(), gomock.Any()).Return("", errors.New("redis down"))
				mockJobs.EXPECT().Fail(gomock.Any(), "req-new", gomock.Any()).Return(nil)
			},
			validate: func(t *testing.T, job *domain.SyncJob, err error) {
				require.Error(t, err)
				assert.False(t, IsValidation(err))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setup()
			job, err := requests.Start(context.Background(), tt.accountID, tt.timeframe)
			tt.validate(t, job, err)
		})
	}
}

func TestRequests_Status(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	requests, mockJobs, _, clock := newTestRequests(ctrl)

	job := &domain.SyncJob{
		RequestID: "req-1",
		Status:    domain.JobStatusProcessing,
		Progress:  40,
		CreatedAt: clock.Now().Add(-2 * time.Minute),
	}

	mockJobs.EXPECT().GetJob(gomock.Any(), "req-1").Return(job, nil)
	mockJobs.EXPECT().GetJob(gomock.Any(), "req-x").Return(nil, nil)

	status, err := requests.Status(context.Background(), "req-1")
	require.NoError(t, err)
	require.NotNil(t, status.EstimatedRemaining)
	assert.Equal(t, 3*time.Minute, *status.EstimatedRemaining)

	_, err = requests.Status(context.Background(), "req-x")
	assert.ErrorIs(t, err, ErrJobNotFound)
}

func TestRequests_Cancel(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	requests, mockJobs, _, _ := newTestRequests(ctrl)

	tests := []struct {
		name     string
		setup    func()
		validate func(t *testing.T, job *domain.SyncJob, err error)
	}{
		{
			name: "Job em andamento é cancelado",
			setup: func() {
				mockJobs.EXPECT().Cancel(gomock.Any(), "req-1").Return(true, nil)
				mockJobs.EXPECT().GetJob(gomock.Any(), "req-1").Return(&domain.SyncJob{RequestID: "req-1", Status: domain.JobStatusCancelled}, nil)
			},
			validate: func(t *testing.T, job *domain.SyncJob, err error) {
				require.NoError(t, err)
				assert.Equal(t, domain.JobStatusCancelled, job.Status)
			},
		},
		{
			name: "Cancelar de novo não é erro",
			setup: func() {
				mockJobs.EXPECT().Cancel(gomock.Any(), "req-1").Return(false, nil)
				mockJobs.EXPECT().GetJob(gomock.Any(), "req-1").Return(&domain.SyncJob{RequestID: "req-1", Status: domain.JobStatusCancelled}, nil)
			},
			validate: func(t *testing.T, job *domain.SyncJob, err error) {
				require.NoError(t, err)
			},
		},
		{
			name: "Job concluído não pode ser cancelado",
			setup: func() {
				mockJobs.EXPECT().Cancel(gomock.Any(), "req-1").Return(false, nil)
				mockJobs.EXPECT().GetJob(gomock.Any(), "req-1").Return(&domain.SyncJob{RequestID: "req-1", Status: domain.JobStatusCompleted}, nil)
			},
			validate: func(t *testing.T, job *domain.SyncJob, err error) {
				assert.ErrorIs(t, err, ErrJobAlreadyClosed)
				assert.Equal(t, domain.JobStatusCompleted, job.Status)
			},
		},
		{
			name: "Job inexistente",
			setup: func() {
				mockJobs.EXPECT().Cancel(gomock.Any(), "req-1").Return(false, nil)
				mockJobs.EXPECT().GetJob(gomock.Any(), "req-1").Return(nil, nil)
			},
			validate: func(t *testing.T, job *domain.SyncJob, err error) {
				assert.ErrorIs(t, err, ErrJobNotFound)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setup()
			job, err := requests.Cancel(context.Background(), "req-1")
			tt.validate(t, job, err)
		})
	}
}
