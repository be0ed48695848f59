package queue

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/traffic-sync-worker/infrastructure/queue/mocks"
	"github.com/vfg2006/traffic-sync-worker/internal/domain"
	"go.uber.org/mock/gomock"
)

func TestCursorLedger_Claim(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	client := mocks.NewMockRedisClient(ctrl)
	ledger := NewCursorLedger(client, 48*time.Hour)
	key := "sync:cursors:req-1:campaigns"

	tests := []struct {
		name     string
		cursor   string
		setup    func()
		expected domain.ClaimResult
	}{
		{
			name:     "Cursor vazio não usa o ledger",
			cursor:   "",
			setup:    func() {},
			expected: domain.ClaimAccepted,
		},
		{
			name:   "Cursor novo é reservado",
			cursor: "cursor-a",
			setup: func() {
				client.EXPECT().HSetNX(gomock.Any(), key, "cursor-a", 4).Return(redis.NewBoolResult(true, nil))
				client.EXPECT().Expire(gomock.Any(), key, 48*time.Hour).Return(redis.NewBoolResult(true, nil))
			},
			expected: domain.ClaimAccepted,
		},
		{
			name:   "Mesma iteração reentregue depois da publicação é duplicada",
			cursor: "cursor-a",
			setup: func() {
				client.EXPECT().HSetNX(gomock.Any(), key, "cursor-a", 4).Return(redis.NewBoolResult(false, nil))
				client.EXPECT().HGet(gomock.Any(), key, "cursor-a").Return(redis.NewStringResult("4:published", nil))
			},
			expected: domain.ClaimDuplicate,
		},
		{
			name:   "Mesma iteração sem publicação confirmada fica pendente",
			cursor: "cursor-a",
			setup: func() {
				client.EXPECT().HSetNX(gomock.Any(), key, "cursor-a", 4).Return(redis.NewBoolResult(false, nil))
				client.EXPECT().HGet(gomock.Any(), key, "cursor-a").Return(redis.NewStringResult("4", nil))
			},
			expected: domain.ClaimPending,
		},
		{
			name:   "Cursor publicado por outra iteração é conflito",
			cursor: "cursor-a",
			setup: func() {
				client.EXPECT().HSetNX(gomock.Any(), key, "cursor-a", 4).Return(redis.NewBoolResult(false, nil))
				client.EXPECT().HGet(gomock.Any(), key, "cursor-a").Return(redis.NewStringResult("2:published", nil))
			},
			expected: domain.ClaimConflict,
		},
		{
			name:   "Cursor de outra iteração é conflito",
			cursor: "cursor-a",
			setup: func() {
				client.EXPECT().HSetNX(gomock.Any(), key, "cursor-a", 4).Return(redis.NewBoolResult(false, nil))
				client.EXPECT().HGet(gomock.Any(), key, "cursor-a").Return(redis.NewStringResult("2", nil))
			},
			expected: domain.ClaimConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setup()

			result, err := ledger.Claim(context.Background(), "req-1", domain.PhaseCampaigns, tt.cursor, 4)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestCursorLedger_Release(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	client := mocks.NewMockRedisClient(ctrl)
	ledger := NewCursorLedger(client, time.Hour)

	client.EXPECT().HDel(gomock.Any(), "sync:cursors:req-1:ads", "cursor-a").Return(redis.NewIntResult(1, nil))

	require.NoError(t, ledger.Release(context.Background(), "req-1", domain.PhaseAds, "cursor-a"))
	require.NoError(t, ledger.Release(context.Background(), "req-1", domain.PhaseAds, ""))
}

func TestCursorLedger_Confirm(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	client := mocks.NewMockRedisClient(ctrl)
	ledger := NewCursorLedger(client, time.Hour)

	client.EXPECT().HSet(gomock.Any(), "sync:cursors:req-1:adsets", "cursor-a", "7:published").Return(redis.NewIntResult(0, nil))

	require.NoError(t, ledger.Confirm(context.Background(), "req-1", domain.PhaseAdSets, "cursor-a", 7))
	require.NoError(t, ledger.Confirm(context.Background(), "req-1", domain.PhaseAdSets, "", 7))
}
