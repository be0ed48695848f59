package syncing

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/traffic-sync-worker/internal/domain"
	"github.com/vfg2006/traffic-sync-worker/internal/usecases/syncing/mocks"
	"go.uber.org/mock/gomock"
)

func TestUpserter_Upsert(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockWriter := mocks.NewMockEntityWriter(ctrl)
	upserter := NewUpserter(map[domain.EntityType]EntityWriter{
		domain.EntityCampaign: mockWriter,
	})

	campaign := &domain.Campaign{ID: "c1", Name: "Campanha"}

	t.Run("Reaplicar o mesmo snapshot não altera o estado", func(t *testing.T) {
		// Mock: a primeira gravação altera a linha e a segunda encontra o mesmo fingerprint
		gomock.InOrder(
			mockWriter.EXPECT().Upsert(gomock.Any(), campaign).Return(true, nil),
			mockWriter.EXPECT().Upsert(gomock.Any(), campaign).Return(false, nil),
		)

		changed, err := upserter.Upsert(context.Background(), campaign)
		require.NoError(t, err)
		assert.True(t, changed)

		changed, err = upserter.Upsert(context.Background(), campaign)
		require.NoError(t, err)
		assert.False(t, changed)
	})

	t.Run("Falha do writer vira PersistenceError", func(t *testing.T) {
		mockWriter.EXPECT().Upsert(gomock.Any(), campaign).Return(false, errors.New("duplicate key"))

		_, err := upserter.Upsert(context.Background(), campaign)

		var persistenceErr *PersistenceError
		require.ErrorAs(t, err, &persistenceErr)
		assert.Equal(t, domain.EntityCampaign, persistenceErr.EntityType)
		assert.Equal(t, "c1", persistenceErr.EntityID)
	})

	t.Run("Tipo sem writer registrado", func(t *testing.T) {
		_, err := upserter.Upsert(context.Background(), &domain.Ad{ID: "ad1"})
		assert.ErrorIs(t, err, ErrNoWriter)
	})
}
