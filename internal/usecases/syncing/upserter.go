package syncing

import (
	"context"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/traffic-sync-worker/internal/domain"
)

// Upserter encaminha cada snapshot para o writer do seu tipo
type Upserter struct {
	writers map[domain.EntityType]EntityWriter
}

func NewUpserter(writers map[domain.EntityType]EntityWriter) *Upserter {
	return &Upserter{
		writers: writers,
	}
}

// Upsert grava a entidade pela chave natural. Reaplicar o mesmo snapshot não
// altera o estado. Falhas voltam como PersistenceError.
func (u *Upserter) Upsert(ctx context.Context, entity domain.Entity) (bool, error) {
	writer, ok := u.writers[entity.EntityType()]
	if !ok {
		return false, &PersistenceError{EntityType: entity.EntityType(), EntityID: entity.NaturalID(), Err: ErrNoWriter}
	}

	changed, err := writer.Upsert(ctx, entity)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"entity_type": entity.EntityType(),
			"entity_id":   entity.NaturalID(),
			"error":       err.Error(),
		}).Error("upsert: failed to persist entity")
		return false, &PersistenceError{EntityType: entity.EntityType(), EntityID: entity.NaturalID(), Err: err}
	}

	if !changed {
		logrus.WithFields(logrus.Fields{
			"entity_type": entity.EntityType(),
			"entity_id":   entity.NaturalID(),
		}).Debug("upsert: entity unchanged")
	}

	return changed, nil
}
