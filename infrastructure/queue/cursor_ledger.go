package queue

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	pkgerrors "github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
	"github.com/vfg2006/traffic-sync-worker/internal/domain"
)

// CursorLedger registra qual iteração reservou cada cursor de uma requisição/fase.
// Um cursor reservado por outra iteração indica que a paginação voltou para trás.
// O valor guardado é a iteração, com o sufixo publishedSuffix depois de Confirm.
type CursorLedger struct {
	client RedisClient
	ttl    time.Duration
}

func NewCursorLedger(client RedisClient, ttl time.Duration) *CursorLedger {
	return &CursorLedger{
		client: client,
		ttl:    ttl,
	}
}

const publishedSuffix = ":published"

func ledgerKey(requestID string, phase domain.Phase) string {
	return fmt.Sprintf("sync:cursors:%s:%s", requestID, phase)
}

func (l *CursorLedger) Claim(ctx context.Context, requestID string, phase domain.Phase, cursor string, iteration int) (domain.ClaimResult, error) {
	if cursor == "" {
		return domain.ClaimAccepted, nil
	}

	key := ledgerKey(requestID, phase)

	ok, err := l.client.HSetNX(ctx, key, cursor, iteration).Result()
	if err != nil {
		return domain.ClaimConflict, pkgerrors.Wrap(err, "ledger: claim cursor")
	}

	if ok {
		if l.ttl > 0 {
			if err := l.client.Expire(ctx, key, l.ttl).Err(); err != nil {
				return domain.ClaimAccepted, pkgerrors.Wrap(err, "ledger: set ttl")
			}
		}
		return domain.ClaimAccepted, nil
	}

	owner, err := l.client.HGet(ctx, key, cursor).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return domain.ClaimConflict, nil
		}
		return domain.ClaimConflict, pkgerrors.Wrap(err, "ledger: read cursor owner")
	}

	ownerIteration, published := strings.CutSuffix(owner, publishedSuffix)
	switch {
	case ownerIteration != strconv.Itoa(iteration):
		return domain.ClaimConflict, nil
	case published:
		return domain.ClaimDuplicate, nil
	}

	return domain.ClaimPending, nil
}

// Confirm registra que a mensagem da iteração dona do cursor foi publicada
func (l *CursorLedger) Confirm(ctx context.Context, requestID string, phase domain.Phase, cursor string, iteration int) error {
	if cursor == "" {
		return nil
	}

	value := strconv.Itoa(iteration) + publishedSuffix
	if err := l.client.HSet(ctx, ledgerKey(requestID, phase), cursor, value).Err(); err != nil {
		return pkgerrors.Wrap(err, "ledger: confirm cursor")
	}

	return nil
}

// Release desfaz uma reserva cuja publicação falhou
func (l *CursorLedger) Release(ctx context.Context, requestID string, phase domain.Phase, cursor string) error {
	if cursor == "" {
		return nil
	}

	if err := l.client.HDel(ctx, ledgerKey(requestID, phase), cursor).Err(); err != nil {
		return pkgerrors.Wrap(err, "ledger: release cursor")
	}

	return nil
}
