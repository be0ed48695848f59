package queue

import (
	"context"
	"errors"
	"strconv"
	"time"

	jsoniter "github.com/json-iterator/go"
	pkgerrors "github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/traffic-sync-worker/internal/domain"
	"github.com/vfg2006/traffic-sync-worker/pkg/utils"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Move para a lista pronta as mensagens cujo horário de entrega já passou.
// KEYS[1] = conjunto atrasado, KEYS[2] = lista pronta, ARGV[1] = agora (ms), ARGV[2] = limite
const promoteScript = `
local items = redis.call('ZRANGEBYSCORE', KEYS[1], '-inf', ARGV[1], 'LIMIT', 0, ARGV[2])
for _, item in ipairs(items) do
	redis.call('ZREM', KEYS[1], item)
	redis.call('LPUSH', KEYS[2], item)
end
return #items
`

// Stats é o tamanho de cada estrutura da fila
type Stats struct {
	Ready      int64 `json:"ready"`
	Delayed    int64 `json:"delayed"`
	DeadLetter int64 `json:"deadLetter"`
}

// RedisQueue é a fila de continuações: um sorted set para entregas atrasadas,
// uma lista para mensagens prontas e outra para mensagens mortas
type RedisQueue struct {
	client     RedisClient
	readyKey   string
	delayedKey string
	deadKey    string
	now        func() time.Time
}

func NewRedisQueue(client RedisClient, name string) *RedisQueue {
	return &RedisQueue{
		client:     client,
		readyKey:   name + ":ready",
		delayedKey: name + ":delayed",
		deadKey:    name + ":dead",
		now:        time.Now,
	}
}

// Publish enfileira a mensagem e retorna o seu id. Com delay > 0 a mensagem só
// fica disponível depois que o promotor a mover para a lista pronta.
func (q *RedisQueue) Publish(ctx context.Context, msg domain.ContinuationMessage, delay time.Duration) (string, error) {
	if msg.ID == "" {
		id, err := utils.GenerateRequestID()
		if err != nil {
			return "", pkgerrors.Wrap(err, "queue: generate message id")
		}
		msg.ID = id
	}
	msg.EnqueuedAt = q.now().UTC()

	data, err := json.Marshal(msg)
	if err != nil {
		return "", pkgerrors.Wrap(err, "queue: encode message")
	}

	if delay > 0 {
		score := float64(q.now().Add(delay).UnixMilli())
		if err := q.client.ZAdd(ctx, q.delayedKey, redis.Z{Score: score, Member: string(data)}).Err(); err != nil {
			return "", pkgerrors.Wrapf(err, "queue: schedule message %s", msg.ID)
		}
	} else {
		if err := q.client.LPush(ctx, q.readyKey, string(data)).Err(); err != nil {
			return "", pkgerrors.Wrapf(err, "queue: push message %s", msg.ID)
		}
	}

	logrus.WithFields(logrus.Fields{
		"message_id": msg.ID,
		"request_id": msg.RequestID,
		"phase":      msg.Phase,
		"iteration":  msg.Iteration,
		"attempt":    msg.Attempt,
		"delay":      delay.String(),
	}).Debug("queue: message published")

	return msg.ID, nil
}

// Promote move até limit mensagens vencidas para a lista pronta, de forma atômica
func (q *RedisQueue) Promote(ctx context.Context, limit int) (int64, error) {
	nowMillis := strconv.FormatInt(q.now().UnixMilli(), 10)

	moved, err := q.client.Eval(ctx, promoteScript, []string{q.delayedKey, q.readyKey}, nowMillis, limit).Int64()
	if err != nil {
		return 0, pkgerrors.Wrap(err, "queue: promote delayed messages")
	}

	return moved, nil
}

// Pop bloqueia até timeout esperando uma mensagem. Retorna nil, nil quando nada chegou.
func (q *RedisQueue) Pop(ctx context.Context, timeout time.Duration) (*domain.ContinuationMessage, error) {
	result, err := q.client.BRPop(ctx, timeout, q.readyKey).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, pkgerrors.Wrap(err, "queue: pop message")
	}

	// BRPop devolve [chave, valor]
	if len(result) < 2 || result[1] == "" {
		logrus.Warn("queue: BRPop returned empty message")
		return nil, nil
	}

	var msg domain.ContinuationMessage
	if err := json.Unmarshal([]byte(result[1]), &msg); err != nil {
		logrus.WithError(err).Error("queue: discarding undecodable message")
		if dlErr := q.client.LPush(ctx, q.deadKey, result[1]).Err(); dlErr != nil {
			logrus.WithError(dlErr).Error("queue: failed to dead-letter undecodable message")
		}
		return nil, nil
	}

	return &msg, nil
}

// Retry devolve a mensagem para a fila com backoff. Ao atingir MaxDeliveries a
// mensagem vai para a lista de mortas e Retry retorna true.
func (q *RedisQueue) Retry(ctx context.Context, msg domain.ContinuationMessage, cause error, delay time.Duration) (bool, error) {
	msg.Attempt++
	if cause != nil {
		msg.LastError = cause.Error()
	}

	if msg.MaxDeliveries > 0 && msg.Attempt >= msg.MaxDeliveries {
		return true, q.DeadLetter(ctx, msg)
	}

	_, err := q.Publish(ctx, msg, delay)
	return false, err
}

func (q *RedisQueue) DeadLetter(ctx context.Context, msg domain.ContinuationMessage) error {
	data, err := json.Marshal(msg)
	if err != nil {
		return pkgerrors.Wrap(err, "queue: encode message")
	}

	if err := q.client.LPush(ctx, q.deadKey, string(data)).Err(); err != nil {
		return pkgerrors.Wrapf(err, "queue: dead-letter message %s", msg.ID)
	}

	logrus.WithFields(logrus.Fields{
		"message_id": msg.ID,
		"request_id": msg.RequestID,
		"phase":      msg.Phase,
		"attempt":    msg.Attempt,
		"last_error": msg.LastError,
	}).Warn("queue: message moved to dead-letter list")

	return nil
}

func (q *RedisQueue) Stats(ctx context.Context) (Stats, error) {
	var stats Stats
	var err error

	if stats.Ready, err = q.client.LLen(ctx, q.readyKey).Result(); err != nil {
		return Stats{}, pkgerrors.Wrap(err, "queue: ready length")
	}
	if stats.Delayed, err = q.client.ZCard(ctx, q.delayedKey).Result(); err != nil {
		return Stats{}, pkgerrors.Wrap(err, "queue: delayed length")
	}
	if stats.DeadLetter, err = q.client.LLen(ctx, q.deadKey).Result(); err != nil {
		return Stats{}, pkgerrors.Wrap(err, "queue: dead-letter length")
	}

	return stats, nil
}

func (q *RedisQueue) Ping(ctx context.Context) error {
	return q.client.Ping(ctx).Err()
}
