package log

import (
	"context"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Fields é um alias para logrus.Fields
type Fields logrus.Fields

// Logger é a fachada usada pelo motor, pelo worker e pela API
type Logger interface {
	WithField(key string, value interface{}) Logger
	WithFields(fields Fields) Logger
	WithError(err error) Logger
	WithContext(ctx context.Context) Logger

	Debug(args ...interface{})
	Debugf(format string, args ...interface{})
	Info(args ...interface{})
	Infof(format string, args ...interface{})
	Warn(args ...interface{})
	Warnf(format string, args ...interface{})
	Error(args ...interface{})
	Errorf(format string, args ...interface{})
}

type contextKey string

// CorrelationIDKey guarda o ID de correlação no contexto
const CorrelationIDKey contextKey = "correlation_id"
const correlationIDField = "correlation_id"

// SyncContextKey guarda os campos da invocação de sincronização em andamento
const SyncContextKey contextKey = "sync_context"

// SyncContext identifica uma invocação do motor de sincronização
type SyncContext struct {
	RequestID string
	Phase     string
	Iteration int
}

// Campos mantidos no modo de desenvolvimento. Chaves com prefixo sync_ também passam.
var developmentFields = map[string]struct{}{
	correlationIDField: {},
	"method":           {},
	"path":             {},
	"status_code":      {},
	"duration_ms":      {},
	"error":            {},
	"request_id":       {},
	"phase":            {},
	"iteration":        {},
	"account_id":       {},
	"message_id":       {},
	"attempt":          {},
}

// logger embute a entry do logrus; os métodos de nível vêm dela
type logger struct {
	*logrus.Entry
}

// L é uma instância global de Logger para uso direto
var L Logger = newLogger()

func newLogger() Logger {
	return &logger{Entry: logrus.NewEntry(logrus.StandardLogger())}
}

// IsDevelopment retorna verdadeiro se estamos em ambiente de desenvolvimento
func IsDevelopment() bool {
	env := os.Getenv("APP_ENV")
	return env == "" || env == "development" || env == "dev"
}

// SetupTestLogger configura um logger compacto para testes
func SetupTestLogger() {
	logrus.SetFormatter(&logrus.TextFormatter{
		DisableTimestamp: true,
		PadLevelText:     true,
	})
	logrus.SetLevel(logrus.DebugLevel)

	L = newLogger()
}

func keepField(key string) bool {
	if !IsDevelopment() {
		return true
	}
	_, ok := developmentFields[key]
	return ok || strings.HasPrefix(key, "sync_")
}

func (l *logger) WithField(key string, value interface{}) Logger {
	if !keepField(key) {
		return l
	}
	return &logger{Entry: l.Entry.WithField(key, value)}
}

func (l *logger) WithFields(fields Fields) Logger {
	kept := make(logrus.Fields, len(fields))
	for k, v := range fields {
		if keepField(k) {
			kept[k] = v
		}
	}
	if len(kept) == 0 {
		return l
	}
	return &logger{Entry: l.Entry.WithFields(kept)}
}

func (l *logger) WithError(err error) Logger {
	return &logger{Entry: l.Entry.WithError(err)}
}

// WithContext anexa o ID de correlação e os campos da invocação, se houver
func (l *logger) WithContext(ctx context.Context) Logger {
	if ctx == nil {
		return l
	}

	var result Logger = l

	if correlationID := GetCorrelationID(ctx); correlationID != "" {
		result = result.WithField(correlationIDField, correlationID)
	}

	if syncCtx, ok := GetSyncContext(ctx); ok {
		result = result.WithFields(Fields{
			"request_id": syncCtx.RequestID,
			"phase":      syncCtx.Phase,
			"iteration":  syncCtx.Iteration,
		})
	}

	return result
}

// WithCorrelationID adiciona um ID de correlação ao contexto
func WithCorrelationID(ctx context.Context) (context.Context, string) {
	correlationID := uuid.New().String()
	return context.WithValue(ctx, CorrelationIDKey, correlationID), correlationID
}

// GetCorrelationID obtém o ID de correlação do contexto
func GetCorrelationID(ctx context.Context) string {
	if correlationID, ok := ctx.Value(CorrelationIDKey).(string); ok {
		return correlationID
	}
	return ""
}

// WithSyncContext anexa ao contexto os campos da invocação e garante um ID de correlação
func WithSyncContext(ctx context.Context, requestID, phase string, iteration int) context.Context {
	if GetCorrelationID(ctx) == "" {
		ctx, _ = WithCorrelationID(ctx)
	}
	return context.WithValue(ctx, SyncContextKey, SyncContext{
		RequestID: requestID,
		Phase:     phase,
		Iteration: iteration,
	})
}

// GetSyncContext obtém os campos da invocação, se houver
func GetSyncContext(ctx context.Context) (SyncContext, bool) {
	syncCtx, ok := ctx.Value(SyncContextKey).(SyncContext)
	return syncCtx, ok
}

// ForContext cria um logger com os campos do contexto
func ForContext(ctx context.Context) Logger {
	return L.WithContext(ctx)
}
