package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/traffic-sync-worker/internal/config"
)

const defaultPromoteBatch = 100

// Promoter move as continuações cujo atraso venceu para a fila pronta
type Promoter interface {
	Promote(ctx context.Context, limit int) (int64, error)
}

// ContinuationPromoterConfig representa a configuração do promotor de continuações
type ContinuationPromoterConfig struct {
	Interval  time.Duration
	BatchSize int
	Enabled   bool
}

// ContinuationPromoterService agenda a promoção periódica das continuações atrasadas
type ContinuationPromoterService struct {
	scheduler *gocron.Scheduler
	config    ContinuationPromoterConfig
	promoter  Promoter

	ctx            context.Context
	promoteRunning bool
	promoteMutex   sync.Mutex
	lastPromotedAt time.Time
	lastPromoted   int64
	totalPromoted  int64
	lastPromoteErr string
}

// NewContinuationPromoterService cria o serviço a partir da config global
func NewContinuationPromoterService(promoter Promoter, appConfig *config.Config) *ContinuationPromoterService {
	promoterConfig := ContinuationPromoterConfig{
		Interval:  appConfig.Sync.PromoterInterval,
		BatchSize: defaultPromoteBatch,
		Enabled:   !appConfig.Sync.Disabled,
	}

	logrus.WithFields(logrus.Fields{
		"interval":   promoterConfig.Interval.String(),
		"batch_size": promoterConfig.BatchSize,
		"enabled":    promoterConfig.Enabled,
	}).Info("Configuração do promotor de continuações carregada")

	return &ContinuationPromoterService{
		scheduler: gocron.NewScheduler(time.Local),
		config:    promoterConfig,
		promoter:  promoter,
		ctx:       context.Background(),
	}
}

// Start inicia o agendador
func (s *ContinuationPromoterService) Start(ctx context.Context) error {
	if !s.config.Enabled {
		logrus.Info("Promotor de continuações desabilitado por configuração")
		return nil
	}

	if s.config.Interval <= 0 {
		return fmt.Errorf("intervalo do promotor de continuações inválido: %s", s.config.Interval)
	}

	s.ctx = ctx
	logrus.WithField("interval", s.config.Interval.String()).Info("Iniciando promotor de continuações")

	_, err := s.scheduler.Every(s.config.Interval).SingletonMode().Do(func() {
		s.promoteDue()
	})
	if err != nil {
		return fmt.Errorf("erro ao agendar promotor de continuações: %w", err)
	}

	s.scheduler.StartAsync()

	go func() {
		<-ctx.Done()
		logrus.Info("Parando promotor de continuações")
		s.scheduler.Stop()
	}()

	return nil
}

// promoteDue promove lotes até não haver mais continuações vencidas
func (s *ContinuationPromoterService) promoteDue() int64 {
	s.promoteMutex.Lock()
	if s.promoteRunning {
		s.promoteMutex.Unlock()
		return 0
	}
	s.promoteRunning = true
	s.promoteMutex.Unlock()

	defer func() {
		s.promoteMutex.Lock()
		s.promoteRunning = false
		s.promoteMutex.Unlock()
	}()

	var total int64
	for {
		moved, err := s.promoter.Promote(s.ctx, s.config.BatchSize)
		if err != nil {
			logrus.WithError(err).Error("Erro ao promover continuações atrasadas")
			s.record(total, err)
			return total
		}

		total += moved
		if moved < int64(s.config.BatchSize) {
			break
		}
	}

	if total > 0 {
		logrus.WithField("promoted", total).Debug("Continuações promovidas para a fila pronta")
	}

	s.record(total, nil)
	return total
}

func (s *ContinuationPromoterService) record(promoted int64, err error) {
	s.promoteMutex.Lock()
	defer s.promoteMutex.Unlock()

	s.lastPromotedAt = time.Now()
	s.lastPromoted = promoted
	s.totalPromoted += promoted
	s.lastPromoteErr = ""
	if err != nil {
		s.lastPromoteErr = err.Error()
	}
}

// TriggerManualPromote promove imediatamente as continuações vencidas
func (s *ContinuationPromoterService) TriggerManualPromote() int64 {
	logrus.Info("Iniciando promoção manual de continuações")
	return s.promoteDue()
}

// GetStatus retorna o status atual do agendador
func (s *ContinuationPromoterService) GetStatus() map[string]any {
	s.promoteMutex.Lock()
	defer s.promoteMutex.Unlock()

	return map[string]any{
		"promoter_enabled":    s.config.Enabled,
		"promoter_interval":   s.config.Interval.String(),
		"promoter_batch_size": s.config.BatchSize,
		"last_promoted_at":    s.lastPromotedAt,
		"last_promoted":       s.lastPromoted,
		"total_promoted":      s.totalPromoted,
		"last_error":          s.lastPromoteErr,
	}
}
