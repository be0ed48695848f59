package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/traffic-sync-worker/internal/config"
	"github.com/vfg2006/traffic-sync-worker/internal/domain"
)

const staleJobsBatch = 50

// StaleJobStore lista e encerra jobs que pararam de avançar
type StaleJobStore interface {
	ListStale(ctx context.Context, updatedBefore time.Time, limit int) ([]*domain.SyncJob, error)
	Fail(ctx context.Context, requestID string, message string) error
}

// StaleJobWatchdogConfig representa a configuração do vigia de jobs parados
type StaleJobWatchdogConfig struct {
	CronSchedule string
	StaleAfter   time.Duration
	Enabled      bool
}

// StaleJobWatchdogService falha os jobs em processamento sem atualização há mais de StaleAfter.
// Isso cobre cadeias que perderam a mensagem de continuação.
type StaleJobWatchdogService struct {
	scheduler *gocron.Scheduler
	config    StaleJobWatchdogConfig
	jobs      StaleJobStore
	now       func() time.Time

	checkRunning       bool
	checkMutex         sync.Mutex
	lastCheckStartedAt time.Time
	lastCheckFailed    int
}

func NewStaleJobWatchdogService(jobs StaleJobStore, appConfig *config.Config) *StaleJobWatchdogService {
	watchdogConfig := StaleJobWatchdogConfig{
		CronSchedule: appConfig.Sync.WatchdogCron,
		StaleAfter:   appConfig.Sync.StaleAfter,
		Enabled:      appConfig.Sync.WatchdogCron != "" && appConfig.Sync.StaleAfter > 0,
	}

	logrus.WithFields(logrus.Fields{
		"cron_schedule": watchdogConfig.CronSchedule,
		"stale_after":   watchdogConfig.StaleAfter.String(),
		"enabled":       watchdogConfig.Enabled,
	}).Info("Configuração do vigia de jobs parados carregada")

	return &StaleJobWatchdogService{
		scheduler: gocron.NewScheduler(time.Local),
		config:    watchdogConfig,
		jobs:      jobs,
		now:       time.Now,
	}
}

// Start inicia o agendador
func (s *StaleJobWatchdogService) Start(ctx context.Context) error {
	if !s.config.Enabled {
		logrus.Info("Vigia de jobs parados desabilitado por configuração")
		return nil
	}

	logrus.WithField("cron", s.config.CronSchedule).Info("Iniciando vigia de jobs parados")

	_, err := s.scheduler.Cron(s.config.CronSchedule).Do(func() {
		s.failStaleJobs(ctx)
	})
	if err != nil {
		return fmt.Errorf("erro ao agendar vigia de jobs parados: %w", err)
	}

	s.scheduler.StartAsync()

	go func() {
		<-ctx.Done()
		logrus.Info("Parando vigia de jobs parados")
		s.scheduler.Stop()
	}()

	return nil
}

// failStaleJobs marca como falhos os jobs parados e retorna quantos foram encerrados
func (s *StaleJobWatchdogService) failStaleJobs(ctx context.Context) int {
	s.checkMutex.Lock()
	if s.checkRunning {
		s.checkMutex.Unlock()
		logrus.Info("Verificação de jobs parados já em andamento, ignorando")
		return 0
	}
	s.checkRunning = true
	s.lastCheckStartedAt = s.now()
	s.checkMutex.Unlock()

	failed := 0
	defer func() {
		s.checkMutex.Lock()
		s.checkRunning = false
		s.lastCheckFailed = failed
		s.checkMutex.Unlock()
	}()

	cutoff := s.now().Add(-s.config.StaleAfter)

	staleJobs, err := s.jobs.ListStale(ctx, cutoff, staleJobsBatch)
	if err != nil {
		logrus.WithError(err).Error("Erro ao buscar jobs parados")
		return 0
	}

	if len(staleJobs) == 0 {
		logrus.Debug("Nenhum job parado encontrado")
		return 0
	}

	for _, job := range staleJobs {
		message := fmt.Sprintf("%s: sem progresso desde %s", domain.ReasonStale, job.UpdatedAt.Format(time.RFC3339))

		if err := s.jobs.Fail(ctx, job.RequestID, message); err != nil {
			logrus.WithFields(logrus.Fields{
				"request_id": job.RequestID,
				"error":      err.Error(),
			}).Error("Erro ao encerrar job parado")
			continue
		}

		logrus.WithFields(logrus.Fields{
			"request_id": job.RequestID,
			"account_id": job.AccountID,
			"progress":   job.Progress,
			"updated_at": job.UpdatedAt.Format(time.RFC3339),
		}).Warn("Job parado marcado como falho")

		failed++
	}

	return failed
}

// TriggerManualCheck executa a verificação imediatamente
func (s *StaleJobWatchdogService) TriggerManualCheck(ctx context.Context) int {
	logrus.Info("Iniciando verificação manual de jobs parados")
	return s.failStaleJobs(ctx)
}

// GetStatus retorna o status atual do agendador
func (s *StaleJobWatchdogService) GetStatus() map[string]any {
	s.checkMutex.Lock()
	defer s.checkMutex.Unlock()

	return map[string]any{
		"watchdog_enabled":      s.config.Enabled,
		"watchdog_cron":         s.config.CronSchedule,
		"watchdog_stale_after":  s.config.StaleAfter.String(),
		"last_check_started_at": s.lastCheckStartedAt,
		"last_check_failed":     s.lastCheckFailed,
	}
}
