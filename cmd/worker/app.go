package main

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/traffic-sync-worker/infrastructure/database/postgres"
	"github.com/vfg2006/traffic-sync-worker/infrastructure/integrator/meta"
	metadomain "github.com/vfg2006/traffic-sync-worker/infrastructure/integrator/meta/domain"
	"github.com/vfg2006/traffic-sync-worker/infrastructure/integrator/meta/metaclient"
	"github.com/vfg2006/traffic-sync-worker/infrastructure/queue"
	"github.com/vfg2006/traffic-sync-worker/infrastructure/repository"
	"github.com/vfg2006/traffic-sync-worker/internal/config"
	"github.com/vfg2006/traffic-sync-worker/internal/domain"
	"github.com/vfg2006/traffic-sync-worker/internal/usecases/syncing"
)

// app reúne as conexões e os componentes montados a partir da configuração
type app struct {
	cfg          *config.Config
	pg           *postgres.Connection
	redis        *redis.Client
	queue        *queue.RedisQueue
	jobs         repository.SyncJobRepository
	tokenManager *metaclient.TokenManager
	orchestrator *syncing.Orchestrator
	requests     *syncing.Requests
}

func newApp(ctx context.Context, cfg *config.Config) (*app, error) {
	pg, err := postgres.NewConnection(ctx, cfg.Database)
	if err != nil {
		return nil, err
	}
	logrus.Info("Conexão com PostgreSQL estabelecida com sucesso")

	redisClient, err := queue.NewRedisClient(ctx, cfg.Redis)
	if err != nil {
		_ = pg.Close()
		return nil, err
	}

	continuationQueue := queue.NewRedisQueue(redisClient, cfg.Redis.QueueName)
	ledger := queue.NewCursorLedger(redisClient, time.Duration(cfg.Redis.LedgerTTLHours)*time.Hour)

	jobs := repository.NewSyncJobRepository(pg)
	hierarchy := repository.NewHierarchyRepository(pg)

	var secrets config.SecretStorage
	if render := config.NewRenderClient(cfg); render != nil {
		secrets = render
	}

	tokenManager := metaclient.NewTokenManager(cfg, secrets)
	source := meta.New(cfg, metaclient.NewClient(cfg, tokenManager))

	fetcher := syncing.NewFetcher(syncing.FetcherConfig{
		PacingDelay:    cfg.Sync.PacingDelay,
		BaseBackoff:    cfg.Sync.BaseBackoff,
		MaxBackoff:     cfg.Sync.MaxBackoff,
		HardBackoffMin: cfg.Sync.HardBackoffMin,
		HardBackoffMax: cfg.Sync.HardBackoffMax,
		MaxRetries:     cfg.Sync.MaxRetries,
	}, meta.ClassifyError)

	insights := syncing.NewInsightsResolver(source, fetcher, syncing.InsightFields{
		Full:    metadomain.InsightFieldsFull,
		Reduced: metadomain.InsightFieldsReduced,
		Basic:   metadomain.InsightFieldsBasic,
		Minimal: metadomain.InsightFieldsMinimal,
	})

	upserter := syncing.NewUpserter(map[domain.EntityType]syncing.EntityWriter{
		domain.EntityAccount:  repository.NewAccountSnapshotRepository(pg),
		domain.EntityCampaign: repository.NewCampaignRepository(pg),
		domain.EntityAdSet:    repository.NewAdSetRepository(pg),
		domain.EntityAd:       repository.NewAdRepository(pg),
	})

	scheduler := syncing.NewContinuationScheduler(syncing.ContinuationConfig{
		MaxIterations:   cfg.Sync.MaxIterations,
		MaxDeferrals:    cfg.Sync.MaxDeferrals,
		Delay:           cfg.Sync.ContinuationDelay,
		DeliveryRetries: cfg.Sync.DeliveryRetries,
	}, continuationQueue, ledger)

	orchestrator := syncing.NewOrchestrator(syncing.Dependencies{
		Source:    source,
		Jobs:      jobs,
		IDs:       hierarchy,
		Fetcher:   fetcher,
		Insights:  insights,
		Upserter:  upserter,
		Scheduler: scheduler,
		Guard:     syncing.NewGuard(jobs, cfg.Sync.MaxIterations),
		Budget:    syncing.NewTimeBudget(cfg.Sync.MaxProcessingTime, cfg.Sync.SafetyBuffer, time.Now),
	}, syncing.Options{
		Disabled:          cfg.Sync.Disabled,
		PageSize:          cfg.Sync.PageSize,
		CampaignBatchSize: cfg.Sync.CampaignBatchSize,
		AdSetBatchSize:    cfg.Sync.AdSetBatchSize,
		StoreFallback:     cfg.Sync.StoreFallback,
	})

	return &app{
		cfg:          cfg,
		pg:           pg,
		redis:        redisClient,
		queue:        continuationQueue,
		jobs:         jobs,
		tokenManager: tokenManager,
		orchestrator: orchestrator,
		requests:     syncing.NewRequests(jobs, scheduler),
	}, nil
}

func (a *app) Close() {
	a.tokenManager.StopAutoRefresh()

	if err := a.redis.Close(); err != nil {
		logrus.WithError(err).Warn("Erro ao fechar conexão com Redis")
	}
	if err := a.pg.Close(); err != nil {
		logrus.WithError(err).Warn("Erro ao fechar conexão com PostgreSQL")
	}
}

func (a *app) queueStats(ctx context.Context) any {
	stats, err := a.queue.Stats(ctx)
	if err != nil {
		return map[string]string{"error": err.Error()}
	}
	return stats
}
