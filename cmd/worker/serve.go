package main

import (
	"context"
	"os/signal"
	"sync"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/vfg2006/traffic-sync-worker/internal/api"
	"github.com/vfg2006/traffic-sync-worker/internal/api/handler"
	"github.com/vfg2006/traffic-sync-worker/internal/scheduler"
	"github.com/vfg2006/traffic-sync-worker/internal/worker"
)

func newServeCommand(opts *rootOptions) *cobra.Command {
	var withoutAPI bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Consome a fila de continuações e expõe a API HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			return serve(ctx, opts, !withoutAPI)
		},
	}

	cmd.Flags().BoolVar(&withoutAPI, "no-api", false, "não sobe o servidor HTTP, apenas o consumer e os schedulers")

	return cmd
}

func serve(ctx context.Context, opts *rootOptions, withAPI bool) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	a, err := newApp(ctx, opts.cfg)
	if err != nil {
		return err
	}
	defer a.Close()

	go a.tokenManager.StartAutoRefresh(ctx)

	promoter := scheduler.NewContinuationPromoterService(a.queue, opts.cfg)
	if err := promoter.Start(ctx); err != nil {
		return err
	}

	watchdog := scheduler.NewStaleJobWatchdogService(a.jobs, opts.cfg)
	if err := watchdog.Start(ctx); err != nil {
		return err
	}

	consumer := worker.NewConsumer(a.queue, a.orchestrator, a.jobs, worker.ConsumerConfigFrom(opts.cfg.Sync))

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		consumer.Start(ctx)
	}()

	var serverErr error
	if withAPI {
		server := api.New(opts.cfg, a.requests, handler.CronJobServices{
			ContinuationPromoterService: promoter,
			StaleJobWatchdogService:     watchdog,
		}, handler.HealthDependencies{
			Pings: map[string]handler.Pinger{
				"postgres": a.pg.Ping,
				"redis":    a.queue.Ping,
			},
			Statuses: map[string]func() any{
				"consumer": func() any { return consumer.Status() },
				"queue":    func() any { return a.queueStats(ctx) },
			},
		})

		serverErr = server.Run(ctx)
		cancel()
	}

	<-ctx.Done()
	logrus.Info("Sinal de encerramento recebido, aguardando workers...")
	wg.Wait()
	logrus.Info("Worker encerrado")

	return serverErr
}
