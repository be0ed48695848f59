package migration

import (
	"context"
	"database/sql"
	"time"

	pkgerrors "github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/traffic-sync-worker/infrastructure/database/postgres"
)

// Statements cria o schema usado pela sincronização. Todas as instruções são idempotentes.
var Statements = []string{
	`CREATE TABLE IF NOT EXISTS sync_jobs (
		request_id     VARCHAR(64) PRIMARY KEY,
		account_id     VARCHAR(64) NOT NULL,
		timeframe      VARCHAR(32) NOT NULL,
		status         VARCHAR(16) NOT NULL,
		progress       INTEGER NOT NULL DEFAULT 0,
		error_message  TEXT,
		result_summary JSONB,
		created_at     TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at     TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		completed_at   TIMESTAMPTZ
	)`,
	`CREATE INDEX IF NOT EXISTS sync_jobs_status_updated_at_idx ON sync_jobs (status, updated_at)`,
	`CREATE TABLE IF NOT EXISTS meta_ad_accounts (
		id            VARCHAR(64) PRIMARY KEY,
		name          TEXT NOT NULL,
		currency      VARCHAR(8),
		timezone      VARCHAR(64),
		status        VARCHAR(32),
		amount_spent  BIGINT,
		balance       BIGINT,
		spend_cap     BIGINT,
		business_id   VARCHAR(64),
		business_name TEXT,
		metrics       JSONB,
		fingerprint   CHAR(64) NOT NULL,
		synced_at     TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS meta_campaigns (
		id               VARCHAR(64) PRIMARY KEY,
		account_id       VARCHAR(64) NOT NULL,
		name             TEXT NOT NULL,
		objective        VARCHAR(64),
		status           VARCHAR(32),
		effective_status VARCHAR(32),
		buying_type      VARCHAR(32),
		daily_budget     BIGINT,
		lifetime_budget  BIGINT,
		budget_remaining BIGINT,
		start_time       TIMESTAMPTZ,
		stop_time        TIMESTAMPTZ,
		created_time     TIMESTAMPTZ,
		updated_time     TIMESTAMPTZ,
		metrics          JSONB,
		fingerprint      CHAR(64) NOT NULL,
		synced_at        TIMESTAMPTZ NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS meta_campaigns_account_id_idx ON meta_campaigns (account_id)`,
	`CREATE TABLE IF NOT EXISTS meta_adsets (
		id                VARCHAR(64) PRIMARY KEY,
		campaign_id       VARCHAR(64) NOT NULL,
		account_id        VARCHAR(64),
		name              TEXT NOT NULL,
		status            VARCHAR(32),
		effective_status  VARCHAR(32),
		optimization_goal VARCHAR(64),
		billing_event     VARCHAR(64),
		bid_amount        BIGINT,
		daily_budget      BIGINT,
		lifetime_budget   BIGINT,
		targeting         JSONB,
		start_time        TIMESTAMPTZ,
		end_time          TIMESTAMPTZ,
		metrics           JSONB,
		fingerprint       CHAR(64) NOT NULL,
		synced_at         TIMESTAMPTZ NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS meta_adsets_campaign_id_idx ON meta_adsets (campaign_id)`,
	`CREATE TABLE IF NOT EXISTS meta_ads (
		id               VARCHAR(64) PRIMARY KEY,
		adset_id         VARCHAR(64) NOT NULL,
		campaign_id      VARCHAR(64),
		account_id       VARCHAR(64),
		name             TEXT NOT NULL,
		status           VARCHAR(32),
		effective_status VARCHAR(32),
		creative_id      VARCHAR(64),
		creative_name    TEXT,
		created_time     TIMESTAMPTZ,
		updated_time     TIMESTAMPTZ,
		metrics          JSONB,
		fingerprint      CHAR(64) NOT NULL,
		synced_at        TIMESTAMPTZ NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS meta_ads_adset_id_idx ON meta_ads (adset_id)`,
}

// Run aplica o schema dentro de uma única transação
func Run(ctx context.Context, conn postgres.Conn) error {
	logrus.Info("Iniciando migração do schema...")
	startTime := time.Now()

	err := conn.RunInTransaction(ctx, func(tx *sql.Tx) error {
		for i, stmt := range Statements {
			if _, err := tx.ExecContext(ctx, stmt); err != nil {
				return pkgerrors.Wrapf(err, "migration: statement %d", i+1)
			}
		}
		return nil
	})
	if err != nil {
		logrus.WithError(err).Error("migration: failed to apply schema")
		return err
	}

	logrus.Infof("Migração concluída em %v. Instruções aplicadas: %d", time.Since(startTime), len(Statements))
	return nil
}
