package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"
	"github.com/vfg2006/traffic-sync-worker/infrastructure/database/postgres"
	"github.com/vfg2006/traffic-sync-worker/internal/domain"
)

const syncJobsTable = "sync_jobs"

var terminalStatuses = []string{
	string(domain.JobStatusCompleted),
	string(domain.JobStatusFailed),
	string(domain.JobStatusCancelled),
}

type SyncJobRepository interface {
	EnsureJob(ctx context.Context, job *domain.SyncJob) (bool, error)
	GetJob(ctx context.Context, requestID string) (*domain.SyncJob, error)
	MarkProcessing(ctx context.Context, requestID string) error
	UpdateProgress(ctx context.Context, requestID string, progress int) error
	Complete(ctx context.Context, requestID string, summary domain.SyncSummary) error
	Fail(ctx context.Context, requestID string, message string) error
	Cancel(ctx context.Context, requestID string) (bool, error)
	ListStale(ctx context.Context, updatedBefore time.Time, limit int) ([]*domain.SyncJob, error)
}

type syncJobRepository struct {
	conn postgres.Queryer
}

func NewSyncJobRepository(conn postgres.Queryer) SyncJobRepository {
	return &syncJobRepository{
		conn: conn,
	}
}

// EnsureJob insere o job se ainda não existir. Retorna true quando a linha foi criada.
func (r *syncJobRepository) EnsureJob(ctx context.Context, job *domain.SyncJob) (bool, error) {
	status := job.Status
	if status == "" {
		status = domain.JobStatusQueued
	}

	query, args, err := squirrel.
		Insert(syncJobsTable).
		Columns("request_id", "account_id", "timeframe", "status", "progress", "created_at", "updated_at").
		Values(job.RequestID, job.AccountID, string(job.Timeframe), string(status), job.Progress, squirrel.Expr("NOW()"), squirrel.Expr("NOW()")).
		Suffix("ON CONFLICT (request_id) DO NOTHING").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("erro ao construir a query: %w", err)
	}

	return r.execAffected(ctx, query, args...)
}

func (r *syncJobRepository) GetJob(ctx context.Context, requestID string) (*domain.SyncJob, error) {
	query, args, err := selectJobs().
		Where(squirrel.Eq{"request_id": requestID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	job, err := scanJob(r.conn.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("erro ao escanear sync job: %w", err)
	}

	return job, nil
}

// MarkProcessing não altera jobs já terminados
func (r *syncJobRepository) MarkProcessing(ctx context.Context, requestID string) error {
	query, args, err := updateOpenJob(requestID).
		Set("status", string(domain.JobStatusProcessing)).
		ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	_, err = r.execAffected(ctx, query, args...)
	return err
}

// UpdateProgress nunca diminui o progresso gravado
func (r *syncJobRepository) UpdateProgress(ctx context.Context, requestID string, progress int) error {
	query, args, err := updateOpenJob(requestID).
		Set("progress", squirrel.Expr("GREATEST(progress, ?)", clampProgress(progress))).
		ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	_, err = r.execAffected(ctx, query, args...)
	return err
}

func (r *syncJobRepository) Complete(ctx context.Context, requestID string, summary domain.SyncSummary) error {
	summaryJSON, err := json.Marshal(summary)
	if err != nil {
		return fmt.Errorf("erro ao serializar resumo para JSON: %w", err)
	}

	query, args, err := updateOpenJob(requestID).
		Set("status", string(domain.JobStatusCompleted)).
		Set("progress", 100).
		Set("result_summary", summaryJSON).
		Set("completed_at", squirrel.Expr("NOW()")).
		ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	_, err = r.execAffected(ctx, query, args...)
	return err
}

func (r *syncJobRepository) Fail(ctx context.Context, requestID string, message string) error {
	query, args, err := updateOpenJob(requestID).
		Set("status", string(domain.JobStatusFailed)).
		Set("error_message", message).
		Set("completed_at", squirrel.Expr("NOW()")).
		ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	_, err = r.execAffected(ctx, query, args...)
	return err
}

// Cancel marca o job como cancelado. Retorna false quando o job não existe ou já terminou.
func (r *syncJobRepository) Cancel(ctx context.Context, requestID string) (bool, error) {
	query, args, err := updateOpenJob(requestID).
		Set("status", string(domain.JobStatusCancelled)).
		Set("completed_at", squirrel.Expr("NOW()")).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("erro ao construir a query: %w", err)
	}

	return r.execAffected(ctx, query, args...)
}

// ListStale lista jobs em aberto sem atualização desde updatedBefore
func (r *syncJobRepository) ListStale(ctx context.Context, updatedBefore time.Time, limit int) ([]*domain.SyncJob, error) {
	query, args, err := selectJobs().
		Where(squirrel.Eq{"status": []string{string(domain.JobStatusQueued), string(domain.JobStatusProcessing)}}).
		Where(squirrel.Lt{"updated_at": updatedBefore}).
		OrderBy("updated_at ASC").
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao executar a query: %w", err)
	}
	defer rows.Close()

	jobs := make([]*domain.SyncJob, 0)
	for rows.Next() {
		job, err := scanJob(rows)
		if err != nil {
			return nil, fmt.Errorf("erro ao escanear sync job: %w", err)
		}
		jobs = append(jobs, job)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return jobs, nil
}

func (r *syncJobRepository) execAffected(ctx context.Context, query string, args ...interface{}) (bool, error) {
	result, err := r.conn.ExecContext(ctx, query, args...)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) {
			return false, fmt.Errorf("erro no banco de dados: %w (código: %s)", pqErr, pqErr.Code)
		}
		return false, fmt.Errorf("erro ao executar a query: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("erro ao obter número de linhas afetadas: %w", err)
	}

	return rowsAffected > 0, nil
}

func selectJobs() squirrel.SelectBuilder {
	return squirrel.
		Select("request_id, account_id, timeframe, status, progress, error_message, result_summary, created_at, updated_at, completed_at").
		From(syncJobsTable).
		PlaceholderFormat(squirrel.Dollar)
}

func updateOpenJob(requestID string) squirrel.UpdateBuilder {
	return squirrel.
		Update(syncJobsTable).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"request_id": requestID}).
		Where(squirrel.NotEq{"status": terminalStatuses}).
		PlaceholderFormat(squirrel.Dollar)
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanJob(row rowScanner) (*domain.SyncJob, error) {
	job := &domain.SyncJob{}
	var (
		timeframe   string
		status      string
		summaryJSON []byte
		errMessage  sql.NullString
		completedAt sql.NullTime
	)

	if err := row.Scan(
		&job.RequestID,
		&job.AccountID,
		&timeframe,
		&status,
		&job.Progress,
		&errMessage,
		&summaryJSON,
		&job.CreatedAt,
		&job.UpdatedAt,
		&completedAt,
	); err != nil {
		return nil, err
	}

	job.Timeframe = domain.Timeframe(timeframe)
	job.Status = domain.JobStatus(status)

	if errMessage.Valid {
		job.ErrorMessage = &errMessage.String
	}
	if completedAt.Valid {
		job.CompletedAt = &completedAt.Time
	}

	if len(summaryJSON) > 0 {
		summary := &domain.SyncSummary{}
		if err := json.Unmarshal(summaryJSON, summary); err != nil {
			return nil, fmt.Errorf("erro ao deserializar JSON de result_summary: %w", err)
		}
		job.ResultSummary = summary
	}

	return job, nil
}

func clampProgress(progress int) int {
	if progress < 0 {
		return 0
	}
	if progress > 100 {
		return 100
	}
	return progress
}
