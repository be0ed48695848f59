package repository

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/vfg2006/traffic-sync-worker/infrastructure/database/postgres"
)

// HierarchyRepository lê ids já persistidos para reconstruir a lista de pais
// quando o payload de continuação chega sem ela
type HierarchyRepository interface {
	ListCampaignIDs(ctx context.Context, accountID string) ([]string, error)
	ListAdSetIDs(ctx context.Context, campaignIDs []string) ([]string, error)
}

type hierarchyRepository struct {
	conn postgres.Queryer
}

func NewHierarchyRepository(conn postgres.Queryer) HierarchyRepository {
	return &hierarchyRepository{
		conn: conn,
	}
}

func (r *hierarchyRepository) ListCampaignIDs(ctx context.Context, accountID string) ([]string, error) {
	query, args, err := squirrel.
		Select("id").
		From(campaignsTable).
		Where(squirrel.Eq{"account_id": accountID}).
		OrderBy("id ASC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	return r.queryIDs(ctx, query, args...)
}

func (r *hierarchyRepository) ListAdSetIDs(ctx context.Context, campaignIDs []string) ([]string, error) {
	if len(campaignIDs) == 0 {
		return []string{}, nil
	}

	query, args, err := squirrel.
		Select("id").
		From(adSetsTable).
		Where(squirrel.Eq{"campaign_id": campaignIDs}).
		OrderBy("id ASC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	return r.queryIDs(ctx, query, args...)
}

func (r *hierarchyRepository) queryIDs(ctx context.Context, query string, args ...interface{}) ([]string, error) {
	rows, err := r.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao executar a query: %w", err)
	}
	defer rows.Close()

	ids := make([]string, 0)
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("erro ao escanear id: %w", err)
		}
		ids = append(ids, id)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return ids, nil
}
