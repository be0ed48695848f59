package repository

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"
	jsoniter "github.com/json-iterator/go"
	"github.com/lib/pq"
	"github.com/vfg2006/traffic-sync-worker/infrastructure/database/postgres"
	"github.com/vfg2006/traffic-sync-worker/internal/domain"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// EntityRepository grava snapshots de uma tabela de entidades do Meta.
// Upsert retorna false quando o registro gravado já era idêntico.
type EntityRepository interface {
	Upsert(ctx context.Context, entity domain.Entity) (bool, error)
}

// entityRow são as colunas de uma entidade, sem id, fingerprint e synced_at
type entityRow struct {
	columns []string
	values  []interface{}
}

func (r *entityRow) add(column string, value interface{}) {
	r.columns = append(r.columns, column)
	r.values = append(r.values, value)
}

type rowMapper func(entity domain.Entity) (*entityRow, error)

type entityRepository struct {
	conn       postgres.Queryer
	table      string
	entityType domain.EntityType
	mapRow     rowMapper
}

func (r *entityRepository) Upsert(ctx context.Context, entity domain.Entity) (bool, error) {
	if entity == nil || entity.NaturalID() == "" {
		return false, fmt.Errorf("%s sem id não pode ser gravado", r.entityType)
	}
	if entity.EntityType() != r.entityType {
		return false, fmt.Errorf("tabela %s não aceita entidades do tipo %s", r.table, entity.EntityType())
	}

	query, args, err := r.buildUpsert(entity)
	if err != nil {
		return false, err
	}

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

// buildUpsert monta um INSERT ... ON CONFLICT que só reescreve a linha quando o
// fingerprint mudou, então reaplicar o mesmo registro não altera nada
func (r *entityRepository) buildUpsert(entity domain.Entity) (string, []interface{}, error) {
	row, err := r.mapRow(entity)
	if err != nil {
		return "", nil, err
	}

	fingerprint, err := Fingerprint(entity)
	if err != nil {
		return "", nil, err
	}

	columns := append([]string{"id"}, row.columns...)
	columns = append(columns, "fingerprint", "synced_at")

	values := append([]interface{}{entity.NaturalID()}, row.values...)
	values = append(values, fingerprint, squirrel.Expr("NOW()"))

	assignments := make([]string, 0, len(columns)-1)
	for _, column := range columns[1:] {
		assignments = append(assignments, fmt.Sprintf("%s = EXCLUDED.%s", column, column))
	}

	return squirrel.
		Insert(r.table).
		Columns(columns...).
		Values(values...).
		Suffix(fmt.Sprintf(
			"ON CONFLICT (id) DO UPDATE SET %s WHERE %s.fingerprint IS DISTINCT FROM EXCLUDED.fingerprint",
			strings.Join(assignments, ", "),
			r.table,
		)).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
}

// Fingerprint é o sha256 do JSON canônico da entidade. Chaves de mapas saem ordenadas.
func Fingerprint(entity domain.Entity) (string, error) {
	payload, err := json.Marshal(entity)
	if err != nil {
		return "", fmt.Errorf("erro ao serializar %s para fingerprint: %w", entity.EntityType(), err)
	}

	sum := sha256.Sum256(payload)
	return hex.EncodeToString(sum[:]), nil
}

func marshalJSONColumn(value interface{}) ([]byte, error) {
	if value == nil {
		return nil, nil
	}

	data, err := json.Marshal(value)
	if err != nil {
		return nil, fmt.Errorf("erro ao serializar coluna JSON: %w", err)
	}

	return data, nil
}

func unexpectedEntity(expected domain.EntityType, entity domain.Entity) error {
	return fmt.Errorf("esperado %s, recebido %T", expected, entity)
}
