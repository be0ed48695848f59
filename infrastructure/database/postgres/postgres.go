package postgres

import (
	"context"
	"database/sql"
	"time"

	_ "github.com/lib/pq"
	pkgerrors "github.com/pkg/errors"
	"github.com/vfg2006/traffic-sync-worker/internal/config"
)

const connMaxIdleTime = 5 * time.Minute

// Conn é o que a migração e o comando serve precisam da conexão
type Conn interface {
	Queryer
	Close() error
	Ping(context.Context) error
	RunInTransaction(context.Context, func(*sql.Tx) error) error
}

type Connection struct {
	*sql.DB
}

func NewConnection(ctx context.Context, cfg config.Database) (*Connection, error) {
	db, err := sql.Open("postgres", cfg.DSN)
	if err != nil {
		return nil, pkgerrors.Wrap(err, "postgres: open")
	}

	if cfg.MaxOpenConns > 0 {
		db.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns > 0 {
		db.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	db.SetConnMaxIdleTime(connMaxIdleTime)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, pkgerrors.Wrap(err, "postgres: ping")
	}

	return &Connection{DB: db}, nil
}

// Ping usa o contexto do healthcheck
func (c *Connection) Ping(ctx context.Context) error {
	return c.DB.PingContext(ctx)
}

// RunInTransaction executa fn numa transação; erro ou panic fazem rollback
func (c *Connection) RunInTransaction(ctx context.Context, fn func(*sql.Tx) error) error {
	tx, err := c.DB.BeginTx(ctx, nil)
	if err != nil {
		return pkgerrors.Wrap(err, "postgres: begin")
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return pkgerrors.Wrapf(err, "postgres: rollback failed: %v", rbErr)
		}
		return err
	}

	return pkgerrors.Wrap(tx.Commit(), "postgres: commit")
}
