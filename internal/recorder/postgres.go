package recorder

import (
	"context"
	"fmt"
	"time"

	pgxdecimal "github.com/jackc/pgx-shopspring-decimal"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

const pgTimeout = 10 * time.Second

// PostgresRecorder persists history to PostgreSQL with NUMERIC columns.
type PostgresRecorder struct {
	pool   *pgxpool.Pool
	logger *zap.Logger
}

// NewPostgresRecorder connects to dbURL, registers the decimal codec and runs migrations.
func NewPostgresRecorder(ctx context.Context, dbURL string, logger *zap.Logger) (*PostgresRecorder, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	config, err := pgxpool.ParseConfig(dbURL)
	if err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	config.AfterConnect = func(ctx context.Context, conn *pgx.Conn) error {
		pgxdecimal.Register(conn.TypeMap())
		return nil
	}

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("connect: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping: %w", err)
	}

	r := &PostgresRecorder{pool: pool, logger: logger}
	if err := r.migrate(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	logger.Info("postgres recorder opened")
	return r, nil
}

func (r *PostgresRecorder) migrate(ctx context.Context) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS account_snapshots (
			id           BIGSERIAL PRIMARY KEY,
			recorded_at  TIMESTAMPTZ NOT NULL,
			total_value  NUMERIC,
			cash_balance NUMERIC,
			holdings     INTEGER
		)`,
		`CREATE TABLE IF NOT EXISTS snapshot_positions (
			id            BIGSERIAL PRIMARY KEY,
			snapshot_id   BIGINT NOT NULL REFERENCES account_snapshots(id),
			symbol        TEXT NOT NULL,
			shares        BIGINT,
			avg_price     NUMERIC,
			current_price NUMERIC,
			value         NUMERIC,
			gain_loss     NUMERIC
		)`,
		`CREATE TABLE IF NOT EXISTS trades (
			id          BIGSERIAL PRIMARY KEY,
			recorded_at TIMESTAMPTZ NOT NULL,
			action      TEXT,
			symbol      TEXT,
			shares      BIGINT,
			price       NUMERIC,
			total       NUMERIC
		)`,
	}
	for _, s := range stmts {
		if _, err := r.pool.Exec(ctx, s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

func (r *PostgresRecorder) RecordAccount(snap *AccountSnapshot) error {
	ctx, cancel := context.WithTimeout(context.Background(), pgTimeout)
	defer cancel()

	acct := snap.Account
	return pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		var id int64
		err := tx.QueryRow(ctx, `INSERT INTO account_snapshots
			(recorded_at, total_value, cash_balance, holdings)
			VALUES ($1,$2,$3,$4) RETURNING id`,
			snap.At, acct.TotalValue, acct.CashBalance, len(acct.Holdings),
		).Scan(&id)
		if err != nil {
			return err
		}
		if len(acct.Holdings) == 0 {
			return nil
		}
		batch := &pgx.Batch{}
		for _, p := range acct.Holdings {
			batch.Queue(`INSERT INTO snapshot_positions
				(snapshot_id, symbol, shares, avg_price, current_price, value, gain_loss)
				VALUES ($1,$2,$3,$4,$5,$6,$7)`,
				id, p.Symbol, p.Shares, p.AvgPrice, p.CurrentPrice, p.Value, p.GainLoss)
		}
		return tx.SendBatch(ctx, batch).Close()
	})
}

func (r *PostgresRecorder) RecordTrade(evt *TradeEvent) error {
	ctx, cancel := context.WithTimeout(context.Background(), pgTimeout)
	defer cancel()

	c := evt.Confirmation
	_, err := r.pool.Exec(ctx, `INSERT INTO trades
		(recorded_at, action, symbol, shares, price, total)
		VALUES ($1,$2,$3,$4,$5,$6)`,
		evt.At, string(c.Action), c.Symbol, c.Shares, c.Price, c.Total,
	)
	return err
}

func (r *PostgresRecorder) Close() error {
	r.logger.Info("closing postgres recorder")
	r.pool.Close()
	return nil
}
