package recorder

import (
	"database/sql"
	"fmt"
	"sync"

	"go.uber.org/zap"
	_ "modernc.org/sqlite"
)

// SQLiteRecorder persists history to a SQLite database. Decimals are stored
// as TEXT to keep them exact.
type SQLiteRecorder struct {
	db     *sql.DB
	mu     sync.Mutex
	logger *zap.Logger
}

// NewSQLiteRecorder opens (or creates) the SQLite database and runs migrations.
func NewSQLiteRecorder(dbPath string, logger *zap.Logger) (*SQLiteRecorder, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	r := &SQLiteRecorder{db: db, logger: logger}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	logger.Info("sqlite recorder opened", zap.String("path", dbPath))
	return r, nil
}

func (r *SQLiteRecorder) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS account_snapshots (
			id           INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp    INTEGER NOT NULL,
			total_value  TEXT,
			cash_balance TEXT,
			holdings     INTEGER
		)`,
		`CREATE INDEX IF NOT EXISTS idx_snapshots_ts ON account_snapshots(timestamp)`,

		`CREATE TABLE IF NOT EXISTS snapshot_positions (
			id            INTEGER PRIMARY KEY AUTOINCREMENT,
			snapshot_id   INTEGER NOT NULL REFERENCES account_snapshots(id),
			symbol        TEXT NOT NULL,
			shares        INTEGER,
			avg_price     TEXT,
			current_price TEXT,
			value         TEXT,
			gain_loss     TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_positions_symbol ON snapshot_positions(symbol)`,

		`CREATE TABLE IF NOT EXISTS trades (
			id        INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp INTEGER NOT NULL,
			action    TEXT,
			symbol    TEXT,
			shares    INTEGER,
			price     TEXT,
			total     TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_trades_ts ON trades(timestamp)`,
	}

	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

func (r *SQLiteRecorder) RecordAccount(snap *AccountSnapshot) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	acct := snap.Account
	tx, err := r.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	res, err := tx.Exec(`INSERT INTO account_snapshots
		(timestamp, total_value, cash_balance, holdings)
		VALUES (?,?,?,?)`,
		snap.At.Unix(), acct.TotalValue.String(), acct.CashBalance.String(), len(acct.Holdings),
	)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	for _, p := range acct.Holdings {
		if _, err := tx.Exec(`INSERT INTO snapshot_positions
			(snapshot_id, symbol, shares, avg_price, current_price, value, gain_loss)
			VALUES (?,?,?,?,?,?,?)`,
			id, p.Symbol, p.Shares, p.AvgPrice.String(), p.CurrentPrice.String(),
			p.Value.String(), p.GainLoss.String(),
		); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (r *SQLiteRecorder) RecordTrade(evt *TradeEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	c := evt.Confirmation
	_, err := r.db.Exec(`INSERT INTO trades
		(timestamp, action, symbol, shares, price, total)
		VALUES (?,?,?,?,?,?)`,
		evt.At.Unix(), string(c.Action), c.Symbol, c.Shares, c.Price.String(), c.Total.String(),
	)
	return err
}

// CountTrades returns the number of recorded trades.
func (r *SQLiteRecorder) CountTrades() (int, error) {
	var n int
	err := r.db.QueryRow(`SELECT COUNT(*) FROM trades`).Scan(&n)
	return n, err
}

func (r *SQLiteRecorder) Close() error {
	r.logger.Info("closing sqlite recorder")
	return r.db.Close()
}
