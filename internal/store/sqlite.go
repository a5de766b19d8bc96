package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	_ "modernc.org/sqlite"

	"github.com/tendercraft/tender-cli/internal/model"
)

// SQLiteStore implements Store using modernc.org/sqlite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLite opens a SQLite database at the given path and configures WAL mode.
func NewSQLite(dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: open")
	}
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, eris.Wrapf(err, "sqlite: exec %s", pragma)
		}
	}
	return &SQLiteStore{db: db}, nil
}

const sqliteMigration = `
CREATE TABLE IF NOT EXISTS analyses (
	id           TEXT PRIMARY KEY,
	project_name TEXT NOT NULL,
	total_budget REAL NOT NULL DEFAULT 0,
	total_cost   REAL NOT NULL DEFAULT 0,
	payload      TEXT NOT NULL,
	created_at   DATETIME NOT NULL DEFAULT (datetime('now'))
);

CREATE TABLE IF NOT EXISTS bid_history (
	id          TEXT PRIMARY KEY,
	category    TEXT NOT NULL,
	budget      REAL NOT NULL DEFAULT 0,
	our_bid     REAL NOT NULL DEFAULT 0,
	winning_bid REAL NOT NULL DEFAULT 0,
	won         INTEGER NOT NULL DEFAULT 0,
	tender_date DATETIME NOT NULL DEFAULT (datetime('now'))
);

CREATE INDEX IF NOT EXISTS idx_analyses_created_at ON analyses(created_at);
CREATE INDEX IF NOT EXISTS idx_bid_history_category ON bid_history(category);
CREATE INDEX IF NOT EXISTS idx_bid_history_tender_date ON bid_history(tender_date);
`

func (s *SQLiteStore) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, sqliteMigration)
	return eris.Wrap(err, "sqlite: migrate")
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) SaveAnalysis(ctx context.Context, analysis *model.BOQAnalysis) error {
	if analysis.ID == "" {
		analysis.ID = uuid.New().String()
	}
	if analysis.CreatedAt.IsZero() {
		analysis.CreatedAt = time.Now().UTC()
	}

	payload, err := json.Marshal(analysis)
	if err != nil {
		return eris.Wrap(err, "sqlite: marshal analysis")
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO analyses (id, project_name, total_budget, total_cost, payload, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		analysis.ID, analysis.ProjectName, analysis.TotalBudget,
		analysis.Profit.TotalCost, string(payload), analysis.CreatedAt,
	)
	return eris.Wrap(err, "sqlite: insert analysis")
}

func (s *SQLiteStore) GetAnalysis(ctx context.Context, id string) (*model.BOQAnalysis, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT payload FROM analyses WHERE id = ?`, id,
	)

	var payload string
	err := row.Scan(&payload)
	if err == sql.ErrNoRows {
		return nil, eris.Wrapf(model.ErrNoMatchFound, "sqlite: analysis %s", id)
	}
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: get analysis")
	}

	var analysis model.BOQAnalysis
	if err := json.Unmarshal([]byte(payload), &analysis); err != nil {
		return nil, eris.Wrap(err, "sqlite: unmarshal analysis")
	}
	return &analysis, nil
}

func (s *SQLiteStore) ListAnalyses(ctx context.Context, limit, offset int) ([]AnalysisSummary, error) {
	if limit <= 0 {
		limit = 100
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, project_name, total_budget, total_cost, created_at FROM analyses
		 ORDER BY created_at DESC LIMIT ? OFFSET ?`,
		limit, offset,
	)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: list analyses")
	}
	defer rows.Close()

	var out []AnalysisSummary
	for rows.Next() {
		var a AnalysisSummary
		if err := rows.Scan(&a.ID, &a.ProjectName, &a.TotalBudget, &a.TotalCost, &a.CreatedAt); err != nil {
			return nil, eris.Wrap(err, "sqlite: scan analysis summary")
		}
		out = append(out, a)
	}
	return out, eris.Wrap(rows.Err(), "sqlite: list analyses iterate")
}

func (s *SQLiteStore) DeleteAnalysis(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM analyses WHERE id = ?`, id)
	if err != nil {
		return eris.Wrapf(err, "sqlite: delete analysis %s", id)
	}
	return checkRowsAffected(res, "analysis", id)
}

func (s *SQLiteStore) AddBid(ctx context.Context, bid model.HistoricalBid) (*model.HistoricalBid, error) {
	if bid.ID == "" {
		bid.ID = uuid.New().String()
	}
	if bid.TenderDate.IsZero() {
		bid.TenderDate = time.Now().UTC()
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO bid_history (id, category, budget, our_bid, winning_bid, won, tender_date)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		bid.ID, bid.Category, bid.Budget, bid.OurBid, bid.WinningBid, bid.Won, bid.TenderDate,
	)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: insert bid")
	}
	return &bid, nil
}

func (s *SQLiteStore) ImportBids(ctx context.Context, bids []model.HistoricalBid) (int, error) {
	if len(bids) == 0 {
		return 0, nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, eris.Wrap(err, "sqlite: begin import")
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO bid_history (id, category, budget, our_bid, winning_bid, won, tender_date)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
	)
	if err != nil {
		return 0, eris.Wrap(err, "sqlite: prepare import")
	}
	defer stmt.Close()

	for _, bid := range bids {
		if bid.ID == "" {
			bid.ID = uuid.New().String()
		}
		if bid.TenderDate.IsZero() {
			bid.TenderDate = time.Now().UTC()
		}
		if _, err := stmt.ExecContext(ctx,
			bid.ID, bid.Category, bid.Budget, bid.OurBid, bid.WinningBid, bid.Won, bid.TenderDate,
		); err != nil {
			return 0, eris.Wrap(err, "sqlite: import bid")
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, eris.Wrap(err, "sqlite: commit import")
	}
	return len(bids), nil
}

func (s *SQLiteStore) ListBids(ctx context.Context, filter HistoryFilter) ([]model.HistoricalBid, error) {
	query := `SELECT id, category, budget, our_bid, winning_bid, won, tender_date FROM bid_history WHERE 1=1`
	var args []any

	if filter.Category != "" {
		query += ` AND category = ?`
		args = append(args, filter.Category)
	}
	query += ` ORDER BY tender_date DESC`

	limit := filter.Limit
	if limit <= 0 {
		limit = 100
	}
	query += ` LIMIT ?`
	args = append(args, limit)

	if filter.Offset > 0 {
		query += ` OFFSET ?`
		args = append(args, filter.Offset)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: list bids")
	}
	defer rows.Close()

	var bids []model.HistoricalBid
	for rows.Next() {
		var b model.HistoricalBid
		if err := rows.Scan(&b.ID, &b.Category, &b.Budget, &b.OurBid, &b.WinningBid, &b.Won, &b.TenderDate); err != nil {
			return nil, eris.Wrap(err, "sqlite: scan bid")
		}
		bids = append(bids, b)
	}
	return bids, eris.Wrap(rows.Err(), "sqlite: list bids iterate")
}

// helpers

func checkRowsAffected(res sql.Result, entity, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return eris.Wrap(err, "rows affected")
	}
	if n == 0 {
		return eris.Wrapf(model.ErrNoMatchFound, "%s %s", entity, id)
	}
	return nil
}
