package store

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rotisserie/eris"

	"github.com/tendercraft/tender-cli/internal/db"
	"github.com/tendercraft/tender-cli/internal/model"
)

// PostgresStore implements Store using pgxpool.
type PostgresStore struct {
	pool db.Pool
}

// PoolConfig holds optional connection pool tuning parameters.
type PoolConfig struct {
	MaxConns int32 `yaml:"max_conns" mapstructure:"max_conns"`
	MinConns int32 `yaml:"min_conns" mapstructure:"min_conns"`
}

// NewPostgres creates a PostgresStore with a connection pool.
func NewPostgres(ctx context.Context, connString string, poolCfg *PoolConfig) (*PostgresStore, error) {
	pgxCfg, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: parse config")
	}

	maxConns := int32(10)
	minConns := int32(2)
	if poolCfg != nil {
		if poolCfg.MaxConns > 0 {
			maxConns = poolCfg.MaxConns
		}
		if poolCfg.MinConns > 0 {
			minConns = poolCfg.MinConns
		}
	}
	pgxCfg.MaxConns = maxConns
	pgxCfg.MinConns = minConns
	pgxCfg.MaxConnLifetime = 30 * time.Minute
	pgxCfg.MaxConnIdleTime = 5 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, pgxCfg)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: create pool")
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, eris.Wrap(err, "postgres: ping")
	}
	return &PostgresStore{pool: pool}, nil
}

// NewPostgresFromPool wraps an existing pool; tests use it with pgxmock.
func NewPostgresFromPool(pool db.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

const postgresMigration = `
CREATE TABLE IF NOT EXISTS analyses (
	id           TEXT PRIMARY KEY DEFAULT gen_random_uuid()::text,
	project_name TEXT NOT NULL,
	total_budget DOUBLE PRECISION NOT NULL DEFAULT 0,
	total_cost   DOUBLE PRECISION NOT NULL DEFAULT 0,
	payload      JSONB NOT NULL,
	created_at   TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS bid_history (
	id          TEXT PRIMARY KEY DEFAULT gen_random_uuid()::text,
	category    TEXT NOT NULL,
	budget      DOUBLE PRECISION NOT NULL DEFAULT 0,
	our_bid     DOUBLE PRECISION NOT NULL DEFAULT 0,
	winning_bid DOUBLE PRECISION NOT NULL DEFAULT 0,
	won         BOOLEAN NOT NULL DEFAULT false,
	tender_date TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS idx_analyses_created_at ON analyses(created_at);
CREATE INDEX IF NOT EXISTS idx_bid_history_category ON bid_history(category);
CREATE INDEX IF NOT EXISTS idx_bid_history_tender_date ON bid_history(tender_date);
`

func (s *PostgresStore) Migrate(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, postgresMigration)
	return eris.Wrap(err, "postgres: migrate")
}

func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}

func (s *PostgresStore) SaveAnalysis(ctx context.Context, analysis *model.BOQAnalysis) error {
	if analysis.ID == "" {
		analysis.ID = uuid.New().String()
	}
	if analysis.CreatedAt.IsZero() {
		analysis.CreatedAt = time.Now().UTC()
	}

	payload, err := json.Marshal(analysis)
	if err != nil {
		return eris.Wrap(err, "postgres: marshal analysis")
	}

	_, err = s.pool.Exec(ctx,
		`INSERT INTO analyses (id, project_name, total_budget, total_cost, payload, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		analysis.ID, analysis.ProjectName, analysis.TotalBudget,
		analysis.Profit.TotalCost, payload, analysis.CreatedAt,
	)
	return eris.Wrap(err, "postgres: insert analysis")
}

func (s *PostgresStore) GetAnalysis(ctx context.Context, id string) (*model.BOQAnalysis, error) {
	var payload []byte
	err := s.pool.QueryRow(ctx,
		`SELECT payload FROM analyses WHERE id = $1`, id,
	).Scan(&payload)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, eris.Wrapf(model.ErrNoMatchFound, "postgres: analysis %s", id)
	}
	if err != nil {
		return nil, eris.Wrap(err, "postgres: get analysis")
	}

	var analysis model.BOQAnalysis
	if err := json.Unmarshal(payload, &analysis); err != nil {
		return nil, eris.Wrap(err, "postgres: unmarshal analysis")
	}
	return &analysis, nil
}

func (s *PostgresStore) ListAnalyses(ctx context.Context, limit, offset int) ([]AnalysisSummary, error) {
	if limit <= 0 {
		limit = 100
	}

	rows, err := s.pool.Query(ctx,
		`SELECT id, project_name, total_budget, total_cost, created_at FROM analyses
		 ORDER BY created_at DESC LIMIT $1 OFFSET $2`,
		limit, offset,
	)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: list analyses")
	}
	defer rows.Close()

	var out []AnalysisSummary
	for rows.Next() {
		var a AnalysisSummary
		if err := rows.Scan(&a.ID, &a.ProjectName, &a.TotalBudget, &a.TotalCost, &a.CreatedAt); err != nil {
			return nil, eris.Wrap(err, "postgres: scan analysis summary")
		}
		out = append(out, a)
	}
	return out, eris.Wrap(rows.Err(), "postgres: list analyses iterate")
}

func (s *PostgresStore) DeleteAnalysis(ctx context.Context, id string) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM analyses WHERE id = $1`, id)
	if err != nil {
		return eris.Wrapf(err, "postgres: delete analysis %s", id)
	}
	if tag.RowsAffected() == 0 {
		return eris.Wrapf(model.ErrNoMatchFound, "analysis %s", id)
	}
	return nil
}

func (s *PostgresStore) AddBid(ctx context.Context, bid model.HistoricalBid) (*model.HistoricalBid, error) {
	if bid.ID == "" {
		bid.ID = uuid.New().String()
	}
	if bid.TenderDate.IsZero() {
		bid.TenderDate = time.Now().UTC()
	}

	_, err := s.pool.Exec(ctx,
		`INSERT INTO bid_history (id, category, budget, our_bid, winning_bid, won, tender_date)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		bid.ID, bid.Category, bid.Budget, bid.OurBid, bid.WinningBid, bid.Won, bid.TenderDate,
	)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: insert bid")
	}
	return &bid, nil
}

// ImportBids bulk-loads history through the COPY protocol.
func (s *PostgresStore) ImportBids(ctx context.Context, bids []model.HistoricalBid) (int, error) {
	if len(bids) == 0 {
		return 0, nil
	}

	rows := make([][]any, 0, len(bids))
	for _, bid := range bids {
		if bid.ID == "" {
			bid.ID = uuid.New().String()
		}
		if bid.TenderDate.IsZero() {
			bid.TenderDate = time.Now().UTC()
		}
		rows = append(rows, []any{
			bid.ID, bid.Category, bid.Budget, bid.OurBid, bid.WinningBid, bid.Won, bid.TenderDate,
		})
	}

	n, err := db.CopyFrom(ctx, s.pool, "bid_history",
		[]string{"id", "category", "budget", "our_bid", "winning_bid", "won", "tender_date"}, rows)
	if err != nil {
		return 0, eris.Wrap(err, "postgres: import bids")
	}
	return int(n), nil
}

func (s *PostgresStore) ListBids(ctx context.Context, filter HistoryFilter) ([]model.HistoricalBid, error) {
	query := `SELECT id, category, budget, our_bid, winning_bid, won, tender_date FROM bid_history`
	var args []any

	if filter.Category != "" {
		args = append(args, filter.Category)
		query += ` WHERE category = $1`
	}
	query += ` ORDER BY tender_date DESC`

	limit := filter.Limit
	if limit <= 0 {
		limit = 100
	}
	args = append(args, limit)
	query += ` LIMIT $` + strconv.Itoa(len(args))

	if filter.Offset > 0 {
		args = append(args, filter.Offset)
		query += ` OFFSET $` + strconv.Itoa(len(args))
	}

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: list bids")
	}
	defer rows.Close()

	var bids []model.HistoricalBid
	for rows.Next() {
		var b model.HistoricalBid
		if err := rows.Scan(&b.ID, &b.Category, &b.Budget, &b.OurBid, &b.WinningBid, &b.Won, &b.TenderDate); err != nil {
			return nil, eris.Wrap(err, "postgres: scan bid")
		}
		bids = append(bids, b)
	}
	return bids, eris.Wrap(rows.Err(), "postgres: list bids iterate")
}
