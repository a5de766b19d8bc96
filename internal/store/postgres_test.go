package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tendercraft/tender-cli/internal/model"
)

func newMockStore(t *testing.T) (*PostgresStore, pgxmock.PgxPoolIface) {
	t.Helper()

	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(func() { mock.Close() })

	return NewPostgresFromPool(mock), mock
}

func TestPostgresSaveAnalysis(t *testing.T) {
	t.Parallel()

	s, mock := newMockStore(t)

	mock.ExpectExec("INSERT INTO analyses").
		WithArgs(pgxmock.AnyArg(), "Warehouse foundation", 1_000_000.0, 716_940.0, pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	analysis := sampleAnalysis()
	require.NoError(t, s.SaveAnalysis(context.Background(), analysis))
	assert.NotEmpty(t, analysis.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresGetAnalysisNotFound(t *testing.T) {
	t.Parallel()

	s, mock := newMockStore(t)

	mock.ExpectQuery("SELECT payload FROM analyses").
		WithArgs("missing").
		WillReturnError(pgx.ErrNoRows)

	_, err := s.GetAnalysis(context.Background(), "missing")
	require.Error(t, err)
	assert.True(t, errors.Is(err, model.ErrNoMatchFound))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresListAnalyses(t *testing.T) {
	t.Parallel()

	s, mock := newMockStore(t)

	now := time.Now().UTC()
	mock.ExpectQuery("SELECT id, project_name, total_budget, total_cost, created_at FROM analyses").
		WithArgs(50, 0).
		WillReturnRows(pgxmock.NewRows([]string{"id", "project_name", "total_budget", "total_cost", "created_at"}).
			AddRow("a1", "Warehouse foundation", 1_000_000.0, 716_940.0, now).
			AddRow("a2", "Road widening", 5_000_000.0, 4_100_000.0, now.Add(-time.Hour)))

	list, err := s.ListAnalyses(context.Background(), 50, 0)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "a1", list[0].ID)
	assert.InDelta(t, 4_100_000, list[1].TotalCost, 1e-9)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresDeleteAnalysisNotFound(t *testing.T) {
	t.Parallel()

	s, mock := newMockStore(t)

	mock.ExpectExec("DELETE FROM analyses").
		WithArgs("missing").
		WillReturnResult(pgxmock.NewResult("DELETE", 0))

	err := s.DeleteAnalysis(context.Background(), "missing")
	require.Error(t, err)
	assert.True(t, errors.Is(err, model.ErrNoMatchFound))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresAddBid(t *testing.T) {
	t.Parallel()

	s, mock := newMockStore(t)

	mock.ExpectExec("INSERT INTO bid_history").
		WithArgs(pgxmock.AnyArg(), "building work", 10_000_000.0, 8_500_000.0, 8_400_000.0, false, pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	added, err := s.AddBid(context.Background(), model.HistoricalBid{
		Category:   "building work",
		Budget:     10_000_000,
		OurBid:     8_500_000,
		WinningBid: 8_400_000,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, added.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresImportBidsUsesCopy(t *testing.T) {
	t.Parallel()

	s, mock := newMockStore(t)

	columns := []string{"id", "category", "budget", "our_bid", "winning_bid", "won", "tender_date"}
	mock.ExpectCopyFrom(pgx.Identifier{"bid_history"}, columns).WillReturnResult(2)

	n, err := s.ImportBids(context.Background(), []model.HistoricalBid{
		{Category: "building work", Budget: 9_000_000, OurBid: 8_000_000, WinningBid: 8_000_000, Won: true},
		{Category: "road work", Budget: 5_000_000, OurBid: 4_500_000, WinningBid: 4_300_000},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresListBidsByCategory(t *testing.T) {
	t.Parallel()

	s, mock := newMockStore(t)

	now := time.Now().UTC()
	mock.ExpectQuery("SELECT id, category, budget, our_bid, winning_bid, won, tender_date FROM bid_history").
		WithArgs("building work", 100).
		WillReturnRows(pgxmock.NewRows([]string{"id", "category", "budget", "our_bid", "winning_bid", "won", "tender_date"}).
			AddRow("b1", "building work", 9_000_000.0, 8_000_000.0, 8_000_000.0, true, now))

	bids, err := s.ListBids(context.Background(), HistoryFilter{Category: "building work"})
	require.NoError(t, err)
	require.Len(t, bids, 1)
	assert.True(t, bids[0].Won)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresMigrate(t *testing.T) {
	t.Parallel()

	s, mock := newMockStore(t)

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS analyses").
		WillReturnResult(pgxmock.NewResult("CREATE", 0))

	require.NoError(t, s.Migrate(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}
