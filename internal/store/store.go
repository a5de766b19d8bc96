// Package store persists analyses and historical bid outcomes in SQLite or
// PostgreSQL.
package store

import (
	"context"
	"time"

	"github.com/tendercraft/tender-cli/internal/model"
)

// AnalysisSummary is the listing view of a stored analysis.
type AnalysisSummary struct {
	ID          string    `json:"id"`
	ProjectName string    `json:"project_name"`
	TotalBudget float64   `json:"total_budget"`
	TotalCost   float64   `json:"total_cost"`
	CreatedAt   time.Time `json:"created_at"`
}

// HistoryFilter specifies criteria for listing historical bids.
type HistoryFilter struct {
	Category string `json:"category,omitempty"`
	Limit    int    `json:"limit,omitempty"`
	Offset   int    `json:"offset,omitempty"`
}

// Store defines the persistence interface for analyses and bid history.
type Store interface {
	// Analyses
	SaveAnalysis(ctx context.Context, analysis *model.BOQAnalysis) error
	GetAnalysis(ctx context.Context, id string) (*model.BOQAnalysis, error)
	ListAnalyses(ctx context.Context, limit, offset int) ([]AnalysisSummary, error)
	DeleteAnalysis(ctx context.Context, id string) error

	// Bid history
	AddBid(ctx context.Context, bid model.HistoricalBid) (*model.HistoricalBid, error)
	ImportBids(ctx context.Context, bids []model.HistoricalBid) (int, error)
	ListBids(ctx context.Context, filter HistoryFilter) ([]model.HistoricalBid, error)

	// Lifecycle
	Migrate(ctx context.Context) error
	Close() error
}
