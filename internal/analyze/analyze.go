// Package analyze orchestrates the full bill-of-quantities analysis:
// decomposition, cost rollup, financial layering, risk assessment, and
// timeline estimation.
package analyze

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/tendercraft/tender-cli/internal/aggregate"
	"github.com/tendercraft/tender-cli/internal/catalog"
	"github.com/tendercraft/tender-cli/internal/decompose"
	"github.com/tendercraft/tender-cli/internal/finance"
	"github.com/tendercraft/tender-cli/internal/model"
	"github.com/tendercraft/tender-cli/internal/risk"
)

// Options tunes the analysis pipeline.
type Options struct {
	// Workers caps the decomposition fan-out.
	Workers int
	// CrewSize is the assumed daily crew for duration estimates.
	CrewSize int
	// CriticalPathSize is how many items the critical path lists.
	CriticalPathSize int
	// Rates are the financial layering percentages.
	Rates finance.Rates
}

// DefaultOptions returns the standard tuning.
func DefaultOptions() Options {
	return Options{
		Workers:          8,
		CrewSize:         10,
		CriticalPathSize: 5,
		Rates:            finance.DefaultRates(),
	}
}

// Request is one analysis job.
type Request struct {
	ProjectName string           `json:"project_name"`
	TotalBudget float64          `json:"total_budget"`
	Items       []model.WorkItem `json:"items"`
}

// Analyzer runs analyses against a fixed catalog. Safe for concurrent use.
type Analyzer struct {
	dec  *decompose.Decomposer
	opts Options
}

// New builds an Analyzer over the given catalog.
func New(cat *catalog.Catalog, opts Options) *Analyzer {
	if opts.Workers <= 0 {
		opts.Workers = 8
	}
	return &Analyzer{
		dec:  decompose.New(cat, opts.Rates.Overhead, opts.CrewSize),
		opts: opts,
	}
}

// Analyze runs one full analysis. Items are decomposed concurrently but the
// output keeps request order, so identical requests always produce identical
// results apart from the generated ID and timestamp.
func (a *Analyzer) Analyze(ctx context.Context, req Request) (*model.BOQAnalysis, error) {
	if len(req.Items) == 0 {
		return nil, eris.Wrap(model.ErrInvalidInput, "analyze: at least one work item is required")
	}
	if req.ProjectName == "" {
		req.ProjectName = "untitled project"
	}

	start := time.Now()

	items := make([]model.AnalyzedItem, len(req.Items))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(a.opts.Workers)
	for i, item := range req.Items {
		i, item := i, item
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			items[i] = a.dec.Decompose(normalizeItem(item, i))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, eris.Wrap(err, "analyze: decompose items")
	}

	summary := aggregate.Summarize(items)
	profit := finance.Build(summary, req.TotalBudget, a.opts.Rates)
	risks := risk.AssessProject(items, profit)

	analysis := &model.BOQAnalysis{
		ID:               uuid.NewString(),
		ProjectName:      req.ProjectName,
		TotalBudget:      req.TotalBudget,
		Items:            items,
		Summary:          summary,
		Profit:           profit,
		MaterialSummary:  aggregate.Materials(items),
		LaborSummary:     aggregate.Labor(items),
		EquipmentSummary: aggregate.Equipment(items),
		Risks:            risks,
		Recommendations:  risk.Recommendations(items, profit),
		Timeline:         aggregate.BuildTimeline(items, a.opts.CrewSize, a.opts.CriticalPathSize),
		CreatedAt:        time.Now().UTC(),
	}

	zap.L().Info("analyze: analysis complete",
		zap.String("project", req.ProjectName),
		zap.Int("items", len(items)),
		zap.Float64("direct_cost", summary.TotalDirectCost),
		zap.Int("risks", len(risks)),
		zap.Duration("elapsed", time.Since(start)))

	return analysis, nil
}

// normalizeItem substitutes safe defaults rather than failing: a blank
// description gets a numbered placeholder and a non-positive quantity
// defaults to one unit.
func normalizeItem(item model.WorkItem, idx int) model.WorkItem {
	if item.No == 0 {
		item.No = idx + 1
	}
	if item.Description == "" {
		item.Description = fmt.Sprintf("work item %d", item.No)
	}
	if item.Quantity <= 0 {
		item.Quantity = 1
	}
	return item
}
