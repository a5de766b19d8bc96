package main

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/tendercraft/tender-cli/internal/bid"
	"github.com/tendercraft/tender-cli/internal/boqfile"
	"github.com/tendercraft/tender-cli/internal/model"
	"github.com/tendercraft/tender-cli/internal/store"
)

var (
	bidName         string
	bidCategory     string
	bidBudget       float64
	bidDeadline     string
	bidCompetitors  int
	bidRequirements []string
	bidHistoryFile  string
	bidFromStore    bool
	bidFormat       string
)

var bidCmd = &cobra.Command{
	Use:   "bid",
	Short: "Recommend a bid price for a tender",
	Long: `Estimates cost, analyzes competitors from historical outcomes, and
recommends a bid price with win probability, risk grading, and alternative
strategies.

Examples:
  # Recommend with history from a file
  tender-cli bid --name "School building" --category "building work" \
    --budget 10000000 --deadline 2026-10-01 --history bids.xlsx

  # Recommend with history from the store
  tender-cli bid --name "Road widening" --category "road work" \
    --budget 5000000 --deadline 2026-09-15 --from-store`,
	RunE: runBid,
}

func runBid(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	project := model.BidProject{
		Name:            bidName,
		Category:        bidCategory,
		Budget:          bidBudget,
		Requirements:    bidRequirements,
		CompetitorCount: bidCompetitors,
	}
	if bidDeadline != "" {
		d, err := time.Parse("2006-01-02", bidDeadline)
		if err != nil {
			return eris.Wrapf(err, "parse deadline %s", bidDeadline)
		}
		project.Deadline = d
	}

	var history []model.HistoricalBid
	switch {
	case bidHistoryFile != "":
		h, err := boqfile.ReadBids(bidHistoryFile)
		if err != nil {
			return err
		}
		history = h
	case bidFromStore:
		st, err := initStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close()

		if err := st.Migrate(ctx); err != nil {
			return eris.Wrap(err, "migrate store")
		}
		h, err := st.ListBids(ctx, store.HistoryFilter{Limit: 1000})
		if err != nil {
			return err
		}
		history = h
	}

	zap.L().Debug("bid: history loaded", zap.Int("records", len(history)))

	engine := bid.New(bidEngineConfig())
	rec, err := engine.Recommend(project, history, time.Now())
	if err != nil {
		return err
	}

	return writeRecommendation(rec, bidFormat)
}

func bidEngineConfig() bid.Config {
	return bid.Config{
		BaseCostRatio:      cfg.Bid.BaseCostRatio,
		ComplexityPerReq:   cfg.Bid.ComplexityPerReq,
		DefaultBidRatio:    cfg.Bid.DefaultBidRatio,
		MinMarkup:          cfg.Bid.MinMarkup,
		LargeProjectBudget: cfg.Bid.LargeProjectBudget,
	}
}

func writeRecommendation(rec *model.BidRecommendation, format string) error {
	if format == "json" {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return eris.Wrap(enc.Encode(rec), "encode recommendation")
	}

	p := moneyPrinter
	fmt.Printf("Project: %s\n\n", rec.ProjectName)
	p.Printf("Recommended bid: %.2f (range %.2f - %.2f)\n", rec.RecommendedBid, rec.MinBid, rec.MaxBid)
	p.Printf("Win probability: %.0f%% (confidence %s)\n", rec.WinProbability, rec.ConfidenceLevel)
	p.Printf("Estimated cost:  %.2f\n", rec.EstimatedCost)
	p.Printf("Estimated profit: %.2f (%.1f%%)\n", rec.EstimatedProfit, rec.ProfitMargin)
	fmt.Printf("Risk level: %s\n", rec.RiskLevel)
	for _, f := range rec.RiskFactors {
		fmt.Printf("  - %s\n", f)
	}

	fmt.Println("\nStrategies:")
	for _, s := range rec.Strategies {
		p.Printf("  %-12s bid %.2f, win %.0f%%, margin %.1f%%\n",
			s.Name, s.RecommendedBid, s.WinProbability, s.ProfitMargin)
	}

	if len(rec.Recommendations) > 0 {
		fmt.Println("\nActions:")
		for _, a := range rec.Recommendations {
			fmt.Printf("  [%s/%s] %s: %s\n", a.Type, a.Priority, a.Message, a.Action)
		}
	}

	fmt.Printf("\n%s\n", rec.Reasoning)
	return nil
}

func init() {
	bidCmd.Flags().StringVar(&bidName, "name", "", "project name")
	bidCmd.Flags().StringVar(&bidCategory, "category", "", "project category")
	bidCmd.Flags().Float64Var(&bidBudget, "budget", 0, "project budget")
	bidCmd.Flags().StringVar(&bidDeadline, "deadline", "", "submission deadline (YYYY-MM-DD)")
	bidCmd.Flags().IntVar(&bidCompetitors, "competitors", 0, "expected competitor count")
	bidCmd.Flags().StringSliceVar(&bidRequirements, "requirement", nil, "technical requirement (repeatable)")
	bidCmd.Flags().StringVar(&bidHistoryFile, "history", "", "historical bids file (.json or .xlsx)")
	bidCmd.Flags().BoolVar(&bidFromStore, "from-store", false, "load history from the store")
	bidCmd.Flags().StringVar(&bidFormat, "format", "text", "output format: text or json")
	bidCmd.MarkFlagRequired("name")
	bidCmd.MarkFlagRequired("budget")
	rootCmd.AddCommand(bidCmd)
}
