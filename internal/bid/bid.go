// Package bid recommends tender bid prices from project parameters and
// historical bidding outcomes.
package bid

import (
	"math"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/tendercraft/tender-cli/internal/model"
	"github.com/tendercraft/tender-cli/internal/risk"
)

var printer = message.NewPrinter(language.English)

// Config tunes the recommendation heuristics.
type Config struct {
	// BaseCostRatio estimates cost as this fraction of budget before the
	// complexity adjustment.
	BaseCostRatio float64
	// ComplexityPerReq inflates the cost estimate per listed requirement.
	ComplexityPerReq float64
	// DefaultBidRatio is the assumed competitor bid level when no
	// same-category history exists.
	DefaultBidRatio float64
	// MinMarkup floors the recommended bid at estimated cost times this.
	MinMarkup float64
	// LargeProjectBudget is the budget above which project size adds risk.
	LargeProjectBudget float64
}

// DefaultConfig returns the standard tuning.
func DefaultConfig() Config {
	return Config{
		BaseCostRatio:      0.65,
		ComplexityPerReq:   0.02,
		DefaultBidRatio:    0.85,
		MinMarkup:          1.10,
		LargeProjectBudget: 50_000_000,
	}
}

// Engine produces bid recommendations. Stateless and safe for concurrent use.
type Engine struct {
	cfg Config
}

// New builds an Engine.
func New(cfg Config) *Engine {
	return &Engine{cfg: cfg}
}

// Recommend analyzes one project against the supplied history and returns a
// full recommendation. Missing or off-category history is not an error; the
// engine degrades to budget-derived defaults and reports low confidence.
// now anchors the deadline risk check so results are reproducible.
func (e *Engine) Recommend(project model.BidProject, history []model.HistoricalBid, now time.Time) (*model.BidRecommendation, error) {
	if project.Name == "" {
		return nil, eris.Wrap(model.ErrInvalidInput, "bid: project name is required")
	}
	if project.Budget <= 0 {
		return nil, eris.Wrap(model.ErrInvalidInput, "bid: project budget must be positive")
	}
	if project.CompetitorCount < 0 {
		return nil, eris.Wrap(model.ErrInvalidInput, "bid: competitor count cannot be negative")
	}

	estimatedCost := e.estimateCost(project)
	insight := e.analyzeCompetitors(project, history)
	recommendedBid := e.recommendBid(project, estimatedCost, insight, history)
	winProbability := e.winProbability(recommendedBid, project, history)

	estimatedProfit := recommendedBid - estimatedCost
	profitMargin := estimatedProfit / recommendedBid * 100

	riskLevel, riskFactors := risk.ScoreBid(project, profitMargin, e.cfg.LargeProjectBudget, now)

	rec := &model.BidRecommendation{
		ProjectID:         project.ID,
		ProjectName:       project.Name,
		RecommendedBid:    recommendedBid,
		MinBid:            estimatedCost * 1.05,
		MaxBid:            project.Budget * 0.95,
		WinProbability:    winProbability,
		ConfidenceLevel:   confidence(len(history)),
		EstimatedCost:     estimatedCost,
		EstimatedProfit:   estimatedProfit,
		ProfitMargin:      profitMargin,
		RiskLevel:         riskLevel,
		RiskFactors:       riskFactors,
		CompetitorInsight: insight,
		Recommendations:   actionItems(profitMargin, winProbability, riskLevel),
		KeyFactors:        keyFactors(project, history),
		Reasoning:         reasoning(recommendedBid, project.Budget, winProbability, profitMargin),
	}
	rec.Strategies = strategies(rec)

	zap.L().Debug("bid: recommendation built",
		zap.String("project", project.Name),
		zap.Float64("recommended_bid", rec.RecommendedBid),
		zap.Float64("win_probability", rec.WinProbability),
		zap.String("risk_level", string(rec.RiskLevel)))

	return rec, nil
}

// estimateCost approximates execution cost from the budget, inflated by the
// number of technical requirements.
func (e *Engine) estimateCost(project model.BidProject) float64 {
	baseCost := project.Budget * e.cfg.BaseCostRatio
	complexity := float64(len(project.Requirements)) * e.cfg.ComplexityPerReq
	return math.Round(baseCost * (1 + complexity))
}

// analyzeCompetitors summarizes same-category history. Without any, it
// assumes competitors bid at DefaultBidRatio of budget with a 10% discount.
func (e *Engine) analyzeCompetitors(project model.BidProject, history []model.HistoricalBid) model.CompetitorInsight {
	similar := filterCategory(history, project.Category)
	if len(similar) == 0 {
		return model.CompetitorInsight{
			AverageCompetitorBid:       project.Budget * e.cfg.DefaultBidRatio,
			RecommendedDiscountPercent: 10,
			CompetitiveAdvantages:      []string{"no competitor data in this category yet"},
		}
	}

	var sum float64
	for _, h := range similar {
		sum += h.WinningBid
	}
	avgWinningBid := sum / float64(len(similar))
	avgDiscount := (project.Budget - avgWinningBid) / project.Budget * 100

	return model.CompetitorInsight{
		AverageCompetitorBid:       avgWinningBid,
		RecommendedDiscountPercent: math.Round(avgDiscount),
		CompetitiveAdvantages:      advantages(project, similar),
	}
}

// recommendBid starts from the average competitor bid and applies the
// cost floor, the crowded-field discount, and the low-win-rate discount.
func (e *Engine) recommendBid(project model.BidProject, estimatedCost float64, insight model.CompetitorInsight, history []model.HistoricalBid) float64 {
	bid := insight.AverageCompetitorBid

	if minAcceptable := estimatedCost * e.cfg.MinMarkup; bid < minAcceptable {
		bid = minAcceptable
	}

	if project.CompetitorCount > 5 {
		bid *= 0.97
	}

	if categoryWinRate(history, project.Category) < 0.3 {
		bid *= 0.95
	}

	return math.Round(bid)
}

// winProbability estimates the chance of winning at the given bid. With no
// same-category history it extrapolates from the discount alone; otherwise
// it uses the empirical win rate of past bids within 10% of this one.
// Either way the result is clamped to [5, 95].
func (e *Engine) winProbability(bid float64, project model.BidProject, history []model.HistoricalBid) float64 {
	discount := (project.Budget - bid) / project.Budget * 100

	similar := filterCategory(history, project.Category)
	if len(similar) == 0 {
		return clamp(50+discount*2, 5, 95)
	}

	bidRange := bid * 0.1
	var window []model.HistoricalBid
	for _, h := range similar {
		if math.Abs(h.OurBid-bid) <= bidRange {
			window = append(window, h)
		}
	}
	if len(window) == 0 {
		return 50
	}

	won := 0
	for _, h := range window {
		if h.Won {
			won++
		}
	}
	winRate := float64(won) / float64(len(window)) * 100

	return clamp(winRate+(discount-10)*2, 5, 95)
}

func confidence(historyCount int) model.ConfidenceLevel {
	switch {
	case historyCount < 5:
		return model.ConfidenceLow
	case historyCount < 15:
		return model.ConfidenceMedium
	default:
		return model.ConfidenceHigh
	}
}

func actionItems(profitMargin, winProbability float64, riskLevel model.RiskLevel) []model.ActionItem {
	var items []model.ActionItem

	if profitMargin < 10 {
		items = append(items, model.ActionItem{
			Type:     "pricing",
			Priority: "high",
			Message:  "profit is thin; consider raising the bid or cutting cost",
			Action:   "review the cost estimate line by line",
		})
	} else if profitMargin > 30 {
		items = append(items, model.ActionItem{
			Type:     "pricing",
			Priority: "medium",
			Message:  "profit is generous; a lower bid could improve the win chance",
			Action:   "consider a 5-10% price reduction",
		})
	}

	if winProbability < 40 {
		items = append(items, model.ActionItem{
			Type:     "strategy",
			Priority: "high",
			Message:  "win chance is low; compete on quality and differentiation",
			Action:   "strengthen the technical proposal",
		})
	} else if winProbability > 80 {
		items = append(items, model.ActionItem{
			Type:     "opportunity",
			Priority: "medium",
			Message:  "win chance is high; there may be room for more profit",
			Action:   "consider a small price increase",
		})
	}

	if riskLevel == model.RiskHigh || riskLevel == model.RiskVeryHigh {
		items = append(items, model.ActionItem{
			Type:     "risk",
			Priority: "high",
			Message:  "overall risk is high; proceed with caution",
			Action:   "reassess the risk factors before submitting",
		})
	}

	return items
}

func keyFactors(project model.BidProject, history []model.HistoricalBid) []model.KeyFactor {
	var factors []model.KeyFactor

	avgBudget := project.Budget
	if len(history) > 0 {
		var sum float64
		for _, h := range history {
			sum += h.Budget
		}
		avgBudget = sum / float64(len(history))
	}
	if project.Budget > avgBudget*1.5 {
		factors = append(factors, model.KeyFactor{
			Factor:      "project size",
			Impact:      "positive",
			Weight:      0.8,
			Description: "budget is well above the historical average; a good opportunity",
		})
	}

	if project.CompetitorCount > 0 && project.CompetitorCount < 5 {
		factors = append(factors, model.KeyFactor{
			Factor:      "competition",
			Impact:      "positive",
			Weight:      0.7,
			Description: "few competitors; good chance of winning",
		})
	} else if project.CompetitorCount > 10 {
		factors = append(factors, model.KeyFactor{
			Factor:      "competition",
			Impact:      "negative",
			Weight:      0.6,
			Description: "many competitors; expect aggressive pricing",
		})
	}

	categoryHistory := filterCategory(history, project.Category)
	if len(categoryHistory) > 5 {
		winRate := categoryWinRate(history, project.Category)
		impact := "negative"
		if winRate > 0.5 {
			impact = "positive"
		}
		factors = append(factors, model.KeyFactor{
			Factor: "experience",
			Impact: impact,
			Weight: 0.9,
			Description: printer.Sprintf("%d projects in this category with a %.0f%% win rate",
				len(categoryHistory), winRate*100),
		})
	}

	return factors
}

func advantages(project model.BidProject, categoryHistory []model.HistoricalBid) []string {
	var out []string

	if len(categoryHistory) > 0 {
		won := 0
		for _, h := range categoryHistory {
			if h.Won {
				won++
			}
		}
		if float64(won)/float64(len(categoryHistory)) > 0.6 {
			out = append(out, "strong track record in this category")
		}
	}

	if project.CompetitorCount > 0 && project.CompetitorCount < 5 {
		out = append(out, "few competitors in the field")
	}

	if len(out) == 0 {
		out = append(out, "compete on quality and reliability")
	}
	return out
}

// strategies derives the aggressive and conservative price variants from the
// baseline. Margins are recomputed against the same cost estimate.
func strategies(rec *model.BidRecommendation) []model.BidStrategy {
	aggressiveBid := rec.RecommendedBid * 0.95
	conservativeBid := rec.RecommendedBid * 1.05

	return []model.BidStrategy{
		{
			Name:           "aggressive",
			Description:    "bid low to maximize the win chance",
			RecommendedBid: aggressiveBid,
			WinProbability: math.Min(95, rec.WinProbability+15),
			ProfitMargin:   (aggressiveBid - rec.EstimatedCost) / aggressiveBid * 100,
			Pros:           []string{"best chance of winning", "highly competitive price"},
			Cons:           []string{"thin profit", "little buffer for cost overruns"},
		},
		{
			Name:           "moderate",
			Description:    "balance the win chance against profit",
			RecommendedBid: rec.RecommendedBid,
			WinProbability: rec.WinProbability,
			ProfitMargin:   rec.ProfitMargin,
			Pros:           []string{"balanced position", "reasonable profit", "moderate risk"},
			Cons:           []string{"may lose to a lower bidder"},
		},
		{
			Name:           "conservative",
			Description:    "prioritize profit over the win chance",
			RecommendedBid: conservativeBid,
			WinProbability: math.Max(5, rec.WinProbability-15),
			ProfitMargin:   (conservativeBid - rec.EstimatedCost) / conservativeBid * 100,
			Pros:           []string{"strong profit", "low execution risk"},
			Cons:           []string{"lower win chance", "competitors may undercut"},
		},
	}
}

func reasoning(bid, budget, winProbability, profitMargin float64) string {
	discount := (budget - bid) / budget * 100
	return printer.Sprintf(
		"recommended bid %.0f baht (%.1f%% below budget) with a %.0f%% win chance and a %.1f%% margin, balancing the odds of winning against profit",
		bid, discount, winProbability, profitMargin)
}

func filterCategory(history []model.HistoricalBid, category string) []model.HistoricalBid {
	var out []model.HistoricalBid
	for _, h := range history {
		if h.Category == category {
			out = append(out, h)
		}
	}
	return out
}

// categoryWinRate defaults to 0.5 when there is no same-category history, so
// an empty track record neither rewards nor penalizes the bid.
func categoryWinRate(history []model.HistoricalBid, category string) float64 {
	similar := filterCategory(history, category)
	if len(similar) == 0 {
		return 0.5
	}
	won := 0
	for _, h := range similar {
		if h.Won {
			won++
		}
	}
	return float64(won) / float64(len(similar))
}

func clamp(v, lo, hi float64) float64 {
	return math.Min(hi, math.Max(lo, v))
}
