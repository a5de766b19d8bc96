package model

import "time"

// ConfidenceLevel grades how much history backs a recommendation.
type ConfidenceLevel string

const (
	ConfidenceLow    ConfidenceLevel = "low"
	ConfidenceMedium ConfidenceLevel = "medium"
	ConfidenceHigh   ConfidenceLevel = "high"
)

// BidProject describes a tender under consideration.
type BidProject struct {
	ID              string    `json:"id,omitempty"`
	Name            string    `json:"name"`
	Category        string    `json:"category"`
	Budget          float64   `json:"budget"`
	Deadline        time.Time `json:"deadline"`
	Requirements    []string  `json:"requirements,omitempty"`
	CompetitorCount int       `json:"competitor_count,omitempty"`
}

// HistoricalBid is one past tender outcome. Read-only reference data; the
// engine never mutates it.
type HistoricalBid struct {
	ID         string    `json:"id,omitempty"`
	Category   string    `json:"category"`
	Budget     float64   `json:"budget"`
	OurBid     float64   `json:"our_bid"`
	WinningBid float64   `json:"winning_bid"`
	Won        bool      `json:"won"`
	TenderDate time.Time `json:"tender_date,omitempty"`
}

// CompetitorInsight summarizes same-category competitive history.
type CompetitorInsight struct {
	AverageCompetitorBid       float64  `json:"average_competitor_bid"`
	RecommendedDiscountPercent float64  `json:"recommended_discount_percent"`
	CompetitiveAdvantages      []string `json:"competitive_advantages"`
}

// KeyFactor is a weighted factor behind a recommendation.
type KeyFactor struct {
	Factor      string  `json:"factor"`
	Impact      string  `json:"impact"` // "positive" or "negative"
	Weight      float64 `json:"weight"` // 0.0-1.0
	Description string  `json:"description"`
}

// ActionItem is an advisory recommendation attached to a bid analysis.
type ActionItem struct {
	Type     string `json:"type"`     // pricing, strategy, opportunity, risk
	Priority string `json:"priority"` // low, medium, high
	Message  string `json:"message"`
	Action   string `json:"action"`
}

// BidStrategy is one named bid-price variant derived from the baseline.
type BidStrategy struct {
	Name           string   `json:"strategy"` // aggressive, moderate, conservative
	Description    string   `json:"description"`
	RecommendedBid float64  `json:"recommended_bid"`
	WinProbability float64  `json:"win_probability"`
	ProfitMargin   float64  `json:"profit_margin"`
	Pros           []string `json:"pros"`
	Cons           []string `json:"cons"`
}

// BidRecommendation is the full output of the bid recommendation engine.
// Computed fresh per call; no persisted state.
type BidRecommendation struct {
	ProjectID   string `json:"project_id,omitempty"`
	ProjectName string `json:"project_name"`

	RecommendedBid float64 `json:"recommended_bid"`
	MinBid         float64 `json:"min_bid"`
	MaxBid         float64 `json:"max_bid"`

	WinProbability  float64         `json:"win_probability"` // 0-100, clamped to [5,95]
	ConfidenceLevel ConfidenceLevel `json:"confidence_level"`

	EstimatedCost   float64 `json:"estimated_cost"`
	EstimatedProfit float64 `json:"estimated_profit"`
	ProfitMargin    float64 `json:"profit_margin"` // percent of bid

	RiskLevel   RiskLevel `json:"risk_level"`
	RiskFactors []string  `json:"risk_factors"`

	CompetitorInsight CompetitorInsight `json:"competitor_insight"`
	Recommendations   []ActionItem      `json:"recommendations"`
	KeyFactors        []KeyFactor       `json:"key_factors"`
	Strategies        []BidStrategy     `json:"strategies"`

	Reasoning string `json:"reasoning"`
}
