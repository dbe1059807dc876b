package models

import "time"

// TrendDirection classifies where a player's short-window form sits
// relative to their long-window baseline.
type TrendDirection string

const (
	TrendUp     TrendDirection = "UP"
	TrendDown   TrendDirection = "DOWN"
	TrendStable TrendDirection = "STABLE"
)

// ConfidenceTier grades how much sample the classification rests on.
// It reflects sample sufficiency only, not statistical significance.
type ConfidenceTier string

const (
	ConfidenceLow    ConfidenceTier = "LOW"
	ConfidenceMedium ConfidenceTier = "MEDIUM"
	ConfidenceHigh   ConfidenceTier = "HIGH"
)

// FormLabel summarizes recent form against the long-window baseline.
type FormLabel string

const (
	FormHot     FormLabel = "HOT"
	FormCold    FormLabel = "COLD"
	FormNeutral FormLabel = "NEUTRAL"
)

// InjuryState is the designation published by the injury feed.
type InjuryState string

const (
	InjuryActive       InjuryState = "ACTIVE"
	InjuryQuestionable InjuryState = "QUESTIONABLE"
	InjuryOut          InjuryState = "OUT"
	InjuryReturning    InjuryState = "RETURNING"
)

// WindowStats are rolling statistics over the most recent N games of a
// log. Always recomputed on demand, never persisted.
type WindowStats struct {
	Mean       float64 `json:"mean"`
	StdDev     float64 `json:"std_dev"`
	Count      int     `json:"count"`
	WindowSize int     `json:"window_size"`
	// Outliers holds window-relative indexes of games more than two
	// standard deviations from the window mean. Advisory only; flagged
	// games still count toward the mean and deviation.
	Outliers []int `json:"outliers,omitempty"`
}

// TrendResult pairs a direction with the sample tier backing it.
type TrendResult struct {
	Direction  TrendDirection `json:"direction"`
	Confidence ConfidenceTier `json:"confidence"`
}

// MatchupStats describe a player's history against one opponent.
type MatchupStats struct {
	OpponentID      string      `json:"opponent_id"`
	Average         float64     `json:"average"`
	Max             float64     `json:"max"`
	Min             float64     `json:"min"`
	StdDev          float64     `json:"std_dev"`
	GamesPlayed     int         `json:"games_played"`
	Trend           TrendResult `json:"trend"`
	LastPerformance float64     `json:"last_performance"`
	LastMatchupDate time.Time   `json:"last_matchup_date"`
}

// MatchupSummary is the condensed matchup view embedded in a suggestion.
type MatchupSummary struct {
	OpponentID      string         `json:"opponent_id"`
	Average         float64        `json:"average"`
	GamesPlayed     int            `json:"games_played"`
	LastPerformance float64        `json:"last_performance"`
	LastMatchupDate time.Time      `json:"last_matchup_date"`
	Trend           TrendDirection `json:"trend"`
}

// InjuryStatus is owned by the injury feed; the core only reads it.
type InjuryStatus struct {
	PlayerID         string      `json:"player_id"`
	State            InjuryState `json:"state"`
	GamesSinceReturn int         `json:"games_since_return"`
	Detail           string      `json:"detail,omitempty"`
	UpdatedAt        time.Time   `json:"updated_at,omitempty"`
}

// TrendReport exposes the two windows behind a trend classification.
type TrendReport struct {
	PlayerID string      `json:"player_id"`
	Metric   string      `json:"metric"`
	Short    WindowStats `json:"short_window"`
	Long     WindowStats `json:"long_window"`
	Trend    TrendResult `json:"trend"`
}

// LineSuggestion is the final output of the suggester. Built fresh per
// request and never mutated after construction.
type LineSuggestion struct {
	PlayerID            string          `json:"player_id"`
	Metric              string          `json:"metric"`
	SuggestedLine       float64         `json:"suggested_line"`
	IntervalLow         float64         `json:"interval_low"`
	IntervalHigh        float64         `json:"interval_high"`
	Confidence          float64         `json:"confidence"`
	RecentForm          FormLabel       `json:"recent_form"`
	Trend               TrendResult     `json:"trend"`
	ShortWindowMean     float64         `json:"short_window_mean"`
	LongWindowMean      float64         `json:"long_window_mean"`
	RecentValues        []float64       `json:"recent_values"`
	InjuryMultiplier    float64         `json:"injury_multiplier"`
	VsOpponent          *MatchupSummary `json:"vs_opponent"`
	ContributingFactors []string        `json:"contributing_factors"`
	GeneratedAt         time.Time       `json:"generated_at"`
}

// Pick is a directional call against a market line.
type Pick string

const (
	PickOver  Pick = "OVER"
	PickUnder Pick = "UNDER"
	PickAvoid Pick = "AVOID"
)

// Recommendation is an over/under call against a caller-supplied line.
type Recommendation struct {
	PlayerID      string          `json:"player_id"`
	Metric        string          `json:"metric"`
	Line          float64         `json:"line"`
	ShortMean     float64         `json:"short_mean"`
	LongMean      float64         `json:"long_mean"`
	TrendStrength float64         `json:"trend_strength"`
	Trend         TrendDirection  `json:"trend"`
	Pick          Pick            `json:"pick"`
	Confidence    ConfidenceTier  `json:"confidence"`
	VsOpponent    *MatchupSummary `json:"vs_opponent"`
}
