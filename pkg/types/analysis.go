// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// TrendDirection classifies citation momentum for a topic.
type TrendDirection string

const (
	TrendHeatingUp   TrendDirection = "heating_up"
	TrendCoolingDown TrendDirection = "cooling_down"
	TrendStable      TrendDirection = "stable"
)

// ChartData holds the per-year averages backing the trend chart.
type ChartData struct {
	// Years lists the years with data, ascending.
	Years []int `json:"years" yaml:"years"`

	// Citations holds the average citations per paper for each year.
	Citations []float64 `json:"citations" yaml:"citations"`
}

// TrendAnalysis summarizes citation momentum for the analyzed topic.
type TrendAnalysis struct {
	// TrendDirection is heating_up, cooling_down, or stable.
	TrendDirection TrendDirection `json:"trend_direction" yaml:"trend_direction"`

	// GrowthPercentage compares recent vs older average citations.
	GrowthPercentage float64 `json:"growth_percentage" yaml:"growth_percentage"`

	// RecentAvgCitations is the average for the recent window.
	RecentAvgCitations float64 `json:"recent_avg_citations" yaml:"recent_avg_citations"`

	// OlderAvgCitations is the average for the older window.
	OlderAvgCitations float64 `json:"older_avg_citations" yaml:"older_avg_citations"`

	// ChartData backs the per-year chart.
	ChartData ChartData `json:"chart_data" yaml:"chart_data"`

	// TotalPapersAnalyzed counts the papers behind the trend score.
	TotalPapersAnalyzed int `json:"total_papers_analyzed" yaml:"total_papers_analyzed"`
}

// YearRange bounds the publication years of the analyzed papers.
type YearRange struct {
	Min int `json:"min" yaml:"min"`
	Max int `json:"max" yaml:"max"`
}

// PaperSummary holds aggregate statistics over the retrieved papers.
type PaperSummary struct {
	// TotalPapers counts the papers retrieved for the topic.
	TotalPapers int `json:"total_papers" yaml:"total_papers"`

	// YearRange bounds the publication years. Nil when no years are known.
	YearRange *YearRange `json:"year_range" yaml:"year_range"`

	// TotalCitations sums citation counts across papers.
	TotalCitations int `json:"total_citations" yaml:"total_citations"`

	// AvgCitations is the mean citation count per paper.
	AvgCitations float64 `json:"avg_citations" yaml:"avg_citations"`
}

// AnalysisResult is the backend's full answer for one analyzed topic:
// trend statistics plus the candidate insights the proposal is built from.
type AnalysisResult struct {
	// Status is "success" on a well-formed response.
	Status string `json:"status" yaml:"status"`

	// Topic echoes the analyzed topic.
	Topic string `json:"topic" yaml:"topic"`

	// PaperSummary aggregates the retrieved papers.
	PaperSummary PaperSummary `json:"paper_summary" yaml:"paper_summary"`

	// TrendAnalysis summarizes citation momentum.
	TrendAnalysis TrendAnalysis `json:"trend_analysis" yaml:"trend_analysis"`

	// ResearchGaps lists the identified gaps in current research.
	ResearchGaps []string `json:"research_gaps" yaml:"research_gaps"`

	// ResearchQuestions lists candidate research questions.
	ResearchQuestions []string `json:"research_questions" yaml:"research_questions"`

	// MethodologySuggestions lists candidate methodologies.
	MethodologySuggestions []string `json:"methodology_suggestions" yaml:"methodology_suggestions"`

	// NoveltyAssessment is a short prose assessment of topic novelty.
	NoveltyAssessment string `json:"novelty_assessment" yaml:"novelty_assessment"`

	// References lists the retrieved papers as APA reference entries,
	// in citation order.
	References []Reference `json:"references" yaml:"references"`

	// FromCache reports whether the backend served a cached result.
	FromCache bool `json:"from_cache" yaml:"from_cache"`
}
