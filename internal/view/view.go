// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package view renders analyses, proposal previews, and the history list
// for the terminal. Styles only decorate: every derived proposal text is
// printed verbatim from the preview view model.
package view

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/pdiddy/researchlens/internal/history"
	"github.com/pdiddy/researchlens/internal/synthesis"
	"github.com/pdiddy/researchlens/pkg/types"
)

// Styles holds the lipgloss styles shared by all terminal views.
type Styles struct {
	Title      lipgloss.Style
	Section    lipgloss.Style
	Subsection lipgloss.Style
	Label      lipgloss.Style
	Muted      lipgloss.Style
	Good       lipgloss.Style
	Bad        lipgloss.Style
}

// DefaultStyles returns the default terminal styling.
func DefaultStyles() Styles {
	return Styles{
		Title:      lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7C3AED")),
		Section:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#06B6D4")),
		Subsection: lipgloss.NewStyle().Italic(true),
		Label:      lipgloss.NewStyle().Bold(true),
		Muted:      lipgloss.NewStyle().Foreground(lipgloss.Color("#6C7086")),
		Good:       lipgloss.NewStyle().Foreground(lipgloss.Color("#A6E3A1")),
		Bad:        lipgloss.NewStyle().Foreground(lipgloss.Color("#F38BA8")),
	}
}

// Renderer writes terminal views to one writer.
type Renderer struct {
	w      io.Writer
	styles Styles
}

// NewRenderer builds a terminal renderer with the default styles.
func NewRenderer(w io.Writer) *Renderer {
	return &Renderer{w: w, styles: DefaultStyles()}
}

// trendGlyph maps a trend direction to its indicator and style.
func (r *Renderer) trendGlyph(d types.TrendDirection) string {
	switch d {
	case types.TrendHeatingUp:
		return r.styles.Good.Render("▲ heating up")
	case types.TrendCoolingDown:
		return r.styles.Bad.Render("▼ cooling down")
	default:
		return r.styles.Muted.Render("◆ stable")
	}
}

// Analysis renders the backend's analysis result: trend summary, paper
// statistics, and the candidate insight lists.
func (r *Renderer) Analysis(result *types.AnalysisResult) {
	fmt.Fprintln(r.w, r.styles.Title.Render("Analysis: "+result.Topic))
	if result.FromCache {
		fmt.Fprintln(r.w, r.styles.Muted.Render("(served from backend cache)"))
	}
	fmt.Fprintln(r.w)

	trend := result.TrendAnalysis
	fmt.Fprintf(r.w, "%s %s  %+.1f%% (recent %.1f vs older %.1f avg citations, %d papers)\n",
		r.styles.Label.Render("Trend:"), r.trendGlyph(trend.TrendDirection),
		trend.GrowthPercentage, trend.RecentAvgCitations, trend.OlderAvgCitations,
		trend.TotalPapersAnalyzed)

	summary := result.PaperSummary
	fmt.Fprintf(r.w, "%s %d papers, %d total citations (%.1f avg)",
		r.styles.Label.Render("Papers:"), summary.TotalPapers,
		summary.TotalCitations, summary.AvgCitations)
	if yr := summary.YearRange; yr != nil {
		fmt.Fprintf(r.w, ", %d-%d", yr.Min, yr.Max)
	}
	fmt.Fprintln(r.w)

	r.insightList("Research Gaps", result.ResearchGaps)
	r.insightList("Research Questions", result.ResearchQuestions)
	r.insightList("Methodology Suggestions", result.MethodologySuggestions)

	if result.NoveltyAssessment != "" {
		fmt.Fprintln(r.w)
		fmt.Fprintln(r.w, r.styles.Section.Render("Novelty Assessment"))
		fmt.Fprintln(r.w, result.NoveltyAssessment)
	}

	if len(result.References) > 0 {
		fmt.Fprintln(r.w)
		fmt.Fprintln(r.w, r.styles.Section.Render("References"))
		for _, ref := range result.References {
			fmt.Fprintf(r.w, "[%d] %s\n", ref.Number, ref.Reference)
		}
	}
}

func (r *Renderer) insightList(title string, items []string) {
	if len(items) == 0 {
		return
	}
	fmt.Fprintln(r.w)
	fmt.Fprintln(r.w, r.styles.Section.Render(title))
	for i, item := range items {
		fmt.Fprintf(r.w, "%d. %s\n", i+1, item)
	}
}

// Preview renders the proposal preview view model.
func (r *Renderer) Preview(p *synthesis.Preview) {
	fmt.Fprintln(r.w, r.styles.Title.Render(p.Title))
	fmt.Fprintln(r.w)
	fmt.Fprintln(r.w, r.styles.Section.Render("Abstract"))
	fmt.Fprintln(r.w, p.Abstract)
	fmt.Fprintf(r.w, "%s %s\n", r.styles.Label.Render("Keywords:"), p.Keywords)

	for _, sec := range p.Sections {
		fmt.Fprintln(r.w)
		fmt.Fprintln(r.w, r.styles.Section.Render(sec.Heading))
		for _, block := range sec.Blocks {
			if block.Heading != "" {
				fmt.Fprintln(r.w, r.styles.Subsection.Render(block.Heading))
			}
			if block.Body != "" {
				fmt.Fprintln(r.w, block.Body)
			}
			for _, item := range block.Items {
				fmt.Fprintln(r.w, item)
			}
			if block.Table != nil {
				r.table(block.Table)
			}
		}
	}
}

// table renders a fixed tabular dataset with padded columns.
func (r *Renderer) table(t *types.Table) {
	widths := make([]int, len(t.Columns))
	for i, col := range t.Columns {
		widths[i] = len(col)
	}
	for _, row := range t.Rows {
		for i, cell := range row {
			if i < len(widths) && len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}

	line := func(cells []string) string {
		padded := make([]string, len(cells))
		for i, cell := range cells {
			padded[i] = fmt.Sprintf("%-*s", widths[i], cell)
		}
		return strings.TrimRight(strings.Join(padded, "  "), " ")
	}

	fmt.Fprintln(r.w, r.styles.Label.Render(line(t.Columns)))
	for _, row := range t.Rows {
		fmt.Fprintln(r.w, line(row))
	}
}

// History renders the history listing, newest first.
func (r *Renderer) History(entries []*history.Entry) {
	if len(entries) == 0 {
		fmt.Fprintln(r.w, "No history.")
		return
	}

	for _, e := range entries {
		marker := r.styles.Muted.Render("analysis")
		if e.Proposal != nil {
			marker = r.styles.Good.Render("proposal")
		}
		fmt.Fprintf(r.w, "%s  %s  %s\n",
			e.CreatedAt.Local().Format("2006-01-02 15:04"), marker, e.Topic)
	}
}
