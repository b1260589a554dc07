// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package synthesis

import (
	"fmt"
	"strings"

	"github.com/pdiddy/researchlens/pkg/types"
)

const (
	// abstractWordLimit caps the derived abstract.
	abstractWordLimit = 150

	// keywordMinLength is the exclusive length floor for topic keywords.
	keywordMinLength = 3

	// keywordLimit caps the derived keyword line.
	keywordLimit = 5

	// referenceLimit caps the rendered reference list.
	referenceLimit = 15

	// objectivePrefix replaces a stripped interrogative opener.
	objectivePrefix = "To investigate "
)

// interrogatives is the closed set of question openers stripped by the
// objective transform. Matched case-insensitively against the first word.
var interrogatives = map[string]bool{
	"what": true, "how": true, "why": true, "when": true, "where": true,
	"which": true, "can": true, "does": true, "do": true, "is": true,
	"are": true,
}

// Per-field fallback texts for degenerate narrative input.
const (
	introFallback    = "Background material for this topic is still being compiled."
	reviewFallback   = "The literature on this topic is still being surveyed."
	methodFallback   = "The study design for this topic is still being developed."
	outcomesFallback = "Anticipated outcomes for this topic are still being assessed."
)

// Build assembles the canonical section tree for a proposal. It is a pure
// function of its inputs: equal inputs produce structurally equal trees,
// and every call allocates a fresh tree. The detail level fixes the
// methodology and expected-outcomes granularity for every presentation of
// the returned document.
func Build(data types.ProposalData, refs []types.Reference, topic string, detail types.DetailLevel) *types.Document {
	doc := &types.Document{
		Title:    data.Title,
		Abstract: abstractText(data.Introduction),
		Keywords: keywordLine(topic),
	}

	doc.Sections = append(doc.Sections,
		introductionSection(data.Introduction),
		literatureSection(data.LiteratureReview),
		questionsSection(data.ResearchQuestions),
		methodologySection(data.Methodology, detail),
		outcomesSection(data.ExpectedOutcomes, detail),
		timelineSection(),
		budgetSection(),
		referencesSection(refs),
	)
	return doc
}

// abstractText returns the first 150 whitespace-delimited words of the
// introduction, with an ellipsis when more remain.
func abstractText(introduction string) string {
	words := strings.Fields(introduction)
	if len(words) <= abstractWordLimit {
		return strings.Join(words, " ")
	}
	return strings.Join(words[:abstractWordLimit], " ") + "..."
}

// keywordLine scans the topic in order, keeps words longer than 3
// characters, and joins the first 5 with ", ".
func keywordLine(topic string) string {
	var keywords []string
	for _, w := range strings.Fields(topic) {
		if len(w) <= keywordMinLength {
			continue
		}
		keywords = append(keywords, w)
		if len(keywords) == keywordLimit {
			break
		}
	}
	return strings.Join(keywords, ", ")
}

func introductionSection(introduction string) types.Section {
	titles := []string{"Background", "Problem Statement", "Significance", "Research Gap"}
	return proseSection("Introduction", titles, Segment(introduction, len(titles), introFallback))
}

func literatureSection(review string) types.Section {
	titles := []string{"Summary of Current Research", "Identified Gaps", "Theoretical Framework"}
	return proseSection("Literature Review", titles, Segment(review, len(titles), reviewFallback))
}

// questionsSection lists the research questions verbatim, then their
// objective transforms.
func questionsSection(questions []string) types.Section {
	numbered := make([]string, len(questions))
	for i, q := range questions {
		numbered[i] = fmt.Sprintf("%d. %s", i+1, q)
	}

	objectives := make([]string, len(questions))
	for i, q := range questions {
		objectives[i] = Objective(q)
	}

	return types.Section{
		Title: "Research Questions",
		Subsections: []types.Subsection{
			{Title: "Primary Questions", Items: numbered},
			{Title: "Objectives", Items: objectives},
		},
	}
}

// Objective rewrites a research question as a research objective: one
// trailing "?" is stripped, then the leading run of interrogative words
// ("What are", "How does", ...) is replaced by "To investigate ". A
// question with no interrogative opener keeps its text verbatim after
// the prefix.
func Objective(question string) string {
	rest := strings.TrimSuffix(question, "?")
	for {
		first, tail, ok := strings.Cut(rest, " ")
		if !ok || !interrogatives[strings.ToLower(first)] {
			return objectivePrefix + rest
		}
		rest = strings.TrimLeft(tail, " ")
	}
}

func methodologySection(methodology string, detail types.DetailLevel) types.Section {
	titles := []string{"Research Design", "Data Collection", "Analysis Methods"}
	if detail == types.DetailExpanded {
		titles = []string{"Research Design", "Data Collection", "Analysis Methods", "Validity and Reliability", "Ethical Considerations"}
	}
	return proseSection("Methodology", titles, Segment(methodology, len(titles), methodFallback))
}

func outcomesSection(outcomes string, detail types.DetailLevel) types.Section {
	if detail != types.DetailExpanded {
		body := outcomes
		if strings.TrimSpace(body) == "" {
			body = outcomesFallback
		}
		return types.Section{
			Title:       "Expected Outcomes",
			Subsections: []types.Subsection{{Body: body}},
		}
	}
	titles := []string{"Anticipated Results", "Contribution to the Field", "Practical Applications"}
	return proseSection("Expected Outcomes", titles, Segment(outcomes, len(titles), outcomesFallback))
}

// proseSection pairs subsection titles with segmented bodies.
func proseSection(title string, subtitles []string, bodies []string) types.Section {
	subs := make([]types.Subsection, len(subtitles))
	for i, t := range subtitles {
		subs[i] = types.Subsection{Title: t, Body: bodies[i]}
	}
	return types.Section{Title: title, Subsections: subs}
}

// timelineSection returns the fixed 5-phase project plan. The backend's
// free-text timeline field is superseded by this table.
func timelineSection() types.Section {
	return types.Section{
		Title: "Project Timeline",
		Subsections: []types.Subsection{{
			Table: &types.Table{
				Columns: []string{"Phase", "Activities", "Duration"},
				Rows: [][]string{
					{"Phase 1", "Literature review and research design", "Months 1-2"},
					{"Phase 2", "Data collection instruments and ethics approval", "Months 3-4"},
					{"Phase 3", "Data collection", "Months 5-8"},
					{"Phase 4", "Data analysis and interpretation", "Months 9-10"},
					{"Phase 5", "Writing and dissemination", "Months 11-12"},
				},
			},
		}},
	}
}

// budgetSection returns the fixed budget. The total is the literal
// "$10,000", not a computed sum.
func budgetSection() types.Section {
	return types.Section{
		Title: "Budget Estimate",
		Subsections: []types.Subsection{{
			Table: &types.Table{
				Columns: []string{"Item", "Cost"},
				Rows: [][]string{
					{"Equipment", "$2,500"},
					{"Data Collection", "$1,500"},
					{"Travel", "$3,000"},
					{"Publication", "$2,000"},
					{"Miscellaneous", "$1,000"},
					{"Total", "$10,000"},
				},
			},
		}},
	}
}

// referencesSection renders the first 15 references in citation order.
func referencesSection(refs []types.Reference) types.Section {
	if len(refs) > referenceLimit {
		refs = refs[:referenceLimit]
	}
	lines := make([]string, len(refs))
	for i, r := range refs {
		lines[i] = fmt.Sprintf("[%d] %s", r.Number, r.Reference)
	}
	return types.Section{
		Title:       "References",
		Subsections: []types.Subsection{{Items: lines}},
	}
}
