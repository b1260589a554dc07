// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package synthesis

import (
	"fmt"
	"reflect"
	"strings"
	"testing"

	"github.com/pdiddy/researchlens/pkg/types"
)

// sampleProposal returns a ProposalData with enough sentences in every
// narrative field that no fallback triggers.
func sampleProposal() types.ProposalData {
	return types.ProposalData{
		Title:            "Generative Models in Clinical Diagnosis",
		Introduction:     sentenceText(8),
		LiteratureReview: sentenceText(6),
		ResearchQuestions: []string{
			"What are the key barriers?",
			"How does model scale affect accuracy?",
			"Quantum coherence matters.",
		},
		Methodology:      sentenceText(10),
		ExpectedOutcomes: sentenceText(6),
		Timeline:         "12-18 months in five phases",
	}
}

func sampleReferences(n int) []types.Reference {
	refs := make([]types.Reference, n)
	for i := range refs {
		refs[i] = types.Reference{
			Number:    i + 1,
			Reference: fmt.Sprintf("Author%d (2024). Paper %d.", i+1, i+1),
		}
	}
	return refs
}

// findSection fails the test if the document has no section with the title.
func findSection(t *testing.T, doc *types.Document, title string) types.Section {
	t.Helper()
	for _, s := range doc.Sections {
		if s.Title == title {
			return s
		}
	}
	t.Fatalf("document has no %q section", title)
	return types.Section{}
}

func TestAbstractText(t *testing.T) {
	word := "word "
	tests := []struct {
		name     string
		words    int
		ellipsis bool
	}{
		{"under limit", 20, false},
		{"exactly 150", 150, false},
		{"151 words", 151, true},
		{"well over", 400, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			intro := strings.TrimSpace(strings.Repeat(word, tt.words))
			got := abstractText(intro)

			if got := strings.HasSuffix(got, "..."); got != tt.ellipsis {
				t.Fatalf("ellipsis = %v, want %v", got, tt.ellipsis)
			}
			wantWords := tt.words
			if wantWords > 150 {
				wantWords = 150
			}
			if n := len(strings.Fields(strings.TrimSuffix(got, "..."))); n != wantWords {
				t.Errorf("abstract has %d words, want %d", n, wantWords)
			}
		})
	}
}

func TestKeywordLine(t *testing.T) {
	tests := []struct {
		name  string
		topic string
		want  string
	}{
		{
			name:  "short words excluded",
			topic: "the impact of generative AI on clinical diagnosis",
			want:  "impact, generative, clinical, diagnosis",
		},
		{
			name:  "caps at five",
			topic: "machine learning methods improve medical imaging diagnostics substantially",
			want:  "machine, learning, methods, improve, medical",
		},
		{
			name:  "empty topic",
			topic: "",
			want:  "",
		},
		{
			name:  "all short",
			topic: "a an of it",
			want:  "",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := keywordLine(tt.topic); got != tt.want {
				t.Errorf("keywordLine(%q) = %q, want %q", tt.topic, got, tt.want)
			}
		})
	}
}

func TestObjective(t *testing.T) {
	tests := []struct {
		question string
		want     string
	}{
		{"What are the key barriers?", "To investigate the key barriers"},
		{"How does model scale affect accuracy?", "To investigate model scale affect accuracy"},
		{"Which methods generalize best?", "To investigate methods generalize best"},
		{"Quantum coherence matters.", "To investigate Quantum coherence matters."},
		{"what IS the mechanism?", "To investigate the mechanism"},
		{"", "To investigate "},
	}
	for _, tt := range tests {
		t.Run(tt.question, func(t *testing.T) {
			if got := Objective(tt.question); got != tt.want {
				t.Errorf("Objective(%q) = %q, want %q", tt.question, got, tt.want)
			}
		})
	}
}

func TestBuildSectionOrder(t *testing.T) {
	doc := Build(sampleProposal(), sampleReferences(3), "clinical AI", types.DetailExpanded)

	want := []string{
		"Introduction", "Literature Review", "Research Questions",
		"Methodology", "Expected Outcomes", "Project Timeline",
		"Budget Estimate", "References",
	}
	if len(doc.Sections) != len(want) {
		t.Fatalf("got %d sections, want %d", len(doc.Sections), len(want))
	}
	for i, title := range want {
		if doc.Sections[i].Title != title {
			t.Errorf("section %d = %q, want %q", i, doc.Sections[i].Title, title)
		}
	}
}

func TestBuildIdempotent(t *testing.T) {
	data := sampleProposal()
	refs := sampleReferences(5)

	a := Build(data, refs, "clinical AI", types.DetailExpanded)
	b := Build(data, refs, "clinical AI", types.DetailExpanded)

	if a == b {
		t.Fatal("Build returned the same allocation twice")
	}
	if !reflect.DeepEqual(a, b) {
		t.Error("equal inputs produced unequal trees")
	}
}

func TestBuildDetailLevels(t *testing.T) {
	data := sampleProposal()

	std := Build(data, nil, "t", types.DetailStandard)
	exp := Build(data, nil, "t", types.DetailExpanded)

	if n := len(findSection(t, std, "Methodology").Subsections); n != 3 {
		t.Errorf("standard methodology has %d subsections, want 3", n)
	}
	if n := len(findSection(t, exp, "Methodology").Subsections); n != 5 {
		t.Errorf("expanded methodology has %d subsections, want 5", n)
	}
	if n := len(findSection(t, std, "Expected Outcomes").Subsections); n != 1 {
		t.Errorf("standard outcomes has %d subsections, want 1", n)
	}
	if n := len(findSection(t, exp, "Expected Outcomes").Subsections); n != 3 {
		t.Errorf("expanded outcomes has %d subsections, want 3", n)
	}

	// Standard keeps the whole field as one unsegmented paragraph.
	if body := findSection(t, std, "Expected Outcomes").Subsections[0].Body; body != data.ExpectedOutcomes {
		t.Errorf("standard outcomes body = %q, want field verbatim", body)
	}
}

func TestBuildResearchQuestions(t *testing.T) {
	data := sampleProposal()
	doc := Build(data, nil, "t", types.DetailStandard)

	sec := findSection(t, doc, "Research Questions")
	if len(sec.Subsections) != 2 {
		t.Fatalf("got %d subsections, want 2", len(sec.Subsections))
	}

	questions := sec.Subsections[0].Items
	if want := "1. What are the key barriers?"; questions[0] != want {
		t.Errorf("question 1 = %q, want %q", questions[0], want)
	}

	objectives := sec.Subsections[1].Items
	if len(objectives) != len(data.ResearchQuestions) {
		t.Fatalf("got %d objectives, want %d", len(objectives), len(data.ResearchQuestions))
	}
	if want := "To investigate the key barriers"; objectives[0] != want {
		t.Errorf("objective 1 = %q, want %q", objectives[0], want)
	}
}

func TestBuildTimelineFixed(t *testing.T) {
	data := sampleProposal()
	data.Timeline = "this text must not influence the table"
	doc := Build(data, nil, "t", types.DetailStandard)

	table := findSection(t, doc, "Project Timeline").Subsections[0].Table
	if table == nil {
		t.Fatal("timeline subsection has no table")
	}
	if len(table.Rows) != 5 {
		t.Fatalf("timeline has %d rows, want 5", len(table.Rows))
	}
	for i, row := range table.Rows {
		if want := fmt.Sprintf("Phase %d", i+1); row[0] != want {
			t.Errorf("row %d phase = %q, want %q", i, row[0], want)
		}
	}
	if first, last := table.Rows[0][2], table.Rows[4][2]; first != "Months 1-2" || last != "Months 11-12" {
		t.Errorf("phase durations = %q..%q, want Months 1-2..Months 11-12", first, last)
	}
}

func TestBuildBudgetTotalLiteral(t *testing.T) {
	doc := Build(sampleProposal(), nil, "t", types.DetailStandard)

	table := findSection(t, doc, "Budget Estimate").Subsections[0].Table
	if table == nil {
		t.Fatal("budget subsection has no table")
	}
	last := table.Rows[len(table.Rows)-1]
	if last[0] != "Total" || last[1] != "$10,000" {
		t.Errorf("budget total row = %v, want [Total $10,000]", last)
	}
}

func TestBuildReferencesTruncation(t *testing.T) {
	tests := []struct {
		name string
		refs int
		want int
	}{
		{"empty", 0, 0},
		{"under limit", 5, 5},
		{"exactly 15", 15, 15},
		{"over limit", 40, 15},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := Build(sampleProposal(), sampleReferences(tt.refs), "t", types.DetailStandard)
			items := findSection(t, doc, "References").Subsections[0].Items

			if len(items) != tt.want {
				t.Fatalf("rendered %d references, want %d", len(items), tt.want)
			}
			seen := make(map[string]bool)
			for _, line := range items {
				if seen[line] {
					t.Errorf("duplicate reference line %q", line)
				}
				seen[line] = true
			}
			if tt.want > 0 {
				if want := "[1] Author1 (2024). Paper 1."; items[0] != want {
					t.Errorf("first line = %q, want %q", items[0], want)
				}
			}
		})
	}
}

func TestBuildEmptyNarrativeFields(t *testing.T) {
	doc := Build(types.ProposalData{Title: "T"}, nil, "", types.DetailExpanded)

	intro := findSection(t, doc, "Introduction")
	for _, sub := range intro.Subsections {
		if sub.Body != introFallback {
			t.Errorf("subsection %q body = %q, want fallback", sub.Title, sub.Body)
		}
	}
	if doc.Abstract != "" {
		t.Errorf("abstract = %q, want empty", doc.Abstract)
	}
}
