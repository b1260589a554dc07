// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// ProposalData holds the narrative fields of a generated research proposal
// as returned by the backend. All narrative fields are free-text prose with
// sentences delimited by the literal ". " separator. The value is treated
// as immutable for the duration of one synthesis.
type ProposalData struct {
	// Title is the proposed research title.
	Title string `json:"title" yaml:"title"`

	// Introduction covers background, problem statement, and significance.
	Introduction string `json:"introduction" yaml:"introduction"`

	// LiteratureReview summarizes the current research state and gaps.
	LiteratureReview string `json:"literature_review" yaml:"literature_review"`

	// ResearchQuestions lists the proposed research questions in order.
	ResearchQuestions []string `json:"research_questions" yaml:"research_questions"`

	// Methodology describes the proposed approach and analysis techniques.
	Methodology string `json:"methodology" yaml:"methodology"`

	// ExpectedOutcomes describes anticipated contributions to the field.
	ExpectedOutcomes string `json:"expected_outcomes" yaml:"expected_outcomes"`

	// Timeline is the backend's free-text project timeline. The document
	// synthesizer ignores it in favor of a fixed phase table.
	Timeline string `json:"timeline" yaml:"timeline"`
}

// Reference is an APA-formatted citation entry from the backend. The
// reference string is opaque to the client; no correctness checks apply.
type Reference struct {
	// Number is the 1-based citation number matching citation order.
	Number int `json:"number" yaml:"number"`

	// Reference is the formatted reference string.
	Reference string `json:"reference" yaml:"reference"`

	// URL links to the paper, when known.
	URL string `json:"url,omitempty" yaml:"url,omitempty"`

	// Abstract is the paper abstract, when available.
	Abstract string `json:"abstract,omitempty" yaml:"abstract,omitempty"`
}
