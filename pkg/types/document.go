// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// Table is a fixed tabular dataset inside a document subsection
// (timeline, budget).
type Table struct {
	// Columns holds the header labels.
	Columns []string `json:"columns" yaml:"columns"`

	// Rows holds the cell values, one slice per row.
	Rows [][]string `json:"rows" yaml:"rows"`
}

// Subsection is one titled unit of document content. Exactly one of Body,
// Items, or Table is populated: a prose slice, an ordered narrative list,
// or a tabular dataset.
type Subsection struct {
	// Title is the subsection heading. Empty for an untitled lead block.
	Title string `json:"title,omitempty" yaml:"title,omitempty"`

	// Body is a derived prose slice.
	Body string `json:"body,omitempty" yaml:"body,omitempty"`

	// Items is an ordered narrative list (questions, objectives, references).
	Items []string `json:"items,omitempty" yaml:"items,omitempty"`

	// Table is a fixed tabular dataset.
	Table *Table `json:"table,omitempty" yaml:"table,omitempty"`
}

// Section is a titled, ordered group of subsections.
type Section struct {
	// Title is the section heading.
	Title string `json:"title" yaml:"title"`

	// Subsections lists the section's content units in order.
	Subsections []Subsection `json:"subsections" yaml:"subsections"`
}

// Document is the canonical section tree of a synthesized proposal. It is
// pure function output: produced fresh per synthesis, never mutated after
// construction, and shared by every presentation of the same proposal.
type Document struct {
	// Title is the proposal title.
	Title string `json:"title" yaml:"title"`

	// Abstract is the derived abstract text.
	Abstract string `json:"abstract" yaml:"abstract"`

	// Keywords is the derived comma-joined keyword line.
	Keywords string `json:"keywords" yaml:"keywords"`

	// Sections lists the document sections in render order.
	Sections []Section `json:"sections" yaml:"sections"`
}
