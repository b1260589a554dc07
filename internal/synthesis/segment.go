// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package synthesis builds the canonical proposal document tree from
// generated narrative fields and renders it for both the interactive
// preview and the printable export.
package synthesis

import "strings"

// sentenceSep delimits sentences in narrative fields. Splitting and
// rejoining both use this exact literal; the final sentence keeps its own
// terminal punctuation.
const sentenceSep = ". "

// Segment splits a narrative text into parts sentence-bounded slices at
// proportional cut-points. Sentences are the ". "-separated fragments of
// text; the boundary after slice i (1-indexed) falls at ceil(N*i/parts)
// fragments. Every slice except the last gets a single terminating "."
// appended. A slice left empty by the cut (fewer sentences than parts)
// becomes fallback instead.
func Segment(text string, parts int, fallback string) []string {
	if parts < 1 {
		return nil
	}

	sentences := splitSentences(text)
	n := len(sentences)

	out := make([]string, 0, parts)
	prev := 0
	for i := 1; i <= parts; i++ {
		end := n
		if i < parts {
			end = ceilDiv(n*i, parts)
		}
		slice := strings.Join(sentences[prev:end], sentenceSep)
		prev = end

		switch {
		case slice == "":
			slice = fallback
		case i < parts:
			slice += "."
		}
		out = append(out, slice)
	}
	return out
}

// splitSentences returns the sentence fragments of text. Empty or
// whitespace-only text has no sentences.
func splitSentences(text string) []string {
	if strings.TrimSpace(text) == "" {
		return nil
	}
	return strings.Split(text, sentenceSep)
}

// ceilDiv returns ceil(a/b) for positive b.
func ceilDiv(a, b int) int {
	return (a + b - 1) / b
}
