// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package synthesis

import (
	"fmt"
	"html/template"
	"strings"
	"time"

	"github.com/pdiddy/researchlens/pkg/types"
)

// DefaultPrintDelay is the fixed delay between the export surface
// finishing layout and the print trigger firing.
const DefaultPrintDelay = 500 * time.Millisecond

// PreviewBlock is one content unit of the preview: a prose paragraph, a
// narrative list, or a table, with an optional numbered heading.
type PreviewBlock struct {
	Heading string
	Body    string
	Items   []string
	Table   *types.Table
}

// PreviewSection is a numbered section of the preview.
type PreviewSection struct {
	Heading string
	Blocks  []PreviewBlock

	// BreakAfter and BreakBefore record where the printable layout
	// inserts page breaks. The preview ignores them.
	BreakAfter  bool
	BreakBefore bool
}

// Preview is the read-only view model consumed by the display layer. Every
// text value is copied verbatim from the document tree; presentation code
// must not re-derive content.
type Preview struct {
	Title    string
	Abstract string
	Keywords string
	Sections []PreviewSection
}

// RenderOutput carries both projections of one document tree.
type RenderOutput struct {
	// Preview is the interactive view model.
	Preview *Preview

	// ExportHTML is the self-contained printable document: its own
	// styling, print geometry, and deferred print trigger, with no
	// external dependencies.
	ExportHTML string
}

// Render projects a document tree into the preview view model and the
// printable export. Both carry identical derived text: the export is
// serialized from the same view model the preview exposes. printDelay
// schedules the export's print trigger; non-positive means
// DefaultPrintDelay.
func Render(doc *types.Document, printDelay time.Duration) RenderOutput {
	p := buildPreview(doc)
	return RenderOutput{
		Preview:    p,
		ExportHTML: exportHTML(p, printDelay),
	}
}

// buildPreview numbers sections and subsections and marks the print
// layout's page-break points: after the title/abstract block (handled by
// the template), after Literature Review, and before References.
func buildPreview(doc *types.Document) *Preview {
	p := &Preview{
		Title:    doc.Title,
		Abstract: doc.Abstract,
		Keywords: doc.Keywords,
	}

	for i, sec := range doc.Sections {
		ps := PreviewSection{
			Heading:     fmt.Sprintf("%d. %s", i+1, sec.Title),
			BreakAfter:  sec.Title == "Literature Review",
			BreakBefore: sec.Title == "References",
		}
		for j, sub := range sec.Subsections {
			b := PreviewBlock{
				Body:  sub.Body,
				Items: sub.Items,
				Table: sub.Table,
			}
			if sub.Title != "" {
				b.Heading = fmt.Sprintf("%d.%d %s", i+1, j+1, sub.Title)
			}
			ps.Blocks = append(ps.Blocks, b)
		}
		p.Sections = append(p.Sections, ps)
	}
	return p
}

// exportTemplate is the complete printable document. Fixed A4 geometry,
// serif typography, double line spacing, and a deferred window.print call
// live in the payload itself so any host reproduces the same pagination.
var exportTemplate = template.Must(template.New("export").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
@page { size: A4; margin: 1in; }
body { font-family: "Times New Roman", Times, serif; font-size: 12pt; line-height: 2; color: #000; max-width: 6.5in; margin: 0 auto; }
h1 { font-size: 16pt; text-align: center; margin-bottom: 24pt; }
h2 { font-size: 14pt; margin-top: 18pt; }
h3 { font-size: 12pt; font-style: italic; margin-top: 12pt; }
p { text-align: justify; margin: 6pt 0; }
table { width: 100%; border-collapse: collapse; line-height: 1.5; margin: 12pt 0; }
th, td { border: 1pt solid #000; padding: 4pt 6pt; text-align: left; vertical-align: top; }
ul.narrative { list-style: none; padding-left: 0; }
ul.narrative li { margin: 6pt 0; text-align: justify; }
.title-block { page-break-after: always; }
.break-after { page-break-after: always; }
.break-before { page-break-before: always; }
</style>
</head>
<body>
<div class="title-block">
<h1>{{.Title}}</h1>
<h2>Abstract</h2>
<p>{{.Abstract}}</p>
<p><strong>Keywords:</strong> {{.Keywords}}</p>
</div>
{{range .Sections}}<div class="{{if .BreakAfter}}break-after{{else if .BreakBefore}}break-before{{else}}section{{end}}">
<h2>{{.Heading}}</h2>
{{range .Blocks}}{{if .Heading}}<h3>{{.Heading}}</h3>
{{end}}{{if .Body}}<p>{{.Body}}</p>
{{end}}{{if .Items}}<ul class="narrative">
{{range .Items}}<li>{{.}}</li>
{{end}}</ul>
{{end}}{{if .Table}}<table>
<tr>{{range .Table.Columns}}<th>{{.}}</th>{{end}}</tr>
{{range .Table.Rows}}<tr>{{range .}}<td>{{.}}</td>{{end}}</tr>
{{end}}</table>
{{end}}{{end}}</div>
{{end}}<script>
window.addEventListener("load", function () {
  setTimeout(function () { window.print(); }, {{.DelayMS}});
});
</script>
</body>
</html>
`))

// exportHTML serializes the preview view model as the printable document.
func exportHTML(p *Preview, printDelay time.Duration) string {
	if printDelay <= 0 {
		printDelay = DefaultPrintDelay
	}

	data := struct {
		*Preview
		DelayMS int64
	}{Preview: p, DelayMS: printDelay.Milliseconds()}

	var b strings.Builder
	if err := exportTemplate.Execute(&b, data); err != nil {
		// The template and data are fixed shapes; execution cannot
		// fail on well-formed input.
		panic(fmt.Sprintf("synthesis: executing export template: %v", err))
	}
	return b.String()
}
