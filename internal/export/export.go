// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package export writes the printable proposal document to a rendering
// surface and hands it to the host. The payload is fully self-contained —
// it carries its own styling and its own deferred print trigger — so the
// only job here is placing it and asking the host to open it.
package export

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"unicode"

	"github.com/pdiddy/researchlens/pkg/types"
)

// Opener asks the host to open a rendering surface on a document. The
// default opener shells out to the platform opener; tests inject fakes.
type Opener interface {
	Open(path string) error
}

// hostOpener launches the platform's document opener detached from the
// client process.
type hostOpener struct{}

func (hostOpener) Open(path string) error {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", path)
	case "windows":
		cmd = exec.Command("cmd", "/c", "start", "", path)
	default:
		cmd = exec.Command("xdg-open", path)
	}
	return cmd.Start()
}

// Exporter places export documents and opens host surfaces on them. Each
// export is independent and re-entrant; nothing is shared across calls.
type Exporter struct {
	dir    string
	open   bool
	opener Opener
}

// New builds an exporter from configuration.
func New(cfg types.ExportConfig) *Exporter {
	dir := cfg.OutputDir
	if dir == "" {
		dir = filepath.Join("output", "exports")
	}
	return &Exporter{dir: dir, open: cfg.Open, opener: hostOpener{}}
}

// WithOpener replaces the host opener. For tests.
func (e *Exporter) WithOpener(o Opener) *Exporter {
	e.opener = o
	return e
}

// Export writes the document payload under the export directory and asks
// the host to open it. A host that refuses the surface makes the whole
// export a silent no-op: the document is removed and no error surfaces —
// there is nothing the caller could do about a denied surface. The print
// trigger is the payload's own deferred script; once the surface is open
// the exporter has no further involvement.
//
// The returned path is empty when the export did not happen.
func (e *Exporter) Export(topic, payload string) (string, error) {
	if err := os.MkdirAll(e.dir, 0o755); err != nil {
		return "", fmt.Errorf("creating export directory: %w", err)
	}

	path := filepath.Join(e.dir, Filename(topic))
	if err := os.WriteFile(path, []byte(payload), 0o644); err != nil {
		return "", fmt.Errorf("writing export document: %w", err)
	}

	if e.open {
		if err := e.opener.Open(path); err != nil {
			os.Remove(path)
			return "", nil
		}
	}
	return path, nil
}

// Filename derives a stable export filename from a topic: lowercased,
// non-alphanumerics collapsed to single hyphens.
func Filename(topic string) string {
	var b strings.Builder
	lastHyphen := true
	for _, r := range strings.ToLower(strings.TrimSpace(topic)) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			lastHyphen = false
		} else if !lastHyphen {
			b.WriteByte('-')
			lastHyphen = true
		}
	}
	name := strings.TrimSuffix(b.String(), "-")
	if name == "" {
		name = "untitled"
	}
	return name + "-proposal.html"
}
