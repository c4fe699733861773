// Package textnorm repairs common structural artifacts in raw OCR output
// before field extraction runs on it.
package textnorm

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// Fragmentation heuristic: documents with many very short lines are almost
// always mis-segmented single-glyph-per-line OCR output, not real layout.
const (
	fragmentLineThreshold = 5
	fragmentMeanLineLen   = 3.0
)

var (
	blankRunRe  = regexp.MustCompile(`\n{3,}`)
	hspaceRunRe = regexp.MustCompile(`[ \t]{2,}`)
)

// Clean normalizes raw OCR text. Pathologically fragmented documents are
// collapsed into a single space-joined line; otherwise line structure is
// preserved and only runs of blank lines and horizontal whitespace are
// collapsed. Clean is total and idempotent on non-fragmented input.
func Clean(raw string) string {
	if raw == "" {
		return ""
	}

	t := strings.ReplaceAll(raw, "\r", "\n")

	lines := strings.Split(t, "\n")
	var nonEmpty []string
	var totalLen int
	for i, line := range lines {
		line = strings.TrimSpace(line)
		lines[i] = line
		if line == "" {
			continue
		}
		nonEmpty = append(nonEmpty, line)
		totalLen += utf8.RuneCountInString(line)
	}

	fragmented := false
	if len(nonEmpty) > fragmentLineThreshold {
		meanLen := float64(totalLen) / float64(len(nonEmpty))
		fragmented = meanLen < fragmentMeanLineLen
	}
	if fragmented {
		t = strings.Join(nonEmpty, " ")
	} else {
		t = strings.Join(lines, "\n")
	}

	t = blankRunRe.ReplaceAllString(t, "\n\n")
	t = hspaceRunRe.ReplaceAllString(t, " ")
	return strings.TrimSpace(t)
}

// Paragraph is a run of consecutive non-blank lines.
type Paragraph struct {
	Lines []string `json:"lines"`
}

// Structured is the paragraph-level view of a text block.
type Structured struct {
	Paragraphs []Paragraph `json:"paragraphs"`
}

// ToParagraphs groups text into paragraphs separated by blank lines.
func ToParagraphs(text string) Structured {
	var paragraphs []Paragraph
	var current []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			if len(current) > 0 {
				paragraphs = append(paragraphs, Paragraph{Lines: current})
				current = nil
			}
			continue
		}
		current = append(current, line)
	}
	if len(current) > 0 {
		paragraphs = append(paragraphs, Paragraph{Lines: current})
	}
	return Structured{Paragraphs: paragraphs}
}
