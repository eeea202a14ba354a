package docbridge

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// normalizeOutput cleans rendered text before it reaches the caller. The
// renderers emit well-formed blocks, but source literals can smuggle in
// CRLF endings, control characters, or stray blank runs left by dropped
// nodes. Output is LF-only, each line free of trailing whitespace, blank
// runs collapsed to a single separator line, valid UTF-8, and trimmed.
func normalizeOutput(s string) string {
	if !utf8.ValidString(s) {
		s = strings.ToValidUTF8(s, "")
	}
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")

	var b strings.Builder
	b.Grow(len(s))
	wrote := false
	blank := false
	for _, line := range strings.Split(s, "\n") {
		line = strings.Map(dropControl, line)
		line = strings.TrimRight(line, " \t")
		if line == "" {
			blank = true
			continue
		}
		if wrote {
			b.WriteByte('\n')
			if blank {
				b.WriteByte('\n')
			}
		}
		b.WriteString(line)
		wrote = true
		blank = false
	}
	return strings.TrimSpace(b.String())
}

// dropControl removes control characters from a single line. Tabs stay:
// the plain-text renderer uses them as table cell separators.
func dropControl(r rune) rune {
	if r == '\t' {
		return r
	}
	if unicode.IsControl(r) {
		return -1
	}
	return r
}
