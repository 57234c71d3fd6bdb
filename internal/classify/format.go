package classify

import (
	"regexp"
	"strings"
)

var structuredLine = regexp.MustCompile(`^(##?|[-*]|\d+\.)`)

// FormatDescription restructures free text. Input that already has headings,
// bullets or numbered items only gets blank lines between its lines;
// anything else becomes an Overview paragraph plus a bulleted Details list.
func FormatDescription(description string) string {
	var lines []string
	for _, l := range strings.Split(strings.TrimSpace(description), "\n") {
		if l = strings.TrimSpace(l); l != "" {
			lines = append(lines, l)
		}
	}
	if len(lines) == 0 {
		return description
	}

	for _, l := range lines {
		if structuredLine.MatchString(l) {
			return strings.Join(lines, "\n\n")
		}
	}

	out := []string{"## Overview", lines[0], "", "## Details"}
	for _, l := range lines[1:] {
		out = append(out, "- "+l)
	}
	return strings.Join(out, "\n")
}
