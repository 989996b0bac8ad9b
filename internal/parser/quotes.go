package parser

import (
	"regexp"
	"strings"
)

// Markers that introduce quoted reply history in common mail clients
var (
	onWroteRegex    = regexp.MustCompile(`(?i)^on .{1,200} wrote:\s*$`)
	origMsgRegex    = regexp.MustCompile(`(?i)^-{2,}\s*(original message|forwarded message)\s*-{2,}`)
	fromHeaderRegex = regexp.MustCompile(`(?i)^from:\s.+@.+`)
)

// StripQuoted removes quoted reply history from a plain-text body, keeping
// only the sender's new text. Everything after the first quote marker is
// dropped, as are "> " quoted lines before it.
func StripQuoted(text string) string {
	lines := strings.Split(text, "\n")
	var kept []string

	for _, line := range lines {
		trimmed := strings.TrimSpace(line)

		if onWroteRegex.MatchString(trimmed) ||
			origMsgRegex.MatchString(trimmed) ||
			fromHeaderRegex.MatchString(trimmed) {
			break
		}
		if strings.HasPrefix(trimmed, ">") {
			continue
		}

		kept = append(kept, line)
	}

	return strings.TrimSpace(strings.Join(kept, "\n"))
}
