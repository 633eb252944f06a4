package note

import "strings"

const bulletMarker = "•"

// Beautify structures flat note text for display: known titles become
// top-level headings, known section labels second-level headings, and
// non-bullet lines ending in ":" are emphasized. Line-local, stateless,
// single pass; line content is never altered beyond the wrapping
// markers, so unrecognized lines survive a second application
// unchanged.
func Beautify(text string) string {
	lines := strings.Split(text, "\n")
	out := make([]string, 0, len(lines))
	for _, raw := range lines {
		s := strings.TrimSpace(raw)
		switch {
		case s == "":
			out = append(out, "")
		case isTitle(s):
			out = append(out, "# "+s)
		case isSectionLabel(s):
			out = append(out, "## "+s)
		case strings.HasSuffix(s, ":") && !strings.HasPrefix(s, bulletMarker):
			out = append(out, "**"+s+"**")
		default:
			out = append(out, s)
		}
	}
	return strings.Join(out, "\n\n")
}
