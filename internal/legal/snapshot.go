// Package legal implements the versioning engine for legal documents:
// snapshot construction, change-magnitude scoring, semantic-label policy
// and the version integrity hash. Everything here is a pure function of
// its inputs so a version can be reproduced from stored data alone.
package legal

import (
	"strings"

	"covenant/api/internal/store"
)

// BuildSnapshot renders ordered sections into the canonical text blob that
// gets diffed and stored as a version's content. Sections must already be
// ordered by (sort_order, id). Empty headings and bodies are skipped; each
// section is followed by a blank-line separator.
func BuildSnapshot(sections []store.Section) string {
	var lines []string
	for _, section := range sections {
		heading := strings.TrimSpace(section.Heading)
		body := strings.TrimSpace(section.Body)
		if heading != "" {
			lines = append(lines, heading)
		}
		if body != "" {
			lines = append(lines, body)
		}
		lines = append(lines, "")
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}
