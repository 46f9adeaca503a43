package directory

import (
	"strings"

	"github.com/SaiNageswarS/go-collection-boot/ds"
)

// SectorMatch selects how requested sectors are compared with an NGO's
// key_issues text.
type SectorMatch string

const (
	// MatchDefault defers to the directory's configured mode.
	MatchDefault SectorMatch = ""
	// MatchSubstring requires each sector to occur anywhere in key_issues,
	// case-sensitively. "health" therefore also matches "healthcare".
	MatchSubstring SectorMatch = "substring"
	// MatchTag splits key_issues on commas and requires an exact, trimmed tag.
	MatchTag SectorMatch = "tag"
)

// ParseSectorMatch accepts "", "substring" or "tag".
func ParseSectorMatch(s string) (SectorMatch, error) {
	switch m := SectorMatch(s); m {
	case MatchDefault, MatchSubstring, MatchTag:
		return m, nil
	default:
		return "", invalidArgument("unknown sector match mode %q", s)
	}
}

// Matches reports whether keyIssues satisfies every sector. An empty sector
// list matches everything.
func (m SectorMatch) Matches(keyIssues string, sectors []string) bool {
	if len(sectors) == 0 {
		return true
	}
	if m == MatchTag {
		tags := ds.NewSet[string]()
		for _, t := range strings.Split(keyIssues, ",") {
			tags.Add(strings.TrimSpace(t))
		}
		for _, s := range sectors {
			if !tags.Contains(s) {
				return false
			}
		}
		return true
	}
	for _, s := range sectors {
		if !strings.Contains(keyIssues, s) {
			return false
		}
	}
	return true
}

// SplitSectors splits each comma-joined value and drops empty segments.
// Segments are not trimmed; a sector containing a comma cannot be expressed.
func SplitSectors(values ...string) []string {
	var out []string
	for _, v := range values {
		for _, s := range strings.Split(v, ",") {
			if s != "" {
				out = append(out, s)
			}
		}
	}
	return out
}
