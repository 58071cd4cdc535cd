package section

import (
	"regexp"
	"sort"
	"strings"

	appErrors "github.com/noah-isme/erasmus-advisor-api/pkg/errors"
)

// DefaultMinDepartmentLen filters out fragments too short to be a real
// department name.
const DefaultMinDepartmentLen = 10

var (
	noteRe      = regexp.MustCompile(`(?i)note per (?:gli studenti|lo studente).*`)
	seatCountRe = regexp.MustCompile(`(?i)n\s*°`)
	keepRe      = regexp.MustCompile(`[^a-zA-Z0-9àèéìòùÀÈÉÌÒÙ' ]`)
)

// Catalog lists the departments named in a destinations document.
type Catalog struct {
	minLen int
}

// NewCatalog builds a catalog with the given minimum name length; values
// below one fall back to DefaultMinDepartmentLen.
func NewCatalog(minLen int) *Catalog {
	if minLen < 1 {
		minLen = DefaultMinDepartmentLen
	}
	return &Catalog{minLen: minLen}
}

// AvailableDepartments scans the document text for department header lines
// and returns the cleaned names, deduplicated case-insensitively (first
// seen casing wins) and sorted.
func (c *Catalog) AvailableDepartments(text string) ([]string, error) {
	seen := make(map[string]string)
	for _, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(noteRe.ReplaceAllString(raw, ""))
		if !strings.HasPrefix(strings.ToLower(line), "dipartiment") {
			continue
		}

		// Header lines often run into the seat-count column; cut the
		// name at the first column marker.
		if loc := seatCountRe.FindStringIndex(line); loc != nil {
			line = line[:loc[0]]
		} else if idx := strings.Index(line, "|"); idx >= 0 {
			line = line[:idx]
		}

		name := keepRe.ReplaceAllString(line, "")
		name = strings.TrimSpace(strings.Join(strings.Fields(name), " "))
		if len([]rune(name)) < c.minLen {
			continue
		}
		key := strings.ToLower(name)
		if _, ok := seen[key]; !ok {
			seen[key] = name
		}
	}

	if len(seen) == 0 {
		return nil, appErrors.ErrNoDepartments
	}

	departments := make([]string, 0, len(seen))
	for _, name := range seen {
		departments = append(departments, name)
	}
	sort.Strings(departments)

	return departments, nil
}
