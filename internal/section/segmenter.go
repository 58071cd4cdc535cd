package section

import (
	"fmt"
	"regexp"
	"strings"

	appErrors "github.com/noah-isme/erasmus-advisor-api/pkg/errors"
)

// DefaultHeaderKeywords is the vocabulary that marks a department header
// line in Italian destination documents.
var DefaultHeaderKeywords = []string{"dipartimento", "dipartimenti"}

// Segmenter isolates one department's section from the full text of a
// destinations document. Matching happens on a normalized copy of the
// text (lowercased, per-line whitespace collapsed, U+2019 mapped to the
// plain apostrophe); the returned section is the raw source lines.
type Segmenter struct {
	headerRe *regexp.Regexp
	prefixRe *regexp.Regexp
}

// NewSegmenter builds a segmenter for the given header vocabulary. An empty
// vocabulary falls back to DefaultHeaderKeywords.
func NewSegmenter(keywords []string) *Segmenter {
	if len(keywords) == 0 {
		keywords = DefaultHeaderKeywords
	}
	escaped := make([]string, 0, len(keywords))
	for _, kw := range keywords {
		escaped = append(escaped, regexp.QuoteMeta(strings.ToLower(kw)))
	}
	alt := strings.Join(escaped, "|")

	return &Segmenter{
		headerRe: regexp.MustCompile(`\b(?:` + alt + `)\b`),
		prefixRe: regexp.MustCompile(`^(?:` + alt + `)\b\s*(?:di\b\s*)?`),
	}
}

// ExtractSection returns the verbatim text of the department section the
// query refers to, trimmed of surrounding whitespace. The section spans
// from its header line up to, but not including, the next header line; the
// last section runs to the end of the document. An empty section body moves
// on to the next candidate.
func (s *Segmenter) ExtractSection(text, query string) (string, error) {
	raw := strings.Split(text, "\n")
	lines := normalizeLines(raw)

	headerIdxs := make([]int, 0)
	for i, line := range lines {
		if s.headerRe.MatchString(line) {
			headerIdxs = append(headerIdxs, i)
		}
	}
	if len(headerIdxs) == 0 {
		return "", appErrors.ErrNoHeaders
	}

	for _, candidate := range s.Candidates(query) {
		pos, ok := findHeader(lines, headerIdxs, candidate)
		if !ok {
			continue
		}

		start := headerIdxs[pos]
		end := len(lines)
		if pos+1 < len(headerIdxs) {
			end = headerIdxs[pos+1]
		}
		if sectionEmpty(lines[start+1 : end]) {
			continue
		}

		return strings.TrimSpace(strings.Join(raw[start:end], "\n")), nil
	}

	return "", appErrors.Clone(appErrors.ErrSectionNotFound,
		fmt.Sprintf("no section found for department %q", query))
}

// Candidates derives the department names a free-form query may refer to.
// The query is split at each header-keyword occurrence, prefixes like
// "dipartimento di" are stripped, and duplicates are dropped while keeping
// first-seen order.
func (s *Segmenter) Candidates(query string) []string {
	q := normalizeLine(query)
	if q == "" {
		return nil
	}

	locs := s.headerRe.FindAllStringIndex(q, -1)
	var parts []string
	if len(locs) == 0 {
		parts = []string{q}
	} else {
		if locs[0][0] > 0 {
			parts = append(parts, q[:locs[0][0]])
		}
		for i, loc := range locs {
			end := len(q)
			if i+1 < len(locs) {
				end = locs[i+1][0]
			}
			parts = append(parts, q[loc[0]:end])
		}
	}

	seen := make(map[string]struct{}, len(parts))
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		candidate := strings.TrimSpace(s.prefixRe.ReplaceAllString(strings.TrimSpace(part), ""))
		if candidate == "" {
			continue
		}
		if _, ok := seen[candidate]; ok {
			continue
		}
		seen[candidate] = struct{}{}
		result = append(result, candidate)
	}

	return result
}

var tokenSplitRe = regexp.MustCompile(`[^\p{L}\p{N}_]+`)

// findHeader locates the header a candidate refers to: first a substring
// pass over every header line, then a fallback pass matching the
// candidate's first three significant tokens. It returns the position of
// the matched header within headerIdxs.
func findHeader(lines []string, headerIdxs []int, candidate string) (int, bool) {
	if candidate == "" {
		return 0, false
	}

	for pos, idx := range headerIdxs {
		if strings.Contains(lines[idx], candidate) {
			return pos, true
		}
	}

	tokens := significantTokens(candidate)
	if len(tokens) == 0 {
		return 0, false
	}
	for pos, idx := range headerIdxs {
		if containsAll(lines[idx], tokens) {
			return pos, true
		}
	}

	return 0, false
}

// significantTokens splits a candidate on non-word runes, so apostrophized
// forms like "dell'informazione" contribute both halves, and keeps the
// first three tokens of at least three runes.
func significantTokens(candidate string) []string {
	tokens := make([]string, 0, 3)
	for _, tok := range tokenSplitRe.Split(candidate, -1) {
		if len([]rune(tok)) < 3 {
			continue
		}
		tokens = append(tokens, tok)
		if len(tokens) == 3 {
			break
		}
	}
	return tokens
}

func containsAll(line string, tokens []string) bool {
	for _, tok := range tokens {
		if !strings.Contains(line, tok) {
			return false
		}
	}
	return true
}

func sectionEmpty(body []string) bool {
	for _, line := range body {
		if strings.TrimSpace(line) != "" {
			return false
		}
	}
	return true
}

func normalizeLines(raw []string) []string {
	lines := make([]string, len(raw))
	for i, line := range raw {
		lines[i] = normalizeLine(line)
	}
	return lines
}

func normalizeLine(line string) string {
	line = strings.ToLower(line)
	line = strings.ReplaceAll(line, "’", "'")
	return strings.Join(strings.Fields(line), " ")
}
