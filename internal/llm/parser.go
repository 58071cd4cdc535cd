package llm

import (
	"encoding/json"
	"regexp"
	"strings"

	appErrors "github.com/noah-isme/erasmus-advisor-api/pkg/errors"
)

// Model replies rarely contain clean JSON. The parser strips markdown code
// fences, tries a direct decode when the payload already leads with the
// expected bracket, and otherwise recovers the widest bracket-delimited
// span from the surrounding prose.

var (
	arrayRe  = regexp.MustCompile(`(?s)\[.*\]`)
	objectRe = regexp.MustCompile(`(?s)\{.*\}`)
)

// ParseArray decodes a JSON array from a model reply into out, which must
// be a pointer to a slice.
func ParseArray(raw string, out any) error {
	return parse(raw, '[', arrayRe, out)
}

// ParseObject decodes a JSON object from a model reply into out.
func ParseObject(raw string, out any) error {
	return parse(raw, '{', objectRe, out)
}

func parse(raw string, open byte, re *regexp.Regexp, out any) error {
	cleaned := stripFences(strings.TrimSpace(raw))
	if cleaned == "" {
		return appErrors.Clone(appErrors.ErrNoJSONFound, "empty model response")
	}

	// Direct decode first; any failure falls back to span recovery.
	if cleaned[0] == open {
		if err := json.Unmarshal([]byte(cleaned), out); err == nil {
			return nil
		}
	}

	span := re.FindString(cleaned)
	if span == "" {
		return appErrors.ErrNoJSONFound
	}

	if err := json.Unmarshal([]byte(span), out); err != nil {
		if _, ok := err.(*json.UnmarshalTypeError); ok {
			return appErrors.Wrap(err, appErrors.ErrJSONTypeMismatch.Code,
				appErrors.ErrJSONTypeMismatch.Status, appErrors.ErrJSONTypeMismatch.Message)
		}
		return appErrors.Wrap(err, appErrors.ErrJSONDecode.Code,
			appErrors.ErrJSONDecode.Status, appErrors.ErrJSONDecode.Message)
	}

	return nil
}

func stripFences(text string) string {
	if strings.HasPrefix(text, "```json") {
		text = text[len("```json"):]
	} else if strings.HasPrefix(text, "```") {
		text = text[len("```"):]
	}
	if strings.HasSuffix(text, "```") {
		text = text[:len(text)-len("```")]
	}
	return strings.TrimSpace(text)
}
