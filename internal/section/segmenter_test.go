package section

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appErrors "github.com/noah-isme/erasmus-advisor-api/pkg/errors"
)

const destinationsDoc = `Universita di Pisa - Destinazioni Erasmus

Dipartimento di Informatica
E COIMBRA01 | Universidade de Coimbra | 2 posti
E MADRID03 | Universidad Politecnica de Madrid | 3 posti

Dipartimento di Matematica
D MUNCHEN01 | TU Muenchen | 1 posto

Dipartimento di Fisica "E. Fermi"
F PARIS006 | Sorbonne Universite | 2 posti`

func TestExtractSectionBySubstring(t *testing.T) {
	seg := NewSegmenter(nil)

	got, err := seg.ExtractSection(destinationsDoc, "Dipartimento di Informatica")
	require.NoError(t, err)

	assert.Contains(t, got, "Dipartimento di Informatica")
	assert.Contains(t, got, "COIMBRA01")
	assert.Contains(t, got, "MADRID03")
	assert.NotContains(t, got, "MUNCHEN01")
}

func TestExtractSectionReturnsVerbatimLines(t *testing.T) {
	seg := NewSegmenter(nil)

	// The source lines come back untouched: original casing and spacing,
	// no trailing blank line before the next header.
	got, err := seg.ExtractSection(destinationsDoc, "matematica")
	require.NoError(t, err)
	assert.Equal(t, "Dipartimento di Matematica\nD MUNCHEN01 | TU Muenchen | 1 posto", got)
}

func TestExtractSectionLastSectionRunsToEnd(t *testing.T) {
	seg := NewSegmenter(nil)

	got, err := seg.ExtractSection(destinationsDoc, "fisica")
	require.NoError(t, err)

	assert.Contains(t, got, "PARIS006")
	assert.NotContains(t, got, "COIMBRA01")
}

func TestExtractSectionByTokens(t *testing.T) {
	seg := NewSegmenter(nil)

	// No verbatim substring; the first significant tokens still identify
	// the header line.
	got, err := seg.ExtractSection(destinationsDoc, "fisica fermi")
	require.NoError(t, err)
	assert.Contains(t, got, "PARIS006")
}

func TestExtractSectionPrefersSubstringOverTokenMatch(t *testing.T) {
	doc := `Dipartimento di Ingegneria Industriale e Civile
E WIEN02 | TU Wien | 2 posti

Dipartimento di Ingegneria Civile Industriale
E DELFT01 | TU Delft | 3 posti`

	seg := NewSegmenter(nil)

	// The first header only matches on tokens; the exact substring match
	// further down wins because all headers are tried for a direct match
	// before any token fallback.
	got, err := seg.ExtractSection(doc, "Dipartimento di Ingegneria Civile Industriale")
	require.NoError(t, err)
	assert.Contains(t, got, "DELFT01")
	assert.NotContains(t, got, "WIEN02")
}

func TestExtractSectionTokensSplitOnApostrophe(t *testing.T) {
	doc := `Dipartimento di Scienze dell'Informazione e Tecnologie
E AARHUS01 | Aarhus Universitet | 2 posti`

	seg := NewSegmenter(nil)

	got, err := seg.ExtractSection(doc, "Dipartimento di Scienze dell'Informazione Avanzate")
	require.NoError(t, err)
	assert.Contains(t, got, "AARHUS01")
}

func TestExtractSectionNoHeaders(t *testing.T) {
	seg := NewSegmenter(nil)

	_, err := seg.ExtractSection("just some text\nwith no markers", "informatica")
	require.Error(t, err)
	assert.True(t, appErrors.Is(err, appErrors.ErrNoHeaders))
}

func TestExtractSectionNotFound(t *testing.T) {
	seg := NewSegmenter(nil)

	_, err := seg.ExtractSection(destinationsDoc, "giurisprudenza")
	require.Error(t, err)
	assert.True(t, appErrors.Is(err, appErrors.ErrSectionNotFound))
	assert.Contains(t, err.Error(), "giurisprudenza")
}

func TestExtractSectionSkipsEmptySection(t *testing.T) {
	doc := `Dipartimento di Informatica

Dipartimento di Informatica e Matematica
E LISBOA02 | Universidade de Lisboa | 2 posti`

	seg := NewSegmenter(nil)

	got, err := seg.ExtractSection(doc, "dipartimento di informatica dipartimento di informatica e matematica")
	require.NoError(t, err)
	assert.Contains(t, got, "LISBOA02")
}

func TestCandidatesSplitAndDedupe(t *testing.T) {
	seg := NewSegmenter(nil)

	got := seg.Candidates("Dipartimento di Informatica Dipartimento di Matematica Dipartimento di Informatica")
	assert.Equal(t, []string{"informatica", "matematica"}, got)
}

func TestCandidatesKeepLeadingText(t *testing.T) {
	seg := NewSegmenter(nil)

	got := seg.Candidates("scienze agrarie dipartimento di economia")
	assert.Equal(t, []string{"scienze agrarie", "economia"}, got)
}

func TestNormalizeLineMapsCurlyApostrophe(t *testing.T) {
	assert.Equal(t, "dell'informazione", normalizeLine("Dell’Informazione"))
}
