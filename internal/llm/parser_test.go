package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appErrors "github.com/noah-isme/erasmus-advisor-api/pkg/errors"
)

func TestParseArrayDirect(t *testing.T) {
	var out []map[string]int
	err := ParseArray(`[{"a":1},{"a":2}]`, &out)
	require.NoError(t, err)
	assert.Len(t, out, 2)
	assert.Equal(t, 1, out[0]["a"])
}

func TestParseArrayStripsCodeFences(t *testing.T) {
	var out []map[string]int
	err := ParseArray("```json\n[{\"a\":1}]\n```", &out)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, 1, out[0]["a"])
}

func TestParseArrayRecoversFromSurroundingProse(t *testing.T) {
	var out []map[string]int
	err := ParseArray("Sure! [ {\"a\":1} ] Thanks", &out)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, 1, out[0]["a"])
}

func TestParseObjectDirect(t *testing.T) {
	var out map[string]string
	err := ParseObject("```\n{\"k\":\"v\"}\n```", &out)
	require.NoError(t, err)
	assert.Equal(t, "v", out["k"])
}

func TestParseArrayNoJSON(t *testing.T) {
	var out []map[string]int
	err := ParseArray("I could not find any destinations.", &out)
	require.Error(t, err)
	assert.True(t, appErrors.Is(err, appErrors.ErrNoJSONFound))
}

func TestParseArrayEmptyResponse(t *testing.T) {
	var out []map[string]int
	err := ParseArray("   ", &out)
	require.Error(t, err)
	assert.True(t, appErrors.Is(err, appErrors.ErrNoJSONFound))
}

func TestParseArrayDecodeError(t *testing.T) {
	var out []map[string]int
	err := ParseArray("here: [{'a': 1}] done", &out)
	require.Error(t, err)
	assert.True(t, appErrors.Is(err, appErrors.ErrJSONDecode))
}

func TestParseArrayTypeMismatch(t *testing.T) {
	var out []int
	err := ParseArray(`result: ["uno", "due"]`, &out)
	require.Error(t, err)
	assert.True(t, appErrors.Is(err, appErrors.ErrJSONTypeMismatch))
}
