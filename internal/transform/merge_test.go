package transform

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMergeEmptyInput(t *testing.T) {
	assert.Equal(t, "", Merge(nil))
	assert.Equal(t, "", Merge([]string{}))
}

// A single fragment is passed through byte for byte, even when it is not
// valid JSON. Documented quirk: callers holding one fragment get it back
// unvalidated and unformatted.
func TestMergeSingleFragmentPassthrough(t *testing.T) {
	tests := []struct {
		name string
		frag string
	}{
		{"valid_object", `{"a": 1}`},
		{"odd_whitespace", "  {\"a\":1}\n"},
		{"invalid_json", `{"a": `},
		{"array", `[1,2,3]`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.frag, Merge([]string{tt.frag}))
		})
	}
}

func TestMergeUnionOfKeys(t *testing.T) {
	out := Merge([]string{`{"a":1}`, `{"b":2}`})

	var got map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, map[string]any{"a": float64(1), "b": float64(2)}, got)
}

func TestMergeLastWriteWins(t *testing.T) {
	out := Merge([]string{`{"a":1}`, `{"a":2}`})

	var got map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, map[string]any{"a": float64(2)}, got)
}

func TestMergeLastWriteWinsByOrderNotContent(t *testing.T) {
	out := Merge([]string{
		`{"k":"from-first","only_first":true}`,
		`{"k":"from-second"}`,
		`{"k":"from-third"}`,
	})

	var got map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, "from-third", got["k"])
	assert.Equal(t, true, got["only_first"])
}

func TestMergeSkipsBadFragments(t *testing.T) {
	out := Merge([]string{
		`{"a":1}`,
		`not json at all`,
		`[1,2,3]`,
		`42`,
		`"scalar"`,
		`null`,
		`true`,
		`{"b":2}`,
	})

	var got map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, map[string]any{"a": float64(1), "b": float64(2)}, got)
}

func TestMergeAllFragmentsBad(t *testing.T) {
	out := Merge([]string{`garbage`, `[]`})

	var got map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Empty(t, got)
}

func TestMergeOutputIsIndented(t *testing.T) {
	out := Merge([]string{`{"a":1}`, `{"b":2}`})
	assert.Contains(t, out, "\n  \"a\"")
}

func TestMergeNestedValuesReplacedWhole(t *testing.T) {
	// Top-level keys are overwritten, not deep-merged.
	out := Merge([]string{
		`{"meta":{"x":1,"y":2}}`,
		`{"meta":{"x":9}}`,
	})

	var got map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, map[string]any{"x": float64(9)}, got["meta"])
}
