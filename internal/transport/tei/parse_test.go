package tei

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kailas-cloud/rerank-proxy/internal/domain"
)

func TestDecodeScores(t *testing.T) {
	results, err := decodeScores([]byte(`[{"index":0,"score":0.1},{"index":1,"score":0.9}]`), 2)
	require.NoError(t, err)
	require.Len(t, results, 2)

	assert.Equal(t, 0, results[0].Index())
	assert.Equal(t, 0.1, results[0].Score())
	assert.Equal(t, 1, results[1].Index())
	assert.Equal(t, 0.9, results[1].Score())
}

func TestDecodeScores_IgnoresExtraFields(t *testing.T) {
	results, err := decodeScores([]byte(`[{"index":0,"score":0.5,"text":"a dog"}]`), 1)
	require.NoError(t, err)
	assert.Len(t, results, 1)
}

func TestDecodeScores_IndicesNotRangeChecked(t *testing.T) {
	results, err := decodeScores([]byte(`[{"index":7,"score":0.5},{"index":7,"score":0.4}]`), 2)
	require.NoError(t, err)
	assert.Equal(t, 7, results[1].Index())
}

func TestDecodeScores_Malformed(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"not json", `upstream exploded`},
		{"object", `{"error":"model not loaded"}`},
		{"null", `null`},
		{"missing score", `[{"index":0}]`},
		{"missing index", `[{"score":0.3}]`},
		{"string score", `[{"index":0,"score":"high"}]`},
		{"negative index", `[{"index":-1,"score":0.3}]`},
		{"fractional index", `[{"index":0.5,"score":0.3}]`},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := decodeScores([]byte(tc.body), 1)
			require.Error(t, err)

			de := domain.AsError(err)
			assert.Equal(t, domain.KindBackend, de.Kind)
			assert.True(t, strings.HasPrefix(de.Message,
				"Invalid response format from TEI service. Expected array of scores, got: "))
			assert.Contains(t, de.Message, tc.body)
			assert.True(t, errors.Is(err, errMalformed))
		})
	}
}

func TestDecodeScores_LengthMismatch(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		expected int
	}{
		{"fewer", `[{"index":0,"score":0.1}]`, 2},
		{"more", `[{"index":0,"score":0.1},{"index":1,"score":0.2}]`, 1},
		{"empty", `[]`, 1},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := decodeScores([]byte(tc.body), tc.expected)
			require.Error(t, err)

			de := domain.AsError(err)
			assert.Equal(t, domain.KindBackend, de.Kind)
			assert.Equal(t, "TEI response length doesn't match input documents", de.Message)
			assert.True(t, errors.Is(err, errLengthMismatch))
		})
	}
}

func TestNewRerankRequest_PreservesOrder(t *testing.T) {
	docs := []string{"c", "a", "b"}
	req := newRerankRequest("q", docs)

	assert.Equal(t, "q", req.Query)
	assert.Equal(t, []string{"c", "a", "b"}, req.Texts)

	docs[0] = "mutated"
	assert.Equal(t, "c", req.Texts[0], "texts must not alias the caller's slice")
}
