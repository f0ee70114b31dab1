package rerank

import (
	"strings"
	"testing"

	"github.com/kailas-cloud/rerank-proxy/internal/domain"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name      string
		query     string
		documents []string
		max       int
		wantErr   bool
		wantMsg   string
	}{
		{"valid", "what is a dog", []string{"a dog"}, 10, false, ""},
		{"exactly max", "q", []string{"a", "b"}, 2, false, ""},
		{"empty query", "", []string{"a"}, 10, true, "Query cannot be empty"},
		{"whitespace query", " \t\n ", []string{"a"}, 10, true, "Query cannot be empty"},
		{"no documents", "q", nil, 10, true, "Documents list cannot be empty"},
		{"empty documents", "q", []string{}, 10, true, "Documents list cannot be empty"},
		{"too many", "q", []string{"a", "b", "c"}, 2, true, "Too many documents, max: 2"},
		{"empty document text allowed", "q", []string{""}, 10, false, ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := Validate(tc.query, tc.documents, tc.max)
			if !tc.wantErr {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatal("expected error")
			}
			de := domain.AsError(err)
			if de.Kind != domain.KindBadRequest {
				t.Errorf("expected %v, got %v", domain.KindBadRequest, de.Kind)
			}
			if !strings.Contains(de.Message, tc.wantMsg) {
				t.Errorf("message %q does not contain %q", de.Message, tc.wantMsg)
			}
		})
	}
}
