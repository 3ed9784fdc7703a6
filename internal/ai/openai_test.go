package ai

import (
	"strings"
	"testing"
)

func TestParseSummaryValid(t *testing.T) {
	content := `{"title":"Grocery plan","filename_summary":"groceries for the week","summary":"A list of items to buy."}`
	got, err := ParseSummary(content)
	if err != nil {
		t.Fatalf("ParseSummary: %v", err)
	}
	if got.Title != "Grocery plan" {
		t.Errorf("Title = %q", got.Title)
	}
	if got.FilenameSummary != "groceries for the week" {
		t.Errorf("FilenameSummary = %q", got.FilenameSummary)
	}
	if got.Summary != "A list of items to buy." {
		t.Errorf("Summary = %q", got.Summary)
	}
}

func TestParseSummaryMissingFields(t *testing.T) {
	cases := []struct {
		name    string
		content string
		want    string
	}{
		{"no title", `{"filename_summary":"a","summary":"b"}`, "title"},
		{"blank title", `{"title":"   ","filename_summary":"a","summary":"b"}`, "title"},
		{"no filename summary", `{"title":"t","summary":"b"}`, "filename_summary"},
		{"no summary", `{"title":"t","filename_summary":"a"}`, "summary"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseSummary(tc.content)
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Errorf("error %q does not name missing field %q", err, tc.want)
			}
		})
	}
}

func TestParseSummaryMalformedJSON(t *testing.T) {
	if _, err := ParseSummary("I refuse to answer in JSON"); err == nil {
		t.Error("expected error for non-JSON response")
	}
}
