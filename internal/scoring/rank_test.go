package scoring

import (
	"bytes"
	"encoding/csv"
	"testing"

	"github.com/ezgiver/JobFinder/internal/jobs"
)

func rankFixture() (*jobs.Jobs, []Result) {
	table := &jobs.Jobs{Items: []*jobs.Job{
		{Company: "A", Title: "Solid", Description: "d"},
		{Company: "B", Title: "Best", Description: "d"},
		{Company: "C", Title: "Reject", Description: "d"},
		{Company: "D", Title: "Good", Description: "d"},
		{Company: "E", Title: "Broken", Description: "d"},
	}}

	results := []Result{
		{RowIndex: 0, Status: StatusOK, Score: 72, Reasoning: "solid"},
		{RowIndex: 1, Status: StatusOK, Score: 95, Reasoning: "best"},
		{RowIndex: 2, Status: StatusOK, Score: 40, Reasoning: "reject"},
		{RowIndex: 3, Status: StatusOK, Score: 88, Reasoning: "good"},
		{RowIndex: 4, Status: StatusFailed, Err: nil},
	}

	return table, results
}

func TestRankFiltersAndSortsDescending(t *testing.T) {
	table, results := rankFixture()

	ranked := Rank(table, results, MinMatchScore)

	if len(ranked) != 3 {
		t.Fatalf("expected 3 ranked jobs, got %d", len(ranked))
	}

	scores := []int{ranked[0].Result.Score, ranked[1].Result.Score, ranked[2].Result.Score}
	want := []int{95, 88, 72}
	for i := range want {
		if scores[i] != want[i] {
			t.Fatalf("unexpected ranking order: %v, want %v", scores, want)
		}
	}

	if ranked[0].Job.Title != "Best" {
		t.Fatalf("ranking paired the wrong job: %s", ranked[0].Job.Title)
	}
}

func TestRankExcludesFailedRows(t *testing.T) {
	table := &jobs.Jobs{Items: []*jobs.Job{
		{Company: "A", Title: "Failed", Description: "d"},
	}}
	// A failed row with a stale high score must never rank.
	results := []Result{{RowIndex: 0, Status: StatusFailed, Score: 99}}

	if ranked := Rank(table, results, MinMatchScore); len(ranked) != 0 {
		t.Fatalf("failed rows must not rank, got %d", len(ranked))
	}
}

func TestRankStableForEqualScores(t *testing.T) {
	table := &jobs.Jobs{Items: []*jobs.Job{
		{Company: "A", Title: "First", Description: "d"},
		{Company: "B", Title: "Second", Description: "d"},
	}}
	results := []Result{
		{RowIndex: 0, Status: StatusOK, Score: 80},
		{RowIndex: 1, Status: StatusOK, Score: 80},
	}

	ranked := Rank(table, results, MinMatchScore)

	if ranked[0].Job.Title != "First" || ranked[1].Job.Title != "Second" {
		t.Fatalf("equal scores must keep row order: %s, %s", ranked[0].Job.Title, ranked[1].Job.Title)
	}
}

func TestWriteCSV(t *testing.T) {
	table, results := rankFixture()
	ranked := Rank(table, results, MinMatchScore)

	var buf bytes.Buffer
	if err := WriteCSV(&buf, ranked); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	records, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("parsing exported csv: %v", err)
	}

	if len(records) != 4 {
		t.Fatalf("expected header + 3 rows, got %d", len(records))
	}

	header := records[0]
	if header[0] != "match_score" || header[1] != "reasoning" || header[2] != "title" {
		t.Fatalf("unexpected header layout: %v", header)
	}

	if records[1][0] != "95" || records[1][2] != "Best" {
		t.Fatalf("unexpected first data row: %v", records[1])
	}
}
