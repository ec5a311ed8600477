package scoring

import (
	"encoding/csv"
	"io"
	"sort"
	"strconv"

	"github.com/ezgiver/JobFinder/internal/jobs"
)

// MinMatchScore is the default cutoff for the ranked output.
const MinMatchScore = 70

// RankedJob pairs a job row with its scoring result.
type RankedJob struct {
	Job    *jobs.Job
	Result Result
}

// Rank selects the rows that scored at or above minScore and returns them
// sorted by score, highest first. Failed and skipped rows never rank; they
// stay visible through Summarize. The sort is stable so equal scores keep
// their original row order.
func Rank(table *jobs.Jobs, results []Result, minScore int) []RankedJob {
	n := table.Len()
	if len(results) < n {
		n = len(results)
	}

	ranked := make([]RankedJob, 0, n)
	for i := 0; i < n; i++ {
		if results[i].Status != StatusOK || results[i].Score < minScore {
			continue
		}
		ranked = append(ranked, RankedJob{Job: table.Items[i], Result: results[i]})
	}

	sort.SliceStable(ranked, func(a, b int) bool {
		return ranked[a].Result.Score > ranked[b].Result.Score
	})

	return ranked
}

// WriteCSV exports ranked jobs as a flat table: score columns first, then
// the job fields.
func WriteCSV(w io.Writer, ranked []RankedJob) error {
	writer := csv.NewWriter(w)

	header := append([]string{"match_score", "reasoning"}, jobs.CSVHeader()...)
	if err := writer.Write(header); err != nil {
		return err
	}

	for _, row := range ranked {
		record := append([]string{
			strconv.Itoa(row.Result.Score),
			row.Result.Reasoning,
		}, row.Job.CSVRecord()...)

		if err := writer.Write(record); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}
