package jobs

// csvColumns is the job part of the exported CSV layout. Score columns are
// written first by the caller so the most useful data reads left to right.
var csvColumns = []string{
	"title",
	"company",
	"location",
	"job_url",
	"site",
	"date_posted",
	"description",
}

// CSVHeader returns the column names contributed by a job row.
func CSVHeader() []string {
	header := make([]string, len(csvColumns))
	copy(header, csvColumns)
	return header
}

// CSVRecord returns the job's values in CSVHeader order.
func (j *Job) CSVRecord() []string {
	return []string{
		j.Title,
		j.Company,
		j.Location,
		j.URL,
		j.Site,
		j.DatePosted,
		j.Description,
	}
}
