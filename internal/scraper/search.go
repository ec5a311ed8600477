package scraper

import (
	"context"
	"fmt"
	"net/http"

	"github.com/mitchellh/mapstructure"

	"github.com/ezgiver/JobFinder/internal/jobs"
)

const searchPath = "/search"

// SearchParams describe one scraping request. Field names line up with the
// config file keys.
type SearchParams struct {
	Term          string   `mapstructure:"term"`
	Location      string   `mapstructure:"location"`
	Sites         []string `mapstructure:"sites"`
	HoursOld      int      `mapstructure:"hours-old"`
	ResultsWanted int      `mapstructure:"results-wanted"`
}

// Search asks the scraping service for a job table and validates the result
// schema before anything downstream sees it.
func (c *Client) Search(ctx context.Context, params *SearchParams) (*jobs.Jobs, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.APIURL+searchPath, nil)
	if err != nil {
		return nil, err
	}
	req.URL.RawQuery = buildQuery(params).Encode()

	items, err := c.getItems(req)
	if err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}

	decoded := make([]*jobs.Job, 0, len(items))
	for idx, item := range items {
		var job jobs.Job
		if err := mapstructure.Decode(item, &job); err != nil {
			return nil, &jobs.DataError{Row: idx, Reason: fmt.Sprintf("decoding scraped row: %v", err)}
		}
		decoded = append(decoded, &job)
	}

	result := &jobs.Jobs{Items: decoded}
	if err := result.Validate(); err != nil {
		return nil, err
	}

	return result, nil
}
