// Package scraper is a thin client for a jobspy-style scraping service.
// The service itself is a black box: this client only knows how to ask it
// for a job table and how to page through the response.
package scraper

import (
	"compress/gzip"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"go.uber.org/zap"
)

const (
	contentType     = "application/json"
	contentEncoding = "gzip, deflate, br"

	defaultTimeout = 60 * time.Second
	userAgent      = "JobFinder/1.0"
)

type Client struct {
	HTTPClient *http.Client
	UserAgent  string
	APIURL     string
	logger     *zap.Logger
}

func New(apiURL string, timeout time.Duration, logger *zap.Logger) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	return &Client{
		APIURL: apiURL,
		HTTPClient: &http.Client{
			Timeout: timeout,
		},
		UserAgent: userAgent,
		logger:    logger,
	}
}

type itemResponse struct {
	Jobs    []map[string]any `json:"jobs"`
	Found   int              `json:"found"`
	Pages   int              `json:"pages"`
	Page    int              `json:"page"`
	PerPage int              `json:"per_page"`
}

// getItems makes GET requests to the scraping service and collects job rows
// from all pages, in service order.
func (c *Client) getItems(req *http.Request) ([]map[string]any, error) {
	resp, err := c.do(req)
	if err != nil {
		return nil, err
	}

	response, err := c.parseItemResponse(resp)
	if err != nil {
		return nil, err
	}

	c.logger.Debug("got response from scraper",
		zap.Int("found", response.Found),
		zap.Int("pages", response.Pages),
	)

	items := response.Jobs

	for response.Page < (response.Pages - 1) {
		c.logger.Debug("requesting next page",
			zap.Int("current", response.Page+1),
			zap.Int("total", response.Pages),
		)

		resp, err = c.do(addPage(req, response.Page+1))
		if err != nil {
			return nil, err
		}

		response, err = c.parseItemResponse(resp)
		if err != nil {
			return nil, err
		}

		items = append(items, response.Jobs...)
	}

	return items, nil
}

func (c *Client) parseItemResponse(resp *http.Response) (*itemResponse, error) {
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("bad status: %s", resp.Status)
	}

	var body io.ReadCloser
	var err error
	switch resp.Header.Get("Content-Encoding") {
	case "gzip":
		body, err = gzip.NewReader(resp.Body)
		if err != nil {
			resp.Body.Close()
			return nil, err
		}
		defer body.Close()
	default:
		body = resp.Body
		defer body.Close()
	}

	var response *itemResponse
	if err := json.NewDecoder(body).Decode(&response); err != nil {
		return nil, err
	}

	return response, nil
}

func (c *Client) do(req *http.Request) (*http.Response, error) {
	req.Header.Set("User-Agent", c.UserAgent)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Accept-Encoding", contentEncoding)

	c.logger.Debug("make request", zap.String("url", req.URL.String()))

	return c.HTTPClient.Do(req)
}

// addPage adds the page parameter to the request URL.
func addPage(req *http.Request, page int) *http.Request {
	q := req.URL.Query()
	q.Set("page", strconv.Itoa(page))
	req.URL.RawQuery = q.Encode()

	return req
}

func buildQuery(params *SearchParams) url.Values {
	q := url.Values{}

	if params.Term != "" {
		q.Set("search_term", params.Term)
	}
	if params.Location != "" {
		q.Set("location", params.Location)
	}
	for _, site := range params.Sites {
		q.Add("site", site)
	}
	if params.HoursOld > 0 {
		q.Set("hours_old", strconv.Itoa(params.HoursOld))
	}
	if params.ResultsWanted > 0 {
		q.Set("results_wanted", strconv.Itoa(params.ResultsWanted))
	}

	return q
}
