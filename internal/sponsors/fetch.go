package sponsors

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"
)

// PublicationURL is the gov.uk page listing the register of licensed
// sponsors for workers. The CSV itself is linked from this page.
const PublicationURL = "https://www.gov.uk/government/publications/register-of-licensed-sponsors-workers"

const fetchTimeout = 30 * time.Second

// Fetcher downloads the sponsor register from gov.uk.
type Fetcher struct {
	HTTPClient *http.Client
	PageURL    string
	logger     *zap.Logger
}

func NewFetcher(logger *zap.Logger) *Fetcher {
	return &Fetcher{
		HTTPClient: &http.Client{
			Timeout: fetchTimeout,
		},
		PageURL: PublicationURL,
		logger:  logger,
	}
}

// Fetch locates the register CSV on the publication page, downloads it and
// parses it into a Register.
func (f *Fetcher) Fetch(ctx context.Context) (*Register, error) {
	csvURL, err := f.findRegisterURL(ctx)
	if err != nil {
		return nil, err
	}

	f.logger.Debug("downloading sponsor register", zap.String("url", csvURL))

	resp, err := f.get(ctx, csvURL)
	if err != nil {
		return nil, &LoadError{Reason: "downloading register csv", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &LoadError{Reason: fmt.Sprintf("downloading register csv: bad status: %s", resp.Status)}
	}

	return Load(resp.Body)
}

// findRegisterURL scrapes the publication page for CSV links. The worker
// register is preferred; the page also hosts registers for other routes.
func (f *Fetcher) findRegisterURL(ctx context.Context) (string, error) {
	resp, err := f.get(ctx, f.PageURL)
	if err != nil {
		return "", &LoadError{Reason: "fetching publication page", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", &LoadError{Reason: fmt.Sprintf("fetching publication page: bad status: %s", resp.Status)}
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return "", &LoadError{Reason: "parsing publication page", Err: err}
	}

	var first, worker string
	doc.Find(`a[href$=".csv"]`).Each(func(_ int, link *goquery.Selection) {
		href, ok := link.Attr("href")
		if !ok || strings.TrimSpace(href) == "" {
			return
		}

		if first == "" {
			first = href
		}

		text := strings.ToLower(link.Text())
		if worker == "" && (strings.Contains(strings.ToLower(href), "worker") || strings.Contains(text, "worker")) {
			worker = href
		}
	})

	if worker != "" {
		return worker, nil
	}
	if first != "" {
		f.logger.Warn("no worker register link found, falling back to the first csv link",
			zap.String("url", first),
		)
		return first, nil
	}

	return "", &LoadError{Reason: "no csv links on the publication page"}
}

func (f *Fetcher) get(ctx context.Context, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	return f.HTTPClient.Do(req)
}
