package sponsors

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"
)

func newTestFetcher(pageURL string) *Fetcher {
	f := NewFetcher(zap.NewNop())
	f.PageURL = pageURL
	return f
}

func TestFetchPrefersWorkerCSV(t *testing.T) {
	var csvRequests []string

	mux := http.NewServeMux()
	server := httptest.NewServer(mux)
	defer server.Close()

	mux.HandleFunc("/page", func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprintf(w, `<html><body>
			<a href="%s/student_sponsors.csv">Student register</a>
			<a href="%s/Worker_and_Temporary_Worker.csv">Worker register</a>
		</body></html>`, server.URL, server.URL)
	})
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		csvRequests = append(csvRequests, r.URL.Path)
		fmt.Fprint(w, "Organisation Name\nDeloitte LLP\n")
	})

	reg, err := newTestFetcher(server.URL + "/page").Fetch(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(csvRequests) != 1 || csvRequests[0] != "/Worker_and_Temporary_Worker.csv" {
		t.Fatalf("expected only the worker csv to be downloaded, got %v", csvRequests)
	}

	if reg.Len() != 1 || reg.Names()[0] != "deloitte llp" {
		t.Fatalf("unexpected register contents: %v", reg.Names())
	}
}

func TestFetchFallsBackToFirstCSV(t *testing.T) {
	mux := http.NewServeMux()
	server := httptest.NewServer(mux)
	defer server.Close()

	mux.HandleFunc("/page", func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprintf(w, `<a href="%s/register.csv">Some register</a>`, server.URL)
	})
	mux.HandleFunc("/register.csv", func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, "Org\nAcme Corp\n")
	})

	reg, err := newTestFetcher(server.URL + "/page").Fetch(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if reg.Names()[0] != "acme corp" {
		t.Fatalf("unexpected register contents: %v", reg.Names())
	}
}

func TestFetchNoCSVLinks(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, "<html><body><p>Page redesigned, no CSV links</p></body></html>")
	}))
	defer server.Close()

	_, err := newTestFetcher(server.URL).Fetch(context.Background())

	var loadErr *LoadError
	if !errors.As(err, &loadErr) {
		t.Fatalf("expected *LoadError, got %v", err)
	}
}

func TestFetchBadPageStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	_, err := newTestFetcher(server.URL).Fetch(context.Background())

	var loadErr *LoadError
	if !errors.As(err, &loadErr) {
		t.Fatalf("expected *LoadError, got %v", err)
	}
}
