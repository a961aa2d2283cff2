package fetcher

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

const sampleListingPage = `<html><body>
<div id='dlpage'>
<dl id='articles'>
<h3>Fri, 30 Aug 2025 (showing first 25 of 113 entries )</h3>
<dt>
  <a href="/abs/2508.21263" title="Abstract">arXiv:2508.21263</a>
  <a href="/pdf/2508.21263" title="Download PDF">pdf</a>
</dt>
<dd>First paper.</dd>
<dt>
  <a href="/abs/2508.21264" title="Abstract">arXiv:2508.21264</a>
</dt>
<dd>Entry without a PDF link, skipped.</dd>
<dt>
  <a href="/abs/2401.12345" title="Abstract">arXiv:2401.12345</a>
  <a href="/pdf/2401.12345" title="Download PDF">pdf</a>
</dt>
<dd>Second paper.</dd>
</dl>
</div>
</body></html>`

const headerlessListingPage = `<html><body>
<div id='dlpage'>
<dl id='articles'>
<h3>showing entries with no date at all</h3>
</dl>
</div>
</body></html>`

func TestFetchPageParsesListing(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(sampleListingPage))
	}))
	defer ts.Close()

	f := &ArxivFetcher{client: ts.Client(), baseURL: ts.URL, pageSize: 25}

	page, err := f.FetchPage(context.Background(), "cs.AI", 0)
	if err != nil {
		t.Fatalf("FetchPage returned error: %v", err)
	}

	if !page.HasDate {
		t.Fatal("Expected a date header to be found")
	}
	if y, m, d := page.Date.Date(); y != 2025 || int(m) != 8 || d != 30 {
		t.Errorf("Unexpected header date: %v", page.Date)
	}

	if len(page.Papers) != 2 {
		t.Fatalf("Expected 2 papers (one entry has no PDF link), got %d", len(page.Papers))
	}

	p := page.Papers[1]
	if p.ID != "2401.12345" {
		t.Errorf("Expected ID '2401.12345', got %q", p.ID)
	}
	if p.PDFURL != "https://arxiv.org/pdf/2401.12345" {
		t.Errorf("Expected absolute PDF URL, got %q", p.PDFURL)
	}
	if p.AbsURL() != "https://arxiv.org/abs/2401.12345" {
		t.Errorf("Unexpected abstract URL %q", p.AbsURL())
	}
}

func TestFetchPageQueryParameters(t *testing.T) {
	var gotPath, gotQuery string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery
		w.Write([]byte(sampleListingPage))
	}))
	defer ts.Close()

	f := &ArxivFetcher{client: ts.Client(), baseURL: ts.URL, pageSize: 50}

	if _, err := f.FetchPage(context.Background(), "math.CO", 100); err != nil {
		t.Fatalf("FetchPage returned error: %v", err)
	}

	if gotPath != "/list/math.CO/recent" {
		t.Errorf("Unexpected request path %q", gotPath)
	}
	if gotQuery != "skip=100&show=50" {
		t.Errorf("Unexpected query %q", gotQuery)
	}
}

func TestFetchPageMalformedDateHeader(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(headerlessListingPage))
	}))
	defer ts.Close()

	f := &ArxivFetcher{client: ts.Client(), baseURL: ts.URL, pageSize: 25}

	page, err := f.FetchPage(context.Background(), "cs.AI", 0)
	if err != nil {
		t.Fatalf("FetchPage returned error: %v", err)
	}
	if page.HasDate {
		t.Error("Malformed date text should count as no header")
	}
	if len(page.Papers) != 0 {
		t.Errorf("Expected no papers, got %d", len(page.Papers))
	}
}

func TestFetchPageServerError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer ts.Close()

	f := &ArxivFetcher{client: ts.Client(), baseURL: ts.URL, pageSize: 25}

	if _, err := f.FetchPage(context.Background(), "cs.AI", 0); err == nil {
		t.Fatal("Expected error for HTTP 500")
	}
}
