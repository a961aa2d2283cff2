package fetcher

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

const (
	// DefaultPageSize matches the listing page's default entry count.
	DefaultPageSize = 25

	// siteURL is the base used to resolve relative PDF links. Listing
	// requests go through baseURL instead so tests can inject a server.
	siteURL = "https://arxiv.org"
)

// Announcement headers look like "Fri, 30 Aug 2025 (showing 25 of 113 entries)".
var dateHeaderRegex = regexp.MustCompile(`\w+, \d{1,2} \w+ \d{4}`)

// ArxivFetcher scrapes the /list/<category>/recent listing pages.
type ArxivFetcher struct {
	client   *http.Client
	baseURL  string
	pageSize int
}

func NewArxivFetcher(pageSize int) *ArxivFetcher {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return &ArxivFetcher{
		client:   &http.Client{Timeout: 30 * time.Second},
		baseURL:  siteURL,
		pageSize: pageSize,
	}
}

// PageSize reports the number of entries requested per page, which is also
// the walker's offset step.
func (f *ArxivFetcher) PageSize() int {
	return f.pageSize
}

func (f *ArxivFetcher) FetchPage(ctx context.Context, category string, skip int) (*Page, error) {
	reqURL := fmt.Sprintf("%s/list/%s/recent?skip=%d&show=%d",
		f.baseURL, url.PathEscape(category), skip, f.pageSize)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("arxiv: failed to create request: %w", err)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("arxiv: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("arxiv: unexpected status %d for %s", resp.StatusCode, reqURL)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("arxiv: failed to parse listing HTML: %w", err)
	}

	return parsePage(doc), nil
}

func parsePage(doc *goquery.Document) *Page {
	page := &Page{}

	doc.Find("h3").EachWithBreak(func(_ int, h3 *goquery.Selection) bool {
		match := dateHeaderRegex.FindString(h3.Text())
		if match == "" {
			return true
		}
		date, err := time.Parse("Mon, 2 Jan 2006", match)
		if err != nil {
			// Malformed date text counts as no header at all.
			return true
		}
		page.Date = date
		page.HasDate = true
		return false
	})

	doc.Find("dl#articles dt").Each(func(_ int, dt *goquery.Selection) {
		link := dt.Find(`a[title="Download PDF"]`)
		href, ok := link.Attr("href")
		if !ok || href == "" {
			log.Printf("fetcher: skipping listing entry without a PDF link")
			return
		}
		page.Papers = append(page.Papers, paperFromLink(href))
	})

	return page
}

func paperFromLink(href string) Paper {
	pdfURL := href
	if !strings.HasPrefix(href, "http") {
		pdfURL = siteURL + href
	}

	segments := strings.Split(strings.TrimSuffix(href, "/"), "/")
	id := segments[len(segments)-1]

	return Paper{ID: id, PDFURL: pdfURL}
}
