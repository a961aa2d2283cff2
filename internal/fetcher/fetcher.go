package fetcher

import (
	"context"
	"time"
)

// Paper is a single entry on an arXiv listing page.
type Paper struct {
	ID     string
	PDFURL string
}

// AbsURL returns the paper's abstract page URL.
func (p Paper) AbsURL() string {
	return "https://arxiv.org/abs/" + p.ID
}

// Page holds the parsed content of one listing page. HasDate is false when
// the page carries no recognizable date header, which happens on
// continuation pages of the same announcement day.
type Page struct {
	Date    time.Time
	HasDate bool
	Papers  []Paper
}

// Fetcher retrieves one listing page for a category at a pagination offset.
type Fetcher interface {
	FetchPage(ctx context.Context, category string, skip int) (*Page, error)
}
