package fetcher

import (
	"context"
	"fmt"
	"time"
)

// Walker assembles the full set of papers announced on the most recent
// listing date by paging through a category's recent listings. The listing
// endpoint has no "today only" query, so the walker fixes the target date
// from the first page and keeps paging until a page announces a different
// date or runs out of entries.
type Walker struct {
	fetcher Fetcher
	step    int
}

func NewWalker(f Fetcher, step int) *Walker {
	if step <= 0 {
		step = DefaultPageSize
	}
	return &Walker{fetcher: f, step: step}
}

// Walk returns the target date and the papers announced on it, in listing
// order. A category with no parseable date header yields a zero date and no
// papers. Any fetch error aborts the walk.
func (w *Walker) Walk(ctx context.Context, category string) (time.Time, []Paper, error) {
	first, err := w.fetcher.FetchPage(ctx, category, 0)
	if err != nil {
		return time.Time{}, nil, fmt.Errorf("walker: fetch listing at offset 0: %w", err)
	}
	if !first.HasDate {
		return time.Time{}, nil, nil
	}
	target := first.Date

	var papers []Paper
	page := first
	for skip := 0; ; skip += w.step {
		if skip > 0 {
			page, err = w.fetcher.FetchPage(ctx, category, skip)
			if err != nil {
				return time.Time{}, nil, fmt.Errorf("walker: fetch listing at offset %d: %w", skip, err)
			}
		}

		// A present header with a different date means we crossed into the
		// previous announcement day. A missing header on a continuation
		// page is normal and does not stop the walk.
		if page.HasDate && !page.Date.Equal(target) {
			break
		}
		if len(page.Papers) == 0 {
			break
		}
		papers = append(papers, page.Papers...)
	}

	return target, papers, nil
}
