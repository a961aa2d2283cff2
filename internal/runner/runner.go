package runner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"path/filepath"
	"time"

	"github.com/noahvandal/arxiv-digest/internal/fetcher"
	"github.com/noahvandal/arxiv-digest/internal/report"
	"github.com/noahvandal/arxiv-digest/internal/summarizer"
)

// Lister produces the papers announced on the most recent listing date for
// a category.
type Lister interface {
	Walk(ctx context.Context, category string) (time.Time, []fetcher.Paper, error)
}

// Runner orchestrates the walk -> summarize -> report pipeline, strictly
// sequentially, writing each summary as it completes.
type Runner struct {
	category   string
	lister     Lister
	summarizer summarizer.Summarizer
	outDir     string
	mirror     io.Writer
}

func New(category string, l Lister, s summarizer.Summarizer, outDir string, mirror io.Writer) *Runner {
	if outDir == "" {
		outDir = "."
	}
	return &Runner{
		category:   category,
		lister:     l,
		summarizer: s,
		outDir:     outDir,
		mirror:     mirror,
	}
}

// Run executes the full pipeline once.
func (r *Runner) Run(ctx context.Context) error {
	log.Printf("Fetching recent listings for %s...", r.category)
	date, papers, err := r.lister.Walk(ctx, r.category)
	if err != nil {
		return fmt.Errorf("runner: walk listings: %w", err)
	}
	if date.IsZero() {
		// No date header at all; still produce a (header-only) report.
		date = time.Now()
	}
	log.Printf("Found %d papers announced %s", len(papers), date.Format("2006-01-02"))

	w, err := report.Create(r.outDir, r.category, date, r.mirror)
	if err != nil {
		return err
	}
	defer w.Close()

	written := 0
	for _, paper := range papers {
		text, err := r.summarizer.Summarize(ctx, paper)
		if err != nil {
			if errors.Is(err, summarizer.ErrPaper) {
				log.Printf("WARNING: skipping %s: %v", paper.ID, err)
				continue
			}
			return fmt.Errorf("runner: summarize %s: %w", paper.ID, err)
		}
		if err := w.WriteSummary(paper, text); err != nil {
			return fmt.Errorf("runner: %s: %w", paper.ID, err)
		}
		written++
	}

	log.Printf("Wrote %d summaries to %s", written,
		filepath.Join(r.outDir, report.Filename(r.category, date)))
	return nil
}
