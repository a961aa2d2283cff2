package summarizer

import (
	"context"
	"errors"

	"github.com/noahvandal/arxiv-digest/internal/fetcher"
)

// Summarizer produces a short plain-text summary of one paper.
type Summarizer interface {
	Summarize(ctx context.Context, paper fetcher.Paper) (string, error)
}

// ErrPaper marks failures confined to a single paper, such as an
// undownloadable or unreadable PDF. Callers may skip the paper and keep
// going; any other error from Summarize is a provider failure and aborts
// the run.
var ErrPaper = errors.New("paper unavailable")
