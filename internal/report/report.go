package report

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/noahvandal/arxiv-digest/internal/fetcher"
)

const (
	// WrapColumn is the column budget for summary text; lines break at the
	// last space before it.
	WrapColumn = 150

	ruleWidth = 80
)

// Filename returns the deterministic report file name for a category/date pair.
func Filename(category string, date time.Time) string {
	return fmt.Sprintf("arxiv_summaries_%s_%s.txt", category, date.Format("2006-01-02"))
}

// Writer serializes summaries to the report file, mirroring each block to a
// console stream as it arrives. It owns the file handle for the run.
type Writer struct {
	file   io.WriteCloser
	mirror io.Writer
}

func NewWriter(file io.WriteCloser, mirror io.Writer) *Writer {
	if mirror == nil {
		mirror = io.Discard
	}
	return &Writer{file: file, mirror: mirror}
}

// Create opens the report file for a category/date under dir and writes the
// header line.
func Create(dir, category string, date time.Time, mirror io.Writer) (*Writer, error) {
	path := filepath.Join(dir, Filename(category, date))
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("report: failed to create %s: %w", path, err)
	}

	w := NewWriter(f, mirror)
	if err := w.WriteHeader(category, date); err != nil {
		f.Close()
		return nil, err
	}
	return w, nil
}

// WriteHeader writes the single report header line.
func (w *Writer) WriteHeader(category string, date time.Time) error {
	header := fmt.Sprintf("arXiv summaries for %s, %s\n", category, date.Format("2006-01-02"))
	if _, err := io.WriteString(w.file, header); err != nil {
		return fmt.Errorf("report: failed to write header: %w", err)
	}
	io.WriteString(w.mirror, header)
	return nil
}

// WriteSummary appends one paper block and mirrors it to the console stream.
func (w *Writer) WriteSummary(paper fetcher.Paper, summary string) error {
	var sb strings.Builder
	sb.WriteByte('\n')
	sb.WriteString(fmt.Sprintf("Paper ID: %s\n", paper.ID))
	sb.WriteString(fmt.Sprintf("Abstract: %s\n", paper.AbsURL()))
	sb.WriteString(fmt.Sprintf("PDF: %s\n", paper.PDFURL))
	sb.WriteString("Summary:\n")
	for _, line := range wrap(summary, WrapColumn) {
		sb.WriteString(line)
		sb.WriteByte('\n')
	}
	sb.WriteString(strings.Repeat("-", ruleWidth))
	sb.WriteByte('\n')

	block := sb.String()
	if _, err := io.WriteString(w.file, block); err != nil {
		return fmt.Errorf("report: failed to write block for %s: %w", paper.ID, err)
	}
	io.WriteString(w.mirror, block)
	return nil
}

// Close releases the report file.
func (w *Writer) Close() error {
	return w.file.Close()
}

// wrap breaks text into lines at the last space before limit columns. A run
// with no spaces is broken hard at the limit so the loop always advances.
func wrap(text string, limit int) []string {
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		for len(line) > limit {
			cut := strings.LastIndex(line[:limit], " ")
			if cut <= 0 {
				cut = limit
			}
			lines = append(lines, strings.TrimRight(line[:cut], " "))
			line = strings.TrimLeft(line[cut:], " ")
		}
		lines = append(lines, line)
	}
	return lines
}
