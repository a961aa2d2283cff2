package report

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noahvandal/arxiv-digest/internal/fetcher"
)

type nopCloser struct {
	*bytes.Buffer
}

func (nopCloser) Close() error { return nil }

func newTestWriter(mirror *bytes.Buffer) (*Writer, *bytes.Buffer) {
	file := &bytes.Buffer{}
	var m io.Writer
	if mirror != nil {
		m = mirror
	}
	return NewWriter(nopCloser{file}, m), file
}

func TestFilename(t *testing.T) {
	date := time.Date(2025, 8, 30, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "arxiv_summaries_cs.AI_2025-08-30.txt", Filename("cs.AI", date))
}

func TestHeaderOnlyReport(t *testing.T) {
	w, file := newTestWriter(nil)
	date := time.Date(2025, 8, 30, 0, 0, 0, 0, time.UTC)

	require.NoError(t, w.WriteHeader("cs.AI", date))
	require.NoError(t, w.Close())

	assert.Equal(t, "arXiv summaries for cs.AI, 2025-08-30\n", file.String(),
		"a run with zero papers leaves only the header line")
}

func TestWriteSummaryBlock(t *testing.T) {
	mirror := &bytes.Buffer{}
	w, file := newTestWriter(mirror)

	paper := fetcher.Paper{ID: "2401.12345", PDFURL: "https://arxiv.org/pdf/2401.12345"}
	require.NoError(t, w.WriteSummary(paper, "A concise summary."))

	out := file.String()
	assert.Contains(t, out, "Paper ID: 2401.12345\n")
	assert.Contains(t, out, "Abstract: https://arxiv.org/abs/2401.12345\n")
	assert.Contains(t, out, "PDF: https://arxiv.org/pdf/2401.12345\n")
	assert.Contains(t, out, "A concise summary.\n")
	assert.Contains(t, out, strings.Repeat("-", 80)+"\n")

	assert.Equal(t, out, mirror.String(), "each block is mirrored to the console stream as written")
}

func TestWrapBreaksAtLastSpace(t *testing.T) {
	words := strings.Repeat("word ", 60) // 300 characters including spaces
	lines := wrap(strings.TrimSpace(words), WrapColumn)

	require.Greater(t, len(lines), 1)
	for _, line := range lines {
		assert.LessOrEqual(t, len(line), WrapColumn)
		assert.False(t, strings.HasPrefix(line, " "))
		assert.False(t, strings.HasSuffix(line, " "))
	}
	assert.Equal(t, strings.Fields(words), strings.Fields(strings.Join(lines, " ")),
		"wrapping must not lose or reorder words")
}

func TestWrapNoWhitespaceFallback(t *testing.T) {
	pathological := strings.Repeat("a", 300)
	lines := wrap(pathological, WrapColumn)

	require.Equal(t, []string{
		strings.Repeat("a", 150),
		strings.Repeat("a", 150),
	}, lines, "whitespace-free input hard-breaks at the column budget")
}

func TestWrapShortTextUntouched(t *testing.T) {
	assert.Equal(t, []string{"short"}, wrap("short", WrapColumn))
}

func TestCreateWritesFile(t *testing.T) {
	dir := t.TempDir()
	date := time.Date(2025, 8, 30, 0, 0, 0, 0, time.UTC)

	w, err := Create(dir, "cs.AI", date, nil)
	require.NoError(t, err)
	require.NoError(t, w.WriteSummary(fetcher.Paper{ID: "1", PDFURL: "u"}, "s"))
	require.NoError(t, w.Close())

	data, err := readFile(dir, "cs.AI", date)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(data, "arXiv summaries for cs.AI, 2025-08-30\n"))
	assert.Contains(t, data, "Paper ID: 1")
}

func readFile(dir, category string, date time.Time) (string, error) {
	b, err := os.ReadFile(filepath.Join(dir, Filename(category, date)))
	return string(b), err
}
