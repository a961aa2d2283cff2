package summarizer

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/ledongthuc/pdf"

	"github.com/noahvandal/arxiv-digest/internal/fetcher"
	"github.com/noahvandal/arxiv-digest/internal/llm"
	"github.com/noahvandal/arxiv-digest/internal/retry"
)

const systemPrompt = "You are a scientific paper summarizer. Create a very concise summary " +
	"(5 sentences or less) of the paper text provided. Focus on the main accomplishments and findings."

const (
	// DefaultMaxPages bounds how deep into the PDF text extraction goes;
	// the abstract and introduction are what the summary needs.
	DefaultMaxPages = 10

	// DefaultCharBudget is how much extracted text is forwarded to the model.
	DefaultCharBudget = 1024

	summaryTemperature = 0.3
	summaryMaxTokens   = 200
)

// PDFSummarizer downloads a paper's PDF, extracts leading-page text, and
// asks an LLM provider for a summary.
type PDFSummarizer struct {
	llm        llm.Client
	client     *http.Client
	maxPages   int
	charBudget int
}

func NewPDFSummarizer(client llm.Client, maxPages, charBudget int) *PDFSummarizer {
	if maxPages <= 0 {
		maxPages = DefaultMaxPages
	}
	if charBudget <= 0 {
		charBudget = DefaultCharBudget
	}
	return &PDFSummarizer{
		llm:        client,
		client:     &http.Client{Timeout: 60 * time.Second},
		maxPages:   maxPages,
		charBudget: charBudget,
	}
}

func (s *PDFSummarizer) Summarize(ctx context.Context, paper fetcher.Paper) (string, error) {
	text, err := s.extractText(ctx, paper.PDFURL)
	if err != nil {
		return "", err
	}
	// A scanned or image-only PDF yields empty text; still ask the model
	// rather than fail the paper.
	return s.summarizeText(ctx, text)
}

func (s *PDFSummarizer) summarizeText(ctx context.Context, text string) (string, error) {
	if len(text) > s.charBudget {
		text = text[:s.charBudget]
	}
	return s.llm.Complete(ctx, llm.Request{
		System:      systemPrompt,
		User:        text,
		Temperature: summaryTemperature,
		MaxTokens:   summaryMaxTokens,
	})
}

// extractText downloads the PDF to a temporary file and pulls text from its
// leading pages. The temporary file is removed even when extraction fails.
func (s *PDFSummarizer) extractText(ctx context.Context, pdfURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pdfURL, nil)
	if err != nil {
		return "", paperErr("summarizer: failed to create request for %s: %v", pdfURL, err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return "", paperErr("summarizer: download %s: %v", pdfURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", paperErr("summarizer: unexpected status %d for %s", resp.StatusCode, pdfURL)
	}

	tmp, err := os.CreateTemp("", "arxiv-*.pdf")
	if err != nil {
		return "", fmt.Errorf("summarizer: failed to create temp file: %w", err)
	}
	defer removeTemp(tmp.Name())

	if _, err := io.Copy(tmp, resp.Body); err != nil {
		tmp.Close()
		return "", paperErr("summarizer: write %s: %v", tmp.Name(), err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("summarizer: failed to close temp file: %w", err)
	}

	text, err := extractPages(tmp.Name(), s.maxPages)
	if err != nil {
		return "", paperErr("summarizer: parse PDF from %s: %v", pdfURL, err)
	}
	return text, nil
}

// extractPages reads text from the first maxPages pages, row by row.
// Unreadable pages are skipped; whatever text came out is returned.
func extractPages(path string, maxPages int) (string, error) {
	f, reader, err := pdf.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	pages := reader.NumPage()
	if pages > maxPages {
		pages = maxPages
	}

	var sb strings.Builder
	for i := 1; i <= pages; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		rows, err := page.GetTextByRow()
		if err != nil {
			continue
		}
		for _, row := range rows {
			words := make([]string, 0, len(row.Content))
			for _, word := range row.Content {
				words = append(words, word.S)
			}
			sb.WriteString(strings.Join(words, " "))
			sb.WriteByte('\n')
		}
	}

	return sb.String(), nil
}

// removeTemp deletes the downloaded PDF, tolerating transient failures.
func removeTemp(path string) {
	err := retry.Do(3, 100*time.Millisecond, func() error {
		err := os.Remove(path)
		if err == nil || os.IsNotExist(err) {
			return nil
		}
		return err
	})
	if err != nil {
		log.Printf("summarizer: could not remove temp file %s: %v", path, err)
	}
}

func paperErr(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrPaper, fmt.Sprintf(format, args...))
}
