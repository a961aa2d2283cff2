package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/robfig/cron/v3"

	"github.com/noahvandal/arxiv-digest/internal/config"
	"github.com/noahvandal/arxiv-digest/internal/fetcher"
	"github.com/noahvandal/arxiv-digest/internal/llm"
	"github.com/noahvandal/arxiv-digest/internal/runner"
	"github.com/noahvandal/arxiv-digest/internal/summarizer"
)

func main() {
	configPath := flag.String("config", "", "path to optional config file")
	provider := flag.String("provider", "", "LLM provider (anthropic, openai, google, groq)")
	model := flag.String("model", "", "model name override")
	apiKey := flag.String("api-key", "", "API key for the provider")
	schedule := flag.String("schedule", "", "cron expression; run on a schedule instead of once")
	pageSize := flag.Int("page-size", 0, "listing page size")
	maxPages := flag.Int("max-pages", 0, "PDF pages to extract text from")
	outDir := flag.String("out-dir", "", "directory for report files")
	flag.Usage = usage
	flag.Parse()

	cfg := config.Default()
	if *configPath != "" {
		var err error
		cfg, err = config.Load(*configPath)
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}
	}

	// Flags override config file values.
	if flag.Arg(0) != "" {
		cfg.Category = flag.Arg(0)
	}
	if *provider != "" {
		cfg.LLM.Provider = *provider
	}
	if *model != "" {
		cfg.LLM.Model = *model
	}
	if *apiKey != "" {
		cfg.LLM.APIKey = *apiKey
	}
	if *schedule != "" {
		cfg.Schedule = *schedule
	}
	if *pageSize != 0 {
		cfg.PageSize = *pageSize
	}
	if *maxPages != 0 {
		cfg.Summary.MaxPages = *maxPages
	}
	if *outDir != "" {
		cfg.OutDir = *outDir
	}
	cfg.Resolve()

	if err := cfg.Validate(); err != nil {
		if errors.Is(err, llm.ErrUnsupportedProvider) {
			fmt.Printf("Error: provider %q is not supported.\n\nSupported providers:\n", cfg.LLM.Provider)
			for _, p := range llm.Supported() {
				fmt.Printf("  - %s\n", p)
			}
			return
		}
		log.Fatalf("Invalid configuration: %v", err)
	}

	client, err := llm.New(cfg.LLM.Provider, cfg.LLM.Model, cfg.LLM.APIKey)
	if err != nil {
		log.Fatalf("Failed to build LLM client: %v", err)
	}

	f := fetcher.NewArxivFetcher(cfg.PageSize)
	w := fetcher.NewWalker(f, f.PageSize())
	s := summarizer.NewPDFSummarizer(client, cfg.Summary.MaxPages, cfg.Summary.CharBudget)
	r := runner.New(cfg.Category, w, s, cfg.OutDir, os.Stdout)

	// One-shot is the default; a schedule turns this into a daily job.
	if cfg.Schedule == "" {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		if err := r.Run(ctx); err != nil {
			log.Fatalf("Run failed: %v", err)
		}
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	c := cron.New()
	_, err = c.AddFunc(cfg.Schedule, func() {
		log.Println("Cron triggered, running digest...")
		if err := r.Run(ctx); err != nil {
			log.Printf("Scheduled run failed: %v", err)
		}
	})
	if err != nil {
		log.Fatalf("Failed to set up cron schedule %q: %v", cfg.Schedule, err)
	}
	c.Start()
	log.Printf("Scheduled digest for %s with cron expression: %s", cfg.Category, cfg.Schedule)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigCh
	log.Printf("Received signal %v, shutting down...", sig)

	cancel()
	c.Stop()
}

func usage() {
	fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s [flags] <category>\n\n", os.Args[0])
	fmt.Fprintf(flag.CommandLine.Output(), "Summarize the papers listed today in an arXiv category (e.g. cs.AI).\n\nFlags:\n")
	flag.PrintDefaults()
}
