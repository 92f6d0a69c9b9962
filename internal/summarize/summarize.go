// Package summarize produces short editorial paragraphs for marches by
// calling an external summarization capability in bounded batches.
package summarize

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// FallbackResume replaces the summary of any marche whose summarization call
// failed. Failures are isolated per item and never abort the batch.
const FallbackResume = "Résumé indisponible"

// DefaultConcurrency bounds in-flight summarization calls.
const DefaultConcurrency = 3

// DefaultTimeout caps a single summarization call. The upstream capability
// has no timeout of its own, so the bound lives here.
const DefaultTimeout = 60 * time.Second

// Item is one marche to summarize.
type Item struct {
	MarcheNom string
	Textes    []string
}

// ProgressFunc is invoked once per item as it starts processing. It is
// advisory only and never affects control flow.
type ProgressFunc func(current, total int, marcheNom string)

// OrchestratorConfig tunes an Orchestrator.
type OrchestratorConfig struct {
	// Concurrency is the maximum number of simultaneous calls (default 3).
	Concurrency int
	// Timeout bounds each individual call (default 60s).
	Timeout time.Duration
	Logger  *slog.Logger
}

// Orchestrator fans summarization calls out over a bounded worker pool.
// Results are attached back to their originating item by index, so
// out-of-order completion can never misassign a summary.
type Orchestrator struct {
	client      Summarizer
	concurrency int
	timeout     time.Duration
	logger      *slog.Logger
}

// NewOrchestrator creates an orchestrator over the given summarizer.
func NewOrchestrator(client Summarizer, cfg OrchestratorConfig) *Orchestrator {
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = DefaultConcurrency
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Orchestrator{
		client:      client,
		concurrency: cfg.Concurrency,
		timeout:     cfg.Timeout,
		logger:      logger.With("component", "summarize"),
	}
}

// Run summarizes every item and returns one summary string per item, in
// input order. A failed call yields FallbackResume for that item only.
func (o *Orchestrator) Run(ctx context.Context, items []Item, progress ProgressFunc) []string {
	results := make([]string, len(items))
	if len(items) == 0 {
		return results
	}

	sem := make(chan struct{}, o.concurrency)
	var wg sync.WaitGroup

	for i := range items {
		wg.Add(1)
		go func(i int, item Item) {
			defer wg.Done()

			sem <- struct{}{}
			defer func() { <-sem }()

			if progress != nil {
				progress(i+1, len(items), item.MarcheNom)
			}

			callCtx, cancel := context.WithTimeout(ctx, o.timeout)
			defer cancel()

			summary, err := o.client.Summarize(callCtx, Request{
				MarcheNom: item.MarcheNom,
				Textes:    item.Textes,
			})
			if err != nil {
				o.logger.Warn("summarization failed, using fallback",
					"marche", item.MarcheNom, "error", err)
				results[i] = FallbackResume
				return
			}
			results[i] = summary
		}(i, items[i])
	}

	wg.Wait()
	return results
}
