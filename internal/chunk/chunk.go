// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package chunk drives one parse run over a bounded page range: it pulls
// each page's lines from a page source, tracks the current institution,
// extracts records, and hands them to a sink page by page.
package chunk

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/pdiddy/gazette/internal/extract"
	"github.com/pdiddy/gazette/pkg/types"
)

// PageSource yields the text lines of a document one page at a time.
type PageSource interface {
	NumPages() int
	PageLines(page int) ([]string, error)
}

// RecordSink receives extracted records. Flush is called after every page.
type RecordSink interface {
	Write(rec types.ResultRecord) error
	Flush() error
}

// Options configures a run.
type Options struct {
	// Pages is the inclusive range to process. End may exceed the document.
	Pages types.PageRange

	// Vocabulary overrides the built-in word lists when set.
	Vocabulary *extract.Vocabulary

	// Progress receives one line per processed page. Nil discards.
	Progress io.Writer

	// Logger receives diagnostics. Nil uses slog.Default().
	Logger *slog.Logger
}

// Result summarizes a run.
type Result struct {
	RunID      string
	TotalPages int // pages in the document
	FirstPage  int
	LastPage   int // requested end clamped to TotalPages
	Pages      int // pages processed
	Records    int // records written
	Headers    int // institution headers seen
	Discarded  int // non-blank lines that were neither header nor record
}

// Run processes opts.Pages of src and writes every record to sink. The
// institution context starts empty and carries across pages. Lines that are
// neither headers nor roll lines are dropped. Errors come only from page
// extraction or the sink.
func Run(src PageSource, sink RecordSink, opts Options) (Result, error) {
	if !opts.Pages.Valid() {
		return Result{}, fmt.Errorf("%w: %d-%d", types.ErrInvalidRange, opts.Pages.Start, opts.Pages.End)
	}
	progress := opts.Progress
	if progress == nil {
		progress = io.Discard
	}
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}

	res := Result{
		RunID:      uuid.New().String(),
		TotalPages: src.NumPages(),
		FirstPage:  opts.Pages.Start,
		LastPage:   min(opts.Pages.End, src.NumPages()),
	}
	log = log.With("run", res.RunID)

	if res.LastPage < opts.Pages.End {
		log.Info("page range clamped", "requested_end", opts.Pages.End, "last_page", res.LastPage)
	}

	vocab := opts.Vocabulary
	if vocab == nil {
		vocab = extract.DefaultVocabulary()
	}
	tracker := extract.NewTracker(vocab)

	for page := res.FirstPage; page <= res.LastPage; page++ {
		lines, err := src.PageLines(page)
		if err != nil {
			return res, fmt.Errorf("page %d: %w", page, err)
		}

		stats, err := processPage(lines, page, tracker, vocab, sink)
		res.Records += stats.records
		res.Discarded += stats.discarded
		if err != nil {
			return res, fmt.Errorf("page %d: %w", page, err)
		}
		if err := sink.Flush(); err != nil {
			return res, fmt.Errorf("page %d: %w", page, err)
		}
		res.Pages++

		log.Debug("page processed", "page", page, "records", stats.records, "discarded", stats.discarded)
		fmt.Fprintf(progress, "processed page %d of %d\n", page, res.TotalPages)
	}
	res.Headers = tracker.Headers()

	log.Info("chunk complete",
		"first_page", res.FirstPage, "last_page", res.LastPage,
		"pages", res.Pages, "records", res.Records, "headers", res.Headers)
	return res, nil
}

type pageStats struct {
	records   int
	discarded int
}

func processPage(lines []string, page int, tracker *extract.Tracker, vocab *extract.Vocabulary, sink RecordSink) (pageStats, error) {
	var stats pageStats
	for _, raw := range lines {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}
		if tracker.Observe(line) {
			continue
		}
		rec, ok := vocab.ParseRollLine(line)
		if !ok {
			stats.discarded++
			continue
		}
		tracker.Stamp(&rec, page)
		if err := sink.Write(rec); err != nil {
			return stats, err
		}
		stats.records++
	}
	return stats, nil
}
