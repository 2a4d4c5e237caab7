package series

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/shapedtime/wsindex/internal/classify"
	"github.com/shapedtime/wsindex/internal/metrics"
)

// DefaultWorkers is used when the organizer is created with workers <= 0
const DefaultWorkers = 4

// Result is an organized search response
type Result struct {
	Index *Index

	// files without a season/episode marker, in input order, tagged with
	// their media kind
	Standalone []FileEntry
}

// Organizer classifies search results and folds them into an Index.
// Classification runs on a bounded worker pool; the fold is sequential and
// keeps input order, so results are stable for a given input.
type Organizer struct {
	workers int
	metrics *metrics.Metrics // may be nil
	log     *slog.Logger
}

// NewOrganizer creates an Organizer. m may be nil.
func NewOrganizer(workers int, m *metrics.Metrics) *Organizer {
	if workers <= 0 {
		workers = DefaultWorkers
	}
	return &Organizer{
		workers: workers,
		metrics: m,
		log:     slog.With("component", "organizer"),
	}
}

// Organize classifies files against query and returns the series tree plus
// the files that could not be placed in it.
func (o *Organizer) Organize(ctx context.Context, query string, files []FileEntry) (*Result, error) {
	start := time.Now()

	parsed := make([]*classify.ParsedEpisodeInfo, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(o.workers)
	for i := range files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			info := classify.Classify(files[i].Name, query)
			if info == nil {
				o.metrics.ObserveClassification("")
				return nil
			}
			tagged := info.WithLanguage(classify.DetectLanguage(files[i].Name))
			parsed[i] = &tagged
			o.metrics.ObserveClassification(info.Pattern)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	result := &Result{
		Index:      NewIndex(query),
		Standalone: make([]FileEntry, 0),
	}
	for i, file := range files {
		file.Kind = classify.KindOf(file.Name)
		if parsed[i] == nil {
			result.Standalone = append(result.Standalone, file)
			continue
		}
		result.Index.AddEpisodeFile(*parsed[i], file, query)
	}

	o.metrics.ObserveOrganize(len(files), time.Since(start))
	o.log.Debug("Organized search results",
		"query", query,
		"files", len(files),
		"seasons", len(result.Index.Seasons),
		"episodes", result.Index.EpisodeCount(),
		"standalone", len(result.Standalone),
	)

	return result, nil
}
