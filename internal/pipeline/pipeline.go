// Package pipeline runs the fetch → enrich → filter → persist control loop.
package pipeline

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/ftedeschi/marxpress/internal/db"
	"github.com/ftedeschi/marxpress/internal/models"
)

const (
	// retentionWindow is the age beyond which stored rows are evicted.
	retentionWindow = 7 * 24 * time.Hour

	// dailyCycles bounds one seen-set scope: after this many fetch cycles
	// the outer loop evicts, resets the seen-set, and starts over.
	dailyCycles = 7

	// defaultPollInterval separates two fetch cycles. A full pass over all
	// sections takes around half an hour, so this keeps a daily cadence.
	defaultPollInterval = 23*time.Hour + 30*time.Minute

	// markupMarker flags subtitles and captions the upstream left markup in.
	markupMarker = "<strong>"
)

type Source interface {
	FetchSection(ctx context.Context, section string) []models.Candidate
}

type Commentator interface {
	Comment(ctx context.Context, subtitle string) string
}

type Judge interface {
	Judge(comment string) (score float64, judgement string)
}

type Store interface {
	Insert(ctx context.Context, article models.EnrichedArticle) error
	EvictOlderThan(ctx context.Context, window time.Duration) (int64, error)
}

// Deps wires the pipeline's collaborators. Everything is injected so tests
// can substitute stubs for the model, the API, and the store.
type Deps struct {
	Source      Source
	Commentator Commentator
	Judge       Judge
	Store       Store
	Sections    []string

	// PollInterval overrides the fetch cadence; zero means the default.
	PollInterval time.Duration
}

type Pipeline struct {
	source       Source
	commentator  Commentator
	judge        Judge
	store        Store
	sections     []string
	pollInterval time.Duration
}

func New(deps Deps) *Pipeline {
	interval := deps.PollInterval
	if interval <= 0 {
		interval = defaultPollInterval
	}
	return &Pipeline{
		source:       deps.Source,
		commentator:  deps.Commentator,
		judge:        deps.Judge,
		store:        deps.Store,
		sections:     deps.Sections,
		pollInterval: interval,
	}
}

// Run loops until ctx is cancelled. Each outer iteration evicts stale rows,
// resets the seen-set, and runs a bounded number of daily fetch cycles; the
// long sleep between cycles is interruptible. No failure below this level
// terminates the loop.
func (p *Pipeline) Run(ctx context.Context) error {
	for {
		p.evict(ctx)

		seen := make(map[string]struct{})
		slog.Info("[Pipeline] Seen-set cleaned up")

		for cycle := 0; cycle < dailyCycles; cycle++ {
			for _, section := range p.sections {
				if ctx.Err() != nil {
					slog.Info("[Pipeline] Context cancelled, stopping")
					return ctx.Err()
				}
				p.processSection(ctx, section, seen)
			}

			select {
			case <-ctx.Done():
				slog.Info("[Pipeline] Context cancelled during sleep, stopping")
				return ctx.Err()
			case <-time.After(p.pollInterval):
			}
		}
	}
}

func (p *Pipeline) evict(ctx context.Context) {
	evicted, err := p.store.EvictOlderThan(ctx, retentionWindow)
	if err != nil {
		slog.Error("[Pipeline] Failed to evict old articles", slog.String("error", err.Error()))
		return
	}
	slog.Info("[Pipeline] Records older than a week erased from postgres",
		slog.Int64("evicted", evicted))
}

// processSection fetches one section's candidates and pushes each one
// through enrichment, the quality filter, deduplication, and persistence.
// A title joins the seen-set only after its insert succeeded, so a failed
// write can be retried when the article shows up again in a later cycle.
func (p *Pipeline) processSection(ctx context.Context, section string, seen map[string]struct{}) {
	for _, candidate := range p.source.FetchSection(ctx, section) {
		if ctx.Err() != nil {
			return
		}

		article := p.enrich(ctx, candidate)

		if !passesQualityFilter(candidate) {
			slog.Debug("[Pipeline] Candidate dropped by quality filter",
				slog.String("title", candidate.Title))
			continue
		}
		if _, dup := seen[candidate.Title]; dup {
			slog.Info("[Pipeline] Article already in postgres: skipping",
				slog.String("title", candidate.Title))
			continue
		}

		if err := p.store.Insert(ctx, article); err != nil {
			if errors.Is(err, db.ErrFieldTooLong) {
				slog.Warn("[Pipeline] Article rejected by the store, skipping",
					slog.String("title", candidate.Title),
					slog.String("error", err.Error()))
			} else {
				slog.Warn("[Pipeline] Encountered a problem while storing an article, skipping",
					slog.String("title", candidate.Title),
					slog.String("error", err.Error()))
			}
			continue
		}

		seen[candidate.Title] = struct{}{}
		slog.Info("[Pipeline] New article written into postgres",
			slog.String("title", candidate.Title))
	}
}

func (p *Pipeline) enrich(ctx context.Context, candidate models.Candidate) models.EnrichedArticle {
	comment := p.commentator.Comment(ctx, candidate.Subtitle)
	score, judgement := p.judge.Judge(comment)

	return models.EnrichedArticle{
		Candidate:      candidate,
		MarxComment:    comment,
		SentimentScore: score,
		Judgement:      judgement,
	}
}

// passesQualityFilter keeps only candidates that render cleanly: no markup
// leftovers in subtitle or caption, a complete image, and a named author.
func passesQualityFilter(c models.Candidate) bool {
	switch {
	case strings.Contains(c.Subtitle, markupMarker):
		return false
	case strings.Contains(c.ImgDescr, markupMarker):
		return false
	case c.ImgURL == models.NullMarker:
		return false
	case c.ImgDescr == models.NullMarker:
		return false
	case c.ImgCred == models.NullMarker:
		return false
	case c.Author == "":
		return false
	}
	return true
}
