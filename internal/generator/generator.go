// Package generator wraps the text-generation model into the commentary
// producer used by the pipeline and the webapp.
package generator

import (
	"context"
	"log/slog"

	"github.com/ftedeschi/marxpress/internal/models"
	"github.com/ftedeschi/marxpress/internal/textproc"
)

// FallbackComment is the sentinel commentary used whenever the model yields
// nothing usable. It is a valid value, not an error: it is persisted and
// displayed, and the sentiment classifier recognizes it.
const FallbackComment = "Karl Marx has nothing to say about this."

// promptWordLimit bounds the seed prompt derived from an article subtitle.
const promptWordLimit = 10

// CommentaryConfig is the decoding configuration for article commentary.
func CommentaryConfig() models.GenerationConfig {
	return models.GenerationConfig{
		MinLength:         15,
		MaxLength:         70,
		Temperature:       0.7,
		TopP:              0.9,
		RepetitionPenalty: 1.1,
		NoRepeatNgramSize: 2,
	}
}

// InteractiveConfig is the decoding configuration for the webapp's
// free-prompt endpoint. Only the minimum length differs: user prompts are
// shorter than article subtitles.
func InteractiveConfig() models.GenerationConfig {
	cfg := CommentaryConfig()
	cfg.MinLength = 10
	return cfg
}

// TextModel is the generative model seen as a black box.
type TextModel interface {
	GenerateOne(ctx context.Context, prompt string, cfg models.GenerationConfig) (string, error)
}

type Generator struct {
	model TextModel
	cfg   models.GenerationConfig
}

func New(model TextModel, cfg models.GenerationConfig) *Generator {
	return &Generator{model: model, cfg: cfg}
}

// Generate produces one normalized text for the given prompt. The model is
// called exactly once; an unusable output surfaces as
// textproc.ErrNoWellFormedSentence.
func (g *Generator) Generate(ctx context.Context, prompt string) (string, error) {
	raw, err := g.model.GenerateOne(ctx, prompt, g.cfg)
	if err != nil {
		return "", err
	}
	return textproc.Normalize(raw)
}

// Comment derives a prompt from an article subtitle and generates the
// commentary for it. Any failure, transport or textual, collapses into the
// fallback sentinel so that every candidate leaves this stage with a
// comment attached.
func (g *Generator) Comment(ctx context.Context, subtitle string) string {
	prompt, err := textproc.BuildPrompt(subtitle, promptWordLimit)
	if err != nil {
		slog.Warn("[Generator] Could not derive a prompt from the subtitle",
			slog.String("error", err.Error()))
		return FallbackComment
	}

	comment, err := g.Generate(ctx, prompt)
	if err != nil {
		slog.Warn("[Generator] The model could not produce a meaningful text for an article",
			slog.String("error", err.Error()))
		return FallbackComment
	}

	slog.Info("[Generator] The model has produced a comment on an article")
	return comment
}
