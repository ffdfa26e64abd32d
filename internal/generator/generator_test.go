package generator_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ftedeschi/marxpress/internal/generator"
	"github.com/ftedeschi/marxpress/internal/models"
	"github.com/ftedeschi/marxpress/internal/textproc"
)

type stubModel struct {
	text    string
	err     error
	calls   int
	prompts []string
	cfgs    []models.GenerationConfig
}

func (s *stubModel) GenerateOne(_ context.Context, prompt string, cfg models.GenerationConfig) (string, error) {
	s.calls++
	s.prompts = append(s.prompts, prompt)
	s.cfgs = append(s.cfgs, cfg)
	return s.text, s.err
}

func TestCommentNormalizesModelOutput(t *testing.T) {
	t.Parallel()

	model := &stubModel{text: "Capital [1] accumulates... relentlessly. and then it trail"}
	g := generator.New(model, generator.CommentaryConfig())

	got := g.Comment(context.Background(), "capital accumulates in the hands of the few every day")

	assert.Equal(t, "Capital accumulates. relentlessly.", got)
	assert.Equal(t, 1, model.calls)
}

func TestCommentDerivesBoundedPrompt(t *testing.T) {
	t.Parallel()

	model := &stubModel{text: "Workers have spoken about this at length."}
	g := generator.New(model, generator.CommentaryConfig())

	g.Comment(context.Background(), "the quick brown fox jumps over the lazy dog today now")

	require.Len(t, model.prompts, 1)
	assert.Equal(t, "The quick brown fox jumps over the lazy dog today", model.prompts[0])
}

func TestCommentFallbackOnModelError(t *testing.T) {
	t.Parallel()

	model := &stubModel{err: errors.New("model server unreachable")}
	g := generator.New(model, generator.CommentaryConfig())

	got := g.Comment(context.Background(), "a perfectly fine subtitle")
	assert.Equal(t, generator.FallbackComment, got)
	assert.Equal(t, 1, model.calls, "no retry on failure")
}

func TestCommentFallbackOnUnusableOutput(t *testing.T) {
	t.Parallel()

	model := &stubModel{text: "no capital letter and no end"}
	g := generator.New(model, generator.CommentaryConfig())

	got := g.Comment(context.Background(), "a perfectly fine subtitle")
	assert.Equal(t, generator.FallbackComment, got)
}

func TestCommentFallbackOnEmptySubtitle(t *testing.T) {
	t.Parallel()

	model := &stubModel{text: "Unreached text."}
	g := generator.New(model, generator.CommentaryConfig())

	got := g.Comment(context.Background(), "   ")
	assert.Equal(t, generator.FallbackComment, got)
	assert.Zero(t, model.calls, "the model must not be called without a prompt")
}

func TestGenerateSurfacesUnusableOutput(t *testing.T) {
	t.Parallel()

	model := &stubModel{text: "gibberish with no shape"}
	g := generator.New(model, generator.InteractiveConfig())

	_, err := g.Generate(context.Background(), "Seize the means")
	assert.ErrorIs(t, err, textproc.ErrNoWellFormedSentence)
}

func TestDecodingConfigs(t *testing.T) {
	t.Parallel()

	commentary := generator.CommentaryConfig()
	assert.Equal(t, 15, commentary.MinLength)
	assert.Equal(t, 70, commentary.MaxLength)
	assert.Equal(t, 0.7, commentary.Temperature)
	assert.Equal(t, 0.9, commentary.TopP)
	assert.Equal(t, 1.1, commentary.RepetitionPenalty)
	assert.Equal(t, 2, commentary.NoRepeatNgramSize)

	interactive := generator.InteractiveConfig()
	assert.Equal(t, 10, interactive.MinLength)
	commentary.MinLength = interactive.MinLength
	assert.Equal(t, commentary, interactive)
}
