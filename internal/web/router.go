// Package web serves the press-review API: per-section review pages and the
// interactive generation endpoint.
package web

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/ftedeschi/marxpress/internal/models"
	"github.com/ftedeschi/marxpress/internal/textproc"
)

const (
	// reviewPageSize is how many recent articles a section page shows.
	reviewPageSize = 5

	// maxPromptWords bounds the free-text prompt of the speak endpoint.
	maxPromptWords = 5

	// Fixed replies of the speak endpoint. Both are answers, not errors:
	// the page renders them like any generated text.
	emptyPromptReply  = "GPT-2-Marx could not generate any text from this prompt. Try something else."
	tooManyWordsReply = "Uh...we had said no more than FIVE words, right? 😅"
)

type ReviewStore interface {
	QueryRecent(ctx context.Context, section string, limit int) ([]models.ReviewEntry, error)
}

type Speaker interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

type Server struct {
	store    ReviewStore
	speaker  Speaker
	sections map[string]bool
	ordered  []string
}

func NewServer(store ReviewStore, speaker Speaker, sections []string) *Server {
	known := make(map[string]bool, len(sections))
	for _, s := range sections {
		known[s] = true
	}
	return &Server{store: store, speaker: speaker, sections: known, ordered: sections}
}

func (s *Server) Router() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.Default()

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	{
		api.GET("/sections", s.listSections)
		api.GET("/review/:section", s.sectionReview)
		api.GET("/speak", s.speak)
	}

	return r
}

func (s *Server) listSections(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"sections": s.ordered})
}

func (s *Server) sectionReview(c *gin.Context) {
	section := c.Param("section")
	if !s.sections[section] {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown section"})
		return
	}

	entries, err := s.store.QueryRecent(c.Request.Context(), section, reviewPageSize)
	if err != nil {
		slog.Error("[Web] Failed to query recent articles",
			slog.String("section", section),
			slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not load articles"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"section": section, "articles": entries})
}

// speak generates text from a user prompt of at most five words. Empty and
// over-long prompts get their fixed replies; so does unusable model output.
func (s *Server) speak(c *gin.Context) {
	raw := strings.TrimSpace(c.Query("prompt"))
	if raw == "" {
		c.JSON(http.StatusOK, gin.H{"result": emptyPromptReply})
		return
	}
	if len(strings.Fields(raw)) > maxPromptWords {
		c.JSON(http.StatusOK, gin.H{"result": tooManyWordsReply})
		return
	}

	prompt, err := textproc.BuildPrompt(raw, maxPromptWords)
	if err != nil {
		c.JSON(http.StatusOK, gin.H{"result": emptyPromptReply})
		return
	}

	text, err := s.speaker.Generate(c.Request.Context(), prompt)
	if err != nil {
		slog.Warn("[Web] The model could not generate text for a prompt",
			slog.String("error", err.Error()))
		c.JSON(http.StatusOK, gin.H{"result": emptyPromptReply})
		return
	}

	c.JSON(http.StatusOK, gin.H{"result": text})
}
