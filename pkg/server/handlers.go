package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/charmlabs/wingman/pkg/fallback"
	"github.com/charmlabs/wingman/pkg/pipeline"
	"github.com/charmlabs/wingman/pkg/prompts"
)

type generateRequest struct {
	Message      string  `json:"message"`
	Kind         string  `json:"kind"`
	Name         string  `json:"name"`
	SystemPrompt string  `json:"system_prompt"`
	MaxTokens    int     `json:"max_tokens"`
	Temperature  float64 `json:"temperature"`
}

type suggestRequest struct {
	Query string `json:"query"`
}

type sourceRef struct {
	Title string `json:"title"`
	URL   string `json:"url"`
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// handleIdentity reports what this deployment can do: configured providers
// in attempt order and the supported generation kinds.
func (s *Server) handleIdentity(c *gin.Context) {
	providers := make([]string, 0, len(s.chain.Providers()))
	for _, p := range s.chain.Providers() {
		providers = append(providers, p.Name())
	}

	c.JSON(http.StatusOK, gin.H{
		"service":   "wingman",
		"providers": providers,
		"kinds":     []string{fallback.KindPickupLine, fallback.KindFlirtyReply},
	})
}

func (s *Server) handleGenerate(c *gin.Context) {
	var req generateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	message := strings.TrimSpace(req.Message)
	if message == "" && req.Kind != fallback.KindPickupLine {
		c.JSON(http.StatusBadRequest, gin.H{"error": "message is required"})
		return
	}

	prompt := message
	system := req.SystemPrompt
	switch req.Kind {
	case fallback.KindPickupLine:
		if system == "" {
			system = prompts.PickupSystem
		}
		if prompt == "" {
			prompt = prompts.PickupLine(req.Name)
		}
	case fallback.KindFlirtyReply:
		if system == "" {
			system = prompts.FlirtySystem
		}
		prompt = prompts.FlirtyReply(message)
	}

	result := s.chain.Generate(c.Request.Context(), prompt, pipeline.Context{
		SystemPrompt: system,
		MaxTokens:    req.MaxTokens,
		Temperature:  req.Temperature,
		Kind:         req.Kind,
		Name:         req.Name,
	})

	c.JSON(http.StatusOK, result)
}

func (s *Server) handleSuggest(c *gin.Context) {
	var req suggestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	query := strings.TrimSpace(req.Query)
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "query is required"})
		return
	}

	var snippets []string
	var sources []sourceRef
	results, err := s.searcher.Search(c.Request.Context(), query)
	if err != nil {
		// Search failure degrades to an unassisted suggestion.
		s.logger.Warn().Err(err).Str("query", query).Msg("web search failed")
	}
	for _, r := range results {
		snippets = append(snippets, r.Content)
		sources = append(sources, sourceRef{Title: r.Title, URL: r.URL})
	}

	result := s.chain.Generate(c.Request.Context(), prompts.Suggestion(query, snippets), pipeline.Context{
		SystemPrompt: prompts.SuggestSystem,
	})

	c.JSON(http.StatusOK, gin.H{
		"text":     result.Text,
		"provider": result.Provider,
		"model":    result.Model,
		"sources":  sources,
	})
}
