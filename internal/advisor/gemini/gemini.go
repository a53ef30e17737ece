// Package gemini implements the advisory ports against the Gemini
// generative language API.
package gemini

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"butcem/internal/advisor"
	"butcem/internal/core"

	genlang "google.golang.org/api/generativelanguage/v1beta"
	goption "google.golang.org/api/option"
)

const defaultModel = "gemini-2.5-flash"

type Client struct {
	svc   *genlang.Service
	model string
}

// Ensure interface conformance
var (
	_ advisor.CategorySuggester = (*Client)(nil)
	_ advisor.AnalysisGenerator = (*Client)(nil)
)

// New creates a Gemini client with the given API key. An empty model name
// selects the default (gemini-2.5-flash).
func New(ctx context.Context, apiKey, model string) (*Client, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, errors.New("missing Gemini API key")
	}

	model = strings.TrimSpace(model)
	if model == "" {
		model = defaultModel
	}

	svc, err := genlang.NewService(ctx, goption.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("generative language service: %w", err)
	}

	slog.InfoContext(ctx, "Gemini advisory client created", "model", model)
	return &Client{svc: svc, model: model}, nil
}

// SuggestCategory implements advisor.CategorySuggester.
func (c *Client) SuggestCategory(ctx context.Context, description string) (string, error) {
	text, err := c.generate(ctx, advisor.CategoryPrompt(description))
	if err != nil {
		return "", fmt.Errorf("suggest category: %w", err)
	}
	return strings.TrimSpace(text), nil
}

// GenerateAnalysis implements advisor.AnalysisGenerator.
func (c *Client) GenerateAnalysis(ctx context.Context, expenses []core.Expense, totalIncome, totalExpense core.Money) (string, error) {
	text, err := c.generate(ctx, advisor.AnalysisPrompt(expenses, totalIncome, totalExpense))
	if err != nil {
		return "", fmt.Errorf("generate analysis: %w", err)
	}
	return text, nil
}

// generate issues one GenerateContent call and returns the first candidate's
// text. There is no retry and no streaming; an empty response is an error.
func (c *Client) generate(ctx context.Context, prompt string) (string, error) {
	if c.svc == nil {
		return "", errors.New("generative language service not initialized")
	}

	req := &genlang.GenerateContentRequest{
		Contents: []*genlang.Content{
			{
				Role:  "user",
				Parts: []*genlang.Part{{Text: prompt}},
			},
		},
	}

	resp, err := c.svc.Models.GenerateContent("models/"+c.model, req).Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}

	text := firstCandidateText(resp)
	if text == "" {
		return "", errors.New("empty model response")
	}

	slog.DebugContext(ctx, "Gemini response received",
		"model", c.model,
		"candidates", len(resp.Candidates),
		"length", len(text))

	return text, nil
}

func firstCandidateText(resp *genlang.GenerateContentResponse) string {
	if resp == nil {
		return ""
	}
	for _, cand := range resp.Candidates {
		if cand == nil || cand.Content == nil {
			continue
		}
		var sb strings.Builder
		for _, part := range cand.Content.Parts {
			if part != nil {
				sb.WriteString(part.Text)
			}
		}
		if s := strings.TrimSpace(sb.String()); s != "" {
			return s
		}
	}
	return ""
}
