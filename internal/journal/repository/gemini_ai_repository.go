package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang-crypto-journal/internal/journal/config"
	"golang-crypto-journal/internal/journal/dto"
	"golang-crypto-journal/pkg/logger"
	"golang-crypto-journal/pkg/ratelimit"

	"golang.org/x/time/rate"
	"google.golang.org/genai"
)

// geminiAIRepository is a NarrativeRepository backed by the Google Gemini API.
type geminiAIRepository struct {
	cfg            *config.Config
	logger         *logger.Logger
	tokenLimiter   *ratelimit.TokenLimiter
	requestLimiter *rate.Limiter
	genAiClient    *genai.Client
}

// NewGeminiAIRepository creates a new instance of geminiAIRepository.
func NewGeminiAIRepository(cfg *config.Config, log *logger.Logger, genAiClient *genai.Client) (NarrativeRepository, error) {
	if genAiClient == nil {
		return nil, errors.New("gemini client is required")
	}
	if cfg.Gemini.MaxRequestPerMinute <= 0 {
		return nil, fmt.Errorf("invalid gemini max_request_per_minute: %d", cfg.Gemini.MaxRequestPerMinute)
	}
	secondsPerRequest := time.Minute / time.Duration(cfg.Gemini.MaxRequestPerMinute)

	return &geminiAIRepository{
		cfg:            cfg,
		logger:         log,
		tokenLimiter:   ratelimit.NewTokenLimiter(cfg.Gemini.MaxTokenPerMinute),
		requestLimiter: rate.NewLimiter(rate.Every(secondsPerRequest), 1),
		genAiClient:    genAiClient,
	}, nil
}

// GenerateJournalReport asks Gemini to write the journal up as prose.
func (r *geminiAIRepository) GenerateJournalReport(ctx context.Context, req *dto.NarrativeRequest) (string, error) {
	prompt := BuildJournalReportPrompt(req, r.cfg.Gemini.Language)
	contents := []*genai.Content{
		genai.NewContentFromText(prompt, genai.RoleUser),
	}

	tokenResp, err := r.genAiClient.Models.CountTokens(ctx, r.cfg.Gemini.Model, contents, nil)
	if err != nil {
		return "", fmt.Errorf("failed to count tokens: %w", err)
	}

	r.logger.Debug("Gemini token count",
		logger.IntField("total_tokens", int(tokenResp.TotalTokens)),
		logger.IntField("remaining", r.tokenLimiter.GetRemaining()),
	)

	if err := r.tokenLimiter.Wait(ctx, int(tokenResp.TotalTokens)); err != nil {
		return "", fmt.Errorf("failed to wait for token limit: %w", err)
	}
	if err := r.requestLimiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("failed to wait for request limit: %w", err)
	}

	resp, err := r.genAiClient.Models.GenerateContent(ctx, r.cfg.Gemini.Model, contents, nil)
	if err != nil {
		r.logger.Error("Failed to generate journal report", logger.ErrorField(err), logger.StringField("model", r.cfg.Gemini.Model))
		return "", fmt.Errorf("failed to generate content: %w", err)
	}

	text := cleanMarkdown(resp.Text())
	if text == "" {
		return "", errors.New("no content found in Gemini response")
	}
	return text, nil
}

// cleanMarkdown strips a surrounding ```markdown fence the model sometimes adds.
func cleanMarkdown(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```markdown")
	s = strings.TrimPrefix(s, "```md")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}
