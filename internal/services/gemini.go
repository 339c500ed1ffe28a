package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"go.uber.org/zap"
	"google.golang.org/genai"

	"smartbot/career-matcher/internal/logger"
)

const responsePreviewLength = 200

// ContentGenerator is the transport boundary to the generative model.
// The gateway retry ladder and the tests talk to this interface, not to
// the genai client directly.
type ContentGenerator interface {
	Generate(ctx context.Context, contents []*genai.Content, config *genai.GenerateContentConfig) (string, error)
}

type geminiService struct {
	client    *genai.Client
	modelName string
	logger    *zap.Logger
}

func NewGeminiService(ctx context.Context, apiKey, model string, log *zap.Logger) (ContentGenerator, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, errors.New("gemini api key is required")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	return &geminiService{
		client:    client,
		modelName: model,
		logger:    log,
	}, nil
}

// Generate implements ContentGenerator. Errors are classified into the
// gateway taxonomy; a 2xx answer with no usable text is ErrEmptyResponse.
func (g *geminiService) Generate(ctx context.Context, contents []*genai.Content, config *genai.GenerateContentConfig) (string, error) {
	resp, err := g.client.Models.GenerateContent(ctx, g.modelName, contents, config)
	if err != nil {
		return "", g.classify(err)
	}

	text := firstCandidateText(resp)
	if text == "" {
		return "", ErrEmptyResponse
	}

	g.logger.Debug("gemini response received",
		zap.Int("response_length", len(text)),
		zap.String("response_preview", logger.TruncateForLog(text, responsePreviewLength)),
	)

	return text, nil
}

func (g *geminiService) classify(err error) error {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) && apiErr.Code == http.StatusTooManyRequests {
		g.logger.Warn("gemini rate limited", zap.Int("status", apiErr.Code))
		return fmt.Errorf("%w: %s", ErrRateLimited, apiErr.Message)
	}

	g.logger.Error("gemini request failed", zap.Error(err))
	return fmt.Errorf("%w: %v", ErrTransport, err)
}

func firstCandidateText(resp *genai.GenerateContentResponse) string {
	if resp == nil {
		return ""
	}
	for _, candidate := range resp.Candidates {
		if candidate == nil || candidate.Content == nil {
			continue
		}
		for _, part := range candidate.Content.Parts {
			if part == nil {
				continue
			}
			if text := strings.TrimSpace(part.Text); text != "" {
				return text
			}
		}
	}
	return ""
}
