package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"google.golang.org/genai"

	"smartbot/career-matcher/internal/models"
)

// chatContextSeparator joins the user turns of the refinement chat into
// the context string embedded in the analysis system prompt.
const chatContextSeparator = " | "

// AnalyzerService is the single point of contact with the external
// model. Analyze returns the schema-constrained result; Converse is the
// free-form refinement exchange.
type AnalyzerService interface {
	Analyze(ctx context.Context, role models.Role, answers models.AnswerSet, documentText, chatContext string) (*models.AnalysisResult, error)
	Converse(ctx context.Context, transcript models.Transcript) (string, error)
}

type analyzerService struct {
	generator     ContentGenerator
	promptBuilder *PromptBuilder
	maxAttempts   int
	initialDelay  time.Duration
	sleep         func(time.Duration)
	logger        *zap.Logger
}

func NewAnalyzerService(
	generator ContentGenerator,
	promptBuilder *PromptBuilder,
	maxAttempts int,
	initialDelay time.Duration,
	logger *zap.Logger,
) AnalyzerService {
	return &analyzerService{
		generator:     generator,
		promptBuilder: promptBuilder,
		maxAttempts:   maxAttempts,
		initialDelay:  initialDelay,
		sleep:         time.Sleep,
		logger:        logger,
	}
}

// Analyze implements the structured call with a bounded retry ladder:
// rate-limited attempts wait with a doubling delay before retrying,
// unparseable payloads retry immediately, and any other transport
// failure is permanent. The attempt budget covers all retry causes.
func (a *analyzerService) Analyze(ctx context.Context, role models.Role, answers models.AnswerSet, documentText, chatContext string) (*models.AnalysisResult, error) {
	systemPrompt := a.promptBuilder.BuildAnalysisSystemPrompt(role, answers, chatContext)
	userPrompt := a.promptBuilder.BuildAnalysisUserPrompt(answers, documentText)

	config := &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: systemPrompt}}},
		ResponseMIMEType:  "application/json",
		ResponseSchema:    a.promptBuilder.AnalysisSchema(),
	}

	delay := a.initialDelay
	var lastErr error

	for attempt := 1; attempt <= a.maxAttempts; attempt++ {
		raw, err := a.generator.Generate(ctx, genai.Text(userPrompt), config)
		if err == nil {
			result, perr := parseAnalysisResult(raw)
			if perr == nil {
				a.logger.Info("analysis completed",
					zap.String("role", string(role)),
					zap.Int("attempt", attempt),
					zap.Int("matches", len(result.Matches)),
				)
				return result, nil
			}
			a.logger.Warn("analysis payload rejected",
				zap.Int("attempt", attempt),
				zap.Error(perr),
			)
			lastErr = perr
			continue
		}

		if errors.Is(err, ErrRateLimited) {
			lastErr = err
			if attempt < a.maxAttempts {
				a.logger.Warn("rate limited, backing off",
					zap.Int("attempt", attempt),
					zap.Duration("delay", delay),
				)
				a.sleep(delay)
				delay *= 2
			}
			continue
		}

		if errors.Is(err, ErrEmptyResponse) {
			a.logger.Warn("empty analysis response", zap.Int("attempt", attempt))
			lastErr = err
			continue
		}

		return nil, fmt.Errorf("analyze: %w", err)
	}

	return nil, fmt.Errorf("analyze failed after %d attempts: %w", a.maxAttempts, lastErr)
}

// Converse sends the full transcript on every call; the transport is
// stateless. A single attempt only: failures go straight back to the
// caller, which retracts the pending user turn.
func (a *analyzerService) Converse(ctx context.Context, transcript models.Transcript) (string, error) {
	config := &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{Text: a.promptBuilder.BuildChatSystemPrompt()}},
		},
	}

	contents := make([]*genai.Content, 0, len(transcript))
	for _, turn := range transcript {
		role := genai.RoleUser
		if turn.Role == models.ChatRoleAssistant {
			role = genai.RoleModel
		}
		contents = append(contents, &genai.Content{
			Role:  role,
			Parts: []*genai.Part{{Text: turn.Text}},
		})
	}

	reply, err := a.generator.Generate(ctx, contents, config)
	if err != nil {
		return "", fmt.Errorf("converse: %w", err)
	}

	return reply, nil
}

// unmarshalLooseJSON strips the markdown fences some responses arrive
// wrapped in before decoding.
func unmarshalLooseJSON(raw string, target any) error {
	return json.Unmarshal([]byte(extractJSON(raw)), target)
}

func extractJSON(text string) string {
	text = strings.ReplaceAll(text, "```json", "")
	text = strings.ReplaceAll(text, "```", "")

	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start != -1 && end != -1 && end > start {
		return text[start : end+1]
	}

	return strings.TrimSpace(text)
}

func parseAnalysisResult(raw string) (*models.AnalysisResult, error) {
	var result models.AnalysisResult
	if err := unmarshalLooseJSON(raw, &result); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}

	if result.MatchPercentage < 0 || result.MatchPercentage > 100 {
		return nil, fmt.Errorf("%w: matchPercentage %d out of range", ErrMalformedResponse, result.MatchPercentage)
	}
	if result.MatchText == "" {
		return nil, fmt.Errorf("%w: matchText is empty", ErrMalformedResponse)
	}
	for i, item := range result.Matches {
		if item.Title == "" || item.Secondary == "" || item.Location == "" || item.Description == "" {
			return nil, fmt.Errorf("%w: match %d is missing required fields", ErrMalformedResponse, i)
		}
		if item.Match < 0 || item.Match > 100 {
			return nil, fmt.Errorf("%w: match %d score %d out of range", ErrMalformedResponse, i, item.Match)
		}
	}

	return &result, nil
}
