// Package classifier provides the remote fallback used when pattern
// matching is inconclusive. The Gemini client implements
// interpreter.Client; the interpreter itself runs fine without it.
package classifier

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"google.golang.org/genai"

	"voxpost/internal/interpreter"
)

const defaultModel = "gemini-2.0-flash"

const defaultTimeout = 10 * time.Second

// Config holds Gemini client settings.
type Config struct {
	APIKey  string
	Model   string
	Timeout time.Duration
}

// GeminiClient classifies utterances with a Gemini model. Responses are
// constrained to a JSON contract; anything else is treated as a miss and
// the caller falls back to its pattern result.
type GeminiClient struct {
	client  *genai.Client
	model   string
	timeout time.Duration
	logger  *zap.Logger
}

// NewGeminiClient builds a classifier client. The API key is required; the
// model and timeout fall back to defaults.
func NewGeminiClient(ctx context.Context, cfg Config, logger *zap.Logger) (*GeminiClient, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("gemini API key is required")
	}
	if cfg.Model == "" {
		cfg.Model = defaultModel
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: cfg.APIKey})
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}
	return &GeminiClient{
		client:  client,
		model:   cfg.Model,
		timeout: cfg.Timeout,
		logger:  logger,
	}, nil
}

const systemPrompt = `You classify short instructions given while editing a social media post.
Return ONLY a JSON object, no other text:
{"command": "<one of the allowed commands>", "confidence": 0.0-1.0, "parameters": {...}}

Recognized parameters by command:
- change_tone: "tone" (spicy|casual|professional|serious|funny|friendly|formal|playful), optional "intensity" (more|less)
- change_image: "imageStyle" (short descriptive phrase)
- translate: "language" (lower-case language name)
Other commands take no parameters. Use "unknown" when nothing fits.`

// Classify sends the utterance and the allowed command set to the model and
// normalizes the answer. Network errors and malformed answers surface as
// errors; the interpreter degrades to its pattern result in that case.
func (c *GeminiClient) Classify(ctx context.Context, utterance string, allowed []interpreter.CommandType) (interpreter.Classification, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	prompt := buildPrompt(utterance, allowed)
	start := time.Now()
	resp, err := c.client.Models.GenerateContent(ctx, c.model,
		genai.Text(prompt),
		&genai.GenerateContentConfig{
			SystemInstruction: genai.NewContentFromText(systemPrompt, genai.RoleUser),
			Temperature:       genai.Ptr[float32](0),
			ResponseMIMEType:  "application/json",
		},
	)
	if err != nil {
		return interpreter.Classification{}, fmt.Errorf("gemini classification failed: %w", err)
	}

	result, err := parseClassification(resp.Text())
	if err != nil {
		return interpreter.Classification{}, err
	}
	c.logger.Debug("gemini classification",
		zap.String("utterance", utterance),
		zap.String("command", result.Type),
		zap.Float64("confidence", result.Confidence),
		zap.Duration("elapsed", time.Since(start)))
	return result, nil
}

func buildPrompt(utterance string, allowed []interpreter.CommandType) string {
	var sb strings.Builder
	sb.WriteString("Allowed commands: ")
	for i, t := range allowed {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(string(t))
	}
	sb.WriteString(", unknown\n\nInstruction: ")
	sb.WriteString(utterance)
	return sb.String()
}

// parseClassification extracts the JSON object from a model response that
// may carry a markdown wrapper, and unmarshals it.
func parseClassification(response string) (interpreter.Classification, error) {
	jsonStr := extractJSON(response)
	if jsonStr == "" {
		return interpreter.Classification{}, fmt.Errorf("no JSON object in response")
	}
	var out interpreter.Classification
	if err := json.Unmarshal([]byte(jsonStr), &out); err != nil {
		return interpreter.Classification{}, fmt.Errorf("malformed classification JSON: %w", err)
	}
	if out.Confidence < 0 {
		out.Confidence = 0
	}
	if out.Confidence > 1 {
		out.Confidence = 1
	}
	return out, nil
}

// extractJSON finds the first balanced JSON object in a response.
func extractJSON(response string) string {
	start := strings.Index(response, "{")
	if start == -1 {
		return ""
	}
	depth := 0
	for i := start; i < len(response); i++ {
		switch response[i] {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return response[start : i+1]
			}
		}
	}
	return ""
}
