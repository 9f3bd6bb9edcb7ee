package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"receiptly/internal/parser"
	"receiptly/pkg/config"

	"github.com/Role1776/gigago"
	"go.uber.org/zap"
)

type LLMService struct {
	client *gigago.Client
	model  *gigago.GenerativeModel
	config *config.GigaChatConfig
	logger *zap.Logger
}

// buildSystemInstruction creates the system instruction for receipt analysis
func buildSystemInstruction() string {
	return `You are an assistant inside a personal receipt-management application. You work with raw OCR text extracted from shop receipts, invoices and utility bills.

Your tasks:
1. Entity extraction: when asked, identify the merchant name (ORG), purchase date (DATE) and purchase time (TIME) in noisy receipt text.
2. Spending insights: when given aggregated spending figures, produce short, practical observations about the user's spending habits.

Rules:
- Be precise with amounts and dates; never invent figures that are not in the input.
- When asked for JSON, return ONLY valid JSON with no markdown fences and no commentary.
- Dates are formatted YYYY-MM-DD where possible.
- Insights are plain text, at most a few short paragraphs, concrete and tied to the numbers provided.`
}

func NewLLMService(cfg *config.GigaChatConfig, logger *zap.Logger) (*LLMService, error) {
	ctx := context.Background()

	opts := []gigago.Option{
		gigago.WithCustomScope(cfg.Scope),
	}
	if cfg.InsecureSkipVerify {
		opts = append(opts, gigago.WithCustomInsecureSkipVerify(true))
		logger.Warn("GigaChat TLS certificate verification is disabled")
	}

	client, err := gigago.NewClient(ctx, cfg.APIKey, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create GigaChat client: %w", err)
	}

	model := client.GenerativeModel("GigaChat")
	model.SystemInstruction = buildSystemInstruction()
	model.Temperature = 0.3

	return &LLMService{
		client: client,
		model:  model,
		config: cfg,
		logger: logger,
	}, nil
}

func (s *LLMService) Close() error {
	if s.client != nil {
		s.client.Close()
	}
	return nil
}

func (s *LLMService) generate(ctx context.Context, prompt string) (string, error) {
	messages := []gigago.Message{
		{Role: gigago.RoleUser, Content: prompt},
	}

	resp, err := s.model.Generate(ctx, messages)
	if err != nil {
		return "", fmt.Errorf("failed to generate response: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no response from LLM")
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

// Extract implements parser.EntityExtractor: the parser calls it as a
// last resort when its regex stages cannot resolve vendor, date or time.
func (s *LLMService) Extract(ctx context.Context, text string) (parser.Entities, error) {
	text = strings.TrimSpace(text)
	if len(text) < 10 {
		return parser.Entities{}, nil
	}

	prompt := fmt.Sprintf(`Extract entities from this OCR receipt text.

Receipt text:
%s

Return ONLY a JSON object in this exact format, with empty strings for anything not found:
{"org": "merchant name", "date": "YYYY-MM-DD", "time": "HH:MM AM/PM"}`, text)

	content, err := s.generate(ctx, prompt)
	if err != nil {
		return parser.Entities{}, err
	}

	jsonStart := strings.Index(content, "{")
	jsonEnd := strings.LastIndex(content, "}")
	if jsonStart == -1 || jsonEnd == -1 {
		return parser.Entities{}, fmt.Errorf("invalid response format: %s", content)
	}

	var payload struct {
		Org  string `json:"org"`
		Date string `json:"date"`
		Time string `json:"time"`
	}
	if err := json.Unmarshal([]byte(content[jsonStart:jsonEnd+1]), &payload); err != nil {
		return parser.Entities{}, fmt.Errorf("failed to parse JSON response: %w, content: %s", err, content)
	}

	s.logger.Info("Entity extraction completed",
		zap.Bool("org", payload.Org != ""),
		zap.Bool("date", payload.Date != ""),
		zap.Bool("time", payload.Time != ""),
	)

	return parser.Entities{Org: payload.Org, Date: payload.Date, Time: payload.Time}, nil
}

// GenerateInsight turns aggregated spending figures into a short natural-
// language commentary. The aggregates arrive pre-computed; the model
// never sees individual receipts.
func (s *LLMService) GenerateInsight(ctx context.Context, facts string) (string, error) {
	prompt := fmt.Sprintf(`Here is a summary of my spending, computed from my stored receipts:

%s

Write a short spending insight: what stands out, which categories dominate, and one or two practical suggestions. Plain text only.`, facts)

	content, err := s.generate(ctx, prompt)
	if err != nil {
		return "", err
	}

	s.logger.Info("Insight generated", zap.Int("length", len(content)))
	return content, nil
}
