package service

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// InsightService glues the analytics aggregates to the AI collaborator.
type InsightService struct {
	analytics *AnalyticsService
	llm       InsightGenerator
	logger    *zap.Logger
}

func NewInsightService(analytics *AnalyticsService, llm InsightGenerator, logger *zap.Logger) *InsightService {
	return &InsightService{
		analytics: analytics,
		llm:       llm,
		logger:    logger,
	}
}

// Generate produces a natural-language commentary over the user's
// spending. An empty string with no error means there is nothing to
// analyze yet.
func (s *InsightService) Generate(ctx context.Context, userID uuid.UUID) (string, error) {
	facts, err := s.analytics.SpendingFacts(ctx, userID)
	if err != nil {
		return "", err
	}
	if facts == "" {
		return "", nil
	}

	insight, err := s.llm.GenerateInsight(ctx, facts)
	if err != nil {
		s.logger.Error("Insight generation failed", zap.Error(err))
		return "", err
	}
	return insight, nil
}
