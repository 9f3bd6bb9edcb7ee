package handlers

import (
	"receiptly/internal/dto"
	"receiptly/internal/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type AnalyticsHandler struct {
	analyticsService *service.AnalyticsService
	insightService   *service.InsightService
	logger           *zap.Logger
}

func NewAnalyticsHandler(analyticsService *service.AnalyticsService, insightService *service.InsightService, logger *zap.Logger) *AnalyticsHandler {
	return &AnalyticsHandler{
		analyticsService: analyticsService,
		insightService:   insightService,
		logger:           logger,
	}
}

// GetSummary godoc
// @Summary Spending summary
// @Description Get total spend, tax and per-category/per-month breakdowns
// @Tags analytics
// @Produce json
// @Security Bearer
// @Success 200 {object} dto.SummaryResponse
// @Failure 401 {object} map[string]string
// @Router /api/v1/analytics/summary [get]
func (h *AnalyticsHandler) GetSummary(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	summary, err := h.analyticsService.Summary(c.Context(), userID)
	if err != nil {
		h.logger.Error("Failed to build summary", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to build summary",
		})
	}

	return c.JSON(dto.SummaryResponse{
		TotalSpent:   summary.TotalSpent,
		ReceiptCount: summary.ReceiptCount,
		AvgAmount:    summary.AvgAmount,
		TotalTax:     summary.TotalTax,
		ByCategory:   summary.ByCategory,
		ByMonth:      summary.ByMonth,
	})
}

// GetSubscriptions godoc
// @Summary Detected subscriptions
// @Description Detect recurring vendor charges from receipt history
// @Tags analytics
// @Produce json
// @Security Bearer
// @Success 200 {object} dto.SubscriptionListResponse
// @Failure 401 {object} map[string]string
// @Router /api/v1/analytics/subscriptions [get]
func (h *AnalyticsHandler) GetSubscriptions(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	subs, err := h.analyticsService.Subscriptions(c.Context(), userID)
	if err != nil {
		h.logger.Error("Failed to detect subscriptions", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to detect subscriptions",
		})
	}

	resp := dto.SubscriptionListResponse{
		Subscriptions: make([]dto.SubscriptionResponse, 0, len(subs)),
		Count:         len(subs),
	}
	for _, sub := range subs {
		resp.Subscriptions = append(resp.Subscriptions, dto.SubscriptionResponse{
			Vendor:     sub.Vendor,
			AvgAmount:  sub.AvgAmount,
			Frequency:  sub.Frequency,
			Count:      sub.Count,
			NextDue:    sub.NextDue.Format("2006-01-02"),
			Confidence: sub.Confidence,
		})
	}

	return c.JSON(resp)
}

// GetBurnRate godoc
// @Summary Burn rate projection
// @Description Project month-end spend against a monthly budget
// @Tags analytics
// @Produce json
// @Param budget query number false "Monthly budget override"
// @Param days_passed query int false "Days elapsed in the current month"
// @Security Bearer
// @Success 200 {object} dto.BurnRateResponse
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /api/v1/analytics/burn-rate [get]
func (h *AnalyticsHandler) GetBurnRate(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	budget := c.QueryFloat("budget", 0)
	daysPassed := c.QueryInt("days_passed", 0)

	rate, err := h.analyticsService.BurnRate(c.Context(), userID, budget, daysPassed)
	if err != nil {
		h.logger.Error("Failed to calculate burn rate", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to calculate burn rate",
		})
	}
	if rate == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "No budget configured",
		})
	}

	return c.JSON(dto.BurnRateResponse{
		Budget:      rate.Budget,
		Current:     rate.Current,
		Remaining:   rate.Remaining,
		PercentUsed: rate.PercentUsed,
		Status:      rate.Status,
		Projected:   rate.Projected,
	})
}

// GetInsight godoc
// @Summary Spending insight
// @Description Generate a short natural-language insight over the user's spending
// @Tags analytics
// @Produce json
// @Security Bearer
// @Success 200 {object} dto.InsightResponse
// @Failure 401 {object} map[string]string
// @Router /api/v1/insights [get]
func (h *AnalyticsHandler) GetInsight(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	insight, err := h.insightService.Generate(c.Context(), userID)
	if err != nil {
		h.logger.Error("Failed to generate insight", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to generate insight",
		})
	}

	return c.JSON(dto.InsightResponse{Insight: insight})
}
