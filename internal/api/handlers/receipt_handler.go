package handlers

import (
	"errors"

	"receiptly/internal/dto"
	"receiptly/internal/models"
	"receiptly/internal/repository"
	"receiptly/internal/service"
	"receiptly/internal/validate"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

func getUserID(c *fiber.Ctx) (uuid.UUID, error) {
	userIDStr, ok := c.Locals("userID").(string)
	if !ok {
		return uuid.Nil, fiber.ErrUnauthorized
	}

	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		return uuid.Nil, err
	}

	return userID, nil
}

type ReceiptHandler struct {
	receiptService *service.ReceiptService
	logger         *zap.Logger
}

func NewReceiptHandler(receiptService *service.ReceiptService, logger *zap.Logger) *ReceiptHandler {
	return &ReceiptHandler{
		receiptService: receiptService,
		logger:         logger,
	}
}

// UploadReceipt godoc
// @Summary Upload a receipt
// @Description Upload a receipt image or PDF, extract text, parse and validate it
// @Tags receipts
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Receipt file (image or PDF)"
// @Security Bearer
// @Success 201 {object} dto.UploadReceiptResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Router /api/v1/receipts/upload [post]
func (h *ReceiptHandler) UploadReceipt(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	file, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "File is required",
		})
	}

	src, err := file.Open()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Failed to open file",
		})
	}
	defer src.Close()

	receipt, report, err := h.receiptService.Upload(c.Context(), userID, src, file.Filename)
	if err != nil {
		h.logger.Error("Failed to upload receipt", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to upload receipt",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(dto.UploadReceiptResponse{
		Receipt:    mapReceipt(receipt),
		Validation: mapReport(report),
	})
}

// ParseReceiptText godoc
// @Summary Parse raw receipt text
// @Description Parse already-extracted receipt text without persisting the result
// @Tags receipts
// @Accept json
// @Produce json
// @Param request body dto.ParseTextRequest true "Raw receipt text"
// @Security Bearer
// @Success 200 {object} dto.UploadReceiptResponse
// @Failure 400 {object} map[string]string
// @Router /api/v1/receipts/parse [post]
func (h *ReceiptHandler) ParseReceiptText(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	var req dto.ParseTextRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	if req.Text == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Text is required",
		})
	}

	receipt, report := h.receiptService.ParseText(c.Context(), userID, req.Text)

	return c.JSON(dto.UploadReceiptResponse{
		Receipt:    mapReceipt(receipt),
		Validation: mapReport(report),
	})
}

// ListReceipts godoc
// @Summary List user's receipts
// @Description Get all receipts of the authenticated user, newest first
// @Tags receipts
// @Produce json
// @Security Bearer
// @Success 200 {object} dto.ReceiptListResponse
// @Failure 401 {object} map[string]string
// @Router /api/v1/receipts [get]
func (h *ReceiptHandler) ListReceipts(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	receipts, err := h.receiptService.List(c.Context(), userID)
	if err != nil {
		h.logger.Error("Failed to list receipts", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to list receipts",
		})
	}

	resp := dto.ReceiptListResponse{
		Receipts: make([]dto.ReceiptResponse, 0, len(receipts)),
		Count:    len(receipts),
	}
	for i := range receipts {
		resp.Receipts = append(resp.Receipts, mapReceipt(&receipts[i]))
	}

	return c.JSON(resp)
}

// GetReceipt godoc
// @Summary Get a receipt
// @Description Get a single receipt with its line items by bill ID
// @Tags receipts
// @Produce json
// @Param bill_id path string true "Bill ID"
// @Security Bearer
// @Success 200 {object} dto.ReceiptResponse
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /api/v1/receipts/{bill_id} [get]
func (h *ReceiptHandler) GetReceipt(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	receipt, err := h.receiptService.Get(c.Context(), userID, c.Params("bill_id"))
	if err != nil {
		if errors.Is(err, repository.ErrReceiptNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Receipt not found",
			})
		}
		h.logger.Error("Failed to get receipt", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to get receipt",
		})
	}

	return c.JSON(mapReceipt(receipt))
}

// DeleteReceipt godoc
// @Summary Delete a receipt
// @Description Delete a receipt and its line items by bill ID
// @Tags receipts
// @Produce json
// @Param bill_id path string true "Bill ID"
// @Security Bearer
// @Success 204
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /api/v1/receipts/{bill_id} [delete]
func (h *ReceiptHandler) DeleteReceipt(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	if err := h.receiptService.Delete(c.Context(), userID, c.Params("bill_id")); err != nil {
		if errors.Is(err, repository.ErrReceiptNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Receipt not found",
			})
		}
		h.logger.Error("Failed to delete receipt", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to delete receipt",
		})
	}

	return c.SendStatus(fiber.StatusNoContent)
}

func mapReceipt(r *models.Receipt) dto.ReceiptResponse {
	resp := dto.ReceiptResponse{
		BillID:   r.BillID,
		Vendor:   r.Vendor,
		Date:     r.Date,
		Time:     r.Time,
		Payment:  string(r.Payment),
		Subtotal: r.Subtotal,
		Tax:      r.Tax,
		Amount:   r.Amount,
		Category: string(r.Category),
		Items:    make([]dto.LineItemResponse, 0, len(r.Items)),
	}
	if !r.CreatedAt.IsZero() {
		resp.CreatedAt = r.CreatedAt.Format("2006-01-02T15:04:05Z07:00")
	}
	for _, item := range r.Items {
		resp.Items = append(resp.Items, dto.LineItemResponse{
			Name:  item.Name,
			Price: item.Price,
		})
	}
	return resp
}

func mapReport(r *validate.Report) dto.ValidationReportResponse {
	resp := dto.ValidationReportResponse{
		Passed:  r.Passed,
		Results: make([]dto.CheckResultResponse, 0, len(r.Results)),
	}
	for _, res := range r.Results {
		resp.Results = append(resp.Results, dto.CheckResultResponse{
			Title:   res.Title,
			Status:  res.Status,
			Message: res.Message,
		})
	}
	return resp
}
