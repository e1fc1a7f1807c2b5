package handler

import (
	"bytes"
	"fmt"
	"time"

	"go-stock-ledger/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ExportHandler struct {
	service service.ExportService
}

func NewExportHandler(s service.ExportService) *ExportHandler {
	return &ExportHandler{service: s}
}

// ExportStocks
// GET /api/v1/export/stocks.xlsx
func (h *ExportHandler) ExportStocks(c *fiber.Ctx) error {
	buf, err := h.service.ExportStocks()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to export stock"})
	}
	return sendWorkbook(c, "stock", buf)
}

// ExportHistory
// GET /api/v1/export/history.xlsx
func (h *ExportHandler) ExportHistory(c *fiber.Ctx) error {
	buf, err := h.service.ExportHistory()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to export history"})
	}
	return sendWorkbook(c, "history", buf)
}

func sendWorkbook(c *fiber.Ctx, prefix string, buf *bytes.Buffer) error {
	c.Attachment(fmt.Sprintf("%s_%s.xlsx", prefix, time.Now().Format("20060102_150405")))
	return c.Send(buf.Bytes())
}
