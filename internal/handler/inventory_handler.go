package handler

import (
	"errors"
	"fmt"
	"net/url"

	"go-stock-ledger/internal/service"
	"go-stock-ledger/pkg/validator"

	"github.com/gofiber/fiber/v2"
)

type InventoryHandler struct {
	service service.InventoryService
}

func NewInventoryHandler(s service.InventoryService) *InventoryHandler {
	return &InventoryHandler{service: s}
}

// RegisterStockRequest is the body of POST /stocks
type RegisterStockRequest struct {
	PartNumber string `json:"part_number" validate:"required,notblank"`
	Name       string `json:"name" validate:"required,notblank"`
	Unit       string `json:"unit"`
}

// MovementRequest is the body of the inbound/outbound routes
type MovementRequest struct {
	Quantity int `json:"quantity" validate:"required,gt=0"`
}

// DeleteStockRequest carries the explicit confirmation a delete needs
type DeleteStockRequest struct {
	Confirm bool `json:"confirm"`
}

// Helper untuk ambil operator dari JWT Context (set by auth middleware)
func getActor(c *fiber.Ctx) string {
	if operator, ok := c.Locals("operator").(string); ok && operator != "" {
		return operator
	}
	return "anonymous"
}

// partParam returns the decoded :part segment. Paths are routed unescaped so
// that an encoded "/" (%2F) stays inside the segment.
func partParam(c *fiber.Ctx) string {
	raw := c.Params("part")
	if part, err := url.PathUnescape(raw); err == nil {
		return part
	}
	return raw
}

func validationError(c *fiber.Ctx, req interface{}) error {
	errs := validator.ValidateStruct(req)
	if len(errs) == 0 {
		return nil
	}
	first := errs[0]
	return c.Status(400).JSON(fiber.Map{
		"error":   fmt.Sprintf("Validation failed: Field '%s' failed on tag '%s'", first.FailedField, first.Tag),
		"details": errs,
	})
}

// writeError maps service errors to HTTP responses.
func writeError(c *fiber.Ctx, err error) error {
	var dup *service.DuplicatePartError
	var short *service.InsufficientStockError

	switch {
	case errors.As(err, &dup):
		return c.Status(409).JSON(fiber.Map{"error": err.Error(), "existing": dup.Existing})
	case errors.As(err, &short):
		return c.Status(409).JSON(fiber.Map{"error": err.Error(), "stock": short.Record, "requested": short.Requested})
	case errors.Is(err, service.ErrPartNotFound):
		return c.Status(404).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, service.ErrInvalidQuantity), errors.Is(err, service.ErrEmptyPartNumber):
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	default:
		return c.Status(500).JSON(fiber.Map{"error": "Internal Server Error"})
	}
}

// GetStocks lists every record
// GET /api/v1/stocks
func (h *InventoryHandler) GetStocks(c *fiber.Ctx) error {
	records, err := h.service.GetAllStocks()
	if errors.Is(err, service.ErrNoStock) {
		return c.JSON(fiber.Map{"message": "No stock is registered yet", "data": records})
	}
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"data": records})
}

// GetStock looks up one record so the name can be shown before a movement
// GET /api/v1/stocks/:part
func (h *InventoryHandler) GetStock(c *fiber.Ctx) error {
	rec, err := h.service.GetStock(partParam(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"data": rec})
}

// RegisterStock
// POST /api/v1/stocks
func (h *InventoryHandler) RegisterStock(c *fiber.Ctx) error {
	var req RegisterStockRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}
	if err := validationError(c, &req); err != nil {
		return err
	}

	rec, err := h.service.RegisterStock(req.PartNumber, req.Name, req.Unit, getActor(c))
	if err != nil {
		return writeError(c, err)
	}

	return c.Status(201).JSON(fiber.Map{"message": "Stock registered", "data": rec})
}

// Inbound
// POST /api/v1/stocks/:part/inbound
func (h *InventoryHandler) Inbound(c *fiber.Ctx) error {
	var req MovementRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}
	if err := validationError(c, &req); err != nil {
		return err
	}

	rec, err := h.service.RecordInbound(partParam(c), req.Quantity, getActor(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Inbound recorded", "data": rec})
}

// Outbound
// POST /api/v1/stocks/:part/outbound
func (h *InventoryHandler) Outbound(c *fiber.Ctx) error {
	var req MovementRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}
	if err := validationError(c, &req); err != nil {
		return err
	}

	rec, err := h.service.RecordOutbound(partParam(c), req.Quantity, getActor(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Outbound recorded", "data": rec})
}

// DeleteStock needs confirm=true either in the body or the query string
// DELETE /api/v1/stocks/:part
func (h *InventoryHandler) DeleteStock(c *fiber.Ctx) error {
	var req DeleteStockRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
		}
	}
	if !req.Confirm && !c.QueryBool("confirm") {
		return c.Status(400).JSON(fiber.Map{"error": "Deletion must be confirmed"})
	}

	rec, err := h.service.DeleteStock(partParam(c), getActor(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Stock deleted", "data": rec})
}

// GetHistory
// GET /api/v1/history
func (h *InventoryHandler) GetHistory(c *fiber.Ctx) error {
	entries, err := h.service.GetHistory()
	if err != nil {
		return writeError(c, err)
	}
	if len(entries) == 0 {
		return c.JSON(fiber.Map{"message": "No history has been recorded yet", "data": entries})
	}
	return c.JSON(fiber.Map{"data": entries})
}
