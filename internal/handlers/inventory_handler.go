package handlers

import (
	"time"

	"warehouse/internal/models"
	"warehouse/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// InventoryHandler handles HTTP requests for the stock accounting
// operations and ledger queries.
type InventoryHandler struct {
	service  *services.InventoryService
	validate *validator.Validate
}

// NewInventoryHandler creates a new InventoryHandler.
func NewInventoryHandler(service *services.InventoryService) *InventoryHandler {
	return &InventoryHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the inventory routes with the Fiber app.
func (h *InventoryHandler) RegisterRoutes(router fiber.Router) {
	inventoryRoutes := router.Group("/inventory")
	inventoryRoutes.Post("/add-stock", h.HandleAddStock)
	inventoryRoutes.Post("/remove-stock", h.HandleRemoveStock)
	inventoryRoutes.Post("/adjust-stock", h.HandleAdjustStock)
	inventoryRoutes.Get("/:variantId/movements", h.HandleGetMovementHistory)
	inventoryRoutes.Get("/:variantId/current-stock", h.HandleGetCurrentStock)
	inventoryRoutes.Get("/:variantId/total-in", h.HandleGetTotalStockIn)
	inventoryRoutes.Get("/:variantId/total-out", h.HandleGetTotalStockOut)
}

// StockUpdateRequest represents the request body for the stock accounting
// operations. Quantity is a pointer so a missing field can be told apart
// from an explicit zero, which adjust-stock permits.
type StockUpdateRequest struct {
	VariantID string `json:"variant_id" validate:"required,uuid"`
	Quantity  *int   `json:"quantity" validate:"required"`
	Reason    string `json:"reason" validate:"omitempty,max=255"`
	Reference string `json:"reference" validate:"omitempty,max=255"`
}

func (h *InventoryHandler) parseStockUpdate(c *fiber.Ctx) (*StockUpdateRequest, error) {
	var req StockUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return nil, respondBadBody(c, err)
	}
	if err := h.validate.Struct(req); err != nil {
		return nil, respondValidationError(c, err)
	}
	return &req, nil
}

// HandleAddStock increases a variant's stock and returns the IN movement.
func (h *InventoryHandler) HandleAddStock(c *fiber.Ctx) error {
	req, resp := h.parseStockUpdate(c)
	if req == nil {
		return resp
	}

	movement, err := h.service.AddStock(req.VariantID, *req.Quantity, req.Reason, req.Reference)
	if err != nil {
		return respondServiceError(c, "Could not add stock", err)
	}
	return c.JSON(movement)
}

// HandleRemoveStock decreases a variant's stock and returns the OUT
// movement.
func (h *InventoryHandler) HandleRemoveStock(c *fiber.Ctx) error {
	req, resp := h.parseStockUpdate(c)
	if req == nil {
		return resp
	}

	movement, err := h.service.RemoveStock(req.VariantID, *req.Quantity, req.Reason, req.Reference)
	if err != nil {
		return respondServiceError(c, "Could not remove stock", err)
	}
	return c.JSON(movement)
}

// HandleAdjustStock applies a signed correction to a variant's stock and
// returns the ADJUSTMENT movement.
func (h *InventoryHandler) HandleAdjustStock(c *fiber.Ctx) error {
	req, resp := h.parseStockUpdate(c)
	if req == nil {
		return resp
	}

	movement, err := h.service.AdjustStock(req.VariantID, *req.Quantity, req.Reason, req.Reference)
	if err != nil {
		return respondServiceError(c, "Could not adjust stock", err)
	}
	return c.JSON(movement)
}

// HandleGetMovementHistory returns a variant's movements, newest first.
// Optional "from" and "to" query parameters (RFC 3339) narrow the window;
// they must be given together.
func (h *InventoryHandler) HandleGetMovementHistory(c *fiber.Ctx) error {
	variantID := c.Params("variantId")
	fromParam := c.Query("from")
	toParam := c.Query("to")

	var movements []models.StockMovement
	var err error
	switch {
	case fromParam == "" && toParam == "":
		movements, err = h.service.GetStockMovementHistory(variantID)
	case fromParam != "" && toParam != "":
		var from, to time.Time
		if from, err = time.Parse(time.RFC3339, fromParam); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "Query parameter 'from' must be an RFC 3339 timestamp",
			})
		}
		if to, err = time.Parse(time.RFC3339, toParam); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "Query parameter 'to' must be an RFC 3339 timestamp",
			})
		}
		movements, err = h.service.GetStockMovementHistoryRange(variantID, from, to)
	default:
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Query parameters 'from' and 'to' must be given together",
		})
	}
	if err != nil {
		return respondServiceError(c, "Could not retrieve movement history", err)
	}
	return c.JSON(movements)
}

// HandleGetCurrentStock returns a variant's current stock quantity.
func (h *InventoryHandler) HandleGetCurrentStock(c *fiber.Ctx) error {
	level, err := h.service.GetCurrentStockLevel(c.Params("variantId"))
	if err != nil {
		return respondServiceError(c, "Could not retrieve current stock", err)
	}
	return c.JSON(level)
}

// HandleGetTotalStockIn returns the sum of a variant's IN movements.
func (h *InventoryHandler) HandleGetTotalStockIn(c *fiber.Ctx) error {
	total, err := h.service.GetTotalStockIn(c.Params("variantId"))
	if err != nil {
		return respondServiceError(c, "Could not retrieve total stock in", err)
	}
	return c.JSON(total)
}

// HandleGetTotalStockOut returns the sum of a variant's OUT movements.
func (h *InventoryHandler) HandleGetTotalStockOut(c *fiber.Ctx) error {
	total, err := h.service.GetTotalStockOut(c.Params("variantId"))
	if err != nil {
		return respondServiceError(c, "Could not retrieve total stock out", err)
	}
	return c.JSON(total)
}
