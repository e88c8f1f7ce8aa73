package handlers

import (
	"fmt"

	"warehouse/internal/models"
	"warehouse/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

// ItemHandler handles HTTP requests for items.
type ItemHandler struct {
	service  *services.ItemService
	validate *validator.Validate
}

// NewItemHandler creates a new ItemHandler.
func NewItemHandler(service *services.ItemService) *ItemHandler {
	return &ItemHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the item routes with the Fiber app.
func (h *ItemHandler) RegisterRoutes(router fiber.Router) {
	itemRoutes := router.Group("/items")
	itemRoutes.Post("/", h.HandleCreateItem)
	itemRoutes.Post("/with-variants", h.HandleCreateItemWithVariants)
	itemRoutes.Get("/", h.HandleGetItems)
	itemRoutes.Get("/search", h.HandleSearchItems)
	itemRoutes.Get("/:id", h.HandleGetItemByID)
	itemRoutes.Put("/:id", h.HandleUpdateItem)
	itemRoutes.Delete("/:id", h.HandleDeleteItem)
}

// ItemRequest represents the request body for creating or updating an item.
type ItemRequest struct {
	Name        string           `json:"name" validate:"required,min=1,max=255"`
	Description string           `json:"description" validate:"omitempty,max=500"`
	BasePrice   decimal.Decimal  `json:"base_price"`
	Variants    []VariantRequest `json:"variants" validate:"omitempty,dive"`
}

func (r *ItemRequest) toModel() *models.Item {
	item := &models.Item{
		Name:        r.Name,
		Description: r.Description,
		BasePrice:   r.BasePrice,
	}
	for i := range r.Variants {
		item.Variants = append(item.Variants, r.Variants[i].toModel())
	}
	return item
}

// validateItemRequest runs struct validation plus the price checks the
// validator cannot express for decimal fields.
func (h *ItemHandler) validateItemRequest(c *fiber.Ctx, req *ItemRequest) error {
	if err := h.validate.Struct(req); err != nil {
		return respondValidationError(c, err)
	}
	if !req.BasePrice.IsPositive() {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Base price must be positive",
		})
	}
	for _, v := range req.Variants {
		if !v.Price.IsPositive() {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": fmt.Sprintf("Price must be positive for variant %s", v.SKU),
			})
		}
	}
	return nil
}

// HandleCreateItem creates a new item with no variants.
func (h *ItemHandler) HandleCreateItem(c *fiber.Ctx) error {
	var req ItemRequest
	if err := c.BodyParser(&req); err != nil {
		return respondBadBody(c, err)
	}
	if resp := h.validateItemRequest(c, &req); resp != nil {
		return resp
	}

	item, err := h.service.CreateItem(req.toModel())
	if err != nil {
		return respondServiceError(c, "Could not create item", err)
	}
	return c.Status(fiber.StatusCreated).JSON(item)
}

// HandleCreateItemWithVariants creates a new item together with a batch
// of variants. Variants whose SKU already exists are silently skipped.
func (h *ItemHandler) HandleCreateItemWithVariants(c *fiber.Ctx) error {
	var req ItemRequest
	if err := c.BodyParser(&req); err != nil {
		return respondBadBody(c, err)
	}
	if resp := h.validateItemRequest(c, &req); resp != nil {
		return resp
	}

	item, err := h.service.CreateItemWithVariants(req.toModel())
	if err != nil {
		return respondServiceError(c, "Could not create item with variants", err)
	}
	return c.Status(fiber.StatusCreated).JSON(item)
}

// HandleGetItems retrieves all items.
func (h *ItemHandler) HandleGetItems(c *fiber.Ctx) error {
	items, err := h.service.GetAllItems()
	if err != nil {
		return respondServiceError(c, "Could not retrieve items", err)
	}
	return c.JSON(items)
}

// HandleSearchItems retrieves items whose name contains the query
// substring, case-insensitively.
func (h *ItemHandler) HandleSearchItems(c *fiber.Ctx) error {
	name := c.Query("name")
	if name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Query parameter 'name' is required",
		})
	}

	items, err := h.service.SearchItemsByName(name)
	if err != nil {
		return respondServiceError(c, "Could not search items", err)
	}
	return c.JSON(items)
}

// HandleGetItemByID retrieves a single item by its ID.
func (h *ItemHandler) HandleGetItemByID(c *fiber.Ctx) error {
	item, err := h.service.GetItemByID(c.Params("id"))
	if err != nil {
		return respondServiceError(c, "Could not retrieve item", err)
	}
	return c.JSON(item)
}

// HandleUpdateItem updates an item's name, description, and base price.
func (h *ItemHandler) HandleUpdateItem(c *fiber.Ctx) error {
	var req ItemRequest
	if err := c.BodyParser(&req); err != nil {
		return respondBadBody(c, err)
	}
	if resp := h.validateItemRequest(c, &req); resp != nil {
		return resp
	}

	item, err := h.service.UpdateItem(c.Params("id"), req.toModel())
	if err != nil {
		return respondServiceError(c, "Could not update item", err)
	}
	return c.JSON(item)
}

// HandleDeleteItem deletes an item and all its variants.
func (h *ItemHandler) HandleDeleteItem(c *fiber.Ctx) error {
	if err := h.service.DeleteItem(c.Params("id")); err != nil {
		return respondServiceError(c, "Could not delete item", err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
