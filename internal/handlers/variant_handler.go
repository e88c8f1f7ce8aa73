package handlers

import (
	"warehouse/internal/models"
	"warehouse/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

// VariantHandler handles HTTP requests for variants.
type VariantHandler struct {
	service  *services.VariantService
	validate *validator.Validate
}

// NewVariantHandler creates a new VariantHandler.
func NewVariantHandler(service *services.VariantService) *VariantHandler {
	return &VariantHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the variant routes with the Fiber app. The
// fixed report routes come before the parameterized ones so Fiber does
// not capture "low-stock" as an ID.
func (h *VariantHandler) RegisterRoutes(router fiber.Router) {
	variantRoutes := router.Group("/variants")
	variantRoutes.Post("/", h.HandleCreateVariant)
	variantRoutes.Get("/low-stock", h.HandleGetLowStockVariants)
	variantRoutes.Get("/out-of-stock", h.HandleGetOutOfStockVariants)
	variantRoutes.Get("/in-stock", h.HandleGetInStockVariants)
	variantRoutes.Get("/item/:itemId", h.HandleGetVariantsByItem)
	variantRoutes.Get("/sku/:sku", h.HandleGetVariantBySKU)
	variantRoutes.Get("/:id", h.HandleGetVariantByID)
	variantRoutes.Put("/:id", h.HandleUpdateVariant)
	variantRoutes.Delete("/:id", h.HandleDeleteVariant)
	variantRoutes.Post("/:id/reserve", h.HandleReserveStock)
}

// VariantRequest represents the request body for creating or updating a
// variant. stock_quantity is only honored on create (as the opening
// balance); updates never change stock.
type VariantRequest struct {
	ItemID        string          `json:"item_id" validate:"omitempty,uuid"`
	SKU           string          `json:"sku" validate:"required,min=1,max=100"`
	Size          string          `json:"size" validate:"omitempty,max=50"`
	Color         string          `json:"color" validate:"omitempty,max=50"`
	Material      string          `json:"material" validate:"omitempty,max=50"`
	Price         decimal.Decimal `json:"price"`
	StockQuantity int             `json:"stock_quantity" validate:"gte=0"`
	MinStockLevel int             `json:"min_stock_level" validate:"gte=0"`
}

func (r *VariantRequest) toModel() models.Variant {
	return models.Variant{
		ItemID:        r.ItemID,
		SKU:           r.SKU,
		Size:          r.Size,
		Color:         r.Color,
		Material:      r.Material,
		Price:         r.Price,
		StockQuantity: r.StockQuantity,
		MinStockLevel: r.MinStockLevel,
	}
}

func (h *VariantHandler) validateVariantRequest(c *fiber.Ctx, req *VariantRequest) error {
	if err := h.validate.Struct(req); err != nil {
		return respondValidationError(c, err)
	}
	if !req.Price.IsPositive() {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Price must be positive",
		})
	}
	return nil
}

// HandleCreateVariant creates a new variant for an existing item.
func (h *VariantHandler) HandleCreateVariant(c *fiber.Ctx) error {
	var req VariantRequest
	if err := c.BodyParser(&req); err != nil {
		return respondBadBody(c, err)
	}
	if req.ItemID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "item_id is required",
		})
	}
	if resp := h.validateVariantRequest(c, &req); resp != nil {
		return resp
	}

	variant := req.toModel()
	created, err := h.service.CreateVariant(&variant)
	if err != nil {
		return respondServiceError(c, "Could not create variant", err)
	}
	return c.Status(fiber.StatusCreated).JSON(created)
}

// HandleGetVariantsByItem retrieves all variants of an item.
func (h *VariantHandler) HandleGetVariantsByItem(c *fiber.Ctx) error {
	variants, err := h.service.GetVariantsByItemID(c.Params("itemId"))
	if err != nil {
		return respondServiceError(c, "Could not retrieve variants", err)
	}
	return c.JSON(variants)
}

// HandleGetVariantByID retrieves a single variant by its ID.
func (h *VariantHandler) HandleGetVariantByID(c *fiber.Ctx) error {
	variant, err := h.service.GetVariantByID(c.Params("id"))
	if err != nil {
		return respondServiceError(c, "Could not retrieve variant", err)
	}
	return c.JSON(variant)
}

// HandleGetVariantBySKU retrieves a single variant by its SKU.
func (h *VariantHandler) HandleGetVariantBySKU(c *fiber.Ctx) error {
	variant, err := h.service.GetVariantBySKU(c.Params("sku"))
	if err != nil {
		return respondServiceError(c, "Could not retrieve variant", err)
	}
	return c.JSON(variant)
}

// HandleUpdateVariant updates a variant's SKU, attributes, price, and
// minimum stock level. Stock quantity changes are rejected here; they go
// through the inventory endpoints.
func (h *VariantHandler) HandleUpdateVariant(c *fiber.Ctx) error {
	var req VariantRequest
	if err := c.BodyParser(&req); err != nil {
		return respondBadBody(c, err)
	}
	if resp := h.validateVariantRequest(c, &req); resp != nil {
		return resp
	}

	updated := req.toModel()
	variant, err := h.service.UpdateVariant(c.Params("id"), &updated)
	if err != nil {
		return respondServiceError(c, "Could not update variant", err)
	}
	return c.JSON(variant)
}

// HandleDeleteVariant deletes a variant.
func (h *VariantHandler) HandleDeleteVariant(c *fiber.Ctx) error {
	if err := h.service.DeleteVariant(c.Params("id")); err != nil {
		return respondServiceError(c, "Could not delete variant", err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// HandleGetLowStockVariants retrieves variants with positive stock at or
// below their minimum stock level.
func (h *VariantHandler) HandleGetLowStockVariants(c *fiber.Ctx) error {
	variants, err := h.service.GetLowStockVariants()
	if err != nil {
		return respondServiceError(c, "Could not retrieve low stock variants", err)
	}
	return c.JSON(variants)
}

// HandleGetOutOfStockVariants retrieves variants with zero stock.
func (h *VariantHandler) HandleGetOutOfStockVariants(c *fiber.Ctx) error {
	variants, err := h.service.GetOutOfStockVariants()
	if err != nil {
		return respondServiceError(c, "Could not retrieve out of stock variants", err)
	}
	return c.JSON(variants)
}

// HandleGetInStockVariants retrieves variants with positive stock.
func (h *VariantHandler) HandleGetInStockVariants(c *fiber.Ctx) error {
	variants, err := h.service.GetInStockVariants()
	if err != nil {
		return respondServiceError(c, "Could not retrieve in stock variants", err)
	}
	return c.JSON(variants)
}

// HandleReserveStock holds stock against a sale. The quantity comes from
// the "quantity" query parameter.
func (h *VariantHandler) HandleReserveStock(c *fiber.Ctx) error {
	quantity := c.QueryInt("quantity")
	if quantity <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Query parameter 'quantity' must be a positive integer",
		})
	}

	if err := h.service.ReserveStock(c.Params("id"), quantity); err != nil {
		return respondServiceError(c, "Could not reserve stock", err)
	}
	return c.SendStatus(fiber.StatusOK)
}
