package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/application/stock"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
)

// StockHandler maneja las operaciones de inventario y las consultas de
// stock y movimientos (protegido).
type StockHandler struct {
	ops     *stock.OperationsUseCase
	queries *stock.QueryUseCase
}

// NewStockHandler construye el handler.
func NewStockHandler(ops *stock.OperationsUseCase, queries *stock.QueryUseCase) *StockHandler {
	return &StockHandler{ops: ops, queries: queries}
}

// ── Operaciones ───────────────────────────────────────────────────────────────

// operation parsea el cuerpo común y despacha la operación indicada.
func (h *StockHandler) operation(c *fiber.Ctx, run func(ctx *fiber.Ctx, in stock.MovementInput) error) error {
	var in dto.StockOperationRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	err := run(c, stock.MovementInput{
		ItemID:       in.ItemID,
		FromLocation: in.FromLocation,
		ToLocation:   in.ToLocation,
		Quantity:     in.Quantity,
		Note:         in.Note,
	})
	if err != nil {
		return errorResponse(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "operación registrada"})
}

// Inbound godoc
// @Summary      Entrada de stock
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.StockOperationRequest  true  "item_id, to_location, quantity"
// @Success      201   {object}  map[string]string
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/stock/inbound [post]
func (h *StockHandler) Inbound(c *fiber.Ctx) error {
	return h.operation(c, func(c *fiber.Ctx, in stock.MovementInput) error {
		return h.ops.Inbound(c.Context(), in)
	})
}

// Outbound godoc
// @Summary      Salida de stock
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.StockOperationRequest  true  "item_id, from_location, quantity"
// @Success      201   {object}  map[string]string
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/stock/outbound [post]
func (h *StockHandler) Outbound(c *fiber.Ctx) error {
	return h.operation(c, func(c *fiber.Ctx, in stock.MovementInput) error {
		return h.ops.Outbound(c.Context(), in)
	})
}

// Transfer godoc
// @Summary      Traslado entre ubicaciones
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.StockOperationRequest  true  "item_id, from_location, to_location, quantity"
// @Success      201   {object}  map[string]string
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/stock/transfer [post]
func (h *StockHandler) Transfer(c *fiber.Ctx) error {
	return h.operation(c, func(c *fiber.Ctx, in stock.MovementInput) error {
		return h.ops.Transfer(c.Context(), in)
	})
}

// Freeze godoc
// @Summary      Congelar stock (mover a la ubicación de congelado)
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.StockOperationRequest  true  "item_id, from_location, quantity"
// @Success      201   {object}  map[string]string
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/stock/freeze [post]
func (h *StockHandler) Freeze(c *fiber.Ctx) error {
	return h.operation(c, func(c *fiber.Ctx, in stock.MovementInput) error {
		return h.ops.Freeze(c.Context(), in)
	})
}

// Scrap godoc
// @Summary      Merma (mover a la ubicación de merma)
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.StockOperationRequest  true  "item_id, from_location, quantity"
// @Success      201   {object}  map[string]string
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/stock/scrap [post]
func (h *StockHandler) Scrap(c *fiber.Ctx) error {
	return h.operation(c, func(c *fiber.Ctx, in stock.MovementInput) error {
		return h.ops.Scrap(c.Context(), in)
	})
}

// Unfreeze godoc
// @Summary      Descongelar stock (devolver desde congelado)
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.StockOperationRequest  true  "item_id, to_location, quantity"
// @Success      201   {object}  map[string]string
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/stock/unfreeze [post]
func (h *StockHandler) Unfreeze(c *fiber.Ctx) error {
	return h.operation(c, func(c *fiber.Ctx, in stock.MovementInput) error {
		return h.ops.Unfreeze(c.Context(), in)
	})
}

// ── Consultas de stock ────────────────────────────────────────────────────────

// GetStock godoc
// @Summary      Stock de un artículo en una ubicación
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        item_id   query  string  true  "ID del artículo"
// @Param        location  query  string  true  "Código de ubicación"
// @Success      200  {object}  dto.StockResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/stock [get]
func (h *StockHandler) GetStock(c *fiber.Ctx) error {
	s, err := h.queries.GetStock(c.Context(), c.Query("item_id"), c.Query("location"))
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(toStockResponse(s))
}

// StocksByItem godoc
// @Summary      Stock de un artículo en todas sus ubicaciones
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del artículo"
// @Success      200  {array}  dto.StockResponse
// @Router       /api/stock/items/{id} [get]
func (h *StockHandler) StocksByItem(c *fiber.Ctx) error {
	list, err := h.queries.StocksByItem(c.Context(), c.Params("id"))
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(toStockResponses(list))
}

// StocksByLocation godoc
// @Summary      Stock de todos los artículos en una ubicación
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        code  path  string  true  "Código de ubicación"
// @Success      200  {array}  dto.StockResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/stock/locations/{code} [get]
func (h *StockHandler) StocksByLocation(c *fiber.Ctx) error {
	list, err := h.queries.StocksByLocation(c.Context(), c.Params("code"))
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(toStockResponses(list))
}

// TotalStock godoc
// @Summary      Total de un artículo en todas las ubicaciones
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del artículo"
// @Success      200  {object}  dto.TotalStockResponse
// @Router       /api/stock/items/{id}/total [get]
func (h *StockHandler) TotalStock(c *fiber.Ctx) error {
	itemID := c.Params("id")
	total, err := h.queries.TotalStock(c.Context(), itemID)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(dto.TotalStockResponse{ItemID: itemID, Total: total})
}

// LowStocks godoc
// @Summary      Filas de stock por debajo de un umbral
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        threshold  query  string  false  "Umbral (default 10)"
// @Success      200  {array}  dto.StockResponse
// @Router       /api/stock/low [get]
func (h *StockHandler) LowStocks(c *fiber.Ctx) error {
	threshold := decimal.NewFromInt(10)
	if raw := c.Query("threshold"); raw != "" {
		parsed, err := decimal.NewFromString(raw)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "threshold inválido"})
		}
		threshold = parsed
	}
	list, err := h.queries.LowStocks(c.Context(), threshold)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(toStockResponses(list))
}

// ZeroStocks godoc
// @Summary      Filas de stock en cero exacto
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.StockResponse
// @Router       /api/stock/zero [get]
func (h *StockHandler) ZeroStocks(c *fiber.Ctx) error {
	list, err := h.queries.ZeroStocks(c.Context())
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(toStockResponses(list))
}

// Locations godoc
// @Summary      Códigos de las ubicaciones con stock registrado
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  string
// @Router       /api/stock/location-codes [get]
func (h *StockHandler) Locations(c *fiber.Ctx) error {
	codes, err := h.queries.Locations(c.Context())
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(codes)
}

// ── Consultas de movimientos ──────────────────────────────────────────────────

// MovementsByItem godoc
// @Summary      Movimientos de un artículo
// @Tags         movements
// @Security     Bearer
// @Produce      json
// @Param        id      path   string  true   "ID del artículo"
// @Param        limit   query  int     false  "Límite (default 50)"
// @Param        offset  query  int     false  "Offset (default 0)"
// @Success      200  {array}  dto.StockMovementResponse
// @Router       /api/movements/items/{id} [get]
func (h *StockHandler) MovementsByItem(c *fiber.Ctx) error {
	list, err := h.queries.MovementsByItem(c.Context(), c.Params("id"), c.QueryInt("limit", 50), c.QueryInt("offset", 0))
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(toMovementResponses(list))
}

// MovementsByLocation godoc
// @Summary      Movimientos de una ubicación
// @Tags         movements
// @Security     Bearer
// @Produce      json
// @Param        code    path   string  true   "Código de ubicación"
// @Param        limit   query  int     false  "Límite (default 50)"
// @Param        offset  query  int     false  "Offset (default 0)"
// @Success      200  {array}  dto.StockMovementResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/movements/locations/{code} [get]
func (h *StockHandler) MovementsByLocation(c *fiber.Ctx) error {
	list, err := h.queries.MovementsByLocation(c.Context(), c.Params("code"), c.QueryInt("limit", 50), c.QueryInt("offset", 0))
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(toMovementResponses(list))
}

// MovementsBySlip godoc
// @Summary      Movimientos generados por un vale
// @Tags         movements
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del vale"
// @Success      200  {array}  dto.StockMovementResponse
// @Router       /api/movements/slips/{id} [get]
func (h *StockHandler) MovementsBySlip(c *fiber.Ctx) error {
	list, err := h.queries.MovementsBySlip(c.Context(), c.Params("id"))
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(toMovementResponses(list))
}

// RecentMovements godoc
// @Summary      Últimos movimientos del sistema
// @Tags         movements
// @Security     Bearer
// @Produce      json
// @Param        limit  query  int  false  "Límite (default 10)"
// @Success      200  {array}  dto.StockMovementResponse
// @Router       /api/movements/recent [get]
func (h *StockHandler) RecentMovements(c *fiber.Ctx) error {
	list, err := h.queries.RecentMovements(c.Context(), c.QueryInt("limit", 10))
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(toMovementResponses(list))
}

// ── mappers ───────────────────────────────────────────────────────────────────

func toStockResponse(s *entity.Stock) dto.StockResponse {
	return dto.StockResponse{
		ItemID:            s.ItemID,
		WarehouseID:       s.WarehouseID,
		StorageLocationID: s.StorageLocationID,
		Quantity:          s.Quantity,
		UpdatedAt:         s.UpdatedAt,
	}
}

func toStockResponses(list []*entity.Stock) []dto.StockResponse {
	out := make([]dto.StockResponse, 0, len(list))
	for _, s := range list {
		out = append(out, toStockResponse(s))
	}
	return out
}

func toMovementResponse(m *entity.StockMovement) dto.StockMovementResponse {
	return dto.StockMovementResponse{
		ID:                m.ID,
		TransactionID:     m.TransactionID,
		ItemID:            m.ItemID,
		WarehouseID:       m.WarehouseID,
		StorageLocationID: m.StorageLocationID,
		Type:              m.Type,
		QuantityChange:    m.QuantityChange,
		Note:              m.Note,
		SlipID:            m.SlipID,
		CreatedAt:         m.CreatedAt,
	}
}

func toMovementResponses(list []*entity.StockMovement) []dto.StockMovementResponse {
	out := make([]dto.StockMovementResponse, 0, len(list))
	for _, m := range list {
		out = append(out, toMovementResponse(m))
	}
	return out
}
