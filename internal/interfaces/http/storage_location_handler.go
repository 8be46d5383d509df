package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/application/usecase"
)

// StorageLocationHandler maneja las ubicaciones de almacenaje (protegido).
type StorageLocationHandler struct {
	uc *usecase.StorageLocationUseCase
}

// NewStorageLocationHandler construye el handler.
func NewStorageLocationHandler(uc *usecase.StorageLocationUseCase) *StorageLocationHandler {
	return &StorageLocationHandler{uc: uc}
}

// Create godoc
// @Summary      Crear ubicación de almacenaje
// @Tags         locations
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateStorageLocationRequest  true  "code, warehouse_id"
// @Success      201   {object}  dto.StorageLocationResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/locations [post]
func (h *StorageLocationHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateStorageLocationRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	loc, err := h.uc.Create(in)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(loc)
}

// GetByID godoc
// @Summary      Obtener ubicación por ID
// @Tags         locations
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la ubicación"
// @Success      200  {object}  dto.StorageLocationResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/locations/{id} [get]
func (h *StorageLocationHandler) GetByID(c *fiber.Ctx) error {
	loc, err := h.uc.GetByID(c.Params("id"))
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(loc)
}

// GetByCode godoc
// @Summary      Obtener ubicación por código
// @Tags         locations
// @Security     Bearer
// @Produce      json
// @Param        code  path  string  true  "Código de la ubicación (ej. A001)"
// @Success      200  {object}  dto.StorageLocationResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/locations/code/{code} [get]
func (h *StorageLocationHandler) GetByCode(c *fiber.Ctx) error {
	loc, err := h.uc.GetByCode(c.Params("code"))
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(loc)
}

// Update godoc
// @Summary      Actualizar estado de ubicación
// @Tags         locations
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                            true  "ID de la ubicación"
// @Param        body  body  dto.UpdateStorageLocationRequest  true  "status: active | inactive"
// @Success      200   {object}  dto.StorageLocationResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/locations/{id} [put]
func (h *StorageLocationHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateStorageLocationRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	loc, err := h.uc.Update(c.Params("id"), in)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(loc)
}

// List godoc
// @Summary      Listar ubicaciones
// @Tags         locations
// @Security     Bearer
// @Produce      json
// @Param        warehouse_id  query  string  false  "Filtrar por bodega"
// @Param        limit         query  int     false  "Límite (default 50)"
// @Param        offset        query  int     false  "Offset (default 0)"
// @Success      200  {object}  dto.StorageLocationListResponse
// @Router       /api/locations [get]
func (h *StorageLocationHandler) List(c *fiber.Ctx) error {
	list, err := h.uc.List(c.Query("warehouse_id"), c.QueryInt("limit", 50), c.QueryInt("offset", 0))
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(list)
}
