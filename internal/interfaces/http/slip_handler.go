package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/application/slip"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
)

// SlipHandler maneja el ciclo de vida de los vales (protegido).
type SlipHandler struct {
	uc  *slip.UseCase
	pdf *slip.PDFUseCase
}

// NewSlipHandler construye el handler.
func NewSlipHandler(uc *slip.UseCase, pdf *slip.PDFUseCase) *SlipHandler {
	return &SlipHandler{uc: uc, pdf: pdf}
}

// Create godoc
// @Summary      Crear vale en DRAFT con sus líneas
// @Tags         slips
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateSlipRequest  true  "type, lines"
// @Success      201   {object}  dto.SlipWithDetailsResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/slips [post]
func (h *SlipHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateSlipRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	lines := make([]slip.LineInput, 0, len(in.Lines))
	for _, l := range in.Lines {
		lines = append(lines, slip.LineInput{
			ItemID:                l.ItemID,
			FromWarehouseID:       l.FromWarehouseID,
			FromStorageLocationID: l.FromStorageLocationID,
			ToWarehouseID:         l.ToWarehouseID,
			ToStorageLocationID:   l.ToStorageLocationID,
			Quantity:              l.Quantity,
			Note:                  l.Note,
		})
	}
	s, details, err := h.uc.Create(c.Context(), slip.CreateInput{
		Type:      in.Type,
		CreatedBy: GetUserID(c),
		Lines:     lines,
	})
	if err != nil {
		return errorResponse(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toSlipWithDetails(s, details))
}

// GetByID godoc
// @Summary      Obtener vale con sus líneas
// @Tags         slips
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del vale"
// @Success      200  {object}  dto.SlipWithDetailsResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/slips/{id} [get]
func (h *SlipHandler) GetByID(c *fiber.Ctx) error {
	s, details, err := h.uc.Get(c.Context(), c.Params("id"))
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(toSlipWithDetails(s, details))
}

// List godoc
// @Summary      Listar vales
// @Description  Filtros mutuamente exclusivos: type, status, created_by o
//
//	rango de fechas (from + to, RFC 3339). Sin filtro lista todo.
//
// @Tags         slips
// @Security     Bearer
// @Produce      json
// @Param        type        query  string  false  "INBOUND | OUTBOUND | TRANSFER | FREEZE | SCRAP"
// @Param        status      query  string  false  "DRAFT | COMPLETED | CANCELLED"
// @Param        created_by  query  string  false  "ID de usuario creador"
// @Param        from        query  string  false  "Fecha inicial (RFC 3339)"
// @Param        to          query  string  false  "Fecha final (RFC 3339)"
// @Param        limit       query  int     false  "Límite (default 50)"
// @Param        offset      query  int     false  "Offset (default 0)"
// @Success      200  {object}  dto.SlipListResponse
// @Router       /api/slips [get]
func (h *SlipHandler) List(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 50)
	offset := c.QueryInt("offset", 0)

	var (
		list []*entity.Slip
		err  error
	)
	switch {
	case c.Query("type") != "":
		list, err = h.uc.ListByType(c.Context(), c.Query("type"), limit, offset)
	case c.Query("status") != "":
		list, err = h.uc.ListByStatus(c.Context(), c.Query("status"), limit, offset)
	case c.Query("created_by") != "":
		list, err = h.uc.ListByCreatedBy(c.Context(), c.Query("created_by"), limit, offset)
	case c.Query("from") != "" || c.Query("to") != "":
		var from, to time.Time
		if from, err = time.Parse(time.RFC3339, c.Query("from")); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "from inválido (RFC 3339)"})
		}
		if to, err = time.Parse(time.RFC3339, c.Query("to")); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "to inválido (RFC 3339)"})
		}
		list, err = h.uc.ListByDateRange(c.Context(), from, to, limit, offset)
	default:
		list, err = h.uc.List(c.Context(), limit, offset)
	}
	if err != nil {
		return errorResponse(c, err)
	}

	items := make([]dto.SlipResponse, 0, len(list))
	for _, s := range list {
		items = append(items, toSlipResponse(s))
	}
	return c.JSON(dto.SlipListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	})
}

// Count godoc
// @Summary      Contar vales por tipo y estado, o por creador
// @Tags         slips
// @Security     Bearer
// @Produce      json
// @Param        type        query  string  false  "Tipo de vale (vacío = todos)"
// @Param        status      query  string  false  "Estado (vacío = todos)"
// @Param        created_by  query  string  false  "ID del usuario creador (excluyente con type/status)"
// @Success      200  {object}  dto.SlipCountResponse
// @Router       /api/slips/count [get]
func (h *SlipHandler) Count(c *fiber.Ctx) error {
	if createdBy := c.Query("created_by"); createdBy != "" {
		count, err := h.uc.CountByCreatedBy(c.Context(), createdBy)
		if err != nil {
			return errorResponse(c, err)
		}
		return c.JSON(dto.SlipCountResponse{CreatedBy: createdBy, Count: count})
	}
	slipType := c.Query("type")
	status := c.Query("status")
	count, err := h.uc.CountByTypeAndStatus(c.Context(), slipType, status)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(dto.SlipCountResponse{Type: slipType, Status: status, Count: count})
}

// Complete godoc
// @Summary      Completar vale
// @Description  Transiciona DRAFT → COMPLETED y despacha el procesamiento de
//
//	las líneas al pool de trabajadores. El resultado por línea se
//	consulta después con GET /api/slips/{id}.
//
// @Tags         slips
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del vale"
// @Success      200  {object}  dto.SlipResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/slips/{id}/complete [post]
func (h *SlipHandler) Complete(c *fiber.Ctx) error {
	s, err := h.uc.Complete(c.Context(), c.Params("id"))
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(toSlipResponse(s))
}

// Cancel godoc
// @Summary      Cancelar vale
// @Description  Transiciona DRAFT → CANCELLED y cancela en cascada las líneas PENDING.
// @Tags         slips
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del vale"
// @Success      200  {object}  dto.SlipResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/slips/{id}/cancel [post]
func (h *SlipHandler) Cancel(c *fiber.Ctx) error {
	s, err := h.uc.Cancel(c.Context(), c.Params("id"))
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(toSlipResponse(s))
}

// Redispatch godoc
// @Summary      Reencolar líneas PENDING de un vale COMPLETED
// @Description  Recuperación tras un reinicio: las líneas que quedaron sin
//
//	procesar vuelven a la cola de trabajadores.
//
// @Tags         slips
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del vale"
// @Success      200  {object}  map[string]int
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/slips/{id}/redispatch [post]
func (h *SlipHandler) Redispatch(c *fiber.Ctx) error {
	n, err := h.uc.Redispatch(c.Context(), c.Params("id"))
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(fiber.Map{"requeued": n})
}

// DownloadPDF godoc
// @Summary      Descargar el vale en PDF
// @Tags         slips
// @Security     Bearer
// @Produce      application/pdf
// @Param        id  path  string  true  "ID del vale"
// @Success      200  {file}  binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/slips/{id}/pdf [get]
func (h *SlipHandler) DownloadPDF(c *fiber.Ctx) error {
	pdfBytes, filename, err := h.pdf.DownloadSlipPDF(c.Context(), c.Params("id"))
	if err != nil {
		return errorResponse(c, err)
	}
	c.Set("Content-Type", "application/pdf")
	c.Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	return c.Send(pdfBytes)
}

// ── mappers ───────────────────────────────────────────────────────────────────

func toSlipResponse(s *entity.Slip) dto.SlipResponse {
	return dto.SlipResponse{
		ID:        s.ID,
		Type:      s.Type,
		Status:    s.Status,
		CreatedBy: s.CreatedBy,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}

func toSlipWithDetails(s *entity.Slip, details []*entity.SlipDetail) dto.SlipWithDetailsResponse {
	out := dto.SlipWithDetailsResponse{
		Slip:    toSlipResponse(s),
		Details: make([]dto.SlipDetailResponse, 0, len(details)),
	}
	for _, d := range details {
		out.Details = append(out.Details, dto.SlipDetailResponse{
			ID:                    d.ID,
			SlipID:                d.SlipID,
			LineNumber:            d.LineNumber,
			ItemID:                d.ItemID,
			FromWarehouseID:       d.FromWarehouseID,
			FromStorageLocationID: d.FromStorageLocationID,
			ToWarehouseID:         d.ToWarehouseID,
			ToStorageLocationID:   d.ToStorageLocationID,
			QuantityChange:        d.QuantityChange,
			Status:                d.Status,
			Note:                  d.Note,
			CreatedAt:             d.CreatedAt,
			UpdatedAt:             d.UpdatedAt,
		})
	}
	return out
}
