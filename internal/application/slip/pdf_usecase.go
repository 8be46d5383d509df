package slip

import (
	"context"
	"fmt"

	"github.com/jhoicas/almacen-api/internal/application/stock"
	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

// SlipDetailForPDF es una línea enriquecida con los datos legibles que el
// documento impreso necesita (nombre de artículo, códigos de ubicación).
type SlipDetailForPDF struct {
	entity.SlipDetail
	ItemName     string
	FromLocation string
	ToLocation   string
}

// SlipPDFGenerator genera el documento imprimible de un vale.
type SlipPDFGenerator interface {
	GenerateSlipPDF(ctx context.Context, slip *entity.Slip, details []SlipDetailForPDF) ([]byte, error)
}

// PDFUseCase genera la representación imprimible (PDF) de un vale.
type PDFUseCase struct {
	slipRepo   repository.SlipRepository
	detailRepo repository.SlipDetailRepository
	itemRepo   repository.ItemRepository
	resolver   stock.LocationResolver
	generator  SlipPDFGenerator
}

// NewPDFUseCase construye el caso de uso inyectando todas sus dependencias.
func NewPDFUseCase(
	slipRepo repository.SlipRepository,
	detailRepo repository.SlipDetailRepository,
	itemRepo repository.ItemRepository,
	resolver stock.LocationResolver,
	generator SlipPDFGenerator,
) *PDFUseCase {
	return &PDFUseCase{
		slipRepo:   slipRepo,
		detailRepo: detailRepo,
		itemRepo:   itemRepo,
		resolver:   resolver,
		generator:  generator,
	}
}

// DownloadSlipPDF carga el vale con sus líneas, las enriquece con nombres de
// artículo y códigos de ubicación y genera el PDF.
//
// Retorna:
//   - (pdfBytes, filename, nil)  si todo sale bien.
//   - domain.ErrNotFound         si el vale no existe.
func (uc *PDFUseCase) DownloadSlipPDF(ctx context.Context, slipID string) (pdfBytes []byte, filename string, err error) {
	s, err := uc.slipRepo.GetByID(slipID)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: obtener vale: %w", err)
	}
	if s == nil {
		return nil, "", domain.ErrNotFound
	}

	rawDetails, err := uc.detailRepo.ListBySlip(slipID)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: obtener líneas: %w", err)
	}

	enriched := make([]SlipDetailForPDF, 0, len(rawDetails))
	for _, d := range rawDetails {
		name := "Artículo " + d.ItemID // fallback
		if item, iErr := uc.itemRepo.GetByID(d.ItemID); iErr == nil && item != nil {
			name = item.Name
		}
		enriched = append(enriched, SlipDetailForPDF{
			SlipDetail:   *d,
			ItemName:     name,
			FromLocation: uc.codeOrDash(ctx, d.FromStorageLocationID),
			ToLocation:   uc.codeOrDash(ctx, d.ToStorageLocationID),
		})
	}

	pdfBytes, err = uc.generator.GenerateSlipPDF(ctx, s, enriched)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: generación fallida: %w", err)
	}

	filename = fmt.Sprintf("vale_%s_%s.pdf", s.Type, s.ID)
	return pdfBytes, filename, nil
}

func (uc *PDFUseCase) codeOrDash(ctx context.Context, storageLocationID string) string {
	if storageLocationID == "" {
		return "—"
	}
	code, err := uc.resolver.CodeOf(ctx, storageLocationID)
	if err != nil {
		return "—"
	}
	return code
}
