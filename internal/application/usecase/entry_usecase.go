package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/invorya/mermas-api/internal/application/dto"
	"github.com/invorya/mermas-api/internal/domain"
	"github.com/invorya/mermas-api/internal/domain/entity"
	"github.com/invorya/mermas-api/internal/domain/repository"
)

// EntryUseCase casos de uso de registro y consulta de entradas de merma.
// El flag is_synchronized no se toca aquí: es propiedad exclusiva del
// pipeline de exportación.
type EntryUseCase struct {
	entries  repository.EntryRepository
	products repository.ProductRepository
	reasons  repository.ReasonRepository
}

// NewEntryUseCase construye el caso de uso.
func NewEntryUseCase(
	entries repository.EntryRepository,
	products repository.ProductRepository,
	reasons repository.ReasonRepository,
) *EntryUseCase {
	return &EntryUseCase{entries: entries, products: products, reasons: reasons}
}

// Create valida y persiste una entrada nueva con is_synchronized=false.
// Si el código de producto no existe en el catálogo, la entrada se registra
// igual con el nombre placeholder (el producto puede sincronizarse después).
func (uc *EntryUseCase) Create(ctx context.Context, in dto.CreateEntryRequest) (*dto.EntryResponse, error) {
	if in.ProductCode == "" || in.ReasonID == "" {
		return nil, domain.ErrInvalidInput
	}
	if !in.Quantity.IsPositive() {
		return nil, domain.ErrInvalidInput
	}
	if in.UnitCost.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	if len(in.Notes) > entity.MaxNotesLen {
		return nil, domain.ErrInvalidInput
	}

	reason, err := uc.reasons.GetByID(ctx, in.ReasonID)
	if err != nil {
		return nil, err
	}
	if reason == nil {
		return nil, domain.ErrInvalidInput
	}

	productName := entity.PlaceholderName
	if product, err := uc.products.GetByCode(ctx, in.ProductCode); err != nil {
		return nil, err
	} else if product != nil {
		productName = product.Name
	}

	e := &entity.Entry{
		ProductCode:    in.ProductCode,
		ProductName:    productName,
		ReasonID:       in.ReasonID,
		Quantity:       in.Quantity,
		UnitCost:       in.UnitCost,
		TotalCost:      in.Quantity.Mul(in.UnitCost),
		Notes:          in.Notes,
		IsSynchronized: false,
		CreatedAt:      time.Now(),
	}
	id, err := uc.entries.Insert(ctx, e)
	if err != nil {
		return nil, err
	}
	e.ID = id
	return toEntryResponse(e), nil
}

// List devuelve entradas paginadas, opcionalmente filtradas por motivo.
func (uc *EntryUseCase) List(ctx context.Context, reasonID string, page dto.PageRequest) (*dto.EntryListResponse, error) {
	page.DefaultPage()
	list, err := uc.entries.List(ctx, reasonID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.EntryResponse, 0, len(list))
	for _, e := range list {
		items = append(items, *toEntryResponse(e))
	}
	return &dto.EntryListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

// Summary agrega valor, cantidad y conteo de pérdidas del rango dado.
// Un rango sin entradas devuelve ceros.
func (uc *EntryUseCase) Summary(ctx context.Context, from, to *time.Time) (*dto.LossSummaryResponse, error) {
	agg, err := uc.entries.AggregateLossValue(ctx, from, to)
	if err != nil {
		return nil, err
	}
	if agg == nil {
		agg = &repository.LossAggregate{TotalValue: decimal.Zero, TotalQuantity: decimal.Zero}
	}
	return &dto.LossSummaryResponse{
		TotalValue:    agg.TotalValue,
		TotalQuantity: agg.TotalQuantity,
		TotalEntries:  agg.TotalEntries,
		From:          from,
		To:            to,
	}, nil
}

func toEntryResponse(e *entity.Entry) *dto.EntryResponse {
	return &dto.EntryResponse{
		ID:             e.ID,
		ProductCode:    e.ProductCode,
		ProductName:    e.ProductName,
		ReasonID:       e.ReasonID,
		Quantity:       e.Quantity,
		UnitCost:       e.UnitCost,
		TotalCost:      e.TotalCost,
		Notes:          e.Notes,
		IsSynchronized: e.IsSynchronized,
		CreatedAt:      e.CreatedAt,
	}
}
