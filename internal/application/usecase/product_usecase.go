package usecase

import (
	"context"
	"time"

	"github.com/invorya/mermas-api/internal/application/dto"
	"github.com/invorya/mermas-api/internal/domain"
	"github.com/invorya/mermas-api/internal/domain/entity"
	"github.com/invorya/mermas-api/internal/domain/repository"
)

// ProductUseCase casos de uso del catálogo de productos. El catálogo se
// alimenta desde un sistema externo; aquí solo se consulta y se dan de alta
// productos puntuales.
type ProductUseCase struct {
	repo repository.ProductRepository
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repo repository.ProductRepository) *ProductUseCase {
	return &ProductUseCase{repo: repo}
}

// Create registra un producto nuevo del catálogo.
func (uc *ProductUseCase) Create(ctx context.Context, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if in.Code == "" || in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.UnitType != entity.UnitKG && in.UnitType != entity.UnitUN {
		return nil, domain.ErrInvalidInput
	}
	existing, err := uc.repo.GetByCode(ctx, in.Code)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	now := time.Now()
	product := &entity.Product{
		Code:         in.Code,
		Name:         in.Name,
		UnitType:     in.UnitType,
		RegularPrice: in.RegularPrice,
		ClubPrice:    in.ClubPrice,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.repo.Create(ctx, product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// GetByCode obtiene un producto por código. (nil, nil) si no existe.
func (uc *ProductUseCase) GetByCode(ctx context.Context, code string) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, nil
	}
	return toProductResponse(product), nil
}

// List busca productos por código o nombre, paginado.
func (uc *ProductUseCase) List(ctx context.Context, search string, page dto.PageRequest) (*dto.ProductListResponse, error) {
	page.DefaultPage()
	list, err := uc.repo.List(ctx, search, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toProductResponse(p))
	}
	return &dto.ProductListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	return &dto.ProductResponse{
		Code:         p.Code,
		Name:         p.Name,
		UnitType:     p.UnitType,
		RegularPrice: p.RegularPrice,
		ClubPrice:    p.ClubPrice,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}

// ReasonUseCase consulta del catálogo de motivos.
type ReasonUseCase struct {
	repo repository.ReasonRepository
}

// NewReasonUseCase construye el caso de uso.
func NewReasonUseCase(repo repository.ReasonRepository) *ReasonUseCase {
	return &ReasonUseCase{repo: repo}
}

// ListActive devuelve los motivos activos ordenados por código.
func (uc *ReasonUseCase) ListActive(ctx context.Context) ([]dto.ReasonResponse, error) {
	list, err := uc.repo.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ReasonResponse, 0, len(list))
	for _, r := range list {
		items = append(items, dto.ReasonResponse{
			ID:          r.ID,
			Code:        r.Code,
			Description: r.Description,
			IsActive:    r.IsActive,
		})
	}
	return items, nil
}
