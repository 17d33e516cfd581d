package service

import (
	"context"
	"errors"
	"sort"
	"time"

	"puntoventa/internal/apierror"
	"puntoventa/internal/codigo"
	"puntoventa/internal/dto"
	"puntoventa/internal/model"
	"puntoventa/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ProductoService defines the business logic contract for products.
type ProductoService interface {
	// CrearLote accepts one or many products in a single call (the CSV import
	// path sends hundreds). Entries without a name are skipped, not fatal.
	CrearLote(ctx context.Context, reqs []dto.CrearProductoRequest) (*dto.CrearLoteResponse, error)
	ObtenerPorID(ctx context.Context, id uuid.UUID) (*dto.ProductoResponse, error)
	Listar(ctx context.Context) ([]dto.ProductoResponse, error)
	Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarProductoRequest) (*dto.ProductoResponse, error)
	Eliminar(ctx context.Context, id uuid.UUID) error
}

type productoService struct {
	repo repository.ProductoRepository
}

func NewProductoService(repo repository.ProductoRepository) ProductoService {
	return &productoService{repo: repo}
}

func (s *productoService) CrearLote(ctx context.Context, reqs []dto.CrearProductoRequest) (*dto.CrearLoteResponse, error) {
	validos := make([]dto.CrearProductoRequest, 0, len(reqs))
	omitidos := 0
	for _, r := range reqs {
		// Blank CSV lines arrive as entries without a name.
		if r.Nombre == "" {
			omitidos++
			continue
		}
		validos = append(validos, r)
	}
	if len(validos) == 0 {
		return nil, apierror.Invalidf("no se encontró ningún producto válido para agregar")
	}

	creados := make([]*model.Producto, 0, len(validos))
	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		// One code scan for the whole batch, under the allocator lock.
		codigos, err := s.repo.CodigosTx(ctx, tx)
		if err != nil {
			return apierror.Storage("asignación de código de producto", err)
		}
		for _, r := range validos {
			cod := codigo.Siguiente("P", codigos)
			codigos = append(codigos, cod)

			p := &model.Producto{
				Codigo:      cod,
				Nombre:      r.Nombre,
				Categoria:   model.CategoriaSinAsignar,
				PrecioVenta: decimal.Zero,
				PrecioCosto: decimal.Zero,
				StockMinimo: 10,
				CreatedAt:   time.Now(),
			}
			if r.Categoria != "" {
				p.Categoria = r.Categoria
			}
			if r.PrecioVenta != nil {
				p.PrecioVenta = *r.PrecioVenta
			}
			if r.PrecioCosto != nil {
				p.PrecioCosto = *r.PrecioCosto
			}
			if r.Stock != nil {
				p.StockActual = *r.Stock
			}
			if r.StockMinimo != nil {
				p.StockMinimo = *r.StockMinimo
			}
			if err := s.repo.CreateTx(ctx, tx, p); err != nil {
				return apierror.Storage("creación de producto", err)
			}
			creados = append(creados, p)
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	resp := &dto.CrearLoteResponse{
		Mensaje:        "Productos agregados correctamente",
		TotalAgregados: len(creados),
		TotalOmitidos:  omitidos,
		Productos:      make([]dto.ProductoResponse, 0, len(creados)),
	}
	for _, p := range creados {
		resp.Productos = append(resp.Productos, *productoToResponse(p))
	}
	return resp, nil
}

func (s *productoService) ObtenerPorID(ctx context.Context, id uuid.UUID) (*dto.ProductoResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.NotFound("producto", id.String())
		}
		return nil, apierror.Storage("consulta de producto", err)
	}
	return productoToResponse(p), nil
}

// Listar returns the full catalog ordered by code number, so P2 sorts before
// P10 even though a plain ORDER BY codigo would sort them as text.
func (s *productoService) Listar(ctx context.Context) ([]dto.ProductoResponse, error) {
	productos, err := s.repo.List(ctx)
	if err != nil {
		return nil, apierror.Storage("listado de productos", err)
	}
	sort.SliceStable(productos, func(i, j int) bool {
		ni, _ := codigo.Numero(productos[i].Codigo)
		nj, _ := codigo.Numero(productos[j].Codigo)
		return ni < nj
	})
	resp := make([]dto.ProductoResponse, 0, len(productos))
	for i := range productos {
		resp = append(resp, *productoToResponse(&productos[i]))
	}
	return resp, nil
}

func (s *productoService) Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarProductoRequest) (*dto.ProductoResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.NotFound("producto", id.String())
		}
		return nil, apierror.Storage("consulta de producto", err)
	}

	if req.Nombre != nil {
		p.Nombre = *req.Nombre
	}
	if req.Categoria != nil {
		p.Categoria = *req.Categoria
	}
	if req.PrecioVenta != nil {
		if req.PrecioVenta.IsNegative() {
			return nil, apierror.Invalidf("precio_venta no puede ser negativo")
		}
		p.PrecioVenta = *req.PrecioVenta
	}
	if req.PrecioCosto != nil {
		if req.PrecioCosto.IsNegative() {
			return nil, apierror.Invalidf("precio_costo no puede ser negativo")
		}
		p.PrecioCosto = *req.PrecioCosto
	}
	if req.Stock != nil {
		if *req.Stock < 0 {
			return nil, apierror.Invalidf("stock no puede ser negativo")
		}
		p.StockActual = *req.Stock
	}
	if req.StockMinimo != nil {
		p.StockMinimo = *req.StockMinimo
	}

	if err := s.repo.Update(ctx, p); err != nil {
		return nil, apierror.Storage("actualización de producto", err)
	}
	return productoToResponse(p), nil
}

func (s *productoService) Eliminar(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apierror.NotFound("producto", id.String())
		}
		return apierror.Storage("eliminación de producto", err)
	}
	return nil
}

func productoToResponse(p *model.Producto) *dto.ProductoResponse {
	return &dto.ProductoResponse{
		ID:          p.ID.String(),
		Codigo:      p.Codigo,
		Nombre:      p.Nombre,
		Categoria:   p.Categoria,
		PrecioVenta: p.PrecioVenta,
		PrecioCosto: p.PrecioCosto,
		Stock:       p.StockActual,
		StockMinimo: p.StockMinimo,
		CreadoEn:    p.CreatedAt.Format(time.RFC3339),
	}
}
