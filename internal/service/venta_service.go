package service

import (
	"context"
	"errors"
	"time"

	"puntoventa/internal/apierror"
	"puntoventa/internal/dto"
	"puntoventa/internal/model"
	"puntoventa/internal/repository"
	"puntoventa/internal/worker"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type VentaService interface {
	RegistrarVenta(ctx context.Context, req dto.RegistrarVentaRequest) (*dto.VentaResponse, error)
	ObtenerVenta(ctx context.Context, id uuid.UUID) (*dto.VentaResponse, error)
	ListVentas(ctx context.Context, filter dto.VentaFilter) (*dto.VentaListResponse, error)
}

type ventaService struct {
	repo         repository.VentaRepository
	productoRepo repository.ProductoRepository
	dispatcher   *worker.Dispatcher
}

func NewVentaService(
	repo repository.VentaRepository,
	productoRepo repository.ProductoRepository,
	dispatcher *worker.Dispatcher,
) VentaService {
	return &ventaService{repo: repo, productoRepo: productoRepo, dispatcher: dispatcher}
}

// runTx executes fn inside a GORM transaction when db is available,
// or calls fn(nil) directly when db is nil (unit test mode).
func runTx(ctx context.Context, db *gorm.DB, fn func(tx *gorm.DB) error) error {
	if db == nil {
		return fn(nil)
	}
	return db.WithContext(ctx).Transaction(fn)
}

// ── RegistrarVenta ────────────────────────────────────────────────────────────
// The whole cart is validated before anything is written:
//   1. Per line, in input order: well-formed fields, product exists, stock
//      suffices. First failure aborts with zero writes.
//   2. Per line: snapshot unit cost, accumulate cost-of-goods and subtotal.
//   3. BEGIN TX: conditional stock decrements, V### code allocation, one
//      venta row with its items. All or nothing.
//   4. COMMIT, then (async, best-effort) low-stock alert jobs.
//
// Total is recorded as declared by the caller; it is never reconciled against
// the sum of line subtotals, so register-side discounts and rounding pass
// through untouched.

func (s *ventaService) RegistrarVenta(ctx context.Context, req dto.RegistrarVentaRequest) (*dto.VentaResponse, error) {
	if len(req.Items) == 0 {
		return nil, apierror.Invalidf("la venta debe incluir al menos un item")
	}

	type lineaResuelta struct {
		producto      *model.Producto
		cantidad      int
		precio        decimal.Decimal
		subtotal      decimal.Decimal
		costoUnitario decimal.Decimal
	}

	resueltas := make([]lineaResuelta, 0, len(req.Items))
	costoTotal := decimal.Zero

	for i, item := range req.Items {
		pid, err := uuid.Parse(item.ProductoID)
		if err != nil {
			return nil, apierror.Invalidf("item %d: producto_id inválido", i+1)
		}
		if item.Cantidad <= 0 {
			return nil, apierror.Invalidf("item %d: la cantidad debe ser mayor a 0", i+1)
		}
		if !item.PrecioUnitario.IsPositive() {
			return nil, apierror.Invalidf("item %d: el precio unitario debe ser mayor a 0", i+1)
		}

		p, err := s.productoRepo.FindByID(ctx, pid)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, apierror.NotFound("producto", item.ProductoID)
			}
			return nil, apierror.Storage("consulta de producto", err)
		}
		if p.StockActual < item.Cantidad {
			return nil, &apierror.StockInsuficienteError{
				ProductoID: item.ProductoID,
				Disponible: p.StockActual,
				Solicitado: item.Cantidad,
			}
		}

		cant := decimal.NewFromInt(int64(item.Cantidad))
		costoTotal = costoTotal.Add(p.PrecioCosto.Mul(cant))
		resueltas = append(resueltas, lineaResuelta{
			producto:      p,
			cantidad:      item.Cantidad,
			precio:        item.PrecioUnitario,
			subtotal:      item.PrecioUnitario.Mul(cant),
			costoUnitario: p.PrecioCosto,
		})
	}

	var venta model.Venta
	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		// Conditional decrements. A failed guard here means another sale won
		// the race since the pre-flight check; the transaction rolls back and
		// no line keeps its decrement.
		for _, l := range resueltas {
			ok, err := s.productoRepo.DescontarStockTx(ctx, tx, l.producto.ID, l.cantidad)
			if err != nil {
				return apierror.Storage("descuento de stock", err)
			}
			if !ok {
				// The pre-flight read is stale by now; report the stock as
				// it stands, not the value the loser of the race saw.
				disponible := l.producto.StockActual
				if actual, ferr := s.productoRepo.FindByID(ctx, l.producto.ID); ferr == nil {
					disponible = actual.StockActual
				}
				return &apierror.StockInsuficienteError{
					ProductoID: l.producto.ID.String(),
					Disponible: disponible,
					Solicitado: l.cantidad,
				}
			}
		}

		cod, err := s.repo.NextCodigoTx(ctx, tx)
		if err != nil {
			return apierror.Storage("asignación de código de venta", err)
		}

		venta = model.Venta{
			Codigo:     cod,
			Total:      req.Total,
			Monto:      req.Monto,
			Cambio:     req.Cambio,
			Nota:       req.Nota,
			CostoVenta: costoTotal,
			Ganancia:   req.Total.Sub(costoTotal),
			CreatedAt:  time.Now(),
		}
		for _, l := range resueltas {
			venta.Items = append(venta.Items, model.VentaItem{
				ProductoID:     l.producto.ID,
				Cantidad:       l.cantidad,
				PrecioUnitario: l.precio,
				Subtotal:       l.subtotal,
				CostoUnitario:  l.costoUnitario,
			})
		}
		if err := s.repo.Create(ctx, tx, &venta); err != nil {
			return apierror.Storage("registro de venta", err)
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	// Low-stock alerts are fire and forget, never affecting the committed sale.
	if s.dispatcher != nil {
		for _, l := range resueltas {
			restante := l.producto.StockActual - l.cantidad
			if restante < l.producto.StockMinimo {
				_ = s.dispatcher.EnqueueAlertaStock(ctx, worker.AlertaStockPayload{
					ProductoID: l.producto.ID.String(),
					Codigo:     l.producto.Codigo,
					Nombre:     l.producto.Nombre,
					Stock:      restante,
					Minimo:     l.producto.StockMinimo,
				})
			}
		}
	}

	// The freshly created items carry no preloaded associations; attach the
	// products resolved during validation before rendering.
	for i := range venta.Items {
		venta.Items[i].Producto = resueltas[i].producto
	}
	return renderVenta(&venta), nil
}

func (s *ventaService) ObtenerVenta(ctx context.Context, id uuid.UUID) (*dto.VentaResponse, error) {
	v, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.NotFound("venta", id.String())
		}
		return nil, apierror.Storage("consulta de venta", err)
	}
	return renderVenta(v), nil
}

// ListVentas returns a paginated list of sales, newest first, optionally
// narrowed to a date range: desde is inclusive from the start of its day,
// hasta exclusive from the start of the following day.
func (s *ventaService) ListVentas(ctx context.Context, filter dto.VentaFilter) (*dto.VentaListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 50
	}

	var desde, hasta *time.Time
	if filter.Desde != "" {
		t, err := time.ParseInLocation("2006-01-02", filter.Desde, time.Local)
		if err != nil {
			return nil, apierror.Invalidf("desde: fecha inválida, se espera YYYY-MM-DD")
		}
		desde = &t
	}
	if filter.Hasta != "" {
		t, err := time.ParseInLocation("2006-01-02", filter.Hasta, time.Local)
		if err != nil {
			return nil, apierror.Invalidf("hasta: fecha inválida, se espera YYYY-MM-DD")
		}
		fin := t.AddDate(0, 0, 1)
		hasta = &fin
	}

	ventas, total, err := s.repo.List(ctx, desde, hasta, filter.Page, filter.Limit)
	if err != nil {
		return nil, apierror.Storage("listado de ventas", err)
	}

	items := make([]dto.VentaResponse, 0, len(ventas))
	for i := range ventas {
		items = append(items, *renderVenta(&ventas[i]))
	}
	return &dto.VentaListResponse{
		Data:  items,
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}, nil
}

// renderVenta is the single place where schema drift across sale revisions is
// absorbed: Ganancia is recomputed as Total - CostoVenta (records that predate
// the cost fields read as cost 0), rounded to 2 decimals, and items whose
// product was deleted render a placeholder instead of failing.
func renderVenta(v *model.Venta) *dto.VentaResponse {
	items := make([]dto.ItemVentaResponse, 0, len(v.Items))
	for _, item := range v.Items {
		nombre, cod := "Producto eliminado", "-"
		if item.Producto != nil {
			nombre, cod = item.Producto.Nombre, item.Producto.Codigo
		}
		items = append(items, dto.ItemVentaResponse{
			ProductoID:     item.ProductoID.String(),
			ProductoNombre: nombre,
			ProductoCodigo: cod,
			Cantidad:       item.Cantidad,
			PrecioUnitario: item.PrecioUnitario,
			Subtotal:       item.Subtotal,
			CostoUnitario:  item.CostoUnitario,
		})
	}
	return &dto.VentaResponse{
		ID:         v.ID.String(),
		Codigo:     v.Codigo,
		Items:      items,
		Total:      v.Total,
		Monto:      v.Monto,
		Cambio:     v.Cambio,
		Nota:       v.Nota,
		CostoVenta: v.CostoVenta.Round(2),
		Ganancia:   v.Total.Sub(v.CostoVenta).Round(2),
		CreatedAt:  v.CreatedAt.Format(time.RFC3339),
	}
}
