package service_test

import (
	"context"
	"time"

	"puntoventa/internal/codigo"
	"puntoventa/internal/model"
	"puntoventa/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ── Stubs ─────────────────────────────────────────────────────────────────────
// In-memory repositories. DB() returns nil so services run their transaction
// bodies directly, without GORM.

type stubProductoRepo struct {
	productos map[uuid.UUID]*model.Producto
}

func newStubProductoRepo() *stubProductoRepo {
	return &stubProductoRepo{productos: make(map[uuid.UUID]*model.Producto)}
}

func (r *stubProductoRepo) CreateTx(_ context.Context, _ *gorm.DB, p *model.Producto) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	r.productos[p.ID] = p
	return nil
}

// FindByID returns a copy: a later UPDATE must not mutate snapshots the caller
// already holds, same as reading a row into a fresh struct.
func (r *stubProductoRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Producto, error) {
	p, ok := r.productos[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *p
	return &cp, nil
}

func (r *stubProductoRepo) List(_ context.Context) ([]model.Producto, error) {
	out := make([]model.Producto, 0, len(r.productos))
	for _, p := range r.productos {
		out = append(out, *p)
	}
	return out, nil
}

func (r *stubProductoRepo) Update(_ context.Context, p *model.Producto) error {
	if _, ok := r.productos[p.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	cp := *p
	r.productos[p.ID] = &cp
	return nil
}

func (r *stubProductoRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := r.productos[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(r.productos, id)
	return nil
}

func (r *stubProductoRepo) CodigosTx(_ context.Context, _ *gorm.DB) ([]string, error) {
	codigos := make([]string, 0, len(r.productos))
	for _, p := range r.productos {
		codigos = append(codigos, p.Codigo)
	}
	return codigos, nil
}

func (r *stubProductoRepo) DescontarStockTx(_ context.Context, _ *gorm.DB, id uuid.UUID, cantidad int) (bool, error) {
	p, ok := r.productos[id]
	if !ok || p.StockActual < cantidad {
		return false, nil
	}
	p.StockActual -= cantidad
	return true, nil
}

func (r *stubProductoRepo) Count(_ context.Context) (int64, error) {
	return int64(len(r.productos)), nil
}

func (r *stubProductoRepo) CountStockBajo(_ context.Context) (int64, error) {
	var n int64
	for _, p := range r.productos {
		if p.StockActual < p.StockMinimo {
			n++
		}
	}
	return n, nil
}

func (r *stubProductoRepo) DB() *gorm.DB { return nil }

var _ repository.ProductoRepository = (*stubProductoRepo)(nil)

// seedProducto registers a product directly in the stub.
func seedProducto(r *stubProductoRepo, nombre string, costo, precio float64, stock, minimo int) *model.Producto {
	p := &model.Producto{
		ID:          uuid.New(),
		Codigo:      codigo.Siguiente("P", mustCodigos(r)),
		Nombre:      nombre,
		Categoria:   model.CategoriaSinAsignar,
		PrecioCosto: decimal.NewFromFloat(costo),
		PrecioVenta: decimal.NewFromFloat(precio),
		StockActual: stock,
		StockMinimo: minimo,
		CreatedAt:   time.Now(),
	}
	r.productos[p.ID] = p
	return p
}

func mustCodigos(r *stubProductoRepo) []string {
	codigos, _ := r.CodigosTx(context.Background(), nil)
	return codigos
}

type stubVentaRepo struct {
	ventas map[uuid.UUID]*model.Venta
	orden  []uuid.UUID
}

func newStubVentaRepo() *stubVentaRepo {
	return &stubVentaRepo{ventas: make(map[uuid.UUID]*model.Venta)}
}

func (r *stubVentaRepo) Create(_ context.Context, _ *gorm.DB, v *model.Venta) error {
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}
	r.ventas[v.ID] = v
	r.orden = append(r.orden, v.ID)
	return nil
}

func (r *stubVentaRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Venta, error) {
	v, ok := r.ventas[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return v, nil
}

func (r *stubVentaRepo) List(_ context.Context, desde, hasta *time.Time, page, limit int) ([]model.Venta, int64, error) {
	matched := make([]model.Venta, 0, len(r.orden))
	// newest first
	for i := len(r.orden) - 1; i >= 0; i-- {
		v := r.ventas[r.orden[i]]
		if desde != nil && v.CreatedAt.Before(*desde) {
			continue
		}
		if hasta != nil && !v.CreatedAt.Before(*hasta) {
			continue
		}
		matched = append(matched, *v)
	}
	total := int64(len(matched))
	start := (page - 1) * limit
	if start >= len(matched) {
		return nil, total, nil
	}
	end := start + limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[start:end], total, nil
}

func (r *stubVentaRepo) NextCodigoTx(_ context.Context, _ *gorm.DB) (string, error) {
	codigos := make([]string, 0, len(r.ventas))
	for _, v := range r.ventas {
		codigos = append(codigos, v.Codigo)
	}
	return codigo.Siguiente("V", codigos), nil
}

func (r *stubVentaRepo) SumTotalDesde(_ context.Context, desde time.Time) (decimal.Decimal, error) {
	sum := decimal.Zero
	for _, v := range r.ventas {
		if !v.CreatedAt.Before(desde) {
			sum = sum.Add(v.Total)
		}
	}
	return sum, nil
}

func (r *stubVentaRepo) DB() *gorm.DB { return nil }

var _ repository.VentaRepository = (*stubVentaRepo)(nil)

// newLegacyVenta builds a record shaped like one written before the cost
// fields existed: CostoVenta and Ganancia read as zero.
func newLegacyVenta(t interface{ Helper() }) *model.Venta {
	t.Helper()
	return &model.Venta{
		ID:        uuid.New(),
		Codigo:    "V001",
		Total:     decimal.NewFromFloat(120),
		Monto:     decimal.NewFromFloat(120),
		CreatedAt: time.Now(),
	}
}
