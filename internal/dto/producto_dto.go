package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

// CrearProductoRequest is one entry of a product creation batch. Precio,
// categoria and stock are optional: missing values default to 0 /
// "Sin Categoría" / 0 (CSV imports routinely omit them).
type CrearProductoRequest struct {
	Nombre      string           `json:"nombre"`
	Categoria   string           `json:"categoria"`
	PrecioVenta *decimal.Decimal `json:"precio_venta" validate:"omitempty,min=0"`
	PrecioCosto *decimal.Decimal `json:"precio_costo" validate:"omitempty,min=0"`
	Stock       *int             `json:"stock"        validate:"omitempty,min=0"`
	StockMinimo *int             `json:"stock_minimo" validate:"omitempty,min=0"`
}

type ActualizarProductoRequest struct {
	Nombre      *string          `json:"nombre"       validate:"omitempty,min=1,max=120"`
	Categoria   *string          `json:"categoria"`
	PrecioVenta *decimal.Decimal `json:"precio_venta" validate:"omitempty,min=0"`
	PrecioCosto *decimal.Decimal `json:"precio_costo" validate:"omitempty,min=0"`
	Stock       *int             `json:"stock"        validate:"omitempty,min=0"`
	StockMinimo *int             `json:"stock_minimo" validate:"omitempty,min=0"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type ProductoResponse struct {
	ID          string          `json:"id"`
	Codigo      string          `json:"codigo"`
	Nombre      string          `json:"nombre"`
	Categoria   string          `json:"categoria"`
	PrecioVenta decimal.Decimal `json:"precio_venta"`
	PrecioCosto decimal.Decimal `json:"precio_costo"`
	Stock       int             `json:"stock"`
	StockMinimo int             `json:"stock_minimo"`
	CreadoEn    string          `json:"creado_en"`
}

// CrearLoteResponse summarizes a batch creation: how many entries were saved,
// how many were skipped for missing a name, and the created products.
type CrearLoteResponse struct {
	Mensaje        string             `json:"mensaje"`
	TotalAgregados int                `json:"total_agregados"`
	TotalOmitidos  int                `json:"total_omitidos"`
	Productos      []ProductoResponse `json:"productos"`
}
