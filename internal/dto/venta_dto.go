package dto

import "github.com/shopspring/decimal"

// ─── Filter / List ──────────────────────────────────────────────────────────

// VentaFilter is bound from the query string of GET /v1/ventas.
// Desde/Hasta are YYYY-MM-DD; the range is inclusive of the start of Desde's
// day and exclusive of the start of the day after Hasta.
type VentaFilter struct {
	Desde string `form:"desde"`
	Hasta string `form:"hasta"`
	Page  int    `form:"page,default=1"   binding:"omitempty,min=1"`
	Limit int    `form:"limit,default=50" binding:"omitempty,min=1,max=200"`
}

type VentaListResponse struct {
	Data  []VentaResponse `json:"data"`
	Total int64           `json:"total"`
	Page  int             `json:"page"`
	Limit int             `json:"limit"`
}

// ─── Request DTOs ────────────────────────────────────────────────────────────

type ItemVentaRequest struct {
	ProductoID     string          `json:"producto_id"     validate:"required,uuid"`
	Cantidad       int             `json:"cantidad"        validate:"required,min=1"`
	PrecioUnitario decimal.Decimal `json:"precio_unitario" validate:"required"`
}

type RegistrarVentaRequest struct {
	Items []ItemVentaRequest `json:"items" validate:"required,min=1,dive"`
	// Total is taken as declared; it is not checked against the item subtotals.
	Total  decimal.Decimal `json:"total" validate:"required"`
	Monto  decimal.Decimal `json:"monto" validate:"required"` // amount tendered
	Cambio decimal.Decimal `json:"cambio"`
	Nota   string          `json:"nota"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

// ItemVentaResponse renders one line of a sale. ProductoNombre and
// ProductoCodigo fall back to "Producto eliminado" / "-" when the referenced
// product no longer exists.
type ItemVentaResponse struct {
	ProductoID     string          `json:"producto_id"`
	ProductoNombre string          `json:"producto_nombre"`
	ProductoCodigo string          `json:"producto_codigo"`
	Cantidad       int             `json:"cantidad"`
	PrecioUnitario decimal.Decimal `json:"precio_unitario"`
	Subtotal       decimal.Decimal `json:"subtotal"`
	CostoUnitario  decimal.Decimal `json:"costo_unitario"`
}

type VentaResponse struct {
	ID         string              `json:"id"`
	Codigo     string              `json:"codigo"`
	Items      []ItemVentaResponse `json:"items"`
	Total      decimal.Decimal     `json:"total"`
	Monto      decimal.Decimal     `json:"monto"`
	Cambio     decimal.Decimal     `json:"cambio"`
	Nota       string              `json:"nota"`
	CostoVenta decimal.Decimal     `json:"costo_venta"`
	Ganancia   decimal.Decimal     `json:"ganancia"`
	CreatedAt  string              `json:"created_at"`
}
