package dto

import "github.com/shopspring/decimal"

// DashboardTotalesResponse is the aggregate card data for the admin dashboard:
// catalog size, products under their minimum stock, and revenue over the
// trailing seven days.
type DashboardTotalesResponse struct {
	TotalProductos     int64           `json:"total_productos"`
	ProductosStockBajo int64           `json:"productos_stock_bajo"`
	VentasUltimos7Dias decimal.Decimal `json:"ventas_ultimos_7_dias"`
}
