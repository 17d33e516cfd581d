package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CategoriaSinAsignar is the sentinel category for products created without one.
const CategoriaSinAsignar = "Sin Categoría"

// Producto is a catalog item. Codigo (P001, P002, …) is assigned once at
// creation and never reused, even after the product is deleted.
type Producto struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Codigo      string          `gorm:"uniqueIndex;not null"`
	Nombre      string          `gorm:"index;not null"`
	Categoria   string          `gorm:"not null;default:'Sin Categoría'"`
	PrecioVenta decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	PrecioCosto decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	// StockActual never goes negative — the conditional decrement in
	// ProductoRepository.DescontarStockTx enforces it at the row level.
	StockActual int `gorm:"not null;default:0"`
	StockMinimo int `gorm:"not null;default:10"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TableName overrides GORM's default pluralization for the Spanish name.
func (Producto) TableName() string { return "productos" }
