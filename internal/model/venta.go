package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Venta is an immutable sale record. There is no update path: once committed,
// a venta is only ever read.
//
// Ganancia is stored for convenience but recomputed as Total - CostoVenta on
// every read, because records written before the cost fields existed carry a
// zero CostoVenta.
type Venta struct {
	ID     uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Codigo string    `gorm:"uniqueIndex;not null"`
	// Total is the amount charged as declared by the caller. It is NOT
	// reconciled against the sum of item subtotals — discounts and rounding
	// at the register are allowed.
	Total      decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Monto      decimal.Decimal `gorm:"type:decimal(12,2);not null"` // amount tendered
	Cambio     decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	Nota       string
	CostoVenta decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	Ganancia   decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	CreatedAt  time.Time       `gorm:"index"`

	Items []VentaItem `gorm:"foreignKey:VentaID"`
}

func (Venta) TableName() string { return "ventas" }

// VentaItem is one cart line. CostoUnitario snapshots the product's purchase
// cost at sale time, so later cost edits never rewrite historical margins.
type VentaItem struct {
	ID             uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	VentaID        uuid.UUID       `gorm:"type:uuid;index;not null"`
	ProductoID     uuid.UUID       `gorm:"type:uuid;index;not null"`
	Cantidad       int             `gorm:"not null"`
	PrecioUnitario decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Subtotal       decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	CostoUnitario  decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`

	// Producto may be nil when the referenced product was deleted after the
	// sale; the read path renders a placeholder instead of failing.
	Producto *Producto `gorm:"foreignKey:ProductoID"`
}

func (VentaItem) TableName() string { return "venta_items" }
