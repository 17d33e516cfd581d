package repository

import (
	"context"
	"time"

	"puntoventa/internal/codigo"
	"puntoventa/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type VentaRepository interface {
	Create(ctx context.Context, tx *gorm.DB, v *model.Venta) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Venta, error)
	// List returns sales newest-first. desde is inclusive, hasta exclusive;
	// either may be nil.
	List(ctx context.Context, desde, hasta *time.Time, page, limit int) ([]model.Venta, int64, error)
	// NextCodigoTx allocates the next V### code under the venta advisory lock.
	NextCodigoTx(ctx context.Context, tx *gorm.DB) (string, error)
	// SumTotalDesde sums Total over sales created at or after the given instant.
	SumTotalDesde(ctx context.Context, desde time.Time) (decimal.Decimal, error)
	DB() *gorm.DB // exposes the DB for transaction creation in the service layer
}

type ventaRepo struct{ db *gorm.DB }

func NewVentaRepository(db *gorm.DB) VentaRepository { return &ventaRepo{db: db} }

func (r *ventaRepo) DB() *gorm.DB { return r.db }

func (r *ventaRepo) Create(ctx context.Context, tx *gorm.DB, v *model.Venta) error {
	return tx.WithContext(ctx).Create(v).Error
}

func (r *ventaRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Venta, error) {
	var v model.Venta
	err := r.db.WithContext(ctx).Preload("Items.Producto").First(&v, id).Error
	return &v, err
}

func (r *ventaRepo) List(ctx context.Context, desde, hasta *time.Time, page, limit int) ([]model.Venta, int64, error) {
	var ventas []model.Venta
	var total int64

	q := r.db.WithContext(ctx).Model(&model.Venta{})
	if desde != nil {
		q = q.Where("created_at >= ?", *desde)
	}
	if hasta != nil {
		q = q.Where("created_at < ?", *hasta)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	err := q.Preload("Items.Producto").
		Order("created_at DESC").
		Offset(offset).Limit(limit).
		Find(&ventas).Error
	return ventas, total, err
}

func (r *ventaRepo) NextCodigoTx(ctx context.Context, tx *gorm.DB) (string, error) {
	// Same scan-max contract as product codes: highest suffix + 1, gaps from
	// deleted revisions never reused. The advisory lock closes the
	// read-then-write race between concurrent sales.
	if err := tx.WithContext(ctx).Exec("SELECT pg_advisory_xact_lock(hashtext('codigo_venta'))").Error; err != nil {
		return "", err
	}
	var codigos []string
	if err := tx.WithContext(ctx).Model(&model.Venta{}).Pluck("codigo", &codigos).Error; err != nil {
		return "", err
	}
	return codigo.Siguiente("V", codigos), nil
}

func (r *ventaRepo) SumTotalDesde(ctx context.Context, desde time.Time) (decimal.Decimal, error) {
	var suma decimal.NullDecimal
	err := r.db.WithContext(ctx).Model(&model.Venta{}).
		Where("created_at >= ?", desde).
		Select("SUM(total)").Scan(&suma).Error
	if err != nil || !suma.Valid {
		return decimal.Zero, err
	}
	return suma.Decimal, nil
}
