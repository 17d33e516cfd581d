package repository

import (
	"context"

	"puntoventa/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ProductoRepository defines the data access contract for products.
// Services depend on this interface, not on the concrete GORM implementation,
// enabling clean unit testing via stubs.
type ProductoRepository interface {
	// CreateTx inserts a product inside an open transaction (code assignment
	// and insert must share the advisory lock scope).
	CreateTx(ctx context.Context, tx *gorm.DB, p *model.Producto) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Producto, error)
	List(ctx context.Context) ([]model.Producto, error)
	Update(ctx context.Context, p *model.Producto) error
	Delete(ctx context.Context, id uuid.UUID) error

	// CodigosTx returns every assigned product code, after serializing
	// concurrent allocators on a transaction-scoped advisory lock. Callers
	// feed the result to codigo.Siguiente.
	CodigosTx(ctx context.Context, tx *gorm.DB) ([]string, error)

	// DescontarStockTx conditionally decrements stock inside a transaction:
	// the UPDATE only applies when stock_actual >= cantidad, so two racing
	// sales cannot drive stock negative. Returns false when the guard failed.
	DescontarStockTx(ctx context.Context, tx *gorm.DB, id uuid.UUID, cantidad int) (bool, error)

	// Dashboard aggregates
	Count(ctx context.Context) (int64, error)
	CountStockBajo(ctx context.Context) (int64, error)

	// DB exposes the underlying *gorm.DB so services can open transactions.
	DB() *gorm.DB
}

type productoRepo struct{ db *gorm.DB }

func NewProductoRepository(db *gorm.DB) ProductoRepository { return &productoRepo{db: db} }

func (r *productoRepo) CreateTx(ctx context.Context, tx *gorm.DB, p *model.Producto) error {
	return tx.WithContext(ctx).Create(p).Error
}

func (r *productoRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Producto, error) {
	var p model.Producto
	err := r.db.WithContext(ctx).First(&p, id).Error
	return &p, err
}

func (r *productoRepo) List(ctx context.Context) ([]model.Producto, error) {
	var productos []model.Producto
	// Lexicographic ORDER BY codigo breaks past P999 (P1000 < P999 as text);
	// the service re-sorts by parsed number.
	err := r.db.WithContext(ctx).Order("codigo ASC").Find(&productos).Error
	return productos, err
}

func (r *productoRepo) Update(ctx context.Context, p *model.Producto) error {
	return r.db.WithContext(ctx).Save(p).Error
}

func (r *productoRepo) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Delete(&model.Producto{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *productoRepo) CodigosTx(ctx context.Context, tx *gorm.DB) ([]string, error) {
	// Serialize allocators for the lifetime of the surrounding transaction.
	// Without this, two concurrent scans observe the same max and mint the
	// same code.
	if err := tx.WithContext(ctx).Exec("SELECT pg_advisory_xact_lock(hashtext('codigo_producto'))").Error; err != nil {
		return nil, err
	}
	var codigos []string
	err := tx.WithContext(ctx).Model(&model.Producto{}).Pluck("codigo", &codigos).Error
	return codigos, err
}

func (r *productoRepo) DescontarStockTx(ctx context.Context, tx *gorm.DB, id uuid.UUID, cantidad int) (bool, error) {
	res := tx.WithContext(ctx).Model(&model.Producto{}).
		Where("id = ? AND stock_actual >= ?", id, cantidad).
		Update("stock_actual", gorm.Expr("stock_actual - ?", cantidad))
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *productoRepo) Count(ctx context.Context) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&model.Producto{}).Count(&total).Error
	return total, err
}

func (r *productoRepo) CountStockBajo(ctx context.Context) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&model.Producto{}).
		Where("stock_actual < stock_minimo").Count(&total).Error
	return total, err
}

func (r *productoRepo) DB() *gorm.DB { return r.db }
