package service_test

import (
	"context"
	"testing"
	"time"

	"puntoventa/internal/model"
	"puntoventa/internal/service"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDashboardTotales(t *testing.T) {
	productoRepo := newStubProductoRepo()
	ventaRepo := newStubVentaRepo()
	svc := service.NewDashboardService(productoRepo, ventaRepo, nil)

	seedProducto(productoRepo, "Bien surtido", 10, 20, 50, 5)
	seedProducto(productoRepo, "Casi agotado", 10, 20, 2, 10)
	seedProducto(productoRepo, "Agotado", 10, 20, 0, 5)

	// One sale inside the 7-day window, one outside.
	require.NoError(t, ventaRepo.Create(context.Background(), nil, &model.Venta{
		ID: uuid.New(), Codigo: "V001",
		Total: decimal.NewFromFloat(100), Monto: decimal.NewFromFloat(100),
		CreatedAt: time.Now().AddDate(0, 0, -2),
	}))
	require.NoError(t, ventaRepo.Create(context.Background(), nil, &model.Venta{
		ID: uuid.New(), Codigo: "V002",
		Total: decimal.NewFromFloat(300), Monto: decimal.NewFromFloat(300),
		CreatedAt: time.Now().AddDate(0, 0, -30),
	}))

	resp, err := svc.Totales(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(3), resp.TotalProductos)
	assert.Equal(t, int64(2), resp.ProductosStockBajo)
	assert.Equal(t, "100", resp.VentasUltimos7Dias.String())
}
