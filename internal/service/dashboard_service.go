package service

import (
	"context"
	"encoding/json"
	"time"

	"puntoventa/internal/apierror"
	"puntoventa/internal/dto"
	"puntoventa/internal/repository"

	"github.com/redis/go-redis/v9"
)

const (
	dashboardCacheKey = "dashboard:totales"
	dashboardCacheTTL = 30 * time.Second
)

// DashboardService aggregates the admin dashboard cards: catalog size,
// low-stock count, and revenue over the trailing 7 days.
type DashboardService interface {
	Totales(ctx context.Context) (*dto.DashboardTotalesResponse, error)
}

type dashboardService struct {
	productoRepo repository.ProductoRepository
	ventaRepo    repository.VentaRepository
	rdb          *redis.Client
}

func NewDashboardService(productoRepo repository.ProductoRepository, ventaRepo repository.VentaRepository, rdb *redis.Client) DashboardService {
	return &dashboardService{productoRepo: productoRepo, ventaRepo: ventaRepo, rdb: rdb}
}

func (s *dashboardService) Totales(ctx context.Context) (*dto.DashboardTotalesResponse, error) {
	// The dashboard polls; the numbers tolerate 30s staleness.
	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, dashboardCacheKey).Bytes(); err == nil {
			var resp dto.DashboardTotalesResponse
			if json.Unmarshal(cached, &resp) == nil {
				return &resp, nil
			}
		}
	}

	totalProductos, err := s.productoRepo.Count(ctx)
	if err != nil {
		return nil, apierror.Storage("conteo de productos", err)
	}
	stockBajo, err := s.productoRepo.CountStockBajo(ctx)
	if err != nil {
		return nil, apierror.Storage("conteo de stock bajo", err)
	}
	hace7dias := time.Now().AddDate(0, 0, -7)
	ventas7d, err := s.ventaRepo.SumTotalDesde(ctx, hace7dias)
	if err != nil {
		return nil, apierror.Storage("suma de ventas", err)
	}

	resp := &dto.DashboardTotalesResponse{
		TotalProductos:     totalProductos,
		ProductosStockBajo: stockBajo,
		VentasUltimos7Dias: ventas7d,
	}

	// Best effort cache write.
	if s.rdb != nil {
		if b, err := json.Marshal(resp); err == nil {
			_ = s.rdb.Set(ctx, dashboardCacheKey, b, dashboardCacheTTL).Err()
		}
	}
	return resp, nil
}
