//go:build integration

package e2e

// End-to-end tests against real Postgres + Redis via testcontainers.
// Run with: go test -tags integration ./tests/e2e/... -v

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"puntoventa/internal/config"
	"puntoventa/internal/infra"
	"puntoventa/internal/router"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcPostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	tcRedis "github.com/testcontainers/testcontainers-go/modules/redis"
	"golang.org/x/crypto/bcrypt"
)

// ── Helpers ──────────────────────────────────────────────────────────────────

func jsonBody(t *testing.T, v any) *bytes.Buffer {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return bytes.NewBuffer(b)
}

func do(t *testing.T, srv *httptest.Server, method, path string, body *bytes.Buffer, token string) *http.Response {
	t.Helper()
	var req *http.Request
	var err error
	if body != nil {
		req, err = http.NewRequest(method, srv.URL+path, body)
	} else {
		req, err = http.NewRequest(method, srv.URL+path, nil)
	}
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	return resp
}

func decodeJSON(t *testing.T, resp *http.Response, dest any) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(dest))
}

// ── Test Suite Setup ─────────────────────────────────────────────────────────

type testEnv struct {
	server *httptest.Server
	token  string // admin JWT
	engine *gin.Engine
}

func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()
	ctx := context.Background()

	pgC, err := tcPostgres.RunContainer(ctx,
		testcontainers.WithImage("postgres:15-alpine"),
		tcPostgres.WithDatabase("puntoventa_test"),
		tcPostgres.WithUsername("puntoventa"),
		tcPostgres.WithPassword("puntoventa"),
		tcPostgres.BasicWaitStrategies(),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = pgC.Terminate(ctx) })

	pgURL, err := pgC.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	rdC, err := tcRedis.RunContainer(ctx,
		testcontainers.WithImage("redis:7-alpine"),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = rdC.Terminate(ctx) })

	rdURL, err := rdC.ConnectionString(ctx)
	require.NoError(t, err)

	cfg := &config.Config{
		Port:               8000,
		Env:                "test",
		JWTSecret:          "test-secret-key",
		JWTExpirationHours: 8,
		JWTRefreshHours:    24,
		DatabaseURL:        pgURL,
		RedisURL:           rdURL,
		WorkerPoolSize:     1,
		PDFStoragePath:     t.TempDir(),
	}

	db, err := infra.NewDatabase(cfg.DatabaseURL)
	require.NoError(t, err)

	rdb, err := infra.NewRedis(cfg.RedisURL)
	require.NoError(t, err)

	// Seed admin user
	hash, err := bcrypt.GenerateFromPassword([]byte("1234"), bcrypt.MinCost)
	require.NoError(t, err)
	require.NoError(t, db.Exec(`INSERT INTO usuarios (id, username, nombre, password_hash, rol, activo, created_at)
		VALUES (gen_random_uuid(), 'admin', 'Admin E2E', ?, 'administrador', true, NOW())
		ON CONFLICT DO NOTHING`, string(hash)).Error)

	r := router.New(cfg, db, rdb)
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	loginResp := do(t, srv, "POST", "/v1/auth/login",
		jsonBody(t, map[string]string{"username": "admin", "password": "1234"}),
		"",
	)
	require.Equal(t, http.StatusOK, loginResp.StatusCode)
	var loginBody struct {
		AccessToken string `json:"access_token"`
	}
	decodeJSON(t, loginResp, &loginBody)
	require.NotEmpty(t, loginBody.AccessToken)

	return &testEnv{server: srv, token: loginBody.AccessToken, engine: r}
}

func crearProducto(t *testing.T, env *testEnv, nombre string, costo, precio float64, stock int) string {
	t.Helper()
	resp := do(t, env.server, "POST", "/v1/productos",
		jsonBody(t, map[string]any{
			"nombre":       nombre,
			"precio_costo": costo,
			"precio_venta": precio,
			"stock":        stock,
		}), env.token)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var lote struct {
		Productos []struct {
			ID     string `json:"id"`
			Codigo string `json:"codigo"`
		} `json:"productos"`
	}
	decodeJSON(t, resp, &lote)
	require.Len(t, lote.Productos, 1)
	return lote.Productos[0].ID
}

// ── Tests ────────────────────────────────────────────────────────────────────

func TestE2E_CicloCompletoDeVenta(t *testing.T) {
	env := setupTestEnv(t)

	prodID := crearProducto(t, env, "Gaseosa 500ml", 150, 250, 20)

	ventaResp := do(t, env.server, "POST", "/v1/ventas", jsonBody(t, map[string]any{
		"items": []map[string]any{
			{"producto_id": prodID, "cantidad": 3, "precio_unitario": 250.0},
		},
		"total":  750.0,
		"monto":  1000.0,
		"cambio": 250.0,
	}), env.token)
	require.Equal(t, http.StatusCreated, ventaResp.StatusCode)
	var venta struct {
		ID         string `json:"id"`
		Codigo     string `json:"codigo"`
		CostoVenta string `json:"costo_venta"`
		Ganancia   string `json:"ganancia"`
	}
	decodeJSON(t, ventaResp, &venta)
	assert.Equal(t, "V001", venta.Codigo)
	assert.Equal(t, "450", venta.CostoVenta)
	assert.Equal(t, "300", venta.Ganancia)

	// Stock decremented 20 - 3 = 17
	prodResp := do(t, env.server, "GET", "/v1/productos/"+prodID, nil, env.token)
	require.Equal(t, http.StatusOK, prodResp.StatusCode)
	var prod struct {
		Stock int `json:"stock"`
	}
	decodeJSON(t, prodResp, &prod)
	assert.Equal(t, 17, prod.Stock)

	// Listed newest-first within today's range
	hoy := time.Now().Format("2006-01-02")
	listResp := do(t, env.server, "GET", fmt.Sprintf("/v1/ventas?desde=%s&hasta=%s", hoy, hoy), nil, env.token)
	require.Equal(t, http.StatusOK, listResp.StatusCode)
	var list struct {
		Data  []struct{ Codigo string } `json:"data"`
		Total int64                     `json:"total"`
	}
	decodeJSON(t, listResp, &list)
	require.Equal(t, int64(1), list.Total)
	assert.Equal(t, "V001", list.Data[0].Codigo)
}

func TestE2E_StockInsuficienteSinEscrituras(t *testing.T) {
	env := setupTestEnv(t)

	prodID := crearProducto(t, env, "Vino 750ml", 500, 900, 2)

	ventaResp := do(t, env.server, "POST", "/v1/ventas", jsonBody(t, map[string]any{
		"items": []map[string]any{
			{"producto_id": prodID, "cantidad": 5, "precio_unitario": 900.0},
		},
		"total": 4500.0,
		"monto": 4500.0,
	}), env.token)
	require.Equal(t, http.StatusBadRequest, ventaResp.StatusCode)
	ventaResp.Body.Close()

	// Stock untouched
	prodResp := do(t, env.server, "GET", "/v1/productos/"+prodID, nil, env.token)
	var prod struct {
		Stock int `json:"stock"`
	}
	decodeJSON(t, prodResp, &prod)
	assert.Equal(t, 2, prod.Stock)

	// No sale recorded
	listResp := do(t, env.server, "GET", "/v1/ventas", nil, env.token)
	var list struct {
		Total int64 `json:"total"`
	}
	decodeJSON(t, listResp, &list)
	assert.Equal(t, int64(0), list.Total)
}

func TestE2E_LoteCSVConOmitidos(t *testing.T) {
	env := setupTestEnv(t)

	resp := do(t, env.server, "POST", "/v1/productos", jsonBody(t, []map[string]any{
		{"nombre": "Uno"},
		{"nombre": ""},
		{"nombre": "Dos", "categoria": "Almacen"},
	}), env.token)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var lote struct {
		TotalAgregados int `json:"total_agregados"`
		TotalOmitidos  int `json:"total_omitidos"`
		Productos      []struct {
			Codigo    string `json:"codigo"`
			Categoria string `json:"categoria"`
		} `json:"productos"`
	}
	decodeJSON(t, resp, &lote)
	assert.Equal(t, 2, lote.TotalAgregados)
	assert.Equal(t, 1, lote.TotalOmitidos)
	assert.Equal(t, "P001", lote.Productos[0].Codigo)
	assert.Equal(t, "Sin Categoría", lote.Productos[0].Categoria)
	assert.Equal(t, "P002", lote.Productos[1].Codigo)
	assert.Equal(t, "Almacen", lote.Productos[1].Categoria)
}

func TestE2E_ProductoEliminadoEnVentaHistorica(t *testing.T) {
	env := setupTestEnv(t)

	prodID := crearProducto(t, env, "Descatalogado", 10, 20, 5)

	ventaResp := do(t, env.server, "POST", "/v1/ventas", jsonBody(t, map[string]any{
		"items": []map[string]any{
			{"producto_id": prodID, "cantidad": 1, "precio_unitario": 20.0},
		},
		"total": 20.0,
		"monto": 20.0,
	}), env.token)
	require.Equal(t, http.StatusCreated, ventaResp.StatusCode)
	var venta struct {
		ID string `json:"id"`
	}
	decodeJSON(t, ventaResp, &venta)

	delResp := do(t, env.server, "DELETE", "/v1/productos/"+prodID, nil, env.token)
	require.Equal(t, http.StatusNoContent, delResp.StatusCode)
	delResp.Body.Close()

	getResp := do(t, env.server, "GET", "/v1/ventas/"+venta.ID, nil, env.token)
	require.Equal(t, http.StatusOK, getResp.StatusCode)
	var detalle struct {
		Items []struct {
			ProductoNombre string `json:"producto_nombre"`
			ProductoCodigo string `json:"producto_codigo"`
		} `json:"items"`
	}
	decodeJSON(t, getResp, &detalle)
	require.Len(t, detalle.Items, 1)
	assert.Equal(t, "Producto eliminado", detalle.Items[0].ProductoNombre)
	assert.Equal(t, "-", detalle.Items[0].ProductoCodigo)
}

func TestE2E_DashboardTotales(t *testing.T) {
	env := setupTestEnv(t)

	crearProducto(t, env, "Con stock", 10, 20, 50)
	prodBajo := crearProducto(t, env, "Stock bajo", 10, 20, 1)
	_ = prodBajo

	resp := do(t, env.server, "GET", "/v1/dashboard/totales", nil, env.token)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var totales struct {
		TotalProductos     int64 `json:"total_productos"`
		ProductosStockBajo int64 `json:"productos_stock_bajo"`
	}
	decodeJSON(t, resp, &totales)
	assert.Equal(t, int64(2), totales.TotalProductos)
	// "Stock bajo" was created with stock 1 < default minimum 10
	assert.Equal(t, int64(1), totales.ProductosStockBajo)
}
