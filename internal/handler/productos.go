package handler

import (
	"encoding/json"
	"io"
	"net/http"

	"puntoventa/internal/apierror"
	"puntoventa/internal/dto"
	"puntoventa/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

type ProductosHandler struct{ svc service.ProductoService }

func NewProductosHandler(svc service.ProductoService) *ProductosHandler {
	return &ProductosHandler{svc: svc}
}

// Crear godoc
// @Summary      Crear productos
// @Description  Acepta un producto o un arreglo de productos en el mismo endpoint (la importación CSV envía cientos). Las entradas sin nombre se omiten.
// @Tags         productos
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body []dto.CrearProductoRequest true "Producto u arreglo de productos"
// @Success      201 {object} dto.CrearLoteResponse
// @Failure      400 {object} apierror.APIError
// @Router       /v1/productos [post]
func (h *ProductosHandler) Crear(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("no se pudo leer el cuerpo de la solicitud"))
		return
	}

	// The endpoint accepts a single object or an array. Try the array shape
	// first, then fall back to a one-element batch.
	var reqs []dto.CrearProductoRequest
	if err := json.Unmarshal(body, &reqs); err != nil {
		var single dto.CrearProductoRequest
		if err := json.Unmarshal(body, &single); err != nil {
			c.JSON(http.StatusBadRequest, apierror.New("JSON invalido: se espera un producto o un arreglo de productos"))
			return
		}
		reqs = []dto.CrearProductoRequest{single}
	}

	for i := range reqs {
		if err := validate.Struct(&reqs[i]); err != nil {
			fields := make(map[string]string)
			for _, fe := range err.(validator.ValidationErrors) {
				fields[fe.Field()] = fe.Tag()
			}
			c.JSON(http.StatusUnprocessableEntity, apierror.NewValidation(fields))
			return
		}
	}

	resp, err := h.svc.CrearLote(c.Request.Context(), reqs)
	if err != nil {
		writeErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Listar godoc
// @Summary  Listar productos
// @Tags     productos
// @Produce  json
// @Security BearerAuth
// @Success  200 {array} dto.ProductoResponse
// @Router   /v1/productos [get]
func (h *ProductosHandler) Listar(c *gin.Context) {
	resp, err := h.svc.Listar(c.Request.Context())
	if err != nil {
		writeErr(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ObtenerPorID godoc
// @Summary  Obtener producto por ID
// @Tags     productos
// @Produce  json
// @Security BearerAuth
// @Param    id path string true "UUID del producto"
// @Success  200 {object} dto.ProductoResponse
// @Failure  404 {object} apierror.APIError
// @Router   /v1/productos/{id} [get]
func (h *ProductosHandler) ObtenerPorID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	resp, err := h.svc.ObtenerPorID(c.Request.Context(), id)
	if err != nil {
		writeErr(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Actualizar godoc
// @Summary  Actualizar producto
// @Description Actualización parcial: solo los campos presentes en el cuerpo se modifican. El código no es editable.
// @Tags     productos
// @Accept   json
// @Produce  json
// @Security BearerAuth
// @Param    id   path string                        true "UUID del producto"
// @Param    body body dto.ActualizarProductoRequest true "Campos a actualizar"
// @Success  200 {object} dto.ProductoResponse
// @Failure  404 {object} apierror.APIError
// @Router   /v1/productos/{id} [put]
func (h *ProductosHandler) Actualizar(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	var req dto.ActualizarProductoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Actualizar(c.Request.Context(), id, req)
	if err != nil {
		writeErr(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Eliminar godoc
// @Summary  Eliminar producto
// @Description Borrado físico. Las ventas históricas que lo referencian siguen siendo legibles y muestran "Producto eliminado".
// @Tags     productos
// @Security BearerAuth
// @Param    id path string true "UUID del producto"
// @Success  204
// @Failure  404 {object} apierror.APIError
// @Router   /v1/productos/{id} [delete]
func (h *ProductosHandler) Eliminar(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	if err := h.svc.Eliminar(c.Request.Context(), id); err != nil {
		writeErr(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
