package handler

import (
	"errors"
	"net/http"

	"puntoventa/internal/apierror"
	"puntoventa/internal/dto"
	"puntoventa/internal/infra"
	"puntoventa/internal/repository"
	"puntoventa/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type VentasHandler struct {
	svc     service.VentaService
	repo    repository.VentaRepository
	pdfPath string
}

func NewVentasHandler(svc service.VentaService, repo repository.VentaRepository, pdfPath string) *VentasHandler {
	return &VentasHandler{svc: svc, repo: repo, pdfPath: pdfPath}
}

// RegistrarVenta godoc
// @Summary      Registrar una nueva venta
// @Description  Valida el carrito completo, descuenta stock de forma atómica y asigna el código V###. Sin escrituras parciales: cualquier falla deja el inventario intacto.
// @Tags         ventas
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.RegistrarVentaRequest true "Detalle de la venta"
// @Success      201  {object} dto.VentaResponse
// @Failure      400  {object} apierror.APIError
// @Failure      404  {object} apierror.APIError
// @Router       /v1/ventas [post]
func (h *VentasHandler) RegistrarVenta(c *gin.Context) {
	var req dto.RegistrarVentaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.RegistrarVenta(c.Request.Context(), req)
	if err != nil {
		writeErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// ListarVentas godoc
// @Summary      Listar ventas
// @Description  Lista paginada, más recientes primero. desde/hasta (YYYY-MM-DD) acotan por fecha: desde inclusivo, hasta incluye el día completo.
// @Tags         ventas
// @Produce      json
// @Security     BearerAuth
// @Param        desde query string false "Fecha YYYY-MM-DD"
// @Param        hasta query string false "Fecha YYYY-MM-DD"
// @Param        page  query int    false "Página (default 1)"
// @Param        limit query int    false "Registros por página (default 50, max 200)"
// @Success      200   {object} dto.VentaListResponse
// @Failure      400   {object} apierror.APIError
// @Router       /v1/ventas [get]
func (h *VentasHandler) ListarVentas(c *gin.Context) {
	var filter dto.VentaFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	resp, err := h.svc.ListVentas(c.Request.Context(), filter)
	if err != nil {
		writeErr(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ObtenerVenta godoc
// @Summary  Obtener venta por ID
// @Tags     ventas
// @Produce  json
// @Security BearerAuth
// @Param    id path string true "UUID de la venta"
// @Success  200 {object} dto.VentaResponse
// @Failure  404 {object} apierror.APIError
// @Router   /v1/ventas/{id} [get]
func (h *VentasHandler) ObtenerVenta(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	resp, err := h.svc.ObtenerVenta(c.Request.Context(), id)
	if err != nil {
		writeErr(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// DescargarTicket godoc
// @Summary  Descargar ticket PDF de una venta
// @Tags     ventas
// @Produce  application/pdf
// @Security BearerAuth
// @Param    id path string true "UUID de la venta"
// @Success  200 {file} file
// @Failure  404 {object} apierror.APIError
// @Router   /v1/ventas/{id}/ticket [get]
func (h *VentasHandler) DescargarTicket(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	venta, err := h.repo.FindByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			writeErr(c, apierror.NotFound("venta", id.String()))
			return
		}
		writeErr(c, apierror.Storage("consulta de venta", err))
		return
	}
	path, err := infra.GenerateTicketPDF(venta, h.pdfPath)
	if err != nil {
		writeErr(c, apierror.Storage("generación de ticket", err))
		return
	}
	c.FileAttachment(path, "ticket_"+venta.Codigo+".pdf")
}
