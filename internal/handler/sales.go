package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/mishellCastillorb/Punto-Venta/internal/apierror"
	"github.com/mishellCastillorb/Punto-Venta/internal/config"
	"github.com/mishellCastillorb/Punto-Venta/internal/dto"
	"github.com/mishellCastillorb/Punto-Venta/internal/infra"
	"github.com/mishellCastillorb/Punto-Venta/internal/service"
)

type SalesHandler struct {
	svc    service.CheckoutService
	mailer *infra.Mailer
	cfg    *config.Config
}

func NewSalesHandler(svc service.CheckoutService, mailer *infra.Mailer, cfg *config.Config) *SalesHandler {
	return &SalesHandler{svc: svc, mailer: mailer, cfg: cfg}
}

// List godoc
// @Summary      Listar ventas
// @Description  Lista paginada filtrada por período, vendedor y estado.
// @Tags         ventas
// @Produce      json
// @Security     BearerAuth
// @Param        period query string false "today | yesterday | week | month | all"
// @Param        seller query string false "Subcadena del nombre de usuario del vendedor"
// @Param        status query string false "PAID | CANCELLED | all"
// @Param        page   query int    false "Página (default 1)"
// @Param        limit  query int    false "Registros por página (default 50)"
// @Success      200    {object} dto.SaleListResponse
// @Router       /v1/sales [get]
func (h *SalesHandler) List(c *gin.Context) {
	var filter dto.SaleFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	resp, err := h.svc.List(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Error al listar ventas"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Get godoc
// @Summary      Detalle de venta
// @Tags         ventas
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "ID de la venta"
// @Success      200 {object} dto.SaleResponse
// @Failure      404 {object} apierror.APIError
// @Router       /v1/sales/{id} [get]
func (h *SalesHandler) Get(c *gin.Context) {
	id, ok := h.saleID(c)
	if !ok {
		return
	}
	resp, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Cancel godoc
// @Summary      Cancelar venta
// @Description  Restaura el stock de los productos vendidos y marca la venta como CANCELADA. Solo admin.
// @Tags         ventas
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "ID de la venta"
// @Success      200 {object} apierror.APIError
// @Failure      400 {object} apierror.APIError
// @Router       /v1/sales/{id}/cancel [post]
func (h *SalesHandler) Cancel(c *gin.Context) {
	id, ok := h.saleID(c)
	if !ok {
		return
	}
	err := h.svc.Cancel(c.Request.Context(), id)
	switch err {
	case nil:
		c.JSON(http.StatusOK, apierror.New("venta cancelada, stock restaurado"))
	case service.ErrAlreadyCancelled:
		// Informational, the end state is what the caller asked for.
		c.JSON(http.StatusOK, apierror.New(err.Error()))
	case service.ErrSaleNotFound:
		c.JSON(http.StatusNotFound, apierror.New(err.Error()))
	default:
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
	}
}

// Receipt godoc
// @Summary      Recibo PDF
// @Description  Genera y descarga el recibo en PDF de la venta.
// @Tags         ventas
// @Produce      application/pdf
// @Security     BearerAuth
// @Param        id path int true "ID de la venta"
// @Success      200
// @Failure      404 {object} apierror.APIError
// @Router       /v1/sales/{id}/receipt [get]
func (h *SalesHandler) Receipt(c *gin.Context) {
	id, ok := h.saleID(c)
	if !ok {
		return
	}
	sale, err := h.svc.GetModel(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, apierror.New(err.Error()))
		return
	}
	path, err := infra.GenerateReceiptPDF(sale, h.cfg.StoreName, h.cfg.PDFStoragePath)
	if err != nil {
		log.Error().Err(err).Str("folio", sale.Folio).Msg("receipt pdf generation failed")
		c.JSON(http.StatusInternalServerError, apierror.New("Error al generar el recibo"))
		return
	}
	c.FileAttachment(path, "recibo_"+sale.Folio+".pdf")
}

// EmailReceipt godoc
// @Summary      Enviar recibo por correo
// @Description  Genera el PDF y lo envía al correo del cliente registrado, o al destinatario indicado.
// @Tags         ventas
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id   path int                     true  "ID de la venta"
// @Param        body body dto.EmailReceiptRequest false "Destinatario alternativo"
// @Success      200  {object} apierror.APIError
// @Failure      400  {object} apierror.APIError
// @Router       /v1/sales/{id}/email [post]
func (h *SalesHandler) EmailReceipt(c *gin.Context) {
	id, ok := h.saleID(c)
	if !ok {
		return
	}
	var req dto.EmailReceiptRequest
	if !bindAndValidate(c, &req) {
		return
	}

	sale, err := h.svc.GetModel(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, apierror.New(err.Error()))
		return
	}

	to := req.To
	if to == "" && sale.Client != nil && sale.Client.Email != nil {
		to = *sale.Client.Email
	}
	if to == "" {
		c.JSON(http.StatusBadRequest, apierror.New("la venta no tiene un correo de cliente asociado"))
		return
	}

	path, err := infra.GenerateReceiptPDF(sale, h.cfg.StoreName, h.cfg.PDFStoragePath)
	if err != nil {
		log.Error().Err(err).Str("folio", sale.Folio).Msg("receipt pdf generation failed")
		c.JSON(http.StatusInternalServerError, apierror.New("Error al generar el recibo"))
		return
	}

	subject := "Nota de venta " + sale.Folio + " - " + h.cfg.StoreName
	body := "Adjuntamos su nota de venta " + sale.Folio + ". ¡Gracias por su compra!"
	if err := h.mailer.SendReceipt(to, subject, body, path); err != nil {
		log.Error().Err(err).Str("folio", sale.Folio).Msg("receipt email failed")
		c.JSON(http.StatusInternalServerError, apierror.New("No se pudo enviar el correo"))
		return
	}
	c.JSON(http.StatusOK, apierror.New("recibo enviado a "+to))
}

func (h *SalesHandler) saleID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return 0, false
	}
	return uint(id), true
}
