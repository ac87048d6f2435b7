package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mishellCastillorb/Punto-Venta/internal/apierror"
	"github.com/mishellCastillorb/Punto-Venta/internal/dto"
	"github.com/mishellCastillorb/Punto-Venta/internal/middleware"
	"github.com/mishellCastillorb/Punto-Venta/internal/service"
)

type CashRegisterHandler struct{ svc service.CashRegisterService }

func NewCashRegisterHandler(svc service.CashRegisterService) *CashRegisterHandler {
	return &CashRegisterHandler{svc: svc}
}

// Open godoc
// @Summary      Abrir caja
// @Description  Abre el turno de caja con el fondo inicial. Solo puede haber una caja abierta.
// @Tags         caja
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.OpenRegisterRequest true "Fondo inicial"
// @Success      201  {object} dto.RegisterStatusResponse
// @Failure      400  {object} apierror.APIError
// @Router       /v1/cash-register/open [post]
func (h *CashRegisterHandler) Open(c *gin.Context) {
	var req dto.OpenRegisterRequest
	if !bindAndValidate(c, &req) {
		return
	}
	claims := middleware.GetClaims(c)
	cr, err := h.svc.Open(c.Request.Context(), claims.UserID, req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusCreated, dto.RegisterStatusResponse{
		ID:            cr.ID,
		OpenedBy:      claims.Username,
		OpenedAt:      cr.OpenedAt.Format(time.RFC3339),
		OpeningAmount: cr.OpeningAmount,
		IsClosed:      false,
	})
}

// Status godoc
// @Summary      Estado de caja
// @Description  Totales del turno en curso por método de pago. Los admin ven además el desglose por operador.
// @Tags         caja
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} dto.RegisterStatusResponse
// @Failure      404 {object} apierror.APIError
// @Router       /v1/cash-register/status [get]
func (h *CashRegisterHandler) Status(c *gin.Context) {
	claims := middleware.GetClaims(c)
	resp, err := h.svc.Status(c.Request.Context(), claims.UserID, claims.IsAdmin())
	if err != nil {
		if err == service.ErrNoOpenRegister {
			c.JSON(http.StatusNotFound, apierror.New(err.Error()))
			return
		}
		c.JSON(http.StatusInternalServerError, apierror.New("Error al consultar la caja"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Close godoc
// @Summary      Cerrar caja
// @Description  Concilia el efectivo contado contra lo esperado y cierra el turno. Un monto negativo se rechaza y la caja sigue abierta.
// @Tags         caja
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.CloseRegisterRequest true "Efectivo contado"
// @Success      200  {object} dto.RegisterClosedResponse
// @Failure      400  {object} apierror.APIError
// @Router       /v1/cash-register/close [post]
func (h *CashRegisterHandler) Close(c *gin.Context) {
	var req dto.CloseRegisterRequest
	if !bindAndValidate(c, &req) {
		return
	}
	claims := middleware.GetClaims(c)
	resp, err := h.svc.Close(c.Request.Context(), claims.UserID, req)
	if err != nil {
		if err == service.ErrNoOpenRegister {
			c.JSON(http.StatusNotFound, apierror.New(err.Error()))
			return
		}
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}
