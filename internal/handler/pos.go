package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/mishellCastillorb/Punto-Venta/internal/apierror"
	"github.com/mishellCastillorb/Punto-Venta/internal/dto"
	"github.com/mishellCastillorb/Punto-Venta/internal/middleware"
	"github.com/mishellCastillorb/Punto-Venta/internal/service"
)

// POSHandler serves the register screen: ticket mutations always respond with
// the full recomputed summary so the screen re-renders from one payload.
type POSHandler struct {
	tickets  service.TicketService
	checkout service.CheckoutService
}

func NewPOSHandler(tickets service.TicketService, checkout service.CheckoutService) *POSHandler {
	return &POSHandler{tickets: tickets, checkout: checkout}
}

// Current godoc
// @Summary      Ticket actual
// @Description  Retorna el ticket en curso del operador con totales calculados.
// @Tags         pos
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} dto.TicketSummaryResponse
// @Router       /v1/pos/ticket [get]
func (h *POSHandler) Current(c *gin.Context) {
	claims := middleware.GetClaims(c)
	resp, err := h.tickets.Current(c.Request.Context(), claims.UserID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Error al cargar el ticket"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// AddItem godoc
// @Summary      Agregar producto al ticket
// @Description  Incrementa en 1 la cantidad del producto; la cantidad se limita al stock disponible.
// @Tags         pos
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "ID del producto"
// @Success      200 {object} dto.TicketSummaryResponse
// @Failure      400 {object} apierror.APIError
// @Router       /v1/pos/ticket/items/{id} [post]
func (h *POSHandler) AddItem(c *gin.Context) {
	claims := middleware.GetClaims(c)
	resp, err := h.tickets.Add(c.Request.Context(), claims.UserID, c.Param("id"))
	if err != nil {
		h.reject(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// DecrementItem godoc
// @Summary      Restar una unidad del ticket
// @Tags         pos
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "ID del producto"
// @Success      200 {object} dto.TicketSummaryResponse
// @Router       /v1/pos/ticket/items/{id}/decrement [post]
func (h *POSHandler) DecrementItem(c *gin.Context) {
	claims := middleware.GetClaims(c)
	resp, err := h.tickets.Decrement(c.Request.Context(), claims.UserID, c.Param("id"))
	if err != nil {
		h.reject(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// RemoveItem godoc
// @Summary      Quitar una línea del ticket
// @Tags         pos
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "ID del producto"
// @Success      200 {object} dto.TicketSummaryResponse
// @Router       /v1/pos/ticket/items/{id} [delete]
func (h *POSHandler) RemoveItem(c *gin.Context) {
	claims := middleware.GetClaims(c)
	resp, err := h.tickets.Remove(c.Request.Context(), claims.UserID, c.Param("id"))
	if err != nil {
		h.reject(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// UpdateTicket godoc
// @Summary      Actualizar descuento y pago
// @Description  Normaliza descuento (0-100), método de pago y monto recibido, y retorna el ticket recalculado.
// @Tags         pos
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.UpdateTicketRequest true "Entradas de pago"
// @Success      200 {object} dto.TicketSummaryResponse
// @Router       /v1/pos/ticket [patch]
func (h *POSHandler) UpdateTicket(c *gin.Context) {
	var req dto.UpdateTicketRequest
	if !bindAndValidate(c, &req) {
		return
	}
	claims := middleware.GetClaims(c)
	resp, err := h.tickets.Update(c.Request.Context(), claims.UserID, req)
	if err != nil {
		h.reject(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// SetQuickClient godoc
// @Summary      Asignar cliente rápido
// @Description  Adjunta un cliente no registrado (nombre y teléfono) al ticket.
// @Tags         pos
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.QuickClientRequest true "Cliente rápido"
// @Success      200 {object} dto.TicketSummaryResponse
// @Failure      400 {object} apierror.APIError
// @Router       /v1/pos/ticket/client/quick [put]
func (h *POSHandler) SetQuickClient(c *gin.Context) {
	var req dto.QuickClientRequest
	if !bindAndValidate(c, &req) {
		return
	}
	claims := middleware.GetClaims(c)
	resp, err := h.tickets.SetQuickClient(c.Request.Context(), claims.UserID, req.Name, req.Phone)
	if err != nil {
		h.reject(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// SelectClient godoc
// @Summary      Asignar cliente registrado
// @Tags         pos
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "ID del cliente"
// @Success      200 {object} dto.TicketSummaryResponse
// @Failure      404 {object} apierror.APIError
// @Router       /v1/pos/ticket/client/{id} [put]
func (h *POSHandler) SelectClient(c *gin.Context) {
	clientID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	claims := middleware.GetClaims(c)
	resp, err := h.tickets.SelectClient(c.Request.Context(), claims.UserID, uint(clientID))
	if err != nil {
		h.reject(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ClearClient godoc
// @Summary      Quitar cliente del ticket
// @Tags         pos
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} dto.TicketSummaryResponse
// @Router       /v1/pos/ticket/client [delete]
func (h *POSHandler) ClearClient(c *gin.Context) {
	claims := middleware.GetClaims(c)
	resp, err := h.tickets.ClearClient(c.Request.Context(), claims.UserID)
	if err != nil {
		h.reject(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Checkout godoc
// @Summary      Cobrar el ticket
// @Description  Valida ticket, cliente, pago y stock; crea la venta PAGADA en una transacción atómica y limpia el ticket.
// @Tags         pos
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.CheckoutRequest true "Entradas de pago confirmadas"
// @Success      201 {object} dto.SaleResponse
// @Failure      400 {object} apierror.APIError
// @Router       /v1/pos/checkout [post]
func (h *POSHandler) Checkout(c *gin.Context) {
	var req dto.CheckoutRequest
	if !bindAndValidate(c, &req) {
		return
	}
	claims := middleware.GetClaims(c)
	sale, err := h.checkout.Checkout(c.Request.Context(), claims.UserID, req)
	if err != nil {
		h.reject(c, err)
		return
	}
	resp, err := h.checkout.Get(c.Request.Context(), sale.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Error al cargar la venta"))
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// reject maps service rejections onto status codes. Not-found style errors
// get 404, everything else is a 400 with the rejection message.
func (h *POSHandler) reject(c *gin.Context, err error) {
	switch err {
	case service.ErrProductNotFound, service.ErrClientNotFound:
		c.JSON(http.StatusNotFound, apierror.New(err.Error()))
	default:
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
	}
}
