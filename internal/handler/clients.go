package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mishellCastillorb/Punto-Venta/internal/apierror"
	"github.com/mishellCastillorb/Punto-Venta/internal/dto"
	"github.com/mishellCastillorb/Punto-Venta/internal/repository"
)

type ClientsHandler struct{ repo repository.ClientRepository }

func NewClientsHandler(repo repository.ClientRepository) *ClientsHandler {
	return &ClientsHandler{repo: repo}
}

// Search godoc
// @Summary      Buscar clientes
// @Description  Búsqueda del mostrador por nombre y/o teléfono; consultas de menos de 2 caracteres retornan vacío.
// @Tags         clientes
// @Produce      json
// @Security     BearerAuth
// @Param        q query string true "Nombre o teléfono"
// @Success      200 {array} dto.ClientSearchResult
// @Router       /v1/clients/search [get]
func (h *ClientsHandler) Search(c *gin.Context) {
	clients, err := h.repo.Search(c.Request.Context(), c.Query("q"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Error al buscar clientes"))
		return
	}
	results := make([]dto.ClientSearchResult, 0, len(clients))
	for _, cl := range clients {
		results = append(results, dto.ClientSearchResult{
			ID:    cl.ID,
			Name:  cl.FullName(),
			Phone: cl.Phone,
		})
	}
	c.JSON(http.StatusOK, results)
}
