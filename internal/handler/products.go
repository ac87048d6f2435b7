package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mishellCastillorb/Punto-Venta/internal/apierror"
	"github.com/mishellCastillorb/Punto-Venta/internal/dto"
	"github.com/mishellCastillorb/Punto-Venta/internal/repository"
)

type ProductsHandler struct{ repo repository.ProductRepository }

func NewProductsHandler(repo repository.ProductRepository) *ProductsHandler {
	return &ProductsHandler{repo: repo}
}

// Search godoc
// @Summary      Buscar productos
// @Description  Búsqueda rápida del mostrador: prefijo de código o tokens del nombre.
// @Tags         productos
// @Produce      json
// @Security     BearerAuth
// @Param        q query string true "Código o nombre"
// @Success      200 {array} dto.ProductSearchResult
// @Router       /v1/products/search [get]
func (h *ProductsHandler) Search(c *gin.Context) {
	products, err := h.repo.Search(c.Request.Context(), c.Query("q"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Error al buscar productos"))
		return
	}
	results := make([]dto.ProductSearchResult, 0, len(products))
	for _, p := range products {
		results = append(results, dto.ProductSearchResult{
			ID:    p.ID,
			Code:  p.Code,
			Name:  p.Name,
			Price: p.SalePrice,
			Stock: p.Stock,
		})
	}
	c.JSON(http.StatusOK, results)
}
