package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/avelora/shopfront/internal/server/http/dto"
)

// SalesHandler serves the sales report.
type SalesHandler struct {
	facade SalesFacade
}

// NewSalesHandler constructs SalesHandler.
func NewSalesHandler(facade SalesFacade) *SalesHandler {
	return &SalesHandler{facade: facade}
}

// Report handles GET /api/sales.
func (h *SalesHandler) Report(c *gin.Context) {
	sales, err := h.facade.SalesReport(c.Request.Context())
	if err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}
	if len(sales) == 0 {
		c.Status(http.StatusNoContent)
		return
	}

	response := make([]dto.SaleResponse, 0, len(sales))
	for _, s := range sales {
		response = append(response, dto.SaleResponse{
			ID:        s.ID,
			ProductID: s.ProductID,
			Quantity:  s.Quantity,
			Size:      s.Size,
			UnitPrice: s.UnitPrice,
			CostPrice: s.CostPrice,
			Margin:    s.Margin(),
			SoldAt:    s.SoldAt,
		})
	}

	c.JSON(http.StatusOK, response)
}
