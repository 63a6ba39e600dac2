package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/avelora/shopfront/internal/domain/errors"
	"github.com/avelora/shopfront/internal/domain/model"
	"github.com/avelora/shopfront/internal/server/http/dto"
	"github.com/avelora/shopfront/internal/usecase"
)

// OrderHandler manages order-related endpoints.
type OrderHandler struct {
	facade OrderFacade
}

// NewOrderHandler constructs OrderHandler.
func NewOrderHandler(facade OrderFacade) *OrderHandler {
	return &OrderHandler{facade: facade}
}

// Create handles POST /api/orders.
func (h *OrderHandler) Create(c *gin.Context) {
	var req dto.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	order, handoff, err := h.facade.CreateOrder(c.Request.Context(), toDraft(req))
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrEmptyOrder), errors.Is(err, domainErrors.ErrInvalidQuantity):
			c.Status(http.StatusUnprocessableEntity)
		case errors.Is(err, domainErrors.ErrNotPurchasable):
			c.Status(http.StatusConflict)
		default:
			c.Status(http.StatusInternalServerError)
		}
		return
	}

	c.JSON(http.StatusCreated, dto.CreateOrderResponse{
		Order:   toOrderResponse(*order),
		Handoff: handoff,
	})
}

// List handles GET /api/orders.
func (h *OrderHandler) List(c *gin.Context) {
	orders, err := h.facade.Orders(c.Request.Context())
	if err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}
	if len(orders) == 0 {
		c.Status(http.StatusNoContent)
		return
	}

	response := make([]dto.OrderResponse, 0, len(orders))
	for _, o := range orders {
		response = append(response, toOrderResponse(o))
	}

	c.JSON(http.StatusOK, response)
}

// Get handles GET /api/orders/:id.
func (h *OrderHandler) Get(c *gin.Context) {
	order, err := h.facade.Order(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			c.Status(http.StatusNotFound)
			return
		}
		c.Status(http.StatusInternalServerError)
		return
	}
	c.JSON(http.StatusOK, toOrderResponse(*order))
}

// Transition handles POST /api/orders/:id/status.
func (h *OrderHandler) Transition(c *gin.Context) {
	var req dto.TransitionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	target, err := model.ParseOrderStatus(req.Status)
	if err != nil {
		c.Status(http.StatusUnprocessableEntity)
		return
	}

	result, err := h.facade.TransitionOrder(c.Request.Context(), c.Param("id"), target)
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrNotFound):
			c.Status(http.StatusNotFound)
		case errors.Is(err, domainErrors.ErrInvalidStatus):
			c.Status(http.StatusUnprocessableEntity)
		default:
			// The result may still carry partial adjustments; the status
			// write is what failed, so the transition did not happen.
			c.Status(http.StatusInternalServerError)
		}
		return
	}

	c.JSON(http.StatusOK, toTransitionResponse(result))
}

func toDraft(req dto.CreateOrderRequest) usecase.OrderDraft {
	items := make([]usecase.DraftItem, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, usecase.DraftItem{
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			Size:        item.Size,
		})
	}
	return usecase.OrderDraft{
		Items:        items,
		ClaimedTotal: req.Total,
		DeliveryCost: req.DeliveryCost,
		Customer: model.CustomerInfo{
			Name:    req.Customer.Name,
			Phone:   req.Customer.Phone,
			Address: req.Customer.Address,
			Note:    req.Customer.Note,
		},
	}
}

func toOrderResponse(order model.Order) dto.OrderResponse {
	items := make([]dto.OrderItemPayload, 0, len(order.Items))
	for _, item := range order.Items {
		items = append(items, dto.OrderItemPayload{
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			Size:        item.Size,
		})
	}
	return dto.OrderResponse{
		ID:           order.ID,
		DisplayID:    order.DisplayID,
		Items:        items,
		Total:        order.TotalAmount,
		DeliveryCost: order.DeliveryCost,
		Status:       string(order.Status),
		Customer: dto.CustomerPayload{
			Name:    order.CustomerInfo.Name,
			Phone:   order.CustomerInfo.Phone,
			Address: order.CustomerInfo.Address,
			Note:    order.CustomerInfo.Note,
		},
		ReviewRequired: order.ReviewRequired,
		CreatedAt:      order.CreatedAt,
		UpdatedAt:      order.UpdatedAt,
	}
}

func toTransitionResponse(result *usecase.TransitionResult) dto.TransitionResponse {
	resp := dto.TransitionResponse{
		OrderID:        result.OrderID,
		From:           string(result.From),
		To:             string(result.To),
		ItemsAttempted: result.ItemsAttempted,
		ItemsAdjusted:  result.ItemsAdjusted,
		SalesRecorded:  result.SalesRecorded,
	}
	for _, itemErr := range result.ItemErrors {
		resp.Errors = append(resp.Errors, itemErr.Error())
	}
	return resp
}
