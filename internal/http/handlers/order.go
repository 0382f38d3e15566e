package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yungbote/sportshop-backend/internal/http/response"
	"github.com/yungbote/sportshop-backend/internal/services"
)

type OrderHandler struct {
	orderService services.OrderService
}

func NewOrderHandler(orderService services.OrderService) *OrderHandler {
	return &OrderHandler{orderService: orderService}
}

// GET /api/orders?new=true
func (oh *OrderHandler) List(c *gin.Context) {
	recent := c.Query("new") == "true"
	orders, err := oh.orderService.ListAll(c.Request.Context(), recent)
	if err != nil {
		response.RespondAppError(c, err)
		return
	}
	response.RespondOK(c, orders)
}

// GET /api/orders/stats
func (oh *OrderHandler) Stats(c *gin.Context) {
	buckets, err := oh.orderService.CountByMonth(c.Request.Context())
	if err != nil {
		response.RespondAppError(c, err)
		return
	}
	response.RespondOK(c, buckets)
}

// GET /api/orders/income/stats
func (oh *OrderHandler) IncomeStats(c *gin.Context) {
	buckets, err := oh.orderService.RevenueByMonth(c.Request.Context())
	if err != nil {
		response.RespondAppError(c, err)
		return
	}
	response.RespondOK(c, buckets)
}

// GET /api/orders/week-sales
func (oh *OrderHandler) WeekSales(c *gin.Context) {
	buckets, err := oh.orderService.RevenueByWeekday(c.Request.Context())
	if err != nil {
		response.RespondAppError(c, err)
		return
	}
	response.RespondOK(c, buckets)
}

// PUT /api/orders/:id
func (oh *OrderHandler) Update(c *gin.Context) {
	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_order_id", err)
		return
	}
	var upd services.OrderUpdate
	if err := c.ShouldBindJSON(&upd); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	order, err := oh.orderService.Update(c.Request.Context(), orderID, upd)
	if err != nil {
		response.RespondAppError(c, err)
		return
	}
	response.RespondOK(c, order)
}

// GET /api/orders/find/:userId
func (oh *OrderHandler) ListForUser(c *gin.Context) {
	userID, err := uuid.Parse(c.Param("userId"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_user_id", err)
		return
	}
	orders, err := oh.orderService.ListForUser(c.Request.Context(), userID)
	if err != nil {
		response.RespondAppError(c, err)
		return
	}
	response.RespondOK(c, orders)
}

// GET /api/orders/findOne/:id
func (oh *OrderHandler) Get(c *gin.Context) {
	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_order_id", err)
		return
	}
	order, err := oh.orderService.Get(c.Request.Context(), orderID)
	if err != nil {
		response.RespondAppError(c, err)
		return
	}
	response.RespondOK(c, order)
}
