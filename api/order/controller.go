/*
Package order exposes the order lifecycle over HTTP.

A body that does not bind is answered by response.HandleError. A rejected
order comes back as a failed command result with status 400. Lifecycle
transitions return errors, which response.HandleAppError maps: a missing
order or delivery is 404 and a refused transition is 422.
*/
package order

import (
	"context"
	"net/http"

	"store/api/response"
	orderapp "store/application/order"

	"github.com/gin-gonic/gin"
)

type Controller struct {
	orderService *orderapp.ApplicationService
}

func NewController(orderService *orderapp.ApplicationService) *Controller {
	return &Controller{orderService: orderService}
}

func (c *Controller) RegisterRoutes(router *gin.RouterGroup) {
	orderGroup := router.Group("/orders")
	{
		orderGroup.POST("", c.PlaceOrder)
		orderGroup.GET("/:id", c.GetOrder)
		orderGroup.POST("/:id/pay", c.PayOrder)
		orderGroup.POST("/:id/ship", c.ShipOrder)
		orderGroup.POST("/:id/cancel", c.CancelOrder)
		orderGroup.POST("/:id/deliveries/:deliveryId/deliver", c.DeliverOrder)
	}
}

// PlaceOrder POST /v1/orders
func (c *Controller) PlaceOrder(ctx *gin.Context) {
	var cmd orderapp.PlaceOrderCommand
	if err := ctx.ShouldBindJSON(&cmd); err != nil {
		response.HandleError(ctx, err, "invalid request parameters", http.StatusBadRequest)
		return
	}

	result, err := c.orderService.PlaceOrder(ctx.Request.Context(), cmd)
	response.HandleCommand(ctx, result, err, http.StatusCreated)
}

// GetOrder GET /v1/orders/:id
func (c *Controller) GetOrder(ctx *gin.Context) {
	order, err := c.orderService.Get(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleSuccess(ctx, order, "order retrieved successfully")
}

// PayOrder POST /v1/orders/:id/pay
func (c *Controller) PayOrder(ctx *gin.Context) {
	c.transition(ctx, c.orderService.Pay, "order paid")
}

// ShipOrder POST /v1/orders/:id/ship
func (c *Controller) ShipOrder(ctx *gin.Context) {
	c.transition(ctx, c.orderService.Ship, "order shipped")
}

// CancelOrder POST /v1/orders/:id/cancel
func (c *Controller) CancelOrder(ctx *gin.Context) {
	c.transition(ctx, c.orderService.Cancel, "order canceled")
}

// DeliverOrder POST /v1/orders/:id/deliveries/:deliveryId/deliver
func (c *Controller) DeliverOrder(ctx *gin.Context) {
	c.transition(ctx, func(reqCtx context.Context, orderID string) (*orderapp.OrderPayload, error) {
		return c.orderService.Deliver(reqCtx, orderID, ctx.Param("deliveryId"))
	}, "delivery delivered")
}

type transitionFunc func(ctx context.Context, orderID string) (*orderapp.OrderPayload, error)

func (c *Controller) transition(ctx *gin.Context, fn transitionFunc, message string) {
	order, err := fn(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleSuccess(ctx, order, message)
}
