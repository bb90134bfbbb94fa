/*
Package customer exposes the customer commands and queries over HTTP.

Commands answer with their command result as is: 201 or 200 when it
succeeded, 400 with the notifications when it did not. Queries answer with the
standard response envelope.
*/
package customer

import (
	"net/http"

	"store/api/response"
	customerapp "store/application/customer"

	"github.com/gin-gonic/gin"
)

type Controller struct {
	handler *customerapp.Handler
	queries *customerapp.Queries
}

func NewController(handler *customerapp.Handler, queries *customerapp.Queries) *Controller {
	return &Controller{
		handler: handler,
		queries: queries,
	}
}

func (c *Controller) RegisterRoutes(router *gin.RouterGroup) {
	customerGroup := router.Group("/customers")
	{
		customerGroup.GET("", c.ListCustomers)
		customerGroup.GET("/orders-count", c.CountOrders)
		customerGroup.GET("/:id", c.GetCustomer)
		customerGroup.GET("/:id/orders", c.ListOrders)
		customerGroup.POST("", c.CreateCustomer)
		customerGroup.PUT("/:id", c.UpdateCustomer)
		customerGroup.DELETE("/:id", c.DeleteCustomer)
		customerGroup.POST("/:id/addresses", c.AddAddress)
	}
}

// CreateCustomer POST /v1/customers
func (c *Controller) CreateCustomer(ctx *gin.Context) {
	var cmd customerapp.CreateCustomerCommand
	if err := ctx.ShouldBindJSON(&cmd); err != nil {
		response.HandleError(ctx, err, "invalid request parameters", http.StatusBadRequest)
		return
	}

	result, err := c.handler.HandleCreate(ctx.Request.Context(), cmd)
	response.HandleCommand(ctx, result, err, http.StatusCreated)
}

// UpdateCustomer PUT /v1/customers/:id
//
// The id in the path wins over anything in the body.
func (c *Controller) UpdateCustomer(ctx *gin.Context) {
	var cmd customerapp.UpdateCustomerCommand
	if err := ctx.ShouldBindJSON(&cmd); err != nil {
		response.HandleError(ctx, err, "invalid request parameters", http.StatusBadRequest)
		return
	}
	cmd.ID = ctx.Param("id")

	result, err := c.handler.HandleUpdate(ctx.Request.Context(), cmd)
	response.HandleCommand(ctx, result, err, http.StatusOK)
}

// DeleteCustomer DELETE /v1/customers/:id
func (c *Controller) DeleteCustomer(ctx *gin.Context) {
	result, err := c.handler.HandleDelete(ctx.Request.Context(), customerapp.NewDeleteCommand(ctx.Param("id")))
	response.HandleCommand(ctx, result, err, http.StatusOK)
}

// AddAddress POST /v1/customers/:id/addresses
func (c *Controller) AddAddress(ctx *gin.Context) {
	var cmd customerapp.AddAddressCommand
	if err := ctx.ShouldBindJSON(&cmd); err != nil {
		response.HandleError(ctx, err, "invalid request parameters", http.StatusBadRequest)
		return
	}
	cmd.CustomerID = ctx.Param("id")

	result, err := c.handler.HandleAddAddress(ctx.Request.Context(), cmd)
	response.HandleCommand(ctx, result, err, http.StatusCreated)
}

// ListCustomers GET /v1/customers
func (c *Controller) ListCustomers(ctx *gin.Context) {
	customers, err := c.queries.List(ctx.Request.Context())
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleSuccess(ctx, customers, "customers retrieved successfully")
}

// GetCustomer GET /v1/customers/:id
func (c *Controller) GetCustomer(ctx *gin.Context) {
	customer, err := c.queries.Get(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleSuccess(ctx, customer, "customer retrieved successfully")
}

// ListOrders GET /v1/customers/:id/orders
func (c *Controller) ListOrders(ctx *gin.Context) {
	orders, err := c.queries.Orders(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleSuccess(ctx, orders, "customer orders retrieved successfully")
}

type countOrdersQuery struct {
	Document string `form:"document" binding:"required"`
}

// CountOrders GET /v1/customers/orders-count?document=
func (c *Controller) CountOrders(ctx *gin.Context) {
	var q countOrdersQuery
	if err := ctx.ShouldBindQuery(&q); err != nil {
		response.HandleError(ctx, err, "document is required", http.StatusBadRequest)
		return
	}

	count, err := c.queries.OrdersCount(ctx.Request.Context(), q.Document)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleSuccess(ctx, count, "customer orders counted successfully")
}
