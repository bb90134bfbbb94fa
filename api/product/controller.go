package product

import (
	"store/api/response"
	catalogapp "store/application/catalog"

	"github.com/gin-gonic/gin"
)

type Controller struct {
	queries *catalogapp.Queries
}

func NewController(queries *catalogapp.Queries) *Controller {
	return &Controller{queries: queries}
}

func (c *Controller) RegisterRoutes(router *gin.RouterGroup) {
	productGroup := router.Group("/products")
	{
		productGroup.GET("", c.ListProducts)
		productGroup.GET("/:id", c.GetProduct)
	}
}

// ListProducts GET /v1/products
func (c *Controller) ListProducts(ctx *gin.Context) {
	products, err := c.queries.List(ctx.Request.Context())
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleSuccess(ctx, products, "products retrieved successfully")
}

// GetProduct GET /v1/products/:id
func (c *Controller) GetProduct(ctx *gin.Context) {
	product, err := c.queries.Get(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleSuccess(ctx, product, "product retrieved successfully")
}
