package handler

import (
	"net/http"

	"warehouse/internal/middleware"
	"warehouse/internal/model"
	"warehouse/internal/service"
	"warehouse/pkg/response"

	"github.com/gin-gonic/gin"
)

type CatalogHandler struct {
	catalogService service.CatalogService
}

func NewCatalogHandler(catalogService service.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalogService: catalogService}
}

func (h *CatalogHandler) RegisterRoutes(router *gin.RouterGroup) {
	items := router.Group("/api/items")
	{
		items.GET("", middleware.RequireAnyRole(), h.ListItems)
		items.GET("/low-stock", middleware.RequireAnyRole(), h.ListLowStock)
		items.POST("", middleware.RequireRole(model.RoleAdmin), h.CreateItem)
	}

	router.GET("/api/categories", middleware.RequireAnyRole(), h.ListCategories)
	router.GET("/api/departments", middleware.RequireAnyRole(), h.ListDepartments)
}

// ListItems handles GET /api/items
// @Summary      List items
// @Tags         catalog
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  response.Envelope{data=[]service.ItemView}
// @Router       /api/items [get]
func (h *CatalogHandler) ListItems(c *gin.Context) {
	items, err := h.catalogService.ListItems(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(items))
}

// ListLowStock handles GET /api/items/low-stock
// @Summary      List low stock items
// @Description  Items whose current stock is at or below par level, most depleted first
// @Tags         catalog
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  response.Envelope{data=[]service.ItemView}
// @Router       /api/items/low-stock [get]
func (h *CatalogHandler) ListLowStock(c *gin.Context) {
	items, err := h.catalogService.ListLowStockItems(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(items))
}

// CreateItem handles POST /api/items (admin only)
// @Summary      Create item
// @Tags         catalog
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        payload  body      service.CreateItemInput  true  "Item payload"
// @Success      201      {object}  response.Envelope{data=service.ItemView}
// @Failure      400      {object}  response.Envelope
// @Router       /api/items [post]
func (h *CatalogHandler) CreateItem(c *gin.Context) {
	var in service.CreateItemInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, response.Error("invalid item payload: "+err.Error()))
		return
	}

	item, err := h.catalogService.CreateItem(c.Request.Context(), middleware.CurrentUserID(c), c.ClientIP(), in)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusCreated, response.Success(item))
}

// ListCategories handles GET /api/categories
func (h *CatalogHandler) ListCategories(c *gin.Context) {
	categories, err := h.catalogService.ListCategories(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(categories))
}

// ListDepartments handles GET /api/departments
func (h *CatalogHandler) ListDepartments(c *gin.Context) {
	departments, err := h.catalogService.ListDepartments(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(departments))
}
