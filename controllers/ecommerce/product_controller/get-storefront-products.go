package product_controller

import (
	"net/http"

	"github.com/Modeva-Ecommerce/modeva-storefront/config"
	"github.com/Modeva-Ecommerce/modeva-storefront/filters"
	"github.com/Modeva-Ecommerce/modeva-storefront/models"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// GetStorefrontProducts godoc
// @Summary Get storefront products
// @Description Get a page of products filtered by subcategory, brands, ratings, price range and search text
// @Tags store
// @Produce json
// @Param q query string false "Search query"
// @Param subcategory query string false "Subcategory"
// @Param brand query []string false "Brands (repeatable ?brand=A&brand=B)"
// @Param rating query []int false "Floored ratings 0-5 (repeatable ?rating=4&rating=5)"
// @Param minPrice query number false "Minimum price" default(0)
// @Param maxPrice query number false "Maximum price" default(1000)
// @Param sortBy query string false "Sort by field" Enums(default, price, rating, title) default(default)
// @Param sortOrder query string false "Sort order" Enums(asc, desc) default(asc)
// @Param p query int false "Page number" default(1)
// @Param l query int false "Items per page" default(20)
// @Success 200 {object} models.ApiResponse{data=[]models.Product}
// @Failure 500 {object} models.ApiResponse
// @Router /store/products [get]
func (h *Controller) GetStorefrontProducts(c *gin.Context) {
	state := parseFilterState(c)
	params := filters.ToParams(state)

	ctx, cancel := config.WithRequestTimeout(c.Request.Context())
	defer cancel()

	page, err := h.catalog.ListProducts(ctx, params)
	if err != nil {
		zap.L().Error("failed to fetch products", zap.String("query", params.Encode()), zap.Error(err))
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to fetch products"))
		return
	}

	meta := &models.Pagination{
		Page:       page.Page,
		Limit:      page.Limit,
		Total:      page.Total,
		TotalPages: page.TotalPages,
	}
	c.JSON(http.StatusOK, models.PaginatedResponse(c,
		"Products fetched successfully",
		page.Data,
		meta,
		filters.Window(page.Page, page.TotalPages),
	))
}

// GetStorefrontProductCount godoc
// @Summary Count storefront products
// @Description Total products matching the filters. Paging and sort parameters are ignored. Served from the count cache when possible.
// @Tags store
// @Produce json
// @Param q query string false "Search query"
// @Param subcategory query string false "Subcategory"
// @Param brand query []string false "Brands"
// @Param rating query []int false "Floored ratings"
// @Param minPrice query number false "Minimum price"
// @Param maxPrice query number false "Maximum price"
// @Success 200 {object} models.ApiResponse{data=models.ProductCount}
// @Failure 500 {object} models.ApiResponse
// @Router /store/products/count [get]
func (h *Controller) GetStorefrontProductCount(c *gin.Context) {
	params := filters.ToParams(parseFilterState(c))

	ctx, cancel := config.WithRequestTimeout(c.Request.Context())
	defer cancel()

	n, cached, err := h.catalog.GetCount(ctx, params)
	if err != nil {
		zap.L().Error("failed to count products", zap.String("query", params.Encode()), zap.Error(err))
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to count products"))
		return
	}

	c.JSON(http.StatusOK, models.SuccessResponse(c, "Product count fetched", models.ProductCount{
		Count:  n,
		Cached: cached,
		Key:    filters.CountKey(params),
	}))
}
