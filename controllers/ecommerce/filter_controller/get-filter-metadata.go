package filter_controller

import (
	"net/http"

	"github.com/Modeva-Ecommerce/modeva-storefront/cache"
	"github.com/Modeva-Ecommerce/modeva-storefront/config"
	"github.com/Modeva-Ecommerce/modeva-storefront/models"
	"github.com/Modeva-Ecommerce/modeva-storefront/services"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Controller serves the filter panel data.
type Controller struct {
	source services.MetadataProvider
	cache  *cache.MetadataCache
}

func New(source services.MetadataProvider, metadataCache *cache.MetadataCache) *Controller {
	return &Controller{source: source, cache: metadataCache}
}

// GetFilterMetadata godoc
// @Summary Get all filter metadata
// @Description Returns brand counts, categories with subcategories, rating buckets and the price range for storefront filters
// @Tags store
// @Produce json
// @Success 200 {object} models.ApiResponse{data=models.FilterMetadata}
// @Failure 500 {object} models.ApiResponse
// @Router /store/filters/metadata [get]
func (h *Controller) GetFilterMetadata(c *gin.Context) {
	if metadata, ok := h.cache.Get(); ok {
		c.JSON(http.StatusOK, models.SuccessResponse(c, "Filter metadata fetched", metadata))
		return
	}

	ctx, cancel := config.WithRequestTimeout(c.Request.Context())
	defer cancel()

	// Each query writes its own field, so no lock is needed
	var metadata models.FilterMetadata
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() (err error) {
		metadata.Brands, err = h.source.BrandCounts(gctx)
		return err
	})
	g.Go(func() (err error) {
		metadata.Categories, err = h.source.CategoryTree(gctx)
		return err
	})
	g.Go(func() (err error) {
		metadata.Ratings, err = h.source.RatingCounts(gctx)
		return err
	})
	g.Go(func() (err error) {
		metadata.PriceRange, err = h.source.PriceBounds(gctx)
		return err
	})

	if err := g.Wait(); err != nil {
		zap.L().Error("failed to fetch filter metadata", zap.Error(err))
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to fetch filter metadata"))
		return
	}

	h.cache.Set(metadata)
	c.JSON(http.StatusOK, models.SuccessResponse(c, "Filter metadata fetched", metadata))
}
