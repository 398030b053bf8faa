package product_controller

import (
	"github.com/Modeva-Ecommerce/modeva-storefront/filters"
	"github.com/Modeva-Ecommerce/modeva-storefront/services"
	"github.com/gin-gonic/gin"
)

// Controller serves the public catalog.
type Controller struct {
	catalog *services.CatalogService
}

func New(catalog *services.CatalogService) *Controller {
	return &Controller{catalog: catalog}
}

// ─────────────────────────────────────────────────────────────
// Helpers
// ─────────────────────────────────────────────────────────────

// legacyKeys maps the older long-form query keys onto the short ones.
var legacyKeys = map[string]string{
	"page":  filters.ParamPage,
	"limit": filters.ParamLimit,
}

// parseFilterState reads the browse state from the query string. Malformed
// values fall back to their defaults rather than failing the request.
func parseFilterState(c *gin.Context) filters.FilterState {
	query := c.Request.URL.Query()
	for long, short := range legacyKeys {
		if query.Has(long) && !query.Has(short) {
			query[short] = query[long]
		}
	}
	return filters.FromValues(query)
}
