package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Modeva-Ecommerce/modeva-storefront/filters"
	"github.com/Modeva-Ecommerce/modeva-storefront/models"
	"gorm.io/gorm"
)

// GormProvider serves the products table.
type GormProvider struct {
	db *gorm.DB
}

func NewGormProvider(db *gorm.DB) *GormProvider {
	return &GormProvider{db: db}
}

// ─────────────────────────────────────────────────────────────
// Query builders
// ─────────────────────────────────────────────────────────────

// filtered scopes a products query to every active filter in state. The
// price range is only applied when it differs from the default.
func (g *GormProvider) filtered(ctx context.Context, state filters.FilterState) *gorm.DB {
	q := g.db.WithContext(ctx).Model(&models.Product{})

	if state.Subcategory != "" {
		q = q.Where("subcategory = ?", state.Subcategory)
	}
	if len(state.Brands) > 0 {
		q = q.Where("brand IN ?", state.Brands)
	}
	if len(state.Ratings) > 0 {
		// floor(rating) = r, written as a range so it works on every dialect
		conds := make([]string, 0, len(state.Ratings))
		args := make([]any, 0, 2*len(state.Ratings))
		for _, r := range state.Ratings {
			conds = append(conds, "(rating >= ? AND rating < ?)")
			args = append(args, float64(r), float64(r+1))
		}
		q = q.Where("("+strings.Join(conds, " OR ")+")", args...)
	}
	if state.PriceRange != filters.DefaultPriceRange {
		q = q.Where("price >= ? AND price <= ?", state.PriceRange.Min, state.PriceRange.Max)
	}
	if search := strings.ToLower(strings.TrimSpace(state.Search)); search != "" {
		like := "%" + search + "%"
		q = q.Where("(LOWER(title) LIKE ? OR LOWER(brand) LIKE ? OR LOWER(description) LIKE ?)", like, like, like)
	}
	return q
}

// orderClause builds the ORDER BY clause for a sort key. The id tiebreak keeps
// pages stable.
func orderClause(sortBy, sortOrder string) string {
	order := "ASC"
	if strings.ToUpper(sortOrder) == "DESC" {
		order = "DESC"
	}

	switch sortBy {
	case filters.SortPrice:
		return fmt.Sprintf("price %s, id ASC", order)
	case filters.SortRating:
		return fmt.Sprintf("rating %s, id ASC", order)
	case filters.SortTitle:
		return fmt.Sprintf("LOWER(title) %s, id ASC", order)
	default:
		return "created_at DESC, id ASC"
	}
}

// ─────────────────────────────────────────────────────────────
// ProductProvider
// ─────────────────────────────────────────────────────────────

func (g *GormProvider) ListProducts(ctx context.Context, params filters.Params) (models.ProductPage, error) {
	state := stateFromParams(params)

	var total int64
	if err := g.filtered(ctx, state).Count(&total).Error; err != nil {
		return models.ProductPage{}, fmt.Errorf("count products: %w", err)
	}

	products := make([]models.Product, 0, state.Limit)
	if offset := pageOffset(state.Page, state.Limit, int(total)); offset < int(total) {
		err := g.filtered(ctx, state).
			Order(orderClause(state.SortBy, state.SortOrder)).
			Limit(state.Limit).
			Offset(offset).
			Find(&products).Error
		if err != nil {
			return models.ProductPage{}, fmt.Errorf("list products: %w", err)
		}
	}

	return models.ProductPage{
		Data:       products,
		Total:      int(total),
		Page:       state.Page,
		Limit:      state.Limit,
		TotalPages: models.TotalPages(int(total), state.Limit),
	}, nil
}

func (g *GormProvider) GetCount(ctx context.Context, params filters.Params) (int, error) {
	var total int64
	if err := g.filtered(ctx, stateFromParams(params)).Count(&total).Error; err != nil {
		return 0, fmt.Errorf("count products: %w", err)
	}
	return int(total), nil
}

func (g *GormProvider) GetProduct(ctx context.Context, id string) (models.Product, error) {
	var product models.Product
	err := g.db.WithContext(ctx).Where("id = ?", id).First(&product).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Product{}, fmt.Errorf("product %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return models.Product{}, fmt.Errorf("get product %s: %w", id, err)
	}
	return product, nil
}

// ─────────────────────────────────────────────────────────────
// MetadataProvider
// ─────────────────────────────────────────────────────────────

func (g *GormProvider) BrandCounts(ctx context.Context) ([]models.FilterOption, error) {
	var rows []brandCount
	err := g.db.WithContext(ctx).Model(&models.Product{}).
		Select("brand, COUNT(*) AS count").
		Group("brand").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("brand counts: %w", err)
	}
	return brandOptions(rows), nil
}

func (g *GormProvider) CategoryTree(ctx context.Context) ([]models.CategoryData, error) {
	var rows []subcategoryCount
	err := g.db.WithContext(ctx).Model(&models.Product{}).
		Select("category, subcategory, COUNT(*) AS count").
		Group("category, subcategory").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("category tree: %w", err)
	}
	return categoryTree(rows), nil
}

func (g *GormProvider) RatingCounts(ctx context.Context) ([]models.FilterOption, error) {
	var ratings []float64
	if err := g.db.WithContext(ctx).Model(&models.Product{}).Pluck("rating", &ratings).Error; err != nil {
		return nil, fmt.Errorf("rating counts: %w", err)
	}
	return ratingBuckets(ratings), nil
}

func (g *GormProvider) PriceBounds(ctx context.Context) (*models.PriceRangeData, error) {
	var bounds models.PriceRangeData
	err := g.db.WithContext(ctx).Model(&models.Product{}).
		Select("COALESCE(MIN(price), ?) AS min, COALESCE(MAX(price), ?) AS max",
			filters.DefaultMinPrice, filters.DefaultMaxPrice).
		Scan(&bounds).Error
	if err != nil {
		return nil, fmt.Errorf("price bounds: %w", err)
	}
	return &bounds, nil
}
