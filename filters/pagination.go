package filters

import "github.com/Modeva-Ecommerce/modeva-storefront/models"

// Window returns the page controls to render for current out of total pages:
// the first page, the neighbours of current, the last page, and ellipses for
// the gaps in between. Numbers are strictly ascending.
func Window(current, total int) []models.PageItem {
	if total <= 0 {
		return []models.PageItem{}
	}

	items := []models.PageItem{models.Page(1)}
	if current > 3 {
		items = append(items, models.Ellipsis())
	}

	start := max(2, current-1)
	end := min(total-1, current+1)
	for n := start; n <= end; n++ {
		items = append(items, models.Page(n))
	}

	if current < total-2 && total > 4 {
		items = append(items, models.Ellipsis())
	}
	if total > 1 {
		items = append(items, models.Page(total))
	}
	return items
}
