package domain

import "sort"

// Category groups products in the catalog.
type Category struct {
	ID   int64
	Name string
}

// SortCategories orders categories by ascending id in place.
func SortCategories(categories []Category) {
	sort.SliceStable(categories, func(i, j int) bool { return categories[i].ID < categories[j].ID })
}
