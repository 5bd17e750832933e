package domain

import "strings"

// Categories are the top-level directories of the library root.
// Any plain directory name is a valid category; these are the ones a
// fresh library is seeded with.
func DefaultCategories() []string {
	return []string{"HR", "Finance", "Technical"}
}

// ValidCategoryName reports whether name can be used as a category.
// Categories map directly to directory names, so path separators and
// hidden names are rejected.
func ValidCategoryName(name string) bool {
	if name == "" {
		return false
	}
	if strings.HasPrefix(name, ".") {
		return false
	}
	if strings.ContainsAny(name, `/\`) {
		return false
	}
	return name == strings.TrimSpace(name)
}
