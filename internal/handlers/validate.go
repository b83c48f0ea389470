package handlers

import (
	"strings"
	"unicode/utf8"
)

// Validation limits for post and category fields.
const (
	maxNameLen         = 300
	maxDescriptionLen  = 200_000
	maxAuthorLen       = 120
	maxImageAltLen     = 500
	maxKeywords        = 20
	maxKeywordLen      = 80
	minCategoryNameLen = 2
	maxCategoryNameLen = 80
)

// validatePost checks post inputs and returns the first error found.
func validatePost(in *postInput) string {
	if strings.TrimSpace(in.Name) == "" {
		return "Title is required."
	}
	if utf8.RuneCountInString(in.Name) > maxNameLen {
		return "Title is too long (max 300 characters)."
	}
	if utf8.RuneCountInString(in.Description) > maxDescriptionLen {
		return "Body is too long (max 200,000 characters)."
	}
	if utf8.RuneCountInString(in.Author) > maxAuthorLen {
		return "Author is too long (max 120 characters)."
	}
	if utf8.RuneCountInString(in.ImageAlt) > maxImageAltLen {
		return "Image alt text is too long (max 500 characters)."
	}
	if len(in.Keywords) > maxKeywords {
		return "Too many keywords (max 20)."
	}
	for _, k := range in.Keywords {
		if utf8.RuneCountInString(k) > maxKeywordLen {
			return "Keyword is too long (max 80 characters)."
		}
	}
	return ""
}

// validateCategoryName checks a category name before slug derivation.
func validateCategoryName(name string) string {
	name = strings.TrimSpace(name)
	if utf8.RuneCountInString(name) < minCategoryNameLen {
		return "Category name is too short (min 2 characters)."
	}
	if utf8.RuneCountInString(name) > maxCategoryNameLen {
		return "Category name is too long (max 80 characters)."
	}
	return ""
}
