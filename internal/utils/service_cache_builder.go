package utils

import (
	"strconv"
	"strings"
)

// BuildServicesListCacheKey derives the cache key for a public catalog
// listing. Filters are normalized so equivalent queries share an entry.
func BuildServicesListCacheKey(category, search *string, limit, offset int) string {
	c := ""
	if category != nil {
		c = strings.ToLower(strings.TrimSpace(*category))
	}
	s := ""
	if search != nil {
		s = strings.ToLower(strings.TrimSpace(*search))
	}

	return "services:list:v1:category=" + c +
		":search=" + s +
		":limit=" + strconv.Itoa(limit) +
		":offset=" + strconv.Itoa(offset)
}
