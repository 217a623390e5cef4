package nlp

import (
	"strings"

	"github.com/amoghbhat/spence/internal/model"
)

// MatchCategory scores each candidate category by how many of its
// keywords appear (case-insensitively) in the description and returns the
// name of the strict maximum. Ties keep the earlier candidate, so the
// category list order is observable. When nothing scores above zero, the
// fallback bucket wins.
func MatchCategory(description string, categories []model.Category) string {
	normalized := strings.ToLower(strings.TrimSpace(description))

	bestName := ""
	bestHits := 0
	for _, category := range categories {
		hits := 0
		for _, keyword := range category.Keywords {
			if strings.Contains(normalized, strings.ToLower(keyword)) {
				hits++
			}
		}
		if hits > bestHits {
			bestHits = hits
			bestName = category.Name
		}
	}

	if bestName == "" {
		return model.FallbackCategory
	}
	return bestName
}
