package search

import (
	"fmt"

	"github.com/blevesearch/bleve/v2"
)

// Result is one search hit over the skill catalog.
type Result struct {
	// SkillName is the matched skill.
	SkillName string `json:"skillName"`

	// Description is the skill description.
	Description string `json:"description"`

	// Category is the skill category.
	Category string `json:"category,omitempty"`

	// Score is the ranking score. For plain search this is the BM25
	// relevance; for fused search it is the blended score.
	Score float64 `json:"score"`
}

// Search performs BM25 keyword search over the skill catalog.
func (i *Indexer) Search(query string, limit int) ([]Result, error) {
	i.mu.RLock()
	defer i.mu.RUnlock()

	if limit <= 0 {
		limit = 10
	}

	matchQuery := bleve.NewMatchQuery(query)
	request := bleve.NewSearchRequestOptions(matchQuery, limit, 0, false)
	request.Fields = []string{"name", "description", "category"}

	results, err := i.bleveIndex.Search(request)
	if err != nil {
		return nil, fmt.Errorf("bleve search failed: %w", err)
	}

	return convertBleveResults(results), nil
}

// convertBleveResults converts Bleve hits to our Result format.
func convertBleveResults(results *bleve.SearchResult) []Result {
	searchResults := make([]Result, 0, len(results.Hits))

	for _, hit := range results.Hits {
		description, _ := hit.Fields["description"].(string)
		category, _ := hit.Fields["category"].(string)

		searchResults = append(searchResults, Result{
			SkillName:   hit.ID,
			Description: description,
			Category:    category,
			Score:       hit.Score,
		})
	}

	return searchResults
}
