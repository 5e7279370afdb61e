package search

import (
	"sort"

	"github.com/hoangnm/skill-advisor/internal/storage"
)

// FusionConfig defines weights for blending index relevance with learned
// keyword weights.
type FusionConfig struct {
	RelevanceWeight float64
	LearnedWeight   float64
}

// DefaultFusionConfig favors relevance (70% relevance, 30% learned).
var DefaultFusionConfig = FusionConfig{
	RelevanceWeight: 0.7,
	LearnedWeight:   0.3,
}

// SearchFused blends BM25 relevance with learned keyword weights from
// storage. Both signals are normalized to [0,1] before fusion. When no
// learned weights exist for the keywords, results fall back to plain
// relevance order.
func (i *Indexer) SearchFused(query string, keywords []string, store storage.Storage, limit int, config FusionConfig) ([]Result, error) {
	if limit <= 0 {
		limit = 10
	}

	relevance, err := i.Search(query, limit*2)
	if err != nil {
		return nil, err
	}

	learned, err := store.GetSkillsForKeywords(keywords, limit*2)
	if err != nil {
		return nil, err
	}
	if len(learned) == 0 {
		if len(relevance) > limit {
			relevance = relevance[:limit]
		}
		return relevance, nil
	}

	fused := fuseScores(relevance, learned, config)

	sort.SliceStable(fused, func(a, b int) bool {
		return fused[a].Score > fused[b].Score
	})

	if len(fused) > limit {
		fused = fused[:limit]
	}

	return fused, nil
}

// fuseScores combines normalized relevance and learned-weight signals.
func fuseScores(relevance []Result, learned []storage.SkillWeight, config FusionConfig) []Result {
	maxRelevance := 0.0
	for _, r := range relevance {
		if r.Score > maxRelevance {
			maxRelevance = r.Score
		}
	}

	maxLearned := 0.0
	learnedByName := make(map[string]float64, len(learned))
	for _, w := range learned {
		learnedByName[w.SkillName] = w.Weight
		if w.Weight > maxLearned {
			maxLearned = w.Weight
		}
	}

	fused := make([]Result, 0, len(relevance))
	for _, r := range relevance {
		relevanceScore := 0.0
		if maxRelevance > 0 {
			relevanceScore = r.Score / maxRelevance
		}

		learnedScore := 0.0
		if maxLearned > 0 {
			learnedScore = learnedByName[r.SkillName] / maxLearned
		}

		r.Score = config.RelevanceWeight*relevanceScore + config.LearnedWeight*learnedScore
		fused = append(fused, r)
	}

	return fused
}
