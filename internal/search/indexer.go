/*
Package search provides a free-text index over the skill catalog.

The index is an in-memory Bleve index rebuilt from the candidate skill set.
Plain search ranks by BM25 relevance; fused search blends relevance with
learned keyword weights from storage so historically useful skills rank
higher for familiar vocabulary.
*/
package search

import (
	"fmt"
	"log"
	"strings"
	"sync"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/mapping"

	"github.com/hoangnm/skill-advisor/internal/matcher"
)

// Indexer manages the search index over the skill catalog.
type Indexer struct {
	bleveIndex bleve.Index
	mu         sync.RWMutex
}

// NewIndexer creates an in-memory Bleve index for skills.
func NewIndexer() (*Indexer, error) {
	index, err := bleve.NewMemOnly(buildIndexMapping())
	if err != nil {
		return nil, fmt.Errorf("failed to create bleve index: %w", err)
	}

	return &Indexer{bleveIndex: index}, nil
}

// buildIndexMapping creates the Bleve index mapping for skill documents.
func buildIndexMapping() mapping.IndexMapping {
	skillMapping := bleve.NewDocumentMapping()

	nameFieldMapping := bleve.NewTextFieldMapping()
	skillMapping.AddFieldMappingsAt("name", nameFieldMapping)

	descFieldMapping := bleve.NewTextFieldMapping()
	skillMapping.AddFieldMappingsAt("description", descFieldMapping)

	categoryFieldMapping := bleve.NewTextFieldMapping()
	skillMapping.AddFieldMappingsAt("category", categoryFieldMapping)

	tagsFieldMapping := bleve.NewTextFieldMapping()
	skillMapping.AddFieldMappingsAt("tags", tagsFieldMapping)

	indexMapping := bleve.NewIndexMapping()
	indexMapping.AddDocumentMapping("_default", skillMapping)

	return indexMapping
}

// IndexSkills replaces the index contents with the given skill set.
func (i *Indexer) IndexSkills(skills []matcher.Skill) error {
	i.mu.Lock()
	defer i.mu.Unlock()

	// Rebuild from scratch: drop existing documents first.
	existing, err := i.allDocIDs()
	if err != nil {
		return err
	}

	batch := i.bleveIndex.NewBatch()
	for _, id := range existing {
		batch.Delete(id)
	}

	for _, skill := range skills {
		doc := map[string]interface{}{
			"name":        skill.Name,
			"description": skill.Description,
			"category":    skill.Category,
			"tags":        strings.Join(skill.Tags, " "),
		}

		if err := batch.Index(skill.Name, doc); err != nil {
			log.Printf("Warning: failed to index skill %s: %v", skill.Name, err)
		}
	}

	if err := i.bleveIndex.Batch(batch); err != nil {
		return fmt.Errorf("failed to batch index skills: %w", err)
	}

	return nil
}

// allDocIDs lists every indexed document ID.
func (i *Indexer) allDocIDs() ([]string, error) {
	query := bleve.NewMatchAllQuery()
	request := bleve.NewSearchRequestOptions(query, 10000, 0, false)

	results, err := i.bleveIndex.Search(request)
	if err != nil {
		return nil, fmt.Errorf("failed to list indexed skills: %w", err)
	}

	ids := make([]string, 0, len(results.Hits))
	for _, hit := range results.Hits {
		ids = append(ids, hit.ID)
	}
	return ids, nil
}

// Count returns the total number of indexed skills.
func (i *Indexer) Count() (uint64, error) {
	i.mu.RLock()
	defer i.mu.RUnlock()

	docCount, err := i.bleveIndex.DocCount()
	if err != nil {
		return 0, fmt.Errorf("failed to get doc count: %w", err)
	}

	return docCount, nil
}

// Close closes the index and releases resources.
func (i *Indexer) Close() error {
	i.mu.Lock()
	defer i.mu.Unlock()

	if i.bleveIndex != nil {
		return i.bleveIndex.Close()
	}

	return nil
}
