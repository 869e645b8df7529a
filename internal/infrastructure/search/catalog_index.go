package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/elastic/go-elasticsearch/v8"

	"github.com/oksasatya/plantify/internal/domain/entity"
	"github.com/oksasatya/plantify/internal/domain/repository"
	"github.com/oksasatya/plantify/pkg/helpers"
)

const catalogMapping = `{
  "mappings": {
    "properties": {
      "name":           {"type": "text", "fields": {"keyword": {"type": "keyword"}}},
      "scientificName": {"type": "text"},
      "category":       {"type": "keyword"},
      "difficulty":     {"type": "keyword"},
      "description":    {"type": "text"},
      "tags":           {"type": "text"},
      "isActive":       {"type": "boolean"}
    }
  }
}`

// CatalogIndex keeps catalog plants in an Elasticsearch index.
type CatalogIndex struct {
	ES      *elasticsearch.Client
	Index   string
	Timeout time.Duration
	Size    int
}

func NewCatalogIndex(es *elasticsearch.Client, index string) *CatalogIndex {
	return &CatalogIndex{ES: es, Index: index, Timeout: 3 * time.Second, Size: 50}
}

// Ensure creates the index with its mapping if it does not exist.
func (c *CatalogIndex) Ensure(ctx context.Context) error {
	return helpers.EnsureIndex(ctx, c.ES, c.Index, catalogMapping)
}

type catalogDoc struct {
	Name           string   `json:"name"`
	ScientificName string   `json:"scientificName"`
	Category       string   `json:"category"`
	Difficulty     string   `json:"difficulty"`
	Description    string   `json:"description"`
	Tags           []string `json:"tags"`
	IsActive       bool     `json:"isActive"`
}

// IndexPlants bulk-indexes plants using their database id as document id.
func (c *CatalogIndex) IndexPlants(ctx context.Context, plants []entity.CatalogPlant) error {
	if len(plants) == 0 {
		return nil
	}
	body, err := bulkBody(c.Index, plants)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(ctx, c.Timeout)
	defer cancel()

	res, err := c.ES.Bulk(bytes.NewReader(body),
		c.ES.Bulk.WithContext(ctx),
		c.ES.Bulk.WithRefresh("true"),
	)
	if err != nil {
		return err
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() {
		return fmt.Errorf("bulk index %s: %s", c.Index, res.Status())
	}
	var parsed struct {
		Errors bool `json:"errors"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return err
	}
	if parsed.Errors {
		return fmt.Errorf("bulk index %s: some documents were rejected", c.Index)
	}
	return nil
}

// SearchPlants runs a prefix-aware multi_match over the text fields.
func (c *CatalogIndex) SearchPlants(ctx context.Context, f repository.CatalogFilter) ([]string, error) {
	b, err := json.Marshal(searchQuery(f, c.Size))
	if err != nil {
		return nil, err
	}
	ctx, cancel := context.WithTimeout(ctx, c.Timeout)
	defer cancel()

	res, err := c.ES.Search(
		c.ES.Search.WithContext(ctx),
		c.ES.Search.WithIndex(c.Index),
		c.ES.Search.WithBody(bytes.NewReader(b)),
	)
	if err != nil {
		return nil, err
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() {
		return nil, fmt.Errorf("search %s: %s", c.Index, res.Status())
	}

	var parsed struct {
		Hits struct {
			Hits []struct {
				ID string `json:"_id"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(parsed.Hits.Hits))
	for _, h := range parsed.Hits.Hits {
		ids = append(ids, h.ID)
	}
	return ids, nil
}

func searchQuery(f repository.CatalogFilter, size int) map[string]any {
	filters := []any{
		map[string]any{"term": map[string]any{"isActive": true}},
	}
	if f.Category != "" {
		filters = append(filters, map[string]any{"term": map[string]any{"category": f.Category}})
	}
	return map[string]any{
		"size": size,
		"query": map[string]any{
			"bool": map[string]any{
				"filter": filters,
				"must": []any{
					map[string]any{
						"multi_match": map[string]any{
							"query":  strings.TrimSpace(f.Search),
							"type":   "phrase_prefix",
							"fields": []string{"name^3", "scientificName^2", "description", "tags"},
						},
					},
				},
			},
		},
	}
}

func bulkBody(index string, plants []entity.CatalogPlant) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	for _, p := range plants {
		meta := map[string]any{"index": map[string]any{"_index": index, "_id": p.ID}}
		if err := enc.Encode(meta); err != nil {
			return nil, err
		}
		doc := catalogDoc{
			Name:           p.Name,
			ScientificName: p.ScientificName,
			Category:       p.Category,
			Difficulty:     p.Difficulty,
			Description:    p.Description,
			Tags:           p.Tags,
			IsActive:       p.IsActive,
		}
		if err := enc.Encode(doc); err != nil {
			return nil, err
		}
	}
	return buf.Bytes(), nil
}
