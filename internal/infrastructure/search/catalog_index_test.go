package search

import (
	"bufio"
	"bytes"
	"encoding/json"
	"testing"

	"github.com/oksasatya/plantify/internal/domain/entity"
	"github.com/oksasatya/plantify/internal/domain/repository"
)

func TestBulkBodyIsNDJSON(t *testing.T) {
	body, err := bulkBody("explore_plants", []entity.CatalogPlant{
		{ID: "a", Name: "Monstera", Tags: []string{"Popular"}, IsActive: true},
		{ID: "b", Name: "Lavender"},
	})
	if err != nil {
		t.Fatalf("bulk body: %v", err)
	}
	sc := bufio.NewScanner(bytes.NewReader(body))
	var lines []map[string]any
	for sc.Scan() {
		var m map[string]any
		if err := json.Unmarshal(sc.Bytes(), &m); err != nil {
			t.Fatalf("line %q is not json: %v", sc.Text(), err)
		}
		lines = append(lines, m)
	}
	if len(lines) != 4 {
		t.Fatalf("expected 4 lines, got %d", len(lines))
	}
	meta := lines[0]["index"].(map[string]any)
	if meta["_id"] != "a" || meta["_index"] != "explore_plants" {
		t.Fatalf("unexpected action line %v", lines[0])
	}
	if lines[1]["name"] != "Monstera" || lines[1]["isActive"] != true {
		t.Fatalf("unexpected document %v", lines[1])
	}
}

func TestSearchQueryFilters(t *testing.T) {
	q := searchQuery(repository.CatalogFilter{Category: "Indoor", Search: " mon "}, 20)
	b, _ := json.Marshal(q)

	var parsed struct {
		Size  int `json:"size"`
		Query struct {
			Bool struct {
				Filter []map[string]map[string]any `json:"filter"`
				Must   []struct {
					MultiMatch struct {
						Query string `json:"query"`
						Type  string `json:"type"`
					} `json:"multi_match"`
				} `json:"must"`
			} `json:"bool"`
		} `json:"query"`
	}
	if err := json.Unmarshal(b, &parsed); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if parsed.Size != 20 || len(parsed.Query.Bool.Filter) != 2 {
		t.Fatalf("unexpected query %s", b)
	}
	if parsed.Query.Bool.Filter[1]["term"]["category"] != "Indoor" {
		t.Fatalf("expected category filter, got %s", b)
	}
	mm := parsed.Query.Bool.Must[0].MultiMatch
	if mm.Query != "mon" || mm.Type != "phrase_prefix" {
		t.Fatalf("unexpected multi_match %+v", mm)
	}

	q = searchQuery(repository.CatalogFilter{Search: "x"}, 10)
	b, _ = json.Marshal(q)
	_ = json.Unmarshal(b, &parsed)
	if len(parsed.Query.Bool.Filter) != 1 {
		t.Fatalf("expected only the active filter, got %s", b)
	}
}
