package search

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/standard"
	"github.com/blevesearch/bleve/v2/mapping"
	bleveQuery "github.com/blevesearch/bleve/v2/search/query"
)

type BleveEngine struct {
	idx bleve.Index
}

// NewBleveEngine opens or creates a Bleve index at indexPath. An empty path
// keeps the index in memory.
func NewBleveEngine(indexPath string) (*BleveEngine, error) {
	if indexPath == "" {
		idx, err := bleve.NewMemOnly(buildIndexMapping())
		if err != nil {
			return nil, fmt.Errorf("creating in-memory index: %w", err)
		}
		return &BleveEngine{idx: idx}, nil
	}

	if err := os.MkdirAll(filepath.Dir(indexPath), 0o755); err != nil {
		return nil, fmt.Errorf("creating index directory: %w", err)
	}

	idx, err := bleve.Open(indexPath)
	if err != nil {
		idx, err = bleve.New(indexPath, buildIndexMapping())
		if err != nil {
			return nil, fmt.Errorf("creating index: %w", err)
		}
	}
	return &BleveEngine{idx: idx}, nil
}

func buildIndexMapping() mapping.IndexMapping {
	im := bleve.NewIndexMapping()
	im.DefaultAnalyzer = standard.Name

	dm := bleve.NewDocumentMapping()

	title := bleve.NewTextFieldMapping()
	title.Analyzer = standard.Name
	title.Store = true
	title.IncludeTermVectors = true

	desc := bleve.NewTextFieldMapping()
	desc.Analyzer = standard.Name
	desc.Store = true

	url := bleve.NewTextFieldMapping()
	url.Analyzer = standard.Name
	url.Store = true

	stored := bleve.NewKeywordFieldMapping()
	stored.Store = true

	dm.AddFieldMappingsAt("title", title)
	dm.AddFieldMappingsAt("description", desc)
	dm.AddFieldMappingsAt("url", url)
	dm.AddFieldMappingsAt("kind", stored)
	dm.AddFieldMappingsAt("id", stored)
	dm.AddFieldMappingsAt("index", stored)

	im.DefaultMapping = dm
	return im
}

// Index drops every document and indexes docs in one batch.
func (b *BleveEngine) Index(docs []Doc) error {
	batch := b.idx.NewBatch()

	req := bleve.NewSearchRequestOptions(bleve.NewMatchAllQuery(), 10000, 0, false)
	res, err := b.idx.Search(req)
	if err != nil {
		return fmt.Errorf("listing indexed docs: %w", err)
	}
	for _, h := range res.Hits {
		batch.Delete(h.ID)
	}

	for _, d := range docs {
		err := batch.Index(d.key(), map[string]any{
			"kind":        string(d.Kind),
			"id":          d.ID,
			"index":       strconv.Itoa(d.Index),
			"title":       d.Title,
			"description": d.Description,
			"url":         d.URL,
		})
		if err != nil {
			return fmt.Errorf("indexing %s: %w", d.key(), err)
		}
	}
	return b.idx.Batch(batch)
}

func (b *BleveEngine) Search(query string, limit int) ([]*Result, error) {
	if len(strings.TrimSpace(query)) < 2 {
		return []*Result{}, nil
	}
	if limit <= 0 {
		limit = 10
	}
	// OR of per-term matches across key fields with boosts
	var qs []bleveQuery.Query
	for _, tok := range tokenize(query) {
		for _, f := range []struct {
			field        string
			match, prefx float64
		}{
			{"title", 4.0, 3.5},
			{"description", 2.0, 1.8},
			{"url", 0.5, 0.3},
		} {
			qm := bleve.NewMatchQuery(tok)
			qm.SetField(f.field)
			qm.SetBoost(f.match)
			qp := bleve.NewPrefixQuery(tok)
			qp.SetField(f.field)
			qp.SetBoost(f.prefx)
			qs = append(qs, qm, qp)
		}
	}
	if len(qs) == 0 {
		return []*Result{}, nil
	}

	srch := bleve.NewSearchRequestOptions(bleve.NewDisjunctionQuery(qs...), limit, 0, false)
	srch.Fields = []string{"kind", "id", "index", "title", "description", "url"}
	res, err := b.idx.Search(srch)
	if err != nil {
		return nil, err
	}

	out := make([]*Result, 0, len(res.Hits))
	for _, h := range res.Hits {
		d := Doc{}
		if v, ok := h.Fields["kind"].(string); ok {
			d.Kind = Kind(v)
		}
		if v, ok := h.Fields["id"].(string); ok {
			d.ID = v
		}
		if v, ok := h.Fields["index"].(string); ok {
			d.Index, _ = strconv.Atoi(v)
		}
		if v, ok := h.Fields["title"].(string); ok {
			d.Title = v
		}
		if v, ok := h.Fields["description"].(string); ok {
			d.Description = v
		}
		if v, ok := h.Fields["url"].(string); ok {
			d.URL = v
		}
		out = append(out, &Result{Doc: d, Score: h.Score})
	}
	return out, nil
}

// DocCount reports total documents in the index.
func (b *BleveEngine) DocCount() (int, error) {
	n, err := b.idx.DocCount()
	return int(n), err
}

func (b *BleveEngine) Close() error {
	return b.idx.Close()
}
