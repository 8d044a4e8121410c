// Package keyword provides the Bleve implementation of Index.
package keyword

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/standard"
	blevequery "github.com/blevesearch/bleve/v2/search/query"

	"github.com/pratham-bits/Shiksha-Setu/internal/models"
)

// Boosts control how much each field contributes to the relevance score.
// The defaults follow the catalog's relevance rule: title matches count five
// times a full-text match, keywords three times, content twice.
type Boosts struct {
	Title    float64
	Keywords float64
	Content  float64
}

// DefaultBoosts returns the standard field weighting.
func DefaultBoosts() Boosts {
	return Boosts{Title: 5.0, Keywords: 3.0, Content: 2.0}
}

// BleveIndex implements Index using Bleve.
type BleveIndex struct {
	index  bleve.Index
	boosts Boosts
}

// indexedDocument is the shape stored in the index. Facet fields use keyword
// mappings so term filters match exact values.
type indexedDocument struct {
	Title        string `json:"title"`
	Content      string `json:"content"`
	Keywords     string `json:"keywords"`
	FullText     string `json:"full_text"`
	DocumentType string `json:"document_type"`
	Category     string `json:"category"`
	Department   string `json:"department"`
}

// NewBleveIndex creates or opens a Bleve index at path. An existing index is
// opened and reused; remove the directory to force a full re-index after a
// mapping change.
func NewBleveIndex(path string, boosts Boosts) (*BleveIndex, error) {
	if _, err := os.Stat(path); err == nil {
		index, openErr := bleve.Open(path)
		if openErr != nil {
			return nil, fmt.Errorf("failed to open Bleve index: %w", openErr)
		}
		return &BleveIndex{index: index, boosts: boosts}, nil
	}

	im := bleve.NewIndexMapping()
	docMapping := bleve.NewDocumentMapping()

	textFieldMapping := bleve.NewTextFieldMapping()
	// Standard analyzer (lowercase + tokenize, no stemming) so queries match
	// the exact word forms used in policy titles.
	textFieldMapping.Analyzer = standard.Name
	docMapping.AddFieldMappingsAt("title", textFieldMapping)
	docMapping.AddFieldMappingsAt("content", textFieldMapping)
	docMapping.AddFieldMappingsAt("keywords", textFieldMapping)
	docMapping.AddFieldMappingsAt("full_text", textFieldMapping)

	keywordFieldMapping := bleve.NewKeywordFieldMapping()
	docMapping.AddFieldMappingsAt("document_type", keywordFieldMapping)
	docMapping.AddFieldMappingsAt("category", keywordFieldMapping)
	docMapping.AddFieldMappingsAt("department", keywordFieldMapping)

	im.AddDocumentMapping("document", docMapping)
	im.DefaultType = "document"
	im.DefaultMapping = docMapping

	index, err := bleve.New(path, im)
	if err != nil {
		return nil, fmt.Errorf("failed to create Bleve index: %w", err)
	}
	return &BleveIndex{index: index, boosts: boosts}, nil
}

// Index indexes a document under its catalog ID.
func (b *BleveIndex) Index(ctx context.Context, doc *models.Document) error {
	return b.index.Index(strconv.FormatInt(doc.ID, 10), indexedDocument{
		Title:        doc.Title,
		Content:      doc.Content,
		Keywords:     doc.Keywords,
		FullText:     doc.FullTextContent,
		DocumentType: doc.DocumentType,
		Category:     doc.Category,
		Department:   doc.Department,
	})
}

// Search runs a boosted match query over the text fields, optionally
// restricted by facet filters, and returns up to limit hits.
func (b *BleveIndex) Search(ctx context.Context, query string, limit int, f Filters) ([]*Result, error) {
	titleQuery := bleve.NewMatchQuery(query)
	titleQuery.SetField("title")
	titleQuery.SetBoost(b.boosts.Title)

	keywordsQuery := bleve.NewMatchQuery(query)
	keywordsQuery.SetField("keywords")
	keywordsQuery.SetBoost(b.boosts.Keywords)

	contentQuery := bleve.NewMatchQuery(query)
	contentQuery.SetField("content")
	contentQuery.SetBoost(b.boosts.Content)

	fullTextQuery := bleve.NewMatchQuery(query)
	fullTextQuery.SetField("full_text")

	textQuery := bleve.NewDisjunctionQuery(titleQuery, keywordsQuery, contentQuery, fullTextQuery)

	var q blevequery.Query = textQuery
	if filterQueries := buildFilters(f); len(filterQueries) > 0 {
		conjuncts := append([]blevequery.Query{textQuery}, filterQueries...)
		q = bleve.NewConjunctionQuery(conjuncts...)
	}

	req := bleve.NewSearchRequest(q)
	req.Size = limit
	results, err := b.index.Search(req)
	if err != nil {
		return nil, fmt.Errorf("Bleve search failed: %w", err)
	}

	out := make([]*Result, 0, len(results.Hits))
	for _, hit := range results.Hits {
		id, err := strconv.ParseInt(hit.ID, 10, 64)
		if err != nil {
			continue
		}
		out = append(out, &Result{ID: id, Score: hit.Score})
	}
	return out, nil
}

func buildFilters(f Filters) []blevequery.Query {
	var filters []blevequery.Query
	addTerm := func(field, value string) {
		if value == "" {
			return
		}
		tq := bleve.NewTermQuery(value)
		tq.SetField(field)
		filters = append(filters, tq)
	}
	addTerm("document_type", f.DocumentType)
	addTerm("category", f.Category)
	addTerm("department", f.Department)
	return filters
}

// Delete removes a document from the index.
func (b *BleveIndex) Delete(ctx context.Context, id int64) error {
	return b.index.Delete(strconv.FormatInt(id, 10))
}

// DocCount returns the total number of documents in the index.
func (b *BleveIndex) DocCount() (uint64, error) {
	return b.index.DocCount()
}

// Close closes the Bleve index.
func (b *BleveIndex) Close() error {
	return b.index.Close()
}
