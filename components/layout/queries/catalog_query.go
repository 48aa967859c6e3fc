package queries

import (
	"context"
	"errors"

	gocommand "github.com/goliatone/go-command"
	layout "github.com/intrakit/intraboard/components/layout"
)

// CatalogQueryInput filters the catalog listing.
type CatalogQueryInput struct {
	Category string `json:"category,omitempty"`
}

// CatalogQueryOutput lists registered widget definitions.
type CatalogQueryOutput struct {
	Entries []layout.CatalogEntry `json:"entries"`
}

type catalogReader interface {
	Catalog() *layout.Catalog
}

// CatalogQuery lists the widget catalog behind a controller.
type CatalogQuery struct {
	controller catalogReader
}

// NewCatalogQuery builds the query.
func NewCatalogQuery(controller catalogReader) *CatalogQuery {
	return &CatalogQuery{controller: controller}
}

var _ gocommand.Querier[CatalogQueryInput, CatalogQueryOutput] = (*CatalogQuery)(nil)

// Query returns catalog entries, optionally narrowed to one category.
func (q *CatalogQuery) Query(_ context.Context, in CatalogQueryInput) (CatalogQueryOutput, error) {
	if q.controller == nil {
		return CatalogQueryOutput{}, errors.New("catalog query requires controller")
	}
	entries := q.controller.Catalog().Entries()
	if in.Category == "" {
		return CatalogQueryOutput{Entries: entries}, nil
	}

	filtered := make([]layout.CatalogEntry, 0, len(entries))
	for _, entry := range entries {
		if entry.Category == in.Category {
			filtered = append(filtered, entry)
		}
	}
	return CatalogQueryOutput{Entries: filtered}, nil
}
