package facetcrawl

import (
	"context"

	"facetcrawl/lib/scrapers/directory"
)

// Directory is the upstream directory site as seen by the engine,
// *directory.Client implements it.
type Directory interface {
	FacetLabels(ctx context.Context, kind directory.FacetKind) ([]string, error)
	ListingPage(ctx context.Context, category, location string, page int) (directory.Page, error)
}

var _ Directory = (*directory.Client)(nil)
