package facetcrawl

import (
	"context"

	"facetcrawl/lib/scrapers/directory"
	"facetcrawl/lib/telemetry"
	"facetcrawl/lib/textutil"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

// FacetSet is a sorted, duplicate free list of facet ids.
type FacetSet []string

type Resolver struct {
	dir Directory
	tel telemetry.API
}

func NewResolver(dir Directory, tel telemetry.API) Resolver {
	return Resolver{dir: dir, tel: tel}
}

// ResolveFacets lists every facet id of the given kind. A failed upstream
// call is reported and results in an empty set, it never aborts the caller.
func (r Resolver) ResolveFacets(ctx context.Context, kind directory.FacetKind) FacetSet {
	ctx, span := tracer.Start(ctx, "resolver:ResolveFacets")
	defer span.End()
	span.SetAttributes(attribute.String("kind", kind.String()))

	labels, err := r.dir.FacetLabels(ctx, kind)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to fetch facet labels")
		r.tel.ReportBroken(
			"facet-listing",
			"kind", kind.String(),
			"err", err,
		)
		return FacetSet{}
	}

	ids := FacetSet(textutil.FacetIDs(labels))
	span.SetAttributes(
		attribute.Int("labels", len(labels)),
		attribute.Int("ids", len(ids)),
	)
	r.tel.ReportDebug(
		"resolved facets",
		"kind", kind.String(),
		"labels", len(labels),
		"ids", len(ids),
	)
	return ids
}
