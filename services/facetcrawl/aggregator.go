package facetcrawl

import (
	"context"

	"facetcrawl/lib/scrapers/directory"
	"facetcrawl/lib/telemetry"

	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/sync/errgroup"
)

type Options struct {
	// PaginationLimit is the highest page index requested per facet pair.
	PaginationLimit int
	// Workers is the amount of facet pairs crawled at once, 1 crawls them
	// one after another.
	Workers int
}

type Aggregator struct {
	resolver Resolver
	crawler  Crawler
	tel      telemetry.API
	workers  int
}

func NewAggregator(dir Directory, tel telemetry.API, opts Options) Aggregator {
	if opts.Workers < 1 {
		opts.Workers = 1
	}
	return Aggregator{
		resolver: NewResolver(dir, telemetry.NewScopedAPI("resolver", tel)),
		crawler:  NewCrawler(dir, telemetry.NewScopedAPI("crawler", tel), opts.PaginationLimit),
		tel:      tel,
		workers:  opts.Workers,
	}
}

// Gather resolves both facet sets and crawls every (location, category)
// pair of their product. Pairs are handed out in sorted order, every pair
// gets an entry in the tree even when nothing was found for it.
func (a Aggregator) Gather(ctx context.Context) *ResultTree {
	ctx, span := tracer.Start(ctx, "aggregator:Gather")
	defer span.End()

	locations := a.resolver.ResolveFacets(ctx, directory.FacetLocation)
	categories := a.resolver.ResolveFacets(ctx, directory.FacetCategory)
	span.SetAttributes(
		attribute.Int("locations", len(locations)),
		attribute.Int("categories", len(categories)),
		attribute.Int("workers", a.workers),
	)
	a.tel.ReportInfo(
		"crawling facet pairs",
		"locations", len(locations),
		"categories", len(categories),
		"workers", a.workers,
	)

	tree := NewResultTree()

	group := errgroup.Group{}
	group.SetLimit(a.workers)
	for _, location := range locations {
		tree.AddLocation(location)
		for _, category := range categories {
			group.Go(func() error {
				result := a.crawler.CrawlFacetPair(ctx, location, category)
				if result.Interrupted {
					// an unfinished pair is left out, an entry means it was fully queried
					tree.MarkInterrupted(location, category)
					return nil
				}
				if result.Truncated {
					tree.MarkTruncated(location, category)
				}
				err := tree.Set(location, category, result.Records)
				if err != nil {
					a.tel.ReportCritical(
						"result-tree",
						"location", location,
						"category", category,
						"err", err,
					)
				}
				return nil
			})
		}
	}
	group.Wait()

	summary := tree.Summary()
	a.tel.ReportCount("pairs", int64(summary.Pairs))
	a.tel.ReportCount("non-empty-pairs", int64(summary.NonEmptyPairs))
	a.tel.ReportCount("records", int64(summary.Records))
	a.tel.ReportCount("truncated-pairs", int64(summary.Truncated))
	a.tel.ReportCount("interrupted-pairs", int64(summary.Interrupted))
	return tree
}
