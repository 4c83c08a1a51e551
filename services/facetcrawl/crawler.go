package facetcrawl

import (
	"context"

	"facetcrawl/lib/scrapers/directory"
	"facetcrawl/lib/telemetry"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const DefaultPaginationLimit = 50

// PairResult is everything collected for one (location, category) pair.
type PairResult struct {
	// Records holds the records of every page in page order, it is never nil.
	Records []directory.EntityRecord
	// Pages is the amount of listing pages requested.
	Pages int
	// Truncated is set when the pagination limit was reached before an
	// empty page was seen, there may be more records upstream.
	Truncated bool
	// Interrupted is set when the context was cancelled before pagination
	// finished, Records then hold only what was collected up to that point.
	Interrupted bool
}

type Crawler struct {
	dir   Directory
	tel   telemetry.API
	limit int
}

// NewCrawler creates a crawler that requests at most `paginationLimit`
// pages per facet pair, a limit below 1 means DefaultPaginationLimit.
func NewCrawler(dir Directory, tel telemetry.API, paginationLimit int) Crawler {
	if paginationLimit < 1 {
		paginationLimit = DefaultPaginationLimit
	}
	return Crawler{dir: dir, tel: tel, limit: paginationLimit}
}

func (c Crawler) PaginationLimit() int {
	return c.limit
}

// fetchPage never fails, a page that could not be fetched or parsed is
// reported and handed back as an empty page, ending the pair's pagination
// the same way a real end of results would.
func (c Crawler) fetchPage(ctx context.Context, location, category string, page int) directory.Page {
	result, err := c.dir.ListingPage(ctx, category, location, page)
	pagesCounter.Add(ctx, 1)
	if err != nil {
		if ctx.Err() != nil {
			return directory.Page{}
		}
		c.tel.ReportBroken(
			"listing-page",
			"category", category,
			"location", location,
			"page", page,
			"err", err,
		)
		return directory.Page{}
	}
	return result
}

// CrawlFacetPair walks the listing pages of one facet pair, starting at page
// 1, until a page without entity elements shows up or the pagination limit
// is exhausted.
func (c Crawler) CrawlFacetPair(ctx context.Context, location, category string) PairResult {
	ctx, span := tracer.Start(ctx, "crawler:CrawlFacetPair")
	defer span.End()
	span.SetAttributes(
		attribute.String("location", location),
		attribute.String("category", category),
	)

	pairAttrs := metric.WithAttributes(attribute.String("location", location))

	result := PairResult{Records: []directory.EntityRecord{}}
	for page := 1; page <= c.limit; page++ {
		if ctx.Err() != nil {
			return c.interrupted(result, location, category, page)
		}

		current := c.fetchPage(ctx, location, category, page)
		result.Pages++
		if ctx.Err() != nil {
			return c.interrupted(result, location, category, page)
		}

		if current.Empty() {
			if len(result.Records) == 0 {
				emptyPairsCounter.Add(ctx, 1, pairAttrs)
				c.tel.ReportNote(
					"no entities for facet pair",
					"category", category,
					"location", location,
				)
			}
			span.SetAttributes(
				attribute.Int("pages", result.Pages),
				attribute.Int("records", len(result.Records)),
			)
			return result
		}

		c.tel.ReportInfo(
			"page found",
			"category", category,
			"location", location,
			"page", page,
		)
		recordsCounter.Add(ctx, int64(len(current.Records)), pairAttrs)
		result.Records = append(result.Records, current.Records...)
	}

	result.Truncated = true
	span.SetAttributes(
		attribute.Int("pages", result.Pages),
		attribute.Int("records", len(result.Records)),
		attribute.Bool("truncated", true),
	)
	c.tel.ReportWarning(
		"pagination-limit",
		"category", category,
		"location", location,
		"limit", c.limit,
		"records", len(result.Records),
	)
	return result
}

func (c Crawler) interrupted(result PairResult, location, category string, page int) PairResult {
	result.Interrupted = true
	c.tel.ReportWarning(
		"crawl-cancelled",
		"category", category,
		"location", location,
		"page", page,
	)
	return result
}
