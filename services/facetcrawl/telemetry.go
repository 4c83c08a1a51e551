package facetcrawl

import (
	"facetcrawl/lib/telemetry"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

var tracer = telemetry.Tracer("facetcrawl/services/facetcrawl")

var meter = otel.Meter("facetcrawl/services/facetcrawl")

var pagesCounter, _ = meter.Int64Counter(
	"facetcrawl.pages",
	metric.WithDescription("The total amount of listing pages requested."),
)

var recordsCounter, _ = meter.Int64Counter(
	"facetcrawl.records",
	metric.WithDescription("The total amount of entity records extracted."),
)

var emptyPairsCounter, _ = meter.Int64Counter(
	"facetcrawl.empty_pairs",
	metric.WithDescription("The total amount of facet pairs without a single entity."),
)
