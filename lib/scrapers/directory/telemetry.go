package directory

import "facetcrawl/lib/telemetry"

var tracer = telemetry.Tracer("facetcrawl/scrapers/directory")
