package directory

import (
	"bytes"
	"context"
	"fmt"

	"github.com/PuerkitoBio/goquery"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

// PageUrl composes the listing url of one result page, pages start at 1.
func (c *Client) PageUrl(category, location string, page int) string {
	return fmt.Sprintf("%s/%s/%s,sl,%d,s", c.ListingUrl, category, location, page)
}

// ListingPage fetches one result page for a (category, location) pair and
// extracts its entities.
func (c *Client) ListingPage(ctx context.Context, category, location string, page int) (Page, error) {
	ctx, span := tracer.Start(ctx, "client:ListingPage")
	defer span.End()
	span.SetAttributes(
		attribute.String("category", category),
		attribute.String("location", location),
		attribute.Int("page", page),
	)

	res, err := c.Http.R().
		SetContext(ctx).
		Get(c.PageUrl(category, location, page))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to fetch")
		return Page{}, fmt.Errorf("%w: %w", ErrTransport, err)
	}
	if !res.IsSuccess() {
		span.SetStatus(codes.Error, "non-success status")
		return Page{}, fmt.Errorf("%w: listing page returned %s", ErrTransport, res.Status())
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewBuffer(res.Body()))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to parse html")
		return Page{}, fmt.Errorf("%w: %w", ErrMalformedPage, err)
	}

	result := ExtractEntities(doc, c.selectors)
	span.SetAttributes(
		attribute.Int("elements", result.Elements),
		attribute.Int("records", len(result.Records)),
	)
	return result, nil
}
