package directory

import (
	"context"
	"encoding/json"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

type facetsRequest struct {
	AutocompleteType FacetKind `json:"autocompleteType"`
	City             string    `json:"city"`
	Specialization   string    `json:"specialization"`
	GetAll           bool      `json:"getAll"`
}

// parseFacetLabels reads the labels out of a facet listing response, a json
// body of any shape other than `{"d": ["label", ...]}` yields no labels.
func parseFacetLabels(body []byte) ([]string, error) {
	var envelope map[string]json.RawMessage
	err := json.Unmarshal(body, &envelope)
	if err != nil {
		var anything any
		if json.Unmarshal(body, &anything) == nil {
			return []string{}, nil
		}
		return nil, fmt.Errorf("%w: unparseable facet listing: %w", ErrTransport, err)
	}

	raw, ok := envelope["d"]
	if !ok {
		return []string{}, nil
	}
	var labels []string
	err = json.Unmarshal(raw, &labels)
	if err != nil || labels == nil {
		return []string{}, nil
	}
	return labels, nil
}

// FacetLabels asks the facet listing endpoint for every label of the given kind.
// The labels are returned as the endpoint sent them, unnormalized.
func (c *Client) FacetLabels(ctx context.Context, kind FacetKind) ([]string, error) {
	ctx, span := tracer.Start(ctx, "client:FacetLabels")
	defer span.End()
	span.SetAttributes(attribute.String("kind", kind.String()))

	res, err := c.Http.R().
		SetContext(ctx).
		SetBody(facetsRequest{
			AutocompleteType: kind,
			GetAll:           true,
		}).
		Post(c.FacetsUrl)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to fetch")
		return nil, fmt.Errorf("%w: %w", ErrTransport, err)
	}
	if !res.IsSuccess() {
		span.SetStatus(codes.Error, "non-success status")
		return nil, fmt.Errorf("%w: facet listing returned %s", ErrTransport, res.Status())
	}

	labels, err := parseFacetLabels(res.Body())
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to parse body")
		return nil, err
	}
	span.SetAttributes(attribute.Int("labels", len(labels)))
	return labels, nil
}
