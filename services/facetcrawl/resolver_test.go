package facetcrawl

import (
	"context"
	"testing"

	"facetcrawl/lib/scrapers/directory"
	"facetcrawl/lib/telemetry"

	"github.com/stretchr/testify/require"
)

func TestResolveFacets(t *testing.T) {
	dir := &fakeDirectory{
		locations: []string{
			"Warszawa",
			"Zielona Góra",
			"zielona  gora",
			"ZIELONA GÓRA",
			"Bielsko - Biała",
			"",
			"Gdańsk",
			"Warszawa",
		},
		categories: []string{"Alergolog/Pulmonolog", "Kardiolog", "Chirurg - Onkolog"},
	}
	rec := telemetry.NewRecorder()
	resolver := NewResolver(dir, rec)

	require.Equal(t, FacetSet{
		"bielsko-biala",
		"gdansk",
		"warszawa",
		"zielona-gora",
	}, resolver.ResolveFacets(context.Background(), directory.FacetLocation))
	require.Equal(t, FacetSet{
		"alergolog-pulmonolog",
		"chirurg-onkolog",
		"kardiolog",
	}, resolver.ResolveFacets(context.Background(), directory.FacetCategory))
	require.Len(t, rec.Filter(telemetry.SeverityError), 0)
}

func TestResolveFacetsFailure(t *testing.T) {
	dir := &fakeDirectory{
		locations: []string{"Warszawa"},
		facetErr: map[directory.FacetKind]error{
			directory.FacetLocation: directory.ErrTransport,
		},
	}
	rec := telemetry.NewRecorder()

	set := NewResolver(dir, rec).ResolveFacets(context.Background(), directory.FacetLocation)
	require.NotNil(t, set)
	require.Len(t, set, 0)

	errs := rec.Filter(telemetry.SeverityError)
	require.Len(t, errs, 1)
	kind, _ := errs[0].Param("kind")
	require.Equal(t, "location", kind)
}
