package facetcrawl

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"facetcrawl/lib/scrapers/directory"
	"facetcrawl/lib/telemetry"
	"facetcrawl/lib/testutil"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func TestCrawlSite(t *testing.T) {
	site := &testutil.Site{
		Locations:  []string{"Warszawa", "Gdańsk", "GDAŃSK"},
		Categories: []string{"Kardiolog", "Chirurg - Onkolog"},
		Listings: map[string][][]testutil.Entry{
			"kardiolog/warszawa": {
				{
					{Name: "Jan Kowalski - Nowak", Facility: "Centrum | Wola "},
					{Name: "Anna Wiśniewska", Facility: "Mokotów"},
				},
				{
					{Name: "Piotr Zieliński", Facility: "Ursynów - Kabaty"},
				},
			},
			"chirurg-onkolog/gdansk": {
				{
					{Name: "Ewa Nowak", Facility: "Oliwa"},
				},
			},
		},
		Failing: map[string]bool{
			"/lekarze/chirurg-onkolog/warszawa,sl,1,s": true,
		},
	}
	server := testutil.Serve(t, site)

	client, err := directory.NewClient(directory.ClientOptions{
		ListingUrl: server.URL + "/lekarze",
		FacetsUrl:  server.URL + "/facets",
		Timeout:    time.Second * 5,
	})
	require.NoError(t, err)

	rec := telemetry.NewRecorder()
	tree := NewAggregator(client, rec, Options{PaginationLimit: 10, Workers: 2}).
		Gather(context.Background())

	expected := map[string]map[string][]directory.EntityRecord{
		"gdansk": {
			"chirurg-onkolog": {{Name: "Ewa Nowak", Facility: "Oliwa"}},
			"kardiolog":       {},
		},
		"warszawa": {
			"chirurg-onkolog": {},
			"kardiolog": {
				{Name: "Jan Kowalski-Nowak", Facility: "Centrum - Wola"},
				{Name: "Anna Wiśniewska", Facility: "Mokotów"},
				{Name: "Piotr Zieliński", Facility: "Ursynów-Kabaty"},
			},
		},
	}
	if diff := cmp.Diff(expected, tree.Map()); diff != "" {
		t.Fatalf("tree mismatch (-want +got):\n%s", diff)
	}

	require.Len(t, rec.Filter(telemetry.SeverityError), 1)
	require.Len(t, rec.Filter(telemetry.SeverityNote), 2)

	path := filepath.Join(t.TempDir(), "medi_docs.json")
	require.NoError(t, tree.Export(path))
	read, err := ReadTree(path)
	require.NoError(t, err)
	if diff := cmp.Diff(tree.Map(), read.Map()); diff != "" {
		t.Fatalf("round trip mismatch (-exported +read):\n%s", diff)
	}
}
