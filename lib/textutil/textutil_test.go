package textutil

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func TestFacetID(t *testing.T) {
	testCases := []struct {
		label    string
		expected string
	}{
		{label: "Warszawa", expected: "warszawa"},
		{label: "Gdańsk", expected: "gdansk"},
		{label: "Łódź", expected: "lodz"},
		{label: "Zielona Góra", expected: "zielona-gora"},
		{label: "Bielsko - Biała", expected: "bielsko-biala"},
		{label: "Alergolog/Pulmonolog", expected: "alergolog-pulmonolog"},
		{label: "Chirurg ogólny - dzieci", expected: "chirurg-ogolny-dzieci"},
		{label: "  Nowy   Sącz ", expected: "nowy-sacz"},
		{label: "Nowy\tSącz", expected: "nowy-sacz"},
		{label: "Nowy Sącz", expected: "nowy-sacz"},
		{label: "", expected: ""},
	}

	for _, test := range testCases {
		require.Equal(t, test.expected, FacetID(test.label), test.label)
	}
}

func TestFacetIDIdempotent(t *testing.T) {
	labels := []string{
		"Kraków", "KRAKÓW", "Bielsko - Biała", "Alergolog/Pulmonolog",
		"Ścinawa / Wołów", "Straße", "  spaced   out  ", "ǅemal", "北京", "a -/- b",
	}
	for _, label := range labels {
		once := FacetID(label)
		require.Equal(t, once, FacetID(once), label)
	}
}

func TestFacetIDConverges(t *testing.T) {
	variants := []string{"Kraków", "krakow", "KRAKÓW", "Krakow ", " kraków"}
	for _, v := range variants {
		require.Equal(t, "krakow", FacetID(v), v)
	}
}

func TestFacetIDs(t *testing.T) {
	labels := []string{"Warszawa", "Gdańsk", "gdansk", "Łódź", "WARSZAWA", "", "   ", "Gdansk"}
	expected := []string{"gdansk", "lodz", "warszawa"}

	diff := cmp.Diff(expected, FacetIDs(labels))
	if diff != "" {
		t.Fatal(diff)
	}

	require.Empty(t, FacetIDs(nil))
	require.NotNil(t, FacetIDs(nil))
}

func TestSimilarFacets(t *testing.T) {
	ids := []string{"ginekolog", "ginekolog-endokrynolog", "kardiolog", "kardiologg", "warszawa"}

	pairs := SimilarFacets(ids, 0.95)
	require.NotEmpty(t, pairs)
	require.Equal(t, "kardiolog", pairs[0].Left)
	require.Equal(t, "kardiologg", pairs[0].Right)
	for _, p := range pairs {
		require.GreaterOrEqual(t, p.Similarity, 0.95)
		require.NotEqual(t, "warszawa", p.Left)
		require.NotEqual(t, "warszawa", p.Right)
	}

	require.Empty(t, SimilarFacets(ids, 1.01))
	require.Empty(t, SimilarFacets([]string{"a"}, 0))
}
