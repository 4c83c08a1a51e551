package testutil

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseListingPath(t *testing.T) {
	testCases := []struct {
		path     string
		category string
		location string
		page     int
		ok       bool
	}{
		{path: "kardiolog/gdansk,sl,1,s", category: "kardiolog", location: "gdansk", page: 1, ok: true},
		{path: "chirurg-onkolog/bielsko-biala,sl,12,s", category: "chirurg-onkolog", location: "bielsko-biala", page: 12, ok: true},
		{path: "kardiolog/gdansk", ok: false},
		{path: "kardiolog/gdansk,sl,x,s", ok: false},
		{path: "kardiolog", ok: false},
	}

	for _, tc := range testCases {
		category, location, page, ok := parseListingPath(tc.path)
		require.Equal(t, tc.ok, ok, tc.path)
		if !ok {
			continue
		}
		require.Equal(t, tc.category, category)
		require.Equal(t, tc.location, location)
		require.Equal(t, tc.page, page)
	}
}
