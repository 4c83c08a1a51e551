package facetcrawl

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"facetcrawl/lib/scrapers/directory"
	"facetcrawl/lib/telemetry"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func TestGatherExample(t *testing.T) {
	dir := &fakeDirectory{
		locations:  []string{"Warszawa", "Gdańsk"},
		categories: []string{"Kardiolog"},
		pages: map[string][]int{
			pairKey("kardiolog", "warszawa"): {2},
		},
	}
	rec := telemetry.NewRecorder()

	tree := NewAggregator(dir, rec, Options{PaginationLimit: 50, Workers: 1}).Gather(context.Background())

	expected := map[string]map[string][]directory.EntityRecord{
		"gdansk": {"kardiolog": {}},
		"warszawa": {"kardiolog": {
			record("kardiolog", "warszawa", 1, 0),
			record("kardiolog", "warszawa", 1, 1),
		}},
	}
	if diff := cmp.Diff(expected, tree.Map()); diff != "" {
		t.Fatalf("tree mismatch (-want +got):\n%s", diff)
	}

	notes := rec.Filter(telemetry.SeverityNote)
	require.Len(t, notes, 1)
	require.Equal(t, "crawler: no entities for facet pair", notes[0].Message)
	location, _ := notes[0].Param("location")
	require.Equal(t, "gdansk", location)
	require.Len(t, rec.Filter(telemetry.SeverityError), 0)

	require.Equal(t, []string{
		"kardiolog/gdansk/1",
		"kardiolog/warszawa/1",
		"kardiolog/warszawa/2",
	}, dir.Requested())

	pairs, _ := rec.Count("pairs")
	require.Equal(t, int64(2), pairs)
	records, _ := rec.Count("records")
	require.Equal(t, int64(2), records)
}

func TestGatherResolverFailure(t *testing.T) {
	testCases := []struct {
		failing directory.FacetKind
	}{
		{failing: directory.FacetLocation},
		{failing: directory.FacetCategory},
	}

	for _, tc := range testCases {
		t.Run(tc.failing.String(), func(t *testing.T) {
			dir := &fakeDirectory{
				locations:  []string{"Warszawa"},
				categories: []string{"Kardiolog"},
				facetErr: map[directory.FacetKind]error{
					tc.failing: fmt.Errorf("%w: 503 Service Unavailable", directory.ErrTransport),
				},
			}
			rec := telemetry.NewRecorder()

			tree := NewAggregator(dir, rec, Options{}).Gather(context.Background())

			require.Len(t, dir.Requested(), 0)
			require.Equal(t, 0, tree.Summary().Pairs)
			errs := rec.Filter(telemetry.SeverityError)
			require.Len(t, errs, 1)
			require.Equal(t, "resolver: facet-listing", errs[0].Message)

			if tc.failing == directory.FacetLocation {
				require.Len(t, tree.Locations(), 0)
			} else {
				require.Equal(t, []string{"warszawa"}, tree.Locations())
				require.Len(t, tree.Categories("warszawa"), 0)
			}
		})
	}
}

func TestGatherParallelMatchesSequential(t *testing.T) {
	newDir := func() *fakeDirectory {
		dir := &fakeDirectory{
			locations:  []string{"Łódź", "Kraków", "Gdańsk", "Warszawa", "Poznań"},
			categories: []string{"Kardiolog", "Dermatolog", "Chirurg - Onkolog", "Alergolog/Pulmonolog"},
			pages:      map[string][]int{},
		}
		for i, location := range []string{"lodz", "krakow", "gdansk", "warszawa", "poznan"} {
			dir.pages[pairKey("kardiolog", location)] = []int{i + 1, 1}
			dir.pages[pairKey("chirurg-onkolog", location)] = []int{3}
		}
		return dir
	}

	sequential := NewAggregator(newDir(), telemetry.NewRecorder(), Options{Workers: 1}).
		Gather(context.Background())

	parallelDir := newDir()
	rec := telemetry.NewRecorder()
	parallel := NewAggregator(parallelDir, rec, Options{Workers: 8}).
		Gather(context.Background())

	if diff := cmp.Diff(sequential.Map(), parallel.Map()); diff != "" {
		t.Fatalf("parallel tree differs (-sequential +parallel):\n%s", diff)
	}
	require.Equal(t, 20, parallel.Summary().Pairs)
	require.Len(t, rec.Filter(telemetry.SeverityCritical), 0)
	require.Len(t, rec.Filter(telemetry.SeverityNote), 10)
}

func TestGatherMarksTruncated(t *testing.T) {
	dir := &fakeDirectory{
		locations:  []string{"Warszawa"},
		categories: []string{"Kardiolog", "Dermatolog"},
		pages: map[string][]int{
			pairKey("kardiolog", "warszawa"): {1, 1, 1},
		},
	}
	rec := telemetry.NewRecorder()
	tree := NewAggregator(dir, rec, Options{PaginationLimit: 2}).Gather(context.Background())

	require.Equal(t, []Pair{{Location: "warszawa", Category: "kardiolog"}}, tree.Truncated())
	truncated, _ := rec.Count("truncated-pairs")
	require.Equal(t, int64(1), truncated)
}

func TestResultTreeWriteOnce(t *testing.T) {
	tree := NewResultTree()
	require.NoError(t, tree.Set("warszawa", "kardiolog", nil))
	err := tree.Set("warszawa", "kardiolog", []directory.EntityRecord{{Name: "x"}})
	require.True(t, errors.Is(err, ErrSlotWritten))

	records, ok := tree.Get("warszawa", "kardiolog")
	require.True(t, ok)
	require.NotNil(t, records)
	require.Len(t, records, 0)
}

func TestGatherCancelledLeavesPairsOut(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	dir := &fakeDirectory{
		locations:  []string{"Warszawa", "Gdańsk"},
		categories: []string{"Kardiolog"},
	}
	rec := telemetry.NewRecorder()

	tree := NewAggregator(dir, rec, Options{}).Gather(ctx)

	require.Len(t, dir.Requested(), 0)
	require.Equal(t, map[string]map[string][]directory.EntityRecord{
		"gdansk":   {},
		"warszawa": {},
	}, tree.Map())
	_, ok := tree.Get("gdansk", "kardiolog")
	require.False(t, ok)

	require.False(t, tree.Complete())
	require.Equal(t, []Pair{
		{Location: "gdansk", Category: "kardiolog"},
		{Location: "warszawa", Category: "kardiolog"},
	}, tree.Interrupted())
	require.Equal(t, 0, tree.Summary().Pairs)
	require.Equal(t, 2, tree.Summary().Interrupted)
	require.Len(t, rec.Filter(telemetry.SeverityNote), 0)

	interrupted, _ := rec.Count("interrupted-pairs")
	require.Equal(t, int64(2), interrupted)
}

func TestGatherCompletedRunIsComplete(t *testing.T) {
	dir := &fakeDirectory{
		locations:  []string{"Warszawa"},
		categories: []string{"Kardiolog"},
	}
	tree := NewAggregator(dir, telemetry.NewRecorder(), Options{}).Gather(context.Background())
	require.True(t, tree.Complete())
	require.Len(t, tree.Interrupted(), 0)
}
