package facetcrawl

import (
	"context"
	"fmt"
	"sync"

	"facetcrawl/lib/scrapers/directory"
)

type fakeDirectory struct {
	locations  []string
	categories []string
	facetErr   map[directory.FacetKind]error
	// pages maps "category/location" to the record counts of pages 1, 2...,
	// pages past the end are empty.
	pages   map[string][]int
	pageErr map[string]error

	mu        sync.Mutex
	requested []string
}

func pairKey(category, location string) string {
	return fmt.Sprintf("%s/%s", category, location)
}

func pageKey(category, location string, page int) string {
	return fmt.Sprintf("%s/%s/%d", category, location, page)
}

func record(category, location string, page, i int) directory.EntityRecord {
	return directory.EntityRecord{
		Name:     fmt.Sprintf("%s %s p%d #%d", category, location, page, i),
		Facility: location,
	}
}

func (d *fakeDirectory) FacetLabels(ctx context.Context, kind directory.FacetKind) ([]string, error) {
	if err := d.facetErr[kind]; err != nil {
		return nil, err
	}
	if kind == directory.FacetLocation {
		return d.locations, nil
	}
	return d.categories, nil
}

func (d *fakeDirectory) ListingPage(ctx context.Context, category, location string, page int) (directory.Page, error) {
	key := pageKey(category, location, page)
	d.mu.Lock()
	d.requested = append(d.requested, key)
	d.mu.Unlock()

	if err := d.pageErr[key]; err != nil {
		return directory.Page{}, err
	}

	counts := d.pages[pairKey(category, location)]
	if page > len(counts) {
		return directory.Page{Records: []directory.EntityRecord{}}, nil
	}
	result := directory.Page{
		Elements: counts[page-1],
		Records:  []directory.EntityRecord{},
	}
	for i := 0; i < counts[page-1]; i++ {
		result.Records = append(result.Records, record(category, location, page, i))
	}
	return result, nil
}

func (d *fakeDirectory) Requested() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]string(nil), d.requested...)
}
