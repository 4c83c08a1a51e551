package facetcrawl

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"slices"
	"sync"

	"facetcrawl/lib/scrapers/directory"
)

var ErrSlotWritten = errors.New("result slot already written")

type Pair struct {
	Location string
	Category string
}

// ResultTree maps location id -> category id -> records. Each
// (location, category) slot can be written only once, it is safe for
// concurrent use.
type ResultTree struct {
	mu          sync.Mutex
	entries     map[string]map[string][]directory.EntityRecord
	truncated   map[Pair]struct{}
	interrupted map[Pair]struct{}
}

func NewResultTree() *ResultTree {
	return &ResultTree{
		entries:     map[string]map[string][]directory.EntityRecord{},
		truncated:   map[Pair]struct{}{},
		interrupted: map[Pair]struct{}{},
	}
}

// AddLocation makes sure the location has an entry, so that it is exported
// even when no category was crawled for it.
func (t *ResultTree) AddLocation(location string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.location(location)
}

func (t *ResultTree) location(location string) map[string][]directory.EntityRecord {
	categories, ok := t.entries[location]
	if !ok {
		categories = map[string][]directory.EntityRecord{}
		t.entries[location] = categories
	}
	return categories
}

// Set stores the records of one facet pair, a nil slice is stored as an
// empty one so that the pair still shows up as queried.
func (t *ResultTree) Set(location, category string, records []directory.EntityRecord) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	categories := t.location(location)
	if _, exists := categories[category]; exists {
		return fmt.Errorf("%w: %s/%s", ErrSlotWritten, location, category)
	}
	if records == nil {
		records = []directory.EntityRecord{}
	}
	categories[category] = records
	return nil
}

func (t *ResultTree) Get(location, category string) ([]directory.EntityRecord, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	records, ok := t.entries[location][category]
	return records, ok
}

// Locations returns every location id, sorted.
func (t *ResultTree) Locations() []string {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]string, 0, len(t.entries))
	for location := range t.entries {
		out = append(out, location)
	}
	slices.Sort(out)
	return out
}

// Categories returns the category ids stored under a location, sorted.
func (t *ResultTree) Categories(location string) []string {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]string, 0, len(t.entries[location]))
	for category := range t.entries[location] {
		out = append(out, category)
	}
	slices.Sort(out)
	return out
}

func (t *ResultTree) MarkTruncated(location, category string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.truncated[Pair{Location: location, Category: category}] = struct{}{}
}

func sortedPairs(set map[Pair]struct{}) []Pair {
	out := make([]Pair, 0, len(set))
	for pair := range set {
		out = append(out, pair)
	}
	slices.SortFunc(out, func(a, b Pair) int {
		if a.Location != b.Location {
			if a.Location < b.Location {
				return -1
			}
			return 1
		}
		if a.Category < b.Category {
			return -1
		}
		if a.Category > b.Category {
			return 1
		}
		return 0
	})
	return out
}

// Truncated lists the pairs whose pagination hit the page limit, sorted by
// location then category.
func (t *ResultTree) Truncated() []Pair {
	t.mu.Lock()
	defer t.mu.Unlock()
	return sortedPairs(t.truncated)
}

// MarkInterrupted records a pair whose crawl was cancelled before it
// finished, the pair gets no entry in the tree.
func (t *ResultTree) MarkInterrupted(location, category string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.interrupted[Pair{Location: location, Category: category}] = struct{}{}
}

// Interrupted lists the pairs left out because the crawl was cancelled,
// sorted by location then category.
func (t *ResultTree) Interrupted() []Pair {
	t.mu.Lock()
	defer t.mu.Unlock()
	return sortedPairs(t.interrupted)
}

// Complete is false when any pair was left out by a cancelled crawl.
func (t *ResultTree) Complete() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.interrupted) == 0
}

type Summary struct {
	Locations     int
	Pairs         int
	NonEmptyPairs int
	Records       int
	Truncated     int
	Interrupted   int
}

func (t *ResultTree) Summary() Summary {
	t.mu.Lock()
	defer t.mu.Unlock()
	summary := Summary{
		Locations:   len(t.entries),
		Truncated:   len(t.truncated),
		Interrupted: len(t.interrupted),
	}
	for _, categories := range t.entries {
		for _, records := range categories {
			summary.Pairs++
			summary.Records += len(records)
			if len(records) > 0 {
				summary.NonEmptyPairs++
			}
		}
	}
	return summary
}

// Map returns a copy of the tree's contents.
func (t *ResultTree) Map() map[string]map[string][]directory.EntityRecord {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make(map[string]map[string][]directory.EntityRecord, len(t.entries))
	for location, categories := range t.entries {
		copied := make(map[string][]directory.EntityRecord, len(categories))
		for category, records := range categories {
			copied[category] = slices.Clone(records)
		}
		out[location] = copied
	}
	return out
}

func (t *ResultTree) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.Map())
}

func (t *ResultTree) UnmarshalJSON(data []byte) error {
	var entries map[string]map[string][]directory.EntityRecord
	err := json.Unmarshal(data, &entries)
	if err != nil {
		return err
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	t.entries = map[string]map[string][]directory.EntityRecord{}
	t.truncated = map[Pair]struct{}{}
	t.interrupted = map[Pair]struct{}{}
	for location, categories := range entries {
		target := t.location(location)
		for category, records := range categories {
			if records == nil {
				records = []directory.EntityRecord{}
			}
			target[category] = records
		}
	}
	return nil
}

// Encode renders the tree the way it is exported: 4 space indentation,
// keys sorted, non-ascii and html characters written as is.
func (t *ResultTree) Encode() ([]byte, error) {
	var buff bytes.Buffer
	encoder := json.NewEncoder(&buff)
	encoder.SetEscapeHTML(false)
	encoder.SetIndent("", "    ")
	err := encoder.Encode(t.Map())
	if err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buff.Bytes(), []byte("\n")), nil
}

// Export writes the tree to `path`, replacing whatever was there.
func (t *ResultTree) Export(path string) error {
	contents, err := t.Encode()
	if err != nil {
		return fmt.Errorf("encode result tree: %w", err)
	}
	err = os.WriteFile(path, contents, 0644)
	if err != nil {
		return fmt.Errorf("write result tree: %w", err)
	}
	return nil
}

// ReadTree parses a file written by Export.
func ReadTree(path string) (*ResultTree, error) {
	contents, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	tree := NewResultTree()
	err = json.Unmarshal(contents, tree)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return tree, nil
}
