package textutil

import (
	"slices"
	"strings"

	"github.com/antzucaro/matchr"
	"github.com/mozillazg/go-unidecode"
	"golang.org/x/text/unicode/norm"
)

// " - " is listed first so that it wins over the bare " " at the same position.
var facetReplacer = strings.NewReplacer(
	" - ", "-",
	" ", "-",
	"/", "-",
)

// FacetID turns a facet label into its url-safe identifier:
// transliterated to ascii, lowercase, whitespace runs and " - " become a
// single hyphen, slashes become hyphens.
//
//	FacetID("Zielona Góra") == "zielona-gora"
//	FacetID("Chirurg - Onkolog") == "chirurg-onkolog"
//	FacetID("Alergolog/Pulmonolog") == "alergolog-pulmonolog"
func FacetID(label string) string {
	label = norm.NFKC.String(label)
	label = unidecode.Unidecode(label)
	label = strings.Join(strings.Fields(label), " ")
	label = facetReplacer.Replace(label)
	return strings.ToLower(label)
}

// FacetIDs normalizes every label, drops empty and duplicate ids and
// returns the rest sorted ascending.
func FacetIDs(labels []string) []string {
	seen := make(map[string]struct{}, len(labels))
	ids := make([]string, 0, len(labels))
	for _, label := range labels {
		id := FacetID(label)
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

type SimilarPair struct {
	Left       string
	Right      string
	Similarity float64
}

// SimilarFacets lists pairs of distinct ids whose Jaro-Winkler similarity is at
// least `threshold`, these are usually the same place or specialization
// spelled two ways upstream.
func SimilarFacets(ids []string, threshold float64) []SimilarPair {
	var result []SimilarPair
	for i := 0; i < len(ids); i++ {
		for j := i + 1; j < len(ids); j++ {
			if ids[i] == ids[j] {
				continue
			}
			similarity := matchr.JaroWinkler(ids[i], ids[j], false)
			if similarity >= threshold {
				result = append(result, SimilarPair{
					Left:       ids[i],
					Right:      ids[j],
					Similarity: similarity,
				})
			}
		}
	}
	slices.SortStableFunc(result, func(a, b SimilarPair) int {
		if a.Similarity > b.Similarity {
			return -1
		}
		if a.Similarity < b.Similarity {
			return 1
		}
		return 0
	})
	return result
}
