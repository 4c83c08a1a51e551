package commands

import (
	"fmt"
	"os"

	"facetcrawl/lib/scrapers/directory"
	"facetcrawl/lib/telemetry"
	"facetcrawl/lib/textutil"
	"facetcrawl/services/facetcrawl"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

var lint *bool
var lintThreshold *float64

func init() {
	lint = facetsCmd.Flags().Bool("lint", false, "Also list facet ids that look like the same facet spelled differently.")
	lintThreshold = facetsCmd.Flags().Float64("threshold", 0.95, "The Jaro-Winkler similarity at which two ids are reported by --lint.")
	rootCmd.AddCommand(facetsCmd)
}

var facetsCmd = &cobra.Command{
	Use:   "facets [--lint] [--threshold <0..1>]",
	Short: "Resolves and prints the location and category facet ids.",
	Run: func(cmd *cobra.Command, args []string) {
		resolver := facetcrawl.NewResolver(newClient(), telemetry.NewSlogAPI(nil))

		locations := resolver.ResolveFacets(cmd.Context(), directory.FacetLocation)
		categories := resolver.ResolveFacets(cmd.Context(), directory.FacetCategory)

		t := table.NewWriter()
		t.SetOutputMirror(os.Stdout)
		t.AppendHeader(table.Row{"#", "Location", "Category"})
		rowCount := max(len(locations), len(categories))
		for i := 0; i < rowCount; i++ {
			row := table.Row{i + 1, "", ""}
			if i < len(locations) {
				row[1] = locations[i]
			}
			if i < len(categories) {
				row[2] = categories[i]
			}
			t.AppendRow(row)
		}
		t.AppendFooter(table.Row{"", len(locations), len(categories)})
		t.SetStyle(table.StyleRounded)
		t.Render()

		if !*lint {
			return
		}
		renderSimilar("location", locations, *lintThreshold)
		renderSimilar("category", categories, *lintThreshold)
	},
}

func renderSimilar(kind string, ids facetcrawl.FacetSet, threshold float64) {
	similar := textutil.SimilarFacets(ids, threshold)
	if len(similar) == 0 {
		fmt.Printf("no similar %s ids at threshold %.2f\n", kind, threshold)
		return
	}

	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.SetTitle(fmt.Sprintf("Similar %s ids", kind))
	t.AppendHeader(table.Row{"Left", "Right", "Similarity"})
	for _, pair := range similar {
		t.AppendRow(table.Row{pair.Left, pair.Right, fmt.Sprintf("%.3f", pair.Similarity)})
	}
	t.SetStyle(table.StyleRounded)
	t.Render()
}
