package commands

import (
	"log/slog"
	"os"
	"time"

	"facetcrawl/lib/telemetry"
	"facetcrawl/lib/util/serviceutil"
	"facetcrawl/services/facetcrawl"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

func init() {
	crawlCmd.Flags().StringP("output", "o", "", "The file to export the result tree to (default from config).")
	crawlCmd.Flags().IntP("workers", "w", 0, "The amount of facet pairs crawled at once.")
	crawlCmd.Flags().Int("limit", 0, "The highest page index requested per facet pair.")
	crawlCmd.Flags().Int("retries", 0, "Extra attempts for a request that failed in transport.")
	rootCmd.AddCommand(crawlCmd)
}

var crawlCmd = &cobra.Command{
	Use:   "crawl [--output <path/to/output.json>] [--workers <n>] [--limit <pages>]",
	Short: "Crawls every facet pair and exports the result tree.",
	Run: func(cmd *cobra.Command, args []string) {
		client := newClient()
		aggregator := facetcrawl.NewAggregator(
			client,
			telemetry.NewSlogAPI(nil),
			facetcrawl.Options{
				PaginationLimit: config.PaginationLimit,
				Workers:         config.Workers,
			},
		)

		t1 := time.Now()
		tree := aggregator.Gather(cmd.Context())
		t2 := time.Now()
		slog.Info("crawling time", "seconds", t2.Sub(t1).Seconds())

		if !tree.Complete() {
			slog.Warn(
				"crawl was interrupted, unfinished pairs are left out of the export",
				"pairs", len(tree.Interrupted()),
			)
		}

		err := tree.Export(config.Output)
		if err != nil {
			serviceutil.Fatal("failed to export result tree", err)
		}
		slog.Info("exported result tree", "path", config.Output)

		renderSummary(tree)
	},
}

func renderSummary(tree *facetcrawl.ResultTree) {
	summary := tree.Summary()

	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.AppendHeader(table.Row{"Locations", "Pairs", "Non-empty pairs", "Records", "Truncated", "Interrupted"})
	t.AppendRow(table.Row{
		summary.Locations,
		summary.Pairs,
		summary.NonEmptyPairs,
		summary.Records,
		summary.Truncated,
		summary.Interrupted,
	})
	t.SetStyle(table.StyleRounded)
	t.Render()

	renderPairs("Possibly incomplete (pagination limit reached)", tree.Truncated())
	renderPairs("Not exported (crawl interrupted)", tree.Interrupted())
}

func renderPairs(title string, pairs []facetcrawl.Pair) {
	if len(pairs) == 0 {
		return
	}

	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.SetTitle(title)
	t.AppendHeader(table.Row{"Location", "Category"})
	for _, pair := range pairs {
		t.AppendRow(table.Row{pair.Location, pair.Category})
	}
	t.SetStyle(table.StyleRounded)
	t.Render()
}
