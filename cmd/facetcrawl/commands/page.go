package commands

import (
	"fmt"
	"os"
	"strconv"

	"facetcrawl/lib/htmlutil"
	"facetcrawl/lib/util/serviceutil"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(pageCmd)
}

var pageCmd = &cobra.Command{
	Use:   "page <category> <location> [page]",
	Short: "Fetches a single listing page and prints the records extracted from it.",
	Args:  cobra.RangeArgs(2, 3),
	Run: func(cmd *cobra.Command, args []string) {
		pageIndex := 1
		if len(args) == 3 {
			var err error
			pageIndex, err = strconv.Atoi(args[2])
			if err != nil || pageIndex < 1 {
				serviceutil.Fatal("page must be a positive integer", fmt.Errorf("got '%s'", args[2]))
			}
		}

		client := newClient()
		fmt.Println(client.PageUrl(args[0], args[1], pageIndex))

		page, err := client.ListingPage(cmd.Context(), args[0], args[1], pageIndex)
		if err != nil {
			serviceutil.Fatal("failed to fetch listing page", err)
		}

		t := table.NewWriter()
		t.SetOutputMirror(os.Stdout)
		t.AppendHeader(table.Row{"#", "Name", "Facility"})
		for i, record := range page.Records {
			t.AppendRow(table.Row{i + 1, htmlutil.Clean(record.Name), htmlutil.Clean(record.Facility)})
		}
		t.AppendFooter(table.Row{"", fmt.Sprintf("%d elements", page.Elements), fmt.Sprintf("%d records", len(page.Records))})
		t.SetStyle(table.StyleRounded)
		t.Render()
	},
}
