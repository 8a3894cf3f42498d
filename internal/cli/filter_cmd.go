package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/eaglecooler/core/internal/filter"
	"github.com/eaglecooler/core/internal/snapshot"
)

var (
	filterTags      []string
	filterFolders   []string
	filterNameRegex string
	filterExt       string
	filterMinRating int
	filterUntagged  bool
	filterUnfiled   bool
)

var filterCmd = &cobra.Command{
	Use:   "filter",
	Short: "Evaluate a Filter Engine expression against the current library",
}

var filterEvalCmd = &cobra.Command{
	Use:   "eval",
	Short: "List items matching the composed filter (ALL of the given conditions)",
	RunE: func(cmd *cobra.Command, args []string) error {
		if fsHost == nil {
			return handleError("no_library", fmt.Errorf("no library configured: pass --library or set default_library_path"))
		}

		var parts []filter.Filter
		if len(filterTags) > 0 {
			parts = append(parts, filter.ByTags(filterTags))
		}
		if len(filterFolders) > 0 {
			parts = append(parts, filter.ByFolders(filterFolders))
		}
		if filterNameRegex != "" {
			parts = append(parts, filter.ByNameRegex(filterNameRegex))
		}
		if filterExt != "" {
			parts = append(parts, filter.ByExtension(filterExt))
		}
		if filterMinRating > 0 {
			parts = append(parts, filter.ByMinRating(filterMinRating))
		}
		if filterUntagged {
			parts = append(parts, filter.Untagged())
		}
		if filterUnfiled {
			parts = append(parts, filter.Unfiled())
		}
		f := filter.And(parts...)

		records, err := fsHost.AllItems()
		if err != nil {
			return handleError("host_error", err)
		}
		items := snapshot.ExtractItems(records)

		var matched []snapshot.ItemSnapshot
		for _, item := range items {
			if filter.Evaluate(item, f) {
				matched = append(matched, item)
			}
		}

		if isJSONOutput() {
			outputSuccess(matched, &Meta{Count: len(matched)})
			return nil
		}

		if len(matched) == 0 {
			fmt.Println(Hint("no items matched"))
			return nil
		}
		table := NewTable(4)
		for _, item := range matched {
			table.AddRow(item.ID, item.Name, item.Ext, fmt.Sprintf("%v", item.Tags))
		}
		fmt.Print(table.String())
		return nil
	},
}

func init() {
	filterEvalCmd.Flags().StringSliceVar(&filterTags, "tag", nil, "match items carrying any of these tags")
	filterEvalCmd.Flags().StringSliceVar(&filterFolders, "folder", nil, "match items filed under any of these folder ids")
	filterEvalCmd.Flags().StringVar(&filterNameRegex, "name-regex", "", "match items whose name matches this regex (case-insensitive)")
	filterEvalCmd.Flags().StringVar(&filterExt, "ext", "", "match items with this exact extension")
	filterEvalCmd.Flags().IntVar(&filterMinRating, "min-rating", 0, "match items with star rating >= this value")
	filterEvalCmd.Flags().BoolVar(&filterUntagged, "untagged", false, "match items with no tags")
	filterEvalCmd.Flags().BoolVar(&filterUnfiled, "unfiled", false, "match items with no folder memberships")

	filterCmd.AddCommand(filterEvalCmd)
	rootCmd.AddCommand(filterCmd)
}
