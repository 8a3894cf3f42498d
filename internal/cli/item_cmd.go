package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/eaglecooler/core/internal/snapshot"
)

var itemCmd = &cobra.Command{
	Use:   "item",
	Short: "Inspect a single item by id",
}

var itemShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show an item's metadata, rendering its annotation as markdown on a TTY",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if fsHost == nil {
			return handleError("no_library", fmt.Errorf("no library configured: pass --library or set default_library_path"))
		}
		record, ok, err := fsHost.ItemByID(args[0])
		if err != nil {
			return handleError("read_failed", err)
		}
		if !ok {
			return handleError("not_found", fmt.Errorf("item not found: %s", args[0]))
		}
		item := snapshot.ExtractItem(record)

		if isJSONOutput() {
			outputSuccess(item, nil)
			return nil
		}

		fmt.Println(Header(item.Name))
		fmt.Printf("%s  %s\n", Muted.Render("id"), item.ID)
		fmt.Printf("%s  %s\n", Muted.Render("ext"), item.Ext)
		if item.Star != snapshot.NoStar {
			fmt.Printf("%s  %d\n", Muted.Render("star"), item.Star)
		}
		if len(item.Tags) > 0 {
			fmt.Printf("%s  %v\n", Muted.Render("tags"), item.Tags)
		}
		if item.Annotation != "" {
			fmt.Println()
			fmt.Print(RenderAnnotation(item.Annotation))
		}
		return nil
	},
}

func init() {
	itemCmd.AddCommand(itemShowCmd)
	rootCmd.AddCommand(itemCmd)
}
