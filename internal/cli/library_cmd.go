package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/eaglecooler/core/internal/library"
	"github.com/eaglecooler/core/internal/slugs"
)

var libraryCmd = &cobra.Command{
	Use:   "library",
	Short: "Read and mutate the current library via Bare Library I/O",
}

func requireLibrary() (*library.Library, error) {
	if resolvedLibraryPath == "" {
		return nil, fmt.Errorf("no library configured: pass --library or set default_library_path")
	}
	return library.Open(resolvedLibraryPath), nil
}

var libraryFoldersCmd = &cobra.Command{
	Use:   "folders",
	Short: "List the folder forest, flattened",
	RunE: func(cmd *cobra.Command, args []string) error {
		lib, err := requireLibrary()
		if err != nil {
			return handleError("no_library", err)
		}
		nodes, err := lib.ListFolders()
		if err != nil {
			return handleError("read_failed", err)
		}

		flat := flattenFolders(nodes, nil)
		if isJSONOutput() {
			outputSuccess(flat, &Meta{Count: len(flat)})
			return nil
		}
		if len(flat) == 0 {
			fmt.Println(Hint("no folders"))
			return nil
		}
		table := NewTable(3)
		for _, f := range flat {
			table.AddRow(f.id, f.name, slugs.BreadcrumbSlug(f.path))
		}
		fmt.Print(table.String())
		return nil
	},
}

type flatFolder struct {
	id   string
	name string
	path []string
}

func flattenFolders(nodes []library.Node, ancestors []string) []flatFolder {
	var out []flatFolder
	for _, n := range nodes {
		id, _ := n.ID()
		name, _ := n["name"].(string)
		path := append(append([]string{}, ancestors...), name)
		out = append(out, flatFolder{id: id, name: name, path: path})
		out = append(out, flattenFolders(n.Children(), path)...)
	}
	return out
}

var libraryFolderPathCmd = &cobra.Command{
	Use:   "folder-path <id>",
	Short: "Print the slugified root-to-leaf breadcrumb for a folder id",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		lib, err := requireLibrary()
		if err != nil {
			return handleError("no_library", err)
		}
		nodes, err := lib.ListFolders()
		if err != nil {
			return handleError("read_failed", err)
		}
		path, ok := findFolderPath(nodes, args[0], nil)
		if !ok {
			return handleError("not_found", fmt.Errorf("folder not found: %s", args[0]))
		}
		breadcrumb := slugs.BreadcrumbSlug(path)
		if isJSONOutput() {
			outputSuccess(map[string]interface{}{"path": path, "slug": breadcrumb}, nil)
			return nil
		}
		fmt.Println(breadcrumb)
		return nil
	},
}

func findFolderPath(nodes []library.Node, id string, ancestors []string) ([]string, bool) {
	for _, n := range nodes {
		nodeID, _ := n.ID()
		name, _ := n["name"].(string)
		path := append(append([]string{}, ancestors...), name)
		if nodeID == id {
			return path, true
		}
		if found, ok := findFolderPath(n.Children(), id, path); ok {
			return found, true
		}
	}
	return nil, false
}

var libraryItemsCmd = &cobra.Command{
	Use:   "items",
	Short: "List item ids in the library",
	RunE: func(cmd *cobra.Command, args []string) error {
		lib, err := requireLibrary()
		if err != nil {
			return handleError("no_library", err)
		}
		ids, err := lib.ListItemIDs()
		if err != nil {
			return handleError("read_failed", err)
		}
		if isJSONOutput() {
			outputSuccess(ids, &Meta{Count: len(ids)})
			return nil
		}
		fmt.Println(strings.Join(ids, "\n"))
		return nil
	},
}

var libraryQuickAccessCmd = &cobra.Command{
	Use:   "quick-access",
	Short: "List the quick-access list",
	RunE: func(cmd *cobra.Command, args []string) error {
		lib, err := requireLibrary()
		if err != nil {
			return handleError("no_library", err)
		}
		entries, err := lib.ListQuickAccess()
		if err != nil {
			return handleError("read_failed", err)
		}
		if isJSONOutput() {
			outputSuccess(entries, &Meta{Count: len(entries)})
			return nil
		}
		if len(entries) == 0 {
			fmt.Println(Hint("quick access list is empty"))
			return nil
		}
		table := NewTable(2)
		for _, e := range entries {
			table.AddRow(e.Type, e.ID)
		}
		fmt.Print(table.String())
		return nil
	},
}

var libraryTagGroupsCmd = &cobra.Command{
	Use:   "tag-groups",
	Short: "List tag groups",
	RunE: func(cmd *cobra.Command, args []string) error {
		lib, err := requireLibrary()
		if err != nil {
			return handleError("no_library", err)
		}
		groups, err := lib.ListTagGroups()
		if err != nil {
			return handleError("read_failed", err)
		}
		if isJSONOutput() {
			outputSuccess(groups, &Meta{Count: len(groups)})
			return nil
		}
		if len(groups) == 0 {
			fmt.Println(Hint("no tag groups"))
			return nil
		}
		table := NewTable(3)
		for _, g := range groups {
			table.AddRow(g.ID, g.Name, strings.Join(g.Tags, ","))
		}
		fmt.Print(table.String())
		return nil
	},
}

func init() {
	libraryCmd.AddCommand(libraryFoldersCmd)
	libraryCmd.AddCommand(libraryFolderPathCmd)
	libraryCmd.AddCommand(libraryItemsCmd)
	libraryCmd.AddCommand(libraryQuickAccessCmd)
	libraryCmd.AddCommand(libraryTagGroupsCmd)
	rootCmd.AddCommand(libraryCmd)
}
