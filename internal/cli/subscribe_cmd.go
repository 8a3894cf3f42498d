package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/eaglecooler/core/internal/subscribe"
)

var (
	subscribeWhat     string
	subscribeDuration time.Duration
)

var subscribeCmd = &cobra.Command{
	Use:   "subscribe",
	Short: "Watch the Change Subscription Manager's pollers against the current library",
}

var subscribeWatchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Print change events for one poller kind until the duration elapses",
	RunE: func(cmd *cobra.Command, args []string) error {
		if fsHost == nil {
			return handleError("no_library", fmt.Errorf("no library configured: pass --library or set default_library_path"))
		}

		manager := subscribe.New(fsHost)
		defer manager.Close()

		events := make(chan subscribe.ChangeEvent, 16)
		cb := func(e subscribe.ChangeEvent) { events <- e }

		var release subscribe.Release
		switch subscribeWhat {
		case "library":
			release = manager.OnLibraryChange(cb)
		case "items":
			release = manager.OnItemSelectionChange(cb, subscribe.DefaultSelectionOptions())
		case "folders":
			release = manager.OnFolderSelectionChange(cb, subscribe.DefaultSelectionOptions())
		case "config":
			release = manager.OnLibraryConfigChange(cb, 0)
		case "structure":
			release = manager.OnLibraryFolderStructureChange(cb, 0)
		default:
			return handleError("bad_poller", fmt.Errorf("unknown poller %q: want library, items, folders, config, or structure", subscribeWhat))
		}
		defer release()

		if !isJSONOutput() {
			fmt.Println(Hint(fmt.Sprintf("watching %q for %s — Ctrl+C to stop early", subscribeWhat, subscribeDuration)))
		}

		deadline := time.After(subscribeDuration)
		for {
			select {
			case e := <-events:
				if isJSONOutput() {
					outputSuccess(e, nil)
				} else {
					fmt.Printf("%s -> %v\n", Header("change"), e.Current)
				}
			case <-deadline:
				return nil
			}
		}
	},
}

func init() {
	subscribeWatchCmd.Flags().StringVar(&subscribeWhat, "poller", "library", "library, items, folders, config, or structure")
	subscribeWatchCmd.Flags().DurationVar(&subscribeDuration, "for", 10*time.Second, "how long to watch before exiting")

	subscribeCmd.AddCommand(subscribeWatchCmd)
	rootCmd.AddCommand(subscribeCmd)
}
