package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/eaglecooler/core/internal/hostclient"
)

var hostCmd = &cobra.Command{
	Use:   "host",
	Short: "Talk to THE HOST's localhost control plane directly",
}

func newHostClient() *hostclient.Client {
	c := hostclient.New(resolvedHostURL)
	c.Token = tokenFlag
	return c
}

var hostInfoCmd = &cobra.Command{
	Use:   "info",
	Short: "Fetch /api/application/info",
	RunE: func(cmd *cobra.Command, args []string) error {
		client := newHostClient()
		var info map[string]interface{}
		if err := client.Get(cmd.Context(), "/api/application/info", nil, &info); err != nil {
			return handleError("host_error", err)
		}
		if isJSONOutput() {
			outputSuccess(info, nil)
			return nil
		}
		fmt.Printf("%v\n", info)
		return nil
	},
}

var hostPingCmd = &cobra.Command{
	Use:   "ping",
	Short: "Resolve and cache an API token, proving the host is reachable",
	RunE: func(cmd *cobra.Command, args []string) error {
		client := newHostClient()
		var info map[string]interface{}
		if err := client.Get(context.Background(), "/api/application/info", nil, &info); err != nil {
			return handleError("host_error", err)
		}
		if isJSONOutput() {
			outputSuccess(map[string]bool{"reachable": true}, nil)
			return nil
		}
		fmt.Println(Success(fmt.Sprintf("host reachable at %s", client.BaseURL)))
		return nil
	},
}

func init() {
	hostCmd.AddCommand(hostInfoCmd)
	hostCmd.AddCommand(hostPingCmd)
	rootCmd.AddCommand(hostCmd)
}
