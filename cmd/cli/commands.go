package main

import (
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(healthCmd)
	rootCmd.AddCommand(slotsCmd)
	rootCmd.AddCommand(roundsCmd)
	rootCmd.AddCommand(scoreboardCmd)
	rootCmd.AddCommand(finalizeCmd)
	rootCmd.AddCommand(metricsCmd)
	rootCmd.AddCommand(statsCmd)
}

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check the health of the server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(http.MethodGet, "/health")
	},
}

var slotsCmd = &cobra.Command{
	Use:   "slots",
	Short: "List the slots with enough players for a tournament",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(http.MethodGet, "/slots")
	},
}

var roundsCmd = &cobra.Command{
	Use:   "rounds <tournament-id>",
	Short: "Generate the round plan of a tournament",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(http.MethodGet, "/tournaments/"+url.PathEscape(args[0])+"/rounds")
	},
}

var scoreboardCmd = &cobra.Command{
	Use:   "scoreboard <tournament-id>",
	Short: "Show the scoreboard of a tournament",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(http.MethodGet, "/tournaments/"+url.PathEscape(args[0])+"/scoreboard")
	},
}

var finalizeCmd = &cobra.Command{
	Use:   "finalize <tournament-id> <game-id>",
	Short: "Finalize a game and add its result to the scoreboard",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(http.MethodPost, "/tournaments/"+url.PathEscape(args[0])+"/games/"+url.PathEscape(args[1])+"/finalize")
	},
}

var metricsCmd = &cobra.Command{
	Use:   "metrics",
	Short: "Get application metrics",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(http.MethodGet, "/metrics")
	},
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Get the persistent counters",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(http.MethodGet, "/stats")
	},
}

func performRequest(method, endpoint string) error {
	target := strings.TrimRight(host, "/") + endpoint
	if dryRun {
		target += "?dry_run=true"
	}
	fmt.Printf("Making request to %s %s\n", method, target)

	req, err := http.NewRequest(method, target, nil)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	fmt.Printf("Status Code: %d\n", resp.StatusCode)
	fmt.Println("Response Body:")
	fmt.Println(string(body))

	return nil
}
