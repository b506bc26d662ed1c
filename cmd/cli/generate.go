package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mauv0809/courtside/internal/americano"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var (
	players    []string
	rosterFile string
)

// roster is the layout of a --file roster:
//
//	players:
//	  - uid: u1
//	    name: Anna
type roster struct {
	Players []americano.Player `yaml:"players"`
}

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Print the Americano round plan for a roster without a server",
	Example: `  courtside-cli generate --players u1:Anna,u2:Bo,u3:Cy,u4:Di,u5:Eve
  courtside-cli generate --file roster.yaml`,
	RunE: func(cmd *cobra.Command, args []string) error {
		var (
			list []americano.Player
			err  error
		)
		if rosterFile != "" {
			list, err = loadRoster(rosterFile)
		} else {
			list, err = parseRoster(players)
		}
		if err != nil {
			return err
		}
		return printPlan(cmd.OutOrStdout(), list)
	},
}

func init() {
	generateCmd.Flags().StringSliceVar(&players, "players", nil, "Roster as uid:name pairs, in availability order")
	generateCmd.Flags().StringVar(&rosterFile, "file", "", "YAML file with the roster")
	generateCmd.MarkFlagsOneRequired("players", "file")
	generateCmd.MarkFlagsMutuallyExclusive("players", "file")
	rootCmd.AddCommand(generateCmd)
}

func loadRoster(path string) ([]americano.Player, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading roster: %w", err)
	}
	return parseRosterYAML(data)
}

func parseRosterYAML(data []byte) ([]americano.Player, error) {
	var r roster
	if err := yaml.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("parsing roster: %w", err)
	}
	for i, p := range r.Players {
		if p.UID == "" {
			return nil, fmt.Errorf("player %d has no uid", i+1)
		}
		if p.Name == "" {
			r.Players[i].Name = p.UID
		}
	}
	return r.Players, nil
}

// parseRoster turns "uid:name" entries into players. A bare entry is used as both.
func parseRoster(entries []string) ([]americano.Player, error) {
	roster := make([]americano.Player, 0, len(entries))
	for _, e := range entries {
		e = strings.TrimSpace(e)
		if e == "" {
			continue
		}
		uid, name, found := strings.Cut(e, ":")
		if !found {
			name = uid
		}
		if uid == "" || name == "" {
			return nil, fmt.Errorf("invalid player %q, want uid:name", e)
		}
		roster = append(roster, americano.Player{UID: uid, Name: name})
	}
	return roster, nil
}

func printPlan(w io.Writer, roster []americano.Player) error {
	matches := americano.GenerateRounds(roster)
	if len(matches) == 0 {
		return fmt.Errorf("need at least 4 players, got %d", len(roster))
	}
	fmt.Fprintf(w, "%d players, %d court(s)\n", len(roster), americano.CourtCount(len(roster)))

	round := 0
	for i, m := range matches {
		if m.Round != round {
			round = m.Round
			fmt.Fprintf(w, "\nRound %d\n", round)
		}
		switch m.Type {
		case americano.MatchTypeSitout:
			fmt.Fprintf(w, "  sits out: %s\n", teamNames(m.Team1))
		default:
			fmt.Fprintf(w, "  %-12s %s vs %s (%s)\n", americano.GameID(m.Round, i), teamNames(m.Team1), teamNames(m.Team2), m.Type)
		}
	}
	return nil
}

func teamNames(team []americano.Player) string {
	names := make([]string, 0, len(team))
	for _, p := range team {
		names = append(names, p.Name)
	}
	return strings.Join(names, " & ")
}
