package export

import (
	"fmt"
	"strings"

	"github.com/mauv0809/courtside/internal/americano"
	"github.com/mauv0809/courtside/internal/tournament"
	"github.com/xuri/excelize/v2"
)

const (
	ScoreboardSheet = "Scoreboard"
	GamesSheet      = "Games"
)

// Scoreboard builds a workbook with the standings of a tournament and the
// games played so far.
func Scoreboard(tournamentID string, stats []tournament.Stat, games []tournament.Game) (*excelize.File, error) {
	f := excelize.NewFile()
	f.SetDefaultFont("Arial")

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "#FFFFFF", Size: 12, Family: "Arial"},
		Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#4472C4"}},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	if err != nil {
		return nil, fmt.Errorf("creating header style: %w", err)
	}

	if err := writeStandings(f, headerStyle, tournamentID, stats); err != nil {
		return nil, fmt.Errorf("writing standings: %w", err)
	}
	if err := writeGames(f, headerStyle, games); err != nil {
		return nil, fmt.Errorf("writing games: %w", err)
	}

	if idx, err := f.GetSheetIndex(ScoreboardSheet); err == nil {
		f.SetActiveSheet(idx)
	}
	f.DeleteSheet("Sheet1")
	return f, nil
}

func writeStandings(f *excelize.File, headerStyle int, tournamentID string, stats []tournament.Stat) error {
	sheet := ScoreboardSheet
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}

	f.SetCellValue(sheet, "A1", "Tournament")
	f.SetCellValue(sheet, "B1", tournamentID)

	headers := []string{"Rank", "Player", "Played", "Won", "Lost", "Points"}
	writeHeader(f, sheet, 3, headers, headerStyle)

	for i, st := range stats {
		row := i + 4
		values := []any{i + 1, st.PlayerName, st.GamesPlayed, st.GamesWon, st.GamesLost, st.TotalPoints}
		for col, v := range values {
			f.SetCellValue(sheet, cellRef(col+1, row), v)
		}
	}

	f.SetColWidth(sheet, "B", "B", 24)
	return nil
}

func writeGames(f *excelize.File, headerStyle int, games []tournament.Game) error {
	sheet := GamesSheet
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}

	headers := []string{"Round", "Game", "Type", "Team 1", "Team 2", "Score 1", "Score 2", "Finalized"}
	writeHeader(f, sheet, 1, headers, headerStyle)

	for i, g := range games {
		row := i + 2
		values := []any{g.Round, g.ID, string(g.Type), teamNames(g.Team1), teamNames(g.Team2), scoreValue(g.ScoreLeft), scoreValue(g.ScoreRight), g.Finalized}
		for col, v := range values {
			f.SetCellValue(sheet, cellRef(col+1, row), v)
		}
	}

	f.SetColWidth(sheet, "D", "E", 28)
	return nil
}

func writeHeader(f *excelize.File, sheet string, row int, headers []string, style int) {
	for i, h := range headers {
		f.SetCellValue(sheet, cellRef(i+1, row), h)
	}
	f.SetCellStyle(sheet, cellRef(1, row), cellRef(len(headers), row), style)
}

func teamNames(team []americano.Player) string {
	names := make([]string, 0, len(team))
	for _, p := range team {
		names = append(names, p.Name)
	}
	return strings.Join(names, " & ")
}

func scoreValue(score *int) any {
	if score == nil {
		return ""
	}
	return *score
}

func cellRef(col, row int) string {
	name, _ := excelize.CoordinatesToCellName(col, row)
	return name
}
