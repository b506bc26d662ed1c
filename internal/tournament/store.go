package tournament

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/courtside/internal/americano"
	"github.com/vmihailenco/msgpack/v5"
)

// New creates a tournament Store.
func New(db *sql.DB) Store {
	return &store{
		db: db,
	}
}

func (s *store) EnsureGame(ctx context.Context, tournamentID, gameID string, m americano.Matchup) error {
	team1, err := msgpack.Marshal(m.Team1)
	if err != nil {
		return fmt.Errorf("failed to encode team1: %w", err)
	}
	team2, err := msgpack.Marshal(m.Team2)
	if err != nil {
		return fmt.Errorf("failed to encode team2: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx, `
		INSERT INTO games (tournament_id, id, round, match_type, team1_blob, team2_blob, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(tournament_id, id) DO UPDATE SET
			round = excluded.round,
			match_type = excluded.match_type,
			team1_blob = excluded.team1_blob,
			team2_blob = excluded.team2_blob
		WHERE games.finalized = 0 AND games.aggregated = 0
	`, tournamentID, gameID, m.Round, string(m.Type), team1, team2, time.Now().UnixMilli())
	if err != nil {
		return fmt.Errorf("failed to upsert game %s: %w", gameID, err)
	}
	if n, _ := res.RowsAffected(); n > 0 {
		log.Debug("Game matchup stored", "tournamentID", tournamentID, "gameID", gameID, "type", m.Type)
	}
	return nil
}

func (s *store) SetScore(ctx context.Context, tournamentID, gameID string, side Side, value int) error {
	if value < 0 {
		return fmt.Errorf("%w: %d", ErrInvalidScore, value)
	}
	var column string
	switch side {
	case SideLeft:
		column = "score_left"
	case SideRight:
		column = "score_right"
	default:
		return fmt.Errorf("%w: unknown side %q", ErrInvalidScore, side)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var finalized bool
	err = tx.QueryRowContext(ctx, "SELECT finalized FROM games WHERE tournament_id = ? AND id = ?", tournamentID, gameID).Scan(&finalized)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrGameNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to read game %s: %w", gameID, err)
	}
	if finalized {
		return ErrGameFinalized
	}

	if _, err := tx.ExecContext(ctx, "UPDATE games SET "+column+" = ? WHERE tournament_id = ? AND id = ?", value, tournamentID, gameID); err != nil {
		return fmt.Errorf("failed to update score: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit score: %w", err)
	}
	log.Debug("Score updated", "tournamentID", tournamentID, "gameID", gameID, "side", side, "value", value)
	return nil
}

func (s *store) GetGame(ctx context.Context, tournamentID, gameID string) (*Game, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRowContext(ctx, `
		SELECT tournament_id, id, round, match_type, team1_blob, team2_blob, score_left, score_right, finalized, aggregated, created_at
		FROM games WHERE tournament_id = ? AND id = ?
	`, tournamentID, gameID)
	g, err := scanGame(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrGameNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get game %s: %w", gameID, err)
	}
	return g, nil
}

// ListGames returns the games of a tournament in plan order.
func (s *store) ListGames(ctx context.Context, tournamentID string) ([]Game, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `
		SELECT tournament_id, id, round, match_type, team1_blob, team2_blob, score_left, score_right, finalized, aggregated, created_at
		FROM games WHERE tournament_id = ?
		ORDER BY round ASC, rowid ASC
	`, tournamentID)
	if err != nil {
		return nil, fmt.Errorf("failed to query games: %w", err)
	}
	defer rows.Close()

	var games []Game
	for rows.Next() {
		g, err := scanGame(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan game: %w", err)
		}
		games = append(games, *g)
	}
	return games, rows.Err()
}

// Finalize marks the game finalized and, the first time only, adds its hybrid
// points to the tournament stats. The aggregated flag is flipped with a
// conditional update inside the same transaction as the stat increments, so
// concurrent or repeated calls aggregate at most once.
func (s *store) Finalize(ctx context.Context, tournamentID, gameID string) (FinalizeResult, error) {
	result := FinalizeResult{TournamentID: tournamentID, GameID: gameID}

	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return result, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `
		UPDATE games SET aggregated = 1, finalized = 1
		WHERE tournament_id = ? AND id = ? AND aggregated = 0
	`, tournamentID, gameID)
	if err != nil {
		return result, fmt.Errorf("failed to lock game %s: %w", gameID, err)
	}
	flipped, err := res.RowsAffected()
	if err != nil {
		return result, fmt.Errorf("failed to get rows affected: %w", err)
	}

	if flipped == 0 {
		res, err := tx.ExecContext(ctx, "UPDATE games SET finalized = 1 WHERE tournament_id = ? AND id = ?", tournamentID, gameID)
		if err != nil {
			return result, fmt.Errorf("failed to mark game %s finalized: %w", gameID, err)
		}
		if n, _ := res.RowsAffected(); n == 0 {
			return result, ErrGameNotFound
		}
		if err := tx.Commit(); err != nil {
			return result, fmt.Errorf("failed to commit: %w", err)
		}
		log.Info("Game already aggregated, skipping", "tournamentID", tournamentID, "gameID", gameID)
		result.AlreadyAggregated = true
		return result, nil
	}

	row := tx.QueryRowContext(ctx, `
		SELECT tournament_id, id, round, match_type, team1_blob, team2_blob, score_left, score_right, finalized, aggregated, created_at
		FROM games WHERE tournament_id = ? AND id = ?
	`, tournamentID, gameID)
	game, err := scanGame(row)
	if err != nil {
		return result, fmt.Errorf("failed to read game %s: %w", gameID, err)
	}

	var left, right int
	if game.ScoreLeft != nil {
		left = *game.ScoreLeft
	}
	if game.ScoreRight != nil {
		right = *game.ScoreRight
	}
	points := americano.HybridPoints(left, right)
	result.Points = points

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO tournament_stats (tournament_id, player_id, player_name, games_played, games_won, games_lost, total_points)
		VALUES (?, ?, ?, 1, ?, ?, ?)
		ON CONFLICT(tournament_id, player_id) DO UPDATE SET
			player_name = excluded.player_name,
			games_played = games_played + 1,
			games_won = games_won + excluded.games_won,
			games_lost = games_lost + excluded.games_lost,
			total_points = total_points + excluded.total_points
	`)
	if err != nil {
		return result, fmt.Errorf("failed to prepare stats upsert: %w", err)
	}
	defer stmt.Close()

	apply := func(team []americano.Player, pts int, won bool) error {
		w, l := 0, 1
		if won {
			w, l = 1, 0
		}
		for _, p := range team {
			if _, err := stmt.ExecContext(ctx, tournamentID, p.UID, p.Name, w, l, pts); err != nil {
				return fmt.Errorf("failed to update stats for player %s: %w", p.UID, err)
			}
		}
		return nil
	}
	if err := apply(game.Team1, points.Team1Points, points.Team1Win); err != nil {
		return result, err
	}
	if err := apply(game.Team2, points.Team2Points, !points.Team1Win); err != nil {
		return result, err
	}

	if err := tx.Commit(); err != nil {
		return result, fmt.Errorf("failed to commit finalize: %w", err)
	}
	log.Info("Game finalized", "tournamentID", tournamentID, "gameID", gameID, "team1Points", points.Team1Points, "team2Points", points.Team2Points, "team1Win", points.Team1Win)
	return result, nil
}

// Scoreboard returns the tournament standings, best first.
func (s *store) Scoreboard(ctx context.Context, tournamentID string) ([]Stat, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `
		SELECT player_id, player_name, games_played, games_won, games_lost, total_points
		FROM tournament_stats
		WHERE tournament_id = ?
		ORDER BY total_points DESC, games_won DESC, player_name ASC
	`, tournamentID)
	if err != nil {
		return nil, fmt.Errorf("failed to query scoreboard: %w", err)
	}
	defer rows.Close()

	var stats []Stat
	for rows.Next() {
		var st Stat
		if err := rows.Scan(&st.PlayerID, &st.PlayerName, &st.GamesPlayed, &st.GamesWon, &st.GamesLost, &st.TotalPoints); err != nil {
			return nil, fmt.Errorf("failed to scan stat: %w", err)
		}
		stats = append(stats, st)
	}
	return stats, rows.Err()
}

// Clear removes all games and stats of a tournament.
func (s *store) Clear(ctx context.Context, tournamentID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM games WHERE tournament_id = ?", tournamentID); err != nil {
		return fmt.Errorf("failed to clear games: %w", err)
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM tournament_stats WHERE tournament_id = ?", tournamentID); err != nil {
		return fmt.Errorf("failed to clear stats: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit clear: %w", err)
	}
	log.Info("Tournament cleared", "tournamentID", tournamentID)
	return nil
}

func scanGame(scanner interface{ Scan(...any) error }) (*Game, error) {
	var (
		g            Game
		matchType    string
		team1, team2 []byte
		left, right  sql.NullInt64
		createdAt    int64
	)
	if err := scanner.Scan(&g.TournamentID, &g.ID, &g.Round, &matchType, &team1, &team2, &left, &right, &g.Finalized, &g.Aggregated, &createdAt); err != nil {
		return nil, err
	}
	g.Type = americano.MatchType(matchType)
	g.CreatedAt = time.UnixMilli(createdAt)
	if left.Valid {
		v := int(left.Int64)
		g.ScoreLeft = &v
	}
	if right.Valid {
		v := int(right.Int64)
		g.ScoreRight = &v
	}
	if len(team1) > 0 {
		if err := msgpack.Unmarshal(team1, &g.Team1); err != nil {
			return nil, fmt.Errorf("failed to decode team1 of game %s: %w", g.ID, err)
		}
	}
	if len(team2) > 0 {
		if err := msgpack.Unmarshal(team2, &g.Team2); err != nil {
			return nil, fmt.Errorf("failed to decode team2 of game %s: %w", g.ID, err)
		}
	}
	return &g, nil
}
