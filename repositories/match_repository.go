package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Dosada05/sporter/models"
)

var (
	ErrMatchNotFound           = errors.New("match not found")
	ErrMatchSportInvalid       = errors.New("match sport conflict or invalid")
	ErrMatchTeamInvalid        = errors.New("match team conflict or invalid")
	ErrMatchParticipantInvalid = errors.New("match participant conflict or invalid")
	ErrMatchGameConflict       = errors.New("set with this sequence already recorded")
	ErrMatchGameInvalid        = errors.New("set row violates match_games constraints")
)

type MatchRepository interface {
	Create(ctx context.Context, exec SQLExecutor, match *models.Match) error
	AddParticipants(ctx context.Context, exec SQLExecutor, matchID int, teamIDs []int) error
	GetByID(ctx context.Context, exec SQLExecutor, id int) (*models.Match, error)
	// GetForUpdate locks the match row until the surrounding transaction ends.
	GetForUpdate(ctx context.Context, exec SQLExecutor, id int) (*models.Match, error)
	ListParticipants(ctx context.Context, exec SQLExecutor, matchID int) ([]int, error)
	ListGames(ctx context.Context, exec SQLExecutor, matchID int) ([]*models.MatchGame, error)
	InsertGame(ctx context.Context, exec SQLExecutor, game *models.MatchGame) error
	UpdateProgress(ctx context.Context, exec SQLExecutor, matchID int, status models.MatchStatus, homeScore, awayScore int, winnerTeamID *int) error
	ListCompetitorIDs(ctx context.Context, exec SQLExecutor, sportID int, mode models.CompetitorKind) ([]int, error)
	CountBySports(ctx context.Context, sportIDs []int) (total int, finished int, err error)
}

type postgresMatchRepository struct {
	db *sql.DB
}

func NewPostgresMatchRepository(db *sql.DB) MatchRepository {
	return &postgresMatchRepository{db: db}
}

func (r *postgresMatchRepository) getExecutor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

const matchColumns = `id, sport_id, match_mode, home_team_id, away_team_id, start_time, venue,
		status, is_finished, winner_team_id, home_score, away_score, created_at, updated_at`

func (r *postgresMatchRepository) Create(ctx context.Context, exec SQLExecutor, match *models.Match) error {
	query := `
		INSERT INTO matches (sport_id, match_mode, home_team_id, away_team_id, start_time, venue, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, is_finished, home_score, away_score, created_at, updated_at`

	if match.Status == "" {
		match.Status = models.MatchStatusScheduled
	}
	err := r.getExecutor(exec).QueryRowContext(ctx, query,
		match.SportID,
		match.Mode,
		match.HomeTeamID,
		match.AwayTeamID,
		match.StartTime,
		match.Venue,
		match.Status,
	).Scan(&match.ID, &match.IsFinished, &match.HomeScore, &match.AwayScore, &match.CreatedAt, &match.UpdatedAt)

	return r.handleMatchError(err)
}

func (r *postgresMatchRepository) AddParticipants(ctx context.Context, exec SQLExecutor, matchID int, teamIDs []int) error {
	executor := r.getExecutor(exec)
	query := `INSERT INTO match_participants (match_id, slot, team_id) VALUES ($1, $2, $3)`
	for i, teamID := range teamIDs {
		if _, err := executor.ExecContext(ctx, query, matchID, i+1, teamID); err != nil {
			return r.handleMatchError(err)
		}
	}
	return nil
}

func (r *postgresMatchRepository) scanMatch(row rowScanner) (*models.Match, error) {
	var m models.Match
	err := row.Scan(
		&m.ID, &m.SportID, &m.Mode, &m.HomeTeamID, &m.AwayTeamID, &m.StartTime, &m.Venue,
		&m.Status, &m.IsFinished, &m.WinnerTeamID, &m.HomeScore, &m.AwayScore, &m.CreatedAt, &m.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrMatchNotFound
		}
		return nil, err
	}
	return &m, nil
}

func (r *postgresMatchRepository) GetByID(ctx context.Context, exec SQLExecutor, id int) (*models.Match, error) {
	query := `SELECT ` + matchColumns + ` FROM matches WHERE id = $1`
	return r.scanMatch(r.getExecutor(exec).QueryRowContext(ctx, query, id))
}

func (r *postgresMatchRepository) GetForUpdate(ctx context.Context, exec SQLExecutor, id int) (*models.Match, error) {
	query := `SELECT ` + matchColumns + ` FROM matches WHERE id = $1 FOR UPDATE`
	return r.scanMatch(r.getExecutor(exec).QueryRowContext(ctx, query, id))
}

func (r *postgresMatchRepository) ListParticipants(ctx context.Context, exec SQLExecutor, matchID int) ([]int, error) {
	query := `SELECT team_id FROM match_participants WHERE match_id = $1 ORDER BY slot ASC`
	rows, err := r.getExecutor(exec).QueryContext(ctx, query, matchID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ids := make([]int, 0, 2)
	for rows.Next() {
		var id int
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return ids, nil
}

func (r *postgresMatchRepository) ListGames(ctx context.Context, exec SQLExecutor, matchID int) ([]*models.MatchGame, error) {
	query := `
		SELECT id, match_id, seq, home_score, away_score, winner_side, created_at
		FROM match_games
		WHERE match_id = $1
		ORDER BY seq ASC`
	rows, err := r.getExecutor(exec).QueryContext(ctx, query, matchID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	games := make([]*models.MatchGame, 0, 3)
	for rows.Next() {
		var g models.MatchGame
		if err := rows.Scan(&g.ID, &g.MatchID, &g.Seq, &g.HomeScore, &g.AwayScore, &g.WinnerSide, &g.CreatedAt); err != nil {
			return nil, err
		}
		games = append(games, &g)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return games, nil
}

func (r *postgresMatchRepository) InsertGame(ctx context.Context, exec SQLExecutor, game *models.MatchGame) error {
	query := `
		INSERT INTO match_games (match_id, seq, home_score, away_score, winner_side)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at`
	err := r.getExecutor(exec).QueryRowContext(ctx, query,
		game.MatchID, game.Seq, game.HomeScore, game.AwayScore, game.WinnerSide,
	).Scan(&game.ID, &game.CreatedAt)
	return r.handleMatchError(err)
}

func (r *postgresMatchRepository) UpdateProgress(ctx context.Context, exec SQLExecutor, matchID int, status models.MatchStatus, homeScore, awayScore int, winnerTeamID *int) error {
	query := `
		UPDATE matches SET
			status = $2,
			is_finished = $3,
			home_score = $4,
			away_score = $5,
			winner_team_id = $6,
			updated_at = NOW()
		WHERE id = $1`
	result, err := r.getExecutor(exec).ExecContext(ctx, query,
		matchID, status, status == models.MatchStatusFinished, homeScore, awayScore, winnerTeamID,
	)
	if err != nil {
		return r.handleMatchError(err)
	}
	return checkAffectedRows(result, ErrMatchNotFound)
}

// ListCompetitorIDs returns every competitor scheduled in a match of the sport and mode.
func (r *postgresMatchRepository) ListCompetitorIDs(ctx context.Context, exec SQLExecutor, sportID int, mode models.CompetitorKind) ([]int, error) {
	query := `
		SELECT team_id FROM (
			SELECT home_team_id AS team_id FROM matches WHERE sport_id = $1 AND match_mode = $2 AND home_team_id IS NOT NULL
			UNION
			SELECT away_team_id FROM matches WHERE sport_id = $1 AND match_mode = $2 AND away_team_id IS NOT NULL
			UNION
			SELECT mp.team_id FROM match_participants mp
			JOIN matches m ON m.id = mp.match_id
			WHERE m.sport_id = $1 AND m.match_mode = $2
		) competitors
		ORDER BY team_id`
	rows, err := r.getExecutor(exec).QueryContext(ctx, query, sportID, mode)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ids := make([]int, 0)
	for rows.Next() {
		var id int
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return ids, nil
}

func (r *postgresMatchRepository) CountBySports(ctx context.Context, sportIDs []int) (int, int, error) {
	query := `
		SELECT COUNT(*), COUNT(*) FILTER (WHERE is_finished)
		FROM matches
		WHERE sport_id = ANY($1)`
	var total, finished int
	if err := r.db.QueryRowContext(ctx, query, pqIntArray(sportIDs)).Scan(&total, &finished); err != nil {
		return 0, 0, fmt.Errorf("count matches: %w", err)
	}
	return total, finished, nil
}

func (r *postgresMatchRepository) handleMatchError(err error) error {
	if err == nil {
		return nil
	}
	if pqErr, ok := asPQError(err); ok {
		switch pqErr.Constraint {
		case "matches_sport_id_fkey":
			return ErrMatchSportInvalid
		case "matches_home_team_id_fkey", "matches_away_team_id_fkey", "matches_winner_team_id_fkey", "matches_distinct_sides":
			return ErrMatchTeamInvalid
		case "match_participants_team_id_fkey", "match_participants_unique_team", "match_participants_pkey":
			return ErrMatchParticipantInvalid
		case "match_games_match_seq_key":
			return ErrMatchGameConflict
		}
		if pqErr.Code == pqCheckViolation && pqErr.Table == "match_games" {
			return fmt.Errorf("%w: %s", ErrMatchGameInvalid, pqErr.Message)
		}
	}
	return err
}
