package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Dosada05/sporter/models"
)

var (
	ErrStandingNotFound     = errors.New("standing not found")
	ErrStandingTeamInvalid  = errors.New("standing team conflict or invalid")
	ErrStandingSportInvalid = errors.New("standing sport conflict or invalid")
	ErrNegativeDelta        = errors.New("standing counters can only grow")
)

// StandingDelta holds increments for one ledger row. All fields must be non-negative.
type StandingDelta struct {
	Played       int
	Win          int
	Draw         int
	Loss         int
	GameWin      int
	GameLoss     int
	SetWin       int
	SetLoss      int
	ScoreFor     int
	ScoreAgainst int
	Points       int
}

func (d StandingDelta) validate() error {
	for _, v := range []int{
		d.Played, d.Win, d.Draw, d.Loss, d.GameWin, d.GameLoss,
		d.SetWin, d.SetLoss, d.ScoreFor, d.ScoreAgainst, d.Points,
	} {
		if v < 0 {
			return ErrNegativeDelta
		}
	}
	return nil
}

type StandingRepository interface {
	// Ensure inserts an all-zero row unless one already exists.
	Ensure(ctx context.Context, exec SQLExecutor, sportID, teamID int) error
	Get(ctx context.Context, exec SQLExecutor, sportID, teamID int) (*models.Standing, error)
	// Increment adds delta to the row in a single UPDATE statement.
	Increment(ctx context.Context, exec SQLExecutor, sportID, teamID int, delta StandingDelta) error
	List(ctx context.Context, exec SQLExecutor, sportID int, mode models.CompetitorKind, system models.ScoringSystem) ([]*models.StandingRow, error)
	CountBySports(ctx context.Context, sportIDs []int) (int, error)
}

type postgresStandingRepository struct {
	db *sql.DB
}

func NewPostgresStandingRepository(db *sql.DB) StandingRepository {
	return &postgresStandingRepository{db: db}
}

func (r *postgresStandingRepository) getExecutor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

func (r *postgresStandingRepository) Ensure(ctx context.Context, exec SQLExecutor, sportID, teamID int) error {
	query := `
		INSERT INTO standings (sport_id, team_id)
		VALUES ($1, $2)
		ON CONFLICT ON CONSTRAINT standings_sport_team_key DO NOTHING`
	_, err := r.getExecutor(exec).ExecContext(ctx, query, sportID, teamID)
	return r.handleStandingError(err)
}

func (r *postgresStandingRepository) Get(ctx context.Context, exec SQLExecutor, sportID, teamID int) (*models.Standing, error) {
	query := `
		SELECT id, sport_id, team_id, played, win, draw, loss, game_win, game_loss,
		       set_win, set_loss, score_for, score_against, pts, updated_at
		FROM standings
		WHERE sport_id = $1 AND team_id = $2`

	var s models.Standing
	err := r.getExecutor(exec).QueryRowContext(ctx, query, sportID, teamID).Scan(
		&s.ID, &s.SportID, &s.TeamID, &s.Played, &s.Win, &s.Draw, &s.Loss, &s.GameWin, &s.GameLoss,
		&s.SetWin, &s.SetLoss, &s.ScoreFor, &s.ScoreAgainst, &s.Points, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrStandingNotFound
		}
		return nil, err
	}
	return &s, nil
}

func (r *postgresStandingRepository) Increment(ctx context.Context, exec SQLExecutor, sportID, teamID int, d StandingDelta) error {
	if err := d.validate(); err != nil {
		return err
	}
	query := `
		UPDATE standings SET
			played        = played + $3,
			win           = win + $4,
			draw          = draw + $5,
			loss          = loss + $6,
			game_win      = game_win + $7,
			game_loss     = game_loss + $8,
			set_win       = set_win + $9,
			set_loss      = set_loss + $10,
			score_for     = score_for + $11,
			score_against = score_against + $12,
			pts           = pts + $13,
			updated_at    = NOW()
		WHERE sport_id = $1 AND team_id = $2`
	result, err := r.getExecutor(exec).ExecContext(ctx, query,
		sportID, teamID,
		d.Played, d.Win, d.Draw, d.Loss, d.GameWin, d.GameLoss,
		d.SetWin, d.SetLoss, d.ScoreFor, d.ScoreAgainst, d.Points,
	)
	if err != nil {
		return r.handleStandingError(err)
	}
	return checkAffectedRows(result, ErrStandingNotFound)
}

// Orderings end with name and id so equal rows keep a stable position.
const (
	padelStandingsOrder   = ` ORDER BY s.win DESC, set_diff DESC, score_diff DESC, t.name ASC, t.id ASC`
	classicStandingsOrder = ` ORDER BY s.pts DESC, score_diff DESC, s.score_for DESC, t.name ASC, t.id ASC`
)

func (r *postgresStandingRepository) List(ctx context.Context, exec SQLExecutor, sportID int, mode models.CompetitorKind, system models.ScoringSystem) ([]*models.StandingRow, error) {
	query := `
		SELECT s.id, s.sport_id, s.team_id, s.played, s.win, s.draw, s.loss, s.game_win, s.game_loss,
		       s.set_win, s.set_loss, s.score_for, s.score_against, s.pts, s.updated_at,
		       t.name, t.logo_key,
		       (s.set_win - s.set_loss) AS set_diff,
		       (s.score_for - s.score_against) AS score_diff,
		       (SELECT COUNT(*) FROM matches m
		         WHERE m.sport_id = s.sport_id AND m.match_mode = $2
		           AND (m.home_team_id = t.id OR m.away_team_id = t.id
		                OR EXISTS (SELECT 1 FROM match_participants mp WHERE mp.match_id = m.id AND mp.team_id = t.id))
		       ) AS total_match
		FROM standings s
		JOIN teams t ON t.id = s.team_id
		WHERE s.sport_id = $1 AND t.is_individual = $3`

	switch system {
	case models.ScoringPadel:
		query += padelStandingsOrder
	case models.ScoringClassic:
		query += classicStandingsOrder
	default:
		return nil, fmt.Errorf("unknown scoring system %q", system)
	}

	rows, err := r.getExecutor(exec).QueryContext(ctx, query, sportID, mode, mode == models.KindIndividual)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	standings := make([]*models.StandingRow, 0)
	for rows.Next() {
		var s models.StandingRow
		errScan := rows.Scan(
			&s.ID, &s.SportID, &s.TeamID, &s.Played, &s.Win, &s.Draw, &s.Loss, &s.GameWin, &s.GameLoss,
			&s.SetWin, &s.SetLoss, &s.ScoreFor, &s.ScoreAgainst, &s.Points, &s.UpdatedAt,
			&s.TeamName, &s.LogoKey, &s.SetDiff, &s.ScoreDiff, &s.TotalMatch,
		)
		if errScan != nil {
			return nil, errScan
		}
		s.Rank = len(standings) + 1
		standings = append(standings, &s)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return standings, nil
}

func (r *postgresStandingRepository) CountBySports(ctx context.Context, sportIDs []int) (int, error) {
	query := `SELECT COUNT(*) FROM standings WHERE sport_id = ANY($1)`
	var n int
	if err := r.db.QueryRowContext(ctx, query, pqIntArray(sportIDs)).Scan(&n); err != nil {
		return 0, fmt.Errorf("count standings: %w", err)
	}
	return n, nil
}

func (r *postgresStandingRepository) handleStandingError(err error) error {
	if err == nil {
		return nil
	}
	if pqErr, ok := asPQError(err); ok && pqErr.Code == pqForeignKeyViolation {
		switch pqErr.Constraint {
		case "standings_team_id_fkey":
			return ErrStandingTeamInvalid
		case "standings_sport_id_fkey":
			return ErrStandingSportInvalid
		}
	}
	return err
}
