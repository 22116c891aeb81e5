package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Dosada05/sporter/models"
)

var ErrTeamNotFound = errors.New("team not found")

type TeamRepository interface {
	GetByID(ctx context.Context, exec SQLExecutor, id int) (*models.Team, error)
	// ListBySport returns the competitors of a sport; kind filters by match mode when not empty.
	ListBySport(ctx context.Context, sportID int, kind models.CompetitorKind) ([]models.Team, error)
	UpdateLogoKey(ctx context.Context, teamID int, logoKey *string) error
	CountBySports(ctx context.Context, sportIDs []int) (int, error)
}

type postgresTeamRepository struct {
	db *sql.DB
}

func NewPostgresTeamRepository(db *sql.DB) TeamRepository {
	return &postgresTeamRepository{db: db}
}

func (r *postgresTeamRepository) getExecutor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

func (r *postgresTeamRepository) GetByID(ctx context.Context, exec SQLExecutor, id int) (*models.Team, error) {
	query := `SELECT id, name, sport_id, is_individual, logo_key, created_at FROM teams WHERE id = $1`

	var team models.Team
	err := r.getExecutor(exec).QueryRowContext(ctx, query, id).Scan(
		&team.ID, &team.Name, &team.SportID, &team.IsIndividual, &team.LogoKey, &team.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTeamNotFound
		}
		return nil, err
	}
	return &team, nil
}

func (r *postgresTeamRepository) ListBySport(ctx context.Context, sportID int, kind models.CompetitorKind) ([]models.Team, error) {
	query := `
		SELECT id, name, sport_id, is_individual, logo_key, created_at
		FROM teams
		WHERE sport_id = $1 AND ($2 = '' OR is_individual = ($2 = 'individual'))
		ORDER BY name, id`

	rows, err := r.db.QueryContext(ctx, query, sportID, string(kind))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	teams := make([]models.Team, 0)
	for rows.Next() {
		var team models.Team
		if err := rows.Scan(&team.ID, &team.Name, &team.SportID, &team.IsIndividual, &team.LogoKey, &team.CreatedAt); err != nil {
			return nil, err
		}
		teams = append(teams, team)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return teams, nil
}

func (r *postgresTeamRepository) UpdateLogoKey(ctx context.Context, teamID int, logoKey *string) error {
	result, err := r.db.ExecContext(ctx, `UPDATE teams SET logo_key = $1 WHERE id = $2`, logoKey, teamID)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrTeamNotFound)
}

func (r *postgresTeamRepository) CountBySports(ctx context.Context, sportIDs []int) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM teams WHERE sport_id = ANY($1)`, pqIntArray(sportIDs)).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count teams: %w", err)
	}
	return n, nil
}
