package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Dosada05/sporter/models"
)

var ErrSportNotFound = errors.New("sport not found")

type SportRepository interface {
	GetByID(ctx context.Context, exec SQLExecutor, id int) (*models.Sport, error)
	GetAll(ctx context.Context) ([]models.Sport, error)
	UpdateLogoKey(ctx context.Context, sportID int, logoKey *string) error
}

type postgresSportRepository struct {
	db *sql.DB
}

func NewPostgresSportRepository(db *sql.DB) SportRepository {
	return &postgresSportRepository{db: db}
}

func (r *postgresSportRepository) getExecutor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

func (r *postgresSportRepository) GetByID(ctx context.Context, exec SQLExecutor, id int) (*models.Sport, error) {
	query := `SELECT id, name, scoring_system, logo_key FROM sports WHERE id = $1`

	var sport models.Sport
	err := r.getExecutor(exec).QueryRowContext(ctx, query, id).Scan(&sport.ID, &sport.Name, &sport.ScoringSystem, &sport.LogoKey)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrSportNotFound
		}
		return nil, err
	}
	return &sport, nil
}

func (r *postgresSportRepository) GetAll(ctx context.Context) ([]models.Sport, error) {
	query := `SELECT id, name, scoring_system, logo_key FROM sports ORDER BY name`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sports []models.Sport
	for rows.Next() {
		var sport models.Sport
		if err := rows.Scan(&sport.ID, &sport.Name, &sport.ScoringSystem, &sport.LogoKey); err != nil {
			return nil, err
		}
		sports = append(sports, sport)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return sports, nil
}

func (r *postgresSportRepository) UpdateLogoKey(ctx context.Context, sportID int, logoKey *string) error {
	result, err := r.db.ExecContext(ctx, `UPDATE sports SET logo_key = $1 WHERE id = $2`, logoKey, sportID)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrSportNotFound)
}
