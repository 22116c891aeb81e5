package repositories

import (
	"context"
	"database/sql"
)

// UserRepository exposes the sport assignments of back-office users (user_sports).
type UserRepository interface {
	ListSportIDs(ctx context.Context, userID int) ([]int, error)
	HasSport(ctx context.Context, userID, sportID int) (bool, error)
}

type postgresUserRepository struct {
	db *sql.DB
}

func NewPostgresUserRepository(db *sql.DB) UserRepository {
	return &postgresUserRepository{db: db}
}

func (r *postgresUserRepository) ListSportIDs(ctx context.Context, userID int) ([]int, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT sport_id FROM user_sports WHERE user_id = $1 ORDER BY sport_id`, userID)
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

func (r *postgresUserRepository) HasSport(ctx context.Context, userID, sportID int) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM user_sports WHERE user_id = $1 AND sport_id = $2)`
	var ok bool
	if err := r.db.QueryRowContext(ctx, query, userID, sportID).Scan(&ok); err != nil {
		return false, err
	}
	return ok, nil
}
