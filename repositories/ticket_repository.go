package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Dosada05/sporter/models"
)

var (
	ErrTicketTypeNotFound   = errors.New("ticket type not found")
	ErrTicketQuotaExceeded  = errors.New("ticket type sold would exceed quota")
	ErrTicketTypeTargetSame = errors.New("ticket type must reference exactly one match or event")
)

type TicketTypeRepository interface {
	GetByID(ctx context.Context, exec SQLExecutor, id int) (*models.TicketType, error)
	// GetForUpdate locks the ticket type row (not the joined match or event) until the transaction ends.
	GetForUpdate(ctx context.Context, exec SQLExecutor, id int) (*models.TicketType, error)
	IncrementSold(ctx context.Context, exec SQLExecutor, id int, quantity int) error
	// SumUserQuantity counts tickets of this type the user holds in orders that are not cancelled.
	SumUserQuantity(ctx context.Context, exec SQLExecutor, userID, ticketTypeID int) (int, error)
	CountBySports(ctx context.Context, sportIDs []int) (types int, sold int, err error)
}

type postgresTicketTypeRepository struct {
	db *sql.DB
}

func NewPostgresTicketTypeRepository(db *sql.DB) TicketTypeRepository {
	return &postgresTicketTypeRepository{db: db}
}

func (r *postgresTicketTypeRepository) getExecutor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

const ticketTypeSelect = `
		SELECT tt.id, tt.match_id, tt.event_id, tt.name, tt.price, tt.quota, tt.sold, tt.max_per_user, tt.created_at,
		       COALESCE(m.start_time, e.start_date) AS starts_at,
		       COALESCE(m.sport_id, e.sport_id) AS sport_id
		FROM ticket_types tt
		LEFT JOIN matches m ON m.id = tt.match_id
		LEFT JOIN events e ON e.id = tt.event_id
		WHERE tt.id = $1`

func (r *postgresTicketTypeRepository) scanTicketType(row rowScanner) (*models.TicketType, error) {
	var tt models.TicketType
	err := row.Scan(
		&tt.ID, &tt.MatchID, &tt.EventID, &tt.Name, &tt.Price, &tt.Quota, &tt.Sold, &tt.MaxPerUser, &tt.CreatedAt,
		&tt.StartsAt, &tt.SportID,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTicketTypeNotFound
		}
		return nil, err
	}
	return &tt, nil
}

func (r *postgresTicketTypeRepository) GetByID(ctx context.Context, exec SQLExecutor, id int) (*models.TicketType, error) {
	return r.scanTicketType(r.getExecutor(exec).QueryRowContext(ctx, ticketTypeSelect, id))
}

func (r *postgresTicketTypeRepository) GetForUpdate(ctx context.Context, exec SQLExecutor, id int) (*models.TicketType, error) {
	return r.scanTicketType(r.getExecutor(exec).QueryRowContext(ctx, ticketTypeSelect+` FOR UPDATE OF tt`, id))
}

func (r *postgresTicketTypeRepository) IncrementSold(ctx context.Context, exec SQLExecutor, id int, quantity int) error {
	query := `UPDATE ticket_types SET sold = sold + $2 WHERE id = $1 AND sold + $2 <= quota`
	result, err := r.getExecutor(exec).ExecContext(ctx, query, id, quantity)
	if err != nil {
		return r.handleTicketTypeError(err)
	}
	return checkAffectedRows(result, ErrTicketQuotaExceeded)
}

func (r *postgresTicketTypeRepository) SumUserQuantity(ctx context.Context, exec SQLExecutor, userID, ticketTypeID int) (int, error) {
	query := `
		SELECT COALESCE(SUM(oi.quantity), 0)
		FROM order_items oi
		JOIN orders o ON o.id = oi.order_id
		WHERE o.user_id = $1 AND oi.ticket_type_id = $2 AND o.status <> 'cancelled'`
	var total int
	if err := r.getExecutor(exec).QueryRowContext(ctx, query, userID, ticketTypeID).Scan(&total); err != nil {
		return 0, err
	}
	return total, nil
}

func (r *postgresTicketTypeRepository) CountBySports(ctx context.Context, sportIDs []int) (int, int, error) {
	query := `
		SELECT COUNT(tt.id), COALESCE(SUM(tt.sold), 0)
		FROM ticket_types tt
		LEFT JOIN matches m ON m.id = tt.match_id
		LEFT JOIN events e ON e.id = tt.event_id
		WHERE COALESCE(m.sport_id, e.sport_id) = ANY($1)`
	var types, sold int
	if err := r.db.QueryRowContext(ctx, query, pqIntArray(sportIDs)).Scan(&types, &sold); err != nil {
		return 0, 0, fmt.Errorf("count ticket types: %w", err)
	}
	return types, sold, nil
}

func (r *postgresTicketTypeRepository) handleTicketTypeError(err error) error {
	if err == nil {
		return nil
	}
	if pqErr, ok := asPQError(err); ok && pqErr.Code == pqCheckViolation {
		switch pqErr.Constraint {
		case "ticket_types_sold_within_quota":
			return ErrTicketQuotaExceeded
		case "ticket_types_single_target":
			return ErrTicketTypeTargetSame
		}
	}
	return err
}
