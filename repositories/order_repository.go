package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Dosada05/sporter/models"
)

var (
	ErrOrderNotFound      = errors.New("order not found")
	ErrTicketNotFound     = errors.New("ticket not found in order")
	ErrTicketCodeConflict = errors.New("ticket code already exists")
	ErrOrderUserInvalid   = errors.New("order user conflict or invalid")
)

type OrderRepository interface {
	Create(ctx context.Context, exec SQLExecutor, order *models.Order) error
	CreateItem(ctx context.Context, exec SQLExecutor, item *models.OrderItem) error
	CreateTicket(ctx context.Context, exec SQLExecutor, ticket *models.Ticket) error
	// GetForUser returns ErrOrderNotFound when the order belongs to someone else.
	GetForUser(ctx context.Context, exec SQLExecutor, orderID, userID int) (*models.Order, error)
	ListItems(ctx context.Context, exec SQLExecutor, orderID int) ([]*models.OrderItem, error)
	ListTickets(ctx context.Context, exec SQLExecutor, orderID int) ([]*models.Ticket, error)
	UpdateHolderName(ctx context.Context, exec SQLExecutor, orderID, ticketID int, name string) error
}

type postgresOrderRepository struct {
	db *sql.DB
}

func NewPostgresOrderRepository(db *sql.DB) OrderRepository {
	return &postgresOrderRepository{db: db}
}

func (r *postgresOrderRepository) getExecutor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

func (r *postgresOrderRepository) Create(ctx context.Context, exec SQLExecutor, order *models.Order) error {
	query := `
		INSERT INTO orders (user_id, total_amount, status)
		VALUES ($1, $2, $3)
		RETURNING id, created_at`
	err := r.getExecutor(exec).QueryRowContext(ctx, query, order.UserID, order.TotalAmount, order.Status).
		Scan(&order.ID, &order.CreatedAt)
	return r.handleOrderError(err)
}

func (r *postgresOrderRepository) CreateItem(ctx context.Context, exec SQLExecutor, item *models.OrderItem) error {
	query := `
		INSERT INTO order_items (order_id, ticket_type_id, quantity, price)
		VALUES ($1, $2, $3, $4)
		RETURNING id`
	err := r.getExecutor(exec).QueryRowContext(ctx, query, item.OrderID, item.TicketTypeID, item.Quantity, item.Price).
		Scan(&item.ID)
	return r.handleOrderError(err)
}

func (r *postgresOrderRepository) CreateTicket(ctx context.Context, exec SQLExecutor, ticket *models.Ticket) error {
	query := `
		INSERT INTO tickets (order_item_id, ticket_code, holder_name)
		VALUES ($1, $2, $3)
		RETURNING id, created_at`
	err := r.getExecutor(exec).QueryRowContext(ctx, query, ticket.OrderItemID, ticket.TicketCode, ticket.HolderName).
		Scan(&ticket.ID, &ticket.CreatedAt)
	return r.handleOrderError(err)
}

func (r *postgresOrderRepository) GetForUser(ctx context.Context, exec SQLExecutor, orderID, userID int) (*models.Order, error) {
	query := `SELECT id, user_id, total_amount, status, created_at FROM orders WHERE id = $1 AND user_id = $2`

	var o models.Order
	err := r.getExecutor(exec).QueryRowContext(ctx, query, orderID, userID).
		Scan(&o.ID, &o.UserID, &o.TotalAmount, &o.Status, &o.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	return &o, nil
}

func (r *postgresOrderRepository) ListItems(ctx context.Context, exec SQLExecutor, orderID int) ([]*models.OrderItem, error) {
	query := `SELECT id, order_id, ticket_type_id, quantity, price FROM order_items WHERE order_id = $1 ORDER BY id`
	rows, err := r.getExecutor(exec).QueryContext(ctx, query, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]*models.OrderItem, 0, 1)
	for rows.Next() {
		var it models.OrderItem
		if err := rows.Scan(&it.ID, &it.OrderID, &it.TicketTypeID, &it.Quantity, &it.Price); err != nil {
			return nil, err
		}
		items = append(items, &it)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

func (r *postgresOrderRepository) ListTickets(ctx context.Context, exec SQLExecutor, orderID int) ([]*models.Ticket, error) {
	query := `
		SELECT t.id, t.order_item_id, t.ticket_code, t.holder_name, oi.ticket_type_id, t.created_at
		FROM tickets t
		JOIN order_items oi ON oi.id = t.order_item_id
		WHERE oi.order_id = $1
		ORDER BY t.id`
	rows, err := r.getExecutor(exec).QueryContext(ctx, query, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tickets := make([]*models.Ticket, 0)
	for rows.Next() {
		var t models.Ticket
		if err := rows.Scan(&t.ID, &t.OrderItemID, &t.TicketCode, &t.HolderName, &t.TicketTypeID, &t.CreatedAt); err != nil {
			return nil, err
		}
		tickets = append(tickets, &t)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return tickets, nil
}

func (r *postgresOrderRepository) UpdateHolderName(ctx context.Context, exec SQLExecutor, orderID, ticketID int, name string) error {
	query := `
		UPDATE tickets t SET holder_name = $3
		FROM order_items oi
		WHERE oi.id = t.order_item_id AND oi.order_id = $1 AND t.id = $2`
	result, err := r.getExecutor(exec).ExecContext(ctx, query, orderID, ticketID, name)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrTicketNotFound)
}

func (r *postgresOrderRepository) handleOrderError(err error) error {
	if err == nil {
		return nil
	}
	if pqErr, ok := asPQError(err); ok {
		if pqErr.Code == pqUniqueViolation && pqErr.Constraint == "tickets_ticket_code_key" {
			return ErrTicketCodeConflict
		}
		switch pqErr.Constraint {
		case "orders_user_id_fkey":
			return ErrOrderUserInvalid
		case "order_items_ticket_type_id_fkey":
			return ErrTicketTypeNotFound
		}
	}
	return err
}
