package models

import "time"

type TicketType struct {
	ID         int       `json:"id" db:"id"`
	MatchID    *int      `json:"match_id,omitempty" db:"match_id"`
	EventID    *int      `json:"event_id,omitempty" db:"event_id"`
	Name       string    `json:"name" db:"name"`
	Price      int64     `json:"price" db:"price"`
	Quota      int       `json:"quota" db:"quota"`
	Sold       int       `json:"sold" db:"sold"`
	MaxPerUser *int      `json:"max_per_user,omitempty" db:"max_per_user"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`

	// StartsAt берётся из связанного матча (start_time) или события (start_date).
	StartsAt *time.Time `json:"starts_at,omitempty" db:"starts_at"`
	// SportID берётся из связанного матча или события.
	SportID *int `json:"sport_id,omitempty" db:"sport_id"`
}

func (t *TicketType) Available() int {
	return t.Quota - t.Sold
}

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusPaid      OrderStatus = "paid"
	OrderStatusCancelled OrderStatus = "cancelled"
)

type Order struct {
	ID          int         `json:"id" db:"id"`
	UserID      int         `json:"user_id" db:"user_id"`
	TotalAmount int64       `json:"total_amount" db:"total_amount"`
	Status      OrderStatus `json:"status" db:"status"`
	CreatedAt   time.Time   `json:"created_at" db:"created_at"`

	Items   []*OrderItem `json:"items,omitempty" db:"-"`
	Tickets []*Ticket    `json:"tickets,omitempty" db:"-"`
}

type OrderItem struct {
	ID           int   `json:"id" db:"id"`
	OrderID      int   `json:"order_id" db:"order_id"`
	TicketTypeID int   `json:"ticket_type_id" db:"ticket_type_id"`
	Quantity     int   `json:"quantity" db:"quantity"`
	Price        int64 `json:"price" db:"price"`
}

type Ticket struct {
	ID           int       `json:"id" db:"id"`
	OrderItemID  int       `json:"order_item_id" db:"order_item_id"`
	TicketCode   string    `json:"ticket_code" db:"ticket_code"`
	HolderName   *string   `json:"holder_name,omitempty" db:"holder_name"`
	TicketTypeID int       `json:"ticket_type_id" db:"-"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}

// TicketHolder assigns a display name to one purchased ticket.
type TicketHolder struct {
	TicketID int    `json:"ticket_id"`
	Name     string `json:"name"`
}
