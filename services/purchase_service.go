package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/Dosada05/sporter/metrics"
	"github.com/Dosada05/sporter/models"
	"github.com/Dosada05/sporter/repositories"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

const (
	ticketCodePrefix    = "TCKT-"
	maxHolderNameLength = 100
)

type PurchaseService interface {
	// BuyTicket sells quantity tickets of one type in a single paid order.
	BuyTicket(ctx context.Context, userID, ticketTypeID, quantity int) (*models.Order, error)
	// SaveTicketHolders names the tickets of an order. Blank names are skipped.
	SaveTicketHolders(ctx context.Context, userID, orderID int, holders []models.TicketHolder) (int, error)
	GetOrder(ctx context.Context, userID, orderID int) (*models.Order, error)
}

type purchaseService struct {
	tx             repositories.Transactor
	ticketTypeRepo repositories.TicketTypeRepository
	orderRepo      repositories.OrderRepository
	metrics        metrics.Recorder
	logger         *slog.Logger
	now            func() time.Time
	newTicketCode  func() string
}

func NewPurchaseService(
	tx repositories.Transactor,
	ticketTypeRepo repositories.TicketTypeRepository,
	orderRepo repositories.OrderRepository,
	recorder metrics.Recorder,
	logger *slog.Logger,
) PurchaseService {
	return &purchaseService{
		tx:             tx,
		ticketTypeRepo: ticketTypeRepo,
		orderRepo:      orderRepo,
		metrics:        recorder,
		logger:         logger,
		now:            time.Now,
		newTicketCode:  generateTicketCode,
	}
}

// generateTicketCode returns TCKT- followed by 16 uppercase hex characters of a random UUID.
func generateTicketCode() string {
	raw := strings.ReplaceAll(uuid.NewString(), "-", "")
	return ticketCodePrefix + strings.ToUpper(raw[:16])
}

// withLockedTicketType runs fn in a transaction holding the row lock of the ticket type.
// Concurrent buyers of the same type are serialized here.
func (s *purchaseService) withLockedTicketType(ctx context.Context, ticketTypeID int, fn func(tx repositories.SQLExecutor, tt *models.TicketType) error) error {
	return s.tx.WithinTx(ctx, func(tx repositories.SQLExecutor) error {
		tt, err := s.ticketTypeRepo.GetForUpdate(ctx, tx, ticketTypeID)
		if err != nil {
			return handleRepositoryError(err, "lock ticket type")
		}
		return fn(tx, tt)
	})
}

func (s *purchaseService) BuyTicket(ctx context.Context, userID, ticketTypeID, quantity int) (*models.Order, error) {
	if quantity < 1 {
		s.metrics.TicketPurchase(metrics.OutcomeRejected, 0)
		return nil, ErrInvalidQuantity
	}

	var order *models.Order
	err := s.withLockedTicketType(ctx, ticketTypeID, func(tx repositories.SQLExecutor, tt *models.TicketType) error {
		if err := s.checkSalesOpen(tt); err != nil {
			return err
		}
		if tt.Available() < quantity {
			return ErrInsufficientQuota
		}
		if tt.MaxPerUser != nil {
			bought, err := s.ticketTypeRepo.SumUserQuantity(ctx, tx, userID, tt.ID)
			if err != nil {
				return handleRepositoryError(err, "sum user tickets")
			}
			if bought+quantity > *tt.MaxPerUser {
				return ErrPerUserLimit
			}
		}

		o, err := s.createPaidOrder(ctx, tx, userID, tt, quantity)
		if err != nil {
			return err
		}
		if err := s.ticketTypeRepo.IncrementSold(ctx, tx, tt.ID, quantity); err != nil {
			return handleRepositoryError(err, "increment sold")
		}
		order = o
		return nil
	})
	if err != nil {
		s.metrics.TicketPurchase(outcomeOf(err), 0)
		if outcomeOf(err) == metrics.OutcomeFailed {
			s.logger.ErrorContext(ctx, "ticket purchase failed",
				slog.Int("user_id", userID), slog.Int("ticket_type_id", ticketTypeID), slog.Any("error", err))
		}
		return nil, err
	}

	s.metrics.TicketPurchase(metrics.OutcomeAccepted, quantity)
	s.logger.InfoContext(ctx, "tickets purchased",
		slog.Int("order_id", order.ID),
		slog.Int("user_id", userID),
		slog.Int("ticket_type_id", ticketTypeID),
		slog.Int("quantity", quantity),
		slog.Int64("total_amount", order.TotalAmount))
	return order, nil
}

func (s *purchaseService) checkSalesOpen(tt *models.TicketType) error {
	if tt.StartsAt == nil {
		return ErrTicketNotScheduled
	}
	if !s.now().Before(*tt.StartsAt) {
		return ErrTicketSalesClosed
	}
	return nil
}

func (s *purchaseService) createPaidOrder(ctx context.Context, tx repositories.SQLExecutor, userID int, tt *models.TicketType, quantity int) (*models.Order, error) {
	order := &models.Order{
		UserID:      userID,
		TotalAmount: tt.Price * int64(quantity),
		Status:      models.OrderStatusPaid,
	}
	if err := s.orderRepo.Create(ctx, tx, order); err != nil {
		return nil, handleRepositoryError(err, "create order")
	}

	item := &models.OrderItem{
		OrderID:      order.ID,
		TicketTypeID: tt.ID,
		Quantity:     quantity,
		Price:        tt.Price,
	}
	if err := s.orderRepo.CreateItem(ctx, tx, item); err != nil {
		return nil, handleRepositoryError(err, "create order item")
	}
	order.Items = []*models.OrderItem{item}

	order.Tickets = make([]*models.Ticket, 0, quantity)
	for i := 0; i < quantity; i++ {
		ticket := &models.Ticket{
			OrderItemID:  item.ID,
			TicketCode:   s.newTicketCode(),
			TicketTypeID: tt.ID,
		}
		if err := s.orderRepo.CreateTicket(ctx, tx, ticket); err != nil {
			if errors.Is(err, repositories.ErrTicketCodeConflict) {
				return nil, fmt.Errorf("issue ticket %d of %d: %w", i+1, quantity, err)
			}
			return nil, handleRepositoryError(err, "create ticket")
		}
		order.Tickets = append(order.Tickets, ticket)
	}
	return order, nil
}

func (s *purchaseService) SaveTicketHolders(ctx context.Context, userID, orderID int, holders []models.TicketHolder) (int, error) {
	named := make([]models.TicketHolder, 0, len(holders))
	for _, h := range holders {
		name := strings.TrimSpace(h.Name)
		if name == "" {
			continue
		}
		if utf8.RuneCountInString(name) > maxHolderNameLength {
			return 0, ErrHolderNameTooLong
		}
		named = append(named, models.TicketHolder{TicketID: h.TicketID, Name: name})
	}

	err := s.tx.WithinTx(ctx, func(tx repositories.SQLExecutor) error {
		if _, err := s.orderRepo.GetForUser(ctx, tx, orderID, userID); err != nil {
			return handleRepositoryError(err, "get order")
		}
		for _, h := range named {
			if err := s.orderRepo.UpdateHolderName(ctx, tx, orderID, h.TicketID, h.Name); err != nil {
				return handleRepositoryError(err, fmt.Sprintf("update holder of ticket %d", h.TicketID))
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	s.logger.InfoContext(ctx, "ticket holders saved",
		slog.Int("order_id", orderID), slog.Int("user_id", userID), slog.Int("named", len(named)))
	return len(named), nil
}

func (s *purchaseService) GetOrder(ctx context.Context, userID, orderID int) (*models.Order, error) {
	order, err := s.orderRepo.GetForUser(ctx, nil, orderID, userID)
	if err != nil {
		return nil, handleRepositoryError(err, "get order")
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		items, err := s.orderRepo.ListItems(gctx, nil, orderID)
		if err != nil {
			return fmt.Errorf("list order items: %w", err)
		}
		order.Items = items
		return nil
	})
	g.Go(func() error {
		tickets, err := s.orderRepo.ListTickets(gctx, nil, orderID)
		if err != nil {
			return fmt.Errorf("list order tickets: %w", err)
		}
		order.Tickets = tickets
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return order, nil
}
