package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/mrops-br/entity-storefront/internal/domain"
	moderncsqlite "modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// OrderRepository persists orders and their items
type OrderRepository struct {
	db *DB
}

func NewOrderRepository(db *DB) *OrderRepository {
	return &OrderRepository{db: db}
}

// Create inserts the order and its items in one transaction
func (r *OrderRepository) Create(ctx context.Context, order *domain.Order) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning order transaction: %w", err)
	}
	defer tx.Rollback()

	c := order.Customer
	_, err = tx.ExecContext(ctx,
		`INSERT INTO orders (id, number, session_id, full_name, phone, email, address, notes,
		                     status, total_amount, chat_link, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		order.ID, order.Number, order.SessionID, c.FullName, c.Phone, c.Email, c.Address, c.Notes,
		string(order.Status), order.TotalAmount, order.ChatLink,
		order.CreatedAt.UTC().Format(timeLayout), order.UpdatedAt.UTC().Format(timeLayout),
	)
	if isUniqueViolation(err) {
		return fmt.Errorf("inserting order %s: %w", order.Number, domain.ErrDuplicateOrderNumber)
	}
	if err != nil {
		return fmt.Errorf("inserting order %s: %w", order.Number, err)
	}

	for i, item := range order.Items {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO order_items (order_id, position, product_name, quantity, price) VALUES (?, ?, ?, ?, ?)`,
			order.ID, i, item.ProductName, item.Quantity, item.Price,
		)
		if err != nil {
			return fmt.Errorf("inserting order item %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing order %s: %w", order.Number, err)
	}
	return nil
}

// isUniqueViolation reports whether err is a UNIQUE constraint failure,
// which on the orders table means the number is already taken
func isUniqueViolation(err error) bool {
	var sqliteErr *moderncsqlite.Error
	return errors.As(err, &sqliteErr) && sqliteErr.Code() == sqlite3.SQLITE_CONSTRAINT_UNIQUE
}

const orderColumns = `id, number, session_id, full_name, phone, email, address, notes,
	status, total_amount, chat_link, created_at, updated_at`

func (r *OrderRepository) FindByNumber(ctx context.Context, number string) (*domain.Order, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+orderColumns+` FROM orders WHERE number = ?`, number)
	order, err := scanOrder(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrOrderNotFound
	}
	if err != nil {
		return nil, err
	}
	if err := r.loadItems(ctx, order); err != nil {
		return nil, err
	}
	return order, nil
}

// FindBySession returns the session's orders, newest first
func (r *OrderRepository) FindBySession(ctx context.Context, sessionID string) ([]*domain.Order, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+orderColumns+` FROM orders WHERE session_id = ? ORDER BY created_at DESC`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("querying orders: %w", err)
	}

	var orders []*domain.Order
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			rows.Close()
			return nil, err
		}
		orders = append(orders, order)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, fmt.Errorf("iterating orders: %w", err)
	}
	rows.Close()

	for _, order := range orders {
		if err := r.loadItems(ctx, order); err != nil {
			return nil, err
		}
	}
	if orders == nil {
		orders = []*domain.Order{}
	}
	return orders, nil
}

func (r *OrderRepository) loadItems(ctx context.Context, order *domain.Order) error {
	rows, err := r.db.QueryContext(ctx,
		`SELECT product_name, quantity, price FROM order_items WHERE order_id = ? ORDER BY position`, order.ID)
	if err != nil {
		return fmt.Errorf("querying order items: %w", err)
	}
	defer rows.Close()

	order.Items = []domain.OrderItem{}
	for rows.Next() {
		var item domain.OrderItem
		if err := rows.Scan(&item.ProductName, &item.Quantity, &item.Price); err != nil {
			return fmt.Errorf("scanning order item: %w", err)
		}
		order.Items = append(order.Items, item)
	}
	return rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanOrder(s scanner) (*domain.Order, error) {
	var (
		order              domain.Order
		status             string
		createdAt, updated string
	)
	err := s.Scan(
		&order.ID, &order.Number, &order.SessionID,
		&order.Customer.FullName, &order.Customer.Phone, &order.Customer.Email,
		&order.Customer.Address, &order.Customer.Notes,
		&status, &order.TotalAmount, &order.ChatLink, &createdAt, &updated,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning order: %w", err)
	}
	order.Status = domain.OrderStatus(status)
	if order.CreatedAt, err = time.Parse(timeLayout, createdAt); err != nil {
		return nil, fmt.Errorf("parsing order created_at: %w", err)
	}
	if order.UpdatedAt, err = time.Parse(timeLayout, updated); err != nil {
		return nil, fmt.Errorf("parsing order updated_at: %w", err)
	}
	return &order, nil
}
