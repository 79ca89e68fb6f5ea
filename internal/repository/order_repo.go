package repository

import (
	"context"
	"errors"
	"time"

	"github.com/Dowody/rw-sub000/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type OrderRepository struct {
	DB *pgxpool.Pool
}

func NewOrderRepository(db *pgxpool.Pool) *OrderRepository {
	return &OrderRepository{DB: db}
}

// InsertTx writes the order and its summarized line item inside the
// checkout transaction, returning the new orderid.
func (r *OrderRepository) InsertTx(ctx context.Context, tx pgx.Tx, o *model.Order, item model.OrderItem) (int64, error) {
	var orderID int64
	query := `
		INSERT INTO orders (userid, subscriptionid, total_amount, prorated_credit, transaction_date, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $5)
		RETURNING orderid
	`
	if err := tx.QueryRow(ctx, query,
		o.UserID, o.SubscriptionID, o.TotalAmount, o.ProratedCredit, o.TransactionDate, o.Status,
	).Scan(&orderID); err != nil {
		return 0, err
	}

	itemQuery := `
		INSERT INTO order_items (orderid, subscriptionid, name, price, quantity, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	if _, err := tx.Exec(ctx, itemQuery,
		orderID, item.SubscriptionID, item.Name, item.Price, item.Quantity, time.Now(),
	); err != nil {
		return 0, err
	}
	return orderID, nil
}

// GetByID returns the order row for the given orderid.
func (r *OrderRepository) GetByID(ctx context.Context, orderID int64) (*model.Order, error) {
	var o model.Order
	query := `
		SELECT orderid, userid, subscriptionid, total_amount, prorated_credit, transaction_date, status, created_at, deleted_at
		FROM orders
		WHERE orderid=$1
	`
	if err := r.DB.QueryRow(ctx, query, orderID).
		Scan(&o.OrderID, &o.UserID, &o.SubscriptionID, &o.TotalAmount, &o.ProratedCredit,
			&o.TransactionDate, &o.Status, &o.CreatedAt, &o.DeletedAt); err != nil {
		return nil, errors.New("order not found")
	}
	return &o, nil
}

// GetLatestCompleted returns the user's most recent completed order by
// transaction date, or nil when they have none.
func (r *OrderRepository) GetLatestCompleted(ctx context.Context, userID int64) (*model.Order, error) {
	var o model.Order
	query := `
		SELECT orderid, userid, subscriptionid, total_amount, prorated_credit, transaction_date, status, created_at, deleted_at
		FROM orders
		WHERE userid=$1 AND status=$2 AND deleted_at IS NULL
		ORDER BY transaction_date DESC
		LIMIT 1
	`
	err := r.DB.QueryRow(ctx, query, userID, model.OrderStatusCompleted).
		Scan(&o.OrderID, &o.UserID, &o.SubscriptionID, &o.TotalAmount, &o.ProratedCredit,
			&o.TransactionDate, &o.Status, &o.CreatedAt, &o.DeletedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &o, nil
}

// ListByUser returns the user's full order history, newest first.
func (r *OrderRepository) ListByUser(ctx context.Context, userID int64) ([]model.Order, error) {
	query := `
		SELECT orderid, userid, subscriptionid, total_amount, prorated_credit, transaction_date, status, created_at, deleted_at
		FROM orders
		WHERE userid=$1 AND deleted_at IS NULL
		ORDER BY transaction_date DESC
	`
	rows, err := r.DB.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Order
	for rows.Next() {
		var o model.Order
		if err := rows.Scan(&o.OrderID, &o.UserID, &o.SubscriptionID, &o.TotalAmount, &o.ProratedCredit,
			&o.TransactionDate, &o.Status, &o.CreatedAt, &o.DeletedAt); err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	return out, nil
}

// MarkFailed flags an order after a failed payment settlement.
func (r *OrderRepository) MarkFailed(ctx context.Context, orderID int64) error {
	query := `UPDATE orders SET status=$1 WHERE orderid=$2 AND status<>$1`
	_, err := r.DB.Exec(ctx, query, model.OrderStatusFailed, orderID)
	return err
}
