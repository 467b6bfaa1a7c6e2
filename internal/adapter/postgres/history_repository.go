package postgres

import (
	"context"
	"fmt"
	"time"

	"mocktail/internal/domain"
	"mocktail/internal/interfaces"
)

// historyRepository stores the dispense history as an append-only table.
// Appends are plain transactional inserts, so there is no read-modify-write
// to serialize; id order is dispense order.
type historyRepository struct {
	db DB
}

func NewHistoryRepository(db DB) interfaces.HistoryStore {
	return &historyRepository{db: db}
}

func (r *historyRepository) Load(ctx context.Context) ([]domain.OrderItem, error) {
	query := `
		SELECT drink_id, drink_name, quantity, calories
		FROM drink_history
		ORDER BY id
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to load history: %w", err)
	}
	defer rows.Close()

	var history []domain.OrderItem
	for rows.Next() {
		var item domain.OrderItem
		if err := rows.Scan(&item.DrinkID, &item.DrinkName, &item.Quantity, &item.Calories); err != nil {
			return nil, fmt.Errorf("failed to scan history row: %w", err)
		}
		history = append(history, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read history rows: %w", err)
	}

	return history, nil
}

func (r *historyRepository) Append(ctx context.Context, items []domain.OrderItem) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	query := `
		INSERT INTO drink_history (drink_id, drink_name, quantity, calories, dispensed_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	now := time.Now()
	for _, item := range items {
		if err := tx.Exec(ctx, query, item.DrinkID, item.DrinkName, item.Quantity, item.Calories, now); err != nil {
			return fmt.Errorf("failed to insert history item: %w", err)
		}
	}

	return tx.Commit(ctx)
}
