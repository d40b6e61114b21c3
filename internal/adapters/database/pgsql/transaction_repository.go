package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/pesotrack/pesotrack_app/internal/apperrors"
	"github.com/pesotrack/pesotrack_app/internal/core/domain"
	portsrepo "github.com/pesotrack/pesotrack_app/internal/core/ports/repositories"
	"github.com/pesotrack/pesotrack_app/internal/utils/dateutil"
)

// PgxTransactionRepository persists ledger entries in PostgreSQL. Only real
// entries reach this repository; virtual projections are recomputed on read
// by the service layer and never stored.
type PgxTransactionRepository struct {
	pool *pgxpool.Pool
}

// NewPgxTransactionRepository creates a new repository for ledger entries.
func NewPgxTransactionRepository(pool *pgxpool.Pool) portsrepo.TransactionRepository {
	return &PgxTransactionRepository{pool: pool}
}

const transactionColumns = `transaction_id, name, amount, type, date, status, method, category, source, created_at, last_updated_at`

// SaveTransaction inserts a new ledger entry.
func (r *PgxTransactionRepository) SaveTransaction(ctx context.Context, tx domain.Transaction) error {
	query := `
		INSERT INTO transactions (` + transactionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	_, err := r.pool.Exec(ctx, query,
		tx.ID, tx.Name, tx.Amount, tx.Type, tx.Date, tx.Status,
		tx.Method, tx.Category, tx.Source, tx.CreatedAt, tx.LastUpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("transaction %s: %w", tx.ID, apperrors.ErrDuplicate)
		}
		return fmt.Errorf("failed to insert transaction %s: %w", tx.ID, err)
	}
	return nil
}

// UpdateTransaction replaces a stored entry, keyed by its ID.
func (r *PgxTransactionRepository) UpdateTransaction(ctx context.Context, tx domain.Transaction) error {
	query := `
		UPDATE transactions
		SET name = $2, amount = $3, type = $4, date = $5, status = $6,
			method = $7, category = $8, source = $9, last_updated_at = $10
		WHERE transaction_id = $1;
	`
	tag, err := r.pool.Exec(ctx, query,
		tx.ID, tx.Name, tx.Amount, tx.Type, tx.Date, tx.Status,
		tx.Method, tx.Category, tx.Source, tx.LastUpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update transaction %s: %w", tx.ID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("transaction %s: %w", tx.ID, apperrors.ErrNotFound)
	}
	return nil
}

// DeleteTransaction removes a stored entry.
func (r *PgxTransactionRepository) DeleteTransaction(ctx context.Context, transactionID string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM transactions WHERE transaction_id = $1;`, transactionID)
	if err != nil {
		return fmt.Errorf("failed to delete transaction %s: %w", transactionID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("transaction %s: %w", transactionID, apperrors.ErrNotFound)
	}
	return nil
}

// FindTransactionByID retrieves a single stored entry.
func (r *PgxTransactionRepository) FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE transaction_id = $1;`
	row := r.pool.QueryRow(ctx, query, transactionID)
	tx, err := scanTransaction(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("transaction %s: %w", transactionID, apperrors.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to find transaction %s: %w", transactionID, err)
	}
	return tx, nil
}

// ListTransactions retrieves every stored entry in insertion order.
func (r *PgxTransactionRepository) ListTransactions(ctx context.Context) ([]domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions ORDER BY created_at, transaction_id;`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	defer rows.Close()

	var txs []domain.Transaction
	for rows.Next() {
		tx, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transaction row: %w", err)
		}
		txs = append(txs, *tx)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed iterating transaction rows: %w", err)
	}
	return txs, nil
}

func scanTransaction(row pgx.Row) (*domain.Transaction, error) {
	var tx domain.Transaction
	err := row.Scan(
		&tx.ID, &tx.Name, &tx.Amount, &tx.Type, &tx.Date, &tx.Status,
		&tx.Method, &tx.Category, &tx.Source, &tx.CreatedAt, &tx.LastUpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	// DATE columns scan at midnight; re-anchor to the neutral noon hour.
	tx.Date = dateutil.AtNoon(tx.Date)
	return &tx, nil
}
