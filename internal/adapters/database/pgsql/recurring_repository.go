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

// PgxRecurringRepository persists recurring obligation definitions.
type PgxRecurringRepository struct {
	pool *pgxpool.Pool
}

// NewPgxRecurringRepository creates a new repository for recurring definitions.
func NewPgxRecurringRepository(pool *pgxpool.Pool) portsrepo.RecurringRepository {
	return &PgxRecurringRepository{pool: pool}
}

const recurringColumns = `definition_id, name, amount, frequency, next_date, created_at, last_updated_at`

// SaveRecurring inserts a new recurring definition.
func (r *PgxRecurringRepository) SaveRecurring(ctx context.Context, def domain.RecurringDefinition) error {
	query := `
		INSERT INTO recurring_definitions (` + recurringColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`
	_, err := r.pool.Exec(ctx, query,
		def.ID, def.Name, def.Amount, def.Frequency, def.NextDate, def.CreatedAt, def.LastUpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("recurring definition %s: %w", def.ID, apperrors.ErrDuplicate)
		}
		return fmt.Errorf("failed to insert recurring definition %s: %w", def.ID, err)
	}
	return nil
}

// UpdateRecurring replaces a stored definition, keyed by its ID.
func (r *PgxRecurringRepository) UpdateRecurring(ctx context.Context, def domain.RecurringDefinition) error {
	query := `
		UPDATE recurring_definitions
		SET name = $2, amount = $3, frequency = $4, next_date = $5, last_updated_at = $6
		WHERE definition_id = $1;
	`
	tag, err := r.pool.Exec(ctx, query,
		def.ID, def.Name, def.Amount, def.Frequency, def.NextDate, def.LastUpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update recurring definition %s: %w", def.ID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("recurring definition %s: %w", def.ID, apperrors.ErrNotFound)
	}
	return nil
}

// DeleteRecurring removes a stored definition.
func (r *PgxRecurringRepository) DeleteRecurring(ctx context.Context, definitionID string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM recurring_definitions WHERE definition_id = $1;`, definitionID)
	if err != nil {
		return fmt.Errorf("failed to delete recurring definition %s: %w", definitionID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("recurring definition %s: %w", definitionID, apperrors.ErrNotFound)
	}
	return nil
}

// FindRecurringByID retrieves a single stored definition.
func (r *PgxRecurringRepository) FindRecurringByID(ctx context.Context, definitionID string) (*domain.RecurringDefinition, error) {
	query := `SELECT ` + recurringColumns + ` FROM recurring_definitions WHERE definition_id = $1;`
	row := r.pool.QueryRow(ctx, query, definitionID)
	def, err := scanRecurring(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("recurring definition %s: %w", definitionID, apperrors.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to find recurring definition %s: %w", definitionID, err)
	}
	return def, nil
}

// ListRecurring retrieves every stored definition ordered by next due date.
func (r *PgxRecurringRepository) ListRecurring(ctx context.Context) ([]domain.RecurringDefinition, error) {
	query := `SELECT ` + recurringColumns + ` FROM recurring_definitions ORDER BY next_date, definition_id;`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list recurring definitions: %w", err)
	}
	defer rows.Close()

	var defs []domain.RecurringDefinition
	for rows.Next() {
		def, err := scanRecurring(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan recurring definition row: %w", err)
		}
		defs = append(defs, *def)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed iterating recurring definition rows: %w", err)
	}
	return defs, nil
}

func scanRecurring(row pgx.Row) (*domain.RecurringDefinition, error) {
	var def domain.RecurringDefinition
	err := row.Scan(&def.ID, &def.Name, &def.Amount, &def.Frequency, &def.NextDate, &def.CreatedAt, &def.LastUpdatedAt)
	if err != nil {
		return nil, err
	}
	def.NextDate = dateutil.AtNoon(def.NextDate)
	return &def, nil
}
