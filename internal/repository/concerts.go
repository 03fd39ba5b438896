package repository

import (
	"context"
	"database/sql"
	"strings"

	"stagepass/internal/database"
	"stagepass/internal/errors"
	"stagepass/internal/models"
)

type ConcertRepository struct {
	db *database.DB
}

func NewConcertRepository(db *database.DB) *ConcertRepository {
	return &ConcertRepository{db: db}
}

func (r *ConcertRepository) Create(ctx context.Context, concert *models.Concert) error {
	query := `
		INSERT INTO concerts (name, description, total_seats, available_seats)
		VALUES ($1, $2, $3, $3)
		RETURNING id, available_seats, created_at, updated_at`

	err := r.db.QueryRowContext(ctx, query,
		concert.Name,
		concert.Description,
		concert.TotalSeats,
	).Scan(&concert.ID, &concert.AvailableSeats, &concert.CreatedAt, &concert.UpdatedAt)

	return err
}

func (r *ConcertRepository) GetByID(ctx context.Context, id string) (*models.Concert, error) {
	concert := &models.Concert{}
	query := `
		SELECT id, name, description, total_seats, available_seats, created_at, updated_at
		FROM concerts
		WHERE id = $1`

	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&concert.ID,
		&concert.Name,
		&concert.Description,
		&concert.TotalSeats,
		&concert.AvailableSeats,
		&concert.CreatedAt,
		&concert.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}

	return concert, err
}

func (r *ConcertRepository) List(ctx context.Context, query string) ([]models.Concert, error) {
	var concerts []models.Concert
	var args []interface{}

	sqlQuery := `
		SELECT id, name, description, total_seats, available_seats, created_at, updated_at
		FROM concerts`

	if query != "" {
		sqlQuery += ` WHERE to_tsvector('english', name || ' ' || description) @@ to_tsquery('english', $1)`
		args = append(args, prepareSearchQuery(query))
	}

	sqlQuery += " ORDER BY created_at DESC"

	rows, err := r.db.QueryContext(ctx, sqlQuery, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var concert models.Concert
		err := rows.Scan(
			&concert.ID,
			&concert.Name,
			&concert.Description,
			&concert.TotalSeats,
			&concert.AvailableSeats,
			&concert.CreatedAt,
			&concert.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		concerts = append(concerts, concert)
	}

	return concerts, rows.Err()
}

// UpdateDetails patches the closed set of editable fields. Seat counters
// are only ever written by the reservation transactions.
func (r *ConcertRepository) UpdateDetails(ctx context.Context, id string, name, description *string) (*models.Concert, error) {
	concert := &models.Concert{}
	query := `
		UPDATE concerts
		SET name = COALESCE($1, name),
		    description = COALESCE($2, description),
		    updated_at = NOW()
		WHERE id = $3
		RETURNING id, name, description, total_seats, available_seats, created_at, updated_at`

	err := r.db.QueryRowContext(ctx, query, name, description, id).Scan(
		&concert.ID,
		&concert.Name,
		&concert.Description,
		&concert.TotalSeats,
		&concert.AvailableSeats,
		&concert.CreatedAt,
		&concert.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, errors.ErrConcertNotFound
	}

	return concert, err
}

// Delete removes a concert unless it still has active reservations.
// The count and the delete share a transaction so a reservation created
// in between cannot be orphaned.
func (r *ConcertRepository) Delete(ctx context.Context, id string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var exists bool
	err = tx.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM concerts WHERE id = $1 FOR UPDATE)`, id).Scan(&exists)
	if err != nil {
		return err
	}
	if !exists {
		return errors.ErrConcertNotFound
	}

	var active int
	err = tx.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM reservations WHERE concert_id = $1 AND status = 'active'`, id).Scan(&active)
	if err != nil {
		return err
	}
	if active > 0 {
		return errors.ErrHasActiveReservations
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM reservations WHERE concert_id = $1`, id); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM concerts WHERE id = $1`, id); err != nil {
		return err
	}

	return tx.Commit()
}

// prepareSearchQuery formats a search query for PostgreSQL full-text search
func prepareSearchQuery(query string) string {
	words := strings.Fields(strings.TrimSpace(query))
	if len(words) == 0 {
		return ""
	}

	// Prefix matching per word, all words required
	var formattedWords []string
	for _, word := range words {
		formattedWords = append(formattedWords, word+":*")
	}

	return strings.Join(formattedWords, " & ")
}
