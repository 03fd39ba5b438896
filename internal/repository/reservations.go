package repository

import (
	"context"
	"database/sql"

	"stagepass/internal/database"
	"stagepass/internal/errors"
	"stagepass/internal/models"
)

type ReservationRepository struct {
	db *database.DB
}

func NewReservationRepository(db *database.DB) *ReservationRepository {
	return &ReservationRepository{db: db}
}

// CreateActive reserves one seat: it inserts an active reservation and
// decrements the concert's available seats in a single transaction. The
// row lock on the concert serializes all seat mutation for that concert,
// so the capacity check and the decrement cannot be interleaved by a
// concurrent request. Returns the reservation and the seats remaining
// after the decrement.
func (r *ReservationRepository) CreateActive(ctx context.Context, userID, concertID string) (*models.Reservation, int, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, 0, err
	}
	defer tx.Rollback()

	var available int
	err = tx.QueryRowContext(ctx,
		`SELECT available_seats FROM concerts WHERE id = $1 FOR UPDATE`, concertID).Scan(&available)
	if err == sql.ErrNoRows {
		return nil, 0, errors.ErrConcertNotFound
	}
	if err != nil {
		return nil, 0, err
	}

	if available <= 0 {
		return nil, 0, errors.ErrNoSeatsAvailable
	}

	reservation := &models.Reservation{
		UserID:    userID,
		ConcertID: concertID,
		Status:    models.ReservationActive,
	}
	err = tx.QueryRowContext(ctx, `
		INSERT INTO reservations (user_id, concert_id, status)
		VALUES ($1, $2, 'active')
		RETURNING id, created_at, updated_at`,
		userID, concertID,
	).Scan(&reservation.ID, &reservation.CreatedAt, &reservation.UpdatedAt)
	if err != nil {
		return nil, 0, err
	}

	var remaining int
	err = tx.QueryRowContext(ctx, `
		UPDATE concerts
		SET available_seats = available_seats - 1, updated_at = NOW()
		WHERE id = $1
		RETURNING available_seats`,
		concertID,
	).Scan(&remaining)
	if err != nil {
		return nil, 0, err
	}

	if err := tx.Commit(); err != nil {
		return nil, 0, err
	}

	return reservation, remaining, nil
}

// CancelActive marks a reservation cancelled and returns the seat in the
// same transaction. The increment is clamped to total_seats so a stray
// double-return can never push the counter past capacity. Returns the
// reservation and the seats available after the increment.
func (r *ReservationRepository) CancelActive(ctx context.Context, id string) (*models.Reservation, int, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, 0, err
	}
	defer tx.Rollback()

	reservation := &models.Reservation{}
	err = tx.QueryRowContext(ctx, `
		SELECT id, user_id, concert_id, status, created_at, updated_at
		FROM reservations
		WHERE id = $1
		FOR UPDATE`, id,
	).Scan(
		&reservation.ID,
		&reservation.UserID,
		&reservation.ConcertID,
		&reservation.Status,
		&reservation.CreatedAt,
		&reservation.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, 0, errors.ErrReservationNotFound
	}
	if err != nil {
		return nil, 0, err
	}

	if reservation.Status == models.ReservationCancelled {
		return nil, 0, errors.ErrAlreadyCancelled
	}

	err = tx.QueryRowContext(ctx, `
		UPDATE reservations
		SET status = 'cancelled', updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at`, id,
	).Scan(&reservation.UpdatedAt)
	if err != nil {
		return nil, 0, err
	}
	reservation.Status = models.ReservationCancelled

	var remaining int
	err = tx.QueryRowContext(ctx, `
		UPDATE concerts
		SET available_seats = LEAST(available_seats + 1, total_seats), updated_at = NOW()
		WHERE id = $1
		RETURNING available_seats`,
		reservation.ConcertID,
	).Scan(&remaining)
	if err != nil {
		return nil, 0, err
	}

	if err := tx.Commit(); err != nil {
		return nil, 0, err
	}

	return reservation, remaining, nil
}

func (r *ReservationRepository) GetByID(ctx context.Context, id string) (*models.Reservation, error) {
	reservation := &models.Reservation{}
	query := `
		SELECT id, user_id, concert_id, status, created_at, updated_at
		FROM reservations
		WHERE id = $1`

	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&reservation.ID,
		&reservation.UserID,
		&reservation.ConcertID,
		&reservation.Status,
		&reservation.CreatedAt,
		&reservation.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}

	return reservation, err
}

// ListAll returns every reservation joined with concert and user display
// data for the admin read path.
func (r *ReservationRepository) ListAll(ctx context.Context) ([]models.ReservationDetail, error) {
	query := `
		SELECT r.id, r.user_id, r.concert_id, r.status, r.created_at, r.updated_at,
		       c.name AS concert_name, u.name AS user_name, u.email AS user_email
		FROM reservations r
		JOIN concerts c ON c.id = r.concert_id
		JOIN users u ON u.id = r.user_id
		ORDER BY r.created_at DESC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanReservationDetails(rows)
}

func (r *ReservationRepository) ListByUser(ctx context.Context, userID string) ([]models.ReservationDetail, error) {
	query := `
		SELECT r.id, r.user_id, r.concert_id, r.status, r.created_at, r.updated_at,
		       c.name AS concert_name, u.name AS user_name, u.email AS user_email
		FROM reservations r
		JOIN concerts c ON c.id = r.concert_id
		JOIN users u ON u.id = r.user_id
		WHERE r.user_id = $1
		ORDER BY r.created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanReservationDetails(rows)
}

func scanReservationDetails(rows *sql.Rows) ([]models.ReservationDetail, error) {
	var details []models.ReservationDetail
	for rows.Next() {
		var d models.ReservationDetail
		err := rows.Scan(
			&d.ID,
			&d.UserID,
			&d.ConcertID,
			&d.Status,
			&d.CreatedAt,
			&d.UpdatedAt,
			&d.ConcertName,
			&d.UserName,
			&d.UserEmail,
		)
		if err != nil {
			return nil, err
		}
		details = append(details, d)
	}
	return details, rows.Err()
}
