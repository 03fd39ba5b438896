package service

import (
	"context"
	"strings"
	"testing"

	"stagepass/internal/errors"
	"stagepass/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestCreateConcertValidation(t *testing.T) {
	svc, _ := newTestServices(t)
	ctx := context.Background()

	cases := []struct {
		name string
		req  models.CreateConcertRequest
	}{
		{"empty name", models.CreateConcertRequest{Name: "   ", Description: "desc", TotalSeats: 10}},
		{"name too long", models.CreateConcertRequest{Name: strings.Repeat("x", 256), Description: "desc", TotalSeats: 10}},
		{"zero seats", models.CreateConcertRequest{Name: "Valid", Description: "desc", TotalSeats: 0}},
		{"negative seats", models.CreateConcertRequest{Name: "Valid", Description: "desc", TotalSeats: -5}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Concerts.Create(ctx, &tc.req)
			assert.ErrorIs(t, err, errors.ErrValidation)
		})
	}
}

func TestCreateConcertStartsFull(t *testing.T) {
	svc, _ := newTestServices(t)

	concert, err := svc.Concerts.Create(context.Background(), &models.CreateConcertRequest{
		Name:        "  Opening Night  ",
		Description: "First show of the season",
		TotalSeats:  120,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, concert.ID)
	assert.Equal(t, "Opening Night", concert.Name)
	assert.Equal(t, 120, concert.TotalSeats)
	assert.Equal(t, 120, concert.AvailableSeats)
}

func TestGetConcertNotFound(t *testing.T) {
	svc, _ := newTestServices(t)

	_, err := svc.Concerts.GetByID(context.Background(), uuid.New().String())
	assert.ErrorIs(t, err, errors.ErrConcertNotFound)
}

func TestUpdateConcertDetails(t *testing.T) {
	svc, _ := newTestServices(t)
	ctx := context.Background()
	concert := createConcert(t, svc, 50)

	updated, err := svc.Concerts.Update(ctx, concert.ID, &models.UpdateConcertRequest{
		Name: strPtr("Renamed Show"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Renamed Show", updated.Name)
	assert.Equal(t, concert.Description, updated.Description)

	// Seat counters are not part of the patchable set and must survive
	// any update untouched.
	assert.Equal(t, 50, updated.TotalSeats)
	assert.Equal(t, 50, updated.AvailableSeats)
}

func TestUpdateConcertRejectsEmptyPatch(t *testing.T) {
	svc, _ := newTestServices(t)
	concert := createConcert(t, svc, 10)

	_, err := svc.Concerts.Update(context.Background(), concert.ID, &models.UpdateConcertRequest{})
	assert.ErrorIs(t, err, errors.ErrValidation)
}

func TestUpdateConcertValidation(t *testing.T) {
	svc, _ := newTestServices(t)
	concert := createConcert(t, svc, 10)

	_, err := svc.Concerts.Update(context.Background(), concert.ID, &models.UpdateConcertRequest{
		Name: strPtr("  "),
	})
	assert.ErrorIs(t, err, errors.ErrValidation)

	_, err = svc.Concerts.Update(context.Background(), uuid.New().String(), &models.UpdateConcertRequest{
		Name: strPtr("Anything"),
	})
	assert.ErrorIs(t, err, errors.ErrConcertNotFound)
}

func TestDeleteConcertWithActiveReservations(t *testing.T) {
	svc, _ := newTestServices(t)
	ctx := context.Background()
	concert := createConcert(t, svc, 5)

	reservation, err := svc.Reservations.Create(ctx, uuid.New().String(), &models.CreateReservationRequest{ConcertID: concert.ID})
	require.NoError(t, err)

	err = svc.Concerts.Delete(ctx, concert.ID)
	assert.ErrorIs(t, err, errors.ErrHasActiveReservations)

	// After the reservation is cancelled the delete goes through.
	_, err = svc.Reservations.Cancel(ctx, reservation.ID)
	require.NoError(t, err)

	err = svc.Concerts.Delete(ctx, concert.ID)
	require.NoError(t, err)

	_, err = svc.Concerts.GetByID(ctx, concert.ID)
	assert.ErrorIs(t, err, errors.ErrConcertNotFound)
}

func TestDeleteUnknownConcert(t *testing.T) {
	svc, _ := newTestServices(t)

	err := svc.Concerts.Delete(context.Background(), uuid.New().String())
	assert.ErrorIs(t, err, errors.ErrConcertNotFound)
}

func TestListConcertsFilter(t *testing.T) {
	svc, _ := newTestServices(t)
	ctx := context.Background()

	for _, name := range []string{"Jazz Evening", "Rock Marathon", "Jazz Brunch"} {
		_, err := svc.Concerts.Create(ctx, &models.CreateConcertRequest{
			Name:        name,
			Description: "desc",
			TotalSeats:  20,
		})
		require.NoError(t, err)
	}

	all, err := svc.Concerts.List(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 3)

	jazz, err := svc.Concerts.List(ctx, "jazz")
	require.NoError(t, err)
	assert.Len(t, jazz, 2)
}
