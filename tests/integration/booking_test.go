package integration

import (
	"net/http"
	"sync"
	"testing"

	"stagepass/internal/models"
)

// TestAPI_HealthCheck tests the API health endpoint
func TestAPI_HealthCheck(t *testing.T) {
	client := NewTestClient(BaseURL(t))

	LogTestStep(t, "Testing API health check")
	client.HealthCheck(t)
	LogTestResult(t, "API is healthy and responding")
}

// TestAPI_ReservationLifecycle walks the full booking flow: register,
// create a concert, reserve until sold out, cancel, re-reserve.
func TestAPI_ReservationLifecycle(t *testing.T) {
	client := NewTestClient(BaseURL(t))

	LogTestStep(t, "Registering admin and regular user")
	admin := client.RegisterUser(t, UniqueEmail("admin"), "Admin", "secret123", models.RoleAdmin)
	user := client.RegisterUser(t, UniqueEmail("user"), "User", "secret123", models.RoleUser)

	adminClient := client.As(admin.ID)
	userClient := client.As(user.ID)

	LogTestStep(t, "Creating a 2-seat concert")
	concert := adminClient.CreateConcert(t, "Integration Night", "End-to-end booking flow", 2)
	if concert.AvailableSeats != 2 {
		t.Fatalf("New concert should start with all seats available, got %d", concert.AvailableSeats)
	}

	concerts := client.ListConcerts(t)
	AssertConcertExists(t, concerts, concert.ID)

	LogTestStep(t, "Reserving both seats")
	first := userClient.CreateReservation(t, concert.ID)
	second := userClient.CreateReservation(t, concert.ID)
	LogTestResult(t, "Reservations %s and %s created", first.ID, second.ID)

	LogTestStep(t, "Third reservation must be rejected as sold out")
	if code := userClient.TryCreateReservation(t, concert.ID); code != http.StatusBadRequest {
		t.Fatalf("Expected 400 for sold-out concert, got %d", code)
	}

	got := client.GetConcert(t, concert.ID)
	if got.AvailableSeats != 0 {
		t.Fatalf("Sold-out concert should have 0 available seats, got %d", got.AvailableSeats)
	}

	LogTestStep(t, "Deleting a concert with active reservations must conflict")
	if code := adminClient.TryDeleteConcert(t, concert.ID); code != http.StatusConflict {
		t.Fatalf("Expected 409 for delete with active reservations, got %d", code)
	}

	LogTestStep(t, "Cancelling one reservation frees its seat")
	userClient.CancelReservation(t, first.ID)

	got = client.GetConcert(t, concert.ID)
	if got.AvailableSeats != 1 {
		t.Fatalf("Expected 1 available seat after cancel, got %d", got.AvailableSeats)
	}

	LogTestStep(t, "A second cancel of the same reservation is rejected")
	if code := userClient.TryCancelReservation(t, first.ID); code != http.StatusBadRequest {
		t.Fatalf("Expected 400 for double cancel, got %d", code)
	}

	LogTestStep(t, "The freed seat can be reserved again")
	third := userClient.CreateReservation(t, concert.ID)

	mine := userClient.ListMyReservations(t)
	AssertReservationExists(t, mine, second.ID)
	AssertReservationExists(t, mine, third.ID)

	LogTestResult(t, "Reservation lifecycle completed")
}

// TestAPI_ConcurrentReservations fires parallel reservations at a small
// concert and verifies the seat counter never oversells.
func TestAPI_ConcurrentReservations(t *testing.T) {
	client := NewTestClient(BaseURL(t))

	admin := client.RegisterUser(t, UniqueEmail("admin"), "Admin", "secret123", models.RoleAdmin)
	user := client.RegisterUser(t, UniqueEmail("user"), "User", "secret123", models.RoleUser)

	const seats = 5
	const attempts = 20

	concert := client.As(admin.ID).CreateConcert(t, "Oversell Check", "Concurrent reservations", seats)
	userClient := client.As(user.ID)

	LogTestStep(t, "Firing %d concurrent reservations at %d seats", attempts, seats)

	var wg sync.WaitGroup
	codes := make(chan int, attempts)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			codes <- userClient.TryCreateReservation(t, concert.ID)
		}()
	}
	wg.Wait()
	close(codes)

	created := 0
	for code := range codes {
		switch code {
		case http.StatusCreated:
			created++
		case http.StatusBadRequest:
			// sold out
		default:
			t.Fatalf("Unexpected status %d from concurrent reservation", code)
		}
	}

	if created != seats {
		t.Fatalf("Expected exactly %d successful reservations, got %d", seats, created)
	}

	got := client.GetConcert(t, concert.ID)
	if got.AvailableSeats != 0 {
		t.Fatalf("Expected 0 available seats after the rush, got %d", got.AvailableSeats)
	}

	LogTestResult(t, "Exactly %d of %d reservations succeeded", created, attempts)
}
