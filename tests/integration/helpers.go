package integration

import (
	"fmt"
	"os"
	"testing"
	"time"

	"stagepass/internal/models"
)

// BaseURL returns the API under test, skipping the test when none is
// configured. Integration tests need a running server and database.
func BaseURL(t *testing.T) string {
	url := os.Getenv("API_BASE_URL")
	if url == "" {
		t.Skip("API_BASE_URL not set; skipping integration test")
	}
	return url
}

// UniqueEmail builds a throwaway email so reruns do not collide
func UniqueEmail(prefix string) string {
	return fmt.Sprintf("%s-%d@integration.test", prefix, time.Now().UnixNano())
}

// AssertConcertExists checks that a concert is present in the list
func AssertConcertExists(t *testing.T, concerts []models.Concert, concertID string) {
	for _, concert := range concerts {
		if concert.ID == concertID {
			return
		}
	}
	t.Fatalf("Concert with ID %s not found in concerts list", concertID)
}

// AssertReservationExists checks that a reservation is present in the list
func AssertReservationExists(t *testing.T, details []models.ReservationDetail, reservationID string) {
	for _, d := range details {
		if d.ID == reservationID {
			return
		}
	}
	t.Fatalf("Reservation with ID %s not found in reservations list", reservationID)
}

// LogTestStep logs a test step for better debugging
func LogTestStep(t *testing.T, step string, args ...interface{}) {
	t.Logf("🔹 "+step, args...)
}

// LogTestResult logs a test result
func LogTestResult(t *testing.T, result string, args ...interface{}) {
	t.Logf("✅ "+result, args...)
}
