// Package smoke is an end-to-end self-check for a running API instance,
// driven by `stagepass-api smoke`. It walks the whole booking flow and
// verifies the boundary statuses, including the seat-exhaustion and
// double-cancel rejections.
package smoke

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"stagepass/internal/models"
)

type Checker struct {
	baseURL string
	client  *http.Client
}

func NewChecker(baseURL string) *Checker {
	return &Checker{
		baseURL: baseURL,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

// Run executes the smoke flow against the configured base URL.
func Run() {
	baseURL := os.Getenv("SMOKE_BASE_URL")
	if baseURL == "" {
		baseURL = "http://localhost:8080"
	}

	checker := NewChecker(baseURL)
	if err := checker.CheckAll(); err != nil {
		log.Fatalf("Smoke check failed: %v", err)
	}
	log.Println("All smoke checks passed")
}

func (c *Checker) CheckAll() error {
	log.Printf("Running smoke checks against %s...", c.baseURL)

	suffix := fmt.Sprintf("%d", time.Now().UnixNano())

	admin, err := c.registerUser("smoke-admin-"+suffix+"@example.com", "Smoke Admin", models.RoleAdmin)
	if err != nil {
		return fmt.Errorf("admin registration: %w", err)
	}

	user, err := c.registerUser("smoke-user-"+suffix+"@example.com", "Smoke User", models.RoleUser)
	if err != nil {
		return fmt.Errorf("user registration: %w", err)
	}

	concertID, err := c.checkConcertLifecycle(admin)
	if err != nil {
		return fmt.Errorf("concert lifecycle: %w", err)
	}

	if err := c.checkReservationFlow(admin, user, concertID); err != nil {
		return fmt.Errorf("reservation flow: %w", err)
	}

	return nil
}

func (c *Checker) checkConcertLifecycle(adminID string) (string, error) {
	concert := struct {
		ID             string `json:"id"`
		AvailableSeats int    `json:"available_seats"`
	}{}

	status, err := c.request("POST", "/api/concerts", adminID, models.CreateConcertRequest{
		Name:        "Smoke Check Concert",
		Description: "created by the smoke checker",
		TotalSeats:  2,
	}, &concert)
	if err != nil {
		return "", err
	}
	if status != http.StatusCreated {
		return "", fmt.Errorf("create concert: expected 201, got %d", status)
	}
	if concert.AvailableSeats != 2 {
		return "", fmt.Errorf("create concert: expected 2 available seats, got %d", concert.AvailableSeats)
	}

	// Invalid capacity must be rejected before anything is written
	status, err = c.request("POST", "/api/concerts", adminID, map[string]interface{}{
		"name": "x", "description": "y", "total_seats": 0,
	}, nil)
	if err != nil {
		return "", err
	}
	if status != http.StatusBadRequest {
		return "", fmt.Errorf("zero-seat concert: expected 400, got %d", status)
	}

	log.Println("Concert checks passed")
	return concert.ID, nil
}

func (c *Checker) checkReservationFlow(adminID, userID, concertID string) error {
	reserve := func() (int, string, error) {
		reservation := struct {
			ID string `json:"id"`
		}{}
		status, err := c.request("POST", "/api/reservations", userID,
			models.CreateReservationRequest{ConcertID: concertID}, &reservation)
		return status, reservation.ID, err
	}

	status, firstID, err := reserve()
	if err != nil {
		return err
	}
	if status != http.StatusCreated {
		return fmt.Errorf("first reservation: expected 201, got %d", status)
	}

	if status, _, err = reserve(); err != nil {
		return err
	}
	if status != http.StatusCreated {
		return fmt.Errorf("second reservation: expected 201, got %d", status)
	}

	// Capacity is exhausted now
	if status, _, err = reserve(); err != nil {
		return err
	}
	if status != http.StatusBadRequest {
		return fmt.Errorf("sold-out reservation: expected 400, got %d", status)
	}

	// Deleting a concert with active reservations must be rejected
	status, err = c.request("DELETE", "/api/concerts/"+concertID, adminID, nil, nil)
	if err != nil {
		return err
	}
	if status != http.StatusConflict {
		return fmt.Errorf("delete with active reservations: expected 409, got %d", status)
	}

	status, err = c.request("PATCH", "/api/reservations/"+firstID+"/cancel", userID, nil, nil)
	if err != nil {
		return err
	}
	if status != http.StatusOK {
		return fmt.Errorf("cancel: expected 200, got %d", status)
	}

	// Cancelling twice is an error, not a no-op
	status, err = c.request("PATCH", "/api/reservations/"+firstID+"/cancel", userID, nil, nil)
	if err != nil {
		return err
	}
	if status != http.StatusBadRequest {
		return fmt.Errorf("double cancel: expected 400, got %d", status)
	}

	log.Println("Reservation checks passed")
	return nil
}

func (c *Checker) registerUser(email, name, role string) (string, error) {
	user := struct {
		ID string `json:"id"`
	}{}
	status, err := c.request("POST", "/api/users", "", models.RegisterUserRequest{
		Email:    email,
		Name:     name,
		Password: "smoke-check-pass",
		Role:     role,
	}, &user)
	if err != nil {
		return "", err
	}
	if status != http.StatusCreated {
		return "", fmt.Errorf("expected 201, got %d", status)
	}
	return user.ID, nil
}

func (c *Checker) request(method, path, userID string, body, out interface{}) (int, error) {
	var reqBody *bytes.Buffer
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return 0, err
		}
		reqBody = bytes.NewBuffer(payload)
	} else {
		reqBody = bytes.NewBuffer(nil)
	}

	req, err := http.NewRequest(method, c.baseURL+path, reqBody)
	if err != nil {
		return 0, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if userID != "" {
		req.Header.Set("X-User-Id", userID)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	if out != nil && resp.StatusCode < 300 {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return resp.StatusCode, fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return resp.StatusCode, nil
}
