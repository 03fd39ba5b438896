package integration

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"testing"
	"time"

	"stagepass/internal/models"
)

// TestClient provides methods for testing the API
type TestClient struct {
	BaseURL    string
	HTTPClient *http.Client
	UserID     string
}

// NewTestClient creates a new test client
func NewTestClient(baseURL string) *TestClient {
	return &TestClient{
		BaseURL: baseURL,
		HTTPClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// As returns a client that sends the given user id in the identity header
func (c *TestClient) As(userID string) *TestClient {
	return &TestClient{
		BaseURL:    c.BaseURL,
		HTTPClient: c.HTTPClient,
		UserID:     userID,
	}
}

// makeRequest makes an HTTP request and returns the response
func (c *TestClient) makeRequest(t *testing.T, method, path string, body interface{}) *http.Response {
	var reqBody io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("Failed to marshal request body: %v", err)
		}
		reqBody = bytes.NewBuffer(jsonBody)
	}

	req, err := http.NewRequest(method, c.BaseURL+path, reqBody)
	if err != nil {
		t.Fatalf("Failed to create request: %v", err)
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.UserID != "" {
		req.Header.Set("X-User-Id", c.UserID)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		t.Fatalf("Failed to make request: %v", err)
	}

	return resp
}

// RegisterUser registers a user and returns it
func (c *TestClient) RegisterUser(t *testing.T, email, name, password, role string) *models.User {
	req := models.RegisterUserRequest{
		Email:    email,
		Name:     name,
		Password: password,
		Role:     role,
	}

	resp := c.makeRequest(t, "POST", "/api/users", req)
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		body, _ := io.ReadAll(resp.Body)
		t.Fatalf("Expected status 201, got %d. Body: %s", resp.StatusCode, string(body))
	}

	var user models.User
	if err := json.NewDecoder(resp.Body).Decode(&user); err != nil {
		t.Fatalf("Failed to decode user response: %v", err)
	}

	return &user
}

// Login verifies credentials and returns the identity payload
func (c *TestClient) Login(t *testing.T, email, password string) *models.LoginResponse {
	req := models.LoginRequest{Email: email, Password: password}

	resp := c.makeRequest(t, "POST", "/api/users/login", req)
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		t.Fatalf("Expected status 200, got %d. Body: %s", resp.StatusCode, string(body))
	}

	var login models.LoginResponse
	if err := json.NewDecoder(resp.Body).Decode(&login); err != nil {
		t.Fatalf("Failed to decode login response: %v", err)
	}

	return &login
}

// CreateConcert creates a concert; requires an admin identity on the client
func (c *TestClient) CreateConcert(t *testing.T, name, description string, totalSeats int) *models.Concert {
	req := models.CreateConcertRequest{
		Name:        name,
		Description: description,
		TotalSeats:  totalSeats,
	}

	resp := c.makeRequest(t, "POST", "/api/concerts", req)
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		body, _ := io.ReadAll(resp.Body)
		t.Fatalf("Expected status 201, got %d. Body: %s", resp.StatusCode, string(body))
	}

	var concert models.Concert
	if err := json.NewDecoder(resp.Body).Decode(&concert); err != nil {
		t.Fatalf("Failed to decode concert response: %v", err)
	}

	return &concert
}

// ListConcerts lists all concerts
func (c *TestClient) ListConcerts(t *testing.T) []models.Concert {
	resp := c.makeRequest(t, "GET", "/api/concerts", nil)
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		t.Fatalf("Expected status 200, got %d. Body: %s", resp.StatusCode, string(body))
	}

	var concerts []models.Concert
	if err := json.NewDecoder(resp.Body).Decode(&concerts); err != nil {
		t.Fatalf("Failed to decode concerts response: %v", err)
	}

	return concerts
}

// GetConcert fetches a single concert
func (c *TestClient) GetConcert(t *testing.T, id string) *models.Concert {
	resp := c.makeRequest(t, "GET", "/api/concerts/"+id, nil)
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		t.Fatalf("Expected status 200, got %d. Body: %s", resp.StatusCode, string(body))
	}

	var concert models.Concert
	if err := json.NewDecoder(resp.Body).Decode(&concert); err != nil {
		t.Fatalf("Failed to decode concert response: %v", err)
	}

	return &concert
}

// CreateReservation reserves a seat and returns the reservation
func (c *TestClient) CreateReservation(t *testing.T, concertID string) *models.Reservation {
	req := models.CreateReservationRequest{ConcertID: concertID}

	resp := c.makeRequest(t, "POST", "/api/reservations", req)
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		body, _ := io.ReadAll(resp.Body)
		t.Fatalf("Expected status 201, got %d. Body: %s", resp.StatusCode, string(body))
	}

	var reservation models.Reservation
	if err := json.NewDecoder(resp.Body).Decode(&reservation); err != nil {
		t.Fatalf("Failed to decode reservation response: %v", err)
	}

	return &reservation
}

// TryCreateReservation attempts a reservation and returns the status code
func (c *TestClient) TryCreateReservation(t *testing.T, concertID string) int {
	req := models.CreateReservationRequest{ConcertID: concertID}

	resp := c.makeRequest(t, "POST", "/api/reservations", req)
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	return resp.StatusCode
}

// CancelReservation cancels a reservation
func (c *TestClient) CancelReservation(t *testing.T, reservationID string) {
	resp := c.makeRequest(t, "PATCH", "/api/reservations/"+reservationID+"/cancel", nil)
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		t.Fatalf("Expected status 200, got %d. Body: %s", resp.StatusCode, string(body))
	}
}

// TryCancelReservation attempts a cancel and returns the status code
func (c *TestClient) TryCancelReservation(t *testing.T, reservationID string) int {
	resp := c.makeRequest(t, "PATCH", "/api/reservations/"+reservationID+"/cancel", nil)
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	return resp.StatusCode
}

// ListMyReservations lists the caller's reservations
func (c *TestClient) ListMyReservations(t *testing.T) []models.ReservationDetail {
	resp := c.makeRequest(t, "GET", "/api/reservations/my", nil)
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		t.Fatalf("Expected status 200, got %d. Body: %s", resp.StatusCode, string(body))
	}

	var details []models.ReservationDetail
	if err := json.NewDecoder(resp.Body).Decode(&details); err != nil {
		t.Fatalf("Failed to decode reservations response: %v", err)
	}

	return details
}

// TryDeleteConcert attempts a delete and returns the status code
func (c *TestClient) TryDeleteConcert(t *testing.T, concertID string) int {
	resp := c.makeRequest(t, "DELETE", "/api/concerts/"+concertID, nil)
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	return resp.StatusCode
}

// HealthCheck checks if the API is healthy
func (c *TestClient) HealthCheck(t *testing.T) {
	resp := c.makeRequest(t, "GET", "/health", nil)
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Health check failed with status %d", resp.StatusCode)
	}
}
