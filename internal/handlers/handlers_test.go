package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"stagepass/internal/auth"
	"stagepass/internal/middleware"
	"stagepass/internal/models"
	"stagepass/internal/service"
	"stagepass/internal/testutil"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testEnv struct {
	router   *gin.Engine
	services *service.Services
	store    *testutil.MemStore
}

func setupEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := testutil.NewMemStore()
	services := &service.Services{
		Concerts:     service.NewConcertService(store.Concerts(), nil, nil),
		Reservations: service.NewReservationService(store.Reservations(), nil, nil, nil),
		Users:        service.NewUserService(store.Users()),
	}

	h := NewHandlers(services, nil)
	identity := middleware.Identity(auth.NewDirectoryVerifier(store.Users()))
	admin := middleware.RequireAdmin()

	r := gin.New()
	api := r.Group("/api")
	{
		concerts := api.Group("/concerts")
		{
			concerts.GET("", h.ListConcerts)
			concerts.GET("/:id", h.GetConcert)
			concerts.POST("", identity, admin, h.CreateConcert)
			concerts.PATCH("/:id", identity, admin, h.UpdateConcert)
			concerts.DELETE("/:id", identity, admin, h.DeleteConcert)
		}

		reservations := api.Group("/reservations")
		{
			reservations.GET("", identity, admin, h.ListReservations)
			reservations.GET("/my", identity, h.ListMyReservations)
			reservations.POST("", identity, h.CreateReservation)
			reservations.PATCH("/:id/cancel", identity, h.CancelReservation)
		}

		users := api.Group("/users")
		{
			users.POST("", h.RegisterUser)
			users.POST("/login", h.Login)
		}
	}

	return &testEnv{router: r, services: services, store: store}
}

func (e *testEnv) registerUser(t *testing.T, role string) string {
	t.Helper()
	user, err := e.services.Users.Register(context.Background(), &models.RegisterUserRequest{
		Email:    fmt.Sprintf("%s@example.com", uuid.New().String()),
		Name:     "Test User",
		Password: "secret123",
		Role:     role,
	})
	require.NoError(t, err)
	return user.ID
}

func (e *testEnv) createConcert(t *testing.T, seats int) *models.Concert {
	t.Helper()
	concert, err := e.services.Concerts.Create(context.Background(), &models.CreateConcertRequest{
		Name:        "Test Concert",
		Description: "desc",
		TotalSeats:  seats,
	})
	require.NoError(t, err)
	return concert
}

func (e *testEnv) request(t *testing.T, method, path, userID string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Buffer
	if body != nil {
		jsonBody, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewBuffer(jsonBody)
	} else {
		reader = bytes.NewBuffer(nil)
	}

	req, err := http.NewRequest(method, path, reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if userID != "" {
		req.Header.Set(middleware.IdentityHeader, userID)
	}

	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func TestRegisterAndLoginEndpoints(t *testing.T) {
	env := setupEnv(t)

	w := env.request(t, "POST", "/api/users", "", models.RegisterUserRequest{
		Email:    "alice@example.com",
		Name:     "Alice",
		Password: "secret123",
	})
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.NotContains(t, w.Body.String(), "password")

	w = env.request(t, "POST", "/api/users/login", "", models.LoginRequest{
		Email:    "alice@example.com",
		Password: "secret123",
	})
	assert.Equal(t, http.StatusOK, w.Code)

	var resp models.LoginResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.ID)
	assert.Equal(t, models.RoleUser, resp.Role)

	w = env.request(t, "POST", "/api/users/login", "", models.LoginRequest{
		Email:    "alice@example.com",
		Password: "wrong",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestConcertLifecycleAsAdmin(t *testing.T) {
	env := setupEnv(t)
	adminID := env.registerUser(t, models.RoleAdmin)

	w := env.request(t, "POST", "/api/concerts", adminID, models.CreateConcertRequest{
		Name:        "Summer Festival",
		Description: "Open air",
		TotalSeats:  100,
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var concert models.Concert
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &concert))
	assert.Equal(t, 100, concert.AvailableSeats)

	w = env.request(t, "GET", "/api/concerts/"+concert.ID, "", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = env.request(t, "PATCH", "/api/concerts/"+concert.ID, adminID, map[string]string{
		"name": "Summer Festival 2026",
	})
	assert.Equal(t, http.StatusOK, w.Code)

	w = env.request(t, "DELETE", "/api/concerts/"+concert.ID, adminID, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = env.request(t, "GET", "/api/concerts/"+concert.ID, "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestConcertMutationsRequireAdmin(t *testing.T) {
	env := setupEnv(t)
	userID := env.registerUser(t, models.RoleUser)

	body := models.CreateConcertRequest{Name: "Show", Description: "desc", TotalSeats: 10}

	// Plain user is rejected.
	w := env.request(t, "POST", "/api/concerts", userID, body)
	assert.Equal(t, http.StatusForbidden, w.Code)

	// Missing identity header.
	w = env.request(t, "POST", "/api/concerts", "", body)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Well-formed but unknown identity.
	w = env.request(t, "POST", "/api/concerts", uuid.New().String(), body)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUpdateConcertRejectsUnknownFields(t *testing.T) {
	env := setupEnv(t)
	adminID := env.registerUser(t, models.RoleAdmin)
	concert := env.createConcert(t, 30)

	w := env.request(t, "PATCH", "/api/concerts/"+concert.ID, adminID, map[string]any{
		"name":            "Renamed",
		"available_seats": 9999,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// The rejected patch must not have touched anything.
	got, err := env.services.Concerts.GetByID(context.Background(), concert.ID)
	require.NoError(t, err)
	assert.Equal(t, "Test Concert", got.Name)
	assert.Equal(t, 30, got.AvailableSeats)
}

func TestReservationEndpoints(t *testing.T) {
	env := setupEnv(t)
	adminID := env.registerUser(t, models.RoleAdmin)
	userID := env.registerUser(t, models.RoleUser)
	concert := env.createConcert(t, 1)

	body := models.CreateReservationRequest{ConcertID: concert.ID}

	w := env.request(t, "POST", "/api/reservations", userID, body)
	require.Equal(t, http.StatusCreated, w.Code)

	var reservation models.Reservation
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &reservation))
	assert.Equal(t, models.ReservationActive, reservation.Status)

	// Sold out.
	w = env.request(t, "POST", "/api/reservations", userID, body)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Deleting a concert with an active reservation conflicts.
	w = env.request(t, "DELETE", "/api/concerts/"+concert.ID, adminID, nil)
	assert.Equal(t, http.StatusConflict, w.Code)

	w = env.request(t, "GET", "/api/reservations/my", userID, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	var mine []models.ReservationDetail
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &mine))
	assert.Len(t, mine, 1)

	w = env.request(t, "PATCH", "/api/reservations/"+reservation.ID+"/cancel", userID, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	// Cancelling twice is rejected.
	w = env.request(t, "PATCH", "/api/reservations/"+reservation.ID+"/cancel", userID, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Unknown concert id that is still a valid uuid.
	w = env.request(t, "POST", "/api/reservations", userID, models.CreateReservationRequest{
		ConcertID: uuid.New().String(),
	})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestReservationListRequiresAdmin(t *testing.T) {
	env := setupEnv(t)
	userID := env.registerUser(t, models.RoleUser)

	w := env.request(t, "GET", "/api/reservations", userID, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	adminID := env.registerUser(t, models.RoleAdmin)
	w = env.request(t, "GET", "/api/reservations", adminID, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestMalformedIDsRejected(t *testing.T) {
	env := setupEnv(t)
	userID := env.registerUser(t, models.RoleUser)
	adminID := env.registerUser(t, models.RoleAdmin)

	w := env.request(t, "GET", "/api/concerts/not-a-uuid", "", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = env.request(t, "PATCH", "/api/reservations/not-a-uuid/cancel", userID, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = env.request(t, "DELETE", "/api/concerts/not-a-uuid", adminID, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestListConcertsEmpty(t *testing.T) {
	env := setupEnv(t)

	w := env.request(t, "GET", "/api/concerts", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "[]", w.Body.String())
}
