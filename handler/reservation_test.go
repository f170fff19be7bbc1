package handler_test

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"theatre_service/database"
	"theatre_service/model"
)

func reservationBody(performanceId uint, seats ...[2]int) map[string]any {
	tickets := make([]map[string]any, 0, len(seats))
	for _, s := range seats {
		tickets = append(tickets, map[string]any{
			"row":           s[0],
			"seat":          s[1],
			"performanceId": performanceId,
		})
	}
	return map[string]any{"tickets": tickets}
}

func TestCreateReservation(t *testing.T) {
	app := setupTestApp(t)
	user := createTestUser(t, "alice@test.com", false)
	token := authToken(t, user)

	hall := sampleHall(t, "Blue", 15, 20)
	play := samplePlay(t, "Hamlet")
	performance := samplePerformance(t, play, hall, time.Now().Add(24*time.Hour))

	res := doRequest(t, app, http.MethodPost, "/api/v1/reservation/", token, reservationBody(performance.ID, [2]int{1, 1}, [2]int{1, 2}))
	assert.Equal(t, http.StatusCreated, res.StatusCode)

	var created model.Reservation
	decodeData(t, res, &created)
	assert.Len(t, created.Tickets, 2)
	assert.Equal(t, user.ID, created.UserId)
	assert.Contains(t, created.PublicCode, "RSV-")

	var ticketCount int64
	require.NoError(t, database.DB.Model(&model.Ticket{}).Count(&ticketCount).Error)
	assert.Equal(t, int64(2), ticketCount)
}

func TestCreateReservationUnauthenticated(t *testing.T) {
	app := setupTestApp(t)

	res := doRequest(t, app, http.MethodPost, "/api/v1/reservation/", "", reservationBody(1, [2]int{1, 1}))
	assert.Equal(t, http.StatusUnauthorized, res.StatusCode)
}

func TestCreateReservationEmptyTickets(t *testing.T) {
	app := setupTestApp(t)
	token := authToken(t, createTestUser(t, "alice@test.com", false))

	res := doRequest(t, app, http.MethodPost, "/api/v1/reservation/", token, map[string]any{"tickets": []any{}})
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
}

func TestCreateReservationSeatOutOfBounds(t *testing.T) {
	app := setupTestApp(t)
	token := authToken(t, createTestUser(t, "alice@test.com", false))

	hall := sampleHall(t, "Blue", 15, 20)
	play := samplePlay(t, "Hamlet")
	performance := samplePerformance(t, play, hall, time.Now().Add(24*time.Hour))

	// row 16 in a 15-row hall
	res := doRequest(t, app, http.MethodPost, "/api/v1/reservation/", token, reservationBody(performance.ID, [2]int{16, 1}))
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)

	var body map[string]any
	decodeBody(t, res, &body)
	assert.Equal(t, "row", body["keyError"])

	var reservationCount int64
	require.NoError(t, database.DB.Model(&model.Reservation{}).Count(&reservationCount).Error)
	assert.Zero(t, reservationCount)
}

func TestCreateReservationDuplicateSeatInRequest(t *testing.T) {
	app := setupTestApp(t)
	token := authToken(t, createTestUser(t, "alice@test.com", false))

	hall := sampleHall(t, "Blue", 15, 20)
	play := samplePlay(t, "Hamlet")
	performance := samplePerformance(t, play, hall, time.Now().Add(24*time.Hour))

	res := doRequest(t, app, http.MethodPost, "/api/v1/reservation/", token, reservationBody(performance.ID, [2]int{3, 3}, [2]int{3, 3}))
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)

	// full rollback: nothing persisted
	var reservationCount, ticketCount int64
	require.NoError(t, database.DB.Model(&model.Reservation{}).Count(&reservationCount).Error)
	require.NoError(t, database.DB.Model(&model.Ticket{}).Count(&ticketCount).Error)
	assert.Zero(t, reservationCount)
	assert.Zero(t, ticketCount)
}

func TestCreateReservationSeatAlreadyTaken(t *testing.T) {
	app := setupTestApp(t)
	alice := createTestUser(t, "alice@test.com", false)
	bob := createTestUser(t, "bob@test.com", false)

	hall := sampleHall(t, "Blue", 15, 20)
	play := samplePlay(t, "Hamlet")
	performance := samplePerformance(t, play, hall, time.Now().Add(24*time.Hour))

	res := doRequest(t, app, http.MethodPost, "/api/v1/reservation/", authToken(t, alice), reservationBody(performance.ID, [2]int{1, 1}))
	require.Equal(t, http.StatusCreated, res.StatusCode)

	// same seat, same performance, different user
	res = doRequest(t, app, http.MethodPost, "/api/v1/reservation/", authToken(t, bob), reservationBody(performance.ID, [2]int{1, 1}, [2]int{1, 2}))
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)

	// the losing request persisted nothing at all
	var ticketCount int64
	require.NoError(t, database.DB.Model(&model.Ticket{}).Count(&ticketCount).Error)
	assert.Equal(t, int64(1), ticketCount)

	var reservationCount int64
	require.NoError(t, database.DB.Model(&model.Reservation{}).Count(&reservationCount).Error)
	assert.Equal(t, int64(1), reservationCount)
}

func TestSeatUniqueIndexIsEnforcedByStorage(t *testing.T) {
	setupTestApp(t)
	user := createTestUser(t, "alice@test.com", false)

	hall := sampleHall(t, "Blue", 15, 20)
	play := samplePlay(t, "Hamlet")
	performance := samplePerformance(t, play, hall, time.Now().Add(24*time.Hour))

	reservation := model.Reservation{PublicCode: "RSV-test0001", UserId: user.ID}
	require.NoError(t, database.DB.Create(&reservation).Error)

	first := model.Ticket{Row: 1, Seat: 1, PerformanceId: performance.ID, ReservationId: reservation.ID}
	require.NoError(t, database.DB.Create(&first).Error)

	// racing insert that slipped past any application pre-check must be
	// rejected by the database itself
	second := model.Ticket{Row: 1, Seat: 1, PerformanceId: performance.ID, ReservationId: reservation.ID}
	assert.Error(t, database.DB.Create(&second).Error)
}

func TestReservationAvailabilityScenario(t *testing.T) {
	app := setupTestApp(t)
	token := authToken(t, createTestUser(t, "alice@test.com", false))

	hall := sampleHall(t, "Blue", 15, 20) // capacity 300
	play := samplePlay(t, "Hamlet")
	performance := samplePerformance(t, play, hall, time.Now().Add(24*time.Hour))

	listAvailability := func() int64 {
		res := doRequest(t, app, http.MethodGet, "/api/v1/performances/", token, nil)
		require.Equal(t, http.StatusOK, res.StatusCode)
		var rows []model.PerformanceListResponse
		decodeResults(t, res, &rows)
		require.Len(t, rows, 1)
		require.Equal(t, performance.ID, rows[0].ID)
		return rows[0].TicketsAvailable
	}

	assert.Equal(t, int64(300), listAvailability())

	res := doRequest(t, app, http.MethodPost, "/api/v1/reservation/", token, reservationBody(performance.ID, [2]int{1, 1}, [2]int{1, 2}))
	require.Equal(t, http.StatusCreated, res.StatusCode)
	assert.Equal(t, int64(298), listAvailability())

	var created model.Reservation
	require.NoError(t, database.DB.First(&created).Error)
	res = doRequest(t, app, http.MethodDelete, fmt.Sprintf("/api/v1/reservation/%d", created.ID), token, nil)
	require.Equal(t, http.StatusNoContent, res.StatusCode)
	assert.Equal(t, int64(300), listAvailability())
}

func TestGetReservationsOnlyOwn(t *testing.T) {
	app := setupTestApp(t)
	alice := createTestUser(t, "alice@test.com", false)
	bob := createTestUser(t, "bob@test.com", false)

	hall := sampleHall(t, "Blue", 15, 20)
	play := samplePlay(t, "Hamlet")
	performance := samplePerformance(t, play, hall, time.Now().Add(24*time.Hour))

	res := doRequest(t, app, http.MethodPost, "/api/v1/reservation/", authToken(t, alice), reservationBody(performance.ID, [2]int{1, 1}))
	require.Equal(t, http.StatusCreated, res.StatusCode)
	res = doRequest(t, app, http.MethodPost, "/api/v1/reservation/", authToken(t, bob), reservationBody(performance.ID, [2]int{2, 2}))
	require.Equal(t, http.StatusCreated, res.StatusCode)

	res = doRequest(t, app, http.MethodGet, "/api/v1/reservation/", authToken(t, alice), nil)
	require.Equal(t, http.StatusOK, res.StatusCode)
	var rows []model.ReservationListResponse
	count := decodeResults(t, res, &rows)
	assert.Equal(t, int64(1), count)
	require.Len(t, rows, 1)
	require.Len(t, rows[0].Tickets, 1)
	assert.Equal(t, 1, rows[0].Tickets[0].Row)
	assert.Equal(t, "Hamlet", rows[0].Tickets[0].Performance)
}

func TestReservationOfAnotherUserIsHidden(t *testing.T) {
	app := setupTestApp(t)
	alice := createTestUser(t, "alice@test.com", false)
	bob := createTestUser(t, "bob@test.com", false)

	hall := sampleHall(t, "Blue", 15, 20)
	play := samplePlay(t, "Hamlet")
	performance := samplePerformance(t, play, hall, time.Now().Add(24*time.Hour))

	res := doRequest(t, app, http.MethodPost, "/api/v1/reservation/", authToken(t, bob), reservationBody(performance.ID, [2]int{1, 1}))
	require.Equal(t, http.StatusCreated, res.StatusCode)

	var bobsReservation model.Reservation
	require.NoError(t, database.DB.First(&bobsReservation).Error)

	// filtered out of alice's queryset entirely, not merely forbidden
	res = doRequest(t, app, http.MethodGet, fmt.Sprintf("/api/v1/reservation/%d", bobsReservation.ID), authToken(t, alice), nil)
	assert.Equal(t, http.StatusNotFound, res.StatusCode)

	res = doRequest(t, app, http.MethodDelete, fmt.Sprintf("/api/v1/reservation/%d", bobsReservation.ID), authToken(t, alice), nil)
	assert.Equal(t, http.StatusNotFound, res.StatusCode)

	// still there
	var reservationCount int64
	require.NoError(t, database.DB.Model(&model.Reservation{}).Count(&reservationCount).Error)
	assert.Equal(t, int64(1), reservationCount)
}

func TestDeleteReservationKeepsOtherTickets(t *testing.T) {
	app := setupTestApp(t)
	alice := createTestUser(t, "alice@test.com", false)
	bob := createTestUser(t, "bob@test.com", false)

	hall := sampleHall(t, "Blue", 15, 20)
	play := samplePlay(t, "Hamlet")
	performance := samplePerformance(t, play, hall, time.Now().Add(24*time.Hour))

	res := doRequest(t, app, http.MethodPost, "/api/v1/reservation/", authToken(t, alice), reservationBody(performance.ID, [2]int{1, 1}, [2]int{1, 2}))
	require.Equal(t, http.StatusCreated, res.StatusCode)
	var alicesReservation model.Reservation
	decodeData(t, res, &alicesReservation)

	res = doRequest(t, app, http.MethodPost, "/api/v1/reservation/", authToken(t, bob), reservationBody(performance.ID, [2]int{2, 1}))
	require.Equal(t, http.StatusCreated, res.StatusCode)

	res = doRequest(t, app, http.MethodDelete, fmt.Sprintf("/api/v1/reservation/%d", alicesReservation.ID), authToken(t, alice), nil)
	assert.Equal(t, http.StatusNoContent, res.StatusCode)

	var tickets []model.Ticket
	require.NoError(t, database.DB.Find(&tickets).Error)
	require.Len(t, tickets, 1)
	assert.Equal(t, 2, tickets[0].Row)
	assert.Equal(t, 1, tickets[0].Seat)
}

func TestReservationUpdateNotAllowed(t *testing.T) {
	app := setupTestApp(t)
	alice := createTestUser(t, "alice@test.com", false)
	token := authToken(t, alice)

	hall := sampleHall(t, "Blue", 15, 20)
	play := samplePlay(t, "Hamlet")
	performance := samplePerformance(t, play, hall, time.Now().Add(24*time.Hour))

	res := doRequest(t, app, http.MethodPost, "/api/v1/reservation/", token, reservationBody(performance.ID, [2]int{1, 1}))
	require.Equal(t, http.StatusCreated, res.StatusCode)
	var created model.Reservation
	decodeData(t, res, &created)

	res = doRequest(t, app, http.MethodPut, fmt.Sprintf("/api/v1/reservation/%d", created.ID), token, reservationBody(performance.ID, [2]int{5, 5}))
	assert.Equal(t, http.StatusMethodNotAllowed, res.StatusCode)

	res = doRequest(t, app, http.MethodPatch, fmt.Sprintf("/api/v1/reservation/%d", created.ID), token, nil)
	assert.Equal(t, http.StatusMethodNotAllowed, res.StatusCode)
}

func TestGetReservationDetail(t *testing.T) {
	app := setupTestApp(t)
	alice := createTestUser(t, "alice@test.com", false)
	token := authToken(t, alice)

	hall := sampleHall(t, "Blue", 15, 20)
	play := samplePlay(t, "Hamlet")
	performance := samplePerformance(t, play, hall, time.Now().Add(24*time.Hour))

	res := doRequest(t, app, http.MethodPost, "/api/v1/reservation/", token, reservationBody(performance.ID, [2]int{4, 7}))
	require.Equal(t, http.StatusCreated, res.StatusCode)
	var created model.Reservation
	decodeData(t, res, &created)

	res = doRequest(t, app, http.MethodGet, fmt.Sprintf("/api/v1/reservation/%d", created.ID), token, nil)
	require.Equal(t, http.StatusOK, res.StatusCode)

	var detail model.ReservationDetailResponse
	decodeData(t, res, &detail)
	require.Len(t, detail.Tickets, 1)
	assert.Equal(t, 4, detail.Tickets[0].Row)
	assert.Equal(t, 7, detail.Tickets[0].Seat)
	assert.Equal(t, "Hamlet", detail.Tickets[0].Performance.Play)
	assert.Equal(t, "Blue", detail.Tickets[0].Performance.TheatreHall)
	assert.Equal(t, int64(299), detail.Tickets[0].Performance.TicketsAvailable)
}
