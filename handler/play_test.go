package handler_test

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"theatre_service/database"
	"theatre_service/model"
)

func createPlayViaAPI(t *testing.T, app *fiber.App, token, title string, actorIds, genreIds []uint) model.PlayDetailResponse {
	t.Helper()
	body := map[string]any{"title": title, "description": "on stage"}
	if actorIds != nil {
		body["actorIds"] = actorIds
	}
	if genreIds != nil {
		body["genreIds"] = genreIds
	}
	res := doRequest(t, app, http.MethodPost, "/api/v1/plays/", token, body)
	require.Equal(t, http.StatusCreated, res.StatusCode)
	var created model.PlayDetailResponse
	decodeData(t, res, &created)
	return created
}

func TestCreatePlayRequiresStaff(t *testing.T) {
	app := setupTestApp(t)
	regular := authToken(t, createTestUser(t, "alice@test.com", false))
	staff := authToken(t, createTestUser(t, "staff@test.com", true))

	body := map[string]any{"title": "Hamlet", "description": "the Dane"}

	res := doRequest(t, app, http.MethodPost, "/api/v1/plays/", regular, body)
	assert.Equal(t, http.StatusForbidden, res.StatusCode)

	res = doRequest(t, app, http.MethodPost, "/api/v1/plays/", staff, body)
	assert.Equal(t, http.StatusCreated, res.StatusCode)

	// duplicate title
	res = doRequest(t, app, http.MethodPost, "/api/v1/plays/", staff, body)
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
}

func TestCreatePlayWithAssociations(t *testing.T) {
	app := setupTestApp(t)
	staff := authToken(t, createTestUser(t, "staff@test.com", true))

	actor := model.Actor{FirstName: "Ian", LastName: "McKellen"}
	require.NoError(t, database.DB.Create(&actor).Error)
	genre := model.Genre{Name: "Tragedy"}
	require.NoError(t, database.DB.Create(&genre).Error)

	created := createPlayViaAPI(t, app, staff, "King Lear", []uint{actor.ID}, []uint{genre.ID})
	require.Len(t, created.Actors, 1)
	assert.Equal(t, "Ian McKellen", created.Actors[0].FullName)
	require.Len(t, created.Genres, 1)
	assert.Equal(t, "Tragedy", created.Genres[0].Name)
}

func TestCreatePlayUnknownActor(t *testing.T) {
	app := setupTestApp(t)
	staff := authToken(t, createTestUser(t, "staff@test.com", true))

	res := doRequest(t, app, http.MethodPost, "/api/v1/plays/", staff,
		map[string]any{"title": "Macbeth", "actorIds": []uint{4242}})
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)

	var errBody map[string]any
	decodeBody(t, res, &errBody)
	assert.Equal(t, "actorIds", errBody["keyError"])
}

func TestGetPlaysFilters(t *testing.T) {
	app := setupTestApp(t)
	staff := authToken(t, createTestUser(t, "staff@test.com", true))

	ian := model.Actor{FirstName: "Ian", LastName: "McKellen"}
	judi := model.Actor{FirstName: "Judi", LastName: "Dench"}
	require.NoError(t, database.DB.Create(&ian).Error)
	require.NoError(t, database.DB.Create(&judi).Error)
	tragedy := model.Genre{Name: "Tragedy"}
	comedy := model.Genre{Name: "Comedy"}
	require.NoError(t, database.DB.Create(&tragedy).Error)
	require.NoError(t, database.DB.Create(&comedy).Error)

	createPlayViaAPI(t, app, staff, "Hamlet", []uint{ian.ID}, []uint{tragedy.ID})
	createPlayViaAPI(t, app, staff, "Twelfth Night", []uint{judi.ID}, []uint{comedy.ID})
	createPlayViaAPI(t, app, staff, "Macbeth", []uint{ian.ID, judi.ID}, []uint{tragedy.ID})

	list := func(query string) []model.PlayListResponse {
		res := doRequest(t, app, http.MethodGet, "/api/v1/plays/"+query, staff, nil)
		require.Equal(t, http.StatusOK, res.StatusCode)
		var rows []model.PlayListResponse
		decodeResults(t, res, &rows)
		return rows
	}

	assert.Len(t, list(""), 3)

	byTitle := list("?title=mac")
	require.Len(t, byTitle, 1)
	assert.Equal(t, "Macbeth", byTitle[0].Title)

	byActor := list(fmt.Sprintf("?actors=%d", judi.ID))
	assert.Len(t, byActor, 2)

	byGenre := list(fmt.Sprintf("?genres=%d", comedy.ID))
	require.Len(t, byGenre, 1)
	assert.Equal(t, "Twelfth Night", byGenre[0].Title)

	// filters of different kinds combine with AND
	combined := list(fmt.Sprintf("?actors=%d&genres=%d", judi.ID, tragedy.ID))
	require.Len(t, combined, 1)
	assert.Equal(t, "Macbeth", combined[0].Title)

	res := doRequest(t, app, http.MethodGet, "/api/v1/plays/?actors=abc", staff, nil)
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
}

func TestUpdatePlayReplacesAssociations(t *testing.T) {
	app := setupTestApp(t)
	staff := authToken(t, createTestUser(t, "staff@test.com", true))

	ian := model.Actor{FirstName: "Ian", LastName: "McKellen"}
	judi := model.Actor{FirstName: "Judi", LastName: "Dench"}
	require.NoError(t, database.DB.Create(&ian).Error)
	require.NoError(t, database.DB.Create(&judi).Error)

	created := createPlayViaAPI(t, app, staff, "Hamlet", []uint{ian.ID}, nil)

	res := doRequest(t, app, http.MethodPut, fmt.Sprintf("/api/v1/plays/%d", created.ID), staff,
		map[string]any{"title": "Hamlet, Prince of Denmark", "actorIds": []uint{judi.ID}})
	require.Equal(t, http.StatusOK, res.StatusCode)

	var updated model.PlayDetailResponse
	decodeData(t, res, &updated)
	assert.Equal(t, "Hamlet, Prince of Denmark", updated.Title)
	require.Len(t, updated.Actors, 1)
	assert.Equal(t, "Judi Dench", updated.Actors[0].FullName)
}

func TestDeletePlayCascades(t *testing.T) {
	app := setupTestApp(t)
	staff := authToken(t, createTestUser(t, "staff@test.com", true))
	user := createTestUser(t, "alice@test.com", false)

	hall := sampleHall(t, "Blue", 15, 20)
	play := samplePlay(t, "Hamlet")
	performance := samplePerformance(t, play, hall, time.Now().Add(24*time.Hour))

	res := doRequest(t, app, http.MethodPost, "/api/v1/reservation/", authToken(t, user), reservationBody(performance.ID, [2]int{1, 1}))
	require.Equal(t, http.StatusCreated, res.StatusCode)

	res = doRequest(t, app, http.MethodDelete, fmt.Sprintf("/api/v1/plays/%d", play.ID), staff, nil)
	assert.Equal(t, http.StatusNoContent, res.StatusCode)

	var performanceCount, ticketCount int64
	require.NoError(t, database.DB.Model(&model.Performance{}).Count(&performanceCount).Error)
	require.NoError(t, database.DB.Model(&model.Ticket{}).Count(&ticketCount).Error)
	assert.Zero(t, performanceCount)
	assert.Zero(t, ticketCount)
}
