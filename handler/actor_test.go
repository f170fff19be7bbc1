package handler_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"theatre_service/database"
	"theatre_service/model"
)

func TestActorCRUD(t *testing.T) {
	app := setupTestApp(t)
	staff := authToken(t, createTestUser(t, "staff@test.com", true))

	res := doRequest(t, app, http.MethodPost, "/api/v1/actors/", staff,
		map[string]any{"firstName": "Ian", "lastName": "McKellen"})
	require.Equal(t, http.StatusCreated, res.StatusCode)
	var created model.ActorResponse
	decodeData(t, res, &created)
	assert.Equal(t, "Ian McKellen", created.FullName)

	// duplicate name pair, case-insensitive
	res = doRequest(t, app, http.MethodPost, "/api/v1/actors/", staff,
		map[string]any{"firstName": "ian", "lastName": "MCKELLEN"})
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)

	res = doRequest(t, app, http.MethodPut, fmt.Sprintf("/api/v1/actors/%d", created.ID), staff,
		map[string]any{"lastName": "Holm"})
	require.Equal(t, http.StatusOK, res.StatusCode)
	var updated model.ActorResponse
	decodeData(t, res, &updated)
	assert.Equal(t, "Ian Holm", updated.FullName)

	res = doRequest(t, app, http.MethodDelete, fmt.Sprintf("/api/v1/actors/%d", created.ID), staff, nil)
	assert.Equal(t, http.StatusNoContent, res.StatusCode)

	res = doRequest(t, app, http.MethodGet, fmt.Sprintf("/api/v1/actors/%d", created.ID), staff, nil)
	assert.Equal(t, http.StatusNotFound, res.StatusCode)
}

func TestActorWriteRequiresStaff(t *testing.T) {
	app := setupTestApp(t)
	regular := authToken(t, createTestUser(t, "alice@test.com", false))

	res := doRequest(t, app, http.MethodPost, "/api/v1/actors/", regular,
		map[string]any{"firstName": "Ian", "lastName": "McKellen"})
	assert.Equal(t, http.StatusForbidden, res.StatusCode)

	// reads stay open to any authenticated user
	res = doRequest(t, app, http.MethodGet, "/api/v1/actors/", regular, nil)
	assert.Equal(t, http.StatusOK, res.StatusCode)
}

func TestGetActorsSearch(t *testing.T) {
	app := setupTestApp(t)
	token := authToken(t, createTestUser(t, "alice@test.com", false))

	for _, a := range []model.Actor{
		{FirstName: "Ian", LastName: "McKellen"},
		{FirstName: "Judi", LastName: "Dench"},
		{FirstName: "Ian", LastName: "Holm"},
	} {
		require.NoError(t, database.DB.Create(&a).Error)
	}

	res := doRequest(t, app, http.MethodGet, "/api/v1/actors/?search=ian", token, nil)
	require.Equal(t, http.StatusOK, res.StatusCode)
	var rows []model.ActorResponse
	count := decodeResults(t, res, &rows)
	assert.Equal(t, int64(2), count)
	assert.Len(t, rows, 2)

	res = doRequest(t, app, http.MethodGet, "/api/v1/actors/?search=dench", token, nil)
	require.Equal(t, http.StatusOK, res.StatusCode)
	count = decodeResults(t, res, &rows)
	assert.Equal(t, int64(1), count)
}

func TestGetActorsPagination(t *testing.T) {
	app := setupTestApp(t)
	token := authToken(t, createTestUser(t, "alice@test.com", false))

	for i := 0; i < 15; i++ {
		actor := model.Actor{FirstName: "Actor", LastName: fmt.Sprintf("Number%02d", i)}
		require.NoError(t, database.DB.Create(&actor).Error)
	}

	res := doRequest(t, app, http.MethodGet, "/api/v1/actors/?limit=10&page=2", token, nil)
	require.Equal(t, http.StatusOK, res.StatusCode)
	var rows []model.ActorResponse
	count := decodeResults(t, res, &rows)
	assert.Equal(t, int64(15), count)
	assert.Len(t, rows, 5)
}

func TestGenreCRUD(t *testing.T) {
	app := setupTestApp(t)
	staff := authToken(t, createTestUser(t, "staff@test.com", true))
	regular := authToken(t, createTestUser(t, "alice@test.com", false))

	res := doRequest(t, app, http.MethodPost, "/api/v1/genres/", staff, map[string]any{"name": "Tragedy"})
	require.Equal(t, http.StatusCreated, res.StatusCode)
	var created model.Genre
	decodeData(t, res, &created)
	assert.Equal(t, "Tragedy", created.Name)

	res = doRequest(t, app, http.MethodPost, "/api/v1/genres/", staff, map[string]any{"name": "tragedy"})
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)

	res = doRequest(t, app, http.MethodPost, "/api/v1/genres/", regular, map[string]any{"name": "Comedy"})
	assert.Equal(t, http.StatusForbidden, res.StatusCode)

	res = doRequest(t, app, http.MethodGet, "/api/v1/genres/?name=trag", regular, nil)
	require.Equal(t, http.StatusOK, res.StatusCode)
	var rows []model.Genre
	count := decodeResults(t, res, &rows)
	assert.Equal(t, int64(1), count)

	res = doRequest(t, app, http.MethodDelete, fmt.Sprintf("/api/v1/genres/%d", created.ID), regular, nil)
	assert.Equal(t, http.StatusForbidden, res.StatusCode)

	res = doRequest(t, app, http.MethodDelete, fmt.Sprintf("/api/v1/genres/%d", created.ID), staff, nil)
	assert.Equal(t, http.StatusNoContent, res.StatusCode)
}
