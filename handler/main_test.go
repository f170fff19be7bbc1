package handler_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"theatre_service/database"
	"theatre_service/helper"
	"theatre_service/model"
	"theatre_service/router"
)

// setupTestApp wires the full route table against a fresh in-memory
// database so tests exercise the real middleware/validate/handler chain.
func setupTestApp(t *testing.T) *fiber.App {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.New().String())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	database.DB = db

	app := fiber.New()
	router.SetupRoutes(app)
	return app
}

func createTestUser(t *testing.T, email string, isStaff bool) model.User {
	t.Helper()

	hash, err := helper.HashPassword("testpass123")
	require.NoError(t, err)

	user := model.User{Email: email, Password: hash, IsStaff: isStaff}
	require.NoError(t, database.DB.Create(&user).Error)
	return user
}

func authToken(t *testing.T, user model.User) string {
	t.Helper()

	token, err := helper.GenerateAccessToken(model.TokenClaim{UserId: user.ID, Email: user.Email})
	require.NoError(t, err)
	return token
}

func doRequest(t *testing.T, app *fiber.App, method, path, token string, body any) *http.Response {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, path, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	res, err := app.Test(req, -1)
	require.NoError(t, err)
	return res
}

func decodeBody(t *testing.T, res *http.Response, out any) {
	t.Helper()
	require.NoError(t, json.NewDecoder(res.Body).Decode(out))
}

type successEnvelope struct {
	Status string          `json:"status"`
	Data   json.RawMessage `json:"data"`
}

func decodeData(t *testing.T, res *http.Response, out any) {
	t.Helper()
	var env successEnvelope
	decodeBody(t, res, &env)
	require.NoError(t, json.Unmarshal(env.Data, out))
}

type listEnvelope struct {
	Results json.RawMessage `json:"results"`
	Count   int64           `json:"count"`
}

func decodeResults(t *testing.T, res *http.Response, out any) int64 {
	t.Helper()
	var env listEnvelope
	decodeBody(t, res, &env)
	require.NoError(t, json.Unmarshal(env.Results, out))
	return env.Count
}

func sampleHall(t *testing.T, name string, rows, seatsInRow int) model.TheatreHall {
	t.Helper()
	hall := model.TheatreHall{Name: name, Rows: rows, SeatsInRow: seatsInRow}
	require.NoError(t, database.DB.Create(&hall).Error)
	return hall
}

func samplePlay(t *testing.T, title string) model.Play {
	t.Helper()
	play := model.Play{Title: title, Description: "a play"}
	require.NoError(t, database.DB.Create(&play).Error)
	return play
}

func samplePerformance(t *testing.T, play model.Play, hall model.TheatreHall, showTime time.Time) model.Performance {
	t.Helper()
	performance := model.Performance{PlayId: play.ID, TheatreHallId: hall.ID, ShowTime: showTime}
	require.NoError(t, database.DB.Create(&performance).Error)
	return performance
}
